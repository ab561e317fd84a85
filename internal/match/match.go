// Package match scores the fixed product universes against a client's
// captured profile and preferences, for the "suggest some funds" detour.
package match

import (
	"sort"
	"strings"

	"go.uber.org/zap"
)

// Scoring weights per matching dimension. A label match outweighs an
// objective match, which outweighs a theme match.
const (
	weightObjective = 3.0
	weightLabel     = 4.0
	weightTheme     = 2.0
)

// TopN caps how many ranked candidates each universe returns.
const TopN = 3

// Query carries the profile dimensions a candidate is scored against.
type Query struct {
	Objective       string
	RiskTolerance   int
	HorizonYears    int
	PreferenceLevel string
	Labels          []string
	Themes          []string
}

// Candidate is a scored, qualified product.
type Candidate struct {
	Product Product  `json:"product"`
	Score   float64  `json:"score"`
	Reasons []string `json:"reasons"`
}

// Result holds ranked candidates from both universes.
type Result struct {
	Authorised []Candidate `json:"authorised"`
	MarketScan []Candidate `json:"market_scan"`
}

// Run scores both universes against the query and returns the top
// candidates from each, ranked descending.
func Run(q Query) Result {
	res := Result{
		Authorised: rank(AuthorisedUniverse, q),
		MarketScan: rank(MarketScanUniverse, q),
	}
	zap.L().Debug("match: universes scored",
		zap.Int("authorised", len(res.Authorised)),
		zap.Int("market_scan", len(res.MarketScan)),
	)
	return res
}

// CandidateIDs flattens a result into product identifiers for the audit log.
func (r Result) CandidateIDs() []string {
	ids := make([]string, 0, len(r.Authorised)+len(r.MarketScan))
	for _, c := range r.Authorised {
		ids = append(ids, c.Product.ID)
	}
	for _, c := range r.MarketScan {
		ids = append(ids, c.Product.ID)
	}
	return ids
}

func rank(universe []Product, q Query) []Candidate {
	var qualified []Candidate
	for _, p := range universe {
		if c, ok := score(p, q); ok {
			qualified = append(qualified, c)
		}
	}
	sort.SliceStable(qualified, func(i, j int) bool {
		return qualified[i].Score > qualified[j].Score
	})
	if len(qualified) > TopN {
		qualified = qualified[:TopN]
	}
	return qualified
}

// score disqualifies a product outside the client's risk band, below the
// minimum horizon, or whose supported preference levels exclude the
// client's level; otherwise it accumulates a weighted score per matching
// dimension.
func score(p Product, q Query) (Candidate, bool) {
	if q.RiskTolerance < p.RiskBand[0] || q.RiskTolerance > p.RiskBand[1] {
		return Candidate{}, false
	}
	if q.HorizonYears < p.MinHorizonYears {
		return Candidate{}, false
	}
	if q.PreferenceLevel != "" && len(p.PreferenceLevels) > 0 && !containsFold(p.PreferenceLevels, q.PreferenceLevel) {
		return Candidate{}, false
	}

	c := Candidate{Product: p}
	if q.Objective != "" && containsFold(p.Objectives, q.Objective) {
		c.Score += weightObjective
		c.Reasons = append(c.Reasons, "objective: "+q.Objective)
	}
	for _, label := range q.Labels {
		if containsFold(p.Labels, label) {
			c.Score += weightLabel
			c.Reasons = append(c.Reasons, "label: "+label)
		}
	}
	for _, theme := range q.Themes {
		if containsFold(p.Themes, theme) {
			c.Score += weightTheme
			c.Reasons = append(c.Reasons, "theme: "+theme)
		}
	}
	return c, true
}

func containsFold(set []string, value string) bool {
	for _, s := range set {
		if strings.EqualFold(s, value) {
			return true
		}
	}
	return false
}
