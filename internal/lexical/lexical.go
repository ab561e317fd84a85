// Package lexical provides the pure text helpers used by the conversation
// engine: normalisation, list splitting, numeric extraction, and SDR label
// alias resolution. Helpers never return errors; a failed parse is a zero
// value the caller turns into a re-prompt.
package lexical

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/sells-group/suitability-engine/internal/catalog"
)

var (
	nonAlnum   = regexp.MustCompile(`[^a-z0-9]+`)
	multiSpace = regexp.MustCompile(`\s+`)

	affirmative = regexp.MustCompile(`\b(yes|yep|yeah|ready|sure|ok(ay)?|i (consent|agree|understand|confirm)|confirm(ed)?|agreed|understood|correct|proceed)\b`)
	negative    = regexp.MustCompile(`\b(no|nope|none|not now|decline|refuse|no exclusions|not at this time)\b`)

	percentPat = regexp.MustCompile(`(-?\d{1,3}(?:\.\d+)?)\s*(?:%|percent|per cent)`)
	numberPat  = regexp.MustCompile(`-?\d+(?:\.\d+)?`)
	intPat     = regexp.MustCompile(`-?\d{1,3}`)
)

// Normalise folds case, strips punctuation, and collapses whitespace so
// free text can be compared against controlled vocabulary entries.
func Normalise(text string) string {
	s := strings.ToLower(strings.TrimSpace(text))
	s = nonAlnum.ReplaceAllString(s, " ")
	s = multiSpace.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

var listSplitter = regexp.MustCompile(`(?i)[,\n;]|\band\b`)

// SplitList splits free text on commas, newlines, semicolons, or the word
// "and" into trimmed non-empty items.
func SplitList(text string) []string {
	parts := listSplitter.Split(text, -1)
	items := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			items = append(items, t)
		}
	}
	return items
}

// IsAffirmative reports whether the text carries affirmative intent.
func IsAffirmative(text string) bool {
	return affirmative.MatchString(strings.ToLower(text))
}

// IsNegative reports whether the text carries negative or "none" intent.
func IsNegative(text string) bool {
	return negative.MatchString(strings.ToLower(text))
}

// LooksOffScript distinguishes an off-script utterance (a question, or a
// long aside) from a short attempted answer. Attempted answers that fail to
// parse get a re-prompt; off-script text falls through to escalation.
func LooksOffScript(text string) bool {
	if strings.Contains(text, "?") {
		return true
	}
	return len(strings.Fields(text)) > 8
}

// Exclusion is one parsed exclusion item: a sector label plus an optional
// revenue threshold percentage.
type Exclusion struct {
	Sector       string
	ThresholdPct *float64
}

// ParseExclusions interprets an exclusions answer. "none" or "no
// exclusions" yields an empty list; otherwise each list item is split into
// a sector label and an optional percentage threshold.
func ParseExclusions(text string) []Exclusion {
	switch norm := Normalise(text); {
	case norm == "none" || norm == "no" || norm == "not at this time",
		strings.Contains(norm, "no exclusion"):
		return []Exclusion{}
	}

	var out []Exclusion
	for _, item := range SplitList(text) {
		excl := Exclusion{Sector: strings.TrimSpace(item)}
		if m := percentPat.FindStringSubmatch(item); m != nil {
			if v, err := strconv.ParseFloat(m[1], 64); err == nil {
				excl.ThresholdPct = &v
				sector := strings.Replace(item, m[0], "", 1)
				sector = strings.Trim(sector, " \t:-()")
				sector = strings.TrimSuffix(strings.TrimSpace(sector), " under")
				sector = strings.TrimSuffix(strings.TrimSpace(sector), " over")
				sector = strings.TrimSuffix(strings.TrimSpace(sector), " above")
				sector = strings.TrimSuffix(strings.TrimSpace(sector), " below")
				if sector != "" {
					excl.Sector = sector
				}
			}
		}
		if excl.Sector != "" {
			out = append(out, excl)
		}
	}
	return out
}

// ParseHorizonYears extracts an investment horizon in whole years.
// Returns 0 when no positive integer is present.
func ParseHorizonYears(text string) int {
	m := numberPat.FindString(text)
	if m == "" {
		return 0
	}
	v, err := strconv.Atoi(strings.SplitN(m, ".", 2)[0])
	if err != nil || v <= 0 {
		return 0
	}
	return v
}

// Qualitative risk words mapped onto the 1-7 scale. Longer phrases are
// checked before their substrings.
var riskWords = []struct {
	phrase string
	value  int
}{
	{"very low", 1},
	{"very high", 7},
	{"low", 2},
	{"medium", 4},
	{"moderate", 4},
	{"high", 6},
}

// ParseRiskTolerance extracts a 1-7 attitude-to-risk value from a digit or
// a qualitative word. Returns 0 when nothing usable is present.
func ParseRiskTolerance(text string) int {
	norm := Normalise(text)
	if m := intPat.FindString(norm); m != "" {
		if v, err := strconv.Atoi(m); err == nil && v >= catalog.MinRisk && v <= catalog.MaxRisk {
			return v
		}
		return 0
	}
	padded := " " + norm + " "
	for _, rw := range riskWords {
		if strings.Contains(padded, " "+rw.phrase+" ") {
			return rw.value
		}
	}
	return 0
}

// ParseCapacityForLoss extracts a qualitative capacity-for-loss level.
// Digits never match; the answer must be a word. Returns "" on no match.
func ParseCapacityForLoss(text string) string {
	norm := Normalise(text)
	if intPat.MatchString(norm) {
		return ""
	}
	padded := " " + norm + " "
	for _, level := range catalog.CapacityForLossLevels {
		if strings.Contains(padded, " "+level+" ") {
			return level
		}
	}
	return ""
}

// MatchChoice resolves free text against an enumerated value set, first by
// exact normalised equality, then by whole-token containment. Returns ""
// when nothing matches.
func MatchChoice(text string, choices []string) string {
	norm := Normalise(text)
	if norm == "" {
		return ""
	}
	for _, c := range choices {
		if Normalise(c) == norm {
			return c
		}
	}
	padded := " " + norm + " "
	for _, c := range choices {
		if strings.Contains(padded, " "+Normalise(c)+" ") {
			return c
		}
	}
	return ""
}

// aliasEntry pairs a normalised alias with its canonical pathway name.
type aliasEntry struct {
	alias string
	name  string
}

// pathwayAliasIndex is built once, sorted longest-alias-first so "mixed
// goals" wins over "mixed" and partial names never false-positive.
var pathwayAliasIndex = func() []aliasEntry {
	var entries []aliasEntry
	for _, name := range catalog.PathwayNames {
		aliases := append([]string{name}, catalog.PathwayAliases[name]...)
		for _, a := range aliases {
			if n := Normalise(a); n != "" {
				entries = append(entries, aliasEntry{alias: n, name: name})
			}
		}
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return len(entries[i].alias) > len(entries[j].alias)
	})
	return entries
}()

// FindPathway resolves a text fragment to a single SDR label via the alias
// index. Returns "" on no match.
func FindPathway(fragment string) string {
	norm := Normalise(fragment)
	if norm == "" {
		return ""
	}
	padded := " " + norm + " "
	for _, e := range pathwayAliasIndex {
		if strings.Contains(padded, " "+e.alias+" ") {
			return e.name
		}
	}
	return ""
}

// FindPathways returns every distinct SDR label mentioned in the text, in
// alias-index order.
func FindPathways(text string) []string {
	norm := Normalise(text)
	if norm == "" {
		return nil
	}
	padded := " " + norm + " "
	var found []string
	seen := map[string]bool{}
	for _, e := range pathwayAliasIndex {
		if seen[e.name] {
			continue
		}
		if strings.Contains(padded, " "+e.alias+" ") {
			found = append(found, e.name)
			seen[e.name] = true
		}
	}
	return found
}

// Allocation is a pathway name with a percentage split.
type Allocation struct {
	Name string
	Pct  int
}

// ParseAllocations extracts "label percent" pairs from free text, e.g.
// "Focus 50%, Impact 30%, Improvers 20%". Chunks without a recognisable
// label or percentage are skipped.
func ParseAllocations(text string) []Allocation {
	cleaned := strings.NewReplacer("percent", "%", "per cent", "%").Replace(strings.ToLower(text))
	var out []Allocation
	seen := map[string]int{}
	for _, chunk := range SplitList(cleaned) {
		m := intPat.FindString(chunk)
		if m == "" {
			continue
		}
		pct, err := strconv.Atoi(m)
		if err != nil {
			continue
		}
		name := FindPathway(chunk)
		if name == "" {
			continue
		}
		if idx, ok := seen[name]; ok {
			out[idx].Pct = pct
			continue
		}
		seen[name] = len(out)
		out = append(out, Allocation{Name: name, Pct: pct})
	}
	return out
}
