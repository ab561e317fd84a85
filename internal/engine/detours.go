package engine

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/sells-group/suitability-engine/internal/catalog"
	"github.com/sells-group/suitability-engine/internal/lexical"
	"github.com/sells-group/suitability-engine/internal/match"
	"github.com/sells-group/suitability-engine/internal/model"
)

// Detour trigger patterns, checked against normalised text.
var (
	matchRequestPat = regexp.MustCompile(`\b(suggest|recommend|show|find|match)\b.*\b(fund|funds|product|products|investment|investments|portfolio)\b`)
	rationalePat    = regexp.MustCompile(`\bwhy (do you|is (this|that)|does)\b|\bwhy (need|ask)\b|\bwhat('| i)?s (this|that) for\b`)
)

// tryDetours runs the ordered detour matchers: investment matching first,
// then the educational topic library, then the rationale responder. Every
// detour reply ends by restating the pending question so the flow never
// loses its place. The topic library only claims off-script turns; direct
// answers that happen to mention a topic keyword ("my risk tolerance is 5")
// belong to the pending question.
func (e *Engine) tryDetours(s *model.Session, text string) ([]string, bool) {
	norm := lexical.Normalise(text)

	if matchRequestPat.MatchString(norm) {
		return e.runMatchDetour(s, text), true
	}

	if lexical.LooksOffScript(text) {
		for _, topic := range catalog.Topics {
			for _, kw := range topic.Keywords {
				if strings.Contains(norm, lexical.Normalise(kw)) {
					s.Data.EducationalRequests = append(s.Data.EducationalRequests, model.EducationalRequest{
						Topic:     topic.Name,
						Timestamp: e.now(),
					})
					return e.withResume(s, topic.Explainer), true
				}
			}
		}
	}

	if rationalePat.MatchString(norm) {
		s.Data.ExtraQuestions = append(s.Data.ExtraQuestions, model.ExtraQuestion{
			Question:  text,
			Stage:     s.Stage,
			Step:      e.stageStep(s),
			Timestamp: e.now(),
		})
		return e.withResume(s, catalog.Rationale(s.Stage, e.stageStep(s))), true
	}

	return nil, false
}

// runMatchDetour answers a "suggest some funds" request. It needs a
// captured preference profile; before that point it defers and restates
// the pending question.
func (e *Engine) runMatchDetour(s *model.Session, text string) []string {
	prefs := s.Data.Preferences
	if prefs.PreferenceLevel == "" || (prefs.PreferenceLevel != "none" && len(prefs.Labels) == 0) {
		return e.withResume(s,
			"I'd love to show you some options, but I can only match investments once your sustainability preferences are captured. Let's finish the questions first and I'll run the match for you.")
	}

	labels := make([]string, 0, len(prefs.Labels))
	for _, l := range prefs.Labels {
		labels = append(labels, l.Name)
	}
	result := match.Run(match.Query{
		Objective:       s.Data.ClientProfile.Objectives,
		RiskTolerance:   s.Data.ClientProfile.RiskTolerance,
		HorizonYears:    s.Data.ClientProfile.HorizonYears,
		PreferenceLevel: prefs.PreferenceLevel,
		Labels:          labels,
		Themes:          prefs.Themes,
	})

	s.Data.MatchQueries = append(s.Data.MatchQueries, model.MatchQuery{
		Query:        text,
		CandidateIDs: result.CandidateIDs(),
		Timestamp:    e.now(),
	})

	if len(result.Authorised) == 0 && len(result.MarketScan) == 0 {
		return e.withResume(s,
			"Nothing in our universe currently fits your combination of risk, horizon, and preferences. Your adviser will look at this in detail.")
	}

	var b strings.Builder
	b.WriteString("Here is what matches your profile so far. These are illustrations, not a recommendation; your adviser confirms anything before you invest.\n")
	writeCandidates(&b, "From our authorised list", result.Authorised)
	writeCandidates(&b, "From the wider market", result.MarketScan)
	return e.withResume(s, strings.TrimRight(b.String(), "\n"))
}

func writeCandidates(b *strings.Builder, heading string, cands []match.Candidate) {
	if len(cands) == 0 {
		return
	}
	fmt.Fprintf(b, "%s:\n", heading)
	for _, c := range cands {
		fmt.Fprintf(b, "- %s (%s, %s). %s\n", c.Product.Name, c.Product.Type, c.Product.Charges, c.Product.Summary)
	}
}

// withResume appends the pending question to a detour reply.
func (e *Engine) withResume(s *model.Session, reply string) []string {
	msgs := []string{reply}
	if resume := e.resumePrompt(s); resume != "" {
		msgs = append(msgs, "Back to where we were: "+resume)
	}
	return msgs
}
