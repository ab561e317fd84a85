package engine

import (
	"github.com/sells-group/suitability-engine/internal/catalog"
	"github.com/sells-group/suitability-engine/internal/lexical"
	"github.com/sells-group/suitability-engine/internal/model"
)

const focusVsImprovers = "The short version: Focus funds hold assets that are already sustainable against a credible standard, while Improvers funds hold assets that are not sustainable yet but are being actively pushed to get there through manager stewardship. Focus buys today's leaders; Improvers backs tomorrow's."

// handleEducation runs the disclosure-pack acknowledgement with inline
// label lookups and the optional Focus-vs-Improvers comparison branch.
func (e *Engine) handleEducation(s *model.Session, text string) ([]string, bool) {
	// Label-by-name lookups are answered inline at any phase of this stage.
	if names := lexical.FindPathways(text); len(names) > 0 && !lexical.IsAffirmative(text) {
		msgs := make([]string, 0, len(names)+1)
		for _, name := range names {
			msgs = append(msgs, catalog.PathwayDetails[name])
		}
		return append(msgs, stepQuestion(educationQuestions, s.Context.EducationPhase)), true
	}

	switch s.Context.EducationPhase {
	case 0:
		if lexical.IsAffirmative(text) {
			now := e.now()
			s.Data.Education.PackAcknowledged = true
			s.Data.Education.Timestamp = &now
			s.Context.EducationPhase = 1
			return []string{educationQuestions[1]}, true
		}
		if lexical.IsNegative(text) {
			return []string{
				"Take whatever time you need with the pack. Ask me about Focus, Improvers, Impact, or Mixed Goals by name whenever you like.",
			}, true
		}
		return nil, false

	case 1:
		if lexical.IsAffirmative(text) {
			s.Data.Education.FocusVsImproversShown = true
			return e.completeEducation(s, focusVsImprovers), true
		}
		if lexical.IsNegative(text) {
			return e.completeEducation(s, ""), true
		}
		return nil, false

	default:
		return e.completeEducation(s, ""), true
	}
}

// completeEducation transitions to the options stage.
func (e *Engine) completeEducation(s *model.Session, extra string) []string {
	msgs := []string{antiGreenwashingDisclaimer, optionsQuestions[0]}
	if extra != "" {
		msgs = append([]string{extra}, msgs...)
	}
	s.Context.EducationPhase = len(educationQuestions)
	return e.moveToStage(s, catalog.StageOptions, msgs...)
}

const antiGreenwashingDisclaimer = "One thing before we capture preferences: under the FCA's anti-greenwashing rule, any sustainability claim a product makes must be fair, clear, and not misleading. If a claim ever sounds too good, ask about the evidence behind it."
