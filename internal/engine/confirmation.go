package engine

import (
	"github.com/sells-group/suitability-engine/internal/lexical"
	"github.com/sells-group/suitability-engine/internal/model"
	"github.com/sells-group/suitability-engine/internal/validate"
)

// handleConfirmation renders the read-back, waits for an explicit yes, and
// gates report generation on a clean validation pass.
func (e *Engine) handleConfirmation(s *model.Session, text string) ([]string, bool) {
	if !s.Context.ConfirmationAwaiting {
		s.Context.ConfirmationAwaiting = true
		return []string{renderSummary(s), confirmationQuestion}, true
	}

	switch {
	case lexical.IsAffirmative(text):
		now := e.now()
		s.Data.SummaryConfirmation = model.SummaryConfirmation{
			ClientSummaryConfirmed: true,
			Timestamp:              &now,
		}

		result := validate.Validate(s)
		if !result.Valid {
			// The record is incomplete. The confirmation is rolled back so
			// the report gate stays closed until the gaps are fixed and the
			// client confirms the corrected summary.
			s.Data.SummaryConfirmation = model.SummaryConfirmation{}
			msgs := []string{"Thank you. Before I can produce your report a few items still need attention:"}
			msgs = append(msgs, result.Issues...)
			return append(msgs, "Your adviser can correct these, or you can give me the missing answers now."), true
		}

		s.Context.ConfirmationAwaiting = false
		return e.generateReport(s), true

	case lexical.IsNegative(text):
		return []string{
			"No problem. Tell me what needs to change, or your adviser can submit a correction, and then we'll review the summary again.",
		}, true

	default:
		return nil, false
	}
}
