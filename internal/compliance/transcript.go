package compliance

import (
	"fmt"
	"strings"

	"github.com/sells-group/suitability-engine/internal/model"
)

// SystemPreamble frames the responder as a compliance co-pilot for the
// suitability meeting.
const SystemPreamble = `You are an FCA Consumer Duty compliance co-pilot for a UK suitability and sustainability preference meeting.
- Answer as the assistant guiding the client through the session.
- Be transparent about guardrails and note when adviser review is required.
- Keep the client on topic with SDR, ESG, and suitability requirements.
- Always return valid JSON with a "reply" string and an optional "compliance" object holding educational_requests, extra_questions, and notes arrays.`

// BuildTranscript assembles the responder payload: the system preamble
// with a computed session summary, then the event history mapped to chat
// turns. The caller appends the inbound client message to the event log
// before escalating, so the transcript ends with the current question and
// each turn appears exactly once.
func BuildTranscript(s *model.Session) Payload {
	msgs := []ChatMessage{{
		Role:    RoleSystem,
		Content: SystemPreamble + "\n\nSession summary:\n" + SummariseSession(s),
	}}

	for _, e := range s.Events {
		if e.Type != model.TypeMessage || e.Content.Text == "" {
			continue
		}
		role := RoleUser
		if e.Author == model.AuthorAssistant {
			role = RoleAssistant
		}
		msgs = append(msgs, ChatMessage{Role: role, Content: e.Content.Text})
	}

	return Payload{Messages: msgs}
}

// SummariseSession renders the domain fields the responder needs for
// grounded answers.
func SummariseSession(s *model.Session) string {
	var b strings.Builder
	p := s.Data.ClientProfile
	pref := s.Data.Preferences

	fmt.Fprintf(&b, "Stage: %s\n", s.Stage)
	fmt.Fprintf(&b, "Client type: %s; objective: %s; horizon: %d years\n",
		orUnset(p.ClientType), orUnset(p.Objectives), p.HorizonYears)
	fmt.Fprintf(&b, "Risk tolerance: %d/7; capacity for loss: %s\n",
		p.RiskTolerance, orUnset(p.CapacityForLoss))
	fmt.Fprintf(&b, "Data-processing consent: %t\n", s.Data.Consent.DataProcessing.Granted)
	fmt.Fprintf(&b, "Preference level: %s", orUnset(pref.PreferenceLevel))

	if len(pref.Labels) > 0 {
		names := make([]string, len(pref.Labels))
		for i, l := range pref.Labels {
			names[i] = l.Name
		}
		fmt.Fprintf(&b, "; labels: %s", strings.Join(names, ", "))
	}
	if len(pref.ImpactGoals) > 0 {
		fmt.Fprintf(&b, "; impact goals: %s", strings.Join(pref.ImpactGoals, ", "))
	}
	b.WriteString("\n")

	if n := len(s.Data.GuardrailTriggers); n > 0 {
		pending := 0
		for _, g := range s.Data.GuardrailTriggers {
			if !g.Confirmed && !g.Resolved {
				pending++
			}
		}
		fmt.Fprintf(&b, "Guardrails: %d logged, %d awaiting confirmation\n", n, pending)
	}

	return b.String()
}

func orUnset(s string) string {
	if s == "" {
		return "unset"
	}
	return s
}
