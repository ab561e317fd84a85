package compliance

import (
	"context"
	"fmt"
	"regexp"
	"strings"
)

// stubGuidance routes a question summary to a canned, deterministic answer.
// Checked in order; first match wins.
var stubGuidance = []struct {
	pattern *regexp.Regexp
	answer  string
}{
	{
		regexp.MustCompile(`(?i)pathway|label`),
		"here's what we can confirm right now: your current sustainability preferences remain as recorded. Any updates will be reviewed with you before changes are made.",
	},
	{
		regexp.MustCompile(`(?i)cost|fee|charge`),
		"we've noted your question about charges. We'll confirm fee calculations against the disclosure pack and respond once the live assistant is available.",
	},
	{
		regexp.MustCompile(`(?i)risk|atr|capacity`),
		"the documented risk profile and capacity for loss stay unchanged. We'll revisit suitability if you flag new information when the adviser follows up.",
	},
	{
		regexp.MustCompile(`(?i)esg|sustainab|impact|sdg`),
		"the ESG preferences you've captured so far remain valid. We'll provide any extra disclosures about fund coverage during the adviser review.",
	},
}

var whitespace = regexp.MustCompile(`\s+`)

// StubResponder is the deterministic offline responder. It is also the
// fallback target when the live responder fails with a 401.
type StubResponder struct {
	// Note, when set, is appended to the reply's compliance notes so the
	// audit trail records why the stub answered.
	Note string
	// ReplyPrefix, when set, prefixes the canned guidance.
	ReplyPrefix string
}

// Respond implements Responder deterministically and never fails.
func (r *StubResponder) Respond(_ context.Context, payload Payload) (*Reply, error) {
	summary := summariseLastUserMessage(payload)

	reply := selectGuidance(summary)
	if r.ReplyPrefix != "" {
		reply = strings.TrimSpace(r.ReplyPrefix) + " " + reply
	}

	out := &Reply{Reply: reply}
	if summary != "" {
		out.Compliance.EducationalRequests = []string{
			"Free-form question logged for adviser review: " + summary,
		}
	}
	if r.Note != "" {
		out.Compliance.Notes = []string{r.Note}
	}
	return out, nil
}

func selectGuidance(summary string) string {
	if summary == "" {
		return "I've recorded this for adviser review and will provide a detailed answer once the live assistant is back online."
	}
	for _, g := range stubGuidance {
		if g.pattern.MatchString(summary) {
			return g.answer
		}
	}
	return fmt.Sprintf("I've logged your question about %q and the adviser team will respond with a full answer shortly.", summary)
}

func summariseLastUserMessage(payload Payload) string {
	for i := len(payload.Messages) - 1; i >= 0; i-- {
		if payload.Messages[i].Role == RoleUser {
			return truncate(whitespace.ReplaceAllString(strings.TrimSpace(payload.Messages[i].Content), " "), 200)
		}
	}
	return ""
}

// truncate caps text at n runes. Rune-based so multi-byte characters are
// never split.
func truncate(text string, n int) string {
	runes := []rune(text)
	if len(runes) <= n {
		return text
	}
	return string(runes[:n-1]) + "…"
}
