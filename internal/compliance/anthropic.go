package compliance

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/rotisserie/eris"
	"golang.org/x/time/rate"

	"github.com/sells-group/suitability-engine/pkg/anthropic"
)

// AnthropicResponder answers escalations through the Anthropic API. Calls
// are rate limited; the whole transcript is replayed on every call, so the
// limiter protects against runaway escalation loops.
type AnthropicResponder struct {
	client    anthropic.Client
	model     string
	maxTokens int64
	limiter   *rate.Limiter
}

// NewAnthropicResponder wires an Anthropic-backed responder. ratePerMin
// caps calls per minute; zero disables limiting.
func NewAnthropicResponder(client anthropic.Client, model string, maxTokens int64, ratePerMin int) *AnthropicResponder {
	var limiter *rate.Limiter
	if ratePerMin > 0 {
		limiter = rate.NewLimiter(rate.Limit(float64(ratePerMin)/60.0), ratePerMin)
	}
	return &AnthropicResponder{
		client:    client,
		model:     model,
		maxTokens: maxTokens,
		limiter:   limiter,
	}
}

// Respond implements Responder. Unauthorized API failures surface as a
// StatusError with code 401 so the engine's fallback policy can engage.
func (r *AnthropicResponder) Respond(ctx context.Context, payload Payload) (*Reply, error) {
	if r.limiter != nil {
		if err := r.limiter.Wait(ctx); err != nil {
			return nil, eris.Wrap(err, "compliance: rate limiter")
		}
	}

	req := anthropic.MessageRequest{
		Model:     r.model,
		MaxTokens: r.maxTokens,
	}
	for _, m := range payload.Messages {
		if m.Role == RoleSystem {
			req.System = m.Content
			continue
		}
		req.Messages = append(req.Messages, anthropic.Message{Role: m.Role, Content: m.Content})
	}

	resp, err := r.client.CreateMessage(ctx, req)
	if err != nil {
		if code := anthropic.StatusCode(err); code != 0 {
			return nil, &StatusError{Code: code, Msg: "anthropic call failed"}
		}
		return nil, eris.Wrap(err, "compliance: anthropic responder")
	}

	reply, err := parseReply(resp.Text)
	if err != nil {
		return nil, err
	}
	return reply, nil
}

// parseReply decodes the responder's JSON contract, tolerating code fences
// around the payload. Non-JSON text is treated as a bare reply rather than
// an error.
func parseReply(text string) (*Reply, error) {
	trimmed := strings.TrimSpace(text)
	trimmed = strings.TrimPrefix(trimmed, "```json")
	trimmed = strings.TrimPrefix(trimmed, "```")
	trimmed = strings.TrimSuffix(trimmed, "```")
	trimmed = strings.TrimSpace(trimmed)

	if strings.HasPrefix(trimmed, "{") {
		var reply Reply
		if err := json.Unmarshal([]byte(trimmed), &reply); err != nil {
			return nil, eris.Wrap(err, "compliance: decode responder reply")
		}
		if reply.Reply == "" {
			return nil, eris.New("compliance: responder returned an empty reply")
		}
		return &reply, nil
	}

	if trimmed == "" {
		return nil, eris.New("compliance: responder returned an empty reply")
	}
	return &Reply{Reply: trimmed}, nil
}
