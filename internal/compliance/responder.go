// Package compliance handles escalation of unclassified free text to an
// external compliance responder: it builds the chat transcript from session
// history, defines the responder contract, and normalises replies into
// session side effects.
package compliance

import (
	"context"
	"errors"
	"fmt"
)

// Chat roles used in responder payloads.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// ChatMessage is one turn in a responder transcript.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Payload is the responder request: a full transcript ending with the
// client's current text.
type Payload struct {
	Messages []ChatMessage `json:"messages"`
}

// Sidecar carries the structured compliance side effects a responder may
// return alongside its reply.
type Sidecar struct {
	EducationalRequests []string `json:"educational_requests,omitempty"`
	ExtraQuestions      []string `json:"extra_questions,omitempty"`
	Notes               []string `json:"notes,omitempty"`
}

// Reply is the responder response contract.
type Reply struct {
	Reply      string  `json:"reply"`
	Compliance Sidecar `json:"compliance,omitempty"`
}

// Responder answers an escalated free-form client query. Implementations
// must signal unauthorized failures with a StatusError carrying 401 so the
// engine's fallback policy can engage.
type Responder interface {
	Respond(ctx context.Context, payload Payload) (*Reply, error)
}

// ResponderFunc adapts a function to the Responder interface.
type ResponderFunc func(ctx context.Context, payload Payload) (*Reply, error)

// Respond implements Responder.
func (f ResponderFunc) Respond(ctx context.Context, payload Payload) (*Reply, error) {
	return f(ctx, payload)
}

// StatusError is a responder failure with an HTTP-like status code.
type StatusError struct {
	Code int
	Msg  string
}

func (e *StatusError) Error() string {
	if e.Msg != "" {
		return fmt.Sprintf("compliance responder: %s (status %d)", e.Msg, e.Code)
	}
	return fmt.Sprintf("compliance responder: status %d", e.Code)
}

// IsUnauthorized reports whether err is a 401-class responder failure
// anywhere in the chain.
func IsUnauthorized(err error) bool {
	var se *StatusError
	return errors.As(err, &se) && se.Code == 401
}
