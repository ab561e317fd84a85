// Package model defines the session aggregate owned by the conversation
// engine: the durable business record, the transient dialogue context, and
// the append-only event log.
package model

import (
	"time"

	"github.com/google/uuid"

	"github.com/sells-group/suitability-engine/internal/catalog"
)

// Session is the root aggregate. It is owned exclusively by the engine for
// the duration of a turn and persisted unconditionally afterwards.
type Session struct {
	ID        string          `json:"id"`
	Stage     string          `json:"stage"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
	Data      SessionData     `json:"data"`
	Context   DialogueContext `json:"context"`
	Events    []Event         `json:"events"`
}

// DialogueContext is transient dialogue progress: step counters per stage
// and one-shot flags. It is not part of the durable business record but is
// persisted atomically with Data to avoid resume bugs after restarts.
type DialogueContext struct {
	OnboardingStep       int  `json:"onboarding_step"`
	ConsentStep          int  `json:"consent_step"`
	EducationPhase       int  `json:"education_phase"`
	OptionsStep          int  `json:"options_step"`
	ConfirmationAwaiting bool `json:"confirmation_awaiting"`
	RequireRiskOverride  bool `json:"require_risk_override"`
}

// NewSession creates a session at the first canonical stage with empty data
// and zeroed context.
func NewSession(now time.Time) *Session {
	return &Session{
		ID:        uuid.New().String(),
		Stage:     catalog.Stages[0],
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Touch bumps the session's modification timestamp.
func (s *Session) Touch(now time.Time) {
	s.UpdatedAt = now
}

// SetStage moves the session to a known stage. Unknown targets are ignored;
// the engine validates before calling but the aggregate enforces the
// invariant too.
func (s *Session) SetStage(stage string, now time.Time) bool {
	if !catalog.IsStage(stage) {
		return false
	}
	s.Stage = stage
	s.Touch(now)
	return true
}

// AppendEvent appends to the ordered event log.
func (s *Session) AppendEvent(e Event) {
	s.Events = append(s.Events, e)
}

// HasUnconfirmedGuardrail reports whether a pending trigger of the given
// type exists. Used for duplicate-trigger suppression: a guardrail may be
// pending at most once at a time. Confirmed and resolved entries are
// settled, so a fresh qualifying combination may trigger again.
func (s *Session) HasUnconfirmedGuardrail(kind string) bool {
	for _, g := range s.Data.GuardrailTriggers {
		if g.Type == kind && !g.Confirmed && !g.Resolved {
			return true
		}
	}
	return false
}

// AppendGuardrail logs a guardrail trigger unless an unconfirmed entry of
// the same type is already pending. Returns whether an entry was appended.
func (s *Session) AppendGuardrail(kind, detail string, now time.Time) bool {
	if s.HasUnconfirmedGuardrail(kind) {
		return false
	}
	s.Data.GuardrailTriggers = append(s.Data.GuardrailTriggers, GuardrailTrigger{
		Type:      kind,
		Detail:    detail,
		Timestamp: now,
	})
	return true
}

// ResolveGuardrail marks the pending trigger of the given type as resolved,
// for when revised answers mean the trigger condition no longer holds.
// Returns false when no pending entry exists.
func (s *Session) ResolveGuardrail(kind string, now time.Time) bool {
	for i := range s.Data.GuardrailTriggers {
		g := &s.Data.GuardrailTriggers[i]
		if g.Type == kind && !g.Confirmed && !g.Resolved {
			g.Resolved = true
			g.ResolvedAt = &now
			return true
		}
	}
	return false
}

// ConfirmGuardrail marks the pending trigger of the given type as
// confirmed. Returns false when no unconfirmed entry exists.
func (s *Session) ConfirmGuardrail(kind string, now time.Time) bool {
	for i := range s.Data.GuardrailTriggers {
		g := &s.Data.GuardrailTriggers[i]
		if g.Type == kind && !g.Confirmed {
			g.Confirmed = true
			g.ConfirmedAt = &now
			return true
		}
	}
	return false
}
