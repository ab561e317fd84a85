// Package engine implements the conversation state machine: per-stage
// handlers, guardrail logic, detour dispatch, compliance escalation, and
// the report gate. The engine mutates a session in place; the caller
// persists it at the end of every turn.
package engine

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/suitability-engine/internal/catalog"
	"github.com/sells-group/suitability-engine/internal/compliance"
	"github.com/sells-group/suitability-engine/internal/model"
	"github.com/sells-group/suitability-engine/internal/report"
)

// Response is what a turn returns to the caller.
type Response struct {
	Messages   []string            `json:"messages"`
	Compliance *compliance.Sidecar `json:"compliance,omitempty"`
}

// Engine drives sessions through the canonical stage flow. It holds no
// per-session state; a single Engine serves any number of sessions.
type Engine struct {
	responder     compliance.Responder
	strict        bool
	reportVersion string
	now           func() time.Time
}

// Option configures an Engine.
type Option func(*Engine)

// WithResponder swaps the compliance responder. The default is the
// deterministic offline stub.
func WithResponder(r compliance.Responder) Option {
	return func(e *Engine) { e.responder = r }
}

// WithStrictCompliance makes responder failures fatal instead of falling
// back to the stub on unauthorized errors.
func WithStrictCompliance(strict bool) Option {
	return func(e *Engine) { e.strict = strict }
}

// WithReportVersion sets the version stamped on generated reports.
func WithReportVersion(v string) Option {
	return func(e *Engine) { e.reportVersion = v }
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

// New creates an Engine.
func New(opts ...Option) *Engine {
	e := &Engine{
		responder:     &compliance.StubResponder{},
		reportVersion: "v1.0",
		now:           time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Start applies the initial stage's entry side effects to a fresh session
// and returns the opening narration.
func (e *Engine) Start(s *model.Session) Response {
	e.applyStageEntry(s, s.Stage)
	msgs := []string{catalog.StagePrompt(s.Stage)}
	e.appendAssistant(s, msgs)
	return Response{Messages: msgs}
}

// HandleEvent is the turn ingestion entry point: a tagged dispatch on the
// event's author and type. Every path appends the inbound event before
// dispatching, so the audit log always records the turn.
func (e *Engine) HandleEvent(ctx context.Context, s *model.Session, ev model.Event) (Response, error) {
	if ev.ID == "" {
		ev.ID = uuid.New().String()
	}
	ev.Stage = s.Stage
	ev.CreatedAt = e.now()

	switch {
	case ev.Author == model.AuthorClient && ev.Type == model.TypeMessage:
		return e.HandleClientTurn(ctx, s, ev.Content.Text)

	case ev.Author == model.AuthorClient && ev.Type == model.TypeDataUpdate:
		s.AppendEvent(ev)
		resp := e.handleDataUpdate(s, ev.Content.Patch)
		e.appendAssistant(s, resp.Messages)
		s.Touch(e.now())
		return resp, nil

	case ev.Author == model.AuthorAdviser && ev.Type == model.TypeNote:
		s.AppendEvent(ev)
		if text := strings.TrimSpace(ev.Content.Text); text != "" {
			s.Data.Notes = append(s.Data.Notes, text)
		}
		s.Touch(e.now())
		return Response{Messages: []string{"Adviser note recorded."}}, nil

	default:
		s.AppendEvent(ev)
		return Response{}, nil
	}
}

// HandleClientTurn processes one free-text client turn: detours first, then
// the active stage handler, then compliance escalation when the handler
// could not classify the text.
func (e *Engine) HandleClientTurn(ctx context.Context, s *model.Session, text string) (Response, error) {
	text = strings.TrimSpace(text)
	s.AppendEvent(model.Event{
		ID:        uuid.New().String(),
		Author:    model.AuthorClient,
		Type:      model.TypeMessage,
		Stage:     s.Stage,
		Content:   model.EventContent{Text: text},
		CreatedAt: e.now(),
	})

	if s.Stage == catalog.StageComplete {
		resp := Response{Messages: []string{catalog.StagePrompt(catalog.StageComplete)}}
		e.appendAssistant(s, resp.Messages)
		return resp, nil
	}

	if msgs, matched := e.tryDetours(s, text); matched {
		e.appendAssistant(s, msgs)
		s.Touch(e.now())
		return Response{Messages: msgs}, nil
	}

	msgs, handled := e.dispatchStage(s, text)
	if !handled {
		resp, err := e.escalate(ctx, s, text)
		if err != nil {
			return Response{}, err
		}
		e.appendAssistant(s, resp.Messages)
		s.Touch(e.now())
		return resp, nil
	}

	e.appendAssistant(s, msgs)
	s.Touch(e.now())
	return Response{Messages: msgs}, nil
}

// dispatchStage routes a free-text turn to the active stage handler.
func (e *Engine) dispatchStage(s *model.Session, text string) ([]string, bool) {
	switch s.Stage {
	case catalog.StageExplanation:
		return e.handleExplanation(s, text)
	case catalog.StageOnboarding:
		return e.handleOnboarding(s, text)
	case catalog.StageConsent:
		return e.handleConsent(s, text)
	case catalog.StageEducation:
		return e.handleEducation(s, text)
	case catalog.StageOptions:
		return e.handleOptions(s, text)
	case catalog.StageConfirmation:
		return e.handleConfirmation(s, text)
	case catalog.StageReport:
		return e.moveToStage(s, catalog.StageDelivery), true
	case catalog.StageDelivery:
		return e.moveToStage(s, catalog.StageComplete), true
	default:
		return nil, false
	}
}

// handleDataUpdate routes a structured submission to the stage's batch
// handler. Payload groups for other stages are rejected rather than
// silently merged.
func (e *Engine) handleDataUpdate(s *model.Session, patch *model.DataPatch) Response {
	if patch == nil {
		return Response{Messages: []string{"The update was empty. Nothing has been changed."}}
	}

	// Completed sessions are immutable, adviser narrative included.
	if s.Stage == catalog.StageComplete {
		return Response{Messages: []string{catalog.StagePrompt(catalog.StageComplete)}}
	}

	if patch.AdviserNotes != nil {
		s.Data.AdviceOutcome.AdviserNotes = strings.TrimSpace(*patch.AdviserNotes)
		return Response{Messages: []string{"Adviser narrative updated."}}
	}

	switch s.Stage {
	case catalog.StageExplanation:
		if patch.Ready != nil && *patch.Ready {
			return Response{Messages: e.advanceToOnboarding(s)}
		}
		return Response{Messages: []string{"Reply with ready: true once you would like to begin."}}

	case catalog.StageOnboarding:
		return e.handleOnboardingUpdate(s, patch.Onboarding)

	case catalog.StageConsent:
		return e.handleConsentUpdate(s, patch.Consent)

	case catalog.StageOptions:
		return e.handleOptionsUpdate(s, patch.Options)

	default:
		return Response{Messages: []string{"This stage does not accept structured updates. " + e.resumePrompt(s)}}
	}
}

// moveToStage is the single stage-transition primitive: it validates the
// target, applies stage-entry side effects, and returns the stage prompt
// prepended to any extra messages.
func (e *Engine) moveToStage(s *model.Session, stage string, extra ...string) []string {
	if !catalog.IsStage(stage) {
		zap.L().Error("engine: unknown stage transition rejected",
			zap.String("session_id", s.ID),
			zap.String("target", stage),
		)
		return extra
	}

	s.SetStage(stage, e.now())
	e.applyStageEntry(s, stage)

	zap.L().Info("engine: stage transition",
		zap.String("session_id", s.ID),
		zap.String("stage", stage),
	)

	msgs := make([]string, 0, len(extra)+1)
	if prompt := catalog.StagePrompt(stage); prompt != "" {
		msgs = append(msgs, prompt)
	}
	return append(msgs, extra...)
}

// applyStageEntry applies a stage's one-shot entry side effects.
func (e *Engine) applyStageEntry(s *model.Session, stage string) {
	switch stage {
	case catalog.StageExplanation:
		if !s.Data.Explanation.Shown {
			now := e.now()
			s.Data.Explanation = model.ExplanationRecord{Shown: true, Timestamp: &now}
		}
	case catalog.StageOptions:
		// The anti-greenwashing disclaimer accompanies every preference
		// capture.
		s.Data.Preferences.AntiGreenwashingShown = true
	}
}

// escalate hands unclassified free text to the compliance responder and
// folds the reply back into the session. The inbound turn is already in
// the event log, so the transcript ends with it.
func (e *Engine) escalate(ctx context.Context, s *model.Session, text string) (Response, error) {
	payload := compliance.BuildTranscript(s)

	reply, err := e.responder.Respond(ctx, payload)
	if err != nil {
		if compliance.IsUnauthorized(err) && !e.strict {
			zap.L().Warn("engine: compliance responder unauthorized, using stub fallback",
				zap.String("session_id", s.ID),
				zap.Error(err),
			)
			fallback := &compliance.StubResponder{
				Note:        "Fallback compliance stub used after an authorization failure (status 401)",
				ReplyPrefix: "I couldn't reach the compliance assistant due to an authorization error, but",
			}
			reply, err = fallback.Respond(ctx, payload)
		}
		if err != nil {
			return Response{}, eris.Wrap(err, "engine: compliance escalation")
		}
	}

	now := e.now()
	for _, topic := range reply.Compliance.EducationalRequests {
		s.Data.EducationalRequests = append(s.Data.EducationalRequests, model.EducationalRequest{
			Topic:     topic,
			Timestamp: now,
		})
	}
	for _, q := range reply.Compliance.ExtraQuestions {
		s.Data.ExtraQuestions = append(s.Data.ExtraQuestions, model.ExtraQuestion{
			Question:  q,
			Stage:     s.Stage,
			Step:      e.stageStep(s),
			Timestamp: now,
		})
	}
	s.Data.Notes = append(s.Data.Notes, reply.Compliance.Notes...)

	msgs := []string{reply.Reply}
	if resume := e.resumePrompt(s); resume != "" {
		msgs = append(msgs, resume)
	}

	sidecar := reply.Compliance
	return Response{Messages: msgs, Compliance: &sidecar}, nil
}

// appendAssistant records the assistant's reply in the event log.
func (e *Engine) appendAssistant(s *model.Session, msgs []string) {
	if len(msgs) == 0 {
		return
	}
	s.AppendEvent(model.Event{
		ID:        uuid.New().String(),
		Author:    model.AuthorAssistant,
		Type:      model.TypeMessage,
		Stage:     s.Stage,
		Content:   model.EventContent{Text: strings.Join(msgs, "\n")},
		CreatedAt: e.now(),
	})
}

// stageStep returns the active stage's current step counter.
func (e *Engine) stageStep(s *model.Session) int {
	switch s.Stage {
	case catalog.StageOnboarding:
		return s.Context.OnboardingStep
	case catalog.StageConsent:
		return s.Context.ConsentStep
	case catalog.StageEducation:
		return s.Context.EducationPhase
	case catalog.StageOptions:
		return s.Context.OptionsStep
	default:
		return 0
	}
}

// generateReport runs the batch validator and, on a clean pass, invokes
// the report trigger exactly once and advances to the report stage.
func (e *Engine) generateReport(s *model.Session) []string {
	artifacts := report.Generate(s)
	now := e.now()
	s.Data.Report = model.ReportRecord{
		Status:      "draft",
		Version:     e.reportVersion,
		Preview:     artifacts.Preview,
		Hash:        artifacts.Hash,
		GeneratedAt: &now,
	}

	zap.L().Info("engine: report generated",
		zap.String("session_id", s.ID),
		zap.String("hash", artifacts.Hash),
		zap.Int("bytes", len(artifacts.ArtifactBytes)),
	)

	return e.moveToStage(s, catalog.StageReport,
		"Your report hash is "+artifacts.Hash[:12]+"… and the document is available for download.")
}
