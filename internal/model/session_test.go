package model

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/suitability-engine/internal/catalog"
)

func TestNewSession(t *testing.T) {
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	s := NewSession(now)

	assert.NotEmpty(t, s.ID)
	assert.Equal(t, catalog.StageExplanation, s.Stage)
	assert.Equal(t, now, s.CreatedAt)
	assert.Equal(t, now, s.UpdatedAt)
	assert.Empty(t, s.Events)
}

func TestSetStageRejectsUnknown(t *testing.T) {
	now := time.Now()
	s := NewSession(now)

	assert.False(t, s.SetStage("archived", now))
	assert.Equal(t, catalog.StageExplanation, s.Stage)

	assert.True(t, s.SetStage(catalog.StageOnboarding, now))
	assert.Equal(t, catalog.StageOnboarding, s.Stage)
}

func TestGuardrailSuppression(t *testing.T) {
	now := time.Now()
	s := NewSession(now)

	// First trigger appends.
	assert.True(t, s.AppendGuardrail(GuardrailRiskCapacityOverride, "risk 6 with low capacity", now))
	require.Len(t, s.Data.GuardrailTriggers, 1)

	// A duplicate while the first is unconfirmed is suppressed.
	assert.False(t, s.AppendGuardrail(GuardrailRiskCapacityOverride, "risk 7 with low capacity", now))
	assert.Len(t, s.Data.GuardrailTriggers, 1)

	// A different type is unaffected.
	assert.True(t, s.AppendGuardrail(GuardrailRiskHorizonWarning, "risk 6 with a 2-year horizon", now))
	assert.Len(t, s.Data.GuardrailTriggers, 2)

	// Confirming clears the suppression; a fresh qualifying combination
	// re-triggers as a new entry.
	assert.True(t, s.ConfirmGuardrail(GuardrailRiskCapacityOverride, now))
	assert.True(t, s.Data.GuardrailTriggers[0].Confirmed)
	require.NotNil(t, s.Data.GuardrailTriggers[0].ConfirmedAt)

	assert.True(t, s.AppendGuardrail(GuardrailRiskCapacityOverride, "risk 7 with low capacity", now))
	assert.Len(t, s.Data.GuardrailTriggers, 3)
}

func TestConfirmGuardrailWithoutPending(t *testing.T) {
	s := NewSession(time.Now())
	assert.False(t, s.ConfirmGuardrail(GuardrailRiskCapacityOverride, time.Now()))
}

func TestResolveGuardrailSettlesPendingEntry(t *testing.T) {
	now := time.Now()
	s := NewSession(now)

	require.True(t, s.AppendGuardrail(GuardrailRiskCapacityOverride, "risk 6 with low capacity", now))
	assert.True(t, s.HasUnconfirmedGuardrail(GuardrailRiskCapacityOverride))

	assert.True(t, s.ResolveGuardrail(GuardrailRiskCapacityOverride, now))
	assert.False(t, s.HasUnconfirmedGuardrail(GuardrailRiskCapacityOverride))
	assert.True(t, s.Data.GuardrailTriggers[0].Resolved)
	assert.False(t, s.Data.GuardrailTriggers[0].Confirmed)
	require.NotNil(t, s.Data.GuardrailTriggers[0].ResolvedAt)

	// A settled entry no longer suppresses a fresh qualifying combination.
	assert.True(t, s.AppendGuardrail(GuardrailRiskCapacityOverride, "risk 7 with low capacity", now))
	assert.Len(t, s.Data.GuardrailTriggers, 2)

	// Nothing pending of this type, so there is nothing to resolve.
	assert.False(t, s.ResolveGuardrail(GuardrailRiskHorizonWarning, now))
}

func TestSessionRoundTripsThroughJSON(t *testing.T) {
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	s := NewSession(now)
	s.Data.ClientProfile.ClientType = "individual"
	s.Data.ClientProfile.RiskTolerance = 4
	s.Context.OnboardingStep = 3
	s.AppendEvent(Event{ID: "e1", Author: AuthorClient, Type: TypeMessage, Content: EventContent{Text: "hello"}, CreatedAt: now})

	raw, err := json.Marshal(s)
	require.NoError(t, err)

	var got Session
	require.NoError(t, json.Unmarshal(raw, &got))
	assert.Equal(t, s.ID, got.ID)
	assert.Equal(t, 3, got.Context.OnboardingStep)
	assert.Equal(t, "individual", got.Data.ClientProfile.ClientType)
	require.Len(t, got.Events, 1)
	assert.Equal(t, "hello", got.Events[0].Content.Text)
}
