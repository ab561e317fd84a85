package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStageOrder(t *testing.T) {
	assert.Equal(t, StageExplanation, Stages[0])
	assert.Equal(t, StageComplete, Stages[len(Stages)-1])

	for i, stage := range Stages {
		assert.True(t, IsStage(stage))
		assert.Equal(t, i, StageIndex(stage))
	}
	assert.False(t, IsStage("archived"))
	assert.Equal(t, -1, StageIndex("archived"))
}

func TestStagePrompts(t *testing.T) {
	for _, stage := range Stages {
		assert.NotEmpty(t, StagePrompt(stage), "stage %s needs a prompt", stage)
	}
	assert.Empty(t, StagePrompt("archived"))
}

func TestPathwayVocabulary(t *testing.T) {
	assert.Len(t, PathwayNames, 4)
	for _, name := range PathwayNames {
		assert.NotEmpty(t, PathwayDetails[name], "label %s needs a detail blurb", name)
		assert.NotEmpty(t, PathwayAliases[name], "label %s needs aliases", name)
	}
}

func TestIsImpactLabel(t *testing.T) {
	assert.True(t, IsImpactLabel(PathwayImpact))
	assert.True(t, IsImpactLabel(PathwayMixedGoals))
	assert.False(t, IsImpactLabel(PathwayFocus))
	assert.False(t, IsImpactLabel(PathwayImprovers))
}

func TestRationale(t *testing.T) {
	// Every scripted step has a specific rationale.
	for step := 0; step <= 8; step++ {
		assert.NotEqual(t, Rationale(StageOnboarding, step), Rationale("nowhere", 99),
			"onboarding step %d should have a specific rationale", step)
	}
	for step := 0; step <= 3; step++ {
		assert.NotEqual(t, Rationale(StageConsent, step), Rationale("nowhere", 99))
	}
	for step := 0; step <= 7; step++ {
		assert.NotEqual(t, Rationale(StageOptions, step), Rationale("nowhere", 99))
	}

	// Unknown steps fall back to the generic explanation.
	assert.Contains(t, Rationale(StageEducation, 0), "FCA")
}

func TestContains(t *testing.T) {
	assert.True(t, Contains(ClientTypes, "trust"))
	assert.False(t, Contains(ClientTypes, "Trust"))
}
