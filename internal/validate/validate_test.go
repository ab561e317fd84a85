package validate

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/suitability-engine/internal/catalog"
	"github.com/sells-group/suitability-engine/internal/model"
)

func intPtr(i int) *int              { return &i }
func floatPtr(f float64) *float64    { return &f }
func timePtr(t time.Time) *time.Time { return &t }

// completeSession builds a session that passes the full battery.
func completeSession() *model.Session {
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	s := model.NewSession(now)
	s.Data.Explanation = model.ExplanationRecord{Shown: true, Timestamp: timePtr(now)}
	s.Data.ClientProfile = model.ClientProfile{
		ClientType:       "individual",
		Objectives:       "growth",
		HorizonYears:     10,
		RiskTolerance:    4,
		CapacityForLoss:  "medium",
		LiquidityNeeds:   "none expected",
		KnowledgeSummary: "holds funds in an ISA for five years",
		Financial:        model.FinancialDisclosure{Decided: true, Provided: false},
	}
	s.Data.Consent = model.ConsentRecord{
		DataProcessing: model.ConsentGrant{Decided: true, Granted: true, Timestamp: timePtr(now)},
		EDelivery:      model.ConsentGrant{Decided: true, Granted: true, Timestamp: timePtr(now)},
	}
	s.Data.Preferences = model.SustainabilityPreferences{
		PreferenceLevel:       "high_level",
		Labels:                []model.PreferenceLabel{{Name: catalog.PathwayFocus}},
		AntiGreenwashingShown: true,
	}
	s.Data.SummaryConfirmation = model.SummaryConfirmation{ClientSummaryConfirmed: true, Timestamp: timePtr(now)}
	return s
}

func TestValidateCompleteSession(t *testing.T) {
	res := Validate(completeSession())
	assert.True(t, res.Valid, "unexpected issues: %v", res.Issues)
	assert.Empty(t, res.Issues)
}

func TestValidateCollectsEveryIssue(t *testing.T) {
	s := model.NewSession(time.Now())
	res := Validate(s)

	assert.False(t, res.Valid)
	// An empty session fails across all the major groups in one pass.
	assert.Greater(t, len(res.Issues), 8)
}

func TestValidateProfileRules(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*model.Session)
		want   string
	}{
		{"bad client type", func(s *model.Session) { s.Data.ClientProfile.ClientType = "syndicate" }, "Client type"},
		{"bad objective", func(s *model.Session) { s.Data.ClientProfile.Objectives = "speculation" }, "objective"},
		{"zero horizon", func(s *model.Session) { s.Data.ClientProfile.HorizonYears = 0 }, "horizon"},
		{"risk out of range", func(s *model.Session) { s.Data.ClientProfile.RiskTolerance = 8 }, "Risk tolerance"},
		{"bad capacity", func(s *model.Session) { s.Data.ClientProfile.CapacityForLoss = "huge" }, "Capacity for loss"},
		{"empty liquidity", func(s *model.Session) { s.Data.ClientProfile.LiquidityNeeds = " " }, "Liquidity"},
		{"undecided financial", func(s *model.Session) { s.Data.ClientProfile.Financial = model.FinancialDisclosure{} }, "financial disclosure decision"},
		{"provided without details", func(s *model.Session) {
			s.Data.ClientProfile.Financial = model.FinancialDisclosure{Decided: true, Provided: true}
		}, "Financial details"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := completeSession()
			tt.mutate(s)
			res := Validate(s)
			assert.False(t, res.Valid)
			assertIssueContains(t, res, tt.want)
		})
	}
}

func TestValidateConsentRules(t *testing.T) {
	s := completeSession()
	s.Data.Consent.DataProcessing.Granted = false
	res := Validate(s)
	assertIssueContains(t, res, "data processing")

	s = completeSession()
	s.Data.Consent.DataProcessing.Timestamp = nil
	res = Validate(s)
	assertIssueContains(t, res, "timestamp")

	s = completeSession()
	s.Data.Consent.FutureContact.ConsentGrant = model.ConsentGrant{Decided: true, Granted: true}
	res = Validate(s)
	assertIssueContains(t, res, "contact purpose")
}

func TestValidatePreferenceRules(t *testing.T) {
	s := completeSession()
	s.Data.Preferences.Labels = nil
	res := Validate(s)
	assertIssueContains(t, res, "At least one SDR label")

	s = completeSession()
	s.Data.Preferences.PreferenceLevel = "none"
	s.Data.Preferences.Labels = nil
	assert.True(t, Validate(s).Valid)

	s = completeSession()
	s.Data.Preferences.PreferenceLevel = "detailed"
	res = Validate(s)
	assertIssueContains(t, res, "theme")
	assertIssueContains(t, res, "engagement")
	assertIssueContains(t, res, "trade-off")

	s = completeSession()
	s.Data.Preferences.Labels = []model.PreferenceLabel{{Name: "Sustainability: Platinum"}}
	res = Validate(s)
	assertIssueContains(t, res, "not a recognised SDR label")
}

func TestValidateAllocationSum(t *testing.T) {
	s := completeSession()
	s.Data.Preferences.Labels = []model.PreferenceLabel{
		{Name: catalog.PathwayFocus, AllocationPct: intPtr(60)},
		{Name: catalog.PathwayImprovers, AllocationPct: intPtr(30)},
	}
	res := Validate(s)
	assertIssueContains(t, res, "sum to 100")

	s.Data.Preferences.Labels[1].AllocationPct = intPtr(40)
	assert.True(t, Validate(s).Valid)
}

func TestValidateExclusions(t *testing.T) {
	s := completeSession()
	s.Data.Preferences.Exclusions = []model.ExclusionRecord{
		{Sector: "fossil fuels"},
	}
	res := Validate(s)
	assertIssueContains(t, res, "fossil-fuel")

	s.Data.Preferences.Exclusions[0].ThresholdPct = floatPtr(5)
	assert.True(t, Validate(s).Valid)

	s.Data.Preferences.Exclusions = append(s.Data.Preferences.Exclusions,
		model.ExclusionRecord{Sector: "tobacco", ThresholdPct: floatPtr(-1)})
	res = Validate(s)
	assertIssueContains(t, res, "must not be negative")
}

func TestValidateImpactCrossFieldRules(t *testing.T) {
	for _, label := range []string{catalog.PathwayImpact, catalog.PathwayMixedGoals} {
		s := completeSession()
		s.Data.Preferences.Labels = []model.PreferenceLabel{{Name: label}}
		res := Validate(s)
		assert.False(t, res.Valid, "label %s", label)
		assertIssueContains(t, res, "impact goal")
		assertIssueContains(t, res, "reporting frequency")

		s.Data.Preferences.ImpactGoals = []string{"reduce carbon emissions"}
		s.Data.Preferences.ReportingFrequency = "annual"
		assert.True(t, Validate(s).Valid, "label %s", label)
	}
}

func TestValidateAntiGreenwashingGate(t *testing.T) {
	s := completeSession()
	s.Data.Preferences.AntiGreenwashingShown = false
	res := Validate(s)
	assertIssueContains(t, res, "anti-greenwashing")
}

func TestValidateSummaryGate(t *testing.T) {
	s := completeSession()
	s.Data.SummaryConfirmation = model.SummaryConfirmation{}
	res := Validate(s)
	assertIssueContains(t, res, "confirm the captured summary")
}

func TestIsFossilFuelSector(t *testing.T) {
	assert.True(t, IsFossilFuelSector("fossil fuels"))
	assert.True(t, IsFossilFuelSector("Fossil-Fuel producers"))
	assert.False(t, IsFossilFuelSector("tobacco"))
}

func assertIssueContains(t *testing.T, res Result, fragment string) {
	t.Helper()
	for _, issue := range res.Issues {
		if strings.Contains(issue, fragment) {
			return
		}
	}
	require.Failf(t, "missing issue", "no issue containing %q in %v", fragment, res.Issues)
}
