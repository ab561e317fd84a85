package model

import "time"

// SessionData is the durable business-domain record. The four log slices
// are append-only and grow monotonically; every other field group is
// overwritten in place.
type SessionData struct {
	Explanation         ExplanationRecord         `json:"explanation_shown"`
	ClientProfile       ClientProfile             `json:"client_profile"`
	Consent             ConsentRecord             `json:"consent"`
	Education           EducationRecord           `json:"education"`
	Preferences         SustainabilityPreferences `json:"sustainability_preferences"`
	AdviceOutcome       AdviceOutcome             `json:"advice_outcome"`
	SummaryConfirmation SummaryConfirmation       `json:"summary_confirmation"`
	Report              ReportRecord              `json:"report"`

	GuardrailTriggers   []GuardrailTrigger   `json:"guardrail_triggers"`
	EducationalRequests []EducationalRequest `json:"educational_requests"`
	ExtraQuestions      []ExtraQuestion      `json:"extra_questions"`
	MatchQueries        []MatchQuery         `json:"match_queries"`
	Notes               []string             `json:"notes"`
}

// ExplanationRecord marks that the session explainer was shown, exactly
// once, with a timestamp.
type ExplanationRecord struct {
	Shown     bool       `json:"shown"`
	Timestamp *time.Time `json:"timestamp,omitempty"`
}

// FinancialDisclosure records the optional financial details opt-in.
// Decided distinguishes "declined" from "not yet asked".
type FinancialDisclosure struct {
	Decided  bool   `json:"decided"`
	Provided bool   `json:"provided"`
	Details  string `json:"details,omitempty"`
}

// ClientProfile is the suitability profile captured during onboarding.
type ClientProfile struct {
	ClientType       string              `json:"client_type,omitempty"`
	Objectives       string              `json:"objectives,omitempty"`
	HorizonYears     int                 `json:"horizon_years,omitempty"`
	RiskTolerance    int                 `json:"risk_tolerance,omitempty"`
	CapacityForLoss  string              `json:"capacity_for_loss,omitempty"`
	LiquidityNeeds   string              `json:"liquidity_needs,omitempty"`
	KnowledgeSummary string              `json:"knowledge_summary,omitempty"`
	Financial        FinancialDisclosure `json:"financial"`
}

// ConsentGrant is a single recorded consent decision.
type ConsentGrant struct {
	Decided   bool       `json:"decided"`
	Granted   bool       `json:"granted"`
	Timestamp *time.Time `json:"timestamp,omitempty"`
}

// FutureContact extends a consent grant with the contact purpose that must
// be recorded whenever the consent is given.
type FutureContact struct {
	ConsentGrant
	Purpose string `json:"purpose,omitempty"`
}

// ConsentRecord covers the four-step consent capture.
type ConsentRecord struct {
	DataProcessing ConsentGrant  `json:"data_processing"`
	EDelivery      ConsentGrant  `json:"e_delivery"`
	FutureContact  FutureContact `json:"future_contact"`
}

// EducationRecord tracks the disclosure-pack acknowledgement.
type EducationRecord struct {
	PackAcknowledged      bool       `json:"pack_acknowledged"`
	Timestamp             *time.Time `json:"timestamp,omitempty"`
	FocusVsImproversShown bool       `json:"focus_vs_improvers_shown"`
}

// PreferenceLabel is one selected SDR label, optionally with a percentage
// allocation. Allocations across all selected labels sum to 100 when
// present.
type PreferenceLabel struct {
	Name          string `json:"name"`
	AllocationPct *int   `json:"allocation_pct,omitempty"`
}

// ExclusionRecord is a sector exclusion with an optional revenue threshold.
// Fossil-fuel exclusions must carry a threshold.
type ExclusionRecord struct {
	Sector       string   `json:"sector"`
	ThresholdPct *float64 `json:"threshold_pct,omitempty"`
}

// SustainabilityPreferences is the SDR preference record captured during
// the options stage.
type SustainabilityPreferences struct {
	PreferenceLevel       string            `json:"preference_level,omitempty"`
	Labels                []PreferenceLabel `json:"labels,omitempty"`
	Themes                []string          `json:"themes,omitempty"`
	Exclusions            []ExclusionRecord `json:"exclusions,omitempty"`
	ImpactGoals           []string          `json:"impact_goals,omitempty"`
	EngagementImportance  string            `json:"engagement_importance,omitempty"`
	ReportingFrequency    string            `json:"reporting_frequency_pref,omitempty"`
	TradeoffTolerance     string            `json:"tradeoff_tolerance,omitempty"`
	AntiGreenwashingShown bool              `json:"anti_greenwashing_shown"`
}

// HasImpactLabel reports whether any selected label carries the impact
// cross-field requirements.
func (p SustainabilityPreferences) HasImpactLabel(isImpact func(string) bool) bool {
	for _, l := range p.Labels {
		if isImpact(l.Name) {
			return true
		}
	}
	return false
}

// AdviceOutcome holds the adviser-facing narrative.
type AdviceOutcome struct {
	AdviserNotes string `json:"adviser_notes,omitempty"`
}

// SummaryConfirmation gates report generation on an explicit client
// confirmation of the captured summary.
type SummaryConfirmation struct {
	ClientSummaryConfirmed bool       `json:"client_summary_confirmed"`
	Timestamp              *time.Time `json:"timestamp,omitempty"`
}

// ReportRecord is the report metadata written once generation succeeds.
type ReportRecord struct {
	Status      string     `json:"status,omitempty"`
	Version     string     `json:"version,omitempty"`
	Preview     string     `json:"preview,omitempty"`
	Hash        string     `json:"hash,omitempty"`
	GeneratedAt *time.Time `json:"generated_at,omitempty"`
}

// Guardrail trigger types.
const (
	GuardrailRiskHorizonWarning   = "risk_horizon_warning"
	GuardrailRiskCapacityOverride = "risk_capacity_override"
)

// GuardrailTrigger is a durable compliance log entry. Blocking triggers
// stay unconfirmed until the client explicitly acknowledges them, or
// resolved when revised answers mean the trigger condition no longer holds.
type GuardrailTrigger struct {
	Type        string     `json:"type"`
	Detail      string     `json:"detail"`
	Confirmed   bool       `json:"confirmed"`
	Resolved    bool       `json:"resolved,omitempty"`
	Timestamp   time.Time  `json:"timestamp"`
	ConfirmedAt *time.Time `json:"confirmed_at,omitempty"`
	ResolvedAt  *time.Time `json:"resolved_at,omitempty"`
}

// EducationalRequest logs an educational detour.
type EducationalRequest struct {
	Topic     string    `json:"topic"`
	Timestamp time.Time `json:"timestamp"`
}

// ExtraQuestion logs a rationale detour or an escalated free-form question.
type ExtraQuestion struct {
	Question  string    `json:"question"`
	Stage     string    `json:"stage"`
	Step      int       `json:"step"`
	Timestamp time.Time `json:"timestamp"`
}

// MatchQuery logs one investment-matching invocation for audit.
type MatchQuery struct {
	Query        string    `json:"query"`
	CandidateIDs []string  `json:"candidate_ids"`
	Timestamp    time.Time `json:"timestamp"`
}
