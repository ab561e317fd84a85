package model

import "time"

// Event authors.
const (
	AuthorClient    = "client"
	AuthorAssistant = "assistant"
	AuthorAdviser   = "adviser"
	AuthorSystem    = "system"
)

// Event types.
const (
	TypeMessage    = "message"
	TypeNote       = "note"
	TypeDataUpdate = "data_update"
)

// Event is one turn in the ordered session log: client input, assistant
// reply, or an adviser note. The log is append-only and doubles as the
// source for reconstructing the compliance chat history.
type Event struct {
	ID        string       `json:"id"`
	Author    string       `json:"author"`
	Type      string       `json:"type"`
	Stage     string       `json:"stage,omitempty"`
	Content   EventContent `json:"content"`
	CreatedAt time.Time    `json:"created_at"`
}

// EventContent is the event payload. The populated field depends on the
// event type: message events carry Text, data_update events carry Patch,
// note events carry Text.
type EventContent struct {
	Text  string     `json:"text,omitempty"`
	Patch *DataPatch `json:"patch,omitempty"`
}

// DataPatch is the structured-form payload of a data_update event, a
// tagged union keyed by the session's current stage. Exactly one group is
// expected per event; the engine matches on stage and rejects payloads for
// other stages.
type DataPatch struct {
	Ready        *bool             `json:"ready,omitempty"`
	Onboarding   *OnboardingUpdate `json:"onboarding,omitempty"`
	Consent      *ConsentUpdate    `json:"consent,omitempty"`
	Options      *OptionsUpdate    `json:"options,omitempty"`
	AdviserNotes *string           `json:"adviser_notes,omitempty"`
}

// OnboardingUpdate is the structured onboarding submission. Nil pointer
// fields are absent; the handler checks all required fields in one pass.
type OnboardingUpdate struct {
	ClientType       *string          `json:"client_type,omitempty"`
	Objectives       *string          `json:"objectives,omitempty"`
	HorizonYears     *int             `json:"horizon_years,omitempty"`
	RiskTolerance    *int             `json:"risk_tolerance,omitempty"`
	CapacityForLoss  *string          `json:"capacity_for_loss,omitempty"`
	LiquidityNeeds   *string          `json:"liquidity_needs,omitempty"`
	KnowledgeSummary *string          `json:"knowledge_summary,omitempty"`
	Financial        *FinancialUpdate `json:"financial,omitempty"`
	ConfirmOverride  *bool            `json:"confirm_override,omitempty"`
}

// FinancialUpdate patches the optional financial disclosure.
type FinancialUpdate struct {
	Provided bool   `json:"provided"`
	Details  string `json:"details,omitempty"`
}

// ConsentUpdate is the structured consent submission.
type ConsentUpdate struct {
	DataProcessing       *bool   `json:"data_processing,omitempty"`
	EDelivery            *bool   `json:"e_delivery,omitempty"`
	FutureContact        *bool   `json:"future_contact,omitempty"`
	FutureContactPurpose *string `json:"future_contact_purpose,omitempty"`
}

// OptionsUpdate is the structured sustainability-preferences submission.
// Slice fields replace the stored value wholesale; nil means absent.
type OptionsUpdate struct {
	PreferenceLevel      *string           `json:"preference_level,omitempty"`
	Labels               []PreferenceLabel `json:"labels,omitempty"`
	Themes               []string          `json:"themes,omitempty"`
	Exclusions           []ExclusionRecord `json:"exclusions,omitempty"`
	ImpactGoals          []string          `json:"impact_goals,omitempty"`
	EngagementImportance *string           `json:"engagement_importance,omitempty"`
	ReportingFrequency   *string           `json:"reporting_frequency_pref,omitempty"`
	TradeoffTolerance    *string           `json:"tradeoff_tolerance,omitempty"`
}
