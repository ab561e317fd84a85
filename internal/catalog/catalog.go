// Package catalog holds the canonical conversation stage list, per-stage
// prompts, and the controlled vocabularies used across the suitability flow.
// Everything here is immutable after init.
package catalog

// Conversation stages, in canonical order.
const (
	StageExplanation  = "explanation"
	StageOnboarding   = "onboarding"
	StageConsent      = "consent"
	StageEducation    = "education"
	StageOptions      = "options"
	StageConfirmation = "confirmation"
	StageReport       = "report"
	StageDelivery     = "delivery"
	StageComplete     = "complete"
)

// Stages is the ordered canonical stage list. Session.Stage is always a
// member of this slice.
var Stages = []string{
	StageExplanation,
	StageOnboarding,
	StageConsent,
	StageEducation,
	StageOptions,
	StageConfirmation,
	StageReport,
	StageDelivery,
	StageComplete,
}

var stageIndex = func() map[string]int {
	m := make(map[string]int, len(Stages))
	for i, s := range Stages {
		m[s] = i
	}
	return m
}()

// IsStage reports whether name is a member of the canonical stage list.
func IsStage(name string) bool {
	_, ok := stageIndex[name]
	return ok
}

// StageIndex returns the position of a stage in the canonical order, or -1.
func StageIndex(name string) int {
	if i, ok := stageIndex[name]; ok {
		return i
	}
	return -1
}

var stagePrompts = map[string]string{
	StageExplanation:  "Welcome. Before we capture anything, here is what this meeting covers: your goals, your attitude to risk, your capacity for loss, and your sustainability preferences under the FCA's Sustainability Disclosure Requirements. Reply 'ready' when you would like to begin.",
	StageOnboarding:   "Let's build your suitability profile. I'll ask about who is investing, your objectives, horizon, risk tolerance, and capacity for loss.",
	StageConsent:      "Next, a few consents. I'll ask about data processing, electronic delivery of documents, and whether we may contact you in future.",
	StageEducation:    "Here is your disclosure pack covering the four SDR labels: Focus, Improvers, Impact, and Mixed Goals. None is ranked above the others; they suit different goals. Ask about any label by name, or confirm once you've read the pack.",
	StageOptions:      "Now your sustainability preferences. Would you like no sustainability preference, a high-level preference, or a detailed preference?",
	StageConfirmation: "Let's review everything we've captured before I produce your report.",
	StageReport:       "Your suitability report has been generated and is ready for review.",
	StageDelivery:     "Your report is being delivered through your chosen channel. An adviser will follow up if anything needs attention.",
	StageComplete:     "This session is complete and archived in line with our record-keeping policy. Please start a new session for any changes.",
}

// StagePrompt returns the narration shown when a session enters the stage.
// Unknown stages return an empty string.
func StagePrompt(stage string) string {
	return stagePrompts[stage]
}

// Client profile vocabularies.
var (
	ClientTypes           = []string{"individual", "joint", "trust", "corporate"}
	Objectives            = []string{"growth", "income", "preservation", "impact"}
	CapacityForLossLevels = []string{"low", "medium", "high"}
)

// Risk tolerance bounds on the 1-7 attitude-to-risk scale.
const (
	MinRisk = 1
	MaxRisk = 7
)

// Sustainability preference vocabularies.
var (
	PreferenceLevels     = []string{"none", "high_level", "detailed"}
	ReportingFrequencies = []string{"none", "annual", "semi_annual", "quarterly"}
	EngagementLevels     = []string{"low", "medium", "high"}
	TradeoffLevels       = []string{"none", "some", "significant"}
)

// SDR label names. These are the four FCA Sustainability Disclosure
// Requirements investment labels.
const (
	PathwayFocus      = "Sustainability: Focus"
	PathwayImprovers  = "Sustainability: Improvers"
	PathwayImpact     = "Sustainability: Impact"
	PathwayMixedGoals = "Sustainability: Mixed Goals"
)

// PathwayNames is the controlled SDR label vocabulary.
var PathwayNames = []string{
	PathwayFocus,
	PathwayImprovers,
	PathwayImpact,
	PathwayMixedGoals,
}

// PathwayAliases maps each label to the phrasings clients actually use.
// Matching is longest-alias-first to avoid partial false positives
// ("mixed goals" before "mixed", "impact" never matching "impact goals").
var PathwayAliases = map[string][]string{
	PathwayFocus:      {"focus", "sustainability focus", "focus label", "focus pathway"},
	PathwayImprovers:  {"improvers", "improver", "sustainability improvers", "transition fund"},
	PathwayImpact:     {"impact", "sustainability impact", "impact label", "impact pathway"},
	PathwayMixedGoals: {"mixed goals", "mixed", "sustainability mixed goals", "blended goals"},
}

// PathwayDetails holds the explainer blurb served for inline label lookups
// during the education stage.
var PathwayDetails = map[string]string{
	PathwayFocus:      "Sustainability: Focus invests in assets that are already environmentally or socially sustainable, measured against a credible standard. At least 70% of the fund must meet that standard.",
	PathwayImprovers:  "Sustainability: Improvers invests in assets that are not sustainable today but have the potential to improve over time, with the fund manager using stewardship to drive that change.",
	PathwayImpact:     "Sustainability: Impact invests to achieve a pre-defined, measurable positive outcome for people or the planet, with the fund reporting against those impact goals.",
	PathwayMixedGoals: "Sustainability: Mixed Goals blends the other three approaches in one fund, so part of the portfolio targets sustainable assets, part targets improvers, and part targets measurable impact.",
}

// impactLabelled marks the labels that carry the impact cross-field
// requirements (impact goals and an active reporting cadence).
var impactLabelled = map[string]bool{
	PathwayImpact:     true,
	PathwayMixedGoals: true,
}

// IsImpactLabel reports whether the label requires impact goals and a
// non-"none" reporting cadence.
func IsImpactLabel(name string) bool {
	return impactLabelled[name]
}

// Contains reports whether value is a member of set. Comparison is exact;
// callers normalise first where needed.
func Contains(set []string, value string) bool {
	for _, s := range set {
		if s == value {
			return true
		}
	}
	return false
}
