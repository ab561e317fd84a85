package engine

import (
	"fmt"
	"strings"

	"github.com/sells-group/suitability-engine/internal/catalog"
	"github.com/sells-group/suitability-engine/internal/model"
)

// onboardingQuestions are asked in order; the step counter in the dialogue
// context indexes into this list.
var onboardingQuestions = []string{
	"To start, what type of client are you? (individual, joint, trust, or corporate)",
	"What is your primary investment objective? (growth, income, preservation, or impact)",
	"Over how many years are you looking to invest?",
	"How would you describe your attitude to investment risk, on a scale of 1 (very cautious) to 7 (very adventurous)? Words like low, medium, or high also work.",
	"If your investments fell in value, how well could you absorb the loss without it affecting your standard of living? (low, medium, or high capacity for loss)",
	"Do you expect to need access to this money at short notice? Tell me about any liquidity needs.",
	"How would you describe your knowledge and experience of investing?",
	"Would you like to share details of your income, assets, and liabilities? This is optional but helps us give better advice. (yes or no)",
	"Please share the financial details you are comfortable providing (income, assets, liabilities).",
}

var consentQuestions = []string{
	"Do you consent to us processing your personal data to provide this advice service? This consent is required to continue. (yes or no)",
	"Are you happy to receive your documents electronically rather than by post? (yes or no)",
	"May we contact you in future about products and services that may be relevant to you? (yes or no)",
	"Thank you. What kinds of future contact would be useful to you? (for example: annual reviews, new sustainable products)",
}

var educationQuestions = []string{
	"Please reply \"I understand\" once you have read the explanation of the four sustainability labels, or ask me about any of them by name.",
	"Would you like me to explain the difference between Focus and Improvers before we move on? (yes or no)",
}

var optionsQuestions = []string{
	"How much would you like sustainability to shape your investments? (none, high level, or detailed)",
	"Which sustainability labels interest you? You can name one or more, and optionally give percentage allocations that sum to 100.",
	"Are there particular sustainability themes you care about, such as climate, biodiversity, or social housing? Reply \"none\" to skip.",
	"Are there any sectors you want to exclude from your investments? Reply \"none\" if not. For fossil fuel exclusions please include a revenue threshold, e.g. \"fossil fuels above 5%\".",
	"You have chosen an impact-oriented label. What real-world outcomes do you want your investments to achieve?",
	"How important is it to you that fund managers actively engage with the companies they hold? (low, medium, or high)",
	"How often would you like to receive sustainability impact reporting? (none, annual, semi-annual, or quarterly)",
	"Would you accept lower financial returns in exchange for stronger sustainability outcomes? (none, some, or significant)",
}

const confirmationQuestion = "Please review the summary above and reply \"yes\" to confirm it is accurate, or tell me what needs to change."

// resumePrompt restates the pending question for the active stage so a
// detour or escalation always ends by steering back to the flow.
func (e *Engine) resumePrompt(s *model.Session) string {
	switch s.Stage {
	case catalog.StageExplanation:
		return "When you are ready to begin, just say so."
	case catalog.StageOnboarding:
		if s.Context.RequireRiskOverride {
			return "To continue, please confirm you understand the mismatch between your risk appetite and your capacity for loss, or give me a lower risk number to revise it."
		}
		return stepQuestion(onboardingQuestions, s.Context.OnboardingStep)
	case catalog.StageConsent:
		return stepQuestion(consentQuestions, s.Context.ConsentStep)
	case catalog.StageEducation:
		return stepQuestion(educationQuestions, s.Context.EducationPhase)
	case catalog.StageOptions:
		return stepQuestion(optionsQuestions, s.Context.OptionsStep)
	case catalog.StageConfirmation:
		return confirmationQuestion
	case catalog.StageReport, catalog.StageDelivery:
		return catalog.StagePrompt(s.Stage)
	default:
		return ""
	}
}

func stepQuestion(questions []string, step int) string {
	if step < 0 || step >= len(questions) {
		return ""
	}
	return questions[step]
}

// advanceToOnboarding moves past the explanation and asks the first
// onboarding question.
func (e *Engine) advanceToOnboarding(s *model.Session) []string {
	return e.moveToStage(s, catalog.StageOnboarding, onboardingQuestions[0])
}

// renderSummary builds the read-back shown at the confirmation stage.
func renderSummary(s *model.Session) string {
	var b strings.Builder
	p := s.Data.ClientProfile
	prefs := s.Data.Preferences

	b.WriteString("Here is a summary of what you have told me:\n")
	fmt.Fprintf(&b, "- Client type: %s\n", orUnknown(p.ClientType))
	fmt.Fprintf(&b, "- Objectives: %s\n", orUnknown(p.Objectives))
	fmt.Fprintf(&b, "- Time horizon: %d years\n", p.HorizonYears)
	fmt.Fprintf(&b, "- Risk tolerance: %d of 7\n", p.RiskTolerance)
	fmt.Fprintf(&b, "- Capacity for loss: %s\n", orUnknown(p.CapacityForLoss))
	fmt.Fprintf(&b, "- Liquidity needs: %s\n", orUnknown(p.LiquidityNeeds))

	consent := s.Data.Consent
	fmt.Fprintf(&b, "- Data processing consent: %s\n", grantWord(consent.DataProcessing))
	fmt.Fprintf(&b, "- Electronic delivery: %s\n", grantWord(consent.EDelivery))
	fmt.Fprintf(&b, "- Future contact: %s\n", grantWord(consent.FutureContact.ConsentGrant))

	fmt.Fprintf(&b, "- Sustainability preference level: %s\n", orUnknown(prefs.PreferenceLevel))
	if len(prefs.Labels) > 0 {
		names := make([]string, 0, len(prefs.Labels))
		for _, l := range prefs.Labels {
			if l.AllocationPct != nil {
				names = append(names, fmt.Sprintf("%s (%d%%)", l.Name, *l.AllocationPct))
			} else {
				names = append(names, l.Name)
			}
		}
		fmt.Fprintf(&b, "- Labels: %s\n", strings.Join(names, "; "))
	}
	if len(prefs.Themes) > 0 {
		fmt.Fprintf(&b, "- Themes: %s\n", strings.Join(prefs.Themes, ", "))
	}
	if len(prefs.Exclusions) > 0 {
		parts := make([]string, 0, len(prefs.Exclusions))
		for _, x := range prefs.Exclusions {
			if x.ThresholdPct != nil {
				parts = append(parts, fmt.Sprintf("%s (above %.4g%% revenue)", x.Sector, *x.ThresholdPct))
			} else {
				parts = append(parts, x.Sector)
			}
		}
		fmt.Fprintf(&b, "- Exclusions: %s\n", strings.Join(parts, "; "))
	}
	if len(prefs.ImpactGoals) > 0 {
		fmt.Fprintf(&b, "- Impact goals: %s\n", strings.Join(prefs.ImpactGoals, "; "))
	}
	if prefs.ReportingFrequency != "" {
		fmt.Fprintf(&b, "- Impact reporting: %s\n", prefs.ReportingFrequency)
	}

	for _, g := range s.Data.GuardrailTriggers {
		if g.Confirmed {
			fmt.Fprintf(&b, "- Acknowledged warning: %s\n", g.Type)
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

func orUnknown(v string) string {
	if strings.TrimSpace(v) == "" {
		return "not recorded"
	}
	return v
}

func grantWord(g model.ConsentGrant) string {
	switch {
	case !g.Decided:
		return "not decided"
	case g.Granted:
		return "granted"
	default:
		return "declined"
	}
}
