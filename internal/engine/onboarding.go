package engine

import (
	"fmt"
	"strings"

	"github.com/sells-group/suitability-engine/internal/catalog"
	"github.com/sells-group/suitability-engine/internal/lexical"
	"github.com/sells-group/suitability-engine/internal/model"
)

// handleExplanation waits for an explicit go-ahead before any capture
// begins.
func (e *Engine) handleExplanation(s *model.Session, text string) ([]string, bool) {
	if lexical.IsAffirmative(text) {
		return e.advanceToOnboarding(s), true
	}
	if lexical.IsNegative(text) {
		return []string{
			"No problem, take your time. Nothing is recorded until you're ready to begin.",
		}, true
	}
	return nil, false
}

// handleOnboarding walks the nine-step suitability capture. A pending risk
// override intercepts every turn until the client confirms it.
func (e *Engine) handleOnboarding(s *model.Session, text string) ([]string, bool) {
	if s.Context.RequireRiskOverride {
		return e.handleRiskOverride(s, text)
	}

	switch s.Context.OnboardingStep {
	case 0:
		choice := lexical.MatchChoice(text, catalog.ClientTypes)
		if choice == "" {
			return e.onboardingReprompt(s, text,
				"I didn't recognise that client type.")
		}
		s.Data.ClientProfile.ClientType = choice
		return e.onboardingAdvance(s, "Noted, "+choice+" client.")

	case 1:
		choice := lexical.MatchChoice(text, catalog.Objectives)
		if choice == "" {
			return e.onboardingReprompt(s, text,
				"I didn't recognise that objective.")
		}
		s.Data.ClientProfile.Objectives = choice
		return e.onboardingAdvance(s, "Your primary objective is "+choice+".")

	case 2:
		years := lexical.ParseHorizonYears(text)
		if years < 1 {
			return e.onboardingReprompt(s, text,
				"I need a whole number of years, at least 1.")
		}
		s.Data.ClientProfile.HorizonYears = years
		return e.onboardingAdvance(s, fmt.Sprintf("A %d-year horizon, understood.", years))

	case 3:
		risk := lexical.ParseRiskTolerance(text)
		if risk == 0 {
			return e.onboardingReprompt(s, text,
				"Please give me a number from 1 to 7, or a word like low, medium, or high.")
		}
		s.Data.ClientProfile.RiskTolerance = risk
		ack := fmt.Sprintf("Risk tolerance recorded as %d of 7.", risk)
		if msg := e.checkRiskHorizon(s); msg != "" {
			return e.onboardingAdvance(s, ack, msg)
		}
		return e.onboardingAdvance(s, ack)

	case 4:
		cfl := lexical.ParseCapacityForLoss(text)
		if cfl == "" {
			return e.onboardingReprompt(s, text,
				"Please answer in words rather than numbers: low, medium, or high.")
		}
		s.Data.ClientProfile.CapacityForLoss = cfl
		if msg, blocked := e.checkRiskCapacity(s); blocked {
			s.Context.OnboardingStep = 5
			return []string{msg}, true
		}
		return e.onboardingAdvance(s, "Capacity for loss recorded as "+cfl+".")

	case 5:
		if strings.TrimSpace(text) == "" {
			return e.onboardingReprompt(s, text, "Please tell me about your liquidity needs, even if the answer is \"none\".")
		}
		s.Data.ClientProfile.LiquidityNeeds = strings.TrimSpace(text)
		return e.onboardingAdvance(s, "Liquidity needs noted.")

	case 6:
		if strings.TrimSpace(text) == "" {
			return e.onboardingReprompt(s, text, "A sentence or two about your investing experience is all I need.")
		}
		s.Data.ClientProfile.KnowledgeSummary = strings.TrimSpace(text)
		return e.onboardingAdvance(s, "Thanks, that helps me understand your experience.")

	case 7:
		switch {
		case lexical.IsAffirmative(text):
			s.Data.ClientProfile.Financial.Decided = true
			s.Data.ClientProfile.Financial.Provided = true
			return e.onboardingAdvance(s, "")
		case lexical.IsNegative(text):
			s.Data.ClientProfile.Financial = model.FinancialDisclosure{Decided: true, Provided: false}
			return e.completeOnboarding(s, "That's fine, the financial details are optional."), true
		default:
			return e.onboardingReprompt(s, text, "A yes or no is all I need here.")
		}

	case 8:
		if strings.TrimSpace(text) == "" {
			return e.onboardingReprompt(s, text, "Please share whatever details you are comfortable with.")
		}
		s.Data.ClientProfile.Financial.Details = strings.TrimSpace(text)
		return e.completeOnboarding(s, "Thank you, I've recorded those details."), true

	default:
		return e.completeOnboarding(s, ""), true
	}
}

// handleRiskOverride intercepts onboarding turns while a blocking
// risk-capacity trigger is unconfirmed. The client has two ways out:
// confirm the mismatch, or revise to a risk level below the trigger
// threshold, which resolves the pending entry.
func (e *Engine) handleRiskOverride(s *model.Session, text string) ([]string, bool) {
	if lexical.IsAffirmative(text) {
		s.ConfirmGuardrail(model.GuardrailRiskCapacityOverride, e.now())
		s.Context.RequireRiskOverride = false
		return []string{
			"Thank you for confirming. I've recorded your acknowledgement of the mismatch between your risk appetite and capacity for loss.",
			stepQuestion(onboardingQuestions, s.Context.OnboardingStep),
		}, true
	}
	if risk := lexical.ParseRiskTolerance(text); risk != 0 && risk < riskCapacityThreshold {
		s.Data.ClientProfile.RiskTolerance = risk
		s.ResolveGuardrail(model.GuardrailRiskCapacityOverride, e.now())
		s.Context.RequireRiskOverride = false
		return []string{
			fmt.Sprintf("Risk tolerance revised to %d of 7, which sits within your capacity for loss. The earlier mismatch no longer applies.", risk),
			stepQuestion(onboardingQuestions, s.Context.OnboardingStep),
		}, true
	}
	if lexical.LooksOffScript(text) {
		return nil, false
	}
	return []string{
		"Before we continue I need you to explicitly confirm you understand that your chosen risk level sits above what your capacity for loss would normally support. Reply \"yes\" to confirm, or give me a lower risk number to revise it.",
	}, true
}

// riskCapacityThreshold is the risk tolerance at or above which both
// guardrail combinations can trigger.
const riskCapacityThreshold = 5

// checkRiskHorizon evaluates the non-blocking high-risk short-horizon
// warning once both values are known. Returns the warning text, or "".
func (e *Engine) checkRiskHorizon(s *model.Session) string {
	p := s.Data.ClientProfile
	if p.RiskTolerance < riskCapacityThreshold || p.HorizonYears == 0 || p.HorizonYears >= 3 {
		return ""
	}
	detail := fmt.Sprintf("risk %d with a %d-year horizon", p.RiskTolerance, p.HorizonYears)
	if !s.AppendGuardrail(model.GuardrailRiskHorizonWarning, detail, e.now()) {
		return ""
	}
	return "A note of caution: a higher-risk approach usually needs more time to ride out market falls, and your horizon is under three years. We can continue, but your adviser will discuss this with you."
}

// checkRiskCapacity evaluates the blocking high-risk low-capacity trigger.
// Returns the blocking message and true when progress must halt for an
// explicit confirmation.
func (e *Engine) checkRiskCapacity(s *model.Session) (string, bool) {
	p := s.Data.ClientProfile
	if p.RiskTolerance < riskCapacityThreshold || p.CapacityForLoss != "low" {
		return "", false
	}
	detail := fmt.Sprintf("risk %d with low capacity for loss", p.RiskTolerance)
	s.AppendGuardrail(model.GuardrailRiskCapacityOverride, detail, e.now())
	s.Context.RequireRiskOverride = true
	return "I have to pause here. You've told me your attitude to risk is high, but your capacity to absorb losses is low. That combination can be unsuitable. To proceed with these answers I need you to explicitly confirm you understand the mismatch. Reply \"yes\" to confirm, or give me a lower risk number instead.", true
}

// onboardingAdvance moves to the next step and asks its question, or
// completes the stage when the steps are exhausted.
func (e *Engine) onboardingAdvance(s *model.Session, acks ...string) ([]string, bool) {
	s.Context.OnboardingStep++
	msgs := make([]string, 0, len(acks)+1)
	for _, a := range acks {
		if a != "" {
			msgs = append(msgs, a)
		}
	}
	if s.Context.OnboardingStep < len(onboardingQuestions) {
		return append(msgs, onboardingQuestions[s.Context.OnboardingStep]), true
	}
	return e.completeOnboarding(s, strings.Join(msgs, "\n")), true
}

// completeOnboarding transitions to the consent stage.
func (e *Engine) completeOnboarding(s *model.Session, ack string) []string {
	extra := []string{consentQuestions[0]}
	if ack != "" {
		extra = append([]string{ack}, extra...)
	}
	s.Context.OnboardingStep = len(onboardingQuestions)
	return e.moveToStage(s, catalog.StageConsent, extra...)
}

// onboardingReprompt answers an attempted-but-invalid answer with a hint
// and the pending question. Off-script text is passed through for
// escalation instead.
func (e *Engine) onboardingReprompt(s *model.Session, text, hint string) ([]string, bool) {
	if lexical.LooksOffScript(text) {
		return nil, false
	}
	return []string{hint, stepQuestion(onboardingQuestions, s.Context.OnboardingStep)}, true
}

// handleOnboardingUpdate validates and merges a structured onboarding
// submission in one pass. Nothing is committed when any field fails.
func (e *Engine) handleOnboardingUpdate(s *model.Session, u *model.OnboardingUpdate) Response {
	if u == nil {
		return Response{Messages: []string{"The onboarding update was empty. " + e.resumePrompt(s)}}
	}

	var issues []string
	if u.ClientType != nil && !catalog.Contains(catalog.ClientTypes, *u.ClientType) {
		issues = append(issues, "client_type must be one of: "+strings.Join(catalog.ClientTypes, ", "))
	}
	if u.Objectives != nil && !catalog.Contains(catalog.Objectives, *u.Objectives) {
		issues = append(issues, "objectives must be one of: "+strings.Join(catalog.Objectives, ", "))
	}
	if u.HorizonYears != nil && *u.HorizonYears < 1 {
		issues = append(issues, "horizon_years must be at least 1")
	}
	if u.RiskTolerance != nil && (*u.RiskTolerance < catalog.MinRisk || *u.RiskTolerance > catalog.MaxRisk) {
		issues = append(issues, fmt.Sprintf("risk_tolerance must be between %d and %d", catalog.MinRisk, catalog.MaxRisk))
	}
	if u.CapacityForLoss != nil && !catalog.Contains(catalog.CapacityForLossLevels, *u.CapacityForLoss) {
		issues = append(issues, "capacity_for_loss must be one of: "+strings.Join(catalog.CapacityForLossLevels, ", "))
	}
	if u.Financial != nil && u.Financial.Provided && strings.TrimSpace(u.Financial.Details) == "" {
		issues = append(issues, "financial.details is required when financial.provided is true")
	}
	if len(issues) > 0 {
		return Response{Messages: append([]string{"The onboarding update was rejected:"}, issues...)}
	}

	model.MergeOnboarding(&s.Data.ClientProfile, u)

	var msgs []string
	p := s.Data.ClientProfile
	if s.Context.RequireRiskOverride && (p.RiskTolerance < riskCapacityThreshold || p.CapacityForLoss != "low") {
		s.ResolveGuardrail(model.GuardrailRiskCapacityOverride, e.now())
		s.Context.RequireRiskOverride = false
		msgs = append(msgs, "Your revised answers no longer combine high risk with low capacity for loss, so the pending confirmation has been withdrawn.")
	}
	if warn := e.checkRiskHorizon(s); warn != "" {
		msgs = append(msgs, warn)
	}
	if blockMsg, blocked := e.checkRiskCapacity(s); blocked {
		if u.ConfirmOverride != nil && *u.ConfirmOverride {
			s.ConfirmGuardrail(model.GuardrailRiskCapacityOverride, e.now())
			s.Context.RequireRiskOverride = false
			msgs = append(msgs, "Your confirmation of the risk and capacity mismatch has been recorded.")
		} else {
			return Response{Messages: append(msgs, blockMsg)}
		}
	}

	if missing := missingProfileFields(s.Data.ClientProfile); len(missing) > 0 {
		msgs = append(msgs, "Profile updated. Still needed: "+strings.Join(missing, ", ")+".")
		return Response{Messages: msgs}
	}

	return Response{Messages: append(msgs, e.completeOnboarding(s, "Your profile is complete.")...)}
}

// missingProfileFields lists the required onboarding fields not yet
// captured.
func missingProfileFields(p model.ClientProfile) []string {
	var missing []string
	if p.ClientType == "" {
		missing = append(missing, "client_type")
	}
	if p.Objectives == "" {
		missing = append(missing, "objectives")
	}
	if p.HorizonYears < 1 {
		missing = append(missing, "horizon_years")
	}
	if p.RiskTolerance == 0 {
		missing = append(missing, "risk_tolerance")
	}
	if p.CapacityForLoss == "" {
		missing = append(missing, "capacity_for_loss")
	}
	if strings.TrimSpace(p.LiquidityNeeds) == "" {
		missing = append(missing, "liquidity_needs")
	}
	if strings.TrimSpace(p.KnowledgeSummary) == "" {
		missing = append(missing, "knowledge_summary")
	}
	if !p.Financial.Decided {
		missing = append(missing, "financial")
	}
	return missing
}
