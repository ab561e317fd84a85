package engine

import (
	"fmt"
	"strings"

	"github.com/sells-group/suitability-engine/internal/catalog"
	"github.com/sells-group/suitability-engine/internal/lexical"
	"github.com/sells-group/suitability-engine/internal/model"
	"github.com/sells-group/suitability-engine/internal/validate"
)

// parsePreferenceLevel resolves a free-text preference-level answer.
func parsePreferenceLevel(text string) string {
	norm := lexical.Normalise(text)
	switch {
	case strings.Contains(norm, "detail"):
		return "detailed"
	case strings.Contains(norm, "high level"):
		return "high_level"
	case norm == "none" || norm == "no" || strings.Contains(norm, "no preference") || strings.Contains(norm, "not interested"):
		return "none"
	default:
		return ""
	}
}

// handleOptions walks the sustainability-preference capture. A "none"
// preference level short-circuits straight to confirmation; the detailed
// walk covers labels, themes, exclusions, impact goals, engagement,
// reporting cadence, and trade-off tolerance.
func (e *Engine) handleOptions(s *model.Session, text string) ([]string, bool) {
	prefs := &s.Data.Preferences

	switch s.Context.OptionsStep {
	case 0:
		level := parsePreferenceLevel(text)
		if level == "" {
			return e.optionsReprompt(s, text, "I didn't catch a preference level.")
		}
		prefs.PreferenceLevel = level
		if level == "none" {
			return e.enterConfirmation(s, "That's absolutely fine. Your preference for no sustainability constraint is recorded."), true
		}
		s.Context.OptionsStep = 1
		return []string{optionsQuestions[1]}, true

	case 1:
		if allocs := lexical.ParseAllocations(text); len(allocs) > 0 {
			total := 0
			labels := make([]model.PreferenceLabel, 0, len(allocs))
			for _, a := range allocs {
				pct := a.Pct
				total += pct
				labels = append(labels, model.PreferenceLabel{Name: a.Name, AllocationPct: &pct})
			}
			if total != 100 {
				return e.optionsReprompt(s, text,
					fmt.Sprintf("Those allocations add up to %d%%, but they need to sum to 100%%.", total))
			}
			prefs.Labels = labels
			return e.optionsAdvanceFromLabels(s)
		}
		names := lexical.FindPathways(text)
		if len(names) == 0 {
			return e.optionsReprompt(s, text,
				"I didn't recognise any of the four labels there. The options are Focus, Improvers, Impact, and Mixed Goals.")
		}
		labels := make([]model.PreferenceLabel, 0, len(names))
		for _, n := range names {
			labels = append(labels, model.PreferenceLabel{Name: n})
		}
		prefs.Labels = labels
		return e.optionsAdvanceFromLabels(s)

	case 2:
		if lexical.IsNegative(text) {
			if prefs.PreferenceLevel == "detailed" {
				return e.optionsReprompt(s, text,
					"For a detailed preference I do need at least one theme. Climate, biodiversity, water, and social housing are common examples.")
			}
			s.Context.OptionsStep = 3
			return []string{optionsQuestions[3]}, true
		}
		themes := lexical.SplitList(text)
		if len(themes) == 0 {
			return e.optionsReprompt(s, text, "Please name one or more themes, or reply \"none\".")
		}
		prefs.Themes = themes
		s.Context.OptionsStep = 3
		return []string{optionsQuestions[3]}, true

	case 3:
		exclusions := lexical.ParseExclusions(text)
		if exclusions == nil {
			return e.optionsReprompt(s, text, "Please name the sectors to exclude, or reply \"none\".")
		}
		records := make([]model.ExclusionRecord, 0, len(exclusions))
		for _, x := range exclusions {
			if validate.IsFossilFuelSector(x.Sector) && x.ThresholdPct == nil {
				return e.optionsReprompt(s, text,
					"Fossil fuel exclusions need a revenue threshold so fund screens can apply them, e.g. \"fossil fuels above 5%\".")
			}
			records = append(records, model.ExclusionRecord{Sector: x.Sector, ThresholdPct: x.ThresholdPct})
		}
		prefs.Exclusions = records
		return e.optionsAdvancePastExclusions(s)

	case 4:
		if lexical.IsNegative(text) {
			return e.optionsReprompt(s, text,
				"An impact-labelled investment has to target specific outcomes, so I need at least one goal, for example \"reduce carbon emissions\" or \"expand affordable housing\".")
		}
		goals := lexical.SplitList(text)
		if len(goals) == 0 {
			return e.optionsReprompt(s, text, "Please describe at least one outcome you want your investments to achieve.")
		}
		prefs.ImpactGoals = goals
		s.Context.OptionsStep = 5
		return []string{optionsQuestions[5]}, true

	case 5:
		level := lexical.MatchChoice(text, catalog.EngagementLevels)
		if level == "" {
			if lexical.IsNegative(text) && prefs.PreferenceLevel != "detailed" {
				s.Context.OptionsStep = 6
				return []string{optionsQuestions[6]}, true
			}
			return e.optionsReprompt(s, text, "Low, medium, or high is all I need here.")
		}
		prefs.EngagementImportance = level
		s.Context.OptionsStep = 6
		return []string{optionsQuestions[6]}, true

	case 6:
		freq := matchReportingFrequency(text)
		if freq == "" {
			return e.optionsReprompt(s, text, "Please choose none, annual, semi-annual, or quarterly.")
		}
		if freq == "none" && prefs.HasImpactLabel(catalog.IsImpactLabel) {
			return e.optionsReprompt(s, text,
				"Because you've chosen an impact-oriented label, ongoing impact reporting is part of the deal. Please pick annual, semi-annual, or quarterly.")
		}
		prefs.ReportingFrequency = freq
		s.Context.OptionsStep = 7
		return []string{optionsQuestions[7]}, true

	case 7:
		level := lexical.MatchChoice(text, catalog.TradeoffLevels)
		if level == "" && lexical.IsNegative(text) {
			level = "none"
		}
		if level == "" {
			return e.optionsReprompt(s, text, "None, some, or significant is all I need here.")
		}
		prefs.TradeoffTolerance = level
		return e.enterConfirmation(s, "That completes your sustainability preferences."), true

	default:
		return e.enterConfirmation(s, ""), true
	}
}

// matchReportingFrequency tolerates the hyphenated and spaced spellings of
// semi_annual.
func matchReportingFrequency(text string) string {
	norm := lexical.Normalise(text)
	if strings.Contains(norm, "semi") {
		return "semi_annual"
	}
	return lexical.MatchChoice(text, catalog.ReportingFrequencies)
}

// optionsAdvanceFromLabels acknowledges the label selection and moves to
// the themes step.
func (e *Engine) optionsAdvanceFromLabels(s *model.Session) ([]string, bool) {
	names := make([]string, 0, len(s.Data.Preferences.Labels))
	for _, l := range s.Data.Preferences.Labels {
		names = append(names, l.Name)
	}
	s.Context.OptionsStep = 2
	return []string{
		"Recorded: " + strings.Join(names, "; ") + ".",
		optionsQuestions[2],
	}, true
}

// optionsAdvancePastExclusions skips the impact-goals step when no
// impact-oriented label was selected.
func (e *Engine) optionsAdvancePastExclusions(s *model.Session) ([]string, bool) {
	if s.Data.Preferences.HasImpactLabel(catalog.IsImpactLabel) {
		s.Context.OptionsStep = 4
		return []string{optionsQuestions[4]}, true
	}
	s.Context.OptionsStep = 5
	return []string{optionsQuestions[5]}, true
}

func (e *Engine) optionsReprompt(s *model.Session, text, hint string) ([]string, bool) {
	if lexical.LooksOffScript(text) {
		return nil, false
	}
	return []string{hint, stepQuestion(optionsQuestions, s.Context.OptionsStep)}, true
}

// enterConfirmation transitions to the confirmation stage and renders the
// full read-back immediately.
func (e *Engine) enterConfirmation(s *model.Session, ack string) []string {
	s.Context.OptionsStep = len(optionsQuestions)
	s.Context.ConfirmationAwaiting = true
	extra := []string{renderSummary(s), confirmationQuestion}
	if ack != "" {
		extra = append([]string{ack}, extra...)
	}
	return e.moveToStage(s, catalog.StageConfirmation, extra...)
}

// handleOptionsUpdate validates a structured preferences submission against
// a merged copy before committing, so a rejected batch leaves the stored
// preferences untouched.
func (e *Engine) handleOptionsUpdate(s *model.Session, u *model.OptionsUpdate) Response {
	if u == nil {
		return Response{Messages: []string{"The preferences update was empty. " + e.resumePrompt(s)}}
	}

	candidate := s.Data.Preferences
	model.MergeOptions(&candidate, u)

	if issues := checkPreferences(candidate); len(issues) > 0 {
		return Response{Messages: append([]string{"The preferences update was rejected:"}, issues...)}
	}

	s.Data.Preferences = candidate
	if candidate.PreferenceLevel == "none" {
		return Response{Messages: e.enterConfirmation(s, "Your preference for no sustainability constraint is recorded.")}
	}
	return Response{Messages: e.enterConfirmation(s, "Your sustainability preferences are recorded.")}
}

// checkPreferences applies the capture-time preference rules to a candidate
// record. It mirrors the report-gate battery for the fields a batch
// submission can carry.
func checkPreferences(p model.SustainabilityPreferences) []string {
	var issues []string

	if !catalog.Contains(catalog.PreferenceLevels, p.PreferenceLevel) {
		issues = append(issues, "preference_level must be none, high_level, or detailed")
		return issues
	}
	if p.PreferenceLevel == "none" {
		return nil
	}

	if len(p.Labels) == 0 {
		issues = append(issues, "at least one SDR label is required unless preference_level is none")
	}
	allocPresent := false
	allocTotal := 0
	for _, l := range p.Labels {
		if !catalog.Contains(catalog.PathwayNames, l.Name) {
			issues = append(issues, fmt.Sprintf("label %q is not a recognised SDR label", l.Name))
		}
		if l.AllocationPct != nil {
			allocPresent = true
			allocTotal += *l.AllocationPct
		}
	}
	if allocPresent && allocTotal != 100 {
		issues = append(issues, "label allocations must sum to 100")
	}

	for _, x := range p.Exclusions {
		if strings.TrimSpace(x.Sector) == "" {
			issues = append(issues, "every exclusion needs a sector")
			continue
		}
		if validate.IsFossilFuelSector(x.Sector) && x.ThresholdPct == nil {
			issues = append(issues, fmt.Sprintf("a revenue threshold is required for the fossil-fuel exclusion %q", x.Sector))
		}
	}

	if p.HasImpactLabel(catalog.IsImpactLabel) {
		if len(p.ImpactGoals) == 0 {
			issues = append(issues, "impact-labelled selections require at least one impact goal")
		}
		if p.ReportingFrequency == "" || p.ReportingFrequency == "none" {
			issues = append(issues, "impact-labelled selections require a reporting frequency other than none")
		}
	}

	if p.PreferenceLevel == "detailed" {
		if len(p.Themes) == 0 {
			issues = append(issues, "detailed preferences require at least one theme")
		}
		if !catalog.Contains(catalog.EngagementLevels, p.EngagementImportance) {
			issues = append(issues, "detailed preferences require an engagement importance of low, medium, or high")
		}
		if !catalog.Contains(catalog.TradeoffLevels, p.TradeoffTolerance) {
			issues = append(issues, "detailed preferences require a trade-off tolerance of none, some, or significant")
		}
	}

	return issues
}
