// Package validate audits a session's durable data against the regulatory
// completeness rules. The battery runs in a fixed order and collects every
// failing check, so the client sees everything missing in one pass.
package validate

import (
	"fmt"
	"strings"

	"github.com/sells-group/suitability-engine/internal/catalog"
	"github.com/sells-group/suitability-engine/internal/model"
)

// Result is the outcome of a validation pass.
type Result struct {
	Valid  bool     `json:"valid"`
	Issues []string `json:"issues"`
}

// fossilFuelTerms matches exclusion sectors that require a mandatory
// numeric threshold.
var fossilFuelTerms = []string{"fossil fuel", "fossil fuels", "fossil-fuel"}

// IsFossilFuelSector reports whether an exclusion sector falls under the
// mandatory-threshold rule. The engine uses it to demand a threshold at
// capture time; the batch validator enforces it again at the report gate.
func IsFossilFuelSector(sector string) bool {
	lower := strings.ToLower(sector)
	for _, t := range fossilFuelTerms {
		if strings.Contains(lower, t) {
			return true
		}
	}
	return false
}

// Validate runs the full rule battery over session data. It never mutates
// the input and ignores dialogue context entirely. Issue order is the order
// checks run, not a priority ranking.
func Validate(s *model.Session) Result {
	var issues []string
	data := s.Data

	// Explanation gate.
	if !data.Explanation.Shown {
		issues = append(issues, "The session explainer must be shown and acknowledged before anything else is captured.")
	}

	// Client profile.
	p := data.ClientProfile
	if !catalog.Contains(catalog.ClientTypes, p.ClientType) {
		issues = append(issues, "Client type must be one of: "+strings.Join(catalog.ClientTypes, ", ")+".")
	}
	if !catalog.Contains(catalog.Objectives, p.Objectives) {
		issues = append(issues, "Investment objective must be one of: "+strings.Join(catalog.Objectives, ", ")+".")
	}
	if p.HorizonYears < 1 {
		issues = append(issues, "Investment horizon must be a positive number of years.")
	}
	if p.RiskTolerance < catalog.MinRisk || p.RiskTolerance > catalog.MaxRisk {
		issues = append(issues, fmt.Sprintf("Risk tolerance must be on the %d-%d scale.", catalog.MinRisk, catalog.MaxRisk))
	}
	if !catalog.Contains(catalog.CapacityForLossLevels, p.CapacityForLoss) {
		issues = append(issues, "Capacity for loss must be low, medium, or high.")
	}
	if strings.TrimSpace(p.LiquidityNeeds) == "" {
		issues = append(issues, "Liquidity needs must be recorded, even if 'none'.")
	}
	if strings.TrimSpace(p.KnowledgeSummary) == "" {
		issues = append(issues, "A knowledge and experience summary is required.")
	}
	if !p.Financial.Decided {
		issues = append(issues, "The financial disclosure decision must be recorded, even when declined.")
	} else if p.Financial.Provided && strings.TrimSpace(p.Financial.Details) == "" {
		issues = append(issues, "Financial details are required when the client opted to disclose them.")
	}

	// Consents.
	c := data.Consent
	if !c.DataProcessing.Granted {
		issues = append(issues, "Consent to data processing must be granted.")
	} else if c.DataProcessing.Timestamp == nil {
		issues = append(issues, "Data-processing consent requires a timestamp.")
	}
	if c.FutureContact.Granted && strings.TrimSpace(c.FutureContact.Purpose) == "" {
		issues = append(issues, "A contact purpose is required when future contact is permitted.")
	}

	// Sustainability preferences.
	pref := data.Preferences
	if !catalog.Contains(catalog.PreferenceLevels, pref.PreferenceLevel) {
		issues = append(issues, "Sustainability preference level must be none, high_level, or detailed.")
	} else {
		if pref.PreferenceLevel != "none" && len(pref.Labels) == 0 {
			issues = append(issues, "At least one SDR label is required unless the preference level is 'none'.")
		}
		if pref.PreferenceLevel == "detailed" {
			if len(pref.Themes) == 0 {
				issues = append(issues, "Detailed preferences require at least one sustainability theme.")
			}
			if !catalog.Contains(catalog.EngagementLevels, pref.EngagementImportance) {
				issues = append(issues, "Detailed preferences require an engagement importance of low, medium, or high.")
			}
			if !catalog.Contains(catalog.TradeoffLevels, pref.TradeoffTolerance) {
				issues = append(issues, "Detailed preferences require a trade-off tolerance of none, some, or significant.")
			}
		}
	}

	// Label vocabulary and allocations.
	allocPresent := false
	allocTotal := 0
	for _, l := range pref.Labels {
		if !catalog.Contains(catalog.PathwayNames, l.Name) {
			issues = append(issues, fmt.Sprintf("Label %q is not a recognised SDR label.", l.Name))
		}
		if l.AllocationPct != nil {
			allocPresent = true
			if *l.AllocationPct < 0 || *l.AllocationPct > 100 {
				issues = append(issues, fmt.Sprintf("Allocation for %s must be between 0 and 100.", l.Name))
			}
			allocTotal += *l.AllocationPct
		}
	}
	if allocPresent && allocTotal != 100 {
		issues = append(issues, "Label allocation percentages must sum to 100.")
	}

	// Exclusion structure.
	for i, e := range pref.Exclusions {
		if strings.TrimSpace(e.Sector) == "" {
			issues = append(issues, fmt.Sprintf("Exclusion at position %d is missing a sector.", i+1))
			continue
		}
		if e.ThresholdPct != nil && *e.ThresholdPct < 0 {
			issues = append(issues, fmt.Sprintf("Exclusion threshold for %s must not be negative.", e.Sector))
		}
		if IsFossilFuelSector(e.Sector) && e.ThresholdPct == nil {
			issues = append(issues, fmt.Sprintf("A numeric threshold is required for the fossil-fuel exclusion %q.", e.Sector))
		}
	}

	// Impact-label cross-field rules.
	if pref.HasImpactLabel(catalog.IsImpactLabel) {
		if len(pref.ImpactGoals) == 0 {
			issues = append(issues, "Impact-labelled selections require at least one impact goal.")
		}
		if pref.ReportingFrequency == "" || pref.ReportingFrequency == "none" {
			issues = append(issues, "Impact-labelled selections require a reporting frequency other than 'none'.")
		}
	}

	// Anti-greenwashing disclosure accompanies any recorded preference.
	if pref.PreferenceLevel != "" && !pref.AntiGreenwashingShown {
		issues = append(issues, "The anti-greenwashing disclaimer must be presented whenever sustainability preferences are recorded.")
	}

	// Final confirmation gate.
	if !data.SummaryConfirmation.ClientSummaryConfirmed {
		issues = append(issues, "The client must confirm the captured summary before a report can be generated.")
	}

	return Result{Valid: len(issues) == 0, Issues: issues}
}
