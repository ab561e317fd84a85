// Package report produces the suitability report artifacts once a session
// passes validation: a plain-text preview, a minimal single-page PDF, and a
// content hash for the audit trail.
package report

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/sells-group/suitability-engine/internal/model"
)

// Artifacts is the report-trigger return shape.
type Artifacts struct {
	Preview       string `json:"preview"`
	ArtifactBytes []byte `json:"-"`
	Hash          string `json:"hash"`
}

// Generate builds the report artifacts for a validated session. It is
// invoked exactly once per confirmation transition.
func Generate(s *model.Session) Artifacts {
	preview := buildPreview(s)
	pdf := buildPDF(strings.Split(preview, "\n"))
	sum := sha256.Sum256(pdf)
	return Artifacts{
		Preview:       preview,
		ArtifactBytes: pdf,
		Hash:          hex.EncodeToString(sum[:]),
	}
}

func buildPreview(s *model.Session) string {
	var lines []string
	p := s.Data.ClientProfile
	pref := s.Data.Preferences

	lines = append(lines, "Suitability & Sustainability Preference Report")
	lines = append(lines, fmt.Sprintf("Session: %s", s.ID))
	lines = append(lines, "")
	lines = append(lines, fmt.Sprintf("Client type: %s | Objective: %s", orDash(p.ClientType), orDash(p.Objectives)))
	lines = append(lines, fmt.Sprintf("Risk tolerance: %d/7 | Capacity for loss: %s | Horizon: %d years",
		p.RiskTolerance, orDash(p.CapacityForLoss), p.HorizonYears))
	lines = append(lines, fmt.Sprintf("Liquidity needs: %s", orDash(p.LiquidityNeeds)))
	lines = append(lines, fmt.Sprintf("Knowledge & experience: %s", orDash(p.KnowledgeSummary)))
	lines = append(lines, "")

	lines = append(lines, fmt.Sprintf("Data-processing consent: %s", yesNo(s.Data.Consent.DataProcessing.Granted)))
	lines = append(lines, fmt.Sprintf("E-delivery: %s | Future contact: %s",
		yesNo(s.Data.Consent.EDelivery.Granted), yesNo(s.Data.Consent.FutureContact.Granted)))
	lines = append(lines, "")

	lines = append(lines, fmt.Sprintf("Sustainability preference level: %s", orDash(pref.PreferenceLevel)))
	if len(pref.Labels) > 0 {
		lines = append(lines, "Labels:")
		for _, l := range pref.Labels {
			if l.AllocationPct != nil {
				lines = append(lines, fmt.Sprintf("- %s: %d%%", l.Name, *l.AllocationPct))
			} else {
				lines = append(lines, fmt.Sprintf("- %s", l.Name))
			}
		}
	}
	if len(pref.Themes) > 0 {
		lines = append(lines, fmt.Sprintf("Themes: %s", strings.Join(pref.Themes, ", ")))
	}
	if len(pref.Exclusions) > 0 {
		lines = append(lines, "Exclusions:")
		for _, e := range pref.Exclusions {
			if e.ThresholdPct != nil {
				lines = append(lines, fmt.Sprintf("- %s (threshold %.1f%%)", e.Sector, *e.ThresholdPct))
			} else {
				lines = append(lines, fmt.Sprintf("- %s", e.Sector))
			}
		}
	}
	if len(pref.ImpactGoals) > 0 {
		lines = append(lines, fmt.Sprintf("Impact goals: %s", strings.Join(pref.ImpactGoals, ", ")))
		lines = append(lines, fmt.Sprintf("Impact reporting: %s", pref.ReportingFrequency))
	}
	lines = append(lines, "")

	if len(s.Data.GuardrailTriggers) > 0 {
		lines = append(lines, "Guardrails:")
		for _, g := range s.Data.GuardrailTriggers {
			lines = append(lines, fmt.Sprintf("- %s (%s): confirmed=%t", g.Type, g.Detail, g.Confirmed))
		}
		lines = append(lines, "")
	}

	lines = append(lines, "Adviser notes:")
	if s.Data.AdviceOutcome.AdviserNotes != "" {
		lines = append(lines, s.Data.AdviceOutcome.AdviserNotes)
	} else {
		lines = append(lines, "To be confirmed")
	}

	return strings.Join(lines, "\n")
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func yesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}
