package match

import "github.com/sells-group/suitability-engine/internal/catalog"

// Product is one candidate investment in a matching universe.
type Product struct {
	ID                  string   `json:"id"`
	Name                string   `json:"name"`
	Type                string   `json:"type"`
	Provider            string   `json:"provider"`
	Objectives          []string `json:"objectives"`
	Labels              []string `json:"labels"`
	Themes              []string `json:"themes"`
	ExclusionsSupported []string `json:"exclusions_supported"`
	RiskBand            [2]int   `json:"risk_band"`
	MinHorizonYears     int      `json:"min_horizon_years"`
	PreferenceLevels    []string `json:"preference_levels"`
	Summary             string   `json:"summary"`
	Charges             string   `json:"charges"`
}

// AuthorisedUniverse is the firm's approved product list.
var AuthorisedUniverse = []Product{
	{
		ID:                  "aurora_green_growth",
		Name:                "Aurora Green Growth Fund",
		Type:                "Global Equity Fund",
		Provider:            "Aurora Asset Management",
		Objectives:          []string{"growth", "impact"},
		Labels:              []string{catalog.PathwayImpact},
		Themes:              []string{"Climate", "Energy transition"},
		ExclusionsSupported: []string{"Thermal coal under 5%", "Tobacco 0%"},
		RiskBand:            [2]int{4, 6},
		MinHorizonYears:     5,
		PreferenceLevels:    []string{"high_level", "detailed"},
		Summary:             "Global equities focusing on companies delivering measurable climate transition outcomes with active stewardship.",
		Charges:             "0.78% ongoing charge",
	},
	{
		ID:                  "sterling_sustainable_income",
		Name:                "Sterling Sustainable Income Bond",
		Type:                "Global Bond Fund",
		Provider:            "Sterling Fixed Income Partners",
		Objectives:          []string{"income", "preservation"},
		Labels:              []string{catalog.PathwayImprovers},
		Themes:              []string{"Social", "Climate"},
		ExclusionsSupported: []string{"Thermal coal under 10%", "Controversial weapons 0%"},
		RiskBand:            [2]int{2, 4},
		MinHorizonYears:     3,
		PreferenceLevels:    []string{"high_level", "detailed"},
		Summary:             "Diversified investment grade bond portfolio engaging issuers on climate transition and workforce standards.",
		Charges:             "0.52% ongoing charge",
	},
	{
		ID:                  "harbor_balanced_focus",
		Name:                "Harbor ESG Balanced Focus Portfolio",
		Type:                "Multi-Asset Model Portfolio",
		Provider:            "Harbor Advisory Services",
		Objectives:          []string{"growth", "preservation"},
		Labels:              []string{catalog.PathwayFocus},
		Themes:              []string{"Climate", "Biodiversity", "Corporate governance"},
		ExclusionsSupported: []string{"Thermal coal under 5%", "Tobacco 0%", "Predatory lending 0%"},
		RiskBand:            [2]int{3, 5},
		MinHorizonYears:     4,
		PreferenceLevels:    []string{"high_level", "detailed"},
		Summary:             "Blended equity and bond model emphasising companies already leading on sustainability metrics.",
		Charges:             "0.68% ongoing charge",
	},
}

// MarketScanUniverse covers comparable products outside the authorised
// list, returned separately so advisers can evidence the wider market.
var MarketScanUniverse = []Product{
	{
		ID:                  "solstice_global_impact",
		Name:                "Solstice Global Impact Opportunities",
		Type:                "Global Equity Fund",
		Provider:            "Solstice Capital",
		Objectives:          []string{"growth", "impact"},
		Labels:              []string{catalog.PathwayImpact},
		Themes:              []string{"Climate", "Health"},
		ExclusionsSupported: []string{"Thermal coal under 0%", "Tobacco 0%"},
		RiskBand:            [2]int{4, 6},
		MinHorizonYears:     5,
		PreferenceLevels:    []string{"detailed"},
		Summary:             "Concentrated portfolio targeting companies with verified impact metrics and outcome-linked remuneration.",
		Charges:             "0.85% ongoing charge",
	},
	{
		ID:                  "northstar_responsible_credit",
		Name:                "Northstar Responsible Credit Fund",
		Type:                "Corporate Bond Fund",
		Provider:            "Northstar Asset Co.",
		Objectives:          []string{"income", "preservation"},
		Labels:              []string{catalog.PathwayImprovers},
		Themes:              []string{"Social", "Climate"},
		ExclusionsSupported: []string{"Thermal coal under 20%", "Civilian firearms 0%"},
		RiskBand:            [2]int{2, 4},
		MinHorizonYears:     3,
		PreferenceLevels:    []string{"high_level", "detailed"},
		Summary:             "Investment grade credit fund with structured engagement milestones for issuers on net-zero and labour standards.",
		Charges:             "0.60% ongoing charge",
	},
}
