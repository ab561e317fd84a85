package model

import "time"

// MergeOnboarding applies a structured onboarding submission to the client
// profile. The merge is explicit per field rather than a generic object
// walk, so the invariants stay checkable at compile time. Absent (nil)
// fields leave the stored value untouched; slice-free scalar groups are
// overwritten in place.
func MergeOnboarding(dst *ClientProfile, u *OnboardingUpdate) {
	if u == nil {
		return
	}
	if u.ClientType != nil {
		dst.ClientType = *u.ClientType
	}
	if u.Objectives != nil {
		dst.Objectives = *u.Objectives
	}
	if u.HorizonYears != nil {
		dst.HorizonYears = *u.HorizonYears
	}
	if u.RiskTolerance != nil {
		dst.RiskTolerance = *u.RiskTolerance
	}
	if u.CapacityForLoss != nil {
		dst.CapacityForLoss = *u.CapacityForLoss
	}
	if u.LiquidityNeeds != nil {
		dst.LiquidityNeeds = *u.LiquidityNeeds
	}
	if u.KnowledgeSummary != nil {
		dst.KnowledgeSummary = *u.KnowledgeSummary
	}
	if u.Financial != nil {
		dst.Financial = FinancialDisclosure{
			Decided:  true,
			Provided: u.Financial.Provided,
			Details:  u.Financial.Details,
		}
	}
}

// MergeConsent applies a structured consent submission. Each decision is
// stamped at merge time.
func MergeConsent(dst *ConsentRecord, u *ConsentUpdate, now time.Time) {
	if u == nil {
		return
	}
	if u.DataProcessing != nil {
		dst.DataProcessing = ConsentGrant{Decided: true, Granted: *u.DataProcessing, Timestamp: &now}
	}
	if u.EDelivery != nil {
		dst.EDelivery = ConsentGrant{Decided: true, Granted: *u.EDelivery, Timestamp: &now}
	}
	if u.FutureContact != nil {
		dst.FutureContact.ConsentGrant = ConsentGrant{Decided: true, Granted: *u.FutureContact, Timestamp: &now}
	}
	if u.FutureContactPurpose != nil {
		dst.FutureContact.Purpose = *u.FutureContactPurpose
	}
}

// MergeOptions applies a structured preferences submission. Slices replace
// the stored value wholesale when present.
func MergeOptions(dst *SustainabilityPreferences, u *OptionsUpdate) {
	if u == nil {
		return
	}
	if u.PreferenceLevel != nil {
		dst.PreferenceLevel = *u.PreferenceLevel
	}
	if u.Labels != nil {
		dst.Labels = u.Labels
	}
	if u.Themes != nil {
		dst.Themes = u.Themes
	}
	if u.Exclusions != nil {
		dst.Exclusions = u.Exclusions
	}
	if u.ImpactGoals != nil {
		dst.ImpactGoals = u.ImpactGoals
	}
	if u.EngagementImportance != nil {
		dst.EngagementImportance = *u.EngagementImportance
	}
	if u.ReportingFrequency != nil {
		dst.ReportingFrequency = *u.ReportingFrequency
	}
	if u.TradeoffTolerance != nil {
		dst.TradeoffTolerance = *u.TradeoffTolerance
	}
}
