package engine

import (
	"strings"

	"github.com/sells-group/suitability-engine/internal/catalog"
	"github.com/sells-group/suitability-engine/internal/lexical"
	"github.com/sells-group/suitability-engine/internal/model"
)

const dataProcessingGateMsg = "I understand, but I can't continue without your consent to process your data. It is the legal basis for providing this advice. If you change your mind, just say so, or ask me why it's needed."

// handleConsent walks the four consent decisions. Data processing is a hard
// gate; the stage cannot complete without it.
func (e *Engine) handleConsent(s *model.Session, text string) ([]string, bool) {
	now := e.now()

	switch s.Context.ConsentStep {
	case 0:
		switch {
		case lexical.IsAffirmative(text):
			s.Data.Consent.DataProcessing = model.ConsentGrant{Decided: true, Granted: true, Timestamp: &now}
			s.Context.ConsentStep = 1
			return []string{"Thank you, your data processing consent is recorded.", consentQuestions[1]}, true
		case lexical.IsNegative(text):
			s.Data.Consent.DataProcessing = model.ConsentGrant{Decided: true, Granted: false, Timestamp: &now}
			return []string{dataProcessingGateMsg}, true
		default:
			return e.consentReprompt(s, text)
		}

	case 1:
		switch {
		case lexical.IsAffirmative(text):
			s.Data.Consent.EDelivery = model.ConsentGrant{Decided: true, Granted: true, Timestamp: &now}
			s.Context.ConsentStep = 2
			return []string{"Electronic delivery it is.", consentQuestions[2]}, true
		case lexical.IsNegative(text):
			s.Data.Consent.EDelivery = model.ConsentGrant{Decided: true, Granted: false, Timestamp: &now}
			s.Context.ConsentStep = 2
			return []string{"No problem, we'll send documents by post.", consentQuestions[2]}, true
		default:
			return e.consentReprompt(s, text)
		}

	case 2:
		switch {
		case lexical.IsAffirmative(text):
			s.Data.Consent.FutureContact.ConsentGrant = model.ConsentGrant{Decided: true, Granted: true, Timestamp: &now}
			s.Context.ConsentStep = 3
			return []string{consentQuestions[3]}, true
		case lexical.IsNegative(text):
			s.Data.Consent.FutureContact.ConsentGrant = model.ConsentGrant{Decided: true, Granted: false, Timestamp: &now}
			return e.completeConsent(s, "Understood, we won't contact you beyond this advice."), true
		default:
			return e.consentReprompt(s, text)
		}

	case 3:
		if strings.TrimSpace(text) == "" {
			return e.consentReprompt(s, text)
		}
		s.Data.Consent.FutureContact.Purpose = strings.TrimSpace(text)
		return e.completeConsent(s, "I've noted what kinds of contact would be useful."), true

	default:
		return e.completeConsent(s, ""), true
	}
}

// completeConsent transitions to the education stage.
func (e *Engine) completeConsent(s *model.Session, ack string) []string {
	extra := []string{educationQuestions[0]}
	if ack != "" {
		extra = append([]string{ack}, extra...)
	}
	s.Context.ConsentStep = len(consentQuestions)
	return e.moveToStage(s, catalog.StageEducation, extra...)
}

func (e *Engine) consentReprompt(s *model.Session, text string) ([]string, bool) {
	if lexical.LooksOffScript(text) {
		return nil, false
	}
	return []string{
		"Sorry, I didn't catch that.",
		stepQuestion(consentQuestions, s.Context.ConsentStep),
	}, true
}

// handleConsentUpdate validates and merges a structured consent submission.
func (e *Engine) handleConsentUpdate(s *model.Session, u *model.ConsentUpdate) Response {
	if u == nil {
		return Response{Messages: []string{"The consent update was empty. " + e.resumePrompt(s)}}
	}

	if u.DataProcessing != nil && !*u.DataProcessing {
		model.MergeConsent(&s.Data.Consent, &model.ConsentUpdate{DataProcessing: u.DataProcessing}, e.now())
		return Response{Messages: []string{dataProcessingGateMsg}}
	}
	if u.FutureContact != nil && *u.FutureContact &&
		(u.FutureContactPurpose == nil || strings.TrimSpace(*u.FutureContactPurpose) == "") &&
		strings.TrimSpace(s.Data.Consent.FutureContact.Purpose) == "" {
		return Response{Messages: []string{"future_contact_purpose is required when future contact consent is given."}}
	}

	model.MergeConsent(&s.Data.Consent, u, e.now())

	c := s.Data.Consent
	var missing []string
	if !c.DataProcessing.Decided || !c.DataProcessing.Granted {
		missing = append(missing, "data_processing")
	}
	if !c.EDelivery.Decided {
		missing = append(missing, "e_delivery")
	}
	if !c.FutureContact.Decided {
		missing = append(missing, "future_contact")
	}
	if len(missing) > 0 {
		return Response{Messages: []string{"Consent updated. Still needed: " + strings.Join(missing, ", ") + "."}}
	}

	return Response{Messages: e.completeConsent(s, "All consent decisions are recorded.")}
}
