package dialog

import (
	"github.com/fudosan-dx/satei-bot/internal/domain"
)

// editTarget is one entry of the edit menu: the chip label, whether the
// category applies to the collected answers, and the ASK_* step it jumps to.
// The same field-requirements table that drives the main flow decides
// applicability, so the menu cannot offer a field the type does not have.
type editTarget struct {
	label   string
	applies func(req domain.FieldRequirements, a domain.Answers) bool
	enter   func(e *Engine, s *domain.Session) []Message
}

func always(domain.FieldRequirements, domain.Answers) bool { return true }

var editTargets = []editTarget{
	{"住所", always, func(_ *Engine, s *domain.Session) []Message {
		return prompt(s, domain.StateAskAddressPref, promptPrefText)
	}},
	{"建物名", func(req domain.FieldRequirements, _ domain.Answers) bool { return req.ApartmentFields },
		func(_ *Engine, s *domain.Session) []Message {
			return prompt(s, domain.StateAskAptName, promptAptNameText)
		}},
	{"部屋番号", func(req domain.FieldRequirements, _ domain.Answers) bool { return req.ApartmentFields },
		func(_ *Engine, s *domain.Session) []Message {
			return prompt(s, domain.StateAskAptRoomNo, promptRoomNoText)
		}},
	{"面積", func(req domain.FieldRequirements, _ domain.Answers) bool { return req.AreaKind != domain.AreaNone },
		func(_ *Engine, s *domain.Session) []Message {
			if domain.Requirements(s.Answers.Type).AreaKind == domain.AreaLandBuilding {
				return prompt(s, domain.StateAskAreaLand, promptAreaLandText)
			}
			return prompt(s, domain.StateAskArea, promptAreaText)
		}},
	{"間取り", always, func(_ *Engine, s *domain.Session) []Message {
		return prompt(s, domain.StateAskLayout, promptLayoutText, layoutLabels...)
	}},
	{"築年", func(req domain.FieldRequirements, _ domain.Answers) bool { return req.YearBuilt },
		func(_ *Engine, s *domain.Session) []Message {
			return prompt(s, domain.StateAskYearBuilt, promptYearBuiltText)
		}},
	{"現況", always, func(_ *Engine, s *domain.Session) []Message {
		return prompt(s, domain.StateAskStatus, promptStatusText, occupancyLabels...)
	}},
	{"所有者", always, func(_ *Engine, s *domain.Session) []Message {
		return prompt(s, domain.StateAskOwner, promptOwnerText, ownerLabels...)
	}},
	{"売却理由", always, func(_ *Engine, s *domain.Session) []Message {
		return prompt(s, domain.StateAskReason, promptReasonText, reasonLabels...)
	}},
	{"査定方法", always, func(_ *Engine, s *domain.Session) []Message {
		return prompt(s, domain.StateAskMethod, promptMethodText, methodLabels...)
	}},
	{"時期", always, func(_ *Engine, s *domain.Session) []Message {
		return prompt(s, domain.StateAskTiming, promptTimingText, timingLabels...)
	}},
	{"連絡方法", always, func(_ *Engine, s *domain.Session) []Message {
		return prompt(s, domain.StateAskContactMethod, promptContactText, contactLabels...)
	}},
	{"氏名", always, func(_ *Engine, s *domain.Session) []Message {
		return prompt(s, domain.StateAskName, promptNameText)
	}},
	{"連絡先", func(_ domain.FieldRequirements, a domain.Answers) bool {
		return a.ContactMethod == domain.ContactPhone || a.ContactMethod == domain.ContactMail
	}, func(_ *Engine, s *domain.Session) []Message {
		if s.Answers.ContactMethod == domain.ContactPhone {
			return prompt(s, domain.StateAskPhone, promptPhoneText)
		}
		return prompt(s, domain.StateAskEmail, promptEmailText)
	}},
	{"備考", always, func(_ *Engine, s *domain.Session) []Message {
		return prompt(s, domain.StateAskNotes, promptNotesText)
	}},
}

// editLabels returns the menu chips applicable to the answers collected so far.
func editLabels(a domain.Answers) []string {
	req := domain.Requirements(a.Type)
	labels := make([]string, 0, len(editTargets))
	for _, et := range editTargets {
		if et.applies(req, a) {
			labels = append(labels, et.label)
		}
	}
	return labels
}

// handleEditMenu dispatches an edit-menu selection to its ASK_* step. The
// edited step reuses the main-flow validators and, via Session.Editing,
// returns to WAIT_CONFIRM on completion. Anything unrecognized falls back to
// the confirmation card.
func (e *Engine) handleEditMenu(s *domain.Session, t string) []Message {
	req := domain.Requirements(s.Answers.Type)
	for _, et := range editTargets {
		if et.label != t {
			continue
		}
		if !et.applies(req, s.Answers) {
			break
		}
		s.Editing = true
		return et.enter(e, s)
	}
	return showConfirm(s)
}
