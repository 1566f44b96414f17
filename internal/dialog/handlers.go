package dialog

import (
	"github.com/fudosan-dx/satei-bot/internal/domain"
)

// textHandler processes free text for one state. handled=false means the
// input matched nothing in this state and falls through to the
// acknowledgement check / silent no-op. handled=true with messages covers
// both a successful transition and a validation re-prompt.
type textHandler func(e *Engine, s *domain.Session, t string) (msgs []Message, handled bool)

// The transition table. One entry per input-accepting state; the restart rule
// and the edit menu are handled before this table is consulted.
var textHandlers = map[domain.State]textHandler{
	domain.StateAskType:          handleAskType,
	domain.StateAskAddressPref:   handleAskAddressPref,
	domain.StateAskAddressCity:   handleAskAddressCity,
	domain.StateAskAddressStreet: handleAskAddressStreet,
	domain.StateAskAptName:       handleAskAptName,
	domain.StateAskAptRoomNo:     handleAskAptRoomNo,
	domain.StateAskArea:          handleAskArea,
	domain.StateAskAreaLand:      handleAskAreaLand,
	domain.StateAskAreaBuilding:  handleAskAreaBuilding,
	domain.StateAskLayout:        handleAskLayout,
	domain.StateAskYearBuilt:     handleAskYearBuilt,
	domain.StateAskStatus:        handleAskStatus,
	domain.StateAskBreakCustomer: handleAskBreak,
	domain.StateAskOwner:         handleAskOwner,
	domain.StateAskReason:        handleAskReason,
	domain.StateAskMethod:        handleAskMethod,
	domain.StateAskTiming:        handleAskTiming,
	domain.StateAskContactMethod: handleAskContactMethod,
	domain.StateAskName:          handleAskName,
	domain.StateAskPhone:         handleAskPhone,
	domain.StateAskEmail:         handleAskEmail,
	domain.StateAskNotes:         handleAskNotes,
	domain.StateAskPrivacy:       handleAskPrivacy,
}

func prompt(s *domain.Session, next domain.State, body string, quick ...string) []Message {
	s.State = next
	m := Text{Body: body}
	if len(quick) > 0 {
		m.QuickReplies = chips(quick...)
	}
	return []Message{m}
}

func handleAskType(_ *Engine, s *domain.Session, t string) ([]Message, bool) {
	pt, ok := domain.ParsePropertyType(t)
	if !ok {
		return nil, false
	}
	s.Answers.Type = pt
	return prompt(s, domain.StateAskAddressPref, t+"ですね、承知しました。"+promptPrefText), true
}

func handleAskAddressPref(_ *Engine, s *domain.Session, t string) ([]Message, bool) {
	s.Answers.Address = domain.Address{Pref: t}
	return prompt(s, domain.StateAskAddressCity, promptCityText), true
}

func handleAskAddressCity(_ *Engine, s *domain.Session, t string) ([]Message, bool) {
	s.Answers.Address.City = t
	return prompt(s, domain.StateAskAddressStreet, promptStreetText), true
}

func handleAskAddressStreet(_ *Engine, s *domain.Session, t string) ([]Message, bool) {
	s.Answers.Address.Street = t
	if s.Editing {
		return showConfirm(s), true
	}
	req := domain.Requirements(s.Answers.Type)
	if req.ApartmentFields {
		return prompt(s, domain.StateAskAptName, promptAptNameText), true
	}
	if req.AreaKind == domain.AreaLandBuilding {
		return prompt(s, domain.StateAskAreaLand, promptAreaLandText), true
	}
	return prompt(s, domain.StateAskArea, promptAreaText), true
}

func handleAskAptName(_ *Engine, s *domain.Session, t string) ([]Message, bool) {
	// A combined "building 305" line is split; if the trailing token is not
	// room-shaped, the whole line is the name and we ask for the room next.
	name, room := splitAptNameRoom(t)
	s.Answers.ApartmentName = name
	if room == "" {
		return prompt(s, domain.StateAskAptRoomNo, promptRoomNoText), true
	}
	s.Answers.RoomNo = room
	if s.Editing {
		return showConfirm(s), true
	}
	return prompt(s, domain.StateAskArea, promptAreaExclusiveText), true
}

func handleAskAptRoomNo(_ *Engine, s *domain.Session, t string) ([]Message, bool) {
	room := normalizeRoomNo(t)
	if !validRoomNo(room) {
		return []Message{Text{Body: retryRoomNoText}}, true
	}
	s.Answers.RoomNo = room
	if s.Editing {
		return showConfirm(s), true
	}
	return prompt(s, domain.StateAskArea, promptAreaExclusiveText), true
}

func handleAskArea(_ *Engine, s *domain.Session, t string) ([]Message, bool) {
	if !validArea(t) {
		return []Message{Text{Body: retryAreaText}}, true
	}
	switch domain.Requirements(s.Answers.Type).AreaKind {
	case domain.AreaExclusive:
		s.Answers.Area = domain.Area{Exclusive: t}
	case domain.AreaLandOnly:
		s.Answers.Area = domain.Area{Land: t}
	}
	if s.Editing {
		return showConfirm(s), true
	}
	return prompt(s, domain.StateAskLayout, promptLayoutText, layoutLabels...), true
}

func handleAskAreaLand(_ *Engine, s *domain.Session, t string) ([]Message, bool) {
	if !validArea(t) {
		return []Message{Text{Body: retryAreaLandText}}, true
	}
	s.Answers.Area = domain.Area{Land: t}
	return prompt(s, domain.StateAskAreaBuilding, promptAreaBuildingText), true
}

func handleAskAreaBuilding(_ *Engine, s *domain.Session, t string) ([]Message, bool) {
	if !validArea(t) {
		return []Message{Text{Body: retryAreaBuildingText}}, true
	}
	s.Answers.Area.Building = t
	if s.Editing {
		return showConfirm(s), true
	}
	return prompt(s, domain.StateAskLayout, promptLayoutText, layoutLabels...), true
}

func handleAskLayout(_ *Engine, s *domain.Session, t string) ([]Message, bool) {
	if !contains(layoutLabels, t) {
		return nil, false
	}
	s.Answers.Layout = t
	if s.Editing {
		return showConfirm(s), true
	}
	if domain.Requirements(s.Answers.Type).YearBuilt {
		return prompt(s, domain.StateAskYearBuilt, promptYearBuiltText), true
	}
	return prompt(s, domain.StateAskStatus, promptStatusText, occupancyLabels...), true
}

func handleAskYearBuilt(_ *Engine, s *domain.Session, t string) ([]Message, bool) {
	if !validYearBuilt(t) {
		return []Message{Text{Body: retryYearBuiltText}}, true
	}
	// The two notations are mutually exclusive; an edit switching notation
	// clears the other field.
	if isAgeBuilt(t) {
		s.Answers.AgeBuilt = t
		s.Answers.YearBuilt = ""
	} else {
		s.Answers.YearBuilt = t
		s.Answers.AgeBuilt = ""
	}
	if s.Editing {
		return showConfirm(s), true
	}
	return prompt(s, domain.StateAskStatus, promptStatusText, occupancyLabels...), true
}

func handleAskStatus(_ *Engine, s *domain.Session, t string) ([]Message, bool) {
	if !contains(occupancyLabels, t) {
		return nil, false
	}
	s.Answers.Occupancy = t
	if s.Editing {
		return showConfirm(s), true
	}
	return prompt(s, domain.StateAskBreakCustomer, breakText, continueWord), true
}

func handleAskBreak(_ *Engine, s *domain.Session, t string) ([]Message, bool) {
	if t != continueWord {
		return nil, false
	}
	return prompt(s, domain.StateAskOwner, promptOwnerText, ownerLabels...), true
}

func handleAskOwner(_ *Engine, s *domain.Session, t string) ([]Message, bool) {
	if !contains(ownerLabels, t) {
		return nil, false
	}
	s.Answers.OwnerType = t
	if s.Editing {
		return showConfirm(s), true
	}
	return prompt(s, domain.StateAskReason, promptReasonText, reasonLabels...), true
}

func handleAskReason(_ *Engine, s *domain.Session, t string) ([]Message, bool) {
	// Chips are offered but free text is accepted here.
	s.Answers.SaleReason = t
	if s.Editing {
		return showConfirm(s), true
	}
	return prompt(s, domain.StateAskMethod, promptMethodText, methodLabels...), true
}

func handleAskMethod(_ *Engine, s *domain.Session, t string) ([]Message, bool) {
	m, ok := domain.ParseAppraisalMethod(t)
	if !ok {
		return nil, false
	}
	s.Answers.Method = m
	if s.Editing {
		return showConfirm(s), true
	}
	return prompt(s, domain.StateAskTiming, promptTimingText, timingLabels...), true
}

func handleAskTiming(_ *Engine, s *domain.Session, t string) ([]Message, bool) {
	if !contains(timingLabels, t) {
		return nil, false
	}
	s.Answers.SaleTiming = t
	if s.Editing {
		return showConfirm(s), true
	}
	return prompt(s, domain.StateAskContactMethod, promptContactText, contactLabels...), true
}

func handleAskContactMethod(_ *Engine, s *domain.Session, t string) ([]Message, bool) {
	m, ok := domain.ParseContactMethod(t)
	if !ok {
		return nil, false
	}
	// Changing the method invalidates any previously recorded contact detail;
	// exactly one of phone/email may be set, matching the method.
	if m != s.Answers.ContactMethod {
		s.Answers.Phone = ""
		s.Answers.Email = ""
	}
	s.Answers.ContactMethod = m
	if s.Editing {
		switch m {
		case domain.ContactPhone:
			return prompt(s, domain.StateAskPhone, promptPhoneText), true
		case domain.ContactMail:
			return prompt(s, domain.StateAskEmail, promptEmailText), true
		}
		return showConfirm(s), true
	}
	return prompt(s, domain.StateAskName, promptNameText), true
}

func handleAskName(_ *Engine, s *domain.Session, t string) ([]Message, bool) {
	s.Answers.Name = t
	if s.Editing {
		return showConfirm(s), true
	}
	switch s.Answers.ContactMethod {
	case domain.ContactPhone:
		return prompt(s, domain.StateAskPhone, promptPhoneText), true
	case domain.ContactMail:
		return prompt(s, domain.StateAskEmail, promptEmailText), true
	}
	return prompt(s, domain.StateAskNotes, promptNotesText), true
}

func handleAskPhone(_ *Engine, s *domain.Session, t string) ([]Message, bool) {
	if !validPhone(t) {
		return []Message{Text{Body: retryPhoneText}}, true
	}
	s.Answers.Phone = t
	if s.Editing {
		return showConfirm(s), true
	}
	return prompt(s, domain.StateAskNotes, promptNotesText), true
}

func handleAskEmail(_ *Engine, s *domain.Session, t string) ([]Message, bool) {
	if !validEmail(t) {
		return []Message{Text{Body: retryEmailText}}, true
	}
	s.Answers.Email = t
	if s.Editing {
		return showConfirm(s), true
	}
	return prompt(s, domain.StateAskNotes, promptNotesText), true
}

func handleAskNotes(e *Engine, s *domain.Session, t string) ([]Message, bool) {
	if t == skipNotesWord {
		s.Answers.Notes = ""
	} else {
		s.Answers.Notes = t
	}
	if s.Editing {
		return showConfirm(s), true
	}
	body := "【プライバシーポリシー】\n" + e.privacyURL + "\n同意いただける場合は「" + agreeWord + "」を選んでください。"
	return prompt(s, domain.StateAskPrivacy, body, agreeWord), true
}

func handleAskPrivacy(_ *Engine, s *domain.Session, t string) ([]Message, bool) {
	if t != agreeWord {
		return nil, false
	}
	s.Answers.PrivacyAgree = true
	return showConfirm(s), true
}
