// Package domain contains the core types of the appraisal intake dialog.
package domain

// PropertyType classifies the property being appraised. It drives which
// questions are asked and which answer fields are required.
type PropertyType string

const (
	TypeApartment PropertyType = "apartment"
	TypeHouse     PropertyType = "house"
	TypeLand      PropertyType = "land"
	TypeOther     PropertyType = "other"
)

var propertyTypeLabels = map[PropertyType]string{
	TypeApartment: "マンション",
	TypeHouse:     "戸建て",
	TypeLand:      "土地",
	TypeOther:     "その他",
}

// ParsePropertyType maps a quick-reply label to a PropertyType.
func ParsePropertyType(label string) (PropertyType, bool) {
	for t, l := range propertyTypeLabels {
		if l == label {
			return t, true
		}
	}
	return "", false
}

// Label returns the user-facing Japanese label for the type.
func (t PropertyType) Label() string {
	return propertyTypeLabels[t]
}

// ContactMethod is how the customer wants to be reached.
type ContactMethod string

const (
	ContactLINE  ContactMethod = "line"
	ContactPhone ContactMethod = "phone"
	ContactMail  ContactMethod = "mail"
)

var contactMethodLabels = map[ContactMethod]string{
	ContactLINE:  "LINEのみ",
	ContactPhone: "電話",
	ContactMail:  "メール",
}

// ParseContactMethod maps a quick-reply label to a ContactMethod.
func ParseContactMethod(label string) (ContactMethod, bool) {
	for m, l := range contactMethodLabels {
		if l == label {
			return m, true
		}
	}
	return "", false
}

// Label returns the user-facing Japanese label for the method.
func (m ContactMethod) Label() string {
	return contactMethodLabels[m]
}

// AppraisalMethod is the short code stored for the chosen appraisal style.
type AppraisalMethod string

const (
	MethodDesk   AppraisalMethod = "desk"
	MethodOnline AppraisalMethod = "online"
	MethodVisit  AppraisalMethod = "visit"
)

var appraisalMethodLabels = map[AppraisalMethod]string{
	MethodDesk:   "机上査定",
	MethodOnline: "オンライン面談",
	MethodVisit:  "訪問査定",
}

// ParseAppraisalMethod maps a quick-reply label to its short code.
func ParseAppraisalMethod(label string) (AppraisalMethod, bool) {
	for m, l := range appraisalMethodLabels {
		if l == label {
			return m, true
		}
	}
	return "", false
}

// Label returns the user-facing Japanese label for the short code. Unknown
// codes render as-is so stale data stays visible rather than disappearing.
func (m AppraisalMethod) Label() string {
	if l, ok := appraisalMethodLabels[m]; ok {
		return l
	}
	return string(m)
}

// Address is collected incrementally across three dialog steps.
type Address struct {
	Pref   string `json:"pref,omitempty"`
	City   string `json:"city,omitempty"`
	Street string `json:"street,omitempty"`
}

// Join concatenates the parts that have been collected so far.
func (a Address) Join() string {
	return a.Pref + a.City + a.Street
}

// Area holds the measurements relevant to the property type. Which fields are
// populated is governed by Requirements; see AreaKind.
type Area struct {
	Exclusive string `json:"exclusive,omitempty"`
	Land      string `json:"land,omitempty"`
	Building  string `json:"building,omitempty"`
}

// Answers is the record assembled across the conversation. Fields stay empty
// until the corresponding step has been answered.
type Answers struct {
	Type          PropertyType    `json:"type,omitempty"`
	Address       Address         `json:"address,omitzero"`
	ApartmentName string          `json:"apartment_name,omitempty"`
	RoomNo        string          `json:"room_no,omitempty"`
	Area          Area            `json:"area,omitzero"`
	Layout        string          `json:"layout,omitempty"`
	YearBuilt     string          `json:"year_built,omitempty"`
	AgeBuilt      string          `json:"age_built,omitempty"`
	Occupancy     string          `json:"occupancy,omitempty"`
	OwnerType     string          `json:"owner_type,omitempty"`
	SaleReason    string          `json:"sale_reason,omitempty"`
	Method        AppraisalMethod `json:"appraisal_method,omitempty"`
	SaleTiming    string          `json:"sale_timing,omitempty"`
	ContactMethod ContactMethod   `json:"contact_method,omitempty"`
	Name          string          `json:"name,omitempty"`
	Phone         string          `json:"phone,omitempty"`
	Email         string          `json:"email,omitempty"`
	Notes         string          `json:"notes,omitempty"`
	PrivacyAgree  bool            `json:"privacy_agree,omitempty"`
}
