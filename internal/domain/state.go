package domain

// State identifies the dialog step a session is currently on. It determines
// which prompt was last sent and which inputs are acceptable next.
type State string

const (
	StateInit             State = "INIT"
	StateAskType          State = "ASK_TYPE"
	StateAskAddressPref   State = "ASK_ADDRESS_PREF"
	StateAskAddressCity   State = "ASK_ADDRESS_CITY"
	StateAskAddressStreet State = "ASK_ADDRESS_STREET"
	StateAskAptName       State = "ASK_APT_NAME"
	StateAskAptRoomNo     State = "ASK_APT_ROOMNO"
	StateAskArea          State = "ASK_AREA"
	StateAskAreaLand      State = "ASK_AREA_LAND"
	StateAskAreaBuilding  State = "ASK_AREA_BUILDING"
	StateAskLayout        State = "ASK_LAYOUT"
	StateAskYearBuilt     State = "ASK_YEAR_BUILT"
	StateAskStatus        State = "ASK_STATUS"
	StateAskBreakCustomer State = "ASK_BREAK_CUSTOMER"
	StateAskOwner         State = "ASK_OWNER"
	StateAskReason        State = "ASK_REASON"
	StateAskMethod        State = "ASK_METHOD"
	StateAskTiming        State = "ASK_TIMING"
	StateAskContactMethod State = "ASK_CONTACT_METHOD"
	StateAskName          State = "ASK_NAME"
	StateAskPhone         State = "ASK_PHONE"
	StateAskEmail         State = "ASK_EMAIL"
	StateAskNotes         State = "ASK_NOTES"
	StateAskPrivacy       State = "ASK_PRIVACY"
	StateWaitConfirm      State = "WAIT_CONFIRM"
	StateEditMenu         State = "EDIT_MENU"
	StateDone             State = "DONE"
)
