// Package dialog implements the appraisal intake state machine: per-state
// input acceptance, validation, branching on property type, the edit-menu
// jump table, and the confirmation summary.
package dialog

// EventKind discriminates inbound events from the chat channel.
type EventKind int

const (
	EventFollow   EventKind = iota // first contact / friend added
	EventPostback                  // closed-vocabulary signal (begin, submit, edit)
	EventText                      // free-text message
)

// Postback data vocabulary. These are the wire values the channel delivers.
const (
	PostbackBegin  = "START_APPRAISAL"
	PostbackSubmit = "SUBMIT"
	PostbackEdit   = "EDIT"
)

// Event is a channel-agnostic inbound event. The channel adapter normalizes
// platform events into this shape before invoking the engine.
type Event struct {
	Kind       EventKind
	UserID     string
	ReplyToken string
	Text       string // set for EventText
	Postback   string // set for EventPostback
}

// Message is an outbound reply produced by the engine. The channel adapter
// translates it into the platform's native message schema.
type Message interface {
	isMessage()
}

// Text is a plain reply, optionally carrying suggested responses.
type Text struct {
	Body         string
	QuickReplies []QuickReply
}

func (Text) isMessage() {}

// Card is the confirmation summary, rendered by the channel as a rich card.
// Lines are in canonical display order.
type Card struct {
	Lines []string
}

func (Card) isMessage() {}

// QuickReply is a suggested response chip. Exactly one of Text or Postback is
// set: Text chips echo their value as a user message, Postback chips deliver
// their value as a postback event.
type QuickReply struct {
	Label    string
	Text     string
	Postback string
}

func chips(labels ...string) []QuickReply {
	qs := make([]QuickReply, 0, len(labels))
	for _, l := range labels {
		qs = append(qs, QuickReply{Label: l, Text: l})
	}
	return qs
}
