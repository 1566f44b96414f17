package linebot

import (
	"github.com/fudosan-dx/satei-bot/internal/dialog"
)

// LINE message schema, limited to the shapes this bot sends.

type lineMessage struct {
	Type       string      `json:"type"`
	Text       string      `json:"text,omitempty"`
	AltText    string      `json:"altText,omitempty"`
	Contents   *flexBubble `json:"contents,omitempty"`
	QuickReply *quickReply `json:"quickReply,omitempty"`
}

type quickReply struct {
	Items []quickReplyItem `json:"items"`
}

type quickReplyItem struct {
	Type   string     `json:"type"`
	Action lineAction `json:"action"`
}

type lineAction struct {
	Type  string `json:"type"`
	Label string `json:"label"`
	Text  string `json:"text,omitempty"`
	Data  string `json:"data,omitempty"`
}

type flexBubble struct {
	Type   string   `json:"type"`
	Body   *flexBox `json:"body,omitempty"`
	Footer *flexBox `json:"footer,omitempty"`
}

type flexBox struct {
	Type     string          `json:"type"`
	Layout   string          `json:"layout"`
	Spacing  string          `json:"spacing,omitempty"`
	Contents []flexComponent `json:"contents"`
}

type flexComponent struct {
	Type   string      `json:"type"`
	Text   string      `json:"text,omitempty"`
	Wrap   bool        `json:"wrap,omitempty"`
	Weight string      `json:"weight,omitempty"`
	Size   string      `json:"size,omitempty"`
	Style  string      `json:"style,omitempty"`
	Action *lineAction `json:"action,omitempty"`
}

const confirmAltText = "査定内容の確認"

// toLineMessages translates the engine's abstract messages into LINE message
// objects. The confirmation card becomes a flex bubble with submit/edit
// postback buttons in its footer.
func toLineMessages(msgs []dialog.Message) []lineMessage {
	out := make([]lineMessage, 0, len(msgs))
	for _, m := range msgs {
		switch m := m.(type) {
		case dialog.Text:
			lm := lineMessage{Type: "text", Text: m.Body}
			if len(m.QuickReplies) > 0 {
				lm.QuickReply = toQuickReply(m.QuickReplies)
			}
			out = append(out, lm)
		case dialog.Card:
			out = append(out, lineMessage{
				Type:     "flex",
				AltText:  confirmAltText,
				Contents: toConfirmBubble(m.Lines),
			})
		}
	}
	return out
}

func toQuickReply(qs []dialog.QuickReply) *quickReply {
	items := make([]quickReplyItem, 0, len(qs))
	for _, q := range qs {
		action := lineAction{Label: q.Label}
		if q.Postback != "" {
			action.Type = "postback"
			action.Data = q.Postback
		} else {
			action.Type = "message"
			action.Text = q.Text
		}
		items = append(items, quickReplyItem{Type: "action", Action: action})
	}
	return &quickReply{Items: items}
}

func toConfirmBubble(lines []string) *flexBubble {
	body := []flexComponent{
		{Type: "text", Text: "査定内容のご確認", Weight: "bold", Size: "md"},
	}
	for _, line := range lines {
		body = append(body, flexComponent{Type: "text", Text: line, Wrap: true, Size: "sm"})
	}
	return &flexBubble{
		Type: "bubble",
		Body: &flexBox{Type: "box", Layout: "vertical", Spacing: "sm", Contents: body},
		Footer: &flexBox{
			Type:    "box",
			Layout:  "horizontal",
			Spacing: "sm",
			Contents: []flexComponent{
				{Type: "button", Style: "primary", Action: &lineAction{
					Type: "postback", Label: "この内容で送信", Data: dialog.PostbackSubmit,
				}},
				{Type: "button", Style: "secondary", Action: &lineAction{
					Type: "postback", Label: "修正する", Data: dialog.PostbackEdit,
				}},
			},
		},
	}
}
