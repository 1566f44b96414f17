// Package devchat exposes the dialog over a local WebSocket so the intake
// flow can be exercised without LINE credentials. Development use only.
package devchat

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/coder/websocket"
	"github.com/fudosan-dx/satei-bot/internal/dialog"
	"github.com/google/uuid"
)

// Handler upgrades GET /dev/chat to a WebSocket carrying JSON frames.
type Handler struct {
	engine *dialog.Engine
}

// NewHandler creates the dev chat handler.
func NewHandler(engine *dialog.Engine) *Handler {
	return &Handler{engine: engine}
}

// inFrame is one inbound chat frame.
type inFrame struct {
	Type string `json:"type"` // "text", "postback" or "follow"
	Text string `json:"text,omitempty"`
	Data string `json:"data,omitempty"`
}

// outFrame is one outbound reply frame.
type outFrame struct {
	Type         string     `json:"type"` // "text" or "card"
	Body         string     `json:"body,omitempty"`
	QuickReplies []outQuick `json:"quickReplies,omitempty"`
	Lines        []string   `json:"lines,omitempty"`
}

type outQuick struct {
	Label    string `json:"label"`
	Text     string `json:"text,omitempty"`
	Postback string `json:"postback,omitempty"`
}

// ServeHTTP implements http.Handler for the WebSocket upgrade. Each
// connection gets its own synthetic user identity unless ?user= pins one, so
// a session can be resumed across reconnects.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{
		// Local development tool; the route is only mounted when
		// DEV_CHAT_ENABLED is set.
		InsecureSkipVerify: true,
	})
	if err != nil {
		slog.Debug("dev chat accept failed", "error", err)
		return
	}
	defer conn.Close(websocket.StatusInternalError, "closed")

	userID := r.URL.Query().Get("user")
	if userID == "" {
		userID = "dev-" + uuid.NewString()
	}
	slog.Info("dev chat connected", "user_id", userID)

	ctx := r.Context()
	for {
		_, data, err := conn.Read(ctx)
		if err != nil {
			slog.Info("dev chat disconnected", "user_id", userID)
			return
		}

		var frame inFrame
		if err := json.Unmarshal(data, &frame); err != nil {
			slog.Debug("dev chat bad frame", "error", err)
			continue
		}

		msgs, err := h.engine.Handle(ctx, toEvent(userID, frame))
		if err != nil {
			slog.Error("dev chat turn failed", "user_id", userID, "error", err)
			continue
		}

		if err := writeMessages(ctx, conn, msgs); err != nil {
			slog.Debug("dev chat write failed", "error", err)
			return
		}
	}
}

func toEvent(userID string, frame inFrame) dialog.Event {
	ev := dialog.Event{UserID: userID, ReplyToken: "dev"}
	switch frame.Type {
	case "postback":
		ev.Kind = dialog.EventPostback
		ev.Postback = frame.Data
	case "follow":
		ev.Kind = dialog.EventFollow
	default:
		ev.Kind = dialog.EventText
		ev.Text = frame.Text
	}
	return ev
}

func writeMessages(ctx context.Context, conn *websocket.Conn, msgs []dialog.Message) error {
	for _, m := range msgs {
		var frame outFrame
		switch m := m.(type) {
		case dialog.Text:
			frame.Type = "text"
			frame.Body = m.Body
			for _, q := range m.QuickReplies {
				frame.QuickReplies = append(frame.QuickReplies, outQuick{
					Label: q.Label, Text: q.Text, Postback: q.Postback,
				})
			}
		case dialog.Card:
			frame.Type = "card"
			frame.Lines = m.Lines
		default:
			continue
		}

		data, err := json.Marshal(frame)
		if err != nil {
			return err
		}
		if err := conn.Write(ctx, websocket.MessageText, data); err != nil {
			return err
		}
	}
	return nil
}
