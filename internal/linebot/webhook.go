// Package linebot adapts the LINE Messaging API to the dialog engine:
// webhook verification, event normalization, and reply delivery.
package linebot

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"

	"github.com/fudosan-dx/satei-bot/internal/dialog"
	"golang.org/x/sync/errgroup"
)

// webhookRequest mirrors the LINE webhook delivery body.
type webhookRequest struct {
	Destination string         `json:"destination"`
	Events      []webhookEvent `json:"events"`
}

type webhookEvent struct {
	Type       string `json:"type"`
	ReplyToken string `json:"replyToken"`
	Source     struct {
		UserID string `json:"userId"`
	} `json:"source"`
	Message struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"message"`
	Postback struct {
		Data string `json:"data"`
	} `json:"postback"`
}

// WebhookHandler verifies and dispatches inbound LINE webhook batches.
type WebhookHandler struct {
	engine *dialog.Engine
	client *Client
	secret string
}

// NewWebhookHandler creates the webhook endpoint handler.
func NewWebhookHandler(engine *dialog.Engine, client *Client, channelSecret string) *WebhookHandler {
	return &WebhookHandler{engine: engine, client: client, secret: channelSecret}
}

// ServeHTTP handles POST /webhook. Events in one batch run concurrently;
// different users are independent and the engine serializes per user. Any
// engine or reply failure fails the whole batch with a 500, which LINE
// retries.
func (h *WebhookHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "read body", http.StatusBadRequest)
		return
	}

	if !validSignature(h.secret, body, r.Header.Get("X-Line-Signature")) {
		slog.Warn("webhook signature mismatch", "ip", r.RemoteAddr)
		http.Error(w, "bad signature", http.StatusBadRequest)
		return
	}

	var req webhookRequest
	if err := json.Unmarshal(body, &req); err != nil {
		http.Error(w, "bad payload", http.StatusBadRequest)
		return
	}

	g, ctx := errgroup.WithContext(r.Context())
	for _, ev := range req.Events {
		ev := ev
		g.Go(func() error {
			return h.handleEvent(ctx, ev)
		})
	}
	if err := g.Wait(); err != nil {
		slog.Error("webhook batch failed", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusOK)
}

func (h *WebhookHandler) handleEvent(ctx context.Context, ev webhookEvent) error {
	dev, ok := normalizeEvent(ev)
	if !ok {
		return nil
	}

	msgs, err := h.engine.Handle(ctx, dev)
	if err != nil {
		return err
	}
	if len(msgs) == 0 || dev.ReplyToken == "" {
		return nil
	}
	return h.client.Reply(ctx, dev.ReplyToken, msgs)
}

// normalizeEvent maps a platform event onto the engine's abstract event.
// Unsupported event kinds (stickers, unfollow, ...) are skipped.
func normalizeEvent(ev webhookEvent) (dialog.Event, bool) {
	base := dialog.Event{
		UserID:     ev.Source.UserID,
		ReplyToken: ev.ReplyToken,
	}
	switch ev.Type {
	case "follow":
		base.Kind = dialog.EventFollow
		return base, true
	case "postback":
		base.Kind = dialog.EventPostback
		base.Postback = ev.Postback.Data
		return base, true
	case "message":
		if ev.Message.Type != "text" {
			return dialog.Event{}, false
		}
		base.Kind = dialog.EventText
		base.Text = ev.Message.Text
		return base, true
	}
	return dialog.Event{}, false
}

// validSignature checks the X-Line-Signature header: base64 of the
// HMAC-SHA256 of the raw request body under the channel secret.
func validSignature(secret string, body []byte, header string) bool {
	decoded, err := base64.StdEncoding.DecodeString(header)
	if err != nil {
		return false
	}
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write(body)
	return hmac.Equal(decoded, mac.Sum(nil))
}
