package linebot

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/fudosan-dx/satei-bot/internal/dialog"
)

const defaultAPIBase = "https://api.line.me"

// Client is a minimal LINE Messaging API client covering what the bot needs:
// replying to events with the one-shot reply token.
type Client struct {
	httpClient *http.Client
	token      string
	apiBase    string
}

// NewClient creates a client using the channel access token.
func NewClient(channelAccessToken string) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		token:      channelAccessToken,
		apiBase:    defaultAPIBase,
	}
}

type replyRequest struct {
	ReplyToken string        `json:"replyToken"`
	Messages   []lineMessage `json:"messages"`
}

// Reply sends the outbound messages for one reply token. LINE accepts at most
// five messages per reply; the engine never produces more than two.
func (c *Client) Reply(ctx context.Context, replyToken string, msgs []dialog.Message) error {
	payload, err := json.Marshal(replyRequest{
		ReplyToken: replyToken,
		Messages:   toLineMessages(msgs),
	})
	if err != nil {
		return fmt.Errorf("encode reply: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiBase+"/v2/bot/message/reply", bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("build reply request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("send reply: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("reply rejected: status %d: %s", resp.StatusCode, body)
	}
	return nil
}
