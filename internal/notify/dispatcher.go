// Package notify forwards finished appraisal submissions to the configured
// integrations. Delivery is best-effort: failures are logged and swallowed,
// never surfaced back into the dialog.
package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/fudosan-dx/satei-bot/internal/domain"
	"github.com/google/uuid"
)

// Dispatcher posts submissions to a spreadsheet webhook and a chat-ops
// webhook. Either URL may be empty, in which case that integration is
// skipped.
type Dispatcher struct {
	httpClient *http.Client
	sheetsURL  string
	slackURL   string
}

// NewDispatcher creates a dispatcher for the configured endpoints.
func NewDispatcher(sheetsURL, slackURL string) *Dispatcher {
	return &Dispatcher{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		sheetsURL:  sheetsURL,
		slackURL:   slackURL,
	}
}

// submission is the payload posted to the spreadsheet webhook: the full
// answer set plus a submission identity.
type submission struct {
	SubmissionID string    `json:"submission_id"`
	ReceivedAt   time.Time `json:"received_at"`
	domain.Answers
}

// Notify forwards the answer set to every configured endpoint. Implements
// dialog.Notifier.
func (d *Dispatcher) Notify(ctx context.Context, answers domain.Answers) {
	id := uuid.NewString()

	if d.sheetsURL != "" {
		payload := submission{
			SubmissionID: id,
			ReceivedAt:   time.Now(),
			Answers:      answers,
		}
		if err := d.post(ctx, d.sheetsURL, payload); err != nil {
			slog.Error("sheets webhook failed", "submission_id", id, "error", err)
		}
	}

	if d.slackURL != "" {
		digest := fmt.Sprintf("新規査定：%s｜%s｜%s｜%s",
			answers.Type.Label(), answers.Address.City, answers.Method, answers.Name)
		if err := d.post(ctx, d.slackURL, map[string]string{"text": digest}); err != nil {
			slog.Error("slack webhook failed", "submission_id", id, "error", err)
		}
	}
}

func (d *Dispatcher) post(ctx context.Context, url string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := d.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("send: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("endpoint returned status %d", resp.StatusCode)
	}
	return nil
}
