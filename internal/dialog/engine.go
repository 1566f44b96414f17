package dialog

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/fudosan-dx/satei-bot/internal/domain"
	"github.com/fudosan-dx/satei-bot/internal/store"
)

// Notifier receives a finished answer set after the user submits. Delivery is
// best-effort; implementations log their own failures and never propagate
// them back into the dialog.
type Notifier interface {
	Notify(ctx context.Context, answers domain.Answers)
}

// Engine is the dialog state machine. Given a session and an inbound event it
// computes the next state, the answer mutations, and the outbound messages.
type Engine struct {
	sessions   store.SessionStore
	notifier   Notifier
	privacyURL string
	locks      *keyedLocks
}

// New creates an engine. notifier may be nil when no outbound integrations
// are configured.
func New(sessions store.SessionStore, notifier Notifier, privacyURL string) *Engine {
	if privacyURL == "" {
		privacyURL = "https://example.com/privacy"
	}
	return &Engine{
		sessions:   sessions,
		notifier:   notifier,
		privacyURL: privacyURL,
		locks:      newKeyedLocks(),
	}
}

// Handle processes one inbound event and returns the messages to send back.
// A nil message slice with nil error is the deliberate silent no-op for
// unrecognized input. Session load/store failures are returned to the caller;
// nothing else here can fail.
func (e *Engine) Handle(ctx context.Context, ev Event) ([]Message, error) {
	if ev.UserID == "" {
		return nil, nil
	}

	unlock := e.locks.lock(ev.UserID)
	defer unlock()

	s, err := e.sessions.Get(ctx, ev.UserID)
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	if s == nil {
		s = domain.NewSession(ev.UserID)
	}

	var msgs []Message
	switch ev.Kind {
	case EventFollow:
		msgs = followMessages()
	case EventPostback:
		msgs = e.handlePostback(ctx, s, ev.Postback)
	case EventText:
		msgs = e.handleText(s, strings.TrimSpace(ev.Text))
	}

	s.UpdatedAt = time.Now()
	if err := e.sessions.Set(ctx, s); err != nil {
		return nil, fmt.Errorf("store session: %w", err)
	}
	return msgs, nil
}

func (e *Engine) handlePostback(ctx context.Context, s *domain.Session, data string) []Message {
	switch {
	case data == PostbackBegin:
		s.Restart()
		return startMessages()
	case s.State == domain.StateWaitConfirm && data == PostbackSubmit:
		if e.notifier != nil {
			// Fire and forget. The notifier logs its own failures; the
			// submission never rolls back on delivery problems.
			answers := s.Answers
			go e.notifier.Notify(context.WithoutCancel(ctx), answers)
		}
		s.State = domain.StateDone
		slog.Info("appraisal submitted", "user_id", s.UserID, "type", s.Answers.Type)
		return []Message{
			Text{Body: submittedText},
			Text{Body: againOfferText, QuickReplies: []QuickReply{
				{Label: "もう一度査定する", Postback: PostbackBegin},
			}},
		}
	case s.State == domain.StateWaitConfirm && data == PostbackEdit:
		s.State = domain.StateEditMenu
		return []Message{Text{Body: editMenuText, QuickReplies: chips(editLabels(s.Answers)...)}}
	}
	return nil
}

func (e *Engine) handleText(s *domain.Session, t string) []Message {
	// Restart keywords win over everything, including validation.
	if restartKeywords[t] {
		s.Restart()
		return startMessages()
	}

	if s.State == domain.StateEditMenu {
		return e.handleEditMenu(s, t)
	}

	if h, ok := textHandlers[s.State]; ok {
		if msgs, handled := h(e, s, t); handled {
			return msgs
		}
	}

	if ackPhrases[t] {
		return []Message{Text{Body: thanksText}}
	}

	// Unmatched input is ignored on purpose: no reply, no state change.
	return nil
}

func startMessages() []Message {
	return []Message{
		Text{Body: introText},
		Text{Body: promptTypeText, QuickReplies: chips(typeLabels...)},
	}
}

func followMessages() []Message {
	return []Message{
		Text{Body: followGreetingText},
		Text{Body: followOfferText, QuickReplies: []QuickReply{
			{Label: "はじめる", Postback: PostbackBegin},
			{Label: "あとで", Text: "あとで"},
		}},
	}
}

// showConfirm moves the session to WAIT_CONFIRM and renders the summary card.
func showConfirm(s *domain.Session) []Message {
	s.State = domain.StateWaitConfirm
	s.Editing = false
	return []Message{Card{Lines: SummaryLines(s.Answers)}}
}
