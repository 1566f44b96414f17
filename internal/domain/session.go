package domain

import (
	"time"
)

// Session holds the per-user dialog position and the answers collected so
// far. One session exists per user identity; a restart overwrites it.
type Session struct {
	UserID  string  `json:"user_id"`
	State   State   `json:"state"`
	Answers Answers `json:"answers"`

	// Editing marks that the current ASK_* step was entered from the edit
	// menu, so completing it returns to WAIT_CONFIRM instead of continuing
	// the main sequence.
	Editing bool `json:"editing,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// NewSession creates a fresh session positioned before the first question.
func NewSession(userID string) *Session {
	now := time.Now()
	return &Session{
		UserID:    userID,
		State:     StateInit,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Restart resets the dialog to the first question, discarding any collected
// answers and any in-progress edit.
func (s *Session) Restart() {
	s.State = StateAskType
	s.Answers = Answers{}
	s.Editing = false
	s.UpdatedAt = time.Now()
}
