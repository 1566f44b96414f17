package store

import (
	"context"
	"sync"

	"github.com/fudosan-dx/satei-bot/internal/domain"
)

// Memory is the reference in-memory SessionStore. Sessions are stored by
// value so callers never share a session struct with the map.
type Memory struct {
	mu       sync.RWMutex
	sessions map[string]domain.Session
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{sessions: make(map[string]domain.Session)}
}

// Get returns a copy of the stored session, or (nil, nil) when absent.
func (m *Memory) Get(_ context.Context, userID string) (*domain.Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.sessions[userID]
	if !ok {
		return nil, nil
	}
	return &s, nil
}

// Set stores a copy of the session keyed by its user ID.
func (m *Memory) Set(_ context.Context, s *domain.Session) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[s.UserID] = *s
	return nil
}

// Delete removes the session for the user, if any.
func (m *Memory) Delete(_ context.Context, userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, userID)
	return nil
}

// Close is a no-op for the in-memory store.
func (m *Memory) Close() error { return nil }
