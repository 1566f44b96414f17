// Package store provides session persistence behind a small interface so the
// dialog engine stays independent of the backing store.
package store

import (
	"context"

	"github.com/fudosan-dx/satei-bot/internal/domain"
)

// SessionStore is the engine's view of session persistence. Get returns
// (nil, nil) when no session exists for the user; the engine treats that as a
// fresh conversation. Last write wins per Set call; read-before-write
// atomicity is the engine's responsibility.
type SessionStore interface {
	Get(ctx context.Context, userID string) (*domain.Session, error)
	Set(ctx context.Context, s *domain.Session) error
	Delete(ctx context.Context, userID string) error
	Close() error
}
