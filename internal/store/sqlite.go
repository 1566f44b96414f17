package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fudosan-dx/satei-bot/internal/domain"
	_ "modernc.org/sqlite"
)

// SQLite implements SessionStore on a local SQLite database. Answers are
// stored as a JSON column; the schema only indexes what the store itself
// needs (lookup by user, cleanup by update time).
type SQLite struct {
	db *sql.DB
	mu sync.Mutex // serialize writes to avoid SQLITE_BUSY under bursts
}

// NewSQLite opens (creating if needed) the database at dbPath.
func NewSQLite(dbPath string) (*SQLite, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create database directory: %w", err)
	}

	// WAL mode for concurrent readers during webhook bursts.
	dsn := dbPath + "?_journal=WAL&_sync=NORMAL&_busy_timeout=5000"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(2)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("ping database: %w", err)
	}

	s := &SQLite{db: db}
	if err := s.initSchema(); err != nil {
		return nil, fmt.Errorf("initialize schema: %w", err)
	}
	return s, nil
}

func (s *SQLite) initSchema() error {
	query := `
	PRAGMA busy_timeout = 5000;
	CREATE TABLE IF NOT EXISTS sessions (
		user_id TEXT PRIMARY KEY,
		state TEXT NOT NULL,
		answers_json TEXT NOT NULL,
		editing INTEGER NOT NULL DEFAULT 0,
		created_at INTEGER NOT NULL,
		updated_at INTEGER NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_sessions_updated ON sessions(updated_at);
	`
	if _, err := s.db.Exec(query); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}

// Ping verifies database connectivity.
func (s *SQLite) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Get returns the stored session, or (nil, nil) when absent.
func (s *SQLite) Get(ctx context.Context, userID string) (*domain.Session, error) {
	query := `
		SELECT user_id, state, answers_json, editing, created_at, updated_at
		FROM sessions WHERE user_id = ?`

	row := s.db.QueryRowContext(ctx, query, userID)

	var sess domain.Session
	var state, answersJSON string
	var editing int
	var createdAt, updatedAt int64

	err := row.Scan(&sess.UserID, &state, &answersJSON, &editing, &createdAt, &updatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("scan session row: %w", err)
	}

	if err := json.Unmarshal([]byte(answersJSON), &sess.Answers); err != nil {
		// A malformed record is treated as no session at all; the engine
		// will start the user over rather than erroring the turn.
		slog.Warn("discarding malformed session", "user_id", userID, "error", err)
		return nil, nil
	}
	sess.State = domain.State(state)
	sess.Editing = editing != 0
	sess.CreatedAt = time.Unix(createdAt, 0)
	sess.UpdatedAt = time.Unix(updatedAt, 0)
	return &sess, nil
}

// Set upserts the session.
func (s *SQLite) Set(ctx context.Context, sess *domain.Session) error {
	answersJSON, err := json.Marshal(sess.Answers)
	if err != nil {
		return fmt.Errorf("encode answers: %w", err)
	}

	editing := 0
	if sess.Editing {
		editing = 1
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	query := `
		INSERT INTO sessions (user_id, state, answers_json, editing, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(user_id) DO UPDATE SET
			state = excluded.state,
			answers_json = excluded.answers_json,
			editing = excluded.editing,
			updated_at = excluded.updated_at`

	_, err = s.db.ExecContext(ctx, query,
		sess.UserID, string(sess.State), string(answersJSON), editing,
		sess.CreatedAt.Unix(), sess.UpdatedAt.Unix(),
	)
	if err != nil {
		return fmt.Errorf("upsert session: %w", err)
	}
	return nil
}

// Delete removes the session for the user, if any.
func (s *SQLite) Delete(ctx context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := s.db.ExecContext(ctx, `DELETE FROM sessions WHERE user_id = ?`, userID); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// Close closes the database connection.
func (s *SQLite) Close() error {
	return s.db.Close()
}
