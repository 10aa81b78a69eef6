// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package session keeps per-session conversation state in an in-memory
// SQLite database. Nothing touches disk; closing the store discards
// every session, which is the intended lifetime for an interactive run.
package session

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/answer-engine/pkg/types"
)

// Store manages conversation sessions.
type Store struct {
	db *sql.DB
}

// NewStore opens a fresh in-memory database and creates the schema.
func NewStore() (*Store, error) {
	// A single connection keeps every query on the same :memory:
	// database; a second connection would see an empty one.
	db, err := sql.Open("sqlite3", ":memory:?_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening session database: %w", err)
	}
	db.SetMaxOpenConns(1)

	s := &Store{db: db}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database and drops all sessions.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS sessions (
			id TEXT PRIMARY KEY,
			created_at TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS messages (
			session_id TEXT NOT NULL REFERENCES sessions(id),
			seq INTEGER NOT NULL,
			role TEXT NOT NULL,
			mode TEXT,
			content TEXT NOT NULL,
			created_at TEXT NOT NULL,
			PRIMARY KEY (session_id, seq)
		)`,
		`CREATE TABLE IF NOT EXISTS turns (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			session_id TEXT NOT NULL REFERENCES sessions(id),
			query TEXT NOT NULL,
			intent TEXT NOT NULL,
			digest TEXT,
			created_at TEXT NOT NULL
		)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// New creates a session and returns its ID.
func (s *Store) New(ctx context.Context) (string, error) {
	id := uuid.NewString()
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO sessions (id, created_at) VALUES (?, ?)`,
		id, time.Now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return "", fmt.Errorf("creating session: %w", err)
	}
	return id, nil
}

// Append adds a message to the session's transcript.
func (s *Store) Append(ctx context.Context, sessionID string, msg types.Message) error {
	when := msg.Time
	if when.IsZero() {
		when = time.Now().UTC()
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO messages (session_id, seq, role, mode, content, created_at)
		 VALUES (?, (SELECT COALESCE(MAX(seq), 0) + 1 FROM messages WHERE session_id = ?), ?, ?, ?, ?)`,
		sessionID, sessionID, msg.Role, string(msg.Mode), msg.Content,
		when.Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("appending message: %w", err)
	}
	return nil
}

// History returns the session's most recent limit messages in
// chronological order. A non-positive limit returns all of them.
func (s *Store) History(ctx context.Context, sessionID string, limit int) ([]types.Message, error) {
	query := `SELECT role, mode, content, created_at FROM messages
		 WHERE session_id = ? ORDER BY seq`
	args := []any{sessionID}
	if limit > 0 {
		query = `SELECT role, mode, content, created_at FROM (
			SELECT seq, role, mode, content, created_at FROM messages
			WHERE session_id = ? ORDER BY seq DESC LIMIT ?
		) ORDER BY seq`
		args = append(args, limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("querying history: %w", err)
	}
	defer rows.Close()

	var history []types.Message
	for rows.Next() {
		var msg types.Message
		var mode, createdAt string
		if err := rows.Scan(&msg.Role, &mode, &msg.Content, &createdAt); err != nil {
			return nil, fmt.Errorf("scanning message: %w", err)
		}
		msg.Mode = types.Intent(mode)
		if t, err := time.Parse(time.RFC3339Nano, createdAt); err == nil {
			msg.Time = t
		}
		history = append(history, msg)
	}
	return history, rows.Err()
}

// Turn records how one query was handled, for the classify and debug
// surfaces.
type Turn struct {
	Query  string
	Intent types.Intent
	Digest string
}

// RecordTurn logs the routing decision for a completed turn.
func (s *Store) RecordTurn(ctx context.Context, sessionID string, turn Turn) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO turns (session_id, query, intent, digest, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		sessionID, turn.Query, string(turn.Intent), turn.Digest,
		time.Now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("recording turn: %w", err)
	}
	return nil
}

// Turns returns the session's recorded turns in order.
func (s *Store) Turns(ctx context.Context, sessionID string) ([]Turn, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT query, intent, digest FROM turns WHERE session_id = ? ORDER BY id`,
		sessionID,
	)
	if err != nil {
		return nil, fmt.Errorf("querying turns: %w", err)
	}
	defer rows.Close()

	var turns []Turn
	for rows.Next() {
		var t Turn
		var intent string
		if err := rows.Scan(&t.Query, &intent, &t.Digest); err != nil {
			return nil, fmt.Errorf("scanning turn: %w", err)
		}
		t.Intent = types.Intent(intent)
		turns = append(turns, t)
	}
	return turns, rows.Err()
}
