// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package history journals completed dispatches to a local SQLite
// database so past questions and their outcomes can be listed later.
// The journal is write-and-list only; the board is never rebuilt from it.
package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/tileboard/internal/dispatch"
	"github.com/pdiddy/tileboard/pkg/types"
)

// DefaultLimit is the number of entries Recent returns for a non-positive limit.
const DefaultLimit = 50

// Outcome classifies a dispatch result.
type Outcome string

const (
	OutcomeOK        Outcome = "ok"
	OutcomeTransport Outcome = "transport"
	OutcomeEmpty     Outcome = "empty"
)

// OutcomeOf maps a Dispatch error to its Outcome.
func OutcomeOf(err error) Outcome {
	switch {
	case err == nil:
		return OutcomeOK
	case errors.Is(err, dispatch.ErrEmptyResult):
		return OutcomeEmpty
	default:
		return OutcomeTransport
	}
}

// Entry is one journaled dispatch.
type Entry struct {
	ID        int64             `json:"id" yaml:"id"`
	Question  string            `json:"question" yaml:"question"`
	Backend   types.BackendKind `json:"backend" yaml:"backend"`
	Endpoint  string            `json:"endpoint" yaml:"endpoint"`
	Outcome   Outcome           `json:"outcome" yaml:"outcome"`
	Content   string            `json:"content,omitempty" yaml:"content,omitempty"`
	Message   string            `json:"message,omitempty" yaml:"message,omitempty"`
	CreatedAt time.Time         `json:"created_at" yaml:"created_at"`
}

// Journal manages the history database.
type Journal struct {
	db  *sql.DB
	now func() time.Time
}

// Open opens or creates the journal at cfg.Path, creating the parent
// directory and schema as needed.
func Open(cfg types.HistoryConfig) (*Journal, error) {
	if cfg.Path == "" {
		return nil, errors.New("history path is empty")
	}
	if err := os.MkdirAll(filepath.Dir(cfg.Path), 0o755); err != nil {
		return nil, fmt.Errorf("creating history directory: %w", err)
	}

	db, err := sql.Open("sqlite3", cfg.Path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	j := &Journal{db: db, now: time.Now}
	if err := j.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return j, nil
}

// Close releases the database connection.
func (j *Journal) Close() error {
	return j.db.Close()
}

func (j *Journal) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS dispatches (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			question TEXT NOT NULL,
			backend TEXT NOT NULL,
			endpoint TEXT NOT NULL,
			outcome TEXT NOT NULL,
			content TEXT,
			message TEXT,
			created_at TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_dispatches_outcome ON dispatches(outcome)`,
	}
	for _, stmt := range statements {
		if _, err := j.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}
	return nil
}

// Record stores the result of one dispatch. A nil Journal records nothing.
func (j *Journal) Record(ctx context.Context, question string, backend types.Backend, content string, dispatchErr error) error {
	if j == nil {
		return nil
	}
	_, err := j.db.ExecContext(ctx,
		`INSERT INTO dispatches (question, backend, endpoint, outcome, content, message, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		question, string(backend.Kind), backend.Endpoint,
		string(OutcomeOf(dispatchErr)), content, dispatch.UserMessage(dispatchErr),
		j.now().UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("recording dispatch: %w", err)
	}
	return nil
}

// Recent returns up to limit entries, newest first.
func (j *Journal) Recent(ctx context.Context, limit int) ([]Entry, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}
	rows, err := j.db.QueryContext(ctx,
		`SELECT id, question, backend, endpoint, outcome, content, message, created_at
		 FROM dispatches ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying history: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var (
			e                Entry
			backend, outcome string
			content, message sql.NullString
			created          string
		)
		if err := rows.Scan(&e.ID, &e.Question, &backend, &e.Endpoint, &outcome, &content, &message, &created); err != nil {
			return nil, fmt.Errorf("scanning history row: %w", err)
		}
		e.Backend = types.BackendKind(backend)
		e.Outcome = Outcome(outcome)
		e.Content = content.String
		e.Message = message.String
		if t, err := time.Parse(time.RFC3339Nano, created); err == nil {
			e.CreatedAt = t
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
