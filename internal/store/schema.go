package store

import (
	"context"
	"database/sql"
	"fmt"
)

const (
	questionsTable = "questions"
	eventsTable    = "llm_events"
)

const createQuestions = `CREATE TABLE IF NOT EXISTS questions (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	unit TEXT NOT NULL,
	question TEXT NOT NULL,
	marks INTEGER NOT NULL,
	difficulty TEXT NOT NULL CHECK (difficulty IN ('Easy','Medium','Hard'))
)`

const createEvents = `CREATE TABLE IF NOT EXISTS llm_events (
	id INTEGER PRIMARY KEY AUTOINCREMENT,
	created_at INTEGER NOT NULL,
	run_id TEXT NOT NULL DEFAULT '',
	provider TEXT NOT NULL,
	model TEXT NOT NULL,
	purpose TEXT NOT NULL,
	input_tokens INTEGER NOT NULL DEFAULT 0,
	output_tokens INTEGER NOT NULL DEFAULT 0,
	latency_ms INTEGER NOT NULL DEFAULT 0,
	success INTEGER NOT NULL,
	error_message TEXT NOT NULL DEFAULT '',
	request_body TEXT NOT NULL DEFAULT '',
	response_body TEXT NOT NULL DEFAULT ''
)`

// execer is satisfied by both *sql.DB and *sql.Tx.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func migrate(ctx context.Context, db execer) error {
	for _, ddl := range []string{createQuestions, createEvents} {
		if _, err := db.ExecContext(ctx, ddl); err != nil {
			return fmt.Errorf("exec ddl: %w", err)
		}
	}
	return nil
}
