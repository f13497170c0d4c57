// internal/common/database/schema.go
package database

import (
	"context"
	"database/sql"
	"fmt"
)

// Table names shared with the record-interview-session worker.
const (
	TableSessions = "interview_sessions"
	TableAnswers  = "interview_answers"
	TableAuditLog = "interview_audit_log"
)

var schemaStatements = []string{
	`CREATE TABLE IF NOT EXISTS interview_sessions (
		session_id         TEXT PRIMARY KEY,
		candidate_name     TEXT NOT NULL DEFAULT '',
		candidate_email    TEXT NOT NULL DEFAULT '',
		domain             TEXT NOT NULL,
		resume_skills      JSONB NOT NULL DEFAULT '[]',
		average_score      NUMERIC(5,2) NOT NULL,
		confidence_percent INTEGER NOT NULL,
		performance_level  TEXT NOT NULL,
		created_at         TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS interview_answers (
		id                    UUID PRIMARY KEY,
		session_id            TEXT NOT NULL REFERENCES interview_sessions(session_id) ON DELETE CASCADE,
		question_index        INTEGER NOT NULL,
		question_text         TEXT NOT NULL,
		answer_text           TEXT NOT NULL,
		answer_mode           TEXT NOT NULL DEFAULT 'text',
		response_time_seconds NUMERIC(10,2) NOT NULL,
		relevance             NUMERIC(5,2) NOT NULL,
		clarity               NUMERIC(5,2) NOT NULL,
		grammar               NUMERIC(5,2) NOT NULL,
		confidence            NUMERIC(5,2) NOT NULL,
		response_time_score   NUMERIC(5,2) NOT NULL,
		resume_alignment      NUMERIC(5,2) NOT NULL,
		total_score           NUMERIC(5,2) NOT NULL,
		UNIQUE (session_id, question_index)
	)`,
	`CREATE TABLE IF NOT EXISTS interview_audit_log (
		id         UUID PRIMARY KEY,
		session_id TEXT NOT NULL,
		event_type TEXT NOT NULL,
		details    JSONB,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_interview_sessions_level ON interview_sessions(performance_level)`,
}

// EnsureSchema runs the interview DDL in a single transaction.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin schema transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, stmt := range schemaStatements {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("apply schema: %w", err)
		}
	}
	return tx.Commit()
}
