// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package db

import (
	"database/sql"
	"fmt"
)

// CreateSchema creates all tables needed for the application.
// Safe to call multiple times - uses IF NOT EXISTS.
//
// The DDL is kept dialect-neutral so the same statements run on PostgreSQL
// (lib/pq) and SQLite (modernc.org/sqlite): no NOW() defaults (timestamps
// are always written explicitly by the application).
func CreateSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}

	return nil
}

const schema = `
-- Presentation sessions
CREATE TABLE IF NOT EXISTS session (
    id TEXT PRIMARY KEY,
    code TEXT NOT NULL UNIQUE,
    name TEXT NOT NULL,
    presenter_name TEXT NOT NULL,
    active BOOLEAN NOT NULL DEFAULT TRUE,
    created_at TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_session_code ON session(code);

-- Questions
CREATE TABLE IF NOT EXISTS question (
    id TEXT PRIMARY KEY,
    session_id TEXT NOT NULL REFERENCES session(id) ON DELETE CASCADE,
    kind TEXT NOT NULL CHECK (kind IN ('multiple_choice', 'word_cloud', 'rating')),
    title TEXT NOT NULL,
    config TEXT NOT NULL DEFAULT '{}',
    active BOOLEAN NOT NULL DEFAULT TRUE,
    position INTEGER NOT NULL DEFAULT 0,
    created_at TIMESTAMP NOT NULL
);

CREATE INDEX IF NOT EXISTS idx_question_session_id ON question(session_id);

-- Responses: at most one row per (question, respondent); resubmission
-- updates the existing row in place
CREATE TABLE IF NOT EXISTS response (
    id TEXT PRIMARY KEY,
    question_id TEXT NOT NULL REFERENCES question(id) ON DELETE CASCADE,
    session_id TEXT NOT NULL REFERENCES session(id) ON DELETE CASCADE,
    respondent_id TEXT NOT NULL,
    value TEXT NOT NULL,
    submitted_at TIMESTAMP NOT NULL,
    UNIQUE (question_id, respondent_id)
);

CREATE INDEX IF NOT EXISTS idx_response_question_id ON response(question_id);
CREATE INDEX IF NOT EXISTS idx_response_session_id ON response(session_id);
`
