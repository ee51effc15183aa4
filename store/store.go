// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"database/sql"
	"errors"
)

var (
	// ErrNotFound is returned when the requested session or question
	// does not exist.
	ErrNotFound = errors.New("not found")

	// ErrUnavailable is returned when a write targets an inactive question
	// or an inactive session. Callers must not broadcast after it.
	ErrUnavailable = errors.New("question not accepting responses")
)

// Store provides typed data access over the session, question, and response
// tables. All methods use explicit queries with typed results; the response
// upsert invariant (one row per question+respondent) is enforced here and by
// the table's unique constraint, not by call sites.
type Store struct {
	db *sql.DB
}

func New(db *sql.DB) *Store {
	return &Store{db: db}
}
