// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"database/sql"
	"fmt"

	"github.com/classpulse/server/models"
)

// CreateSession inserts a new session row.
func (s *Store) CreateSession(sess models.Session) error {
	_, err := s.db.Exec(`
		INSERT INTO session (id, code, name, presenter_name, active, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, sess.ID, sess.Code, sess.Name, sess.PresenterName, sess.Active, sess.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert session: %w", err)
	}
	return nil
}

// GetSession looks a session up by ID.
func (s *Store) GetSession(sessionID string) (models.Session, error) {
	return s.scanSession(s.db.QueryRow(`
		SELECT id, code, name, presenter_name, active, created_at
		FROM session
		WHERE id = $1
	`, sessionID))
}

// GetSessionByCode looks a session up by its join code.
func (s *Store) GetSessionByCode(code string) (models.Session, error) {
	return s.scanSession(s.db.QueryRow(`
		SELECT id, code, name, presenter_name, active, created_at
		FROM session
		WHERE code = $1
	`, code))
}

// CodeExists reports whether a join code is already claimed. Used to retry
// code generation on (rare) collisions.
func (s *Store) CodeExists(code string) (bool, error) {
	var exists bool
	err := s.db.QueryRow(`
		SELECT EXISTS(SELECT 1 FROM session WHERE code = $1)
	`, code).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check session code: %w", err)
	}
	return exists, nil
}

// ToggleSessionActive flips the session's active flag and returns the new
// value.
func (s *Store) ToggleSessionActive(sessionID string) (bool, error) {
	var active bool
	err := s.db.QueryRow(`
		UPDATE session SET active = NOT active WHERE id = $1
		RETURNING active
	`, sessionID).Scan(&active)
	if err == sql.ErrNoRows {
		return false, ErrNotFound
	}
	if err != nil {
		return false, fmt.Errorf("failed to toggle session: %w", err)
	}
	return active, nil
}

func (s *Store) scanSession(row *sql.Row) (models.Session, error) {
	var sess models.Session
	err := row.Scan(&sess.ID, &sess.Code, &sess.Name, &sess.PresenterName, &sess.Active, &sess.CreatedAt)
	if err == sql.ErrNoRows {
		return models.Session{}, ErrNotFound
	}
	if err != nil {
		return models.Session{}, fmt.Errorf("failed to scan session: %w", err)
	}
	return sess, nil
}
