// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"database/sql"
	"fmt"

	"github.com/classpulse/server/models"
)

// CreateQuestion inserts a new question row. Position is assigned by the
// caller (next slot in the session).
func (s *Store) CreateQuestion(q models.Question) error {
	_, err := s.db.Exec(`
		INSERT INTO question (id, session_id, kind, title, config, active, position, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`, q.ID, q.SessionID, q.Kind, q.Title, q.Config, q.Active, q.Position, q.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to insert question: %w", err)
	}
	return nil
}

// GetQuestion looks a question up by ID.
func (s *Store) GetQuestion(questionID string) (models.Question, error) {
	var q models.Question
	err := s.db.QueryRow(`
		SELECT id, session_id, kind, title, config, active, position, created_at
		FROM question
		WHERE id = $1
	`, questionID).Scan(&q.ID, &q.SessionID, &q.Kind, &q.Title, &q.Config, &q.Active, &q.Position, &q.CreatedAt)
	if err == sql.ErrNoRows {
		return models.Question{}, ErrNotFound
	}
	if err != nil {
		return models.Question{}, fmt.Errorf("failed to scan question: %w", err)
	}
	return q, nil
}

// ListQuestionsBySession returns the session's questions in presentation
// order. With activeOnly set, inactive questions are filtered out (audience
// join view).
func (s *Store) ListQuestionsBySession(sessionID string, activeOnly bool) ([]models.Question, error) {
	query := `
		SELECT id, session_id, kind, title, config, active, position, created_at
		FROM question
		WHERE session_id = $1
		ORDER BY position, created_at
	`
	if activeOnly {
		query = `
			SELECT id, session_id, kind, title, config, active, position, created_at
			FROM question
			WHERE session_id = $1 AND active = TRUE
			ORDER BY position, created_at
		`
	}

	rows, err := s.db.Query(query, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to query questions: %w", err)
	}
	defer rows.Close()

	questions := []models.Question{}
	for rows.Next() {
		var q models.Question
		if err := rows.Scan(&q.ID, &q.SessionID, &q.Kind, &q.Title, &q.Config, &q.Active, &q.Position, &q.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan question: %w", err)
		}
		questions = append(questions, q)
	}

	return questions, rows.Err()
}

// NextQuestionPosition returns the position for a new question appended to
// the session.
func (s *Store) NextQuestionPosition(sessionID string) (int, error) {
	var next int
	err := s.db.QueryRow(`
		SELECT COALESCE(MAX(position), -1) + 1 FROM question WHERE session_id = $1
	`, sessionID).Scan(&next)
	if err != nil {
		return 0, fmt.Errorf("failed to compute question position: %w", err)
	}
	return next, nil
}

// ToggleQuestionActive flips the question's active flag and returns the new
// value.
func (s *Store) ToggleQuestionActive(questionID string) (bool, error) {
	var active bool
	err := s.db.QueryRow(`
		UPDATE question SET active = NOT active WHERE id = $1
		RETURNING active
	`, questionID).Scan(&active)
	if err == sql.ErrNoRows {
		return false, ErrNotFound
	}
	if err != nil {
		return false, fmt.Errorf("failed to toggle question: %w", err)
	}
	return active, nil
}

// UpdateQuestionConfig replaces the question's config JSON. Kind is
// immutable; this touches config only.
func (s *Store) UpdateQuestionConfig(questionID, config string) error {
	res, err := s.db.Exec(`
		UPDATE question SET config = $1 WHERE id = $2
	`, config, questionID)
	if err != nil {
		return fmt.Errorf("failed to update question config: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check config update: %w", err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
