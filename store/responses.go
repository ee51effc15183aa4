// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/classpulse/server/models"
)

// UpsertResponse records a respondent's answer to a question. At most one
// response row exists per (question, respondent): a repeat submission
// replaces the stored value and refreshes the timestamp in place, keeping
// the original row ID (and therefore its ordinal position in insertion
// order). The conflict clause makes the check-then-write a single atomic
// statement, so concurrent submissions from the same respondent cannot
// produce two rows.
//
// Writes against an inactive question, or a question whose session is
// inactive, are rejected with ErrUnavailable before touching the response
// table. An unknown question yields ErrNotFound.
func (s *Store) UpsertResponse(questionID, respondentID, value string) (models.Response, error) {
	var sessionID string
	var questionActive, sessionActive bool
	err := s.db.QueryRow(`
		SELECT q.session_id, q.active, se.active
		FROM question q
		JOIN session se ON q.session_id = se.id
		WHERE q.id = $1
	`, questionID).Scan(&sessionID, &questionActive, &sessionActive)
	if err == sql.ErrNoRows {
		return models.Response{}, ErrNotFound
	}
	if err != nil {
		return models.Response{}, fmt.Errorf("failed to query question state: %w", err)
	}
	if !questionActive || !sessionActive {
		return models.Response{}, ErrUnavailable
	}

	var resp models.Response
	err = s.db.QueryRow(`
		INSERT INTO response (id, question_id, session_id, respondent_id, value, submitted_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (question_id, respondent_id)
		DO UPDATE SET value = EXCLUDED.value, submitted_at = EXCLUDED.submitted_at
		RETURNING id, question_id, session_id, respondent_id, value, submitted_at
	`, uuid.NewString(), questionID, sessionID, respondentID, value, time.Now()).Scan(
		&resp.ID, &resp.QuestionID, &resp.SessionID, &resp.RespondentID, &resp.Value, &resp.SubmittedAt,
	)
	if err != nil {
		return models.Response{}, fmt.Errorf("failed to upsert response: %w", err)
	}

	return resp, nil
}

// FindResponseByQuestionAndRespondent returns the respondent's current
// answer to a question, or ErrNotFound if they have not answered.
func (s *Store) FindResponseByQuestionAndRespondent(questionID, respondentID string) (models.Response, error) {
	var resp models.Response
	err := s.db.QueryRow(`
		SELECT id, question_id, session_id, respondent_id, value, submitted_at
		FROM response
		WHERE question_id = $1 AND respondent_id = $2
	`, questionID, respondentID).Scan(
		&resp.ID, &resp.QuestionID, &resp.SessionID, &resp.RespondentID, &resp.Value, &resp.SubmittedAt,
	)
	if err == sql.ErrNoRows {
		return models.Response{}, ErrNotFound
	}
	if err != nil {
		return models.Response{}, fmt.Errorf("failed to scan response: %w", err)
	}
	return resp, nil
}

// ListResponsesByQuestion returns every stored response for a question in a
// stable order (by row ID, which an upsert never changes). Read by the
// aggregator and by the raw CSV export.
func (s *Store) ListResponsesByQuestion(questionID string) ([]models.Response, error) {
	rows, err := s.db.Query(`
		SELECT id, question_id, session_id, respondent_id, value, submitted_at
		FROM response
		WHERE question_id = $1
		ORDER BY id
	`, questionID)
	if err != nil {
		return nil, fmt.Errorf("failed to query responses: %w", err)
	}
	defer rows.Close()

	responses := []models.Response{}
	for rows.Next() {
		var resp models.Response
		if err := rows.Scan(&resp.ID, &resp.QuestionID, &resp.SessionID, &resp.RespondentID, &resp.Value, &resp.SubmittedAt); err != nil {
			return nil, fmt.Errorf("failed to scan response: %w", err)
		}
		responses = append(responses, resp)
	}

	return responses, rows.Err()
}

// CountResponsesBySession returns the total responses recorded across all
// of a session's questions.
func (s *Store) CountResponsesBySession(sessionID string) (int, error) {
	var count int
	err := s.db.QueryRow(`
		SELECT COUNT(*) FROM response WHERE session_id = $1
	`, sessionID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count responses: %w", err)
	}
	return count, nil
}
