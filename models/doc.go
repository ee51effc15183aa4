// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines request, response, and domain types for the API.

# Request Types

Types for parsing incoming JSON:

  - CreateSessionRequest: name, presenter_name
  - CreateQuestionRequest: kind, title, options / max_rating
  - UpdateQuestionConfigRequest: options / max_rating (kind immutable)
  - SubmitResponseRequest: value

# Response Types

Types for JSON responses:

  - CreateSessionResponse: session_id, code, admin_key
  - CreateQuestionResponse: question_id
  - JoinSessionResponse: session_id, respondent_token
  - SubmitResponseResponse: response_id, message
  - ToggleResponse: active
  - ErrorResponse: error, message

# Domain Types

Internal data structures:

  - Session: presentation session with join code and active flag
  - Question: kind, title, JSON config, active flag, position
  - Response: one answer per (question, respondent), upserted
  - Stats: derived per-question aggregate (never stored)
  - Bucket: one labeled count within Stats

# Constants

Question kinds:

	KindMultipleChoice = "multiple_choice"
	KindWordCloud      = "word_cloud"
	KindRating         = "rating"

Rating scale bounds: max_rating lives in [2, 10], default 5.
*/
package models
