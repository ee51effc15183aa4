// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the ClassPulse API.

# Handler Types

Each handler is a struct with store and config dependencies:

  - SessionHandler: Session lifecycle and audience join
  - QuestionHandler: Question creation, config edits, active toggle
  - ResponseHandler: Anonymous response submission (upsert per respondent)
  - ResultsHandler: On-demand stats snapshots and raw CSV export
  - StreamHandler: WebSocket result streaming

Handlers are created via constructor functions that accept *store.Store and
Config (plus the *realtime.Hub where broadcasting is involved):

	sessionHandler := handlers.NewSessionHandler(st, cfg)

# Presenter Flow

	POST /sessions                 → CreateSession (returns code + admin_key)
	POST /sessions/{id}/questions  → CreateQuestion
	POST /sessions/{id}/toggle     → ToggleSession
	POST /questions/{id}/toggle    → ToggleQuestion
	PUT  /questions/{id}/config    → UpdateQuestionConfig (kind is immutable)
	GET  /questions/{id}/export    → ExportResponses (raw CSV audit trail)

Presenter operations require the X-Admin-Key header, scoped to the owning
session.

# Audience Flow

	GET  /sessions/{code}             → GetSessionByCode (active questions)
	POST /sessions/{code}/join        → JoinSession (returns respondent_token)
	POST /questions/{id}/responses    → SubmitResponse (create or update)
	GET  /questions/{id}/my-response  → GetMyResponse

Response operations require the X-Respondent-Token header. One response row
exists per (question, respondent); resubmitting replaces the stored value.

# Results

	GET /questions/{id}/results → GetResults (stats computed on demand)
	GET /ws/questions/{id}      → StreamResults (push on connect + per write)

Aggregation itself lives in the stats package; broadcasting in realtime.
*/
package handlers
