// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"encoding/csv"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/classpulse/server/auth"
	"github.com/classpulse/server/cliparse"
	"github.com/classpulse/server/middleware"
	"github.com/classpulse/server/stats"
	"github.com/classpulse/server/store"
)

type ResultsHandler struct {
	store *store.Store
	cfg   cliparse.Config
}

func NewResultsHandler(st *store.Store, cfg cliparse.Config) *ResultsHandler {
	return &ResultsHandler{store: st, cfg: cfg}
}

// GetResults handles GET /questions/{id}/results
// Computes a Stats snapshot on demand. Stats are always derived from the
// stored responses, never cached, so they cannot drift from the response
// table.
func (h *ResultsHandler) GetResults(w http.ResponseWriter, r *http.Request) {
	questionID := r.PathValue("id")
	if questionID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "question_id is required")
		return
	}

	question, err := h.store.GetQuestion(questionID)
	if errors.Is(err, store.ErrNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Question not found")
		return
	}
	if err != nil {
		slog.Error("failed to query question", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	responses, err := h.store.ListResponsesByQuestion(questionID)
	if err != nil {
		slog.Error("failed to query responses", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, stats.Compute(question, responses))
}

// ExportResponses handles GET /questions/{id}/export
// Streams the raw response rows as CSV: the full audit trail, bypassing
// aggregation. Requires the owning session's admin key.
func (h *ResultsHandler) ExportResponses(w http.ResponseWriter, r *http.Request) {
	questionID := r.PathValue("id")
	if questionID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "question_id is required")
		return
	}

	question, err := h.store.GetQuestion(questionID)
	if errors.Is(err, store.ErrNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Question not found")
		return
	}
	if err != nil {
		slog.Error("failed to query question", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	adminKey := r.Header.Get("X-Admin-Key")
	if err := auth.ValidateAdminKey(question.SessionID, adminKey, h.cfg.AdminKeySalt); err != nil {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid admin key")
		return
	}

	responses, err := h.store.ListResponsesByQuestion(questionID)
	if err != nil {
		slog.Error("failed to query responses", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="responses-`+questionID+`.csv"`)

	cw := csv.NewWriter(w)
	_ = cw.Write([]string{"response_id", "respondent_id", "value", "submitted_at"})
	for _, resp := range responses {
		_ = cw.Write([]string{
			resp.ID,
			resp.RespondentID,
			resp.Value,
			resp.SubmittedAt.Format(time.RFC3339),
		})
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		slog.Error("failed to write CSV export", "error", err)
		return
	}

	slog.Info("responses exported",
		"question_id", questionID,
		"rows", humanize.Comma(int64(len(responses))),
	)
}
