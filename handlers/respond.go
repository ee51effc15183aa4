// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/classpulse/server/cliparse"
	"github.com/classpulse/server/middleware"
	"github.com/classpulse/server/models"
	"github.com/classpulse/server/realtime"
	"github.com/classpulse/server/store"
)

type ResponseHandler struct {
	store *store.Store
	hub   *realtime.Hub
	cfg   cliparse.Config
}

func NewResponseHandler(st *store.Store, hub *realtime.Hub, cfg cliparse.Config) *ResponseHandler {
	return &ResponseHandler{store: st, hub: hub, cfg: cfg}
}

// SubmitResponse handles POST /questions/{id}/responses
// Upserts the respondent's answer: a resubmission replaces their earlier
// value instead of adding a row. Live subscribers are notified only after
// the write is committed; rejected writes never broadcast.
func (h *ResponseHandler) SubmitResponse(w http.ResponseWriter, r *http.Request) {
	questionID := r.PathValue("id")
	if questionID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "question_id is required")
		return
	}

	respondentToken := r.Header.Get("X-Respondent-Token")
	if respondentToken == "" {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "X-Respondent-Token header required")
		return
	}

	var req models.SubmitResponseRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.Value == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "value is required")
		return
	}

	existing := true
	if _, err := h.store.FindResponseByQuestionAndRespondent(questionID, respondentToken); errors.Is(err, store.ErrNotFound) {
		existing = false
	}

	resp, err := h.store.UpsertResponse(questionID, respondentToken, req.Value)
	if errors.Is(err, store.ErrNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Question not found")
		return
	}
	if errors.Is(err, store.ErrUnavailable) {
		middleware.ErrorResponse(w, http.StatusConflict, "Question is not accepting responses")
		return
	}
	if err != nil {
		slog.Error("failed to upsert response", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to submit response")
		return
	}

	// Write is committed; push fresh stats to the question's room
	h.hub.Notify(questionID)

	slog.Info("response recorded", "question_id", questionID, "response_id", resp.ID, "is_update", existing)

	status := http.StatusCreated
	message := "Response submitted successfully"
	if existing {
		status = http.StatusOK
		message = "Response updated successfully"
	}

	middleware.JSONResponse(w, status, models.SubmitResponseResponse{
		ResponseID: resp.ID,
		Message:    message,
	})
}

// GetMyResponse handles GET /questions/{id}/my-response
// Returns the respondent's current answer so a rejoining browser can
// preselect it
func (h *ResponseHandler) GetMyResponse(w http.ResponseWriter, r *http.Request) {
	questionID := r.PathValue("id")
	if questionID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "question_id is required")
		return
	}

	respondentToken := r.Header.Get("X-Respondent-Token")
	if respondentToken == "" {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "X-Respondent-Token header required")
		return
	}

	resp, err := h.store.FindResponseByQuestionAndRespondent(questionID, respondentToken)
	if errors.Is(err, store.ErrNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, "No response recorded")
		return
	}
	if err != nil {
		slog.Error("failed to query response", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, resp)
}
