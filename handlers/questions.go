// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/classpulse/server/auth"
	"github.com/classpulse/server/cliparse"
	"github.com/classpulse/server/middleware"
	"github.com/classpulse/server/models"
	"github.com/classpulse/server/stats"
	"github.com/classpulse/server/store"
)

type QuestionHandler struct {
	store *store.Store
	cfg   cliparse.Config
}

func NewQuestionHandler(st *store.Store, cfg cliparse.Config) *QuestionHandler {
	return &QuestionHandler{store: st, cfg: cfg}
}

// CreateQuestion handles POST /sessions/{id}/questions
func (h *QuestionHandler) CreateQuestion(w http.ResponseWriter, r *http.Request) {
	sessionID := r.PathValue("id")
	if sessionID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "session_id is required")
		return
	}

	// Validate admin key
	adminKey := r.Header.Get("X-Admin-Key")
	if err := auth.ValidateAdminKey(sessionID, adminKey, h.cfg.AdminKeySalt); err != nil {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid admin key")
		return
	}

	var req models.CreateQuestionRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.Title == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "title is required")
		return
	}

	config, err := buildConfig(req.Kind, req.Options, req.MaxRating)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	// Session must exist before we append a question to it
	if _, err := h.store.GetSession(sessionID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			middleware.ErrorResponse(w, http.StatusNotFound, "Session not found")
			return
		}
		slog.Error("failed to query session", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	position, err := h.store.NextQuestionPosition(sessionID)
	if err != nil {
		slog.Error("failed to compute question position", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	questionID, err := auth.GenerateID(12)
	if err != nil {
		slog.Error("failed to generate question ID", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create question")
		return
	}

	err = h.store.CreateQuestion(models.Question{
		ID:        questionID,
		SessionID: sessionID,
		Kind:      req.Kind,
		Title:     req.Title,
		Config:    config,
		Active:    true,
		Position:  position,
		CreatedAt: time.Now(),
	})
	if err != nil {
		slog.Error("failed to insert question", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create question")
		return
	}

	slog.Info("question created", "question_id", questionID, "session_id", sessionID, "kind", req.Kind)

	middleware.JSONResponse(w, http.StatusCreated, models.CreateQuestionResponse{
		QuestionID: questionID,
	})
}

// ToggleQuestion handles POST /questions/{id}/toggle
// Flips the question between active and inactive
func (h *QuestionHandler) ToggleQuestion(w http.ResponseWriter, r *http.Request) {
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

	// Admin keys are scoped to the owning session
	adminKey := r.Header.Get("X-Admin-Key")
	if err := auth.ValidateAdminKey(question.SessionID, adminKey, h.cfg.AdminKeySalt); err != nil {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid admin key")
		return
	}

	active, err := h.store.ToggleQuestionActive(questionID)
	if err != nil {
		slog.Error("failed to toggle question", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	slog.Info("question toggled", "question_id", questionID, "active", active)

	middleware.JSONResponse(w, http.StatusOK, models.ToggleResponse{Active: active})
}

// UpdateQuestionConfig handles PUT /questions/{id}/config
// Edits option labels or the rating scale. Kind is immutable after creation.
func (h *QuestionHandler) UpdateQuestionConfig(w http.ResponseWriter, r *http.Request) {
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

	var req models.UpdateQuestionConfigRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	if req.Kind != "" && req.Kind != question.Kind {
		middleware.ErrorResponse(w, http.StatusBadRequest, "kind cannot be changed after creation")
		return
	}

	config, err := buildConfig(question.Kind, req.Options, req.MaxRating)
	if err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.store.UpdateQuestionConfig(questionID, config); err != nil {
		slog.Error("failed to update question config", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	slog.Info("question config updated", "question_id", questionID)

	middleware.JSONResponse(w, http.StatusOK, map[string]string{"config": config})
}

// buildConfig validates per-kind input and serializes the stored config.
// Rating scales are clamped into the legal range here, at create/edit time,
// so aggregation can trust stored values.
func buildConfig(kind string, options []string, maxRating int) (string, error) {
	switch kind {
	case models.KindMultipleChoice:
		if len(options) < 2 {
			return "", errors.New("multiple_choice requires at least 2 options")
		}
		return stats.OptionsConfig(options), nil
	case models.KindWordCloud:
		return "{}", nil
	case models.KindRating:
		return stats.RatingScaleConfig(stats.ClampRatingScale(maxRating)), nil
	default:
		return "", errors.New("kind must be one of: multiple_choice, word_cloud, rating")
	}
}
