// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/classpulse/server/auth"
	"github.com/classpulse/server/cliparse"
	"github.com/classpulse/server/middleware"
	"github.com/classpulse/server/models"
	"github.com/classpulse/server/store"
)

type SessionHandler struct {
	store *store.Store
	cfg   cliparse.Config
}

func NewSessionHandler(st *store.Store, cfg cliparse.Config) *SessionHandler {
	return &SessionHandler{store: st, cfg: cfg}
}

// CreateSession handles POST /sessions
func (h *SessionHandler) CreateSession(w http.ResponseWriter, r *http.Request) {
	var req models.CreateSessionRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	// Validate input
	if req.Name == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "name is required")
		return
	}
	if req.PresenterName == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "presenter_name is required")
		return
	}

	sessionID, err := auth.GenerateID(16)
	if err != nil {
		slog.Error("failed to generate session ID", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create session")
		return
	}

	// Generate a join code, retrying on the rare collision
	code, err := h.uniqueCode()
	if err != nil {
		slog.Error("failed to generate session code", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create session")
		return
	}

	adminKey := auth.GenerateAdminKey(sessionID, h.cfg.AdminKeySalt)

	err = h.store.CreateSession(models.Session{
		ID:            sessionID,
		Code:          code,
		Name:          req.Name,
		PresenterName: req.PresenterName,
		Active:        true,
		CreatedAt:     time.Now(),
	})
	if err != nil {
		slog.Error("failed to insert session", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to create session")
		return
	}

	slog.Info("session created", "session_id", sessionID, "code", code, "presenter", req.PresenterName)

	middleware.JSONResponse(w, http.StatusCreated, models.CreateSessionResponse{
		SessionID: sessionID,
		Code:      code,
		AdminKey:  adminKey,
	})
}

// GetSessionAdmin handles GET /sessions/{id}/admin
// Returns the session with all its questions, active or not
func (h *SessionHandler) GetSessionAdmin(w http.ResponseWriter, r *http.Request) {
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

	sess, err := h.store.GetSession(sessionID)
	if errors.Is(err, store.ErrNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Session not found")
		return
	}
	if err != nil {
		slog.Error("failed to query session", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	questions, err := h.store.ListQuestionsBySession(sessionID, false)
	if err != nil {
		slog.Error("failed to query questions", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	responseCount, err := h.store.CountResponsesBySession(sessionID)
	if err != nil {
		slog.Error("failed to count responses", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.SessionWithQuestions{
		Session:       sess,
		Questions:     questions,
		ResponseCount: responseCount,
	})
}

// ToggleSession handles POST /sessions/{id}/toggle
// Flips the session between active and inactive
func (h *SessionHandler) ToggleSession(w http.ResponseWriter, r *http.Request) {
	sessionID := r.PathValue("id")
	if sessionID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "session_id is required")
		return
	}

	adminKey := r.Header.Get("X-Admin-Key")
	if err := auth.ValidateAdminKey(sessionID, adminKey, h.cfg.AdminKeySalt); err != nil {
		middleware.ErrorResponse(w, http.StatusUnauthorized, "Invalid admin key")
		return
	}

	active, err := h.store.ToggleSessionActive(sessionID)
	if errors.Is(err, store.ErrNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Session not found")
		return
	}
	if err != nil {
		slog.Error("failed to toggle session", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	slog.Info("session toggled", "session_id", sessionID, "active", active)

	middleware.JSONResponse(w, http.StatusOK, models.ToggleResponse{Active: active})
}

// GetSessionByCode handles GET /sessions/{code}
// The audience join view: session info plus its active questions only
func (h *SessionHandler) GetSessionByCode(w http.ResponseWriter, r *http.Request) {
	code := r.PathValue("code")
	if code == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "code is required")
		return
	}

	sess, err := h.store.GetSessionByCode(code)
	if errors.Is(err, store.ErrNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Session not found")
		return
	}
	if err != nil {
		slog.Error("failed to query session", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	questions, err := h.store.ListQuestionsBySession(sess.ID, true)
	if err != nil {
		slog.Error("failed to query questions", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.SessionWithQuestions{
		Session:   sess,
		Questions: questions,
	})
}

// JoinSession handles POST /sessions/{code}/join
// Issues an anonymous respondent token, stable for this browser/session
func (h *SessionHandler) JoinSession(w http.ResponseWriter, r *http.Request) {
	code := r.PathValue("code")
	if code == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "code is required")
		return
	}

	sess, err := h.store.GetSessionByCode(code)
	if errors.Is(err, store.ErrNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Session not found")
		return
	}
	if err != nil {
		slog.Error("failed to query session", "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	if !sess.Active {
		middleware.ErrorResponse(w, http.StatusConflict, "Session is not accepting participants")
		return
	}

	respondentToken := uuid.NewString()

	// Hash the IP so join abuse is visible in logs without storing addresses
	ipHash := auth.HashIP(middleware.GetClientIP(r), h.cfg.AdminKeySalt)
	slog.Info("respondent joined", "session_id", sess.ID, "ip_hash", ipHash)

	middleware.JSONResponse(w, http.StatusCreated, models.JoinSessionResponse{
		SessionID:       sess.ID,
		RespondentToken: respondentToken,
	})
}

// uniqueCode generates a session join code that is not already claimed.
func (h *SessionHandler) uniqueCode() (string, error) {
	for i := 0; i < 10; i++ {
		code, err := auth.GenerateSessionCode()
		if err != nil {
			return "", err
		}
		exists, err := h.store.CodeExists(code)
		if err != nil {
			return "", err
		}
		if !exists {
			return code, nil
		}
	}
	return "", errors.New("could not find a free session code")
}
