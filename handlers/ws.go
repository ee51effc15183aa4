// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/classpulse/server/cliparse"
	"github.com/classpulse/server/middleware"
	"github.com/classpulse/server/realtime"
	"github.com/classpulse/server/store"
)

const writeTimeout = 10 * time.Second

type StreamHandler struct {
	hub *realtime.Hub
	cfg cliparse.Config

	upgrader websocket.Upgrader
}

func NewStreamHandler(hub *realtime.Hub, cfg cliparse.Config) *StreamHandler {
	return &StreamHandler{
		hub: hub,
		cfg: cfg,
		upgrader: websocket.Upgrader{
			// Same policy as the CORS middleware: any origin may watch results
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// StreamResults handles GET /ws/questions/{id}
// Upgrades to a WebSocket and pushes a Stats snapshot on connect, then one
// per accepted response write. Snapshots are fire-and-forget: no acks, no
// replay, each one complete on its own.
func (h *StreamHandler) StreamResults(w http.ResponseWriter, r *http.Request) {
	questionID := r.PathValue("id")
	if questionID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "question_id is required")
		return
	}

	// Subscribe before upgrading so an unknown question is still a clean 404
	sub, err := h.hub.Subscribe(questionID)
	if errors.Is(err, store.ErrNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, "Question not found")
		return
	}
	if err != nil {
		slog.Error("failed to subscribe", "question_id", questionID, "error", err)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Failed to subscribe")
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already wrote its own error response
		sub.Close()
		slog.Warn("websocket upgrade failed", "question_id", questionID, "error", err)
		return
	}
	defer conn.Close()
	defer sub.Close()

	slog.Info("viewer connected", "question_id", questionID, "remote", r.RemoteAddr)

	// Read pump: we expect no messages from viewers, but reading is how
	// gorilla surfaces close frames. Closing the subscriber ends the write
	// loop below.
	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				sub.Close()
				return
			}
		}
	}()

	for snapshot := range sub.C {
		conn.SetWriteDeadline(time.Now().Add(writeTimeout))
		if err := conn.WriteJSON(snapshot); err != nil {
			slog.Info("viewer disconnected", "question_id", questionID, "error", err)
			return
		}
	}
}
