// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"

	"github.com/classpulse/server/cliparse"
	"github.com/classpulse/server/handlers"
	"github.com/classpulse/server/middleware"
	"github.com/classpulse/server/realtime"
	"github.com/classpulse/server/store"
)

func NewRouter(st *store.Store, hub *realtime.Hub, cfg cliparse.Config) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	sessionHandler := handlers.NewSessionHandler(st, cfg)
	questionHandler := handlers.NewQuestionHandler(st, cfg)
	responseHandler := handlers.NewResponseHandler(st, hub, cfg)
	resultsHandler := handlers.NewResultsHandler(st, cfg)
	streamHandler := handlers.NewStreamHandler(hub, cfg)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Session management (presenter operations)
	mux.HandleFunc("POST /sessions", middleware.WithLogging(sessionHandler.CreateSession))
	mux.HandleFunc("GET /sessions/{id}/admin", middleware.WithLogging(sessionHandler.GetSessionAdmin))
	mux.HandleFunc("POST /sessions/{id}/toggle", middleware.WithLogging(sessionHandler.ToggleSession))
	mux.HandleFunc("POST /sessions/{id}/questions", middleware.WithLogging(questionHandler.CreateQuestion))
	mux.HandleFunc("POST /questions/{id}/toggle", middleware.WithLogging(questionHandler.ToggleQuestion))
	mux.HandleFunc("PUT /questions/{id}/config", middleware.WithLogging(questionHandler.UpdateQuestionConfig))
	mux.HandleFunc("GET /questions/{id}/export", middleware.WithLogging(resultsHandler.ExportResponses))

	// Audience operations (public)
	mux.HandleFunc("GET /sessions/{code}", middleware.WithLogging(sessionHandler.GetSessionByCode))
	mux.HandleFunc("POST /sessions/{code}/join", middleware.WithLogging(sessionHandler.JoinSession))
	mux.HandleFunc("POST /questions/{id}/responses", middleware.WithLogging(responseHandler.SubmitResponse))
	mux.HandleFunc("GET /questions/{id}/my-response", middleware.WithLogging(responseHandler.GetMyResponse))

	// Results (public): on-demand snapshot and live stream
	mux.HandleFunc("GET /questions/{id}/results", middleware.WithLogging(resultsHandler.GetResults))
	mux.HandleFunc("GET /ws/questions/{id}", streamHandler.StreamResults)

	// Root endpoint
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("classpulse API v1"))
	})

	return mux
}
