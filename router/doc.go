// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes using Go 1.22+ method routing.

# Usage

	mux := router.NewRouter(st, hub, cfg)
	server := http.Server{Handler: mux}

# Routes

Presenter (X-Admin-Key):

	POST /sessions
	GET  /sessions/{id}/admin
	POST /sessions/{id}/toggle
	POST /sessions/{id}/questions
	POST /questions/{id}/toggle
	PUT  /questions/{id}/config
	GET  /questions/{id}/export

Audience (public):

	GET  /sessions/{code}
	POST /sessions/{code}/join
	POST /questions/{id}/responses
	GET  /questions/{id}/my-response
	GET  /questions/{id}/results
	GET  /ws/questions/{id}

Plus GET /health and GET /.

All routes except the WebSocket endpoint are wrapped with request logging;
the stream handler does its own connection-scoped logging.
*/
package router
