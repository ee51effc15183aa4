// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the ClassPulse API server.

ClassPulse is a live-polling service: presenters run sessions of
multiple-choice, word-cloud, and rating questions; audience members join
with a short code and answer anonymously; results aggregate live and are
pushed to viewers over WebSocket.

# Starting the Server

The server requires environment variables or CLI flags for configuration:

	DATABASE_URL=classpulse.db ADMIN_KEY_SALT=... go run main.go

Or with flags:

	go run main.go -p 3412 -d classpulse.db -t sqlite --admin-salt ...

A .env file in the working directory is loaded if present.

# Configuration

Required settings:

  - DATABASE_URL (-d): SQLite path or PostgreSQL connection string
  - ADMIN_KEY_SALT (--admin-salt): Secret for admin key HMAC

Optional settings:

  - PORT (-p): Server port (default: 3412)
  - DATABASE_TYPE (-t): "sqlite" (default) or "postgres"

# Architecture

The server uses a handler-based architecture with dependency injection:

  - handlers: HTTP request handlers (sessions, questions, responses, results, streaming)
  - router: Route definitions using Go 1.22+ routing
  - middleware: CORS, logging, JSON helpers
  - models: Request/response and domain types
  - store: Typed data access (sessions, questions, response upserts)
  - stats: Pure per-question aggregation
  - realtime: Per-question broadcast rooms
  - auth: Key and code generation/validation
  - db: Schema creation
  - cliparse: Configuration parsing

See package documentation for each component.
*/
package main
