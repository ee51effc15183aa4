// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db handles database schema creation.

# Usage

Create all tables on startup:

	if err := db.CreateSchema(dbConn); err != nil {
		// handle error
	}

Uses IF NOT EXISTS so it's safe to call on every startup.

# Schema

Three tables:

  - session: presentation sessions with unique join codes
  - question: questions with kind, JSON config, active flag, position
  - response: one row per (question, respondent) via a unique constraint;
    resubmissions update in place

The DDL is dialect-neutral and runs unchanged on PostgreSQL (lib/pq) and
SQLite (modernc.org/sqlite). Timestamps are always written by the
application, never defaulted by the database.
*/
package db
