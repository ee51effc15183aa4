// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package store provides typed data access for sessions, questions, and
responses.

Every query lives behind an explicit method returning typed records - no
ad hoc filter strings at call sites. The response upsert invariant (at most
one row per question+respondent pair) is enforced here, in one place, backed
by the table's unique constraint.

# Upserts

	resp, err := st.UpsertResponse(questionID, respondentID, value)

A single INSERT ... ON CONFLICT DO UPDATE ... RETURNING statement: atomic
under concurrency, preserves the row's identity and ordinal position, and
refreshes value + timestamp on resubmission. Writes against an inactive
question or session fail with ErrUnavailable before reaching the response
table; unknown questions fail with ErrNotFound.

# Errors

Sentinel errors for handler mapping:

	store.ErrNotFound    → 404
	store.ErrUnavailable → 409
*/
package store
