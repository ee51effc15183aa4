// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package stats computes per-question aggregate results.

# Aggregation

	snapshot := stats.Compute(question, responses)

Compute is pure and deterministic: no clock, no randomness, no I/O. Stats
are recomputed from the raw responses on every call and never persisted, so
they cannot drift from the response table.

Per kind:

  - multiple_choice: one bucket per configured option (zero counts
    included), in configured order; values matching no option are dropped
    from buckets
  - word_cloud: whitespace-tokenized, lowercased, punctuation-stripped,
    stop-word-filtered word frequencies
  - rating: buckets "1".."max_rating"; out-of-range and non-numeric values
    dropped

TotalResponses always counts every stored response, dropped or not, so the
bucket sum may fall short of the total when stale values exist.

# Config

Question config is stored as JSON and parsed here:

	options := stats.ParseOptions(config)        // multiple_choice
	max, defaulted := stats.RatingScale(config)  // rating; default 5

Malformed config degrades gracefully (empty options, default scale) rather
than failing a request. Rating scales are clamped into [2, 10] by
ClampRatingScale at question create/edit time, never at aggregation time.
*/
package stats
