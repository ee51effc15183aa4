// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package stats

import (
	"sort"
	"strconv"
	"strings"
	"unicode"

	"github.com/classpulse/server/models"
)

// Compute aggregates a question's responses into a Stats snapshot. It is a
// pure function: same question + responses in, bit-identical Stats out, no
// side effects.
//
// TotalResponses counts every stored response. Responses whose value matches
// no current bucket (a removed option label, an out-of-range rating) are
// dropped from the per-bucket counts but still counted in the total, so the
// bucket sum may be less than the total. That discrepancy is intentional:
// stale values are data, not errors.
func Compute(q models.Question, responses []models.Response) models.Stats {
	st := models.Stats{
		QuestionID:     q.ID,
		Title:          q.Title,
		Kind:           q.Kind,
		TotalResponses: len(responses),
	}

	switch q.Kind {
	case models.KindMultipleChoice:
		st.Results = computeMultipleChoice(q.Config, responses)
	case models.KindWordCloud:
		st.Results = computeWordCloud(responses)
	case models.KindRating:
		st.Results = computeRating(q.Config, responses)
	default:
		st.Results = []models.Bucket{}
	}

	return st
}

// computeMultipleChoice buckets responses by exact option label match.
// Every configured option gets a bucket (zero included), in configured
// order. Values matching no configured option are stale data from a removed
// option and are silently dropped.
func computeMultipleChoice(config string, responses []models.Response) []models.Bucket {
	options := ParseOptions(config)

	counts := make(map[string]int, len(options))
	for _, label := range options {
		counts[label] = 0
	}

	for _, resp := range responses {
		if _, known := counts[resp.Value]; known {
			counts[resp.Value]++
		}
	}

	buckets := make([]models.Bucket, len(options))
	for i, label := range options {
		buckets[i] = models.Bucket{Label: label, Count: counts[label]}
	}
	return buckets
}

// computeWordCloud counts word frequencies across all responses: each value
// is split on whitespace, lowercased, stripped of non-alphanumeric runes,
// and filtered against the stop-word set. Counting is associative and
// commutative over responses. Buckets are sorted by weight (descending,
// label ascending within ties) purely for deterministic output; consumers
// must not read meaning into the order of equal weights.
func computeWordCloud(responses []models.Response) []models.Bucket {
	counts := make(map[string]int)
	for _, resp := range responses {
		for _, field := range strings.Fields(resp.Value) {
			word := normalizeWord(field)
			if word == "" || stopWords[word] {
				continue
			}
			counts[word]++
		}
	}

	buckets := make([]models.Bucket, 0, len(counts))
	for word, count := range counts {
		buckets = append(buckets, models.Bucket{Label: word, Count: count})
	}
	sort.Slice(buckets, func(i, j int) bool {
		if buckets[i].Count != buckets[j].Count {
			return buckets[i].Count > buckets[j].Count
		}
		return buckets[i].Label < buckets[j].Label
	})
	return buckets
}

// computeRating buckets numeric values into "1".."max". Non-numeric and
// out-of-range values are dropped. A missing or unparsable max falls back
// to the default scale; that substitution is graceful degradation, not an
// error (RatingScale exposes it to callers that care).
func computeRating(config string, responses []models.Response) []models.Bucket {
	max, _ := RatingScale(config)

	counts := make([]int, max+1)
	for _, resp := range responses {
		n, err := strconv.Atoi(strings.TrimSpace(resp.Value))
		if err != nil || n < 1 || n > max {
			continue
		}
		counts[n]++
	}

	buckets := make([]models.Bucket, max)
	for i := 1; i <= max; i++ {
		buckets[i-1] = models.Bucket{Label: strconv.Itoa(i), Count: counts[i]}
	}
	return buckets
}

// normalizeWord lowercases a token and strips every non-alphanumeric rune.
func normalizeWord(token string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(token) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}
