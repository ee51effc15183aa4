// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package stats

import (
	"encoding/json"

	"github.com/classpulse/server/models"
)

// ratingConfig is the stored config shape for rating questions.
type ratingConfig struct {
	MaxRating int `json:"max_rating"`
}

// ParseOptions parses a multiple-choice config (a JSON array of option
// labels) preserving order. Malformed config yields no options: the
// question still aggregates (all responses count toward the total, none
// match a bucket) rather than failing the request.
func ParseOptions(config string) []string {
	var options []string
	if err := json.Unmarshal([]byte(config), &options); err != nil {
		return []string{}
	}
	return options
}

// RatingScale returns the configured max rating for a rating question.
// A missing, unparsable, or non-positive max_rating falls back to
// DefaultRatingScale; defaulted reports whether that happened so callers
// can surface the substitution if they care.
//
// No clamping happens here: values are clamped into the legal range when
// the question is created or edited, and trusted afterwards.
func RatingScale(config string) (max int, defaulted bool) {
	var rc ratingConfig
	if err := json.Unmarshal([]byte(config), &rc); err != nil || rc.MaxRating < 1 {
		return models.DefaultRatingScale, true
	}
	return rc.MaxRating, false
}

// ClampRatingScale normalizes a requested max rating at question create or
// edit time: zero (field omitted) becomes the default, anything else is
// clamped into [MinRatingScale, MaxRatingScale].
func ClampRatingScale(requested int) int {
	if requested == 0 {
		return models.DefaultRatingScale
	}
	if requested < models.MinRatingScale {
		return models.MinRatingScale
	}
	if requested > models.MaxRatingScale {
		return models.MaxRatingScale
	}
	return requested
}

// OptionsConfig serializes multiple-choice option labels to the stored
// config shape.
func OptionsConfig(options []string) string {
	data, _ := json.Marshal(options)
	return string(data)
}

// RatingScaleConfig serializes a max rating to the stored config shape.
func RatingScaleConfig(max int) string {
	data, _ := json.Marshal(ratingConfig{MaxRating: max})
	return string(data)
}
