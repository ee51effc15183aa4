// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package stats

import (
	"reflect"
	"testing"

	"github.com/classpulse/server/models"
)

func responses(values ...string) []models.Response {
	out := make([]models.Response, len(values))
	for i, v := range values {
		out[i] = models.Response{ID: "r", QuestionID: "q1", Value: v}
	}
	return out
}

func TestCompute_MultipleChoice(t *testing.T) {
	q := models.Question{
		ID:     "q1",
		Title:  "Favorite language?",
		Kind:   models.KindMultipleChoice,
		Config: `["Go","Rust","Python"]`,
	}

	tests := []struct {
		name        string
		values      []string
		wantBuckets []models.Bucket
		wantTotal   int
	}{
		{
			name:   "counts in configured order",
			values: []string{"Go", "Rust", "Go", "Go"},
			wantBuckets: []models.Bucket{
				{Label: "Go", Count: 3},
				{Label: "Rust", Count: 1},
				{Label: "Python", Count: 0},
			},
			wantTotal: 4,
		},
		{
			name:   "no responses yields zero buckets",
			values: nil,
			wantBuckets: []models.Bucket{
				{Label: "Go", Count: 0},
				{Label: "Rust", Count: 0},
				{Label: "Python", Count: 0},
			},
			wantTotal: 0,
		},
		{
			name:   "stale value dropped from buckets but counted in total",
			values: []string{"Go", "Java"},
			wantBuckets: []models.Bucket{
				{Label: "Go", Count: 1},
				{Label: "Rust", Count: 0},
				{Label: "Python", Count: 0},
			},
			wantTotal: 2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := Compute(q, responses(tt.values...))

			if st.QuestionID != "q1" || st.Kind != models.KindMultipleChoice {
				t.Errorf("Compute() identity fields = %s/%s", st.QuestionID, st.Kind)
			}
			if st.TotalResponses != tt.wantTotal {
				t.Errorf("TotalResponses = %d, want %d", st.TotalResponses, tt.wantTotal)
			}
			if !reflect.DeepEqual(st.Results, tt.wantBuckets) {
				t.Errorf("Results = %v, want %v", st.Results, tt.wantBuckets)
			}
		})
	}
}

func TestCompute_MultipleChoiceMalformedConfig(t *testing.T) {
	q := models.Question{ID: "q1", Kind: models.KindMultipleChoice, Config: `not json`}

	st := Compute(q, responses("Go"))

	// Malformed config: no buckets, but the response still counts
	if len(st.Results) != 0 {
		t.Errorf("Expected no buckets for malformed config, got %v", st.Results)
	}
	if st.TotalResponses != 1 {
		t.Errorf("TotalResponses = %d, want 1", st.TotalResponses)
	}
}

func TestCompute_WordCloud(t *testing.T) {
	q := models.Question{ID: "q1", Kind: models.KindWordCloud, Config: "{}"}

	tests := []struct {
		name   string
		values []string
		want   []models.Bucket
	}{
		{
			name:   "normalizes case and punctuation, drops stop words",
			values: []string{"the Cat sat on the MAT."},
			want: []models.Bucket{
				{Label: "cat", Count: 1},
				{Label: "mat", Count: 1},
				{Label: "sat", Count: 1},
			},
		},
		{
			name:   "counts across responses, sorted by weight then label",
			values: []string{"fast simple", "Fast concurrent", "fast!"},
			want: []models.Bucket{
				{Label: "fast", Count: 3},
				{Label: "concurrent", Count: 1},
				{Label: "simple", Count: 1},
			},
		},
		{
			name:   "all stop words yields empty results",
			values: []string{"the and a"},
			want:   []models.Bucket{},
		},
		{
			name:   "pure punctuation tokens vanish",
			values: []string{"!!! ??? go"},
			want:   []models.Bucket{{Label: "go", Count: 1}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := Compute(q, responses(tt.values...))
			if !reflect.DeepEqual(st.Results, tt.want) {
				t.Errorf("Results = %v, want %v", st.Results, tt.want)
			}
			if st.TotalResponses != len(tt.values) {
				t.Errorf("TotalResponses = %d, want %d", st.TotalResponses, len(tt.values))
			}
		})
	}
}

func TestCompute_WordCloudDeterministic(t *testing.T) {
	q := models.Question{ID: "q1", Kind: models.KindWordCloud, Config: "{}"}
	resps := responses("alpha beta", "beta gamma", "gamma alpha", "delta")

	first := Compute(q, resps)
	for i := 0; i < 20; i++ {
		if got := Compute(q, resps); !reflect.DeepEqual(got, first) {
			t.Fatalf("Compute() not deterministic: %v vs %v", got, first)
		}
	}
}

func TestCompute_Rating(t *testing.T) {
	q := models.Question{
		ID:     "q1",
		Kind:   models.KindRating,
		Config: `{"max_rating":5}`,
	}

	st := Compute(q, responses("4", "5", "4", "6", "abc", " 3 "))

	want := []models.Bucket{
		{Label: "1", Count: 0},
		{Label: "2", Count: 0},
		{Label: "3", Count: 1},
		{Label: "4", Count: 2},
		{Label: "5", Count: 1},
	}
	if !reflect.DeepEqual(st.Results, want) {
		t.Errorf("Results = %v, want %v", st.Results, want)
	}

	// "6" and "abc" are dropped from buckets but counted in the total
	if st.TotalResponses != 6 {
		t.Errorf("TotalResponses = %d, want 6", st.TotalResponses)
	}
}

func TestCompute_RatingDefaultScale(t *testing.T) {
	// Missing max_rating falls back to the default 5-point scale
	q := models.Question{ID: "q1", Kind: models.KindRating, Config: "{}"}

	st := Compute(q, responses("5"))

	if len(st.Results) != models.DefaultRatingScale {
		t.Errorf("Expected %d buckets on default scale, got %d", models.DefaultRatingScale, len(st.Results))
	}
	if st.Results[4].Count != 1 {
		t.Errorf("Expected bucket '5' count 1, got %d", st.Results[4].Count)
	}
}

func TestCompute_UnknownKind(t *testing.T) {
	q := models.Question{ID: "q1", Kind: "essay", Config: "{}"}

	st := Compute(q, responses("whatever"))

	if len(st.Results) != 0 {
		t.Errorf("Expected empty results for unknown kind, got %v", st.Results)
	}
	if st.TotalResponses != 1 {
		t.Errorf("TotalResponses = %d, want 1", st.TotalResponses)
	}
}

func TestParseOptions(t *testing.T) {
	tests := []struct {
		name   string
		config string
		want   []string
	}{
		{"valid options", `["A","B","C"]`, []string{"A", "B", "C"}},
		{"empty array", `[]`, []string{}},
		{"malformed JSON", `{broken`, []string{}},
		{"wrong shape", `{"max_rating":5}`, []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseOptions(tt.config)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ParseOptions(%q) = %v, want %v", tt.config, got, tt.want)
			}
		})
	}
}

func TestRatingScale(t *testing.T) {
	tests := []struct {
		name          string
		config        string
		wantMax       int
		wantDefaulted bool
	}{
		{"configured scale", `{"max_rating":10}`, 10, false},
		{"missing field", `{}`, models.DefaultRatingScale, true},
		{"malformed JSON", `nope`, models.DefaultRatingScale, true},
		{"non-positive", `{"max_rating":0}`, models.DefaultRatingScale, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			max, defaulted := RatingScale(tt.config)
			if max != tt.wantMax || defaulted != tt.wantDefaulted {
				t.Errorf("RatingScale(%q) = (%d, %v), want (%d, %v)",
					tt.config, max, defaulted, tt.wantMax, tt.wantDefaulted)
			}
		})
	}
}

func TestClampRatingScale(t *testing.T) {
	tests := []struct {
		requested int
		want      int
	}{
		{0, models.DefaultRatingScale},
		{1, models.MinRatingScale},
		{2, 2},
		{5, 5},
		{10, 10},
		{11, models.MaxRatingScale},
		{100, models.MaxRatingScale},
		{-3, models.MinRatingScale},
	}

	for _, tt := range tests {
		if got := ClampRatingScale(tt.requested); got != tt.want {
			t.Errorf("ClampRatingScale(%d) = %d, want %d", tt.requested, got, tt.want)
		}
	}
}

func TestConfigRoundTrip(t *testing.T) {
	options := ParseOptions(OptionsConfig([]string{"Yes", "No"}))
	if !reflect.DeepEqual(options, []string{"Yes", "No"}) {
		t.Errorf("OptionsConfig round trip = %v", options)
	}

	max, defaulted := RatingScale(RatingScaleConfig(7))
	if max != 7 || defaulted {
		t.Errorf("RatingScaleConfig round trip = (%d, %v)", max, defaulted)
	}
}
