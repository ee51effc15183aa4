package models

import "time"

// Question kind constants
const (
	KindMultipleChoice = "multiple_choice"
	KindWordCloud      = "word_cloud"
	KindRating         = "rating"
)

// Rating scale bounds. max_rating is clamped into [MinRatingScale,
// MaxRatingScale] when a question is created or edited; DefaultRatingScale is
// substituted when a rating question's config is missing or unparsable.
const (
	MinRatingScale     = 2
	MaxRatingScale     = 10
	DefaultRatingScale = 5
)

// Request types

type CreateSessionRequest struct {
	Name          string `json:"name"`
	PresenterName string `json:"presenter_name"`
}

type CreateQuestionRequest struct {
	Kind      string   `json:"kind"`
	Title     string   `json:"title"`
	Options   []string `json:"options,omitempty"`    // multiple_choice only
	MaxRating int      `json:"max_rating,omitempty"` // rating only
}

type UpdateQuestionConfigRequest struct {
	Kind      string   `json:"kind,omitempty"` // must match stored kind if set
	Options   []string `json:"options,omitempty"`
	MaxRating int      `json:"max_rating,omitempty"`
}

type SubmitResponseRequest struct {
	Value string `json:"value"`
}

// Response types

type CreateSessionResponse struct {
	SessionID string `json:"session_id"`
	Code      string `json:"code"`
	AdminKey  string `json:"admin_key"`
}

type CreateQuestionResponse struct {
	QuestionID string `json:"question_id"`
}

type ToggleResponse struct {
	Active bool `json:"active"`
}

type JoinSessionResponse struct {
	SessionID       string `json:"session_id"`
	RespondentToken string `json:"respondent_token"`
}

type SubmitResponseResponse struct {
	ResponseID string `json:"response_id"`
	Message    string `json:"message"`
}

// Domain types

type Session struct {
	ID            string    `json:"id"`
	Code          string    `json:"code"`
	Name          string    `json:"name"`
	PresenterName string    `json:"presenter_name"`
	Active        bool      `json:"active"`
	CreatedAt     time.Time `json:"created_at"`
}

// Question config is stored as a JSON string whose shape depends on Kind:
// an ordered array of option labels for multiple_choice, {"max_rating": N}
// for rating, and {} for word_cloud.
type Question struct {
	ID        string    `json:"id"`
	SessionID string    `json:"session_id"`
	Kind      string    `json:"kind"`
	Title     string    `json:"title"`
	Config    string    `json:"config"`
	Active    bool      `json:"active"`
	Position  int       `json:"position"`
	CreatedAt time.Time `json:"created_at"`
}

// SessionWithQuestions is the session detail view. ResponseCount is the
// total across all of the session's questions; only the admin view fills
// it in.
type SessionWithQuestions struct {
	Session       Session    `json:"session"`
	Questions     []Question `json:"questions"`
	ResponseCount int        `json:"response_count,omitempty"`
}

type Response struct {
	ID           string    `json:"id"`
	QuestionID   string    `json:"question_id"`
	SessionID    string    `json:"session_id"`
	RespondentID string    `json:"-"` // Never expose in JSON
	Value        string    `json:"value"`
	SubmittedAt  time.Time `json:"submitted_at"`
}

// Aggregated result types

// Bucket is one labeled count slot: an option label, a rating value
// rendered as its decimal string, or a distinct word.
type Bucket struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

// Stats is the derived per-question summary. TotalResponses counts every
// stored response, including ones that match no current bucket, so it may
// exceed the sum of the bucket counts.
type Stats struct {
	QuestionID     string   `json:"question_id"`
	Title          string   `json:"title"`
	Kind           string   `json:"kind"`
	TotalResponses int      `json:"total_responses"`
	Results        []Bucket `json:"results"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
