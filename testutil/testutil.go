// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/classpulse/server/auth"
	"github.com/classpulse/server/cliparse"
	"github.com/classpulse/server/db"
	"github.com/classpulse/server/models"
	"github.com/classpulse/server/store"
)

// SetupTestDB creates a fresh SQLite database in a per-test temp directory
// with the full schema. The same DDL runs in production against PostgreSQL.
func SetupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "classpulse_test.db")
	conn, err := sql.Open("sqlite", path)
	if err != nil {
		t.Fatalf("Failed to open test database: %v", err)
	}
	t.Cleanup(func() { conn.Close() })

	// SQLite allows a single writer; serialize through one connection so
	// concurrent test writers queue instead of failing with SQLITE_BUSY
	conn.SetMaxOpenConns(1)

	if err := db.CreateSchema(conn); err != nil {
		t.Fatalf("Failed to create schema: %v", err)
	}

	return conn
}

// SetupTestStore creates a fresh test database wrapped in a Store.
func SetupTestStore(t *testing.T) *store.Store {
	t.Helper()
	return store.New(SetupTestDB(t))
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:         3412,
		DatabaseURL:  "test.db",
		DatabaseType: "sqlite",
		AdminKeySalt: "test-admin-salt",
	}
}

// CreateTestSession creates a session in the database and returns its ID,
// join code, and admin key.
func CreateTestSession(t *testing.T, st *store.Store, cfg cliparse.Config, active bool) (sessionID, code, adminKey string) {
	t.Helper()

	sessionID, _ = auth.GenerateID(16)
	code, _ = auth.GenerateSessionCode()
	adminKey = auth.GenerateAdminKey(sessionID, cfg.AdminKeySalt)

	err := st.CreateSession(models.Session{
		ID:            sessionID,
		Code:          code,
		Name:          "Test Session",
		PresenterName: "TestPresenter",
		Active:        active,
		CreatedAt:     time.Now(),
	})
	if err != nil {
		t.Fatalf("Failed to create test session: %v", err)
	}

	return sessionID, code, adminKey
}

// CreateTestQuestion creates a question and returns its ID. config must be
// the stored JSON shape for the kind (e.g. `["A","B"]`, `{"max_rating":5}`).
func CreateTestQuestion(t *testing.T, st *store.Store, sessionID, kind, config string, active bool) string {
	t.Helper()

	questionID, _ := auth.GenerateID(12)
	err := st.CreateQuestion(models.Question{
		ID:        questionID,
		SessionID: sessionID,
		Kind:      kind,
		Title:     "Test Question",
		Config:    config,
		Active:    active,
		Position:  0,
		CreatedAt: time.Now(),
	})
	if err != nil {
		t.Fatalf("Failed to create test question: %v", err)
	}

	return questionID
}

// SubmitTestResponse upserts a response directly through the store and
// returns its ID.
func SubmitTestResponse(t *testing.T, st *store.Store, questionID, respondentID, value string) string {
	t.Helper()

	resp, err := st.UpsertResponse(questionID, respondentID, value)
	if err != nil {
		t.Fatalf("Failed to submit test response: %v", err)
	}
	return resp.ID
}

// NewRespondent returns a fresh anonymous respondent token.
func NewRespondent() string {
	return uuid.NewString()
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
