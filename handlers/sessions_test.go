// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/classpulse/server/models"
	"github.com/classpulse/server/testutil"
)

func TestCreateSession(t *testing.T) {
	mux, _, _, _ := setup(t)

	t.Run("successful creation", func(t *testing.T) {
		req := testutil.MakeRequest("POST", "/sessions", models.CreateSessionRequest{
			Name:          "Intro to Distributed Systems",
			PresenterName: "Prof. Chen",
		}, nil)
		w := httptest.NewRecorder()

		mux.ServeHTTP(w, req)

		testutil.AssertStatus(t, w, http.StatusCreated)

		var resp models.CreateSessionResponse
		testutil.AssertJSON(t, w, &resp)

		if resp.SessionID == "" {
			t.Error("Expected session_id in response")
		}
		if len(resp.Code) != 6 {
			t.Errorf("Expected 6-char join code, got %q", resp.Code)
		}
		if resp.AdminKey == "" {
			t.Error("Expected admin_key in response")
		}
	})

	t.Run("missing name", func(t *testing.T) {
		req := testutil.MakeRequest("POST", "/sessions", models.CreateSessionRequest{
			PresenterName: "Prof. Chen",
		}, nil)
		w := httptest.NewRecorder()

		mux.ServeHTTP(w, req)

		testutil.AssertStatus(t, w, http.StatusBadRequest)
	})

	t.Run("missing presenter_name", func(t *testing.T) {
		req := testutil.MakeRequest("POST", "/sessions", models.CreateSessionRequest{
			Name: "Untitled",
		}, nil)
		w := httptest.NewRecorder()

		mux.ServeHTTP(w, req)

		testutil.AssertStatus(t, w, http.StatusBadRequest)
	})

	t.Run("invalid JSON body", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/sessions", nil)
		w := httptest.NewRecorder()

		mux.ServeHTTP(w, req)

		testutil.AssertStatus(t, w, http.StatusBadRequest)
	})
}

func TestGetSessionAdmin(t *testing.T) {
	mux, st, _, cfg := setup(t)

	sessionID, _, adminKey := testutil.CreateTestSession(t, st, cfg, true)
	q1 := testutil.CreateTestQuestion(t, st, sessionID, models.KindMultipleChoice, `["A","B"]`, true)
	testutil.CreateTestQuestion(t, st, sessionID, models.KindWordCloud, "{}", false)

	testutil.SubmitTestResponse(t, st, q1, testutil.NewRespondent(), "A")
	testutil.SubmitTestResponse(t, st, q1, testutil.NewRespondent(), "B")

	t.Run("returns all questions including inactive", func(t *testing.T) {
		req := testutil.MakeRequest("GET", "/sessions/"+sessionID+"/admin", nil, map[string]string{
			"X-Admin-Key": adminKey,
		})
		w := httptest.NewRecorder()

		mux.ServeHTTP(w, req)

		testutil.AssertStatus(t, w, http.StatusOK)

		var resp models.SessionWithQuestions
		testutil.AssertJSON(t, w, &resp)

		if resp.Session.ID != sessionID {
			t.Errorf("Session ID = %s, want %s", resp.Session.ID, sessionID)
		}
		if len(resp.Questions) != 2 {
			t.Errorf("Expected 2 questions (admin view includes inactive), got %d", len(resp.Questions))
		}
		if resp.ResponseCount != 2 {
			t.Errorf("ResponseCount = %d, want 2", resp.ResponseCount)
		}
	})

	t.Run("invalid admin key", func(t *testing.T) {
		req := testutil.MakeRequest("GET", "/sessions/"+sessionID+"/admin", nil, map[string]string{
			"X-Admin-Key": "wrong-key",
		})
		w := httptest.NewRecorder()

		mux.ServeHTTP(w, req)

		testutil.AssertStatus(t, w, http.StatusUnauthorized)
	})

	t.Run("missing admin key", func(t *testing.T) {
		req := testutil.MakeRequest("GET", "/sessions/"+sessionID+"/admin", nil, nil)
		w := httptest.NewRecorder()

		mux.ServeHTTP(w, req)

		testutil.AssertStatus(t, w, http.StatusUnauthorized)
	})
}

func TestToggleSession(t *testing.T) {
	mux, st, _, cfg := setup(t)

	sessionID, _, adminKey := testutil.CreateTestSession(t, st, cfg, true)

	toggle := func(t *testing.T) models.ToggleResponse {
		t.Helper()
		req := testutil.MakeRequest("POST", "/sessions/"+sessionID+"/toggle", nil, map[string]string{
			"X-Admin-Key": adminKey,
		})
		w := httptest.NewRecorder()
		mux.ServeHTTP(w, req)
		testutil.AssertStatus(t, w, http.StatusOK)

		var resp models.ToggleResponse
		testutil.AssertJSON(t, w, &resp)
		return resp
	}

	if resp := toggle(t); resp.Active {
		t.Error("Expected first toggle to deactivate the session")
	}
	if resp := toggle(t); !resp.Active {
		t.Error("Expected second toggle to reactivate the session")
	}

	t.Run("requires admin key", func(t *testing.T) {
		req := testutil.MakeRequest("POST", "/sessions/"+sessionID+"/toggle", nil, nil)
		w := httptest.NewRecorder()

		mux.ServeHTTP(w, req)

		testutil.AssertStatus(t, w, http.StatusUnauthorized)
	})
}

func TestGetSessionByCode(t *testing.T) {
	mux, st, _, cfg := setup(t)

	sessionID, code, _ := testutil.CreateTestSession(t, st, cfg, true)
	testutil.CreateTestQuestion(t, st, sessionID, models.KindRating, `{"max_rating":5}`, true)
	testutil.CreateTestQuestion(t, st, sessionID, models.KindWordCloud, "{}", false)

	t.Run("returns active questions only", func(t *testing.T) {
		req := testutil.MakeRequest("GET", "/sessions/"+code, nil, nil)
		w := httptest.NewRecorder()

		mux.ServeHTTP(w, req)

		testutil.AssertStatus(t, w, http.StatusOK)

		var resp models.SessionWithQuestions
		testutil.AssertJSON(t, w, &resp)

		if len(resp.Questions) != 1 {
			t.Errorf("Expected 1 active question in audience view, got %d", len(resp.Questions))
		}
		if len(resp.Questions) == 1 && resp.Questions[0].Kind != models.KindRating {
			t.Errorf("Wrong question in audience view: %s", resp.Questions[0].Kind)
		}
	})

	t.Run("unknown code", func(t *testing.T) {
		req := testutil.MakeRequest("GET", "/sessions/ZZZZZZ", nil, nil)
		w := httptest.NewRecorder()

		mux.ServeHTTP(w, req)

		testutil.AssertStatus(t, w, http.StatusNotFound)
	})
}

func TestJoinSession(t *testing.T) {
	mux, st, _, cfg := setup(t)

	t.Run("active session issues respondent token", func(t *testing.T) {
		sessionID, code, _ := testutil.CreateTestSession(t, st, cfg, true)

		req := testutil.MakeRequest("POST", "/sessions/"+code+"/join", nil, nil)
		w := httptest.NewRecorder()

		mux.ServeHTTP(w, req)

		testutil.AssertStatus(t, w, http.StatusCreated)

		var resp models.JoinSessionResponse
		testutil.AssertJSON(t, w, &resp)

		if resp.SessionID != sessionID {
			t.Errorf("SessionID = %s, want %s", resp.SessionID, sessionID)
		}
		if resp.RespondentToken == "" {
			t.Error("Expected respondent_token in response")
		}

		// Tokens must differ per join: they identify a browser, not a person
		req2 := testutil.MakeRequest("POST", "/sessions/"+code+"/join", nil, nil)
		w2 := httptest.NewRecorder()
		mux.ServeHTTP(w2, req2)

		var resp2 models.JoinSessionResponse
		testutil.AssertJSON(t, w2, &resp2)
		if resp2.RespondentToken == resp.RespondentToken {
			t.Error("Expected a fresh token per join")
		}
	})

	t.Run("inactive session rejects joins", func(t *testing.T) {
		_, code, _ := testutil.CreateTestSession(t, st, cfg, false)

		req := testutil.MakeRequest("POST", "/sessions/"+code+"/join", nil, nil)
		w := httptest.NewRecorder()

		mux.ServeHTTP(w, req)

		testutil.AssertStatus(t, w, http.StatusConflict)
	})

	t.Run("unknown code", func(t *testing.T) {
		req := testutil.MakeRequest("POST", "/sessions/ZZZZZZ/join", nil, nil)
		w := httptest.NewRecorder()

		mux.ServeHTTP(w, req)

		testutil.AssertStatus(t, w, http.StatusNotFound)
	})
}
