// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers_test

import (
	"net/http"
	"testing"

	"github.com/classpulse/server/cliparse"
	"github.com/classpulse/server/models"
	"github.com/classpulse/server/realtime"
	"github.com/classpulse/server/router"
	"github.com/classpulse/server/stats"
	"github.com/classpulse/server/store"
	"github.com/classpulse/server/testutil"
)

// setup wires the full HTTP surface over a fresh store, with the hub's
// stats function reading through the store exactly as main wires it.
func setup(t *testing.T) (*http.ServeMux, *store.Store, *realtime.Hub, cliparse.Config) {
	t.Helper()

	st := testutil.SetupTestStore(t)
	cfg := testutil.GetTestConfig()

	hub := realtime.NewHub(func(questionID string) (models.Stats, error) {
		q, err := st.GetQuestion(questionID)
		if err != nil {
			return models.Stats{}, err
		}
		responses, err := st.ListResponsesByQuestion(questionID)
		if err != nil {
			return models.Stats{}, err
		}
		return stats.Compute(q, responses), nil
	})

	return router.NewRouter(st, hub, cfg), st, hub, cfg
}
