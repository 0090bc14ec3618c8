//go:build integration

package integration

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/fyrsmithlabs/resonanced/internal/httpapi"
	"github.com/fyrsmithlabs/resonanced/internal/ingest"
	"github.com/fyrsmithlabs/resonanced/internal/observer"
	"github.com/fyrsmithlabs/resonanced/internal/resonance"
)

// TestObservationLifecycle_EndToEnd drives the full stack the way a
// session does: typed events flow through ingest into the observer,
// and the diagnostics HTTP server reports what emerged.
func TestObservationLifecycle_EndToEnd(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	ctx := context.Background()

	engine := resonance.New(resonance.DefaultConfig())
	obs, err := observer.NewService(engine, zap.NewNop())
	require.NoError(t, err)

	srv, err := httpapi.NewServer(obs, zap.NewNop(), nil)
	require.NoError(t, err)

	ts := httptest.NewServer(srv.Echo())
	defer ts.Close()

	// A working session: repeated meditations on one theme, a critique,
	// an insight, and a weave.
	score := func(v float64) *float64 { return &v }
	now := time.Now()

	for i := 0; i < 6; i++ {
		obs.Record(ctx, ingest.DeliberationLog{
			Topic:   "the emergence of flow in shared work",
			Novelty: score(0.9),
		}.Moment(now))
	}
	obs.Record(ctx, ingest.CritiqueResult{
		Subject:   "emergence under tension",
		Verdict:   "needs refinement",
		Relevance: score(0.8),
	}.Moment(now))
	obs.Record(ctx, ingest.InsightNote{
		Text:    "clarity about emergence connects both systems",
		Novelty: score(0.95),
	}.Moment(now))
	obs.Record(ctx, ingest.NarrativeWeave{
		Threads: []string{"emergence", "clarity"},
		Novelty: score(0.85),
	}.Moment(now))

	t.Run("health", func(t *testing.T) {
		resp, err := http.Get(ts.URL + "/health")
		require.NoError(t, err)
		defer resp.Body.Close()
		assert.Equal(t, http.StatusOK, resp.StatusCode)
	})

	t.Run("state reflects the session", func(t *testing.T) {
		resp, err := http.Get(ts.URL + "/api/v1/state")
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var state resonance.EcosystemState
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&state))

		assert.Len(t, state.Observations, 9)
		assert.NotEmpty(t, state.Patterns)
		assert.Contains(t, state.DominantConcepts, "emergence")
		assert.Greater(t, state.TotalCoherence, 0.0)

		var names []string
		for _, p := range state.Patterns {
			names = append(names, p.Name)
		}
		assert.Contains(t, names, "emergence Resonance")
	})

	t.Run("couplings graph renders", func(t *testing.T) {
		resp, err := http.Get(ts.URL + "/api/v1/couplings")
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var body strings.Builder
		_, err = body.ReadFrom(resp.Body)
		require.NoError(t, err)
		assert.Contains(t, body.String(), "COUPLING GRAPH:")
		assert.Contains(t, body.String(), "creative")
	})

	t.Run("suggestion emerges from strong patterns", func(t *testing.T) {
		resp, err := http.Get(ts.URL + "/api/v1/suggestion")
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var suggestion resonance.Suggestion
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&suggestion))

		assert.True(t, strings.HasPrefix(suggestion.ID, "synthesis-"))
		assert.NotEmpty(t, suggestion.SuggestedAction)
		assert.Contains(t, suggestion.TargetConcepts, "emergence")
	})

	t.Run("moments ingest over http", func(t *testing.T) {
		resp, err := http.Post(ts.URL+"/api/v1/moments", "application/json",
			strings.NewReader(`{"source":"external","type":"observation","text":"monitoring the resonance"}`))
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var ack observer.RecordAck
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&ack))
		assert.True(t, strings.HasPrefix(ack.MomentID, "moment-"))
	})

	t.Run("reset clears the session", func(t *testing.T) {
		resp, err := http.Post(ts.URL+"/api/v1/reset", "application/json", nil)
		require.NoError(t, err)
		defer resp.Body.Close()
		require.Equal(t, http.StatusOK, resp.StatusCode)

		stateResp, err := http.Get(ts.URL + "/api/v1/state")
		require.NoError(t, err)
		defer stateResp.Body.Close()

		var state resonance.EcosystemState
		require.NoError(t, json.NewDecoder(stateResp.Body).Decode(&state))
		assert.Empty(t, state.Observations)
		assert.Empty(t, state.Patterns)
	})
}
