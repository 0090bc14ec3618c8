package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/fyrsmithlabs/resonanced/internal/observer"
	"github.com/fyrsmithlabs/resonanced/internal/resonance"
)

func TestNewServer(t *testing.T) {
	t.Run("creates server with valid config", func(t *testing.T) {
		cfg := &Config{
			Host: "127.0.0.1",
			Port: 9611,
		}

		server, err := NewServer(newTestObserver(t), zap.NewNop(), cfg)
		require.NoError(t, err)
		assert.NotNil(t, server)
		assert.NotNil(t, server.echo)
		assert.Equal(t, cfg, server.config)
	})

	t.Run("uses defaults when config is nil", func(t *testing.T) {
		server, err := NewServer(newTestObserver(t), zap.NewNop(), nil)
		require.NoError(t, err)
		assert.NotNil(t, server)
		assert.Equal(t, "127.0.0.1", server.config.Host)
		assert.Equal(t, 9611, server.config.Port)
	})

	t.Run("returns error when logger is nil", func(t *testing.T) {
		_, err := NewServer(newTestObserver(t), nil, nil)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "logger is required")
	})

	t.Run("returns error when observer is nil", func(t *testing.T) {
		_, err := NewServer(nil, zap.NewNop(), nil)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "observer cannot be nil")
	})
}

func TestHandleHealth(t *testing.T) {
	server := setupTestServer(t)

	rec := doRequest(t, server, http.MethodGet, "/health", "")

	assert.Equal(t, http.StatusOK, rec.Code)

	var resp HealthResponse
	err := json.Unmarshal(rec.Body.Bytes(), &resp)
	require.NoError(t, err)
	assert.Equal(t, "ok", resp.Status)
}

func TestHandleState(t *testing.T) {
	t.Run("fresh server returns neutral snapshot", func(t *testing.T) {
		server := setupTestServer(t)

		rec := doRequest(t, server, http.MethodGet, "/api/v1/state", "")
		assert.Equal(t, http.StatusOK, rec.Code)

		var state resonance.EcosystemState
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &state))

		assert.Empty(t, state.Observations)
		assert.Empty(t, state.Patterns)
		assert.Zero(t, state.TotalCoherence)
		assert.False(t, state.IsResonant)
		assert.Positive(t, state.ObservedAt)
	})

	t.Run("recorded moments appear in the snapshot", func(t *testing.T) {
		server := setupTestServer(t)

		for i := 0; i < 3; i++ {
			postMoment(t, server, `{"source":"creative","type":"meditation","concepts":["emergence"],"novelty":0.9}`)
		}

		rec := doRequest(t, server, http.MethodGet, "/api/v1/state", "")
		assert.Equal(t, http.StatusOK, rec.Code)

		var state resonance.EcosystemState
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &state))

		assert.Len(t, state.Observations, 3)
		require.Len(t, state.Patterns, 1)
		assert.Equal(t, "emergence Resonance", state.Patterns[0].Name)
		assert.Greater(t, state.TotalCoherence, 0.0)
	})
}

func TestHandleCouplings(t *testing.T) {
	t.Run("no couplings yet", func(t *testing.T) {
		server := setupTestServer(t)

		rec := doRequest(t, server, http.MethodGet, "/api/v1/couplings", "")

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Header().Get(echo.HeaderContentType), "text/plain")
		assert.Equal(t, "No active couplings detected.", rec.Body.String())
	})

	t.Run("renders the coupling graph", func(t *testing.T) {
		server := setupTestServer(t)

		postMoment(t, server, `{"source":"creative","type":"meditation","concepts":["emergence"]}`)
		postMoment(t, server, `{"source":"consult","type":"critique","concepts":["emergence"]}`)

		rec := doRequest(t, server, http.MethodGet, "/api/v1/couplings", "")

		assert.Equal(t, http.StatusOK, rec.Code)
		body := rec.Body.String()
		assert.Contains(t, body, "COUPLING GRAPH:")
		assert.Contains(t, body, "creative")
		assert.Contains(t, body, "consult")
		assert.Contains(t, body, "Shared: [emergence]")
	})
}

func TestHandleSuggestion(t *testing.T) {
	t.Run("returns 204 before intentions emerge", func(t *testing.T) {
		server := setupTestServer(t)

		rec := doRequest(t, server, http.MethodGet, "/api/v1/suggestion", "")

		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Empty(t, rec.Body.String())
	})

	t.Run("returns the suggestion once a pattern is strong", func(t *testing.T) {
		server := setupTestServer(t)

		// Eight occurrences push the pattern to strength 0.8, past the
		// emergent-intention threshold.
		for i := 0; i < 8; i++ {
			postMoment(t, server, `{"source":"creative","type":"meditation","concepts":["emergence"],"novelty":0.9}`)
		}

		rec := doRequest(t, server, http.MethodGet, "/api/v1/suggestion", "")
		assert.Equal(t, http.StatusOK, rec.Code)

		var suggestion resonance.Suggestion
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &suggestion))

		assert.True(t, strings.HasPrefix(suggestion.ID, "synthesis-"), "suggestion id %q", suggestion.ID)
		assert.Equal(t, resonance.ActionConsult, suggestion.SuggestedAction)
		assert.Contains(t, suggestion.TargetConcepts, "emergence")
		assert.Contains(t, suggestion.BasedOnPatterns, "pattern-emergence")
	})
}

func TestHandleRecommendation(t *testing.T) {
	server := setupTestServer(t)

	postMoment(t, server, `{"source":"creative","type":"meditation","concepts":["emergence"],"novelty":0.9}`)

	rec := doRequest(t, server, http.MethodGet, "/api/v1/recommendation", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	var recommendation resonance.Recommendation
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &recommendation))

	assert.Len(t, recommendation.State.Observations, 1)
	assert.Nil(t, recommendation.Suggestion)
	assert.False(t, recommendation.ShouldWeave)
}

func TestHandleRecordMoment(t *testing.T) {
	t.Run("assigns id and timestamp", func(t *testing.T) {
		server := setupTestServer(t)

		rec := postMoment(t, server, `{"source":"creative","type":"meditation","concepts":["emergence"],"novelty":0.8}`)
		assert.Equal(t, http.StatusOK, rec.Code)

		var ack observer.RecordAck
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &ack))

		assert.True(t, strings.HasPrefix(ack.MomentID, "moment-"), "moment id %q", ack.MomentID)
		assert.Positive(t, ack.Timestamp)
		assert.Zero(t, ack.PatternCount)
	})

	t.Run("echoes caller-supplied id and timestamp", func(t *testing.T) {
		server := setupTestServer(t)

		rec := postMoment(t, server, `{"id":"m-1","timestamp":1700000000000,"source":"bridge","type":"insight","concepts":["symmetry"]}`)
		assert.Equal(t, http.StatusOK, rec.Code)

		var ack observer.RecordAck
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &ack))

		assert.Equal(t, "m-1", ack.MomentID)
		assert.Equal(t, int64(1700000000000), ack.Timestamp)
	})

	t.Run("extracts concepts from text", func(t *testing.T) {
		server := setupTestServer(t)

		rec := postMoment(t, server, `{"source":"creative","type":"meditation","text":"an emergence of flow under tension"}`)
		assert.Equal(t, http.StatusOK, rec.Code)

		stateRec := doRequest(t, server, http.MethodGet, "/api/v1/state", "")
		var state resonance.EcosystemState
		require.NoError(t, json.Unmarshal(stateRec.Body.Bytes(), &state))

		require.Len(t, state.Observations, 1)
		assert.Equal(t, []string{"emergence", "flow", "tension"}, state.Observations[0].Concepts)
	})

	t.Run("rejects moments without concepts or text", func(t *testing.T) {
		server := setupTestServer(t)

		rec := postMoment(t, server, `{"source":"creative","type":"meditation"}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)

		var resp map[string]interface{}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Contains(t, resp["message"], "concepts or text field is required")
	})

	t.Run("rejects out-of-range novelty", func(t *testing.T) {
		server := setupTestServer(t)

		rec := postMoment(t, server, `{"source":"creative","type":"meditation","concepts":["emergence"],"novelty":1.5}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)

		var resp map[string]interface{}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Contains(t, resp["message"], "novelty must be between 0 and 1")
	})

	t.Run("rejects out-of-range relevance", func(t *testing.T) {
		server := setupTestServer(t)

		rec := postMoment(t, server, `{"source":"creative","type":"meditation","concepts":["emergence"],"relevance":-0.1}`)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("handles invalid json", func(t *testing.T) {
		server := setupTestServer(t)

		rec := postMoment(t, server, "invalid json")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestHandleReset(t *testing.T) {
	server := setupTestServer(t)

	for i := 0; i < 3; i++ {
		postMoment(t, server, `{"source":"creative","type":"meditation","concepts":["emergence"]}`)
	}

	rec := doRequest(t, server, http.MethodPost, "/api/v1/reset", "")
	assert.Equal(t, http.StatusOK, rec.Code)

	var resp ResetResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "reset", resp.Status)

	stateRec := doRequest(t, server, http.MethodGet, "/api/v1/state", "")
	var state resonance.EcosystemState
	require.NoError(t, json.Unmarshal(stateRec.Body.Bytes(), &state))
	assert.Empty(t, state.Observations)
	assert.Empty(t, state.Patterns)
}

func TestServerLifecycle(t *testing.T) {
	t.Run("starts and shuts down gracefully", func(t *testing.T) {
		cfg := &Config{
			Host: "127.0.0.1",
			Port: 0, // Use random available port
		}

		server, err := NewServer(newTestObserver(t), zap.NewNop(), cfg)
		require.NoError(t, err)

		// Start server in background
		errChan := make(chan error, 1)
		go func() {
			errChan <- server.Start()
		}()

		// Give server time to start
		time.Sleep(100 * time.Millisecond)

		// Shutdown server
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		err = server.Shutdown(ctx)
		assert.NoError(t, err)

		// Wait for server to finish
		select {
		case err := <-errChan:
			// Server should shut down cleanly (http.ErrServerClosed is expected)
			assert.True(t, err == nil || err == http.ErrServerClosed)
		case <-time.After(6 * time.Second):
			t.Fatal("server did not shut down in time")
		}
	})
}

func TestMiddleware(t *testing.T) {
	t.Run("adds request ID to response", func(t *testing.T) {
		server := setupTestServer(t)

		rec := doRequest(t, server, http.MethodGet, "/health", "")

		assert.NotEmpty(t, rec.Header().Get(echo.HeaderXRequestID))
	})

	t.Run("recovers from panic", func(t *testing.T) {
		server := setupTestServer(t)

		// Add a route that panics
		server.echo.GET("/panic", func(c echo.Context) error {
			panic("test panic")
		})

		req := httptest.NewRequest(http.MethodGet, "/panic", nil)
		rec := httptest.NewRecorder()

		// Should not panic, middleware should recover
		assert.NotPanics(t, func() {
			server.echo.ServeHTTP(rec, req)
		})

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
	})
}

// newTestObserver builds an observer service around a fresh engine.
func newTestObserver(t *testing.T) *observer.Service {
	t.Helper()

	svc, err := observer.NewService(resonance.New(resonance.DefaultConfig()), zap.NewNop())
	require.NoError(t, err)
	return svc
}

// setupTestServer creates a test server with default configuration.
func setupTestServer(t *testing.T) *Server {
	t.Helper()

	cfg := &Config{
		Host: "127.0.0.1",
		Port: 9611,
	}

	server, err := NewServer(newTestObserver(t), zap.NewNop(), cfg)
	require.NoError(t, err)

	return server
}

// doRequest runs one request through the server's handler chain.
func doRequest(t *testing.T, server *Server, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body == "" {
		reader = bytes.NewReader(nil)
	} else {
		reader = bytes.NewReader([]byte(body))
	}

	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()

	server.echo.ServeHTTP(rec, req)
	return rec
}

// postMoment records one moment through the ingest endpoint.
func postMoment(t *testing.T, server *Server, body string) *httptest.ResponseRecorder {
	t.Helper()
	return doRequest(t, server, http.MethodPost, "/api/v1/moments", body)
}
