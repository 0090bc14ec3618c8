package mcp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/fyrsmithlabs/resonanced/internal/observer"
	"github.com/fyrsmithlabs/resonanced/internal/resonance"
)

// newTestObserver builds an observer service around a fresh engine.
func newTestObserver(t *testing.T) *observer.Service {
	t.Helper()

	svc, err := observer.NewService(resonance.New(resonance.DefaultConfig()), zap.NewNop())
	require.NoError(t, err)
	return svc
}

// newTestServer builds an MCP server around a fresh engine.
func newTestServer(t *testing.T) *Server {
	t.Helper()

	srv, err := NewServer(nil, newTestObserver(t))
	require.NoError(t, err)
	return srv
}

func TestNewServer(t *testing.T) {
	t.Run("successful creation", func(t *testing.T) {
		cfg := &Config{
			Name:    "resonanced-test",
			Version: "0.0.1",
			Logger:  zap.NewNop(),
		}

		srv, err := NewServer(cfg, newTestObserver(t))
		require.NoError(t, err)
		require.NotNil(t, srv)
		assert.NotNil(t, srv.mcp)
		assert.NotNil(t, srv.observer)
		assert.NotNil(t, srv.metrics)
		assert.NotNil(t, srv.logger)
	})

	t.Run("nil config uses defaults", func(t *testing.T) {
		srv, err := NewServer(nil, newTestObserver(t))
		require.NoError(t, err)
		require.NotNil(t, srv)
	})

	t.Run("nil logger falls back to nop", func(t *testing.T) {
		srv, err := NewServer(&Config{Name: "x", Version: "0.0.1"}, newTestObserver(t))
		require.NoError(t, err)
		assert.NotNil(t, srv.logger)
	})

	t.Run("nil observer is rejected", func(t *testing.T) {
		_, err := NewServer(DefaultConfig(), nil)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "observer service is required")
	})
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, "resonanced", cfg.Name)
	assert.Equal(t, "0.1.0", cfg.Version)
	assert.NotNil(t, cfg.Logger)
}
