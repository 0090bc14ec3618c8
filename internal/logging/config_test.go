package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestNewDefaultConfig(t *testing.T) {
	cfg := NewDefaultConfig()

	assert.Equal(t, zapcore.InfoLevel, cfg.Level)
	assert.Equal(t, "json", cfg.Format)
	assert.True(t, cfg.Output.Stderr)
	assert.False(t, cfg.Output.OTEL)
	assert.Equal(t, "resonanced", cfg.Fields["service"])
	require.NoError(t, cfg.Validate())
}

func TestConfigValidate_RejectsUnknownFormat(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.Format = "xml"

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "format")
}

func TestConfigValidate_RequiresAnOutput(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.Output.Stderr = false
	cfg.Output.OTEL = false

	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "output")
}

func TestConfigValidate_RejectsNegativeCallerSkip(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.Caller.Skip = -1

	assert.Error(t, cfg.Validate())
}

func TestConfigValidate_RejectsEmptyFieldValues(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.Fields = map[string]string{"component": ""}

	assert.Error(t, cfg.Validate())
}

func TestConfigValidate_ConsoleFormat(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.Format = "console"

	assert.NoError(t, cfg.Validate())
}
