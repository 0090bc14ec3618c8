// Package config provides configuration loading for resonanced.
//
// Configuration is loaded from a YAML file, then overridden by environment
// variables. Rich subsystem configs (logging, telemetry) are built from
// these sections at startup.
package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/fyrsmithlabs/resonanced/internal/resonance"
)

// Config holds the complete resonanced configuration.
type Config struct {
	Engine        resonance.Config    `koanf:"engine"`
	Server        ServerConfig        `koanf:"server"`
	Logging       LoggingConfig       `koanf:"logging"`
	Observability ObservabilityConfig `koanf:"observability"`
}

// ServerConfig holds the HTTP diagnostics server configuration.
// The MCP transport is stdio and needs no server settings.
type ServerConfig struct {
	Enabled         bool          `koanf:"http_enabled"`
	Host            string        `koanf:"http_host"`
	Port            int           `koanf:"http_port"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
}

// LoggingConfig holds the logging section. The level string supports
// "trace" in addition to the standard zap levels.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	OTEL   bool   `koanf:"otel"`
}

// ObservabilityConfig holds the OpenTelemetry section.
type ObservabilityConfig struct {
	Enabled     bool   `koanf:"enabled"`
	Endpoint    string `koanf:"endpoint"`
	Protocol    string `koanf:"protocol"`
	Insecure    bool   `koanf:"insecure"`
	ServiceName string `koanf:"service_name"`
}

// Validate validates the configuration.
//
// Returns an error if:
//   - Server port is not between 1 and 65535 (when the server is enabled)
//   - Shutdown timeout is not positive (when the server is enabled)
//   - Engine tunables are out of range
//   - Logging level or format is unknown
//   - Observability is enabled without endpoint or service name
func (c *Config) Validate() error {
	if c.Server.Enabled {
		if c.Server.Port < 1 || c.Server.Port > 65535 {
			return fmt.Errorf("invalid server port: %d (must be 1-65535)", c.Server.Port)
		}
		if c.Server.ShutdownTimeout <= 0 {
			return errors.New("shutdown timeout must be positive")
		}
	}

	if c.Engine.MaxObservations < 0 {
		return fmt.Errorf("engine.max_observations cannot be negative: %d", c.Engine.MaxObservations)
	}
	if c.Engine.PatternMinFrequency < 0 {
		return fmt.Errorf("engine.pattern_min_frequency cannot be negative: %d", c.Engine.PatternMinFrequency)
	}
	if c.Engine.CouplingThreshold < 0 || c.Engine.CouplingThreshold > 1 {
		return fmt.Errorf("engine.coupling_threshold must be between 0 and 1, got %f", c.Engine.CouplingThreshold)
	}
	if c.Engine.CoherenceWindow < 0 {
		return fmt.Errorf("engine.coherence_window cannot be negative: %s", c.Engine.CoherenceWindow)
	}

	switch c.Logging.Level {
	case "", "trace", "debug", "info", "warn", "error", "dpanic", "panic", "fatal":
	default:
		return fmt.Errorf("unknown logging level: %q", c.Logging.Level)
	}
	if c.Logging.Format != "" && c.Logging.Format != "json" && c.Logging.Format != "console" {
		return fmt.Errorf("logging format must be 'json' or 'console', got %q", c.Logging.Format)
	}

	if c.Observability.Enabled {
		if c.Observability.Endpoint == "" {
			return errors.New("observability endpoint required when enabled")
		}
		if c.Observability.ServiceName == "" {
			return errors.New("service name required when observability is enabled")
		}
		switch c.Observability.Protocol {
		case "", "grpc", "http/protobuf":
		default:
			return fmt.Errorf("observability protocol must be 'grpc' or 'http/protobuf', got %q", c.Observability.Protocol)
		}
	}

	return nil
}
