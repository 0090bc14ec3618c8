// Resonanced is a harmonic observer daemon for MCP ecosystems.
//
// This binary starts the MCP server on stdio, watching the moments the
// surrounding systems record and deriving patterns, couplings, and
// synthesis suggestions from them. A diagnostics HTTP server runs
// alongside the stdio transport unless disabled.
//
// Configuration is loaded from ~/.config/resonanced/config.yaml and
// overridden by environment variables. See internal/config for details.
//
// Usage:
//
//	# Start the daemon with defaults
//	resonanced
//
//	# Configure via environment
//	SERVER_HTTP_PORT=9611 ENGINE_MAX_OBSERVATIONS=500 resonanced
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/fyrsmithlabs/resonanced/internal/config"
	"github.com/fyrsmithlabs/resonanced/internal/httpapi"
	"github.com/fyrsmithlabs/resonanced/internal/logging"
	mcpserver "github.com/fyrsmithlabs/resonanced/internal/mcp"
	"github.com/fyrsmithlabs/resonanced/internal/observer"
	"github.com/fyrsmithlabs/resonanced/internal/resonance"
	"github.com/fyrsmithlabs/resonanced/internal/telemetry"
)

// Version information (set via ldflags during build)
var (
	version   = "dev"
	gitCommit = "unknown"
	buildDate = "unknown"
)

func main() {
	// Parse command-line arguments
	configPath := flag.String("config", "", "path to config file (default ~/.config/resonanced/config.yaml)")
	flag.Parse()
	args := flag.Args()

	// Handle subcommands
	if len(args) > 0 {
		switch args[0] {
		case "version":
			printVersion()
			os.Exit(0)
		default:
			fmt.Fprintf(os.Stderr, "Unknown command: %s\n", args[0])
			fmt.Fprintf(os.Stderr, "\nUsage:\n")
			fmt.Fprintf(os.Stderr, "  resonanced           Start the resonanced daemon\n")
			fmt.Fprintf(os.Stderr, "  resonanced version   Show version information\n")
			os.Exit(1)
		}
	}

	// Setup signal handling for graceful shutdown
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig := <-sigCh
		log.Printf("Received signal %v, shutting down gracefully...", sig)
		cancel()
	}()

	// Run daemon
	if err := run(ctx, *configPath); err != nil {
		log.Fatalf("Daemon error: %v", err)
	}

	log.Println("Daemon shutdown complete")
}

// printVersion prints version information
func printVersion() {
	fmt.Printf("resonanced by Fyrsmith Labs\n")
	fmt.Printf("Version:    %s\n", version)
	fmt.Printf("Commit:     %s\n", gitCommit)
	fmt.Printf("Build Date: %s\n", buildDate)
}

// run starts the resonanced daemon and blocks until context is cancelled.
//
// This function initializes all dependencies and services:
//  1. Loads and validates configuration
//  2. Initializes telemetry (providers become process globals)
//  3. Initializes the structured logger
//  4. Creates the resonance engine and observer service
//  5. Starts the diagnostics HTTP server (when enabled)
//  6. Runs the MCP server on stdio (blocks)
//  7. Performs graceful shutdown on context cancellation
//
// Everything human-readable goes to stderr; stdout carries the MCP
// protocol stream.
func run(ctx context.Context, configPath string) error {
	// Best-effort: make sure the config directory exists for new users
	if err := config.EnsureConfigDir(); err != nil {
		log.Printf("Warning: could not create config directory: %v", err)
	}

	// Load configuration
	cfg, err := config.LoadWithFile(configPath)
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	// Initialize telemetry before the logger so the OTEL bridge can
	// pick up its provider. Telemetry failures degrade, never abort.
	tel, err := telemetry.New(ctx, telemetryConfig(cfg))
	if err != nil {
		return fmt.Errorf("failed to initialize telemetry: %w", err)
	}

	// Initialize logger
	logger, err := initLogger(cfg, tel)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer func() {
		_ = logger.Sync() // Best-effort sync on shutdown
	}()

	zlog := logger.Underlying()
	instanceID := uuid.NewString()

	logger.Info(ctx, "Starting resonanced",
		zap.String("version", version),
		zap.String("instance_id", instanceID),
		zap.Bool("http_enabled", cfg.Server.Enabled),
		zap.Int("http_port", cfg.Server.Port),
		zap.Bool("telemetry", tel.IsEnabled()),
		zap.Duration("shutdown_timeout", cfg.Server.ShutdownTimeout))

	// Create the engine and the observer service that serializes access
	engine := resonance.New(cfg.Engine)
	obs, err := observer.NewService(engine, zlog)
	if err != nil {
		return fmt.Errorf("failed to initialize observer: %w", err)
	}

	logger.Info(ctx, "Observer initialized",
		zap.Int("max_observations", cfg.Engine.MaxObservations),
		zap.Int("pattern_min_frequency", cfg.Engine.PatternMinFrequency),
		zap.Bool("auto_amplification", cfg.Engine.EnableAutoAmplification))

	// Start the diagnostics HTTP server (when enabled)
	var httpSrv *httpapi.Server
	if cfg.Server.Enabled {
		httpSrv, err = httpapi.NewServer(obs, zlog, &httpapi.Config{
			Host: cfg.Server.Host,
			Port: cfg.Server.Port,
		})
		if err != nil {
			return fmt.Errorf("failed to create http server: %w", err)
		}

		// Register metrics endpoint
		httpSrv.Echo().GET("/metrics", echo.WrapHandler(promhttp.Handler()))

		go func() {
			if err := httpSrv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error(ctx, "http server error", zap.Error(err))
			}
		}()

		logger.Info(ctx, "Diagnostics server configured",
			zap.String("health_endpoint", fmt.Sprintf("http://%s:%d/health", cfg.Server.Host, cfg.Server.Port)),
			zap.String("metrics_endpoint", "/metrics"))
	}

	// Create MCP server
	mcpSrv, err := mcpserver.NewServer(&mcpserver.Config{
		Name:    "resonanced",
		Version: version,
		Logger:  zlog,
	}, obs)
	if err != nil {
		return fmt.Errorf("failed to create MCP server: %w", err)
	}

	// Log startup message to stderr (stdout carries the MCP protocol)
	fmt.Fprintf(os.Stderr, "resonanced %s started (MCP on stdio)\n", version)

	// Run MCP server on stdio (blocks until context cancellation or
	// the client closes the stream)
	runErr := mcpSrv.Run(ctx)
	if runErr != nil && errors.Is(runErr, context.Canceled) {
		runErr = nil
	}

	// Graceful shutdown: HTTP first, then flush telemetry
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if httpSrv != nil {
		if err := httpSrv.Shutdown(shutdownCtx); err != nil {
			logger.Warn(ctx, "http server shutdown failed", zap.Error(err))
		}
	}

	if err := tel.Shutdown(shutdownCtx); err != nil {
		logger.Warn(ctx, "telemetry shutdown failed", zap.Error(err))
	}

	logger.Info(ctx, "Shutdown complete", zap.String("instance_id", instanceID))
	return runErr
}

// initLogger builds the structured logger from the logging section.
func initLogger(cfg *config.Config, tel *telemetry.Telemetry) (*logging.Logger, error) {
	level, err := logging.LevelFromString(cfg.Logging.Level)
	if err != nil {
		return nil, fmt.Errorf("invalid logging level: %w", err)
	}

	logCfg := logging.NewDefaultConfig()
	logCfg.Level = level
	logCfg.Format = cfg.Logging.Format
	logCfg.Output.OTEL = cfg.Logging.OTEL

	return logging.NewLogger(logCfg, tel.LoggerProvider())
}

// telemetryConfig maps the observability section onto telemetry config.
func telemetryConfig(cfg *config.Config) *telemetry.Config {
	telCfg := telemetry.NewDefaultConfig()
	telCfg.Enabled = cfg.Observability.Enabled
	telCfg.Endpoint = cfg.Observability.Endpoint
	telCfg.Protocol = cfg.Observability.Protocol
	telCfg.Insecure = cfg.Observability.Insecure
	telCfg.ServiceName = cfg.Observability.ServiceName
	telCfg.ServiceVersion = version
	return telCfg
}
