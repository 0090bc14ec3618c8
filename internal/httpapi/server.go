// Package httpapi provides the diagnostics HTTP API for resonanced.
//
// The MCP stdio transport is the primary surface; this server exists so
// operators and sibling systems can inspect the observer and feed it
// moments without speaking MCP.
package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"go.uber.org/zap"

	"github.com/fyrsmithlabs/resonanced/internal/ingest"
	"github.com/fyrsmithlabs/resonanced/internal/observer"
)

// Server exposes observer state over HTTP.
type Server struct {
	echo     *echo.Echo
	observer *observer.Service
	logger   *zap.Logger
	config   *Config
}

// Config holds HTTP server configuration.
type Config struct {
	Host string
	Port int
}

// NewServer creates a new HTTP server around an observer service.
func NewServer(obs *observer.Service, logger *zap.Logger, cfg *Config) (*Server, error) {
	if obs == nil {
		return nil, fmt.Errorf("observer cannot be nil")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger is required for request tracking and debugging")
	}
	if cfg == nil {
		cfg = &Config{
			Host: "127.0.0.1",
			Port: 9611,
		}
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Middleware
	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(NewHTTPMetrics(logger).MetricsMiddleware())
	e.Use(func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)
			duration := time.Since(start)

			logger.Info("http request",
				zap.String("method", c.Request().Method),
				zap.String("uri", c.Request().RequestURI),
				zap.Int("status", c.Response().Status),
				zap.Duration("duration", duration),
				zap.String("request_id", c.Response().Header().Get(echo.HeaderXRequestID)),
			)

			return err
		}
	})

	s := &Server{
		echo:     e,
		observer: obs,
		logger:   logger,
		config:   cfg,
	}

	// Register routes
	s.registerRoutes()

	return s, nil
}

// registerRoutes sets up the HTTP endpoints.
func (s *Server) registerRoutes() {
	// Health check
	s.echo.GET("/health", s.handleHealth)

	// API v1 routes
	v1 := s.echo.Group("/api/v1")
	v1.GET("/state", s.handleState)
	v1.GET("/couplings", s.handleCouplings)
	v1.GET("/suggestion", s.handleSuggestion)
	v1.GET("/recommendation", s.handleRecommendation)
	v1.POST("/moments", s.handleRecordMoment)
	v1.POST("/reset", s.handleReset)
}

// HealthResponse is the response body for GET /health.
type HealthResponse struct {
	Status string `json:"status"`
}

// ResetResponse is the response body for POST /api/v1/reset.
type ResetResponse struct {
	Status string `json:"status"`
}

// handleHealth returns a simple health check response.
func (s *Server) handleHealth(c echo.Context) error {
	return c.JSON(http.StatusOK, HealthResponse{Status: "ok"})
}

// handleState returns the full ecosystem snapshot.
func (s *Server) handleState(c echo.Context) error {
	state := s.observer.State(c.Request().Context())
	return c.JSON(http.StatusOK, state)
}

// handleCouplings returns the coupling graph as plain text, the same
// rendering the visualize_coupling_graph tool produces.
func (s *Server) handleCouplings(c echo.Context) error {
	graph := s.observer.CouplingGraph(c.Request().Context())
	return c.String(http.StatusOK, graph)
}

// handleSuggestion returns the next synthesis suggestion. Responds 204
// when the system has no emergent intentions yet.
func (s *Server) handleSuggestion(c echo.Context) error {
	suggestion := s.observer.Suggest(c.Request().Context())
	if suggestion == nil {
		return c.NoContent(http.StatusNoContent)
	}
	return c.JSON(http.StatusOK, suggestion)
}

// handleRecommendation returns the combined snapshot, suggestion, and
// weave decision.
func (s *Server) handleRecommendation(c echo.Context) error {
	return c.JSON(http.StatusOK, s.observer.Recommend(c.Request().Context()))
}

// handleRecordMoment records a moment from the request body. Missing
// identifiers and timestamps are assigned server-side.
func (s *Server) handleRecordMoment(c echo.Context) error {
	var in ingest.MomentInput
	if err := c.Bind(&in); err != nil {
		s.logger.Warn("invalid moment request", zap.Error(err))
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	if len(in.Concepts) == 0 && in.Text == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "concepts or text field is required")
	}
	if !validScore(in.Novelty) {
		return echo.NewHTTPError(http.StatusBadRequest, "novelty must be between 0 and 1")
	}
	if !validScore(in.Relevance) {
		return echo.NewHTTPError(http.StatusBadRequest, "relevance must be between 0 and 1")
	}

	moment := in.Moment(time.Now())
	ack := s.observer.Record(c.Request().Context(), moment)

	s.logger.Debug("moment ingested over http",
		zap.String("moment_id", ack.MomentID),
		zap.Int("patterns", ack.PatternCount),
		zap.Int("couplings", ack.CouplingCount),
	)

	return c.JSON(http.StatusOK, ack)
}

// handleReset clears all observations for a fresh session.
func (s *Server) handleReset(c echo.Context) error {
	s.observer.Reset(c.Request().Context())
	return c.JSON(http.StatusOK, ResetResponse{Status: "reset"})
}

// validScore accepts nil (unscored) and values inside [0, 1].
func validScore(score *float64) bool {
	return score == nil || (*score >= 0 && *score <= 1)
}

// Echo returns the underlying echo instance so callers can mount extra
// handlers, such as the Prometheus metrics endpoint.
func (s *Server) Echo() *echo.Echo {
	return s.echo
}

// Start starts the HTTP server.
func (s *Server) Start() error {
	addr := fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)
	s.logger.Info("starting http server", zap.String("addr", addr))
	return s.echo.Start(addr)
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down http server")
	return s.echo.Shutdown(ctx)
}
