package httpapi_test

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/fyrsmithlabs/resonanced/internal/httpapi"
	"github.com/fyrsmithlabs/resonanced/internal/observer"
	"github.com/fyrsmithlabs/resonanced/internal/resonance"
)

// ExampleServer demonstrates how to create and start the HTTP server.
func ExampleServer() {
	// Create an observer around a fresh resonance engine
	engine := resonance.New(resonance.DefaultConfig())
	obs, err := observer.NewService(engine, zap.NewNop())
	if err != nil {
		panic(err)
	}

	// Create logger
	logger, _ := zap.NewProduction()
	defer logger.Sync()

	// Configure the server
	cfg := &httpapi.Config{
		Host: "127.0.0.1",
		Port: 9611,
	}

	// Create the server
	server, err := httpapi.NewServer(obs, logger, cfg)
	if err != nil {
		panic(err)
	}

	// Start server in background
	go func() {
		if err := server.Start(); err != nil {
			logger.Error("server error", zap.Error(err))
		}
	}()

	// Give server time to start
	time.Sleep(100 * time.Millisecond)

	// Graceful shutdown
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error("shutdown error", zap.Error(err))
	}

	fmt.Println("Server started and stopped successfully")
	// Output: Server started and stopped successfully
}
