package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/mission-control/core/internal/config"
	"github.com/mission-control/core/pkg/logger"
	"github.com/mission-control/core/pkg/server"
)

func main() {
	// Setup structured logging
	logger.SetupLogger()
	log := logger.New("api-service")

	// Load configuration
	cfg := config.Load()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	srv, err := server.New(ctx, cfg, log)
	if err != nil {
		log.Fatal().
			Err(err).
			Str("action", "server_creation_failed").
			Msg("Failed to create server")
	}
	defer srv.Close()

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	select {
	case err := <-errCh:
		if err != nil {
			log.Error().
				Err(err).
				Str("action", "server_failed").
				Msg("Server failed to start")
		}
		return
	case <-ctx.Done():
	}

	log.Info().Str("action", "shutdown_signal").Msg("Shutting down API server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Str("action", "shutdown_failed").Msg("Graceful shutdown failed")
	}
}
