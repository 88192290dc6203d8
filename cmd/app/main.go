package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/mkarlsen/GameShelf_Go/internal/catalog"
	"github.com/mkarlsen/GameShelf_Go/internal/completion"
	"github.com/mkarlsen/GameShelf_Go/internal/config"
	"github.com/mkarlsen/GameShelf_Go/internal/database"
	"github.com/mkarlsen/GameShelf_Go/internal/database/postgres"
	"github.com/mkarlsen/GameShelf_Go/internal/ownership"
	"github.com/mkarlsen/GameShelf_Go/internal/playsession"
	"github.com/mkarlsen/GameShelf_Go/internal/progress"
	"github.com/mkarlsen/GameShelf_Go/internal/server"
)

const shutdownTimeout = 10 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}
	if err := config.ValidateEnv(); err != nil {
		slog.Error("Environment validation failed", "error", err)
		os.Exit(1)
	}

	initLogger(cfg)
	log := slog.Default()

	pool, err := database.NewPool(cfg.GetDBConnString())
	if err != nil {
		log.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	// Repositories
	additionsRepo := postgres.NewAdditionsRepository(pool)
	ownershipRepo := postgres.NewOwnershipRepository(pool)
	completionRepo := postgres.NewCompletionLogRepository(pool)
	sessionsRepo := postgres.NewSessionsRepository(pool)
	playtimeRepo := postgres.NewPlaytimeRepository(pool)
	progressRepo := postgres.NewProgressRepository(pool)

	// Services
	catalogService := catalog.NewService(additionsRepo)
	ownershipService := ownership.NewService(catalogService, ownershipRepo)
	completionService := completion.NewService(ownershipService, catalogService, completionRepo, playtimeRepo)
	sessionService := playsession.NewService(sessionsRepo, playtimeRepo, catalogService)
	progressService := progress.NewService(progressRepo, catalogService)

	trustedProxies := splitList(os.Getenv("TRUSTED_PROXIES"))

	srv := server.NewServer(cfg.Port, cfg.APIKey, trustedProxies, pool,
		catalogService, ownershipService, completionService, sessionService, progressService)

	// Run the server until interrupted
	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		log.Error("Server stopped unexpectedly", "error", err)
		os.Exit(1)
	case sig := <-stop:
		log.Info("Shutdown signal received", "signal", sig.String())
	}

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Stop(ctx); err != nil {
		log.Error("Graceful shutdown failed", "error", err)
		os.Exit(1)
	}
	log.Info("Server stopped")
}

func splitList(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
