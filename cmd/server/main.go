package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/JonMunkholm/elections/internal/config"
	"github.com/JonMunkholm/elections/internal/core"
	"github.com/JonMunkholm/elections/internal/core/sources" // Register default elections
	"github.com/JonMunkholm/elections/internal/logging"
	"github.com/JonMunkholm/elections/internal/web"
	"github.com/joho/godotenv"
)

func main() {
	// Load .env file if it exists (Overload overwrites existing env vars)
	if err := godotenv.Overload(); err != nil {
		slog.Info("no .env file found, using environment variables")
	} else {
		slog.Info("loaded .env file (overwriting existing env vars)")
	}

	// Load and validate configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	// Setup structured logging based on config
	logging.Setup(cfg.Logging.Level, cfg.Logging.Format)

	slog.Info("configuration loaded",
		"port", cfg.Server.Port,
		"data_dir", cfg.Data.Dir,
		"manifest", cfg.Data.Manifest,
		"parallel_reads", cfg.Data.ParallelReads,
		"rate_limit_enabled", cfg.Rate.Enabled,
	)

	specs, err := sources.Resolve(cfg.Data.Manifest)
	if err != nil {
		slog.Error("failed to load source manifest", "error", err)
		os.Exit(1)
	}

	service, err := core.NewService(specs, core.Options{
		DataDir:            cfg.Data.Dir,
		ParallelReads:      cfg.Data.ParallelReads,
		NotableWindow:      cfg.Data.NotableWindow,
		NotablePerElection: cfg.Data.NotablePerElection,
	})
	if err != nil {
		slog.Error("failed to create service", "error", err)
		os.Exit(1)
	}

	slog.Info("sources registered", "count", len(specs))
	for _, spec := range service.Sources() {
		slog.Debug("source", "election", spec.Election, "path", spec.Path, "encoding", spec.Encoding, "format", spec.Format)
	}

	// A failed preload is not fatal: the API answers 503 with the cause until
	// the files are fixed, and the next request retries.
	if cfg.Data.Preload {
		ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.RequestTimeout)
		if _, err := service.Dataset(ctx); err != nil {
			slog.Warn("dataset preload failed", "error", err, "code", core.MapError(err).Code)
		}
		cancel()
	}

	server := web.NewServer(service, cfg)

	// Graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh

		slog.Info("shutting down...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("shutdown error", "error", err)
		}
	}()

	slog.Info("server starting", "addr", cfg.Server.Addr())
	if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("server stopped", "error", err)
		os.Exit(1)
	}
	slog.Info("server stopped")
}
