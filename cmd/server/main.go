package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	specpkg "github.com/daap14/heroes/api"
	"github.com/daap14/heroes/internal/api"
	"github.com/daap14/heroes/internal/api/handler"
	"github.com/daap14/heroes/internal/config"
	"github.com/daap14/heroes/internal/logging"
	"github.com/daap14/heroes/internal/roster"
	"github.com/daap14/heroes/internal/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logging.SetupJSON(os.Stdout, cfg.LogLevel)

	ctx := context.Background()
	pool, err := storage.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer pool.Close()

	if err := storage.EnsureSchema(ctx, pool); err != nil {
		slog.Error("failed to create schema", "error", err)
		os.Exit(1)
	}

	openapi, err := handler.NewOpenAPIHandler(specpkg.OpenAPISpec)
	if err != nil {
		slog.Error("failed to load OpenAPI document", "error", err)
		os.Exit(1)
	}

	router := api.NewRouter(api.RouterDeps{
		DBPinger:    pool,
		Version:     cfg.Version,
		Roster:      roster.NewService(pool),
		OpenAPISpec: openapi,
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		slog.Info("starting heroes server", "port", cfg.Port, "version", cfg.Version)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		slog.Info("shutting down server", "signal", sig.String())
	case err := <-serverErr:
		slog.Error("server error", "error", err)
		os.Exit(1)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped gracefully")
}
