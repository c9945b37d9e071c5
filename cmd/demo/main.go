package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/daap14/heroes/internal/config"
	"github.com/daap14/heroes/internal/demo"
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

	logging.SetupText(os.Stderr, cfg.LogLevel)

	if err := run(context.Background(), cfg); err != nil {
		slog.Error("demo failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, cfg *config.Config) error {
	pool, err := storage.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		return err
	}
	defer pool.Close()

	if err := storage.EnsureSchema(ctx, pool); err != nil {
		return err
	}
	slog.Debug("schema ready")

	return demo.Run(ctx, roster.NewService(pool), os.Stdout)
}
