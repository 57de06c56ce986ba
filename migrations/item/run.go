package main

import (
	"context"
	"embed"
	"log/slog"
	"os"

	"github.com/ghuser/boundedstr/pkg/config"
	"github.com/ghuser/boundedstr/pkg/database"
	"github.com/ghuser/boundedstr/pkg/logger"
	"github.com/ghuser/boundedstr/pkg/migrator"
)

//go:embed *.sql
var MigrationsFS embed.FS

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	log := logger.New(cfg)
	ctx := context.Background()

	db, err := database.NewPool(ctx, cfg.DatabaseURL, log)
	if err != nil {
		log.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close() //nolint:errcheck

	if err := migrator.Up(ctx, db.DB(), MigrationsFS, log); err != nil {
		log.Error("item migrations failed", "error", err)
		os.Exit(1) //nolint:gocritic
	}
}
