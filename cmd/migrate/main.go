package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/americanadages/adages-society/internal/app"
	"github.com/americanadages/adages-society/internal/datasources/sqlstore"
	"github.com/americanadages/adages-society/internal/domain"

	_ "github.com/joho/godotenv/autoload"
)

func main() {
	ctx := context.Background()

	logLevel := slog.LevelInfo
	if lvl := os.Getenv("LOG_LEVEL"); lvl != "" {
		if err := logLevel.UnmarshalText([]byte(lvl)); err != nil {
			fmt.Fprintf(os.Stderr, "invalid LOG_LEVEL: %s\n", lvl)
			os.Exit(1)
		}
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)
	ctx = domain.ContextWithLogger(ctx, logger)

	down := flag.Int("down", 0, "roll back this many migrations instead of migrating up")
	flag.Parse()

	if err := run(ctx, *down); err != nil {
		logger.ErrorContext(ctx, "migration failed", "error", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, downSteps int) error {
	driver := sqlstore.Driver(app.MustGetEnvAsString(ctx, "CONTENT_STORE_DRIVER"))
	if _, err := driver.Flavor(); err != nil {
		return fmt.Errorf("CONTENT_STORE_DRIVER must name a SQL driver: %w", err)
	}

	db, err := sqlstore.Connect(ctx, driver, app.MustGetEnvAsString(ctx, "DATABASE_URI"), 1)
	if err != nil {
		return fmt.Errorf("connecting to %s: %w", driver, err)
	}
	defer func() { _ = db.Close() }()

	logger := domain.LoggerFromContext(ctx).With("driver", driver)

	if downSteps > 0 {
		if err := sqlstore.MigrateDown(db, driver, downSteps); err != nil {
			return err
		}
		logger.InfoContext(ctx, "rolled back migrations", "steps", downSteps)
		return nil
	}

	version, err := sqlstore.MigrateUp(db, driver)
	if err != nil {
		return err
	}
	logger.InfoContext(ctx, "schema migrated", "version", version)
	return nil
}
