// Command migrate applies or inspects the embedded goose migrations against
// DATABASE_DSN.
//
// Usage: migrate [up|down|status]   (default: up)
//
// Exit codes: 0 = success, 1 = error, 2 = usage.
package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/pressly/goose/v3"

	"github.com/heartmarshall/tinywin-backend/internal/adapter/postgres"
	"github.com/heartmarshall/tinywin-backend/internal/app"
	"github.com/heartmarshall/tinywin-backend/internal/config"
)

func main() {
	command := "up"
	if len(os.Args) > 1 {
		command = os.Args[1]
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := app.NewLogger(cfg.Log)

	if cfg.Database.DSN == "" {
		logger.Error("DATABASE_DSN is required")
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	if err := run(ctx, command, cfg.Database.DSN, logger); err != nil {
		logger.Error("migrate failed", slog.String("command", command), slog.String("error", err.Error()))
		cancel()
		os.Exit(exitCode(err))
	}
}

type usageError struct{ command string }

func (e usageError) Error() string {
	return fmt.Sprintf("unknown command %q (want up, down or status)", e.command)
}

func exitCode(err error) int {
	var ue usageError
	if errors.As(err, &ue) {
		return 2
	}
	return 1
}

func run(ctx context.Context, command, dsn string, logger *slog.Logger) error {
	if command != "up" && command != "down" && command != "status" {
		return usageError{command: command}
	}

	db, err := postgres.OpenSQL(ctx, dsn)
	if err != nil {
		return err
	}
	defer db.Close()

	provider, err := postgres.NewMigrator(db)
	if err != nil {
		return err
	}

	switch command {
	case "up":
		results, err := provider.Up(ctx)
		if err != nil {
			return fmt.Errorf("up: %w", err)
		}
		for _, r := range results {
			logResult(logger, r)
		}
		logger.Info("migrations up to date", slog.Int("applied", len(results)))

	case "down":
		result, err := provider.Down(ctx)
		if err != nil {
			return fmt.Errorf("down: %w", err)
		}
		logResult(logger, result)

	case "status":
		statuses, err := provider.Status(ctx)
		if err != nil {
			return fmt.Errorf("status: %w", err)
		}
		for _, s := range statuses {
			attrs := []any{
				slog.Int64("version", s.Source.Version),
				slog.String("state", string(s.State)),
			}
			if s.State == goose.StateApplied {
				attrs = append(attrs, slog.Time("applied_at", s.AppliedAt))
			}
			logger.Info(s.Source.Path, attrs...)
		}
	}

	return nil
}

func logResult(logger *slog.Logger, r *goose.MigrationResult) {
	if r == nil || r.Source == nil {
		return
	}
	logger.Info("migration applied",
		slog.Int64("version", r.Source.Version),
		slog.String("direction", r.Direction),
		slog.Duration("duration", r.Duration),
	)
}
