package app

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/tinywin-backend/internal/adapter/memory"
	"github.com/heartmarshall/tinywin-backend/internal/adapter/postgres"
	pgtinywin "github.com/heartmarshall/tinywin-backend/internal/adapter/postgres/tinywin"
	"github.com/heartmarshall/tinywin-backend/internal/adapter/supabase"
	"github.com/heartmarshall/tinywin-backend/internal/config"
	"github.com/heartmarshall/tinywin-backend/internal/metrics"
)

type pinger interface {
	Ping(ctx context.Context) error
}

// storage is the repository selected by STORAGE_BACKEND together with the
// process resources it owns.
type storage struct {
	backend string
	repo    *metrics.InstrumentedRepo
	pinger  pinger
	close   func()
}

func openStorage(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*storage, error) {
	backend := cfg.Storage.Backend

	switch backend {
	case config.BackendPostgres:
		if cfg.Database.AutoMigrate {
			if err := postgres.Migrate(ctx, cfg.Database.DSN, logger); err != nil {
				return nil, fmt.Errorf("auto migrate: %w", err)
			}
		}

		pool, err := postgres.NewPool(ctx, cfg.Database)
		if err != nil {
			return nil, err
		}
		logger.Info("database connected",
			slog.Int("max_conns", int(cfg.Database.MaxConns)),
		)

		return &storage{
			backend: backend,
			repo:    metrics.Instrument(backend, pgtinywin.New(pool)),
			pinger:  pool,
			close:   pool.Close,
		}, nil

	case config.BackendSupabase:
		client, err := supabase.NewClient(cfg.Supabase)
		if err != nil {
			return nil, fmt.Errorf("supabase client: %w", err)
		}
		logger.Info("supabase client ready", slog.String("url", cfg.Supabase.URL))

		repo := supabase.NewRepo(client)
		return &storage{
			backend: backend,
			repo:    metrics.Instrument(backend, repo),
			pinger:  repo,
			close:   func() {},
		}, nil

	case config.BackendMemory:
		logger.Warn("using in-memory storage, data is lost on restart")

		repo := memory.New()
		return &storage{
			backend: backend,
			repo:    metrics.Instrument(backend, repo),
			pinger:  repo,
			close:   func() {},
		}, nil

	default:
		return nil, fmt.Errorf("unknown storage backend %q", backend)
	}
}
