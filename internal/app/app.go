package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/heartmarshall/tinywin-backend/internal/config"
	"github.com/heartmarshall/tinywin-backend/internal/service/tinywin"
	"github.com/heartmarshall/tinywin-backend/internal/transport/middleware"
	"github.com/heartmarshall/tinywin-backend/internal/transport/rest"
	"github.com/heartmarshall/tinywin-backend/internal/transport/web"
)

const rateLimitCleanupInterval = 5 * time.Minute

// Run is the application entry point. It loads configuration, opens the
// selected storage backend, and serves HTTP until ctx is cancelled.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)

	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("storage_backend", cfg.Storage.Backend),
		slog.String("log_level", cfg.Log.Level),
	)

	store, err := openStorage(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("open storage: %w", err)
	}
	defer store.close()

	limiter := middleware.NewRateLimiter(rateLimitCleanupInterval)
	defer limiter.Stop()

	handler := newHandler(cfg, logger, store, limiter)

	return serve(ctx, cfg.Server, handler, logger)
}

// newHandler builds the routing table and wraps it in the middleware chain.
func newHandler(cfg *config.Config, logger *slog.Logger, store *storage, limiter *middleware.RateLimiter) http.Handler {
	svc := tinywin.NewService(logger, store.repo)

	mux := http.NewServeMux()
	rest.RegisterTinyWin(mux, rest.NewTinyWinHandler(svc, logger), limiter.Limit(cfg.RateLimit.WritesPerMinute))
	rest.RegisterHealth(mux, rest.NewHealthHandler(store.pinger, store.backend, BuildVersion()))
	web.NewHandler(svc, logger).Register(mux)

	if cfg.Metrics.Enabled {
		mux.Handle("GET "+cfg.Metrics.Path, promhttp.Handler())
	}

	// Nothing between Metrics/Logger and the mux may replace the request,
	// or the matched route pattern is lost.
	return middleware.Chain(
		middleware.Recovery(logger),
		middleware.RequestID(),
		middleware.Logger(logger),
		middleware.CORS(cfg.CORS),
		middleware.Metrics(),
	)(mux)
}

// serve runs the HTTP server until ctx is done, then shuts it down within
// ShutdownTimeout.
func serve(ctx context.Context, cfg config.ServerConfig, handler http.Handler, logger *slog.Logger) error {
	addr := net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port))

	server := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("http server listening", slog.String("addr", addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
			return
		}
		errCh <- nil
	}()

	select {
	case <-ctx.Done():
		logger.Info("shutting down http server")
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http server shutdown: %w", err)
	}

	logger.Info("http server stopped")
	return nil
}
