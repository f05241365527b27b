package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"

	"github.com/okian/mlbview/internal/adapters/http/api"
	"github.com/okian/mlbview/internal/adapters/http/site"
	"github.com/okian/mlbview/internal/adapters/http/swagger"
	"github.com/okian/mlbview/internal/adapters/repository"
	"github.com/okian/mlbview/internal/adapters/source"
	app "github.com/okian/mlbview/internal/app"
	"github.com/okian/mlbview/internal/config"
	"github.com/okian/mlbview/internal/domain/model"
	"github.com/okian/mlbview/pkg/logger"
	"github.com/okian/mlbview/pkg/metrics"
)

// HTTP server timeout constants.
const (
	readTimeout           = 10 * time.Second
	writeTimeout          = 10 * time.Second
	idleTimeout           = 60 * time.Second
	readHeaderTimeout     = 5 * time.Second
	shutdownTimeout       = 30 * time.Second
	systemMetricsInterval = 10 * time.Second
)

func main() {
	// Disable default Go metrics collection to avoid duplicate metrics
	// We collect our own custom system metrics instead
	prometheus.Unregister(collectors.NewGoCollector())
	prometheus.Unregister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	// Root context with cancel on SIGINT/SIGTERM.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load configuration (defaults -> optional file -> env)
	cfg, err := config.Load(ctx)
	if err != nil {
		// Use stderr since the logger is configured from cfg
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		os.Exit(1)
	}

	if err := logger.Init(logger.WithFormat(cfg.LogFormat)); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()
	loggerInstance := logger.Get()

	// Apply configured log level (fallback to info on invalid input)
	if err := logger.SetLevelString(cfg.LogLevel); err != nil {
		loggerInstance.Warn(ctx, "invalid log_level; falling back to info", logger.String("log_level", cfg.LogLevel), logger.Error(err))
		_ = logger.SetLevelString("info")
	}

	if err := run(ctx, cfg, loggerInstance); err != nil {
		loggerInstance.Error(ctx, "mlbview failed", logger.Error(err))
		os.Exit(1)
	}
}

// run loads the datasets, serves HTTP until ctx is done and shuts down.
func run(ctx context.Context, cfg *config.Config, log logger.Logger) error {
	srv, svc, err := build(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer svc.Stop()

	// Start system metrics updater
	go startSystemMetricsUpdater(ctx)

	errCh := make(chan error, 1)
	go func() {
		log.Info(ctx, "starting HTTP server", logger.String("addr", cfg.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- fmt.Errorf("http server: %w", err)
		}
	}()

	// Wait for shutdown signal
	select {
	case <-ctx.Done():
	case err := <-errCh:
		return err
	}
	log.Info(ctx, "shutting down server...")

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error(ctx, "server shutdown failed", logger.Error(err))
	}

	log.Info(ctx, "server stopped")
	return nil
}

// build loads every dataset and wires the service and HTTP routes. The
// returned service is started.
func build(ctx context.Context, cfg *config.Config, log logger.Logger) (*http.Server, *app.Service, error) {
	loader := source.NewLoader(source.WithLogger(log.Named("source")))
	tables, err := loader.LoadAll(ctx, []source.Spec{
		{Kind: model.KindHitters, Path: cfg.HittersPath},
		{Kind: model.KindPitchers, Path: cfg.PitchersPath},
		{Kind: model.KindSchedule, Path: cfg.SchedulePath, Optional: true},
	})
	if err != nil {
		return nil, nil, err
	}

	year := cfg.Year(time.Now())
	store, err := repository.NewMemoryStore(ctx, tables,
		repository.WithReferenceYear(year),
		repository.WithLogger(log.Named("repository")),
	)
	if err != nil {
		return nil, nil, err
	}

	// Create and start the service with configuration options
	svc := app.New(
		app.WithLogger(log.Named("service")),
		app.WithStore(store),
		app.WithCacheSize(cfg.CacheSize),
		app.WithReversedStats(model.KindHitters, cfg.HittersReversedStats),
		app.WithReversedStats(model.KindPitchers, cfg.PitchersReversedStats),
		app.WithMaxPreviewRows(cfg.MaxPreviewRows),
		app.WithMaxSearchResults(cfg.MaxSearchResults),
	)
	if err := svc.Start(ctx); err != nil {
		return nil, nil, err
	}

	// HTTP mux and routes.
	mux := http.NewServeMux()
	swagger.Register(ctx, mux)
	site.Register(ctx, mux)

	apiServer := api.NewServer(svc, svc,
		api.WithLogger(log.Named("api")),
		api.WithReferenceYear(year),
		api.WithRateLimit(cfg.RateLimitRPS, cfg.RateLimitBurst),
	)
	apiServer.Register(ctx, mux)

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           mux,
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}
	return srv, svc, nil
}

// startSystemMetricsUpdater starts a background goroutine that updates system metrics.
func startSystemMetricsUpdater(ctx context.Context) {
	ticker := time.NewTicker(systemMetricsInterval)
	defer ticker.Stop()

	updateSystemMetrics()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			updateSystemMetrics()
		}
	}
}

// updateSystemMetrics updates system-level metrics.
func updateSystemMetrics() {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	metrics.UpdateSystemMemoryUsage(m.Alloc)
	metrics.UpdateSystemGoroutineCount(runtime.NumGoroutine())
}
