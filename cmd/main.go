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

	"golang.org/x/sync/errgroup"

	"github.com/okian/ironrank/internal/adapters/http/api"
	"github.com/okian/ironrank/internal/adapters/http/swagger"
	app "github.com/okian/ironrank/internal/app"
	"github.com/okian/ironrank/internal/config"
	"github.com/okian/ironrank/pkg/logger"
	"github.com/okian/ironrank/pkg/metrics"
)

// HTTP server timeout constants.
const (
	readTimeout               = 10 * time.Second
	writeTimeout              = 30 * time.Second
	idleTimeout               = 60 * time.Second
	readHeaderTimeout         = 5 * time.Second
	shutdownTimeout           = 30 * time.Second
	nanosecondsPerMillisecond = 1e6
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Load configuration (defaults -> optional file -> env)
	cfg, err := config.Load(ctx)
	if err != nil {
		// logger isn't available yet
		os.Stderr.WriteString("failed to load config: " + err.Error() + "\n")
		os.Exit(1)
	}

	if err := logger.Init(logger.WithFormat(cfg.LogFormat), logger.WithLevel(cfg.LogLevel)); err != nil {
		os.Stderr.WriteString("failed to initialize logging: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer func() {
		_ = logger.Sync()
	}()

	if err := run(ctx, cfg); err != nil {
		logger.Get().Error(ctx, "ironrank exited", logger.Error(err))
		os.Exit(1)
	}
}

// run serves the API until ctx is cancelled.
func run(ctx context.Context, cfg *config.Config) error {
	log := logger.Get()

	defer configureMetrics(cfg)()

	svc, err := newService(cfg, log)
	if err != nil {
		return err
	}
	if err := svc.Start(ctx); err != nil {
		return fmt.Errorf("start service: %w", err)
	}
	defer svc.Stop()

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           newMux(ctx, svc, log),
		ReadTimeout:       readTimeout,
		WriteTimeout:      writeTimeout,
		IdleTimeout:       idleTimeout,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		startSystemMetricsUpdater(gctx, metrics.Global().RefreshInterval())
		return nil
	})
	g.Go(func() error {
		log.Info(gctx, "starting HTTP server", logger.String("addr", cfg.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info(context.Background(), "shutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server shutdown: %w", err)
		}
		return nil
	})

	err = g.Wait()
	log.Info(context.Background(), "server stopped")
	return err
}

// newService builds the service from configuration.
func newService(cfg *config.Config, log logger.Logger) (*app.Service, error) {
	settings, err := cfg.Settings()
	if err != nil {
		return nil, fmt.Errorf("settings: %w", err)
	}
	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}
	return app.New(
		app.WithLogger(log.Named("service")),
		app.WithSettings(settings),
		app.WithClassification(cfg.Classification()),
		app.WithLocation(loc),
		app.WithMaxSets(cfg.MaxSetsPerRequest),
	), nil
}

// newMux registers the API reference and business routes.
func newMux(ctx context.Context, svc *app.Service, log logger.Logger) *http.ServeMux {
	mux := http.NewServeMux()
	swagger.Register(ctx, mux)
	api.NewServer(svc, svc, api.WithLogger(log.Named("api"))).Register(ctx, mux)
	return mux
}

// startSystemMetricsUpdater samples runtime metrics every interval until
// ctx is done.
func startSystemMetricsUpdater(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			updateSystemMetrics()
		}
	}
}

// configureMetrics installs a metrics manager built from cfg and returns
// the func restoring the previous one.
func configureMetrics(cfg *config.Config) func() {
	return metrics.Configure(
		metrics.WithMetricsEnabled(cfg.MetricsEnabled),
		metrics.WithMetricPrefix(cfg.MetricsPrefix),
		metrics.WithCustomLabels(cfg.MetricsLabels),
		metrics.WithRefreshInterval(cfg.MetricsRefreshInterval),
	)
}

// updateSystemMetrics updates system-level metrics.
func updateSystemMetrics() {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	metrics.UpdateSystemMemoryUsage(m.Alloc)
	metrics.UpdateSystemGoroutineCount(runtime.NumGoroutine())

	if m.NumGC > 0 {
		avgPauseMs := float64(m.PauseTotalNs) / float64(m.NumGC) / nanosecondsPerMillisecond
		metrics.RecordSystemGCPauseTime(avgPauseMs)
	}
}
