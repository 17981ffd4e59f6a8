package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/ghuser/qrcodeapp/pkg/app"
	"github.com/ghuser/qrcodeapp/pkg/auth"
	"github.com/ghuser/qrcodeapp/pkg/cache"
	"github.com/ghuser/qrcodeapp/pkg/config"
	"github.com/ghuser/qrcodeapp/pkg/database"
	"github.com/ghuser/qrcodeapp/pkg/events"
	"github.com/ghuser/qrcodeapp/pkg/httpx"
	"github.com/ghuser/qrcodeapp/pkg/logger"
	"github.com/ghuser/qrcodeapp/pkg/telemetry"
	"github.com/ghuser/qrcodeapp/services/qrcode/application/subscribers"
	"github.com/ghuser/qrcodeapp/services/qrcode/infrastructure/persistence/postgres"
)

func main() {
	cfg, err := config.Load()
	if err == nil {
		err = config.ValidateForProduction(cfg)
	}
	if err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	log := logger.New(cfg, auth.LogAttrs)
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg, log); err != nil {
		log.Error("worker exited", "error", err)
		stop()
		os.Exit(1) //nolint:gocritic
	}
	log.Info("worker stopped")
}

// run consumes QR code change events until ctx is cancelled. Deferred closes
// run in reverse order, so the bus drains in-flight handlers before the pool
// and Redis go away.
func run(ctx context.Context, cfg *config.Config, log logger.Logger) error {
	otelShutdown, metricsHandler, err := telemetry.Setup(ctx, cfg)
	if err != nil {
		return fmt.Errorf("setup otel: %w", err)
	}
	defer otelShutdown(context.Background()) //nolint:errcheck

	if err := telemetry.SetupSentry(cfg); err != nil {
		log.Warn("sentry disabled", "error", err)
	}
	defer telemetry.SentryFlush()

	pool, err := database.NewPool(ctx, cfg.DatabaseURL, log)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer pool.Close()

	redisClient, err := cache.NewRedisClient(ctx, cfg)
	if err != nil {
		return fmt.Errorf("connect redis: %w", err)
	}
	defer redisClient.Close() //nolint:errcheck

	eventBus, err := events.New(pool.DB(), events.Options{ConsumerGroup: cfg.ServiceName + "-worker"}, log)
	if err != nil {
		return fmt.Errorf("setup event bus: %w", err)
	}
	defer eventBus.Close() //nolint:errcheck

	a := &app.Application{
		Config:   cfg,
		Db:       pool,
		Logger:   log,
		EventBus: eventBus,
		Redis:    redisClient,
	}
	if err := registerSubscribers(ctx, a); err != nil {
		return err
	}

	r := chi.NewRouter()
	r.Get("/health", httpx.HealthHandler(httpx.HealthChecks{
		"database":  pool,
		"redis":     redisClient,
		"event_bus": eventBus,
	}))
	r.Get("/metrics", metricsHandler.ServeHTTP)

	srv := httpx.NewServer(cfg.WorkerHTTPAddr, r)
	log.Info("worker running", "probe_addr", srv.Addr, "consumer_group", cfg.ServiceName+"-worker")
	if err := httpx.Serve(ctx, srv, 5*time.Second); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("probe server: %w", err)
	}
	return nil
}

// registerSubscribers wires every event handler the worker runs.
func registerSubscribers(ctx context.Context, a *app.Application) error {
	repo := postgres.NewQRCodeRepository(a.Db, nil)
	cacheSync := subscribers.NewCacheSync(repo, cache.NewQRCodeCache(a.Redis), a.Logger)
	if err := cacheSync.Register(ctx, a.EventBus); err != nil {
		return fmt.Errorf("register qrcode cache sync: %w", err)
	}
	a.Logger.Info("event subscribers registered", "subscriber", "qrcode_cache_sync")
	return nil
}
