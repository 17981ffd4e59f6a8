package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	_ "github.com/ghuser/qrcodeapp/docs/swagger"
	"github.com/ghuser/qrcodeapp/pkg/app"
	"github.com/ghuser/qrcodeapp/pkg/auth"
	"github.com/ghuser/qrcodeapp/pkg/cache"
	"github.com/ghuser/qrcodeapp/pkg/config"
	"github.com/ghuser/qrcodeapp/pkg/database"
	"github.com/ghuser/qrcodeapp/pkg/errhttp"
	"github.com/ghuser/qrcodeapp/pkg/events"
	"github.com/ghuser/qrcodeapp/pkg/httpx"
	"github.com/ghuser/qrcodeapp/pkg/logger"
	"github.com/ghuser/qrcodeapp/pkg/shopify"
	"github.com/ghuser/qrcodeapp/pkg/telemetry"
	catalogApi "github.com/ghuser/qrcodeapp/services/catalog/application/api"
	catalogSvcs "github.com/ghuser/qrcodeapp/services/catalog/application/services"
	qrcodeApi "github.com/ghuser/qrcodeapp/services/qrcode/application/api"
	qrcodeSvcs "github.com/ghuser/qrcodeapp/services/qrcode/application/services"
)

const shutdownGrace = 30 * time.Second

// @title					QR Codes API
// @version				1.0
// @description			Multi-tenant QR code backend for an embedded storefront admin app.
// @license.name			MIT
// @license.url			https://opensource.org/licenses/MIT
// @host					localhost:8080
// @BasePath				/api
// @schemes				http https
// @securityDefinitions.apikey	SessionToken
// @in							header
// @name						Authorization
func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	if err := config.ValidateForProduction(cfg); err != nil {
		slog.Error("production config validation failed", "error", err)
		os.Exit(1)
	}

	log := logger.New(cfg, auth.LogAttrs)
	log.Debug("configuration loaded", "config", cfg.String())
	errhttp.SetProduction(cfg.IsProduction())

	// Telemetry: OTel tracing + metrics
	ctx := context.Background()
	otelShutdown, metricsHandler, err := telemetry.Setup(ctx, cfg)
	if err != nil {
		log.Error("failed to setup otel", "error", err)
		os.Exit(1)
	}
	defer otelShutdown(ctx) //nolint:errcheck

	// Crash reporting is optional: log and continue on failure.
	if err := telemetry.SetupSentry(cfg); err != nil {
		log.Warn("failed to setup sentry, continuing without crash reporting", "error", err)
	}
	defer telemetry.SentryFlush()

	pool, err := database.NewPool(ctx, cfg.DatabaseURL, log)
	if err != nil {
		log.Error("failed to connect to database", "error", err)
		os.Exit(1) //nolint:gocritic // intentional: startup failure, deferred flushes are best-effort
	}
	defer pool.Close()
	log.Info("database pool connected")

	eventBus, err := events.New(pool.DB(), events.Options{Forwarder: true}, log)
	if err != nil {
		log.Error("failed to setup event bus", "error", err)
		os.Exit(1) //nolint:gocritic
	}
	defer eventBus.Close() //nolint:errcheck

	if err := eventBus.StartForwarder(ctx); err != nil {
		log.Error("failed to start event forwarder", "error", err)
		os.Exit(1) //nolint:gocritic
	}

	redisClient, err := cache.NewRedisClient(ctx, cfg)
	if err != nil {
		log.Error("failed to connect to redis", "error", err)
		os.Exit(1) //nolint:gocritic // intentional: startup failure
	}
	defer redisClient.Close() //nolint:errcheck
	log.Info("redis connected")

	shopifyClient, err := shopify.NewClient(cfg.ShopifyAPIVersion)
	if err != nil {
		log.Error("failed to create shopify client", "error", err)
		os.Exit(1) //nolint:gocritic
	}

	verifier, err := auth.NewSessionTokenVerifier(cfg.ShopifyAPIKey, cfg.ShopifyAPISecret)
	if err != nil {
		log.Error("failed to create session token verifier", "error", err)
		os.Exit(1) //nolint:gocritic
	}

	sessionStore := auth.NewSessionStore(
		redisClient.Client(),
		[]byte(cfg.SessionAuthKey),
		[]byte(cfg.SessionEncryptionKey),
		cfg.IsProduction(),
	)
	log.Info("session store initialized", "backend", "redis")

	appConfig := &app.Application{
		Config:       cfg,
		Db:           pool,
		Logger:       log,
		EventBus:     eventBus,
		Redis:        redisClient,
		Shopify:      shopifyClient,
		SessionStore: sessionStore,
		AccessTokens: auth.NewAccessTokenStore(redisClient.Client()),
	}

	r := httpx.NewRouter(
		httpx.ServerConfig{
			IsDevelopment:      cfg.Environment == config.EnvDevelopment,
			CORSAllowedOrigins: cfg.CORSAllowedOrigins,
			RequestsPerMinute:  cfg.RequestsPerMinute,
		},
		httpx.Stack{
			Recover: logger.Recovery(log),
			Sentry:  telemetry.SentryMiddleware(),
			Trace:   otelhttp.NewMiddleware(cfg.ServiceName),
			Log:     logger.Middleware(log),
		},
	)

	r.Get("/health", httpx.HealthHandler(httpx.HealthChecks{
		"database":  pool,
		"redis":     redisClient,
		"event_bus": eventBus,
	}))
	r.Get("/metrics", metricsHandler.ServeHTTP)
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	qrcodes := qrcodeSvcs.New(appConfig)
	qrcodeApi.PublicRoutes(r, qrcodes)
	r.Route("/api", func(r chi.Router) {
		r.Use(auth.RequireTenant(sessionStore, verifier, appConfig.AccessTokens, log))
		r.Use(telemetry.SentryTenant)
		registerRoutes(r, appConfig, qrcodes)
	})

	srv := httpx.NewServer(cfg.HTTPAddr, r)
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log.Info("server listening", "addr", srv.Addr, "env", cfg.Environment)
	if err := httpx.Serve(ctx, srv, shutdownGrace); err != nil {
		log.Error("server stopped with error", "error", err)
		os.Exit(1)
	}
	log.Info("server stopped")
}

// registerRoutes mounts all tenant-scoped service routes under /api.
// Add each new service's route function here.
func registerRoutes(r chi.Router, a *app.Application, qrcodes *qrcodeSvcs.Services) {
	qrcodeApi.QRCodeRoutes(r, qrcodes)
	catalogApi.CatalogRoutes(r, catalogSvcs.New(a))
}
