package app

import (
	"github.com/gorilla/sessions"

	"github.com/ghuser/qrcodeapp/pkg/auth"
	"github.com/ghuser/qrcodeapp/pkg/cache"
	"github.com/ghuser/qrcodeapp/pkg/config"
	"github.com/ghuser/qrcodeapp/pkg/database"
	"github.com/ghuser/qrcodeapp/pkg/events"
	"github.com/ghuser/qrcodeapp/pkg/logger"
	"github.com/ghuser/qrcodeapp/pkg/shopify"
)

// Application holds shared infrastructure dependencies for all services.
// Pass to all service route registration calls during server initialization.
//
// Logging: app.Logger is backed by a trace-aware handler. Use slog's context methods
// and trace_id, span_id, request_id and the tenant's shop are injected automatically:
//
//	app.Logger.InfoContext(ctx, "qr code created", "qrcode_id", id)
//	app.Logger.ErrorContext(ctx, "failed to save", "error", err)
//
// Use app.Logger.Info/Error (no context) only for startup and shutdown messages.
type Application struct {
	Config       *config.Config
	Db           *database.Database
	Logger       logger.Logger
	EventBus     *events.EventBus
	Redis        *cache.RedisClient
	Shopify      *shopify.Client
	SessionStore sessions.Store         // Redis-backed session store; nil in worker process
	AccessTokens *auth.AccessTokenStore // offline Admin API tokens by shop; nil in worker process
}
