package services

import (
	"github.com/ghuser/qrcodeapp/pkg/app"
	"github.com/ghuser/qrcodeapp/pkg/cache"
	"github.com/ghuser/qrcodeapp/services/qrcode/domain/repositories"
	"github.com/ghuser/qrcodeapp/services/qrcode/infrastructure/persistence/postgres"
)

// Services is the application-layer service container for this bounded context.
// It wires domain services with their infrastructure implementations.
type Services struct {
	QRCode    *QRCodeService
	Formatter *Formatter
}

// New wires all qrcode application services with infrastructure from the Application container.
func New(a *app.Application) *Services {
	repo := postgres.NewQRCodeRepository(a.Db, a.EventBus)
	return NewWithRepository(a, repo)
}

// NewWithRepository is New with an explicit repository, used by tests and
// local runs backed by the in-memory store. Caches are wired only when
// a.Redis is set.
func NewWithRepository(a *app.Application, repo repositories.QRCodeRepository) *Services {
	var (
		qrCache      *cache.QRCodeCache
		productCache *cache.ProductCache
	)
	if a.Redis != nil {
		qrCache = cache.NewQRCodeCache(a.Redis)
		productCache = cache.NewProductCache(a.Redis, a.Config.ProductCacheTTL)
	}
	return &Services{
		QRCode:    NewQRCodeService(repo, qrCache, a.Logger),
		Formatter: NewFormatter(a.Shopify, productCache, a.Config.AppURL, a.Logger),
	}
}
