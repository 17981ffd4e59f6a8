package services

import (
	"github.com/ghuser/qrcodeapp/pkg/app"
	"github.com/ghuser/qrcodeapp/pkg/cache"
)

// Services is the application-layer service container for the catalog proxy.
type Services struct {
	Catalog *CatalogService
}

// New wires the catalog proxy against the Admin API client.
func New(a *app.Application) *Services {
	return NewWithRemote(a, a.Shopify)
}

// NewWithRemote is New with an explicit remote, used by tests.
func NewWithRemote(a *app.Application, remote RemoteCatalog) *Services {
	var products *cache.ProductCache
	if a.Redis != nil {
		products = cache.NewProductCache(a.Redis, a.Config.ProductCacheTTL)
	}
	return &Services{Catalog: NewCatalogService(remote, products, a.Logger)}
}
