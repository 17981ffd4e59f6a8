package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ghuser/qrcodeapp/pkg/auth"
	pkgcache "github.com/ghuser/qrcodeapp/pkg/cache"
	"github.com/ghuser/qrcodeapp/pkg/logger"
	"github.com/ghuser/qrcodeapp/pkg/shopify"
)

const (
	// DiscountPageSize is how many code discounts the picker shows.
	DiscountPageSize = 25
	// DefaultProductPageSize and MaxProductPageSize bound GET /products?first=.
	DefaultProductPageSize = 2
	MaxProductPageSize     = 50
)

// RemoteCatalog is the Admin API surface the catalog proxy needs.
// *shopify.Client satisfies it.
type RemoteCatalog interface {
	ListDiscounts(ctx context.Context, s shopify.Session, first int) (json.RawMessage, error)
	ListProducts(ctx context.Context, s shopify.Session, first int, after string) (json.RawMessage, error)
	UpdateProductTitle(ctx context.Context, s shopify.Session, productID, title string) (json.RawMessage, error)
	SetProductMetafield(ctx context.Context, s shopify.Session, productID string, m shopify.Metafield) (json.RawMessage, error)
}

// CatalogService proxies catalog reads and writes to the tenant's store.
// Product writes evict the cached product summary used by QR code responses.
type CatalogService struct {
	remote   RemoteCatalog
	products *pkgcache.ProductCache
	log      logger.Logger
}

// NewCatalogService returns a CatalogService. products may be nil.
func NewCatalogService(remote RemoteCatalog, products *pkgcache.ProductCache, log logger.Logger) *CatalogService {
	return &CatalogService{remote: remote, products: products, log: log}
}

func session(t auth.Tenant) shopify.Session {
	return shopify.Session{ShopDomain: t.ShopDomain, AccessToken: t.AccessToken}
}

// ListDiscounts returns the first page of the shop's code discounts.
func (s *CatalogService) ListDiscounts(ctx context.Context, t auth.Tenant) (json.RawMessage, error) {
	return s.remote.ListDiscounts(ctx, session(t), DiscountPageSize)
}

// ListProducts returns one page of products starting after the given cursor.
func (s *CatalogService) ListProducts(ctx context.Context, t auth.Tenant, first int, after string) (json.RawMessage, error) {
	if first < 1 || first > MaxProductPageSize {
		return nil, fmt.Errorf("page size %d out of range 1..%d", first, MaxProductPageSize)
	}
	return s.remote.ListProducts(ctx, session(t), first, after)
}

// RenameProduct changes a product's title.
func (s *CatalogService) RenameProduct(ctx context.Context, t auth.Tenant, productID, title string) (json.RawMessage, error) {
	data, err := s.remote.UpdateProductTitle(ctx, session(t), productID, title)
	if err != nil {
		return nil, err
	}
	s.evict(ctx, t, productID)
	return data, nil
}

// SetMetafield creates or edits a product metafield.
func (s *CatalogService) SetMetafield(ctx context.Context, t auth.Tenant, productID string, m shopify.Metafield) (json.RawMessage, error) {
	return s.remote.SetProductMetafield(ctx, session(t), productID, m)
}

func (s *CatalogService) evict(ctx context.Context, t auth.Tenant, productID string) {
	if s.products == nil {
		return
	}
	if err := s.products.Delete(ctx, t.ShopDomain, productID); err != nil {
		s.log.WarnContext(ctx, "product cache evict failed", "product_id", productID, "error", err)
	}
}
