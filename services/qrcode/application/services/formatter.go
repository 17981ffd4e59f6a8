package services

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/ghuser/qrcodeapp/pkg/auth"
	pkgcache "github.com/ghuser/qrcodeapp/pkg/cache"
	"github.com/ghuser/qrcodeapp/pkg/logger"
	"github.com/ghuser/qrcodeapp/pkg/shopify"
	pkgvalidator "github.com/ghuser/qrcodeapp/pkg/validator"
	"github.com/ghuser/qrcodeapp/services/qrcode/domain/models"
)

// DeletedProductTitle is shown for QR codes whose product no longer exists.
const DeletedProductTitle = "Deleted product"

const variantGIDPrefix = "gid://shopify/ProductVariant/"

// ProductResolver looks up products by id in a single remote call.
// *shopify.Client satisfies it.
type ProductResolver interface {
	ProductsByIDs(ctx context.Context, s shopify.Session, ids []string) (map[string]shopify.Product, error)
}

// ProductSummary is the product data embedded in a QR code response.
type ProductSummary struct {
	ID       string `json:"id,omitempty" example:"gid://shopify/Product/7513594282178"`
	Title    string `json:"title" example:"The Collection Snowboard"`
	Handle   string `json:"handle,omitempty" example:"the-collection-snowboard"`
	ImageURL string `json:"imageUrl,omitempty"`
} // @name ProductSummary

// QRCodeView is the client-facing representation of a QR code.
type QRCodeView struct {
	ID             string         `json:"id" example:"123e4567-e89b-12d3-a456-426614174000"`
	ShopDomain     string         `json:"shopDomain" example:"example.myshopify.com"`
	Title          string         `json:"title" example:"Spring poster"`
	ProductID      string         `json:"productId" example:"gid://shopify/Product/7513594282178"`
	Destination    string         `json:"destination" example:"product" enums:"product,checkout,discount"`
	DiscountCode   *string        `json:"discountCode" example:"SPRING10"`
	Product        ProductSummary `json:"product"`
	DestinationURL string         `json:"destinationUrl" example:"https://example.myshopify.com/products/the-collection-snowboard"`
	ImageURL       string         `json:"qrCodeImageUrl" example:"https://qrcodes.example.com/qrcodes/123e4567-e89b-12d3-a456-426614174000/image"`
	CreatedAt      time.Time      `json:"createdAt" example:"2024-01-15T10:30:00Z"`
	Scans          int            `json:"scans" example:"0"`
} // @name QRCode

// Formatter enriches stored QR codes with product data and derived URLs.
type Formatter struct {
	products ProductResolver
	cache    *pkgcache.ProductCache
	appURL   string
	log      logger.Logger
}

// NewFormatter returns a Formatter. cache may be nil.
func NewFormatter(products ProductResolver, cache *pkgcache.ProductCache, appURL string, log logger.Logger) *Formatter {
	return &Formatter{
		products: products,
		cache:    cache,
		appURL:   strings.TrimRight(appURL, "/"),
		log:      log,
	}
}

// Format renders codes in order. Products are resolved with at most one
// remote call; any resolution error fails the whole batch.
func (f *Formatter) Format(ctx context.Context, tenant auth.Tenant, codes []*models.QRCode) ([]QRCodeView, error) {
	views := make([]QRCodeView, 0, len(codes))
	if len(codes) == 0 {
		return views, nil
	}

	products, err := f.resolve(ctx, tenant, uniqueProductIDs(codes))
	if err != nil {
		return nil, fmt.Errorf("resolve products: %w", err)
	}

	for _, qr := range codes {
		var product *shopify.Product
		if p, ok := products[qr.ProductID]; ok {
			product = &p
		}
		views = append(views, f.view(qr, product))
	}
	return views, nil
}

// FormatOne renders a single code.
func (f *Formatter) FormatOne(ctx context.Context, tenant auth.Tenant, qr *models.QRCode) (QRCodeView, error) {
	views, err := f.Format(ctx, tenant, []*models.QRCode{qr})
	if err != nil {
		return QRCodeView{}, err
	}
	return views[0], nil
}

// ImageURL is the public PNG endpoint for a QR code.
func (f *Formatter) ImageURL(id string) string {
	return f.appURL + "/qrcodes/" + id + "/image"
}

// ScanURL is the address encoded into a QR code image.
func (f *Formatter) ScanURL(id string) string {
	return f.appURL + "/qrcodes/" + id + "/scan"
}

func (f *Formatter) resolve(ctx context.Context, tenant auth.Tenant, ids []string) (map[string]shopify.Product, error) {
	found := make(map[string]shopify.Product, len(ids))
	if len(ids) == 0 {
		return found, nil
	}
	missing := ids

	if f.cache != nil {
		cached, err := f.cache.GetMany(ctx, tenant.ShopDomain, ids)
		if err != nil {
			f.log.WarnContext(ctx, "product cache read failed", "error", err)
		} else {
			found = cached
			missing = missing[:0:0]
			for _, id := range ids {
				if _, ok := cached[id]; !ok {
					missing = append(missing, id)
				}
			}
		}
	}
	if len(missing) == 0 {
		return found, nil
	}

	fetched, err := f.products.ProductsByIDs(ctx, shopify.Session{
		ShopDomain:  tenant.ShopDomain,
		AccessToken: tenant.AccessToken,
	}, missing)
	if err != nil {
		return nil, err
	}
	for id, p := range fetched {
		found[id] = p
	}

	if f.cache != nil && len(fetched) > 0 {
		if err := f.cache.SetMany(ctx, tenant.ShopDomain, fetched); err != nil {
			f.log.WarnContext(ctx, "product cache write failed", "error", err)
		}
	}
	return found, nil
}

func (f *Formatter) view(qr *models.QRCode, product *shopify.Product) QRCodeView {
	id := qr.ID.String()
	v := QRCodeView{
		ID:             id,
		ShopDomain:     qr.ShopDomain,
		Title:          qr.Title.String(),
		ProductID:      qr.ProductID,
		Destination:    qr.Destination.String(),
		DestinationURL: DestinationURL(qr, product),
		ImageURL:       f.ImageURL(id),
		CreatedAt:      qr.CreatedAt,
		Scans:          qr.Scans,
	}
	if qr.DiscountCode != "" {
		code := qr.DiscountCode
		v.DiscountCode = &code
	}
	if product != nil {
		v.Product = ProductSummary{
			ID:       product.ID,
			Title:    product.Title,
			Handle:   product.Handle,
			ImageURL: product.ImageURL,
		}
	} else {
		v.Product = ProductSummary{Title: DeletedProductTitle}
	}
	return v
}

// DestinationURL is where a scan of qr sends the customer. A nil product
// (deleted remotely) falls back to the storefront root; a discount code is
// still applied through the discount redirect.
func DestinationURL(qr *models.QRCode, product *shopify.Product) string {
	base := "https://" + qr.ShopDomain

	productPath := "/"
	variantID := ""
	if product != nil {
		if product.Handle != "" {
			productPath = "/products/" + url.PathEscape(product.Handle)
		}
		variantID = strings.TrimPrefix(product.FirstVariantID, variantGIDPrefix)
	}

	switch {
	case qr.Destination == models.DestinationCheckout && variantID != "":
		dest := base + "/cart/" + url.PathEscape(variantID) + ":1"
		if qr.DiscountCode != "" {
			dest += "?discount=" + url.QueryEscape(qr.DiscountCode)
		}
		return dest
	case qr.DiscountCode != "":
		return base + "/discount/" + url.PathEscape(qr.DiscountCode) + "?redirect=" + productPath
	default:
		return base + productPath
	}
}

// uniqueProductIDs returns the distinct product ids worth resolving. The
// Admin API rejects the whole nodes(ids:) query over one malformed id, so
// anything but gid://shopify/Product/<n> is left out and renders as deleted.
func uniqueProductIDs(codes []*models.QRCode) []string {
	seen := make(map[string]struct{}, len(codes))
	ids := make([]string, 0, len(codes))
	for _, qr := range codes {
		if _, ok := seen[qr.ProductID]; ok {
			continue
		}
		if !pkgvalidator.IsGID(qr.ProductID, "Product") {
			continue
		}
		seen[qr.ProductID] = struct{}{}
		ids = append(ids, qr.ProductID)
	}
	return ids
}
