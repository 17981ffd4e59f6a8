package auth

import (
	"context"
	"errors"
	"log/slog"
	"regexp"
	"strings"
)

// contextKey is an unexported type to prevent key collisions in context.
type contextKey string

const tenantKey contextKey = "tenant"

// ErrUnauthenticated is returned when no tenant exists in the request context.
// Handlers should return 401 when this error occurs.
var ErrUnauthenticated = errors.New("authentication required")

// ErrInvalidShopDomain is returned when a shop domain is not a *.myshopify.com host.
var ErrInvalidShopDomain = errors.New("invalid shop domain")

var shopDomainPattern = regexp.MustCompile(`^[a-z0-9][a-z0-9-]*\.myshopify\.com$`)

// Tenant is the authenticated shop a request acts for, together with the
// Admin API access token used for remote calls on its behalf.
type Tenant struct {
	ShopDomain  string
	AccessToken string
}

// TenantFromCtx extracts the authenticated tenant from the request context.
// Returns ErrUnauthenticated if no tenant is set or it is incomplete.
func TenantFromCtx(ctx context.Context) (Tenant, error) {
	tenant, ok := ctx.Value(tenantKey).(Tenant)
	if !ok || tenant.ShopDomain == "" || tenant.AccessToken == "" {
		return Tenant{}, ErrUnauthenticated
	}
	return tenant, nil
}

// WithTenant returns a new context with the given tenant attached.
// Used by RequireTenant after validating the session.
func WithTenant(ctx context.Context, tenant Tenant) context.Context {
	return context.WithValue(ctx, tenantKey, tenant)
}

// LogAttrs is a logger.ContextAttrs extractor that tags records with the shop.
// The access token is never logged.
func LogAttrs(ctx context.Context) []slog.Attr {
	tenant, ok := ctx.Value(tenantKey).(Tenant)
	if !ok || tenant.ShopDomain == "" {
		return nil
	}
	return []slog.Attr{slog.String("shop", tenant.ShopDomain)}
}

// NormalizeShopDomain lower-cases s, strips any scheme, path and trailing dot,
// and checks that the result is a myshopify.com host.
func NormalizeShopDomain(s string) (string, error) {
	shop := strings.ToLower(strings.TrimSpace(s))
	shop = strings.TrimPrefix(shop, "https://")
	shop = strings.TrimPrefix(shop, "http://")
	if i := strings.IndexByte(shop, '/'); i >= 0 {
		shop = shop[:i]
	}
	shop = strings.TrimSuffix(shop, ".")
	if !shopDomainPattern.MatchString(shop) {
		return "", ErrInvalidShopDomain
	}
	return shop, nil
}
