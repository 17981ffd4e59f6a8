package auth

import (
	"net/http"
	"strings"

	"github.com/gorilla/sessions"

	"github.com/ghuser/qrcodeapp/pkg/httpx"
	"github.com/ghuser/qrcodeapp/pkg/logger"
)

// RequireTenant is a chi middleware that resolves the shop a request acts for
// and injects it into the request context.
//
// A bearer session token takes precedence: it is verified with verifier and
// the shop's offline access token is fetched from tokens. Without an
// Authorization header the session cookie is used. Any failure yields 401
// before the handler runs.
//
// After this middleware, handlers can safely call auth.TenantFromCtx(r.Context()).
func RequireTenant(store sessions.Store, verifier *SessionTokenVerifier, tokens AccessTokenLookup, log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			if header := r.Header.Get("Authorization"); header != "" {
				raw, ok := strings.CutPrefix(header, "Bearer ")
				if !ok || verifier == nil || tokens == nil {
					log.WarnContext(ctx, "unsupported authorization header")
					unauthorized(w)
					return
				}
				shop, err := verifier.Verify(strings.TrimSpace(raw))
				if err != nil {
					log.WarnContext(ctx, "invalid session token", "error", err)
					unauthorized(w)
					return
				}
				accessToken, err := tokens.AccessToken(ctx, shop)
				if err != nil {
					log.WarnContext(ctx, "no access token for shop", "shop", shop, "error", err)
					unauthorized(w)
					return
				}
				next.ServeHTTP(w, r.WithContext(WithTenant(ctx, Tenant{ShopDomain: shop, AccessToken: accessToken})))
				return
			}

			session, err := store.Get(r, SessionName)
			if err != nil {
				log.WarnContext(ctx, "invalid session cookie", "error", err)
				unauthorized(w)
				return
			}

			tenant, err := tenantFromSession(session)
			if err != nil {
				log.WarnContext(ctx, "session has no usable tenant", "error", err)
				unauthorized(w)
				return
			}

			next.ServeHTTP(w, r.WithContext(WithTenant(ctx, tenant)))
		})
	}
}

func unauthorized(w http.ResponseWriter) {
	httpx.JSONError(w, http.StatusUnauthorized, ErrUnauthenticated.Error())
}
