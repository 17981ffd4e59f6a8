package httpx

import (
	"context"
	"errors"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/unrolled/secure"
)

const (
	defaultRequestsPerMinute = 120
	defaultMaxBodyBytes      = 1 << 20
	defaultHandlerTimeout    = 15 * time.Second
)

// DefaultFrameAncestors are the origins allowed to embed the app in an iframe.
var DefaultFrameAncestors = []string{"https://admin.shopify.com", "https://*.myshopify.com"}

// Middleware is a standard net/http middleware.
type Middleware = func(http.Handler) http.Handler

// Stack holds the application-owned middlewares NewRouter places around its
// built-in chain. Nil entries are skipped.
type Stack struct {
	Recover Middleware
	Sentry  Middleware
	Trace   Middleware
	Log     Middleware
}

// ServerConfig holds the options for NewRouter.
type ServerConfig struct {
	IsDevelopment bool
	// CORSAllowedOrigins is a comma-separated origin list; "*" allows any origin.
	CORSAllowedOrigins string
	// RequestsPerMinute caps requests per client IP. Zero means 120.
	RequestsPerMinute int
	// MaxBodyBytes caps request bodies. Zero means 1 MiB.
	MaxBodyBytes int64
	// HandlerTimeout bounds a single request. Zero means 15s.
	HandlerTimeout time.Duration
	// FrameAncestors overrides DefaultFrameAncestors.
	FrameAncestors []string
}

func (c ServerConfig) withDefaults() ServerConfig {
	if c.RequestsPerMinute <= 0 {
		c.RequestsPerMinute = defaultRequestsPerMinute
	}
	if c.MaxBodyBytes <= 0 {
		c.MaxBodyBytes = defaultMaxBodyBytes
	}
	if c.HandlerTimeout <= 0 {
		c.HandlerTimeout = defaultHandlerTimeout
	}
	if len(c.FrameAncestors) == 0 {
		c.FrameAncestors = DefaultFrameAncestors
	}
	return c
}

// NewRouter returns a chi.Mux with the service middleware chain installed.
//
// Outermost first: Recover, Sentry, RequestID, Trace, Log, RealIP, rate
// limit, CORS, body limit, timeout, security headers.
func NewRouter(cfg ServerConfig, stack Stack) *chi.Mux {
	cfg = cfg.withDefaults()

	sec := secure.New(secure.Options{
		STSSeconds:            63072000,
		STSIncludeSubdomains:  true,
		ContentTypeNosniff:    true,
		ReferrerPolicy:        "strict-origin-when-cross-origin",
		ContentSecurityPolicy: ContentSecurityPolicy(cfg.FrameAncestors),
		PermissionsPolicy:     "camera=(), geolocation=(), microphone=(), payment=(), usb=()",
		IsDevelopment:         cfg.IsDevelopment,
	})

	var chain []Middleware
	for _, mw := range []Middleware{stack.Recover, stack.Sentry, middleware.RequestID, stack.Trace, stack.Log} {
		if mw != nil {
			chain = append(chain, mw)
		}
	}
	chain = append(chain,
		middleware.RealIP,
		RateLimit(cfg.RequestsPerMinute),
		CORSMiddleware(cfg.CORSAllowedOrigins),
		RequestBodyLimit(cfg.MaxBodyBytes),
		middleware.Timeout(cfg.HandlerTimeout),
		sec.Handler,
	)

	r := chi.NewRouter()
	r.Use(chain...)
	r.NotFound(func(w http.ResponseWriter, _ *http.Request) { Empty(w, http.StatusNotFound) })
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) { Empty(w, http.StatusMethodNotAllowed) })
	return r
}

// ContentSecurityPolicy builds the CSP header. QR images are served from this
// origin and product thumbnails come from the storefront CDN.
func ContentSecurityPolicy(frameAncestors []string) string {
	return "default-src 'self'; img-src 'self' data: https://cdn.shopify.com; frame-ancestors " +
		strings.Join(frameAncestors, " ")
}

// RateLimit caps each client IP at rpm requests per minute and answers
// excess requests with a JSON 429.
func RateLimit(rpm int) Middleware {
	return httprate.Limit(rpm, time.Minute,
		httprate.WithKeyFuncs(httprate.KeyByIP),
		httprate.WithLimitHandler(func(w http.ResponseWriter, _ *http.Request) {
			JSONError(w, http.StatusTooManyRequests, "Too many requests")
		}),
	)
}

// CORSMiddleware returns a CORS handler for the comma-separated allowedOrigins.
// The embedded admin sends its session token in Authorization, never cookies.
func CORSMiddleware(allowedOrigins string) Middleware {
	return cors.Handler(cors.Options{
		AllowedOrigins:   parseOrigins(allowedOrigins),
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-Id"},
		ExposedHeaders:   []string{"X-Request-Id"},
		AllowCredentials: false,
		MaxAge:           600,
	})
}

func parseOrigins(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return []string{"*"}
	}
	return out
}

// RequestBodyLimit caps the request body at maxBytes. Reads past the cap fail
// with *http.MaxBytesError, which handlers map to 413.
func RequestBodyLimit(maxBytes int64) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
			next.ServeHTTP(w, r)
		})
	}
}

// NewServer returns an *http.Server whose write timeout exceeds the handler
// timeout so timed-out handlers can still send their 503.
func NewServer(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      defaultHandlerTimeout + 5*time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    64 << 10,
	}
}

// Serve runs srv until ctx is cancelled, then drains in-flight requests for up
// to grace. A listener failure is returned immediately.
func Serve(ctx context.Context, srv *http.Server, grace time.Duration) error {
	ln, err := net.Listen("tcp", srv.Addr)
	if err != nil {
		return err
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Serve(ln) }()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), grace)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
