package auth

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var sessionTokenSigningMethod = jwt.SigningMethodHS256

// sessionTokenLeeway absorbs clock skew between the storefront admin and this service.
const sessionTokenLeeway = 5 * time.Second

// SessionTokenClaims are the claims carried by an App Bridge session token.
// Dest is the shop origin ("https://<shop>.myshopify.com"); Issuer is the
// shop admin URL; Audience is the app's API key.
type SessionTokenClaims struct {
	Dest      string `json:"dest"`
	SessionID string `json:"sid,omitempty"`
	jwt.RegisteredClaims
}

// SessionTokenVerifier validates App Bridge session tokens sent as
// "Authorization: Bearer <token>".
type SessionTokenVerifier struct {
	apiKey    string
	apiSecret []byte
}

// NewSessionTokenVerifier returns a verifier for tokens issued to the app
// identified by apiKey and signed with apiSecret.
func NewSessionTokenVerifier(apiKey, apiSecret string) (*SessionTokenVerifier, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, errors.New("session token verifier: api key is required")
	}
	if apiSecret == "" {
		return nil, errors.New("session token verifier: api secret is required")
	}
	return &SessionTokenVerifier{apiKey: apiKey, apiSecret: []byte(apiSecret)}, nil
}

// Verify checks signature, audience and validity window of token and returns
// the normalized shop domain it was issued for.
func (v *SessionTokenVerifier) Verify(token string) (string, error) {
	claims := &SessionTokenClaims{}
	_, err := jwt.ParseWithClaims(
		token,
		claims,
		func(t *jwt.Token) (interface{}, error) {
			if t.Method != sessionTokenSigningMethod {
				return nil, fmt.Errorf("unexpected signing method %s", t.Header["alg"])
			}
			return v.apiSecret, nil
		},
		jwt.WithValidMethods([]string{sessionTokenSigningMethod.Alg()}),
		jwt.WithAudience(v.apiKey),
		jwt.WithExpirationRequired(),
		jwt.WithLeeway(sessionTokenLeeway),
	)
	if err != nil {
		return "", fmt.Errorf("parse session token: %w", err)
	}

	shop, err := NormalizeShopDomain(claims.Dest)
	if err != nil {
		return "", fmt.Errorf("session token dest: %w", err)
	}

	iss, err := url.Parse(claims.Issuer)
	if err != nil || !strings.EqualFold(iss.Host, shop) {
		return "", fmt.Errorf("session token issuer %q does not match shop %q", claims.Issuer, shop)
	}

	return shop, nil
}
