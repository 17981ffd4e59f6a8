// Package auth resolves the shop (tenant) a request acts for.
//
// Two credentials are accepted: an App Bridge session token in the
// Authorization header, or a server-side session cookie. Session keys should
// be 32 or 64 bytes for HMAC authentication, and 16, 24, or 32 bytes for AES
// encryption. Production deployments must use keys generated with:
//
//	openssl rand -base64 32
package auth

import (
	"bytes"
	"context"
	"encoding/base32"
	"encoding/gob"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/securecookie"
	"github.com/gorilla/sessions"
	"github.com/redis/go-redis/v9"
)

const (
	sessionKeyPrefix = "qrcodes:session:"

	// SessionName is the cookie name of the embedded-app session.
	SessionName = "qrcodes_session"
	// SessionShopKey and SessionAccessTokenKey are the session values written
	// by the install flow and read by RequireTenant.
	SessionShopKey        = "shop"
	SessionAccessTokenKey = "access_token"

	sessionMaxAge = 24 * time.Hour
)

// RedisStore is a sessions.Store backed by Redis.
// Only an encrypted session ID travels in the cookie; values, including the
// shop access token, stay server-side under "qrcodes:session:<id>".
type RedisStore struct {
	client  *redis.Client
	codecs  []securecookie.Codec
	options *sessions.Options
}

// NewSessionStore creates a Redis-backed session store. Cookies are HttpOnly,
// SameSite=None (the app is rendered inside the storefront admin iframe) and
// Secure when secureCookie is set.
func NewSessionStore(client *redis.Client, authKey, encryptionKey []byte, secureCookie bool) *RedisStore {
	sameSite := http.SameSiteLaxMode
	if secureCookie {
		sameSite = http.SameSiteNoneMode
	}
	return &RedisStore{
		client: client,
		codecs: securecookie.CodecsFromPairs(authKey, encryptionKey),
		options: &sessions.Options{
			Path:     "/",
			MaxAge:   int(sessionMaxAge.Seconds()),
			HttpOnly: true,
			Secure:   secureCookie,
			SameSite: sameSite,
		},
	}
}

// Get returns the named session, loading it from Redis when the cookie is valid.
func (s *RedisStore) Get(r *http.Request, name string) (*sessions.Session, error) {
	return sessions.GetRegistry(r).Get(s, name)
}

// New creates a session. A missing, tampered or expired cookie, or a missing
// Redis key, yields a fresh session without error.
func (s *RedisStore) New(r *http.Request, name string) (*sessions.Session, error) {
	session := sessions.NewSession(s, name)
	opts := *s.options
	session.Options = &opts
	session.IsNew = true

	c, err := r.Cookie(name)
	if err != nil {
		return session, nil
	}

	var id string
	if err := securecookie.DecodeMulti(name, c.Value, &id, s.codecs...); err != nil {
		return session, nil
	}

	session.ID = id
	if err := s.load(r.Context(), session); err != nil {
		return session, nil
	}
	session.IsNew = false
	return session, nil
}

// Save persists the session to Redis and writes the encrypted session cookie.
// A negative MaxAge deletes both.
func (s *RedisStore) Save(r *http.Request, w http.ResponseWriter, session *sessions.Session) error {
	if session.Options.MaxAge < 0 {
		if session.ID != "" {
			if err := s.client.Del(r.Context(), sessionKeyPrefix+session.ID).Err(); err != nil {
				return fmt.Errorf("delete session: %w", err)
			}
		}
		http.SetCookie(w, sessions.NewCookie(session.Name(), "", session.Options))
		return nil
	}

	if session.ID == "" {
		session.ID = strings.TrimRight(
			base32.StdEncoding.EncodeToString(securecookie.GenerateRandomKey(32)),
			"=",
		)
	}

	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(session.Values); err != nil {
		return fmt.Errorf("encode session values: %w", err)
	}
	ttl := time.Duration(session.Options.MaxAge) * time.Second
	if err := s.client.Set(r.Context(), sessionKeyPrefix+session.ID, buf.Bytes(), ttl).Err(); err != nil {
		return fmt.Errorf("persist session: %w", err)
	}

	encoded, err := securecookie.EncodeMulti(session.Name(), session.ID, s.codecs...)
	if err != nil {
		return fmt.Errorf("encode session cookie: %w", err)
	}
	http.SetCookie(w, sessions.NewCookie(session.Name(), encoded, session.Options))
	return nil
}

func (s *RedisStore) load(ctx context.Context, session *sessions.Session) error {
	data, err := s.client.Get(ctx, sessionKeyPrefix+session.ID).Bytes()
	if err != nil {
		return fmt.Errorf("get session from redis: %w", err)
	}
	return gob.NewDecoder(bytes.NewBuffer(data)).Decode(&session.Values)
}

// tenantFromSession reads shop and access token values written by the install flow.
func tenantFromSession(session *sessions.Session) (Tenant, error) {
	shop, _ := session.Values[SessionShopKey].(string)
	token, _ := session.Values[SessionAccessTokenKey].(string)
	if shop == "" || token == "" {
		return Tenant{}, ErrUnauthenticated
	}
	normalized, err := NormalizeShopDomain(shop)
	if err != nil {
		return Tenant{}, err
	}
	return Tenant{ShopDomain: normalized, AccessToken: token}, nil
}
