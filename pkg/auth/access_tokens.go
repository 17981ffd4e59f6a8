package auth

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

const accessTokenKeyPrefix = "qrcodes:shop_token:"

// ErrAccessTokenNotFound is returned when no offline token is stored for a shop.
var ErrAccessTokenNotFound = errors.New("access token not found")

// AccessTokenLookup resolves the offline Admin API token of an installed shop.
type AccessTokenLookup interface {
	AccessToken(ctx context.Context, shop string) (string, error)
}

// AccessTokenStore reads offline Admin API tokens from Redis, one key per shop
// ("qrcodes:shop_token:{shop}").
// Tokens are written by the install flow and never expire on their own;
// they are removed when the app is uninstalled.
type AccessTokenStore struct {
	client *redis.Client
}

// NewAccessTokenStore returns an AccessTokenStore using client.
func NewAccessTokenStore(client *redis.Client) *AccessTokenStore {
	return &AccessTokenStore{client: client}
}

// AccessToken returns the stored token for shop or ErrAccessTokenNotFound.
func (s *AccessTokenStore) AccessToken(ctx context.Context, shop string) (string, error) {
	token, err := s.client.Get(ctx, accessTokenKeyPrefix+shop).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrAccessTokenNotFound
	}
	if err != nil {
		return "", fmt.Errorf("get access token: %w", err)
	}
	return token, nil
}
