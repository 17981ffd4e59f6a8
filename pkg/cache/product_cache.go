package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/ghuser/qrcodeapp/pkg/shopify"
)

const productCacheKeyPrefix = "product"

// ProductCache keeps resolved remote products per shop so repeated list
// renders do not refetch the same products. Deleted products are never cached.
// Key format: "product:{shopDomain}:{productID}"
type ProductCache struct {
	client *RedisClient
	ttl    time.Duration
}

// NewProductCache creates a ProductCache whose entries expire after ttl.
func NewProductCache(r *RedisClient, ttl time.Duration) *ProductCache {
	return &ProductCache{client: r, ttl: ttl}
}

// GetMany returns the cached products among ids. Missing or undecodable
// entries are simply absent from the result.
func (c *ProductCache) GetMany(ctx context.Context, shopDomain string, ids []string) (map[string]shopify.Product, error) {
	found := make(map[string]shopify.Product, len(ids))
	if len(ids) == 0 {
		return found, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = ProductKey(shopDomain, id)
	}
	vals, err := c.client.Client().MGet(ctx, keys...).Result()
	if err != nil {
		return nil, fmt.Errorf("cache mget: %w", err)
	}

	for i, v := range vals {
		s, ok := v.(string)
		if !ok {
			continue
		}
		var p shopify.Product
		if json.Unmarshal([]byte(s), &p) != nil {
			continue
		}
		found[ids[i]] = p
	}
	return found, nil
}

// SetMany stores products in one pipeline.
func (c *ProductCache) SetMany(ctx context.Context, shopDomain string, products map[string]shopify.Product) error {
	if len(products) == 0 {
		return nil
	}
	pipe := c.client.Client().Pipeline()
	for id, p := range products {
		payload, err := json.Marshal(p)
		if err != nil {
			return fmt.Errorf("cache marshal product: %w", err)
		}
		pipe.Set(ctx, ProductKey(shopDomain, id), payload, c.ttl)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("cache set products: %w", err)
	}
	return nil
}

// Delete drops one cached product, e.g. after its title was edited.
func (c *ProductCache) Delete(ctx context.Context, shopDomain, productID string) error {
	if err := c.client.Client().Del(ctx, ProductKey(shopDomain, productID)).Err(); err != nil {
		return fmt.Errorf("cache delete product: %w", err)
	}
	return nil
}

// ProductKey builds the Redis key: "product:{shopDomain}:{productID}"
func ProductKey(shopDomain, productID string) string {
	return fmt.Sprintf("%s:%s:%s", productCacheKeyPrefix, shopDomain, productID)
}
