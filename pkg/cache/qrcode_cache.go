package cache

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	// QRCodeCacheTTL is the time-to-live for cached QR codes.
	QRCodeCacheTTL = 24 * time.Hour

	qrCodeCacheKeyPrefix = "qrcode"
)

// CachedQRCode is the denormalized read model stored in Redis as a hash.
type CachedQRCode struct {
	ID           uuid.UUID `json:"id"`
	ShopDomain   string    `json:"shop_domain"`
	Title        string    `json:"title"`
	ProductID    string    `json:"product_id"`
	Destination  string    `json:"destination"`
	DiscountCode string    `json:"discount_code"`
	Scans        int       `json:"scans"`
	CreatedAt    time.Time `json:"created_at"`
}

// QRCodeCache provides structured read/write operations for QR code cache entries.
// Keys are scoped by shop domain to prevent cross-tenant data leakage.
// Key format: "qrcode:{shopDomain}:{id}"
type QRCodeCache struct {
	client *RedisClient
}

// NewQRCodeCache creates a new QRCodeCache backed by the given RedisClient.
func NewQRCodeCache(r *RedisClient) *QRCodeCache {
	return &QRCodeCache{client: r}
}

// Get retrieves a cached QR code by shop + id.
// Returns redis.Nil error when the key does not exist or has expired.
func (c *QRCodeCache) Get(ctx context.Context, shopDomain string, id uuid.UUID) (*CachedQRCode, error) {
	vals, err := c.client.Client().HGetAll(ctx, QRCodeKey(shopDomain, id)).Result()
	if err != nil {
		return nil, fmt.Errorf("cache get: %w", err)
	}
	if len(vals) == 0 {
		return nil, redis.Nil
	}
	return decodeQRCode(vals)
}

// Set writes a cached QR code as a Redis hash with a 24-hour TTL.
// Uses a pipeline to set all fields and the TTL atomically.
func (c *QRCodeCache) Set(ctx context.Context, qr *CachedQRCode) error {
	key := QRCodeKey(qr.ShopDomain, qr.ID)
	pipe := c.client.Client().TxPipeline()
	pipe.Del(ctx, key)
	pipe.HSet(ctx, key, encodeQRCode(qr))
	pipe.Expire(ctx, key, QRCodeCacheTTL)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("cache set: %w", err)
	}
	return nil
}

// Delete removes a cached QR code.
func (c *QRCodeCache) Delete(ctx context.Context, shopDomain string, id uuid.UUID) error {
	if err := c.client.Client().Del(ctx, QRCodeKey(shopDomain, id)).Err(); err != nil {
		return fmt.Errorf("cache delete: %w", err)
	}
	return nil
}

// QRCodeKey builds the Redis key: "qrcode:{shopDomain}:{id}"
func QRCodeKey(shopDomain string, id uuid.UUID) string {
	return fmt.Sprintf("%s:%s:%s", qrCodeCacheKeyPrefix, shopDomain, id)
}

func encodeQRCode(qr *CachedQRCode) map[string]any {
	return map[string]any{
		"id":            qr.ID.String(),
		"shop_domain":   qr.ShopDomain,
		"title":         qr.Title,
		"product_id":    qr.ProductID,
		"destination":   qr.Destination,
		"discount_code": qr.DiscountCode,
		"scans":         strconv.Itoa(qr.Scans),
		"created_at":    qr.CreatedAt.UTC().Format(time.RFC3339Nano),
	}
}

func decodeQRCode(vals map[string]string) (*CachedQRCode, error) {
	id, err := uuid.Parse(vals["id"])
	if err != nil {
		return nil, fmt.Errorf("cache parse id: %w", err)
	}
	scans, err := strconv.Atoi(vals["scans"])
	if err != nil {
		return nil, fmt.Errorf("cache parse scans: %w", err)
	}
	createdAt, err := time.Parse(time.RFC3339Nano, vals["created_at"])
	if err != nil {
		return nil, fmt.Errorf("cache parse created_at: %w", err)
	}
	return &CachedQRCode{
		ID:           id,
		ShopDomain:   vals["shop_domain"],
		Title:        vals["title"],
		ProductID:    vals["product_id"],
		Destination:  vals["destination"],
		DiscountCode: vals["discount_code"],
		Scans:        scans,
		CreatedAt:    createdAt,
	}, nil
}
