package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	pkgcache "github.com/ghuser/qrcodeapp/pkg/cache"
	"github.com/ghuser/qrcodeapp/pkg/logger"
	"github.com/ghuser/qrcodeapp/services/qrcode/domain/models"
	"github.com/ghuser/qrcodeapp/services/qrcode/domain/repositories"
	domainsvcs "github.com/ghuser/qrcodeapp/services/qrcode/domain/services"
)

// CreateInput is the client-supplied part of a new QR code.
type CreateInput struct {
	Title        string
	ProductID    string
	Destination  string
	DiscountCode string
}

// QRCodeService orchestrates QR code persistence for a single shop.
// Event publishing is handled by the repository layer (outbox pattern).
// Reads are served from Redis cache when available. The service only evicts;
// the worker's CacheSync writes entries after re-reading the committed row.
type QRCodeService struct {
	repo  repositories.QRCodeRepository
	cache *pkgcache.QRCodeCache
	log   logger.Logger
}

// NewQRCodeService returns a QRCodeService. cache may be nil.
func NewQRCodeService(repo repositories.QRCodeRepository, qrCache *pkgcache.QRCodeCache, log logger.Logger) *QRCodeService {
	return &QRCodeService{repo: repo, cache: qrCache, log: log}
}

// Create validates and persists a QR code for shopDomain, then reads it back.
func (s *QRCodeService) Create(ctx context.Context, shopDomain string, in CreateInput) (*models.QRCode, error) {
	qr := models.NewQRCode(
		shopDomain,
		models.Title(in.Title),
		in.ProductID,
		models.Destination(in.Destination),
		in.DiscountCode,
	)
	if err := domainsvcs.ValidateQRCode(qr); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, qr); err != nil {
		return nil, fmt.Errorf("create qr code: %w", err)
	}

	stored, err := s.repo.GetByID(ctx, shopDomain, qr.ID)
	if err != nil {
		return nil, fmt.Errorf("read created qr code: %w", err)
	}
	return stored, nil
}

// Get checks the Redis cache first and falls back to the repository on a miss
// or cache error. A miss does not write back: a snapshot read here could land
// after a concurrent Update's eviction and pin the old fields.
func (s *QRCodeService) Get(ctx context.Context, shopDomain string, id uuid.UUID) (*models.QRCode, error) {
	if s.cache != nil {
		cached, err := s.cache.Get(ctx, shopDomain, id)
		switch {
		case err == nil:
			return fromCached(cached), nil
		case !errors.Is(err, redis.Nil):
			s.log.WarnContext(ctx, "qr code cache read failed", "qrcode_id", id, "error", err)
		}
	}

	qr, err := s.repo.GetByID(ctx, shopDomain, id)
	if err != nil {
		return nil, fmt.Errorf("get qr code: %w", err)
	}
	return qr, nil
}

// Exists reports ErrQRCodeNotFound when the shop has no such code. It reads
// the store, never the cache.
func (s *QRCodeService) Exists(ctx context.Context, shopDomain string, id uuid.UUID) error {
	if _, err := s.repo.GetByID(ctx, shopDomain, id); err != nil {
		return fmt.Errorf("get qr code: %w", err)
	}
	return nil
}

// List returns every QR code of shopDomain, newest first.
func (s *QRCodeService) List(ctx context.Context, shopDomain string) ([]*models.QRCode, error) {
	codes, err := s.repo.ListByShop(ctx, shopDomain)
	if err != nil {
		return nil, fmt.Errorf("list qr codes: %w", err)
	}
	return codes, nil
}

// Update applies patch to an existing QR code. Fields absent from the patch
// keep their stored values; the merged record is validated as a whole.
func (s *QRCodeService) Update(ctx context.Context, shopDomain string, id uuid.UUID, patch models.QRCodePatch) (*models.QRCode, error) {
	current, err := s.repo.GetByID(ctx, shopDomain, id)
	if err != nil {
		return nil, fmt.Errorf("get qr code: %w", err)
	}

	next := patch.Apply(current)
	if err := domainsvcs.ValidateQRCode(next); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, next); err != nil {
		return nil, fmt.Errorf("update qr code: %w", err)
	}
	s.evict(ctx, shopDomain, id)

	stored, err := s.repo.GetByID(ctx, shopDomain, id)
	if err != nil {
		return nil, fmt.Errorf("read updated qr code: %w", err)
	}
	return stored, nil
}

// Delete removes a QR code. Returns ErrQRCodeNotFound if the shop has no such code.
func (s *QRCodeService) Delete(ctx context.Context, shopDomain string, id uuid.UUID) error {
	if err := s.Exists(ctx, shopDomain, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, shopDomain, id); err != nil {
		return fmt.Errorf("delete qr code: %w", err)
	}
	s.evict(ctx, shopDomain, id)
	return nil
}

func (s *QRCodeService) evict(ctx context.Context, shopDomain string, id uuid.UUID) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, shopDomain, id); err != nil {
		s.log.WarnContext(ctx, "qr code cache evict failed", "qrcode_id", id, "error", err)
	}
}

// ToCached converts a QR code to its Redis read model.
func ToCached(qr *models.QRCode) *pkgcache.CachedQRCode {
	return &pkgcache.CachedQRCode{
		ID:           qr.ID,
		ShopDomain:   qr.ShopDomain,
		Title:        qr.Title.String(),
		ProductID:    qr.ProductID,
		Destination:  qr.Destination.String(),
		DiscountCode: qr.DiscountCode,
		Scans:        qr.Scans,
		CreatedAt:    qr.CreatedAt,
	}
}

func fromCached(c *pkgcache.CachedQRCode) *models.QRCode {
	return &models.QRCode{
		ID:           c.ID,
		ShopDomain:   c.ShopDomain,
		Title:        models.Title(c.Title),
		ProductID:    c.ProductID,
		Destination:  models.Destination(c.Destination),
		DiscountCode: c.DiscountCode,
		Scans:        c.Scans,
		CreatedAt:    c.CreatedAt,
	}
}
