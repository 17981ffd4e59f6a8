// Package memory is an in-process QRCodeRepository used by tests and local
// runs without PostgreSQL.
package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	qrdomain "github.com/ghuser/qrcodeapp/services/qrcode/domain"
	"github.com/ghuser/qrcodeapp/services/qrcode/domain/models"
)

type QRCodeRepository struct {
	mu    sync.RWMutex
	codes map[uuid.UUID]models.QRCode
}

func NewQRCodeRepository() *QRCodeRepository {
	return &QRCodeRepository{codes: make(map[uuid.UUID]models.QRCode)}
}

func (r *QRCodeRepository) Create(_ context.Context, qr *models.QRCode) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.codes[qr.ID]; ok {
		return qrdomain.ErrQRCodeAlreadyExists
	}
	r.codes[qr.ID] = *qr
	return nil
}

func (r *QRCodeRepository) GetByID(_ context.Context, shopDomain string, id uuid.UUID) (*models.QRCode, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	qr, ok := r.codes[id]
	if !ok || qr.ShopDomain != shopDomain {
		return nil, qrdomain.ErrQRCodeNotFound
	}
	return &qr, nil
}

func (r *QRCodeRepository) ListByShop(_ context.Context, shopDomain string) ([]*models.QRCode, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*models.QRCode, 0)
	for _, qr := range r.codes {
		if qr.ShopDomain == shopDomain {
			qr := qr
			out = append(out, &qr)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID.String() > out[j].ID.String()
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

// Update copies the mutable fields onto the stored record.
func (r *QRCodeRepository) Update(_ context.Context, qr *models.QRCode) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.codes[qr.ID]
	if !ok || stored.ShopDomain != qr.ShopDomain {
		return qrdomain.ErrQRCodeNotFound
	}
	stored.Title = qr.Title
	stored.ProductID = qr.ProductID
	stored.Destination = qr.Destination
	stored.DiscountCode = qr.DiscountCode
	r.codes[qr.ID] = stored
	return nil
}

func (r *QRCodeRepository) Delete(_ context.Context, shopDomain string, id uuid.UUID) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.codes[id]
	if !ok || stored.ShopDomain != shopDomain {
		return qrdomain.ErrQRCodeNotFound
	}
	delete(r.codes, id)
	return nil
}
