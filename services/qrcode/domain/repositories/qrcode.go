package repositories

import (
	"context"

	"github.com/google/uuid"

	"github.com/ghuser/qrcodeapp/services/qrcode/domain/models"
)

// QRCodeRepository is the persistence interface for the QRCode aggregate.
// The domain layer owns this interface; infrastructure implements it.
//
// Every read and write is scoped by shop domain. A record owned by another
// shop is indistinguishable from a missing one: both yield ErrQRCodeNotFound.
type QRCodeRepository interface {
	Create(ctx context.Context, qr *models.QRCode) error
	GetByID(ctx context.Context, shopDomain string, id uuid.UUID) (*models.QRCode, error)

	// Update replaces the mutable fields of an existing QR code.
	Update(ctx context.Context, qr *models.QRCode) error

	// Delete removes a QR code. Returns ErrQRCodeNotFound when nothing matched.
	Delete(ctx context.Context, shopDomain string, id uuid.UUID) error

	// ListByShop returns all of a shop's QR codes, newest first.
	ListByShop(ctx context.Context, shopDomain string) ([]*models.QRCode, error)
}
