package events

import (
	"time"

	"github.com/google/uuid"

	"github.com/ghuser/qrcodeapp/services/qrcode/domain/models"
)

// Watermill topics published by the QR code repository.
const (
	TopicQRCodeCreated = "qrcode.created"
	TopicQRCodeUpdated = "qrcode.updated"
	TopicQRCodeDeleted = "qrcode.deleted"
)

// QRCodeChangedEvent is published after a QR code is created or updated.
// It carries the full stored state so consumers can rebuild read models.
type QRCodeChangedEvent struct {
	EventID      uuid.UUID `json:"event_id"` // Unique publish-time identifier for deduplication
	Version      int       `json:"version"`  // Schema version; increment on breaking changes
	QRCodeID     uuid.UUID `json:"qrcode_id"`
	ShopDomain   string    `json:"shop_domain"`
	Title        string    `json:"title"`
	ProductID    string    `json:"product_id"`
	Destination  string    `json:"destination"`
	DiscountCode string    `json:"discount_code,omitempty"`
	Scans        int       `json:"scans"`
	CreatedAt    time.Time `json:"created_at"`
	OccurredAt   time.Time `json:"occurred_at"`
}

// QRCodeDeletedEvent is published after a QR code is removed.
type QRCodeDeletedEvent struct {
	EventID    uuid.UUID `json:"event_id"`
	Version    int       `json:"version"`
	QRCodeID   uuid.UUID `json:"qrcode_id"`
	ShopDomain string    `json:"shop_domain"`
	OccurredAt time.Time `json:"occurred_at"`
}

// NewQRCodeChangedEvent snapshots qr into a version 1 change event.
func NewQRCodeChangedEvent(qr *models.QRCode, occurredAt time.Time) QRCodeChangedEvent {
	return QRCodeChangedEvent{
		EventID:      uuid.New(),
		Version:      1,
		QRCodeID:     qr.ID,
		ShopDomain:   qr.ShopDomain,
		Title:        qr.Title.String(),
		ProductID:    qr.ProductID,
		Destination:  qr.Destination.String(),
		DiscountCode: qr.DiscountCode,
		Scans:        qr.Scans,
		CreatedAt:    qr.CreatedAt,
		OccurredAt:   occurredAt.UTC(),
	}
}

// QRCode rebuilds the aggregate state carried by the event.
func (e QRCodeChangedEvent) QRCode() *models.QRCode {
	return &models.QRCode{
		ID:           e.QRCodeID,
		ShopDomain:   e.ShopDomain,
		Title:        models.Title(e.Title),
		ProductID:    e.ProductID,
		Destination:  models.Destination(e.Destination),
		DiscountCode: e.DiscountCode,
		Scans:        e.Scans,
		CreatedAt:    e.CreatedAt,
	}
}
