package models

import (
	"time"

	"github.com/google/uuid"
)

// QRCode is the core aggregate for this bounded context.
type QRCode struct {
	ID           uuid.UUID
	ShopDomain   string // tenant scope; always filter by this in queries
	Title        Title
	ProductID    string // remote product GID, opaque here
	Destination  Destination
	DiscountCode string
	CreatedAt    time.Time
	Scans        int // maintained by the scan endpoint, read-only here
}

// NewQRCode constructs a QRCode with a generated ID and the current UTC time.
// Field rules are enforced by services.ValidateQRCode.
func NewQRCode(shopDomain string, title Title, productID string, destination Destination, discountCode string) *QRCode {
	return &QRCode{
		ID:           uuid.New(),
		ShopDomain:   shopDomain,
		Title:        title,
		ProductID:    productID,
		Destination:  destination,
		DiscountCode: discountCode,
		CreatedAt:    time.Now().UTC(),
	}
}

// QRCodePatch is a partial update. Nil fields keep their current value.
type QRCodePatch struct {
	Title        *Title
	ProductID    *string
	Destination  *Destination
	DiscountCode *string
}

// Empty reports whether the patch changes nothing.
func (p QRCodePatch) Empty() bool {
	return p.Title == nil && p.ProductID == nil && p.Destination == nil && p.DiscountCode == nil
}

// Apply returns a copy of qr with the patch applied. Identity fields,
// CreatedAt and Scans are never touched.
func (p QRCodePatch) Apply(qr *QRCode) *QRCode {
	next := *qr
	if p.Title != nil {
		next.Title = *p.Title
	}
	if p.ProductID != nil {
		next.ProductID = *p.ProductID
	}
	if p.Destination != nil {
		next.Destination = *p.Destination
	}
	if p.DiscountCode != nil {
		next.DiscountCode = *p.DiscountCode
	}
	return &next
}
