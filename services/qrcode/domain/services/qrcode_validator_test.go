package services

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/ghuser/qrcodeapp/services/qrcode/domain"
	"github.com/ghuser/qrcodeapp/services/qrcode/domain/models"
)

func validQRCode() *models.QRCode {
	return models.NewQRCode("shop-a.myshopify.com", "Poster", "gid://shopify/Product/1", models.DestinationProduct, "")
}

func TestValidateQRCode(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*models.QRCode)
		wantField string
	}{
		{"valid product", func(*models.QRCode) {}, ""},
		{"valid discount", func(q *models.QRCode) {
			q.Destination = models.DestinationDiscount
			q.DiscountCode = "SAVE10"
		}, ""},
		{"checkout with code", func(q *models.QRCode) {
			q.Destination = models.DestinationCheckout
			q.DiscountCode = "SAVE10"
		}, ""},
		{"nil id", func(q *models.QRCode) { q.ID = uuid.Nil }, "id"},
		{"missing shop", func(q *models.QRCode) { q.ShopDomain = "" }, "shopDomain"},
		{"empty title", func(q *models.QRCode) { q.Title = "" }, "title"},
		{"blank title", func(q *models.QRCode) { q.Title = "   " }, "title"},
		{"long title", func(q *models.QRCode) { q.Title = models.Title(strings.Repeat("x", 256)) }, "title"},
		{"control character", func(q *models.QRCode) { q.Title = "bad\x00title" }, "title"},
		{"missing product", func(q *models.QRCode) { q.ProductID = "" }, "productId"},
		{"unknown destination", func(q *models.QRCode) { q.Destination = "homepage" }, "destination"},
		{"discount without code", func(q *models.QRCode) { q.Destination = models.DestinationDiscount }, "discountCode"},
		{"code with slash", func(q *models.QRCode) { q.DiscountCode = "A/B" }, "discountCode"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			qr := validQRCode()
			tt.mutate(qr)

			err := ValidateQRCode(qr)
			if tt.wantField == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if !errors.Is(err, domain.ErrInvalidQRCode) {
				t.Fatalf("expected ErrInvalidQRCode, got %v", err)
			}
			var ve *domain.ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("expected *ValidationError, got %T", err)
			}
			if _, ok := ve.Fields[tt.wantField]; !ok {
				t.Fatalf("expected %s field error, got %v", tt.wantField, ve.Fields)
			}
		})
	}
}

func TestValidateQRCode_Nil(t *testing.T) {
	if err := ValidateQRCode(nil); !errors.Is(err, domain.ErrInvalidQRCode) {
		t.Fatalf("expected ErrInvalidQRCode, got %v", err)
	}
}

func TestValidateQRCode_PatchedRecord(t *testing.T) {
	dest := models.DestinationDiscount
	patched := models.QRCodePatch{Destination: &dest}.Apply(validQRCode())

	var ve *domain.ValidationError
	if err := ValidateQRCode(patched); !errors.As(err, &ve) || ve.Fields["discountCode"] == "" {
		t.Fatalf("switching to discount without a code must fail, got %v", err)
	}
}
