package models

import (
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestNewQRCode(t *testing.T) {
	before := time.Now().UTC()
	qr := NewQRCode("shop-a.myshopify.com", "Poster", "gid://shopify/Product/1", DestinationProduct, "")
	after := time.Now().UTC()

	if qr.ID == uuid.Nil {
		t.Fatal("expected non-zero UUID for ID")
	}
	if qr.ShopDomain != "shop-a.myshopify.com" {
		t.Fatalf("unexpected ShopDomain %q", qr.ShopDomain)
	}
	if qr.CreatedAt.Before(before) || qr.CreatedAt.After(after) {
		t.Fatalf("CreatedAt %v not between %v and %v", qr.CreatedAt, before, after)
	}
	if qr.CreatedAt.Location() != time.UTC {
		t.Fatalf("expected UTC CreatedAt, got %v", qr.CreatedAt.Location())
	}
	if qr.Scans != 0 {
		t.Fatalf("expected zero scans, got %d", qr.Scans)
	}

	other := NewQRCode("shop-a.myshopify.com", "Poster", "gid://shopify/Product/1", DestinationProduct, "")
	if qr.ID == other.ID {
		t.Fatal("expected unique IDs, got identical")
	}
}

func TestQRCodePatch_Apply(t *testing.T) {
	base := &QRCode{
		ID:           uuid.New(),
		ShopDomain:   "shop-a.myshopify.com",
		Title:        "Old",
		ProductID:    "gid://shopify/Product/1",
		Destination:  DestinationDiscount,
		DiscountCode: "SAVE10",
		CreatedAt:    time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
		Scans:        7,
	}

	title := Title("New")
	dest := DestinationCheckout
	empty := ""

	tests := []struct {
		name  string
		patch QRCodePatch
		check func(t *testing.T, got *QRCode)
	}{
		{
			name:  "empty patch keeps everything",
			patch: QRCodePatch{},
			check: func(t *testing.T, got *QRCode) {
				if *got != *base {
					t.Fatalf("expected unchanged copy, got %+v", got)
				}
			},
		},
		{
			name:  "title only",
			patch: QRCodePatch{Title: &title},
			check: func(t *testing.T, got *QRCode) {
				if got.Title != "New" || got.ProductID != base.ProductID || got.DiscountCode != "SAVE10" {
					t.Fatalf("unexpected result %+v", got)
				}
			},
		},
		{
			name:  "destination and cleared discount",
			patch: QRCodePatch{Destination: &dest, DiscountCode: &empty},
			check: func(t *testing.T, got *QRCode) {
				if got.Destination != DestinationCheckout || got.DiscountCode != "" || got.Title != "Old" {
					t.Fatalf("unexpected result %+v", got)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.patch.Apply(base)
			if got == base {
				t.Fatal("Apply must return a copy")
			}
			if got.ID != base.ID || got.ShopDomain != base.ShopDomain || !got.CreatedAt.Equal(base.CreatedAt) || got.Scans != base.Scans {
				t.Fatalf("immutable fields changed: %+v", got)
			}
			tt.check(t, got)
		})
	}

	if base.Title != "Old" {
		t.Fatal("Apply mutated the original")
	}
}

func TestQRCodePatch_Empty(t *testing.T) {
	if !(QRCodePatch{}).Empty() {
		t.Fatal("zero patch should be empty")
	}
	code := "X"
	if (QRCodePatch{DiscountCode: &code}).Empty() {
		t.Fatal("patch with a field should not be empty")
	}
}
