package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/ghuser/qrcodeapp/pkg/auth"
	"github.com/ghuser/qrcodeapp/pkg/logger"
	"github.com/ghuser/qrcodeapp/pkg/shopify"
	"github.com/ghuser/qrcodeapp/services/qrcode/domain/models"
)

type fakeResolver struct {
	products map[string]shopify.Product
	err      error
	calls    [][]string
	session  shopify.Session
}

func (f *fakeResolver) ProductsByIDs(_ context.Context, s shopify.Session, ids []string) (map[string]shopify.Product, error) {
	f.calls = append(f.calls, append([]string(nil), ids...))
	f.session = s
	if f.err != nil {
		return nil, f.err
	}
	out := make(map[string]shopify.Product)
	for _, id := range ids {
		if p, ok := f.products[id]; ok {
			out[id] = p
		}
	}
	return out, nil
}

var (
	tenantA = auth.Tenant{ShopDomain: "shop-a.myshopify.com", AccessToken: "shpat_a"}
	shirt   = shopify.Product{
		ID:             "gid://shopify/Product/1",
		Title:          "Shirt",
		Handle:         "shirt",
		FirstVariantID: "gid://shopify/ProductVariant/11",
	}
)

func code(dest models.Destination, discount, productID string) *models.QRCode {
	qr := models.NewQRCode(tenantA.ShopDomain, "Poster", productID, dest, discount)
	qr.CreatedAt = time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	return qr
}

func TestDestinationURL(t *testing.T) {
	tests := []struct {
		name    string
		qr      *models.QRCode
		product *shopify.Product
		want    string
	}{
		{"product", code(models.DestinationProduct, "", shirt.ID), &shirt,
			"https://shop-a.myshopify.com/products/shirt"},
		{"product with discount", code(models.DestinationProduct, "SAVE10", shirt.ID), &shirt,
			"https://shop-a.myshopify.com/discount/SAVE10?redirect=/products/shirt"},
		{"checkout", code(models.DestinationCheckout, "", shirt.ID), &shirt,
			"https://shop-a.myshopify.com/cart/11:1"},
		{"checkout with discount", code(models.DestinationCheckout, "SAVE10", shirt.ID), &shirt,
			"https://shop-a.myshopify.com/cart/11:1?discount=SAVE10"},
		{"discount", code(models.DestinationDiscount, "SAVE10", shirt.ID), &shirt,
			"https://shop-a.myshopify.com/discount/SAVE10?redirect=/products/shirt"},
		{"deleted product", code(models.DestinationProduct, "", "gid://shopify/Product/9"), nil,
			"https://shop-a.myshopify.com/"},
		{"deleted product keeps discount", code(models.DestinationDiscount, "SAVE10", "gid://shopify/Product/9"), nil,
			"https://shop-a.myshopify.com/discount/SAVE10?redirect=/"},
		{"deleted product checkout", code(models.DestinationCheckout, "", "gid://shopify/Product/9"), nil,
			"https://shop-a.myshopify.com/"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := DestinationURL(tt.qr, tt.product); got != tt.want {
				t.Errorf("DestinationURL = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFormat_BatchesUniqueProducts(t *testing.T) {
	resolver := &fakeResolver{products: map[string]shopify.Product{shirt.ID: shirt}}
	f := NewFormatter(resolver, nil, "https://app.example.com/", logger.Nop())

	codes := []*models.QRCode{
		code(models.DestinationProduct, "", shirt.ID),
		code(models.DestinationCheckout, "", shirt.ID),
		code(models.DestinationProduct, "", "gid://shopify/Product/9"),
	}
	views, err := f.Format(context.Background(), tenantA, codes)
	if err != nil {
		t.Fatalf("Format: %v", err)
	}

	if len(resolver.calls) != 1 {
		t.Fatalf("expected one remote call, got %d", len(resolver.calls))
	}
	if len(resolver.calls[0]) != 2 {
		t.Fatalf("expected 2 unique ids, got %v", resolver.calls[0])
	}
	if resolver.session.AccessToken != "shpat_a" || resolver.session.ShopDomain != tenantA.ShopDomain {
		t.Errorf("unexpected session %+v", resolver.session)
	}

	if len(views) != 3 {
		t.Fatalf("len(views) = %d", len(views))
	}
	for i, v := range views {
		if v.ID != codes[i].ID.String() {
			t.Errorf("views[%d] out of order", i)
		}
	}
	if views[0].Product.Title != "Shirt" {
		t.Errorf("product title = %q", views[0].Product.Title)
	}
	if views[2].Product.Title != DeletedProductTitle {
		t.Errorf("deleted product title = %q", views[2].Product.Title)
	}
	want := "https://app.example.com/qrcodes/" + codes[0].ID.String() + "/image"
	if views[0].ImageURL != want {
		t.Errorf("ImageURL = %q, want %q", views[0].ImageURL, want)
	}
	if views[0].DiscountCode != nil {
		t.Errorf("expected nil discount code, got %q", *views[0].DiscountCode)
	}
}

func TestFormat_EmptySkipsRemote(t *testing.T) {
	resolver := &fakeResolver{}
	f := NewFormatter(resolver, nil, "https://app.example.com", logger.Nop())

	views, err := f.Format(context.Background(), tenantA, nil)
	if err != nil {
		t.Fatalf("Format: %v", err)
	}
	if views == nil || len(views) != 0 {
		t.Fatalf("expected empty non-nil slice, got %v", views)
	}
	if len(resolver.calls) != 0 {
		t.Fatalf("expected no remote calls, got %d", len(resolver.calls))
	}
}

func TestFormat_MalformedProductIDSkipsRemote(t *testing.T) {
	resolver := &fakeResolver{products: map[string]shopify.Product{shirt.ID: shirt}}
	f := NewFormatter(resolver, nil, "https://app.example.com", logger.Nop())

	codes := []*models.QRCode{
		code(models.DestinationProduct, "", "p1"),
		code(models.DestinationProduct, "", shirt.ID),
	}
	views, err := f.Format(context.Background(), tenantA, codes)
	if err != nil {
		t.Fatalf("Format: %v", err)
	}
	if len(resolver.calls) != 1 || len(resolver.calls[0]) != 1 || resolver.calls[0][0] != shirt.ID {
		t.Fatalf("remote calls = %v, want only %s", resolver.calls, shirt.ID)
	}
	if views[0].Product.Title != DeletedProductTitle {
		t.Errorf("product title = %q, want %q", views[0].Product.Title, DeletedProductTitle)
	}
	if views[0].DestinationURL != "https://"+tenantA.ShopDomain+"/" {
		t.Errorf("DestinationURL = %q", views[0].DestinationURL)
	}
	if views[1].Product.Title != "Shirt" {
		t.Errorf("product title = %q", views[1].Product.Title)
	}

	only := []*models.QRCode{code(models.DestinationProduct, "", "p1")}
	if _, err := f.Format(context.Background(), tenantA, only); err != nil {
		t.Fatalf("Format: %v", err)
	}
	if len(resolver.calls) != 1 {
		t.Fatalf("malformed ids alone must not reach the remote API, calls = %v", resolver.calls)
	}
}

func TestFormat_RemoteErrorFailsBatch(t *testing.T) {
	resolver := &fakeResolver{err: &shopify.APIError{Operation: "ProductsByIDs", StatusCode: 500}}
	f := NewFormatter(resolver, nil, "https://app.example.com", logger.Nop())

	_, err := f.Format(context.Background(), tenantA, []*models.QRCode{code(models.DestinationProduct, "", shirt.ID)})
	if !errors.Is(err, shopify.ErrRemoteAPI) {
		t.Fatalf("expected ErrRemoteAPI, got %v", err)
	}
}

func TestFormatOne(t *testing.T) {
	resolver := &fakeResolver{products: map[string]shopify.Product{shirt.ID: shirt}}
	f := NewFormatter(resolver, nil, "https://app.example.com", logger.Nop())
	qr := code(models.DestinationDiscount, "SAVE10", shirt.ID)
	qr.Scans = 3

	v, err := f.FormatOne(context.Background(), tenantA, qr)
	if err != nil {
		t.Fatalf("FormatOne: %v", err)
	}
	if v.DiscountCode == nil || *v.DiscountCode != "SAVE10" {
		t.Errorf("DiscountCode = %v", v.DiscountCode)
	}
	if v.Scans != 3 || v.Destination != "discount" || v.ShopDomain != tenantA.ShopDomain {
		t.Errorf("unexpected view %+v", v)
	}
	if _, err := uuid.Parse(v.ID); err != nil {
		t.Errorf("ID is not a uuid: %q", v.ID)
	}
}

func TestScanURL(t *testing.T) {
	f := NewFormatter(&fakeResolver{}, nil, "https://app.example.com/", logger.Nop())
	if got := f.ScanURL("abc"); got != "https://app.example.com/qrcodes/abc/scan" {
		t.Errorf("ScanURL = %q", got)
	}
}
