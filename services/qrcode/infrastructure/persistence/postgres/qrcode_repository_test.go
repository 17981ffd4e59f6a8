package postgres

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/ghuser/qrcodeapp/migrations/qrcode"
	"github.com/ghuser/qrcodeapp/pkg/database"
	"github.com/ghuser/qrcodeapp/pkg/logger"
	"github.com/ghuser/qrcodeapp/pkg/migrator"
	qrdomain "github.com/ghuser/qrcodeapp/services/qrcode/domain"
	"github.com/ghuser/qrcodeapp/services/qrcode/domain/models"
	"github.com/ghuser/qrcodeapp/services/qrcode/infrastructure/persistence/postgres/db"
)

func TestRowToQRCode(t *testing.T) {
	created := time.Date(2025, 3, 1, 10, 0, 0, 0, time.FixedZone("EST", -5*3600))
	row := db.QrcodeQrCode{
		ID:           uuid.New(),
		ShopDomain:   "shop-a.myshopify.com",
		Title:        "Poster",
		ProductID:    "gid://shopify/Product/1",
		Destination:  "discount",
		DiscountCode: sql.NullString{String: "SAVE10", Valid: true},
		Scans:        4,
		CreatedAt:    created,
	}

	qr := rowToQRCode(row)
	if qr.Destination != models.DestinationDiscount || qr.DiscountCode != "SAVE10" || qr.Scans != 4 {
		t.Fatalf("unexpected mapping: %+v", qr)
	}
	if qr.CreatedAt.Location() != time.UTC || !qr.CreatedAt.Equal(created) {
		t.Fatalf("CreatedAt = %v, want %v in UTC", qr.CreatedAt, created)
	}
}

func TestNullString(t *testing.T) {
	if ns := nullString(""); ns.Valid {
		t.Fatal("empty string must map to NULL")
	}
	if ns := nullString("X"); !ns.Valid || ns.String != "X" {
		t.Fatalf("unexpected %+v", ns)
	}
}

// Integration tests; skipped unless DATABASE_URL is set.
func TestQRCodeRepositoryIntegration(t *testing.T) {
	url := os.Getenv("DATABASE_URL")
	if url == "" {
		t.Skip("DATABASE_URL not set; skipping integration tests")
	}

	ctx := context.Background()
	pool, err := database.NewPool(ctx, url, logger.Nop())
	if err != nil {
		t.Fatalf("NewPool: %v", err)
	}
	defer pool.Close()
	if err := migrator.Up(ctx, pool.DB(), qrcode.MigrationsFS); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	repo := NewQRCodeRepository(pool, nil)
	shopA := "repo-a-" + uuid.NewString()[:8] + ".myshopify.com"
	shopB := "repo-b-" + uuid.NewString()[:8] + ".myshopify.com"

	qr := models.NewQRCode(shopA, "Poster", "gid://shopify/Product/1", models.DestinationDiscount, "SAVE10")
	if err := repo.Create(ctx, qr); err != nil {
		t.Fatalf("Create: %v", err)
	}

	t.Run("round trip", func(t *testing.T) {
		got, err := repo.GetByID(ctx, shopA, qr.ID)
		if err != nil {
			t.Fatalf("GetByID: %v", err)
		}
		if got.Title != qr.Title || got.DiscountCode != "SAVE10" || !got.CreatedAt.Equal(qr.CreatedAt.Truncate(time.Microsecond)) {
			t.Fatalf("unexpected record %+v", got)
		}
	})

	t.Run("duplicate id", func(t *testing.T) {
		if err := repo.Create(ctx, qr); !errors.Is(err, qrdomain.ErrQRCodeAlreadyExists) {
			t.Fatalf("expected ErrQRCodeAlreadyExists, got %v", err)
		}
	})

	t.Run("tenant isolation", func(t *testing.T) {
		if _, err := repo.GetByID(ctx, shopB, qr.ID); !errors.Is(err, qrdomain.ErrQRCodeNotFound) {
			t.Fatalf("expected ErrQRCodeNotFound for other shop, got %v", err)
		}
		list, err := repo.ListByShop(ctx, shopB)
		if err != nil || len(list) != 0 {
			t.Fatalf("ListByShop(other) = %v, %v", list, err)
		}
		if err := repo.Delete(ctx, shopB, qr.ID); !errors.Is(err, qrdomain.ErrQRCodeNotFound) {
			t.Fatalf("expected ErrQRCodeNotFound deleting as other shop, got %v", err)
		}
	})

	t.Run("update", func(t *testing.T) {
		title := models.Title("Renamed")
		updated := models.QRCodePatch{Title: &title}.Apply(qr)
		if err := repo.Update(ctx, updated); err != nil {
			t.Fatalf("Update: %v", err)
		}
		got, err := repo.GetByID(ctx, shopA, qr.ID)
		if err != nil || got.Title != "Renamed" || got.DiscountCode != "SAVE10" {
			t.Fatalf("after update: %+v, %v", got, err)
		}
	})

	t.Run("delete", func(t *testing.T) {
		if err := repo.Delete(ctx, shopA, qr.ID); err != nil {
			t.Fatalf("Delete: %v", err)
		}
		if _, err := repo.GetByID(ctx, shopA, qr.ID); !errors.Is(err, qrdomain.ErrQRCodeNotFound) {
			t.Fatalf("expected ErrQRCodeNotFound after delete, got %v", err)
		}
		if err := repo.Delete(ctx, shopA, qr.ID); !errors.Is(err, qrdomain.ErrQRCodeNotFound) {
			t.Fatalf("second delete: expected ErrQRCodeNotFound, got %v", err)
		}
	})
}
