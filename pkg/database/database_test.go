package database

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"testing"

	"github.com/ghuser/qrcodeapp/pkg/logger"
)

func TestNewPool_InvalidURL(t *testing.T) {
	_, err := NewPool(context.Background(), "postgres://nobody@127.0.0.1:1/none?sslmode=disable&connect_timeout=1", logger.Nop())
	if err == nil {
		t.Fatal("expected error for unreachable database, got nil")
	}
}

// Integration tests; skipped unless DATABASE_URL is set.
func TestDatabaseIntegration(t *testing.T) {
	url := os.Getenv("DATABASE_URL")
	if url == "" {
		t.Skip("DATABASE_URL not set; skipping integration tests")
	}

	ctx := context.Background()
	d, err := NewPool(ctx, url, logger.Nop())
	if err != nil {
		t.Fatalf("NewPool: %v", err)
	}
	defer d.Close()

	t.Run("Ping", func(t *testing.T) {
		if err := d.Ping(ctx); err != nil {
			t.Fatalf("Ping: %v", err)
		}
	})

	t.Run("WithTx_ReturnsCallbackError", func(t *testing.T) {
		sentinel := errors.New("boom")
		err := d.WithTx(ctx, func(tx *sql.Tx) error {
			if _, err := tx.ExecContext(ctx, `SELECT 1`); err != nil {
				return err
			}
			return sentinel
		})
		if !errors.Is(err, sentinel) {
			t.Fatalf("expected sentinel error, got %v", err)
		}
	})

	t.Run("WithTx_Commits", func(t *testing.T) {
		var n int
		err := d.WithTx(ctx, func(tx *sql.Tx) error {
			return tx.QueryRowContext(ctx, `SELECT 41 + 1`).Scan(&n)
		})
		if err != nil || n != 42 {
			t.Fatalf("WithTx = %d, %v", n, err)
		}
	})
}
