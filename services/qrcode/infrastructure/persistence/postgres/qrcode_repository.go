package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/ghuser/qrcodeapp/pkg/database"
	"github.com/ghuser/qrcodeapp/pkg/events"
	qrdomain "github.com/ghuser/qrcodeapp/services/qrcode/domain"
	domainevents "github.com/ghuser/qrcodeapp/services/qrcode/domain/events"
	"github.com/ghuser/qrcodeapp/services/qrcode/domain/models"
	"github.com/ghuser/qrcodeapp/services/qrcode/infrastructure/persistence/postgres/db"
)

const pgUniqueViolation = "23505"

// QRCodeRepository implements repositories.QRCodeRepository against PostgreSQL.
type QRCodeRepository struct {
	db  *database.Database
	bus *events.EventBus
	now func() time.Time
}

// NewQRCodeRepository returns a QRCodeRepository backed by the given pool and
// event bus. Writes publish qrcode.* events in the same transaction; a nil bus
// disables publishing.
func NewQRCodeRepository(database *database.Database, bus *events.EventBus) *QRCodeRepository {
	return &QRCodeRepository{db: database, bus: bus, now: time.Now}
}

// Create persists a new QR code and publishes a created event.
// Returns ErrQRCodeAlreadyExists on primary key violations.
func (r *QRCodeRepository) Create(ctx context.Context, qr *models.QRCode) error {
	return r.db.WithTx(ctx, func(tx *sql.Tx) error {
		q := db.New(tx)
		if err := q.InsertQRCode(ctx, db.InsertQRCodeParams{
			ID:           qr.ID,
			ShopDomain:   qr.ShopDomain,
			Title:        qr.Title.String(),
			ProductID:    qr.ProductID,
			Destination:  qr.Destination.String(),
			DiscountCode: nullString(qr.DiscountCode),
			CreatedAt:    qr.CreatedAt,
		}); err != nil {
			var pgErr *pgconn.PgError
			if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
				return qrdomain.ErrQRCodeAlreadyExists
			}
			return fmt.Errorf("insert qr code: %w", err)
		}

		return r.publish(ctx, tx, domainevents.TopicQRCodeCreated, func() (string, any) {
			evt := domainevents.NewQRCodeChangedEvent(qr, r.now())
			return evt.EventID.String(), evt
		})
	})
}

// GetByID retrieves a QR code owned by shopDomain. Returns ErrQRCodeNotFound if not found.
func (r *QRCodeRepository) GetByID(ctx context.Context, shopDomain string, id uuid.UUID) (*models.QRCode, error) {
	q := db.New(r.db.DB())
	row, err := q.GetQRCodeByID(ctx, db.GetQRCodeByIDParams{
		ID:         id,
		ShopDomain: shopDomain,
	})
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, qrdomain.ErrQRCodeNotFound
		}
		return nil, fmt.Errorf("query qr code: %w", err)
	}
	return rowToQRCode(row), nil
}

// ListByShop returns every QR code owned by shopDomain, newest first.
func (r *QRCodeRepository) ListByShop(ctx context.Context, shopDomain string) ([]*models.QRCode, error) {
	q := db.New(r.db.DB())
	rows, err := q.ListQRCodesByShop(ctx, shopDomain)
	if err != nil {
		return nil, fmt.Errorf("query qr codes: %w", err)
	}

	out := make([]*models.QRCode, len(rows))
	for i, row := range rows {
		out[i] = rowToQRCode(row)
	}
	return out, nil
}

// Update replaces the mutable fields of an existing QR code and publishes an
// updated event carrying the stored state.
func (r *QRCodeRepository) Update(ctx context.Context, qr *models.QRCode) error {
	return r.db.WithTx(ctx, func(tx *sql.Tx) error {
		q := db.New(tx)
		row, err := q.UpdateQRCode(ctx, db.UpdateQRCodeParams{
			ID:           qr.ID,
			ShopDomain:   qr.ShopDomain,
			Title:        qr.Title.String(),
			ProductID:    qr.ProductID,
			Destination:  qr.Destination.String(),
			DiscountCode: nullString(qr.DiscountCode),
		})
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return qrdomain.ErrQRCodeNotFound
			}
			return fmt.Errorf("update qr code: %w", err)
		}

		stored := rowToQRCode(row)
		return r.publish(ctx, tx, domainevents.TopicQRCodeUpdated, func() (string, any) {
			evt := domainevents.NewQRCodeChangedEvent(stored, r.now())
			return evt.EventID.String(), evt
		})
	})
}

// Delete removes a QR code owned by shopDomain and publishes a deleted event.
func (r *QRCodeRepository) Delete(ctx context.Context, shopDomain string, id uuid.UUID) error {
	return r.db.WithTx(ctx, func(tx *sql.Tx) error {
		q := db.New(tx)
		if _, err := q.DeleteQRCode(ctx, db.DeleteQRCodeParams{
			ID:         id,
			ShopDomain: shopDomain,
		}); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return qrdomain.ErrQRCodeNotFound
			}
			return fmt.Errorf("delete qr code: %w", err)
		}

		return r.publish(ctx, tx, domainevents.TopicQRCodeDeleted, func() (string, any) {
			evt := domainevents.QRCodeDeletedEvent{
				EventID:    uuid.New(),
				Version:    1,
				QRCodeID:   id,
				ShopDomain: shopDomain,
				OccurredAt: r.now().UTC(),
			}
			return evt.EventID.String(), evt
		})
	})
}

func (r *QRCodeRepository) publish(ctx context.Context, tx *sql.Tx, topic string, build func() (string, any)) error {
	if r.bus == nil {
		return nil
	}
	eventID, event := build()
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal %s event: %w", topic, err)
	}
	if err := r.bus.PublishTx(ctx, tx, topic, events.NewMessage(eventID, 1, payload)); err != nil {
		return fmt.Errorf("publish %s: %w", topic, err)
	}
	return nil
}

// rowToQRCode maps a db.QrcodeQrCode to a domain models.QRCode.
func rowToQRCode(row db.QrcodeQrCode) *models.QRCode {
	return &models.QRCode{
		ID:           row.ID,
		ShopDomain:   row.ShopDomain,
		Title:        models.Title(row.Title),
		ProductID:    row.ProductID,
		Destination:  models.Destination(row.Destination),
		DiscountCode: row.DiscountCode.String,
		CreatedAt:    row.CreatedAt.UTC(),
		Scans:        int(row.Scans),
	}
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
