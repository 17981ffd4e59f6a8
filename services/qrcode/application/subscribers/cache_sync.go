// Package subscribers holds the qrcode context's event consumers.
package subscribers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/google/uuid"

	pkgcache "github.com/ghuser/qrcodeapp/pkg/cache"
	"github.com/ghuser/qrcodeapp/pkg/logger"
	appsvcs "github.com/ghuser/qrcodeapp/services/qrcode/application/services"
	"github.com/ghuser/qrcodeapp/services/qrcode/domain"
	qrevents "github.com/ghuser/qrcodeapp/services/qrcode/domain/events"
	"github.com/ghuser/qrcodeapp/services/qrcode/domain/repositories"
)

// ReadModel is the cache the subscriber keeps in step with the store.
// *cache.QRCodeCache satisfies it.
type ReadModel interface {
	Set(ctx context.Context, qr *pkgcache.CachedQRCode) error
	Delete(ctx context.Context, shopDomain string, id uuid.UUID) error
}

// Subscriber is the subset of events.EventBus used to register handlers.
type Subscriber interface {
	Subscribe(ctx context.Context, topic string, handler func(context.Context, *message.Message) error) (<-chan error, error)
}

// CacheSync refreshes cached QR codes from the store whenever one changes.
// Topics are consumed independently, so change events re-read the store
// instead of trusting the payload: a late qrcode.updated must not bring a
// deleted code back into the cache.
type CacheSync struct {
	repo  repositories.QRCodeRepository
	cache ReadModel
	log   logger.Logger
}

func NewCacheSync(repo repositories.QRCodeRepository, cache ReadModel, log logger.Logger) *CacheSync {
	return &CacheSync{repo: repo, cache: cache, log: log}
}

// Register subscribes to every qrcode topic and drains subscriber errors
// in the background.
func (s *CacheSync) Register(ctx context.Context, bus Subscriber) error {
	handlers := map[string]func(context.Context, *message.Message) error{
		qrevents.TopicQRCodeCreated: s.HandleChanged,
		qrevents.TopicQRCodeUpdated: s.HandleChanged,
		qrevents.TopicQRCodeDeleted: s.HandleDeleted,
	}
	for topic, handler := range handlers {
		errCh, err := bus.Subscribe(ctx, topic, handler)
		if err != nil {
			return fmt.Errorf("subscribe %s: %w", topic, err)
		}
		go func() {
			for err := range errCh {
				s.log.ErrorContext(ctx, "subscriber error", "topic", topic, "error", err)
			}
		}()
	}
	return nil
}

// HandleChanged handles qrcode.created and qrcode.updated.
// Malformed payloads are dropped; retrying cannot fix them.
func (s *CacheSync) HandleChanged(ctx context.Context, msg *message.Message) error {
	var evt qrevents.QRCodeChangedEvent
	if err := json.Unmarshal(msg.Payload, &evt); err != nil {
		s.log.ErrorContext(ctx, "dropping malformed qr code event", "message_uuid", msg.UUID, "error", err)
		return nil
	}

	qr, err := s.repo.GetByID(ctx, evt.ShopDomain, evt.QRCodeID)
	switch {
	case errors.Is(err, domain.ErrQRCodeNotFound):
		s.evict(ctx, evt.ShopDomain, evt.QRCodeID)
		return nil
	case err != nil:
		return fmt.Errorf("reload qr code %s: %w", evt.QRCodeID, err)
	}

	if err := s.cache.Set(ctx, appsvcs.ToCached(qr)); err != nil {
		// Cache warming is best-effort; log but do not fail the handler.
		s.log.WarnContext(ctx, "cache warm failed", "qrcode_id", qr.ID, "error", err)
		return nil
	}
	s.log.InfoContext(ctx, "cache warmed", "qrcode_id", qr.ID, "shop", qr.ShopDomain)
	return nil
}

// HandleDeleted handles qrcode.deleted.
func (s *CacheSync) HandleDeleted(ctx context.Context, msg *message.Message) error {
	var evt qrevents.QRCodeDeletedEvent
	if err := json.Unmarshal(msg.Payload, &evt); err != nil {
		s.log.ErrorContext(ctx, "dropping malformed qr code event", "message_uuid", msg.UUID, "error", err)
		return nil
	}
	s.evict(ctx, evt.ShopDomain, evt.QRCodeID)
	return nil
}

func (s *CacheSync) evict(ctx context.Context, shopDomain string, id uuid.UUID) {
	if err := s.cache.Delete(ctx, shopDomain, id); err != nil {
		s.log.WarnContext(ctx, "cache evict failed", "qrcode_id", id, "error", err)
		return
	}
	s.log.InfoContext(ctx, "cache evicted", "qrcode_id", id, "shop", shopDomain)
}
