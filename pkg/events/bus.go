// Package events is the transactional outbox and pub/sub transport for domain
// events, built on Watermill's PostgreSQL backend.
//
// Writers publish inside their database transaction (PublishTx), so an event
// exists only if the change it describes was committed. With the forwarder
// enabled those messages land in one internal queue and a background
// forwarder relays them to their topics.
//
// Subscribers in the same consumer group share the work; each message is
// handled by one instance. Handlers must be idempotent: a failing handler is
// retried with backoff, then the message is nacked and redelivered.
//
// Trace context travels in message metadata, so a handler's span joins the
// trace of the request that caused the event.
package events

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	watermillsql "github.com/ThreeDotsLabs/watermill-sql/v3/pkg/sql"
	"github.com/ThreeDotsLabs/watermill/components/forwarder"
	"github.com/ThreeDotsLabs/watermill/message"

	"github.com/ghuser/qrcodeapp/pkg/logger"
)

const (
	shutdownTimeout = 30 * time.Second
	forwarderTopic  = "_forwarder_queue"
	forwarderGroup  = "forwarder-consumer"
)

// Options configures an EventBus.
type Options struct {
	// ConsumerGroup names the group Subscribe joins. Required for subscribers.
	ConsumerGroup string
	// Forwarder routes every publish through the internal outbox queue.
	// The process that publishes must also call StartForwarder.
	Forwarder bool
}

// EventBus publishes and consumes domain events over PostgreSQL.
// It borrows the caller's *sql.DB and never closes it.
type EventBus struct {
	db        *sql.DB
	opts      Options
	log       logger.Logger
	publisher message.Publisher
	retry     retryPolicy

	mu         sync.Mutex
	subscriber *watermillsql.Subscriber
	fwd        *forwarder.Forwarder
	wg         sync.WaitGroup
}

// New builds an EventBus on db. Watermill creates its tables on first use.
func New(db *sql.DB, opts Options, log logger.Logger) (*EventBus, error) {
	pub, err := newPublisher(db, true, log)
	if err != nil {
		return nil, fmt.Errorf("events: new publisher: %w", err)
	}

	var publisher message.Publisher = pub
	if opts.Forwarder {
		publisher = forwarder.NewPublisher(pub, forwarder.PublisherConfig{ForwarderTopic: forwarderTopic})
	}

	return &EventBus{
		db:        db,
		opts:      opts,
		log:       log,
		publisher: publisher,
		retry:     defaultRetry,
	}, nil
}

func newPublisher(db watermillsql.ContextExecutor, initSchema bool, log logger.Logger) (*watermillsql.Publisher, error) {
	return watermillsql.NewPublisher(
		db,
		watermillsql.PublisherConfig{
			SchemaAdapter:        watermillsql.DefaultPostgreSQLSchema{},
			AutoInitializeSchema: initSchema,
		},
		&slogAdapter{log: log},
	)
}

func newSubscriber(db *sql.DB, group string, log logger.Logger) (*watermillsql.Subscriber, error) {
	return watermillsql.NewSubscriber(
		db,
		watermillsql.SubscriberConfig{
			SchemaAdapter:    watermillsql.DefaultPostgreSQLSchema{},
			OffsetsAdapter:   watermillsql.DefaultPostgreSQLOffsetsAdapter{},
			InitializeSchema: true,
			ConsumerGroup:    group,
		},
		&slogAdapter{log: log},
	)
}

// StartForwarder runs the outbox relay until ctx ends or the bus is closed.
// It returns once the relay is consuming.
func (q *EventBus) StartForwarder(ctx context.Context) error {
	if !q.opts.Forwarder {
		return errors.New("events: StartForwarder called on non-forwarder EventBus")
	}

	q.mu.Lock()
	if q.fwd != nil {
		q.mu.Unlock()
		return errors.New("events: forwarder already started")
	}

	fwdSub, err := newSubscriber(q.db, forwarderGroup, q.log)
	if err != nil {
		q.mu.Unlock()
		return fmt.Errorf("events: new forwarder subscriber: %w", err)
	}
	targetPub, err := newPublisher(q.db, true, q.log)
	if err != nil {
		q.mu.Unlock()
		_ = fwdSub.Close()
		return fmt.Errorf("events: new forwarder target publisher: %w", err)
	}
	fwd, err := forwarder.NewForwarder(fwdSub, targetPub, &slogAdapter{log: q.log}, forwarder.Config{
		ForwarderTopic: forwarderTopic,
	})
	if err != nil {
		q.mu.Unlock()
		_ = targetPub.Close()
		_ = fwdSub.Close()
		return fmt.Errorf("events: create forwarder: %w", err)
	}
	q.fwd = fwd
	q.mu.Unlock()

	q.wg.Add(1)
	go func() {
		defer q.wg.Done()
		q.log.InfoContext(ctx, "events: forwarder started")
		if err := fwd.Run(ctx); err != nil {
			q.log.ErrorContext(ctx, "events: forwarder stopped with error", "error", err)
			return
		}
		q.log.InfoContext(ctx, "events: forwarder stopped")
	}()

	select {
	case <-fwd.Running():
		return nil
	case <-ctx.Done():
		return fmt.Errorf("events: context cancelled waiting for forwarder: %w", ctx.Err())
	}
}

// Ping reports whether the event store is reachable.
func (q *EventBus) Ping(ctx context.Context) error {
	if err := q.db.PingContext(ctx); err != nil {
		return fmt.Errorf("events: ping db: %w", err)
	}
	return nil
}

// Close stops consuming, waits for in-flight handlers (bounded by
// shutdownTimeout) and closes the publisher. The database stays open.
func (q *EventBus) Close() error {
	q.mu.Lock()
	sub, fwd := q.subscriber, q.fwd
	q.mu.Unlock()

	var errs []error
	if sub != nil {
		if err := sub.Close(); err != nil {
			errs = append(errs, fmt.Errorf("events: close subscriber: %w", err))
		}
	}
	if fwd != nil {
		if err := fwd.Close(); err != nil {
			errs = append(errs, fmt.Errorf("events: close forwarder: %w", err))
		}
	}

	done := make(chan struct{})
	go func() {
		q.wg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(shutdownTimeout):
		q.log.Error("events: timed out waiting for in-flight handlers to complete")
	}

	if err := q.publisher.Close(); err != nil {
		errs = append(errs, fmt.Errorf("events: close publisher: %w", err))
	}
	return errors.Join(errs...)
}
