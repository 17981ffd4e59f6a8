package events

import (
	"context"
	"fmt"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/ghuser/qrcodeapp/pkg/logger"
)

const instrumentationName = "github.com/ghuser/qrcodeapp/pkg/events"

type retryPolicy struct {
	attempts  int
	baseDelay time.Duration
}

var defaultRetry = retryPolicy{attempts: 3, baseDelay: time.Second}

// Subscribe consumes topic in the bus's consumer group until ctx ends or the
// bus is closed. Each message is handled in its own span, restored from the
// publisher's trace.
//
// A handler error is retried with exponential backoff (1s, 2s). When every
// attempt fails the message is nacked for redelivery and the error is sent
// on the returned channel, which callers must drain:
//
//	errCh, err := bus.Subscribe(ctx, topic, handler)
//	go func() { for err := range errCh { log.ErrorContext(ctx, "subscriber error", "error", err) } }()
func (q *EventBus) Subscribe(ctx context.Context, topic string, handler func(context.Context, *message.Message) error) (<-chan error, error) {
	sub, err := q.sharedSubscriber()
	if err != nil {
		return nil, err
	}
	ch, err := sub.Subscribe(ctx, topic)
	if err != nil {
		return nil, fmt.Errorf("events: subscribe to %s: %w", topic, err)
	}

	handled, err := otel.Meter(instrumentationName).Int64Counter("events.handled",
		metric.WithDescription("Domain event messages handled, by topic and outcome"))
	if err != nil {
		return nil, fmt.Errorf("events: create counter: %w", err)
	}
	tracer := otel.Tracer(instrumentationName)

	errCh := make(chan error, 100)
	q.wg.Add(1)
	go func() {
		defer q.wg.Done()
		defer close(errCh)

		for msg := range ch {
			msgCtx, span := tracer.Start(extractTrace(ctx, msg), "events.handle "+topic,
				trace.WithSpanKind(trace.SpanKindConsumer),
				trace.WithAttributes(
					attribute.String("messaging.destination.name", topic),
					attribute.String("messaging.message.id", msg.UUID),
					attribute.String("event.id", msg.Metadata.Get(MetadataEventID)),
				))

			err := q.retry.run(msgCtx, msg, handler, q.log)
			outcome := "ack"
			if err != nil {
				outcome = "nack"
				span.RecordError(err)
				span.SetStatus(codes.Error, err.Error())
				msg.Nack()
				select {
				case errCh <- err:
				default:
					q.log.ErrorContext(msgCtx, "events: error channel full, dropping error", "error", err, "topic", topic)
				}
			} else {
				msg.Ack()
			}
			handled.Add(msgCtx, 1, metric.WithAttributes(
				attribute.String("topic", topic),
				attribute.String("outcome", outcome),
			))
			span.End()
		}
	}()

	return errCh, nil
}

// sharedSubscriber creates the consumer-group subscriber on first use, so
// publish-only processes never poll.
func (q *EventBus) sharedSubscriber() (message.Subscriber, error) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.subscriber != nil {
		return q.subscriber, nil
	}
	if q.opts.ConsumerGroup == "" {
		return nil, fmt.Errorf("events: consumer group is required to subscribe")
	}
	sub, err := newSubscriber(q.db, q.opts.ConsumerGroup, q.log)
	if err != nil {
		return nil, fmt.Errorf("events: new subscriber: %w", err)
	}
	q.subscriber = sub
	return sub, nil
}

// run calls handler until it succeeds, attempts are exhausted or ctx ends.
func (p retryPolicy) run(ctx context.Context, msg *message.Message, handler func(context.Context, *message.Message) error, log logger.Logger) error {
	delay := p.baseDelay
	var err error
	for attempt := 1; attempt <= p.attempts; attempt++ {
		if err = handler(ctx, msg); err == nil {
			return nil
		}
		if attempt == p.attempts {
			break
		}
		log.WarnContext(ctx, "events: handler failed, retrying",
			"attempt", attempt,
			"max_attempts", p.attempts,
			"next_delay", delay,
			"error", err,
		)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(delay):
		}
		delay *= 2
	}
	return fmt.Errorf("events: handler failed after %d attempts: %w", p.attempts, err)
}
