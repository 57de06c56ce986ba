// Package events provides a PostgreSQL-backed pub/sub EventBus built on Watermill.
//
// All instances sharing a consumer group split the messages of a topic between
// them; each message is processed by one instance.
//
// Handlers should be idempotent. A failing handler is retried up to 3 times
// with exponential backoff before the message is Nacked for redelivery.
// Errors wrapped with Permanent skip the retries and the message is Acked:
// a payload that failed validation will fail the same way on every delivery,
// so it is reported on the error channel and dropped.
//
// Trace context is injected into message metadata on publish and extracted
// on subscribe.
package events

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	watermillsql "github.com/ThreeDotsLabs/watermill-sql/v3/pkg/sql"
	"github.com/ThreeDotsLabs/watermill/message"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"

	"github.com/ghuser/boundedstr/pkg/logger"
)

const (
	maxRetries      = 3
	retryBaseDelay  = time.Second
	shutdownTimeout = 30 * time.Second
)

// ErrPermanent marks a handler failure that retrying cannot fix.
var ErrPermanent = errors.New("permanent failure")

// Permanent wraps err so the bus reports it and Acks the message without
// retrying or redelivering it.
func Permanent(err error) error {
	return fmt.Errorf("%w: %w", ErrPermanent, err)
}

// Handler processes one message. ctx carries the publisher's trace.
type Handler func(ctx context.Context, msg *message.Message) error

// EventBus is a PostgreSQL-backed pub/sub EventBus built on Watermill's SQL
// transport. It uses FOR UPDATE SKIP LOCKED under the hood for concurrent-safe
// delivery.
type EventBus struct {
	publisher  message.Publisher
	subscriber message.Subscriber
	db         *sql.DB
	log        logger.Logger
	wg         sync.WaitGroup
}

// NewEventBus initializes a Watermill SQL publisher and subscriber on db.
// Schema tables are created automatically on first use. db is owned by the
// caller and is not closed by Close.
func NewEventBus(db *sql.DB, consumerGroup string, log logger.Logger) (*EventBus, error) {
	wlog := &slogAdapter{log: log}

	pub, err := watermillsql.NewPublisher(
		db,
		watermillsql.PublisherConfig{
			SchemaAdapter:        watermillsql.DefaultPostgreSQLSchema{},
			AutoInitializeSchema: true,
		},
		wlog,
	)
	if err != nil {
		return nil, fmt.Errorf("events: new publisher: %w", err)
	}

	sub, err := watermillsql.NewSubscriber(
		db,
		watermillsql.SubscriberConfig{
			SchemaAdapter:    watermillsql.DefaultPostgreSQLSchema{},
			OffsetsAdapter:   watermillsql.DefaultPostgreSQLOffsetsAdapter{},
			InitializeSchema: true,
			ConsumerGroup:    consumerGroup,
		},
		wlog,
	)
	if err != nil {
		_ = pub.Close()
		return nil, fmt.Errorf("events: new subscriber: %w", err)
	}

	return newEventBus(pub, sub, db, log), nil
}

func newEventBus(pub message.Publisher, sub message.Subscriber, db *sql.DB, log logger.Logger) *EventBus {
	return &EventBus{publisher: pub, subscriber: sub, db: db, log: log}
}

// PublishTx publishes msgs to topic inside tx, so the messages become visible
// only if tx commits. AutoInitializeSchema is off: tables exist after
// NewEventBus.
func (q *EventBus) PublishTx(ctx context.Context, tx *sql.Tx, topic string, msgs ...*message.Message) error {
	pub, err := watermillsql.NewPublisher(
		tx,
		watermillsql.PublisherConfig{
			SchemaAdapter:        watermillsql.DefaultPostgreSQLSchema{},
			AutoInitializeSchema: false,
		},
		&slogAdapter{log: q.log},
	)
	if err != nil {
		return fmt.Errorf("events: new tx publisher: %w", err)
	}
	return publish(ctx, pub, topic, msgs)
}

// Publish sends one or more messages to the given topic.
func (q *EventBus) Publish(ctx context.Context, topic string, msgs ...*message.Message) error {
	return publish(ctx, q.publisher, topic, msgs)
}

func publish(ctx context.Context, pub message.Publisher, topic string, msgs []*message.Message) error {
	injectTrace(ctx, msgs)
	if err := pub.Publish(topic, msgs...); err != nil { //nolint:contextcheck
		return fmt.Errorf("events: publish to %s: %w", topic, err)
	}
	return nil
}

func injectTrace(ctx context.Context, msgs []*message.Message) {
	carrier := propagation.MapCarrier{}
	otel.GetTextMapPropagator().Inject(ctx, carrier)
	for _, msg := range msgs {
		for k, v := range carrier {
			msg.Metadata.Set(k, v)
		}
	}
}

func extractTrace(ctx context.Context, msg *message.Message) context.Context {
	carrier := propagation.MapCarrier{}
	for k, v := range msg.Metadata {
		carrier[k] = v
	}
	return otel.GetTextMapPropagator().Extract(ctx, carrier)
}

// Subscribe registers handler to process messages from topic asynchronously.
//
// Ack/Nack is managed by the bus:
//   - handler returns nil               → Ack
//   - handler returns a Permanent error → reported, then Ack (no retry, no redelivery)
//   - handler returns another error     → retried up to 3× (1s, 2s, 4s), then reported and Nacked
//
// Reported errors are sent to the returned channel (capacity 100), which
// callers must drain. All in-flight handlers complete before Close returns.
func (q *EventBus) Subscribe(ctx context.Context, topic string, handler Handler) (<-chan error, error) {
	ch, err := q.subscriber.Subscribe(ctx, topic)
	if err != nil {
		return nil, fmt.Errorf("events: subscribe to %s: %w", topic, err)
	}

	errCh := make(chan error, 100)

	q.wg.Add(1)
	go func() {
		defer q.wg.Done()
		defer close(errCh)

		for msg := range ch {
			msgCtx := extractTrace(ctx, msg)
			err := retryWithBackoff(msgCtx, msg, handler, maxRetries, retryBaseDelay, q.log)
			if err == nil {
				msg.Ack()
				continue
			}
			q.report(msgCtx, errCh, topic, err)
			if errors.Is(err, ErrPermanent) {
				q.log.WarnContext(msgCtx, "events: dropping rejected message",
					"topic", topic, "message_uuid", msg.UUID, "error", err)
				msg.Ack()
				continue
			}
			msg.Nack()
		}
	}()

	return errCh, nil
}

func (q *EventBus) report(ctx context.Context, errCh chan<- error, topic string, err error) {
	select {
	case errCh <- err:
	default:
		q.log.ErrorContext(ctx, "events: error channel full, dropping error",
			"error", err, "topic", topic)
	}
}

// retryWithBackoff calls handler up to maxRetries times with exponential backoff.
// Returns nil on first success, the error immediately when it is Permanent, and
// the last error after all retries exhaust.
func retryWithBackoff(
	ctx context.Context,
	msg *message.Message,
	handler Handler,
	maxRetries int,
	baseDelay time.Duration,
	log logger.Logger,
) error {
	delay := baseDelay
	var err error
	for attempt := 1; attempt <= maxRetries; attempt++ {
		if err = handler(ctx, msg); err == nil {
			return nil
		}
		if errors.Is(err, ErrPermanent) {
			return fmt.Errorf("events: handler rejected message %s: %w", msg.UUID, err)
		}
		if attempt < maxRetries {
			log.WarnContext(ctx, "events: handler failed, retrying",
				"attempt", attempt,
				"max_retries", maxRetries,
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
	}
	return fmt.Errorf("events: handler failed after %d retries: %w", maxRetries, err)
}

// Ping checks the EventBus database connection health.
func (q *EventBus) Ping(ctx context.Context) error {
	if err := q.db.PingContext(ctx); err != nil {
		return fmt.Errorf("events: ping db: %w", err)
	}
	return nil
}

// Close stops the subscriber, waits for in-flight handlers (30 s max) and
// closes the publisher.
func (q *EventBus) Close() error {
	if err := q.subscriber.Close(); err != nil {
		return fmt.Errorf("events: close subscriber: %w", err)
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
		return fmt.Errorf("events: close publisher: %w", err)
	}
	return nil
}

// slogAdapter bridges logger.Logger to watermill.LoggerAdapter.
type slogAdapter struct{ log logger.Logger }

func (a *slogAdapter) Error(msg string, err error, fields watermill.LogFields) {
	a.log.Error(msg, append(fieldsToArgs(fields), "error", err)...)
}
func (a *slogAdapter) Info(msg string, fields watermill.LogFields) {
	a.log.Info(msg, fieldsToArgs(fields)...)
}
func (a *slogAdapter) Debug(msg string, fields watermill.LogFields) {
	a.log.Debug(msg, fieldsToArgs(fields)...)
}
func (a *slogAdapter) Trace(msg string, fields watermill.LogFields) {
	a.log.Debug(msg, fieldsToArgs(fields)...)
}
func (a *slogAdapter) With(fields watermill.LogFields) watermill.LoggerAdapter {
	return &slogAdapter{log: a.log.With(fieldsToArgs(fields)...)}
}

func fieldsToArgs(fields watermill.LogFields) []any {
	args := make([]any, 0, len(fields)*2)
	for k, v := range fields {
		args = append(args, k, v)
	}
	return args
}
