// Package worker relays transactional-outbox entries to the message broker.
package worker

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// Entry is one row of the outbox table.
type Entry struct {
	ID            uuid.UUID
	AggregateType string
	AggregateID   string
	EventType     string
	Payload       []byte
	CreatedAt     time.Time
}

type OutboxStore interface {
	FetchUnpublished(ctx context.Context, limit int) ([]Entry, error)
	MarkPublished(ctx context.Context, ids []uuid.UUID, at time.Time) error
}

// Producer delivers a keyed message synchronously.
type Producer interface {
	Publish(ctx context.Context, key string, value []byte, headers map[string]string) error
}

// Worker polls the outbox and publishes entries in creation order. Delivery is
// at-least-once: an entry is marked only after the broker acknowledges it, so
// a crash between publish and mark re-sends it.
type Worker struct {
	store     OutboxStore
	producer  Producer
	logger    *slog.Logger
	interval  time.Duration
	batchSize int
}

type Option func(*Worker)

func WithInterval(d time.Duration) Option {
	return func(w *Worker) {
		if d > 0 {
			w.interval = d
		}
	}
}

func WithBatchSize(n int) Option {
	return func(w *Worker) {
		if n > 0 {
			w.batchSize = n
		}
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(w *Worker) {
		w.logger = logger
	}
}

func NewWorker(store OutboxStore, producer Producer, opts ...Option) *Worker {
	w := &Worker{
		store:     store,
		producer:  producer,
		logger:    slog.Default(),
		interval:  time.Second,
		batchSize: 100,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Run polls until ctx is cancelled.
func (w *Worker) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()
	for {
		if _, err := w.RelayOnce(ctx); err != nil && ctx.Err() == nil {
			w.logger.ErrorContext(ctx, "outbox relay failed", "error", err)
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// RelayOnce publishes one batch and returns how many entries were delivered.
// It stops at the first publish failure so ordering per aggregate holds.
func (w *Worker) RelayOnce(ctx context.Context) (int, error) {
	entries, err := w.store.FetchUnpublished(ctx, w.batchSize)
	if err != nil {
		return 0, err
	}

	published := make([]uuid.UUID, 0, len(entries))
	var publishErr error
	for _, e := range entries {
		headers := map[string]string{
			"event_type":     e.EventType,
			"aggregate_type": e.AggregateType,
		}
		if err := w.producer.Publish(ctx, e.AggregateID, e.Payload, headers); err != nil {
			publishErr = err
			break
		}
		published = append(published, e.ID)
	}

	if err := w.store.MarkPublished(ctx, published, time.Now()); err != nil {
		return 0, err
	}
	return len(published), publishErr
}
