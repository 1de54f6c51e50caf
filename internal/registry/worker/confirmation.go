// Package worker drives payments forward as their ledger transactions confirm.
package worker

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"landtitle/internal/registry/metrics"
	"landtitle/internal/registry/models"
	id "landtitle/pkg/domain"
	dErrors "landtitle/pkg/domain-errors"
)

// Payments is the slice of the registry service the sweep needs.
type Payments interface {
	PendingConfirmations(ctx context.Context) ([]*models.Payment, error)
	AdvancePayment(ctx context.Context, paymentID id.PaymentID) (*models.Payment, bool, error)
}

// ConfirmationWorker periodically re-checks payments that wait on the ledger:
// pending payments and escrow releases not yet confirmed.
type ConfirmationWorker struct {
	payments    Payments
	logger      *slog.Logger
	metrics     *metrics.Metrics
	interval    time.Duration
	parallelism int
}

type Option func(*ConfirmationWorker)

func WithInterval(d time.Duration) Option {
	return func(w *ConfirmationWorker) {
		if d > 0 {
			w.interval = d
		}
	}
}

func WithParallelism(n int) Option {
	return func(w *ConfirmationWorker) {
		if n > 0 {
			w.parallelism = n
		}
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(w *ConfirmationWorker) {
		w.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(w *ConfirmationWorker) {
		w.metrics = m
	}
}

func NewConfirmationWorker(payments Payments, opts ...Option) *ConfirmationWorker {
	w := &ConfirmationWorker{
		payments:    payments,
		logger:      slog.Default(),
		interval:    30 * time.Second,
		parallelism: 4,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Run sweeps until ctx is cancelled.
func (w *ConfirmationWorker) Run(ctx context.Context) error {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()
	for {
		if _, err := w.SweepOnce(ctx); err != nil && ctx.Err() == nil {
			w.logger.ErrorContext(ctx, "confirmation sweep failed", "error", err)
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// SweepOnce consults the ledger once per waiting payment and returns how many
// moved. A failure on one payment is logged and does not stop the others.
func (w *ConfirmationWorker) SweepOnce(ctx context.Context) (int, error) {
	start := time.Now()
	defer func() { w.metrics.ObserveSweepLatency(time.Since(start)) }()

	pending, err := w.payments.PendingConfirmations(ctx)
	if err != nil {
		return 0, err
	}

	var advanced atomic.Int64
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(w.parallelism)
	for _, p := range pending {
		g.Go(func() error {
			_, moved, err := w.payments.AdvancePayment(gctx, p.ID)
			switch {
			case err != nil && gctx.Err() != nil:
				return gctx.Err()
			case err != nil:
				level := slog.LevelWarn
				if dErrors.HasCode(err, dErrors.CodeInternal) {
					level = slog.LevelError
				}
				w.logger.Log(gctx, level, "payment confirmation check failed",
					"payment_id", p.ID.String(), "status", string(p.Status), "error", err)
			case moved:
				advanced.Add(1)
			}
			return nil
		})
	}
	err = g.Wait()
	return int(advanced.Load()), err
}
