package service

import (
	"context"

	"go.opentelemetry.io/otel/attribute"

	"landtitle/internal/ledger"
	"landtitle/internal/registry/models"
	id "landtitle/pkg/domain"
	dErrors "landtitle/pkg/domain-errors"
	"landtitle/pkg/platform/audit"
	"landtitle/pkg/requestcontext"
)

// SyncPayment advances a payment whose ledger transaction has confirmed since
// it was last observed. Parties and inspectors may trigger it.
func (s *Service) SyncPayment(ctx context.Context, actor id.Principal, paymentID id.PaymentID) (*models.Payment, error) {
	if _, err := s.GetPayment(ctx, actor, paymentID); err != nil {
		return nil, err
	}
	p, _, err := s.AdvancePayment(ctx, paymentID)
	return p, err
}

// PendingConfirmations lists payments waiting on a ledger confirmation.
func (s *Service) PendingConfirmations(ctx context.Context) ([]*models.Payment, error) {
	out, err := s.store.ListPayments(ctx, models.PaymentFilter{
		Statuses: []models.PaymentStatus{models.PaymentPending, models.PaymentReleasedToSeller},
	})
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list pending payments")
	}
	return out, nil
}

// AdvancePayment consults the ledger once for the payment's outstanding
// transaction: the original payment while pending, the release while
// releasedToSeller. It reports whether the payment moved.
func (s *Service) AdvancePayment(ctx context.Context, paymentID id.PaymentID) (_ *models.Payment, advanced bool, err error) {
	ctx, span := s.startSpan(ctx, "AdvancePayment", attribute.String("payment_id", paymentID.String()))
	defer func() { endSpan(span, err) }()

	p, err := s.store.FindPayment(ctx, paymentID)
	if err != nil {
		return nil, false, storeErr(err, "payment")
	}

	var target models.PaymentStatus
	var txID string
	switch p.Status {
	case models.PaymentPending:
		target, txID = p.ConfirmedTarget(), p.TxID
	case models.PaymentReleasedToSeller:
		target, txID = models.PaymentCompleted, p.ReleaseTxID
	default:
		return p, false, nil
	}

	tx, err := s.lookupTx(ctx, txID)
	if err != nil {
		return p, false, err
	}
	switch tx.Status {
	case ledger.TxPending:
		return p, false, nil
	case ledger.TxFailed:
		// The state holds until the buyer or inspector submits a replacement tx.
		s.logger.WarnContext(ctx, "payment transaction failed on the ledger",
			"payment_id", p.ID.String(), "tx_id", txID, "status", string(p.Status))
		return p, false, nil
	}

	if p.Status == models.PaymentPending {
		if err := s.checkPaymentTx(ctx, p, tx); err != nil {
			return p, false, err
		}
	} else if !tx.Unverified && !ledger.SameAddress(tx.To, p.ReleaseDestination) {
		return p, false, dErrors.New(dErrors.CodeValidation, "release was not sent to the recorded destination")
	}

	from := p.Status
	err = s.runInTx(ctx, p.LandID, func(ctx context.Context) error {
		var err error
		p, err = s.store.FindPayment(ctx, paymentID)
		if err != nil {
			return storeErr(err, "payment")
		}
		if p.Status != from {
			// Another sweep or request got here first.
			return nil
		}
		if err := p.Transition(target, txID, models.SystemActor, requestcontext.Now(ctx)); err != nil {
			return err
		}
		advanced = true
		return storeErr(s.store.SavePayment(ctx, p), "payment")
	})
	if err != nil {
		return nil, false, err
	}
	if !advanced {
		return p, false, nil
	}

	s.logAudit(ctx, audit.EventPaymentTransition, id.Principal{}, auditRecord{
		landID:   p.LandID,
		userID:   p.BuyerID,
		subject:  "payment:" + p.ID.String(),
		decision: string(p.Status),
	}, "from", string(from), "tx_id", txID)
	s.metrics.IncrementPaymentTransition(string(p.Type), string(p.Status))
	return p, true, nil
}
