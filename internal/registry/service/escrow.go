package service

import (
	"context"
	"errors"
	"slices"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/errgroup"

	authmodels "landtitle/internal/auth/models"
	"landtitle/internal/ledger"
	"landtitle/internal/registry/models"
	id "landtitle/pkg/domain"
	dErrors "landtitle/pkg/domain-errors"
	"landtitle/pkg/platform/audit"
	"landtitle/pkg/platform/sentinel"
	"landtitle/pkg/requestcontext"
)

// RecordPaymentInput carries the buyer's claim that a ledger transaction pays
// for an approved buy request.
type RecordPaymentInput struct {
	BuyRequestID id.BuyRequestID
	TxID         string
	Amount       decimal.Decimal
	Type         models.PaymentType
}

// RecordPayment binds a ledger transaction to an approved buy request. The
// land goes under sale and the request is marked paid in the same
// transaction. Replaying the same tx id for the same request returns the
// existing payment. On a paid request whose pending payment's transaction
// failed on the ledger, the new transaction replaces the failed one.
func (s *Service) RecordPayment(ctx context.Context, actor id.Principal, in RecordPaymentInput) (_ *models.Payment, err error) {
	ctx, span := s.startSpan(ctx, "RecordPayment", attribute.String("buy_request_id", in.BuyRequestID.String()))
	defer func() { endSpan(span, err) }()

	if err := requireUser(actor); err != nil {
		return nil, err
	}
	txID, err := ledger.NormalizeTxID(in.TxID)
	if err != nil {
		return nil, err
	}
	if in.Type != models.PaymentDirect && in.Type != models.PaymentEscrow {
		return nil, dErrors.New(dErrors.CodeValidation, "payment type must be direct or escrow")
	}

	br, err := s.store.FindBuyRequest(ctx, in.BuyRequestID)
	if err != nil {
		return nil, storeErr(err, "buy request")
	}
	if br.BuyerID != actor.UserID {
		return nil, dErrors.New(dErrors.CodeForbidden, "only the buyer can record a payment")
	}
	if existing, err := s.paymentReplay(ctx, txID, br.ID); existing != nil || err != nil {
		return existing, err
	}
	if br.Status == models.BuyRequestPaid {
		return s.replaceFailedPaymentTx(ctx, actor, br, txID, in)
	}
	if br.Status != models.BuyRequestApproved {
		return nil, dErrors.New(dErrors.CodeConflict, "buy request is not approved for payment")
	}
	land, err := s.GetLand(ctx, br.LandID)
	if err != nil {
		return nil, err
	}
	if !in.Amount.Equal(land.Price) {
		return nil, dErrors.New(dErrors.CodeValidation, "amount must equal the land price")
	}

	payment := models.NewPayment(br, in.Amount, txID, in.Type, requestcontext.Now(ctx))
	tx, err := s.lookupTx(ctx, txID)
	if err != nil {
		return nil, err
	}
	if tx.Status == ledger.TxFailed {
		return nil, dErrors.New(dErrors.CodeLedgerFailure, "payment transaction failed on the ledger")
	}
	if tx.Status == ledger.TxConfirmed {
		if err := s.checkPaymentTx(ctx, payment, tx); err != nil {
			return nil, err
		}
	}

	replayed := false
	err = s.runInTx(ctx, land.ID, func(ctx context.Context) error {
		existing, err := s.paymentReplay(ctx, txID, br.ID)
		if err != nil {
			return err
		}
		if existing != nil {
			payment, replayed = existing, true
			return nil
		}
		now := requestcontext.Now(ctx)

		current, err := s.store.FindBuyRequest(ctx, br.ID)
		if err != nil {
			return storeErr(err, "buy request")
		}
		if err := current.MarkPaid(now); err != nil {
			return err
		}
		l, err := s.store.FindLand(ctx, land.ID)
		if err != nil {
			return storeErr(err, "land")
		}
		if err := l.MarkUnderSale(now); err != nil {
			return err
		}
		if tx.Status == ledger.TxConfirmed {
			if err := payment.Transition(payment.ConfirmedTarget(), txID, models.SystemActor, now); err != nil {
				return err
			}
		}

		if err := s.store.CreatePayment(ctx, payment); err != nil {
			if errors.Is(err, sentinel.ErrConflict) {
				return dErrors.New(dErrors.CodeConflict, "land already has an active payment")
			}
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to record payment")
		}
		if err := s.store.SaveBuyRequest(ctx, current); err != nil {
			return storeErr(err, "buy request")
		}
		return storeErr(s.store.SaveLand(ctx, l), "land")
	})
	if err != nil {
		return nil, err
	}
	if replayed {
		return payment, nil
	}

	s.logAudit(ctx, audit.EventPaymentRecorded, actor, auditRecord{
		landID:   payment.LandID,
		subject:  "payment:" + payment.ID.String(),
		decision: string(payment.Status),
	}, "tx_id", txID, "payment_type", string(payment.Type))
	s.metrics.IncrementPaymentTransition(string(payment.Type), string(payment.Status))
	return payment, nil
}

// replaceFailedPaymentTx rebinds the pending payment of a paid buy request to
// txID once the ledger reports its current transaction failed. The land stays
// under sale throughout, so no other buyer can slip in.
func (s *Service) replaceFailedPaymentTx(ctx context.Context, actor id.Principal, br *models.BuyRequest, txID string, in RecordPaymentInput) (*models.Payment, error) {
	pending, err := s.store.ListPayments(ctx, models.PaymentFilter{
		LandID:   br.LandID,
		Statuses: []models.PaymentStatus{models.PaymentPending},
	})
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to look up payment")
	}
	idx := slices.IndexFunc(pending, func(p *models.Payment) bool { return p.BuyRequestID == br.ID })
	if idx < 0 {
		return nil, dErrors.New(dErrors.CodeConflict, "buy request is not approved for payment")
	}
	current := pending[idx]
	if in.Type != current.Type || !in.Amount.Equal(current.Amount) {
		return nil, dErrors.New(dErrors.CodeValidation, "a replacement transaction must keep the payment type and amount")
	}
	failed, err := s.recordedTxFailed(ctx, current.TxID)
	if err != nil {
		return nil, err
	}
	if !failed {
		return nil, dErrors.New(dErrors.CodeConflict, "buy request already has a payment awaiting confirmation")
	}

	tx, err := s.lookupTx(ctx, txID)
	if err != nil {
		return nil, err
	}
	if tx.Status == ledger.TxFailed {
		return nil, dErrors.New(dErrors.CodeLedgerFailure, "payment transaction failed on the ledger")
	}
	if tx.Status == ledger.TxConfirmed {
		if err := s.checkPaymentTx(ctx, current, tx); err != nil {
			return nil, err
		}
	}

	replaced := current.TxID
	var p *models.Payment
	replayed := false
	err = s.runInTx(ctx, br.LandID, func(ctx context.Context) error {
		existing, err := s.paymentReplay(ctx, txID, br.ID)
		if err != nil {
			return err
		}
		if existing != nil {
			p, replayed = existing, true
			return nil
		}
		p, err = s.store.FindPayment(ctx, current.ID)
		if err != nil {
			return storeErr(err, "payment")
		}
		if p.TxID != replaced {
			return dErrors.New(dErrors.CodeConflict, "payment changed while checking the ledger")
		}
		now := requestcontext.Now(ctx)
		if err := p.ReplaceTx(txID, actor.UserID.String(), now); err != nil {
			return err
		}
		if tx.Status == ledger.TxConfirmed {
			if err := p.Transition(p.ConfirmedTarget(), txID, models.SystemActor, now); err != nil {
				return err
			}
		}
		return storeErr(s.store.SavePayment(ctx, p), "payment")
	})
	if err != nil {
		return nil, err
	}
	if replayed {
		return p, nil
	}

	s.logAudit(ctx, audit.EventPaymentRecorded, actor, auditRecord{
		landID:   p.LandID,
		subject:  "payment:" + p.ID.String(),
		decision: string(p.Status),
	}, "tx_id", txID, "replaced_tx_id", replaced, "payment_type", string(p.Type))
	s.metrics.IncrementPaymentTransition(string(p.Type), string(p.Status))
	return p, nil
}

// paymentReplay returns the payment already recorded under txID for brID.
// The same tx id under another buy request is a conflict.
func (s *Service) paymentReplay(ctx context.Context, txID string, brID id.BuyRequestID) (*models.Payment, error) {
	existing, err := s.store.FindPaymentByTxID(ctx, txID)
	switch {
	case errors.Is(err, sentinel.ErrNotFound):
		return nil, nil
	case err != nil:
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to look up payment")
	case existing.BuyRequestID != brID:
		return nil, dErrors.New(dErrors.CodeConflict, "transaction already recorded for another purchase")
	default:
		return existing, nil
	}
}

// lookupTx queries the ledger with its own deadline. Any failure, including
// a caller-side timeout, is a LedgerFailure and never moves state.
func (s *Service) lookupTx(ctx context.Context, txID string) (*ledger.Transaction, error) {
	ctx, cancel := context.WithTimeout(ctx, s.cfg.LedgerTimeout)
	defer cancel()

	tx, err := s.ledger.LookupTransaction(ctx, txID)
	var de *dErrors.Error
	switch {
	case err == nil:
		return tx, nil
	case errors.Is(err, ledger.ErrTxNotFound):
		return nil, dErrors.New(dErrors.CodeLedgerFailure, "transaction not found on the ledger")
	case errors.As(err, &de):
		return nil, err
	case errors.Is(err, context.DeadlineExceeded):
		return nil, dErrors.Wrap(err, dErrors.CodeLedgerFailure, "ledger lookup timed out")
	default:
		return nil, dErrors.Wrap(err, dErrors.CodeLedgerFailure, "ledger lookup failed")
	}
}

// recordedTxFailed reports whether the ledger has given up on a transaction a
// payment already carries. Only then may a new transaction replace it.
func (s *Service) recordedTxFailed(ctx context.Context, txID string) (bool, error) {
	tx, err := s.lookupTx(ctx, txID)
	if err != nil {
		return false, err
	}
	return tx.Status == ledger.TxFailed, nil
}

// checkReleaseTx requires the release to be known to the ledger and not
// failed. Observable transactions must pay the destination; a pending one is
// completed later by AdvancePayment.
func (s *Service) checkReleaseTx(ctx context.Context, txID, destination string) error {
	tx, err := s.lookupTx(ctx, txID)
	if err != nil {
		return err
	}
	if tx.Status == ledger.TxFailed {
		return dErrors.New(dErrors.CodeLedgerFailure, "release transaction failed on the ledger")
	}
	if !tx.Unverified && !ledger.SameAddress(tx.To, destination) {
		return dErrors.New(dErrors.CodeValidation, "release was not sent to the destination")
	}
	return nil
}

// checkPaymentTx verifies a confirmed transaction pays the right recipient
// enough. Ledgers that cannot observe the chain skip the check.
func (s *Service) checkPaymentTx(ctx context.Context, p *models.Payment, tx *ledger.Transaction) error {
	if tx.Unverified {
		return nil
	}
	var buyer, seller *authmodels.User
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		buyer, err = s.findUser(gctx, p.BuyerID)
		return err
	})
	g.Go(func() (err error) {
		seller, err = s.findUser(gctx, p.SellerID)
		return err
	})
	if err := g.Wait(); err != nil {
		return err
	}

	recipient := s.cfg.CustodianAddress
	if p.Type == models.PaymentDirect {
		recipient = seller.WalletAddress
	}
	if recipient == "" {
		return dErrors.New(dErrors.CodeValidation, "no receiving address configured for this payment type")
	}
	if !ledger.SameAddress(tx.To, recipient) {
		return dErrors.New(dErrors.CodeValidation, "payment was not sent to the expected address")
	}
	if buyer.WalletAddress != "" && tx.From != "" && !ledger.SameAddress(tx.From, buyer.WalletAddress) {
		return dErrors.New(dErrors.CodeValidation, "payment was not sent from the buyer's wallet")
	}
	if tx.Value == nil || tx.Value.Cmp(s.cfg.Converter.ToWei(p.Amount)) < 0 {
		return dErrors.New(dErrors.CodeValidation, "payment value is below the land price")
	}
	return nil
}

// GetPayment returns a payment to one of its parties or an inspector.
func (s *Service) GetPayment(ctx context.Context, actor id.Principal, paymentID id.PaymentID) (*models.Payment, error) {
	if err := requireUser(actor); err != nil {
		return nil, err
	}
	p, err := s.store.FindPayment(ctx, paymentID)
	if err != nil {
		return nil, storeErr(err, "payment")
	}
	if !actor.IsInspector() && !p.IsParty(actor.UserID) {
		return nil, dErrors.New(dErrors.CodeForbidden, "not a party to this payment")
	}
	return p, nil
}

// ListPayments returns payments where the actor is buyer or seller.
func (s *Service) ListPayments(ctx context.Context, actor id.Principal) ([]*models.Payment, error) {
	if err := requireUser(actor); err != nil {
		return nil, err
	}
	out, err := s.store.ListPayments(ctx, models.PaymentFilter{PartyID: actor.UserID})
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list payments")
	}
	return out, nil
}

// ListEscrowPayments returns escrow payments, optionally narrowed by status.
func (s *Service) ListEscrowPayments(ctx context.Context, actor id.Principal, statuses []models.PaymentStatus) ([]*models.Payment, error) {
	if err := requireInspector(actor); err != nil {
		return nil, err
	}
	out, err := s.store.ListPayments(ctx, models.PaymentFilter{Type: models.PaymentEscrow, Statuses: statuses})
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list escrow payments")
	}
	return out, nil
}

// GetEscrowReview gathers what an inspector confirms before releasing funds.
func (s *Service) GetEscrowReview(ctx context.Context, actor id.Principal, paymentID id.PaymentID) (*models.EscrowReview, error) {
	if err := requireInspector(actor); err != nil {
		return nil, err
	}
	p, err := s.store.FindPayment(ctx, paymentID)
	if err != nil {
		return nil, storeErr(err, "payment")
	}
	if p.Type != models.PaymentEscrow {
		return nil, dErrors.New(dErrors.CodeValidation, "payment is not held in escrow")
	}

	review := &models.EscrowReview{
		Payment:     p,
		AmountEther: s.cfg.Converter.ToEther(p.Amount),
		AmountWei:   s.cfg.Converter.ToWei(p.Amount).String(),
	}
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		review.Land, err = s.GetLand(gctx, p.LandID)
		return err
	})
	g.Go(func() error {
		u, err := s.findUser(gctx, p.SellerID)
		if err == nil {
			review.Seller = partyDetails(u)
		}
		return err
	})
	g.Go(func() error {
		u, err := s.findUser(gctx, p.BuyerID)
		if err == nil {
			review.Buyer = partyDetails(u)
		}
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return review, nil
}

// ReleaseInput carries an inspector's escrow release.
type ReleaseInput struct {
	Destination string
	Confirmed   bool
	ReleaseTxID string
}

// ReleaseEscrow records the outbound transaction paying the seller. The
// transaction must be on the ledger and addressed to the destination before
// anything moves. A replay with the same release tx id returns the payment
// unchanged. A released payment accepts a new release tx only once the
// ledger reports the recorded one failed; otherwise it is a conflict.
func (s *Service) ReleaseEscrow(ctx context.Context, actor id.Principal, paymentID id.PaymentID, in ReleaseInput) (_ *models.Payment, err error) {
	ctx, span := s.startSpan(ctx, "ReleaseEscrow", attribute.String("payment_id", paymentID.String()))
	defer func() { endSpan(span, err) }()

	if err := requireInspector(actor); err != nil {
		return nil, err
	}
	if !in.Confirmed {
		return nil, dErrors.New(dErrors.CodeNotConfirmed, "seller details must be confirmed before release")
	}
	if err := ledger.ValidateAddress(in.Destination); err != nil {
		return nil, err
	}
	releaseTxID, err := ledger.NormalizeTxID(in.ReleaseTxID)
	if err != nil {
		return nil, err
	}
	current, err := s.store.FindPayment(ctx, paymentID)
	if err != nil {
		return nil, storeErr(err, "payment")
	}
	if current.IsReleaseReplay(releaseTxID) {
		return current, nil
	}
	if current.Type != models.PaymentEscrow {
		return nil, dErrors.New(dErrors.CodeConflict, "payment is not held in escrow")
	}

	var replaced string
	switch current.Status {
	case models.PaymentInEscrow:
	case models.PaymentReleasedToSeller:
		failed, err := s.recordedTxFailed(ctx, current.ReleaseTxID)
		if err != nil {
			return nil, err
		}
		if !failed {
			return nil, dErrors.New(dErrors.CodeConflict, "escrow has already been released")
		}
		replaced = current.ReleaseTxID
	default:
		return nil, dErrors.New(dErrors.CodeConflict, "payment cannot be released from "+string(current.Status))
	}
	if err := s.checkReleaseTx(ctx, releaseTxID, in.Destination); err != nil {
		return nil, err
	}

	var p *models.Payment
	replayed := false
	err = s.runInTx(ctx, current.LandID, func(ctx context.Context) error {
		var err error
		p, err = s.store.FindPayment(ctx, paymentID)
		if err != nil {
			return storeErr(err, "payment")
		}
		if p.IsReleaseReplay(releaseTxID) {
			replayed = true
			return nil
		}
		now := requestcontext.Now(ctx)
		if replaced == "" {
			err = p.Release(in.Destination, releaseTxID, actor.UserID, now)
		} else if p.Status != models.PaymentReleasedToSeller || p.ReleaseTxID != replaced {
			err = dErrors.New(dErrors.CodeConflict, "escrow release changed while checking the ledger")
		} else {
			err = p.ReplaceRelease(in.Destination, releaseTxID, actor.UserID, now)
		}
		if err != nil {
			return err
		}
		return storeErr(s.store.SavePayment(ctx, p), "payment")
	})
	if err != nil {
		return nil, err
	}
	if replayed {
		return p, nil
	}

	s.logAudit(ctx, audit.EventEscrowReleased, actor, auditRecord{
		landID:   p.LandID,
		userID:   p.SellerID,
		subject:  "payment:" + p.ID.String(),
		decision: string(p.Status),
	}, "release_tx_id", releaseTxID, "destination", in.Destination, "replaced_tx_id", replaced)
	s.metrics.IncrementPaymentTransition(string(p.Type), string(p.Status))
	return p, nil
}
