package models

import (
	"slices"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	id "landtitle/pkg/domain"
	dErrors "landtitle/pkg/domain-errors"
)

// BuyRequest is a buyer's intent to purchase one parcel. It is immutable once paid.
type BuyRequest struct {
	ID             id.BuyRequestID
	LandID         id.LandID
	BuyerID        id.UserID
	SellerID       id.UserID
	Status         BuyRequestStatus
	ReviewComments string
	ReviewedBy     id.UserID
	RequestedAt    time.Time
	UpdatedAt      time.Time
}

func NewBuyRequest(land *Land, buyer id.UserID, now time.Time) *BuyRequest {
	return &BuyRequest{
		ID:          id.NewBuyRequestID(),
		LandID:      land.ID,
		BuyerID:     buyer,
		SellerID:    land.OwnerID,
		Status:      BuyRequestPending,
		RequestedAt: now,
		UpdatedAt:   now,
	}
}

// Review applies the inspector's verdict to a pending request.
func (b *BuyRequest) Review(approved bool, comments string, inspector id.UserID, now time.Time) error {
	next := BuyRequestRejected
	if approved {
		next = BuyRequestApproved
	}
	if !b.Status.CanTransitionTo(next) {
		return dErrors.New(dErrors.CodeConflict, "buy request has already been reviewed")
	}
	b.Status = next
	b.ReviewComments = strings.TrimSpace(comments)
	b.ReviewedBy = inspector
	b.UpdatedAt = now
	return nil
}

func (b *BuyRequest) MarkPaid(now time.Time) error {
	if !b.Status.CanTransitionTo(BuyRequestPaid) {
		return dErrors.New(dErrors.CodeConflict, "buy request is not approved for payment")
	}
	b.Status = BuyRequestPaid
	b.UpdatedAt = now
	return nil
}

func (b *BuyRequest) Clone() *BuyRequest {
	c := *b
	return &c
}

// PaymentTransition is one entry in a payment's append-only history.
type PaymentTransition struct {
	From  PaymentStatus `json:"from,omitempty"`
	To    PaymentStatus `json:"to"`
	TxID  string        `json:"tx_id,omitempty"`
	Actor string        `json:"actor"`
	At    time.Time     `json:"at"`
}

// SystemActor labels transitions driven by ledger observation rather than a user.
const SystemActor = "system"

// Payment is one value transfer bound to a buy request. Amount is fixed at
// creation. TxID and ReleaseTxID change only when the ledger reports the
// current transaction failed; History keeps every id the payment has carried.
type Payment struct {
	ID           id.PaymentID
	BuyRequestID id.BuyRequestID
	LandID       id.LandID
	BuyerID      id.UserID
	SellerID     id.UserID
	Amount       decimal.Decimal
	TxID         string
	Type         PaymentType
	Status       PaymentStatus

	ReleaseTxID        string
	ReleaseDestination string
	ReleasedBy         id.UserID

	History   []PaymentTransition
	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewPayment records an observed ledger transaction in the pending state.
func NewPayment(br *BuyRequest, amount decimal.Decimal, txID string, paymentType PaymentType, now time.Time) *Payment {
	return &Payment{
		ID:           id.NewPaymentID(),
		BuyRequestID: br.ID,
		LandID:       br.LandID,
		BuyerID:      br.BuyerID,
		SellerID:     br.SellerID,
		Amount:       amount,
		TxID:         txID,
		Type:         paymentType,
		Status:       PaymentPending,
		History: []PaymentTransition{{
			To:    PaymentPending,
			TxID:  txID,
			Actor: br.BuyerID.String(),
			At:    now,
		}},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// ConfirmedTarget is the state a pending payment moves to once its ledger
// transaction confirms.
func (p *Payment) ConfirmedTarget() PaymentStatus {
	if p.Type == PaymentEscrow {
		return PaymentInEscrow
	}
	return PaymentCompleted
}

// Transition moves the payment along one legal edge and appends history.
func (p *Payment) Transition(to PaymentStatus, txID, actor string, now time.Time) error {
	if !p.Status.CanTransitionTo(to) {
		return dErrors.New(dErrors.CodeConflict, "payment cannot move from "+string(p.Status)+" to "+string(to))
	}
	if to == PaymentInEscrow && p.Type != PaymentEscrow {
		return dErrors.New(dErrors.CodeConflict, "direct payments are not held in escrow")
	}
	if p.Status == PaymentPending && to == PaymentCompleted && p.Type != PaymentDirect {
		return dErrors.New(dErrors.CodeConflict, "escrow payments complete only after release")
	}
	p.History = append(p.History, PaymentTransition{
		From:  p.Status,
		To:    to,
		TxID:  txID,
		Actor: actor,
		At:    now,
	})
	p.Status = to
	p.UpdatedAt = now
	return nil
}

// Release records the inspector's outbound transaction to the seller.
func (p *Payment) Release(destination, releaseTxID string, inspector id.UserID, now time.Time) error {
	if p.Type != PaymentEscrow {
		return dErrors.New(dErrors.CodeConflict, "payment is not held in escrow")
	}
	if err := p.Transition(PaymentReleasedToSeller, releaseTxID, inspector.String(), now); err != nil {
		return err
	}
	p.ReleaseTxID = releaseTxID
	p.ReleaseDestination = destination
	p.ReleasedBy = inspector
	return nil
}

// ReplaceTx binds a new ledger transaction to a payment still waiting on its
// first confirmation. The status does not change.
func (p *Payment) ReplaceTx(txID, actor string, now time.Time) error {
	if p.Status != PaymentPending {
		return dErrors.New(dErrors.CodeConflict, "only a pending payment can take a new transaction")
	}
	p.appendSelf(txID, actor, now)
	p.TxID = txID
	return nil
}

// ReplaceRelease records a new outbound transaction for a release whose
// previous transaction failed. The payment stays releasedToSeller.
func (p *Payment) ReplaceRelease(destination, releaseTxID string, inspector id.UserID, now time.Time) error {
	if p.Status != PaymentReleasedToSeller {
		return dErrors.New(dErrors.CodeConflict, "only a released payment can take a new release transaction")
	}
	p.appendSelf(releaseTxID, inspector.String(), now)
	p.ReleaseTxID = releaseTxID
	p.ReleaseDestination = destination
	p.ReleasedBy = inspector
	return nil
}

func (p *Payment) appendSelf(txID, actor string, now time.Time) {
	p.History = append(p.History, PaymentTransition{
		From:  p.Status,
		To:    p.Status,
		TxID:  txID,
		Actor: actor,
		At:    now,
	})
	p.UpdatedAt = now
}

// IsReleaseReplay reports whether releaseTxID is the release already applied.
func (p *Payment) IsReleaseReplay(releaseTxID string) bool {
	return p.ReleaseTxID != "" && p.ReleaseTxID == releaseTxID &&
		(p.Status == PaymentReleasedToSeller || p.Status == PaymentCompleted)
}

// FundsReleased reports whether the seller has been paid or is being paid
// outside escrow. Transfers may be approved only after this holds.
func (p *Payment) FundsReleased() bool {
	return p.Status == PaymentReleasedToSeller || p.Status == PaymentCompleted
}

// IsParty reports whether user is the buyer or seller.
func (p *Payment) IsParty(user id.UserID) bool {
	return p.BuyerID == user || p.SellerID == user
}

func (p *Payment) Clone() *Payment {
	c := *p
	c.History = slices.Clone(p.History)
	return &c
}

// EscrowReview is what an inspector confirms before releasing escrowed funds.
type EscrowReview struct {
	Payment     *Payment
	Land        *Land
	Seller      PartyDetails
	Buyer       PartyDetails
	AmountEther string
	AmountWei   string
}

// PartyDetails is the identity block shown for manual confirmation.
type PartyDetails struct {
	ID            id.UserID
	Name          string
	Email         string
	Phone         string
	GovID         string
	WalletAddress string
}
