package models

import (
	"slices"

	dErrors "landtitle/pkg/domain-errors"
)

// VerificationStatus is the inspector's verdict on a registered parcel.
type VerificationStatus string

const (
	VerificationPending  VerificationStatus = "pending"
	VerificationApproved VerificationStatus = "approved"
	VerificationRejected VerificationStatus = "rejected"
)

// ParseVerdict accepts only the two terminal verdicts.
func ParseVerdict(s string) (VerificationStatus, error) {
	switch v := VerificationStatus(s); v {
	case VerificationApproved, VerificationRejected:
		return v, nil
	default:
		return "", dErrors.New(dErrors.CodeValidation, "decision must be approved or rejected")
	}
}

// LandStatus tracks where a parcel is in the sale cycle.
type LandStatus string

const (
	LandListed      LandStatus = "listed"
	LandUnderSale   LandStatus = "underSale"
	LandTransferred LandStatus = "transferred"
)

var landTransitions = map[LandStatus][]LandStatus{
	LandListed:      {LandUnderSale},
	LandUnderSale:   {LandTransferred},
	LandTransferred: {LandListed},
}

func (s LandStatus) CanTransitionTo(next LandStatus) bool {
	return allowed(landTransitions, s, next)
}

// BuyRequestStatus tracks a purchase request through inspector review.
type BuyRequestStatus string

const (
	BuyRequestPending  BuyRequestStatus = "pending"
	BuyRequestApproved BuyRequestStatus = "approved"
	BuyRequestRejected BuyRequestStatus = "rejected"
	BuyRequestPaid     BuyRequestStatus = "paid"
)

var buyRequestTransitions = map[BuyRequestStatus][]BuyRequestStatus{
	BuyRequestPending:  {BuyRequestApproved, BuyRequestRejected},
	BuyRequestApproved: {BuyRequestPaid},
}

func (s BuyRequestStatus) CanTransitionTo(next BuyRequestStatus) bool {
	return allowed(buyRequestTransitions, s, next)
}

// IsOpen reports whether the request still blocks a new one from the same buyer.
func (s BuyRequestStatus) IsOpen() bool {
	return s == BuyRequestPending || s == BuyRequestApproved
}

func ParseBuyRequestStatus(s string) (BuyRequestStatus, error) {
	switch v := BuyRequestStatus(s); v {
	case BuyRequestPending, BuyRequestApproved, BuyRequestRejected, BuyRequestPaid:
		return v, nil
	default:
		return "", dErrors.New(dErrors.CodeValidation, "invalid buy request status")
	}
}

// PaymentType selects how funds reach the seller.
type PaymentType string

const (
	PaymentDirect PaymentType = "direct"
	PaymentEscrow PaymentType = "escrow"
)

func ParsePaymentType(s string) (PaymentType, error) {
	switch v := PaymentType(s); v {
	case PaymentDirect, PaymentEscrow:
		return v, nil
	default:
		return "", dErrors.New(dErrors.CodeValidation, "payment type must be direct or escrow")
	}
}

// PaymentStatus is the payment lifecycle. Direct payments go
// pending -> completed; escrow payments go pending -> inEscrow ->
// releasedToSeller -> completed. Nothing moves backward.
type PaymentStatus string

const (
	PaymentPending          PaymentStatus = "pending"
	PaymentInEscrow         PaymentStatus = "inEscrow"
	PaymentReleasedToSeller PaymentStatus = "releasedToSeller"
	PaymentCompleted        PaymentStatus = "completed"
)

var paymentTransitions = map[PaymentStatus][]PaymentStatus{
	PaymentPending:          {PaymentCompleted, PaymentInEscrow},
	PaymentInEscrow:         {PaymentReleasedToSeller},
	PaymentReleasedToSeller: {PaymentCompleted},
}

func (s PaymentStatus) CanTransitionTo(next PaymentStatus) bool {
	return allowed(paymentTransitions, s, next)
}

// IsActive reports a non-terminal payment. A land has at most one.
func (s PaymentStatus) IsActive() bool {
	return s == PaymentPending || s == PaymentInEscrow || s == PaymentReleasedToSeller
}

func ParsePaymentStatus(s string) (PaymentStatus, error) {
	switch v := PaymentStatus(s); v {
	case PaymentPending, PaymentInEscrow, PaymentReleasedToSeller, PaymentCompleted:
		return v, nil
	default:
		return "", dErrors.New(dErrors.CodeValidation, "invalid payment status")
	}
}

// WorkflowState is the transfer verification workflow.
type WorkflowState string

const (
	WorkflowRequested           WorkflowState = "requested"
	WorkflowSellerPhotoCaptured WorkflowState = "sellerPhotoCaptured"
	WorkflowBuyerPhotoCaptured  WorkflowState = "buyerPhotoCaptured"
	WorkflowAwaitingDecision    WorkflowState = "awaitingDecision"
	WorkflowApproved            WorkflowState = "approved"
	WorkflowRejected            WorkflowState = "rejected"
)

var workflowTransitions = map[WorkflowState][]WorkflowState{
	WorkflowRequested:           {WorkflowSellerPhotoCaptured},
	WorkflowSellerPhotoCaptured: {WorkflowBuyerPhotoCaptured},
	WorkflowBuyerPhotoCaptured:  {WorkflowAwaitingDecision},
	WorkflowAwaitingDecision:    {WorkflowApproved, WorkflowRejected},
	WorkflowRejected:            {WorkflowRequested},
}

func (s WorkflowState) CanTransitionTo(next WorkflowState) bool {
	return allowed(workflowTransitions, s, next)
}

func ParseWorkflowState(s string) (WorkflowState, error) {
	switch v := WorkflowState(s); v {
	case WorkflowRequested, WorkflowSellerPhotoCaptured, WorkflowBuyerPhotoCaptured,
		WorkflowAwaitingDecision, WorkflowApproved, WorkflowRejected:
		return v, nil
	default:
		return "", dErrors.New(dErrors.CodeValidation, "invalid transfer state")
	}
}

// Decision is an inspector's verdict on a transfer.
type Decision string

const (
	DecisionApproved Decision = "approved"
	DecisionRejected Decision = "rejected"
)

func ParseDecision(s string) (Decision, error) {
	switch v := Decision(s); v {
	case DecisionApproved, DecisionRejected:
		return v, nil
	default:
		return "", dErrors.New(dErrors.CodeValidation, "decision must be approved or rejected")
	}
}

// PartyRole names the side of a transfer a verification photo belongs to.
type PartyRole string

const (
	PartySeller PartyRole = "seller"
	PartyBuyer  PartyRole = "buyer"
)

func ParsePartyRole(s string) (PartyRole, error) {
	switch v := PartyRole(s); v {
	case PartySeller, PartyBuyer:
		return v, nil
	default:
		return "", dErrors.New(dErrors.CodeValidation, "role must be seller or buyer")
	}
}

func allowed[S comparable](table map[S][]S, from, to S) bool {
	return slices.Contains(table[from], to)
}
