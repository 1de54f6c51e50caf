package models

import (
	"slices"

	id "landtitle/pkg/domain"
)

// Filters narrow list queries. Zero fields do not filter.

type LandFilter struct {
	OwnerID       id.UserID
	AvailableOnly bool
}

func (f LandFilter) Matches(l *Land) bool {
	if !f.OwnerID.IsNil() && l.OwnerID != f.OwnerID {
		return false
	}
	if f.AvailableOnly && !l.IsAvailable() {
		return false
	}
	return true
}

type BuyRequestFilter struct {
	LandID   id.LandID
	BuyerID  id.UserID
	SellerID id.UserID
	Statuses []BuyRequestStatus
}

func (f BuyRequestFilter) Matches(b *BuyRequest) bool {
	if !f.LandID.IsNil() && b.LandID != f.LandID {
		return false
	}
	if !f.BuyerID.IsNil() && b.BuyerID != f.BuyerID {
		return false
	}
	if !f.SellerID.IsNil() && b.SellerID != f.SellerID {
		return false
	}
	return len(f.Statuses) == 0 || slices.Contains(f.Statuses, b.Status)
}

type PaymentFilter struct {
	// PartyID matches payments where the user is buyer or seller.
	PartyID  id.UserID
	LandID   id.LandID
	Type     PaymentType
	Statuses []PaymentStatus
}

func (f PaymentFilter) Matches(p *Payment) bool {
	if !f.PartyID.IsNil() && !p.IsParty(f.PartyID) {
		return false
	}
	if !f.LandID.IsNil() && p.LandID != f.LandID {
		return false
	}
	if f.Type != "" && p.Type != f.Type {
		return false
	}
	return len(f.Statuses) == 0 || slices.Contains(f.Statuses, p.Status)
}

type WorkflowFilter struct {
	States []WorkflowState
}

func (f WorkflowFilter) Matches(w *TransferWorkflow) bool {
	return len(f.States) == 0 || slices.Contains(f.States, w.State)
}
