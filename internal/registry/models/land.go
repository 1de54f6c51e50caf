package models

import (
	"encoding/json"
	"slices"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	id "landtitle/pkg/domain"
	dErrors "landtitle/pkg/domain-errors"
)

// Land is a registered parcel. It is never deleted, only re-owned.
//
// Invariants:
//   - SurveyNumber is unique ignoring case
//   - Price is positive
//   - Status moves listed -> underSale -> transferred -> listed only
//   - IsListed implies Status == listed
type Land struct {
	ID           id.LandID
	Location     string
	SurveyNumber string
	Area         string
	// Boundary is a GeoJSON Polygon or MultiPolygon, nil when not surveyed.
	Boundary       json.RawMessage
	BoundaryAreaM2 float64
	Price          decimal.Decimal
	OwnerID        id.UserID
	OwnerWallet    string

	VerificationStatus   VerificationStatus
	VerificationComments string
	VerifiedBy           id.UserID

	Status             LandStatus
	IsListed           bool
	ListingPrice       *decimal.Decimal
	ListingDescription string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// NewLand validates registration input and builds a pending, listed parcel.
func NewLand(location, surveyNumber, area string, price decimal.Decimal, owner id.UserID, wallet string, now time.Time) (*Land, error) {
	location = strings.TrimSpace(location)
	surveyNumber = strings.TrimSpace(surveyNumber)
	area = strings.TrimSpace(area)
	switch {
	case location == "":
		return nil, dErrors.New(dErrors.CodeValidation, "location is required")
	case surveyNumber == "":
		return nil, dErrors.New(dErrors.CodeValidation, "survey number is required")
	case area == "":
		return nil, dErrors.New(dErrors.CodeValidation, "area is required")
	case !price.IsPositive():
		return nil, dErrors.New(dErrors.CodeValidation, "price must be positive")
	case owner.IsNil():
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "owner is required")
	}
	return &Land{
		ID:                 id.NewLandID(),
		Location:           location,
		SurveyNumber:       surveyNumber,
		Area:               area,
		Price:              price,
		OwnerID:            owner,
		OwnerWallet:        wallet,
		VerificationStatus: VerificationPending,
		Status:             LandListed,
		IsListed:           true,
		CreatedAt:          now,
		UpdatedAt:          now,
	}, nil
}

// IsAvailable reports whether buyers may request this parcel.
func (l *Land) IsAvailable() bool {
	return l.VerificationStatus == VerificationApproved && l.IsListed && l.Status == LandListed
}

// Verify records the inspector's verdict. Only pending parcels are reviewed.
func (l *Land) Verify(verdict VerificationStatus, comments string, inspector id.UserID, now time.Time) error {
	if l.VerificationStatus != VerificationPending {
		return dErrors.New(dErrors.CodeConflict, "land has already been reviewed")
	}
	l.VerificationStatus = verdict
	l.VerificationComments = strings.TrimSpace(comments)
	l.VerifiedBy = inspector
	l.UpdatedAt = now
	return nil
}

// MarkUnderSale takes the parcel off the market once a payment is recorded.
func (l *Land) MarkUnderSale(now time.Time) error {
	if !l.IsAvailable() || !l.Status.CanTransitionTo(LandUnderSale) {
		return dErrors.New(dErrors.CodeConflict, "land is not available for sale")
	}
	l.Status = LandUnderSale
	l.IsListed = false
	l.UpdatedAt = now
	return nil
}

// ApplyTransfer re-owns the parcel to the buyer and clears the listing.
func (l *Land) ApplyTransfer(buyer id.UserID, buyerWallet string, now time.Time) error {
	if !l.Status.CanTransitionTo(LandTransferred) {
		return dErrors.New(dErrors.CodeConflict, "land is not under sale")
	}
	l.OwnerID = buyer
	l.OwnerWallet = buyerWallet
	l.Status = LandTransferred
	l.IsListed = false
	l.ListingPrice = nil
	l.ListingDescription = ""
	l.UpdatedAt = now
	return nil
}

// ApplyListing re-lists a transferred parcel at a new price.
func (l *Land) ApplyListing(price decimal.Decimal, description string, now time.Time) error {
	if !l.Status.CanTransitionTo(LandListed) {
		return dErrors.New(dErrors.CodeConflict, "land is not awaiting re-listing")
	}
	l.Status = LandListed
	l.IsListed = true
	l.Price = price
	l.ListingPrice = &price
	l.ListingDescription = strings.TrimSpace(description)
	l.UpdatedAt = now
	return nil
}

func (l *Land) Clone() *Land {
	c := *l
	c.Boundary = slices.Clone(l.Boundary)
	if l.ListingPrice != nil {
		p := *l.ListingPrice
		c.ListingPrice = &p
	}
	return &c
}
