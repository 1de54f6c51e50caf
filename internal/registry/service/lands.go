package service

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/shopspring/decimal"

	"landtitle/internal/registry/models"
	id "landtitle/pkg/domain"
	dErrors "landtitle/pkg/domain-errors"
	"landtitle/pkg/platform/audit"
	"landtitle/pkg/platform/sentinel"
	"landtitle/pkg/requestcontext"
)

// RegisterLandInput carries a parcel registration.
type RegisterLandInput struct {
	Location     string
	SurveyNumber string
	Area         string
	Price        decimal.Decimal
	// Boundary is an optional GeoJSON Polygon or MultiPolygon.
	Boundary json.RawMessage
}

// RegisterLand records a parcel owned by the actor, pending inspection.
func (s *Service) RegisterLand(ctx context.Context, actor id.Principal, in RegisterLandInput) (*models.Land, error) {
	if err := requireUser(actor); err != nil {
		return nil, err
	}
	owner, err := s.findUser(ctx, actor.UserID)
	if err != nil {
		return nil, err
	}
	land, err := models.NewLand(in.Location, in.SurveyNumber, in.Area, in.Price, owner.ID, owner.WalletAddress, requestcontext.Now(ctx))
	if err != nil {
		return nil, err
	}
	if len(in.Boundary) > 0 && string(in.Boundary) != "null" {
		area, err := models.ParseBoundary(in.Boundary)
		if err != nil {
			return nil, err
		}
		land.Boundary = in.Boundary
		land.BoundaryAreaM2 = area
	}

	if err := s.store.CreateLand(ctx, land); err != nil {
		if errors.Is(err, sentinel.ErrConflict) {
			return nil, dErrors.New(dErrors.CodeConflict, "survey number already registered")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to register land")
	}

	s.logAudit(ctx, audit.EventLandRegistered, actor, auditRecord{
		landID:  land.ID,
		subject: "land:" + land.ID.String(),
	}, "survey_number", land.SurveyNumber)
	s.metrics.IncrementLandsRegistered()
	return land, nil
}

// VerifyLand applies an inspector's verdict to a pending parcel.
func (s *Service) VerifyLand(ctx context.Context, actor id.Principal, landID id.LandID, verdict models.VerificationStatus, comments string) (*models.Land, error) {
	if err := requireInspector(actor); err != nil {
		return nil, err
	}
	if verdict != models.VerificationApproved && verdict != models.VerificationRejected {
		return nil, dErrors.New(dErrors.CodeValidation, "verdict must be approved or rejected")
	}

	var land *models.Land
	err := s.runInTx(ctx, landID, func(ctx context.Context) error {
		var err error
		land, err = s.store.FindLand(ctx, landID)
		if err != nil {
			return storeErr(err, "land")
		}
		if err := land.Verify(verdict, comments, actor.UserID, requestcontext.Now(ctx)); err != nil {
			return err
		}
		return storeErr(s.store.SaveLand(ctx, land), "land")
	})
	if err != nil {
		return nil, err
	}

	s.logAudit(ctx, audit.EventLandVerified, actor, auditRecord{
		landID:   land.ID,
		userID:   land.OwnerID,
		subject:  "land:" + land.ID.String(),
		decision: string(verdict),
	})
	return land, nil
}

func (s *Service) GetLand(ctx context.Context, landID id.LandID) (*models.Land, error) {
	land, err := s.store.FindLand(ctx, landID)
	if err != nil {
		return nil, storeErr(err, "land")
	}
	return land, nil
}

// ListAvailableLands returns verified parcels open to buy requests.
func (s *Service) ListAvailableLands(ctx context.Context) ([]*models.Land, error) {
	lands, err := s.store.ListLands(ctx, models.LandFilter{AvailableOnly: true})
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list lands")
	}
	return lands, nil
}

func (s *Service) ListOwnedLands(ctx context.Context, actor id.Principal) ([]*models.Land, error) {
	if err := requireUser(actor); err != nil {
		return nil, err
	}
	lands, err := s.store.ListLands(ctx, models.LandFilter{OwnerID: actor.UserID})
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list lands")
	}
	return lands, nil
}

// ListTransferRecords returns a parcel's ownership history, oldest first.
func (s *Service) ListTransferRecords(ctx context.Context, actor id.Principal, landID id.LandID) ([]*models.TransferRecord, error) {
	if err := requireUser(actor); err != nil {
		return nil, err
	}
	if _, err := s.GetLand(ctx, landID); err != nil {
		return nil, err
	}
	records, err := s.store.ListTransferRecords(ctx, landID)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list transfer records")
	}
	return records, nil
}
