package service

import (
	"context"
	"errors"

	"landtitle/internal/registry/models"
	id "landtitle/pkg/domain"
	dErrors "landtitle/pkg/domain-errors"
	"landtitle/pkg/platform/audit"
	"landtitle/pkg/platform/sentinel"
	"landtitle/pkg/requestcontext"
)

// SubmitBuyRequest opens a purchase request for an available parcel.
func (s *Service) SubmitBuyRequest(ctx context.Context, actor id.Principal, landID id.LandID) (*models.BuyRequest, error) {
	if err := requireUser(actor); err != nil {
		return nil, err
	}

	var br *models.BuyRequest
	err := s.runInTx(ctx, landID, func(ctx context.Context) error {
		land, err := s.store.FindLand(ctx, landID)
		if err != nil {
			return storeErr(err, "land")
		}
		if land.OwnerID == actor.UserID {
			return dErrors.New(dErrors.CodeValidation, "owners cannot buy their own land")
		}
		if !land.IsAvailable() {
			return dErrors.New(dErrors.CodeConflict, "land is not available for sale")
		}
		br = models.NewBuyRequest(land, actor.UserID, requestcontext.Now(ctx))
		if err := s.store.CreateBuyRequest(ctx, br); err != nil {
			if errors.Is(err, sentinel.ErrConflict) {
				return dErrors.New(dErrors.CodeConflict, "an open buy request for this land already exists")
			}
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to create buy request")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.logAudit(ctx, audit.EventBuyRequestSubmitted, actor, auditRecord{
		landID:  landID,
		subject: "buy_request:" + br.ID.String(),
	})
	return br, nil
}

// ReviewBuyRequest approves or rejects a pending request.
func (s *Service) ReviewBuyRequest(ctx context.Context, actor id.Principal, brID id.BuyRequestID, approved bool, comments string) (*models.BuyRequest, error) {
	if err := requireInspector(actor); err != nil {
		return nil, err
	}
	current, err := s.store.FindBuyRequest(ctx, brID)
	if err != nil {
		return nil, storeErr(err, "buy request")
	}

	var br *models.BuyRequest
	err = s.runInTx(ctx, current.LandID, func(ctx context.Context) error {
		var err error
		br, err = s.store.FindBuyRequest(ctx, brID)
		if err != nil {
			return storeErr(err, "buy request")
		}
		if err := br.Review(approved, comments, actor.UserID, requestcontext.Now(ctx)); err != nil {
			return err
		}
		return storeErr(s.store.SaveBuyRequest(ctx, br), "buy request")
	})
	if err != nil {
		return nil, err
	}

	s.logAudit(ctx, audit.EventBuyRequestReviewed, actor, auditRecord{
		landID:   br.LandID,
		userID:   br.BuyerID,
		subject:  "buy_request:" + br.ID.String(),
		decision: string(br.Status),
	})
	return br, nil
}

// ListBuyRequests lists requests. Inspectors see everything; other users see
// only requests where they are the buyer or the seller, and must say which.
func (s *Service) ListBuyRequests(ctx context.Context, actor id.Principal, filter models.BuyRequestFilter) ([]*models.BuyRequest, error) {
	if err := requireUser(actor); err != nil {
		return nil, err
	}
	if !actor.IsInspector() && filter.BuyerID != actor.UserID && filter.SellerID != actor.UserID {
		return nil, dErrors.New(dErrors.CodeForbidden, "can only list your own buy requests")
	}
	out, err := s.store.ListBuyRequests(ctx, filter)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list buy requests")
	}
	return out, nil
}
