package service

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
	"go.opentelemetry.io/otel/attribute"

	"landtitle/internal/certificate"
	"landtitle/internal/registry/models"
	id "landtitle/pkg/domain"
	dErrors "landtitle/pkg/domain-errors"
	"landtitle/pkg/platform/audit"
	"landtitle/pkg/platform/sentinel"
	"landtitle/pkg/requestcontext"
)

// ListForSale puts a transferred parcel back on the market. The owner must
// present the certificate of the latest transfer; a document that is
// unreadable or does not match leaves the parcel untouched.
func (s *Service) ListForSale(ctx context.Context, actor id.Principal, landID id.LandID, document []byte, price decimal.Decimal, description string) (_ *models.Land, err error) {
	ctx, span := s.startSpan(ctx, "ListForSale", attribute.String("land_id", landID.String()))
	defer func() { endSpan(span, err) }()

	if err := requireUser(actor); err != nil {
		return nil, err
	}
	if !price.IsPositive() {
		return nil, dErrors.New(dErrors.CodeValidation, "price must be positive")
	}
	land, err := s.GetLand(ctx, landID)
	if err != nil {
		return nil, err
	}
	if land.OwnerID != actor.UserID {
		return nil, dErrors.New(dErrors.CodeForbidden, "only the current owner can list this land")
	}
	if land.Status != models.LandTransferred {
		return nil, dErrors.New(dErrors.CodeConflict, "land is not awaiting re-listing")
	}
	rec, err := s.store.LatestTransferRecord(ctx, landID)
	if errors.Is(err, sentinel.ErrNotFound) {
		return nil, dErrors.New(dErrors.CodeConflict, "land has no recorded transfer")
	}
	if err != nil {
		return nil, storeErr(err, "transfer record")
	}

	if err := certificate.Verify(document, rec.Facts()); err != nil {
		outcome := "mismatch"
		if dErrors.HasCode(err, dErrors.CodeDocumentUnreadable) {
			outcome = "unreadable"
		}
		s.metrics.IncrementCertificateVerification(outcome)
		s.logAudit(ctx, audit.EventCertificateInvalid, actor, auditRecord{
			landID:   landID,
			subject:  "transfer_record:" + rec.ID.String(),
			decision: "rejected",
			reason:   string(dErrors.CodeOf(err)),
		})
		return nil, err
	}
	s.metrics.IncrementCertificateVerification("match")

	err = s.runInTx(ctx, landID, func(ctx context.Context) error {
		var err error
		land, err = s.store.FindLand(ctx, landID)
		if err != nil {
			return storeErr(err, "land")
		}
		if land.OwnerID != actor.UserID {
			return dErrors.New(dErrors.CodeForbidden, "only the current owner can list this land")
		}
		if err := land.ApplyListing(price, description, requestcontext.Now(ctx)); err != nil {
			return err
		}
		return storeErr(s.store.SaveLand(ctx, land), "land")
	})
	if err != nil {
		return nil, err
	}

	s.logAudit(ctx, audit.EventLandListed, actor, auditRecord{
		landID:  landID,
		subject: "land:" + landID.String(),
	}, "price", price.String())
	return land, nil
}
