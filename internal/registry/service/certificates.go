package service

import (
	"context"

	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/errgroup"

	authmodels "landtitle/internal/auth/models"
	"landtitle/internal/certificate"
	"landtitle/internal/registry/models"
	id "landtitle/pkg/domain"
	dErrors "landtitle/pkg/domain-errors"
	"landtitle/pkg/platform/audit"
)

// IssueCertificate renders the PDF certificate of a completed transfer with
// the record's fingerprint embedded. Parties and inspectors may fetch it.
func (s *Service) IssueCertificate(ctx context.Context, actor id.Principal, recordID id.TransferRecordID) (_ []byte, err error) {
	ctx, span := s.startSpan(ctx, "IssueCertificate", attribute.String("transfer_record_id", recordID.String()))
	defer func() { endSpan(span, err) }()

	if err := requireUser(actor); err != nil {
		return nil, err
	}
	rec, err := s.store.FindTransferRecord(ctx, recordID)
	if err != nil {
		return nil, storeErr(err, "transfer record")
	}
	if !actor.IsInspector() && !rec.IsParty(actor.UserID) {
		return nil, dErrors.New(dErrors.CodeForbidden, "not a party to this transfer")
	}

	var seller, buyer *authmodels.User
	var payment *models.Payment
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		seller, err = s.findUser(gctx, rec.SellerID)
		return err
	})
	g.Go(func() (err error) {
		buyer, err = s.findUser(gctx, rec.BuyerID)
		return err
	})
	g.Go(func() error {
		p, err := s.store.FindPayment(gctx, rec.PaymentID)
		if err != nil {
			return storeErr(err, "payment")
		}
		payment = p
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	facts := rec.Facts()
	fp := certificate.Compute(facts)
	if !fp.Equal(certificate.Fingerprint(rec.Fingerprint)) {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "transfer record fingerprint does not match its facts")
	}

	doc := certificate.Document{
		DocumentID:  rec.ID.String(),
		Facts:       facts,
		Seller:      certificateParty(seller),
		Buyer:       certificateParty(buyer),
		AmountINR:   payment.Amount,
		PaymentType: string(payment.Type),
		CompletedAt: rec.CompletedAt,
	}
	if rec.SellerPhoto != nil {
		doc.SellerVerifiedAt = rec.SellerPhoto.CapturedAt
	}
	if rec.BuyerPhoto != nil {
		doc.BuyerVerifiedAt = rec.BuyerPhoto.CapturedAt
	}
	pdf, err := s.codec.Embed(doc, fp)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to render certificate")
	}

	s.logAudit(ctx, audit.EventCertificateIssued, actor, auditRecord{
		landID:  rec.LandID,
		userID:  rec.BuyerID,
		subject: "transfer_record:" + rec.ID.String(),
	}, "fingerprint", fp.String())
	s.metrics.IncrementCertificatesIssued()
	return pdf, nil
}

func certificateParty(u *authmodels.User) certificate.Party {
	return certificate.Party{
		Name:     u.Name,
		Email:    u.Email,
		Phone:    u.Phone,
		GovID:    u.GovID,
		WalletID: u.WalletAddress,
	}
}
