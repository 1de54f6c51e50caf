package service

import (
	"github.com/shopspring/decimal"

	"landtitle/internal/certificate"
	"landtitle/internal/registry/models"
	id "landtitle/pkg/domain"
	dErrors "landtitle/pkg/domain-errors"
	"landtitle/pkg/platform/audit"
)

func (s *RegistryServiceSuite) TestRequestTransfer() {
	land, p := s.escrowPayment("SN200", 200)

	s.Run("only the owner", func() {
		_, err := s.service.RequestTransfer(s.ctx(), as(s.buyer), land.ID, p.ID)
		s.True(dErrors.HasCode(err, dErrors.CodeForbidden))
	})

	w, err := s.service.RequestTransfer(s.ctx(), as(s.seller), land.ID, p.ID)
	s.Require().NoError(err)
	s.Equal(models.WorkflowRequested, w.State)
	s.Equal(1, w.Attempt)

	s.Run("repeat returns the open workflow", func() {
		again, err := s.service.RequestTransfer(s.ctx(), as(s.seller), land.ID, p.ID)
		s.Require().NoError(err)
		s.Equal(w.ID, again.ID)
	})

	s.Run("buyer photo before seller photo", func() {
		_, err := s.service.CaptureVerificationPhoto(s.ctx(), as(s.inspector), w.ID, models.PartyBuyer, jpegURI, s.now)
		s.True(dErrors.HasCode(err, dErrors.CodeConflict))
	})

	s.Run("photos are images", func() {
		_, err := s.service.CaptureVerificationPhoto(s.ctx(), as(s.inspector), w.ID, models.PartySeller, "data:text/plain;base64,aGVsbG8=", s.now)
		s.True(dErrors.HasCode(err, dErrors.CodeValidation))
	})

	s.Run("decision needs both photos", func() {
		_, _, err := s.service.DecideTransfer(s.ctx(), as(s.inspector), w.ID, models.DecisionRejected, "")
		s.True(dErrors.HasCode(err, dErrors.CodeConflict))
	})
}

func (s *RegistryServiceSuite) TestDecideTransfer_FundsNotReleased() {
	land, p := s.escrowPayment("SN210", 210)
	w := s.awaitingDecision(land, p)

	_, _, err := s.service.DecideTransfer(s.ctx(), as(s.inspector), w.ID, models.DecisionApproved, "")
	s.True(dErrors.HasCode(err, dErrors.CodeFundsNotReleased), "got %v", err)

	after, err := s.service.GetLand(s.ctx(), land.ID)
	s.Require().NoError(err)
	s.Equal(s.seller.ID, after.OwnerID)
	s.Equal(models.LandUnderSale, after.Status)

	unchanged, err := s.service.GetWorkflowByPayment(s.ctx(), as(s.seller), p.ID)
	s.Require().NoError(err)
	s.Equal(models.WorkflowAwaitingDecision, unchanged.State)

	records, err := s.service.ListTransferRecords(s.ctx(), as(s.seller), land.ID)
	s.Require().NoError(err)
	s.Empty(records)
}

func (s *RegistryServiceSuite) TestDecideTransfer_RejectThenResubmit() {
	land, p := s.escrowPayment("SN220", 220)
	w := s.awaitingDecision(land, p)

	rejected, rec, err := s.service.DecideTransfer(s.ctx(), as(s.inspector), w.ID, models.DecisionRejected, "photo does not match ID")
	s.Require().NoError(err)
	s.Nil(rec)
	s.Equal(models.WorkflowRejected, rejected.State)
	s.Equal("photo does not match ID", rejected.Comments)

	_, _, err = s.service.DecideTransfer(s.ctx(), as(s.inspector), w.ID, models.DecisionApproved, "")
	s.True(dErrors.HasCode(err, dErrors.CodeConflict))

	resubmitted, err := s.service.RequestTransfer(s.ctx(), as(s.seller), land.ID, p.ID)
	s.Require().NoError(err)
	s.Equal(w.ID, resubmitted.ID)
	s.Equal(2, resubmitted.Attempt)
	s.Equal(models.WorkflowRequested, resubmitted.State)
	s.Nil(resubmitted.SellerPhoto)

	pending, err := s.service.ListWorkflows(s.ctx(), as(s.inspector), []models.WorkflowState{models.WorkflowRequested})
	s.Require().NoError(err)
	s.Len(pending, 1)
}

func (s *RegistryServiceSuite) TestDecideTransfer_Approve() {
	land, p := s.escrowPayment("SN230", 230)
	s.release(p, 231)
	w := s.awaitingDecision(land, p)

	approved, rec, err := s.service.DecideTransfer(s.ctx(), as(s.inspector), w.ID, models.DecisionApproved, "identities match")
	s.Require().NoError(err)
	s.Equal(models.WorkflowApproved, approved.State)
	s.Require().NotNil(rec)
	s.Equal(s.seller.ID, rec.SellerID)
	s.Equal(s.buyer.ID, rec.BuyerID)
	s.Equal(txHash(230), rec.TxID)
	s.Equal(certificate.Compute(rec.Facts()).String(), rec.Fingerprint)

	after, err := s.service.GetLand(s.ctx(), land.ID)
	s.Require().NoError(err)
	s.Equal(s.buyer.ID, after.OwnerID)
	s.Equal(buyerWallet, after.OwnerWallet)
	s.Equal(models.LandTransferred, after.Status)
	s.False(after.IsListed)

	_, err = s.service.RequestTransfer(s.ctx(), as(s.buyer), land.ID, p.ID)
	s.Error(err)

	s.Contains(s.auditActions(land.ID), string(audit.EventOwnershipChanged))
}

// TestChennaiResale walks a parcel from registration through escrow, transfer
// and certificate-gated re-listing.
func (s *RegistryServiceSuite) TestChennaiResale() {
	land, p := s.escrowPayment("SN100", 100)
	s.Equal("5000 sq ft", land.Area)
	s.release(p, 101)
	w := s.awaitingDecision(land, p)
	_, rec, err := s.service.DecideTransfer(s.ctx(), as(s.inspector), w.ID, models.DecisionApproved, "")
	s.Require().NoError(err)

	pdf, err := s.service.IssueCertificate(s.ctx(), as(s.buyer), rec.ID)
	s.Require().NoError(err)
	s.Equal("%PDF", string(pdf[:4]))

	extracted, err := certificate.Extract(pdf)
	s.Require().NoError(err)
	s.True(extracted.Equal(certificate.Fingerprint(rec.Fingerprint)))

	s.Run("outsiders cannot fetch the certificate", func() {
		_, err := s.service.IssueCertificate(s.ctx(), as(s.newUser("Outsider", id.RoleUser, "")), rec.ID)
		s.True(dErrors.HasCode(err, dErrors.CodeForbidden))
	})

	s.Run("previous owner cannot list", func() {
		_, err := s.service.ListForSale(s.ctx(), as(s.seller), land.ID, pdf, decimal.NewFromInt(6_000_000), "")
		s.True(dErrors.HasCode(err, dErrors.CodeForbidden))
	})

	s.Run("tampered area is rejected", func() {
		facts := rec.Facts()
		facts.Area = "6000 sq ft"
		forged, err := certificate.NewCodec().Embed(certificate.Document{
			DocumentID:  rec.ID.String(),
			Facts:       facts,
			AmountINR:   landPrice,
			CompletedAt: rec.CompletedAt,
		}, certificate.Compute(facts))
		s.Require().NoError(err)

		_, err = s.service.ListForSale(s.ctx(), as(s.buyer), land.ID, forged, decimal.NewFromInt(6_000_000), "")
		s.True(dErrors.HasCode(err, dErrors.CodeFingerprintMismatch), "got %v", err)
	})

	s.Run("unreadable document is rejected", func() {
		_, err := s.service.ListForSale(s.ctx(), as(s.buyer), land.ID, []byte("not a pdf"), decimal.NewFromInt(6_000_000), "")
		s.True(dErrors.HasCode(err, dErrors.CodeDocumentUnreadable), "got %v", err)
	})

	unlisted, err := s.service.GetLand(s.ctx(), land.ID)
	s.Require().NoError(err)
	s.Equal(models.LandTransferred, unlisted.Status)

	listed, err := s.service.ListForSale(s.ctx(), as(s.buyer), land.ID, pdf, decimal.NewFromInt(6_000_000), "corner plot near the metro")
	s.Require().NoError(err)
	s.Equal(models.LandListed, listed.Status)
	s.True(listed.IsListed)
	s.True(listed.Price.Equal(decimal.NewFromInt(6_000_000)))
	s.True(listed.IsAvailable())

	_, err = s.service.ListForSale(s.ctx(), as(s.buyer), land.ID, pdf, decimal.NewFromInt(6_000_000), "")
	s.True(dErrors.HasCode(err, dErrors.CodeConflict), "already listed")

	actions := s.auditActions(land.ID)
	s.Contains(actions, string(audit.EventCertificateIssued))
	s.Contains(actions, string(audit.EventCertificateInvalid))
	s.Equal(string(audit.EventLandListed), actions[len(actions)-1])

	s.Run("second sale of the same parcel", func() {
		third := s.newUser("Lakshmi Narayanan", id.RoleUser, "")
		br, err := s.service.SubmitBuyRequest(s.ctx(), as(third), land.ID)
		s.Require().NoError(err)
		s.Equal(s.buyer.ID, br.SellerID)
	})
}
