package service

//go:generate mockgen -source=service.go -destination=mocks/mocks.go -package=mocks

import (
	"encoding/json"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	"landtitle/internal/ledger"
	"landtitle/internal/registry/models"
	id "landtitle/pkg/domain"
	dErrors "landtitle/pkg/domain-errors"
	"landtitle/pkg/platform/audit"
)

type RegistryServiceSuite struct {
	registryFixture
}

func TestRegistryServiceSuite(t *testing.T) {
	suite.Run(t, new(RegistryServiceSuite))
}

func (s *RegistryServiceSuite) TestRegisterLand() {
	s.Run("owner wallet comes from the profile", func() {
		land, err := s.service.RegisterLand(s.ctx(), as(s.seller), RegisterLandInput{
			Location: " Chennai ", SurveyNumber: "SN1", Area: "5000 sq ft", Price: landPrice,
		})
		s.Require().NoError(err)
		s.Equal("Chennai", land.Location)
		s.Equal(sellerWallet, land.OwnerWallet)
		s.Equal(models.VerificationPending, land.VerificationStatus)
		s.Equal(models.LandListed, land.Status)
		s.False(land.IsAvailable())
		s.Equal([]string{string(audit.EventLandRegistered)}, s.auditActions(land.ID))
	})

	s.Run("survey number is unique ignoring case", func() {
		_, err := s.service.RegisterLand(s.ctx(), as(s.buyer), RegisterLandInput{
			Location: "Madurai", SurveyNumber: "sn1", Area: "1 acre", Price: landPrice,
		})
		s.True(dErrors.HasCode(err, dErrors.CodeConflict), "got %v", err)
	})

	s.Run("boundary area is computed", func() {
		boundary := json.RawMessage(`{"type":"Polygon","coordinates":[[[80.27,13.08],[80.271,13.08],[80.271,13.081],[80.27,13.081],[80.27,13.08]]]}`)
		land, err := s.service.RegisterLand(s.ctx(), as(s.seller), RegisterLandInput{
			Location: "Chennai", SurveyNumber: "SN2", Area: "2.4 acres", Price: landPrice, Boundary: boundary,
		})
		s.Require().NoError(err)
		s.InDelta(12000, land.BoundaryAreaM2, 1500)
	})

	s.Run("open boundary ring is rejected", func() {
		boundary := json.RawMessage(`{"type":"Polygon","coordinates":[[[80.27,13.08],[80.271,13.08],[80.271,13.081],[80.27,13.081]]]}`)
		_, err := s.service.RegisterLand(s.ctx(), as(s.seller), RegisterLandInput{
			Location: "Chennai", SurveyNumber: "SN3", Area: "1 acre", Price: landPrice, Boundary: boundary,
		})
		s.True(dErrors.HasCode(err, dErrors.CodeValidation), "got %v", err)
	})

	s.Run("anonymous callers are rejected", func() {
		_, err := s.service.RegisterLand(s.ctx(), id.Principal{}, RegisterLandInput{})
		s.True(dErrors.HasCode(err, dErrors.CodeUnauthorized))
	})
}

func (s *RegistryServiceSuite) TestVerifyLand() {
	land, err := s.service.RegisterLand(s.ctx(), as(s.seller), RegisterLandInput{
		Location: "Chennai", SurveyNumber: "SN10", Area: "5000 sq ft", Price: landPrice,
	})
	s.Require().NoError(err)

	_, err = s.service.VerifyLand(s.ctx(), as(s.seller), land.ID, models.VerificationApproved, "")
	s.True(dErrors.HasCode(err, dErrors.CodeForbidden))

	verified, err := s.service.VerifyLand(s.ctx(), as(s.inspector), land.ID, models.VerificationApproved, "ok")
	s.Require().NoError(err)
	s.True(verified.IsAvailable())
	s.Equal(s.inspector.ID, verified.VerifiedBy)

	_, err = s.service.VerifyLand(s.ctx(), as(s.inspector), land.ID, models.VerificationRejected, "")
	s.True(dErrors.HasCode(err, dErrors.CodeConflict))

	available, err := s.service.ListAvailableLands(s.ctx())
	s.Require().NoError(err)
	s.Len(available, 1)
}

func (s *RegistryServiceSuite) TestSubmitBuyRequest() {
	land := s.approvedLand("SN20")

	s.Run("owner cannot buy own land", func() {
		_, err := s.service.SubmitBuyRequest(s.ctx(), as(s.seller), land.ID)
		s.True(dErrors.HasCode(err, dErrors.CodeValidation))
	})

	s.Run("one open request per buyer", func() {
		_, err := s.service.SubmitBuyRequest(s.ctx(), as(s.buyer), land.ID)
		s.Require().NoError(err)
		_, err = s.service.SubmitBuyRequest(s.ctx(), as(s.buyer), land.ID)
		s.True(dErrors.HasCode(err, dErrors.CodeConflict))
	})

	s.Run("unverified land is not for sale", func() {
		pending, err := s.service.RegisterLand(s.ctx(), as(s.seller), RegisterLandInput{
			Location: "Chennai", SurveyNumber: "SN21", Area: "1 acre", Price: landPrice,
		})
		s.Require().NoError(err)
		_, err = s.service.SubmitBuyRequest(s.ctx(), as(s.buyer), pending.ID)
		s.True(dErrors.HasCode(err, dErrors.CodeConflict))
	})

	s.Run("listing requires saying which side", func() {
		_, err := s.service.ListBuyRequests(s.ctx(), as(s.buyer), models.BuyRequestFilter{})
		s.True(dErrors.HasCode(err, dErrors.CodeForbidden))

		mine, err := s.service.ListBuyRequests(s.ctx(), as(s.buyer), models.BuyRequestFilter{BuyerID: s.buyer.ID})
		s.Require().NoError(err)
		s.Len(mine, 1)

		all, err := s.service.ListBuyRequests(s.ctx(), as(s.inspector), models.BuyRequestFilter{})
		s.Require().NoError(err)
		s.Len(all, 1)
	})
}

func (s *RegistryServiceSuite) recordInput(br *models.BuyRequest, n int, paymentType models.PaymentType) RecordPaymentInput {
	return RecordPaymentInput{BuyRequestID: br.ID, TxID: txHash(n), Amount: landPrice, Type: paymentType}
}

func (s *RegistryServiceSuite) TestRecordPayment_Escrow() {
	land := s.approvedLand("SN30")
	br := s.approvedRequest(land, s.buyer)
	s.seedTx(txHash(30), custodianWallet, s.wei(landPrice), ledger.TxConfirmed)

	p, err := s.service.RecordPayment(s.ctx(), as(s.buyer), s.recordInput(br, 30, models.PaymentEscrow))
	s.Require().NoError(err)
	s.Equal(models.PaymentInEscrow, p.Status)
	s.Len(p.History, 2)
	s.Equal(models.SystemActor, p.History[1].Actor)

	after, err := s.service.GetLand(s.ctx(), land.ID)
	s.Require().NoError(err)
	s.Equal(models.LandUnderSale, after.Status)
	s.False(after.IsListed)

	paid, err := s.store.FindBuyRequest(s.ctx(), br.ID)
	s.Require().NoError(err)
	s.Equal(models.BuyRequestPaid, paid.Status)

	s.Run("replay returns the same payment", func() {
		again, err := s.service.RecordPayment(s.ctx(), as(s.buyer), s.recordInput(br, 30, models.PaymentEscrow))
		s.Require().NoError(err)
		s.Equal(p.ID, again.ID)

		all, err := s.service.ListPayments(s.ctx(), as(s.buyer))
		s.Require().NoError(err)
		s.Len(all, 1)
	})

	s.Run("tx id reused for another purchase conflicts", func() {
		other := s.approvedRequest(s.approvedLand("SN31"), s.buyer)
		_, err := s.service.RecordPayment(s.ctx(), as(s.buyer), s.recordInput(other, 30, models.PaymentEscrow))
		s.True(dErrors.HasCode(err, dErrors.CodeConflict), "got %v", err)
	})

	s.Run("only parties see the payment", func() {
		_, err := s.service.GetPayment(s.ctx(), as(s.newUser("Outsider", id.RoleUser, "")), p.ID)
		s.True(dErrors.HasCode(err, dErrors.CodeForbidden))
		_, err = s.service.GetPayment(s.ctx(), as(s.seller), p.ID)
		s.NoError(err)
	})
}

func (s *RegistryServiceSuite) TestRecordPayment_Direct() {
	land := s.approvedLand("SN40")
	br := s.approvedRequest(land, s.buyer)
	s.seedTx(txHash(40), sellerWallet, s.wei(landPrice), ledger.TxConfirmed)

	p, err := s.service.RecordPayment(s.ctx(), as(s.buyer), s.recordInput(br, 40, models.PaymentDirect))
	s.Require().NoError(err)
	s.Equal(models.PaymentCompleted, p.Status)
	s.True(p.FundsReleased())
}

func (s *RegistryServiceSuite) TestRecordPayment_Rejections() {
	land := s.approvedLand("SN50")
	br := s.approvedRequest(land, s.buyer)

	cases := []struct {
		name  string
		seed  func()
		input RecordPaymentInput
		actor id.Principal
		code  dErrors.Code
	}{
		{
			name:  "malformed tx id",
			input: RecordPaymentInput{BuyRequestID: br.ID, TxID: "0x1234", Amount: landPrice, Type: models.PaymentEscrow},
			actor: as(s.buyer),
			code:  dErrors.CodeValidation,
		},
		{
			name:  "not the buyer",
			input: s.recordInput(br, 50, models.PaymentEscrow),
			actor: as(s.seller),
			code:  dErrors.CodeForbidden,
		},
		{
			name:  "amount differs from price",
			input: RecordPaymentInput{BuyRequestID: br.ID, TxID: txHash(50), Amount: decimal.NewFromInt(1), Type: models.PaymentEscrow},
			actor: as(s.buyer),
			code:  dErrors.CodeValidation,
		},
		{
			name:  "unknown transaction",
			input: s.recordInput(br, 51, models.PaymentEscrow),
			actor: as(s.buyer),
			code:  dErrors.CodeLedgerFailure,
		},
		{
			name:  "reverted transaction",
			seed:  func() { s.seedTx(txHash(52), custodianWallet, s.wei(landPrice), ledger.TxFailed) },
			input: s.recordInput(br, 52, models.PaymentEscrow),
			actor: as(s.buyer),
			code:  dErrors.CodeLedgerFailure,
		},
		{
			name:  "escrow paid to the seller",
			seed:  func() { s.seedTx(txHash(53), sellerWallet, s.wei(landPrice), ledger.TxConfirmed) },
			input: s.recordInput(br, 53, models.PaymentEscrow),
			actor: as(s.buyer),
			code:  dErrors.CodeValidation,
		},
		{
			name:  "value below price",
			seed:  func() { s.seedTx(txHash(54), custodianWallet, s.wei(decimal.NewFromInt(4_999_000)), ledger.TxConfirmed) },
			input: s.recordInput(br, 54, models.PaymentEscrow),
			actor: as(s.buyer),
			code:  dErrors.CodeValidation,
		},
	}
	for _, tc := range cases {
		s.Run(tc.name, func() {
			if tc.seed != nil {
				tc.seed()
			}
			_, err := s.service.RecordPayment(s.ctx(), tc.actor, tc.input)
			s.True(dErrors.HasCode(err, tc.code), "got %v", err)
		})
	}

	after, err := s.service.GetLand(s.ctx(), land.ID)
	s.Require().NoError(err)
	s.Equal(models.LandListed, after.Status)
	s.True(after.IsAvailable())
}

func (s *RegistryServiceSuite) TestRecordPayment_PendingThenSynced() {
	land := s.approvedLand("SN60")
	br := s.approvedRequest(land, s.buyer)
	s.seedTx(txHash(60), custodianWallet, s.wei(landPrice), ledger.TxPending)

	p, err := s.service.RecordPayment(s.ctx(), as(s.buyer), s.recordInput(br, 60, models.PaymentEscrow))
	s.Require().NoError(err)
	s.Equal(models.PaymentPending, p.Status)

	_, err = s.service.RequestTransfer(s.ctx(), as(s.seller), land.ID, p.ID)
	s.True(dErrors.HasCode(err, dErrors.CodeConflict), "pending payment cannot start a transfer")

	unchanged, err := s.service.SyncPayment(s.ctx(), as(s.buyer), p.ID)
	s.Require().NoError(err)
	s.Equal(models.PaymentPending, unchanged.Status)

	s.ledger.SetStatus(txHash(60), ledger.TxConfirmed)
	synced, err := s.service.SyncPayment(s.ctx(), as(s.buyer), p.ID)
	s.Require().NoError(err)
	s.Equal(models.PaymentInEscrow, synced.Status)

	pending, err := s.service.PendingConfirmations(s.ctx())
	s.Require().NoError(err)
	s.Empty(pending)
}

func (s *RegistryServiceSuite) TestReleaseEscrow() {
	_, p := s.escrowPayment("SN70", 70)

	s.Run("requires confirmation", func() {
		_, err := s.service.ReleaseEscrow(s.ctx(), as(s.inspector), p.ID, ReleaseInput{
			Destination: destinationWallet, ReleaseTxID: txHash(71),
		})
		s.True(dErrors.HasCode(err, dErrors.CodeNotConfirmed))
	})

	s.Run("rejects a bad checksum", func() {
		_, err := s.service.ReleaseEscrow(s.ctx(), as(s.inspector), p.ID, ReleaseInput{
			Destination: "0xD1220A0cf47c7B9Be7A2E6BA89F429762e7b9adb", Confirmed: true, ReleaseTxID: txHash(71),
		})
		s.True(dErrors.HasCode(err, dErrors.CodeInvalidAddress))
	})

	s.Run("inspectors only", func() {
		_, err := s.service.ReleaseEscrow(s.ctx(), as(s.seller), p.ID, ReleaseInput{
			Destination: destinationWallet, Confirmed: true, ReleaseTxID: txHash(71),
		})
		s.True(dErrors.HasCode(err, dErrors.CodeForbidden))
	})

	released := s.release(p, 71)
	s.Equal(models.PaymentReleasedToSeller, released.Status)
	s.Equal(destinationWallet, released.ReleaseDestination)

	s.Run("replay is a no-op", func() {
		again := s.release(p, 71)
		s.Equal(released.History, again.History)
	})

	s.Run("a second release conflicts", func() {
		_, err := s.service.ReleaseEscrow(s.ctx(), as(s.inspector), p.ID, ReleaseInput{
			Destination: destinationWallet, Confirmed: true, ReleaseTxID: txHash(72),
		})
		s.True(dErrors.HasCode(err, dErrors.CodeConflict))
	})

	s.Run("release confirmation completes the payment", func() {
		s.ledger.Put(ledger.Transaction{Hash: txHash(71), Status: ledger.TxConfirmed, From: custodianWallet, To: destinationWallet})
		done, advanced, err := s.service.AdvancePayment(s.ctx(), p.ID)
		s.Require().NoError(err)
		s.True(advanced)
		s.Equal(models.PaymentCompleted, done.Status)
		s.Len(done.History, 4)
	})
}

func (s *RegistryServiceSuite) TestReleaseEscrow_LedgerChecks() {
	_, p := s.escrowPayment("SN75", 75)

	cases := []struct {
		name string
		seed func()
		n    int
		code dErrors.Code
	}{
		{
			name: "release tx unknown to the ledger",
			n:    76,
			code: dErrors.CodeLedgerFailure,
		},
		{
			name: "release tx already failed",
			seed: func() {
				s.ledger.Put(ledger.Transaction{Hash: txHash(77), Status: ledger.TxFailed, From: custodianWallet, To: destinationWallet})
			},
			n:    77,
			code: dErrors.CodeLedgerFailure,
		},
		{
			name: "release tx paid somebody else",
			seed: func() {
				s.ledger.Put(ledger.Transaction{Hash: txHash(78), Status: ledger.TxConfirmed, From: custodianWallet, To: sellerWallet})
			},
			n:    78,
			code: dErrors.CodeValidation,
		},
	}
	for _, tc := range cases {
		s.Run(tc.name, func() {
			if tc.seed != nil {
				tc.seed()
			}
			_, err := s.service.ReleaseEscrow(s.ctx(), as(s.inspector), p.ID, ReleaseInput{
				Destination: destinationWallet, Confirmed: true, ReleaseTxID: txHash(tc.n),
			})
			s.True(dErrors.HasCode(err, tc.code), "got %v", err)
		})
	}

	held, err := s.service.GetPayment(s.ctx(), as(s.inspector), p.ID)
	s.Require().NoError(err)
	s.Equal(models.PaymentInEscrow, held.Status)
	s.Empty(held.ReleaseTxID)
	s.Len(held.History, 2)
}

func (s *RegistryServiceSuite) TestReleaseEscrow_ReplacesFailedRelease() {
	land, p := s.escrowPayment("SN85", 85)
	s.release(p, 86)
	s.ledger.SetStatus(txHash(86), ledger.TxFailed)

	stuck, advanced, err := s.service.AdvancePayment(s.ctx(), p.ID)
	s.Require().NoError(err)
	s.False(advanced)
	s.Equal(models.PaymentReleasedToSeller, stuck.Status)

	s.Run("replacement must be on the ledger", func() {
		_, err := s.service.ReleaseEscrow(s.ctx(), as(s.inspector), p.ID, ReleaseInput{
			Destination: destinationWallet, Confirmed: true, ReleaseTxID: txHash(88),
		})
		s.True(dErrors.HasCode(err, dErrors.CodeLedgerFailure), "got %v", err)
	})

	replaced := s.release(p, 87)
	s.Equal(models.PaymentReleasedToSeller, replaced.Status)
	s.Equal(txHash(87), replaced.ReleaseTxID)
	s.Require().Len(replaced.History, 4)
	last := replaced.History[3]
	s.Equal(models.PaymentReleasedToSeller, last.From)
	s.Equal(models.PaymentReleasedToSeller, last.To)
	s.Equal(txHash(87), last.TxID)

	s.Run("replay of the replacement is a no-op", func() {
		again := s.release(p, 87)
		s.Equal(replaced.History, again.History)
	})

	s.Run("pending replacement cannot be replaced", func() {
		_, err := s.service.ReleaseEscrow(s.ctx(), as(s.inspector), p.ID, ReleaseInput{
			Destination: destinationWallet, Confirmed: true, ReleaseTxID: txHash(86),
		})
		s.True(dErrors.HasCode(err, dErrors.CodeConflict), "got %v", err)
	})

	s.ledger.SetStatus(txHash(87), ledger.TxConfirmed)
	done, advanced, err := s.service.AdvancePayment(s.ctx(), p.ID)
	s.Require().NoError(err)
	s.True(advanced)
	s.Equal(models.PaymentCompleted, done.Status)
	s.Len(done.History, 5)

	released := 0
	for _, a := range s.auditActions(land.ID) {
		if a == string(audit.EventEscrowReleased) {
			released++
		}
	}
	s.Equal(2, released)
}

func (s *RegistryServiceSuite) TestRecordPayment_ReplacesFailedTx() {
	land := s.approvedLand("SN65")
	br := s.approvedRequest(land, s.buyer)
	s.seedTx(txHash(65), custodianWallet, s.wei(landPrice), ledger.TxPending)

	p, err := s.service.RecordPayment(s.ctx(), as(s.buyer), s.recordInput(br, 65, models.PaymentEscrow))
	s.Require().NoError(err)
	s.Equal(models.PaymentPending, p.Status)

	s.Run("pending tx cannot be replaced", func() {
		s.seedTx(txHash(66), custodianWallet, s.wei(landPrice), ledger.TxConfirmed)
		_, err := s.service.RecordPayment(s.ctx(), as(s.buyer), s.recordInput(br, 66, models.PaymentEscrow))
		s.True(dErrors.HasCode(err, dErrors.CodeConflict), "got %v", err)
	})

	s.ledger.SetStatus(txHash(65), ledger.TxFailed)
	swept, advanced, err := s.service.AdvancePayment(s.ctx(), p.ID)
	s.Require().NoError(err)
	s.False(advanced)
	s.Equal(models.PaymentPending, swept.Status)

	s.Run("replacement keeps the payment type", func() {
		_, err := s.service.RecordPayment(s.ctx(), as(s.buyer), s.recordInput(br, 66, models.PaymentDirect))
		s.True(dErrors.HasCode(err, dErrors.CodeValidation), "got %v", err)
	})

	replaced, err := s.service.RecordPayment(s.ctx(), as(s.buyer), s.recordInput(br, 66, models.PaymentEscrow))
	s.Require().NoError(err)
	s.Equal(p.ID, replaced.ID)
	s.Equal(txHash(66), replaced.TxID)
	s.Equal(models.PaymentInEscrow, replaced.Status)
	s.Len(replaced.History, 3)

	s.Run("replay of the replacement returns the payment", func() {
		again, err := s.service.RecordPayment(s.ctx(), as(s.buyer), s.recordInput(br, 66, models.PaymentEscrow))
		s.Require().NoError(err)
		s.Equal(replaced.History, again.History)
	})

	all, err := s.service.ListPayments(s.ctx(), as(s.buyer))
	s.Require().NoError(err)
	s.Len(all, 1)

	_, err = s.service.RequestTransfer(s.ctx(), as(s.seller), land.ID, p.ID)
	s.NoError(err)
}

func (s *RegistryServiceSuite) TestGetEscrowReview() {
	land, p := s.escrowPayment("SN80", 80)

	review, err := s.service.GetEscrowReview(s.ctx(), as(s.inspector), p.ID)
	s.Require().NoError(err)
	s.Equal(land.ID, review.Land.ID)
	s.Equal(s.seller.Name, review.Seller.Name)
	s.Equal(sellerWallet, review.Seller.WalletAddress)
	s.Equal(s.buyer.ID, review.Buyer.ID)
	s.Equal("20", review.AmountEther)
	s.Equal("20000000000000000000", review.AmountWei)

	escrow, err := s.service.ListEscrowPayments(s.ctx(), as(s.inspector), []models.PaymentStatus{models.PaymentInEscrow})
	s.Require().NoError(err)
	s.Len(escrow, 1)
}

func (s *RegistryServiceSuite) TestReleaseEscrow_Concurrent() {
	s.Run("different release ids: exactly one wins", func() {
		_, p := s.escrowPayment("SN90", 90)
		s.seedRelease(91)
		s.seedRelease(92)
		errs := make([]error, 2)
		var wg sync.WaitGroup
		for i := range errs {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, errs[i] = s.service.ReleaseEscrow(s.ctx(), as(s.inspector), p.ID, ReleaseInput{
					Destination: destinationWallet, Confirmed: true, ReleaseTxID: txHash(91 + i),
				})
			}()
		}
		wg.Wait()

		succeeded, conflicted := 0, 0
		for _, err := range errs {
			switch {
			case err == nil:
				succeeded++
			case dErrors.HasCode(err, dErrors.CodeConflict):
				conflicted++
			}
		}
		s.Equal(1, succeeded)
		s.Equal(1, conflicted)
	})

	s.Run("same release id: both succeed once", func() {
		_, p := s.escrowPayment("SN95", 95)
		s.seedRelease(96)
		var wg sync.WaitGroup
		for range 4 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, err := s.service.ReleaseEscrow(s.ctx(), as(s.inspector), p.ID, ReleaseInput{
					Destination: destinationWallet, Confirmed: true, ReleaseTxID: txHash(96),
				})
				s.NoError(err)
			}()
		}
		wg.Wait()

		final, err := s.service.GetPayment(s.ctx(), as(s.inspector), p.ID)
		s.Require().NoError(err)
		s.Len(final.History, 3)
	})
}

func (s *RegistryServiceSuite) TestRecordPayment_ConcurrentOnOneLand() {
	land := s.approvedLand("SN100")
	buyers := []*models.BuyRequest{
		s.approvedRequest(land, s.buyer),
		s.approvedRequest(land, s.newUser("Second Buyer", id.RoleUser, "")),
	}
	for i := range buyers {
		s.seedTx(txHash(100+i), custodianWallet, s.wei(landPrice), ledger.TxConfirmed)
	}

	errs := make([]error, len(buyers))
	var wg sync.WaitGroup
	for i, br := range buyers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, errs[i] = s.service.RecordPayment(s.ctx(), id.Principal{UserID: br.BuyerID, Role: id.RoleUser}, s.recordInput(br, 100+i, models.PaymentEscrow))
		}()
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		s.True(dErrors.HasCode(err, dErrors.CodeConflict), "got %v", err)
	}
	s.Equal(1, succeeded)

	payments, err := s.store.ListPayments(s.ctx(), models.PaymentFilter{LandID: land.ID})
	s.Require().NoError(err)
	s.Len(payments, 1)
}
