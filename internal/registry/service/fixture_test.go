package service

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"math/big"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	authmodels "landtitle/internal/auth/models"
	"landtitle/internal/auth/store/user"
	"landtitle/internal/certificate"
	"landtitle/internal/ledger"
	"landtitle/internal/registry/models"
	"landtitle/internal/registry/store"
	id "landtitle/pkg/domain"
	auditmemory "landtitle/pkg/platform/audit/store/memory"
	"landtitle/pkg/platform/audit/publisher"
	"landtitle/pkg/requestcontext"
)

// EIP-55 reference addresses.
const (
	custodianWallet   = "0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed"
	sellerWallet      = "0xfB6916095ca1df60bB79Ce92cE3Ea74c37c5d359"
	buyerWallet       = "0xdbF03B407c01E7cD3CBea99509d93f8DDDC8C6FB"
	destinationWallet = "0xD1220A0cf47c7B9Be7A2E6BA89F429762e7b9aDb"
)

var landPrice = decimal.NewFromInt(5_000_000)

// registryFixture wires the service to in-memory collaborators.
type registryFixture struct {
	suite.Suite
	store     *store.InMemoryStore
	users     *user.InMemoryUserStore
	ledger    *ledger.DevLedger
	audits    *auditmemory.InMemoryStore
	converter *ledger.Converter
	service   *Service
	now       time.Time

	seller    *authmodels.User
	buyer     *authmodels.User
	inspector *authmodels.User
}

func (f *registryFixture) SetupTest() {
	f.store = store.NewInMemory()
	f.users = user.New()
	f.ledger = ledger.NewDevLedger()
	f.audits = auditmemory.NewInMemoryStore()
	f.now = time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)

	conv, err := ledger.NewConverter("250000")
	f.Require().NoError(err)
	f.converter = conv

	f.service, err = New(f.store, f.users, f.ledger, certificate.NewCodec(), Config{
		CustodianAddress: custodianWallet,
		Converter:        conv,
		LedgerTimeout:    time.Second,
	},
		WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
		WithAuditPublisher(publisher.NewPublisher(f.audits)),
	)
	f.Require().NoError(err)

	f.seller = f.newUser("Asha Raman", id.RoleUser, sellerWallet)
	f.buyer = f.newUser("Vikram Iyer", id.RoleUser, buyerWallet)
	f.inspector = f.newUser("Meena Pillai", id.RoleInspector, "")
}

func (f *registryFixture) ctx() context.Context {
	return requestcontext.WithTime(context.Background(), f.now)
}

func (f *registryFixture) newUser(name string, role id.Role, wallet string) *authmodels.User {
	u := &authmodels.User{
		ID:            id.NewUserID(),
		Name:          name,
		Email:         fmt.Sprintf("%s@example.com", id.NewUserID()),
		PasswordHash:  "hash",
		Role:          role,
		WalletAddress: wallet,
		GovID:         "ABCDE1234F",
		Phone:         "+91 98400 00001",
		CreatedAt:     f.now,
	}
	f.Require().NoError(f.users.Create(context.Background(), u))
	return u
}

func as(u *authmodels.User) id.Principal {
	return id.Principal{UserID: u.ID, SessionID: id.NewSessionID(), Role: u.Role}
}

func txHash(n int) string {
	return fmt.Sprintf("0x%064x", n)
}

// wei returns the ledger value of amount at the fixture rate.
func (f *registryFixture) wei(amount decimal.Decimal) *big.Int {
	return f.converter.ToWei(amount)
}

// seedTx puts a transaction on the dev ledger.
func (f *registryFixture) seedTx(hash, to string, value *big.Int, status ledger.TxStatus) {
	f.ledger.Put(ledger.Transaction{Hash: hash, Status: status, From: buyerWallet, To: to, Value: value, Confirmations: 12})
}

// approvedLand registers and verifies a parcel owned by the seller.
func (f *registryFixture) approvedLand(survey string) *models.Land {
	land, err := f.service.RegisterLand(f.ctx(), as(f.seller), RegisterLandInput{
		Location:     "Chennai",
		SurveyNumber: survey,
		Area:         "5000 sq ft",
		Price:        landPrice,
	})
	f.Require().NoError(err)
	land, err = f.service.VerifyLand(f.ctx(), as(f.inspector), land.ID, models.VerificationApproved, "documents in order")
	f.Require().NoError(err)
	return land
}

// approvedRequest opens and approves a buy request from buyer.
func (f *registryFixture) approvedRequest(land *models.Land, buyer *authmodels.User) *models.BuyRequest {
	br, err := f.service.SubmitBuyRequest(f.ctx(), as(buyer), land.ID)
	f.Require().NoError(err)
	br, err = f.service.ReviewBuyRequest(f.ctx(), as(f.inspector), br.ID, true, "")
	f.Require().NoError(err)
	return br
}

// escrowPayment takes a fresh parcel to a confirmed escrow payment.
func (f *registryFixture) escrowPayment(survey string, n int) (*models.Land, *models.Payment) {
	land := f.approvedLand(survey)
	br := f.approvedRequest(land, f.buyer)
	f.seedTx(txHash(n), custodianWallet, f.wei(landPrice), ledger.TxConfirmed)
	p, err := f.service.RecordPayment(f.ctx(), as(f.buyer), RecordPaymentInput{
		BuyRequestID: br.ID,
		TxID:         txHash(n),
		Amount:       landPrice,
		Type:         models.PaymentEscrow,
	})
	f.Require().NoError(err)
	f.Require().Equal(models.PaymentInEscrow, p.Status)
	return land, p
}

// seedRelease puts a pending custodian payout to the destination on the ledger.
func (f *registryFixture) seedRelease(n int) {
	f.ledger.Put(ledger.Transaction{Hash: txHash(n), Status: ledger.TxPending, From: custodianWallet, To: destinationWallet})
}

func (f *registryFixture) release(p *models.Payment, n int) *models.Payment {
	f.seedRelease(n)
	out, err := f.service.ReleaseEscrow(f.ctx(), as(f.inspector), p.ID, ReleaseInput{
		Destination: destinationWallet,
		Confirmed:   true,
		ReleaseTxID: txHash(n),
	})
	f.Require().NoError(err)
	return out
}

// awaitingDecision requests a transfer and captures both photos.
func (f *registryFixture) awaitingDecision(land *models.Land, p *models.Payment) *models.TransferWorkflow {
	w, err := f.service.RequestTransfer(f.ctx(), as(f.seller), land.ID, p.ID)
	f.Require().NoError(err)
	_, err = f.service.CaptureVerificationPhoto(f.ctx(), as(f.inspector), w.ID, models.PartySeller, jpegURI, f.now)
	f.Require().NoError(err)
	w, err = f.service.CaptureVerificationPhoto(f.ctx(), as(f.inspector), w.ID, models.PartyBuyer, jpegURI, f.now.Add(time.Minute))
	f.Require().NoError(err)
	f.Require().Equal(models.WorkflowAwaitingDecision, w.State)
	return w
}

// jpegURI carries the JPEG SOI marker and a few payload bytes.
const jpegURI = "data:image/jpeg;base64,/9j/4AAQSkZJRgABAQ=="

func (f *registryFixture) auditActions(landID id.LandID) []string {
	events, err := f.audits.ListByLand(context.Background(), landID)
	f.Require().NoError(err)
	actions := make([]string, 0, len(events))
	for _, e := range events {
		actions = append(actions, e.Action)
	}
	return actions
}
