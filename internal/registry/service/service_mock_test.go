package service

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	authmodels "landtitle/internal/auth/models"
	"landtitle/internal/certificate"
	"landtitle/internal/ledger"
	"landtitle/internal/registry/models"
	"landtitle/internal/registry/service/mocks"
	id "landtitle/pkg/domain"
	dErrors "landtitle/pkg/domain-errors"
	"landtitle/pkg/platform/sentinel"
	"landtitle/pkg/requestcontext"
)

type ServiceMockSuite struct {
	suite.Suite
	ctrl      *gomock.Controller
	store     *mocks.MockStore
	users     *mocks.MockUserDirectory
	ledger    *mocks.MockLedger
	codec     *mocks.MockCertificateCodec
	publisher *mocks.MockAuditPublisher
	service   *Service
	ctx       context.Context
}

func (s *ServiceMockSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.store = mocks.NewMockStore(s.ctrl)
	s.users = mocks.NewMockUserDirectory(s.ctrl)
	s.ledger = mocks.NewMockLedger(s.ctrl)
	s.codec = mocks.NewMockCertificateCodec(s.ctrl)
	s.publisher = mocks.NewMockAuditPublisher(s.ctrl)
	s.ctx = requestcontext.WithTime(context.Background(), time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC))

	conv, err := ledger.NewConverter("250000")
	s.Require().NoError(err)
	s.service, err = New(s.store, s.users, s.ledger, s.codec, Config{
		CustodianAddress: custodianWallet,
		Converter:        conv,
		LedgerTimeout:    50 * time.Millisecond,
	},
		WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
		WithAuditPublisher(s.publisher),
	)
	s.Require().NoError(err)
}

func (s *ServiceMockSuite) TearDownTest() {
	s.ctrl.Finish()
}

func TestServiceMockSuite(t *testing.T) {
	suite.Run(t, new(ServiceMockSuite))
}

func (s *ServiceMockSuite) approvedPurchase() (*models.Land, *models.BuyRequest, id.Principal) {
	seller, buyer := id.NewUserID(), id.NewUserID()
	land, err := models.NewLand("Chennai", "SN100", "5000 sq ft", landPrice, seller, sellerWallet, time.Now())
	s.Require().NoError(err)
	land.VerificationStatus = models.VerificationApproved
	br := models.NewBuyRequest(land, buyer, time.Now())
	br.Status = models.BuyRequestApproved
	return land, br, id.Principal{UserID: buyer, Role: id.RoleUser}
}

func (s *ServiceMockSuite) TestRecordPayment_LedgerTimeout() {
	land, br, actor := s.approvedPurchase()

	s.store.EXPECT().FindBuyRequest(gomock.Any(), br.ID).Return(br, nil)
	s.store.EXPECT().FindPaymentByTxID(gomock.Any(), txHash(1)).Return(nil, sentinel.ErrNotFound)
	s.store.EXPECT().FindLand(gomock.Any(), land.ID).Return(land, nil)
	s.ledger.EXPECT().LookupTransaction(gomock.Any(), txHash(1)).
		DoAndReturn(func(ctx context.Context, _ string) (*ledger.Transaction, error) {
			<-ctx.Done()
			return nil, ctx.Err()
		})
	// No RunInTx and no audit: nothing moves when the ledger is unreachable.

	_, err := s.service.RecordPayment(s.ctx, actor, RecordPaymentInput{
		BuyRequestID: br.ID, TxID: txHash(1), Amount: landPrice, Type: models.PaymentEscrow,
	})
	s.True(dErrors.HasCode(err, dErrors.CodeLedgerFailure), "got %v", err)
	s.ErrorIs(err, context.DeadlineExceeded)
}

func (s *ServiceMockSuite) TestRecordPayment_LedgerUnavailable() {
	land, br, actor := s.approvedPurchase()

	s.store.EXPECT().FindBuyRequest(gomock.Any(), br.ID).Return(br, nil)
	s.store.EXPECT().FindPaymentByTxID(gomock.Any(), txHash(2)).Return(nil, sentinel.ErrNotFound)
	s.store.EXPECT().FindLand(gomock.Any(), land.ID).Return(land, nil)
	s.ledger.EXPECT().LookupTransaction(gomock.Any(), txHash(2)).Return(nil, errors.New("dial tcp: connection refused"))

	_, err := s.service.RecordPayment(s.ctx, actor, RecordPaymentInput{
		BuyRequestID: br.ID, TxID: txHash(2), Amount: landPrice, Type: models.PaymentEscrow,
	})
	s.True(dErrors.HasCode(err, dErrors.CodeLedgerFailure), "got %v", err)
}

func (s *ServiceMockSuite) TestRecordPayment_AuditFailureDoesNotFail() {
	land, br, actor := s.approvedPurchase()
	buyer := &authmodels.User{ID: actor.UserID, WalletAddress: buyerWallet}
	seller := &authmodels.User{ID: land.OwnerID, WalletAddress: sellerWallet}
	conv, err := ledger.NewConverter("250000")
	s.Require().NoError(err)

	s.store.EXPECT().FindBuyRequest(gomock.Any(), br.ID).Return(br, nil).Times(2)
	s.store.EXPECT().FindPaymentByTxID(gomock.Any(), txHash(3)).Return(nil, sentinel.ErrNotFound).Times(2)
	s.store.EXPECT().FindLand(gomock.Any(), land.ID).Return(land, nil).Times(2)
	s.ledger.EXPECT().LookupTransaction(gomock.Any(), txHash(3)).Return(&ledger.Transaction{
		Hash: txHash(3), Status: ledger.TxConfirmed, From: buyerWallet, To: custodianWallet, Value: conv.ToWei(landPrice),
	}, nil)
	s.users.EXPECT().FindByID(gomock.Any(), buyer.ID).Return(buyer, nil)
	s.users.EXPECT().FindByID(gomock.Any(), seller.ID).Return(seller, nil)
	s.store.EXPECT().RunInTx(gomock.Any(), land.ID, gomock.Any()).
		DoAndReturn(func(ctx context.Context, _ id.LandID, fn func(context.Context) error) error {
			return fn(ctx)
		})
	s.store.EXPECT().CreatePayment(gomock.Any(), gomock.Any()).Return(nil)
	s.store.EXPECT().SaveBuyRequest(gomock.Any(), gomock.Any()).Return(nil)
	s.store.EXPECT().SaveLand(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, l *models.Land) error {
		assert.Equal(s.T(), models.LandUnderSale, l.Status)
		return nil
	})
	s.publisher.EXPECT().Emit(gomock.Any(), gomock.Any()).Return(errors.New("audit store down"))

	p, err := s.service.RecordPayment(s.ctx, actor, RecordPaymentInput{
		BuyRequestID: br.ID, TxID: txHash(3), Amount: landPrice, Type: models.PaymentEscrow,
	})
	s.Require().NoError(err)
	s.Equal(models.PaymentInEscrow, p.Status)
}

func (s *ServiceMockSuite) TestRunInTx_ErrorTranslation() {
	land := &models.Land{ID: id.NewLandID()}
	cases := []struct {
		name string
		err  error
		code dErrors.Code
	}{
		{"store conflict", sentinel.ErrConflict, dErrors.CodeConflict},
		{"deadline", context.DeadlineExceeded, dErrors.CodeTimeout},
		{"driver failure", errors.New("connection reset"), dErrors.CodeInternal},
		{"domain error passes through", dErrors.New(dErrors.CodeFundsNotReleased, "no"), dErrors.CodeFundsNotReleased},
	}
	for _, tc := range cases {
		s.Run(tc.name, func() {
			s.store.EXPECT().RunInTx(gomock.Any(), land.ID, gomock.Any()).Return(tc.err)
			err := s.service.runInTx(s.ctx, land.ID, func(context.Context) error { return nil })
			s.True(dErrors.HasCode(err, tc.code), "got %v", err)
		})
	}
}

func (s *ServiceMockSuite) TestIssueCertificate_FingerprintDrift() {
	rec := &models.TransferRecord{
		ID:           id.NewTransferRecordID(),
		LandID:       id.NewLandID(),
		SellerID:     id.NewUserID(),
		BuyerID:      id.NewUserID(),
		PaymentID:    id.NewPaymentID(),
		TxID:         txHash(4),
		SurveyNumber: "SN100",
		Location:     "Chennai",
		Area:         "5000 sq ft",
	}
	facts := rec.Facts()
	facts.Area = "6000 sq ft"
	rec.Fingerprint = certificate.Compute(facts).String()

	s.store.EXPECT().FindTransferRecord(gomock.Any(), rec.ID).Return(rec, nil)
	s.users.EXPECT().FindByID(gomock.Any(), gomock.Any()).Return(&authmodels.User{}, nil).Times(2)
	s.store.EXPECT().FindPayment(gomock.Any(), rec.PaymentID).Return(&models.Payment{Amount: decimal.NewFromInt(1)}, nil)

	_, err := s.service.IssueCertificate(s.ctx, id.Principal{UserID: rec.BuyerID}, rec.ID)
	s.True(dErrors.HasCode(err, dErrors.CodeInvariantViolation), "got %v", err)
}

func TestNew_RequiresDependencies(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := mocks.NewMockStore(ctrl)
	users := mocks.NewMockUserDirectory(ctrl)
	l := mocks.NewMockLedger(ctrl)
	codec := mocks.NewMockCertificateCodec(ctrl)

	_, err := New(nil, users, l, codec, Config{})
	require.Error(t, err)

	_, err = New(store, users, l, codec, Config{CustodianAddress: "0x1234"})
	require.Error(t, err)

	svc, err := New(store, users, l, codec, Config{CustodianAddress: custodianWallet})
	require.NoError(t, err)
	assert.Equal(t, 10*time.Second, svc.cfg.LedgerTimeout)
	assert.NotNil(t, svc.cfg.Converter)
}
