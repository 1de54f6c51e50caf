//go:build integration

package store_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"

	authmodels "landtitle/internal/auth/models"
	"landtitle/internal/auth/store/user"
	"landtitle/internal/registry/models"
	"landtitle/internal/registry/store"
	id "landtitle/pkg/domain"
	"landtitle/pkg/platform/sentinel"
	"landtitle/pkg/testutil/containers"
)

type PostgresRegistryStoreSuite struct {
	suite.Suite
	pg    *containers.PostgresContainer
	store *store.PostgresStore
	users *user.PostgresStore
	ctx   context.Context
	now   time.Time
}

func TestPostgresRegistryStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(PostgresRegistryStoreSuite))
}

func (s *PostgresRegistryStoreSuite) SetupSuite() {
	s.pg = containers.GetManager().GetPostgres(s.T())
	s.store = store.NewPostgres(s.pg.DB)
	s.users = user.NewPostgres(s.pg.DB)
	s.ctx = context.Background()
}

func (s *PostgresRegistryStoreSuite) SetupTest() {
	s.now = time.Now().UTC().Truncate(time.Microsecond)
	s.Require().NoError(s.pg.TruncateTables(s.ctx,
		"transfer_records", "transfer_workflows", "payments", "buy_requests", "lands", "users"))
}

func (s *PostgresRegistryStoreSuite) newUser(name string) id.UserID {
	u := &authmodels.User{
		ID:           id.NewUserID(),
		Name:         name,
		Email:        id.NewUserID().String() + "@example.com",
		PasswordHash: "hash",
		Role:         id.RoleUser,
		CreatedAt:    s.now,
	}
	s.Require().NoError(s.users.Create(s.ctx, u))
	return u.ID
}

func (s *PostgresRegistryStoreSuite) newLand(survey string) *models.Land {
	land, err := models.NewLand("Chennai", survey, "5000 sq ft", decimal.NewFromInt(5_000_000), s.newUser("Seller"), "", s.now)
	s.Require().NoError(err)
	s.Require().NoError(s.store.CreateLand(s.ctx, land))
	return land
}

// newPayment stores a buy request for a fresh buyer and returns an unsaved escrow payment.
func (s *PostgresRegistryStoreSuite) newPayment(land *models.Land, txID string) *models.Payment {
	br := models.NewBuyRequest(land, s.newUser("Buyer"), s.now)
	s.Require().NoError(s.store.CreateBuyRequest(s.ctx, br))
	return models.NewPayment(br, land.Price, txID, models.PaymentEscrow, s.now)
}

func (s *PostgresRegistryStoreSuite) TestLandRoundTrip() {
	land := s.newLand("SN100")

	found, err := s.store.FindLand(s.ctx, land.ID)
	s.Require().NoError(err)
	s.Equal(land.SurveyNumber, found.SurveyNumber)
	s.True(land.Price.Equal(found.Price))
	s.Nil(found.ListingPrice)

	dup, err := models.NewLand("Madurai", "sn100", "1 acre", decimal.NewFromInt(1), land.OwnerID, "", s.now)
	s.Require().NoError(err)
	s.Require().ErrorIs(s.store.CreateLand(s.ctx, dup), sentinel.ErrConflict)

	_, err = s.store.FindLand(s.ctx, id.NewLandID())
	s.Require().ErrorIs(err, sentinel.ErrNotFound)
}

func (s *PostgresRegistryStoreSuite) TestPaymentHistoryAndConflicts() {
	land := s.newLand("SN200")
	p := s.newPayment(land, "0xab0")
	s.Require().NoError(s.store.CreatePayment(s.ctx, p))

	s.Require().NoError(p.ReplaceTx("0xabc", p.BuyerID.String(), s.now))
	s.Require().NoError(s.store.SavePayment(s.ctx, p))
	_, err := s.store.FindPaymentByTxID(s.ctx, "0xab0")
	s.Require().ErrorIs(err, sentinel.ErrNotFound)

	s.Require().NoError(p.Transition(models.PaymentInEscrow, p.TxID, models.SystemActor, s.now))
	s.Require().NoError(s.store.SavePayment(s.ctx, p))

	found, err := s.store.FindPaymentByTxID(s.ctx, "0xabc")
	s.Require().NoError(err)
	s.Equal(models.PaymentInEscrow, found.Status)
	s.Len(found.History, 3)

	s.Require().ErrorIs(s.store.CreatePayment(s.ctx, s.newPayment(land, "0xdef")), sentinel.ErrConflict)

	escrow, err := s.store.ListPayments(s.ctx, models.PaymentFilter{
		Type:     models.PaymentEscrow,
		Statuses: []models.PaymentStatus{models.PaymentInEscrow},
	})
	s.Require().NoError(err)
	s.Len(escrow, 1)
}

func (s *PostgresRegistryStoreSuite) TestRunInTxRollsBack() {
	land := s.newLand("SN300")
	boom := errors.New("boom")

	err := s.store.RunInTx(s.ctx, land.ID, func(ctx context.Context) error {
		l, err := s.store.FindLand(ctx, land.ID)
		if err != nil {
			return err
		}
		l.Location = "Coimbatore"
		if err := s.store.SaveLand(ctx, l); err != nil {
			return err
		}
		return boom
	})
	s.Require().ErrorIs(err, boom)

	found, err := s.store.FindLand(s.ctx, land.ID)
	s.Require().NoError(err)
	s.Equal("Chennai", found.Location)
}

func (s *PostgresRegistryStoreSuite) TestRunInTxSerializesPerLand() {
	land := s.newLand("SN400")

	const workers = 10
	var wg sync.WaitGroup
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := s.store.RunInTx(s.ctx, land.ID, func(ctx context.Context) error {
				l, err := s.store.FindLand(ctx, land.ID)
				if err != nil {
					return err
				}
				l.Price = l.Price.Add(decimal.NewFromInt(1))
				return s.store.SaveLand(ctx, l)
			})
			s.NoError(err)
		}()
	}
	wg.Wait()

	found, err := s.store.FindLand(s.ctx, land.ID)
	s.Require().NoError(err)
	s.True(found.Price.Equal(decimal.NewFromInt(5_000_000+workers)), "got %s", found.Price)
}

func (s *PostgresRegistryStoreSuite) TestWorkflowAndRecord() {
	land := s.newLand("SN500")
	p := s.newPayment(land, "0x500")
	s.Require().NoError(s.store.CreatePayment(s.ctx, p))

	w := models.NewTransferWorkflow(p, s.now)
	s.Require().NoError(s.store.CreateWorkflow(s.ctx, w))
	photo := &models.Photo{ContentType: "image/png", Data: []byte{0x89, 'P', 'N', 'G'}, CapturedAt: s.now}
	s.Require().NoError(w.CapturePhoto(models.PartySeller, photo, land.OwnerID, s.now))
	s.Require().NoError(s.store.SaveWorkflow(s.ctx, w))

	found, err := s.store.FindWorkflowByPayment(s.ctx, p.ID)
	s.Require().NoError(err)
	s.Equal(models.WorkflowSellerPhotoCaptured, found.State)
	s.Require().NotNil(found.SellerPhoto)
	s.Equal(photo.Data, found.SellerPhoto.Data)
	s.Nil(found.BuyerPhoto)

	rec := models.NewTransferRecord(w, land, s.now)
	s.Require().NoError(s.store.CreateTransferRecord(s.ctx, rec))
	s.Require().ErrorIs(s.store.CreateTransferRecord(s.ctx, models.NewTransferRecord(w, land, s.now)), sentinel.ErrConflict)

	latest, err := s.store.LatestTransferRecord(s.ctx, land.ID)
	s.Require().NoError(err)
	s.Equal(rec.Fingerprint, latest.Fingerprint)

	p2 := s.newPayment(s.newLand("SN501"), "0x501")
	twin := models.NewTransferRecord(models.NewTransferWorkflow(p2, s.now), land, s.now)
	s.Require().NoError(s.store.CreatePayment(s.ctx, p2))
	s.Require().NoError(s.store.CreateTransferRecord(s.ctx, twin))
	want := rec.ID
	if twin.ID.String() > rec.ID.String() {
		want = twin.ID
	}
	latest, err = s.store.LatestTransferRecord(s.ctx, land.ID)
	s.Require().NoError(err)
	s.Equal(want, latest.ID)
}
