//go:build integration

package user_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"landtitle/internal/auth/models"
	"landtitle/internal/auth/store/user"
	id "landtitle/pkg/domain"
	"landtitle/pkg/platform/sentinel"
	"landtitle/pkg/testutil/containers"
)

type PostgresUserStoreSuite struct {
	suite.Suite
	pg    *containers.PostgresContainer
	store *user.PostgresStore
}

func TestPostgresUserStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(PostgresUserStoreSuite))
}

func (s *PostgresUserStoreSuite) SetupSuite() {
	s.pg = containers.GetManager().GetPostgres(s.T())
	s.store = user.NewPostgres(s.pg.DB)
}

func (s *PostgresUserStoreSuite) SetupTest() {
	s.Require().NoError(s.pg.TruncateTables(context.Background(), "users"))
}

func (s *PostgresUserStoreSuite) TestCreateAndFind() {
	ctx := context.Background()
	u := &models.User{
		ID:            id.NewUserID(),
		Name:          "Asha Raman",
		Email:         "Asha@Example.com",
		PasswordHash:  "hash",
		Role:          id.RoleInspector,
		WalletAddress: "0x5aAeb6053F3E94C9b9A09f33669435E7Ef1BeAed",
		GovID:         "ABCDE1234F",
		Phone:         "+91 98400 00001",
		CreatedAt:     time.Now().UTC().Truncate(time.Microsecond),
	}
	s.Require().NoError(s.store.Create(ctx, u))

	byID, err := s.store.FindByID(ctx, u.ID)
	s.Require().NoError(err)
	s.Equal(u.Email, byID.Email)
	s.Equal(id.RoleInspector, byID.Role)
	s.True(u.CreatedAt.Equal(byID.CreatedAt))

	byEmail, err := s.store.FindByEmail(ctx, "asha@example.com")
	s.Require().NoError(err)
	s.Equal(u.ID, byEmail.ID)

	dup := *u
	dup.ID = id.NewUserID()
	dup.Email = "ASHA@example.com"
	s.ErrorIs(s.store.Create(ctx, &dup), sentinel.ErrConflict)

	_, err = s.store.FindByID(ctx, id.NewUserID())
	s.ErrorIs(err, sentinel.ErrNotFound)
}
