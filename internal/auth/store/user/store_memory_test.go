package user

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"landtitle/internal/auth/models"
	id "landtitle/pkg/domain"
	"landtitle/pkg/platform/sentinel"
)

type InMemoryUserStoreSuite struct {
	suite.Suite
	store *InMemoryUserStore
}

func (s *InMemoryUserStoreSuite) SetupTest() {
	s.store = New()
}

func TestInMemoryUserStoreSuite(t *testing.T) {
	suite.Run(t, new(InMemoryUserStoreSuite))
}

func newUser(email string) *models.User {
	return &models.User{
		ID:        id.NewUserID(),
		Name:      "Asha Raman",
		Email:     email,
		Role:      id.RoleUser,
		CreatedAt: time.Now(),
	}
}

func (s *InMemoryUserStoreSuite) TestLookupBehavior() {
	ctx := context.Background()
	user := newUser("Asha@Example.com")
	s.Require().NoError(s.store.Create(ctx, user))

	s.Run("returns user by ID", func() {
		found, err := s.store.FindByID(ctx, user.ID)
		s.Require().NoError(err)
		s.Equal(user, found)
	})

	s.Run("email lookup ignores case", func() {
		found, err := s.store.FindByEmail(ctx, " asha@example.COM ")
		s.Require().NoError(err)
		s.Equal(user.ID, found.ID)
	})

	s.Run("returned users are copies", func() {
		found, err := s.store.FindByID(ctx, user.ID)
		s.Require().NoError(err)
		found.Name = "changed"
		again, err := s.store.FindByID(ctx, user.ID)
		s.Require().NoError(err)
		s.Equal("Asha Raman", again.Name)
	})

	s.Run("missing user", func() {
		_, err := s.store.FindByID(ctx, id.NewUserID())
		s.Require().ErrorIs(err, sentinel.ErrNotFound)
		_, err = s.store.FindByEmail(ctx, "missing@example.com")
		s.Require().ErrorIs(err, sentinel.ErrNotFound)
	})
}

func (s *InMemoryUserStoreSuite) TestDuplicateEmail() {
	ctx := context.Background()
	s.Require().NoError(s.store.Create(ctx, newUser("dup@example.com")))
	err := s.store.Create(ctx, newUser("DUP@example.com"))
	s.Require().ErrorIs(err, sentinel.ErrConflict)
}
