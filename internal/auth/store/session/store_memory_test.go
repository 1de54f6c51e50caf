package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"landtitle/internal/auth/models"
	id "landtitle/pkg/domain"
	"landtitle/pkg/platform/sentinel"
)

type SessionStoreSuite struct {
	suite.Suite
	store *InMemorySessionStore
}

func (s *SessionStoreSuite) SetupTest() {
	s.store = New()
}

func TestSessionStoreSuite(t *testing.T) {
	suite.Run(t, new(SessionStoreSuite))
}

func makeSession() *models.Session {
	user := &models.User{ID: id.NewUserID(), Role: id.RoleInspector}
	return models.NewSession(user, "Chrome on Windows", "10.0.0.1", time.Now(), time.Hour)
}

func (s *SessionStoreSuite) TestSessionLookup() {
	ctx := context.Background()

	s.Run("returns stored session when found", func() {
		sess := makeSession()
		s.Require().NoError(s.store.Create(ctx, sess))

		found, err := s.store.FindByID(ctx, sess.ID)
		s.Require().NoError(err)
		s.Equal(sess, found)
		s.Equal(id.RoleInspector, found.Role)
	})

	s.Run("returns ErrNotFound when session does not exist", func() {
		_, err := s.store.FindByID(ctx, id.NewSessionID())
		s.Require().ErrorIs(err, sentinel.ErrNotFound)
	})

	s.Run("duplicate create conflicts", func() {
		sess := makeSession()
		s.Require().NoError(s.store.Create(ctx, sess))
		s.Require().ErrorIs(s.store.Create(ctx, sess), sentinel.ErrConflict)
	})
}

func (s *SessionStoreSuite) TestRevocation() {
	ctx := context.Background()
	sess := makeSession()
	s.Require().NoError(s.store.Create(ctx, sess))
	now := time.Now()

	s.Require().NoError(s.store.RevokeSessionIfActive(ctx, sess.ID, now))

	found, err := s.store.FindByID(ctx, sess.ID)
	s.Require().NoError(err)
	s.Equal(models.SessionStatusRevoked, found.Status)
	s.Require().NotNil(found.RevokedAt)
	s.False(found.IsActive(now))

	s.Require().ErrorIs(s.store.RevokeSessionIfActive(ctx, sess.ID, now), ErrSessionRevoked)
	s.Require().ErrorIs(s.store.RevokeSessionIfActive(ctx, id.NewSessionID(), now), sentinel.ErrNotFound)
}

func (s *SessionStoreSuite) TestExpiry() {
	sess := makeSession()
	s.True(sess.IsActive(sess.CreatedAt))
	s.False(sess.IsActive(sess.ExpiresAt))
}
