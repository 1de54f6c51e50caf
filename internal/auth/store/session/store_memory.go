package session

import (
	"context"
	"errors"
	"sync"
	"time"

	"landtitle/internal/auth/models"
	id "landtitle/pkg/domain"
	"landtitle/pkg/platform/sentinel"
)

// ErrSessionRevoked is returned when revoking a session that is no longer active.
var ErrSessionRevoked = errors.New("session revoked")

// InMemorySessionStore keeps sessions in process memory. Expired sessions are
// left in place; IsActive checks expiry on read.
type InMemorySessionStore struct {
	mu       sync.RWMutex
	sessions map[id.SessionID]*models.Session
}

func New() *InMemorySessionStore {
	return &InMemorySessionStore{sessions: make(map[id.SessionID]*models.Session)}
}

func (s *InMemorySessionStore) Create(_ context.Context, session *models.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.sessions[session.ID]; exists {
		return sentinel.ErrConflict
	}
	copied := *session
	s.sessions[session.ID] = &copied
	return nil
}

func (s *InMemorySessionStore) FindByID(_ context.Context, sessionID id.SessionID) (*models.Session, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if sess, ok := s.sessions[sessionID]; ok {
		copied := *sess
		return &copied, nil
	}
	return nil, sentinel.ErrNotFound
}

// RevokeSessionIfActive marks the session revoked. A second call returns
// ErrSessionRevoked.
func (s *InMemorySessionStore) RevokeSessionIfActive(_ context.Context, sessionID id.SessionID, now time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[sessionID]
	if !ok {
		return sentinel.ErrNotFound
	}
	if sess.CanRevoke() != nil {
		return ErrSessionRevoked
	}
	sess.ApplyRevocation(now)
	return nil
}
