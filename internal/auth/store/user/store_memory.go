package user

import (
	"context"
	"sync"

	"landtitle/internal/auth/models"
	id "landtitle/pkg/domain"
	"landtitle/pkg/platform/sentinel"
)

// InMemoryUserStore keeps users in a map guarded by a RWMutex.
type InMemoryUserStore struct {
	mu      sync.RWMutex
	users   map[id.UserID]*models.User
	byEmail map[string]id.UserID
}

func New() *InMemoryUserStore {
	return &InMemoryUserStore{
		users:   make(map[id.UserID]*models.User),
		byEmail: make(map[string]id.UserID),
	}
}

// Create inserts a user, failing with sentinel.ErrConflict on a duplicate email.
func (s *InMemoryUserStore) Create(_ context.Context, user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	key := models.NormalizeEmail(user.Email)
	if _, taken := s.byEmail[key]; taken {
		return sentinel.ErrConflict
	}
	copied := *user
	s.users[user.ID] = &copied
	s.byEmail[key] = user.ID
	return nil
}

func (s *InMemoryUserStore) FindByID(_ context.Context, userID id.UserID) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if u, ok := s.users[userID]; ok {
		copied := *u
		return &copied, nil
	}
	return nil, sentinel.ErrNotFound
}

func (s *InMemoryUserStore) FindByEmail(_ context.Context, email string) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if userID, ok := s.byEmail[models.NormalizeEmail(email)]; ok {
		copied := *s.users[userID]
		return &copied, nil
	}
	return nil, sentinel.ErrNotFound
}
