package models

import (
	"strings"
	"time"

	id "landtitle/pkg/domain"
	dErrors "landtitle/pkg/domain-errors"
)

// User is a registered account. Email is unique ignoring case.
type User struct {
	ID            id.UserID
	Name          string
	Email         string
	PasswordHash  string
	Role          id.Role
	WalletAddress string
	GovID         string
	Phone         string
	CreatedAt     time.Time
}

// NormalizeEmail is the form used for uniqueness checks.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (u *User) IsInspector() bool {
	return u.Role == id.RoleInspector
}

type SessionStatus string

const (
	SessionStatusActive  SessionStatus = "active"
	SessionStatusRevoked SessionStatus = "revoked"
)

// Session is the server-side record behind an access token. The role is
// copied from the user at login so authorization never trusts the client.
type Session struct {
	ID                id.SessionID  `json:"id"`
	UserID            id.UserID     `json:"user_id"`
	Role              id.Role       `json:"role"`
	Status            SessionStatus `json:"status"`
	DeviceDisplayName string        `json:"device_display_name"`
	ClientIP          string        `json:"client_ip"`
	CreatedAt         time.Time     `json:"created_at"`
	ExpiresAt         time.Time     `json:"expires_at"`
	RevokedAt         *time.Time    `json:"revoked_at,omitempty"`
}

func NewSession(user *User, device, clientIP string, now time.Time, ttl time.Duration) *Session {
	return &Session{
		ID:                id.NewSessionID(),
		UserID:            user.ID,
		Role:              user.Role,
		Status:            SessionStatusActive,
		DeviceDisplayName: device,
		ClientIP:          clientIP,
		CreatedAt:         now,
		ExpiresAt:         now.Add(ttl),
	}
}

func (s *Session) IsActive(now time.Time) bool {
	return s.Status == SessionStatusActive && now.Before(s.ExpiresAt)
}

func (s *Session) CanRevoke() error {
	if s.Status == SessionStatusRevoked {
		return dErrors.New(dErrors.CodeConflict, "session already revoked")
	}
	return nil
}

func (s *Session) ApplyRevocation(now time.Time) {
	s.Status = SessionStatusRevoked
	s.RevokedAt = &now
}

// LoginResult is returned by Register and Login.
type LoginResult struct {
	User        *User
	SessionID   id.SessionID
	AccessToken string
	ExpiresAt   time.Time
}
