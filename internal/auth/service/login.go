package service

import (
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"

	"landtitle/internal/auth/models"
	"landtitle/internal/auth/store/session"
	id "landtitle/pkg/domain"
	dErrors "landtitle/pkg/domain-errors"
	"landtitle/pkg/platform/audit"
	"landtitle/pkg/platform/middleware/device"
	"landtitle/pkg/platform/sentinel"
	"landtitle/pkg/requestcontext"
)

// Login verifies credentials and opens a new session.
func (s *Service) Login(ctx context.Context, emailAddr, password string) (*models.LoginResult, error) {
	user, err := s.users.FindByEmail(ctx, emailAddr)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			s.authFailure(ctx, "unknown_email")
			return nil, dErrors.New(dErrors.CodeUnauthorized, "invalid email or password")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load user")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		s.authFailure(ctx, "bad_password", "user_id", user.ID.String())
		return nil, dErrors.New(dErrors.CodeUnauthorized, "invalid email or password")
	}
	return s.startSession(ctx, user)
}

func (s *Service) startSession(ctx context.Context, user *models.User) (*models.LoginResult, error) {
	now := requestcontext.Now(ctx)
	deviceName := device.DeviceName(ctx)
	if deviceName == "" {
		deviceName = device.DisplayName(requestcontext.UserAgent(ctx))
	}
	sess := models.NewSession(user, deviceName, requestcontext.ClientIP(ctx), now, s.cfg.SessionTTL)
	if err := s.sessions.Create(ctx, sess); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to create session")
	}

	token, expiresAt, err := s.tokens.GenerateAccessToken(user.ID, sess.ID, s.cfg.AccessTokenTTL)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to issue access token")
	}
	s.logAudit(ctx, audit.EventSessionCreated, user.ID, "session_id", sess.ID.String(), "device", sess.DeviceDisplayName)

	return &models.LoginResult{
		User:        user,
		SessionID:   sess.ID,
		AccessToken: token,
		ExpiresAt:   expiresAt,
	}, nil
}

// Logout revokes the caller's session. Revoking an already revoked session succeeds.
func (s *Service) Logout(ctx context.Context, principal id.Principal) error {
	if !principal.IsAuthenticated() {
		return dErrors.New(dErrors.CodeUnauthorized, "user ID required")
	}
	err := s.sessions.RevokeSessionIfActive(ctx, principal.SessionID, requestcontext.Now(ctx))
	switch {
	case err == nil:
		s.logAudit(ctx, audit.EventSessionRevoked, principal.UserID, "session_id", principal.SessionID.String())
		return nil
	case errors.Is(err, session.ErrSessionRevoked):
		return nil
	case errors.Is(err, sentinel.ErrNotFound):
		return dErrors.New(dErrors.CodeNotFound, "session not found")
	default:
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to revoke session")
	}
}

// ActiveSessionRole implements the auth middleware's session check: the
// session must exist, belong to userID and be active.
func (s *Service) ActiveSessionRole(ctx context.Context, sessionID id.SessionID, userID id.UserID) (id.Role, error) {
	sess, err := s.sessions.FindByID(ctx, sessionID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return "", dErrors.New(dErrors.CodeUnauthorized, "session not found")
		}
		return "", dErrors.Wrap(err, dErrors.CodeInternal, "failed to load session")
	}
	if sess.UserID != userID {
		return "", dErrors.New(dErrors.CodeUnauthorized, "session does not belong to user")
	}
	if !sess.IsActive(requestcontext.Now(ctx)) {
		return "", dErrors.New(dErrors.CodeUnauthorized, "session is not active")
	}
	return sess.Role, nil
}

// Me returns the caller's profile.
func (s *Service) Me(ctx context.Context, principal id.Principal) (*models.User, error) {
	return s.GetUser(ctx, principal.UserID)
}

// GetUser loads a user by id.
func (s *Service) GetUser(ctx context.Context, userID id.UserID) (*models.User, error) {
	if userID.IsNil() {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "user ID required")
	}
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, sentinel.ErrNotFound) {
			return nil, dErrors.New(dErrors.CodeNotFound, "user not found")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to load user")
	}
	return user, nil
}
