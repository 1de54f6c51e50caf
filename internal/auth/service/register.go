package service

import (
	"context"
	"errors"
	"net/mail"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"landtitle/internal/auth/models"
	"landtitle/internal/ledger"
	id "landtitle/pkg/domain"
	dErrors "landtitle/pkg/domain-errors"
	"landtitle/pkg/email"
	"landtitle/pkg/platform/audit"
	"landtitle/pkg/platform/sentinel"
	"landtitle/pkg/requestcontext"
)

const minPasswordLength = 8

// RegisterInput carries a validated sign-up request.
type RegisterInput struct {
	Name          string
	Email         string
	Password      string
	Role          id.Role
	InviteCode    string
	WalletAddress string
	GovID         string
	Phone         string
}

// Register creates an account and logs it in. Inspector accounts require the
// configured invite code.
func (s *Service) Register(ctx context.Context, in RegisterInput) (*models.LoginResult, error) {
	addr, err := mail.ParseAddress(strings.TrimSpace(in.Email))
	if err != nil || addr.Address != strings.TrimSpace(in.Email) {
		return nil, dErrors.New(dErrors.CodeValidation, "email is invalid")
	}
	if len(in.Password) < minPasswordLength {
		return nil, dErrors.New(dErrors.CodeValidation, "password must be at least 8 characters")
	}
	if in.Role == "" {
		in.Role = id.RoleUser
	}
	if !in.Role.IsValid() {
		return nil, dErrors.New(dErrors.CodeValidation, "invalid role")
	}
	if in.Role == id.RoleInspector && (s.cfg.InspectorInviteCode == "" || in.InviteCode != s.cfg.InspectorInviteCode) {
		return nil, dErrors.New(dErrors.CodeForbidden, "inspector registration requires a valid invite code")
	}
	if in.WalletAddress != "" {
		if err := ledger.ValidateAddress(in.WalletAddress); err != nil {
			return nil, err
		}
	}

	name := strings.TrimSpace(in.Name)
	if name == "" {
		name = email.DisplayName(addr.Address)
	}

	cost := s.cfg.BcryptCost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), cost)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to hash password")
	}

	user := &models.User{
		ID:            id.NewUserID(),
		Name:          name,
		Email:         addr.Address,
		PasswordHash:  string(hash),
		Role:          in.Role,
		WalletAddress: in.WalletAddress,
		GovID:         strings.TrimSpace(in.GovID),
		Phone:         strings.TrimSpace(in.Phone),
		CreatedAt:     requestcontext.Now(ctx),
	}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, sentinel.ErrConflict) {
			return nil, dErrors.New(dErrors.CodeConflict, "email already registered")
		}
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to create user")
	}
	s.logAudit(ctx, audit.EventUserCreated, user.ID, "role", user.Role.String())
	s.metrics.IncrementUsersCreated()

	return s.startSession(ctx, user)
}
