package handler

import (
	"strings"
	"time"

	"landtitle/internal/auth/models"
	"landtitle/internal/auth/service"
	id "landtitle/pkg/domain"
	dErrors "landtitle/pkg/domain-errors"
)

type RegisterRequest struct {
	Name          string `json:"name"`
	Email         string `json:"email"`
	Password      string `json:"password"`
	Role          string `json:"role,omitempty"`
	InviteCode    string `json:"invite_code,omitempty"`
	WalletAddress string `json:"wallet_address,omitempty"`
	GovID         string `json:"gov_id,omitempty"`
	Phone         string `json:"phone,omitempty"`

	role id.Role
}

func (r *RegisterRequest) Validate() error {
	r.Email = strings.TrimSpace(r.Email)
	r.WalletAddress = strings.TrimSpace(r.WalletAddress)
	if r.Email == "" {
		return dErrors.New(dErrors.CodeValidation, "email is required")
	}
	if r.Password == "" {
		return dErrors.New(dErrors.CodeValidation, "password is required")
	}
	r.role = id.RoleUser
	if r.Role != "" {
		role, err := id.ParseRole(strings.TrimSpace(r.Role))
		if err != nil {
			return dErrors.New(dErrors.CodeValidation, "role must be user or inspector")
		}
		r.role = role
	}
	return nil
}

func (r *RegisterRequest) toInput() service.RegisterInput {
	return service.RegisterInput{
		Name:          r.Name,
		Email:         r.Email,
		Password:      r.Password,
		Role:          r.role,
		InviteCode:    r.InviteCode,
		WalletAddress: r.WalletAddress,
		GovID:         r.GovID,
		Phone:         r.Phone,
	}
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r *LoginRequest) Validate() error {
	r.Email = strings.TrimSpace(r.Email)
	if r.Email == "" || r.Password == "" {
		return dErrors.New(dErrors.CodeValidation, "email and password are required")
	}
	return nil
}

type UserResponse struct {
	ID            id.UserID `json:"id"`
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	Role          id.Role   `json:"role"`
	WalletAddress string    `json:"wallet_address,omitempty"`
	GovID         string    `json:"gov_id,omitempty"`
	Phone         string    `json:"phone,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

func UserFromModel(u *models.User) UserResponse {
	return UserResponse{
		ID:            u.ID,
		Name:          u.Name,
		Email:         u.Email,
		Role:          u.Role,
		WalletAddress: u.WalletAddress,
		GovID:         u.GovID,
		Phone:         u.Phone,
		CreatedAt:     u.CreatedAt,
	}
}

type LoginResponse struct {
	AccessToken string       `json:"access_token"`
	TokenType   string       `json:"token_type"`
	ExpiresAt   time.Time    `json:"expires_at"`
	SessionID   id.SessionID `json:"session_id"`
	User        UserResponse `json:"user"`
}

func LoginFromResult(res *models.LoginResult) LoginResponse {
	return LoginResponse{
		AccessToken: res.AccessToken,
		TokenType:   "Bearer",
		ExpiresAt:   res.ExpiresAt,
		SessionID:   res.SessionID,
		User:        UserFromModel(res.User),
	}
}
