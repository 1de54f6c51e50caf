package jwttoken

import (
	dErrors "landtitle/pkg/domain-errors"
	authmw "landtitle/pkg/platform/middleware/auth"
)

// MiddlewareValidator exposes JWTService to the auth middleware, which only
// sees the user, session and token ids.
type MiddlewareValidator struct {
	service *JWTService
}

func NewJWTServiceAdapter(service *JWTService) *MiddlewareValidator {
	return &MiddlewareValidator{service: service}
}

// ValidateToken also rejects tokens with no session: roles live on the
// session, so a sessionless token can never resolve to a principal.
func (a *MiddlewareValidator) ValidateToken(tokenString string) (*authmw.JWTClaims, error) {
	claims, err := a.service.ValidateToken(tokenString)
	if err != nil {
		return nil, err
	}
	if claims.UserID == "" || claims.SessionID == "" {
		return nil, dErrors.New(dErrors.CodeUnauthorized, "token is not bound to a session")
	}
	return &authmw.JWTClaims{
		UserID:    claims.UserID,
		SessionID: claims.SessionID,
		JTI:       claims.ID,
	}, nil
}
