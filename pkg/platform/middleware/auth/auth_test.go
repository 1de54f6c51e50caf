package auth

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	id "landtitle/pkg/domain"
	dErrors "landtitle/pkg/domain-errors"
	"landtitle/pkg/requestcontext"
)

type stubValidator struct {
	claims *JWTClaims
	err    error
}

func (v stubValidator) ValidateToken(string) (*JWTClaims, error) { return v.claims, v.err }

type stubSessions struct {
	role id.Role
	err  error
}

func (s stubSessions) ActiveSessionRole(context.Context, id.SessionID, id.UserID) (id.Role, error) {
	return s.role, s.err
}

func TestRequireAuth(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	userID := id.NewUserID()
	sessionID := id.NewSessionID()
	claims := &JWTClaims{UserID: userID.String(), SessionID: sessionID.String(), JTI: "jti"}

	var seen id.Principal
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = requestcontext.Principal(r.Context())
		w.WriteHeader(http.StatusNoContent)
	})

	t.Run("missing header", func(t *testing.T) {
		h := RequireAuth(stubValidator{claims: claims}, stubSessions{role: id.RoleUser}, logger)(next)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("invalid token", func(t *testing.T) {
		h := RequireAuth(stubValidator{err: dErrors.New(dErrors.CodeUnauthorized, "invalid token")}, stubSessions{}, logger)(next)
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer x")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("revoked session", func(t *testing.T) {
		h := RequireAuth(stubValidator{claims: claims}, stubSessions{err: assert.AnError}, logger)(next)
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer x")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("active session sets principal with session role", func(t *testing.T) {
		h := RequireAuth(stubValidator{claims: claims}, stubSessions{role: id.RoleInspector}, logger)(next)
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer x")
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		require.Equal(t, http.StatusNoContent, rec.Code)
		assert.Equal(t, userID, seen.UserID)
		assert.Equal(t, sessionID, seen.SessionID)
		assert.Equal(t, id.RoleInspector, seen.Role)
	})
}

func TestRequireRole(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(http.StatusNoContent) })
	h := RequireRole(id.RoleInspector)(next)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req.WithContext(requestcontext.WithPrincipal(req.Context(), id.Principal{UserID: id.NewUserID(), Role: id.RoleUser})))
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req.WithContext(requestcontext.WithPrincipal(req.Context(), id.Principal{UserID: id.NewUserID(), Role: id.RoleInspector})))
	assert.Equal(t, http.StatusNoContent, rec.Code)
}
