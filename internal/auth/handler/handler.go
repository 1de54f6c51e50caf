package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"landtitle/internal/auth/models"
	"landtitle/internal/auth/service"
	id "landtitle/pkg/domain"
	"landtitle/pkg/platform/httputil"
	"landtitle/pkg/requestcontext"
)

// Service defines the auth operations the handler needs.
type Service interface {
	Register(ctx context.Context, in service.RegisterInput) (*models.LoginResult, error)
	Login(ctx context.Context, email, password string) (*models.LoginResult, error)
	Logout(ctx context.Context, principal id.Principal) error
	Me(ctx context.Context, principal id.Principal) (*models.User, error)
}

// Handler serves the /auth endpoints.
type Handler struct {
	auth        Service
	logger      *slog.Logger
	requireAuth func(http.Handler) http.Handler
}

// New creates an auth Handler. requireAuth guards logout and profile routes.
func New(auth Service, logger *slog.Logger, requireAuth func(http.Handler) http.Handler) *Handler {
	return &Handler{auth: auth, logger: logger, requireAuth: requireAuth}
}

func (h *Handler) Register(r chi.Router) {
	r.Post("/auth/register", h.handleRegister)
	r.Post("/auth/login", h.handleLogin)
	r.Group(func(r chi.Router) {
		r.Use(h.requireAuth)
		r.Post("/auth/logout", h.handleLogout)
		r.Get("/auth/me", h.handleMe)
	})
}

func (h *Handler) handleRegister(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[RegisterRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}
	res, err := h.auth.Register(ctx, req.toInput())
	if err != nil {
		h.logger.WarnContext(ctx, "registration failed", "error", err, "request_id", requestID)
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, LoginFromResult(res))
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[LoginRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}
	res, err := h.auth.Login(ctx, req.Email, req.Password)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, LoginFromResult(res))
}

func (h *Handler) handleLogout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if err := h.auth.Logout(ctx, requestcontext.Principal(ctx)); err != nil {
		h.logger.ErrorContext(ctx, "logout failed", "error", err, "request_id", requestcontext.RequestID(ctx))
		httputil.WriteError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleMe(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	user, err := h.auth.Me(ctx, requestcontext.Principal(ctx))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, UserFromModel(user))
}
