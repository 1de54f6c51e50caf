package service

import (
	"context"
	"log/slog"
	"time"

	"landtitle/internal/auth/models"
	"landtitle/internal/platform/metrics"
	id "landtitle/pkg/domain"
	"landtitle/pkg/platform/audit"
	"landtitle/pkg/requestcontext"
)

type UserStore interface {
	Create(ctx context.Context, user *models.User) error
	FindByID(ctx context.Context, userID id.UserID) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
}

type SessionStore interface {
	Create(ctx context.Context, session *models.Session) error
	FindByID(ctx context.Context, sessionID id.SessionID) (*models.Session, error)
	RevokeSessionIfActive(ctx context.Context, sessionID id.SessionID, now time.Time) error
}

type TokenGenerator interface {
	GenerateAccessToken(userID id.UserID, sessionID id.SessionID, expiresIn time.Duration) (string, time.Time, error)
}

type AuditPublisher interface {
	Emit(ctx context.Context, event audit.Event) error
}

// Config holds auth policy knobs.
type Config struct {
	AccessTokenTTL      time.Duration
	SessionTTL          time.Duration
	InspectorInviteCode string
	BcryptCost          int
}

const (
	defaultAccessTokenTTL = time.Hour
	defaultSessionTTL     = 24 * time.Hour
)

// Service registers accounts and manages login sessions.
type Service struct {
	users          UserStore
	sessions       SessionStore
	tokens         TokenGenerator
	cfg            Config
	logger         *slog.Logger
	auditPublisher AuditPublisher
	metrics        *metrics.Metrics
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithAuditPublisher(publisher AuditPublisher) Option {
	return func(s *Service) {
		s.auditPublisher = publisher
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

func New(users UserStore, sessions SessionStore, tokens TokenGenerator, cfg Config, opts ...Option) *Service {
	if cfg.AccessTokenTTL <= 0 {
		cfg.AccessTokenTTL = defaultAccessTokenTTL
	}
	if cfg.SessionTTL <= 0 {
		cfg.SessionTTL = defaultSessionTTL
	}
	if cfg.SessionTTL < cfg.AccessTokenTTL {
		cfg.SessionTTL = cfg.AccessTokenTTL
	}
	s := &Service{users: users, sessions: sessions, tokens: tokens, cfg: cfg, logger: slog.Default()}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Service) logAudit(ctx context.Context, event audit.AuditEvent, userID id.UserID, attributes ...any) {
	requestID := requestcontext.RequestID(ctx)
	if requestID != "" {
		attributes = append(attributes, "request_id", requestID)
	}
	args := append(attributes, "event", string(event), "log_type", "audit", "user_id", userID.String())
	if s.logger != nil {
		s.logger.InfoContext(ctx, string(event), args...)
	}
	if s.auditPublisher == nil {
		return
	}
	if err := s.auditPublisher.Emit(ctx, audit.Event{
		UserID:    userID,
		Subject:   "user:" + userID.String(),
		Action:    string(event),
		RequestID: requestID,
	}); err != nil && s.logger != nil {
		s.logger.WarnContext(ctx, "failed to emit audit event", "event", string(event), "error", err)
	}
}

func (s *Service) authFailure(ctx context.Context, reason string, attributes ...any) {
	args := append(attributes, "reason", reason, "request_id", requestcontext.RequestID(ctx))
	if s.logger != nil {
		s.logger.WarnContext(ctx, "authentication failed", args...)
	}
	if s.auditPublisher != nil {
		_ = s.auditPublisher.Emit(ctx, audit.Event{
			Action:    string(audit.EventAuthFailed),
			Reason:    reason,
			RequestID: requestcontext.RequestID(ctx),
		})
	}
}
