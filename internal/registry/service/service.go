// Package service implements the land registry: parcel registration and
// verification, purchase review, payment and escrow tracking, the in-person
// transfer workflow, certificate issuance, and the re-listing gate.
//
// Every state change runs inside Store.RunInTx keyed by the land it touches.
// Ledger lookups happen before the transaction opens and never hold it.
package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	authmodels "landtitle/internal/auth/models"
	"landtitle/internal/certificate"
	"landtitle/internal/ledger"
	"landtitle/internal/registry/metrics"
	"landtitle/internal/registry/models"
	id "landtitle/pkg/domain"
	dErrors "landtitle/pkg/domain-errors"
	"landtitle/pkg/platform/audit"
	"landtitle/pkg/platform/sentinel"
	"landtitle/pkg/requestcontext"
)

type Store interface {
	RunInTx(ctx context.Context, landID id.LandID, fn func(ctx context.Context) error) error

	CreateLand(ctx context.Context, land *models.Land) error
	SaveLand(ctx context.Context, land *models.Land) error
	FindLand(ctx context.Context, landID id.LandID) (*models.Land, error)
	ListLands(ctx context.Context, filter models.LandFilter) ([]*models.Land, error)

	CreateBuyRequest(ctx context.Context, br *models.BuyRequest) error
	SaveBuyRequest(ctx context.Context, br *models.BuyRequest) error
	FindBuyRequest(ctx context.Context, brID id.BuyRequestID) (*models.BuyRequest, error)
	ListBuyRequests(ctx context.Context, filter models.BuyRequestFilter) ([]*models.BuyRequest, error)

	CreatePayment(ctx context.Context, p *models.Payment) error
	SavePayment(ctx context.Context, p *models.Payment) error
	FindPayment(ctx context.Context, paymentID id.PaymentID) (*models.Payment, error)
	FindPaymentByTxID(ctx context.Context, txID string) (*models.Payment, error)
	ListPayments(ctx context.Context, filter models.PaymentFilter) ([]*models.Payment, error)

	CreateWorkflow(ctx context.Context, w *models.TransferWorkflow) error
	SaveWorkflow(ctx context.Context, w *models.TransferWorkflow) error
	FindWorkflow(ctx context.Context, workflowID id.WorkflowID) (*models.TransferWorkflow, error)
	FindWorkflowByPayment(ctx context.Context, paymentID id.PaymentID) (*models.TransferWorkflow, error)
	ListWorkflows(ctx context.Context, filter models.WorkflowFilter) ([]*models.TransferWorkflow, error)

	CreateTransferRecord(ctx context.Context, rec *models.TransferRecord) error
	FindTransferRecord(ctx context.Context, recordID id.TransferRecordID) (*models.TransferRecord, error)
	LatestTransferRecord(ctx context.Context, landID id.LandID) (*models.TransferRecord, error)
	ListTransferRecords(ctx context.Context, landID id.LandID) ([]*models.TransferRecord, error)
}

// UserDirectory resolves account details for wallets and certificates.
type UserDirectory interface {
	FindByID(ctx context.Context, userID id.UserID) (*authmodels.User, error)
}

type Ledger interface {
	LookupTransaction(ctx context.Context, txID string) (*ledger.Transaction, error)
}

type CertificateCodec interface {
	Embed(doc certificate.Document, fp certificate.Fingerprint) ([]byte, error)
}

type AuditPublisher interface {
	Emit(ctx context.Context, event audit.Event) error
}

// Config holds registry policy knobs.
type Config struct {
	// CustodianAddress receives escrow payments.
	CustodianAddress string
	Converter        *ledger.Converter
	LedgerTimeout    time.Duration
}

const (
	defaultLedgerTimeout = 10 * time.Second
	defaultINRPerEther   = "250000"
)

type Service struct {
	store          Store
	users          UserDirectory
	ledger         Ledger
	codec          CertificateCodec
	cfg            Config
	logger         *slog.Logger
	auditPublisher AuditPublisher
	metrics        *metrics.Metrics
	tracer         trace.Tracer
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

func New(store Store, users UserDirectory, l Ledger, codec CertificateCodec, cfg Config, opts ...Option) (*Service, error) {
	if store == nil || users == nil || l == nil || codec == nil {
		return nil, errors.New("registry service requires store, users, ledger, and codec")
	}
	if cfg.CustodianAddress != "" {
		if err := ledger.ValidateAddress(cfg.CustodianAddress); err != nil {
			return nil, err
		}
	}
	if cfg.Converter == nil {
		conv, err := ledger.NewConverter(defaultINRPerEther)
		if err != nil {
			return nil, err
		}
		cfg.Converter = conv
	}
	if cfg.LedgerTimeout <= 0 {
		cfg.LedgerTimeout = defaultLedgerTimeout
	}
	s := &Service{
		store:  store,
		users:  users,
		ledger: l,
		codec:  codec,
		cfg:    cfg,
		logger: slog.Default(),
		tracer: otel.Tracer("landtitle/registry"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// auditRecord describes what an audit event concerns.
type auditRecord struct {
	landID   id.LandID
	userID   id.UserID
	subject  string
	decision string
	reason   string
}

func (s *Service) logAudit(ctx context.Context, event audit.AuditEvent, actor id.Principal, rec auditRecord, attributes ...any) {
	requestID := requestcontext.RequestID(ctx)
	if requestID != "" {
		attributes = append(attributes, "request_id", requestID)
	}
	if !rec.landID.IsNil() {
		attributes = append(attributes, "land_id", rec.landID.String())
	}
	actorID := actor.UserID.String()
	if actor.UserID.IsNil() {
		actorID = models.SystemActor
	}
	args := append(attributes, "event", string(event), "log_type", "audit", "actor_id", actorID)
	if s.logger != nil {
		s.logger.InfoContext(ctx, string(event), args...)
	}
	if s.auditPublisher == nil {
		return
	}
	userID := rec.userID
	if userID.IsNil() {
		userID = actor.UserID
	}
	if err := s.auditPublisher.Emit(ctx, audit.Event{
		Timestamp: requestcontext.Now(ctx),
		UserID:    userID,
		Subject:   rec.subject,
		Action:    string(event),
		Decision:  rec.decision,
		Reason:    rec.reason,
		RequestID: requestID,
		ActorID:   actorID,
		LandID:    rec.landID,
	}); err != nil && s.logger != nil {
		s.logger.WarnContext(ctx, "failed to emit audit event", "event", string(event), "error", err)
	}
}

// startSpan opens a span for a workflow operation. Callers end it with endSpan.
func (s *Service) startSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return s.tracer.Start(ctx, "registry."+name, trace.WithAttributes(attrs...))
}

func endSpan(span trace.Span, err error) {
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, string(dErrors.CodeOf(err)))
	}
	span.End()
}

// runInTx runs fn in a store transaction for landID. Domain errors from fn
// pass through; store failures are translated.
func (s *Service) runInTx(ctx context.Context, landID id.LandID, fn func(ctx context.Context) error) error {
	err := s.store.RunInTx(ctx, landID, fn)
	if err == nil {
		return nil
	}
	var de *dErrors.Error
	switch {
	case errors.As(err, &de):
		return err
	case errors.Is(err, sentinel.ErrConflict):
		return dErrors.Wrap(err, dErrors.CodeConflict, "conflicting update, state changed concurrently")
	case errors.Is(err, context.DeadlineExceeded):
		return dErrors.Wrap(err, dErrors.CodeTimeout, "transaction timed out")
	default:
		return dErrors.Wrap(err, dErrors.CodeInternal, "transaction failed")
	}
}

// storeErr translates a store sentinel into a domain error about what.
func storeErr(err error, what string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, sentinel.ErrNotFound):
		return dErrors.New(dErrors.CodeNotFound, what+" not found")
	case errors.Is(err, sentinel.ErrConflict):
		return dErrors.New(dErrors.CodeConflict, what+" conflicts with existing state")
	default:
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to access "+what)
	}
}

func requireUser(actor id.Principal) error {
	if !actor.IsAuthenticated() {
		return dErrors.New(dErrors.CodeUnauthorized, "authentication required")
	}
	return nil
}

func requireInspector(actor id.Principal) error {
	if err := requireUser(actor); err != nil {
		return err
	}
	if !actor.IsInspector() {
		return dErrors.New(dErrors.CodeForbidden, "inspector role required")
	}
	return nil
}

func (s *Service) findUser(ctx context.Context, userID id.UserID) (*authmodels.User, error) {
	u, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, storeErr(err, "user")
	}
	return u, nil
}

func partyDetails(u *authmodels.User) models.PartyDetails {
	return models.PartyDetails{
		ID:            u.ID,
		Name:          u.Name,
		Email:         u.Email,
		Phone:         u.Phone,
		GovID:         u.GovID,
		WalletAddress: u.WalletAddress,
	}
}
