package handler

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"landtitle/internal/registry/models"
	"landtitle/internal/registry/service"
	id "landtitle/pkg/domain"
	dErrors "landtitle/pkg/domain-errors"
	"landtitle/pkg/platform/httputil"
	authmw "landtitle/pkg/platform/middleware/auth"
	platformstrings "landtitle/pkg/platform/strings"
	"landtitle/pkg/requestcontext"
)

// maxCertificateBytes bounds the multipart upload on list-for-sale.
const maxCertificateBytes = 10 << 20

// maxPhotoBodyBytes fits the largest photo as a base64 data URI plus the JSON
// fields around it.
const maxPhotoBodyBytes = (models.MaxPhotoBytes+2)/3*4 + 64<<10

// Service defines the registry operations the handler needs.
type Service interface {
	RegisterLand(ctx context.Context, actor id.Principal, in service.RegisterLandInput) (*models.Land, error)
	VerifyLand(ctx context.Context, actor id.Principal, landID id.LandID, verdict models.VerificationStatus, comments string) (*models.Land, error)
	GetLand(ctx context.Context, landID id.LandID) (*models.Land, error)
	ListAvailableLands(ctx context.Context) ([]*models.Land, error)
	ListOwnedLands(ctx context.Context, actor id.Principal) ([]*models.Land, error)
	ListTransferRecords(ctx context.Context, actor id.Principal, landID id.LandID) ([]*models.TransferRecord, error)
	ListForSale(ctx context.Context, actor id.Principal, landID id.LandID, document []byte, price decimal.Decimal, description string) (*models.Land, error)

	SubmitBuyRequest(ctx context.Context, actor id.Principal, landID id.LandID) (*models.BuyRequest, error)
	ReviewBuyRequest(ctx context.Context, actor id.Principal, brID id.BuyRequestID, approved bool, comments string) (*models.BuyRequest, error)
	ListBuyRequests(ctx context.Context, actor id.Principal, filter models.BuyRequestFilter) ([]*models.BuyRequest, error)

	RecordPayment(ctx context.Context, actor id.Principal, in service.RecordPaymentInput) (*models.Payment, error)
	GetPayment(ctx context.Context, actor id.Principal, paymentID id.PaymentID) (*models.Payment, error)
	ListPayments(ctx context.Context, actor id.Principal) ([]*models.Payment, error)
	SyncPayment(ctx context.Context, actor id.Principal, paymentID id.PaymentID) (*models.Payment, error)
	ListEscrowPayments(ctx context.Context, actor id.Principal, statuses []models.PaymentStatus) ([]*models.Payment, error)
	GetEscrowReview(ctx context.Context, actor id.Principal, paymentID id.PaymentID) (*models.EscrowReview, error)
	ReleaseEscrow(ctx context.Context, actor id.Principal, paymentID id.PaymentID, in service.ReleaseInput) (*models.Payment, error)

	RequestTransfer(ctx context.Context, actor id.Principal, landID id.LandID, paymentID id.PaymentID) (*models.TransferWorkflow, error)
	ListWorkflows(ctx context.Context, actor id.Principal, states []models.WorkflowState) ([]*models.TransferWorkflow, error)
	GetWorkflowByPayment(ctx context.Context, actor id.Principal, paymentID id.PaymentID) (*models.TransferWorkflow, error)
	CaptureVerificationPhoto(ctx context.Context, actor id.Principal, workflowID id.WorkflowID, role models.PartyRole, dataURI string, capturedAt time.Time) (*models.TransferWorkflow, error)
	DecideTransfer(ctx context.Context, actor id.Principal, workflowID id.WorkflowID, decision models.Decision, comments string) (*models.TransferWorkflow, *models.TransferRecord, error)
	IssueCertificate(ctx context.Context, actor id.Principal, recordID id.TransferRecordID) ([]byte, error)
}

// Handler serves the land, purchase, escrow and transfer endpoints.
type Handler struct {
	registry    Service
	logger      *slog.Logger
	requireAuth func(http.Handler) http.Handler
}

// New creates a registry Handler. Browsing lands is public; everything else
// runs behind requireAuth.
func New(registry Service, logger *slog.Logger, requireAuth func(http.Handler) http.Handler) *Handler {
	return &Handler{registry: registry, logger: logger, requireAuth: requireAuth}
}

func (h *Handler) Register(r chi.Router) {
	r.Get("/lands", h.handleListLands)
	r.Get("/lands/{landID}", h.handleGetLand)
	r.Group(func(r chi.Router) {
		r.Use(h.requireAuth)

		r.Post("/lands", h.handleRegisterLand)
		r.Get("/lands/mine", h.handleListOwnedLands)
		r.Post("/lands/{landID}/buy-requests", h.handleSubmitBuyRequest)
		r.Post("/lands/{landID}/list-for-sale", h.handleListForSale)
		r.Get("/lands/{landID}/transfers", h.handleListTransferRecords)

		r.Get("/buy-requests", h.handleListBuyRequests)

		r.Post("/payments", h.handleRecordPayment)
		r.Get("/payments", h.handleListPayments)
		r.Get("/payments/{paymentID}", h.handleGetPayment)
		r.Post("/payments/{paymentID}/sync", h.handleSyncPayment)

		r.Post("/transfers", h.handleRequestTransfer)
		r.Get("/transfers", h.handleListTransfers)
		r.Get("/transfer-records/{recordID}/certificate", h.handleIssueCertificate)

		r.Group(func(r chi.Router) {
			r.Use(authmw.RequireRole(id.RoleInspector))
			r.Post("/lands/{landID}/verify", h.handleVerifyLand)
			r.Post("/buy-requests/{buyRequestID}/review", h.handleReviewBuyRequest)
			r.Get("/escrow/payments", h.handleListEscrowPayments)
			r.Get("/escrow/payments/{paymentID}/review", h.handleGetEscrowReview)
			r.Post("/escrow/payments/{paymentID}/release", h.handleReleaseEscrow)
			r.Post("/transfers/{workflowID}/photos", h.handleCapturePhoto)
			r.Post("/transfers/{workflowID}/decision", h.handleDecideTransfer)
		})
	})
}

// fail logs non-client errors and writes the error envelope.
func (h *Handler) fail(ctx context.Context, w http.ResponseWriter, msg string, err error) {
	if httputil.StatusFor(dErrors.CodeOf(err)) >= http.StatusInternalServerError {
		h.logger.ErrorContext(ctx, msg, "error", err, "request_id", requestcontext.RequestID(ctx))
	}
	httputil.WriteError(w, err)
}

func pathID[T any](r *http.Request, param string, parse func(string) (T, error)) (T, error) {
	v, err := parse(chi.URLParam(r, param))
	if err != nil {
		var zero T
		return zero, dErrors.New(dErrors.CodeBadRequest, "invalid "+param)
	}
	return v, nil
}

func (h *Handler) handleRegisterLand(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[RegisterLandRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}
	land, err := h.registry.RegisterLand(ctx, requestcontext.Principal(ctx), req.toInput())
	if err != nil {
		h.fail(ctx, w, "land registration failed", err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, LandFromModel(land))
}

func (h *Handler) handleListLands(w http.ResponseWriter, r *http.Request) {
	lands, err := h.registry.ListAvailableLands(r.Context())
	if err != nil {
		h.fail(r.Context(), w, "list lands failed", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, mapSlice(lands, LandFromModel))
}

func (h *Handler) handleListOwnedLands(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	lands, err := h.registry.ListOwnedLands(ctx, requestcontext.Principal(ctx))
	if err != nil {
		h.fail(ctx, w, "list owned lands failed", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, mapSlice(lands, LandFromModel))
}

func (h *Handler) handleGetLand(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	landID, err := pathID(r, "landID", id.ParseLandID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	land, err := h.registry.GetLand(ctx, landID)
	if err != nil {
		h.fail(ctx, w, "get land failed", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, LandFromModel(land))
}

func (h *Handler) handleVerifyLand(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	landID, err := pathID(r, "landID", id.ParseLandID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	req, ok := httputil.DecodeAndPrepare[VerifyLandRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}
	land, err := h.registry.VerifyLand(ctx, requestcontext.Principal(ctx), landID, req.verdict, req.Comments)
	if err != nil {
		h.fail(ctx, w, "land verification failed", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, LandFromModel(land))
}

func (h *Handler) handleListTransferRecords(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	landID, err := pathID(r, "landID", id.ParseLandID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	records, err := h.registry.ListTransferRecords(ctx, requestcontext.Principal(ctx), landID)
	if err != nil {
		h.fail(ctx, w, "list transfer records failed", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, mapSlice(records, TransferRecordFromModel))
}

// handleListForSale takes multipart form fields document, price and description.
func (h *Handler) handleListForSale(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	landID, err := pathID(r, "landID", id.ParseLandID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxCertificateBytes)
	if err := r.ParseMultipartForm(maxCertificateBytes); err != nil {
		h.logger.WarnContext(ctx, "invalid certificate upload", "error", err, "request_id", requestcontext.RequestID(ctx))
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "expected a multipart form with a document"))
		return
	}
	price, err := decimal.NewFromString(strings.TrimSpace(r.FormValue("price")))
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeValidation, "price must be a number"))
		return
	}
	file, _, err := r.FormFile("document")
	if err != nil {
		httputil.WriteError(w, dErrors.New(dErrors.CodeValidation, "document is required"))
		return
	}
	defer file.Close()
	document, err := io.ReadAll(file)
	if err != nil {
		httputil.WriteError(w, dErrors.Wrap(err, dErrors.CodeBadRequest, "failed to read document"))
		return
	}

	land, err := h.registry.ListForSale(ctx, requestcontext.Principal(ctx), landID, document, price, r.FormValue("description"))
	if err != nil {
		h.fail(ctx, w, "list for sale failed", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, LandFromModel(land))
}

func (h *Handler) handleSubmitBuyRequest(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	landID, err := pathID(r, "landID", id.ParseLandID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	br, err := h.registry.SubmitBuyRequest(ctx, requestcontext.Principal(ctx), landID)
	if err != nil {
		h.fail(ctx, w, "buy request failed", err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, BuyRequestFromModel(br))
}

func (h *Handler) handleReviewBuyRequest(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	brID, err := pathID(r, "buyRequestID", id.ParseBuyRequestID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	req, ok := httputil.DecodeAndPrepare[ReviewBuyRequestRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}
	br, err := h.registry.ReviewBuyRequest(ctx, requestcontext.Principal(ctx), brID, req.approved, req.Comments)
	if err != nil {
		h.fail(ctx, w, "buy request review failed", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, BuyRequestFromModel(br))
}

// handleListBuyRequests accepts land_id, buyer_id, seller_id and status
// query parameters. as=buyer or as=seller filters on the caller.
func (h *Handler) handleListBuyRequests(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	principal := requestcontext.Principal(ctx)
	q := r.URL.Query()

	var filter models.BuyRequestFilter
	var err error
	if v := q.Get("land_id"); v != "" {
		if filter.LandID, err = id.ParseLandID(v); err != nil {
			httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid land_id"))
			return
		}
	}
	if v := q.Get("buyer_id"); v != "" {
		if filter.BuyerID, err = id.ParseUserID(v); err != nil {
			httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid buyer_id"))
			return
		}
	}
	if v := q.Get("seller_id"); v != "" {
		if filter.SellerID, err = id.ParseUserID(v); err != nil {
			httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid seller_id"))
			return
		}
	}
	switch q.Get("as") {
	case "":
	case "buyer":
		filter.BuyerID = principal.UserID
	case "seller":
		filter.SellerID = principal.UserID
	default:
		httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "as must be buyer or seller"))
		return
	}
	if filter.Statuses, err = parseList(q.Get("status"), models.ParseBuyRequestStatus); err != nil {
		httputil.WriteError(w, err)
		return
	}

	out, err := h.registry.ListBuyRequests(ctx, principal, filter)
	if err != nil {
		h.fail(ctx, w, "list buy requests failed", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, mapSlice(out, BuyRequestFromModel))
}

func (h *Handler) handleRecordPayment(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[RecordPaymentRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}
	p, err := h.registry.RecordPayment(ctx, requestcontext.Principal(ctx), req.toInput())
	if err != nil {
		h.logger.WarnContext(ctx, "payment not recorded", "error", err, "tx_id", req.TxID, "request_id", requestID)
		h.fail(ctx, w, "record payment failed", err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, PaymentFromModel(p))
}

func (h *Handler) handleListPayments(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	out, err := h.registry.ListPayments(ctx, requestcontext.Principal(ctx))
	if err != nil {
		h.fail(ctx, w, "list payments failed", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, mapSlice(out, PaymentFromModel))
}

func (h *Handler) handleGetPayment(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	paymentID, err := pathID(r, "paymentID", id.ParsePaymentID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	p, err := h.registry.GetPayment(ctx, requestcontext.Principal(ctx), paymentID)
	if err != nil {
		h.fail(ctx, w, "get payment failed", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, PaymentFromModel(p))
}

func (h *Handler) handleSyncPayment(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	paymentID, err := pathID(r, "paymentID", id.ParsePaymentID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	p, err := h.registry.SyncPayment(ctx, requestcontext.Principal(ctx), paymentID)
	if err != nil {
		h.fail(ctx, w, "sync payment failed", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, PaymentFromModel(p))
}

func (h *Handler) handleListEscrowPayments(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	statuses, err := parseList(r.URL.Query().Get("status"), models.ParsePaymentStatus)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	out, err := h.registry.ListEscrowPayments(ctx, requestcontext.Principal(ctx), statuses)
	if err != nil {
		h.fail(ctx, w, "list escrow payments failed", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, mapSlice(out, PaymentFromModel))
}

func (h *Handler) handleGetEscrowReview(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	paymentID, err := pathID(r, "paymentID", id.ParsePaymentID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	review, err := h.registry.GetEscrowReview(ctx, requestcontext.Principal(ctx), paymentID)
	if err != nil {
		h.fail(ctx, w, "escrow review failed", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, EscrowReviewFromModel(review))
}

func (h *Handler) handleReleaseEscrow(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	paymentID, err := pathID(r, "paymentID", id.ParsePaymentID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	req, ok := httputil.DecodeAndPrepare[ReleaseEscrowRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}
	p, err := h.registry.ReleaseEscrow(ctx, requestcontext.Principal(ctx), paymentID, service.ReleaseInput{
		Destination: req.Destination,
		Confirmed:   req.Confirmed,
		ReleaseTxID: req.ReleaseTxID,
	})
	if err != nil {
		h.fail(ctx, w, "escrow release failed", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, PaymentFromModel(p))
}

func (h *Handler) handleRequestTransfer(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[RequestTransferRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}
	wf, err := h.registry.RequestTransfer(ctx, requestcontext.Principal(ctx), req.LandID, req.PaymentID)
	if err != nil {
		h.fail(ctx, w, "transfer request failed", err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, WorkflowFromModel(wf))
}

// handleListTransfers returns the workflow of ?payment_id= to its parties, or
// lists workflows by ?state= for inspectors.
func (h *Handler) handleListTransfers(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	principal := requestcontext.Principal(ctx)
	q := r.URL.Query()

	if v := q.Get("payment_id"); v != "" {
		paymentID, err := id.ParsePaymentID(v)
		if err != nil {
			httputil.WriteError(w, dErrors.New(dErrors.CodeBadRequest, "invalid payment_id"))
			return
		}
		wf, err := h.registry.GetWorkflowByPayment(ctx, principal, paymentID)
		if err != nil {
			h.fail(ctx, w, "get transfer failed", err)
			return
		}
		httputil.WriteJSON(w, http.StatusOK, WorkflowFromModel(wf))
		return
	}

	states, err := parseList(q.Get("state"), models.ParseWorkflowState)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	out, err := h.registry.ListWorkflows(ctx, principal, states)
	if err != nil {
		h.fail(ctx, w, "list transfers failed", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, mapSlice(out, WorkflowFromModel))
}

func (h *Handler) handleCapturePhoto(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	workflowID, err := pathID(r, "workflowID", id.ParseWorkflowID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	req, ok := httputil.DecodeAndPrepareLimit[CapturePhotoRequest](w, r, maxPhotoBodyBytes, h.logger, ctx, requestID)
	if !ok {
		return
	}
	wf, err := h.registry.CaptureVerificationPhoto(ctx, requestcontext.Principal(ctx), workflowID, req.role, req.Image, req.CapturedAt)
	if err != nil {
		h.fail(ctx, w, "photo capture failed", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, WorkflowFromModel(wf))
}

func (h *Handler) handleDecideTransfer(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	workflowID, err := pathID(r, "workflowID", id.ParseWorkflowID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	req, ok := httputil.DecodeAndPrepare[DecideTransferRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}
	wf, rec, err := h.registry.DecideTransfer(ctx, requestcontext.Principal(ctx), workflowID, req.decision, req.Comments)
	if err != nil {
		h.fail(ctx, w, "transfer decision failed", err)
		return
	}
	resp := DecisionResponse{Workflow: WorkflowFromModel(wf)}
	if rec != nil {
		tr := TransferRecordFromModel(rec)
		resp.TransferRecord = &tr
	}
	httputil.WriteJSON(w, http.StatusOK, resp)
}

func (h *Handler) handleIssueCertificate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	recordID, err := pathID(r, "recordID", id.ParseTransferRecordID)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	pdf, err := h.registry.IssueCertificate(ctx, requestcontext.Principal(ctx), recordID)
	if err != nil {
		h.fail(ctx, w, "certificate issue failed", err)
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="certificate-%s.pdf"`, recordID))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(pdf); err != nil {
		h.logger.WarnContext(ctx, "failed to write certificate", "error", err, "request_id", requestcontext.RequestID(ctx))
	}
}

// parseList splits a comma-separated query value and parses each element.
func parseList[T any](raw string, parse func(string) (T, error)) ([]T, error) {
	if raw == "" {
		return nil, nil
	}
	var out []T
	for _, part := range platformstrings.DedupeAndTrim(strings.Split(raw, ",")) {
		v, err := parse(part)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}
