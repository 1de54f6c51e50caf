package handler

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"landtitle/internal/registry/models"
	"landtitle/internal/registry/service"
	id "landtitle/pkg/domain"
	dErrors "landtitle/pkg/domain-errors"
)

// Requests

type RegisterLandRequest struct {
	Location     string          `json:"location"`
	SurveyNumber string          `json:"survey_number"`
	Area         string          `json:"area"`
	Price        decimal.Decimal `json:"price"`
	Boundary     json.RawMessage `json:"boundary,omitempty"`
}

func (r *RegisterLandRequest) Validate() error {
	r.Location = strings.TrimSpace(r.Location)
	r.SurveyNumber = strings.TrimSpace(r.SurveyNumber)
	r.Area = strings.TrimSpace(r.Area)
	if r.Location == "" || r.SurveyNumber == "" || r.Area == "" {
		return dErrors.New(dErrors.CodeValidation, "location, survey_number and area are required")
	}
	if !r.Price.IsPositive() {
		return dErrors.New(dErrors.CodeValidation, "price must be positive")
	}
	return nil
}

func (r *RegisterLandRequest) toInput() service.RegisterLandInput {
	return service.RegisterLandInput{
		Location:     r.Location,
		SurveyNumber: r.SurveyNumber,
		Area:         r.Area,
		Price:        r.Price,
		Boundary:     r.Boundary,
	}
}

type VerifyLandRequest struct {
	Verdict  string `json:"verdict"`
	Comments string `json:"comments,omitempty"`

	verdict models.VerificationStatus
}

func (r *VerifyLandRequest) Validate() error {
	v, err := models.ParseVerdict(strings.TrimSpace(r.Verdict))
	if err != nil {
		return err
	}
	r.verdict = v
	return nil
}

type ReviewBuyRequestRequest struct {
	Decision string `json:"decision"`
	Comments string `json:"comments,omitempty"`

	approved bool
}

func (r *ReviewBuyRequestRequest) Validate() error {
	d, err := models.ParseDecision(strings.TrimSpace(r.Decision))
	if err != nil {
		return err
	}
	r.approved = d == models.DecisionApproved
	return nil
}

type RecordPaymentRequest struct {
	BuyRequestID id.BuyRequestID `json:"buy_request_id"`
	TxID         string          `json:"tx_id"`
	Amount       decimal.Decimal `json:"amount"`
	Type         string          `json:"type"`

	paymentType models.PaymentType
}

func (r *RecordPaymentRequest) Validate() error {
	if r.BuyRequestID.IsNil() {
		return dErrors.New(dErrors.CodeValidation, "buy_request_id is required")
	}
	r.TxID = strings.TrimSpace(r.TxID)
	if r.TxID == "" {
		return dErrors.New(dErrors.CodeValidation, "tx_id is required")
	}
	t, err := models.ParsePaymentType(strings.TrimSpace(r.Type))
	if err != nil {
		return err
	}
	r.paymentType = t
	return nil
}

func (r *RecordPaymentRequest) toInput() service.RecordPaymentInput {
	return service.RecordPaymentInput{
		BuyRequestID: r.BuyRequestID,
		TxID:         r.TxID,
		Amount:       r.Amount,
		Type:         r.paymentType,
	}
}

type ReleaseEscrowRequest struct {
	Destination string `json:"destination"`
	Confirmed   bool   `json:"confirmed"`
	ReleaseTxID string `json:"release_tx_id"`
}

func (r *ReleaseEscrowRequest) Validate() error {
	r.Destination = strings.TrimSpace(r.Destination)
	r.ReleaseTxID = strings.TrimSpace(r.ReleaseTxID)
	if r.Destination == "" || r.ReleaseTxID == "" {
		return dErrors.New(dErrors.CodeValidation, "destination and release_tx_id are required")
	}
	return nil
}

type RequestTransferRequest struct {
	LandID    id.LandID    `json:"land_id"`
	PaymentID id.PaymentID `json:"payment_id"`
}

func (r *RequestTransferRequest) Validate() error {
	if r.LandID.IsNil() || r.PaymentID.IsNil() {
		return dErrors.New(dErrors.CodeValidation, "land_id and payment_id are required")
	}
	return nil
}

type CapturePhotoRequest struct {
	Role       string    `json:"role"`
	Image      string    `json:"image"`
	CapturedAt time.Time `json:"captured_at"`

	role models.PartyRole
}

func (r *CapturePhotoRequest) Validate() error {
	role, err := models.ParsePartyRole(strings.TrimSpace(r.Role))
	if err != nil {
		return err
	}
	r.role = role
	if r.Image == "" {
		return dErrors.New(dErrors.CodeValidation, "image is required")
	}
	if r.CapturedAt.IsZero() {
		return dErrors.New(dErrors.CodeValidation, "captured_at is required")
	}
	return nil
}

type DecideTransferRequest struct {
	Decision string `json:"decision"`
	Comments string `json:"comments,omitempty"`

	decision models.Decision
}

func (r *DecideTransferRequest) Validate() error {
	d, err := models.ParseDecision(strings.TrimSpace(r.Decision))
	if err != nil {
		return err
	}
	r.decision = d
	return nil
}

// Responses

type LandResponse struct {
	ID                   id.LandID        `json:"id"`
	Location             string           `json:"location"`
	SurveyNumber         string           `json:"survey_number"`
	Area                 string           `json:"area"`
	Boundary             json.RawMessage  `json:"boundary,omitempty"`
	BoundaryAreaM2       float64          `json:"boundary_area_m2,omitempty"`
	Price                decimal.Decimal  `json:"price"`
	OwnerID              id.UserID        `json:"owner_id"`
	OwnerWallet          string           `json:"owner_wallet,omitempty"`
	VerificationStatus   string           `json:"verification_status"`
	VerificationComments string           `json:"verification_comments,omitempty"`
	Status               string           `json:"status"`
	IsListed             bool             `json:"is_listed"`
	ListingPrice         *decimal.Decimal `json:"listing_price,omitempty"`
	ListingDescription   string           `json:"listing_description,omitempty"`
	CreatedAt            time.Time        `json:"created_at"`
	UpdatedAt            time.Time        `json:"updated_at"`
}

func LandFromModel(l *models.Land) LandResponse {
	return LandResponse{
		ID:                   l.ID,
		Location:             l.Location,
		SurveyNumber:         l.SurveyNumber,
		Area:                 l.Area,
		Boundary:             l.Boundary,
		BoundaryAreaM2:       l.BoundaryAreaM2,
		Price:                l.Price,
		OwnerID:              l.OwnerID,
		OwnerWallet:          l.OwnerWallet,
		VerificationStatus:   string(l.VerificationStatus),
		VerificationComments: l.VerificationComments,
		Status:               string(l.Status),
		IsListed:             l.IsListed,
		ListingPrice:         l.ListingPrice,
		ListingDescription:   l.ListingDescription,
		CreatedAt:            l.CreatedAt,
		UpdatedAt:            l.UpdatedAt,
	}
}

type BuyRequestResponse struct {
	ID             id.BuyRequestID `json:"id"`
	LandID         id.LandID       `json:"land_id"`
	BuyerID        id.UserID       `json:"buyer_id"`
	SellerID       id.UserID       `json:"seller_id"`
	Status         string          `json:"status"`
	ReviewComments string          `json:"review_comments,omitempty"`
	RequestedAt    time.Time       `json:"requested_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

func BuyRequestFromModel(b *models.BuyRequest) BuyRequestResponse {
	return BuyRequestResponse{
		ID:             b.ID,
		LandID:         b.LandID,
		BuyerID:        b.BuyerID,
		SellerID:       b.SellerID,
		Status:         string(b.Status),
		ReviewComments: b.ReviewComments,
		RequestedAt:    b.RequestedAt,
		UpdatedAt:      b.UpdatedAt,
	}
}

type PaymentResponse struct {
	ID                 id.PaymentID               `json:"id"`
	BuyRequestID       id.BuyRequestID            `json:"buy_request_id"`
	LandID             id.LandID                  `json:"land_id"`
	BuyerID            id.UserID                  `json:"buyer_id"`
	SellerID           id.UserID                  `json:"seller_id"`
	Amount             decimal.Decimal            `json:"amount"`
	TxID               string                     `json:"tx_id"`
	Type               string                     `json:"type"`
	Status             string                     `json:"status"`
	ReleaseTxID        string                     `json:"release_tx_id,omitempty"`
	ReleaseDestination string                     `json:"release_destination,omitempty"`
	History            []models.PaymentTransition `json:"history"`
	CreatedAt          time.Time                  `json:"created_at"`
	UpdatedAt          time.Time                  `json:"updated_at"`
}

func PaymentFromModel(p *models.Payment) PaymentResponse {
	return PaymentResponse{
		ID:                 p.ID,
		BuyRequestID:       p.BuyRequestID,
		LandID:             p.LandID,
		BuyerID:            p.BuyerID,
		SellerID:           p.SellerID,
		Amount:             p.Amount,
		TxID:               p.TxID,
		Type:               string(p.Type),
		Status:             string(p.Status),
		ReleaseTxID:        p.ReleaseTxID,
		ReleaseDestination: p.ReleaseDestination,
		History:            p.History,
		CreatedAt:          p.CreatedAt,
		UpdatedAt:          p.UpdatedAt,
	}
}

type PartyResponse struct {
	ID            id.UserID `json:"id"`
	Name          string    `json:"name"`
	Email         string    `json:"email"`
	Phone         string    `json:"phone,omitempty"`
	GovID         string    `json:"gov_id,omitempty"`
	WalletAddress string    `json:"wallet_address,omitempty"`
}

type EscrowReviewResponse struct {
	Payment     PaymentResponse `json:"payment"`
	Land        LandResponse    `json:"land"`
	Seller      PartyResponse   `json:"seller"`
	Buyer       PartyResponse   `json:"buyer"`
	AmountEther string          `json:"amount_ether"`
	AmountWei   string          `json:"amount_wei"`
}

func EscrowReviewFromModel(r *models.EscrowReview) EscrowReviewResponse {
	party := func(p models.PartyDetails) PartyResponse {
		return PartyResponse(p)
	}
	return EscrowReviewResponse{
		Payment:     PaymentFromModel(r.Payment),
		Land:        LandFromModel(r.Land),
		Seller:      party(r.Seller),
		Buyer:       party(r.Buyer),
		AmountEther: r.AmountEther,
		AmountWei:   r.AmountWei,
	}
}

// PhotoResponse omits image bytes; captures are viewed at the verification desk.
type PhotoResponse struct {
	ContentType string    `json:"content_type"`
	CapturedAt  time.Time `json:"captured_at"`
}

func photoFromModel(p *models.Photo) *PhotoResponse {
	if p == nil {
		return nil
	}
	return &PhotoResponse{ContentType: p.ContentType, CapturedAt: p.CapturedAt}
}

type WorkflowResponse struct {
	ID          id.WorkflowID  `json:"id"`
	LandID      id.LandID      `json:"land_id"`
	PaymentID   id.PaymentID   `json:"payment_id"`
	SellerID    id.UserID      `json:"seller_id"`
	BuyerID     id.UserID      `json:"buyer_id"`
	State       string         `json:"state"`
	Attempt     int            `json:"attempt"`
	SellerPhoto *PhotoResponse `json:"seller_photo,omitempty"`
	BuyerPhoto  *PhotoResponse `json:"buyer_photo,omitempty"`
	Decision    string         `json:"decision,omitempty"`
	Comments    string         `json:"comments,omitempty"`
	DecidedAt   *time.Time     `json:"decided_at,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

func WorkflowFromModel(w *models.TransferWorkflow) WorkflowResponse {
	return WorkflowResponse{
		ID:          w.ID,
		LandID:      w.LandID,
		PaymentID:   w.PaymentID,
		SellerID:    w.SellerID,
		BuyerID:     w.BuyerID,
		State:       string(w.State),
		Attempt:     w.Attempt,
		SellerPhoto: photoFromModel(w.SellerPhoto),
		BuyerPhoto:  photoFromModel(w.BuyerPhoto),
		Decision:    string(w.Decision),
		Comments:    w.Comments,
		DecidedAt:   w.DecidedAt,
		CreatedAt:   w.CreatedAt,
		UpdatedAt:   w.UpdatedAt,
	}
}

type TransferRecordResponse struct {
	ID           id.TransferRecordID `json:"id"`
	LandID       id.LandID           `json:"land_id"`
	SellerID     id.UserID           `json:"seller_id"`
	BuyerID      id.UserID           `json:"buyer_id"`
	PaymentID    id.PaymentID        `json:"payment_id"`
	TxID         string              `json:"tx_id"`
	SurveyNumber string              `json:"survey_number"`
	Location     string              `json:"location"`
	Area         string              `json:"area"`
	Fingerprint  string              `json:"fingerprint"`
	CompletedAt  time.Time           `json:"completed_at"`
}

func TransferRecordFromModel(r *models.TransferRecord) TransferRecordResponse {
	return TransferRecordResponse{
		ID:           r.ID,
		LandID:       r.LandID,
		SellerID:     r.SellerID,
		BuyerID:      r.BuyerID,
		PaymentID:    r.PaymentID,
		TxID:         r.TxID,
		SurveyNumber: r.SurveyNumber,
		Location:     r.Location,
		Area:         r.Area,
		Fingerprint:  r.Fingerprint,
		CompletedAt:  r.CompletedAt,
	}
}

type DecisionResponse struct {
	Workflow       WorkflowResponse        `json:"workflow"`
	TransferRecord *TransferRecordResponse `json:"transfer_record,omitempty"`
}

func mapSlice[M any, R any](in []M, f func(M) R) []R {
	out := make([]R, 0, len(in))
	for _, m := range in {
		out = append(out, f(m))
	}
	return out
}
