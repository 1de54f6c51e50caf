package models

import (
	"encoding/base64"
	"slices"
	"strings"
	"time"

	"landtitle/internal/certificate"
	id "landtitle/pkg/domain"
	dErrors "landtitle/pkg/domain-errors"
)

// MaxPhotoBytes bounds a decoded verification photo.
const MaxPhotoBytes = 5 << 20

// Photo is an identity photo captured during verification.
type Photo struct {
	ContentType string    `json:"content_type"`
	Data        []byte    `json:"data"`
	CapturedAt  time.Time `json:"captured_at"`
}

var photoTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
}

// ParsePhoto decodes a data:image/{jpeg|png};base64 URI.
func ParsePhoto(dataURI string, capturedAt time.Time) (*Photo, error) {
	rest, ok := strings.CutPrefix(strings.TrimSpace(dataURI), "data:")
	if !ok {
		return nil, dErrors.New(dErrors.CodeValidation, "photo must be a data URI")
	}
	meta, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return nil, dErrors.New(dErrors.CodeValidation, "photo must be a data URI")
	}
	contentType, ok := strings.CutSuffix(meta, ";base64")
	if !ok || !photoTypes[contentType] {
		return nil, dErrors.New(dErrors.CodeValidation, "photo must be a base64 JPEG or PNG")
	}
	if base64.StdEncoding.DecodedLen(len(payload)) > MaxPhotoBytes {
		return nil, dErrors.New(dErrors.CodeValidation, "photo is too large")
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil || len(data) == 0 {
		return nil, dErrors.New(dErrors.CodeValidation, "photo payload is not valid base64")
	}
	if capturedAt.IsZero() {
		return nil, dErrors.New(dErrors.CodeValidation, "photo capture time is required")
	}
	return &Photo{ContentType: contentType, Data: data, CapturedAt: capturedAt.UTC()}, nil
}

func (p *Photo) clone() *Photo {
	if p == nil {
		return nil
	}
	c := *p
	c.Data = slices.Clone(p.Data)
	return &c
}

// WorkflowTransition is one entry in a workflow's history.
type WorkflowTransition struct {
	From    WorkflowState `json:"from,omitempty"`
	To      WorkflowState `json:"to"`
	Actor   string        `json:"actor"`
	Attempt int           `json:"attempt"`
	At      time.Time     `json:"at"`
}

// TransferWorkflow sequences identity verification and the inspector's
// decision for one payment. There is at most one workflow per payment;
// a rejected workflow is resubmitted rather than replaced.
type TransferWorkflow struct {
	ID          id.WorkflowID
	LandID      id.LandID
	PaymentID   id.PaymentID
	PaymentTxID string
	SellerID    id.UserID
	BuyerID     id.UserID
	State       WorkflowState
	SellerPhoto *Photo
	BuyerPhoto  *Photo
	Decision    Decision
	Comments    string
	DecidedBy   id.UserID
	DecidedAt   *time.Time
	Attempt     int
	History     []WorkflowTransition
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func NewTransferWorkflow(p *Payment, now time.Time) *TransferWorkflow {
	return &TransferWorkflow{
		ID:          id.NewWorkflowID(),
		LandID:      p.LandID,
		PaymentID:   p.ID,
		PaymentTxID: p.TxID,
		SellerID:    p.SellerID,
		BuyerID:     p.BuyerID,
		State:       WorkflowRequested,
		Attempt:     1,
		History: []WorkflowTransition{{
			To:      WorkflowRequested,
			Actor:   p.SellerID.String(),
			Attempt: 1,
			At:      now,
		}},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func (w *TransferWorkflow) transition(to WorkflowState, actor string, now time.Time) error {
	if !w.State.CanTransitionTo(to) {
		return dErrors.New(dErrors.CodeConflict, "transfer cannot move from "+string(w.State)+" to "+string(to))
	}
	w.History = append(w.History, WorkflowTransition{
		From:    w.State,
		To:      to,
		Actor:   actor,
		Attempt: w.Attempt,
		At:      now,
	})
	w.State = to
	w.UpdatedAt = now
	return nil
}

// CapturePhoto stores the seller photo, then the buyer photo. The buyer photo
// completes verification and moves the workflow to awaitingDecision.
func (w *TransferWorkflow) CapturePhoto(role PartyRole, photo *Photo, inspector id.UserID, now time.Time) error {
	actor := inspector.String()
	switch role {
	case PartySeller:
		if w.State != WorkflowRequested {
			return dErrors.New(dErrors.CodeConflict, "seller photo already captured")
		}
		if err := w.transition(WorkflowSellerPhotoCaptured, actor, now); err != nil {
			return err
		}
		w.SellerPhoto = photo
	case PartyBuyer:
		if w.State == WorkflowRequested {
			return dErrors.New(dErrors.CodeConflict, "seller photo must be captured first")
		}
		if err := w.transition(WorkflowBuyerPhotoCaptured, actor, now); err != nil {
			return err
		}
		w.BuyerPhoto = photo
		if err := w.transition(WorkflowAwaitingDecision, actor, now); err != nil {
			return err
		}
	default:
		return dErrors.New(dErrors.CodeValidation, "role must be seller or buyer")
	}
	return nil
}

// CanDecide requires both photos.
func (w *TransferWorkflow) CanDecide() error {
	if w.State != WorkflowAwaitingDecision || w.SellerPhoto == nil || w.BuyerPhoto == nil {
		return dErrors.New(dErrors.CodeConflict, "both verification photos are required before a decision")
	}
	return nil
}

// ApplyDecision records the verdict. Call CanDecide first.
func (w *TransferWorkflow) ApplyDecision(decision Decision, comments string, inspector id.UserID, now time.Time) error {
	to := WorkflowRejected
	if decision == DecisionApproved {
		to = WorkflowApproved
	}
	if err := w.transition(to, inspector.String(), now); err != nil {
		return err
	}
	w.Decision = decision
	w.Comments = strings.TrimSpace(comments)
	w.DecidedBy = inspector
	w.DecidedAt = &now
	return nil
}

// Resubmit restarts a rejected workflow. Photos are captured again.
func (w *TransferWorkflow) Resubmit(actor id.UserID, now time.Time) error {
	if w.State != WorkflowRejected {
		return dErrors.New(dErrors.CodeConflict, "only a rejected transfer can be resubmitted")
	}
	w.Attempt++
	if err := w.transition(WorkflowRequested, actor.String(), now); err != nil {
		return err
	}
	w.SellerPhoto = nil
	w.BuyerPhoto = nil
	w.Decision = ""
	w.Comments = ""
	w.DecidedBy = id.UserID{}
	w.DecidedAt = nil
	return nil
}

// IsActive reports a workflow that has neither been approved nor rejected.
func (w *TransferWorkflow) IsActive() bool {
	return w.State != WorkflowApproved && w.State != WorkflowRejected
}

func (w *TransferWorkflow) Clone() *TransferWorkflow {
	c := *w
	c.SellerPhoto = w.SellerPhoto.clone()
	c.BuyerPhoto = w.BuyerPhoto.clone()
	c.History = slices.Clone(w.History)
	if w.DecidedAt != nil {
		t := *w.DecidedAt
		c.DecidedAt = &t
	}
	return &c
}

// TransferRecord is the immutable record of one completed ownership change.
// The land facts are snapshotted so the fingerprint stays reproducible after
// the parcel is edited or re-sold.
type TransferRecord struct {
	ID           id.TransferRecordID
	LandID       id.LandID
	SellerID     id.UserID
	BuyerID      id.UserID
	PaymentID    id.PaymentID
	TxID         string
	SellerPhoto  *Photo
	BuyerPhoto   *Photo
	SurveyNumber string
	Location     string
	Area         string
	Fingerprint  string
	CompletedAt  time.Time
}

// NewTransferRecord snapshots an approved workflow and the parcel it moves.
func NewTransferRecord(w *TransferWorkflow, land *Land, now time.Time) *TransferRecord {
	rec := &TransferRecord{
		ID:           id.NewTransferRecordID(),
		LandID:       land.ID,
		SellerID:     w.SellerID,
		BuyerID:      w.BuyerID,
		PaymentID:    w.PaymentID,
		TxID:         w.PaymentTxID,
		SellerPhoto:  w.SellerPhoto.clone(),
		BuyerPhoto:   w.BuyerPhoto.clone(),
		SurveyNumber: land.SurveyNumber,
		Location:     land.Location,
		Area:         land.Area,
		CompletedAt:  now,
	}
	rec.Fingerprint = certificate.Compute(rec.Facts()).String()
	return rec
}

// Facts are the fingerprinted essentials of the transfer.
func (r *TransferRecord) Facts() certificate.Facts {
	return certificate.Facts{
		SurveyNumber: r.SurveyNumber,
		Location:     r.Location,
		Area:         r.Area,
		Seller:       r.SellerID.String(),
		Buyer:        r.BuyerID.String(),
		TxID:         r.TxID,
	}
}

// IsParty reports whether user is the buyer or seller.
func (r *TransferRecord) IsParty(user id.UserID) bool {
	return r.SellerID == user || r.BuyerID == user
}

func (r *TransferRecord) Clone() *TransferRecord {
	c := *r
	c.SellerPhoto = r.SellerPhoto.clone()
	c.BuyerPhoto = r.BuyerPhoto.clone()
	return &c
}
