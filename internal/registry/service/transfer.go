package service

import (
	"context"
	"errors"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"landtitle/internal/registry/models"
	id "landtitle/pkg/domain"
	dErrors "landtitle/pkg/domain-errors"
	"landtitle/pkg/platform/audit"
	"landtitle/pkg/platform/sentinel"
	"landtitle/pkg/requestcontext"
)

// RequestTransfer opens the in-person verification for a paid parcel. The
// workflow for a payment is unique: an active one is returned as is, a
// rejected one is resubmitted, an approved one cannot be requested again.
func (s *Service) RequestTransfer(ctx context.Context, actor id.Principal, landID id.LandID, paymentID id.PaymentID) (_ *models.TransferWorkflow, err error) {
	ctx, span := s.startSpan(ctx, "RequestTransfer",
		attribute.String("land_id", landID.String()),
		attribute.String("payment_id", paymentID.String()))
	defer func() { endSpan(span, err) }()

	if err := requireUser(actor); err != nil {
		return nil, err
	}

	var w *models.TransferWorkflow
	var event audit.AuditEvent
	err = s.runInTx(ctx, landID, func(ctx context.Context) error {
		now := requestcontext.Now(ctx)
		land, err := s.store.FindLand(ctx, landID)
		if err != nil {
			return storeErr(err, "land")
		}
		if land.OwnerID != actor.UserID {
			return dErrors.New(dErrors.CodeForbidden, "only the current owner can request a transfer")
		}
		p, err := s.store.FindPayment(ctx, paymentID)
		if err != nil {
			return storeErr(err, "payment")
		}
		if p.LandID != landID {
			return dErrors.New(dErrors.CodeValidation, "payment does not belong to this land")
		}
		if p.SellerID != actor.UserID {
			return dErrors.New(dErrors.CodeForbidden, "only the seller can request a transfer")
		}
		if p.Status == models.PaymentPending {
			return dErrors.New(dErrors.CodeConflict, "payment is not confirmed on the ledger")
		}

		w, err = s.store.FindWorkflowByPayment(ctx, paymentID)
		switch {
		case errors.Is(err, sentinel.ErrNotFound):
			if land.Status != models.LandUnderSale {
				return dErrors.New(dErrors.CodeConflict, "land is not under sale")
			}
			w = models.NewTransferWorkflow(p, now)
			event = audit.EventTransferRequested
			return storeErr(s.store.CreateWorkflow(ctx, w), "transfer workflow")
		case err != nil:
			return storeErr(err, "transfer workflow")
		}

		switch w.State {
		case models.WorkflowApproved:
			return dErrors.New(dErrors.CodeConflict, "transfer has already been approved")
		case models.WorkflowRejected:
			if err := w.Resubmit(actor.UserID, now); err != nil {
				return err
			}
			event = audit.EventTransferRequested
			return storeErr(s.store.SaveWorkflow(ctx, w), "transfer workflow")
		default:
			return nil
		}
	})
	if err != nil {
		return nil, err
	}
	if event == "" {
		return w, nil
	}

	s.logAudit(ctx, event, actor, auditRecord{
		landID:  landID,
		subject: "transfer:" + w.ID.String(),
	}, "attempt", w.Attempt)
	s.metrics.IncrementWorkflowTransition(string(w.State))
	return w, nil
}

// CaptureVerificationPhoto stores an identity photo taken by the inspector.
// The seller is photographed first, then the buyer.
func (s *Service) CaptureVerificationPhoto(ctx context.Context, actor id.Principal, workflowID id.WorkflowID, role models.PartyRole, dataURI string, capturedAt time.Time) (_ *models.TransferWorkflow, err error) {
	ctx, span := s.startSpan(ctx, "CaptureVerificationPhoto",
		attribute.String("workflow_id", workflowID.String()),
		attribute.String("role", string(role)))
	defer func() { endSpan(span, err) }()

	if err := requireInspector(actor); err != nil {
		return nil, err
	}
	photo, err := models.ParsePhoto(dataURI, capturedAt)
	if err != nil {
		return nil, err
	}
	current, err := s.store.FindWorkflow(ctx, workflowID)
	if err != nil {
		return nil, storeErr(err, "transfer workflow")
	}

	var w *models.TransferWorkflow
	err = s.runInTx(ctx, current.LandID, func(ctx context.Context) error {
		var err error
		w, err = s.store.FindWorkflow(ctx, workflowID)
		if err != nil {
			return storeErr(err, "transfer workflow")
		}
		if err := w.CapturePhoto(role, photo, actor.UserID, requestcontext.Now(ctx)); err != nil {
			return err
		}
		return storeErr(s.store.SaveWorkflow(ctx, w), "transfer workflow")
	})
	if err != nil {
		return nil, err
	}

	userID := w.SellerID
	if role == models.PartyBuyer {
		userID = w.BuyerID
	}
	s.logAudit(ctx, audit.EventVerificationPhoto, actor, auditRecord{
		landID:  w.LandID,
		userID:  userID,
		subject: "transfer:" + w.ID.String(),
	}, "role", string(role), "state", string(w.State))
	s.metrics.IncrementWorkflowTransition(string(w.State))
	return w, nil
}

// DecideTransfer applies the inspector's decision. Approval needs the seller
// to have been paid, and moves ownership to the buyer together with a new
// TransferRecord. Rejection touches nothing but the workflow.
func (s *Service) DecideTransfer(ctx context.Context, actor id.Principal, workflowID id.WorkflowID, decision models.Decision, comments string) (_ *models.TransferWorkflow, _ *models.TransferRecord, err error) {
	ctx, span := s.startSpan(ctx, "DecideTransfer",
		attribute.String("workflow_id", workflowID.String()),
		attribute.String("decision", string(decision)))
	defer func() { endSpan(span, err) }()

	if err := requireInspector(actor); err != nil {
		return nil, nil, err
	}
	if decision != models.DecisionApproved && decision != models.DecisionRejected {
		return nil, nil, dErrors.New(dErrors.CodeValidation, "decision must be approved or rejected")
	}
	current, err := s.store.FindWorkflow(ctx, workflowID)
	if err != nil {
		return nil, nil, storeErr(err, "transfer workflow")
	}
	buyer, err := s.findUser(ctx, current.BuyerID)
	if err != nil {
		return nil, nil, err
	}

	var w *models.TransferWorkflow
	var rec *models.TransferRecord
	err = s.runInTx(ctx, current.LandID, func(ctx context.Context) error {
		now := requestcontext.Now(ctx)
		var err error
		w, err = s.store.FindWorkflow(ctx, workflowID)
		if err != nil {
			return storeErr(err, "transfer workflow")
		}
		if err := w.CanDecide(); err != nil {
			return err
		}
		if decision == models.DecisionRejected {
			if err := w.ApplyDecision(decision, comments, actor.UserID, now); err != nil {
				return err
			}
			return storeErr(s.store.SaveWorkflow(ctx, w), "transfer workflow")
		}

		p, err := s.store.FindPayment(ctx, w.PaymentID)
		if err != nil {
			return storeErr(err, "payment")
		}
		if !p.FundsReleased() {
			return dErrors.New(dErrors.CodeFundsNotReleased, "escrow must be released to the seller before approval")
		}
		land, err := s.store.FindLand(ctx, w.LandID)
		if err != nil {
			return storeErr(err, "land")
		}
		if err := w.ApplyDecision(decision, comments, actor.UserID, now); err != nil {
			return err
		}
		rec = models.NewTransferRecord(w, land, now)
		if err := land.ApplyTransfer(w.BuyerID, buyer.WalletAddress, now); err != nil {
			return err
		}

		if err := s.store.CreateTransferRecord(ctx, rec); err != nil {
			return storeErr(err, "transfer record")
		}
		if err := s.store.SaveLand(ctx, land); err != nil {
			return storeErr(err, "land")
		}
		return storeErr(s.store.SaveWorkflow(ctx, w), "transfer workflow")
	})
	if err != nil {
		return nil, nil, err
	}

	s.logAudit(ctx, audit.EventTransferDecided, actor, auditRecord{
		landID:   w.LandID,
		userID:   w.BuyerID,
		subject:  "transfer:" + w.ID.String(),
		decision: string(decision),
		reason:   w.Comments,
	}, "attempt", w.Attempt)
	s.metrics.IncrementWorkflowTransition(string(w.State))
	if rec != nil {
		s.logAudit(ctx, audit.EventOwnershipChanged, actor, auditRecord{
			landID:  rec.LandID,
			userID:  rec.BuyerID,
			subject: "transfer_record:" + rec.ID.String(),
		}, "seller_id", rec.SellerID.String(), "tx_id", rec.TxID, "fingerprint", rec.Fingerprint)
	}
	return w, rec, nil
}

// GetWorkflowByPayment reports the transfer status of a payment to its
// parties or an inspector.
func (s *Service) GetWorkflowByPayment(ctx context.Context, actor id.Principal, paymentID id.PaymentID) (*models.TransferWorkflow, error) {
	if _, err := s.GetPayment(ctx, actor, paymentID); err != nil {
		return nil, err
	}
	w, err := s.store.FindWorkflowByPayment(ctx, paymentID)
	if err != nil {
		return nil, storeErr(err, "transfer workflow")
	}
	return w, nil
}

// ListWorkflows lists workflows in the given states, all of them when empty.
func (s *Service) ListWorkflows(ctx context.Context, actor id.Principal, states []models.WorkflowState) ([]*models.TransferWorkflow, error) {
	if err := requireInspector(actor); err != nil {
		return nil, err
	}
	out, err := s.store.ListWorkflows(ctx, models.WorkflowFilter{States: states})
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list transfer workflows")
	}
	return out, nil
}
