package audit

import (
	"context"
	"time"

	id "landtitle/pkg/domain"
)

// EventCategory classifies audit events by their primary purpose.
type EventCategory string

const (
	// CategoryCompliance covers events with legal significance: ownership
	// changes, fund movements, certificate issuance.
	CategoryCompliance EventCategory = "compliance"

	// CategorySecurity covers authentication and verification failures.
	CategorySecurity EventCategory = "security"

	// CategoryOperations covers routine activity useful for debugging.
	CategoryOperations EventCategory = "operations"
)

// Event is emitted from domain logic to capture key actions. Keep it
// transport-agnostic so stores and sinks can fan out.
type Event struct {
	Category  EventCategory
	Timestamp time.Time
	// UserID is the user the event concerns (buyer, seller, or the acting user).
	UserID id.UserID
	// Subject names the entity, e.g. "payment:<uuid>".
	Subject   string
	Action    string
	Decision  string
	Reason    string
	RequestID string
	// ActorID tracks who performed the action when different from UserID,
	// typically the inspector.
	ActorID string
	// LandID correlates every event for one parcel; it is the outbox partition key.
	LandID id.LandID
}

type AuditEvent string

const (
	// Auth events
	EventUserCreated    AuditEvent = "user_created"
	EventSessionCreated AuditEvent = "session_created"
	EventSessionRevoked AuditEvent = "session_revoked"
	EventAuthFailed     AuditEvent = "auth_failed"

	// Land events
	EventLandRegistered AuditEvent = "land_registered"
	EventLandVerified   AuditEvent = "land_verified"
	EventLandListed     AuditEvent = "land_listed"

	// Purchase events
	EventBuyRequestSubmitted AuditEvent = "buy_request_submitted"
	EventBuyRequestReviewed  AuditEvent = "buy_request_reviewed"

	// Payment events
	EventPaymentRecorded   AuditEvent = "payment_recorded"
	EventPaymentTransition AuditEvent = "payment_transition"
	EventEscrowReleased    AuditEvent = "escrow_released"

	// Transfer events
	EventTransferRequested  AuditEvent = "transfer_requested"
	EventVerificationPhoto  AuditEvent = "verification_photo_captured"
	EventTransferDecided    AuditEvent = "transfer_decided"
	EventOwnershipChanged   AuditEvent = "ownership_changed"
	EventCertificateIssued  AuditEvent = "certificate_issued"
	EventCertificateInvalid AuditEvent = "certificate_rejected"
)

var eventCategories = map[AuditEvent]EventCategory{
	EventUserCreated:       CategoryCompliance,
	EventOwnershipChanged:  CategoryCompliance,
	EventPaymentRecorded:   CategoryCompliance,
	EventPaymentTransition: CategoryCompliance,
	EventEscrowReleased:    CategoryCompliance,
	EventTransferDecided:   CategoryCompliance,
	EventCertificateIssued: CategoryCompliance,
	EventLandListed:        CategoryCompliance,

	EventAuthFailed:         CategorySecurity,
	EventSessionRevoked:     CategorySecurity,
	EventCertificateInvalid: CategorySecurity,

	EventSessionCreated:      CategoryOperations,
	EventLandRegistered:      CategoryOperations,
	EventLandVerified:        CategoryOperations,
	EventBuyRequestSubmitted: CategoryOperations,
	EventBuyRequestReviewed:  CategoryOperations,
	EventTransferRequested:   CategoryOperations,
	EventVerificationPhoto:   CategoryOperations,
}

// Category returns the EventCategory for this audit event.
// Unknown events default to CategoryOperations.
func (e AuditEvent) Category() EventCategory {
	if cat, ok := eventCategories[e]; ok {
		return cat
	}
	return CategoryOperations
}

// Store persists audit events.
type Store interface {
	Append(ctx context.Context, event Event) error
	ListByUser(ctx context.Context, userID id.UserID) ([]Event, error)
}
