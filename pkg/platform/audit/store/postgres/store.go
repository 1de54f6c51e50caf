package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	id "landtitle/pkg/domain"
	audit "landtitle/pkg/platform/audit"
	txcontext "landtitle/pkg/platform/tx"
)

// Store implements audit.Store using the transactional outbox pattern.
// Append writes the queryable audit row and the outbox row through the same
// executor, so when a service emits inside RunInTx both commit or roll back
// with the state change. The outbox worker publishes outbox rows to Kafka.
type Store struct {
	db *sql.DB
}

// New creates a new PostgreSQL audit store that writes to the outbox.
func New(db *sql.DB) *Store {
	return &Store{db: db}
}

func (s *Store) execer(ctx context.Context) txcontext.Executor {
	return txcontext.ExecutorFor(ctx, s.db)
}

// Payload is the JSON structure published to Kafka.
type Payload struct {
	ID        string `json:"id"`
	Category  string `json:"category"`
	Timestamp string `json:"timestamp"`
	UserID    string `json:"user_id,omitempty"`
	LandID    string `json:"land_id,omitempty"`
	Subject   string `json:"subject"`
	Action    string `json:"action"`
	Decision  string `json:"decision,omitempty"`
	Reason    string `json:"reason,omitempty"`
	RequestID string `json:"request_id,omitempty"`
	ActorID   string `json:"actor_id,omitempty"`
}

// Append writes an audit event and its outbox entry.
func (s *Store) Append(ctx context.Context, event audit.Event) error {
	eventID := uuid.New()
	category := audit.AuditEvent(event.Action).Category()

	payload := Payload{
		ID:        eventID.String(),
		Category:  string(category),
		Timestamp: event.Timestamp.Format(time.RFC3339Nano),
		Subject:   event.Subject,
		Action:    event.Action,
		Decision:  event.Decision,
		Reason:    event.Reason,
		RequestID: event.RequestID,
		ActorID:   event.ActorID,
	}
	var userID, landID *uuid.UUID
	if !event.UserID.IsNil() {
		u := uuid.UUID(event.UserID)
		userID = &u
		payload.UserID = u.String()
	}
	if !event.LandID.IsNil() {
		l := uuid.UUID(event.LandID)
		landID = &l
		payload.LandID = l.String()
	}

	payloadBytes, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal audit payload: %w", err)
	}

	exec := s.execer(ctx)
	_, err = exec.ExecContext(ctx, `
		INSERT INTO audit_events (
			id, category, timestamp, user_id, land_id, subject, action,
			decision, reason, request_id, actor_id
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`,
		eventID, string(category), event.Timestamp, userID, landID, event.Subject, event.Action,
		event.Decision, event.Reason, event.RequestID, event.ActorID,
	)
	if err != nil {
		return fmt.Errorf("insert audit event: %w", err)
	}

	// Events for one parcel share a partition key so consumers see them in order.
	aggregateType := "audit"
	aggregateID := eventID.String()
	if landID != nil {
		aggregateType = "land"
		aggregateID = payload.LandID
	}

	_, err = exec.ExecContext(ctx, `
		INSERT INTO outbox (id, aggregate_type, aggregate_id, event_type, payload, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`,
		uuid.New(),
		aggregateType,
		aggregateID,
		event.Action,
		payloadBytes,
		time.Now(),
	)
	if err != nil {
		return fmt.Errorf("insert outbox entry: %w", err)
	}
	return nil
}

// ListByUser returns events for a specific user, newest first.
func (s *Store) ListByUser(ctx context.Context, userID id.UserID) ([]audit.Event, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT category, timestamp, user_id, land_id, subject, action,
			   decision, reason, request_id, actor_id
		FROM audit_events
		WHERE user_id = $1
		ORDER BY timestamp DESC
	`, uuid.UUID(userID))
	if err != nil {
		return nil, fmt.Errorf("query audit events: %w", err)
	}
	defer rows.Close()

	var events []audit.Event
	for rows.Next() {
		var (
			category string
			event    audit.Event
			uid, lid *uuid.UUID
		)
		if err := rows.Scan(&category, &event.Timestamp, &uid, &lid, &event.Subject, &event.Action,
			&event.Decision, &event.Reason, &event.RequestID, &event.ActorID); err != nil {
			return nil, fmt.Errorf("scan audit event: %w", err)
		}
		event.Category = audit.EventCategory(category)
		if uid != nil {
			event.UserID = id.UserID(*uid)
		}
		if lid != nil {
			event.LandID = id.LandID(*lid)
		}
		events = append(events, event)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate audit events: %w", err)
	}
	return events, nil
}
