// Package domain holds identifier and role primitives shared by every module.
//
// IDs are distinct named UUID types so a LandID cannot be passed where a
// PaymentID is expected. Construct them with the Parse functions at trust
// boundaries; direct conversion from uuid.UUID skips validation.
package domain

import (
	"github.com/google/uuid"

	dErrors "landtitle/pkg/domain-errors"
)

type (
	UserID           uuid.UUID
	SessionID        uuid.UUID
	LandID           uuid.UUID
	BuyRequestID     uuid.UUID
	PaymentID        uuid.UUID
	WorkflowID       uuid.UUID
	TransferRecordID uuid.UUID
)

// parseUUID enforces the shared ID invariant: non-empty, well-formed, non-nil.
func parseUUID(s, kind string) (uuid.UUID, error) {
	if s == "" {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, kind+" cannot be empty")
	}
	if len(s) > 64 {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, "invalid "+kind)
	}
	u, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, "invalid "+kind)
	}
	if u == uuid.Nil {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, kind+" cannot be nil")
	}
	return u, nil
}

func ParseUserID(s string) (UserID, error) {
	u, err := parseUUID(s, "user ID")
	return UserID(u), err
}

func ParseSessionID(s string) (SessionID, error) {
	u, err := parseUUID(s, "session ID")
	return SessionID(u), err
}

func ParseLandID(s string) (LandID, error) {
	u, err := parseUUID(s, "land ID")
	return LandID(u), err
}

func ParseBuyRequestID(s string) (BuyRequestID, error) {
	u, err := parseUUID(s, "buy request ID")
	return BuyRequestID(u), err
}

func ParsePaymentID(s string) (PaymentID, error) {
	u, err := parseUUID(s, "payment ID")
	return PaymentID(u), err
}

func ParseWorkflowID(s string) (WorkflowID, error) {
	u, err := parseUUID(s, "workflow ID")
	return WorkflowID(u), err
}

func ParseTransferRecordID(s string) (TransferRecordID, error) {
	u, err := parseUUID(s, "transfer record ID")
	return TransferRecordID(u), err
}

func (id UserID) String() string           { return uuid.UUID(id).String() }
func (id SessionID) String() string        { return uuid.UUID(id).String() }
func (id LandID) String() string           { return uuid.UUID(id).String() }
func (id BuyRequestID) String() string     { return uuid.UUID(id).String() }
func (id PaymentID) String() string        { return uuid.UUID(id).String() }
func (id WorkflowID) String() string       { return uuid.UUID(id).String() }
func (id TransferRecordID) String() string { return uuid.UUID(id).String() }

func (id UserID) IsNil() bool           { return uuid.UUID(id) == uuid.Nil }
func (id SessionID) IsNil() bool        { return uuid.UUID(id) == uuid.Nil }
func (id LandID) IsNil() bool           { return uuid.UUID(id) == uuid.Nil }
func (id BuyRequestID) IsNil() bool     { return uuid.UUID(id) == uuid.Nil }
func (id PaymentID) IsNil() bool        { return uuid.UUID(id) == uuid.Nil }
func (id WorkflowID) IsNil() bool       { return uuid.UUID(id) == uuid.Nil }
func (id TransferRecordID) IsNil() bool { return uuid.UUID(id) == uuid.Nil }

// MarshalText lets typed IDs render as plain UUID strings in JSON bodies.
func (id UserID) MarshalText() ([]byte, error)           { return uuid.UUID(id).MarshalText() }
func (id SessionID) MarshalText() ([]byte, error)        { return uuid.UUID(id).MarshalText() }
func (id LandID) MarshalText() ([]byte, error)           { return uuid.UUID(id).MarshalText() }
func (id BuyRequestID) MarshalText() ([]byte, error)     { return uuid.UUID(id).MarshalText() }
func (id PaymentID) MarshalText() ([]byte, error)        { return uuid.UUID(id).MarshalText() }
func (id WorkflowID) MarshalText() ([]byte, error)       { return uuid.UUID(id).MarshalText() }
func (id TransferRecordID) MarshalText() ([]byte, error) { return uuid.UUID(id).MarshalText() }

// UnmarshalText accepts the same form MarshalText produces. Stored records
// may carry a nil ID for optional references, so nil is not rejected here.
func (id *UserID) UnmarshalText(b []byte) error           { return (*uuid.UUID)(id).UnmarshalText(b) }
func (id *SessionID) UnmarshalText(b []byte) error        { return (*uuid.UUID)(id).UnmarshalText(b) }
func (id *LandID) UnmarshalText(b []byte) error           { return (*uuid.UUID)(id).UnmarshalText(b) }
func (id *BuyRequestID) UnmarshalText(b []byte) error     { return (*uuid.UUID)(id).UnmarshalText(b) }
func (id *PaymentID) UnmarshalText(b []byte) error        { return (*uuid.UUID)(id).UnmarshalText(b) }
func (id *WorkflowID) UnmarshalText(b []byte) error       { return (*uuid.UUID)(id).UnmarshalText(b) }
func (id *TransferRecordID) UnmarshalText(b []byte) error { return (*uuid.UUID)(id).UnmarshalText(b) }

func NewUserID() UserID                     { return UserID(uuid.New()) }
func NewSessionID() SessionID               { return SessionID(uuid.New()) }
func NewLandID() LandID                     { return LandID(uuid.New()) }
func NewBuyRequestID() BuyRequestID         { return BuyRequestID(uuid.New()) }
func NewPaymentID() PaymentID               { return PaymentID(uuid.New()) }
func NewWorkflowID() WorkflowID             { return WorkflowID(uuid.New()) }
func NewTransferRecordID() TransferRecordID { return TransferRecordID(uuid.New()) }
