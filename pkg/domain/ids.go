// Package domain holds typed identifiers shared across modules.
//
// Every identifier is a UUID underneath, but each kind gets its own named
// type so a PatientID can never be passed where an EventID is expected.
package domain

import (
	"strings"

	"github.com/google/uuid"

	dErrors "eventcare/pkg/domain-errors"
)

type (
	// UserID identifies a principal (staff member or administrator).
	UserID uuid.UUID
	// EventID identifies a care event.
	EventID uuid.UUID
	// PatientID identifies a patient record.
	PatientID uuid.UUID
	// VitalID identifies a vitals sub-record.
	VitalID uuid.UUID
	// TreatmentID identifies a treatment sub-record.
	TreatmentID uuid.UUID
	// AuditEntryID identifies an audit trail entry.
	AuditEntryID uuid.UUID
)

// maxIDLength bounds input before it reaches the UUID parser.
const maxIDLength = 64

func parseUUID(kind, s string) (uuid.UUID, error) {
	if strings.TrimSpace(s) == "" {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, kind+" is required")
	}
	if len(s) > maxIDLength {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, kind+" is too long")
	}
	u, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, "invalid "+kind)
	}
	if u == uuid.Nil {
		return uuid.Nil, dErrors.New(dErrors.CodeInvalidInput, kind+" must not be nil")
	}
	return u, nil
}

func ParseUserID(s string) (UserID, error) {
	u, err := parseUUID("user_id", s)
	return UserID(u), err
}

func ParseEventID(s string) (EventID, error) {
	u, err := parseUUID("event_id", s)
	return EventID(u), err
}

func ParsePatientID(s string) (PatientID, error) {
	u, err := parseUUID("patient_id", s)
	return PatientID(u), err
}

func ParseVitalID(s string) (VitalID, error) {
	u, err := parseUUID("vital_id", s)
	return VitalID(u), err
}

func ParseTreatmentID(s string) (TreatmentID, error) {
	u, err := parseUUID("treatment_id", s)
	return TreatmentID(u), err
}

func ParseAuditEntryID(s string) (AuditEntryID, error) {
	u, err := parseUUID("audit_entry_id", s)
	return AuditEntryID(u), err
}

func (id UserID) String() string       { return uuid.UUID(id).String() }
func (id EventID) String() string      { return uuid.UUID(id).String() }
func (id PatientID) String() string    { return uuid.UUID(id).String() }
func (id VitalID) String() string      { return uuid.UUID(id).String() }
func (id TreatmentID) String() string  { return uuid.UUID(id).String() }
func (id AuditEntryID) String() string { return uuid.UUID(id).String() }

func (id UserID) IsNil() bool       { return uuid.UUID(id) == uuid.Nil }
func (id EventID) IsNil() bool      { return uuid.UUID(id) == uuid.Nil }
func (id PatientID) IsNil() bool    { return uuid.UUID(id) == uuid.Nil }
func (id VitalID) IsNil() bool      { return uuid.UUID(id) == uuid.Nil }
func (id TreatmentID) IsNil() bool  { return uuid.UUID(id) == uuid.Nil }
func (id AuditEntryID) IsNil() bool { return uuid.UUID(id) == uuid.Nil }

// MarshalText lets typed IDs serialize as plain UUID strings in JSON.
func (id UserID) MarshalText() ([]byte, error)       { return uuid.UUID(id).MarshalText() }
func (id EventID) MarshalText() ([]byte, error)      { return uuid.UUID(id).MarshalText() }
func (id PatientID) MarshalText() ([]byte, error)    { return uuid.UUID(id).MarshalText() }
func (id VitalID) MarshalText() ([]byte, error)      { return uuid.UUID(id).MarshalText() }
func (id TreatmentID) MarshalText() ([]byte, error)  { return uuid.UUID(id).MarshalText() }
func (id AuditEntryID) MarshalText() ([]byte, error) { return uuid.UUID(id).MarshalText() }

func (id *UserID) UnmarshalText(b []byte) error {
	return (*uuid.UUID)(id).UnmarshalText(b)
}

func (id *EventID) UnmarshalText(b []byte) error {
	return (*uuid.UUID)(id).UnmarshalText(b)
}

func (id *PatientID) UnmarshalText(b []byte) error {
	return (*uuid.UUID)(id).UnmarshalText(b)
}

func (id *VitalID) UnmarshalText(b []byte) error {
	return (*uuid.UUID)(id).UnmarshalText(b)
}

func (id *TreatmentID) UnmarshalText(b []byte) error {
	return (*uuid.UUID)(id).UnmarshalText(b)
}

func (id *AuditEntryID) UnmarshalText(b []byte) error {
	return (*uuid.UUID)(id).UnmarshalText(b)
}

// NewUserID and friends mint fresh random identifiers.
func NewUserID() UserID             { return UserID(uuid.New()) }
func NewEventID() EventID           { return EventID(uuid.New()) }
func NewPatientID() PatientID       { return PatientID(uuid.New()) }
func NewVitalID() VitalID           { return VitalID(uuid.New()) }
func NewTreatmentID() TreatmentID   { return TreatmentID(uuid.New()) }
func NewAuditEntryID() AuditEntryID { return AuditEntryID(uuid.New()) }
