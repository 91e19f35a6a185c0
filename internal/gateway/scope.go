package gateway

import (
	id "eventcare/pkg/domain"
)

type scopeKind int

const (
	scopeAuthenticated scopeKind = iota
	scopeAdmin
	scopePatient
	scopeNewPatient
)

// Scope selects the rule set a request is decided under.
type Scope struct {
	kind      scopeKind
	patientID id.PatientID
	eventID   id.EventID
}

// PatientScope covers an existing patient record and its vitals and treatments.
func PatientScope(patientID id.PatientID) Scope {
	return Scope{kind: scopePatient, patientID: patientID}
}

// NewPatientScope covers a patient record about to be created on eventID.
// The record is treated as created now, so assigned staff pass the recency
// rule; the event must exist.
func NewPatientScope(eventID id.EventID) Scope {
	return Scope{kind: scopeNewPatient, eventID: eventID}
}

// AdminScope restricts a request to ADMIN principals.
func AdminScope() Scope { return Scope{kind: scopeAdmin} }

// AuthenticatedScope admits any authenticated principal.
func AuthenticatedScope() Scope { return Scope{kind: scopeAuthenticated} }

func (s Scope) patientLevel() bool {
	return s.kind == scopePatient || s.kind == scopeNewPatient
}

func (s Scope) String() string {
	switch s.kind {
	case scopeAdmin:
		return "admin"
	case scopePatient:
		return "patient"
	case scopeNewPatient:
		return "new_patient"
	default:
		return "authenticated"
	}
}
