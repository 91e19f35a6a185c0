// Package models holds the care records that guarded operations act on.
package models

import (
	"strings"
	"time"

	id "eventcare/pkg/domain"
	dErrors "eventcare/pkg/domain-errors"
)

const maxNameLength = 200

// CareEvent is a staffed event (a concert, a race) with a medical presence.
//
// Invariants:
//   - Name is non-empty and at most 200 characters
//   - StartDate is set; only its UTC calendar date matters to access rules
//   - CreatedAt is immutable after construction
type CareEvent struct {
	ID        id.EventID `json:"id"`
	Name      string     `json:"name"`
	VenueName string     `json:"venue_name,omitempty"`
	StartDate time.Time  `json:"start_date"`
	CreatedAt time.Time  `json:"created_at"`
}

func NewCareEvent(eventID id.EventID, name, venue string, startDate, now time.Time) (*CareEvent, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "event name cannot be empty")
	}
	if len(name) > maxNameLength {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "event name must be 200 characters or less")
	}
	if startDate.IsZero() {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "event start date is required")
	}
	return &CareEvent{
		ID:        eventID,
		Name:      name,
		VenueName: strings.TrimSpace(venue),
		StartDate: startDate.UTC(),
		CreatedAt: now.UTC(),
	}, nil
}

// PatientRecord is a patient seen at a care event.
//
// Invariants:
//   - EventID and CreatedAt never change after construction
//   - Update touches descriptive fields only
type PatientRecord struct {
	ID          id.PatientID `json:"id"`
	EventID     id.EventID   `json:"event_id"`
	Name        string       `json:"name"`
	Complaint   string       `json:"complaint,omitempty"`
	Disposition string       `json:"disposition,omitempty"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
}

func NewPatientRecord(patientID id.PatientID, eventID id.EventID, name, complaint string, now time.Time) (*PatientRecord, error) {
	if eventID.IsNil() {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "patient must belong to an event")
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "patient name cannot be empty")
	}
	if len(name) > maxNameLength {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "patient name must be 200 characters or less")
	}
	now = now.UTC()
	return &PatientRecord{
		ID:        patientID,
		EventID:   eventID,
		Name:      name,
		Complaint: strings.TrimSpace(complaint),
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// PatientUpdate lists descriptive fields to change. Nil fields are left alone.
type PatientUpdate struct {
	Name        *string
	Complaint   *string
	Disposition *string
}

// Fields names the fields u would change, in a stable order.
func (u PatientUpdate) Fields() []string {
	var fields []string
	if u.Name != nil {
		fields = append(fields, "name")
	}
	if u.Complaint != nil {
		fields = append(fields, "complaint")
	}
	if u.Disposition != nil {
		fields = append(fields, "disposition")
	}
	return fields
}

// Update applies u. It fails without changing p when the result would
// break an invariant.
func (p *PatientRecord) Update(u PatientUpdate, now time.Time) error {
	if len(u.Fields()) == 0 {
		return dErrors.New(dErrors.CodeInvariantViolation, "no fields to update")
	}
	if u.Name != nil {
		name := strings.TrimSpace(*u.Name)
		if name == "" {
			return dErrors.New(dErrors.CodeInvariantViolation, "patient name cannot be empty")
		}
		if len(name) > maxNameLength {
			return dErrors.New(dErrors.CodeInvariantViolation, "patient name must be 200 characters or less")
		}
		p.Name = name
	}
	if u.Complaint != nil {
		p.Complaint = strings.TrimSpace(*u.Complaint)
	}
	if u.Disposition != nil {
		p.Disposition = strings.TrimSpace(*u.Disposition)
	}
	p.UpdatedAt = now.UTC()
	return nil
}

// Vital is one set of observations taken on a patient.
type Vital struct {
	ID          id.VitalID   `json:"id"`
	PatientID   id.PatientID `json:"patient_id"`
	HeartRate   int          `json:"heart_rate,omitempty"`
	RespRate    int          `json:"resp_rate,omitempty"`
	SystolicBP  int          `json:"systolic_bp,omitempty"`
	DiastolicBP int          `json:"diastolic_bp,omitempty"`
	SpO2        int          `json:"spo2,omitempty"`
	Notes       string       `json:"notes,omitempty"`
	CreatedAt   time.Time    `json:"created_at"`
}

// VitalReadings carries the measured values for NewVital.
type VitalReadings struct {
	HeartRate   int
	RespRate    int
	SystolicBP  int
	DiastolicBP int
	SpO2        int
	Notes       string
}

func NewVital(vitalID id.VitalID, patientID id.PatientID, r VitalReadings, now time.Time) (*Vital, error) {
	if patientID.IsNil() {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "vital must belong to a patient")
	}
	if r.HeartRate < 0 || r.RespRate < 0 || r.SystolicBP < 0 || r.DiastolicBP < 0 {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "vital readings cannot be negative")
	}
	if r.SpO2 < 0 || r.SpO2 > 100 {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "spo2 must be between 0 and 100")
	}
	if r == (VitalReadings{}) {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "at least one reading is required")
	}
	return &Vital{
		ID:          vitalID,
		PatientID:   patientID,
		HeartRate:   r.HeartRate,
		RespRate:    r.RespRate,
		SystolicBP:  r.SystolicBP,
		DiastolicBP: r.DiastolicBP,
		SpO2:        r.SpO2,
		Notes:       strings.TrimSpace(r.Notes),
		CreatedAt:   now.UTC(),
	}, nil
}

// Treatment is an intervention given to a patient.
type Treatment struct {
	ID           id.TreatmentID `json:"id"`
	PatientID    id.PatientID   `json:"patient_id"`
	Intervention string         `json:"intervention"`
	Dose         string         `json:"dose,omitempty"`
	Notes        string         `json:"notes,omitempty"`
	CreatedAt    time.Time      `json:"created_at"`
}

func NewTreatment(treatmentID id.TreatmentID, patientID id.PatientID, intervention, dose, notes string, now time.Time) (*Treatment, error) {
	if patientID.IsNil() {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "treatment must belong to a patient")
	}
	intervention = strings.TrimSpace(intervention)
	if intervention == "" {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "intervention cannot be empty")
	}
	return &Treatment{
		ID:           treatmentID,
		PatientID:    patientID,
		Intervention: intervention,
		Dose:         strings.TrimSpace(dose),
		Notes:        strings.TrimSpace(notes),
		CreatedAt:    now.UTC(),
	}, nil
}

// StaffAssignment places a user on an event. Role is the position held at
// the event, free text such as "lead" or "medic".
type StaffAssignment struct {
	UserID     id.UserID  `json:"user_id"`
	EventID    id.EventID `json:"event_id"`
	Role       string     `json:"role"`
	AssignedAt time.Time  `json:"assigned_at"`
}

func NewStaffAssignment(userID id.UserID, eventID id.EventID, role string, now time.Time) (*StaffAssignment, error) {
	if userID.IsNil() {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "assignment requires a user")
	}
	if eventID.IsNil() {
		return nil, dErrors.New(dErrors.CodeInvariantViolation, "assignment requires an event")
	}
	role = strings.TrimSpace(role)
	if role == "" {
		role = "staff"
	}
	return &StaffAssignment{UserID: userID, EventID: eventID, Role: role, AssignedAt: now.UTC()}, nil
}

// AuditResourceID names the record in audit entries written for the
// operation that created it.
func (e *CareEvent) AuditResourceID() string     { return e.ID.String() }
func (p *PatientRecord) AuditResourceID() string { return p.ID.String() }
func (v *Vital) AuditResourceID() string         { return v.ID.String() }
func (t *Treatment) AuditResourceID() string     { return t.ID.String() }
