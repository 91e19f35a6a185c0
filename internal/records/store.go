// Package records defines the storage ports for care records and adapts
// them to the lookups the gateway needs.
package records

import (
	"context"

	"eventcare/internal/records/models"
	id "eventcare/pkg/domain"
)

// Stores return sentinel.ErrNotFound for missing rows and
// sentinel.ErrConflict for duplicates.

type EventStore interface {
	Create(ctx context.Context, event *models.CareEvent) error
	FindByID(ctx context.Context, eventID id.EventID) (*models.CareEvent, error)
	List(ctx context.Context) ([]*models.CareEvent, error)
}

type PatientStore interface {
	Create(ctx context.Context, patient *models.PatientRecord) error
	FindByID(ctx context.Context, patientID id.PatientID) (*models.PatientRecord, error)
	ListByEvent(ctx context.Context, eventID id.EventID) ([]*models.PatientRecord, error)
	Update(ctx context.Context, patient *models.PatientRecord) error
	// Delete removes the patient and every vital and treatment recorded on it.
	Delete(ctx context.Context, patientID id.PatientID) error
}

type VitalStore interface {
	Create(ctx context.Context, vital *models.Vital) error
	ListByPatient(ctx context.Context, patientID id.PatientID) ([]*models.Vital, error)
	Delete(ctx context.Context, patientID id.PatientID, vitalID id.VitalID) error
}

type TreatmentStore interface {
	Create(ctx context.Context, treatment *models.Treatment) error
	ListByPatient(ctx context.Context, patientID id.PatientID) ([]*models.Treatment, error)
	Delete(ctx context.Context, patientID id.PatientID, treatmentID id.TreatmentID) error
}

type AssignmentStore interface {
	Assign(ctx context.Context, assignment *models.StaffAssignment) error
	Unassign(ctx context.Context, eventID id.EventID, userID id.UserID) error
	ListByUser(ctx context.Context, userID id.UserID) ([]*models.StaffAssignment, error)
	ListByEvent(ctx context.Context, eventID id.EventID) ([]*models.StaffAssignment, error)
}
