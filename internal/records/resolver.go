package records

import (
	"context"
	"time"

	"eventcare/internal/access"
	id "eventcare/pkg/domain"
)

// Resolver serves the gateway's record and assignment lookups from the
// record stores. Store errors pass through unchanged.
type Resolver struct {
	events      EventStore
	patients    PatientStore
	assignments AssignmentStore
}

func NewResolver(events EventStore, patients PatientStore, assignments AssignmentStore) *Resolver {
	return &Resolver{events: events, patients: patients, assignments: assignments}
}

func (r *Resolver) ResolvePatient(ctx context.Context, patientID id.PatientID) (access.RecordMeta, error) {
	p, err := r.patients.FindByID(ctx, patientID)
	if err != nil {
		return access.RecordMeta{}, err
	}
	return access.RecordMeta{EventID: p.EventID, CreatedAt: p.CreatedAt}, nil
}

func (r *Resolver) ResolveEventStart(ctx context.Context, eventID id.EventID) (time.Time, error) {
	ev, err := r.events.FindByID(ctx, eventID)
	if err != nil {
		return time.Time{}, err
	}
	return ev.StartDate, nil
}

func (r *Resolver) ListAssignmentsForUser(ctx context.Context, userID id.UserID) ([]access.StaffAssignment, error) {
	rows, err := r.assignments.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	out := make([]access.StaffAssignment, 0, len(rows))
	for _, a := range rows {
		out = append(out, access.StaffAssignment{UserID: a.UserID, EventID: a.EventID, Role: a.Role})
	}
	return out, nil
}
