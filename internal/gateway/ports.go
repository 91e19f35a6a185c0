package gateway

import (
	"context"
	"time"

	"eventcare/internal/access"
	id "eventcare/pkg/domain"
	audit "eventcare/pkg/platform/audit"
)

// Resolver loads the record facts the engine decides on. Missing records
// are reported as sentinel.ErrNotFound.
type Resolver interface {
	ResolvePatient(ctx context.Context, patientID id.PatientID) (access.RecordMeta, error)
	ResolveEventStart(ctx context.Context, eventID id.EventID) (time.Time, error)
}

// AssignmentLookup lists the events a user is staffed on.
type AssignmentLookup interface {
	ListAssignmentsForUser(ctx context.Context, userID id.UserID) ([]access.StaffAssignment, error)
}

// AuditSink receives one entry per successful guarded action.
type AuditSink interface {
	Append(ctx context.Context, entry audit.Entry) error
}

// DenialRecorder keeps denied attempts for security review. Denials never
// reach the AuditSink.
type DenialRecorder interface {
	RecordDenial(ctx context.Context, event audit.SecurityEvent)
}
