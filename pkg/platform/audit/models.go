package audit

import (
	"context"
	"strings"
	"time"

	id "eventcare/pkg/domain"
	dErrors "eventcare/pkg/domain-errors"
)

// Action is what a principal did to a resource.
type Action string

const (
	ActionCreate Action = "CREATE"
	ActionRead   Action = "READ"
	ActionUpdate Action = "UPDATE"
	ActionDelete Action = "DELETE"
	ActionLogin  Action = "LOGIN"
	ActionLogout Action = "LOGOUT"
)

var validActions = map[Action]struct{}{
	ActionCreate: {}, ActionRead: {}, ActionUpdate: {},
	ActionDelete: {}, ActionLogin: {}, ActionLogout: {},
}

// ParseAction accepts an action name in any case.
func ParseAction(s string) (Action, error) {
	a := Action(strings.ToUpper(strings.TrimSpace(s)))
	if !a.Valid() {
		return "", dErrors.New(dErrors.CodeInvalidInput, "unknown audit action")
	}
	return a, nil
}

func (a Action) Valid() bool {
	_, ok := validActions[a]
	return ok
}

// ResourceKind is the type of record an action touched.
type ResourceKind string

const (
	KindUser       ResourceKind = "USER"
	KindEvent      ResourceKind = "EVENT"
	KindVenue      ResourceKind = "VENUE"
	KindPatient    ResourceKind = "PATIENT"
	KindAssessment ResourceKind = "ASSESSMENT"
	KindVital      ResourceKind = "VITAL"
	KindTreatment  ResourceKind = "TREATMENT"
)

var validKinds = map[ResourceKind]struct{}{
	KindUser: {}, KindEvent: {}, KindVenue: {}, KindPatient: {},
	KindAssessment: {}, KindVital: {}, KindTreatment: {},
}

// ParseResourceKind accepts a kind name in any case.
func ParseResourceKind(s string) (ResourceKind, error) {
	k := ResourceKind(strings.ToUpper(strings.TrimSpace(s)))
	if !k.Valid() {
		return "", dErrors.New(dErrors.CodeInvalidInput, "unknown resource kind")
	}
	return k, nil
}

func (k ResourceKind) Valid() bool {
	_, ok := validKinds[k]
	return ok
}

// PatientScoped reports whether the kind is a patient record or one of its
// sub-records, all of which share the patient's access decision.
func (k ResourceKind) PatientScoped() bool {
	switch k {
	case KindPatient, KindAssessment, KindVital, KindTreatment:
		return true
	}
	return false
}

// EventCategory classifies entries for routing and retention.
type EventCategory string

const (
	// CategoryCompliance covers record access with regulatory significance.
	CategoryCompliance EventCategory = "compliance"

	// CategorySecurity covers session activity and access violations.
	CategorySecurity EventCategory = "security"

	// CategoryOperations covers routine operational signals.
	CategoryOperations EventCategory = "operations"
)

// Category returns the routing category for an action.
// Session actions are security events; record actions are compliance events.
func (a Action) Category() EventCategory {
	switch a {
	case ActionLogin, ActionLogout:
		return CategorySecurity
	case ActionCreate, ActionRead, ActionUpdate, ActionDelete:
		return CategoryCompliance
	}
	return CategoryOperations
}

// Entry is one immutable line of the audit trail: a guarded action that was
// executed successfully.
//
// Invariants:
//   - ID, PrincipalID and Timestamp are set
//   - Action and ResourceKind are members of their closed sets
//   - Once appended an entry is never updated or deleted
type Entry struct {
	ID            id.AuditEntryID   `json:"id"`
	PrincipalID   id.UserID         `json:"principal_id"`
	Action        Action            `json:"action"`
	ResourceKind  ResourceKind      `json:"resource_kind"`
	ResourceID    string            `json:"resource_id,omitempty"`
	Details       map[string]string `json:"details,omitempty"`
	OriginAddress string            `json:"origin_address"`
	OriginAgent   string            `json:"origin_agent"`
	Timestamp     time.Time         `json:"timestamp"`
	// Digest is the hex keyed hash written by a Sealer, empty when unsealed.
	Digest string `json:"digest,omitempty"`
}

// Validate checks the entry's invariants before it is appended.
func (e Entry) Validate() error {
	if e.ID.IsNil() {
		return dErrors.New(dErrors.CodeInvariantViolation, "audit entry requires an id")
	}
	if e.PrincipalID.IsNil() {
		return dErrors.New(dErrors.CodeInvariantViolation, "audit entry requires a principal")
	}
	if !e.Action.Valid() {
		return dErrors.New(dErrors.CodeInvariantViolation, "audit entry has an unknown action")
	}
	if !e.ResourceKind.Valid() {
		return dErrors.New(dErrors.CodeInvariantViolation, "audit entry has an unknown resource kind")
	}
	if e.Timestamp.IsZero() {
		return dErrors.New(dErrors.CodeInvariantViolation, "audit entry requires a timestamp")
	}
	return nil
}

// Sink accepts audit entries. Implementations are append-only.
type Sink interface {
	Append(ctx context.Context, entry Entry) error
}

// SinkFunc adapts a function to a Sink.
type SinkFunc func(ctx context.Context, entry Entry) error

func (f SinkFunc) Append(ctx context.Context, entry Entry) error { return f(ctx, entry) }

// Store is a queryable audit trail. Listing is newest first; a non-positive
// limit means no limit.
type Store interface {
	Sink
	ListByResource(ctx context.Context, resourceID string, limit int) ([]Entry, error)
	ListByPrincipal(ctx context.Context, principalID id.UserID, limit int) ([]Entry, error)
	ListByActions(ctx context.Context, actions []Action, limit int) ([]Entry, error)
	ListRecent(ctx context.Context, limit int) ([]Entry, error)
}

// Severity levels for security events.
type Severity string

const (
	SeverityInfo     Severity = "info"
	SeverityWarning  Severity = "warning"
	SeverityCritical Severity = "critical"
)

// SecurityEvent captures an access violation. Denied attempts are kept out
// of the append-only trail and travel as security events instead.
type SecurityEvent struct {
	Timestamp    time.Time    `json:"timestamp"`
	PrincipalID  id.UserID    `json:"principal_id"`
	Role         string       `json:"role"`
	Action       Action       `json:"action"`
	ResourceKind ResourceKind `json:"resource_kind"`
	ResourceID   string       `json:"resource_id,omitempty"`
	Reason       string       `json:"reason"`
	IP           string       `json:"ip,omitempty"`
	RequestID    string       `json:"request_id,omitempty"`
	Severity     Severity     `json:"severity"`
}

// Category returns CategorySecurity (always).
func (e SecurityEvent) Category() EventCategory { return CategorySecurity }
