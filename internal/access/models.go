package access

import (
	"strings"
	"time"

	id "eventcare/pkg/domain"
	dErrors "eventcare/pkg/domain-errors"
)

// Role is a principal's system-wide role.
type Role string

const (
	RoleEMT   Role = "EMT"
	RoleAdmin Role = "ADMIN"
)

// ParseRole accepts a role name in any case.
func ParseRole(s string) (Role, error) {
	r := Role(strings.ToUpper(strings.TrimSpace(s)))
	if !r.Valid() {
		return "", dErrors.New(dErrors.CodeInvalidInput, "unknown role")
	}
	return r, nil
}

func (r Role) Valid() bool {
	return r == RoleEMT || r == RoleAdmin
}

// Principal is the authenticated caller. It is passed explicitly into every
// guarded call and never read from ambient state by the engine.
type Principal struct {
	ID   id.UserID
	Role Role
}

func (p Principal) IsAdmin() bool { return p.Role == RoleAdmin }

// Authenticated reports whether p carries an identity and a known role.
func (p Principal) Authenticated() bool { return !p.ID.IsNil() && p.Role.Valid() }

// StaffAssignment places a user on a care event. Role is the position held
// within the event (for example "lead"), not the system role.
type StaffAssignment struct {
	UserID  id.UserID
	EventID id.EventID
	Role    string
}

// RecordMeta is the authorization-relevant slice of a patient record.
type RecordMeta struct {
	EventID   id.EventID
	CreatedAt time.Time
}

// Input carries everything Decide looks at.
type Input struct {
	Principal      Principal
	Assignments    []StaffAssignment
	Record         RecordMeta
	EventStartDate time.Time
	Now            time.Time
}

type Outcome string

const (
	OutcomeGrant Outcome = "grant"
	OutcomeDeny  Outcome = "deny"
)

// Reason names the rule that produced a decision.
type Reason string

const (
	ReasonAdminBypass         Reason = "admin_bypass"
	ReasonNotAssigned         Reason = "not_assigned"
	ReasonWithinRecencyWindow Reason = "within_recency_window"
	ReasonSameDayAsEventStart Reason = "same_day_as_event_start"
	ReasonOutsideAccessWindow Reason = "outside_access_window"
	ReasonAdminRequired       Reason = "admin_required"
	ReasonAuthenticated       Reason = "authenticated"
	ReasonUnknownPrincipal    Reason = "unknown_principal"
)

type Decision struct {
	Outcome Outcome
	Reason  Reason
}

func (d Decision) Granted() bool { return d.Outcome == OutcomeGrant }

func grant(r Reason) Decision { return Decision{Outcome: OutcomeGrant, Reason: r} }
func deny(r Reason) Decision  { return Decision{Outcome: OutcomeDeny, Reason: r} }
