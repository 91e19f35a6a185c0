// Package access decides whether a principal may touch a patient record.
//
// Every guarded entry point calls Decide; nothing else re-derives the
// time-window rule.
package access

import "time"

// RecencyWindow is how long after creation an assigned EMT keeps access to
// a record regardless of the event's start date.
const RecencyWindow = 24 * time.Hour

// Decide applies the patient access rules in order; the first match wins.
// This is pure domain logic - no I/O, no side effects.
//
//  1. ADMIN principals are granted.
//  2. Principals not assigned to the record's event are denied.
//  3. Assigned principals are granted when the record is at most
//     RecencyWindow old, or was created on the event's start date (UTC).
//  4. Everyone else is denied.
func Decide(in Input) Decision {
	if in.Principal.IsAdmin() {
		return grant(ReasonAdminBypass)
	}

	if !isAssigned(in.Principal, in.Assignments, in.Record) {
		return deny(ReasonNotAssigned)
	}

	if withinRecencyWindow(in.Record.CreatedAt, in.Now) {
		return grant(ReasonWithinRecencyWindow)
	}
	if sameUTCDate(in.Record.CreatedAt, in.EventStartDate) {
		return grant(ReasonSameDayAsEventStart)
	}

	return deny(ReasonOutsideAccessWindow)
}

// DecideAdministrative guards event and staffing management.
func DecideAdministrative(p Principal) Decision {
	if p.IsAdmin() {
		return grant(ReasonAdminBypass)
	}
	return deny(ReasonAdminRequired)
}

// DecideAuthenticated grants any identified principal with a known role.
func DecideAuthenticated(p Principal) Decision {
	if p.Authenticated() {
		return grant(ReasonAuthenticated)
	}
	return deny(ReasonUnknownPrincipal)
}

func isAssigned(p Principal, assignments []StaffAssignment, rec RecordMeta) bool {
	for _, a := range assignments {
		if a.UserID == p.ID && a.EventID == rec.EventID {
			return true
		}
	}
	return false
}

// withinRecencyWindow is inclusive: a record exactly RecencyWindow old passes.
func withinRecencyWindow(createdAt, now time.Time) bool {
	return !createdAt.Before(now.Add(-RecencyWindow))
}

func sameUTCDate(a, b time.Time) bool {
	ay, am, ad := a.UTC().Date()
	by, bm, bd := b.UTC().Date()
	return ay == by && am == bm && ad == bd
}
