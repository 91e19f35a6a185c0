package handler

import (
	"strings"
	"time"

	dErrors "eventcare/pkg/domain-errors"
)

// CreateEventRequest is the body of POST /events. StartDate accepts a full
// RFC 3339 timestamp or a bare date.
type CreateEventRequest struct {
	Name      string `json:"name"`
	VenueName string `json:"venue_name"`
	StartDate string `json:"start_date"`

	start time.Time
}

func (r *CreateEventRequest) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	r.VenueName = strings.TrimSpace(r.VenueName)
	r.StartDate = strings.TrimSpace(r.StartDate)
}

func (r *CreateEventRequest) Validate() error {
	if r.Name == "" {
		return dErrors.New(dErrors.CodeValidation, "name is required")
	}
	if r.StartDate == "" {
		return dErrors.New(dErrors.CodeValidation, "start_date is required")
	}
	for _, layout := range []string{time.RFC3339, time.DateOnly} {
		if t, err := time.Parse(layout, r.StartDate); err == nil {
			r.start = t.UTC()
			return nil
		}
	}
	return dErrors.New(dErrors.CodeValidation, "start_date must be RFC 3339 or YYYY-MM-DD")
}

// AssignStaffRequest is the optional body of PUT /events/{eventID}/staff/{userID}.
type AssignStaffRequest struct {
	Role string `json:"role"`
}

func (r *AssignStaffRequest) Normalize() {
	r.Role = strings.ToLower(strings.TrimSpace(r.Role))
}

func (r *AssignStaffRequest) Validate() error {
	if len(r.Role) > 64 {
		return dErrors.New(dErrors.CodeValidation, "role is too long")
	}
	return nil
}
