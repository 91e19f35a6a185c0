// Package service manages care events and staff assignments. Event
// creation and staffing changes are ADMIN only; any authenticated principal
// may read events.
package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"eventcare/internal/access"
	"eventcare/internal/gateway"
	"eventcare/internal/records"
	"eventcare/internal/records/models"
	id "eventcare/pkg/domain"
	dErrors "eventcare/pkg/domain-errors"
	audit "eventcare/pkg/platform/audit"
	"eventcare/pkg/platform/sentinel"
	"eventcare/pkg/requestcontext"
)

type Service struct {
	gateway     *gateway.Gateway
	events      records.EventStore
	assignments records.AssignmentStore
	logger      *slog.Logger
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func New(g *gateway.Gateway, events records.EventStore, assignments records.AssignmentStore, opts ...Option) (*Service, error) {
	if g == nil {
		return nil, errors.New("gateway is required")
	}
	if events == nil || assignments == nil {
		return nil, errors.New("event and assignment stores are required")
	}
	s := &Service{gateway: g, events: events, assignments: assignments, logger: slog.Default()}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

type CreateEventInput struct {
	Name      string
	VenueName string
	StartDate time.Time
}

func (s *Service) CreateEvent(ctx context.Context, p access.Principal, in CreateEventInput) (*models.CareEvent, error) {
	req := gateway.Request{
		Principal: p,
		Action:    audit.ActionCreate,
		Kind:      audit.KindEvent,
		Scope:     gateway.AdminScope(),
	}
	return gateway.Execute(ctx, s.gateway, req, func(ctx context.Context) (*models.CareEvent, error) {
		ev, err := models.NewCareEvent(id.NewEventID(), in.Name, in.VenueName, in.StartDate, requestcontext.Now(ctx))
		if err != nil {
			return nil, err
		}
		if err := s.events.Create(ctx, ev); err != nil {
			return nil, storeError(err, "event")
		}
		return ev, nil
	})
}

func (s *Service) GetEvent(ctx context.Context, p access.Principal, eventID id.EventID) (*models.CareEvent, error) {
	req := gateway.Request{
		Principal:  p,
		Action:     audit.ActionRead,
		Kind:       audit.KindEvent,
		ResourceID: eventID.String(),
		Scope:      gateway.AuthenticatedScope(),
	}
	return gateway.Execute(ctx, s.gateway, req, func(ctx context.Context) (*models.CareEvent, error) {
		ev, err := s.events.FindByID(ctx, eventID)
		if err != nil {
			return nil, storeError(err, "event")
		}
		return ev, nil
	})
}

func (s *Service) ListEvents(ctx context.Context, p access.Principal) ([]*models.CareEvent, error) {
	req := gateway.Request{
		Principal: p,
		Action:    audit.ActionRead,
		Kind:      audit.KindEvent,
		Scope:     gateway.AuthenticatedScope(),
	}
	return gateway.Execute(ctx, s.gateway, req, func(ctx context.Context) ([]*models.CareEvent, error) {
		events, err := s.events.List(ctx)
		if err != nil {
			return nil, storeError(err, "events")
		}
		return events, nil
	})
}

func (s *Service) AssignStaff(ctx context.Context, p access.Principal, eventID id.EventID, userID id.UserID, role string) (*models.StaffAssignment, error) {
	req := staffRequest(p, audit.ActionCreate, eventID, userID)
	req.Details["staff_role"] = role
	return gateway.Execute(ctx, s.gateway, req, func(ctx context.Context) (*models.StaffAssignment, error) {
		a, err := models.NewStaffAssignment(userID, eventID, role, requestcontext.Now(ctx))
		if err != nil {
			return nil, err
		}
		if err := s.assignments.Assign(ctx, a); err != nil {
			if errors.Is(err, sentinel.ErrConflict) {
				return nil, dErrors.New(dErrors.CodeConflict, "user is already assigned to this event")
			}
			return nil, storeError(err, "event")
		}
		s.logger.InfoContext(ctx, "staff assigned",
			"request_id", requestcontext.RequestID(ctx),
			"event_id", eventID.String(),
			"user_id", userID.String(),
			"staff_role", a.Role,
		)
		return a, nil
	})
}

func (s *Service) UnassignStaff(ctx context.Context, p access.Principal, eventID id.EventID, userID id.UserID) error {
	req := staffRequest(p, audit.ActionDelete, eventID, userID)
	_, err := gateway.Execute(ctx, s.gateway, req, func(ctx context.Context) (struct{}, error) {
		if err := s.assignments.Unassign(ctx, eventID, userID); err != nil {
			return struct{}{}, storeError(err, "assignment")
		}
		s.logger.InfoContext(ctx, "staff unassigned",
			"request_id", requestcontext.RequestID(ctx),
			"event_id", eventID.String(),
			"user_id", userID.String(),
		)
		return struct{}{}, nil
	})
	return err
}

func (s *Service) ListStaff(ctx context.Context, p access.Principal, eventID id.EventID) ([]*models.StaffAssignment, error) {
	req := gateway.Request{
		Principal:  p,
		Action:     audit.ActionRead,
		Kind:       audit.KindEvent,
		ResourceID: eventID.String(),
		Details:    map[string]string{"sub_resource": "staff"},
		Scope:      gateway.AdminScope(),
	}
	return gateway.Execute(ctx, s.gateway, req, func(ctx context.Context) ([]*models.StaffAssignment, error) {
		if _, err := s.events.FindByID(ctx, eventID); err != nil {
			return nil, storeError(err, "event")
		}
		staff, err := s.assignments.ListByEvent(ctx, eventID)
		if err != nil {
			return nil, storeError(err, "assignments")
		}
		return staff, nil
	})
}

func staffRequest(p access.Principal, action audit.Action, eventID id.EventID, userID id.UserID) gateway.Request {
	return gateway.Request{
		Principal:  p,
		Action:     action,
		Kind:       audit.KindEvent,
		ResourceID: eventID.String(),
		Details: map[string]string{
			"sub_resource": "staff",
			"user_id":      userID.String(),
		},
		Scope: gateway.AdminScope(),
	}
}

func storeError(err error, what string) error {
	switch {
	case errors.Is(err, sentinel.ErrNotFound):
		return dErrors.New(dErrors.CodeNotFound, what+" not found")
	case errors.Is(err, sentinel.ErrConflict):
		return dErrors.New(dErrors.CodeConflict, what+" already exists")
	default:
		return dErrors.Wrap(err, dErrors.CodeInternal, "failed to access "+what)
	}
}
