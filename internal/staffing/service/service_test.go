package service

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"eventcare/internal/access"
	"eventcare/internal/gateway"
	"eventcare/internal/records"
	recordmemory "eventcare/internal/records/store/memory"
	id "eventcare/pkg/domain"
	dErrors "eventcare/pkg/domain-errors"
	audit "eventcare/pkg/platform/audit"
	"eventcare/pkg/platform/audit/publishers/security"
	auditmemory "eventcare/pkg/platform/audit/store/memory"
	"eventcare/pkg/requestcontext"
)

type StaffingServiceSuite struct {
	suite.Suite
	records *recordmemory.Store
	trail   *auditmemory.InMemoryStore
	denials *security.RingBuffer
	svc     *Service
	ctx     context.Context
	admin   access.Principal
	emt     access.Principal
}

func TestStaffingServiceSuite(t *testing.T) {
	suite.Run(t, new(StaffingServiceSuite))
}

func (s *StaffingServiceSuite) SetupTest() {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	s.records = recordmemory.New()
	s.trail = auditmemory.NewInMemoryStore()
	s.denials = security.NewRingBuffer(10)
	resolver := records.NewResolver(s.records.Events, s.records.Patients, s.records.Assignments)
	g, err := gateway.New(resolver, resolver, s.trail,
		gateway.WithLogger(logger),
		gateway.WithDenialRecorder(s.denials),
	)
	s.Require().NoError(err)
	s.svc, err = New(g, s.records.Events, s.records.Assignments, WithLogger(logger))
	s.Require().NoError(err)

	s.ctx = requestcontext.WithTime(context.Background(), time.Date(2024, 5, 20, 9, 0, 0, 0, time.UTC))
	s.admin = access.Principal{ID: id.NewUserID(), Role: access.RoleAdmin}
	s.emt = access.Principal{ID: id.NewUserID(), Role: access.RoleEMT}
}

func (s *StaffingServiceSuite) createEvent() id.EventID {
	ev, err := s.svc.CreateEvent(s.ctx, s.admin, CreateEventInput{
		Name:      "Regatta",
		StartDate: time.Date(2024, 6, 1, 6, 0, 0, 0, time.UTC),
	})
	s.Require().NoError(err)
	return ev.ID
}

func (s *StaffingServiceSuite) TestCreateEventIsAdminOnly() {
	eventID := s.createEvent()
	entries, err := s.trail.ListByResource(context.Background(), eventID.String(), 0)
	s.Require().NoError(err)
	s.Require().Len(entries, 1)
	s.Equal(audit.ActionCreate, entries[0].Action)

	_, err = s.svc.CreateEvent(s.ctx, s.emt, CreateEventInput{Name: "Nope", StartDate: time.Now()})
	s.True(dErrors.HasCode(err, dErrors.CodeForbidden))
	s.Equal(1, s.denials.Len())
	s.Equal("admin_required", s.denials.Recent(1)[0].Reason)
}

func (s *StaffingServiceSuite) TestAnyoneAuthenticatedReadsEvents() {
	eventID := s.createEvent()
	ev, err := s.svc.GetEvent(s.ctx, s.emt, eventID)
	s.Require().NoError(err)
	s.Equal("Regatta", ev.Name)

	events, err := s.svc.ListEvents(s.ctx, s.emt)
	s.Require().NoError(err)
	s.Len(events, 1)

	_, err = s.svc.GetEvent(s.ctx, s.emt, id.NewEventID())
	s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
}

func (s *StaffingServiceSuite) TestAssignAndUnassign() {
	eventID := s.createEvent()

	a, err := s.svc.AssignStaff(s.ctx, s.admin, eventID, s.emt.ID, "lead")
	s.Require().NoError(err)
	s.Equal("lead", a.Role)

	_, err = s.svc.AssignStaff(s.ctx, s.admin, eventID, s.emt.ID, "lead")
	s.True(dErrors.HasCode(err, dErrors.CodeConflict))

	staff, err := s.svc.ListStaff(s.ctx, s.admin, eventID)
	s.Require().NoError(err)
	s.Len(staff, 1)

	entries, err := s.trail.ListByResource(context.Background(), eventID.String(), 0)
	s.Require().NoError(err)
	var assignEntry *audit.Entry
	for i := range entries {
		if entries[i].Action == audit.ActionCreate && entries[i].Details["sub_resource"] == "staff" {
			assignEntry = &entries[i]
		}
	}
	s.Require().NotNil(assignEntry)
	s.Equal(s.emt.ID.String(), assignEntry.Details["user_id"])
	s.Equal("lead", assignEntry.Details["staff_role"])

	s.Require().NoError(s.svc.UnassignStaff(s.ctx, s.admin, eventID, s.emt.ID))
	err = s.svc.UnassignStaff(s.ctx, s.admin, eventID, s.emt.ID)
	s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
}

func (s *StaffingServiceSuite) TestEMTCannotChangeStaffing() {
	eventID := s.createEvent()
	_, err := s.svc.AssignStaff(s.ctx, s.emt, eventID, s.emt.ID, "medic")
	s.True(dErrors.HasCode(err, dErrors.CodeForbidden))
	_, err = s.svc.ListStaff(s.ctx, s.emt, eventID)
	s.True(dErrors.HasCode(err, dErrors.CodeForbidden))
}

func (s *StaffingServiceSuite) TestAssignToMissingEvent() {
	_, err := s.svc.AssignStaff(s.ctx, s.admin, id.NewEventID(), s.emt.ID, "")
	s.True(dErrors.HasCode(err, dErrors.CodeNotFound))
}
