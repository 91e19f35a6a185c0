package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"eventcare/internal/records"
	"eventcare/internal/records/models"
	id "eventcare/pkg/domain"
	"eventcare/pkg/platform/sentinel"
)

var (
	_ records.EventStore      = (*EventStore)(nil)
	_ records.PatientStore    = (*PatientStore)(nil)
	_ records.VitalStore      = (*VitalStore)(nil)
	_ records.TreatmentStore  = (*TreatmentStore)(nil)
	_ records.AssignmentStore = (*AssignmentStore)(nil)
)

type RecordStoreSuite struct {
	suite.Suite
	store *Store
	ctx   context.Context
	now   time.Time
	event *models.CareEvent
}

func TestRecordStoreSuite(t *testing.T) {
	suite.Run(t, new(RecordStoreSuite))
}

func (s *RecordStoreSuite) SetupTest() {
	s.store = New()
	s.ctx = context.Background()
	s.now = time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)

	ev, err := models.NewCareEvent(id.NewEventID(), "Harbour Fun Run", "Pier 3", s.now, s.now)
	s.Require().NoError(err)
	s.Require().NoError(s.store.Events.Create(s.ctx, ev))
	s.event = ev
}

func (s *RecordStoreSuite) newPatient() *models.PatientRecord {
	p, err := models.NewPatientRecord(id.NewPatientID(), s.event.ID, "Sam Lee", "dizzy", s.now)
	s.Require().NoError(err)
	s.Require().NoError(s.store.Patients.Create(s.ctx, p))
	return p
}

func (s *RecordStoreSuite) TestEvents() {
	s.Run("duplicate id conflicts", func() {
		s.ErrorIs(s.store.Events.Create(s.ctx, s.event), sentinel.ErrConflict)
	})
	s.Run("unknown id is not found", func() {
		_, err := s.store.Events.FindByID(s.ctx, id.NewEventID())
		s.ErrorIs(err, sentinel.ErrNotFound)
	})
	s.Run("returned values are copies", func() {
		found, err := s.store.Events.FindByID(s.ctx, s.event.ID)
		s.Require().NoError(err)
		found.Name = "changed"
		again, err := s.store.Events.FindByID(s.ctx, s.event.ID)
		s.Require().NoError(err)
		s.Equal("Harbour Fun Run", again.Name)
	})
}

func (s *RecordStoreSuite) TestPatients() {
	s.Run("create requires an existing event", func() {
		p, err := models.NewPatientRecord(id.NewPatientID(), id.NewEventID(), "X", "", s.now)
		s.Require().NoError(err)
		s.ErrorIs(s.store.Patients.Create(s.ctx, p), sentinel.ErrNotFound)
	})

	s.Run("update keeps event and creation time", func() {
		p := s.newPatient()
		changed := *p
		changed.EventID = id.NewEventID()
		changed.CreatedAt = s.now.Add(time.Hour)
		changed.Disposition = "transported"
		s.Require().NoError(s.store.Patients.Update(s.ctx, &changed))

		found, err := s.store.Patients.FindByID(s.ctx, p.ID)
		s.Require().NoError(err)
		s.Equal(p.EventID, found.EventID)
		s.Equal(p.CreatedAt, found.CreatedAt)
		s.Equal("transported", found.Disposition)
	})

	s.Run("list by event", func() {
		all, err := s.store.Patients.ListByEvent(s.ctx, s.event.ID)
		s.Require().NoError(err)
		s.NotEmpty(all)
		none, err := s.store.Patients.ListByEvent(s.ctx, id.NewEventID())
		s.Require().NoError(err)
		s.Empty(none)
	})
}

func (s *RecordStoreSuite) TestDeleteCascades() {
	p := s.newPatient()
	v, err := models.NewVital(id.NewVitalID(), p.ID, models.VitalReadings{HeartRate: 90}, s.now)
	s.Require().NoError(err)
	s.Require().NoError(s.store.Vitals.Create(s.ctx, v))
	tr, err := models.NewTreatment(id.NewTreatmentID(), p.ID, "oral glucose", "15g", "", s.now)
	s.Require().NoError(err)
	s.Require().NoError(s.store.Treatments.Create(s.ctx, tr))

	s.Require().NoError(s.store.Patients.Delete(s.ctx, p.ID))

	vitals, err := s.store.Vitals.ListByPatient(s.ctx, p.ID)
	s.Require().NoError(err)
	s.Empty(vitals)
	treatments, err := s.store.Treatments.ListByPatient(s.ctx, p.ID)
	s.Require().NoError(err)
	s.Empty(treatments)
	s.ErrorIs(s.store.Patients.Delete(s.ctx, p.ID), sentinel.ErrNotFound)
}

func (s *RecordStoreSuite) TestSubRecordDelete() {
	p := s.newPatient()
	v, err := models.NewVital(id.NewVitalID(), p.ID, models.VitalReadings{SpO2: 95}, s.now)
	s.Require().NoError(err)
	s.Require().NoError(s.store.Vitals.Create(s.ctx, v))

	other := s.newPatient()
	s.ErrorIs(s.store.Vitals.Delete(s.ctx, other.ID, v.ID), sentinel.ErrNotFound, "vital is scoped to its patient")
	s.Require().NoError(s.store.Vitals.Delete(s.ctx, p.ID, v.ID))
	s.ErrorIs(s.store.Vitals.Delete(s.ctx, p.ID, v.ID), sentinel.ErrNotFound)
}

func (s *RecordStoreSuite) TestAssignments() {
	userID := id.NewUserID()
	a, err := models.NewStaffAssignment(userID, s.event.ID, "lead", s.now)
	s.Require().NoError(err)

	s.Require().NoError(s.store.Assignments.Assign(s.ctx, a))
	s.ErrorIs(s.store.Assignments.Assign(s.ctx, a), sentinel.ErrConflict)

	byUser, err := s.store.Assignments.ListByUser(s.ctx, userID)
	s.Require().NoError(err)
	s.Require().Len(byUser, 1)
	s.Equal("lead", byUser[0].Role)

	byEvent, err := s.store.Assignments.ListByEvent(s.ctx, s.event.ID)
	s.Require().NoError(err)
	s.Len(byEvent, 1)

	s.Require().NoError(s.store.Assignments.Unassign(s.ctx, s.event.ID, userID))
	s.ErrorIs(s.store.Assignments.Unassign(s.ctx, s.event.ID, userID), sentinel.ErrNotFound)

	missing, err := models.NewStaffAssignment(userID, id.NewEventID(), "", s.now)
	s.Require().NoError(err)
	s.ErrorIs(s.store.Assignments.Assign(s.ctx, missing), sentinel.ErrNotFound)
}

func (s *RecordStoreSuite) TestResolverAdapter() {
	p := s.newPatient()
	userID := id.NewUserID()
	a, err := models.NewStaffAssignment(userID, s.event.ID, "medic", s.now)
	s.Require().NoError(err)
	s.Require().NoError(s.store.Assignments.Assign(s.ctx, a))

	r := records.NewResolver(s.store.Events, s.store.Patients, s.store.Assignments)

	meta, err := r.ResolvePatient(s.ctx, p.ID)
	s.Require().NoError(err)
	s.Equal(s.event.ID, meta.EventID)
	s.Equal(p.CreatedAt, meta.CreatedAt)

	start, err := r.ResolveEventStart(s.ctx, s.event.ID)
	s.Require().NoError(err)
	s.Equal(s.event.StartDate, start)

	assignments, err := r.ListAssignmentsForUser(s.ctx, userID)
	s.Require().NoError(err)
	s.Require().Len(assignments, 1)
	s.Equal(s.event.ID, assignments[0].EventID)

	_, err = r.ResolvePatient(s.ctx, id.NewPatientID())
	s.ErrorIs(err, sentinel.ErrNotFound)
}
