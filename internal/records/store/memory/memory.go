// Package memory keeps care records in process. All record kinds share one
// lock so a patient delete and its cascade are atomic.
package memory

import (
	"context"
	"slices"
	"sync"

	"eventcare/internal/records/models"
	id "eventcare/pkg/domain"
	"eventcare/pkg/platform/sentinel"
)

type assignmentKey struct {
	eventID id.EventID
	userID  id.UserID
}

type state struct {
	mu          sync.RWMutex
	events      map[id.EventID]*models.CareEvent
	patients    map[id.PatientID]*models.PatientRecord
	vitals      map[id.PatientID][]*models.Vital
	treatments  map[id.PatientID][]*models.Treatment
	assignments map[assignmentKey]*models.StaffAssignment
}

// Store groups the in-memory record stores.
type Store struct {
	Events      *EventStore
	Patients    *PatientStore
	Vitals      *VitalStore
	Treatments  *TreatmentStore
	Assignments *AssignmentStore
}

func New() *Store {
	st := &state{
		events:      make(map[id.EventID]*models.CareEvent),
		patients:    make(map[id.PatientID]*models.PatientRecord),
		vitals:      make(map[id.PatientID][]*models.Vital),
		treatments:  make(map[id.PatientID][]*models.Treatment),
		assignments: make(map[assignmentKey]*models.StaffAssignment),
	}
	return &Store{
		Events:      &EventStore{st},
		Patients:    &PatientStore{st},
		Vitals:      &VitalStore{st},
		Treatments:  &TreatmentStore{st},
		Assignments: &AssignmentStore{st},
	}
}

type EventStore struct{ s *state }

func (e *EventStore) Create(_ context.Context, event *models.CareEvent) error {
	e.s.mu.Lock()
	defer e.s.mu.Unlock()
	if _, ok := e.s.events[event.ID]; ok {
		return sentinel.ErrConflict
	}
	cp := *event
	e.s.events[event.ID] = &cp
	return nil
}

func (e *EventStore) FindByID(_ context.Context, eventID id.EventID) (*models.CareEvent, error) {
	e.s.mu.RLock()
	defer e.s.mu.RUnlock()
	ev, ok := e.s.events[eventID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	cp := *ev
	return &cp, nil
}

// List returns events ordered by start date, earliest first.
func (e *EventStore) List(_ context.Context) ([]*models.CareEvent, error) {
	e.s.mu.RLock()
	defer e.s.mu.RUnlock()
	out := make([]*models.CareEvent, 0, len(e.s.events))
	for _, ev := range e.s.events {
		cp := *ev
		out = append(out, &cp)
	}
	slices.SortFunc(out, func(a, b *models.CareEvent) int {
		return a.StartDate.Compare(b.StartDate)
	})
	return out, nil
}

type PatientStore struct{ s *state }

func (p *PatientStore) Create(_ context.Context, patient *models.PatientRecord) error {
	p.s.mu.Lock()
	defer p.s.mu.Unlock()
	if _, ok := p.s.events[patient.EventID]; !ok {
		return sentinel.ErrNotFound
	}
	if _, ok := p.s.patients[patient.ID]; ok {
		return sentinel.ErrConflict
	}
	cp := *patient
	p.s.patients[patient.ID] = &cp
	return nil
}

func (p *PatientStore) FindByID(_ context.Context, patientID id.PatientID) (*models.PatientRecord, error) {
	p.s.mu.RLock()
	defer p.s.mu.RUnlock()
	rec, ok := p.s.patients[patientID]
	if !ok {
		return nil, sentinel.ErrNotFound
	}
	cp := *rec
	return &cp, nil
}

func (p *PatientStore) ListByEvent(_ context.Context, eventID id.EventID) ([]*models.PatientRecord, error) {
	p.s.mu.RLock()
	defer p.s.mu.RUnlock()
	var out []*models.PatientRecord
	for _, rec := range p.s.patients {
		if rec.EventID == eventID {
			cp := *rec
			out = append(out, &cp)
		}
	}
	slices.SortFunc(out, func(a, b *models.PatientRecord) int {
		return a.CreatedAt.Compare(b.CreatedAt)
	})
	return out, nil
}

// Update stores the descriptive fields of patient. EventID and CreatedAt
// keep their stored values.
func (p *PatientStore) Update(_ context.Context, patient *models.PatientRecord) error {
	p.s.mu.Lock()
	defer p.s.mu.Unlock()
	rec, ok := p.s.patients[patient.ID]
	if !ok {
		return sentinel.ErrNotFound
	}
	rec.Name = patient.Name
	rec.Complaint = patient.Complaint
	rec.Disposition = patient.Disposition
	rec.UpdatedAt = patient.UpdatedAt
	return nil
}

func (p *PatientStore) Delete(_ context.Context, patientID id.PatientID) error {
	p.s.mu.Lock()
	defer p.s.mu.Unlock()
	if _, ok := p.s.patients[patientID]; !ok {
		return sentinel.ErrNotFound
	}
	delete(p.s.patients, patientID)
	delete(p.s.vitals, patientID)
	delete(p.s.treatments, patientID)
	return nil
}

type VitalStore struct{ s *state }

func (v *VitalStore) Create(_ context.Context, vital *models.Vital) error {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	if _, ok := v.s.patients[vital.PatientID]; !ok {
		return sentinel.ErrNotFound
	}
	cp := *vital
	v.s.vitals[vital.PatientID] = append(v.s.vitals[vital.PatientID], &cp)
	return nil
}

func (v *VitalStore) ListByPatient(_ context.Context, patientID id.PatientID) ([]*models.Vital, error) {
	v.s.mu.RLock()
	defer v.s.mu.RUnlock()
	out := make([]*models.Vital, 0, len(v.s.vitals[patientID]))
	for _, vital := range v.s.vitals[patientID] {
		cp := *vital
		out = append(out, &cp)
	}
	return out, nil
}

func (v *VitalStore) Delete(_ context.Context, patientID id.PatientID, vitalID id.VitalID) error {
	v.s.mu.Lock()
	defer v.s.mu.Unlock()
	list := v.s.vitals[patientID]
	i := slices.IndexFunc(list, func(x *models.Vital) bool { return x.ID == vitalID })
	if i < 0 {
		return sentinel.ErrNotFound
	}
	v.s.vitals[patientID] = slices.Delete(list, i, i+1)
	return nil
}

type TreatmentStore struct{ s *state }

func (t *TreatmentStore) Create(_ context.Context, treatment *models.Treatment) error {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	if _, ok := t.s.patients[treatment.PatientID]; !ok {
		return sentinel.ErrNotFound
	}
	cp := *treatment
	t.s.treatments[treatment.PatientID] = append(t.s.treatments[treatment.PatientID], &cp)
	return nil
}

func (t *TreatmentStore) ListByPatient(_ context.Context, patientID id.PatientID) ([]*models.Treatment, error) {
	t.s.mu.RLock()
	defer t.s.mu.RUnlock()
	out := make([]*models.Treatment, 0, len(t.s.treatments[patientID]))
	for _, tr := range t.s.treatments[patientID] {
		cp := *tr
		out = append(out, &cp)
	}
	return out, nil
}

func (t *TreatmentStore) Delete(_ context.Context, patientID id.PatientID, treatmentID id.TreatmentID) error {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()
	list := t.s.treatments[patientID]
	i := slices.IndexFunc(list, func(x *models.Treatment) bool { return x.ID == treatmentID })
	if i < 0 {
		return sentinel.ErrNotFound
	}
	t.s.treatments[patientID] = slices.Delete(list, i, i+1)
	return nil
}

type AssignmentStore struct{ s *state }

func (a *AssignmentStore) Assign(_ context.Context, assignment *models.StaffAssignment) error {
	a.s.mu.Lock()
	defer a.s.mu.Unlock()
	if _, ok := a.s.events[assignment.EventID]; !ok {
		return sentinel.ErrNotFound
	}
	key := assignmentKey{eventID: assignment.EventID, userID: assignment.UserID}
	if _, ok := a.s.assignments[key]; ok {
		return sentinel.ErrConflict
	}
	cp := *assignment
	a.s.assignments[key] = &cp
	return nil
}

func (a *AssignmentStore) Unassign(_ context.Context, eventID id.EventID, userID id.UserID) error {
	a.s.mu.Lock()
	defer a.s.mu.Unlock()
	key := assignmentKey{eventID: eventID, userID: userID}
	if _, ok := a.s.assignments[key]; !ok {
		return sentinel.ErrNotFound
	}
	delete(a.s.assignments, key)
	return nil
}

func (a *AssignmentStore) ListByUser(_ context.Context, userID id.UserID) ([]*models.StaffAssignment, error) {
	return a.list(func(x *models.StaffAssignment) bool { return x.UserID == userID }), nil
}

func (a *AssignmentStore) ListByEvent(_ context.Context, eventID id.EventID) ([]*models.StaffAssignment, error) {
	return a.list(func(x *models.StaffAssignment) bool { return x.EventID == eventID }), nil
}

func (a *AssignmentStore) list(match func(*models.StaffAssignment) bool) []*models.StaffAssignment {
	a.s.mu.RLock()
	defer a.s.mu.RUnlock()
	var out []*models.StaffAssignment
	for _, x := range a.s.assignments {
		if match(x) {
			cp := *x
			out = append(out, &cp)
		}
	}
	slices.SortFunc(out, func(x, y *models.StaffAssignment) int {
		return x.AssignedAt.Compare(y.AssignedAt)
	})
	return out
}
