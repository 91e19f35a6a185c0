// Package postgres stores care records in PostgreSQL through a pgx pool.
// Calls join a transaction carried in the context by pkg/platform/tx.
package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"eventcare/internal/records/models"
	id "eventcare/pkg/domain"
	"eventcare/pkg/platform/sentinel"
	"eventcare/pkg/platform/tx"
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

type querier interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Store groups the PostgreSQL record stores over one pool.
type Store struct {
	Events      *EventStore
	Patients    *PatientStore
	Vitals      *VitalStore
	Treatments  *TreatmentStore
	Assignments *AssignmentStore
}

func New(pool *pgxpool.Pool) *Store {
	b := base{pool: pool}
	return &Store{
		Events:      &EventStore{b},
		Patients:    &PatientStore{b},
		Vitals:      &VitalStore{b},
		Treatments:  &TreatmentStore{b},
		Assignments: &AssignmentStore{b},
	}
}

type base struct {
	pool *pgxpool.Pool
}

func (b base) q(ctx context.Context) querier {
	if t, ok := tx.From(ctx); ok {
		return t
	}
	return b.pool
}

// inTx runs fn in the context's transaction, or in a new one.
func (b base) inTx(ctx context.Context, fn func(ctx context.Context, t pgx.Tx) error) error {
	if t, ok := tx.From(ctx); ok {
		return fn(ctx, t)
	}
	return pgx.BeginFunc(ctx, b.pool, func(t pgx.Tx) error {
		return fn(tx.WithTx(ctx, t), t)
	})
}

func translate(err error, op string) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return sentinel.ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return fmt.Errorf("%s: %w", op, sentinel.ErrConflict)
		case pgForeignKeyViolation:
			return fmt.Errorf("%s: %w", op, sentinel.ErrNotFound)
		}
	}
	return fmt.Errorf("%s: %w", op, err)
}

type EventStore struct{ base }

func (s *EventStore) Create(ctx context.Context, event *models.CareEvent) error {
	_, err := s.q(ctx).Exec(ctx, `
		INSERT INTO care_events (id, name, venue_name, start_date, created_at)
		VALUES ($1, $2, $3, $4, $5)`,
		event.ID.String(), event.Name, event.VenueName, event.StartDate, event.CreatedAt)
	if err != nil {
		return translate(err, "create event")
	}
	return nil
}

func (s *EventStore) FindByID(ctx context.Context, eventID id.EventID) (*models.CareEvent, error) {
	row := s.q(ctx).QueryRow(ctx, `
		SELECT id, name, venue_name, start_date, created_at
		FROM care_events WHERE id = $1`, eventID.String())
	ev, err := scanEvent(row)
	if err != nil {
		return nil, translate(err, "find event")
	}
	return ev, nil
}

func (s *EventStore) List(ctx context.Context) ([]*models.CareEvent, error) {
	rows, err := s.q(ctx).Query(ctx, `
		SELECT id, name, venue_name, start_date, created_at
		FROM care_events ORDER BY start_date, id`)
	if err != nil {
		return nil, translate(err, "list events")
	}
	defer rows.Close()

	var out []*models.CareEvent
	for rows.Next() {
		ev, err := scanEvent(rows)
		if err != nil {
			return nil, translate(err, "scan event")
		}
		out = append(out, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, translate(err, "list events")
	}
	return out, nil
}

func scanEvent(row pgx.Row) (*models.CareEvent, error) {
	var (
		ev    models.CareEvent
		rawID string
	)
	if err := row.Scan(&rawID, &ev.Name, &ev.VenueName, &ev.StartDate, &ev.CreatedAt); err != nil {
		return nil, err
	}
	eventID, err := id.ParseEventID(rawID)
	if err != nil {
		return nil, err
	}
	ev.ID = eventID
	ev.StartDate = ev.StartDate.UTC()
	ev.CreatedAt = ev.CreatedAt.UTC()
	return &ev, nil
}

type PatientStore struct{ base }

func (s *PatientStore) Create(ctx context.Context, p *models.PatientRecord) error {
	_, err := s.q(ctx).Exec(ctx, `
		INSERT INTO patient_records (id, event_id, name, complaint, disposition, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		p.ID.String(), p.EventID.String(), p.Name, p.Complaint, p.Disposition, p.CreatedAt, p.UpdatedAt)
	if err != nil {
		return translate(err, "create patient")
	}
	return nil
}

const patientColumns = `id, event_id, name, complaint, disposition, created_at, updated_at`

func (s *PatientStore) FindByID(ctx context.Context, patientID id.PatientID) (*models.PatientRecord, error) {
	row := s.q(ctx).QueryRow(ctx, `SELECT `+patientColumns+` FROM patient_records WHERE id = $1`, patientID.String())
	p, err := scanPatient(row)
	if err != nil {
		return nil, translate(err, "find patient")
	}
	return p, nil
}

func (s *PatientStore) ListByEvent(ctx context.Context, eventID id.EventID) ([]*models.PatientRecord, error) {
	rows, err := s.q(ctx).Query(ctx, `
		SELECT `+patientColumns+` FROM patient_records
		WHERE event_id = $1 ORDER BY created_at, id`, eventID.String())
	if err != nil {
		return nil, translate(err, "list patients")
	}
	defer rows.Close()

	var out []*models.PatientRecord
	for rows.Next() {
		p, err := scanPatient(rows)
		if err != nil {
			return nil, translate(err, "scan patient")
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, translate(err, "list patients")
	}
	return out, nil
}

// Update writes descriptive fields only; event_id and created_at are not in
// the SET list.
func (s *PatientStore) Update(ctx context.Context, p *models.PatientRecord) error {
	tag, err := s.q(ctx).Exec(ctx, `
		UPDATE patient_records
		SET name = $2, complaint = $3, disposition = $4, updated_at = $5
		WHERE id = $1`,
		p.ID.String(), p.Name, p.Complaint, p.Disposition, p.UpdatedAt)
	if err != nil {
		return translate(err, "update patient")
	}
	if tag.RowsAffected() == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

func (s *PatientStore) Delete(ctx context.Context, patientID id.PatientID) error {
	return s.inTx(ctx, func(ctx context.Context, t pgx.Tx) error {
		pid := patientID.String()
		if _, err := t.Exec(ctx, `DELETE FROM vitals WHERE patient_id = $1`, pid); err != nil {
			return translate(err, "delete vitals")
		}
		if _, err := t.Exec(ctx, `DELETE FROM treatments WHERE patient_id = $1`, pid); err != nil {
			return translate(err, "delete treatments")
		}
		tag, err := t.Exec(ctx, `DELETE FROM patient_records WHERE id = $1`, pid)
		if err != nil {
			return translate(err, "delete patient")
		}
		if tag.RowsAffected() == 0 {
			return sentinel.ErrNotFound
		}
		return nil
	})
}

func scanPatient(row pgx.Row) (*models.PatientRecord, error) {
	var (
		p                 models.PatientRecord
		rawID, rawEventID string
	)
	if err := row.Scan(&rawID, &rawEventID, &p.Name, &p.Complaint, &p.Disposition, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	patientID, err := id.ParsePatientID(rawID)
	if err != nil {
		return nil, err
	}
	eventID, err := id.ParseEventID(rawEventID)
	if err != nil {
		return nil, err
	}
	p.ID, p.EventID = patientID, eventID
	p.CreatedAt = p.CreatedAt.UTC()
	p.UpdatedAt = p.UpdatedAt.UTC()
	return &p, nil
}

type VitalStore struct{ base }

func (s *VitalStore) Create(ctx context.Context, v *models.Vital) error {
	_, err := s.q(ctx).Exec(ctx, `
		INSERT INTO vitals (id, patient_id, heart_rate, resp_rate, systolic_bp, diastolic_bp, spo2, notes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		v.ID.String(), v.PatientID.String(), v.HeartRate, v.RespRate, v.SystolicBP, v.DiastolicBP, v.SpO2, v.Notes, v.CreatedAt)
	if err != nil {
		return translate(err, "create vital")
	}
	return nil
}

func (s *VitalStore) ListByPatient(ctx context.Context, patientID id.PatientID) ([]*models.Vital, error) {
	rows, err := s.q(ctx).Query(ctx, `
		SELECT id, patient_id, heart_rate, resp_rate, systolic_bp, diastolic_bp, spo2, notes, created_at
		FROM vitals WHERE patient_id = $1 ORDER BY created_at, id`, patientID.String())
	if err != nil {
		return nil, translate(err, "list vitals")
	}
	defer rows.Close()

	var out []*models.Vital
	for rows.Next() {
		var (
			v            models.Vital
			rawID, rawPt string
		)
		if err := rows.Scan(&rawID, &rawPt, &v.HeartRate, &v.RespRate, &v.SystolicBP, &v.DiastolicBP, &v.SpO2, &v.Notes, &v.CreatedAt); err != nil {
			return nil, translate(err, "scan vital")
		}
		if v.ID, err = id.ParseVitalID(rawID); err != nil {
			return nil, err
		}
		if v.PatientID, err = id.ParsePatientID(rawPt); err != nil {
			return nil, err
		}
		v.CreatedAt = v.CreatedAt.UTC()
		out = append(out, &v)
	}
	if err := rows.Err(); err != nil {
		return nil, translate(err, "list vitals")
	}
	return out, nil
}

func (s *VitalStore) Delete(ctx context.Context, patientID id.PatientID, vitalID id.VitalID) error {
	tag, err := s.q(ctx).Exec(ctx, `DELETE FROM vitals WHERE id = $1 AND patient_id = $2`, vitalID.String(), patientID.String())
	if err != nil {
		return translate(err, "delete vital")
	}
	if tag.RowsAffected() == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

type TreatmentStore struct{ base }

func (s *TreatmentStore) Create(ctx context.Context, t *models.Treatment) error {
	_, err := s.q(ctx).Exec(ctx, `
		INSERT INTO treatments (id, patient_id, intervention, dose, notes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`,
		t.ID.String(), t.PatientID.String(), t.Intervention, t.Dose, t.Notes, t.CreatedAt)
	if err != nil {
		return translate(err, "create treatment")
	}
	return nil
}

func (s *TreatmentStore) ListByPatient(ctx context.Context, patientID id.PatientID) ([]*models.Treatment, error) {
	rows, err := s.q(ctx).Query(ctx, `
		SELECT id, patient_id, intervention, dose, notes, created_at
		FROM treatments WHERE patient_id = $1 ORDER BY created_at, id`, patientID.String())
	if err != nil {
		return nil, translate(err, "list treatments")
	}
	defer rows.Close()

	var out []*models.Treatment
	for rows.Next() {
		var (
			t            models.Treatment
			rawID, rawPt string
		)
		if err := rows.Scan(&rawID, &rawPt, &t.Intervention, &t.Dose, &t.Notes, &t.CreatedAt); err != nil {
			return nil, translate(err, "scan treatment")
		}
		if t.ID, err = id.ParseTreatmentID(rawID); err != nil {
			return nil, err
		}
		if t.PatientID, err = id.ParsePatientID(rawPt); err != nil {
			return nil, err
		}
		t.CreatedAt = t.CreatedAt.UTC()
		out = append(out, &t)
	}
	if err := rows.Err(); err != nil {
		return nil, translate(err, "list treatments")
	}
	return out, nil
}

func (s *TreatmentStore) Delete(ctx context.Context, patientID id.PatientID, treatmentID id.TreatmentID) error {
	tag, err := s.q(ctx).Exec(ctx, `DELETE FROM treatments WHERE id = $1 AND patient_id = $2`, treatmentID.String(), patientID.String())
	if err != nil {
		return translate(err, "delete treatment")
	}
	if tag.RowsAffected() == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

type AssignmentStore struct{ base }

func (s *AssignmentStore) Assign(ctx context.Context, a *models.StaffAssignment) error {
	_, err := s.q(ctx).Exec(ctx, `
		INSERT INTO staff_assignments (user_id, event_id, role, assigned_at)
		VALUES ($1, $2, $3, $4)`,
		a.UserID.String(), a.EventID.String(), a.Role, a.AssignedAt)
	if err != nil {
		return translate(err, "assign staff")
	}
	return nil
}

func (s *AssignmentStore) Unassign(ctx context.Context, eventID id.EventID, userID id.UserID) error {
	tag, err := s.q(ctx).Exec(ctx, `DELETE FROM staff_assignments WHERE event_id = $1 AND user_id = $2`, eventID.String(), userID.String())
	if err != nil {
		return translate(err, "unassign staff")
	}
	if tag.RowsAffected() == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

func (s *AssignmentStore) ListByUser(ctx context.Context, userID id.UserID) ([]*models.StaffAssignment, error) {
	return s.list(ctx, `WHERE user_id = $1`, userID.String())
}

func (s *AssignmentStore) ListByEvent(ctx context.Context, eventID id.EventID) ([]*models.StaffAssignment, error) {
	return s.list(ctx, `WHERE event_id = $1`, eventID.String())
}

func (s *AssignmentStore) list(ctx context.Context, where string, arg string) ([]*models.StaffAssignment, error) {
	rows, err := s.q(ctx).Query(ctx, `
		SELECT user_id, event_id, role, assigned_at FROM staff_assignments
		`+where+` ORDER BY assigned_at, user_id`, arg)
	if err != nil {
		return nil, translate(err, "list assignments")
	}
	defer rows.Close()

	var out []*models.StaffAssignment
	for rows.Next() {
		var (
			a               models.StaffAssignment
			rawUser, rawEvt string
		)
		if err := rows.Scan(&rawUser, &rawEvt, &a.Role, &a.AssignedAt); err != nil {
			return nil, translate(err, "scan assignment")
		}
		if a.UserID, err = id.ParseUserID(rawUser); err != nil {
			return nil, err
		}
		if a.EventID, err = id.ParseEventID(rawEvt); err != nil {
			return nil, err
		}
		a.AssignedAt = a.AssignedAt.UTC()
		out = append(out, &a)
	}
	if err := rows.Err(); err != nil {
		return nil, translate(err, "list assignments")
	}
	return out, nil
}
