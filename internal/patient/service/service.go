// Package service runs patient, vital and treatment operations through the
// audited action gateway. Every method takes the caller's principal
// explicitly.
package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

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
	gateway    *gateway.Gateway
	patients   records.PatientStore
	vitals     records.VitalStore
	treatments records.TreatmentStore
	logger     *slog.Logger
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func New(g *gateway.Gateway, patients records.PatientStore, vitals records.VitalStore, treatments records.TreatmentStore, opts ...Option) (*Service, error) {
	if g == nil {
		return nil, errors.New("gateway is required")
	}
	if patients == nil || vitals == nil || treatments == nil {
		return nil, errors.New("patient, vital and treatment stores are required")
	}
	s := &Service{gateway: g, patients: patients, vitals: vitals, treatments: treatments, logger: slog.Default()}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// CreatePatientInput carries the descriptive fields of a new patient.
type CreatePatientInput struct {
	Name      string
	Complaint string
}

func (s *Service) CreatePatient(ctx context.Context, p access.Principal, eventID id.EventID, in CreatePatientInput) (*models.PatientRecord, error) {
	req := gateway.Request{
		Principal: p,
		Action:    audit.ActionCreate,
		Kind:      audit.KindPatient,
		Details:   map[string]string{"event_id": eventID.String()},
		Scope:     gateway.NewPatientScope(eventID),
	}
	return gateway.Execute(ctx, s.gateway, req, func(ctx context.Context) (*models.PatientRecord, error) {
		rec, err := models.NewPatientRecord(id.NewPatientID(), eventID, in.Name, in.Complaint, requestcontext.Now(ctx))
		if err != nil {
			return nil, err
		}
		if err := s.patients.Create(ctx, rec); err != nil {
			return nil, storeError(err, "patient")
		}
		return rec, nil
	})
}

func (s *Service) GetPatient(ctx context.Context, p access.Principal, patientID id.PatientID) (*models.PatientRecord, error) {
	req := patientRequest(p, audit.ActionRead, audit.KindPatient, patientID)
	req.ResourceID = patientID.String()
	return gateway.Execute(ctx, s.gateway, req, func(ctx context.Context) (*models.PatientRecord, error) {
		rec, err := s.patients.FindByID(ctx, patientID)
		if err != nil {
			return nil, storeError(err, "patient")
		}
		return rec, nil
	})
}

// UpdatePatient changes descriptive fields. The audit entry lists the
// changed field names, never their values.
func (s *Service) UpdatePatient(ctx context.Context, p access.Principal, patientID id.PatientID, update models.PatientUpdate) (*models.PatientRecord, error) {
	req := patientRequest(p, audit.ActionUpdate, audit.KindPatient, patientID)
	req.ResourceID = patientID.String()
	req.Details = map[string]string{"fields": strings.Join(update.Fields(), ",")}
	return gateway.Execute(ctx, s.gateway, req, func(ctx context.Context) (*models.PatientRecord, error) {
		rec, err := s.patients.FindByID(ctx, patientID)
		if err != nil {
			return nil, storeError(err, "patient")
		}
		if err := rec.Update(update, requestcontext.Now(ctx)); err != nil {
			return nil, err
		}
		if err := s.patients.Update(ctx, rec); err != nil {
			return nil, storeError(err, "patient")
		}
		return rec, nil
	})
}

// DeletePatient removes the patient with its vitals and treatments.
func (s *Service) DeletePatient(ctx context.Context, p access.Principal, patientID id.PatientID) error {
	req := patientRequest(p, audit.ActionDelete, audit.KindPatient, patientID)
	req.ResourceID = patientID.String()
	_, err := gateway.Execute(ctx, s.gateway, req, func(ctx context.Context) (struct{}, error) {
		if err := s.patients.Delete(ctx, patientID); err != nil {
			return struct{}{}, storeError(err, "patient")
		}
		s.logger.InfoContext(ctx, "patient record deleted",
			"request_id", requestcontext.RequestID(ctx),
			"patient_id", patientID.String(),
			"principal_id", p.ID.String(),
		)
		return struct{}{}, nil
	})
	return err
}

func (s *Service) ListVitals(ctx context.Context, p access.Principal, patientID id.PatientID) ([]*models.Vital, error) {
	req := patientRequest(p, audit.ActionRead, audit.KindVital, patientID)
	req.ResourceID = patientID.String()
	return gateway.Execute(ctx, s.gateway, req, func(ctx context.Context) ([]*models.Vital, error) {
		vitals, err := s.vitals.ListByPatient(ctx, patientID)
		if err != nil {
			return nil, storeError(err, "vitals")
		}
		return vitals, nil
	})
}

func (s *Service) AddVital(ctx context.Context, p access.Principal, patientID id.PatientID, readings models.VitalReadings) (*models.Vital, error) {
	req := patientRequest(p, audit.ActionCreate, audit.KindVital, patientID)
	return gateway.Execute(ctx, s.gateway, req, func(ctx context.Context) (*models.Vital, error) {
		v, err := models.NewVital(id.NewVitalID(), patientID, readings, requestcontext.Now(ctx))
		if err != nil {
			return nil, err
		}
		if err := s.vitals.Create(ctx, v); err != nil {
			return nil, storeError(err, "vital")
		}
		return v, nil
	})
}

func (s *Service) DeleteVital(ctx context.Context, p access.Principal, patientID id.PatientID, vitalID id.VitalID) error {
	req := patientRequest(p, audit.ActionDelete, audit.KindVital, patientID)
	req.ResourceID = vitalID.String()
	_, err := gateway.Execute(ctx, s.gateway, req, func(ctx context.Context) (struct{}, error) {
		if err := s.vitals.Delete(ctx, patientID, vitalID); err != nil {
			return struct{}{}, storeError(err, "vital")
		}
		return struct{}{}, nil
	})
	return err
}

func (s *Service) ListTreatments(ctx context.Context, p access.Principal, patientID id.PatientID) ([]*models.Treatment, error) {
	req := patientRequest(p, audit.ActionRead, audit.KindTreatment, patientID)
	req.ResourceID = patientID.String()
	return gateway.Execute(ctx, s.gateway, req, func(ctx context.Context) ([]*models.Treatment, error) {
		treatments, err := s.treatments.ListByPatient(ctx, patientID)
		if err != nil {
			return nil, storeError(err, "treatments")
		}
		return treatments, nil
	})
}

// TreatmentInput carries the fields of a new treatment.
type TreatmentInput struct {
	Intervention string
	Dose         string
	Notes        string
}

func (s *Service) AddTreatment(ctx context.Context, p access.Principal, patientID id.PatientID, in TreatmentInput) (*models.Treatment, error) {
	req := patientRequest(p, audit.ActionCreate, audit.KindTreatment, patientID)
	return gateway.Execute(ctx, s.gateway, req, func(ctx context.Context) (*models.Treatment, error) {
		t, err := models.NewTreatment(id.NewTreatmentID(), patientID, in.Intervention, in.Dose, in.Notes, requestcontext.Now(ctx))
		if err != nil {
			return nil, err
		}
		if err := s.treatments.Create(ctx, t); err != nil {
			return nil, storeError(err, "treatment")
		}
		return t, nil
	})
}

func (s *Service) DeleteTreatment(ctx context.Context, p access.Principal, patientID id.PatientID, treatmentID id.TreatmentID) error {
	req := patientRequest(p, audit.ActionDelete, audit.KindTreatment, patientID)
	req.ResourceID = treatmentID.String()
	_, err := gateway.Execute(ctx, s.gateway, req, func(ctx context.Context) (struct{}, error) {
		if err := s.treatments.Delete(ctx, patientID, treatmentID); err != nil {
			return struct{}{}, storeError(err, "treatment")
		}
		return struct{}{}, nil
	})
	return err
}

func patientRequest(p access.Principal, action audit.Action, kind audit.ResourceKind, patientID id.PatientID) gateway.Request {
	req := gateway.Request{
		Principal: p,
		Action:    action,
		Kind:      kind,
		Scope:     gateway.PatientScope(patientID),
	}
	if kind != audit.KindPatient {
		req.Details = map[string]string{"patient_id": patientID.String()}
	}
	return req
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
