package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"eventcare/internal/access"
	"eventcare/internal/patient/service"
	"eventcare/internal/records/models"
	id "eventcare/pkg/domain"
	dErrors "eventcare/pkg/domain-errors"
	"eventcare/pkg/platform/httputil"
	"eventcare/pkg/requestcontext"
)

// Service is the patient service as seen by the HTTP layer.
type Service interface {
	CreatePatient(ctx context.Context, p access.Principal, eventID id.EventID, in service.CreatePatientInput) (*models.PatientRecord, error)
	GetPatient(ctx context.Context, p access.Principal, patientID id.PatientID) (*models.PatientRecord, error)
	UpdatePatient(ctx context.Context, p access.Principal, patientID id.PatientID, update models.PatientUpdate) (*models.PatientRecord, error)
	DeletePatient(ctx context.Context, p access.Principal, patientID id.PatientID) error
	ListVitals(ctx context.Context, p access.Principal, patientID id.PatientID) ([]*models.Vital, error)
	AddVital(ctx context.Context, p access.Principal, patientID id.PatientID, readings models.VitalReadings) (*models.Vital, error)
	DeleteVital(ctx context.Context, p access.Principal, patientID id.PatientID, vitalID id.VitalID) error
	ListTreatments(ctx context.Context, p access.Principal, patientID id.PatientID) ([]*models.Treatment, error)
	AddTreatment(ctx context.Context, p access.Principal, patientID id.PatientID, in service.TreatmentInput) (*models.Treatment, error)
	DeleteTreatment(ctx context.Context, p access.Principal, patientID id.PatientID, treatmentID id.TreatmentID) error
}

type Handler struct {
	service Service
	logger  *slog.Logger
}

func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register mounts patient routes. The router must already run the auth
// middleware.
func (h *Handler) Register(r chi.Router) {
	r.Post("/events/{eventID}/patients", h.HandleCreatePatient)
	r.Route("/patients/{patientID}", func(r chi.Router) {
		r.Get("/", h.HandleGetPatient)
		r.Patch("/", h.HandleUpdatePatient)
		r.Delete("/", h.HandleDeletePatient)

		r.Get("/vitals", h.HandleListVitals)
		r.Post("/vitals", h.HandleAddVital)
		r.Delete("/vitals/{vitalID}", h.HandleDeleteVital)

		r.Get("/treatments", h.HandleListTreatments)
		r.Post("/treatments", h.HandleAddTreatment)
		r.Delete("/treatments/{treatmentID}", h.HandleDeleteTreatment)
	})
}

func (h *Handler) HandleCreatePatient(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	principal, ok := h.principal(w, r)
	if !ok {
		return
	}
	eventID, err := id.ParseEventID(chi.URLParam(r, "eventID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	req, ok := httputil.DecodeAndPrepare[CreatePatientRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	rec, err := h.service.CreatePatient(ctx, principal, eventID, service.CreatePatientInput{Name: req.Name, Complaint: req.Complaint})
	if err != nil {
		h.writeError(ctx, w, "create patient failed", err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, rec)
}

func (h *Handler) HandleGetPatient(w http.ResponseWriter, r *http.Request) {
	principal, patientID, ok := h.patientTarget(w, r)
	if !ok {
		return
	}
	rec, err := h.service.GetPatient(r.Context(), principal, patientID)
	if err != nil {
		h.writeError(r.Context(), w, "get patient failed", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, rec)
}

func (h *Handler) HandleUpdatePatient(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	principal, patientID, ok := h.patientTarget(w, r)
	if !ok {
		return
	}
	req, ok := httputil.DecodeAndPrepare[UpdatePatientRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}
	rec, err := h.service.UpdatePatient(ctx, principal, patientID, req.toUpdate())
	if err != nil {
		h.writeError(ctx, w, "update patient failed", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, rec)
}

func (h *Handler) HandleDeletePatient(w http.ResponseWriter, r *http.Request) {
	principal, patientID, ok := h.patientTarget(w, r)
	if !ok {
		return
	}
	if err := h.service.DeletePatient(r.Context(), principal, patientID); err != nil {
		h.writeError(r.Context(), w, "delete patient failed", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) HandleListVitals(w http.ResponseWriter, r *http.Request) {
	principal, patientID, ok := h.patientTarget(w, r)
	if !ok {
		return
	}
	vitals, err := h.service.ListVitals(r.Context(), principal, patientID)
	if err != nil {
		h.writeError(r.Context(), w, "list vitals failed", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]any{"vitals": nonNil(vitals)})
}

func (h *Handler) HandleAddVital(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	principal, patientID, ok := h.patientTarget(w, r)
	if !ok {
		return
	}
	req, ok := httputil.DecodeAndPrepare[VitalRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}
	v, err := h.service.AddVital(ctx, principal, patientID, req.toReadings())
	if err != nil {
		h.writeError(ctx, w, "add vital failed", err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, v)
}

func (h *Handler) HandleDeleteVital(w http.ResponseWriter, r *http.Request) {
	principal, patientID, ok := h.patientTarget(w, r)
	if !ok {
		return
	}
	vitalID, err := id.ParseVitalID(chi.URLParam(r, "vitalID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	if err := h.service.DeleteVital(r.Context(), principal, patientID, vitalID); err != nil {
		h.writeError(r.Context(), w, "delete vital failed", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) HandleListTreatments(w http.ResponseWriter, r *http.Request) {
	principal, patientID, ok := h.patientTarget(w, r)
	if !ok {
		return
	}
	treatments, err := h.service.ListTreatments(r.Context(), principal, patientID)
	if err != nil {
		h.writeError(r.Context(), w, "list treatments failed", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]any{"treatments": nonNil(treatments)})
}

func (h *Handler) HandleAddTreatment(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	principal, patientID, ok := h.patientTarget(w, r)
	if !ok {
		return
	}
	req, ok := httputil.DecodeAndPrepare[TreatmentRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}
	t, err := h.service.AddTreatment(ctx, principal, patientID, service.TreatmentInput{
		Intervention: req.Intervention,
		Dose:         req.Dose,
		Notes:        req.Notes,
	})
	if err != nil {
		h.writeError(ctx, w, "add treatment failed", err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, t)
}

func (h *Handler) HandleDeleteTreatment(w http.ResponseWriter, r *http.Request) {
	principal, patientID, ok := h.patientTarget(w, r)
	if !ok {
		return
	}
	treatmentID, err := id.ParseTreatmentID(chi.URLParam(r, "treatmentID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	if err := h.service.DeleteTreatment(r.Context(), principal, patientID, treatmentID); err != nil {
		h.writeError(r.Context(), w, "delete treatment failed", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) principal(w http.ResponseWriter, r *http.Request) (access.Principal, bool) {
	p, err := access.PrincipalFromContext(r.Context())
	if err != nil {
		httputil.WriteError(w, err)
		return access.Principal{}, false
	}
	return p, true
}

func (h *Handler) patientTarget(w http.ResponseWriter, r *http.Request) (access.Principal, id.PatientID, bool) {
	p, ok := h.principal(w, r)
	if !ok {
		return access.Principal{}, id.PatientID{}, false
	}
	patientID, err := id.ParsePatientID(chi.URLParam(r, "patientID"))
	if err != nil {
		httputil.WriteError(w, err)
		return access.Principal{}, id.PatientID{}, false
	}
	return p, patientID, true
}

// writeError logs server-side failures; client errors are already logged
// by the gateway or need no log.
func (h *Handler) writeError(ctx context.Context, w http.ResponseWriter, msg string, err error) {
	if httputil.StatusFor(dErrors.CodeOf(err)) >= http.StatusInternalServerError {
		h.logger.ErrorContext(ctx, msg,
			"request_id", requestcontext.RequestID(ctx),
			"error", err,
		)
	}
	httputil.WriteError(w, err)
}

func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
