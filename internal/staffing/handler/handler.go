package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"eventcare/internal/access"
	"eventcare/internal/records/models"
	"eventcare/internal/staffing/service"
	id "eventcare/pkg/domain"
	dErrors "eventcare/pkg/domain-errors"
	"eventcare/pkg/platform/httputil"
	"eventcare/pkg/requestcontext"
)

type Service interface {
	CreateEvent(ctx context.Context, p access.Principal, in service.CreateEventInput) (*models.CareEvent, error)
	GetEvent(ctx context.Context, p access.Principal, eventID id.EventID) (*models.CareEvent, error)
	ListEvents(ctx context.Context, p access.Principal) ([]*models.CareEvent, error)
	AssignStaff(ctx context.Context, p access.Principal, eventID id.EventID, userID id.UserID, role string) (*models.StaffAssignment, error)
	UnassignStaff(ctx context.Context, p access.Principal, eventID id.EventID, userID id.UserID) error
	ListStaff(ctx context.Context, p access.Principal, eventID id.EventID) ([]*models.StaffAssignment, error)
}

type Handler struct {
	service Service
	logger  *slog.Logger
}

func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// Register mounts event and staffing routes. Routes are flat so they can
// share the /events/{eventID} prefix with the patient handler.
func (h *Handler) Register(r chi.Router) {
	r.Post("/events", h.HandleCreateEvent)
	r.Get("/events", h.HandleListEvents)
	r.Get("/events/{eventID}", h.HandleGetEvent)
	r.Get("/events/{eventID}/staff", h.HandleListStaff)
	r.Put("/events/{eventID}/staff/{userID}", h.HandleAssignStaff)
	r.Delete("/events/{eventID}/staff/{userID}", h.HandleUnassignStaff)
}

func (h *Handler) HandleCreateEvent(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	principal, ok := h.principal(w, r)
	if !ok {
		return
	}
	req, ok := httputil.DecodeAndPrepare[CreateEventRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
	if !ok {
		return
	}
	ev, err := h.service.CreateEvent(ctx, principal, service.CreateEventInput{
		Name:      req.Name,
		VenueName: req.VenueName,
		StartDate: req.start,
	})
	if err != nil {
		h.writeError(ctx, w, "create event failed", err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, ev)
}

func (h *Handler) HandleListEvents(w http.ResponseWriter, r *http.Request) {
	principal, ok := h.principal(w, r)
	if !ok {
		return
	}
	events, err := h.service.ListEvents(r.Context(), principal)
	if err != nil {
		h.writeError(r.Context(), w, "list events failed", err)
		return
	}
	if events == nil {
		events = []*models.CareEvent{}
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]any{"events": events})
}

func (h *Handler) HandleGetEvent(w http.ResponseWriter, r *http.Request) {
	principal, eventID, ok := h.eventTarget(w, r)
	if !ok {
		return
	}
	ev, err := h.service.GetEvent(r.Context(), principal, eventID)
	if err != nil {
		h.writeError(r.Context(), w, "get event failed", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, ev)
}

func (h *Handler) HandleListStaff(w http.ResponseWriter, r *http.Request) {
	principal, eventID, ok := h.eventTarget(w, r)
	if !ok {
		return
	}
	staff, err := h.service.ListStaff(r.Context(), principal, eventID)
	if err != nil {
		h.writeError(r.Context(), w, "list staff failed", err)
		return
	}
	if staff == nil {
		staff = []*models.StaffAssignment{}
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]any{"staff": staff})
}

func (h *Handler) HandleAssignStaff(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	principal, eventID, ok := h.eventTarget(w, r)
	if !ok {
		return
	}
	userID, err := id.ParseUserID(chi.URLParam(r, "userID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	role := ""
	if r.ContentLength != 0 {
		req, ok := httputil.DecodeAndPrepare[AssignStaffRequest](w, r, h.logger, ctx, requestcontext.RequestID(ctx))
		if !ok {
			return
		}
		role = req.Role
	}
	a, err := h.service.AssignStaff(ctx, principal, eventID, userID, role)
	if err != nil {
		h.writeError(ctx, w, "assign staff failed", err)
		return
	}
	httputil.WriteJSON(w, http.StatusCreated, a)
}

func (h *Handler) HandleUnassignStaff(w http.ResponseWriter, r *http.Request) {
	principal, eventID, ok := h.eventTarget(w, r)
	if !ok {
		return
	}
	userID, err := id.ParseUserID(chi.URLParam(r, "userID"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	if err := h.service.UnassignStaff(r.Context(), principal, eventID, userID); err != nil {
		h.writeError(r.Context(), w, "unassign staff failed", err)
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

func (h *Handler) eventTarget(w http.ResponseWriter, r *http.Request) (access.Principal, id.EventID, bool) {
	p, ok := h.principal(w, r)
	if !ok {
		return access.Principal{}, id.EventID{}, false
	}
	eventID, err := id.ParseEventID(chi.URLParam(r, "eventID"))
	if err != nil {
		httputil.WriteError(w, err)
		return access.Principal{}, id.EventID{}, false
	}
	return p, eventID, true
}

func (h *Handler) writeError(ctx context.Context, w http.ResponseWriter, msg string, err error) {
	if httputil.StatusFor(dErrors.CodeOf(err)) >= http.StatusInternalServerError {
		h.logger.ErrorContext(ctx, msg,
			"request_id", requestcontext.RequestID(ctx),
			"error", err,
		)
	}
	httputil.WriteError(w, err)
}
