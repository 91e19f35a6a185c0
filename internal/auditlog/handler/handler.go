package handler

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"eventcare/internal/access"
	"eventcare/internal/auditlog/service"
	id "eventcare/pkg/domain"
	dErrors "eventcare/pkg/domain-errors"
	audit "eventcare/pkg/platform/audit"
	"eventcare/pkg/platform/httputil"
	"eventcare/pkg/requestcontext"
)

type Service interface {
	ListEntries(ctx context.Context, p access.Principal, q service.Query) ([]service.EntryView, error)
	ListDenials(ctx context.Context, p access.Principal, limit int) ([]audit.SecurityEvent, error)
}

type Handler struct {
	service Service
	logger  *slog.Logger
}

func New(service Service, logger *slog.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

func (h *Handler) Register(r chi.Router) {
	r.Get("/audit/entries", h.HandleListEntries)
	r.Get("/audit/denials", h.HandleListDenials)
}

// HandleListEntries serves GET /audit/entries. Exactly one of resource_id,
// principal_id or action must be given; action may be a comma separated list.
func (h *Handler) HandleListEntries(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	principal, err := access.PrincipalFromContext(ctx)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	q, err := parseQuery(r)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	entries, err := h.service.ListEntries(ctx, principal, q)
	if err != nil {
		h.writeError(ctx, w, "list audit entries failed", err)
		return
	}
	if entries == nil {
		entries = []service.EntryView{}
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]any{"entries": entries})
}

func (h *Handler) HandleListDenials(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	principal, err := access.PrincipalFromContext(ctx)
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	limit, err := parseLimit(r.URL.Query().Get("limit"))
	if err != nil {
		httputil.WriteError(w, err)
		return
	}
	denials, err := h.service.ListDenials(ctx, principal, limit)
	if err != nil {
		h.writeError(ctx, w, "list denials failed", err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, map[string]any{"denials": denials})
}

func parseQuery(r *http.Request) (service.Query, error) {
	values := r.URL.Query()
	var q service.Query
	q.ResourceID = strings.TrimSpace(values.Get("resource_id"))

	if raw := values.Get("principal_id"); raw != "" {
		principalID, err := id.ParseUserID(raw)
		if err != nil {
			return q, err
		}
		q.PrincipalID = principalID
	}
	if raw := values.Get("action"); raw != "" {
		for _, part := range strings.Split(raw, ",") {
			action, err := audit.ParseAction(part)
			if err != nil {
				return q, err
			}
			q.Actions = append(q.Actions, action)
		}
	}

	limit, err := parseLimit(values.Get("limit"))
	if err != nil {
		return q, err
	}
	q.Limit = limit
	return q, q.Validate()
}

func parseLimit(raw string) (int, error) {
	if raw == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, dErrors.New(dErrors.CodeInvalidInput, "limit must be a non-negative integer")
	}
	return n, nil
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
