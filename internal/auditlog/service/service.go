// Package service answers compliance review queries over the audit trail
// and exposes the recent access-denial feed. Every query runs through the
// gateway as an administrative READ of USER, so reviewing the trail leaves
// its own entry.
package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"eventcare/internal/access"
	"eventcare/internal/gateway"
	id "eventcare/pkg/domain"
	dErrors "eventcare/pkg/domain-errors"
	audit "eventcare/pkg/platform/audit"
	"eventcare/pkg/platform/middleware/metadata"
)

const (
	DefaultLimit = 100
	MaxLimit     = 1000
)

// DenialSource is the recent denial buffer.
type DenialSource interface {
	Recent(n int) []audit.SecurityEvent
}

// Query selects entries by exactly one of its filters.
type Query struct {
	ResourceID  string
	PrincipalID id.UserID
	Actions     []audit.Action
	Limit       int
}

func (q Query) Validate() error {
	set := 0
	if q.ResourceID != "" {
		set++
	}
	if !q.PrincipalID.IsNil() {
		set++
	}
	if len(q.Actions) > 0 {
		set++
	}
	if set != 1 {
		return dErrors.New(dErrors.CodeValidation, "exactly one of resource_id, principal_id or action is required")
	}
	return nil
}

// EntryView is an audit entry as shown to a reviewer.
type EntryView struct {
	audit.Entry
	Verified bool           `json:"verified"`
	Agent    metadata.Agent `json:"agent"`
}

type Service struct {
	gateway *gateway.Gateway
	store   audit.Store
	denials DenialSource
	sealer  *audit.Sealer
	logger  *slog.Logger
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// WithSealer enables digest verification. Without it every entry reports
// verified=false.
func WithSealer(sealer *audit.Sealer) Option {
	return func(s *Service) {
		s.sealer = sealer
	}
}

func New(g *gateway.Gateway, store audit.Store, denials DenialSource, opts ...Option) (*Service, error) {
	if g == nil {
		return nil, errors.New("gateway is required")
	}
	if store == nil {
		return nil, errors.New("audit store is required")
	}
	if denials == nil {
		return nil, errors.New("denial source is required")
	}
	s := &Service{gateway: g, store: store, denials: denials, logger: slog.Default()}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

func (s *Service) ListEntries(ctx context.Context, p access.Principal, q Query) ([]EntryView, error) {
	if err := q.Validate(); err != nil {
		return nil, err
	}
	limit := clampLimit(q.Limit)

	details := map[string]string{"sub_resource": "audit_entries"}
	switch {
	case q.ResourceID != "":
		details["resource_id"] = q.ResourceID
	case !q.PrincipalID.IsNil():
		details["principal_id"] = q.PrincipalID.String()
	default:
		details["action"] = joinActions(q.Actions)
	}

	req := gateway.Request{
		Principal: p,
		Action:    audit.ActionRead,
		Kind:      audit.KindUser,
		Details:   details,
		Scope:     gateway.AdminScope(),
	}
	return gateway.Execute(ctx, s.gateway, req, func(ctx context.Context) ([]EntryView, error) {
		var (
			entries []audit.Entry
			err     error
		)
		switch {
		case q.ResourceID != "":
			entries, err = s.store.ListByResource(ctx, q.ResourceID, limit)
		case !q.PrincipalID.IsNil():
			entries, err = s.store.ListByPrincipal(ctx, q.PrincipalID, limit)
		default:
			entries, err = s.store.ListByActions(ctx, q.Actions, limit)
		}
		if err != nil {
			return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to read audit trail")
		}
		views := make([]EntryView, 0, len(entries))
		for _, e := range entries {
			views = append(views, s.view(e))
		}
		return views, nil
	})
}

func (s *Service) ListDenials(ctx context.Context, p access.Principal, limit int) ([]audit.SecurityEvent, error) {
	req := gateway.Request{
		Principal: p,
		Action:    audit.ActionRead,
		Kind:      audit.KindUser,
		Details:   map[string]string{"sub_resource": "denials"},
		Scope:     gateway.AdminScope(),
	}
	return gateway.Execute(ctx, s.gateway, req, func(context.Context) ([]audit.SecurityEvent, error) {
		events := s.denials.Recent(clampLimit(limit))
		if events == nil {
			events = []audit.SecurityEvent{}
		}
		return events, nil
	})
}

func (s *Service) view(e audit.Entry) EntryView {
	return EntryView{
		Entry:    e,
		Verified: s.sealer != nil && s.sealer.Verify(e),
		Agent:    metadata.DescribeAgent(e.OriginAgent),
	}
}

func clampLimit(n int) int {
	switch {
	case n <= 0:
		return DefaultLimit
	case n > MaxLimit:
		return MaxLimit
	}
	return n
}

func joinActions(actions []audit.Action) string {
	names := make([]string, len(actions))
	for i, a := range actions {
		names[i] = string(a)
	}
	return strings.Join(names, ",")
}
