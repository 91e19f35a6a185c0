// Package gateway runs guarded operations: it resolves the target, asks the
// access engine, runs the operation and appends one audit entry on success.
//
// Authorization fails closed; auditing fails open. An audit failure is
// logged and counted, never returned and never retried.
package gateway

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"maps"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"eventcare/internal/access"
	accessmetrics "eventcare/internal/access/metrics"
	"eventcare/internal/gateway/metrics"
	id "eventcare/pkg/domain"
	dErrors "eventcare/pkg/domain-errors"
	audit "eventcare/pkg/platform/audit"
	"eventcare/pkg/platform/sentinel"
	"eventcare/pkg/requestcontext"
)

// ErrAuditWriteFailed wraps audit sink errors in logs. It is never returned.
var ErrAuditWriteFailed = errors.New("audit write failed")

// State is the step an execution ended in.
type State string

const (
	StateResolving State = "resolving"
	StateDeciding  State = "deciding"
	StateDenied    State = "denied"
	StateExecuting State = "executing"
	StateFailed    State = "failed"
	StateSucceeded State = "succeeded"
	StateAuditing  State = "auditing"
)

// Request describes one guarded action.
type Request struct {
	Principal  access.Principal
	Action     audit.Action
	Kind       audit.ResourceKind
	ResourceID string
	Details    map[string]string
	Scope      Scope
}

// Operation is the guarded work. Its result and error reach the caller unchanged.
type Operation[T any] func(ctx context.Context) (T, error)

// Identified lets an operation result name the resource it created, for
// requests that cannot know the id up front.
type Identified interface {
	AuditResourceID() string
}

type Gateway struct {
	resolver        Resolver
	assignments     AssignmentLookup
	sink            AuditSink
	logger          *slog.Logger
	metrics         *metrics.Metrics
	decisionMetrics *accessmetrics.Metrics
	denials         DenialRecorder
	sealer          *audit.Sealer
	tracer          trace.Tracer
}

type Option func(*Gateway)

func WithLogger(logger *slog.Logger) Option {
	return func(g *Gateway) {
		g.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(g *Gateway) {
		g.metrics = m
	}
}

func WithDecisionMetrics(m *accessmetrics.Metrics) Option {
	return func(g *Gateway) {
		g.decisionMetrics = m
	}
}

func WithDenialRecorder(r DenialRecorder) Option {
	return func(g *Gateway) {
		g.denials = r
	}
}

// WithSealer stamps every entry with a keyed digest before it is appended.
func WithSealer(s *audit.Sealer) Option {
	return func(g *Gateway) {
		g.sealer = s
	}
}

func WithTracer(t trace.Tracer) Option {
	return func(g *Gateway) {
		g.tracer = t
	}
}

func New(resolver Resolver, assignments AssignmentLookup, sink AuditSink, opts ...Option) (*Gateway, error) {
	if resolver == nil {
		return nil, errors.New("resolver is required")
	}
	if assignments == nil {
		return nil, errors.New("assignment lookup is required")
	}
	if sink == nil {
		return nil, errors.New("audit sink is required")
	}

	g := &Gateway{
		resolver:    resolver,
		assignments: assignments,
		sink:        sink,
		logger:      slog.Default(),
		tracer:      otel.Tracer("eventcare/internal/gateway"),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g, nil
}

// Execute runs op for req if the principal is allowed to.
//
// Errors returned:
//   - CodeUnauthorized when req carries no authenticated principal
//   - CodeNotFound when the target patient or event does not exist
//   - CodeForbidden when the engine denies the request
//   - CodeInternal when a patient-kind request carries no patient scope
//   - whatever op returned, unchanged
func Execute[T any](ctx context.Context, g *Gateway, req Request, op Operation[T]) (result T, err error) {
	start := time.Now()
	ctx, span := g.tracer.Start(ctx, "gateway.Execute", trace.WithAttributes(
		attribute.String("audit.action", string(req.Action)),
		attribute.String("audit.resource_kind", string(req.Kind)),
		attribute.String("gateway.scope", req.Scope.String()),
	))
	state := StateResolving
	defer func() {
		span.SetAttributes(attribute.String("gateway.state", string(state)))
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, string(dErrors.CodeOf(err)))
		}
		span.End()
		g.metrics.ObserveExecution(string(req.Action), string(req.Kind), string(state), time.Since(start))
	}()

	var zero T
	if !req.Principal.Authenticated() {
		state = StateDenied
		return zero, dErrors.New(dErrors.CodeUnauthorized, "authentication required")
	}

	if req.Kind.PatientScoped() && !req.Scope.patientLevel() {
		state = StateDenied
		g.logger.ErrorContext(ctx, "patient resource requested outside a patient scope",
			"request_id", requestcontext.RequestID(ctx),
			"action", string(req.Action),
			"resource_kind", string(req.Kind),
			"scope", req.Scope.String(),
		)
		return zero, dErrors.New(dErrors.CodeInternal, "patient resources require a patient scope")
	}

	now := requestcontext.Now(ctx)
	input, err := g.resolve(ctx, req, now)
	if err != nil {
		return zero, err
	}

	state = StateDeciding
	decision := decide(req, input)
	g.decisionMetrics.RecordDecision(string(decision.Outcome), string(decision.Reason))
	span.SetAttributes(attribute.String("access.reason", string(decision.Reason)))
	if !decision.Granted() {
		state = StateDenied
		g.recordDenial(ctx, req, decision, now)
		return zero, dErrors.New(dErrors.CodeForbidden, "access denied")
	}

	state = StateExecuting
	result, err = op(ctx)
	if err != nil {
		state = StateFailed
		return zero, err
	}

	state = StateAuditing
	g.audit(ctx, req, result)
	state = StateSucceeded
	return result, nil
}

func decide(req Request, in access.Input) access.Decision {
	switch req.Scope.kind {
	case scopePatient, scopeNewPatient:
		return access.Decide(in)
	case scopeAdmin:
		return access.DecideAdministrative(req.Principal)
	default:
		return access.DecideAuthenticated(req.Principal)
	}
}

// resolve gathers the engine input. Patient scopes need the record, the
// event start date and, for non-admins, the principal's assignments.
func (g *Gateway) resolve(ctx context.Context, req Request, now time.Time) (access.Input, error) {
	in := access.Input{Principal: req.Principal, Now: now}

	switch req.Scope.kind {
	case scopePatient:
		meta, err := g.resolvePatient(ctx, req.Scope.patientID)
		if err != nil {
			return in, err
		}
		in.Record = meta
	case scopeNewPatient:
		in.Record = access.RecordMeta{EventID: req.Scope.eventID, CreatedAt: now}
	default:
		return in, nil
	}

	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		ctx, span := g.tracer.Start(egCtx, "gateway.resolve_event_start")
		defer span.End()
		startDate, err := g.resolver.ResolveEventStart(ctx, in.Record.EventID)
		if err != nil {
			return resolutionError(err, "event")
		}
		in.EventStartDate = startDate
		return nil
	})
	if !req.Principal.IsAdmin() {
		eg.Go(func() error {
			ctx, span := g.tracer.Start(egCtx, "gateway.list_assignments")
			defer span.End()
			assignments, err := g.assignments.ListAssignmentsForUser(ctx, req.Principal.ID)
			if err != nil {
				return dErrors.Wrap(err, dErrors.CodeInternal, "failed to load staff assignments")
			}
			in.Assignments = assignments
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return in, err
	}
	return in, nil
}

func (g *Gateway) resolvePatient(ctx context.Context, patientID id.PatientID) (access.RecordMeta, error) {
	ctx, span := g.tracer.Start(ctx, "gateway.resolve_patient")
	defer span.End()

	meta, err := g.resolver.ResolvePatient(ctx, patientID)
	if err != nil {
		return access.RecordMeta{}, resolutionError(err, "patient")
	}
	return meta, nil
}

func resolutionError(err error, what string) error {
	if errors.Is(err, sentinel.ErrNotFound) {
		return dErrors.New(dErrors.CodeNotFound, what+" not found")
	}
	return dErrors.Wrap(err, dErrors.CodeInternal, "failed to resolve "+what)
}

func (g *Gateway) recordDenial(ctx context.Context, req Request, decision access.Decision, now time.Time) {
	resourceID := req.ResourceID
	if resourceID == "" && req.Scope.kind == scopeNewPatient {
		resourceID = req.Scope.eventID.String()
	}

	g.logger.WarnContext(ctx, "access denied",
		"request_id", requestcontext.RequestID(ctx),
		"principal_id", req.Principal.ID.String(),
		"role", string(req.Principal.Role),
		"action", string(req.Action),
		"resource_kind", string(req.Kind),
		"resource_id", resourceID,
		"reason", string(decision.Reason),
	)

	if g.denials == nil {
		return
	}
	g.denials.RecordDenial(ctx, audit.SecurityEvent{
		Timestamp:    now.UTC(),
		PrincipalID:  req.Principal.ID,
		Role:         string(req.Principal.Role),
		Action:       req.Action,
		ResourceKind: req.Kind,
		ResourceID:   resourceID,
		Reason:       string(decision.Reason),
		IP:           requestcontext.ClientIP(ctx),
		RequestID:    requestcontext.RequestID(ctx),
		Severity:     audit.SeverityWarning,
	})
}

// audit appends one entry for a successful action. The append outlives
// cancellation of ctx.
func (g *Gateway) audit(ctx context.Context, req Request, result any) {
	resourceID := req.ResourceID
	if resourceID == "" {
		if identified, ok := result.(Identified); ok {
			resourceID = identified.AuditResourceID()
		}
	}

	entry := audit.Entry{
		ID:            id.NewAuditEntryID(),
		PrincipalID:   req.Principal.ID,
		Action:        req.Action,
		ResourceKind:  req.Kind,
		ResourceID:    resourceID,
		Details:       maps.Clone(req.Details),
		OriginAddress: requestcontext.ClientIP(ctx),
		OriginAgent:   requestcontext.UserAgent(ctx),
		Timestamp:     requestcontext.Now(ctx).UTC().Truncate(audit.TimestampPrecision),
	}

	auditCtx := context.WithoutCancel(ctx)
	err := g.appendEntry(auditCtx, entry)
	if err == nil {
		return
	}

	g.metrics.IncAuditFailures()
	g.logger.ErrorContext(auditCtx, "audit append failed",
		"request_id", requestcontext.RequestID(ctx),
		"entry_id", entry.ID.String(),
		"principal_id", entry.PrincipalID.String(),
		"action", string(entry.Action),
		"resource_kind", string(entry.ResourceKind),
		"resource_id", entry.ResourceID,
		"error", fmt.Errorf("%w: %w", ErrAuditWriteFailed, err),
	)
}

func (g *Gateway) appendEntry(ctx context.Context, entry audit.Entry) error {
	if g.sealer != nil {
		sealed, err := g.sealer.Seal(entry)
		if err != nil {
			return fmt.Errorf("seal: %w", err)
		}
		entry = sealed
	}
	return g.sink.Append(ctx, entry)
}
