package main

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"

	accessmetrics "eventcare/internal/access/metrics"
	auditloghandler "eventcare/internal/auditlog/handler"
	auditlogservice "eventcare/internal/auditlog/service"
	"eventcare/internal/gateway"
	gatewaymetrics "eventcare/internal/gateway/metrics"
	patienthandler "eventcare/internal/patient/handler"
	patientservice "eventcare/internal/patient/service"
	"eventcare/internal/platform/config"
	platformkafka "eventcare/internal/platform/kafka"
	"eventcare/internal/platform/metrics"
	"eventcare/internal/platform/postgres"
	platformredis "eventcare/internal/platform/redis"
	"eventcare/internal/records"
	"eventcare/internal/records/store/eventcache"
	recordmemory "eventcare/internal/records/store/memory"
	recordpostgres "eventcare/internal/records/store/postgres"
	"eventcare/internal/session"
	sessionhandler "eventcare/internal/session/handler"
	"eventcare/internal/session/revocation"
	staffinghandler "eventcare/internal/staffing/handler"
	staffingservice "eventcare/internal/staffing/service"
	id "eventcare/pkg/domain"
	audit "eventcare/pkg/platform/audit"
	"eventcare/pkg/platform/audit/publishers/async"
	"eventcare/pkg/platform/audit/publishers/breaker"
	"eventcare/pkg/platform/audit/publishers/compliance"
	auditkafka "eventcare/pkg/platform/audit/publishers/kafka"
	"eventcare/pkg/platform/audit/publishers/security"
	auditmemory "eventcare/pkg/platform/audit/store/memory"
	auditpostgres "eventcare/pkg/platform/audit/store/postgres"
	auditsqlite "eventcare/pkg/platform/audit/store/sqlite"
	"eventcare/pkg/platform/httputil"
	authmw "eventcare/pkg/platform/middleware/auth"
	"eventcare/pkg/platform/middleware/metadata"
	"eventcare/pkg/platform/middleware/request"
	"eventcare/pkg/platform/middleware/requesttime"
)

type application struct {
	router   http.Handler
	sessions *session.Service
	closers  []func(context.Context)
}

func (a *application) onClose(fn func(context.Context)) {
	a.closers = append(a.closers, fn)
}

// close runs closers in reverse registration order.
func (a *application) close(ctx context.Context) {
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i](ctx)
	}
}

type recordStores struct {
	events      records.EventStore
	patients    records.PatientStore
	vitals      records.VitalStore
	treatments  records.TreatmentStore
	assignments records.AssignmentStore
}

type healthCheck func(ctx context.Context) error

func build(ctx context.Context, cfg config.Server, log *slog.Logger) (app *application, err error) {
	app = &application{}
	defer func() {
		if err != nil {
			app.close(context.Background())
		}
	}()
	checks := map[string]healthCheck{}

	rdb, err := platformredis.New(ctx, cfg.Redis)
	if err != nil {
		return nil, err
	}
	if rdb != nil {
		app.onClose(func(context.Context) { _ = rdb.Close() })
		checks["redis"] = rdb.Health
	}

	stores, err := buildRecords(ctx, app, cfg, checks)
	if err != nil {
		return nil, err
	}

	resolver := records.NewResolver(stores.events, stores.patients, stores.assignments)
	var gatewayResolver gateway.Resolver = resolver
	if rdb != nil {
		gatewayResolver = cachedResolver{
			Resolver: resolver,
			starts:   eventcache.New(rdb, resolver, eventcache.WithLogger(log), eventcache.WithTTL(cfg.Cache.EventTTL)),
		}
	}

	var sealer *audit.Sealer
	if cfg.Audit.SealKey != "" {
		if sealer, err = audit.NewSealer([]byte(cfg.Audit.SealKey)); err != nil {
			return nil, err
		}
	}

	sink, trail, err := buildAudit(ctx, app, cfg, log)
	if err != nil {
		return nil, err
	}

	denials := security.NewRingBuffer(cfg.Audit.DenialBufferSize)
	g, err := gateway.New(gatewayResolver, resolver, sink,
		gateway.WithLogger(log),
		gateway.WithMetrics(gatewaymetrics.New()),
		gateway.WithDecisionMetrics(accessmetrics.New()),
		gateway.WithDenialRecorder(denials),
		gateway.WithSealer(sealer),
		gateway.WithTracer(otel.Tracer("eventcare/gateway")),
	)
	if err != nil {
		return nil, err
	}

	patients, err := patientservice.New(g, stores.patients, stores.vitals, stores.treatments, patientservice.WithLogger(log))
	if err != nil {
		return nil, err
	}
	staffing, err := staffingservice.New(g, stores.events, stores.assignments, staffingservice.WithLogger(log))
	if err != nil {
		return nil, err
	}
	review, err := auditlogservice.New(g, trail, denials, auditlogservice.WithSealer(sealer), auditlogservice.WithLogger(log))
	if err != nil {
		return nil, err
	}

	var trl session.Revoker = revocation.NewInMemoryTRL()
	if rdb != nil {
		trl = revocation.NewRedisTRL(rdb)
	}
	tokens := session.NewTokenService(cfg.JWTSigningKey, cfg.JWTIssuer, cfg.TokenTTL)
	app.sessions, err = session.NewService(g, tokens, trl, session.WithLogger(log))
	if err != nil {
		return nil, err
	}

	app.router = newRouter(log, metrics.New(), checks, authmw.RequireAuth(tokens, trl, log),
		patienthandler.New(patients, log),
		staffinghandler.New(staffing, log),
		auditloghandler.New(review, log),
		sessionhandler.New(app.sessions, log),
	)
	return app, nil
}

func buildRecords(ctx context.Context, app *application, cfg config.Server, checks map[string]healthCheck) (recordStores, error) {
	if cfg.Postgres.URL == "" {
		st := recordmemory.New()
		return recordStores{st.Events, st.Patients, st.Vitals, st.Treatments, st.Assignments}, nil
	}

	db, err := postgres.Open(ctx, cfg.Postgres)
	if err != nil {
		return recordStores{}, err
	}
	err = postgres.Migrate(ctx, db)
	_ = db.Close()
	if err != nil {
		return recordStores{}, err
	}

	pool, err := postgres.OpenPool(ctx, cfg.Postgres)
	if err != nil {
		return recordStores{}, err
	}
	app.onClose(func(context.Context) { pool.Close() })
	checks["postgres"] = pool.Ping

	st := recordpostgres.New(pool)
	return recordStores{st.Events, st.Patients, st.Vitals, st.Treatments, st.Assignments}, nil
}

// buildAudit returns the sink the gateway writes to and the store review
// queries read from. With the kafka backend the two differ: entries reach
// the store through cmd/audit-consumer.
func buildAudit(ctx context.Context, app *application, cfg config.Server, log *slog.Logger) (audit.Sink, audit.Store, error) {
	var (
		trail audit.Store
		err   error
	)
	switch cfg.Audit.Backend {
	case config.AuditBackendKafka:
		cl, err := platformkafka.NewClient(ctx, platformkafka.Config{Brokers: cfg.Kafka.Brokers, ClientID: cfg.Kafka.ClientID})
		if err != nil {
			return nil, nil, err
		}
		app.onClose(func(context.Context) { cl.Close() })
		if err := platformkafka.EnsureTopics(ctx, cl, 3, 1, auditkafka.Topics(cfg.Kafka.TopicPrefix)...); err != nil {
			return nil, nil, err
		}
		if trail, err = openReviewStore(ctx, app, cfg); err != nil {
			return nil, nil, err
		}
		return queued(app, cfg, log, auditkafka.New(cl, cfg.Kafka.TopicPrefix)), trail, nil
	case config.AuditBackendPostgres:
		trail, err = openPostgresTrail(ctx, app, cfg)
	case config.AuditBackendSQLite:
		trail, err = openSQLiteTrail(ctx, app, cfg)
	default:
		trail = auditmemory.NewInMemoryStore()
	}
	if err != nil {
		return nil, nil, err
	}
	persist := compliance.New(trail, compliance.WithLogger(log), compliance.WithMetrics(compliance.NewMetrics()))
	return queued(app, cfg, log, persist), trail, nil
}

// queued puts the circuit breaker and the bounded async queue in front of sink.
func queued(app *application, cfg config.Server, log *slog.Logger, sink audit.Sink) audit.Sink {
	guarded := breaker.New(sink,
		breaker.WithLogger(log),
		breaker.WithMetrics(breaker.NewMetrics()),
		breaker.WithBreaker(breaker.NewCircuitBreaker(cfg.Audit.BreakerThreshold, cfg.Audit.BreakerCooldown)),
	)
	pub := async.New(guarded,
		async.WithQueueSize(cfg.Audit.QueueSize),
		async.WithLogger(log),
		async.WithMetrics(async.NewMetrics()),
	)
	app.onClose(func(ctx context.Context) {
		if err := pub.Close(ctx); err != nil {
			log.Error("audit queue did not drain", "error", err, "pending", pub.Len())
		}
	})
	return pub
}

func openReviewStore(ctx context.Context, app *application, cfg config.Server) (audit.Store, error) {
	if cfg.Postgres.URL != "" {
		return openPostgresTrail(ctx, app, cfg)
	}
	return openSQLiteTrail(ctx, app, cfg)
}

func openPostgresTrail(ctx context.Context, app *application, cfg config.Server) (audit.Store, error) {
	db, err := postgres.Open(ctx, cfg.Postgres)
	if err != nil {
		return nil, err
	}
	app.onClose(func(context.Context) { _ = db.Close() })
	if err := postgres.Migrate(ctx, db); err != nil {
		return nil, err
	}
	return auditpostgres.New(db), nil
}

func openSQLiteTrail(ctx context.Context, app *application, cfg config.Server) (audit.Store, error) {
	db, err := auditsqlite.Open(ctx, auditsqlite.Config{Path: cfg.Audit.SQLitePath})
	if err != nil {
		return nil, err
	}
	app.onClose(func(context.Context) { _ = db.Close() })
	if err := auditsqlite.Migrate(ctx, db); err != nil {
		return nil, err
	}
	writer := auditsqlite.NewWriter(db)
	app.onClose(func(context.Context) { writer.Close() })
	return auditsqlite.NewStore(db, writer), nil
}

// cachedResolver serves event start dates from the read-through cache.
type cachedResolver struct {
	*records.Resolver
	starts *eventcache.Cache
}

func (r cachedResolver) ResolveEventStart(ctx context.Context, eventID id.EventID) (time.Time, error) {
	return r.starts.ResolveEventStart(ctx, eventID)
}

type registrar interface {
	Register(r chi.Router)
}

func newRouter(log *slog.Logger, m *metrics.Metrics, checks map[string]healthCheck, auth func(http.Handler) http.Handler, handlers ...registrar) http.Handler {
	r := chi.NewRouter()
	r.Use(request.RequestID)
	r.Use(requesttime.Middleware)
	r.Use(metadata.ClientMetadata)
	r.Use(m.Middleware)

	r.Get("/healthz", func(w http.ResponseWriter, req *http.Request) {
		status := map[string]string{}
		code := http.StatusOK
		for name, check := range checks {
			ctx, cancel := context.WithTimeout(req.Context(), 2*time.Second)
			if err := check(ctx); err != nil {
				log.WarnContext(req.Context(), "health check failed", "dependency", name, "error", err)
				status[name] = "down"
				code = http.StatusServiceUnavailable
			} else {
				status[name] = "up"
			}
			cancel()
		}
		httputil.WriteJSON(w, code, map[string]any{"status": statusText(code), "dependencies": status})
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Group(func(r chi.Router) {
		r.Use(auth)
		for _, h := range handlers {
			h.Register(r)
		}
	})
	return r
}

func statusText(code int) string {
	if code == http.StatusOK {
		return "ok"
	}
	return "degraded"
}
