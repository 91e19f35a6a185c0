package service

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eventcare/internal/access"
	"eventcare/internal/gateway"
	"eventcare/internal/records"
	recordmemory "eventcare/internal/records/store/memory"
	id "eventcare/pkg/domain"
	dErrors "eventcare/pkg/domain-errors"
	audit "eventcare/pkg/platform/audit"
	"eventcare/pkg/platform/audit/publishers/security"
	auditmemory "eventcare/pkg/platform/audit/store/memory"
	"eventcare/pkg/requestcontext"
)

const firefox = "Mozilla/5.0 (Windows NT 10.0; Win64; x64; rv:109.0) Gecko/20100101 Firefox/115.0"

type fixture struct {
	svc     *Service
	trail   *auditmemory.InMemoryStore
	denials *security.RingBuffer
	sealer  *audit.Sealer
	admin   access.Principal
	emt     access.Principal
	ctx     context.Context
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	sealer, err := audit.NewSealer([]byte("review-test-key"))
	require.NoError(t, err)

	f := &fixture{
		trail:   auditmemory.NewInMemoryStore(),
		denials: security.NewRingBuffer(8),
		sealer:  sealer,
		admin:   access.Principal{ID: id.NewUserID(), Role: access.RoleAdmin},
		emt:     access.Principal{ID: id.NewUserID(), Role: access.RoleEMT},
		ctx:     requestcontext.WithTime(context.Background(), time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)),
	}
	rs := recordmemory.New()
	resolver := records.NewResolver(rs.Events, rs.Patients, rs.Assignments)
	g, err := gateway.New(resolver, resolver, f.trail,
		gateway.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
		gateway.WithDenialRecorder(f.denials),
		gateway.WithSealer(sealer),
	)
	require.NoError(t, err)
	f.svc, err = New(g, f.trail, f.denials, WithSealer(sealer))
	require.NoError(t, err)
	return f
}

func (f *fixture) seed(t *testing.T, resourceID string, action audit.Action) audit.Entry {
	t.Helper()
	e, err := f.sealer.Seal(audit.Entry{
		ID:           id.NewAuditEntryID(),
		PrincipalID:  f.emt.ID,
		Action:       action,
		ResourceKind: audit.KindPatient,
		ResourceID:   resourceID,
		OriginAgent:  firefox,
		Timestamp:    time.Date(2024, 6, 1, 10, 0, 0, 0, time.UTC),
	})
	require.NoError(t, err)
	require.NoError(t, f.trail.Append(context.Background(), e))
	return e
}

func TestQueryValidate(t *testing.T) {
	assert.Error(t, Query{}.Validate())
	assert.Error(t, Query{ResourceID: "x", PrincipalID: id.NewUserID()}.Validate())
	assert.NoError(t, Query{ResourceID: "x"}.Validate())
	assert.NoError(t, Query{Actions: []audit.Action{audit.ActionDelete}}.Validate())
}

func TestListEntriesByResource(t *testing.T) {
	f := newFixture(t)
	patientID := id.NewPatientID().String()
	f.seed(t, patientID, audit.ActionRead)
	f.seed(t, "other", audit.ActionRead)

	views, err := f.svc.ListEntries(f.ctx, f.admin, Query{ResourceID: patientID})
	require.NoError(t, err)
	require.Len(t, views, 1)
	assert.True(t, views[0].Verified)
	assert.Equal(t, "Firefox", views[0].Agent.Browser)
	assert.False(t, views[0].Agent.Mobile)

	// the review itself is on the trail
	mine, err := f.trail.ListByPrincipal(context.Background(), f.admin.ID, 0)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, audit.ActionRead, mine[0].Action)
	assert.Equal(t, audit.KindUser, mine[0].ResourceKind)
	assert.Equal(t, patientID, mine[0].Details["resource_id"])
}

func TestTamperedEntryIsNotVerified(t *testing.T) {
	f := newFixture(t)
	e := f.seed(t, "r1", audit.ActionUpdate)
	e.ID = id.NewAuditEntryID()
	e.Details = map[string]string{"fields": "name"}
	require.NoError(t, f.trail.Append(context.Background(), e))

	views, err := f.svc.ListEntries(f.ctx, f.admin, Query{Actions: []audit.Action{audit.ActionUpdate}})
	require.NoError(t, err)
	require.Len(t, views, 2)
	verified := 0
	for _, v := range views {
		if v.Verified {
			verified++
		}
	}
	assert.Equal(t, 1, verified)
}

func TestReviewIsAdminOnly(t *testing.T) {
	f := newFixture(t)

	_, err := f.svc.ListEntries(f.ctx, f.emt, Query{PrincipalID: f.emt.ID})
	assert.True(t, dErrors.HasCode(err, dErrors.CodeForbidden))

	_, err = f.svc.ListDenials(f.ctx, f.emt, 10)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeForbidden))

	denials, err := f.svc.ListDenials(f.ctx, f.admin, 10)
	require.NoError(t, err)
	require.Len(t, denials, 2)
	assert.Equal(t, f.emt.ID, denials[0].PrincipalID)
	assert.Equal(t, "admin_required", denials[0].Reason)
}

func TestInvalidQueryNeverReachesGateway(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.ListEntries(f.ctx, f.admin, Query{})
	assert.True(t, dErrors.HasCode(err, dErrors.CodeValidation))
	assert.Equal(t, 0, f.trail.Len())
}

func TestClampLimit(t *testing.T) {
	assert.Equal(t, DefaultLimit, clampLimit(0))
	assert.Equal(t, MaxLimit, clampLimit(MaxLimit+1))
	assert.Equal(t, 5, clampLimit(5))
}
