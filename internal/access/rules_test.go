package access

import (
	"math/rand/v2"
	"testing"
	"time"

	id "eventcare/pkg/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ts(s string) time.Time {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		panic(err)
	}
	return t
}

type fixture struct {
	emt     Principal
	admin   Principal
	eventE1 id.EventID
	start   time.Time
	created time.Time
}

func newFixture() fixture {
	return fixture{
		emt:     Principal{ID: id.NewUserID(), Role: RoleEMT},
		admin:   Principal{ID: id.NewUserID(), Role: RoleAdmin},
		eventE1: id.NewEventID(),
		start:   ts("2024-06-01T00:00:00Z"),
		created: ts("2024-06-01T09:00:00Z"),
	}
}

func (f fixture) input(p Principal, assigned bool, now time.Time) Input {
	in := Input{
		Principal:      p,
		Record:         RecordMeta{EventID: f.eventE1, CreatedAt: f.created},
		EventStartDate: f.start,
		Now:            now,
	}
	if assigned {
		in.Assignments = []StaffAssignment{{UserID: p.ID, EventID: f.eventE1, Role: "medic"}}
	}
	return in
}

func TestDecide_Scenarios(t *testing.T) {
	f := newFixture()

	t.Run("A: past both windows is denied", func(t *testing.T) {
		// Event started the previous UTC day, so only recency could grant.
		a := f
		a.start = ts("2024-05-31T00:00:00Z")
		d := Decide(a.input(a.emt, true, ts("2024-06-03T10:00:00Z")))
		assert.False(t, d.Granted())
		assert.Equal(t, ReasonOutsideAccessWindow, d.Reason)
	})

	t.Run("B: same day as creation is granted", func(t *testing.T) {
		d := Decide(f.input(f.emt, true, ts("2024-06-01T23:00:00Z")))
		assert.True(t, d.Granted())
		assert.Equal(t, ReasonWithinRecencyWindow, d.Reason)
	})

	t.Run("C: next morning is granted", func(t *testing.T) {
		d := Decide(f.input(f.emt, true, ts("2024-06-02T08:00:00Z")))
		assert.True(t, d.Granted())
	})

	t.Run("C: past the recency window but created on event start date", func(t *testing.T) {
		d := Decide(f.input(f.emt, true, ts("2024-06-02T10:00:00Z")))
		assert.True(t, d.Granted())
		assert.Equal(t, ReasonSameDayAsEventStart, d.Reason)
	})

	t.Run("D: admin without assignment is granted", func(t *testing.T) {
		d := Decide(f.input(f.admin, false, ts("2030-01-01T00:00:00Z")))
		assert.True(t, d.Granted())
		assert.Equal(t, ReasonAdminBypass, d.Reason)
	})

	t.Run("E: unassigned EMT inside recency window is denied", func(t *testing.T) {
		d := Decide(f.input(f.emt, false, ts("2024-06-01T10:00:00Z")))
		assert.False(t, d.Granted())
		assert.Equal(t, ReasonNotAssigned, d.Reason)
	})
}

func TestDecide_Boundaries(t *testing.T) {
	f := newFixture()
	// Event started the day before the record so only recency can grant.
	f.start = ts("2024-05-31T00:00:00Z")

	t.Run("exactly 24h is inside the window", func(t *testing.T) {
		d := Decide(f.input(f.emt, true, f.created.Add(RecencyWindow)))
		assert.True(t, d.Granted())
		assert.Equal(t, ReasonWithinRecencyWindow, d.Reason)
	})

	t.Run("one nanosecond past 24h is outside", func(t *testing.T) {
		d := Decide(f.input(f.emt, true, f.created.Add(RecencyWindow+time.Nanosecond)))
		assert.False(t, d.Granted())
	})

	t.Run("assignment to a different event does not count", func(t *testing.T) {
		in := f.input(f.emt, false, f.created)
		in.Assignments = []StaffAssignment{{UserID: f.emt.ID, EventID: id.NewEventID()}}
		assert.Equal(t, ReasonNotAssigned, Decide(in).Reason)
	})

	t.Run("another user's assignment does not count", func(t *testing.T) {
		in := f.input(f.emt, false, f.created)
		in.Assignments = []StaffAssignment{{UserID: id.NewUserID(), EventID: f.eventE1}}
		assert.Equal(t, ReasonNotAssigned, Decide(in).Reason)
	})

	t.Run("record created in the future relative to now is recent", func(t *testing.T) {
		d := Decide(f.input(f.emt, true, f.created.Add(-time.Hour)))
		assert.True(t, d.Granted())
	})
}

func TestDecide_CalendarDayUsesUTC(t *testing.T) {
	f := newFixture()
	plus10 := time.FixedZone("AEST", 10*3600)
	minus7 := time.FixedZone("PDT", -7*3600)

	// 2024-06-01T23:30Z expressed in UTC+10 reads as June 2nd locally.
	f.created = time.Date(2024, 6, 2, 9, 30, 0, 0, plus10)
	// 2024-06-01T05:00Z expressed in UTC-7 reads as May 31st locally.
	f.start = time.Date(2024, 5, 31, 22, 0, 0, 0, minus7)

	d := Decide(f.input(f.emt, true, ts("2024-06-05T00:00:00Z")))
	assert.True(t, d.Granted())
	assert.Equal(t, ReasonSameDayAsEventStart, d.Reason)

	// Local dates match but UTC dates differ: no grant.
	f.created = time.Date(2024, 6, 1, 1, 0, 0, 0, plus10) // 2024-05-31T15:00Z
	f.start = time.Date(2024, 6, 1, 20, 0, 0, 0, minus7)  // 2024-06-02T03:00Z
	d = Decide(f.input(f.emt, true, ts("2024-06-05T00:00:00Z")))
	assert.False(t, d.Granted())
}

func randomTime(r *rand.Rand) time.Time {
	base := ts("2024-01-01T00:00:00Z")
	return base.Add(time.Duration(r.Int64N(int64(90 * 24 * time.Hour))))
}

func TestDecide_Properties(t *testing.T) {
	r := rand.New(rand.NewPCG(7, 11))
	eventID := id.NewEventID()
	const rounds = 2000

	t.Run("admins are always granted", func(t *testing.T) {
		for range rounds {
			d := Decide(Input{
				Principal:      Principal{ID: id.NewUserID(), Role: RoleAdmin},
				Record:         RecordMeta{EventID: eventID, CreatedAt: randomTime(r)},
				EventStartDate: randomTime(r),
				Now:            randomTime(r),
			})
			require.True(t, d.Granted())
		}
	})

	t.Run("unassigned principals are always denied", func(t *testing.T) {
		for range rounds {
			d := Decide(Input{
				Principal:      Principal{ID: id.NewUserID(), Role: RoleEMT},
				Record:         RecordMeta{EventID: eventID, CreatedAt: randomTime(r)},
				EventStartDate: randomTime(r),
				Now:            randomTime(r),
			})
			require.False(t, d.Granted())
		}
	})

	t.Run("assigned principals are granted iff either window holds", func(t *testing.T) {
		p := Principal{ID: id.NewUserID(), Role: RoleEMT}
		assignments := []StaffAssignment{{UserID: p.ID, EventID: eventID}}
		for range rounds {
			created, start, now := randomTime(r), randomTime(r), randomTime(r)
			want := !created.Before(now.Add(-24*time.Hour)) ||
				created.UTC().Format(time.DateOnly) == start.UTC().Format(time.DateOnly)
			d := Decide(Input{
				Principal:      p,
				Assignments:    assignments,
				Record:         RecordMeta{EventID: eventID, CreatedAt: created},
				EventStartDate: start,
				Now:            now,
			})
			require.Equal(t, want, d.Granted(), "created=%s start=%s now=%s", created, start, now)
		}
	})

	t.Run("moving now earlier never revokes a grant", func(t *testing.T) {
		p := Principal{ID: id.NewUserID(), Role: RoleEMT}
		assignments := []StaffAssignment{{UserID: p.ID, EventID: eventID}}
		for range rounds {
			in := Input{
				Principal:      p,
				Assignments:    assignments,
				Record:         RecordMeta{EventID: eventID, CreatedAt: randomTime(r)},
				EventStartDate: randomTime(r),
				Now:            randomTime(r),
			}
			if !Decide(in).Granted() {
				continue
			}
			in.Now = in.Now.Add(-time.Duration(r.Int64N(int64(30 * 24 * time.Hour))))
			require.True(t, Decide(in).Granted())
		}
	})

	t.Run("identical inputs give identical decisions", func(t *testing.T) {
		p := Principal{ID: id.NewUserID(), Role: RoleEMT}
		for range rounds {
			in := Input{
				Principal:      p,
				Assignments:    []StaffAssignment{{UserID: p.ID, EventID: eventID}},
				Record:         RecordMeta{EventID: eventID, CreatedAt: randomTime(r)},
				EventStartDate: randomTime(r),
				Now:            randomTime(r),
			}
			require.Equal(t, Decide(in), Decide(in))
		}
	})
}

func TestDecideAdministrative(t *testing.T) {
	assert.True(t, DecideAdministrative(Principal{ID: id.NewUserID(), Role: RoleAdmin}).Granted())

	d := DecideAdministrative(Principal{ID: id.NewUserID(), Role: RoleEMT})
	assert.False(t, d.Granted())
	assert.Equal(t, ReasonAdminRequired, d.Reason)
}

func TestDecideAuthenticated(t *testing.T) {
	assert.True(t, DecideAuthenticated(Principal{ID: id.NewUserID(), Role: RoleEMT}).Granted())
	assert.False(t, DecideAuthenticated(Principal{Role: RoleEMT}).Granted())
	assert.False(t, DecideAuthenticated(Principal{ID: id.NewUserID(), Role: "GUEST"}).Granted())
}

func TestParseRole(t *testing.T) {
	r, err := ParseRole("admin")
	require.NoError(t, err)
	assert.Equal(t, RoleAdmin, r)

	_, err = ParseRole("paramedic")
	assert.Error(t, err)
}
