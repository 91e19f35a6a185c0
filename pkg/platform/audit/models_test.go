package audit

import (
	"testing"
	"time"

	id "eventcare/pkg/domain"
	dErrors "eventcare/pkg/domain-errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAction(t *testing.T) {
	a, err := ParseAction(" read ")
	require.NoError(t, err)
	assert.Equal(t, ActionRead, a)

	_, err = ParseAction("PURGE")
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeInvalidInput))
}

func TestParseResourceKind(t *testing.T) {
	k, err := ParseResourceKind("treatment")
	require.NoError(t, err)
	assert.Equal(t, KindTreatment, k)
	assert.True(t, k.PatientScoped())
	assert.False(t, KindEvent.PatientScoped())

	_, err = ParseResourceKind("")
	require.Error(t, err)
}

func TestActionCategory(t *testing.T) {
	assert.Equal(t, CategorySecurity, ActionLogin.Category())
	assert.Equal(t, CategorySecurity, ActionLogout.Category())
	for _, a := range []Action{ActionCreate, ActionRead, ActionUpdate, ActionDelete} {
		assert.Equal(t, CategoryCompliance, a.Category(), a)
	}
	assert.Equal(t, CategoryOperations, Action("HEARTBEAT").Category())
}

func TestEntryValidate(t *testing.T) {
	valid := Entry{
		ID:           id.NewAuditEntryID(),
		PrincipalID:  id.NewUserID(),
		Action:       ActionCreate,
		ResourceKind: KindPatient,
		Timestamp:    time.Now(),
	}
	require.NoError(t, valid.Validate())

	cases := map[string]func(e *Entry){
		"missing id":        func(e *Entry) { e.ID = id.AuditEntryID{} },
		"missing principal": func(e *Entry) { e.PrincipalID = id.UserID{} },
		"unknown action":    func(e *Entry) { e.Action = "ARCHIVE" },
		"unknown kind":      func(e *Entry) { e.ResourceKind = "INVOICE" },
		"zero timestamp":    func(e *Entry) { e.Timestamp = time.Time{} },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			e := valid
			mutate(&e)
			err := e.Validate()
			require.Error(t, err)
			assert.True(t, dErrors.HasCode(err, dErrors.CodeInvariantViolation))
		})
	}
}
