package domainerrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCodeOf(t *testing.T) {
	t.Run("nil error has no code", func(t *testing.T) {
		assert.Equal(t, Code(""), CodeOf(nil))
	})

	t.Run("plain error is internal", func(t *testing.T) {
		assert.Equal(t, CodeInternal, CodeOf(errors.New("boom")))
	})

	t.Run("code survives fmt wrapping", func(t *testing.T) {
		err := fmt.Errorf("load patient: %w", New(CodeNotFound, "patient not found"))
		assert.True(t, HasCode(err, CodeNotFound))
		assert.Equal(t, "patient not found", MessageOf(err))
	})

	t.Run("outermost code wins", func(t *testing.T) {
		inner := New(CodeNotFound, "missing")
		err := Wrap(inner, CodeInternal, "lookup failed")
		assert.True(t, Is(err, CodeInternal))
		assert.False(t, HasCode(err, CodeNotFound))
	})
}

func TestWrap_PreservesCause(t *testing.T) {
	cause := errors.New("connection reset")
	err := Wrap(cause, CodeInternal, "failed to save")

	require.ErrorIs(t, err, cause)
	assert.Equal(t, "failed to save: connection reset", err.Error())
}
