package domainerrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHasCode(t *testing.T) {
	t.Run("direct", func(t *testing.T) {
		err := New(CodeNotFound, "Employee not found")
		assert.True(t, HasCode(err, CodeNotFound))
		assert.False(t, HasCode(err, CodeInvalidID))
	})

	t.Run("through wrap chain", func(t *testing.T) {
		cause := New(CodeNotFound, "Policy not found")
		err := Wrap(cause, CodeInternal, "assign failed")
		assert.True(t, HasCode(err, CodeInternal))
		assert.True(t, HasCode(err, CodeNotFound))
	})

	t.Run("through fmt.Errorf wrapping", func(t *testing.T) {
		err := fmt.Errorf("handler: %w", New(CodeDuplicateEmail, "Employee with this email already exists"))
		assert.True(t, HasCode(err, CodeDuplicateEmail))
	})

	t.Run("plain error has no code", func(t *testing.T) {
		assert.False(t, HasCode(errors.New("boom"), CodeInternal))
	})
}

func TestCodeOf(t *testing.T) {
	assert.Equal(t, CodeNotFound, CodeOf(New(CodeNotFound, "x")))
	assert.Equal(t, CodeInternal, CodeOf(errors.New("uncoded")))
	// Outermost code wins when wrapped.
	assert.Equal(t, CodeInternal, CodeOf(Wrap(New(CodeNotFound, "x"), CodeInternal, "y")))
}

func TestWrapPreservesCause(t *testing.T) {
	cause := errors.New("connection reset")
	err := Wrap(cause, CodeInternal, "store unreachable")
	require.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "connection reset")
}

func TestNewValidation(t *testing.T) {
	err := NewValidation([]FieldError{{Field: "email", Message: "must be a valid email address"}})
	assert.True(t, HasCode(err, CodeValidation))
	assert.Equal(t, "Validation error", MessageOf(err))
	fields := FieldsOf(err)
	require.Len(t, fields, 1)
	assert.Equal(t, "email", fields[0].Field)
}
