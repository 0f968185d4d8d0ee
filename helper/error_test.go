package helper

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewError(t *testing.T) {
	t.Run("Valid call NewError", func(t *testing.T) {
		cause := errors.New("connection refused")
		err := NewError("open session", cause)
		require.Error(t, err)
		assert.Equal(t, "open session: connection refused", err.Error())
		assert.ErrorIs(t, err, cause, "Expected the original error to stay reachable")
	})

	t.Run("NewError with nil error returns nil", func(t *testing.T) {
		assert.NoError(t, NewError("noop", nil))
	})

	t.Run("NewError nests operations", func(t *testing.T) {
		cause := errors.New("boom")
		err := NewError("outer", NewError("inner", cause))
		assert.Equal(t, "outer: inner: boom", err.Error())

		var helperErr *Error
		require.True(t, errors.As(err, &helperErr))
		assert.Equal(t, "outer", helperErr.Operation)
	})
}
