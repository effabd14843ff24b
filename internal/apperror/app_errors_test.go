package apperror

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestError_Kinds(t *testing.T) {
	t.Run("Concrete errors match their kind", func(t *testing.T) {
		assert.ErrorIs(t, ErrInvalidMove, ErrInvalidArgument)
		assert.ErrorIs(t, ErrGameFinished, ErrIllegalState)
		assert.ErrorIs(t, ErrNoAvailableMoves, ErrIllegalState)
		assert.ErrorIs(t, ErrConcurrentUpdate, ErrIllegalState)
		assert.ErrorIs(t, ErrGameNotFound, ErrNotFound)
	})

	t.Run("Wrapped errors keep both the concrete error and the kind", func(t *testing.T) {
		// Given: a wrapped invalid move error
		err := fmt.Errorf("failed make turn: %w", ErrInvalidMove)

		// Then: both sentinels match and the message is preserved
		assert.ErrorIs(t, err, ErrInvalidMove)
		assert.ErrorIs(t, err, ErrInvalidArgument)
		assert.NotErrorIs(t, err, ErrIllegalState)
		assert.Equal(t, "failed make turn: invalid move", err.Error())
	})
}

func TestCode(t *testing.T) {
	tests := []struct {
		err      error
		expected string
	}{
		{fmt.Errorf("wrap: %w", ErrInvalidMove), "invalid_argument"},
		{ErrGameFinished, "illegal_state"},
		{ErrConcurrentUpdate, "illegal_state"},
		{fmt.Errorf("wrap: %w", ErrGameNotFound), "not_found"},
		{errors.New("redis down"), "internal"},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			assert.Equal(t, tt.expected, Code(tt.err))
		})
	}
}
