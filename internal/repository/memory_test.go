package repository

import (
	"context"
	"testing"
)

func TestMemoryGameRepository(t *testing.T) {
	testGameRepository(t, func(t *testing.T) (context.Context, GameRepository) {
		t.Helper()

		return context.Background(), NewMemoryGameRepository()
	})
}
