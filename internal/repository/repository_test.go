package repository

import (
	"context"
	"sync"
	"testing"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type repoFactory func(t *testing.T) (context.Context, GameRepository)

// testGameRepository checks the behavior every GameRepository must share.
func testGameRepository(t *testing.T, newRepo repoFactory) {
	t.Run("Create_Success", func(t *testing.T) {
		ctx, gameRepo := newRepo(t)

		// Given: a new game
		game := entity.NewGame("123")

		// When: Create is called
		err := gameRepo.Create(ctx, game)

		// Then: the game can be read back
		require.NoError(t, err)

		stored, err := gameRepo.GetByID(ctx, "123")
		require.NoError(t, err)
		assert.Equal(t, game.ID, stored.ID)
		assert.Equal(t, game.Status, stored.Status)
		assert.Equal(t, game.Board, stored.Board)
	})

	t.Run("Create_AlreadyExists", func(t *testing.T) {
		ctx, gameRepo := newRepo(t)

		require.NoError(t, gameRepo.Create(ctx, entity.NewGame("123")))

		// When: the same ID is created twice
		err := gameRepo.Create(ctx, entity.NewGame("123"))

		// Then: ErrGameAlreadyExists is returned
		require.ErrorIs(t, err, apperror.ErrGameAlreadyExists)
	})

	t.Run("GetByID_NotFound", func(t *testing.T) {
		ctx, gameRepo := newRepo(t)

		// When: GetByID is called with non-existent ID
		game, err := gameRepo.GetByID(ctx, "9999999")

		// Then: an ErrGameNotFound error should be returned
		require.ErrorIs(t, err, apperror.ErrGameNotFound)
		assert.Nil(t, game)
	})

	t.Run("Replace_Success", func(t *testing.T) {
		ctx, gameRepo := newRepo(t)

		// Given: a stored game
		require.NoError(t, gameRepo.Create(ctx, entity.NewGame("123")))
		current, err := gameRepo.GetByID(ctx, "123")
		require.NoError(t, err)

		// When: it is replaced by its abandoned successor
		next := current.Abandon()
		err = gameRepo.Replace(ctx, current, next)

		// Then: the successor is stored
		require.NoError(t, err)

		stored, err := gameRepo.GetByID(ctx, "123")
		require.NoError(t, err)
		assert.Equal(t, entity.StatusAbandoned, stored.Status)
		assert.Equal(t, 1, stored.Version)
	})

	t.Run("Replace_Conflict", func(t *testing.T) {
		ctx, gameRepo := newRepo(t)

		// Given: two callers read the same game
		require.NoError(t, gameRepo.Create(ctx, entity.NewGame("123")))
		first, err := gameRepo.GetByID(ctx, "123")
		require.NoError(t, err)
		second, err := gameRepo.GetByID(ctx, "123")
		require.NoError(t, err)

		// When: both try to replace it
		require.NoError(t, gameRepo.Replace(ctx, first, first.Abandon()))
		err = gameRepo.Replace(ctx, second, second.Abandon())

		// Then: the later one is rejected and the first write is kept
		require.ErrorIs(t, err, ErrVersionConflict)

		stored, err := gameRepo.GetByID(ctx, "123")
		require.NoError(t, err)
		assert.Equal(t, 1, stored.Version)
	})

	t.Run("Replace_NotFound", func(t *testing.T) {
		ctx, gameRepo := newRepo(t)

		game := entity.NewGame("123")

		err := gameRepo.Replace(ctx, game, game.Abandon())

		require.ErrorIs(t, err, apperror.ErrGameNotFound)
	})

	t.Run("DeleteByID_Success", func(t *testing.T) {
		ctx, gameRepo := newRepo(t)

		require.NoError(t, gameRepo.Create(ctx, entity.NewGame("123")))

		// When: DeleteByID is called with existing ID
		err := gameRepo.DeleteByID(ctx, "123")

		// Then: the game is gone
		require.NoError(t, err)

		_, err = gameRepo.GetByID(ctx, "123")
		require.ErrorIs(t, err, apperror.ErrGameNotFound)
	})

	t.Run("DeleteByID_NotFound", func(t *testing.T) {
		ctx, gameRepo := newRepo(t)

		err := gameRepo.DeleteByID(ctx, "9999999")

		require.ErrorIs(t, err, apperror.ErrGameNotFound)
	})

	t.Run("List", func(t *testing.T) {
		ctx, gameRepo := newRepo(t)

		// Given: three stored games
		for _, id := range []string{"a", "b", "c"} {
			require.NoError(t, gameRepo.Create(ctx, entity.NewGame(id)))
		}

		// When: the games are listed
		games, err := gameRepo.List(ctx)

		// Then: all of them are returned
		require.NoError(t, err)

		ids := make([]string, 0, len(games))
		for _, game := range games {
			ids = append(ids, game.ID)
		}
		assert.ElementsMatch(t, []string{"a", "b", "c"}, ids)
	})

	t.Run("List_Empty", func(t *testing.T) {
		ctx, gameRepo := newRepo(t)

		games, err := gameRepo.List(ctx)

		require.NoError(t, err)
		assert.Empty(t, games)
	})

	t.Run("Concurrent replaces keep exactly one winner", func(t *testing.T) {
		ctx, gameRepo := newRepo(t)

		require.NoError(t, gameRepo.Create(ctx, entity.NewGame("123")))
		current, err := gameRepo.GetByID(ctx, "123")
		require.NoError(t, err)

		const writers = 8

		var (
			wg        sync.WaitGroup
			mu        sync.Mutex
			succeeded int
		)

		for n := 0; n < writers; n++ {
			wg.Add(1)
			go func() {
				defer wg.Done()

				if err := gameRepo.Replace(ctx, current, current.Abandon()); err == nil {
					mu.Lock()
					succeeded++
					mu.Unlock()
				}
			}()
		}
		wg.Wait()

		assert.Equal(t, 1, succeeded)
	})
}
