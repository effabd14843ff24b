package repository

import (
	"context"
	"sync"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
)

// memoryGame keeps games in process memory. Each ID is swapped as a unit,
// there is no lock shared by all games.
type memoryGame struct {
	games sync.Map // id -> *entity.Game
}

func NewMemoryGameRepository() GameRepository {
	return &memoryGame{}
}

func (that *memoryGame) Create(_ context.Context, game *entity.Game) error {
	if _, loaded := that.games.LoadOrStore(game.ID, game); loaded {
		return apperror.ErrGameAlreadyExists
	}

	return nil
}

func (that *memoryGame) GetByID(_ context.Context, id string) (*entity.Game, error) {
	value, ok := that.games.Load(id)
	if !ok {
		return nil, apperror.ErrGameNotFound
	}

	return value.(*entity.Game), nil //nolint: forcetypeassert // only games are stored
}

func (that *memoryGame) Replace(_ context.Context, current, next *entity.Game) error {
	if that.games.CompareAndSwap(current.ID, current, next) {
		return nil
	}

	if _, ok := that.games.Load(current.ID); !ok {
		return apperror.ErrGameNotFound
	}

	return ErrVersionConflict
}

func (that *memoryGame) DeleteByID(_ context.Context, id string) error {
	if _, loaded := that.games.LoadAndDelete(id); !loaded {
		return apperror.ErrGameNotFound
	}

	return nil
}

func (that *memoryGame) List(_ context.Context) ([]*entity.Game, error) {
	var games []*entity.Game

	that.games.Range(func(_, value any) bool {
		games = append(games, value.(*entity.Game)) //nolint: forcetypeassert // only games are stored
		return true
	})

	return games, nil
}
