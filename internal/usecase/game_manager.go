package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
	"github.com/rocketscienceinc/tictactoe-engine/internal/pkg"
	"github.com/rocketscienceinc/tictactoe-engine/internal/repository"
	"github.com/rocketscienceinc/tictactoe-engine/internal/tictactoe"
)

// maxUpdateAttempts bounds the read-compute-replace loop of a single update.
const maxUpdateAttempts = 10

type gameRepo interface {
	Create(ctx context.Context, game *entity.Game) error
	GetByID(ctx context.Context, id string) (*entity.Game, error)
	Replace(ctx context.Context, current, next *entity.Game) error
	DeleteByID(ctx context.Context, id string) error
	List(ctx context.Context) ([]*entity.Game, error)
}

// GameManager owns the games in play: it creates them, applies human and
// bot moves, abandons them and sweeps finished ones.
type GameManager struct {
	logger   *slog.Logger
	gameRepo gameRepo
	engine   *tictactoe.Engine

	generateID func() string
}

func NewGameManager(logger *slog.Logger, gameRepo gameRepo, engine *tictactoe.Engine) *GameManager {
	return &GameManager{
		logger: logger.With("component", "game_manager"),

		gameRepo: gameRepo,
		engine:   engine,

		generateID: pkg.GenerateGameID,
	}
}

func (that *GameManager) CreateGame(ctx context.Context) (*entity.Game, error) {
	game := entity.NewGame(that.generateID())

	if err := that.gameRepo.Create(ctx, game); err != nil {
		return nil, fmt.Errorf("failed to create game: %w", err)
	}

	that.logger.Info("game created", "gameID", game.ID)

	return game, nil
}

func (that *GameManager) GetGame(ctx context.Context, id string) (*entity.Game, error) {
	game, err := that.gameRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get game: %w", err)
	}

	return game, nil
}

// MakeTurn plays pos for the player to move in game id.
func (that *GameManager) MakeTurn(ctx context.Context, id string, pos entity.Position) (*entity.Game, error) {
	game, err := that.updateGame(ctx, id, func(current *entity.Game) (*entity.Game, error) {
		return that.engine.MakeTurn(current, pos)
	})
	if err != nil {
		return nil, fmt.Errorf("failed make turn: %w", err)
	}

	return game, nil
}

// MakeBotTurn lets the engine search and play a move for the player to move.
func (that *GameManager) MakeBotTurn(ctx context.Context, id string) (*entity.Game, error) {
	game, err := that.updateGame(ctx, id, that.engine.MakeBotTurn)
	if err != nil {
		return nil, fmt.Errorf("failed make bot turn: %w", err)
	}

	return game, nil
}

// AbandonGame marks the game abandoned whatever its status.
func (that *GameManager) AbandonGame(ctx context.Context, id string) (*entity.Game, error) {
	game, err := that.updateGame(ctx, id, func(current *entity.Game) (*entity.Game, error) {
		return current.Abandon(), nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed abandon game: %w", err)
	}

	that.logger.Info("game abandoned", "gameID", id)

	return game, nil
}

// CleanupFinishedGames removes every completed or abandoned game and
// returns how many were removed.
func (that *GameManager) CleanupFinishedGames(ctx context.Context) (int, error) {
	log := that.logger.With("method", "CleanupFinishedGames")

	games, err := that.gameRepo.List(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list games: %w", err)
	}

	removed := 0
	for _, game := range games {
		if !game.IsTerminal() {
			continue
		}

		err = that.gameRepo.DeleteByID(ctx, game.ID)
		if errors.Is(err, apperror.ErrGameNotFound) {
			continue
		}

		if err != nil {
			return removed, fmt.Errorf("failed to delete game %s: %w", game.ID, err)
		}

		removed++
	}

	if removed > 0 {
		log.Info("finished games removed", "count", removed)
	}

	return removed, nil
}

// updateGame reads the game, computes its successor with transition and
// stores it only if nobody replaced the game in between. On a conflict the
// whole read-compute-replace sequence is retried against the fresh game.
func (that *GameManager) updateGame(
	ctx context.Context,
	id string,
	transition func(*entity.Game) (*entity.Game, error),
) (*entity.Game, error) {
	log := that.logger.With("method", "updateGame", "gameID", id)

	for attempt := 1; attempt <= maxUpdateAttempts; attempt++ {
		current, err := that.gameRepo.GetByID(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("failed to get game: %w", err)
		}

		next, err := transition(current)
		if err != nil {
			return nil, err
		}

		err = that.gameRepo.Replace(ctx, current, next)
		if errors.Is(err, repository.ErrVersionConflict) {
			log.Debug("game changed concurrently, retrying", "attempt", attempt)
			continue
		}

		if err != nil {
			return nil, fmt.Errorf("failed to update game: %w", err)
		}

		return next, nil
	}

	return nil, apperror.ErrConcurrentUpdate
}
