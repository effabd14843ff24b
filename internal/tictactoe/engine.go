package tictactoe

import (
	"fmt"
	"time"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
)

// Engine applies moves to games and searches for the bot's move.
// It keeps no game state between calls.
type Engine struct {
	now func() time.Time
}

func NewEngine() *Engine {
	return &Engine{now: time.Now}
}

// MakeTurn plays pos for the player to move and returns the resulting game.
// The given game is left untouched.
func (that *Engine) MakeTurn(game *entity.Game, pos entity.Position) (*entity.Game, error) {
	if game.IsTerminal() {
		return nil, apperror.ErrGameFinished
	}

	move := entity.NewMove(game.Board.CurrentPlayer(), pos, that.now())
	if !game.Board.IsValidMove(move) {
		return nil, fmt.Errorf("%w: %s at %s", apperror.ErrInvalidMove, move.Player, pos)
	}

	board, err := game.Board.MakeMove(move)
	if err != nil {
		return nil, fmt.Errorf("failed to make move: %w", err)
	}

	winner := board.Winner()

	return &entity.Game{
		ID:       game.ID,
		Board:    board,
		Status:   entity.StatusFor(board, winner),
		Winner:   winner,
		LastMove: &move,
		Version:  game.Version + 1,
	}, nil
}

// MakeBotTurn searches the best move for the player to move and plays it.
func (that *Engine) MakeBotTurn(game *entity.Game) (*entity.Game, error) {
	if game.IsTerminal() {
		return nil, apperror.ErrGameFinished
	}

	pos, err := that.BestMove(game.Board)
	if err != nil {
		return nil, fmt.Errorf("failed to find bot move: %w", err)
	}

	return that.MakeTurn(game, pos)
}
