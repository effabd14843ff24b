package tictactoe

import (
	"fmt"
	"math"
	"time"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
)

const (
	maxSearchDepth = 6
	winScore       = 10

	centerWeight = 3
	cornerWeight = 2
)

var (
	center  = entity.NewPosition(1, 1)
	corners = [4]entity.Position{
		entity.NewPosition(0, 0),
		entity.NewPosition(0, 2),
		entity.NewPosition(2, 0),
		entity.NewPosition(2, 2),
	}
)

// BestMove runs a minimax search with alpha-beta pruning for the player to
// move on board. Ties go to the earliest candidate in row-major order.
func (that *Engine) BestMove(board entity.Board) (entity.Position, error) {
	candidates := board.EmptyPositions()
	if len(candidates) == 0 {
		return entity.Position{}, apperror.ErrNoAvailableMoves
	}

	original := board.CurrentPlayer()
	best := candidates[0]
	bestScore := math.MinInt
	alpha, beta := math.MinInt, math.MaxInt

	for _, pos := range candidates {
		next, err := board.MakeMove(entity.NewMove(original, pos, time.Time{}))
		if err != nil {
			return entity.Position{}, fmt.Errorf("failed to simulate move: %w", err)
		}

		score := search(next, 1, false, original, alpha, beta)
		if score > bestScore {
			bestScore = score
			best = pos
		}

		// the root is a maximizing ply, so the bound carries over to later siblings
		alpha = max(alpha, bestScore)
	}

	return best, nil
}

func search(board entity.Board, depth int, maximizing bool, original entity.Player, alpha, beta int) int {
	switch winner := board.Winner(); {
	case winner == original:
		return winScore - depth
	case winner != entity.NoPlayer:
		return -winScore + depth
	case board.IsFull():
		return 0
	case depth == maxSearchDepth:
		return evaluatePosition(board, original)
	}

	mover := board.CurrentPlayer()

	if maximizing {
		best := math.MinInt
		for _, pos := range board.EmptyPositions() {
			next, err := board.MakeMove(entity.NewMove(mover, pos, time.Time{}))
			if err != nil {
				continue
			}

			best = max(best, search(next, depth+1, false, original, alpha, beta))
			alpha = max(alpha, best)
			if alpha >= beta {
				return best
			}
		}

		return best
	}

	best := math.MaxInt
	for _, pos := range board.EmptyPositions() {
		next, err := board.MakeMove(entity.NewMove(mover, pos, time.Time{}))
		if err != nil {
			continue
		}

		best = min(best, search(next, depth+1, true, original, alpha, beta))
		beta = min(beta, best)
		if alpha >= beta {
			return best
		}
	}

	return best
}

// evaluatePosition scores a non-terminal board for player from the center
// and corner cells. Edges do not count.
func evaluatePosition(board entity.Board, player entity.Player) int {
	score := cellScore(board, center, player, centerWeight)
	for _, corner := range corners {
		score += cellScore(board, corner, player, cornerWeight)
	}

	return score
}

func cellScore(board entity.Board, pos entity.Position, player entity.Player, weight int) int {
	switch board.Cell(pos).Occupant {
	case entity.NoPlayer:
		return 0
	case player:
		return weight
	default:
		return -weight
	}
}
