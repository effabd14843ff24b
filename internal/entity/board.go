package entity

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
)

var ErrMalformedBoard = errors.New("malformed board")

// WinLines lists every line of three in scan order: rows, columns, diagonals.
var WinLines = [8][3]Position{
	{{0, 0}, {0, 1}, {0, 2}},
	{{1, 0}, {1, 1}, {1, 2}},
	{{2, 0}, {2, 1}, {2, 2}},
	{{0, 0}, {1, 0}, {2, 0}},
	{{0, 1}, {1, 1}, {2, 1}},
	{{0, 2}, {1, 2}, {2, 2}},
	{{0, 0}, {1, 1}, {2, 2}},
	{{0, 2}, {1, 1}, {2, 0}},
}

// Board is an immutable 3x3 grid. Every move returns a new Board and
// leaves the receiver untouched, so a Board can be shared freely.
type Board struct {
	cells   [BoardSize][BoardSize]Player
	current Player
	moves   int
}

// NewBoard returns an empty board with X to move.
func NewBoard() Board {
	return Board{current: PlayerX}
}

func (that Board) CurrentPlayer() Player {
	return that.current
}

func (that Board) MoveCount() int {
	return that.moves
}

// Cell returns the cell at pos. The position must be valid.
func (that Board) Cell(pos Position) Cell {
	return Cell{Position: pos, Occupant: that.cells[pos.Row][pos.Col]}
}

// IsValidMove reports whether move is on the board, targets an empty cell
// and is made by the player whose turn it is.
func (that Board) IsValidMove(move Move) bool {
	if !move.Position.IsValid() {
		return false
	}

	return that.cells[move.Position.Row][move.Position.Col] == NoPlayer && move.Player == that.current
}

// MakeMove returns the board after move has been played.
func (that Board) MakeMove(move Move) (Board, error) {
	if !that.IsValidMove(move) {
		return that, fmt.Errorf("%w: %s at %s", apperror.ErrInvalidMove, move.Player, move.Position)
	}

	next := that
	next.cells[move.Position.Row][move.Position.Col] = move.Player
	next.current = that.current.Opponent()
	next.moves++

	return next, nil
}

// Winner returns the owner of the first complete line, or NoPlayer.
func (that Board) Winner() Player {
	for _, line := range WinLines {
		a := that.cells[line[0].Row][line[0].Col]
		b := that.cells[line[1].Row][line[1].Col]
		c := that.cells[line[2].Row][line[2].Col]
		if a != NoPlayer && a == b && b == c {
			return a
		}
	}

	return NoPlayer
}

func (that Board) IsFull() bool {
	return that.moves == BoardSize*BoardSize
}

// EmptyPositions returns the unoccupied positions in row-major order.
func (that Board) EmptyPositions() []Position {
	positions := make([]Position, 0, BoardSize*BoardSize-that.moves)
	for row := 0; row < BoardSize; row++ {
		for col := 0; col < BoardSize; col++ {
			if that.cells[row][col] == NoPlayer {
				positions = append(positions, Position{Row: row, Col: col})
			}
		}
	}

	return positions
}

type boardJSON struct {
	Cells         [BoardSize][BoardSize]Player `json:"cells"`
	CurrentPlayer Player                       `json:"current_player"`
	MoveCount     int                          `json:"move_count"`
}

func (that Board) MarshalJSON() ([]byte, error) {
	return json.Marshal(boardJSON{
		Cells:         that.cells,
		CurrentPlayer: that.current,
		MoveCount:     that.moves,
	})
}

func (that *Board) UnmarshalJSON(data []byte) error {
	var raw boardJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("failed to unmarshal board: %w", err)
	}

	occupied := 0
	for _, row := range raw.Cells {
		for _, cell := range row {
			switch cell {
			case NoPlayer:
			case PlayerX, PlayerO:
				occupied++
			default:
				return fmt.Errorf("%w: unknown mark %q", ErrMalformedBoard, cell)
			}
		}
	}

	if occupied != raw.MoveCount {
		return fmt.Errorf("%w: %d occupied cells, move count %d", ErrMalformedBoard, occupied, raw.MoveCount)
	}

	if raw.CurrentPlayer != PlayerX && raw.CurrentPlayer != PlayerO {
		return fmt.Errorf("%w: unknown current player %q", ErrMalformedBoard, raw.CurrentPlayer)
	}

	that.cells = raw.Cells
	that.current = raw.CurrentPlayer
	that.moves = raw.MoveCount

	return nil
}
