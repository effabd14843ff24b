package entity

import "fmt"

const BoardSize = 3

// Position identifies one of the nine cells.
type Position struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

func NewPosition(row, col int) Position {
	return Position{Row: row, Col: col}
}

// IsValid reports whether both coordinates are on the board.
func (that Position) IsValid() bool {
	return that.Row >= 0 && that.Row < BoardSize && that.Col >= 0 && that.Col < BoardSize
}

func (that Position) String() string {
	return fmt.Sprintf("(%d,%d)", that.Row, that.Col)
}

// Cell is a position together with its occupant, NoPlayer when empty.
type Cell struct {
	Position Position `json:"position"`
	Occupant Player   `json:"occupant,omitempty"`
}

func (that Cell) IsEmpty() bool {
	return that.Occupant == NoPlayer
}
