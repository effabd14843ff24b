package entity

type Status string

const (
	StatusNew        Status = "NEW"
	StatusInProgress Status = "IN_PROGRESS"
	StatusCompleted  Status = "COMPLETED"
	StatusAbandoned  Status = "ABANDONED"
)

// Game is one session. A Game value is never changed after it is stored:
// each transition produces a new Game bound to the same ID.
type Game struct {
	ID       string `json:"id"`
	Board    Board  `json:"board"`
	Status   Status `json:"status"`
	Winner   Player `json:"winner,omitempty"`
	LastMove *Move  `json:"last_move,omitempty"`
	Version  int    `json:"version"`
}

func NewGame(id string) *Game {
	return &Game{
		ID:     id,
		Board:  NewBoard(),
		Status: StatusNew,
	}
}

// StatusFor derives the status of a game from its board after a move.
func StatusFor(board Board, winner Player) Status {
	switch {
	case board.MoveCount() == 0:
		return StatusNew
	case board.IsFull(), winner != NoPlayer:
		return StatusCompleted
	default:
		return StatusInProgress
	}
}

func (that *Game) IsCompleted() bool {
	return that.Status == StatusCompleted
}

func (that *Game) IsAbandoned() bool {
	return that.Status == StatusAbandoned
}

// IsTerminal reports whether the game accepts no more moves.
func (that *Game) IsTerminal() bool {
	return that.IsCompleted() || that.IsAbandoned()
}

func (that *Game) IsDraw() bool {
	return that.IsCompleted() && that.Winner == NoPlayer
}

// Abandon returns a copy of the game forced into StatusAbandoned,
// whatever its current status.
func (that *Game) Abandon() *Game {
	next := *that
	next.Status = StatusAbandoned
	next.Version++

	return &next
}
