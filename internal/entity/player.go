package entity

// Player is the mark a side places on the board.
type Player string

const (
	NoPlayer Player = ""
	PlayerX  Player = "X"
	PlayerO  Player = "O"
)

// Opponent returns the other side. NoPlayer has no opponent.
func (that Player) Opponent() Player {
	switch that {
	case PlayerX:
		return PlayerO
	case PlayerO:
		return PlayerX
	default:
		return NoPlayer
	}
}
