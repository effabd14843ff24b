package entity

import "time"

// Move is one committed ply.
type Move struct {
	Player    Player    `json:"player"`
	Position  Position  `json:"position"`
	CreatedAt time.Time `json:"created_at"`
}

func NewMove(player Player, position Position, createdAt time.Time) Move {
	return Move{
		Player:    player,
		Position:  position,
		CreatedAt: createdAt,
	}
}
