package entity

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewGame(t *testing.T) {
	// When: a new game is created
	game := NewGame("123")

	// Then: the game state should correspond to the expected initial state
	expectedGame := &Game{
		ID:     "123",
		Board:  NewBoard(),
		Status: StatusNew,
	}

	require.Equal(t, expectedGame, game)
	assert.False(t, game.IsTerminal())
}

func TestStatusFor(t *testing.T) {
	t.Run("Empty board is new", func(t *testing.T) {
		assert.Equal(t, StatusNew, StatusFor(NewBoard(), NoPlayer))
	})

	t.Run("Board with moves and no winner is in progress", func(t *testing.T) {
		board := play(t, NewBoard(), NewPosition(0, 0))

		assert.Equal(t, StatusInProgress, StatusFor(board, board.Winner()))
	})

	t.Run("Winner completes the game", func(t *testing.T) {
		board := play(t, NewBoard(),
			NewPosition(0, 0), NewPosition(1, 0),
			NewPosition(0, 1), NewPosition(1, 1),
			NewPosition(0, 2),
		)

		assert.Equal(t, StatusCompleted, StatusFor(board, board.Winner()))
	})

	t.Run("Full board completes the game", func(t *testing.T) {
		board := play(t, NewBoard(),
			NewPosition(0, 0), NewPosition(0, 1), NewPosition(0, 2),
			NewPosition(1, 1), NewPosition(1, 0), NewPosition(1, 2),
			NewPosition(2, 1), NewPosition(2, 0), NewPosition(2, 2),
		)

		assert.Equal(t, StatusCompleted, StatusFor(board, board.Winner()))
	})
}

func TestGame_Status(t *testing.T) {
	tests := []struct {
		status    Status
		terminal  bool
		completed bool
		abandoned bool
	}{
		{StatusNew, false, false, false},
		{StatusInProgress, false, false, false},
		{StatusCompleted, true, true, false},
		{StatusAbandoned, true, false, true},
	}

	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			game := &Game{Status: tt.status}

			assert.Equal(t, tt.terminal, game.IsTerminal())
			assert.Equal(t, tt.completed, game.IsCompleted())
			assert.Equal(t, tt.abandoned, game.IsAbandoned())
		})
	}

	t.Run("Draw is a completed game without winner", func(t *testing.T) {
		assert.True(t, (&Game{Status: StatusCompleted}).IsDraw())
		assert.False(t, (&Game{Status: StatusCompleted, Winner: PlayerO}).IsDraw())
		assert.False(t, (&Game{Status: StatusInProgress}).IsDraw())
	})
}

func TestGame_Abandon(t *testing.T) {
	for _, status := range []Status{StatusNew, StatusInProgress, StatusCompleted, StatusAbandoned} {
		t.Run("From "+string(status), func(t *testing.T) {
			// Given: a game in the given status
			game := &Game{ID: "g1", Board: NewBoard(), Status: status, Version: 3}

			// When: the game is abandoned
			abandoned := game.Abandon()

			// Then: a new value is abandoned and the original is untouched
			assert.Equal(t, StatusAbandoned, abandoned.Status)
			assert.Equal(t, 4, abandoned.Version)
			assert.Equal(t, "g1", abandoned.ID)
			assert.Equal(t, status, game.Status)
			assert.Equal(t, 3, game.Version)
			assert.NotSame(t, game, abandoned)
		})
	}
}

func TestGame_JSON(t *testing.T) {
	// Given: a game with a last move
	move := NewMove(PlayerX, NewPosition(2, 1), time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC))
	board := play(t, NewBoard(), move.Position)
	game := &Game{
		ID:       "g1",
		Board:    board,
		Status:   StatusInProgress,
		LastMove: &move,
		Version:  1,
	}

	// When: it is encoded and decoded
	data, err := json.Marshal(game)
	require.NoError(t, err)

	var decoded Game
	require.NoError(t, json.Unmarshal(data, &decoded))

	// Then: the decoded game matches and the wire names are stable
	assert.Equal(t, *game, decoded)
	assert.Contains(t, string(data), `"current_player":"O"`)
	assert.Contains(t, string(data), `"last_move":{"player":"X","position":{"row":2,"col":1}`)
	assert.NotContains(t, string(data), `"winner"`)
}
