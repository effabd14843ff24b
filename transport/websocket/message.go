package websocket

import (
	"encoding/json"
	"errors"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
)

const (
	ActionNewGame  = "game:new"
	ActionGetGame  = "game:get"
	ActionGameTurn = "game:turn"
	ActionBotTurn  = "game:bot"
	ActionAbandon  = "game:abandon"
)

const codeInternal = "internal"

var (
	ErrInvalidMessage = errors.New("invalid message")
	ErrUnknownAction  = errors.New("unknown action")
)

// Message represents a WebSocket message with an action type and a payload.
type Message struct {
	Action  string          `json:"action"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

type Payload struct {
	GameID string `json:"game_id,omitempty"`
	Row    int    `json:"row"`
	Col    int    `json:"col"`
}

type Response struct {
	Action string       `json:"action"`
	Game   *entity.Game `json:"game,omitempty"`
	Error  string       `json:"error,omitempty"`
	Code   string       `json:"code,omitempty"`
}

func errorResponse(action string, err error) Response {
	code := codeFromError(err)
	message := err.Error()
	if code == codeInternal {
		message = "internal server error"
	}

	return Response{Action: action, Error: message, Code: code}
}

func codeFromError(err error) string {
	if errors.Is(err, ErrInvalidMessage) || errors.Is(err, ErrUnknownAction) {
		return "invalid_argument"
	}

	return apperror.Code(err)
}
