package websocket

import (
	"context"
	"fmt"

	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
)

func (that *Server) handleNewGame(ctx context.Context, _ *Payload) (*entity.Game, error) {
	game, err := that.uGame.CreateGame(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to create game: %w", err)
	}

	return game, nil
}

func (that *Server) handleGetGame(ctx context.Context, payload *Payload) (*entity.Game, error) {
	game, err := that.uGame.GetGame(ctx, payload.GameID)
	if err != nil {
		return nil, fmt.Errorf("failed to get game: %w", err)
	}

	return game, nil
}

func (that *Server) handleGameTurn(ctx context.Context, payload *Payload) (*entity.Game, error) {
	game, err := that.uGame.MakeTurn(ctx, payload.GameID, entity.NewPosition(payload.Row, payload.Col))
	if err != nil {
		return nil, fmt.Errorf("failed to make turn: %w", err)
	}

	return game, nil
}

func (that *Server) handleBotTurn(ctx context.Context, payload *Payload) (*entity.Game, error) {
	game, err := that.uGame.MakeBotTurn(ctx, payload.GameID)
	if err != nil {
		return nil, fmt.Errorf("failed to make bot turn: %w", err)
	}

	return game, nil
}

func (that *Server) handleAbandon(ctx context.Context, payload *Payload) (*entity.Game, error) {
	game, err := that.uGame.AbandonGame(ctx, payload.GameID)
	if err != nil {
		return nil, fmt.Errorf("failed to abandon game: %w", err)
	}

	return game, nil
}
