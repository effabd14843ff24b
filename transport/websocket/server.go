package websocket

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
)

const (
	shutdownTimeout = 5 * time.Second
	maxMessageBytes = 1 << 12
)

type uGame interface {
	CreateGame(ctx context.Context) (*entity.Game, error)
	GetGame(ctx context.Context, id string) (*entity.Game, error)
	MakeTurn(ctx context.Context, id string, pos entity.Position) (*entity.Game, error)
	MakeBotTurn(ctx context.Context, id string) (*entity.Game, error)
	AbandonGame(ctx context.Context, id string) (*entity.Game, error)
}

type handlerFunc func(ctx context.Context, payload *Payload) (*entity.Game, error)

// Server answers game requests sent over a WebSocket connection,
// one response per request.
type Server struct {
	logger   *slog.Logger
	uGame    uGame
	upgrader websocket.Upgrader

	handlers map[string]handlerFunc
}

func New(logger *slog.Logger, uGame uGame) *Server {
	server := &Server{
		logger: logger.With("component", "websocket"),
		uGame:  uGame,

		handlers: make(map[string]handlerFunc),
	}

	server.handlers[ActionNewGame] = server.handleNewGame
	server.handlers[ActionGetGame] = server.handleGetGame
	server.handlers[ActionGameTurn] = server.handleGameTurn
	server.handlers[ActionBotTurn] = server.handleBotTurn
	server.handlers[ActionAbandon] = server.handleAbandon

	return server
}

// Handler returns the HTTP handler that upgrades /ws requests.
func (that *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", that.upgradeToWebSocket)

	return mux
}

// Start - starts WebSocket server.
func (that *Server) Start(ctx context.Context, port string) error {
	srv := &http.Server{
		Addr:        ":" + port,
		Handler:     that.Handler(),
		ReadTimeout: 10 * time.Second,
		IdleTimeout: 30 * time.Second,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		_ = srv.Shutdown(shutdownCtx)
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}

// upgradeToWebSocket - upgrades the connection to WebSocket.
func (that *Server) upgradeToWebSocket(writer http.ResponseWriter, req *http.Request) {
	log := that.logger.With("method", "upgradeToWebSocket")

	conn, err := that.upgrader.Upgrade(writer, req, nil)
	if err != nil {
		log.Error("failed to upgrade connection", "error", err)
		return
	}

	defer conn.Close()

	conn.SetReadLimit(maxMessageBytes)

	log.Debug("WebSocket connection established")

	if err = that.handleMessages(req.Context(), conn); err != nil {
		log.Error("error handling messages", "error", err)
	}
}

// handleMessages - processes messages from the client until it disconnects.
func (that *Server) handleMessages(ctx context.Context, conn *websocket.Conn) error {
	log := that.logger.With("method", "handleMessages")

	for {
		_, data, err := conn.ReadMessage()
		if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
			return nil
		}

		if err != nil {
			return fmt.Errorf("failed to read message: %w", err)
		}

		response := that.process(ctx, data)
		if response.Error != "" {
			log.Debug("request failed", "action", response.Action, "error", response.Error)
		}

		if err = conn.WriteJSON(response); err != nil {
			return fmt.Errorf("failed to send response: %w", err)
		}
	}
}

func (that *Server) process(ctx context.Context, data []byte) Response {
	var message Message
	if err := json.Unmarshal(data, &message); err != nil {
		return errorResponse("", ErrInvalidMessage)
	}

	handler, ok := that.handlers[message.Action]
	if !ok {
		return errorResponse(message.Action, ErrUnknownAction)
	}

	var payload Payload
	if len(message.Payload) > 0 {
		if err := json.Unmarshal(message.Payload, &payload); err != nil {
			return errorResponse(message.Action, ErrInvalidMessage)
		}
	}

	game, err := handler(ctx, &payload)
	if err != nil {
		if code := codeFromError(err); code == codeInternal {
			that.logger.Error("failed to process message", "action", message.Action, "error", err)
		}

		return errorResponse(message.Action, err)
	}

	return Response{Action: message.Action, Game: game}
}
