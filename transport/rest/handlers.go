package rest

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
)

const maxBodyBytes = 1 << 10

type uGame interface {
	CreateGame(ctx context.Context) (*entity.Game, error)
	GetGame(ctx context.Context, id string) (*entity.Game, error)
	MakeTurn(ctx context.Context, id string, pos entity.Position) (*entity.Game, error)
	MakeBotTurn(ctx context.Context, id string) (*entity.Game, error)
	AbandonGame(ctx context.Context, id string) (*entity.Game, error)
}

type handlers struct {
	logger *slog.Logger
	uGame  uGame
}

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// NewRouter wires the game API routes.
func NewRouter(logger *slog.Logger, uGame uGame) http.Handler {
	h := &handlers{
		logger: logger.With("component", "rest"),
		uGame:  uGame,
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	r.Get("/ping", pingHandler)
	r.Post("/games", h.createGame)
	r.Route("/games/{id}", func(r chi.Router) {
		r.Get("/", h.getGame)
		r.Post("/moves", h.makeTurn)
		r.Post("/bot", h.makeBotTurn)
		r.Post("/abandon", h.abandonGame)
	})

	return r
}

func (that *handlers) createGame(w http.ResponseWriter, r *http.Request) {
	game, err := that.uGame.CreateGame(r.Context())
	if err != nil {
		that.writeError(w, "createGame", err)
		return
	}

	that.writeJSON(w, http.StatusCreated, game)
}

func (that *handlers) getGame(w http.ResponseWriter, r *http.Request) {
	game, err := that.uGame.GetGame(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		that.writeError(w, "getGame", err)
		return
	}

	that.writeJSON(w, http.StatusOK, game)
}

func (that *handlers) makeTurn(w http.ResponseWriter, r *http.Request) {
	var pos entity.Position

	decoder := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&pos); err != nil {
		that.writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid move payload", Code: "invalid_argument"})
		return
	}

	game, err := that.uGame.MakeTurn(r.Context(), chi.URLParam(r, "id"), pos)
	if err != nil {
		that.writeError(w, "makeTurn", err)
		return
	}

	that.writeJSON(w, http.StatusOK, game)
}

func (that *handlers) makeBotTurn(w http.ResponseWriter, r *http.Request) {
	game, err := that.uGame.MakeBotTurn(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		that.writeError(w, "makeBotTurn", err)
		return
	}

	that.writeJSON(w, http.StatusOK, game)
}

func (that *handlers) abandonGame(w http.ResponseWriter, r *http.Request) {
	game, err := that.uGame.AbandonGame(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		that.writeError(w, "abandonGame", err)
		return
	}

	that.writeJSON(w, http.StatusOK, game)
}

func (that *handlers) writeError(w http.ResponseWriter, method string, err error) {
	status := statusFromError(err)
	if status == http.StatusInternalServerError {
		that.logger.Error("request failed", "method", method, "error", err)
		that.writeJSON(w, status, errorResponse{Error: "internal server error", Code: apperror.Code(err)})
		return
	}

	that.writeJSON(w, status, errorResponse{Error: err.Error(), Code: apperror.Code(err)})
}

func (that *handlers) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		that.logger.Error("failed to write response", "error", err)
	}
}

func statusFromError(err error) int {
	switch {
	case errors.Is(err, apperror.ErrInvalidArgument):
		return http.StatusBadRequest
	case errors.Is(err, apperror.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperror.ErrIllegalState):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
