package rest

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/rocketscienceinc/tictactoe-rl/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-rl/internal/entity"
	"github.com/rocketscienceinc/tictactoe-rl/internal/usecase"
)

const maxRequestBytes = 1 << 12

type advisor interface {
	Suggest(board entity.Board, symbol entity.Symbol) (usecase.Advice, error)
}

type moveRequest struct {
	Board  []string `json:"board"`
	Symbol string   `json:"symbol"`
}

type moveResponse struct {
	Board   []string       `json:"board"`
	Cell    int            `json:"cell"`
	Outcome entity.Outcome `json:"outcome"`
}

type errorResponse struct {
	Error string `json:"error"`
}

type handlers struct {
	logger  *slog.Logger
	advisor advisor
}

// moveHandler answers with the move the trained policy plays on the posted board.
func (that *handlers) moveHandler(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "moveHandler")

	var request moveRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBytes)).Decode(&request); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "malformed request body"})
		return
	}

	board, ok := entity.ParseBoard(request.Board)
	if !ok {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: apperror.ErrInvalidBoard.Error()})
		return
	}

	advice, err := that.advisor.Suggest(board, entity.Symbol(request.Symbol))
	switch {
	case errors.Is(err, apperror.ErrGameFinished):
		writeJSON(w, http.StatusConflict, errorResponse{Error: err.Error()})
		return
	case errors.Is(err, apperror.ErrInvalidBoard), errors.Is(err, apperror.ErrEmptySymbol),
		errors.Is(err, apperror.ErrInvalidSymbol), errors.Is(err, apperror.ErrWrongSymbol):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	case err != nil:
		log.Error("failed to suggest move", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "Internal Server Error"})
		return
	}

	cells := make([]string, len(advice.Board))
	for i, cell := range advice.Board {
		cells[i] = string(cell)
	}

	writeJSON(w, http.StatusOK, moveResponse{
		Board:   cells,
		Cell:    advice.Cell,
		Outcome: advice.Outcome,
	})
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
