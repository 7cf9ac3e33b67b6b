package usecase

import (
	"fmt"

	"github.com/rocketscienceinc/tictactoe-rl/internal/agent"
	"github.com/rocketscienceinc/tictactoe-rl/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-rl/internal/entity"
	"github.com/rocketscienceinc/tictactoe-rl/internal/tictactoe"
)

// Advice is the move suggested for a board.
type Advice struct {
	Board   entity.Board   `json:"board"`
	Cell    int            `json:"cell"`
	Outcome entity.Outcome `json:"outcome"`
}

// Advisor suggests the greedy move of a trained policy. A policy only knows the
// boards its own symbol produced, so the advisor answers for that symbol alone.
type Advisor struct {
	policy agent.Policy
	symbol entity.Symbol
}

func NewAdvisor(policy agent.Policy, symbol entity.Symbol) *Advisor {
	return &Advisor{
		policy: policy,
		symbol: symbol,
	}
}

func (that *Advisor) Suggest(board entity.Board, symbol entity.Symbol) (Advice, error) {
	if err := validateBoard(board, symbol); err != nil {
		return Advice{}, err
	}

	if symbol != that.symbol {
		return Advice{}, fmt.Errorf("%w: asked for %s, serving %s", apperror.ErrWrongSymbol, symbol, that.symbol)
	}

	if outcome := tictactoe.Evaluate(board); outcome.IsTerminal() {
		return Advice{}, fmt.Errorf("%w: %s", apperror.ErrGameFinished, outcome)
	}

	// one learner per request, its history is dropped with it
	learner := agent.NewLearner("advisor", symbol, that.policy, agent.WithEpsilon(0))

	next, err := learner.Choose(board, tictactoe.Successors(board, symbol), false)
	if err != nil {
		return Advice{}, fmt.Errorf("failed to choose move: %w", err)
	}

	return Advice{
		Board:   next,
		Cell:    tictactoe.MoveCell(board, next),
		Outcome: tictactoe.Evaluate(next),
	}, nil
}

// validateBoard accepts boards holding at most two valid symbols where the mover
// has played as often as the opponent or one move less.
func validateBoard(board entity.Board, symbol entity.Symbol) error {
	if symbol.IsEmpty() {
		return apperror.ErrEmptySymbol
	}

	if !symbol.IsValid() {
		return fmt.Errorf("%w: %q", apperror.ErrInvalidSymbol, symbol)
	}

	own, other := 0, 0
	symbols := make(map[entity.Symbol]struct{}, 2)
	for _, cell := range board {
		switch {
		case cell.IsEmpty():
			continue
		case !cell.IsValid():
			return fmt.Errorf("%w: %w: %q", apperror.ErrInvalidBoard, apperror.ErrInvalidSymbol, cell)
		case cell == symbol:
			own++
		default:
			other++
		}
		symbols[cell] = struct{}{}
	}

	if len(symbols) > 2 {
		return fmt.Errorf("%w: more than two symbols", apperror.ErrInvalidBoard)
	}

	if own > other || other-own > 1 {
		return fmt.Errorf("%w: it is not %s's turn", apperror.ErrInvalidBoard, symbol)
	}

	return nil
}
