// Package environment runs tic-tac-toe games between two agents and hands the
// final outcome back to the agents that learn from it.
package environment

import (
	"fmt"
	"log/slog"

	"github.com/rocketscienceinc/tictactoe-rl/internal/agent"
	"github.com/rocketscienceinc/tictactoe-rl/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-rl/internal/entity"
	"github.com/rocketscienceinc/tictactoe-rl/internal/tictactoe"
)

// Display renders boards and messages for the players watching a game.
type Display interface {
	Render(board entity.Board, symbols [2]entity.Symbol)
	Announce(message string)
}

// Options are the switches of a single game.
type Options struct {
	// DistributeReward hands the final outcome to every trainable agent.
	DistributeReward bool
	// Display renders the board and announces turns and the result.
	Display bool
}

type Environment struct {
	logger  *slog.Logger
	display Display
}

// New returns an environment. The display may be nil when games never run with Options.Display.
func New(logger *slog.Logger, display Display) *Environment {
	return &Environment{
		logger:  logger.With("component", "environment"),
		display: display,
	}
}

// Game plays one game from the empty board, agents[0] moving first, and returns the terminal outcome.
//
// The board returned by an agent is not checked against the legal successors.
// If an agent fails to choose, the game stops, no reward is distributed and the
// error is returned with an ongoing outcome.
func (that *Environment) Game(agents [2]agent.Agent, opts Options) (entity.Outcome, error) {
	if err := validateAgents(agents); err != nil {
		return entity.Ongoing(), err
	}

	display := opts.Display && that.display != nil
	symbols := [2]entity.Symbol{agents[0].Symbol(), agents[1].Symbol()}

	board := entity.NewBoard()
	outcome := tictactoe.Evaluate(board)
	turn := 0

	if display {
		that.display.Render(board, symbols)
	}

	for outcome.IsOngoing() {
		active := agents[turn]
		successors := tictactoe.Successors(board, active.Symbol())

		if display {
			that.display.Announce(fmt.Sprintf("%s's turn!", active.Name()))
		}

		next, err := active.Choose(board, successors, display)
		if err != nil {
			return entity.Ongoing(), fmt.Errorf("%s failed to choose: %w", active.Name(), err)
		}

		that.logger.Debug("move played", "agent", active.Name(), "cell", tictactoe.MoveCell(board, next))

		board = next
		turn ^= 1
		outcome = tictactoe.Evaluate(board)

		if display {
			that.display.Render(board, symbols)
		}
	}

	if display {
		that.display.Announce(resultMessage(agents, outcome))
	}

	if opts.DistributeReward {
		distributeReward(agents, outcome)
	}

	return outcome, nil
}

func validateAgents(agents [2]agent.Agent) error {
	for _, a := range agents {
		if a == nil {
			return apperror.ErrNilAgent
		}

		if a.Symbol().IsEmpty() {
			return fmt.Errorf("%w: %s", apperror.ErrEmptySymbol, a.Name())
		}

		if !a.Symbol().IsValid() {
			return fmt.Errorf("%w: %s plays %q", apperror.ErrInvalidSymbol, a.Name(), a.Symbol())
		}
	}

	if agents[0].Symbol() == agents[1].Symbol() {
		return fmt.Errorf("%w: %s", apperror.ErrSameSymbol, agents[0].Symbol())
	}

	return nil
}

// distributeReward gives both trainable agents the same outcome; each decides whether it won.
func distributeReward(agents [2]agent.Agent, outcome entity.Outcome) {
	for _, a := range agents {
		if trainable, ok := a.(agent.Trainable); ok {
			trainable.ReceiveOutcome(outcome)
		}
	}
}

func resultMessage(agents [2]agent.Agent, outcome entity.Outcome) string {
	for _, a := range agents {
		if outcome.IsWinFor(a.Symbol()) {
			return fmt.Sprintf("%s wins!", a.Name())
		}
	}

	return "It's a tie!"
}
