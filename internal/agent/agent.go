// Package agent holds the players that can sit at the board: humans typing cell
// numbers, learners backed by a value policy and random baselines.
package agent

import "github.com/rocketscienceinc/tictactoe-rl/internal/entity"

// Agent picks the next board among the legal successors of the current one.
//
// Choose must return one of the given successors. The game loop trusts the
// returned board as is; an agent that returns anything else corrupts the game.
// The error is reserved for failures that make choosing impossible, such as a
// closed input stream.
type Agent interface {
	Symbol() entity.Symbol
	Name() string
	Choose(board entity.Board, successors []entity.Board, display bool) (entity.Board, error)
}

// Trainable is implemented by agents that learn from finished games.
// ReceiveOutcome is called once per completed game when rewards are distributed.
type Trainable interface {
	Agent
	ReceiveOutcome(outcome entity.Outcome)
}

// Forgetter is implemented by agents that keep boards from the current game.
// Forget drops them when the game will not be rewarded.
type Forgetter interface {
	Forget()
}

type identity struct {
	name   string
	symbol entity.Symbol
}

func (that identity) Name() string {
	return that.name
}

func (that identity) Symbol() entity.Symbol {
	return that.symbol
}
