package agent

import (
	"math/rand/v2"

	"github.com/rocketscienceinc/tictactoe-rl/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-rl/internal/entity"
)

const DefaultEpsilon = 0.1

// Policy scores boards and learns from the boards an agent produced in one game.
type Policy interface {
	Value(board entity.Board) float64
	Update(history []entity.Board, reward float64)
}

// Rewards maps a finished game to the scalar reward handed to the policy.
type Rewards struct {
	Win  float64
	Tie  float64
	Loss float64
}

func DefaultRewards() Rewards {
	return Rewards{Win: 1, Tie: 0.5, Loss: 0}
}

// Learner plays epsilon-greedy over the values of its policy and feeds the
// outcome of every finished game back into it.
type Learner struct {
	identity

	policy  Policy
	rewards Rewards
	epsilon float64
	rnd     *rand.Rand

	history []entity.Board
}

type LearnerOption func(*Learner)

// WithEpsilon sets the probability of exploring a random successor instead of the best one.
func WithEpsilon(epsilon float64) LearnerOption {
	return func(that *Learner) {
		that.epsilon = epsilon
	}
}

func WithRewards(rewards Rewards) LearnerOption {
	return func(that *Learner) {
		that.rewards = rewards
	}
}

func WithRand(rnd *rand.Rand) LearnerOption {
	return func(that *Learner) {
		that.rnd = rnd
	}
}

func NewLearner(name string, symbol entity.Symbol, policy Policy, opts ...LearnerOption) *Learner {
	learner := &Learner{
		identity: identity{name: name, symbol: symbol},
		policy:   policy,
		rewards:  DefaultRewards(),
		epsilon:  DefaultEpsilon,
	}

	for _, opt := range opts {
		opt(learner)
	}

	if learner.rnd == nil {
		learner.rnd = newRand()
	}

	return learner
}

func (that *Learner) Choose(board entity.Board, successors []entity.Board, _ bool) (entity.Board, error) {
	if len(successors) == 0 {
		return board, apperror.ErrNoLegalMoves
	}

	var chosen entity.Board
	if that.epsilon > 0 && that.rnd.Float64() < that.epsilon {
		chosen = successors[that.rnd.IntN(len(successors))]
	} else {
		chosen = that.best(successors)
	}

	that.history = append(that.history, chosen)

	return chosen, nil
}

// best returns the highest valued successor, the first one on ties.
func (that *Learner) best(successors []entity.Board) entity.Board {
	best := successors[0]
	bestValue := that.policy.Value(best)

	for _, successor := range successors[1:] {
		if value := that.policy.Value(successor); value > bestValue {
			best, bestValue = successor, value
		}
	}

	return best
}

// ReceiveOutcome rewards the boards chosen during the game and starts a new history.
func (that *Learner) ReceiveOutcome(outcome entity.Outcome) {
	that.policy.Update(that.history, that.reward(outcome))
	that.history = nil
}

// Forget drops the boards of an unfinished game without learning from them.
func (that *Learner) Forget() {
	that.history = nil
}

func (that *Learner) reward(outcome entity.Outcome) float64 {
	switch {
	case outcome.IsWinFor(that.symbol):
		return that.rewards.Win
	case outcome.IsLossFor(that.symbol):
		return that.rewards.Loss
	default:
		return that.rewards.Tie
	}
}

func (that *Learner) SetEpsilon(epsilon float64) {
	that.epsilon = epsilon
}

func (that *Learner) Epsilon() float64 {
	return that.epsilon
}

// History returns a copy of the boards chosen in the current game.
func (that *Learner) History() []entity.Board {
	return append([]entity.Board(nil), that.history...)
}
