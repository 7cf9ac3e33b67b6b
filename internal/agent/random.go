package agent

import (
	"math/rand/v2"

	"github.com/rocketscienceinc/tictactoe-rl/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-rl/internal/entity"
)

// Random picks a successor uniformly. It is the baseline opponent for training and evaluation.
type Random struct {
	identity
	rnd *rand.Rand
}

// NewRandom returns a random agent. A nil rnd draws from an unseeded source.
func NewRandom(name string, symbol entity.Symbol, rnd *rand.Rand) *Random {
	if rnd == nil {
		rnd = newRand()
	}

	return &Random{
		identity: identity{name: name, symbol: symbol},
		rnd:      rnd,
	}
}

func (that *Random) Choose(board entity.Board, successors []entity.Board, _ bool) (entity.Board, error) {
	if len(successors) == 0 {
		return board, apperror.ErrNoLegalMoves
	}

	return successors[that.rnd.IntN(len(successors))], nil
}

func newRand() *rand.Rand {
	return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64())) //nolint: gosec // not for security
}
