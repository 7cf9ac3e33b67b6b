package policy

import (
	"maps"
	"sync"

	"github.com/rocketscienceinc/tictactoe-rl/internal/entity"
)

const (
	DefaultLearningRate = 0.2
	DefaultInitialValue = 0.5
)

// ValueTable estimates how good a board is for the agent that produced it.
// Unseen boards are worth the initial value.
type ValueTable struct {
	mu sync.RWMutex

	values       map[string]float64
	learningRate float64
	initialValue float64
}

type Option func(*ValueTable)

func WithLearningRate(rate float64) Option {
	return func(that *ValueTable) {
		that.learningRate = rate
	}
}

func WithInitialValue(value float64) Option {
	return func(that *ValueTable) {
		that.initialValue = value
	}
}

func NewValueTable(opts ...Option) *ValueTable {
	table := &ValueTable{
		values:       make(map[string]float64),
		learningRate: DefaultLearningRate,
		initialValue: DefaultInitialValue,
	}

	for _, opt := range opts {
		opt(table)
	}

	return table
}

func (that *ValueTable) Value(board entity.Board) float64 {
	that.mu.RLock()
	defer that.mu.RUnlock()

	if value, ok := that.values[board.Key()]; ok {
		return value
	}

	return that.initialValue
}

// Update backs the final reward up through the boards visited in one game,
// last board first: V(s) += rate * (target - V(s)), then the target becomes V(s).
func (that *ValueTable) Update(history []entity.Board, reward float64) {
	that.mu.Lock()
	defer that.mu.Unlock()

	target := reward
	for i := len(history) - 1; i >= 0; i-- {
		key := history[i].Key()

		value, ok := that.values[key]
		if !ok {
			value = that.initialValue
		}

		value += that.learningRate * (target - value)
		that.values[key] = value
		target = value
	}
}

func (that *ValueTable) Len() int {
	that.mu.RLock()
	defer that.mu.RUnlock()

	return len(that.values)
}

// Snapshot returns a copy of the learned values keyed by entity.Board.Key.
func (that *ValueTable) Snapshot() map[string]float64 {
	that.mu.RLock()
	defer that.mu.RUnlock()

	return maps.Clone(that.values)
}

// Restore replaces the learned values.
func (that *ValueTable) Restore(values map[string]float64) {
	that.mu.Lock()
	defer that.mu.Unlock()

	that.values = maps.Clone(values)
	if that.values == nil {
		that.values = make(map[string]float64)
	}
}
