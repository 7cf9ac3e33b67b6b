package agent

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-rl/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-rl/internal/entity"
	"github.com/rocketscienceinc/tictactoe-rl/internal/tictactoe"
)

type update struct {
	history []entity.Board
	reward  float64
}

type fakePolicy struct {
	values  map[entity.Board]float64
	updates []update
}

func (that *fakePolicy) Value(board entity.Board) float64 {
	return that.values[board]
}

func (that *fakePolicy) Update(history []entity.Board, reward float64) {
	that.updates = append(that.updates, update{history: history, reward: reward})
}

func seeded() *rand.Rand {
	return rand.New(rand.NewPCG(1, 2))
}

func TestLearner_Choose(t *testing.T) {
	board := entity.NewBoard().Place(4, entity.PlayerX)
	successors := tictactoe.Successors(board, entity.PlayerO)

	t.Run("Greedy Picks Highest Value", func(t *testing.T) {
		// Given: a greedy learner whose policy prefers the corner at cell 8
		policy := &fakePolicy{values: map[entity.Board]float64{
			board.Place(8, entity.PlayerO): 0.9,
			board.Place(0, entity.PlayerO): 0.4,
		}}
		learner := NewLearner("bot", entity.PlayerO, policy, WithEpsilon(0), WithRand(seeded()))

		// When: the learner chooses
		chosen, err := learner.Choose(board, successors, false)

		// Then: the corner is chosen and remembered
		require.NoError(t, err)
		require.Equal(t, board.Place(8, entity.PlayerO), chosen)
		require.Equal(t, []entity.Board{chosen}, learner.History())
	})

	t.Run("Ties Go To First Successor", func(t *testing.T) {
		learner := NewLearner("bot", entity.PlayerO, &fakePolicy{}, WithEpsilon(0))

		chosen, err := learner.Choose(board, successors, false)

		require.NoError(t, err)
		require.Equal(t, successors[0], chosen)
	})

	t.Run("Exploring Stays Legal", func(t *testing.T) {
		// Given: a learner that always explores
		learner := NewLearner("bot", entity.PlayerO, &fakePolicy{}, WithEpsilon(1), WithRand(seeded()))

		for range 50 {
			// When: the learner chooses
			chosen, err := learner.Choose(board, successors, false)

			// Then: the choice is one of the successors
			require.NoError(t, err)
			require.Contains(t, successors, chosen)
		}
	})

	t.Run("No Legal Moves", func(t *testing.T) {
		learner := NewLearner("bot", entity.PlayerO, &fakePolicy{})

		_, err := learner.Choose(board, nil, false)

		require.ErrorIs(t, err, apperror.ErrNoLegalMoves)
	})
}

func TestLearner_ReceiveOutcome(t *testing.T) {
	tests := []struct {
		name    string
		outcome entity.Outcome
		reward  float64
	}{
		{name: "Win", outcome: entity.Win(entity.PlayerO), reward: 1},
		{name: "Loss", outcome: entity.Win(entity.PlayerX), reward: 0},
		{name: "Tie", outcome: entity.Tie(), reward: 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Given: a learner that played one move
			policy := &fakePolicy{}
			learner := NewLearner("bot", entity.PlayerO, policy, WithEpsilon(0))
			board := entity.NewBoard().Place(0, entity.PlayerX)
			chosen, err := learner.Choose(board, tictactoe.Successors(board, entity.PlayerO), false)
			require.NoError(t, err)

			// When: the outcome is received
			learner.ReceiveOutcome(tt.outcome)

			// Then: the policy is updated once with the history and the reward from the learner's side
			require.Len(t, policy.updates, 1)
			assert.Equal(t, []entity.Board{chosen}, policy.updates[0].history)
			assert.InDelta(t, tt.reward, policy.updates[0].reward, 1e-9)

			// Then: the next game starts with an empty history
			assert.Empty(t, learner.History())
		})
	}
}

func TestLearner_CustomRewards(t *testing.T) {
	policy := &fakePolicy{}
	learner := NewLearner("bot", entity.PlayerX, policy, WithRewards(Rewards{Win: 10, Tie: 1, Loss: -10}))

	learner.ReceiveOutcome(entity.Win(entity.PlayerO))

	require.Len(t, policy.updates, 1)
	assert.InDelta(t, -10.0, policy.updates[0].reward, 1e-9)
}

func TestLearner_Forget(t *testing.T) {
	policy := &fakePolicy{}
	learner := NewLearner("bot", entity.PlayerX, policy, WithEpsilon(0))
	board := entity.NewBoard()

	_, err := learner.Choose(board, tictactoe.Successors(board, entity.PlayerX), false)
	require.NoError(t, err)

	learner.Forget()

	assert.Empty(t, learner.History())
	assert.Empty(t, policy.updates)
}

func TestLearner_IsTrainable(t *testing.T) {
	var learner Agent = NewLearner("bot", entity.PlayerX, &fakePolicy{})
	_, ok := learner.(Trainable)
	assert.True(t, ok)

	var random Agent = NewRandom("random", entity.PlayerO, nil)
	_, ok = random.(Trainable)
	assert.False(t, ok)
}

func TestRandom_Choose(t *testing.T) {
	// Given: a seeded random agent and the successors of an empty board
	random := NewRandom("random", entity.PlayerX, seeded())
	board := entity.NewBoard()
	successors := tictactoe.Successors(board, entity.PlayerX)

	seen := map[entity.Board]bool{}
	for range 200 {
		// When: it chooses repeatedly
		chosen, err := random.Choose(board, successors, false)

		// Then: every choice is legal
		require.NoError(t, err)
		require.Contains(t, successors, chosen)
		seen[chosen] = true
	}

	// Then: more than one successor gets picked
	assert.Greater(t, len(seen), 1)

	_, err := random.Choose(board, nil, false)
	assert.ErrorIs(t, err, apperror.ErrNoLegalMoves)
	assert.Equal(t, "random", random.Name())
	assert.Equal(t, entity.PlayerX, random.Symbol())
}

func TestLearner_Capabilities(t *testing.T) {
	var learner Agent = NewLearner("bot", entity.PlayerX, &fakePolicy{})
	var random Agent = NewRandom("random", entity.PlayerO, nil)

	_, ok := learner.(Trainable)
	assert.True(t, ok)
	_, ok = learner.(Forgetter)
	assert.True(t, ok)

	_, ok = random.(Trainable)
	assert.False(t, ok)
	_, ok = random.(Forgetter)
	assert.False(t, ok)
}
