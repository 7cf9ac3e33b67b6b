package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-rl/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-rl/internal/entity"
)

func TestLoad(t *testing.T) {
	t.Run("From File", func(t *testing.T) {
		// Given: a config file
		path := filepath.Join(t.TempDir(), "config.yml")
		content := `
log-level: debug
redis:
  enabled: true
  host: redis
  port: "6380"
game:
  distribute-reward: true
  display: true
training:
  episodes: 10
  epsilon: 0.3
  fixed-start: true
players:
  first:
    name: Alice
    symbol: A
`
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

		// When: load it
		conf, err := Load(path)

		// Then: values come from the file and defaults fill the rest
		require.NoError(t, err)
		assert.Equal(t, "debug", conf.LogLevel)
		assert.True(t, conf.Redis.Enabled)
		assert.Equal(t, "redis:6380", conf.Redis.GetRedisAddr())
		assert.True(t, conf.Game.DistributeReward)
		assert.True(t, conf.Game.Display)
		assert.Equal(t, 10, conf.Training.Episodes)
		assert.InDelta(t, 0.3, conf.Training.Epsilon, 1e-9)
		assert.InDelta(t, 0.2, conf.Training.LearningRate, 1e-9)
		assert.Equal(t, 1000, conf.Training.EvaluationGames)
		assert.True(t, conf.Training.FixedStart)
		assert.Equal(t, entity.Player{Name: "Alice", Symbol: "A"}, conf.Players.First)
		assert.Equal(t, entity.Player{Name: "Bot O", Symbol: entity.PlayerO}, conf.Players.Second)
	})

	t.Run("Missing File Uses Environment", func(t *testing.T) {
		// Given: no config file and an environment override
		t.Setenv("TRAINING_EPISODES", "42")

		// When: load a path that does not exist
		conf, err := Load(filepath.Join(t.TempDir(), "missing.yml"))

		// Then: defaults and environment are used
		require.NoError(t, err)
		assert.Equal(t, 42, conf.Training.Episodes)
		assert.Equal(t, "info", conf.LogLevel)
		assert.False(t, conf.Game.Display)
		assert.False(t, conf.Training.FixedStart)
		assert.Equal(t, "localhost:6379", conf.Redis.GetRedisAddr())
		assert.Equal(t, [2]entity.Player{
			{Name: "Bot X", Symbol: entity.PlayerX},
			{Name: "Bot O", Symbol: entity.PlayerO},
		}, conf.Players.Seats())
	})

	t.Run("Invalid Player Symbols", func(t *testing.T) {
		tests := []struct {
			name    string
			players string
			err     error
		}{
			{name: "Two Runes", players: "first: {symbol: XX}", err: apperror.ErrInvalidSymbol},
			{name: "Empty Cell Marker", players: "second: {symbol: \".\"}", err: apperror.ErrInvalidSymbol},
			{name: "Same Symbol", players: "first: {symbol: O}", err: apperror.ErrSameSymbol},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				// Given: a config with a symbol that cannot be keyed on a board
				path := filepath.Join(t.TempDir(), "config.yml")
				require.NoError(t, os.WriteFile(path, []byte("players:\n  "+tt.players+"\n"), 0o600))

				// When: load it
				_, err := Load(path)

				// Then: loading fails
				require.ErrorIs(t, err, tt.err)
			})
		}
	})

	t.Run("Broken File", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yml")
		require.NoError(t, os.WriteFile(path, []byte("training: [not a map"), 0o600))

		_, err := Load(path)
		require.Error(t, err)

		require.Panics(t, func() { MustLoad(path) })
	})
}
