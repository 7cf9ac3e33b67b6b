package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/ilyakaznacheev/cleanenv"

	"github.com/rocketscienceinc/tictactoe-rl/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-rl/internal/entity"
)

type Config struct {
	LogLevel string   `yaml:"log-level" env:"LOG_LEVEL" env-default:"info"`
	HTTPPort string   `yaml:"http-port" env:"HTTP_PORT" env-default:"9090"`
	Redis    Redis    `yaml:"redis"`
	Game     Game     `yaml:"game"`
	Training Training `yaml:"training"`
	Players  Players  `yaml:"players"`
}

type Redis struct {
	Enabled bool   `yaml:"enabled" env:"REDIS_ENABLED" env-default:"false"`
	Host    string `yaml:"host"    env:"REDIS_HOST"    env-default:"localhost"`
	Port    string `yaml:"port"    env:"REDIS_PORT"    env-default:"6379"`
}

// Game holds the two switches of the game loop. Both default to off: cleanenv
// cannot tell a false value in the file from a missing one.
type Game struct {
	DistributeReward bool `yaml:"distribute-reward" env:"GAME_DISTRIBUTE_REWARD" env-default:"false"`
	Display          bool `yaml:"display"           env:"GAME_DISPLAY"           env-default:"false"`
}

// Training holds the self-play settings. FixedStart keeps the first player
// moving first in every game instead of alternating.
type Training struct {
	Episodes        int     `yaml:"episodes"         env:"TRAINING_EPISODES"         env-default:"50000"`
	EvaluationGames int     `yaml:"evaluation-games" env:"TRAINING_EVALUATION_GAMES" env-default:"1000"`
	Epsilon         float64 `yaml:"epsilon"          env:"TRAINING_EPSILON"          env-default:"0.1"`
	LearningRate    float64 `yaml:"learning-rate"    env:"TRAINING_LEARNING_RATE"    env-default:"0.2"`
	InitialValue    float64 `yaml:"initial-value"    env:"TRAINING_INITIAL_VALUE"    env-default:"0.5"`
	FixedStart      bool    `yaml:"fixed-start"      env:"TRAINING_FIXED_START"      env-default:"false"`
	ProgressEvery   int     `yaml:"progress-every"   env:"TRAINING_PROGRESS_EVERY"   env-default:"5000"`
}

type Players struct {
	First  entity.Player `yaml:"first"`
	Second entity.Player `yaml:"second"`
}

// MustLoad - load all configurations in config.yml file.
func MustLoad(path string) *Config {
	config, err := Load(path)
	if err != nil {
		panic(fmt.Errorf("unable to load config file: %w", err))
	}

	return config
}

// Load reads the config file, or only the environment when the file does not exist.
func Load(path string) (*Config, error) {
	config := &Config{}

	_, err := os.Stat(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		if err = cleanenv.ReadEnv(config); err != nil {
			return nil, fmt.Errorf("failed to read environment: %w", err)
		}
	case err != nil:
		return nil, fmt.Errorf("failed to stat config file: %w", err)
	default:
		if err = cleanenv.ReadConfig(path, config); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	config.Players.setDefaults()

	if err = config.Players.validate(); err != nil {
		return nil, fmt.Errorf("invalid players: %w", err)
	}

	return config, nil
}

func (that *Redis) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", that.Host, that.Port)
}

// Seats returns the players in turn order.
func (that *Players) Seats() [2]entity.Player {
	return [2]entity.Player{that.First, that.Second}
}

func (that *Players) setDefaults() {
	if that.First.Symbol.IsEmpty() {
		that.First.Symbol = entity.PlayerX
	}

	if that.Second.Symbol.IsEmpty() {
		that.Second.Symbol = entity.PlayerO
	}

	if that.First.Name == "" {
		that.First.Name = "Bot " + string(that.First.Symbol)
	}

	if that.Second.Name == "" {
		that.Second.Name = "Bot " + string(that.Second.Symbol)
	}
}

func (that *Players) validate() error {
	for _, player := range that.Seats() {
		if !player.Symbol.IsValid() {
			return fmt.Errorf("%w: %s plays %q", apperror.ErrInvalidSymbol, player.Name, player.Symbol)
		}
	}

	if that.First.Symbol == that.Second.Symbol {
		return fmt.Errorf("%w: %s", apperror.ErrSameSymbol, that.First.Symbol)
	}

	return nil
}
