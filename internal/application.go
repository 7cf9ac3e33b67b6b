package application

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/rocketscienceinc/tictactoe-rl/internal/agent"
	"github.com/rocketscienceinc/tictactoe-rl/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-rl/internal/config"
	"github.com/rocketscienceinc/tictactoe-rl/internal/display"
	"github.com/rocketscienceinc/tictactoe-rl/internal/entity"
	"github.com/rocketscienceinc/tictactoe-rl/internal/environment"
	"github.com/rocketscienceinc/tictactoe-rl/internal/policy"
	"github.com/rocketscienceinc/tictactoe-rl/internal/repository"
	"github.com/rocketscienceinc/tictactoe-rl/internal/repository/storage"
	"github.com/rocketscienceinc/tictactoe-rl/internal/usecase"
	"github.com/rocketscienceinc/tictactoe-rl/transport/rest"
)

var ErrAddrNotFound = errors.New("redis address string is empty")

// App wires the game environment, the policies of both seats and the optional redis storage.
type App struct {
	logger *slog.Logger
	conf   *config.Config

	redis    *storage.RedisStorage
	policies policy.Store
	results  repository.ResultRepository

	// tables holds the value table of each seat, in turn order.
	tables [2]*policy.ValueTable
}

// Evaluation is the result of a greedy learner playing a random agent.
type Evaluation struct {
	Learner entity.Player
	Report  usecase.Report
}

// New builds the app and loads stored policies when redis is enabled.
func New(ctx context.Context, logger *slog.Logger, conf *config.Config) (*App, error) {
	app := &App{
		logger: logger.With("component", "app"),
		conf:   conf,
	}

	for i := range app.tables {
		app.tables[i] = policy.NewValueTable(
			policy.WithLearningRate(conf.Training.LearningRate),
			policy.WithInitialValue(conf.Training.InitialValue),
		)
	}

	if !conf.Redis.Enabled {
		return app, nil
	}

	redisAddrString := conf.Redis.GetRedisAddr()
	if redisAddrString == "" {
		return nil, ErrAddrNotFound
	}

	redisStorage, err := storage.NewRedisStorage(ctx, redisAddrString)
	if err != nil {
		return nil, fmt.Errorf("could not connect to redis storage: %w", err)
	}

	app.redis = redisStorage
	app.policies = repository.NewPolicyRepository(redisStorage.Connection)
	app.results = repository.NewResultRepository(redisStorage.Connection)

	if err = app.loadPolicies(ctx); err != nil {
		app.Close()
		return nil, err
	}

	return app, nil
}

func (that *App) Close() {
	if that.redis == nil {
		return
	}

	if err := that.redis.Close(); err != nil {
		that.logger.Error("could not close redis storage", "error", err)
	}
}

// Train lets the learners of both seats play each other with rewards, then saves their policies.
func (that *App) Train(ctx context.Context, episodes int) (usecase.Report, error) {
	seats := that.conf.Players.Seats()
	learners := [2]agent.Agent{
		that.learner(seats[0], 0, that.conf.Training.Epsilon),
		that.learner(seats[1], 1, that.conf.Training.Epsilon),
	}

	trainer := that.trainer(that.conf.Game.Display, that.conf.Training.ProgressEvery)

	report, err := trainer.Run(ctx, learners, episodes, true)
	if saveErr := that.savePolicies(context.WithoutCancel(ctx)); saveErr != nil {
		err = errors.Join(err, saveErr)
	}

	if err != nil {
		return report, fmt.Errorf("training failed: %w", err)
	}

	return report, nil
}

// Evaluate plays each seat's greedy learner against a random agent, without rewards.
func (that *App) Evaluate(ctx context.Context, games int) ([2]Evaluation, error) {
	seats := that.conf.Players.Seats()
	trainer := that.trainer(false, 0)

	var evaluations [2]Evaluation
	for i, seat := range seats {
		opponent := seats[1-i]
		agents := [2]agent.Agent{
			that.learner(seat, i, 0),
			agent.NewRandom("Random "+string(opponent.Symbol), opponent.Symbol, nil),
		}

		report, err := trainer.Run(ctx, agents, games, false)
		if err != nil {
			return evaluations, fmt.Errorf("evaluation of %s failed: %w", seat.Name, err)
		}

		evaluations[i] = Evaluation{Learner: seat, Report: report}
	}

	return evaluations, nil
}

// PlayOptions configure a game between a human and the bot.
type PlayOptions struct {
	HumanName  string
	HumanFirst bool
	// RandomBot replaces the trained bot with a random one.
	RandomBot bool
	Display   bool
}

// Play runs one game between a human reading from in and the bot of the other seat.
// With rewards distributed the bot learns from the game and its policy is saved.
func (that *App) Play(ctx context.Context, in io.Reader, out io.Writer, opts PlayOptions) (entity.Outcome, error) {
	seats := that.conf.Players.Seats()

	humanSeat := 1
	if opts.HumanFirst {
		humanSeat = 0
	}
	botSeat := 1 - humanSeat

	var agents [2]agent.Agent
	agents[humanSeat] = agent.NewHuman(opts.HumanName, seats[humanSeat].Symbol, in, out)
	if opts.RandomBot {
		agents[botSeat] = agent.NewRandom(seats[botSeat].Name, seats[botSeat].Symbol, nil)
	} else {
		agents[botSeat] = that.learner(seats[botSeat], botSeat, 0)
	}

	env := environment.New(that.logger, display.NewConsole(out))

	outcome, err := env.Game(agents, environment.Options{
		DistributeReward: that.conf.Game.DistributeReward,
		Display:          opts.Display,
	})
	if err != nil {
		return outcome, fmt.Errorf("game failed: %w", err)
	}

	if that.results != nil {
		if err = that.results.Record(ctx, "play", outcome); err != nil {
			that.logger.Error("failed to record outcome", "error", err)
		}
	}

	if that.conf.Game.DistributeReward && !opts.RandomBot {
		if err = that.savePolicies(ctx); err != nil {
			return outcome, err
		}
	}

	return outcome, nil
}

// Serve exposes the policy of the given seat over HTTP until the context is done.
func (that *App) Serve(ctx context.Context, seat int) error {
	symbol := that.conf.Players.Seats()[seat].Symbol
	server := rest.New(that.logger, usecase.NewAdvisor(that.tables[seat], symbol))

	if err := server.Start(ctx, that.conf.HTTPPort); err != nil {
		return fmt.Errorf("HTTP server error: %w", err)
	}

	return nil
}

// Results returns the stored tally of a run.
func (that *App) Results(ctx context.Context, runID string) (entity.Tally, error) {
	if that.results == nil {
		return entity.Tally{}, fmt.Errorf("%w: redis is disabled", apperror.ErrStorageDisabled)
	}

	tally, err := that.results.Get(ctx, runID)
	if err != nil {
		return entity.Tally{}, fmt.Errorf("failed to get results: %w", err)
	}

	return tally, nil
}

func (that *App) learner(player entity.Player, seat int, epsilon float64) *agent.Learner {
	return agent.NewLearner(player.Name, player.Symbol, that.tables[seat], agent.WithEpsilon(epsilon))
}

func (that *App) trainer(render bool, progressEvery int) *usecase.Trainer {
	env := environment.New(that.logger, display.NewConsole(os.Stdout))

	return usecase.NewTrainer(that.logger, env, that.results, usecase.TrainOptions{
		AlternateStart: !that.conf.Training.FixedStart,
		ProgressEvery:  progressEvery,
		Display:        render,
	})
}

func (that *App) loadPolicies(ctx context.Context) error {
	log := that.logger.With("method", "loadPolicies")

	for i, seat := range that.conf.Players.Seats() {
		found, err := policy.LoadInto(ctx, that.policies, seat.Name, that.tables[i])
		if err != nil {
			return err
		}

		log.Info("policy loaded", "player", seat.Name, "found", found, "states", that.tables[i].Len())
	}

	return nil
}

func (that *App) savePolicies(ctx context.Context) error {
	if that.policies == nil {
		return nil
	}

	log := that.logger.With("method", "savePolicies")

	for i, seat := range that.conf.Players.Seats() {
		if err := policy.SaveFrom(ctx, that.policies, seat.Name, that.tables[i]); err != nil {
			return err
		}

		log.Info("policy saved", "player", seat.Name, "states", that.tables[i].Len())
	}

	return nil
}
