package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/rocketscienceinc/tictactoe-rl/internal/agent"
	"github.com/rocketscienceinc/tictactoe-rl/internal/entity"
	"github.com/rocketscienceinc/tictactoe-rl/internal/environment"
)

type resultRepo interface {
	Record(ctx context.Context, runID string, outcome entity.Outcome) error
}

type gamePlayer interface {
	Game(agents [2]agent.Agent, opts environment.Options) (entity.Outcome, error)
}

type TrainOptions struct {
	// AlternateStart lets the second agent move first in every other game.
	AlternateStart bool
	// ProgressEvery logs the running tally after this many games, never when zero.
	ProgressEvery int
	// Display renders every game.
	Display bool
}

// Report summarizes a batch of games.
type Report struct {
	RunID    string
	Tally    entity.Tally
	Duration time.Duration
}

// Trainer plays batches of games, for training with rewards or for evaluation without.
type Trainer struct {
	logger  *slog.Logger
	env     gamePlayer
	results resultRepo
	opts    TrainOptions
}

// NewTrainer returns a trainer. results may be nil to keep outcomes in memory only.
func NewTrainer(logger *slog.Logger, env gamePlayer, results resultRepo, opts TrainOptions) *Trainer {
	return &Trainer{
		logger:  logger.With("component", "trainer"),
		env:     env,
		results: results,
		opts:    opts,
	}
}

// Run plays the given number of games between the agents. It stops early when
// the context is done, returning the games finished so far with the context error.
func (that *Trainer) Run(ctx context.Context, agents [2]agent.Agent, games int, distributeReward bool) (Report, error) {
	report := Report{
		RunID: uuid.NewString(),
		Tally: entity.NewTally(),
	}
	log := that.logger.With("method", "Run", "run_id", report.RunID)

	started := time.Now()

	log.Info("run started", "games", games, "distribute_reward", distributeReward,
		"first", agents[0].Name(), "second", agents[1].Name())

	for i := range games {
		if err := ctx.Err(); err != nil {
			report.Duration = time.Since(started)
			return report, fmt.Errorf("run stopped after %d games: %w", i, err)
		}

		outcome, err := that.env.Game(that.seats(agents, i), environment.Options{
			DistributeReward: distributeReward,
			Display:          that.opts.Display,
		})
		if err != nil {
			forget(agents)
			report.Duration = time.Since(started)
			return report, fmt.Errorf("game %d failed: %w", i+1, err)
		}

		if !distributeReward {
			forget(agents)
		}

		report.Tally.Add(outcome)
		that.record(ctx, log, report.RunID, outcome)

		if that.opts.ProgressEvery > 0 && (i+1)%that.opts.ProgressEvery == 0 {
			log.Info("run progress", tallyAttrs(agents, report.Tally)...)
		}
	}

	report.Duration = time.Since(started)
	log.Info("run finished", append(tallyAttrs(agents, report.Tally), "duration", report.Duration)...)

	return report, nil
}

func (that *Trainer) seats(agents [2]agent.Agent, game int) [2]agent.Agent {
	if that.opts.AlternateStart && game%2 == 1 {
		return [2]agent.Agent{agents[1], agents[0]}
	}

	return agents
}

// record stores the outcome; a storage failure is logged and does not stop the run.
func (that *Trainer) record(ctx context.Context, log *slog.Logger, runID string, outcome entity.Outcome) {
	if that.results == nil {
		return
	}

	if err := that.results.Record(ctx, runID, outcome); err != nil {
		log.Error("failed to record outcome", "error", err)
	}
}

// forget clears the boards learners kept from a game that will not be rewarded.
func forget(agents [2]agent.Agent) {
	for _, a := range agents {
		if forgetter, ok := a.(agent.Forgetter); ok {
			forgetter.Forget()
		}
	}
}

func tallyAttrs(agents [2]agent.Agent, tally entity.Tally) []any {
	return []any{
		"games", tally.Games,
		"ties", tally.Ties,
		agents[0].Name(), tally.Wins[agents[0].Symbol()],
		agents[1].Name(), tally.Wins[agents[1].Symbol()],
	}
}
