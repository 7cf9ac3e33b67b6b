package repository

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/redis/go-redis/v9"

	"github.com/rocketscienceinc/tictactoe-rl/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-rl/internal/entity"
)

const (
	fieldGames  = "games"
	fieldTies   = "ties"
	prefixWin   = "win:"
	resultsPref = "results:"
)

type ResultRepository interface {
	Record(ctx context.Context, runID string, outcome entity.Outcome) error
	Get(ctx context.Context, runID string) (entity.Tally, error)
}

type dbResult struct {
	client *redis.Client
}

func NewResultRepository(client *redis.Client) ResultRepository {
	return &dbResult{
		client: client,
	}
}

// Record counts one finished game of the run. Ongoing outcomes are ignored.
func (that *dbResult) Record(ctx context.Context, runID string, outcome entity.Outcome) error {
	if !outcome.IsTerminal() {
		return nil
	}

	resultKey := resultsPref + runID

	_, err := that.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HIncrBy(ctx, resultKey, fieldGames, 1)
		if outcome.IsTie() {
			pipe.HIncrBy(ctx, resultKey, fieldTies, 1)
		} else {
			pipe.HIncrBy(ctx, resultKey, prefixWin+string(outcome.Winner), 1)
		}

		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to record result: %w", err)
	}

	return nil
}

func (that *dbResult) Get(ctx context.Context, runID string) (entity.Tally, error) {
	resultKey := resultsPref + runID

	response, err := that.client.HGetAll(ctx, resultKey).Result()
	if err != nil {
		return entity.Tally{}, fmt.Errorf("failed to get results: %w", err)
	}

	if len(response) == 0 {
		return entity.Tally{}, apperror.ErrRunNotFound
	}

	tally := entity.NewTally()
	for field, raw := range response {
		count, err := strconv.Atoi(raw)
		if err != nil {
			return entity.Tally{}, fmt.Errorf("failed to parse field %q: %w", field, err)
		}

		switch {
		case field == fieldGames:
			tally.Games = count
		case field == fieldTies:
			tally.Ties = count
		case strings.HasPrefix(field, prefixWin):
			tally.Wins[entity.Symbol(strings.TrimPrefix(field, prefixWin))] = count
		}
	}

	return tally, nil
}
