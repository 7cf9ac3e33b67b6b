package repository

import (
	"context"
	"fmt"
	"strconv"

	"github.com/redis/go-redis/v9"

	"github.com/rocketscienceinc/tictactoe-rl/internal/apperror"
)

type PolicyRepository interface {
	Save(ctx context.Context, name string, values map[string]float64) error
	Load(ctx context.Context, name string) (map[string]float64, error)
	Delete(ctx context.Context, name string) error
}

type dbPolicy struct {
	client *redis.Client
}

func NewPolicyRepository(client *redis.Client) PolicyRepository {
	return &dbPolicy{
		client: client,
	}
}

// Save replaces the stored values of the policy with the given ones.
func (that *dbPolicy) Save(ctx context.Context, name string, values map[string]float64) error {
	policyKey := "policy:" + name

	fields := make(map[string]any, len(values))
	for board, value := range values {
		fields[board] = strconv.FormatFloat(value, 'g', -1, 64)
	}

	_, err := that.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, policyKey)
		if len(fields) > 0 {
			pipe.HSet(ctx, policyKey, fields)
		}

		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to save policy: %w", err)
	}

	return nil
}

func (that *dbPolicy) Load(ctx context.Context, name string) (map[string]float64, error) {
	policyKey := "policy:" + name

	response, err := that.client.HGetAll(ctx, policyKey).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get policy: %w", err)
	}

	// redis drops empty hashes, so a missing key and an empty policy look the same
	if len(response) == 0 {
		return nil, apperror.ErrPolicyNotFound
	}

	values := make(map[string]float64, len(response))
	for board, raw := range response {
		value, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("failed to parse value of board %q: %w", board, err)
		}
		values[board] = value
	}

	return values, nil
}

func (that *dbPolicy) Delete(ctx context.Context, name string) error {
	policyKey := "policy:" + name

	deleted, err := that.client.Del(ctx, policyKey).Result()
	if err != nil {
		return fmt.Errorf("failed to delete policy: %w", err)
	}

	if deleted == 0 {
		return apperror.ErrPolicyNotFound
	}

	return nil
}
