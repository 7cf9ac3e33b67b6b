package policy

import (
	"context"
	"errors"
	"fmt"

	"github.com/rocketscienceinc/tictactoe-rl/internal/apperror"
)

// Store persists value tables by agent name.
type Store interface {
	Load(ctx context.Context, name string) (map[string]float64, error)
	Save(ctx context.Context, name string, values map[string]float64) error
}

// LoadInto restores the table saved under name. A missing policy leaves the table
// untouched and reports false.
func LoadInto(ctx context.Context, store Store, name string, table *ValueTable) (bool, error) {
	values, err := store.Load(ctx, name)
	if errors.Is(err, apperror.ErrPolicyNotFound) {
		return false, nil
	}

	if err != nil {
		return false, fmt.Errorf("failed to load policy %q: %w", name, err)
	}

	table.Restore(values)

	return true, nil
}

// SaveFrom persists a snapshot of the table under name.
func SaveFrom(ctx context.Context, store Store, name string, table *ValueTable) error {
	if err := store.Save(ctx, name, table.Snapshot()); err != nil {
		return fmt.Errorf("failed to save policy %q: %w", name, err)
	}

	return nil
}
