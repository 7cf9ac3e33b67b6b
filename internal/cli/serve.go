package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	application "github.com/rocketscienceinc/tictactoe-rl/internal"
)

// tictactoe serve
func Serve(deps *dependencies) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the moves of a trained bot over HTTP",
		Args:  cobra.NoArgs,

		RunE: func(cmd *cobra.Command, _ []string) error {
			seat, _ := cmd.Flags().GetInt("seat")
			if seat != 1 && seat != 2 {
				return fmt.Errorf("seat must be 1 or 2, got %d", seat)
			}

			return deps.withApp(cmd, func(ctx context.Context, app *application.App) error {
				return app.Serve(ctx, seat-1)
			})
		},
	}

	cmd.Flags().Int("seat", 1, "Serve the policy of the first or second seat, for that seat's symbol only")

	return cmd
}

// tictactoe results
func Results(deps *dependencies) *cobra.Command {
	return &cobra.Command{
		Use:   "results run-id",
		Short: "Show the stored tally of a training run",
		Args:  cobra.ExactArgs(1),

		RunE: func(cmd *cobra.Command, args []string) error {
			return deps.withApp(cmd, func(ctx context.Context, app *application.App) error {
				tally, err := app.Results(ctx, args[0])
				if err != nil {
					return err
				}

				fmt.Fprintf(cmd.OutOrStdout(), "games: %d, ties: %d\n", tally.Games, tally.Ties)
				for symbol, wins := range tally.Wins {
					fmt.Fprintf(cmd.OutOrStdout(), "%s wins: %d\n", symbol, wins)
				}

				return nil
			})
		},
	}
}
