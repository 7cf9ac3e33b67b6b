package cli

import (
	"context"
	"fmt"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	application "github.com/rocketscienceinc/tictactoe-rl/internal"
)

// tictactoe play
func Play(deps *dependencies) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "play",
		Short: "Play a game against the trained bot",
		Args:  cobra.NoArgs,
		Long: heredoc.Doc(`play starts a game between you and the bot of the other
			seat. Cells are numbered 1 to 9, row by row, and the empty ones
			show their number on the board.

			When rewards are distributed in the configuration the bot learns
			from the game.`),

		RunE: func(cmd *cobra.Command, _ []string) error {
			name, _ := cmd.Flags().GetString("name")
			second, _ := cmd.Flags().GetBool("second")
			random, _ := cmd.Flags().GetBool("random")
			quiet, _ := cmd.Flags().GetBool("quiet")

			return deps.withApp(cmd, func(ctx context.Context, app *application.App) error {
				outcome, err := app.Play(ctx, cmd.InOrStdin(), cmd.OutOrStdout(), application.PlayOptions{
					HumanName:  name,
					HumanFirst: !second,
					RandomBot:  random,
					Display:    !quiet,
				})
				if err != nil {
					return err
				}

				if quiet {
					fmt.Fprintln(cmd.OutOrStdout(), outcome)
				}

				return nil
			})
		},
	}

	cmd.Flags().String("name", "You", "Your name")
	cmd.Flags().Bool("second", false, "Let the bot move first")
	cmd.Flags().Bool("random", false, "Play against a random bot")
	cmd.Flags().BoolP("quiet", "q", false, "Do not render the board")

	return cmd
}
