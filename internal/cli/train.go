package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/briandowns/spinner"
	"github.com/spf13/cobra"

	application "github.com/rocketscienceinc/tictactoe-rl/internal"
)

// tictactoe train
func Train(deps *dependencies) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "train",
		Short: "Train both bots by self-play",
		Args:  cobra.NoArgs,
		Long: heredoc.Doc(`train lets the bots of both seats play each other and
			rewards them after every game. Once done, every bot plays
			greedily against a random opponent to measure its strength.`),

		RunE: func(cmd *cobra.Command, _ []string) error {
			episodes, _ := cmd.Flags().GetInt("episodes")
			games, _ := cmd.Flags().GetInt("evaluation-games")

			return deps.withApp(cmd, func(ctx context.Context, app *application.App) error {
				spin := startSpinner(" training...")
				report, err := app.Train(ctx, episodes)
				spin.Stop()
				if err != nil {
					return err
				}

				fmt.Fprintf(cmd.OutOrStdout(), "trained %d games in %s (run %s)\n",
					report.Tally.Games, report.Duration.Round(time.Millisecond), report.RunID)

				if games <= 0 {
					return nil
				}

				spin = startSpinner(" evaluating...")
				evaluations, err := app.Evaluate(ctx, games)
				spin.Stop()
				if err != nil {
					return err
				}

				printEvaluations(cmd, evaluations)

				return nil
			})
		},
	}

	cmd.Flags().IntP("episodes", "n", deps.conf.Training.Episodes, "Number of self-play games")
	cmd.Flags().Int("evaluation-games", deps.conf.Training.EvaluationGames, "Games against a random bot after training")

	return cmd
}

// tictactoe evaluate
func Evaluate(deps *dependencies) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "evaluate",
		Short: "Measure the bots against a random opponent",
		Args:  cobra.NoArgs,

		RunE: func(cmd *cobra.Command, _ []string) error {
			games, _ := cmd.Flags().GetInt("games")

			return deps.withApp(cmd, func(ctx context.Context, app *application.App) error {
				spin := startSpinner(" evaluating...")
				evaluations, err := app.Evaluate(ctx, games)
				spin.Stop()
				if err != nil {
					return err
				}

				printEvaluations(cmd, evaluations)

				return nil
			})
		},
	}

	cmd.Flags().IntP("games", "n", deps.conf.Training.EvaluationGames, "Number of games per bot")

	return cmd
}

func printEvaluations(cmd *cobra.Command, evaluations [2]application.Evaluation) {
	for _, evaluation := range evaluations {
		tally := evaluation.Report.Tally
		symbol := evaluation.Learner.Symbol

		fmt.Fprintf(cmd.OutOrStdout(), "%s vs random: %d wins, %d ties, %d losses (%.1f%% wins)\n",
			evaluation.Learner.Name, tally.Wins[symbol], tally.Ties, tally.Losses(symbol), 100*tally.WinRate(symbol))
	}
}

func startSpinner(suffix string) *spinner.Spinner {
	spin := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(os.Stderr))
	spin.Suffix = suffix
	spin.Start()

	return spin
}
