package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	application "github.com/rocketscienceinc/tictactoe-rl/internal"
	"github.com/rocketscienceinc/tictactoe-rl/internal/config"
)

// Root returns the tictactoe command with every subcommand registered.
func Root(logger *slog.Logger, level *slog.LevelVar, conf *config.Config) *cobra.Command {
	root := &cobra.Command{
		Use:  "tictactoe",
		Args: cobra.NoArgs,
		Long: heredoc.Doc(`tictactoe trains tic-tac-toe bots by self-play and lets
			you play against them.

			Policies are kept in memory unless redis is enabled in the
			configuration, in which case they are loaded before and saved
			after every command that changes them.`),

		SilenceErrors: true,
		SilenceUsage:  true,

		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			// If --trace flag is provided, log every move.
			if cmd.Flag("trace").Changed {
				level.Set(slog.LevelDebug)
			}
		},
	}

	root.PersistentFlags().BoolP("trace", "t", false, "Show Trace Information")

	deps := &dependencies{logger: logger, conf: conf}

	root.AddCommand(Train(deps))
	root.AddCommand(Evaluate(deps))
	root.AddCommand(Play(deps))
	root.AddCommand(Serve(deps))
	root.AddCommand(Results(deps))

	return root
}

type dependencies struct {
	logger *slog.Logger
	conf   *config.Config
}

// withApp runs fn with a connected app and a context cancelled on SIGINT or SIGTERM.
func (that *dependencies) withApp(cmd *cobra.Command, fn func(ctx context.Context, app *application.App) error) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := application.New(ctx, that.logger, that.conf)
	if err != nil {
		return fmt.Errorf("failed to start app: %w", err)
	}
	defer app.Close()

	return fn(ctx, app)
}
