package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"charview/internal/characters"
	"charview/internal/config"
	"charview/internal/query"
	"charview/internal/render"
	"charview/internal/tui"
	"charview/internal/view"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Show the characters list in a live terminal view",
	Long: `Show the characters list in a live terminal view.

The view starts on "Loading..." and redraws once the fetch settles. Press q to
quit; quitting before the fetch settles discards its result.`,
	Args: cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		exitCode = runWatch(ctx, cfg, logger, tui.Run)
	},
}

// programFunc drives a live view until it quits; tui.Run in production.
type programFunc func(ctx context.Context, runner *query.Runner, fields characters.FieldSet, opts ...tea.ProgramOption) (render.Frame, error)

func runWatch(ctx context.Context, cfg *config.Config, logger *zap.Logger, program programFunc) int {
	if logger == nil {
		logger = zap.NewNop()
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return view.ExitFatal
	}

	client, err := newClient(ctx, cfg, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to create GraphQL client: %v\n", err)
		return view.ExitFatal
	}
	defer client.CloseIdleConnections()

	fields := view.FieldsFor(cfg)
	fetch := query.ForClient(client, fields)
	timeout := cfg.Runtime.Timeout
	runner := query.NewRunner(func(ctx context.Context) ([]characters.Character, error) {
		ctx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()
		return fetch(ctx)
	})

	final, err := program(ctx, runner, fields)
	if err != nil {
		if ctx.Err() != nil {
			return view.ExitCanceled
		}
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return view.ExitFatal
	}
	logger.Debug("watch finished", zap.Stringer("state", final.State))
	return view.ExitCode(final, nil)
}

func init() {
	rootCmd.AddCommand(watchCmd)
	addSourceFlags(watchCmd)
}
