package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"charview/internal/config"
	"charview/internal/flags"
	"charview/internal/graphql"
	"charview/internal/view"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Fetch the characters list once and render it",
	Long: `Fetch the characters list once and render it.

The view shows the heading "My first Apollo app 🚀" followed by either
"Loading...", "Error : <message>" or one item per character in the order the
server returned them. Without --status an item is the character's name and
image; with --status the line reads "<name> ------- <status>".

Output:
	Console output is controlled by --format (default: text).
	- text: colored terminal text (--progress also prints the Loading frame)
	- html: the HTML fragment of the final frame
	- json / yaml: a machine-readable document of the final frame
	--out writes the final frame to a file as well (format inferred from the
	extension, or --out-format). --no-console suppresses stdout.

Authentication:
	The default endpoint needs no token. For endpoints that do, pass --token or
	set CHARVIEW_TOKEN.

Exit codes:
	0 = characters rendered
	1 = fetch failed (the error frame was rendered)
	2 = interrupted before the fetch settled
	3 = fatal error (invalid configuration or output failure)

Examples:
	charview show
	charview show --status --format html --out characters.html
	charview show --endpoint http://localhost:4000/graphql --timeout 5s
`,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		exitCode = runShow(ctx, cfg, cmd.OutOrStdout(), logger)
	},
}

// runShow validates cfg, builds the client and renders one view.
func runShow(ctx context.Context, cfg *config.Config, stdout io.Writer, logger *zap.Logger) int {
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

	return view.Run(ctx, cfg, client, stdout, logger)
}

func newClient(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*graphql.Client, error) {
	token, source := graphql.ResolveAuthToken(cfg.Source.Token)
	if logger != nil {
		logger.Debug("auth token resolved", zap.String("source", string(source)))
	}

	opts := []graphql.Option{graphql.WithToken(token)}
	if cfg.Runtime.Verbose && logger != nil {
		opts = append(opts, graphql.WithVerbose(logger))
	}
	return graphql.NewClient(ctx, cfg.Source.Endpoint, opts...)
}

func addSourceFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&cfg.Source.Endpoint, flags.FlagEndpoint, cfg.Source.Endpoint, "GraphQL endpoint URL")
	cmd.Flags().BoolVar(&cfg.Source.Status, flags.FlagStatus, false, "Request and render each character's status")
	cmd.Flags().StringVar(&cfg.Source.Token, flags.FlagToken, "", "Bearer token for the endpoint (default: $CHARVIEW_TOKEN)")
	cmd.Flags().DurationVar(&cfg.Runtime.Timeout, flags.FlagTimeout, cfg.Runtime.Timeout, "Fetch timeout")
}

func init() {
	rootCmd.AddCommand(showCmd)

	addSourceFlags(showCmd)

	// Output
	showCmd.Flags().StringVar(&cfg.Output.Format, flags.FlagFormat, cfg.Output.Format, "Console output format: text|html|json|yaml")
	showCmd.Flags().StringVar(&cfg.Output.Out, flags.FlagOut, "", "Also write the final frame to this path")
	showCmd.Flags().StringVar(&cfg.Output.OutFormat, flags.FlagOutFormat, "", "Format for --out: text|html|json|yaml (default: inferred from file extension)")
	showCmd.Flags().BoolVar(&cfg.Output.NoConsole, flags.FlagNoConsole, false, "Suppress console output (use with --out)")
	showCmd.Flags().BoolVar(&cfg.Output.Progress, flags.FlagProgress, false, "Print the Loading frame before the result (text format)")
	showCmd.Flags().StringVar(&cfg.Output.Color, flags.FlagColor, cfg.Output.Color, "Color policy for text output: auto|always|never")
}
