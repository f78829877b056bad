package cli

import (
	"fmt"
	"os"

	"charview/internal/config"
	"charview/internal/flags"
	"charview/internal/logging"
	"charview/internal/view"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	buildVersion = "dev"
	buildCommit  = "unknown"
	buildDate    = "unknown"
)

var (
	cfg        = config.New()
	configPath string
	logger     = zap.NewNop()

	// exitCode is set by the command that ran and returned by Execute once
	// cobra has finished (deferred cleanup and PersistentPostRun included).
	exitCode = view.ExitOK
)

var rootCmd = &cobra.Command{
	Use:   "charview",
	Short: "Fetch the characters list from a GraphQL API and render it",
	Long: `charview issues one fixed GraphQL query for the characters collection and
renders every result (name, image and optionally status) as terminal text, an
HTML fragment, JSON or YAML.

Examples:
	# Render the list in the terminal
	charview show

	# Include each character's status
	charview show --status

	# Write an HTML fragment
	charview show --format html > characters.html

	# Watch the fetch live in a terminal UI
	charview watch --status

	# Print the query document
	charview query --status

Configuration:
	Flags may also be read from an HCL file (--config). Explicit flags win over
	file values. The file can read environment variables as env.NAME.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if configPath != "" {
			f, err := config.LoadFile(configPath)
			if err != nil {
				return err
			}
			if err := f.Apply(cfg, cmd.Flags().Changed); err != nil {
				return err
			}
		}

		level := cfg.Runtime.LogLevel
		if cfg.Runtime.Verbose {
			level = "debug"
		}
		l, err := logging.New(level, cfg.Runtime.LogFormat, os.Stderr)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		logger = l
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, flags.FlagConfig, "", "Read settings from this HCL file")
	rootCmd.PersistentFlags().BoolVar(&cfg.Runtime.Verbose, flags.FlagVerbose, false, "Enable verbose logging (logs every GraphQL request)")
	rootCmd.PersistentFlags().StringVar(&cfg.Runtime.LogLevel, flags.FlagLogLevel, cfg.Runtime.LogLevel, "Log level: debug|info|warn|error")
	rootCmd.PersistentFlags().StringVar(&cfg.Runtime.LogFormat, flags.FlagLogFormat, cfg.Runtime.LogFormat, "Log format: console|json")
}

func SetBuildInfo(version, commit, date string) {
	if version != "" {
		buildVersion = version
	}
	if commit != "" {
		buildCommit = commit
	}
	if date != "" {
		buildDate = date
	}

	rootCmd.Version = fmt.Sprintf("%s (%s) %s", buildVersion, buildCommit, buildDate)
	rootCmd.SetVersionTemplate("{{.Version}}\n")
}

func BuildInfo() (version, commit, date string) {
	return buildVersion, buildCommit, buildDate
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(view.ExitFatal)
	}
	os.Exit(exitCode)
}
