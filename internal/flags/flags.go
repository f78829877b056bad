package flags

// Package flags defines canonical CLI flag names shared across the CLI and
// the config file loader, so an explicitly set flag can win over a file value.
// IMPORTANT: These are flag *names* without leading dashes.
// Example usage:
//
//	cmd.Flags().StringVar(&cfg.Source.Endpoint, flags.FlagEndpoint, "", "...")
//	arg := "--" + flags.FlagEndpoint
const (
	// Global
	FlagConfig    = "config"
	FlagVerbose   = "verbose"
	FlagLogLevel  = "log-level"
	FlagLogFormat = "log-format"

	// Source
	FlagEndpoint = "endpoint"
	FlagStatus   = "status"
	FlagToken    = "token"

	// Output
	FlagFormat    = "format"
	FlagOut       = "out"
	FlagOutFormat = "out-format"
	FlagNoConsole = "no-console"
	FlagProgress  = "progress"
	FlagColor     = "color"

	// Runtime
	FlagTimeout = "timeout"
)
