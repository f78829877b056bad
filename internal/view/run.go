package view

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"charview/internal/characters"
	"charview/internal/config"
	"charview/internal/graphql"
	"charview/internal/query"
	"charview/internal/render"

	"github.com/fatih/color"
	"go.uber.org/zap"
)

// Exit code contract:
// 0 = characters rendered
// 1 = fetch failed (the error frame was rendered)
// 2 = unmounted before the fetch settled
// 3 = fatal error (nothing could be rendered)
const (
	ExitOK       = 0
	ExitFailed   = 1
	ExitCanceled = 2
	ExitFatal    = 3
)

func ExitCode(final render.Frame, err error) int {
	if err != nil {
		if errors.Is(err, ErrUnmounted) {
			return ExitCanceled
		}
		return ExitFatal
	}
	switch final.State {
	case query.Failed:
		return ExitFailed
	case query.Pending:
		// The view was closed before the fetch settled.
		return ExitCanceled
	}
	return ExitOK
}

// FieldsFor maps the config to the requested field set.
func FieldsFor(cfg *config.Config) characters.FieldSet {
	if cfg.Source.Status {
		return characters.FieldsWithStatus
	}
	return characters.FieldsBasic
}

// Colored resolves the --color policy for w.
func Colored(policy string, w io.Writer) bool {
	switch policy {
	case "always":
		return true
	case "never":
		return false
	}
	if w != os.Stdout {
		return false
	}
	return !color.NoColor
}

// SetupSinks builds the console and file sinks from the config.
func SetupSinks(cfg *config.Config, stdout io.Writer) (*render.Manager, error) {
	if stdout == nil {
		stdout = os.Stdout
	}
	m := render.NewManager()

	if !cfg.Output.NoConsole {
		s, err := render.NewSink(stdout, cfg.Output.Format, Colored(cfg.Output.Color, stdout), cfg.Output.Progress)
		if err != nil {
			m.Close()
			return nil, err
		}
		if err := m.AddSink(s); err != nil {
			m.Close()
			return nil, err
		}
	}

	if cfg.Output.Out != "" {
		fs, err := render.NewFileSink(cfg.Output.Out, cfg.Output.OutFormat)
		if err != nil {
			m.Close()
			return nil, err
		}
		if err := m.AddSink(fs); err != nil {
			m.Close()
			return nil, err
		}
	}

	if m.Len() == 0 {
		return nil, fmt.Errorf("no output configured")
	}
	return m, nil
}

// Run mounts one view against client, renders it and returns the process
// exit code.
func Run(ctx context.Context, cfg *config.Config, client *graphql.Client, stdout io.Writer, logger *zap.Logger) int {
	if logger == nil {
		logger = zap.NewNop()
	}

	sinks, err := SetupSinks(cfg, stdout)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to set up output: %v\n", err)
		return ExitFatal
	}

	fields := FieldsFor(cfg)
	logger.Info("fetching characters",
		zap.String("endpoint", client.Endpoint.String()),
		zap.Stringer("fields", fields))

	runner := query.NewRunner(query.ForClient(client, fields))
	v := New(runner, fields, sinks,
		WithFetchTimeout(cfg.Runtime.Timeout),
		WithLogger(logger))

	final, mountErr := v.Mount(ctx)
	if closeErr := sinks.Close(); closeErr != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", closeErr)
		if mountErr == nil {
			return ExitFatal
		}
	}
	if mountErr != nil && !errors.Is(mountErr, ErrUnmounted) {
		fmt.Fprintf(os.Stderr, "Error: %v\n", mountErr)
	}

	logger.Debug("view settled", zap.Stringer("state", final.State), zap.Int("records", len(final.Records)))
	return ExitCode(final, mountErr)
}
