package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"charview/internal/render"
)

const DefaultEndpoint = "https://rickandmortyapi.com/graphql"

type Config struct {
	// MAINTAINER NOTE: If you add/change/remove config fields, keep these in sync:
	// - CLI flags in internal/cli/show.go
	// - HCL file schema in internal/config/file.go
	Source  Source
	Output  Output
	Runtime Runtime
}

type Source struct {
	// Endpoint is the GraphQL endpoint URL (see --endpoint).
	Endpoint string

	// Status requests and renders each character's status (see --status).
	Status bool

	// Token is an optional bearer token (see --token). CHARVIEW_TOKEN is used
	// when empty.
	Token string
}

type Output struct {
	// Format controls the console output format (see --format).
	// Allowed values: text, html, json, yaml.
	Format string

	// Out writes the final frame to this path as well (see --out).
	Out string

	// OutFormat selects the format for --out (see --out-format).
	// If empty, it is inferred from the --out file extension.
	OutFormat string

	// NoConsole suppresses console output (see --no-console).
	NoConsole bool

	// Progress prints the Loading frame before the result in text mode (see --progress).
	Progress bool

	// Color forces colored text output on or off (see --color).
	// Allowed values: auto, always, never.
	Color string
}

type Runtime struct {
	// Timeout bounds the single fetch (see --timeout). Must be > 0.
	Timeout time.Duration

	// Verbose logs every GraphQL request at debug level.
	Verbose bool

	// LogLevel is one of: debug, info, warn, error.
	LogLevel string

	// LogFormat is one of: console, json.
	LogFormat string
}

var formats = []string{render.FormatText, render.FormatHTML, render.FormatJSON, render.FormatYAML}

func New() *Config {
	return &Config{
		Source: Source{
			Endpoint: DefaultEndpoint,
		},
		Output: Output{
			Format: "text",
			Color:  "auto",
		},
		Runtime: Runtime{
			Timeout:   30 * time.Second,
			LogLevel:  "warn",
			LogFormat: "console",
		},
	}
}

func (c *Config) Validate() error {
	// Source validation
	c.Source.Endpoint = strings.TrimSpace(c.Source.Endpoint)
	if c.Source.Endpoint == "" {
		return errors.New("--endpoint must not be empty")
	}
	u, err := url.Parse(c.Source.Endpoint)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("invalid --endpoint value %q: must be an absolute http(s) URL", c.Source.Endpoint)
	}
	c.Source.Token = strings.TrimSpace(c.Source.Token)

	// Output validation
	c.Output.Format = normalizeEnumValue(c.Output.Format)
	if c.Output.Format == "" {
		return errors.New("--format must be one of: text, html, json, yaml")
	}
	if !oneOf(c.Output.Format, formats...) {
		return fmt.Errorf("unsupported --format: %s (must be one of: text, html, json, yaml)", c.Output.Format)
	}

	c.Output.Color = normalizeEnumValue(c.Output.Color)
	if c.Output.Color == "" {
		c.Output.Color = "auto"
	}
	if !oneOf(c.Output.Color, "auto", "always", "never") {
		return fmt.Errorf("unsupported --color: %s (must be one of: auto, always, never)", c.Output.Color)
	}

	if c.Output.Out != "" {
		c.Output.OutFormat = normalizeEnumValue(c.Output.OutFormat)
		if c.Output.OutFormat == "" {
			f, err := render.FormatFromPath(c.Output.Out)
			if err != nil {
				return fmt.Errorf("%w; use --out-format", err)
			}
			c.Output.OutFormat = f
		} else if !oneOf(c.Output.OutFormat, formats...) {
			return fmt.Errorf("unsupported output format: %s", c.Output.OutFormat)
		}
	}

	if c.Output.NoConsole && c.Output.Out == "" {
		return errors.New("--no-console requires --out")
	}

	// Runtime validation
	if c.Runtime.Timeout <= 0 {
		return errors.New("--timeout must be > 0")
	}

	c.Runtime.LogLevel = normalizeEnumValue(c.Runtime.LogLevel)
	if c.Runtime.LogLevel == "" {
		c.Runtime.LogLevel = "warn"
	}
	if !oneOf(c.Runtime.LogLevel, "debug", "info", "warn", "error") {
		return fmt.Errorf("unsupported --log-level: %s (must be one of: debug, info, warn, error)", c.Runtime.LogLevel)
	}

	c.Runtime.LogFormat = normalizeEnumValue(c.Runtime.LogFormat)
	if c.Runtime.LogFormat == "" {
		c.Runtime.LogFormat = "console"
	}
	if !oneOf(c.Runtime.LogFormat, "console", "json") {
		return fmt.Errorf("unsupported --log-format: %s (must be one of: console, json)", c.Runtime.LogFormat)
	}

	return nil
}

func normalizeEnumValue(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}

func oneOf(v string, allowed ...string) bool {
	for _, a := range allowed {
		if v == a {
			return true
		}
	}
	return false
}
