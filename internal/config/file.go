package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"charview/internal/flags"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
)

// File is the decoded form of an HCL config file. Nil fields were not set.
//
//	endpoint = env.CHARVIEW_ENDPOINT
//	status   = true
//
//	output {
//	  format = "html"
//	  out    = "site/index.html"
//	}
//
//	runtime {
//	  timeout   = "10s"
//	  log_level = "info"
//	}
type File struct {
	Endpoint *string      `hcl:"endpoint,optional"`
	Status   *bool        `hcl:"status,optional"`
	Token    *string      `hcl:"token,optional"`
	Output   *FileOutput  `hcl:"output,block"`
	Runtime  *FileRuntime `hcl:"runtime,block"`
}

type FileOutput struct {
	Format    *string `hcl:"format,optional"`
	Out       *string `hcl:"out,optional"`
	OutFormat *string `hcl:"out_format,optional"`
	NoConsole *bool   `hcl:"no_console,optional"`
	Progress  *bool   `hcl:"progress,optional"`
	Color     *string `hcl:"color,optional"`
}

type FileRuntime struct {
	Timeout   *string `hcl:"timeout,optional"`
	Verbose   *bool   `hcl:"verbose,optional"`
	LogLevel  *string `hcl:"log_level,optional"`
	LogFormat *string `hcl:"log_format,optional"`
}

// LoadFile parses and decodes an HCL config file.
func LoadFile(path string) (*File, error) {
	parser := hclparse.NewParser()
	f, diags := parser.ParseHCLFile(path)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, diags)
	}
	return decodeFile(path, f)
}

// ParseFile decodes HCL source held in memory; filename is used in diagnostics.
func ParseFile(src []byte, filename string) (*File, error) {
	parser := hclparse.NewParser()
	f, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse config file %s: %w", filename, diags)
	}
	return decodeFile(filename, f)
}

func decodeFile(path string, f *hcl.File) (*File, error) {
	var out File
	if diags := gohcl.DecodeBody(f.Body, evalContext(), &out); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode config file %s: %w", path, diags)
	}
	return &out, nil
}

// evalContext exposes the process environment as the "env" object.
func evalContext() *hcl.EvalContext {
	vars := map[string]cty.Value{}
	for _, kv := range os.Environ() {
		name, value, ok := strings.Cut(kv, "=")
		if !ok || name == "" {
			continue
		}
		vars[name] = cty.StringVal(value)
	}
	return &hcl.EvalContext{
		Variables: map[string]cty.Value{
			"env": cty.ObjectVal(vars),
		},
	}
}

// Apply copies file values into c, skipping any setting whose CLI flag was
// set explicitly. changed may be nil.
func (f *File) Apply(c *Config, changed func(flag string) bool) error {
	if f == nil || c == nil {
		return nil
	}
	set := func(flag string) bool {
		return changed == nil || !changed(flag)
	}

	if f.Endpoint != nil && set(flags.FlagEndpoint) {
		c.Source.Endpoint = *f.Endpoint
	}
	if f.Status != nil && set(flags.FlagStatus) {
		c.Source.Status = *f.Status
	}
	if f.Token != nil && set(flags.FlagToken) {
		c.Source.Token = *f.Token
	}

	if o := f.Output; o != nil {
		if o.Format != nil && set(flags.FlagFormat) {
			c.Output.Format = *o.Format
		}
		if o.Out != nil && set(flags.FlagOut) {
			c.Output.Out = *o.Out
		}
		if o.OutFormat != nil && set(flags.FlagOutFormat) {
			c.Output.OutFormat = *o.OutFormat
		}
		if o.NoConsole != nil && set(flags.FlagNoConsole) {
			c.Output.NoConsole = *o.NoConsole
		}
		if o.Progress != nil && set(flags.FlagProgress) {
			c.Output.Progress = *o.Progress
		}
		if o.Color != nil && set(flags.FlagColor) {
			c.Output.Color = *o.Color
		}
	}

	if r := f.Runtime; r != nil {
		if r.Timeout != nil && set(flags.FlagTimeout) {
			d, err := time.ParseDuration(strings.TrimSpace(*r.Timeout))
			if err != nil {
				return fmt.Errorf("invalid runtime.timeout %q: %w", *r.Timeout, err)
			}
			c.Runtime.Timeout = d
		}
		if r.Verbose != nil && set(flags.FlagVerbose) {
			c.Runtime.Verbose = *r.Verbose
		}
		if r.LogLevel != nil && set(flags.FlagLogLevel) {
			c.Runtime.LogLevel = *r.LogLevel
		}
		if r.LogFormat != nil && set(flags.FlagLogFormat) {
			c.Runtime.LogFormat = *r.LogFormat
		}
	}
	return nil
}
