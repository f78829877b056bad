package render

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const (
	FormatText = "text"
	FormatHTML = "html"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// FormatFromPath infers an output format from a file extension.
func FormatFromPath(path string) (string, error) {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".html", ".htm":
		return FormatHTML, nil
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".txt":
		return FormatText, nil
	case "":
		return "", fmt.Errorf("cannot infer output format from file extension (missing extension)")
	default:
		return "", fmt.Errorf("cannot infer output format from file extension %q", ext)
	}
}

// FileSink writes frames in any supported format to a file.
type FileSink struct {
	path  string
	file  *os.File
	inner Sink
}

func NewFileSink(path string, format string) (*FileSink, error) {
	if path == "" {
		return nil, fmt.Errorf("output path required")
	}

	if format == "" {
		inferred, err := FormatFromPath(path)
		if err != nil {
			return nil, err
		}
		format = inferred
	}

	dir := filepath.Dir(path)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create output file: %w", err)
	}

	inner, err := NewSink(f, format, false, false)
	if err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return nil, err
	}

	return &FileSink{path: path, file: f, inner: inner}, nil
}

func (s *FileSink) Write(f Frame) error {
	return s.inner.Write(f)
}

func (s *FileSink) Close() error {
	err := s.inner.Close()
	if closeErr := s.file.Close(); closeErr != nil && err == nil {
		err = closeErr
	}
	return err
}
