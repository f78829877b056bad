package render

import (
	"encoding/json"
	"fmt"
	"io"
	"sync"

	"gopkg.in/yaml.v3"
)

// Document is the machine-readable form of a frame.
type Document struct {
	Title      string          `json:"title" yaml:"title"`
	State      string          `json:"state" yaml:"state"`
	Message    string          `json:"message,omitempty" yaml:"message,omitempty"`
	Characters []DisplayRecord `json:"characters,omitempty" yaml:"characters,omitempty"`
}

func DocumentFromFrame(f Frame) Document {
	return Document{
		Title:      f.Title,
		State:      f.State.String(),
		Message:    f.Message,
		Characters: f.Records,
	}
}

// StructuredSink writes the last frame as JSON or YAML on Close.
type StructuredSink struct {
	writer io.Writer
	format string // "json" | "yaml"
	mu     sync.Mutex
	last   *Frame
}

func NewStructuredSink(w io.Writer, format string) (*StructuredSink, error) {
	if w == nil {
		return nil, fmt.Errorf("structured sink writer must not be nil")
	}
	if format != FormatJSON && format != FormatYAML {
		return nil, fmt.Errorf("unsupported structured format: %s", format)
	}
	return &StructuredSink{writer: w, format: format}, nil
}

func (s *StructuredSink) Write(f Frame) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.last = &f
	return nil
}

func (s *StructuredSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.last == nil {
		return nil
	}
	doc := DocumentFromFrame(*s.last)

	switch s.format {
	case FormatJSON:
		encoder := json.NewEncoder(s.writer)
		encoder.SetIndent("", "  ")
		encoder.SetEscapeHTML(false)
		if err := encoder.Encode(doc); err != nil {
			return err
		}
	case FormatYAML:
		encoder := yaml.NewEncoder(s.writer)
		encoder.SetIndent(2)
		if err := encoder.Encode(doc); err != nil {
			return err
		}
		if err := encoder.Close(); err != nil {
			return err
		}
	}
	return flush(s.writer)
}
