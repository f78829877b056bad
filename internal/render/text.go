package render

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"charview/internal/query"

	"github.com/fatih/color"
)

// TextSink writes every frame to a terminal as it arrives.
type TextSink struct {
	writer io.Writer
	mu     sync.Mutex

	// progress also prints the Pending frame; otherwise only terminal frames
	// are written.
	progress bool

	heading *color.Color
	failure *color.Color
	alive   *color.Color
	dead    *color.Color
	unknown *color.Color
	faint   *color.Color
}

func NewTextSink(w io.Writer, colored, progress bool) *TextSink {
	if w == nil {
		w = os.Stdout
	}
	s := &TextSink{
		writer:   w,
		progress: progress,
		heading:  color.New(color.Bold),
		failure:  color.New(color.FgRed),
		alive:    color.New(color.FgGreen),
		dead:     color.New(color.FgRed),
		unknown:  color.New(color.FgYellow),
		faint:    color.New(color.Faint),
	}
	for _, c := range []*color.Color{s.heading, s.failure, s.alive, s.dead, s.unknown, s.faint} {
		if colored {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return s
}

func (s *TextSink) Write(f Frame) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if f.State == query.Pending && !s.progress {
		return nil
	}
	if err := s.writeFrame(f); err != nil {
		return err
	}
	return flush(s.writer)
}

func (s *TextSink) writeFrame(f Frame) error {
	if _, err := s.heading.Fprintln(s.writer, f.Title); err != nil {
		return err
	}
	if _, err := fmt.Fprintln(s.writer); err != nil {
		return err
	}

	switch f.State {
	case query.Pending:
		_, err := fmt.Fprintln(s.writer, f.Body())
		return err
	case query.Failed:
		_, err := s.failure.Fprintln(s.writer, f.Body())
		return err
	}

	for _, r := range f.Records {
		if _, err := fmt.Fprint(s.writer, r.Name); err != nil {
			return err
		}
		if r.HasStatus {
			if _, err := fmt.Fprint(s.writer, StatusSeparator); err != nil {
				return err
			}
			if _, err := s.statusColor(r.Status).Fprint(s.writer, r.Status); err != nil {
				return err
			}
		}
		if _, err := s.faint.Fprintf(s.writer, "  %s\n", r.Image); err != nil {
			return err
		}
	}
	return nil
}

func (s *TextSink) statusColor(status string) *color.Color {
	switch strings.ToLower(status) {
	case "alive":
		return s.alive
	case "dead":
		return s.dead
	default:
		return s.unknown
	}
}

func (s *TextSink) Close() error { return nil }
