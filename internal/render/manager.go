package render

import (
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// Sink receives every frame the view draws. Close is called once, after the
// last frame.
type Sink interface {
	Write(f Frame) error
	Close() error
}

// Manager is a Sink that forwards each frame to several sinks. A sink whose
// Write fails is dropped from later frames but still closed; its error is
// reported by Close. Write only fails once no healthy sink is left.
type Manager struct {
	sinks     []Sink
	broken    []bool
	writeErrs []error
}

func NewManager() *Manager {
	return &Manager{}
}

func (m *Manager) AddSink(s Sink) error {
	switch {
	case m == nil:
		return fmt.Errorf("render manager is nil")
	case s == nil:
		return fmt.Errorf("sink must not be nil")
	}
	m.sinks = append(m.sinks, s)
	m.broken = append(m.broken, false)
	return nil
}

func (m *Manager) Len() int {
	if m == nil {
		return 0
	}
	return len(m.sinks)
}

func (m *Manager) Write(f Frame) error {
	if m == nil {
		return fmt.Errorf("render manager is nil")
	}
	healthy := 0
	for i, s := range m.sinks {
		if m.broken[i] {
			continue
		}
		if err := s.Write(f); err != nil {
			m.broken[i] = true
			m.writeErrs = append(m.writeErrs, fmt.Errorf("write %T: %w", s, err))
			continue
		}
		healthy++
	}
	if healthy == 0 && len(m.sinks) > 0 {
		return fmt.Errorf("no healthy sinks left: %w", errors.Join(m.writeErrs...))
	}
	return nil
}

// Close closes all sinks concurrently and reports every write and close
// failure.
func (m *Manager) Close() error {
	if m == nil {
		return fmt.Errorf("render manager is nil")
	}
	errs := make([]error, len(m.sinks))
	var g errgroup.Group
	for i, s := range m.sinks {
		g.Go(func() error {
			if err := s.Close(); err != nil {
				errs[i] = fmt.Errorf("close %T: %w", s, err)
			}
			return nil
		})
	}
	_ = g.Wait()
	if err := errors.Join(append(m.writeErrs, errs...)...); err != nil {
		return fmt.Errorf("close sinks: %w", err)
	}
	return nil
}
