// Package tui is a live terminal rendering of the view: it subscribes to the
// query runner and redraws on every state transition until the user quits.
package tui

import (
	"context"
	"fmt"
	"strings"

	"charview/internal/characters"
	"charview/internal/query"
	"charview/internal/render"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

type resultMsg query.Result

// unmountedMsg is sent when the subscription closes without a terminal state.
type unmountedMsg struct{}

type Model struct {
	sub    <-chan query.Result
	fields characters.FieldSet
	frame  render.Frame
	styles styles
	width  int
}

// NewModel subscribes to runner. The runner is started by Run, or by the
// caller when the model is driven directly.
func NewModel(runner *query.Runner, fields characters.FieldSet) Model {
	return Model{
		sub:    runner.Subscribe(),
		fields: fields,
		frame:  render.NewFrame(query.Result{State: query.Pending}, fields),
		styles: defaultStyles(),
	}
}

func waitForResult(sub <-chan query.Result) tea.Cmd {
	return func() tea.Msg {
		res, ok := <-sub
		if !ok {
			return unmountedMsg{}
		}
		return resultMsg(res)
	}
}

func (m Model) Init() tea.Cmd {
	return waitForResult(m.sub)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case resultMsg:
		res := query.Result(msg)
		m.frame = render.NewFrame(res, m.fields)
		if res.Terminal() {
			return m, nil
		}
		return m, waitForResult(m.sub)
	case unmountedMsg:
		return m, nil
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m Model) View() string {
	var b strings.Builder
	b.WriteString(m.styles.Title.Render(m.frame.Title))
	b.WriteString("\n")

	switch m.frame.State {
	case query.Pending:
		b.WriteString(m.styles.Muted.Render(m.frame.Body()))
		b.WriteString("\n")
	case query.Failed:
		b.WriteString(m.styles.Error.Render(m.frame.Body()))
		b.WriteString("\n")
	default:
		for _, r := range m.frame.Records {
			b.WriteString(m.styles.Name.Render(r.Name))
			if r.HasStatus {
				b.WriteString(render.StatusSeparator)
				b.WriteString(m.statusStyle(r.Status).Render(r.Status))
			}
			b.WriteString(m.styles.Image.Render(r.Image))
			b.WriteString("\n")
		}
	}

	b.WriteString(m.styles.Footer.Render("q: quit"))
	b.WriteString("\n")
	if m.width > 0 {
		return lipgloss.NewStyle().MaxWidth(m.width).Render(b.String())
	}
	return b.String()
}

func (m Model) statusStyle(status string) lipgloss.Style {
	switch strings.ToLower(status) {
	case "alive":
		return m.styles.Alive
	case "dead":
		return m.styles.Dead
	default:
		return m.styles.Unknown
	}
}

// Frame is the most recent frame drawn by the model.
func (m Model) Frame() render.Frame {
	return m.frame
}

// Run starts runner and drives the model until the user quits or ctx ends.
// It returns the last frame shown.
func Run(ctx context.Context, runner *query.Runner, fields characters.FieldSet, opts ...tea.ProgramOption) (render.Frame, error) {
	if ctx == nil {
		return render.Frame{}, fmt.Errorf("tui: nil context")
	}
	m := NewModel(runner, fields)
	if err := runner.Start(ctx); err != nil {
		return render.Frame{}, err
	}
	defer runner.Close()

	opts = append([]tea.ProgramOption{tea.WithContext(ctx)}, opts...)
	final, err := tea.NewProgram(m, opts...).Run()
	if err != nil {
		return render.Frame{}, fmt.Errorf("tui: %w", err)
	}
	fm, ok := final.(Model)
	if !ok {
		return render.Frame{}, fmt.Errorf("tui: unexpected model type %T", final)
	}
	return fm.Frame(), nil
}
