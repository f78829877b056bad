package tui

import "github.com/charmbracelet/lipgloss"

type styles struct {
	Title   lipgloss.Style
	Muted   lipgloss.Style
	Error   lipgloss.Style
	Name    lipgloss.Style
	Image   lipgloss.Style
	Alive   lipgloss.Style
	Dead    lipgloss.Style
	Unknown lipgloss.Style
	Footer  lipgloss.Style
}

func defaultStyles() styles {
	return styles{
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#7D56F4")).
			MarginBottom(1),
		Muted:   lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		Error:   lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
		Name:    lipgloss.NewStyle().Bold(true),
		Image:   lipgloss.NewStyle().Foreground(lipgloss.Color("241")).PaddingLeft(2),
		Alive:   lipgloss.NewStyle().Foreground(lipgloss.Color("42")),
		Dead:    lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
		Unknown: lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		Footer:  lipgloss.NewStyle().Foreground(lipgloss.Color("241")).MarginTop(1),
	}
}
