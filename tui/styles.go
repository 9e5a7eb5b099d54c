package tui

import "github.com/charmbracelet/lipgloss"

var (
	Primary     = lipgloss.Color("#101F38")
	Accent      = lipgloss.Color("#8BC34A")
	Muted       = lipgloss.Color("#6b7585")
	Destructive = lipgloss.Color("#e53935")
)

// Styles holds the lipgloss styles used by the screens.
type Styles struct {
	Title   lipgloss.Style
	Label   lipgloss.Style
	Focused lipgloss.Style
	Error   lipgloss.Style
	Help    lipgloss.Style
	Dialog  lipgloss.Style
	Empty   lipgloss.Style
}

func DefaultStyles() Styles {
	return Styles{
		Title:   lipgloss.NewStyle().Bold(true).Foreground(Accent).MarginBottom(1),
		Label:   lipgloss.NewStyle().Width(12),
		Focused: lipgloss.NewStyle().Width(12).Bold(true).Foreground(Accent),
		Error:   lipgloss.NewStyle().Foreground(Destructive),
		Help:    lipgloss.NewStyle().Foreground(Muted).MarginTop(1),
		Dialog: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Destructive).
			Padding(1, 2),
		Empty: lipgloss.NewStyle().Foreground(Muted).Italic(true),
	}
}
