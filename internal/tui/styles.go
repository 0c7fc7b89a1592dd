package tui

import (
	"filechooser/internal/config"

	"github.com/charmbracelet/lipgloss"
)

// Styles holds the rendered look of the picker, built from a config theme.
type Styles struct {
	App       lipgloss.Style
	Title     lipgloss.Style
	DotDot    lipgloss.Style
	Crumb     lipgloss.Style
	Current   lipgloss.Style
	Directory lipgloss.Style
	File      lipgloss.Style
	Symlink   lipgloss.Style
	Hidden    lipgloss.Style
	Cursor    lipgloss.Style
	Selected  lipgloss.Style
	Size      lipgloss.Style
	Status    lipgloss.Style
	Error     lipgloss.Style
	Accept    lipgloss.Style
	Cancel    lipgloss.Style
	Disabled  lipgloss.Style
	Muted     lipgloss.Style
}

// NewStyles builds styles from the theme colors of cfg.
func NewStyles(cfg *config.Config) Styles {
	if cfg == nil {
		cfg = config.New()
	}
	theme := cfg.Theme
	primary := lipgloss.Color(theme.Primary)
	muted := lipgloss.Color(theme.Muted)

	button := lipgloss.NewStyle().Padding(0, 2).Bold(true)

	return Styles{
		App: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(theme.Border)).
			Padding(0, 1),
		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(primary).
			MarginBottom(1),
		DotDot: lipgloss.NewStyle().
			Foreground(lipgloss.Color(theme.DotDot)).
			Bold(true),
		Crumb: lipgloss.NewStyle().
			Foreground(primary),
		Current: lipgloss.NewStyle().
			Foreground(primary).
			Bold(true).
			Underline(true),
		Directory: lipgloss.NewStyle().
			Foreground(primary).
			Bold(true),
		File: lipgloss.NewStyle(),
		Symlink: lipgloss.NewStyle().
			Italic(true),
		Hidden: lipgloss.NewStyle().
			Foreground(muted),
		Cursor: lipgloss.NewStyle().
			Reverse(true),
		Selected: lipgloss.NewStyle().
			Foreground(lipgloss.Color(theme.Selected)).
			Bold(true),
		Size: lipgloss.NewStyle().
			Foreground(muted),
		Status: lipgloss.NewStyle().
			Foreground(muted),
		Error: lipgloss.NewStyle().
			Foreground(lipgloss.Color(theme.Cancel)),
		Accept: button.
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color(theme.Accept)),
		Cancel: button.
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color(theme.Cancel)),
		Disabled: button.
			Foreground(muted),
		Muted: lipgloss.NewStyle().
			Foreground(muted),
	}
}
