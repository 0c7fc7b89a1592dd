package tui

import (
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// StatusBar shows one line of status text, with a spinner while a listing
// is in flight.
type StatusBar struct {
	text     string
	isError  bool
	style    lipgloss.Style
	errStyle lipgloss.Style
	spinner  spinner.Model
	loading  bool
}

func NewStatusBar(styles Styles) *StatusBar {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = styles.Status

	return &StatusBar{
		style:    styles.Status,
		errStyle: styles.Error,
		spinner:  s,
	}
}

func (s *StatusBar) SetLoading(loading bool) {
	s.loading = loading
}

func (s *StatusBar) Loading() bool {
	return s.loading
}

func (s *StatusBar) SetText(text string) {
	s.text = text
	s.isError = false
}

func (s *StatusBar) SetError(text string) {
	s.text = text
	s.isError = true
}

func (s *StatusBar) Text() string {
	return s.text
}

// Tick starts the spinner.
func (s *StatusBar) Tick() tea.Cmd {
	return s.spinner.Tick
}

func (s *StatusBar) Update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	s.spinner, cmd = s.spinner.Update(msg)
	return cmd
}

func (s *StatusBar) View() string {
	if s.loading {
		return s.style.Render(s.spinner.View() + " Loading...")
	}
	if s.isError {
		return s.errStyle.Render(s.text)
	}
	return s.style.Render(s.text)
}
