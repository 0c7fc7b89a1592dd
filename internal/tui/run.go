package tui

import (
	"os"

	"filechooser/internal/chooser"
	"filechooser/internal/config"
	"filechooser/internal/errors"
	"filechooser/internal/log"
	"filechooser/internal/watch"

	tea "github.com/charmbracelet/bubbletea"
)

// Run shows d full-screen until it resolves and returns its result. The UI
// draws on stderr so stdout stays free for the chosen path. A program that
// exits without a decision counts as cancelled.
func Run(d *chooser.Dialog, cfg *config.Config) (chooser.Result, error) {
	if cfg == nil {
		cfg = config.New()
	}

	opts := []Option{WithPattern(cfg.Chooser.Pattern)}
	if cfg.Chooser.Watch {
		w, err := watch.New()
		if err != nil {
			log.LogWithError(err).Warn("directory watching disabled")
		} else if err := w.Start(); err != nil {
			log.LogWithError(err).Warn("directory watching disabled")
		} else {
			defer w.Stop()
			opts = append(opts, WithWatcher(w))
		}
	}

	m := New(d, NewStyles(cfg), opts...)
	defer m.Close()

	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithOutput(os.Stderr))
	if _, err := p.Run(); err != nil {
		return chooser.Result{}, errors.Wrap(err, "picker failed")
	}

	res, _ := d.Result()
	return res, nil
}
