//go:build nogui

package gui

import (
	"filechooser/internal/chooser"
	"filechooser/internal/config"
	"filechooser/internal/errors"
)

// Run is a stub for builds with the GUI disabled.
func Run(d *chooser.Dialog, cfg *config.Config) (chooser.Result, error) {
	return chooser.Result{}, errors.New("GUI not available in this build, use the terminal picker")
}

// IsGUIAvailable returns whether the GUI is available in this build
func IsGUIAvailable() bool {
	return false
}
