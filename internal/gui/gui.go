//go:build !nogui

package gui

import (
	"strings"

	"filechooser/internal/chooser"
	"filechooser/internal/config"
	"filechooser/internal/log"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/dustin/go-humanize"
)

// Window is the desktop frontend of a chooser.Dialog.
type Window struct {
	dialog  *chooser.Dialog
	window  fyne.Window
	entries []chooser.Entry

	title   *widget.Label
	home    *widget.Button
	dotdot  *widget.Button
	parent  *widget.Button
	current *widget.Label
	list    *widget.List
	hidden  *widget.Check
	filter  *widget.Entry
	status  *widget.Label
	accept  *widget.Button
	cancel  *widget.Button

	// OnResolved runs once the dialog has a result and the window is hidden.
	OnResolved func()

	unsubscribe func()
}

// NewWindow builds the picker window for d inside a.
func NewWindow(a fyne.App, d *chooser.Dialog) *Window {
	w := &Window{
		dialog: d,
		window: a.NewWindow(d.Options().Title),
	}
	w.build()

	w.unsubscribe = d.State().Subscribe(func(chooser.Snapshot) { w.Refresh() })
	w.Refresh()
	return w
}

func (w *Window) build() {
	s := w.dialog.State()

	w.title = widget.NewLabelWithStyle("", fyne.TextAlignLeading, fyne.TextStyle{Bold: true})
	w.home = widget.NewButtonWithIcon("", theme.HomeIcon(), func() {
		if !s.NavigateHome() {
			w.status.SetText("Working directory unavailable")
		}
	})
	w.dotdot = widget.NewButton("..", func() { s.ClickBreadcrumb(chooser.SegmentDotDot) })
	w.parent = widget.NewButton("", func() { s.ClickBreadcrumb(chooser.SegmentParent) })
	w.current = widget.NewLabelWithStyle("", fyne.TextAlignLeading, fyne.TextStyle{Bold: true})
	refresh := widget.NewButtonWithIcon("", theme.ViewRefreshIcon(), w.Refresh)

	w.list = widget.NewList(
		func() int {
			return len(w.entries)
		},
		func() fyne.CanvasObject {
			return container.NewHBox(
				widget.NewIcon(theme.FolderIcon()),
				widget.NewLabel("template name"),
				layout.NewSpacer(),
				widget.NewLabel("template size"),
			)
		},
		func(id widget.ListItemID, obj fyne.CanvasObject) {
			if id < 0 || id >= len(w.entries) {
				return
			}
			e := w.entries[id]
			row := obj.(*fyne.Container)
			icon := row.Objects[0].(*widget.Icon)
			name := row.Objects[1].(*widget.Label)
			size := row.Objects[3].(*widget.Label)

			if e.IsDir {
				icon.SetResource(theme.FolderIcon())
				size.SetText("")
			} else {
				icon.SetResource(theme.FileIcon())
				size.SetText(humanize.Bytes(uint64(e.Size)))
			}
			name.SetText(e.Name)
		},
	)
	w.list.OnSelected = func(id widget.ListItemID) {
		if id < 0 || id >= len(w.entries) {
			return
		}
		w.dialog.Activate(w.entries[id])
	}

	w.hidden = widget.NewCheck("Hidden files", func(show bool) {
		if w.dialog.Lister().ShowHidden != show {
			w.dialog.Lister().ShowHidden = show
			w.Refresh()
		}
	})
	w.filter = widget.NewEntry()
	w.filter.SetPlaceHolder("Filter, e.g. *.go")
	w.filter.OnSubmitted = func(text string) {
		g, err := chooser.CompilePattern(strings.TrimSpace(text))
		if err != nil {
			w.status.SetText(err.Error())
			return
		}
		w.dialog.Lister().Pattern = g
		w.Refresh()
	}

	w.status = widget.NewLabel("")
	w.accept = widget.NewButtonWithIcon("", theme.ConfirmIcon(), func() {
		if w.dialog.Accept() {
			w.finish()
			return
		}
		w.status.SetText("Nothing selected")
	})
	w.accept.Importance = widget.HighImportance
	w.cancel = widget.NewButtonWithIcon("", theme.CancelIcon(), func() {
		if w.dialog.Cancel() {
			w.finish()
		}
	})

	top := container.NewVBox(
		w.title,
		container.NewHBox(w.home, w.dotdot, w.parent, widget.NewLabel("›"), w.current, layout.NewSpacer(), refresh),
	)
	bottom := container.NewVBox(
		container.NewBorder(nil, nil, w.hidden, nil, w.filter),
		w.status,
		container.NewHBox(layout.NewSpacer(), w.cancel, w.accept),
	)
	w.window.SetContent(container.NewBorder(top, bottom, nil, nil, w.list))
	w.window.Resize(fyne.NewSize(640, 480))

	// The close icon cancels.
	w.window.SetCloseIntercept(func() {
		w.dialog.Close()
		w.finish()
	})
}

// Refresh re-renders the dialog into the widgets.
func (w *Window) Refresh() {
	view := w.dialog.Render()
	if !view.Visible {
		w.window.Hide()
		return
	}

	w.window.SetTitle(view.Title)
	w.title.SetText(view.Title)
	w.accept.SetText(view.AcceptLabel)
	w.cancel.SetText(view.CancelLabel)
	w.hidden.SetChecked(w.dialog.Lister().ShowHidden)

	bc := view.Breadcrumb
	w.parent.SetText(bc.ParentLabel)
	w.current.SetText(bc.CurrentLabel)
	if bc.CanGoUp {
		w.dotdot.Enable()
		w.parent.Enable()
	} else {
		w.dotdot.Disable()
		w.parent.Disable()
	}

	if view.CanAccept {
		w.accept.Enable()
	} else {
		w.accept.Disable()
	}

	w.entries = view.Entries
	w.list.UnselectAll()
	w.list.Refresh()
	for i, e := range w.entries {
		if !e.IsDir && e.FullPath == view.Selected {
			w.list.Select(i)
			break
		}
	}

	w.status.SetText(bc.Path)
}

func (w *Window) finish() {
	if w.unsubscribe != nil {
		w.unsubscribe()
		w.unsubscribe = nil
	}
	w.window.Hide()
	if res, ok := w.dialog.Result(); ok {
		log.LogWithFields(log.F("path", res.Path), log.F("accepted", res.Accepted)).Debug("window resolved")
	}
	if w.OnResolved != nil {
		w.OnResolved()
	}
}

func (w *Window) Show() { w.window.Show() }
func (w *Window) FyneWindow() fyne.Window { return w.window }
func (w *Window) Entries() []chooser.Entry { return w.entries }

// Run shows d in a desktop window until it resolves and returns its result.
// Closing the window counts as cancel.
func Run(d *chooser.Dialog, cfg *config.Config) (chooser.Result, error) {
	a := app.NewWithID("io.github.filechooser")
	if cfg != nil && cfg.Theme.Name == "light" {
		a.Settings().SetTheme(theme.LightTheme())
	}
	w := NewWindow(a, d)
	w.OnResolved = a.Quit
	w.Show()
	a.Run()

	res, _ := d.Result()
	return res, nil
}

// IsGUIAvailable returns whether the GUI is available in this build
func IsGUIAvailable() bool {
	return true
}
