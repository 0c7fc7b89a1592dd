package chooser

import (
	"filechooser/internal/log"

	"github.com/google/uuid"
)

const (
	DefaultTitle       = "Select a file"
	DefaultDirTitle    = "Select a directory"
	DefaultAcceptLabel = "Accept"
	DefaultCancelLabel = "Cancel"
)

// Options is the host configuration of a dialog. Hosts may change it between
// renders; it is re-applied on every Render.
type Options struct {
	Visible         bool
	OnlyDirectories bool
	// BaseDirectory seeds the first directory shown. Empty means the working directory.
	BaseDirectory string
	Title         string
	AcceptLabel   string
	CancelLabel   string
}

// WithDefaults fills empty labels.
func (o Options) WithDefaults() Options {
	if o.Title == "" {
		o.Title = DefaultTitle
		if o.OnlyDirectories {
			o.Title = DefaultDirTitle
		}
	}
	if o.AcceptLabel == "" {
		o.AcceptLabel = DefaultAcceptLabel
	}
	if o.CancelLabel == "" {
		o.CancelLabel = DefaultCancelLabel
	}
	return o
}

// ResultFunc receives the dialog's single result.
type ResultFunc func(path string, accepted bool)

// View is everything a frontend needs to draw one frame.
type View struct {
	Visible     bool
	Title       string
	AcceptLabel string
	CancelLabel string
	Mode        SelectionMode
	Breadcrumb  Breadcrumb
	Entries     []Entry
	Selected    string
	// CanAccept is false when pressing accept would do nothing.
	CanAccept bool
}

// Dialog binds a State to host options and a result callback that fires
// exactly once.
type Dialog struct {
	id       string
	state    *State
	lister   *Lister
	opts     Options
	onResult ResultFunc

	resolved bool
	result   Result
	log      *log.Logger
}

func NewDialog(state *State, lister *Lister, opts Options, onResult ResultFunc) *Dialog {
	if state == nil {
		state = NewState(nil)
	}
	if lister == nil {
		lister = NewLister(state.FileSystem())
	}

	id := uuid.NewString()
	d := &Dialog{
		id:       id,
		state:    state,
		lister:   lister,
		opts:     opts.WithDefaults(),
		onResult: onResult,
		log:      log.LogWithFields(log.F("session", id)),
	}
	d.Sync()
	return d
}

func (d *Dialog) ID() string { return d.id }
func (d *Dialog) State() *State { return d.state }
func (d *Dialog) Lister() *Lister { return d.lister }
func (d *Dialog) Options() Options { return d.opts }

// SetOptions replaces the host configuration; it takes effect on the next Sync.
func (d *Dialog) SetOptions(opts Options) {
	d.opts = opts.WithDefaults()
}

// Sync applies the per-render host configuration: selection mode every time,
// base directory once.
func (d *Dialog) Sync() {
	d.state.SetSelectionMode(d.opts.OnlyDirectories)
	if d.state.ApplyBaseDirectoryOnce(d.opts.BaseDirectory) {
		d.log.With(log.F("path", d.state.CurrentPath())).Debug("base directory applied")
	}
}

// Render syncs and produces the frame for the current state. A hidden dialog
// keeps its state but lists nothing.
func (d *Dialog) Render() View {
	d.Sync()

	v := d.Frame()
	if d.opts.Visible {
		v.Entries = d.lister.ListEntries(d.state.CurrentPath(), d.state.Mode())
	}
	return v
}

// Frame describes the current state without syncing or reading the
// directory. Frontends that list asynchronously call Sync from their update
// loop and draw from Frame.
func (d *Dialog) Frame() View {
	_, canAccept := d.state.ResolveAccept()
	return View{
		Visible:     d.opts.Visible,
		Title:       d.opts.Title,
		AcceptLabel: d.opts.AcceptLabel,
		CancelLabel: d.opts.CancelLabel,
		Mode:        d.state.Mode(),
		Breadcrumb:  d.state.Breadcrumb(),
		Selected:    d.state.Selected(),
		CanAccept:   canAccept && !d.resolved,
	}
}

// Activate handles a click on a listed entry: directories are entered,
// files are selected.
func (d *Dialog) Activate(e Entry) {
	if d.resolved {
		return
	}
	if e.IsDir {
		d.state.NavigateTo(e.FullPath)
		return
	}
	d.state.Select(e.FullPath)
}

// Accept resolves the dialog with the current answer. It reports false when
// there is nothing to accept yet or the dialog already resolved.
func (d *Dialog) Accept() bool {
	if d.resolved {
		return false
	}
	res, ok := d.state.ResolveAccept()
	if !ok {
		return false
	}
	d.resolve(res)
	return true
}

// Cancel resolves the dialog without a path.
func (d *Dialog) Cancel() bool {
	if d.resolved {
		return false
	}
	d.resolve(d.state.ResolveCancel())
	return true
}

// Close handles the window's close icon, which cancels.
func (d *Dialog) Close() bool {
	return d.Cancel()
}

// Result returns the outcome once the dialog resolved.
func (d *Dialog) Result() (Result, bool) {
	return d.result, d.resolved
}

func (d *Dialog) resolve(res Result) {
	d.resolved = true
	d.result = res
	d.log.With(log.F("path", res.Path), log.F("accepted", res.Accepted)).Debug("dialog resolved")
	if d.onResult != nil {
		d.onResult(res.Path, res.Accepted)
	}
}
