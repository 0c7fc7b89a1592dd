package tui

import (
	"fmt"
	"io/fs"
	"strings"

	"filechooser/internal/chooser"
	"filechooser/internal/log"
	"filechooser/internal/watch"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/dustin/go-humanize"
	"github.com/gabriel-vasile/mimetype"
)

// listingMsg carries a directory read back to the event loop. request
// numbers the load that produced it.
type listingMsg struct {
	listing chooser.Listing
	request uint64
}

// detailMsg carries the sniffed content type of a highlighted file.
type detailMsg struct {
	path string
	mime string
}

// changeMsg reports that the shown directory changed on disk.
type changeMsg struct {
	change watch.Change
}

// Option configures a Model.
type Option func(*Model)

// WithWatcher re-lists the shown directory whenever w reports a change.
func WithWatcher(w *watch.Watcher) Option {
	return func(m *Model) { m.watcher = w }
}

// WithKeyMap replaces the default bindings.
func WithKeyMap(k KeyMap) Option {
	return func(m *Model) { m.keys = k }
}

// WithPattern pre-fills the filter prompt with the pattern already set on
// the dialog's lister.
func WithPattern(p string) Option {
	return func(m *Model) { m.filter.SetValue(p) }
}

// Model is the bubbletea frontend of a chooser.Dialog. Directory reads run
// as commands; a result for a superseded navigation is dropped.
type Model struct {
	dialog  *chooser.Dialog
	keys    KeyMap
	help    help.Model
	styles  Styles
	status  *StatusBar
	filter  textinput.Model
	watcher *watch.Watcher

	filtering bool
	entries   []chooser.Entry
	listed    string // path the entries belong to
	cursor    int
	offset    int
	width     int
	height    int
	detail    string
	mimePath  string // file the mime fields describe
	mime      string
	sniffing  string

	// stale is raised by the state subscription when the shown path or
	// mode moved away from the last requested listing.
	stale         bool
	requests      uint64
	requestedGen  uint64
	requestedMode chooser.SelectionMode
	unsubscribe   func()
}

func New(d *chooser.Dialog, styles Styles, opts ...Option) *Model {
	ti := textinput.New()
	ti.Prompt = "/"
	ti.Placeholder = "*.go"
	ti.CharLimit = 256

	m := &Model{
		dialog: d,
		keys:   DefaultKeyMap(),
		help:   help.New(),
		styles: styles,
		status: NewStatusBar(styles),
		filter: ti,
		height: defaultHeight,
		stale:  true,
	}
	for _, opt := range opts {
		opt(m)
	}

	m.unsubscribe = d.State().Subscribe(func(s chooser.Snapshot) {
		if s.Generation != m.requestedGen || s.Mode != m.requestedMode {
			m.stale = true
		}
	})
	return m
}

// Init implements tea.Model
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.load(), m.status.Tick(), m.waitForChange())
}

// Update implements tea.Model
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd
	m.dialog.Sync()

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.clampCursor()

	case listingMsg:
		if msg.request != m.requests {
			log.LogWithFields(log.F("path", msg.listing.Path), log.F("request", msg.request)).Debug("dropping outdated listing")
			break
		}
		m.applyListing(msg.listing)

	case detailMsg:
		if m.sniffing == msg.path {
			m.sniffing = ""
		}
		m.mimePath, m.mime = msg.path, msg.mime
		m.updateDetail()

	case changeMsg:
		if msg.change.Dir == m.dialog.State().CurrentPath() {
			m.stale = true
		}
		cmds = append(cmds, m.waitForChange())

	case spinner.TickMsg:
		cmds = append(cmds, m.status.Update(msg))

	case tea.KeyMsg:
		cmds = append(cmds, m.handleKey(msg))
	}

	if _, resolved := m.dialog.Result(); resolved {
		return m, tea.Quit
	}
	if m.stale {
		cmds = append(cmds, m.load())
	}
	cmds = append(cmds, m.sniff())
	return m, tea.Batch(cmds...)
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	if m.filtering {
		return m.handleFilterKey(msg)
	}

	s := m.dialog.State()
	switch {
	case key.Matches(msg, m.keys.Cancel):
		m.dialog.Cancel()
	case key.Matches(msg, m.keys.Accept):
		if !m.dialog.Accept() {
			m.status.SetError("Nothing selected")
		}
	case key.Matches(msg, m.keys.Up):
		m.moveCursor(-1)
	case key.Matches(msg, m.keys.Down):
		m.moveCursor(1)
	case key.Matches(msg, m.keys.PageUp):
		m.moveCursor(-m.listHeight())
	case key.Matches(msg, m.keys.PageDown):
		m.moveCursor(m.listHeight())
	case key.Matches(msg, m.keys.Top):
		m.moveCursor(-len(m.entries))
	case key.Matches(msg, m.keys.Bottom):
		m.moveCursor(len(m.entries))
	case key.Matches(msg, m.keys.Open):
		if e, ok := m.Highlighted(); ok {
			m.dialog.Activate(e)
		}
	case key.Matches(msg, m.keys.Parent):
		s.ClickBreadcrumb(chooser.SegmentDotDot)
	case key.Matches(msg, m.keys.Home):
		if !s.NavigateHome() {
			m.status.SetError("Working directory unavailable")
		}
	case key.Matches(msg, m.keys.Select):
		if e, ok := m.Highlighted(); ok {
			if s.Selected() == e.FullPath {
				s.Select("")
			} else {
				s.Select(e.FullPath)
			}
		}
	case key.Matches(msg, m.keys.Filter):
		m.filtering = true
		return m.filter.Focus()
	case key.Matches(msg, m.keys.ToggleHidden):
		l := m.dialog.Lister()
		l.ShowHidden = !l.ShowHidden
		m.stale = true
	case key.Matches(msg, m.keys.Refresh):
		m.stale = true
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}
	return nil
}

func (m *Model) handleFilterKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.ApplyFilter):
		g, err := chooser.CompilePattern(strings.TrimSpace(m.filter.Value()))
		if err != nil {
			m.status.SetError(err.Error())
			return nil
		}
		m.dialog.Lister().Pattern = g
		m.filtering = false
		m.filter.Blur()
		m.stale = true
	case key.Matches(msg, m.keys.CancelFilter):
		m.filtering = false
		m.filter.Blur()
	default:
		var cmd tea.Cmd
		m.filter, cmd = m.filter.Update(msg)
		return cmd
	}
	return nil
}

// load requests a listing of the current directory. The lister is copied so
// later toggles do not race the read.
func (m *Model) load() tea.Cmd {
	m.stale = false

	s := m.dialog.State()
	path, mode, gen := s.CurrentPath(), s.Mode(), s.Generation()
	m.requestedGen, m.requestedMode = gen, mode
	m.requests++
	request := m.requests
	m.status.SetLoading(true)

	if m.watcher != nil {
		if err := m.watcher.Watch(path); err != nil {
			log.LogWithError(err).Debug("cannot watch directory")
		}
	}

	lister := *m.dialog.Lister()
	return func() tea.Msg {
		return listingMsg{listing: lister.Load(path, mode, gen), request: request}
	}
}

func (m *Model) applyListing(l chooser.Listing) {
	if !m.dialog.State().IsCurrent(l) {
		log.LogWithFields(log.F("path", l.Path), log.F("generation", l.Generation)).Debug("dropping superseded listing")
		return
	}

	var keep string
	if l.Path == m.listed {
		if e, ok := m.Highlighted(); ok {
			keep = e.Name
		}
	}

	m.status.SetLoading(false)
	m.entries = l.Entries
	m.listed = l.Path
	m.cursor, m.offset = 0, 0
	for i, e := range m.entries {
		if e.Name == keep {
			m.cursor = i
			break
		}
	}
	m.clampCursor()

	if l.Err != nil {
		m.status.SetError(l.Err.Error())
	} else {
		m.status.SetText(fmt.Sprintf("%d entries", len(m.entries)))
	}
}

func (m *Model) waitForChange() tea.Cmd {
	if m.watcher == nil {
		return nil
	}
	ch := m.watcher.Changes()
	return func() tea.Msg {
		c, ok := <-ch
		if !ok {
			return nil
		}
		return changeMsg{change: c}
	}
}

func (m *Model) moveCursor(delta int) {
	m.cursor += delta
	m.clampCursor()
}

// clampCursor keeps the cursor on an entry and inside the scroll window.
func (m *Model) clampCursor() {
	if m.cursor >= len(m.entries) {
		m.cursor = len(m.entries) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}

	h := m.listHeight()
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+h {
		m.offset = m.cursor - h + 1
	}
	if m.offset < 0 {
		m.offset = 0
	}
	m.updateDetail()
}

func (m *Model) updateDetail() {
	m.detail = ""
	e, ok := m.Highlighted()
	if !ok {
		return
	}
	if e.IsDir {
		m.detail = "directory"
		return
	}

	parts := []string{humanize.Bytes(uint64(e.Size)), humanize.Time(e.Modified)}
	switch {
	case !e.Mode.IsRegular():
		parts = append(parts, specialKind(e.Mode))
	case m.mimePath == e.FullPath && m.mime != "":
		parts = append(parts, m.mime)
	}
	m.detail = strings.Join(parts, " · ")
}

// sniff detects the content type of the highlighted file off the event loop.
// Only regular files are opened; a FIFO or device would block or have side
// effects.
func (m *Model) sniff() tea.Cmd {
	e, ok := m.Highlighted()
	if !ok || e.IsDir || !e.Mode.IsRegular() {
		return nil
	}
	if e.FullPath == m.mimePath || e.FullPath == m.sniffing {
		return nil
	}
	m.sniffing = e.FullPath
	path := e.FullPath
	return func() tea.Msg {
		mt, err := mimetype.DetectFile(path)
		if err != nil {
			return detailMsg{path: path}
		}
		return detailMsg{path: path, mime: mt.String()}
	}
}

func specialKind(mode fs.FileMode) string {
	switch {
	case mode&fs.ModeNamedPipe != 0:
		return "named pipe"
	case mode&fs.ModeSocket != 0:
		return "socket"
	case mode&fs.ModeDevice != 0:
		return "device"
	case mode&fs.ModeSymlink != 0:
		return "broken link"
	default:
		return "special file"
	}
}

// Close drops the state subscription.
func (m *Model) Close() {
	if m.unsubscribe != nil {
		m.unsubscribe()
		m.unsubscribe = nil
	}
}

// Highlighted returns the entry under the cursor.
func (m *Model) Highlighted() (chooser.Entry, bool) {
	if m.cursor < 0 || m.cursor >= len(m.entries) {
		return chooser.Entry{}, false
	}
	return m.entries[m.cursor], true
}

func (m *Model) Dialog() *chooser.Dialog { return m.dialog }
func (m *Model) Entries() []chooser.Entry { return m.entries }
func (m *Model) Cursor() int { return m.cursor }
func (m *Model) Filtering() bool { return m.filtering }
func (m *Model) Detail() string { return m.detail }
func (m *Model) Status() string { return m.status.Text() }
func (m *Model) Loading() bool { return m.status.Loading() }
