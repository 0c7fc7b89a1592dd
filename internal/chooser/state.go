package chooser

import (
	"path/filepath"

	"filechooser/internal/log"
)

// Snapshot is an immutable copy of State handed to subscribers.
type Snapshot struct {
	CurrentPath string
	FirstLoad   bool
	Mode        SelectionMode
	Selected    string
	Generation  uint64
}

type subscriber struct {
	id int
	fn func(Snapshot)
}

// State is the navigation state of one dialog lifetime. It is not safe for
// concurrent use; frontends apply transitions from their UI loop only.
type State struct {
	fs FileSystem

	currentPath string
	firstLoad   bool
	mode        SelectionMode
	selected    string

	// generation increases on every successful navigation
	generation uint64

	subscribers []subscriber
	nextSubID   int
}

// NewState starts at the process working directory with firstLoad set.
func NewState(fsys FileSystem) *State {
	if fsys == nil {
		fsys = OSFileSystem{}
	}

	wd, err := fsys.Getwd()
	if err != nil {
		log.LogWithError(err).Warn("cannot read working directory, starting at root")
		wd = string(filepath.Separator)
	}

	return &State{
		fs:          fsys,
		currentPath: filepath.Clean(wd),
		firstLoad:   true,
		mode:        FileOrDirectory,
	}
}

func (s *State) CurrentPath() string { return s.currentPath }
func (s *State) FirstLoad() bool { return s.firstLoad }
func (s *State) Mode() SelectionMode { return s.mode }
func (s *State) Selected() string { return s.selected }
func (s *State) Generation() uint64 { return s.generation }
func (s *State) Breadcrumb() Breadcrumb { return BreadcrumbFor(s.currentPath) }
func (s *State) FileSystem() FileSystem { return s.fs }

// Snapshot copies the current state.
func (s *State) Snapshot() Snapshot {
	return Snapshot{
		CurrentPath: s.currentPath,
		FirstLoad:   s.firstLoad,
		Mode:        s.mode,
		Selected:    s.selected,
		Generation:  s.generation,
	}
}

// Subscribe registers fn to be called after every state change. The returned
// function removes the registration.
func (s *State) Subscribe(fn func(Snapshot)) func() {
	id := s.nextSubID
	s.nextSubID++
	s.subscribers = append(s.subscribers, subscriber{id: id, fn: fn})

	return func() {
		for i, sub := range s.subscribers {
			if sub.id == id {
				s.subscribers = append(s.subscribers[:i], s.subscribers[i+1:]...)
				return
			}
		}
	}
}

func (s *State) notify() {
	snap := s.Snapshot()
	for _, sub := range append([]subscriber(nil), s.subscribers...) {
		sub.fn(snap)
	}
}

// SetSelectionMode applies the host's "only directories" flag. Hosts call it
// on every render since the flag may change while the dialog is open.
func (s *State) SetSelectionMode(onlyDirectories bool) {
	mode := ModeFor(onlyDirectories)
	if mode == s.mode {
		return
	}
	s.mode = mode
	s.notify()
}

// NavigateTo moves to path if it is an existing directory and reports whether
// it did. Anything else is ignored without changing state. Relative paths are
// resolved against the working directory.
func (s *State) NavigateTo(path string) bool {
	if path == "" {
		return false
	}

	target := path
	if !filepath.IsAbs(target) {
		wd, err := s.fs.Getwd()
		if err != nil {
			return false
		}
		target = filepath.Join(wd, target)
	}
	target = filepath.Clean(target)

	if !isDir(s.fs, target) {
		log.LogWithFields(log.F("path", target)).Debug("navigation target rejected")
		return false
	}

	s.currentPath = target
	s.selected = ""
	s.firstLoad = false
	s.generation++
	s.notify()
	return true
}

// ApplyBaseDirectoryOnce seeds the current directory from the caller's base
// directory. Only the first successful call has any effect; hosts may call it
// on every render.
func (s *State) ApplyBaseDirectoryOnce(path string) bool {
	if !s.firstLoad || path == "" {
		return false
	}
	return s.NavigateTo(path)
}

// Select marks path as the chosen entry; an empty path clears the choice.
func (s *State) Select(path string) {
	if path == s.selected {
		return
	}
	s.selected = path
	s.notify()
}

// NavigateHome goes to the process working directory.
func (s *State) NavigateHome() bool {
	wd, err := s.fs.Getwd()
	if err != nil {
		return false
	}
	return s.NavigateTo(wd)
}

// NavigateToParent goes one level up. A root has no parent and stays put.
func (s *State) NavigateToParent() bool {
	if IsRoot(s.currentPath) {
		return false
	}
	return s.NavigateTo(filepath.Dir(s.currentPath))
}

// ClickBreadcrumb handles a click on a breadcrumb segment. The ".." and
// parent segments go up unless the current directory is a root; the current
// segment only marks where the user is.
func (s *State) ClickBreadcrumb(seg Segment) bool {
	switch seg {
	case SegmentDotDot, SegmentParent:
		if !s.Breadcrumb().CanGoUp {
			return false
		}
		return s.NavigateToParent()
	default:
		return false
	}
}

// IsCurrent reports whether listing still belongs to the latest navigation.
// Frontends that list asynchronously drop listings for which it is false.
func (s *State) IsCurrent(listing Listing) bool {
	return listing.Generation == s.generation &&
		listing.Path == s.currentPath &&
		listing.Mode == s.mode
}
