package chooser

// SelectionMode decides what kind of path the dialog collects.
type SelectionMode int

const (
	// FileOrDirectory lists files as well as directories; the selected entry is the answer.
	FileOrDirectory SelectionMode = iota
	// DirectoryOnly lists directories only; the browsed directory itself is the answer.
	DirectoryOnly
)

// ModeFor maps the host's "only directories" flag to a SelectionMode.
func ModeFor(onlyDirectories bool) SelectionMode {
	if onlyDirectories {
		return DirectoryOnly
	}
	return FileOrDirectory
}

// AllowsFiles reports whether files are listed and selectable.
func (m SelectionMode) AllowsFiles() bool {
	return m == FileOrDirectory
}

func (m SelectionMode) String() string {
	switch m {
	case DirectoryOnly:
		return "directory-only"
	case FileOrDirectory:
		return "file-or-directory"
	default:
		return "unknown"
	}
}
