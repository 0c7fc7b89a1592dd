package chooser

import "path/filepath"

// Segment identifies a clickable part of the breadcrumb row.
type Segment int

const (
	SegmentDotDot Segment = iota
	SegmentParent
	SegmentCurrent
)

// Breadcrumb holds the labels shown above the listing for one directory.
type Breadcrumb struct {
	Path         string
	ParentPath   string
	ParentLabel  string
	CurrentLabel string
	// CanGoUp is false at a filesystem root, which has no "..".
	CanGoUp bool
}

// IsRoot reports whether path is a filesystem root: "/" on POSIX, a volume
// root such as `C:\` or a UNC share root on Windows. path must be absolute.
func IsRoot(path string) bool {
	clean := filepath.Clean(path)
	return filepath.Dir(clean) == clean
}

// baseName is the last element of path, empty for a root. filepath.Base
// returns the separator for roots, which is not a name.
func baseName(path string) string {
	if IsRoot(path) {
		return ""
	}
	return filepath.Base(filepath.Clean(path))
}

// BreadcrumbFor derives the breadcrumb labels for an absolute directory path.
//
// The parent label is the parent's name, or the parent's full path when the
// parent is a root (so "/home" shows "/" and `C:\Users` shows `C:\`). At a
// root there is no parent and the root's own path is used.
func BreadcrumbFor(path string) Breadcrumb {
	clean := filepath.Clean(path)
	b := Breadcrumb{
		Path:         clean,
		CurrentLabel: baseName(clean),
	}
	b.CanGoUp = b.CurrentLabel != ""

	if !b.CanGoUp {
		b.ParentPath = clean
		b.ParentLabel = clean
		return b
	}

	b.ParentPath = filepath.Dir(clean)
	b.ParentLabel = baseName(b.ParentPath)
	if b.ParentLabel == "" {
		b.ParentLabel = b.ParentPath
	}
	return b
}
