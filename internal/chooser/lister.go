package chooser

import (
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"filechooser/internal/errors"
	"filechooser/internal/log"

	"github.com/gobwas/glob"
	"golang.org/x/text/unicode/norm"
)

// Entry is one child of the listed directory. Entries are rebuilt on every
// listing and never cached.
type Entry struct {
	Name      string
	FullPath  string
	IsDir     bool
	IsSymlink bool
	Size      int64
	Modified  time.Time
	// Mode is the type and permission bits of the entry, of the target for
	// symlinks.
	Mode fs.FileMode
}

// IsHidden reports whether the entry is a dotfile.
func (e Entry) IsHidden() bool {
	return strings.HasPrefix(e.Name, ".")
}

// Listing is the result of reading one directory for one navigation.
// Generation ties it to the navigation that requested it.
type Listing struct {
	Path       string
	Mode       SelectionMode
	Generation uint64
	Entries    []Entry
	Err        error
}

// Lister reads and filters directory contents.
type Lister struct {
	FS FileSystem

	// ShowHidden includes dotfiles and dot-directories.
	ShowHidden bool

	// Pattern, when set, must match a file's name for the file to be listed.
	// Directories are never filtered by it.
	Pattern glob.Glob
}

// NewLister returns a lister that shows everything, hidden entries included.
func NewLister(fsys FileSystem) *Lister {
	if fsys == nil {
		fsys = OSFileSystem{}
	}
	return &Lister{FS: fsys, ShowHidden: true}
}

// CompilePattern compiles a glob for Lister.Pattern. An empty pattern yields nil.
func CompilePattern(pattern string) (glob.Glob, error) {
	if pattern == "" {
		return nil, nil
	}
	g, err := glob.Compile(pattern)
	if err != nil {
		return nil, errors.NewConfigError("invalid pattern", pattern, errors.InvalidPattern, err)
	}
	return g, nil
}

// ListEntries returns the children of dir to display under mode, directories
// first and then by name. A directory that cannot be read lists as empty.
func (l *Lister) ListEntries(dir string, mode SelectionMode) []Entry {
	entries, err := l.ReadEntries(dir, mode)
	if err != nil {
		log.LogWithError(err).Debug("directory listing degraded to empty")
		return []Entry{}
	}
	return entries
}

// ReadEntries is ListEntries with the read failure reported as a *errors.FileError.
func (l *Lister) ReadEntries(dir string, mode SelectionMode) ([]Entry, error) {
	dirEntries, err := l.FS.ReadDir(dir)
	if err != nil {
		return nil, errors.ClassifyPathError(err, dir, errors.ReadDirFailed)
	}

	entries := make([]Entry, 0, len(dirEntries))
	for _, de := range dirEntries {
		entry, ok := l.entryFor(dir, de)
		if !ok {
			continue
		}
		if !l.ShowHidden && entry.IsHidden() {
			continue
		}
		if !entry.IsDir {
			if !mode.AllowsFiles() {
				continue
			}
			if l.Pattern != nil && !l.Pattern.Match(entry.Name) {
				continue
			}
		}
		entries = append(entries, entry)
	}

	sortEntries(entries)
	return entries, nil
}

// Load reads dir for the navigation identified by generation.
func (l *Lister) Load(dir string, mode SelectionMode, generation uint64) Listing {
	entries, err := l.ReadEntries(dir, mode)
	if entries == nil {
		entries = []Entry{}
	}
	return Listing{
		Path:       dir,
		Mode:       mode,
		Generation: generation,
		Entries:    entries,
		Err:        err,
	}
}

func (l *Lister) entryFor(dir string, de fs.DirEntry) (Entry, bool) {
	info, err := de.Info()
	if err != nil {
		// vanished between ReadDir and Info
		return Entry{}, false
	}

	fullPath := filepath.Join(dir, de.Name())
	isSymlink := info.Mode()&fs.ModeSymlink != 0
	directory := de.IsDir()
	mode := info.Mode()
	if isSymlink {
		directory = false
		if target, err := l.FS.Stat(fullPath); err == nil {
			directory = target.IsDir()
			mode = target.Mode()
		}
	}

	return Entry{
		Name:      de.Name(),
		FullPath:  fullPath,
		IsDir:     directory,
		IsSymlink: isSymlink,
		Size:      info.Size(),
		Modified:  info.ModTime(),
		Mode:      mode,
	}, true
}

func sortEntries(entries []Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].IsDir != entries[j].IsDir {
			return entries[i].IsDir
		}
		return norm.NFC.String(entries[i].Name) < norm.NFC.String(entries[j].Name)
	})
}
