package chooser

import (
	"io/fs"
	"os"
)

// FileSystem is everything the chooser needs from the host OS.
type FileSystem interface {
	Getwd() (string, error)
	ReadDir(name string) ([]fs.DirEntry, error)
	Stat(name string) (fs.FileInfo, error)
}

// OSFileSystem reads the local disk.
type OSFileSystem struct{}

func (OSFileSystem) Getwd() (string, error) { return os.Getwd() }
func (OSFileSystem) ReadDir(name string) ([]fs.DirEntry, error) { return os.ReadDir(name) }
func (OSFileSystem) Stat(name string) (fs.FileInfo, error) { return os.Stat(name) }

// isDir reports whether path exists and is a directory, following symlinks.
func isDir(fsys FileSystem, path string) bool {
	info, err := fsys.Stat(path)
	return err == nil && info.IsDir()
}
