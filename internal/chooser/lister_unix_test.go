//go:build unix

package chooser

import (
	"io/fs"
	"path/filepath"
	"syscall"
	"testing"

	"filechooser/pkg/testutils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestListEntriesCarriesFileMode(t *testing.T) {
	root := testutils.CreateHomeFixture(t)
	require.NoError(t, syscall.Mkfifo(filepath.Join(root, "pipe"), 0600))

	l := NewLister(OSFileSystem{})
	l.ShowHidden = false
	entries := l.ListEntries(root, FileOrDirectory)
	require.Equal(t, []string{"docs", "src", "a.txt", "b.md", "pipe"}, names(entries))

	assert.True(t, entries[0].Mode.IsDir())
	assert.True(t, entries[2].Mode.IsRegular())
	assert.False(t, entries[4].IsDir)
	assert.False(t, entries[4].Mode.IsRegular())
	assert.NotZero(t, entries[4].Mode&fs.ModeNamedPipe)
}
