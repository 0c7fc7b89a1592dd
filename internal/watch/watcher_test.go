package watch

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"filechooser/internal/errors"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// nextChange waits for a change matching path, ignoring unrelated events.
func nextChange(t *testing.T, ch <-chan Change, path string) Change {
	t.Helper()
	timeout := time.After(3 * time.Second)
	for {
		select {
		case c, ok := <-ch:
			require.True(t, ok, "Change channel closed unexpectedly")
			if c.Path == path {
				return c
			}
		case <-timeout:
			t.Fatalf("Timeout waiting for change on %s", path)
		}
	}
}

func TestWatcherFsnotify(t *testing.T) {
	tempDir := t.TempDir()

	w, err := New()
	require.NoError(t, err, "New watcher creation failed")
	require.NoError(t, w.Watch(tempDir))
	require.NoError(t, w.Start())
	defer w.Stop()

	assert.True(t, w.IsRunning())
	assert.Equal(t, tempDir, w.Dir())
	changes := w.Changes()

	// Allow a brief moment for fsnotify to initialize watches
	time.Sleep(100 * time.Millisecond)

	// --- Create ---
	created := filepath.Join(tempDir, "testfile.txt")
	require.NoError(t, os.WriteFile(created, []byte("x"), 0644))

	c := nextChange(t, changes, created)
	assert.Equal(t, tempDir, c.Dir)
	assert.True(t, c.Op.Has(fsnotify.Create))
	assert.False(t, c.Timestamp.IsZero())

	// --- Rename ---
	renamed := filepath.Join(tempDir, "renamed.txt")
	require.NoError(t, os.Rename(created, renamed))
	nextChange(t, changes, renamed)

	// --- Remove ---
	require.NoError(t, os.Remove(renamed))
	c = nextChange(t, changes, renamed)
	assert.True(t, c.Op.Has(fsnotify.Remove))

	// --- Stop ---
	w.Stop()
	assert.False(t, w.IsRunning())

	select {
	case _, ok := <-changes:
		for ok {
			_, ok = <-changes
		}
	case <-time.After(1 * time.Second):
		t.Error("Timeout waiting for change channel to close after stop")
	}

	assert.Error(t, w.Start(), "a stopped watcher cannot restart")
}

func TestWatcherSwitchesDirectory(t *testing.T) {
	first := t.TempDir()
	second := t.TempDir()

	w, err := New()
	require.NoError(t, err)
	require.NoError(t, w.Start())
	defer w.Stop()

	require.NoError(t, w.Watch(first))
	require.NoError(t, w.Watch(second))
	assert.Equal(t, second, w.Dir())
	time.Sleep(100 * time.Millisecond)

	// Only the second directory is followed now.
	require.NoError(t, os.WriteFile(filepath.Join(first, "ignored.txt"), nil, 0644))
	seen := filepath.Join(second, "seen.txt")
	require.NoError(t, os.WriteFile(seen, nil, 0644))

	c := nextChange(t, w.Changes(), seen)
	assert.Equal(t, second, c.Dir)
}

func TestWatcherWriteIsNotAListingChange(t *testing.T) {
	dir := t.TempDir()
	existing := filepath.Join(dir, "existing.txt")
	require.NoError(t, os.WriteFile(existing, []byte("a"), 0644))

	w, err := New()
	require.NoError(t, err)
	require.NoError(t, w.Watch(dir))
	require.NoError(t, w.Start())
	defer w.Stop()
	time.Sleep(100 * time.Millisecond)

	require.NoError(t, os.WriteFile(existing, []byte("longer content"), 0644))
	marker := filepath.Join(dir, "marker")
	require.NoError(t, os.WriteFile(marker, nil, 0644))

	// The write lands before the marker; if it were reported it would come first.
	select {
	case c := <-w.Changes():
		assert.Equal(t, marker, c.Path)
		assert.True(t, c.Op.Has(fsnotify.Create))
	case <-time.After(3 * time.Second):
		t.Fatal("Timeout waiting for marker")
	}
}

func TestWatcherRejectsMissingDirectory(t *testing.T) {
	w, err := New()
	require.NoError(t, err)
	defer w.Stop()

	err = w.Watch(filepath.Join(t.TempDir(), "missing"))
	require.Error(t, err)
	assert.True(t, errors.IsFileNotFound(err))
	assert.Empty(t, w.Dir())
}
