package chooser

import (
	"path/filepath"
	"testing"

	"filechooser/pkg/testutils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type resultRecorder struct {
	calls []Result
}

func (r *resultRecorder) record(path string, accepted bool) {
	r.calls = append(r.calls, Result{Path: path, Accepted: accepted})
}

// newTestDialog opens a dialog on the home fixture with the process working
// directory pinned somewhere else, so the base directory is what seeds it.
func newTestDialog(t *testing.T, onlyDirs bool) (*Dialog, *resultRecorder, string) {
	t.Helper()
	home := testutils.CreateHomeFixture(t)
	rec := &resultRecorder{}
	fsys := &fakeFS{wd: t.TempDir()}

	d := NewDialog(NewState(fsys), NewLister(fsys), Options{
		Visible:         true,
		OnlyDirectories: onlyDirs,
		BaseDirectory:   home,
	}, rec.record)
	return d, rec, home
}

func TestDialogAppliesBaseDirectory(t *testing.T) {
	d, _, home := newTestDialog(t, false)

	assert.Equal(t, home, d.State().CurrentPath())
	assert.False(t, d.State().FirstLoad())
	assert.NotEmpty(t, d.ID())
}

func TestDialogScenarioSelectFile(t *testing.T) {
	d, rec, home := newTestDialog(t, false)
	file := filepath.Join(home, "a.txt")

	d.State().Select(file)
	require.True(t, d.Accept())

	assert.Equal(t, []Result{{Path: file, Accepted: true}}, rec.calls)
}

func TestDialogScenarioDirectoryOnly(t *testing.T) {
	d, rec, home := newTestDialog(t, true)

	require.True(t, d.Accept())
	assert.Equal(t, []Result{{Path: home, Accepted: true}}, rec.calls)
}

func TestResolveAccept(t *testing.T) {
	t.Run("directory only ignores the selection", func(t *testing.T) {
		d, _, home := newTestDialog(t, true)
		s := d.State()

		res, ok := s.ResolveAccept()
		require.True(t, ok)
		assert.Equal(t, Result{Path: home, Accepted: true}, res)

		s.Select(filepath.Join(home, "a.txt"))
		res, ok = s.ResolveAccept()
		require.True(t, ok)
		assert.Equal(t, home, res.Path)
	})

	t.Run("files allowed without selection does nothing", func(t *testing.T) {
		d, rec, _ := newTestDialog(t, false)

		_, ok := d.State().ResolveAccept()
		assert.False(t, ok)
		assert.False(t, d.Accept())
		assert.Empty(t, rec.calls)

		_, resolved := d.Result()
		assert.False(t, resolved)
	})
}

func TestResolveCancel(t *testing.T) {
	d, rec, home := newTestDialog(t, false)
	s := d.State()

	assert.Equal(t, Result{}, s.ResolveCancel())
	s.Select(filepath.Join(home, "a.txt"))
	assert.Equal(t, Result{}, s.ResolveCancel())

	require.True(t, d.Cancel())
	assert.Equal(t, []Result{{Path: "", Accepted: false}}, rec.calls)
}

func TestDialogResultFiresOnce(t *testing.T) {
	d, rec, home := newTestDialog(t, false)
	d.State().Select(filepath.Join(home, "a.txt"))

	require.True(t, d.Accept())
	assert.False(t, d.Accept())
	assert.False(t, d.Cancel())
	assert.False(t, d.Close())
	assert.Len(t, rec.calls, 1)

	res, resolved := d.Result()
	assert.True(t, resolved)
	assert.True(t, res.Accepted)
	assert.False(t, d.Frame().CanAccept)
}

func TestDialogFrameIsReadOnly(t *testing.T) {
	d, _, _ := newTestDialog(t, false)

	opts := d.Options()
	opts.OnlyDirectories = true
	d.SetOptions(opts)

	assert.Equal(t, FileOrDirectory, d.Frame().Mode)
	assert.Equal(t, FileOrDirectory, d.State().Mode())

	d.Sync()
	assert.Equal(t, DirectoryOnly, d.Frame().Mode)
}

func TestDialogCloseCancels(t *testing.T) {
	d, rec, _ := newTestDialog(t, true)

	require.True(t, d.Close())
	assert.Equal(t, []Result{{}}, rec.calls)
}

func TestDialogActivate(t *testing.T) {
	d, _, home := newTestDialog(t, false)
	view := d.Render()
	require.NotEmpty(t, view.Entries)

	var docs, file Entry
	for _, e := range view.Entries {
		switch e.Name {
		case "docs":
			docs = e
		case "a.txt":
			file = e
		}
	}

	d.Activate(file)
	assert.Equal(t, file.FullPath, d.State().Selected())
	assert.Equal(t, home, d.State().CurrentPath())
	assert.True(t, d.Frame().CanAccept)

	d.Activate(docs)
	assert.Equal(t, docs.FullPath, d.State().CurrentPath())
	assert.Empty(t, d.State().Selected())
}

func TestDialogRender(t *testing.T) {
	d, _, home := newTestDialog(t, false)

	view := d.Render()
	assert.True(t, view.Visible)
	assert.Equal(t, DefaultTitle, view.Title)
	assert.Equal(t, DefaultAcceptLabel, view.AcceptLabel)
	assert.Equal(t, DefaultCancelLabel, view.CancelLabel)
	assert.Equal(t, filepath.Base(home), view.Breadcrumb.CurrentLabel)
	assert.Equal(t, []string{".hide", "docs", "src", ".env", "a.txt", "b.md"}, names(view.Entries))
	assert.False(t, view.CanAccept)

	t.Run("options are re-applied on render", func(t *testing.T) {
		d.SetOptions(Options{Visible: true, OnlyDirectories: true, AcceptLabel: "Choose", BaseDirectory: filepath.Join(home, "src")})
		view := d.Render()

		assert.Equal(t, DirectoryOnly, view.Mode)
		assert.Equal(t, "Choose", view.AcceptLabel)
		assert.Equal(t, DefaultDirTitle, view.Title)
		assert.Equal(t, []string{".hide", "docs", "src"}, names(view.Entries))
		// base directory was already applied once
		assert.Equal(t, home, view.Breadcrumb.Path)
		assert.True(t, view.CanAccept)
	})

	t.Run("hidden dialog lists nothing", func(t *testing.T) {
		d.SetOptions(Options{Visible: false})
		view := d.Render()
		assert.False(t, view.Visible)
		assert.Nil(t, view.Entries)
		assert.Equal(t, FileOrDirectory, view.Mode)
	})
}

func TestDialogWithoutBaseDirectoryUsesWorkingDirectory(t *testing.T) {
	wd := testutils.CreateHomeFixture(t)
	fsys := &fakeFS{wd: wd}

	d := NewDialog(NewState(fsys), nil, Options{Visible: true}, nil)
	assert.Equal(t, wd, d.State().CurrentPath())
	assert.True(t, d.State().FirstLoad())

	// nil callback is allowed
	assert.True(t, d.Cancel())
}
