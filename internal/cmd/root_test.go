package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"filechooser/internal/chooser"
	"filechooser/internal/config"
	"filechooser/internal/errors"
	"filechooser/pkg/testutils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scripted is a Runner that records what it was given and answers with fn.
type scripted struct {
	dialog *chooser.Dialog
	cfg    *config.Config
	fn     func(d *chooser.Dialog)
}

func (s *scripted) run(d *chooser.Dialog, cfg *config.Config) (chooser.Result, error) {
	s.dialog, s.cfg = d, cfg
	if s.fn != nil {
		s.fn(d)
	}
	res, _ := d.Result()
	return res, nil
}

func execute(t *testing.T, terminal, desktop Runner, args ...string) (string, error) {
	t.Helper()
	// keep the user's config out of the tests
	t.Setenv("HOME", t.TempDir())

	root := NewRootCmd("test", terminal, desktop)
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestRootPrintsAcceptedPath(t *testing.T) {
	home := testutils.CreateHomeFixture(t)
	term := &scripted{fn: func(d *chooser.Dialog) {
		d.State().Select(filepath.Join(home, "a.txt"))
		d.Accept()
	}}

	out, err := execute(t, term.run, nil, "--base", home)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "a.txt")+"\n", out)
	assert.Equal(t, home, term.dialog.State().CurrentPath())
	assert.Equal(t, chooser.FileOrDirectory, term.dialog.State().Mode())
}

func TestRootDirectoryOnly(t *testing.T) {
	home := testutils.CreateHomeFixture(t)
	term := &scripted{fn: func(d *chooser.Dialog) { d.Accept() }}

	out, err := execute(t, term.run, nil, "-d", "-b", home, "--title", "Where to?", "--accept-label", "Use")
	require.NoError(t, err)
	assert.Equal(t, home+"\n", out)

	opts := term.dialog.Options()
	assert.Equal(t, "Where to?", opts.Title)
	assert.Equal(t, "Use", opts.AcceptLabel)
	assert.Equal(t, chooser.DefaultCancelLabel, opts.CancelLabel)
}

func TestRootCancel(t *testing.T) {
	home := testutils.CreateHomeFixture(t)
	term := &scripted{fn: func(d *chooser.Dialog) { d.Cancel() }}

	out, err := execute(t, term.run, nil, "--base", home)
	assert.True(t, errors.Is(err, ErrCancelled))
	assert.Empty(t, out)
}

func TestRootFlagsOverrideConfig(t *testing.T) {
	home := testutils.CreateHomeFixture(t)
	cfgPath := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("chooser:\n  show_hidden: false\n  pattern: \"*.txt\"\n"), 0644))

	t.Run("file values apply", func(t *testing.T) {
		term := &scripted{}
		_, err := execute(t, term.run, nil, "--config", cfgPath, "--base", home)
		assert.True(t, errors.Is(err, ErrCancelled), "runner returned without a decision")
		assert.False(t, term.dialog.Lister().ShowHidden)
		assert.Equal(t, "*.txt", term.cfg.Chooser.Pattern)
	})

	t.Run("changed flags win", func(t *testing.T) {
		term := &scripted{}
		_, _ = execute(t, term.run, nil, "--config", cfgPath, "--base", home, "--show-hidden", "--pattern", "*.md")
		assert.True(t, term.dialog.Lister().ShowHidden)
		assert.Equal(t, "*.md", term.cfg.Chooser.Pattern)
	})

	t.Run("invalid flag values are rejected", func(t *testing.T) {
		term := &scripted{}
		_, err := execute(t, term.run, nil, "--config", cfgPath, "--pattern", "[x")
		assert.True(t, errors.IsInvalidConfig(err))
		assert.Nil(t, term.dialog, "picker must not open")

		_, err = execute(t, term.run, nil, "--config", cfgPath, "--base", filepath.Join(home, "missing"))
		assert.True(t, errors.IsInvalidConfig(err))
	})
}

func TestRootConfigWithMissingBaseDirectory(t *testing.T) {
	cfgPath := filepath.Join(t.TempDir(), "config.yaml")
	gone := filepath.Join(t.TempDir(), "gone")
	require.NoError(t, os.WriteFile(cfgPath, []byte("chooser:\n  only_directories: true\n  base_directory: \""+
		filepath.ToSlash(gone)+"\"\nlabels:\n  accept: OK\n"), 0644))

	term := &scripted{}
	_, err := execute(t, term.run, nil, "--config", cfgPath)
	assert.True(t, errors.Is(err, ErrCancelled))
	require.NotNil(t, term.dialog)
	assert.Equal(t, chooser.DirectoryOnly, term.dialog.State().Mode())
	assert.Equal(t, "OK", term.dialog.Options().AcceptLabel)
}

func TestRootGUIRunner(t *testing.T) {
	home := testutils.CreateHomeFixture(t)
	term := &scripted{}
	desk := &scripted{fn: func(d *chooser.Dialog) { d.Accept() }}

	out, err := execute(t, term.run, desk.run, "--gui", "-d", "-b", home)
	if err != nil {
		// nogui builds
		assert.Contains(t, err.Error(), "no GUI support")
		return
	}
	assert.Equal(t, home+"\n", out)
	assert.Nil(t, term.dialog)
	assert.NotNil(t, desk.dialog)
}

func TestLsCommand(t *testing.T) {
	home := testutils.CreateHomeFixture(t)
	sep := string(filepath.Separator)

	out, err := execute(t, nil, nil, "ls", home)
	require.NoError(t, err)
	assert.Equal(t, []string{".hide" + sep, "docs" + sep, "src" + sep, ".env", "a.txt", "b.md"},
		strings.Split(strings.TrimSpace(out), "\n"))

	out, err = execute(t, nil, nil, "ls", "-d", home)
	require.NoError(t, err)
	assert.Equal(t, []string{".hide" + sep, "docs" + sep, "src" + sep}, strings.Split(strings.TrimSpace(out), "\n"))

	out, err = execute(t, nil, nil, "ls", "--long", home)
	require.NoError(t, err)
	assert.Contains(t, out, "5 B")
	assert.Regexp(t, `(?m)^-\s+\S`, out, "directories have no size")

	_, err = execute(t, nil, nil, "ls", filepath.Join(home, "missing"))
	assert.True(t, errors.IsFileNotFound(err))
}

func TestConfigCommands(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	out, err := execute(t, nil, nil, "config", "init", path)
	require.NoError(t, err)
	assert.Contains(t, out, path)

	cfg, err := config.LoadConfigFile(path)
	require.NoError(t, err)
	assert.Equal(t, config.New(), cfg)

	_, err = execute(t, nil, nil, "config", "init", path)
	assert.Error(t, err, "existing file is kept")
	_, err = execute(t, nil, nil, "config", "init", "--force", path)
	assert.NoError(t, err)

	out, err = execute(t, nil, nil, "config", "themes")
	require.NoError(t, err)
	assert.Equal(t, config.ListThemes(), strings.Split(strings.TrimSpace(out), "\n"))
}
