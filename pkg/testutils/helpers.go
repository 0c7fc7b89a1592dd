package testutils

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/require"
)

// CreateTree builds a directory tree under root. Keys ending in "/" are
// directories, everything else is a file holding the mapped content.
// Intermediate directories are created as needed.
func CreateTree(t *testing.T, root string, tree map[string]string) {
	t.Helper()
	for name, content := range tree {
		path := filepath.Join(root, filepath.FromSlash(strings.TrimSuffix(name, "/")))
		if strings.HasSuffix(name, "/") {
			require.NoError(t, os.MkdirAll(path, 0755))
			continue
		}
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}
}

// CreateHomeFixture creates the layout used across chooser tests: a "docs"
// directory and an "a.txt" file under a fresh temp directory, returned.
func CreateHomeFixture(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	CreateTree(t, root, map[string]string{
		"docs/":  "",
		"a.txt":  "hello",
		"b.md":   "# notes",
		"src/":   "",
		".hide/": "",
		".env":   "KEY=1",
	})
	return root
}

// StripANSI removes ANSI escape sequences from a string
func StripANSI(str string) string {
	return ansi.Strip(str)
}
