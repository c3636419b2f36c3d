package export_test

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yasinhessnawi1/migrationpack/internal/export"
)

func writeFile(t *testing.T, path, content string, perm os.FileMode) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), perm))
	require.NoError(t, os.Chmod(path, perm))
}

func TestCopyFolder_MirrorsTree(t *testing.T) {
	src := filepath.Join(t.TempDir(), "Views")
	dst := filepath.Join(t.TempDir(), "_site", "views")

	writeFile(t, filepath.Join(src, "Home.cshtml"), "<h1>home</h1>", 0o644)
	writeFile(t, filepath.Join(src, "Partials", "Nav.cshtml"), "<nav/>", 0o600)
	writeFile(t, filepath.Join(src, "Partials", "Grid", "Bootstrap3.cshtml"), "grid", 0o644)
	require.NoError(t, os.MkdirAll(filepath.Join(src, "Empty"), 0o755))

	require.NoError(t, export.CopyFolder(src, dst))

	data, err := os.ReadFile(filepath.Join(dst, "Partials", "Grid", "Bootstrap3.cshtml"))
	require.NoError(t, err)
	assert.Equal(t, "grid", string(data))
	assert.FileExists(t, filepath.Join(dst, "Home.cshtml"))
	assert.DirExists(t, filepath.Join(dst, "Empty"))

	if runtime.GOOS != "windows" {
		info, err := os.Stat(filepath.Join(dst, "Partials", "Nav.cshtml"))
		require.NoError(t, err)
		assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
	}
}

func TestCopyFolder_MissingSource(t *testing.T) {
	root := t.TempDir()
	dst := filepath.Join(root, "_site", "scripts")

	err := export.CopyFolder(filepath.Join(root, "scripts"), dst)
	require.NoError(t, err)
	assert.NoDirExists(t, dst)
}

func TestCopyFolder_SourceIsFile(t *testing.T) {
	root := t.TempDir()
	src := filepath.Join(root, "css")
	writeFile(t, src, "body{}", 0o644)

	err := export.CopyFolder(src, filepath.Join(root, "out"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not a directory")
}

func TestCopyFolder_OverwritesExistingFiles(t *testing.T) {
	src := filepath.Join(t.TempDir(), "css")
	dst := filepath.Join(t.TempDir(), "css")
	writeFile(t, filepath.Join(src, "site.css"), "new", 0o644)
	writeFile(t, filepath.Join(dst, "site.css"), "old content that is longer", 0o644)

	require.NoError(t, export.CopyFolder(src, dst))

	data, err := os.ReadFile(filepath.Join(dst, "site.css"))
	require.NoError(t, err)
	assert.Equal(t, "new", string(data))
}
