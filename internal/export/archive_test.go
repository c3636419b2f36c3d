package export_test

import (
	"io"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"testing"
	"time"

	"github.com/klauspost/compress/zip"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yasinhessnawi1/migrationpack/internal/export"
)

var archiveNamePattern = regexp.MustCompile(`^migration_data_\d{4}_\d{2}_\d{2}_\d{6}\.zip$`)

func TestArchiveName(t *testing.T) {
	name := export.ArchiveName(time.Date(2024, 3, 9, 7, 5, 2, 0, time.UTC))
	assert.Equal(t, "migration_data_2024_03_09_070502.zip", name)
	assert.Regexp(t, archiveNamePattern, name)
}

func TestZipFolder_RoundTrip(t *testing.T) {
	outputRoot := t.TempDir()
	work := filepath.Join(outputRoot, "abc123")
	files := map[string]string{
		"data/Users/ann-example.com.config":   "<User/>",
		"data/DataTypes/textbox.config":       "<DataType/>",
		"_site/config/grid.editors.config.js": "[]",
		"_site/views/Partials/Nav.cshtml":     "<nav/>",
	}
	for rel, content := range files {
		writeFile(t, filepath.Join(work, filepath.FromSlash(rel)), content, 0o644)
	}

	archiver := export.NewArchiver(outputRoot)
	archiver.Clock = func() time.Time { return time.Date(2025, 1, 31, 23, 59, 58, 0, time.Local) }

	path, err := archiver.ZipFolder(work)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(outputRoot, "migration_data_2025_01_31_235958.zip"), path)

	zr, err := zip.OpenReader(path)
	require.NoError(t, err)
	defer zr.Close()

	var names []string
	for _, f := range zr.File {
		names = append(names, f.Name)
		rc, err := f.Open()
		require.NoError(t, err)
		data, err := io.ReadAll(rc)
		rc.Close()
		require.NoError(t, err)
		assert.Equal(t, files[f.Name], string(data), f.Name)
	}

	want := make([]string, 0, len(files))
	for rel := range files {
		want = append(want, rel)
	}
	sort.Strings(want)
	assert.Equal(t, want, names, "entries are the sorted working-directory relative paths")
}

func TestZipFolder_OutputRootMissing(t *testing.T) {
	work := t.TempDir()
	writeFile(t, filepath.Join(work, "data", "a.config"), "a", 0o644)

	archiver := export.NewArchiver(filepath.Join(t.TempDir(), "missing"))
	_, err := archiver.ZipFolder(work)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to write archive")
}

func TestZipFolder_MissingFolder(t *testing.T) {
	outputRoot := t.TempDir()
	archiver := export.NewArchiver(outputRoot)

	_, err := archiver.ZipFolder(filepath.Join(outputRoot, "gone"))
	require.Error(t, err)

	entries, err := os.ReadDir(outputRoot)
	require.NoError(t, err)
	assert.Empty(t, entries, "no archive is written when the walk fails")
}

func TestCleanFolder(t *testing.T) {
	work := filepath.Join(t.TempDir(), "run")
	writeFile(t, filepath.Join(work, "data", "Users", "x.config"), "x", 0o644)

	export.CleanFolder(work)
	assert.NoDirExists(t, work)

	// Cleaning twice is harmless.
	export.CleanFolder(work)
}
