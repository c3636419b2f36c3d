package export

import (
	"bytes"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/klauspost/compress/zip"
	"github.com/rs/zerolog/log"

	"github.com/yasinhessnawi1/migrationpack/internal/constants"
)

// Archiver zips finished working directories into OutputRoot.
type Archiver struct {
	OutputRoot string

	// Clock supplies the timestamp encoded in archive names.
	Clock func() time.Time
}

// NewArchiver returns an Archiver writing into outputRoot.
func NewArchiver(outputRoot string) *Archiver {
	return &Archiver{
		OutputRoot: outputRoot,
		Clock:      time.Now,
	}
}

// ArchiveName returns the file name of an archive created at t.
func ArchiveName(t time.Time) string {
	return constants.ArchivePrefix + t.Format(constants.ArchiveTimeLayout) + constants.ArchiveExtension
}

// ZipFolder compresses every regular file below folder into a new archive and
// returns the archive path. Entry names are folder-relative and slash
// separated. The archive is built in memory and written with a single call;
// a failed write removes whatever reached the disk.
func (a *Archiver) ZipFolder(folder string) (string, error) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	files := 0
	err := filepath.WalkDir(folder, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return walkErr
		}
		if !d.Type().IsRegular() {
			return nil
		}

		rel, err := filepath.Rel(folder, path)
		if err != nil {
			return err
		}
		info, err := d.Info()
		if err != nil {
			return err
		}

		header, err := zip.FileInfoHeader(info)
		if err != nil {
			return err
		}
		header.Name = filepath.ToSlash(rel)
		header.Method = zip.Deflate

		w, err := zw.CreateHeader(header)
		if err != nil {
			return err
		}
		f, err := os.Open(path)
		if err != nil {
			return err
		}
		_, err = io.Copy(w, f)
		f.Close()
		if err != nil {
			return err
		}
		files++
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("failed to add %s to archive: %w", folder, err)
	}
	if err := zw.Close(); err != nil {
		return "", fmt.Errorf("failed to finish archive: %w", err)
	}

	clock := a.Clock
	if clock == nil {
		clock = time.Now
	}
	path := filepath.Join(a.OutputRoot, ArchiveName(clock()))
	if err := os.WriteFile(path, buf.Bytes(), constants.FilePermission); err != nil {
		_ = os.Remove(path)
		return "", fmt.Errorf("failed to write archive %s: %w", path, err)
	}

	log.Info().
		Str("archive", path).
		Int("files", files).
		Int("bytes", buf.Len()).
		Msg("Archive written")

	return path, nil
}
