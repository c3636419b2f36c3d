// Package serializer converts CMS entities into the XML documents of a
// migration pack. Every document is written as its own file named after a
// sanitized human-readable key of the entity.
package serializer

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/yasinhessnawi1/migrationpack/internal/constants"
)

const xmlHeader = `<?xml version="1.0" encoding="utf-8"?>` + "\n"

// writeDocument marshals doc and stores it as dir/DocumentFileName(key),
// creating dir when needed. An existing file is truncated.
func writeDocument(dir, key string, doc any) (string, error) {
	if err := os.MkdirAll(dir, constants.DirPermission); err != nil {
		return "", fmt.Errorf("failed to create document directory %s: %w", dir, err)
	}

	body, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode document %q: %w", key, err)
	}

	var buf bytes.Buffer
	buf.Grow(len(xmlHeader) + len(body) + 1)
	buf.WriteString(xmlHeader)
	buf.Write(body)
	buf.WriteByte('\n')

	path := filepath.Join(dir, DocumentFileName(key))
	if err := os.WriteFile(path, buf.Bytes(), constants.FilePermission); err != nil {
		return "", fmt.Errorf("failed to write document %s: %w", path, err)
	}
	return path, nil
}

// formatDate renders t in the round-trip format. Unset dates become empty elements.
func formatDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.RFC3339Nano)
}
