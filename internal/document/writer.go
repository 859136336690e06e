package document

import (
	"archive/zip"
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// File permission constants.
const (
	dirPerm  = 0o755
	filePerm = 0o644
)

// File is a named output ready to be written or served.
type File struct {
	Name      string
	MediaType string
	Content   []byte
}

// WriteFiles writes files to dir, creating it if needed.
func WriteFiles(files []File, dir string) error {
	err := os.MkdirAll(dir, dirPerm)
	if err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	for _, f := range files {
		path := filepath.Join(dir, filepath.Base(f.Name))

		err := os.WriteFile(path, f.Content, filePerm)
		if err != nil {
			return fmt.Errorf("writing file %s: %w", f.Name, err)
		}
	}

	return nil
}

// Bundle packs files into a zip archive. Entries carry the given time, or
// the zip epoch when zero, so equal inputs give equal archives.
func Bundle(files []File, modified time.Time) ([]byte, error) {
	if modified.IsZero() {
		modified = zipEpoch
	}

	var buf bytes.Buffer

	zw := zip.NewWriter(&buf)

	for _, f := range files {
		w, err := zw.CreateHeader(&zip.FileHeader{
			Name:     filepath.Base(f.Name),
			Method:   zip.Deflate,
			Modified: modified,
		})
		if err != nil {
			return nil, fmt.Errorf("adding %s to bundle: %w", f.Name, err)
		}

		if _, err := w.Write(f.Content); err != nil {
			return nil, fmt.Errorf("adding %s to bundle: %w", f.Name, err)
		}
	}

	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("closing bundle: %w", err)
	}

	return buf.Bytes(), nil
}
