package casefile

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// ErrNotFound reports a case file missing from the store.
var ErrNotFound = errors.New("case not found")

// FileStore keeps cases as JSON files in a directory.
type FileStore struct {
	Dir     string
	Options []Option
}

// NewFileStore returns a store rooted at dir.
func NewFileStore(dir string, opts ...Option) *FileStore {
	return &FileStore{Dir: dir, Options: opts}
}

// Save writes c under FileName(c) and returns the file name.
func (s *FileStore) Save(c Case) (string, error) {
	data, err := Encode(c)
	if err != nil {
		return "", err
	}

	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create case directory %s: %w", s.Dir, err)
	}

	name := FileName(c)
	if err := os.WriteFile(filepath.Join(s.Dir, name), data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write case %s: %w", name, err)
	}

	return name, nil
}

// Load reads the case saved under name. Only the base name is used, so a
// name cannot leave the store directory.
func (s *FileStore) Load(name string) (Case, error) {
	name = filepath.Base(strings.TrimSpace(name))
	if !strings.HasSuffix(name, ".json") {
		name += ".json"
	}

	data, err := os.ReadFile(filepath.Join(s.Dir, name))
	if errors.Is(err, fs.ErrNotExist) {
		return Case{}, fmt.Errorf("%w: %s", ErrNotFound, name)
	}

	if err != nil {
		return Case{}, fmt.Errorf("failed to read case %s: %w", name, err)
	}

	return Decode(data, s.Options...)
}

// List returns the saved file names, sorted. A missing directory is empty.
func (s *FileStore) List() ([]string, error) {
	entries, err := os.ReadDir(s.Dir)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}

	if err != nil {
		return nil, fmt.Errorf("failed to list cases in %s: %w", s.Dir, err)
	}

	var names []string

	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".json") {
			names = append(names, e.Name())
		}
	}

	slices.Sort(names)

	return names, nil
}
