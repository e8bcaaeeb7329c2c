// Package filekv persists each key as a JSON file in a data directory.
package filekv

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"path/filepath"
	"strings"
	"sync"

	"github.com/spf13/afero"

	"github.com/boolean-maybe/tock/store"
)

const fileExt = ".json"

// Store writes "<dir>/<key>.json" through a temp file and rename so readers
// never observe a partial document.
type Store struct {
	mu  sync.Mutex
	fs  afero.Fs
	dir string
}

// New creates a store rooted at dir on fsys, creating dir if needed.
func New(fsys afero.Fs, dir string) (*Store, error) {
	//nolint:gosec // G301: 0755 is appropriate for the data directory
	if err := fsys.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}
	slog.Debug("file kv store opened", "dir", dir)
	return &Store{fs: fsys, dir: dir}, nil
}

// NewOS creates a store on the real filesystem.
func NewOS(dir string) (*Store, error) {
	return New(afero.NewOsFs(), dir)
}

// Dir returns the data directory.
func (s *Store) Dir() string {
	return s.dir
}

// Path returns the file backing key.
func (s *Store) Path(key string) string {
	return filepath.Join(s.dir, key+fileExt)
}

// KeyForPath maps a file path back to its key, or "" when the path is not a
// value file of this store.
func (s *Store) KeyForPath(path string) string {
	if filepath.Dir(path) != filepath.Clean(s.dir) {
		return ""
	}
	name := filepath.Base(path)
	if !strings.HasSuffix(name, fileExt) {
		return ""
	}
	return strings.TrimSuffix(name, fileExt)
}

func checkKey(key string) error {
	if key == "" || strings.ContainsAny(key, `/\`) || key == "." || key == ".." {
		return fmt.Errorf("invalid key %q", key)
	}
	return nil
}

func (s *Store) Get(key string) ([]byte, error) {
	if err := checkKey(key); err != nil {
		return nil, err
	}
	data, err := afero.ReadFile(s.fs, s.Path(key))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, store.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", key, err)
	}
	return data, nil
}

func (s *Store) Set(key string, value []byte) error {
	if err := checkKey(key); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tmp, err := afero.TempFile(s.fs, s.dir, "."+key+"-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(value); err != nil {
		_ = tmp.Close()
		_ = s.fs.Remove(tmpName)
		return fmt.Errorf("writing %s: %w", key, err)
	}
	if err := tmp.Close(); err != nil {
		_ = s.fs.Remove(tmpName)
		return fmt.Errorf("closing %s: %w", key, err)
	}
	if err := s.fs.Rename(tmpName, s.Path(key)); err != nil {
		_ = s.fs.Remove(tmpName)
		return fmt.Errorf("renaming %s: %w", key, err)
	}
	return nil
}

// ensure Store implements KeyValueStore
var _ store.KeyValueStore = (*Store)(nil)
