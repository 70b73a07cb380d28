package extensions

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

type tableFile struct {
	Extensions map[string]string `toml:"extensions"`
}

// Store loads and saves the extension table.
type Store interface {
	Load() (map[string]string, bool, error)
	Persist(entries map[string]string) error
}

// FileStore persists the extension table as TOML.
type FileStore struct {
	path string
}

// NewFileStore returns a store reading and writing path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Path returns the backing file location.
func (s *FileStore) Path() string {
	return s.path
}

// Load reads the table. The boolean reports whether the file existed.
func (s *FileStore) Load() (map[string]string, bool, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("read extensions file: %w", err)
	}
	var table tableFile
	if err := toml.Unmarshal(data, &table); err != nil {
		return nil, true, fmt.Errorf("parse extensions file %s: %w", s.path, err)
	}
	if table.Extensions == nil {
		table.Extensions = map[string]string{}
	}
	return table.Extensions, true, nil
}

// Persist writes entries atomically through a temp file in the same directory.
func (s *FileStore) Persist(entries map[string]string) error {
	data, err := toml.Marshal(tableFile{Extensions: entries})
	if err != nil {
		return fmt.Errorf("encode extensions: %w", err)
	}
	return writeAtomic(s.path, data)
}

// LoadOrSeed loads the table, writing defaults first when the file is absent.
func (s *FileStore) LoadOrSeed() (map[string]string, error) {
	entries, exists, err := s.Load()
	if err != nil {
		return nil, err
	}
	if exists {
		return entries, nil
	}
	entries = Defaults()
	if err := s.Persist(entries); err != nil {
		return nil, fmt.Errorf("seed extensions file: %w", err)
	}
	return entries, nil
}

func writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create directory %q: %w", dir, err)
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("replace %s: %w", path, err)
	}
	return nil
}
