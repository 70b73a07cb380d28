package folders

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"

	"globalsort/internal/config"
	"globalsort/internal/errs"
)

// Folder is one labelled directory.
type Folder struct {
	Label string `toml:"label" json:"label"`
	Path  string `toml:"path" json:"path"`
}

type folderFile struct {
	Folders []Folder `toml:"folder"`
}

// Store is an ordered folder list backed by a TOML file.
type Store struct {
	path    string
	folders []Folder
}

// Open loads path. A missing file yields an empty store.
func Open(path string) (*Store, error) {
	s := &Store{path: path}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return nil, errs.Wrap(errs.ErrIO, "folders", "open", "read folders file", err)
	}
	var file folderFile
	if err := toml.Unmarshal(data, &file); err != nil {
		return nil, errs.Wrap(errs.ErrConfiguration, "folders", "open", "parse "+path, err)
	}
	for _, f := range file.Folders {
		label := strings.TrimSpace(f.Label)
		if label == "" || s.index(label) >= 0 {
			continue
		}
		s.folders = append(s.folders, Folder{Label: label, Path: f.Path})
	}
	return s, nil
}

// Path returns the backing file location.
func (s *Store) Path() string {
	return s.path
}

// List returns every pair in insertion order.
func (s *Store) List() []Folder {
	return append([]Folder(nil), s.folders...)
}

// Existing returns the pairs whose path is currently a directory.
func (s *Store) Existing() []Folder {
	out := make([]Folder, 0, len(s.folders))
	for _, f := range s.folders {
		info, err := os.Stat(f.Path)
		if err != nil || !info.IsDir() {
			continue
		}
		out = append(out, f)
	}
	return out
}

// Add records label for dir and saves the file. An empty dir means the
// current working directory. Re-adding a label updates its path in place.
func (s *Store) Add(label, dir string) (Folder, error) {
	label = strings.TrimSpace(label)
	if label == "" {
		return Folder{}, errs.Wrap(errs.ErrValidation, "folders", "add", "label must not be empty", nil)
	}
	dir = strings.TrimSpace(dir)
	if dir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return Folder{}, errs.Wrap(errs.ErrIO, "folders", "add", "resolve current directory", err)
		}
		dir = cwd
	}
	expanded, err := config.ExpandPath(dir)
	if err != nil {
		return Folder{}, errs.Wrap(errs.ErrValidation, "folders", "add", "expand path", err)
	}
	info, err := os.Stat(expanded)
	if err != nil {
		return Folder{}, errs.FromFS("folders", "add", fmt.Sprintf("path %s", expanded), err)
	}
	if !info.IsDir() {
		return Folder{}, errs.Wrap(errs.ErrValidation, "folders", "add", fmt.Sprintf("%s is not a directory", expanded), nil)
	}

	entry := Folder{Label: label, Path: filepath.Clean(expanded)}
	if i := s.index(label); i >= 0 {
		s.folders[i] = entry
	} else {
		s.folders = append(s.folders, entry)
	}
	return entry, s.save()
}

// Remove deletes label and saves the file.
func (s *Store) Remove(label string) error {
	label = strings.TrimSpace(label)
	i := s.index(label)
	if i < 0 {
		return errs.Wrap(errs.ErrNotFound, "folders", "remove", fmt.Sprintf("label %q does not exist", label), nil)
	}
	s.folders = append(s.folders[:i], s.folders[i+1:]...)
	return s.save()
}

func (s *Store) index(label string) int {
	for i, f := range s.folders {
		if f.Label == label {
			return i
		}
	}
	return -1
}

func (s *Store) save() error {
	data, err := toml.Marshal(folderFile{Folders: s.folders})
	if err != nil {
		return errs.Wrap(errs.ErrPersistence, "folders", "save", "encode folders", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return errs.Wrap(errs.ErrPersistence, "folders", "save", "create directory", err)
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return errs.Wrap(errs.ErrPersistence, "folders", "save", "write folders file", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		_ = os.Remove(tmp)
		return errs.Wrap(errs.ErrPersistence, "folders", "save", "replace folders file", err)
	}
	return nil
}
