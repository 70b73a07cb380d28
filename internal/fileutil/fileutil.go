package fileutil

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// ErrCrossDevice reports a rename across filesystems. It is matched in
// addition to the underlying syscall error.
var ErrCrossDevice = errors.New("cross-device rename")

// RenameNoReplace moves src to dst and fails with fs.ErrExist when dst is
// already present. Nothing is copied: a rename the filesystem cannot perform
// in place is reported as ErrCrossDevice.
func RenameNoReplace(src, dst string) error {
	if _, err := os.Lstat(src); err != nil {
		return err
	}
	return renameNoReplace(src, dst)
}

// IsWithin reports whether child is parent itself or lies beneath it. Both
// paths are made absolute and cleaned; comparison is by path component so
// "/a/Doc" is not within "/a/Do".
func IsWithin(parent, child string) (bool, error) {
	p, err := filepath.Abs(parent)
	if err != nil {
		return false, err
	}
	c, err := filepath.Abs(child)
	if err != nil {
		return false, err
	}
	rel, err := filepath.Rel(p, c)
	if err != nil {
		return false, nil
	}
	if rel == "." {
		return true, nil
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)), nil
}

// ResolveParent returns an absolute path for path whose parent directory has
// symlinks evaluated. The final element is kept as-is so a symlink entry
// resolves to its own location rather than its target.
func ResolveParent(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	parent, err := filepath.EvalSymlinks(filepath.Dir(abs))
	if err != nil {
		return "", err
	}
	return filepath.Join(parent, filepath.Base(abs)), nil
}

// ResolveExisting returns an absolute path for path with symlinks evaluated in
// its longest existing prefix. Elements that do not exist yet are appended
// unchanged, so a directory about to be created resolves consistently with
// its future siblings.
func ResolveExisting(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	var missing []string
	current := abs
	for {
		resolved, err := filepath.EvalSymlinks(current)
		if err == nil {
			for i := len(missing) - 1; i >= 0; i-- {
				resolved = filepath.Join(resolved, missing[i])
			}
			return resolved, nil
		}
		parent := filepath.Dir(current)
		if parent == current {
			return abs, nil
		}
		missing = append(missing, filepath.Base(current))
		current = parent
	}
}

// Exists reports whether path is present without following a final symlink.
func Exists(path string) bool {
	_, err := os.Lstat(path)
	return err == nil
}

// TreeSize sums regular file sizes under path. A file path returns its own
// size. Unreadable subtrees are skipped.
func TreeSize(path string) int64 {
	info, err := os.Lstat(path)
	if err != nil {
		return 0
	}
	if !info.IsDir() {
		return info.Size()
	}
	var total int64
	_ = filepath.WalkDir(path, func(_ string, d fs.DirEntry, err error) error {
		if err != nil {
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if d.Type().IsRegular() {
			if fi, infoErr := d.Info(); infoErr == nil {
				total += fi.Size()
			}
		}
		return nil
	})
	return total
}
