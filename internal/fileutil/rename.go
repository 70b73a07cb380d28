package fileutil

import (
	"io/fs"
	"os"
)

// renameChecked is the portable fallback: it refuses an existing destination
// and then renames. The gap between the check and the rename is not atomic.
func renameChecked(src, dst string) error {
	if Exists(dst) {
		return &os.LinkError{Op: "rename", Old: src, New: dst, Err: fs.ErrExist}
	}
	return os.Rename(src, dst)
}
