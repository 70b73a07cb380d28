package mover

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"globalsort/internal/errs"
	"globalsort/internal/fileutil"
	"globalsort/internal/logging"
	"globalsort/internal/undolog"
)

// Mover performs tracked relocations.
type Mover struct {
	log    undolog.Log
	logger *slog.Logger
}

// New returns a Mover appending to log.
func New(log undolog.Log, logger *slog.Logger) *Mover {
	return &Mover{
		log:    log,
		logger: logging.NewComponentLogger(logger, "mover"),
	}
}

// MoveEntry moves entryPath into targetDir, keeping its base name, and
// returns the stored undo record.
func (m *Mover) MoveEntry(ctx context.Context, entryPath, targetDir string) (undolog.Record, error) {
	// A link to a directory is compared as written: resolving the target
	// through the link would hide that the entry is the target itself.
	if info, err := os.Stat(entryPath); err == nil && info.IsDir() {
		if err := CheckContainment(entryPath, targetDir); err != nil {
			return undolog.Record{}, err
		}
	}

	original, err := fileutil.ResolveParent(entryPath)
	if err != nil {
		return undolog.Record{}, errs.FromFS("mover", "resolve", fmt.Sprintf("entry %s", entryPath), err)
	}
	info, err := os.Lstat(original)
	if err != nil {
		return undolog.Record{}, errs.FromFS("mover", "stat", fmt.Sprintf("entry %s", original), err)
	}
	target, err := fileutil.ResolveExisting(targetDir)
	if err != nil {
		return undolog.Record{}, errs.Wrap(errs.ErrIO, "mover", "resolve", fmt.Sprintf("target %s", targetDir), err)
	}

	kind := undolog.KindFile
	if info.IsDir() {
		kind = undolog.KindFolder
		if err := CheckContainment(original, target); err != nil {
			return undolog.Record{}, err
		}
	}

	if err := os.MkdirAll(target, 0o755); err != nil {
		return undolog.Record{}, errs.Wrap(errs.ErrIO, "mover", "mkdir", fmt.Sprintf("create %s", target), err)
	}

	dest := filepath.Join(target, filepath.Base(original))
	size := fileutil.TreeSize(original)
	if err := fileutil.RenameNoReplace(original, dest); err != nil {
		return undolog.Record{}, classifyRename(original, dest, err)
	}

	rec := undolog.Record{
		CurrentPath:  dest,
		OriginalPath: original,
		Kind:         kind,
		SizeBytes:    size,
	}
	if sessionID, ok := logging.SessionIDFromContext(ctx); ok {
		rec.SessionID = sessionID
	}

	stored, err := m.log.Append(ctx, rec)
	if err != nil {
		if rbErr := fileutil.RenameNoReplace(dest, original); rbErr != nil {
			m.logger.Error("move could not be recorded or reverted",
				logging.String("current_path", dest),
				logging.String("original_path", original),
				logging.Error(errors.Join(err, rbErr)),
				logging.String(logging.FieldErrorHint, "move the entry back by hand"),
			)
			return undolog.Record{}, errs.Wrap(errs.ErrIO, "mover", "record",
				fmt.Sprintf("entry left at %s untracked", dest), errors.Join(err, rbErr))
		}
		return undolog.Record{}, errs.Wrap(errs.ErrIO, "mover", "record", "undo log append failed, move reverted", err)
	}

	logging.WithContext(ctx, m.logger).Debug("entry moved",
		logging.String("original_path", original),
		logging.String("current_path", dest),
		logging.String("kind", string(kind)),
		logging.Int64("size_bytes", size))
	return stored, nil
}

// CheckContainment fails with errs.ErrSelfContainment when target is folder
// itself or lies beneath it.
func CheckContainment(folder, target string) error {
	within, err := fileutil.IsWithin(folder, target)
	if err != nil {
		return errs.Wrap(errs.ErrIO, "mover", "guard", "compare paths", err)
	}
	if within {
		return errs.Wrap(errs.ErrSelfContainment, "mover", "guard",
			fmt.Sprintf("cannot move %s into %s", folder, target), nil)
	}
	return nil
}

func classifyRename(src, dst string, err error) error {
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return errs.Wrap(errs.ErrNotFound, "mover", "rename", fmt.Sprintf("entry %s vanished", src), err)
	case errors.Is(err, fs.ErrExist):
		return errs.Wrap(errs.ErrIO, "mover", "rename", fmt.Sprintf("destination %s already exists", dst), err)
	case errors.Is(err, fileutil.ErrCrossDevice):
		return errs.Wrap(errs.ErrIO, "mover", "rename", fmt.Sprintf("%s and %s are on different filesystems", src, dst), err)
	default:
		return errs.Wrap(errs.ErrIO, "mover", "rename", fmt.Sprintf("move %s to %s", src, dst), err)
	}
}
