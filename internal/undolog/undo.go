package undolog

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
)

// Failure pairs a record that could not be reversed with the reason.
type Failure struct {
	Record Record
	Err    error
}

// Report summarizes an UndoAll run.
type Report struct {
	Restored []Record
	Failures []Failure
}

// Attempted returns the number of records processed.
func (r Report) Attempted() int {
	return len(r.Restored) + len(r.Failures)
}

// UndoAll moves every recorded entry back to its original path, newest first.
// A failing record is collected in the report and the drain continues. The
// log is cleared afterwards whatever the per-record outcome. The returned
// error only reports trouble reading or clearing the log.
func UndoAll(ctx context.Context, log Log, logger *slog.Logger) (Report, error) {
	logger = logging.WithContext(ctx, logging.NewComponentLogger(logger, "undo"))
	records, err := log.Records(ctx)
	if err != nil {
		return Report{}, err
	}

	var report Report
	for i := len(records) - 1; i >= 0; i-- {
		rec := records[i]
		if err := restore(rec); err != nil {
			logging.WarnWithContext(logger, "undo failed for entry", "undo_entry_failed",
				logging.String("current_path", rec.CurrentPath),
				logging.String("original_path", rec.OriginalPath),
				logging.String(logging.FieldErrorKind, errs.Kind(err)),
				logging.Error(err),
				logging.String(logging.FieldErrorHint, "move the entry back by hand"),
				logging.String(logging.FieldImpact, "entry stays in its category folder"),
			)
			report.Failures = append(report.Failures, Failure{Record: rec, Err: err})
			continue
		}
		logger.Debug("entry restored",
			logging.String("current_path", rec.CurrentPath),
			logging.String("original_path", rec.OriginalPath))
		report.Restored = append(report.Restored, rec)
	}

	if err := log.Clear(ctx); err != nil {
		return report, err
	}
	logger.Info("undo complete",
		logging.Int("restored", len(report.Restored)),
		logging.Int("failed", len(report.Failures)))
	return report, nil
}

func restore(rec Record) error {
	if _, err := os.Lstat(rec.CurrentPath); err != nil {
		return errs.FromFS("undo", "restore", fmt.Sprintf("entry %s", rec.CurrentPath), err)
	}
	if err := os.MkdirAll(filepath.Dir(rec.OriginalPath), 0o755); err != nil {
		return errs.Wrap(errs.ErrIO, "undo", "restore", "recreate parent directory", err)
	}
	if err := fileutil.RenameNoReplace(rec.CurrentPath, rec.OriginalPath); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return errs.Wrap(errs.ErrNotFound, "undo", "restore", fmt.Sprintf("entry %s", rec.CurrentPath), err)
		}
		return errs.Wrap(errs.ErrIO, "undo", "restore", fmt.Sprintf("move %s back to %s", rec.CurrentPath, rec.OriginalPath), err)
	}
	return nil
}
