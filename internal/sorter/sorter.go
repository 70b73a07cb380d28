package sorter

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"globalsort/internal/categorize"
	"globalsort/internal/errs"
	"globalsort/internal/logging"
	"globalsort/internal/mover"
	"globalsort/internal/undolog"
)

// EntryFailure is an entry that could not be moved.
type EntryFailure struct {
	Path     string
	Category string
	Err      error
}

// Skip is an entry that was deliberately left in place.
type Skip struct {
	Path     string
	Category string
	Reason   string
}

// Result describes one sort pass. Touched holds the absolute category
// folders that received at least one entry, sorted.
type Result struct {
	Directory string
	Moved     bool
	Touched   []string
	Moves     []undolog.Record
	Failures  []EntryFailure
	Skipped   []Skip
	Bytes     int64
}

// Sorter runs sort passes through a Mover.
type Sorter struct {
	mover  *mover.Mover
	base   *slog.Logger
	logger *slog.Logger
}

// New returns a Sorter that moves entries with m.
func New(m *mover.Mover, logger *slog.Logger) *Sorter {
	return &Sorter{
		mover:  m,
		base:   logger,
		logger: logging.NewComponentLogger(logger, "sorter"),
	}
}

// Sort organizes dir using reg. A missing path or a path that is not a
// directory yields an empty Result.
func (s *Sorter) Sort(ctx context.Context, dir string, reg categorize.Registry) Result {
	abs, err := filepath.Abs(dir)
	if err != nil {
		abs = dir
	}
	ctx = logging.WithDirectory(ctx, abs)
	logger := logging.WithContext(ctx, s.logger)

	result := Result{Directory: abs}
	info, err := os.Stat(abs)
	if err != nil || !info.IsDir() {
		logger.Info("directory unavailable, nothing to sort", logging.Error(err))
		return result
	}

	c := categorize.New(reg, logging.WithContext(ctx, s.base))
	touched := make(map[string]struct{})
	p := &pass{ctx: ctx, sorter: s, logger: logger, dir: abs, result: &result, touched: touched}

	for _, entry := range p.list(true) {
		if entry.kind != entryFile {
			continue
		}
		p.move(entry.path, c.CategorizeFile(entry.path))
	}
	for _, entry := range p.list(false) {
		if entry.kind != entryFolder {
			continue
		}
		p.move(entry.path, c.CategorizeFolder(entry.path))
	}

	result.Touched = make([]string, 0, len(touched))
	for folder := range touched {
		result.Touched = append(result.Touched, folder)
	}
	sort.Strings(result.Touched)
	result.Moved = len(result.Moves) > 0

	logger.Info("sort complete",
		logging.Int("moved", len(result.Moves)),
		logging.Int("failed", len(result.Failures)),
		logging.Int("skipped", len(result.Skipped)),
		logging.Int64("bytes", result.Bytes))
	return result
}

type entryKind int

const (
	entryOther entryKind = iota
	entryFile
	entryFolder
)

type listedEntry struct {
	path string
	kind entryKind
}

type pass struct {
	ctx     context.Context
	sorter  *Sorter
	logger  *slog.Logger
	dir     string
	result  *Result
	touched map[string]struct{}
}

// list classifies the current children of the directory. Symlinks count as
// the type they point at; broken links are skipped, and recorded as skips
// only when recordSkips is set.
func (p *pass) list(recordSkips bool) []listedEntry {
	entries, err := os.ReadDir(p.dir)
	if err != nil {
		logging.WarnWithContext(p.logger, "directory listing failed", "sort_list_failed",
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "check directory permissions"),
			logging.String(logging.FieldImpact, "entries in this directory were not sorted"),
		)
		p.result.Failures = append(p.result.Failures, EntryFailure{
			Path: p.dir,
			Err:  errs.FromFS("sorter", "list", p.dir, err),
		})
		return nil
	}

	out := make([]listedEntry, 0, len(entries))
	for _, entry := range entries {
		path := filepath.Join(p.dir, entry.Name())
		info, err := os.Stat(path)
		if err != nil {
			if !recordSkips {
				continue
			}
			if errors.Is(err, fs.ErrNotExist) {
				p.skip(path, "", "broken symlink")
			} else {
				p.skip(path, "", "unreadable: "+err.Error())
			}
			continue
		}
		kind := entryOther
		switch {
		case info.Mode().IsRegular():
			kind = entryFile
		case info.IsDir():
			kind = entryFolder
		}
		out = append(out, listedEntry{path: path, kind: kind})
	}
	return out
}

func (p *pass) move(path, category string) {
	target := filepath.Join(p.dir, category)
	rec, err := p.sorter.mover.MoveEntry(p.ctx, path, target)
	if err != nil {
		if errors.Is(err, errs.ErrSelfContainment) {
			p.skip(path, category, "already in its category folder")
			return
		}
		logging.WarnWithContext(p.logger, "entry not moved", "sort_entry_failed",
			logging.String("path", path),
			logging.String("category", category),
			logging.String(logging.FieldErrorKind, errs.Kind(err)),
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "resolve the conflict and sort again"),
			logging.String(logging.FieldImpact, "entry stays where it is"),
		)
		p.result.Failures = append(p.result.Failures, EntryFailure{Path: path, Category: category, Err: err})
		return
	}
	p.result.Moves = append(p.result.Moves, rec)
	p.result.Bytes += rec.SizeBytes
	p.touched[target] = struct{}{}
}

func (p *pass) skip(path, category, reason string) {
	p.logger.Debug("entry skipped",
		logging.String("path", path),
		logging.String("category", category),
		logging.String("reason", reason))
	p.result.Skipped = append(p.result.Skipped, Skip{Path: path, Category: category, Reason: reason})
}
