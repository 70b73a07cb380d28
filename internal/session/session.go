package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"github.com/gofrs/flock"
	"github.com/google/uuid"

	"globalsort/internal/config"
	"globalsort/internal/extensions"
	"globalsort/internal/folders"
	"globalsort/internal/logging"
	"globalsort/internal/mover"
	"globalsort/internal/sorter"
	"globalsort/internal/undolog"
)

// ErrLocked reports that another session holds the state lock.
var ErrLocked = errors.New("another globalsort session is already running")

// Session owns the mutable state for one run.
type Session struct {
	id       string
	cfg      *config.Config
	base     *slog.Logger
	logger   *slog.Logger
	lock     *flock.Flock
	extStore *extensions.FileStore
	registry *extensions.Registry
	folders  *folders.Store
	log      undolog.Log
	journal  *undolog.Journal
	sorter   *sorter.Sorter
}

// Open acquires the state lock and loads everything a session needs.
func Open(cfg *config.Config, logger *slog.Logger) (*Session, error) {
	if cfg == nil {
		return nil, errors.New("session requires config")
	}
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("ensure directories: %w", err)
	}

	if logger == nil {
		logger = logging.NewNop()
	}
	id := uuid.NewString()
	base := logger
	logger = logging.NewComponentLogger(base, "session").With(logging.String(logging.FieldSessionID, id))

	lock := flock.New(cfg.LockPath())
	ok, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return nil, fmt.Errorf("%w (lock %s)", ErrLocked, cfg.LockPath())
	}

	s := &Session{
		id:       id,
		cfg:      cfg,
		base:     base,
		logger:   logger,
		lock:     lock,
		extStore: extensions.NewFileStore(cfg.Paths.ExtensionsFile),
	}
	if err := s.load(); err != nil {
		_ = s.Close()
		return nil, err
	}

	logger.Info("session opened",
		logging.Int("extensions", s.registry.Len()),
		logging.Int("folders", len(s.folders.List())),
		logging.Bool("persistent_undo", s.journal != nil))
	return s, nil
}

func (s *Session) load() error {
	entries, err := s.extStore.LoadOrSeed()
	if err != nil {
		return fmt.Errorf("load extensions: %w", err)
	}
	s.registry = extensions.NewRegistry(entries,
		extensions.WithFallback(s.cfg.Sort.FallbackCategory),
		extensions.WithPersist(s.extStore.Persist),
		extensions.WithLogger(s.base),
	)

	store, err := folders.Open(s.cfg.Paths.FoldersFile)
	if err != nil {
		return fmt.Errorf("load folders: %w", err)
	}
	s.folders = store

	if s.cfg.Undo.Persist {
		journal, err := undolog.OpenJournal(s.cfg.JournalPath())
		if err != nil {
			return fmt.Errorf("open undo journal: %w", err)
		}
		s.journal = journal
		s.log = journal
	} else {
		s.log = undolog.NewMemory()
	}

	s.sorter = sorter.New(mover.New(s.log, s.base), s.base)
	return nil
}

// Close releases the undo journal and the state lock.
func (s *Session) Close() error {
	var errs []error
	if s.journal != nil {
		if err := s.journal.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close undo journal: %w", err))
		}
		s.journal = nil
	}
	if s.lock != nil {
		if err := s.lock.Unlock(); err != nil {
			errs = append(errs, fmt.Errorf("release lock: %w", err))
		}
		s.lock = nil
	}
	return errors.Join(errs...)
}

// ID returns the session identifier.
func (s *Session) ID() string { return s.id }

// Config returns the configuration the session was opened with.
func (s *Session) Config() *config.Config { return s.cfg }

// Registry returns the extension registry.
func (s *Session) Registry() *extensions.Registry { return s.registry }

// Folders returns the custom folder store.
func (s *Session) Folders() *folders.Store { return s.folders }

// Log returns the undo log.
func (s *Session) Log() undolog.Log { return s.log }

func (s *Session) context(ctx context.Context) context.Context {
	return logging.WithSessionID(ctx, s.id)
}

// Sort organizes one directory.
func (s *Session) Sort(ctx context.Context, dir string) sorter.Result {
	return s.sorter.Sort(s.context(ctx), dir, s.registry)
}

// BatchResult aggregates a SortAll run.
type BatchResult struct {
	Results []sorter.Result
	Missing []string
	Moved   bool
	Touched []string
}

// Directories returns the batch targets in order: configured library
// directories, then custom folders that still exist. Duplicates are dropped.
func (s *Session) Directories() []string {
	seen := make(map[string]struct{})
	var out []string
	add := func(dir string) {
		clean := filepath.Clean(dir)
		if _, ok := seen[clean]; ok {
			return
		}
		seen[clean] = struct{}{}
		out = append(out, clean)
	}
	for _, dir := range s.cfg.Sort.LibraryDirs {
		add(dir)
	}
	for _, f := range s.folders.Existing() {
		add(f.Path)
	}
	return out
}

// SortAll sorts every batch directory, skipping ones that do not exist.
func (s *Session) SortAll(ctx context.Context) BatchResult {
	var batch BatchResult
	touched := make(map[string]struct{})
	for _, dir := range s.Directories() {
		if info, err := os.Stat(dir); err != nil || !info.IsDir() {
			s.logger.Info("batch directory missing, skipping", logging.String("directory", dir))
			batch.Missing = append(batch.Missing, dir)
			continue
		}
		result := s.Sort(ctx, dir)
		batch.Results = append(batch.Results, result)
		batch.Moved = batch.Moved || result.Moved
		for _, folder := range result.Touched {
			touched[folder] = struct{}{}
		}
	}
	for folder := range touched {
		batch.Touched = append(batch.Touched, folder)
	}
	sort.Strings(batch.Touched)
	return batch
}

// UndoAll reverses every recorded move.
func (s *Session) UndoAll(ctx context.Context) (undolog.Report, error) {
	return undolog.UndoAll(s.context(ctx), s.log, s.base)
}

// History returns the pending undo records, oldest first.
func (s *Session) History(ctx context.Context) ([]undolog.Record, error) {
	return s.log.Records(ctx)
}
