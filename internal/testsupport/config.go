package testsupport

import (
	"path/filepath"
	"testing"

	"globalsort/internal/config"
)

// ConfigOption allows callers to customize the generated test configuration.
type ConfigOption func(*configBuilder)

type configBuilder struct {
	t       testing.TB
	baseDir string
	cfg     *config.Config
}

// NewConfig produces a config seeded with unique temp directories per test.
// Library directories default to none so batch sorts touch only what the test
// adds.
func NewConfig(t testing.TB, opts ...ConfigOption) *config.Config {
	t.Helper()

	base := t.TempDir()
	cfgVal := config.Default()
	cfgVal.Paths.StateDir = filepath.Join(base, "state")
	cfgVal.Paths.ExtensionsFile = filepath.Join(base, "config", "extensions.toml")
	cfgVal.Paths.FoldersFile = filepath.Join(base, "config", "folders.toml")
	cfgVal.Sort.LibraryDirs = nil

	builder := &configBuilder{
		t:       t,
		baseDir: base,
		cfg:     &cfgVal,
	}

	for _, opt := range opts {
		opt(builder)
	}

	if err := builder.cfg.EnsureDirectories(); err != nil {
		t.Fatalf("ensure directories: %v", err)
	}
	return builder.cfg
}

// WithLibraryDirs sets the batch-mode library directories.
func WithLibraryDirs(dirs ...string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Sort.LibraryDirs = append([]string(nil), dirs...)
	}
}

// WithInMemoryUndo disables the SQLite undo journal.
func WithInMemoryUndo() ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Undo.Persist = false
	}
}

// WithFallbackCategory overrides the category for unknown extensions.
func WithFallbackCategory(label string) ConfigOption {
	return func(b *configBuilder) {
		b.cfg.Sort.FallbackCategory = label
	}
}

// BaseDir returns the root temp directory backing the generated config.
func BaseDir(cfg *config.Config) string {
	return filepath.Dir(cfg.Paths.StateDir)
}
