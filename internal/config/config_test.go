package config_test

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pelletier/go-toml/v2"

	"globalsort/internal/config"
	"globalsort/internal/errs"
)

func TestLoadDefaultConfigExpandsPaths(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)
	chdir(t, t.TempDir())

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if resolved == "" {
		t.Fatal("expected resolved path")
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}

	wantState := filepath.Join(tempHome, ".local", "share", "globalsort")
	if cfg.Paths.StateDir != wantState {
		t.Fatalf("unexpected state dir: got %q want %q", cfg.Paths.StateDir, wantState)
	}
	if cfg.Paths.ExtensionsFile != filepath.Join(tempHome, ".config", "globalsort", "extensions.toml") {
		t.Fatalf("unexpected extensions file: %q", cfg.Paths.ExtensionsFile)
	}
	if cfg.Sort.FallbackCategory != "Uncategorized" {
		t.Fatalf("unexpected fallback category: %q", cfg.Sort.FallbackCategory)
	}
	if len(cfg.Sort.LibraryDirs) != 5 || cfg.Sort.LibraryDirs[0] != filepath.Join(tempHome, "Music") {
		t.Fatalf("unexpected library dirs: %v", cfg.Sort.LibraryDirs)
	}
	if !cfg.Undo.Persist {
		t.Fatal("expected undo persistence enabled by default")
	}
	if cfg.Logging.Format != "console" || cfg.Logging.Level != "info" {
		t.Fatalf("unexpected logging defaults: %+v", cfg.Logging)
	}

	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories failed: %v", err)
	}
	for _, dir := range []string{cfg.Paths.StateDir, cfg.LogDir(), filepath.Dir(cfg.Paths.ExtensionsFile)} {
		info, err := os.Stat(dir)
		if err != nil {
			t.Fatalf("expected directory %q to exist: %v", dir, err)
		}
		if !info.IsDir() {
			t.Fatalf("expected %q to be directory", dir)
		}
	}
	if filepath.Dir(cfg.JournalPath()) != cfg.Paths.StateDir || filepath.Dir(cfg.LockPath()) != cfg.Paths.StateDir {
		t.Fatalf("expected journal and lock under state dir, got %q %q", cfg.JournalPath(), cfg.LockPath())
	}
}

func TestLoadCustomPath(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "globalsort.toml")

	type payload struct {
		Paths struct {
			StateDir string `toml:"state_dir"`
		} `toml:"paths"`
		Sort struct {
			FallbackCategory string   `toml:"fallback_category"`
			LibraryDirs      []string `toml:"library_dirs"`
		} `toml:"sort"`
		Undo struct {
			Persist bool `toml:"persist"`
		} `toml:"undo"`
		Logging struct {
			Format string `toml:"format"`
			Level  string `toml:"level"`
		} `toml:"logging"`
	}
	custom := payload{}
	custom.Paths.StateDir = filepath.Join(tempDir, "state")
	custom.Sort.FallbackCategory = "  Divers "
	custom.Sort.LibraryDirs = []string{filepath.Join(tempDir, "a"), "", filepath.Join(tempDir, "a")}
	custom.Undo.Persist = false
	custom.Logging.Format = "JSON"
	custom.Logging.Level = "DEBUG"
	data, err := toml.Marshal(custom)
	if err != nil {
		t.Fatalf("marshal custom config: %v", err)
	}
	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		t.Fatalf("write custom config: %v", err)
	}

	cfg, resolved, exists, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists {
		t.Fatal("expected exists to be true")
	}
	if resolved != configPath {
		t.Fatalf("unexpected resolved path: got %q want %q", resolved, configPath)
	}
	if cfg.Paths.StateDir != filepath.Join(tempDir, "state") {
		t.Fatalf("unexpected state dir: %q", cfg.Paths.StateDir)
	}
	if cfg.Sort.FallbackCategory != "Divers" {
		t.Fatalf("expected trimmed fallback category, got %q", cfg.Sort.FallbackCategory)
	}
	if len(cfg.Sort.LibraryDirs) != 1 {
		t.Fatalf("expected deduplicated library dirs, got %v", cfg.Sort.LibraryDirs)
	}
	if cfg.Undo.Persist {
		t.Fatal("expected undo persistence disabled")
	}
	if cfg.Logging.Format != "json" || cfg.Logging.Level != "debug" {
		t.Fatalf("expected normalized logging, got %+v", cfg.Logging)
	}
}

func TestLoadRejectsInvalidFallbackCategory(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "globalsort.toml")
	content := "[sort]\nfallback_category = \"../escape\"\n"
	if err := os.WriteFile(configPath, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	_, _, _, err := config.Load(configPath)
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !errors.Is(err, errs.ErrConfiguration) {
		t.Fatalf("expected configuration marker, got %v", err)
	}
	if !strings.Contains(err.Error(), "sort.fallback_category") {
		t.Fatalf("expected field name in error, got %v", err)
	}
}

func TestLoadRejectsUnknownLogLevel(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, "globalsort.toml")
	if err := os.WriteFile(configPath, []byte("[logging]\nlevel = \"chatty\"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, _, _, err := config.Load(configPath); !errors.Is(err, errs.ErrConfiguration) {
		t.Fatalf("expected configuration error, got %v", err)
	}
}

func TestLoadAcceptsWarningLevel(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "globalsort.toml")
	if err := os.WriteFile(configPath, []byte("[logging]\nlevel = \"warning\"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg, _, _, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Logging.Level != "warn" {
		t.Fatalf("level = %q, want warn", cfg.Logging.Level)
	}
}

func TestLoadRejectsUnknownLogFormat(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "globalsort.toml")
	if err := os.WriteFile(configPath, []byte("[logging]\nformat = \"xml\"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	_, _, _, err := config.Load(configPath)
	if !errors.Is(err, errs.ErrConfiguration) || !strings.Contains(err.Error(), "logging.format") {
		t.Fatalf("expected logging.format configuration error, got %v", err)
	}
}

func TestLoadMissingCustomPathUsesDefaults(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	missing := filepath.Join(t.TempDir(), "nope.toml")
	cfg, resolved, exists, err := config.Load(missing)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if exists {
		t.Fatal("expected exists to be false")
	}
	if resolved != missing {
		t.Fatalf("unexpected resolved path %q", resolved)
	}
	if cfg.Sort.FallbackCategory != config.Default().Sort.FallbackCategory {
		t.Fatalf("unexpected fallback %q", cfg.Sort.FallbackCategory)
	}
}

func TestCreateSampleIsLoadable(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	target := filepath.Join(t.TempDir(), "nested", "config.toml")
	if err := config.CreateSample(target); err != nil {
		t.Fatalf("CreateSample: %v", err)
	}
	cfg, _, exists, err := config.Load(target)
	if err != nil {
		t.Fatalf("Load sample: %v", err)
	}
	if !exists {
		t.Fatal("expected sample to exist")
	}
	if cfg.Sort.FallbackCategory != "Uncategorized" {
		t.Fatalf("unexpected sample fallback %q", cfg.Sort.FallbackCategory)
	}
}

func TestValidCategory(t *testing.T) {
	valid := []string{"Music", "Mes Documents", "Vidéos"}
	invalid := []string{"", ".", "..", "a/b", `a\b`}
	for _, label := range valid {
		if !config.ValidCategory(label) {
			t.Fatalf("expected %q to be valid", label)
		}
	}
	for _, label := range invalid {
		if config.ValidCategory(label) {
			t.Fatalf("expected %q to be invalid", label)
		}
	}
}

// chdir mirrors testing.T.Chdir (Go 1.24+) for older toolchains.
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(prev); err != nil {
			t.Fatal(err)
		}
	})
}
