package session_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"globalsort/internal/logging"
	"globalsort/internal/session"
	"globalsort/internal/testsupport"
)

func openSession(t *testing.T, opts ...testsupport.ConfigOption) *session.Session {
	t.Helper()
	cfg := testsupport.NewConfig(t, opts...)
	s, err := session.Open(cfg, logging.NewNop())
	if err != nil {
		t.Fatalf("session.Open: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestOpenSeedsExtensionDefaults(t *testing.T) {
	s := openSession(t)
	if s.Registry().Lookup(".mp3") != "Music" {
		t.Fatalf("default table not loaded")
	}
	if _, err := os.Stat(s.Config().Paths.ExtensionsFile); err != nil {
		t.Fatalf("extensions file not seeded: %v", err)
	}
	if s.ID() == "" {
		t.Fatal("session id empty")
	}
}

func TestOpenRejectsConcurrentSession(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	first, err := session.Open(cfg, nil)
	if err != nil {
		t.Fatalf("first Open: %v", err)
	}
	defer first.Close()

	if _, err := session.Open(cfg, nil); !errors.Is(err, session.ErrLocked) {
		t.Fatalf("second Open error = %v, want ErrLocked", err)
	}
	if err := first.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	again, err := session.Open(cfg, nil)
	if err != nil {
		t.Fatalf("Open after Close: %v", err)
	}
	_ = again.Close()
}

func TestSortStampsSessionID(t *testing.T) {
	s := openSession(t)
	root := t.TempDir()
	testsupport.WriteTree(t, root, "a.pdf")

	result := s.Sort(context.Background(), root)
	if len(result.Moves) != 1 || result.Moves[0].SessionID != s.ID() {
		t.Fatalf("moves = %+v", result.Moves)
	}
}

func TestUndoSurvivesRestart(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	root := t.TempDir()
	testsupport.WriteTree(t, root, "a.pdf", "b.mp3")
	ctx := context.Background()

	first, err := session.Open(cfg, nil)
	if err != nil {
		t.Fatal(err)
	}
	if result := first.Sort(ctx, root); !result.Moved {
		t.Fatal("nothing sorted")
	}
	if err := first.Close(); err != nil {
		t.Fatal(err)
	}

	second, err := session.Open(cfg, nil)
	if err != nil {
		t.Fatal(err)
	}
	defer second.Close()
	history, err := second.History(ctx)
	if err != nil || len(history) != 2 {
		t.Fatalf("History = %d, %v", len(history), err)
	}
	report, err := second.UndoAll(ctx)
	if err != nil || len(report.Restored) != 2 {
		t.Fatalf("UndoAll = %+v, %v", report, err)
	}
	for _, name := range []string{"a.pdf", "b.mp3"} {
		if _, err := os.Stat(filepath.Join(root, name)); err != nil {
			t.Fatalf("%s not restored: %v", name, err)
		}
	}
}

func TestInMemoryUndoDoesNotPersist(t *testing.T) {
	cfg := testsupport.NewConfig(t, testsupport.WithInMemoryUndo())
	root := t.TempDir()
	testsupport.WriteTree(t, root, "a.pdf")
	ctx := context.Background()

	first, err := session.Open(cfg, nil)
	if err != nil {
		t.Fatal(err)
	}
	first.Sort(ctx, root)
	if n, _ := first.Log().Len(ctx); n != 1 {
		t.Fatalf("memory log len = %d", n)
	}
	_ = first.Close()

	second, err := session.Open(cfg, nil)
	if err != nil {
		t.Fatal(err)
	}
	defer second.Close()
	if n, _ := second.Log().Len(ctx); n != 0 {
		t.Fatalf("in-memory log leaked across sessions: %d", n)
	}
	if _, err := os.Stat(cfg.JournalPath()); !os.IsNotExist(err) {
		t.Fatalf("journal created with persist disabled: %v", err)
	}
}

func TestSortAllCoversLibraryAndFolders(t *testing.T) {
	base := t.TempDir()
	music := filepath.Join(base, "Music")
	custom := filepath.Join(base, "custom")
	missing := filepath.Join(base, "missing")
	testsupport.WriteTree(t, music, "song.mp3")
	testsupport.WriteTree(t, custom, "doc.pdf")

	s := openSession(t, testsupport.WithLibraryDirs(music, missing))
	if _, err := s.Folders().Add("custom", custom); err != nil {
		t.Fatal(err)
	}

	batch := s.SortAll(context.Background())
	if !batch.Moved {
		t.Fatal("batch moved nothing")
	}
	if len(batch.Missing) != 1 || batch.Missing[0] != missing {
		t.Fatalf("Missing = %v", batch.Missing)
	}
	if len(batch.Results) != 2 {
		t.Fatalf("Results = %d", len(batch.Results))
	}
	for _, want := range []string{
		filepath.Join(music, "Music", "song.mp3"),
		filepath.Join(custom, "Documents", "doc.pdf"),
	} {
		if _, err := os.Stat(want); err != nil {
			t.Fatalf("%s missing: %v", want, err)
		}
	}
	if len(batch.Touched) != 2 {
		t.Fatalf("Touched = %v", batch.Touched)
	}
}

func TestRegistryChangesPersistAcrossSessions(t *testing.T) {
	cfg := testsupport.NewConfig(t)
	first, err := session.Open(cfg, nil)
	if err != nil {
		t.Fatal(err)
	}
	if err := first.Registry().Add(".blend", "Models"); err != nil {
		t.Fatalf("Add: %v", err)
	}
	_ = first.Close()

	second, err := session.Open(cfg, nil)
	if err != nil {
		t.Fatal(err)
	}
	defer second.Close()
	if got := second.Registry().Lookup(".blend"); got != "Models" {
		t.Fatalf("Lookup after reopen = %q", got)
	}
}
