package preflight_test

import (
	"os"
	"path/filepath"
	"testing"

	"globalsort/internal/preflight"
	"globalsort/internal/testsupport"
)

func TestCheckDirectoryAccessOK(t *testing.T) {
	result := preflight.CheckDirectoryAccess("test", t.TempDir())
	if !result.Passed {
		t.Fatalf("expected pass for temp dir, got: %s", result.Detail)
	}
}

func TestCheckDirectoryAccessNotExist(t *testing.T) {
	result := preflight.CheckDirectoryAccess("test", filepath.Join(t.TempDir(), "nope"))
	if result.Passed {
		t.Fatal("expected failure for missing dir")
	}
	if result.Detail == "" {
		t.Fatal("expected non-empty detail")
	}
}

func TestCheckDirectoryAccessNotDir(t *testing.T) {
	f := filepath.Join(t.TempDir(), "file.txt")
	if err := os.WriteFile(f, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
	if result := preflight.CheckDirectoryAccess("test", f); result.Passed {
		t.Fatal("expected failure for file path")
	}
}

func TestRunAllMissingLibraryIsOptional(t *testing.T) {
	library := filepath.Join(t.TempDir(), "Music")
	cfg := testsupport.NewConfig(t, testsupport.WithLibraryDirs(library))

	results := preflight.RunAll(cfg)
	var sawLibrary bool
	for _, r := range results {
		if r.Name == "Library Music" {
			sawLibrary = true
			if r.Passed || !r.Optional {
				t.Fatalf("library result = %+v", r)
			}
		}
	}
	if !sawLibrary {
		t.Fatalf("library check missing: %+v", results)
	}
	if failed := preflight.Failed(results); len(failed) != 0 {
		t.Fatalf("required checks failed: %+v", failed)
	}
}
