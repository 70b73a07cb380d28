package main

import (
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"globalsort/internal/errs"
	"globalsort/internal/testsupport"
)

func TestSortCommandThenUndo(t *testing.T) {
	env := setupCLITestEnv(t)
	dir := filepath.Join(env.baseDir, "inbox")
	testsupport.WriteTree(t, dir, "a.txt", "b.mp3")

	out, err := env.run(t, "sort", dir)
	if err != nil {
		t.Fatalf("sort: %v", err)
	}
	if !strings.Contains(out, "Moved 2 entries") || !strings.Contains(out, filepath.Join(dir, "Music")) {
		t.Fatalf("sort output:\n%s", out)
	}
	if _, err := os.Stat(filepath.Join(dir, "Documents", "a.txt")); err != nil {
		t.Fatalf("a.txt not sorted: %v", err)
	}

	out, err = env.run(t, "history")
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if !strings.Contains(out, filepath.Join(dir, "b.mp3")) {
		t.Fatalf("history output:\n%s", out)
	}

	out, err = env.run(t, "undo")
	if err != nil {
		t.Fatalf("undo: %v", err)
	}
	if !strings.Contains(out, "Restored 2 of 2 entries.") {
		t.Fatalf("undo output:\n%s", out)
	}
	for _, name := range []string{"a.txt", "b.mp3"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Fatalf("%s not restored: %v", name, err)
		}
	}

	out, err = env.run(t, "undo")
	if err != nil || !strings.Contains(out, "Nothing to undo.") {
		t.Fatalf("second undo = %q, %v", out, err)
	}
}

func TestSortCommandNothingToMove(t *testing.T) {
	env := setupCLITestEnv(t)
	out, err := env.run(t, "sort", filepath.Join(env.baseDir, "does-not-exist"))
	if err != nil {
		t.Fatalf("sort: %v", err)
	}
	if !strings.Contains(out, "No files were moved.") {
		t.Fatalf("output:\n%s", out)
	}
}

func TestSortCommandJSON(t *testing.T) {
	env := setupCLITestEnv(t)
	dir := filepath.Join(env.baseDir, "inbox")
	testsupport.WriteTree(t, dir, "clip.mp4")

	out, err := env.run(t, "sort", "--json", dir)
	if err != nil {
		t.Fatalf("sort: %v", err)
	}
	var view sortResultView
	if err := json.Unmarshal([]byte(out), &view); err != nil {
		t.Fatalf("decode: %v\n%s", err, out)
	}
	if !view.Moved || len(view.Moves) != 1 || view.Touched[0] != filepath.Join(dir, "Videos") {
		t.Fatalf("view = %+v", view)
	}
}

func TestFoldersAndSortAll(t *testing.T) {
	env := setupCLITestEnv(t)
	projects := filepath.Join(env.baseDir, "projects")
	testsupport.WriteTree(t, projects, "notes.pdf", "demo.mp3")

	if _, err := env.run(t, "folders", "add", "projects", projects); err != nil {
		t.Fatalf("folders add: %v", err)
	}
	_, err := env.run(t, "folders", "add", "ghost", filepath.Join(env.baseDir, "ghost"))
	if !errors.Is(err, errs.ErrNotFound) {
		t.Fatalf("folders add missing path error = %v", err)
	}

	out, err := env.run(t, "folders", "list")
	if err != nil || !strings.Contains(out, "projects") || strings.Contains(out, "ghost") {
		t.Fatalf("folders list = %q, %v", out, err)
	}

	out, err = env.run(t, "sort-all", "--json")
	if err != nil {
		t.Fatalf("sort-all: %v", err)
	}
	var batch batchResultView
	if err := json.Unmarshal([]byte(out), &batch); err != nil {
		t.Fatalf("decode: %v\n%s", err, out)
	}
	if !batch.Moved || len(batch.Results) != 1 || len(batch.Touched) != 2 {
		t.Fatalf("batch = %+v", batch)
	}

	if _, err := env.run(t, "folders", "remove", "projects"); err != nil {
		t.Fatalf("folders remove: %v", err)
	}
	if _, err := env.run(t, "folders", "remove", "projects"); !errors.Is(err, errs.ErrNotFound) {
		t.Fatalf("second remove error = %v", err)
	}
}

func TestExtCommands(t *testing.T) {
	env := setupCLITestEnv(t)

	if _, err := env.run(t, "ext", "add", "BLEND", "Models"); err != nil {
		t.Fatalf("ext add: %v", err)
	}
	if _, err := env.run(t, "ext", "add", ".blend", "Other"); !errors.Is(err, errs.ErrAlreadyExists) {
		t.Fatalf("duplicate ext add error = %v", err)
	}

	out, err := env.run(t, "ext", "list", "--json")
	if err != nil {
		t.Fatalf("ext list: %v", err)
	}
	var entries []struct {
		Extension string `json:"extension"`
		Category  string `json:"category"`
	}
	if err := json.Unmarshal([]byte(out), &entries); err != nil {
		t.Fatalf("decode: %v", err)
	}
	found := false
	for _, entry := range entries {
		if entry.Extension == ".blend" && entry.Category == "Models" {
			found = true
		}
	}
	if !found {
		t.Fatalf(".blend missing from %d entries", len(entries))
	}

	dir := filepath.Join(env.baseDir, "inbox")
	testsupport.WriteTree(t, dir, "scene.blend")
	if _, err := env.run(t, "sort", dir); err != nil {
		t.Fatalf("sort: %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "Models", "scene.blend")); err != nil {
		t.Fatalf("custom mapping not used: %v", err)
	}

	if _, err := env.run(t, "ext", "remove", ".blend"); err != nil {
		t.Fatalf("ext remove: %v", err)
	}
	if _, err := env.run(t, "ext", "remove", ".blend"); !errors.Is(err, errs.ErrNotFound) {
		t.Fatalf("second ext remove error = %v", err)
	}
}

func TestHistoryEmpty(t *testing.T) {
	env := setupCLITestEnv(t)
	out, err := env.run(t, "history")
	if err != nil || !strings.Contains(out, "No moves recorded.") {
		t.Fatalf("history = %q, %v", out, err)
	}
	out, err = env.run(t, "history", "--json")
	if err != nil || strings.TrimSpace(out) != "[]" {
		t.Fatalf("history --json = %q, %v", out, err)
	}
}

func TestMenuCommand(t *testing.T) {
	env := setupCLITestEnv(t)
	dir := filepath.Join(env.baseDir, "inbox")
	testsupport.WriteTree(t, dir, "song.mp3")

	// No library dirs are configured, so choice 1 is "Sort a specific folder",
	// 5 is "Undo all moves" and 7 is "Quit".
	input := strings.Join([]string{"1", dir, "5", "y", "7"}, "\n") + "\n"
	out, err := runCLI(t, []string{"menu"}, env.configPath, input)
	if err != nil {
		t.Fatalf("menu: %v", err)
	}
	for _, want := range []string{"Sort a specific folder", "Moved 1 entries", "Restored 1 of 1 entries."} {
		if !strings.Contains(out, want) {
			t.Errorf("menu output missing %q:\n%s", want, out)
		}
	}
	if _, err := os.Stat(filepath.Join(dir, "song.mp3")); err != nil {
		t.Fatalf("menu undo did not restore: %v", err)
	}
}

func TestMenuManagesCustomFolders(t *testing.T) {
	env := setupCLITestEnv(t)
	dir := filepath.Join(env.baseDir, "projects")
	testsupport.WriteTree(t, dir, "notes.pdf")

	// Choice 3 is "Manage custom folders" and 7 is "Quit".
	input := strings.Join([]string{
		"3", "add", "proj", dir,
		"3", "list",
		"3", "remove", "proj",
		"3", "list",
		"7",
	}, "\n") + "\n"
	out, err := runCLI(t, []string{"menu"}, env.configPath, input)
	if err != nil {
		t.Fatalf("menu: %v", err)
	}
	for _, want := range []string{
		"Manage custom folders",
		"Folder proj -> " + dir + " saved.",
		"proj         " + dir,
		"Folder proj removed.",
		"No custom folders.",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("menu output missing %q:\n%s", want, out)
		}
	}

	out, err = env.run(t, "folders", "list", "--json")
	if err != nil || strings.TrimSpace(out) != "[]" {
		t.Fatalf("folders list --json = %q, %v", out, err)
	}
}
