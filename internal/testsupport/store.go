package testsupport

import (
	"testing"

	"globalsort/internal/config"
	"globalsort/internal/extensions"
	"globalsort/internal/undolog"
)

// MustOpenJournal opens the SQLite undo journal for tests and registers cleanup.
func MustOpenJournal(t testing.TB, cfg *config.Config) *undolog.Journal {
	t.Helper()

	journal, err := undolog.OpenJournal(cfg.JournalPath())
	if err != nil {
		t.Fatalf("undolog.OpenJournal: %v", err)
	}
	t.Cleanup(func() {
		_ = journal.Close()
	})
	return journal
}

// NewRegistry builds a registry from ext/category pairs with no persistence.
func NewRegistry(t testing.TB, pairs ...string) *extensions.Registry {
	t.Helper()

	if len(pairs)%2 != 0 {
		t.Fatalf("NewRegistry: odd number of ext/category arguments")
	}
	entries := make(map[string]string, len(pairs)/2)
	for i := 0; i < len(pairs); i += 2 {
		entries[pairs[i]] = pairs[i+1]
	}
	return extensions.NewRegistry(entries)
}
