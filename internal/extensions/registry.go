package extensions

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"

	"golang.org/x/text/unicode/norm"

	"globalsort/internal/config"
	"globalsort/internal/errs"
	"globalsort/internal/logging"
)

// DefaultFallback is the category used when no mapping matches.
const DefaultFallback = "Uncategorized"

// Entry is one extension to category mapping.
type Entry struct {
	Extension string `json:"extension"`
	Category  string `json:"category"`
}

// PersistFunc receives a copy of the table after every successful mutation.
type PersistFunc func(entries map[string]string) error

// Option customizes a Registry.
type Option func(*Registry)

// WithFallback overrides the category returned for unknown extensions.
func WithFallback(category string) Option {
	return func(r *Registry) {
		if normalized, err := NormalizeCategory(category); err == nil {
			r.fallback = normalized
		}
	}
}

// WithPersist installs the write-through hook.
func WithPersist(fn PersistFunc) Option {
	return func(r *Registry) {
		r.persist = fn
	}
}

// WithLogger sets the registry logger.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Registry) {
		r.logger = logging.NewComponentLogger(logger, "extensions")
	}
}

// Registry maps normalized extensions to categories.
type Registry struct {
	mu       sync.RWMutex
	entries  map[string]string
	fallback string
	persist  PersistFunc
	logger   *slog.Logger
}

// NewRegistry builds a registry from raw table entries. Entries whose key or
// label cannot be normalized are dropped with a warning; when two raw keys
// normalize to the same extension the first in sorted key order wins.
func NewRegistry(entries map[string]string, opts ...Option) *Registry {
	r := &Registry{
		entries:  make(map[string]string, len(entries)),
		fallback: DefaultFallback,
		logger:   logging.NewComponentLogger(nil, "extensions"),
	}
	for _, opt := range opts {
		opt(r)
	}

	keys := make([]string, 0, len(entries))
	for key := range entries {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		ext, err := NormalizeExtension(key)
		if err != nil {
			logging.WarnWithContext(r.logger, "skipping invalid extension entry", "extension_entry_invalid",
				logging.String("extension", key),
				logging.Error(err),
				logging.String(logging.FieldImpact, "files with this extension fall back to the default category"),
			)
			continue
		}
		category, err := NormalizeCategory(entries[key])
		if err != nil {
			logging.WarnWithContext(r.logger, "skipping invalid category entry", "extension_entry_invalid",
				logging.String("extension", key),
				logging.String("category", entries[key]),
				logging.Error(err),
				logging.String(logging.FieldImpact, "files with this extension fall back to the default category"),
			)
			continue
		}
		if _, exists := r.entries[ext]; exists {
			continue
		}
		r.entries[ext] = category
	}
	return r
}

// NormalizeExtension trims and lowercases ext and ensures a leading dot.
func NormalizeExtension(ext string) (string, error) {
	normalized := strings.ToLower(strings.TrimSpace(ext))
	if normalized != "" && !strings.HasPrefix(normalized, ".") {
		normalized = "." + normalized
	}
	if normalized == "" || normalized == "." {
		return "", errs.Wrap(errs.ErrValidation, "extensions", "normalize", "extension must not be empty", nil)
	}
	if strings.ContainsAny(normalized, `/\ `) {
		return "", errs.Wrap(errs.ErrValidation, "extensions", "normalize", fmt.Sprintf("invalid extension %q", ext), nil)
	}
	return normalized, nil
}

// NormalizeCategory trims and NFC-normalizes a category label and rejects
// labels that are not a single path element.
func NormalizeCategory(category string) (string, error) {
	normalized := norm.NFC.String(strings.TrimSpace(category))
	if !config.ValidCategory(normalized) {
		return "", errs.Wrap(errs.ErrValidation, "extensions", "normalize", fmt.Sprintf("invalid category %q", category), nil)
	}
	return normalized, nil
}

// Lookup returns the category for ext, or the fallback when ext is unknown.
func (r *Registry) Lookup(ext string) string {
	if category, ok := r.Mapped(ext); ok {
		return category
	}
	return r.fallback
}

// Mapped returns the category for ext and whether ext is in the table.
func (r *Registry) Mapped(ext string) (string, bool) {
	normalized := strings.ToLower(strings.TrimSpace(ext))
	if normalized != "" && !strings.HasPrefix(normalized, ".") {
		normalized = "." + normalized
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	category, ok := r.entries[normalized]
	return category, ok
}

// Fallback returns the category used for unknown extensions.
func (r *Registry) Fallback() string {
	return r.fallback
}

// Add maps ext to category. It fails with errs.ErrAlreadyExists when ext is
// already mapped, leaving the registry unchanged.
func (r *Registry) Add(ext, category string) error {
	normalizedExt, err := NormalizeExtension(ext)
	if err != nil {
		return err
	}
	normalizedCategory, err := NormalizeCategory(category)
	if err != nil {
		return err
	}

	r.mu.Lock()
	if existing, ok := r.entries[normalizedExt]; ok {
		r.mu.Unlock()
		return errs.Wrap(
			errs.ErrAlreadyExists,
			"extensions",
			"add",
			fmt.Sprintf("extension %s is already mapped to %s", normalizedExt, existing),
			nil,
		)
	}
	r.entries[normalizedExt] = normalizedCategory
	snapshot := r.snapshotLocked()
	r.mu.Unlock()

	r.logger.Info("extension added",
		logging.String("extension", normalizedExt),
		logging.String("category", normalizedCategory))
	return r.writeThrough(snapshot, "add")
}

// Remove deletes the mapping for ext. It fails with errs.ErrNotFound when ext
// is not mapped.
func (r *Registry) Remove(ext string) error {
	normalizedExt, err := NormalizeExtension(ext)
	if err != nil {
		return err
	}

	r.mu.Lock()
	if _, ok := r.entries[normalizedExt]; !ok {
		r.mu.Unlock()
		return errs.Wrap(errs.ErrNotFound, "extensions", "remove", fmt.Sprintf("extension %s does not exist", normalizedExt), nil)
	}
	delete(r.entries, normalizedExt)
	snapshot := r.snapshotLocked()
	r.mu.Unlock()

	r.logger.Info("extension removed", logging.String("extension", normalizedExt))
	return r.writeThrough(snapshot, "remove")
}

func (r *Registry) writeThrough(snapshot map[string]string, operation string) error {
	if r.persist == nil {
		return nil
	}
	if err := r.persist(snapshot); err != nil {
		logging.WarnWithContext(r.logger, "extension table not saved", "extensions_persist_failed",
			logging.String("operation", operation),
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "check permissions on the extensions file"),
			logging.String(logging.FieldImpact, "change applies to this session only"),
		)
		return errs.Wrap(errs.ErrPersistence, "extensions", operation, "change kept in memory but not saved", err)
	}
	return nil
}

// Entries returns every mapping sorted by extension.
func (r *Registry) Entries() []Entry {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Entry, 0, len(r.entries))
	for ext, category := range r.entries {
		out = append(out, Entry{Extension: ext, Category: category})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Extension < out[j].Extension })
	return out
}

// Categories returns the distinct category labels, sorted.
func (r *Registry) Categories() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	seen := make(map[string]struct{}, len(r.entries))
	out := make([]string, 0, len(r.entries))
	for _, category := range r.entries {
		if _, ok := seen[category]; ok {
			continue
		}
		seen[category] = struct{}{}
		out = append(out, category)
	}
	sort.Strings(out)
	return out
}

// Len returns the number of mapped extensions.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.entries)
}

// Snapshot returns a copy of the table.
func (r *Registry) Snapshot() map[string]string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.snapshotLocked()
}

func (r *Registry) snapshotLocked() map[string]string {
	out := make(map[string]string, len(r.entries))
	for ext, category := range r.entries {
		out[ext] = category
	}
	return out
}
