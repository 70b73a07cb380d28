package categorize

import (
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"globalsort/internal/logging"
)

// Registry is the lookup surface the categorizer needs.
type Registry interface {
	Lookup(ext string) string
	Mapped(ext string) (string, bool)
	Fallback() string
}

// Categorizer classifies files and folders against a registry.
type Categorizer struct {
	registry Registry
	logger   *slog.Logger
}

// New returns a Categorizer for reg.
func New(reg Registry, logger *slog.Logger) *Categorizer {
	return &Categorizer{
		registry: reg,
		logger:   logging.NewComponentLogger(logger, "categorize"),
	}
}

// Extension returns the lowercased extension of the base name of path,
// including the dot. Leading dots do not start an extension, so ".bashrc" has
// none.
func Extension(path string) string {
	base := strings.TrimLeft(filepath.Base(path), ".")
	return strings.ToLower(strings.TrimSpace(filepath.Ext(base)))
}

// CategorizeFile returns the category for a single file.
func (c *Categorizer) CategorizeFile(path string) string {
	ext := Extension(path)
	if ext == "" {
		return c.registry.Fallback()
	}
	return c.registry.Lookup(ext)
}

// CategorizeFolder walks the whole subtree of path and returns the category
// held by the most files with a mapped extension. Files with unknown
// extensions do not vote. Each directory's own files are visited before its
// subdirectories, both in lexical order, and ties go to the category seen
// first. A tree without any mapped file yields the fallback category.
func (c *Categorizer) CategorizeFolder(path string) string {
	root := path
	if resolved, err := filepath.EvalSymlinks(path); err == nil {
		root = resolved
	}

	v := &votes{counts: make(map[string]int)}
	c.tally(root, v)

	if len(v.order) == 0 {
		return c.registry.Fallback()
	}
	best := v.order[0]
	for _, category := range v.order[1:] {
		if v.counts[category] > v.counts[best] {
			best = category
		}
	}
	c.logger.Debug("folder categorized",
		logging.String("path", path),
		logging.String("category", best),
		logging.Int("votes", v.counts[best]))
	return best
}

type votes struct {
	counts map[string]int
	order  []string
}

func (v *votes) add(category string) {
	if _, seen := v.counts[category]; !seen {
		v.order = append(v.order, category)
	}
	v.counts[category]++
}

// tally counts dir's files, then descends into its subdirectories. Links to
// directories are not followed.
func (c *Categorizer) tally(dir string, v *votes) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		c.logger.Debug("skipping unreadable directory",
			logging.String("path", dir),
			logging.Error(err))
	}
	var subdirs []string
	for _, entry := range entries {
		p := filepath.Join(dir, entry.Name())
		if entry.IsDir() {
			subdirs = append(subdirs, p)
			continue
		}
		if entry.Type()&fs.ModeSymlink != 0 {
			if info, err := os.Stat(p); err == nil && info.IsDir() {
				continue
			}
		}
		ext := Extension(p)
		if ext == "" {
			continue
		}
		if category, ok := c.registry.Mapped(ext); ok {
			v.add(category)
		}
	}
	for _, sub := range subdirs {
		c.tally(sub, v)
	}
}
