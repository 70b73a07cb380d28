package config

import (
	"fmt"
	"strings"

	"golang.org/x/text/unicode/norm"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	if err := c.normalizeSort(); err != nil {
		return err
	}
	c.normalizeLogging()
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.StateDir) == "" {
		c.Paths.StateDir = defaultStateDir
	}
	if c.Paths.StateDir, err = expandPath(strings.TrimSpace(c.Paths.StateDir)); err != nil {
		return fmt.Errorf("paths.state_dir: %w", err)
	}
	if strings.TrimSpace(c.Paths.ExtensionsFile) == "" {
		c.Paths.ExtensionsFile = defaultExtensionsFile
	}
	if c.Paths.ExtensionsFile, err = expandPath(strings.TrimSpace(c.Paths.ExtensionsFile)); err != nil {
		return fmt.Errorf("paths.extensions_file: %w", err)
	}
	if strings.TrimSpace(c.Paths.FoldersFile) == "" {
		c.Paths.FoldersFile = defaultFoldersFile
	}
	if c.Paths.FoldersFile, err = expandPath(strings.TrimSpace(c.Paths.FoldersFile)); err != nil {
		return fmt.Errorf("paths.folders_file: %w", err)
	}
	return nil
}

func (c *Config) normalizeSort() error {
	c.Sort.FallbackCategory = norm.NFC.String(strings.TrimSpace(c.Sort.FallbackCategory))
	if c.Sort.FallbackCategory == "" {
		c.Sort.FallbackCategory = defaultFallbackCategory
	}

	dirs := make([]string, 0, len(c.Sort.LibraryDirs))
	seen := make(map[string]struct{}, len(c.Sort.LibraryDirs))
	for _, dir := range c.Sort.LibraryDirs {
		trimmed := strings.TrimSpace(dir)
		if trimmed == "" {
			continue
		}
		expanded, err := expandPath(trimmed)
		if err != nil {
			return fmt.Errorf("sort.library_dirs: %w", err)
		}
		if _, exists := seen[expanded]; exists {
			continue
		}
		seen[expanded] = struct{}{}
		dirs = append(dirs, expanded)
	}
	c.Sort.LibraryDirs = dirs
	return nil
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	if c.Logging.Format == "" {
		c.Logging.Format = defaultLogFormat
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	switch c.Logging.Level {
	case "":
		c.Logging.Level = defaultLogLevel
	case "warning":
		c.Logging.Level = "warn"
	}
}
