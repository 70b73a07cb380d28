package config

import (
	"strings"

	"globalsort/internal/errs"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validatePaths(); err != nil {
		return err
	}
	if err := c.validateSort(); err != nil {
		return err
	}
	return c.validateLogging()
}

func (c *Config) validatePaths() error {
	if strings.TrimSpace(c.Paths.StateDir) == "" {
		return errs.Wrap(errs.ErrConfiguration, "config", "paths.state_dir", "must not be empty", nil)
	}
	if c.Paths.ExtensionsFile == c.Paths.FoldersFile {
		return errs.Wrap(errs.ErrConfiguration, "config", "paths", "extensions_file and folders_file must differ", nil)
	}
	return nil
}

func (c *Config) validateSort() error {
	if !ValidCategory(c.Sort.FallbackCategory) {
		return errs.Wrap(
			errs.ErrConfiguration,
			"config",
			"sort.fallback_category",
			"must be a plain folder name without path separators",
			nil,
		)
	}
	return nil
}

func (c *Config) validateLogging() error {
	switch c.Logging.Format {
	case "console", "json":
	default:
		return errs.Wrap(errs.ErrConfiguration, "config", "logging.format", "unsupported value "+c.Logging.Format, nil)
	}
	switch c.Logging.Level {
	case "debug", "info", "warn", "error":
		return nil
	default:
		return errs.Wrap(errs.ErrConfiguration, "config", "logging.level", "unsupported value "+c.Logging.Level, nil)
	}
}

// ValidCategory reports whether label can be used as an immediate child
// directory name.
func ValidCategory(label string) bool {
	if label == "" || label == "." || label == ".." {
		return false
	}
	return !strings.ContainsAny(label, `/\`)
}
