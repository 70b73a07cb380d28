// Package config loads, normalizes, and validates GlobalSort configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), and reads TOML files. The Config type centralizes the state
// directory, the extension and folder tables the session reads and writes,
// sort behaviour, undo persistence, and logging.
//
// Always obtain settings through this package so downstream code receives
// absolute paths and clear validation errors.
package config
