// Package extensions maps file extensions to category labels.
//
// The Registry is the single typed table the categorizer consults. Keys are
// normalized to a lowercase, dot-prefixed form and labels are NFC-normalized
// folder names. Every successful Add or Remove writes the table through a
// persist hook; a failing hook leaves the in-memory change in place and is
// reported as an errs.ErrPersistence warning. FileStore is the TOML-backed
// hook used by the CLI.
package extensions
