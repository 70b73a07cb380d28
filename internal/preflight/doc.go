// Package preflight checks that the filesystem paths GlobalSort depends on
// are usable before a sort runs.
//
// The state directory and the parents of the extension and folder tables are
// required. Library directories are optional: batch sorting skips the ones
// that are missing, so a missing library directory is reported but does not
// fail the run.
package preflight
