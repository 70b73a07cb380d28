// Package logging assembles structured slog loggers used across GlobalSort.
//
// It owns the console and JSON handlers, level parsing, and file/stderr
// output plumbing, and exposes context helpers so sort and undo code can tag
// log lines with the session ID and the directory being processed. A no-op
// logger is provided for tests and wiring code that cannot fail.
package logging
