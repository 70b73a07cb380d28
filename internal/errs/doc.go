// Package errs defines the error taxonomy shared by the sorting core.
//
// Every failure surfaced by the registry, mover, sorter, and undo log carries
// one of the exported markers so front ends can decide how to react with
// errors.Is instead of string matching. Wrap attaches component and operation
// context while keeping both the marker and the underlying cause reachable.
package errs
