// Package mover relocates one directory entry into a category folder and
// records the move in the undo log.
//
// A folder is never moved into itself or one of its descendants. Renames do
// not overwrite an existing destination and are never replaced by a copy. A
// move that cannot be recorded is reverted before MoveEntry returns.
package mover
