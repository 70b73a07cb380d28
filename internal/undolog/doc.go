// Package undolog records every relocation the mover performs and reverses
// them on request.
//
// Two Log implementations exist: Memory keeps records for the life of the
// process, Journal keeps them in a SQLite database so an undo survives a
// restart. UndoAll drains either one newest-first, isolating per-record
// failures, and clears the log when it is done.
package undolog
