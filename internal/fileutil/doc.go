// Package fileutil holds the filesystem primitives the mover and undo log
// share: a rename that never overwrites its destination, path containment
// checks, and recursive size accounting.
package fileutil
