// Package session wires one GlobalSort run together: it takes the state
// lock, loads the extension registry and folder shortcuts, opens the undo
// log, and exposes the sort and undo operations the front ends call.
//
// Each session gets a random ID that is stamped on every undo record and log
// line it produces.
package session
