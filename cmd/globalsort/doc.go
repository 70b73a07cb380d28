// Package main hosts the GlobalSort CLI entrypoint and command graph.
//
// The Cobra command tree resolves configuration once, opens a session for
// commands that touch sorting state, and renders results as text, tables, or
// JSON. Sorting, undo, and table maintenance live in the internal packages;
// commands here only parse arguments and print.
package main
