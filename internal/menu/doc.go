// Package menu implements a numbered, line-based command menu. Choices are
// resolved through a dispatch table of Entry values; the package knows
// nothing about sorting.
package menu
