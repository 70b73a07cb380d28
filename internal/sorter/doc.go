// Package sorter organizes the immediate children of a directory into
// category folders.
//
// A pass moves regular files first, then re-lists the directory and moves
// subfolders, so folders created for files are seen by the folder pass and
// categorize to themselves. Per-entry failures are collected in the Result
// and never abort the pass.
package sorter
