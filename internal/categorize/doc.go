// Package categorize decides which category folder a directory entry belongs
// in. Files are classified by extension alone. Folders are classified by a
// majority vote over every file in their subtree.
package categorize
