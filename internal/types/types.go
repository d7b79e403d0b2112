// Package types defines the data structures shared across the ptree packages.
package types

// DirectoryEntry is one child of a directory read during traversal.
// IsDir is true only when the entry resolves, through symlinks, to a directory.
type DirectoryEntry struct {
	Path  string
	Name  string
	IsDir bool
}
