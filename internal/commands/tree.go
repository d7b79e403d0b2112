// Package commands contains the core logic behind the ptree command.
package commands

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"go.uber.org/zap"

	"github.com/temirov/ptree/internal/types"
)

const (
	branchConnector = "├─ "
	lastConnector   = "└─ "
	branchPadding   = "│  "
	lastPadding     = "   "

	directorySuffix = "/"

	// errorStatRootFormat is used when the root path cannot be inspected.
	errorStatRootFormat = "inspecting %s: %w"
	// errorReadDirectoryFormat is used when a directory cannot be read.
	errorReadDirectoryFormat = "reading directory: %w"

	debugListedDirectoryMessage = "listed directory"
	debugLeafEntryMessage       = "rendering entry as leaf"
)

// Render returns the tree lines below rootDirectoryPath.
func Render(rootDirectoryPath string, sortEntries bool) ([]string, error) {
	return TreeBuilder{SortEntries: sortEntries}.Render(rootDirectoryPath)
}

// Render returns one fully prefixed line per descendant of rootDirectoryPath,
// in depth-first pre-order. The root itself is not part of the output.
// The first directory that cannot be listed aborts the render.
func (treeBuilder TreeBuilder) Render(rootDirectoryPath string) ([]string, error) {
	rootInfo, rootStatError := os.Stat(rootDirectoryPath)
	if rootStatError != nil {
		switch {
		case errors.Is(rootStatError, fs.ErrNotExist):
			return nil, newPathError(rootDirectoryPath, ErrPathNotFound)
		case errors.Is(rootStatError, fs.ErrPermission):
			return nil, newPathError(rootDirectoryPath, ErrListingDenied)
		default:
			return nil, fmt.Errorf(errorStatRootFormat, rootDirectoryPath, rootStatError)
		}
	}
	if !rootInfo.IsDir() {
		return nil, newPathError(rootDirectoryPath, ErrNotADirectory)
	}
	return treeBuilder.renderDirectory(rootDirectoryPath)
}

// renderDirectory returns the lines for the children of directoryPath. The
// lines carry connectors relative to this level only; the caller prepends its
// own padding.
func (treeBuilder TreeBuilder) renderDirectory(directoryPath string) ([]string, error) {
	entries, listError := treeBuilder.listEntries(directoryPath)
	if listError != nil {
		return nil, listError
	}
	if len(entries) == 0 {
		return nil, nil
	}

	lines := make([]string, 0, len(entries))
	lastIndex := len(entries) - 1
	for entryIndex, entry := range entries {
		connector, padding := branchConnector, branchPadding
		if entryIndex == lastIndex {
			connector, padding = lastConnector, lastPadding
		}
		lines = append(lines, connector+displayName(entry))
		if !entry.IsDir {
			continue
		}
		childLines, childError := treeBuilder.renderDirectory(entry.Path)
		if childError != nil {
			return nil, childError
		}
		for _, childLine := range childLines {
			lines = append(lines, padding+childLine)
		}
	}
	return lines, nil
}

// listEntries reads the immediate children of directoryPath in filesystem
// order, or sorted by full path when SortEntries is set.
func (treeBuilder TreeBuilder) listEntries(directoryPath string) ([]types.DirectoryEntry, error) {
	directoryHandle, openError := os.Open(directoryPath)
	if openError != nil {
		return nil, listingError(directoryPath, openError)
	}
	defer directoryHandle.Close()

	// os.ReadDir sorts by name; File.ReadDir keeps the order the filesystem returns.
	directoryEntries, readError := directoryHandle.ReadDir(-1)
	if readError != nil {
		return nil, listingError(directoryPath, readError)
	}

	entries := make([]types.DirectoryEntry, 0, len(directoryEntries))
	for _, directoryEntry := range directoryEntries {
		childPath := filepath.Join(directoryPath, directoryEntry.Name())
		entries = append(entries, types.DirectoryEntry{
			Path:  childPath,
			Name:  directoryEntry.Name(),
			IsDir: treeBuilder.isListableDirectory(childPath),
		})
	}
	if treeBuilder.SortEntries {
		sort.Slice(entries, func(left, right int) bool {
			return entries[left].Path < entries[right].Path
		})
	}

	treeBuilder.logger().Debug(debugListedDirectoryMessage,
		zap.String("path", directoryPath),
		zap.Int("entries", len(entries)),
		zap.Bool("sorted", treeBuilder.SortEntries),
	)
	return entries, nil
}

// isListableDirectory follows symlinks; anything that cannot be stat'ed is a leaf.
func (treeBuilder TreeBuilder) isListableDirectory(entryPath string) bool {
	entryInfo, statError := os.Stat(entryPath)
	if statError != nil {
		treeBuilder.logger().Debug(debugLeafEntryMessage, zap.String("path", entryPath), zap.Error(statError))
		return false
	}
	return entryInfo.IsDir()
}

func listingError(directoryPath string, err error) error {
	if errors.Is(err, fs.ErrPermission) {
		return newPathError(directoryPath, ErrListingDenied)
	}
	if errors.Is(err, fs.ErrNotExist) {
		return newPathError(directoryPath, ErrPathNotFound)
	}
	return newPathError(directoryPath, fmt.Errorf(errorReadDirectoryFormat, err))
}

func displayName(entry types.DirectoryEntry) string {
	if entry.IsDir {
		return entry.Name + directorySuffix
	}
	return entry.Name
}
