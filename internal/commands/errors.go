package commands

import (
	"errors"
	"fmt"
)

var (
	// ErrPathNotFound reports a root path that does not exist.
	ErrPathNotFound = errors.New("path does not exist")
	// ErrNotADirectory reports a root path that exists but is not a directory.
	ErrNotADirectory = errors.New("not a directory")
	// ErrListingDenied reports a directory whose entries cannot be read due to permissions.
	ErrListingDenied = errors.New("permission denied listing directory")
)

// PathError ties a traversal failure to the path that caused it.
type PathError struct {
	Path string
	Err  error
}

func (pathError *PathError) Error() string {
	return fmt.Sprintf("%s: %v", pathError.Path, pathError.Err)
}

func (pathError *PathError) Unwrap() error {
	return pathError.Err
}

func newPathError(path string, err error) error {
	return &PathError{Path: path, Err: err}
}
