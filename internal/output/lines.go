// Package output writes rendered trees.
package output

import (
	"io"
	"strings"
)

const lineSeparator = "\n"

// JoinLines returns the lines joined by newlines, without a trailing newline.
func JoinLines(lines []string) string {
	return strings.Join(lines, lineSeparator)
}

// WriteLines writes the lines to writer, each terminated by a newline.
// Nothing is written for an empty tree.
func WriteLines(writer io.Writer, lines []string) error {
	if len(lines) == 0 {
		return nil
	}
	_, writeError := io.WriteString(writer, JoinLines(lines)+lineSeparator)
	return writeError
}
