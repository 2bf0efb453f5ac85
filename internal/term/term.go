// Package term reports terminal geometry.
package term

import "github.com/mattn/go-isatty"

// DefaultColumns is the width assumed for a terminal that cannot be queried.
const DefaultColumns = 80

// IsTerminal reports whether fd refers to a terminal.
func IsTerminal(fd uintptr) bool {
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// Columns returns the width of the terminal behind fd.
// It returns 0 if fd is not a terminal, and DefaultColumns if the width is unknown.
func Columns(fd uintptr) int {
	if !IsTerminal(fd) {
		return 0
	}

	if cols := columns(fd); cols > 0 {
		return cols
	}

	return DefaultColumns
}
