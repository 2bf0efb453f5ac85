package usage

import (
	"cmp"
	"fmt"
	"strings"
)

// SortMode selects the order of a Report.
type SortMode string

const (
	// SortBySize orders files by size, smallest first.
	SortBySize SortMode = "size"
	// SortByAccessTime orders files by last access time, most recent first.
	SortByAccessTime SortMode = "atime"
)

// ParseSortMode converts s into a SortMode. The empty string selects SortBySize.
func ParseSortMode(s string) (SortMode, error) {
	switch mode := SortMode(strings.ToLower(s)); mode {
	case "":
		return SortBySize, nil
	case SortBySize, SortByAccessTime:
		return mode, nil
	default:
		return "", fmt.Errorf("unknown sort mode %q", s)
	}
}

// Comparator returns the record comparison for the mode.
func (m SortMode) Comparator() func(a, b Record) int {
	if m == SortByAccessTime {
		return ByAccessTime
	}

	return BySize
}

// BySize compares records by ascending size, then by path.
func BySize(a, b Record) int {
	return cmp.Or(
		cmp.Compare(a.Size, b.Size),
		strings.Compare(a.Path, b.Path),
	)
}

// ByAccessTime compares records by descending access time, then by path.
func ByAccessTime(a, b Record) int {
	return cmp.Or(
		b.AccessTime.Compare(a.AccessTime),
		strings.Compare(a.Path, b.Path),
	)
}
