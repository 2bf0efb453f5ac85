//go:build !(linux || darwin || freebsd || netbsd || openbsd || dragonfly)

package usage

import (
	"os"
	"time"
)

// statFile returns the size and modification time of path without following symlinks.
// The modification time stands in for the access time on these platforms.
func statFile(path string) (uint64, time.Time, error) {
	info, err := os.Lstat(path)
	if err != nil {
		return 0, time.Time{}, err
	}

	return uint64(info.Size()), info.ModTime(), nil //nolint:gosec // Sizes of regular files are never negative
}
