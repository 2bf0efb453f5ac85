//go:build linux || darwin || freebsd || netbsd || openbsd || dragonfly

package usage

import (
	"time"

	"golang.org/x/sys/unix"
)

// statFile returns the size and last access time of path without following symlinks.
func statFile(path string) (uint64, time.Time, error) {
	var st unix.Stat_t
	if err := unix.Lstat(path, &st); err != nil {
		return 0, time.Time{}, err
	}

	sec, nsec := st.Atim.Unix()

	return uint64(st.Size), time.Unix(sec, nsec), nil //nolint:gosec // Sizes of regular files are never negative
}
