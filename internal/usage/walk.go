package usage

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/charlievieth/fastwalk"
	"github.com/eapache/queue"
)

// Walker selects a traversal strategy.
type Walker string

const (
	// WalkerParallel traverses directories concurrently with fastwalk.
	WalkerParallel Walker = "parallel"
	// WalkerSerial traverses directories breadth-first on a single goroutine.
	WalkerSerial Walker = "serial"
)

// Walkers lists the supported traversal strategies.
//
//nolint:gochecknoglobals // Config constant
var Walkers = []Walker{WalkerParallel, WalkerSerial}

// ParseWalker converts s into a Walker. The empty string selects WalkerParallel.
func ParseWalker(s string) (Walker, error) {
	switch walker := Walker(strings.ToLower(s)); walker {
	case "":
		return WalkerParallel, nil
	case WalkerParallel, WalkerSerial:
		return walker, nil
	default:
		return "", fmt.Errorf("unknown walker %q: must be one of %v", s, Walkers)
	}
}

// walk calls fn for root and every entry below it. A symlinked root is followed,
// symlinks below it are not.
// For WalkerParallel fn is called from multiple goroutines.
func (w Walker) walk(root string, fn fs.WalkDirFunc) error {
	if w == WalkerSerial {
		return walkSerial(root, fn)
	}

	conf := &fastwalk.Config{
		Follow: false,
	}

	return fastwalk.Walk(conf, root, fn)
}

// walkSerial visits the tree breadth-first, keeping pending directories in a FIFO
// so only one directory is open at a time. Paths are joined per entry and never shared.
// A symlinked root is followed; symlinks below it are not.
func walkSerial(root string, fn fs.WalkDirFunc) error {
	info, err := os.Stat(root)
	if err != nil {
		return ignoreSkip(fn(root, nil, err))
	}

	if err := fn(root, fs.FileInfoToDirEntry(info), nil); err != nil || !info.IsDir() {
		return ignoreSkip(err)
	}

	pending := queue.New()
	pending.Add(root)

	for pending.Length() > 0 {
		dir := pending.Remove().(string) //nolint:forcetypeassert // Only directory paths are queued

		entries, err := os.ReadDir(dir)
		if err != nil {
			switch err := fn(dir, nil, err); {
			case err == nil, errors.Is(err, filepath.SkipDir):
			case errors.Is(err, fs.SkipAll):
				return nil
			default:
				return err
			}
		}

	scan:
		for _, entry := range entries {
			path := filepath.Join(dir, entry.Name())

			switch err := fn(path, entry, nil); {
			case err == nil:
				if entry.IsDir() {
					pending.Add(path)
				}
			case errors.Is(err, filepath.SkipDir):
				// SkipDir on a file skips the remaining entries of its directory.
				if !entry.IsDir() {
					break scan
				}
			case errors.Is(err, fs.SkipAll):
				return nil
			default:
				return err
			}
		}
	}

	return nil
}

// ignoreSkip maps the skip sentinels to a clean stop.
func ignoreSkip(err error) error {
	if errors.Is(err, filepath.SkipDir) || errors.Is(err, fs.SkipAll) {
		return nil
	}

	return err
}
