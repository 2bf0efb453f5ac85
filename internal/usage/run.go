package usage

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"
)

// DefaultProgressInterval is the default interval for progress updates.
const DefaultProgressInterval = 500 * time.Millisecond

// logger provides conditional debug output.
type logger struct {
	out     io.Writer
	enabled bool
}

// printf prints debug output if logging is enabled.
func (l logger) printf(format string, args ...any) {
	if l.enabled && l.out != nil {
		fmt.Fprintf(l.out, "[debug]: "+format, args...)
	}
}

// calculateDepth returns the depth of a path relative to the root.
func calculateDepth(path, root string) int {
	relPath, err := filepath.Rel(root, path)
	if err != nil {
		relPath = strings.TrimPrefix(strings.TrimPrefix(path, root), string(filepath.Separator))
	}

	if relPath == "" || relPath == "." {
		return 0
	}

	return strings.Count(relPath, string(filepath.Separator)) + 1
}

// shouldExcludeByPattern returns the first exclusion regex matching path.
func shouldExcludeByPattern(path string, patterns []*regexp.Regexp) *regexp.Regexp {
	fPath := filepath.ToSlash(path)

	for _, re := range patterns {
		if re.MatchString(fPath) {
			return re
		}
	}

	return nil
}

// locator turns walk paths into display paths: relative to the working
// directory when the target is inside it, absolute otherwise.
type locator struct {
	cwd        string
	outsideCwd bool
}

func newLocator(target string) (locator, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return locator{}, fmt.Errorf("getting current directory: %w", err)
	}

	absTarget, err := filepath.Abs(target)
	if err != nil {
		return locator{}, fmt.Errorf("resolving absolute path: %w", err)
	}

	relToTarget, err := filepath.Rel(cwd, absTarget)
	outsideCwd := err != nil || relToTarget == ".." ||
		strings.HasPrefix(relToTarget, ".."+string(filepath.Separator))

	return locator{cwd: cwd, outsideCwd: outsideCwd}, nil
}

func (l locator) display(path string) string {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return path
	}

	if l.outsideCwd {
		return absPath
	}

	relPath, err := filepath.Rel(l.cwd, absPath)
	if err != nil {
		return path
	}

	return relPath
}

// startProgressReporter invokes hook(files, bytes) on each tick until ctx is done
// or the returned stop function is called. stop blocks until the reporter has exited,
// so hook is never running once it returns.
//
//nolint:varnamelen // c is idiomatic for collector
func startProgressReporter(
	ctx context.Context, c *collector, hook func(int, uint64), interval time.Duration,
) (stop func()) {
	if hook == nil {
		return func() {}
	}

	if interval <= 0 {
		interval = DefaultProgressInterval
	}

	ctx, cancel := context.WithCancel(ctx)
	done := make(chan struct{})
	ticker := time.NewTicker(interval)

	go func() {
		defer close(done)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				hook(c.progress())
			case <-ctx.Done():
				return
			}
		}
	}()

	return func() {
		cancel()
		<-done
	}
}

// Run walks the directory tree at opt.Path, records the size and last access
// time of every regular file and returns them sorted by opt.Sort and capped
// at opt.Limit.
//
// Directories matching opt.Excludes are skipped entirely. If opt.Depth > 0,
// traversal stops at the specified depth. Files smaller than opt.MinSize are ignored.
//
// The walk can be cancelled via ctx. Progress updates are sent to progressHook
// if provided. Debug output goes to debug when opt.Debug is set.
//
//nolint:gocognit,funlen // Walk callback keeps filtering in one place
func Run(ctx context.Context, opt Options, progressHook func(int, uint64), debug io.Writer) (*Report, error) {
	log := logger{out: debug, enabled: opt.Debug}

	if opt.Path == "" {
		opt.Path = "."
	}

	opt.Path = filepath.Clean(opt.Path)

	if opt.Sort == "" {
		opt.Sort = SortBySize
	}

	if opt.Walker == "" {
		opt.Walker = WalkerParallel
	}

	if opt.Limit < 0 {
		return nil, fmt.Errorf("limit %d cannot be negative", opt.Limit)
	}

	if statInfo, err := os.Stat(opt.Path); err != nil {
		return nil, fmt.Errorf("accessing path %q: %w", opt.Path, err)
	} else if !statInfo.IsDir() {
		return nil, fmt.Errorf("path %q is not a directory", opt.Path)
	}

	loc, err := newLocator(opt.Path)
	if err != nil {
		return nil, err
	}

	excludeRegexes := make([]*regexp.Regexp, 0, len(opt.Excludes))

	for _, p := range opt.Excludes {
		re, err := regexp.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("compiling exclusion pattern %q: %w", p, err)
		}

		excludeRegexes = append(excludeRegexes, re)
	}

	collector, err := newCollector()
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	stopProgress := startProgressReporter(ctx, collector, progressHook, opt.ProgressInterval)
	defer stopProgress()

	log.printf("sorting by: [%s], limit: [%d], walker: [%s]\n", opt.Sort, opt.Limit, opt.Walker)
	log.printf("directory to analyze: [%s]\n", opt.Path)

	for _, re := range excludeRegexes {
		log.printf("exclude regex: %s\n", re.String())
	}

	start := time.Now()

	//nolint:varnamelen // d is standard for DirEntry
	walkErr := opt.Walker.walk(opt.Path, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			log.printf("error accessing path %s: %v\n", path, err)
			collector.addError()

			return nil
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		currentDepth := calculateDepth(path, opt.Path)
		if opt.Depth > 0 && currentDepth > opt.Depth {
			if d.IsDir() {
				log.printf("skipping directory (beyond depth %d): %s\n", opt.Depth, path)

				return filepath.SkipDir
			}

			return nil
		}

		if re := shouldExcludeByPattern(path, excludeRegexes); re != nil {
			log.printf("excluding %s (matched regex: %s)\n", filepath.ToSlash(path), re.String())

			if d.IsDir() {
				return filepath.SkipDir
			}

			return nil
		}

		if d.IsDir() || !d.Type().IsRegular() {
			return nil
		}

		size, accessTime, err := statFile(path)
		if err != nil {
			log.printf("stat %s: %v\n", path, err)
			collector.addError()

			return nil //nolint:nilerr // Intentionally skip errors during walk
		}

		if size < opt.MinSize {
			return nil
		}

		if err := collector.add(loc.display(path), size, accessTime); err != nil {
			log.printf("%v\n", err)
		}

		return nil
	})
	if walkErr != nil {
		return nil, walkErr
	}

	report, err := collector.finalize(opt.Sort, opt.Limit)
	if err != nil {
		return nil, err
	}

	report.Elapsed = time.Since(start)

	return report, nil
}
