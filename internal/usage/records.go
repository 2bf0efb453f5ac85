package usage

import (
	"fmt"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/idelchi/da/internal/elist"
)

// Record describes a single regular file.
type Record struct {
	// Size is the file size in bytes.
	Size uint64 `json:"size"        yaml:"size"`
	// Path is the file path, relative to the working directory when possible.
	Path string `json:"path"        yaml:"path"`
	// AccessTime is the time of last access.
	AccessTime time.Time `json:"access_time" yaml:"access_time"`
}

// Report holds the sorted and limited result of a walk.
type Report struct {
	// Files contains the records in display order.
	Files []Record `json:"files"       yaml:"files"`
	// FileCount is the number of files found before the limit was applied.
	FileCount int `json:"file_count"  yaml:"file_count"`
	// TotalBytes is the cumulative size of all files found.
	TotalBytes uint64 `json:"total_bytes" yaml:"total_bytes"`
	// Errors is the number of entries that could not be recorded.
	Errors int64 `json:"errors"      yaml:"errors"`
	// Elapsed is the total time taken for the walk.
	Elapsed time.Duration `json:"elapsed"     yaml:"elapsed"`
	// Sort is the order applied to Files.
	Sort SortMode `json:"sort"        yaml:"sort"`
	// Limit is the maximum number of files kept (0=unlimited).
	Limit int `json:"limit"       yaml:"limit"`
}

// Options configures the walk and the shape of the report.
type Options struct {
	// Path is the directory to analyze.
	Path string
	// Sort selects the ordering of the report.
	Sort SortMode
	// Limit caps the number of reported files after sorting (0=unlimited).
	Limit int
	// Excludes contains regex patterns to exclude.
	Excludes []string
	// MinSize is the minimum file size in bytes.
	MinSize uint64
	// Depth is the maximum traversal depth (0=unlimited).
	Depth int
	// Walker selects the traversal strategy.
	Walker Walker
	// ProgressInterval controls progress callback cadence.
	ProgressInterval time.Duration
	// Debug indicates whether debug output is enabled.
	Debug bool
}

// DefaultOptions returns Options with default settings.
func DefaultOptions() Options {
	return Options{
		Path:             ".",
		Sort:             SortBySize,
		Walker:           WalkerParallel,
		ProgressInterval: DefaultProgressInterval,
	}
}

// collector gathers records from concurrent walk callbacks.
// The list itself has no locking, so every access goes through mu.
type collector struct {
	mu         sync.Mutex
	records    *elist.List[Record]
	totalBytes uint64
	errorCount int64
}

// newCollector creates a collector backed by a list with the default capacity.
func newCollector() (*collector, error) {
	records, err := elist.New[Record](0)
	if err != nil {
		return nil, fmt.Errorf("creating record list: %w", err)
	}

	return &collector{records: records}, nil
}

// addError increments the error counter.
func (c *collector) addError() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.errorCount++
}

// add records a file. A failed append is counted as an error and returned.
func (c *collector) add(path string, size uint64, accessTime time.Time) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	slot, err := c.records.AppendNew()
	if err != nil {
		c.errorCount++

		return fmt.Errorf("recording %q: %w", path, err)
	}

	slot.Size = size
	slot.Path = path
	slot.AccessTime = accessTime

	c.totalBytes += size

	return nil
}

// progress returns the number of files and bytes seen so far.
func (c *collector) progress() (int, uint64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.records.Size(), c.totalBytes
}

// finalize sorts the records, trims them to limit and copies them into a Report.
// Paths are converted to slash format for cross-platform consistency.
func (c *collector) finalize(mode SortMode, limit int) (*Report, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	found := c.records.Size()

	c.records.Sort(mode.Comparator())

	// Dropping from the tail never shifts elements.
	for limit > 0 && c.records.Size() > limit {
		if err := c.records.Remove(c.records.Size() - 1); err != nil {
			return nil, fmt.Errorf("trimming records: %w", err)
		}
	}

	files := make([]Record, 0, c.records.Size())

	for i := range c.records.Size() {
		record, err := c.records.Get(i)
		if err != nil {
			return nil, fmt.Errorf("reading record %d: %w", i, err)
		}

		record.Path = strings.TrimPrefix(filepath.ToSlash(record.Path), "./")
		files = append(files, record)
	}

	return &Report{
		Files:      files,
		FileCount:  found,
		TotalBytes: c.totalBytes,
		Errors:     c.errorCount,
		Sort:       mode,
		Limit:      limit,
	}, nil
}
