package usage

import (
	"slices"
	"sync"
	"testing"
	"time"
)

func names(records []Record) []string {
	out := make([]string, 0, len(records))
	for _, r := range records {
		out = append(out, r.Path)
	}

	return out
}

func TestCollector_Finalize(t *testing.T) {
	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		mode  SortMode
		limit int
		want  []string
	}{
		{"size ascending", SortBySize, 0, []string{"B", "A", "C"}},
		{"size limited", SortBySize, 2, []string{"B", "A"}},
		{"atime descending", SortByAccessTime, 0, []string{"C", "A", "B"}},
		{"atime limited", SortByAccessTime, 1, []string{"C"}},
		{"limit above count", SortBySize, 10, []string{"B", "A", "C"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := newCollector()
			if err != nil {
				t.Fatal(err)
			}

			_ = c.add("A", 10, base.Add(time.Hour))
			_ = c.add("B", 5, base)
			_ = c.add("C", 20, base.Add(2*time.Hour))

			report, err := c.finalize(tt.mode, tt.limit)
			if err != nil {
				t.Fatalf("finalize: %v", err)
			}

			if got := names(report.Files); !slices.Equal(got, tt.want) {
				t.Errorf("files = %v, want %v", got, tt.want)
			}

			if report.FileCount != 3 {
				t.Errorf("FileCount = %d, want 3", report.FileCount)
			}

			if report.TotalBytes != 35 {
				t.Errorf("TotalBytes = %d, want 35", report.TotalBytes)
			}
		})
	}
}

func TestCollector_FinalizeNormalizesPaths(t *testing.T) {
	c, err := newCollector()
	if err != nil {
		t.Fatal(err)
	}

	_ = c.add("./dir/file.txt", 1, time.Time{})

	report, err := c.finalize(SortBySize, 0)
	if err != nil {
		t.Fatal(err)
	}

	if report.Files[0].Path != "dir/file.txt" {
		t.Errorf("Path = %q, want %q", report.Files[0].Path, "dir/file.txt")
	}
}

func TestCollector_ConcurrentAdd(t *testing.T) {
	c, err := newCollector()
	if err != nil {
		t.Fatal(err)
	}

	var wg sync.WaitGroup

	for w := range 8 {
		wg.Add(1)

		go func() {
			defer wg.Done()

			for i := range 100 {
				_ = c.add("f", uint64(w*100+i), time.Time{}) //nolint:gosec // Never negative
			}
		}()
	}

	wg.Wait()

	files, bytes := c.progress()
	if files != 800 {
		t.Errorf("files = %d, want 800", files)
	}

	// Sum of 0..799.
	if bytes != 319600 {
		t.Errorf("bytes = %d, want 319600", bytes)
	}
}
