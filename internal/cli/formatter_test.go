package cli

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/idelchi/da/internal/usage"
)

func sampleReport() *usage.Report {
	at := time.Date(2024, 5, 6, 7, 8, 9, 0, time.UTC)

	return &usage.Report{
		Files: []usage.Record{
			{Size: 512, Path: "docs/readme.md", AccessTime: at},
			{Size: 3 << 20, Path: "build/output/very/long/directory/name/artifact.tar", AccessTime: at.Add(time.Hour)},
		},
		FileCount:  5,
		TotalBytes: 3<<20 + 512,
		Sort:       usage.SortBySize,
		Elapsed:    1500 * time.Millisecond,
	}
}

func TestTruncateLeft(t *testing.T) {
	tests := []struct {
		in    string
		width int
		want  string
	}{
		{"short", 10, "short"},
		{"exactly10!", 10, "exactly10!"},
		{"a/b/c/d/e/file.txt", 8, "…ile.txt"},
		{"ünïcödé/päth", 5, "…päth"},
		{"anything", 1, "…"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := truncateLeft(tt.in, tt.width); got != tt.want {
				t.Errorf("truncateLeft(%q, %d) = %q, want %q", tt.in, tt.width, got, tt.want)
			}
		})
	}
}

func TestPrintTable(t *testing.T) {
	var buf bytes.Buffer

	if err := PrintTable(sampleReport(), &buf, 0); err != nil {
		t.Fatal(err)
	}

	out := buf.String()

	for _, want := range []string{
		"Files by size (ascending):",
		"512 B  2024-05-06 07:08  docs/readme.md",
		"3.0 MiB  2024-05-06 08:08  build/output/very/long/directory/name/artifact.tar",
		"Files shown:  2 of 5",
		"Total size:   3.0 MiB (3146240 bytes)",
		"Elapsed:",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}

	if strings.Contains(out, "Errors:") {
		t.Errorf("output should not report errors:\n%s", out)
	}
}

func TestPrintTable_FitsColumns(t *testing.T) {
	var buf bytes.Buffer

	const columns = 50

	if err := PrintTable(sampleReport(), &buf, columns); err != nil {
		t.Fatal(err)
	}

	lines := strings.Split(buf.String(), "\n")

	for _, line := range lines[1:3] {
		if n := len([]rune(line)); n > columns {
			t.Errorf("row %q has %d runes, want at most %d", line, n, columns)
		}
	}

	if !strings.Contains(lines[2], "…") || !strings.HasSuffix(lines[2], "artifact.tar") {
		t.Errorf("long path not truncated from the left: %q", lines[2])
	}
}

func TestPrintTable_AccessTimeHeaderAndErrors(t *testing.T) {
	report := sampleReport()
	report.Sort = usage.SortByAccessTime
	report.Errors = 3

	var buf bytes.Buffer

	if err := PrintTable(report, &buf, 0); err != nil {
		t.Fatal(err)
	}

	out := buf.String()
	if !strings.Contains(out, "Files by last access (descending):") {
		t.Errorf("missing access time header:\n%s", out)
	}

	if !strings.Contains(out, "Errors:") {
		t.Errorf("missing error count:\n%s", out)
	}
}

func TestPrintPlain(t *testing.T) {
	var buf bytes.Buffer

	if err := PrintPlain(sampleReport(), &buf); err != nil {
		t.Fatal(err)
	}

	want := "512\t2024-05-06T07:08:09Z\tdocs/readme.md\n" +
		"3145728\t2024-05-06T08:08:09Z\tbuild/output/very/long/directory/name/artifact.tar\n"
	if buf.String() != want {
		t.Errorf("PrintPlain = %q, want %q", buf.String(), want)
	}
}

func TestPrintJSON(t *testing.T) {
	var buf bytes.Buffer

	if err := PrintJSON(sampleReport(), &buf); err != nil {
		t.Fatal(err)
	}

	var decoded struct {
		Files []struct {
			Path string `json:"path"`
			Size uint64 `json:"size"`
		} `json:"files"`
		FileCount int    `json:"file_count"`
		Sort      string `json:"sort"`
	}

	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("invalid JSON: %v\n%s", err, buf.String())
	}

	if len(decoded.Files) != 2 || decoded.Files[0].Path != "docs/readme.md" || decoded.Files[0].Size != 512 {
		t.Errorf("files = %+v", decoded.Files)
	}

	if decoded.FileCount != 5 || decoded.Sort != "size" {
		t.Errorf("file_count = %d, sort = %q", decoded.FileCount, decoded.Sort)
	}
}

func TestPrintYAML(t *testing.T) {
	var buf bytes.Buffer

	if err := PrintYAML(sampleReport(), &buf); err != nil {
		t.Fatal(err)
	}

	var decoded map[string]any
	if err := yaml.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("invalid YAML: %v\n%s", err, buf.String())
	}

	files, ok := decoded["files"].([]any)
	if !ok || len(files) != 2 {
		t.Fatalf("files = %#v", decoded["files"])
	}

	if decoded["elapsed"] != "1.5s" {
		t.Errorf("elapsed = %#v, want %q", decoded["elapsed"], "1.5s")
	}
}
