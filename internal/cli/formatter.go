package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
	"time"
	"unicode/utf8"

	"github.com/dustin/go-humanize"
	"gopkg.in/yaml.v3"

	"github.com/idelchi/da/internal/usage"
)

const (
	// TabSpacing is the number of spaces between tabwriter columns.
	TabSpacing = 2

	// TimeLayout is the access time format used in tables.
	TimeLayout = "2006-01-02 15:04"

	// MinPathWidth is the narrowest a truncated path column may become.
	MinPathWidth = 12

	ellipsis = "…"
)

// PrintJSON outputs the report in JSON format.
func PrintJSON(report *usage.Report, writer io.Writer) error {
	data, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding JSON output: %w", err)
	}

	if _, err := fmt.Fprintln(writer, string(data)); err != nil {
		return err
	}

	return nil
}

// PrintYAML outputs the report in YAML format.
func PrintYAML(report *usage.Report, writer io.Writer) error {
	data, err := yaml.Marshal(report)
	if err != nil {
		return fmt.Errorf("encoding YAML output: %w", err)
	}

	if _, err := writer.Write(data); err != nil {
		return err
	}

	return nil
}

// PrintPlain outputs one tab separated line per file: size in bytes,
// RFC 3339 access time and path. Nothing is truncated.
func PrintPlain(report *usage.Report, writer io.Writer) error {
	for _, f := range report.Files {
		if _, err := fmt.Fprintf(writer, "%d\t%s\t%s\n",
			f.Size, f.AccessTime.Format(time.RFC3339), f.Path); err != nil {
			return err
		}
	}

	return nil
}

// truncateLeft shortens s to width runes, replacing the leading part with an ellipsis.
func truncateLeft(s string, width int) string {
	if utf8.RuneCountInString(s) <= width {
		return s
	}

	if width <= 1 {
		return ellipsis
	}

	runes := []rune(s)

	return ellipsis + string(runes[len(runes)-(width-1):])
}

// PrintTable outputs the report in human-readable table format.
// If columns > 0, paths are shortened so that every row fits into columns.
//
//nolint:forbidigo // This function prints output to the console.
func PrintTable(report *usage.Report, writer io.Writer, columns int) error {
	sizes := make([]string, len(report.Files))
	sizeWidth := 0

	for i, f := range report.Files {
		sizes[i] = humanize.IBytes(f.Size)
		sizeWidth = max(sizeWidth, len(sizes[i]))
	}

	pathWidth := 0
	if columns > 0 {
		pathWidth = max(columns-sizeWidth-len(TimeLayout)-2*TabSpacing, MinPathWidth)
	}

	switch report.Sort {
	case usage.SortByAccessTime:
		fmt.Fprintln(writer, "Files by last access (descending):")
	default:
		fmt.Fprintln(writer, "Files by size (ascending):")
	}

	gap := strings.Repeat(" ", TabSpacing)

	for i, f := range report.Files {
		path := f.Path
		if pathWidth > 0 {
			path = truncateLeft(path, pathWidth)
		}

		fmt.Fprintf(writer, "%*s%s%s%s%s\n",
			sizeWidth, sizes[i], gap, f.AccessTime.Format(TimeLayout), gap, path)
	}

	w := tabwriter.NewWriter(writer, 0, 4, TabSpacing, ' ', 0)

	fmt.Fprintln(w, "\nStats:\t")
	fmt.Fprintf(w, "Files shown:\t%s of %s\n",
		humanize.Comma(int64(len(report.Files))), humanize.Comma(int64(report.FileCount)))
	fmt.Fprintf(w, "Total size:\t%s (%d bytes)\n",
		humanize.IBytes(report.TotalBytes), report.TotalBytes)

	if report.Errors > 0 {
		fmt.Fprintf(w, "Errors:\t%d\n", report.Errors)
	}

	fmt.Fprintf(w, "\nElapsed:\t%v\n", report.Elapsed)

	return w.Flush()
}
