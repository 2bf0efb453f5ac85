package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/idelchi/da/internal/term"
	"github.com/idelchi/da/internal/usage"
)

// fd returns the file descriptor behind w, if any.
func fd(w io.Writer) (uintptr, bool) {
	f, ok := w.(*os.File)
	if !ok {
		return 0, false
	}

	return f.Fd(), true
}

// columns returns the terminal width of w, or 0 if w is not a terminal.
func columns(w io.Writer) int {
	if descriptor, ok := fd(w); ok {
		return term.Columns(descriptor)
	}

	return 0
}

func logic(cmd *cobra.Command, cfg config) error {
	stdout, stderr := cmd.OutOrStdout(), cmd.ErrOrStderr()

	errFd, ok := fd(stderr)
	enableProgress := cfg.output == "table" &&
		!cfg.Debug &&
		ok && term.IsTerminal(errFd)

	// Simple progress callback that prints directly to stderr
	var progressHook func(files int, bytes uint64)

	if enableProgress {
		// Hide cursor for in-place updates; restore on exit.
		fmt.Fprint(stderr, "\033[?25l")
		defer fmt.Fprint(stderr, "\033[?25h")

		progressHook = func(files int, bytes uint64) {
			msg := fmt.Sprintf("Scanning… %s files, %s", humanize.Comma(int64(files)), humanize.IBytes(bytes))
			fmt.Fprintf(stderr, "\r\033[2K%s\r", msg)
		}
	}

	report, err := usage.Run(cmd.Context(), cfg.Options, progressHook, stderr)

	// Clear the status line
	if enableProgress {
		fmt.Fprint(stderr, "\r\033[2K\r")
	}

	if err != nil {
		return err
	}

	switch cfg.output {
	case "json":
		return PrintJSON(report, stdout)
	case "yaml":
		return PrintYAML(report, stdout)
	case "plain":
		return PrintPlain(report, stdout)
	case "table":
		return PrintTable(report, stdout, columns(stdout))
	default:
		return fmt.Errorf("unknown output format: %s", cfg.output)
	}
}
