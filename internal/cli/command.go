package cli

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strconv"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/idelchi/da/internal/integration"
	"github.com/idelchi/da/internal/usage"
)

// CLI represents the command-line interface.
type CLI struct {
	version string
}

// New creates a new CLI instance with the given version.
func New(version string) CLI {
	return CLI{version: version}
}

// DefaultExcludes contains the default exclusion patterns.
// They match the directory itself, so the walk skips it as a whole.
//
//nolint:gochecknoglobals // Config constant
var DefaultExcludes = []string{`(^|/)\.git(/|$)`, `(^|/)node_modules(/|$)`}

// Outputs lists the supported output formats.
//
//nolint:gochecknoglobals // Config constant
var Outputs = []string{"table", "plain", "json", "yaml"}

// config holds the parsed command line.
type config struct {
	usage.Options

	output      string
	minSize     string
	walker      string
	version     bool
	integration bool
}

// sortFlag is a boolean flag selecting a sort mode. Several sortFlags share one
// target, so the last one given on the command line wins.
type sortFlag struct {
	target *usage.SortMode
	mode   usage.SortMode
}

func (f sortFlag) String() string {
	return strconv.FormatBool(f.target != nil && *f.target == f.mode)
}

func (f sortFlag) Set(s string) error {
	enabled, err := strconv.ParseBool(s)
	if err != nil {
		return err
	}

	if enabled {
		*f.target = f.mode
	}

	return nil
}

func (f sortFlag) Type() string {
	return "bool"
}

// bindFlags registers all flags on flags, storing their values in cfg.
func bindFlags(flags *pflag.FlagSet, cfg *config) {
	flags.VarPF(sortFlag{&cfg.Sort, usage.SortBySize}, "size", "s",
		"Sort the files by size (default, ascending)").NoOptDefVal = "true"
	flags.VarPF(sortFlag{&cfg.Sort, usage.SortByAccessTime}, "atime", "a",
		"Sort the files by time of last access (descending)").NoOptDefVal = "true"
	flags.IntVarP(&cfg.Limit, "limit", "l", 0, "Limit the output to the top N files (0=unlimited)")
	flags.StringVarP(&cfg.output, "output", "o", "table", "Output format: table, plain, json or yaml")
	flags.StringSliceVarP(&cfg.Excludes, "exclude", "e", DefaultExcludes, "Regex patterns to exclude")
	flags.IntVarP(&cfg.Depth, "depth", "d", 0, "Maximum traversal depth (0=unlimited)")
	flags.StringVar(&cfg.minSize, "min-size", "0B", "Minimum file size (e.g., 1KB)")
	flags.StringVarP(&cfg.walker, "walker", "w", string(usage.WalkerParallel), "Traversal strategy: parallel or serial")
	flags.BoolVar(&cfg.Debug, "debug", false, "Enable debug output")
	flags.BoolVarP(&cfg.version, "version", "v", false, "Show version and exit")
	flags.BoolVarP(&cfg.integration, "init", "i", false, "Output init script for shell usage")

	flags.SortFlags = false
}

// Command builds the root command.
func (c CLI) Command() *cobra.Command {
	cfg := config{Options: usage.DefaultOptions()}

	cmd := &cobra.Command{
		Use:   "da [flags] [directory]",
		Short: "Analyze disk space usage",
		Long: heredoc.Doc(`
			da (disk analyzer) lists every regular file below a directory together with
			its size and time of last access.

			If no directory is specified, the current working directory is used.

			Files are sorted by size (ascending) unless '-a' selects the time of last
			access (descending). When both '-s' and '-a' are given, the last one wins.
			'-l' keeps only the first N files after sorting.

			The '-i' flag prints a zsh snippet defining 'dai', which browses the
			listing interactively with 'fzf'.
		`),
		Example: heredoc.Doc(`
			# Largest files last, in the current directory
			da

			# The ten most recently accessed files below /var/log
			da -a -l 10 /var/log
		`),
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				cfg.Path = args[0]
			}

			return c.execute(cmd, cfg)
		},
	}

	bindFlags(cmd.Flags(), &cfg)

	return cmd
}

// Execute runs the CLI with the process arguments.
func (c CLI) Execute(ctx context.Context) error {
	return c.Command().ExecuteContext(ctx)
}

// execute validates cfg and dispatches to the requested action.
func (c CLI) execute(cmd *cobra.Command, cfg config) error {
	if cfg.version {
		fmt.Fprintln(cmd.OutOrStdout(), c.version)

		return nil
	}

	if cfg.integration {
		rendered, err := integration.Render()
		if err != nil {
			return fmt.Errorf("rendering integration script: %w", err)
		}

		fmt.Fprintln(cmd.OutOrStdout(), rendered)

		return nil
	}

	if !slices.Contains(Outputs, cfg.output) {
		return fmt.Errorf("invalid output format %q: must be one of %v", cfg.output, Outputs)
	}

	if cfg.Depth < 0 {
		return errors.New("depth cannot be negative")
	}

	if cfg.Limit < 0 {
		return fmt.Errorf("invalid limit: %d", cfg.Limit)
	}

	walker, err := usage.ParseWalker(cfg.walker)
	if err != nil {
		return err
	}

	cfg.Walker = walker

	if cfg.minSize != "" {
		size, err := humanize.ParseBytes(cfg.minSize)
		if err != nil {
			return fmt.Errorf("invalid min-size: %w", err)
		}

		cfg.MinSize = size
	}

	return logic(cmd, cfg)
}
