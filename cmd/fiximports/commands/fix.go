// Package commands implements the fiximports CLI commands.
package commands

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/sergi/go-diff/diffmatchpatch"
	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/fiximports/internal/engine"
	"github.com/Sumatoshi-tech/fiximports/internal/locate"
	"github.com/Sumatoshi-tech/fiximports/internal/parse"
	"github.com/Sumatoshi-tech/fiximports/internal/registry"
	"github.com/Sumatoshi-tech/fiximports/pkg/config"
)

// ErrCheckFailed is returned by "fix --check" when the file needs edits.
var ErrCheckFailed = errors.New("import block is out of date")

// fixOptions holds the fix command's flag values.
type fixOptions struct {
	configPath string
	includes   []string
	write      bool
	diff       bool
	check      bool
	verbose    bool
	quiet      bool
}

// NewFixCommand creates the fix command.
func NewFixCommand() *cobra.Command {
	opts := &fixOptions{}

	cmd := &cobra.Command{
		Use:   "fix FILE",
		Short: "Rewrite the import block of FILE to match its usage",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFix(cmd, opts, args[0])
		},
	}

	cmd.Flags().StringVar(&opts.configPath, "config", "", "config file path")
	cmd.Flags().StringSliceVar(&opts.includes, "include", nil, "override include directories")
	cmd.Flags().BoolVarP(&opts.write, "write", "w", false, "write the result back to FILE")
	cmd.Flags().BoolVar(&opts.diff, "diff", false, "print a line diff instead of the result")
	cmd.Flags().BoolVar(&opts.check, "check", false, "exit non-zero when the file needs edits")
	cmd.Flags().BoolVarP(&opts.verbose, "verbose", "v", false, "verbose output")
	cmd.Flags().BoolVarP(&opts.quiet, "quiet", "q", false, "suppress output")

	return cmd
}

func runFix(cmd *cobra.Command, opts *fixOptions, filePath string) error {
	cfg, err := config.LoadConfig(opts.configPath)
	if err != nil {
		return err
	}

	if len(opts.includes) > 0 {
		cfg.Includes = opts.includes
	}

	logger := newLogger(cmd.ErrOrStderr(), cfg.Logging, opts.verbose, opts.quiet)

	data, readErr := os.ReadFile(filePath)
	if readErr != nil {
		return fmt.Errorf("read %s: %w", filePath, readErr)
	}

	text := string(data)

	deps := engine.Deps{
		Locator: locate.New(cfg.Includes),
		Lister:  registry.GhcPkg{Binary: cfg.Registry.Binary},
	}

	result, fixErr := engine.Fix(cmd.Context(), cfg, filePath, parse.Parse(text), text, deps)
	if fixErr != nil {
		return fixErr
	}

	for _, diag := range result.Diagnostics {
		logger.Debug("registry diagnostic", "detail", diag)
	}

	logger.Info("fixed imports",
		"file", filePath,
		"added", len(result.Added),
		"removed", len(result.Removed),
		"changed", result.Changed)

	switch {
	case opts.check:
		if result.Changed {
			return fmt.Errorf("%w: %s", ErrCheckFailed, filePath)
		}
	case opts.diff:
		renderDiff(cmd, text, result.Text)
	case opts.write:
		if result.Changed {
			writeErr := os.WriteFile(filePath, []byte(result.Text), 0o600)
			if writeErr != nil {
				return fmt.Errorf("write %s: %w", filePath, writeErr)
			}
		}
	default:
		fmt.Fprint(cmd.OutOrStdout(), result.Text)
	}

	return nil
}

// renderDiff prints a colored line diff between the original and fixed text.
func renderDiff(cmd *cobra.Command, before, after string) {
	if before == after {
		return
	}

	dmp := diffmatchpatch.New()

	chars1, chars2, lineArray := dmp.DiffLinesToChars(before, after)
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(chars1, chars2, false), lineArray)

	out := cmd.OutOrStdout()
	added := color.New(color.FgGreen)
	removed := color.New(color.FgRed)

	for _, diff := range diffs {
		for _, line := range strings.SplitAfter(diff.Text, "\n") {
			if line == "" {
				continue
			}

			switch diff.Type {
			case diffmatchpatch.DiffInsert:
				added.Fprintf(out, "+%s", line)
			case diffmatchpatch.DiffDelete:
				removed.Fprintf(out, "-%s", line)
			case diffmatchpatch.DiffEqual:
				fmt.Fprintf(out, " %s", line)
			}
		}
	}
}
