// Package main provides the entry point for the fiximports CLI tool.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/fiximports/cmd/fiximports/commands"
	"github.com/Sumatoshi-tech/fiximports/pkg/version"
)

func main() {
	version.InitBinaryVersion()

	rootCmd := &cobra.Command{
		Use:   "fiximports",
		Short: "fiximports - rewrite a module's import block to match its usage",
		Long: `fiximports rewrites the import section of one source module so that it
exactly matches the module's qualified-name usage: it adds imports for
used-but-missing qualifications and drops declarations no longer referenced,
leaving the rest of the file untouched.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Add commands.
	rootCmd.AddCommand(commands.NewFixCommand())
	rootCmd.AddCommand(commands.NewConfigCommand())
	rootCmd.AddCommand(versionCmd())

	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Fprintf(os.Stdout, "fiximports %s (commit: %s, built: %s)\n", version.Version, version.Commit, version.Date)
		},
	}
}
