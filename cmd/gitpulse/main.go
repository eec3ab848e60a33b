// Package main provides the entry point for the gitpulse CLI.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/gitpulse/cmd/gitpulse/commands"
	"github.com/Sumatoshi-tech/gitpulse/pkg/version"
)

var (
	verbose bool
	quiet   bool
)

func main() {
	version.InitBinaryVersion()

	rootCmd := &cobra.Command{
		Use:   "gitpulse",
		Short: "gitpulse - a one-screen summary of a Git repository",
		Long: `gitpulse summarizes a Git repository: branch, commits, size, top authors,
lines of code per language, and a year-long commit activity calendar.

Commands:
  show      Print the summary of a repository
  mcp       Serve summaries to AI agents over MCP`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "suppress log output")

	rootCmd.AddCommand(commands.NewShowCommand())
	rootCmd.AddCommand(commands.NewMCPCommand())
	rootCmd.AddCommand(commands.NewVersionCommand())

	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
