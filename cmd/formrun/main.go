// Formrun runs terminal forms described in YAML.
//
// It draws the form, collects the answers and prints them as YAML, so a shell
// script can ask questions without writing any Go.
//
// Usage:
//
//	formrun run <file> [flags]
//
// See 'formrun --help' for available commands.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version information, set at build time with -ldflags.
var (
	Version = "dev"
	Commit  = "none"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "formrun",
		Short: "Run terminal forms described in YAML",
		Long: `Formrun draws an option menu or a sequence of input prompts described
in a YAML file, then prints what the user answered as YAML.

Settings are read from flags, FORMRUN_* environment variables and an
optional formrun.yaml in the current directory, in that order of priority.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Disable automatic completion command generation
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.PersistentFlags().String("config", "", "Config file (default ./formrun.yaml)")
	rootCmd.PersistentFlags().String("log-level", "", "Log level written to stderr (debug, info, warn, error)")

	rootCmd.AddCommand(newRunCmd())
	rootCmd.AddCommand(newVersionCmd())
	return rootCmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "formrun %s (commit: %s)\n", Version, Commit)
		},
	}
}
