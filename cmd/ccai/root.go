package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Caleb68864/CC-AI-Tools/pkg/cli"
)

var (
	// Global flags
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "ccai",
	Short: "AI-assisted git productivity tools",
	Long: `ccai generates commit messages, progress reports, and branch names
from your git repository using AI.

Commands:
  commit  Generate a structured commit message for staged changes
  report  Generate a progress report from commit history
  branch  Create a standardized branch name

Anthropic is the primary provider; when it fails you are offered an
OpenAI fallback at the equivalent model tier.`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command with a signal-aware context.
func Execute() {
	ctx := cli.SetupSignalHandler()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		if errors.Is(err, cli.ErrInterrupted) {
			fmt.Fprintln(os.Stderr, "\nOperation cancelled.")
			os.Exit(130)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path (default ~/.ccai.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
