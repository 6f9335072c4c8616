package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "loom",
		Short: "Live-tree templating and reconciliation for Go",
		Long: `Loom renders declarative templates into a live node tree and
incrementally reconciles that tree on every update instead of
replacing it wholesale. Features include:

  • Literal templates with attribute, event and child interpolation
  • Keyed list reconciliation with identity-preserving reorder
  • Stateful components with a step-driven lifecycle protocol
  • Per-mount contexts with positional update editors`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(
		benchCmd(),
		versionCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("loom %s (commit %s, built %s)\n", version, commit, date)
		},
	}
}
