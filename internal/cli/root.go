// Package cli implements the settlectl command tree.
package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/OntriDS/thegame-sub002/pkg/logging"
)

var version = "0.1.0"

// NewRootCommand builds the settlectl command tree writing to out.
func NewRootCommand(out io.Writer) *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:   "settlectl",
		Short: "Compute and manage booth sales settlements",
		Long: `settlectl splits a day of shared booth sales between the principal
and an associate according to their contract.

It can compute a settlement from a YAML file, check a contract for
data-quality issues, or run the settlement server.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose {
				logging.SetupWithLevel(slog.LevelDebug)
			}
		},
	}
	root.SetOut(out)
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")

	root.AddCommand(newCalculateCommand(), newContractCommand(), newServeCommand())
	return root
}

// Execute runs the command tree with os.Args and exits non-zero on failure.
func Execute() {
	if err := NewRootCommand(os.Stdout).Execute(); err != nil {
		slog.Error("Command execution failed", "error", err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
