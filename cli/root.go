// Package cli implements the stdatomic command line: backend description,
// the conformance probe, and the run ledger.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"stdatomic/debug"
	"stdatomic/report"
)

// RootOptions holds global flags for all commands.
type RootOptions struct {
	Verbose bool
	Format  string // "text" | "json" | "yaml"
}

// NewRootCommand creates the root command.
func NewRootCommand() *cobra.Command {
	opts := &RootOptions{}

	cmd := &cobra.Command{
		Use:   "stdatomic",
		Short: "Pointer-width atomics with a build-time backend",
		Long: `stdatomic probes the atomic operation layer of this build.

The layer is bound at compile time to the native backend (default) or to
the emulated fixed-width backend (build tag stdatomic_emulate).  Probe
runs can be recorded and compared across builds.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !report.Valid(opts.Format) {
				return NewExitError(ExitCommandError,
					fmt.Sprintf("invalid format %q: must be one of %v", opts.Format, report.Formats))
			}
			debug.Quiet = !opts.Verbose
			return nil
		},
	}

	cmd.PersistentFlags().BoolVarP(&opts.Verbose, "verbose", "v", false, "verbose output")
	cmd.PersistentFlags().StringVar(&opts.Format, "format", report.Text, "output format (text|json|yaml)")

	cmd.AddCommand(NewBackendCommand(opts))
	cmd.AddCommand(NewScenariosCommand(opts))
	cmd.AddCommand(NewProbeCommand(opts))
	cmd.AddCommand(NewRunsCommand(opts))
	cmd.AddCommand(NewCompareCommand(opts))

	return cmd
}
