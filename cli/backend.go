package cli

import (
	"github.com/spf13/cobra"

	"stdatomic/probe"
	"stdatomic/report"
)

// NewBackendCommand creates the backend command.
func NewBackendCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "backend",
		Short: "Show the bound backend, pointer width and ordering codes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return report.Backend(cmd.OutOrStdout(), rootOpts.Format, report.Describe())
		},
	}
}

// NewScenariosCommand creates the scenarios command.
func NewScenariosCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "scenarios",
		Short: "List the probe scenarios",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return report.Scenarios(cmd.OutOrStdout(), rootOpts.Format, probe.Suite())
		},
	}
}
