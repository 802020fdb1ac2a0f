package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"stdatomic/constants"
	"stdatomic/ledger"
	"stdatomic/report"
)

// LedgerOptions holds flags for commands reading the run ledger.
type LedgerOptions struct {
	*RootOptions
	DB string
}

// NewRunsCommand creates the runs command.
func NewRunsCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &LedgerOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "runs",
		Short: "List recorded probe runs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openExisting(opts.DB)
			if err != nil {
				return err
			}
			defer store.Close()

			runs, err := store.Runs(cmd.Context())
			if err != nil {
				return WrapExitError(ExitCommandError, "failed to list runs", err)
			}
			return report.Runs(cmd.OutOrStdout(), opts.Format, runs)
		},
	}

	cmd.PersistentFlags().StringVar(&opts.DB, "db", constants.LedgerPath, "run ledger path")
	cmd.AddCommand(newRunsDeleteCommand(opts))
	return cmd
}

func newRunsDeleteCommand(opts *LedgerOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <run>",
		Short: "Delete a recorded run and its outcomes",
		Long: `Delete a recorded run and its outcomes.

The run id may be abbreviated to any unique prefix.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openExisting(opts.DB)
			if err != nil {
				return err
			}
			defer store.Close()

			run, err := store.Load(cmd.Context(), args[0])
			if err != nil {
				return WrapExitError(ExitCommandError, "failed to load run", err)
			}
			if err := store.Delete(cmd.Context(), run.ID); err != nil {
				return WrapExitError(ExitCommandError, "failed to delete run", err)
			}
			return report.Deleted(cmd.OutOrStdout(), opts.Format, run.ID)
		},
	}
}

// NewCompareCommand creates the compare command.
func NewCompareCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &LedgerOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "compare <run-a> <run-b>",
		Short: "Compare the observable outcomes of two recorded runs",
		Long: `Compare the observable outcomes of two recorded runs.

Run ids may be abbreviated to any unique prefix.  Timings, retry
statistics and backend names are ignored; configuration, pointer width,
pass/fail and observed facts must match.

Exit codes:
  0 - Runs are identical
  1 - Runs diverge
  2 - Command error (ledger or run not found)`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := openExisting(opts.DB)
			if err != nil {
				return err
			}
			defer store.Close()

			a, b, divs, err := store.Compare(cmd.Context(), args[0], args[1])
			if err != nil {
				return WrapExitError(ExitCommandError, "failed to load runs", err)
			}
			if err := report.Comparison(cmd.OutOrStdout(), opts.Format, a, b, divs); err != nil {
				return err
			}
			if len(divs) > 0 {
				return NewExitError(ExitFailure, fmt.Sprintf("%d divergence(s)", len(divs)))
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.DB, "db", constants.LedgerPath, "run ledger path")
	return cmd
}

// openExisting opens a ledger without creating one.
func openExisting(path string) (*ledger.Store, error) {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil, NewExitError(ExitCommandError, fmt.Sprintf("ledger not found: %s", path))
	}
	store, err := ledger.Open(path)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "failed to open ledger", err)
	}
	return store, nil
}
