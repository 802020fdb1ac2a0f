package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"stdatomic/atomics"
	"stdatomic/constants"
	"stdatomic/debug"
	"stdatomic/ledger"
	"stdatomic/probe"
	"stdatomic/report"
)

// ProbeOptions holds flags for the probe command.
type ProbeOptions struct {
	*RootOptions
	Backend    string
	Scenarios  []string
	Contenders int
	Iterations int
	Rounds     int
	RingSize   int
	Pin        bool
	DB         string
	Record     bool
}

// NewProbeCommand creates the probe command.
func NewProbeCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ProbeOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "probe",
		Short: "Run the conformance scenarios against a backend",
		Long: `Run the conformance scenarios against a backend.

--backend bound probes whatever this build binds the package-level
operations to; native and emulated select an adapter directly.

Exit codes:
  0 - All scenarios passed
  1 - One or more scenarios failed
  2 - Command error (unknown backend or scenario, ledger error)

Examples:
  stdatomic probe
  stdatomic probe --backend emulated --iterations 10000
  stdatomic probe --scenario exchange --scenario wrap-around
  stdatomic probe --record --db runs.db --format json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runProbe(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.Backend, "backend", "bound", "backend to probe (bound|native|emulated)")
	cmd.Flags().StringArrayVar(&opts.Scenarios, "scenario", nil, "run only this scenario (repeatable)")
	cmd.Flags().IntVar(&opts.Contenders, "contenders", constants.DefaultContenders, "goroutines per contended scenario (0 = 2×GOMAXPROCS)")
	cmd.Flags().IntVar(&opts.Iterations, "iterations", constants.DefaultIterations, "operations per contender")
	cmd.Flags().IntVar(&opts.Rounds, "rounds", constants.DefaultRounds, "replays of two-party races")
	cmd.Flags().IntVar(&opts.RingSize, "ring-size", constants.RingSize, "ring capacity for the handoff scenario (power of two)")
	cmd.Flags().BoolVar(&opts.Pin, "pin", false, "pin contenders to CPUs")
	cmd.Flags().StringVar(&opts.DB, "db", constants.LedgerPath, "run ledger path")
	cmd.Flags().BoolVar(&opts.Record, "record", false, "record the run in the ledger")

	return cmd
}

func runProbe(cmd *cobra.Command, opts *ProbeOptions) error {
	b, ok := atomics.Lookup(opts.Backend)
	if !ok {
		return NewExitError(ExitCommandError, fmt.Sprintf("unknown backend %q", opts.Backend))
	}
	suite, err := probe.Select(opts.Scenarios)
	if err != nil {
		return WrapExitError(ExitCommandError, "invalid --scenario", err)
	}
	if opts.RingSize <= 0 || opts.RingSize&(opts.RingSize-1) != 0 {
		return NewExitError(ExitCommandError, fmt.Sprintf("--ring-size %d is not a power of two", opts.RingSize))
	}

	cfg := probe.Config{
		Contenders: opts.Contenders,
		Iterations: opts.Iterations,
		Rounds:     opts.Rounds,
		RingSize:   opts.RingSize,
		Pin:        opts.Pin,
	}.WithDefaults()

	ctx, stop := withSignals(cmd.Context())
	defer stop()

	started := time.Now()
	outcomes, err := probe.RunSuite(ctx, b, cfg, suite)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, probe.ErrStopped) {
			return WrapExitError(ExitInterrupted, "probe interrupted", err)
		}
		return fmt.Errorf("probe failed: %w", err)
	}

	run := ledger.NewRun(b.Name(), cfg, outcomes, started)
	if opts.Record {
		if err := record(ctx, opts.DB, run); err != nil {
			return WrapExitError(ExitCommandError, "failed to record run", err)
		}
		debug.DropMessage("LEDGER", "recorded run "+run.ID+" in "+opts.DB)
	}

	if err := report.Run(cmd.OutOrStdout(), opts.Format, run); err != nil {
		return err
	}
	if run.Failed > 0 {
		return NewExitError(ExitFailure, fmt.Sprintf("%d scenario(s) failed", run.Failed))
	}
	return nil
}

func record(ctx context.Context, path string, run ledger.Run) error {
	store, err := ledger.Open(path)
	if err != nil {
		return err
	}
	defer store.Close()
	return store.Record(ctx, run)
}
