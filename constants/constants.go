// ─────────────────────────────────────────────────────────────────────────────
// [Filename]: constants.go - probe tunables and tool defaults
//
// Purpose:
//   - Defaults for the conformance probe, the run ledger and the CLI.
//
// ⚠️ No runtime logic here - all values must be compile-time resolvable
// ─────────────────────────────────────────────────────────────────────────────

package constants

// ───────────────────────────── Probe sizing ──────────────────────────────

const (
	// DefaultContenders is the goroutine count for contended scenarios when
	// the flag is left at zero; 0 here means "2 × GOMAXPROCS".
	DefaultContenders = 0

	// MinContenders keeps contended scenarios meaningful on one-CPU hosts.
	MinContenders = 4

	// DefaultIterations is the per-contender operation count.
	DefaultIterations = 50_000

	// DefaultRounds is how many times short two-party races are replayed.
	DefaultRounds = 1_000

	// RingSize is the SPSC ring capacity used by the message-passing scenario.
	// Must be a power of two.
	RingSize = 1 << 10
)

// ───────────────────────────── Spin control ──────────────────────────────

const (
	// SpinBudget is the number of empty polls before a consumer backs off.
	SpinBudget = 256

	// HotTimeoutNs keeps a consumer hot-spinning this long after its last item.
	HotTimeoutNs = int64(100_000_000) // 100 ms
)

// ───────────────────────────── Ledger ────────────────────────────────────

const (
	// LedgerPath is the default SQLite file recording probe runs.
	LedgerPath = "stdatomic_runs.db"

	// LedgerBusyTimeoutMs bounds how long a writer waits on a locked ledger.
	LedgerBusyTimeoutMs = 5000
)
