// Package probe runs a conformance suite against an atomics backend.
//
// Each scenario exercises one observable property of the atomic contract
// (round-trips for every ordering pair, no lost updates, a single
// compare-exchange winner, release/acquire publication, wrap-around) and
// reports an Outcome.  Outcome.Observed holds only facts that must be
// identical for every correct backend under the same Config, so the
// digests of two runs (two backends, or two builds) can be compared
// directly.  Timing and retry statistics are reported beside it and never
// digested.
package probe
