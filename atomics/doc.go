// Package atomics provides pointer-width atomic operations (load, store,
// exchange, weak and strong compare-exchange, fetch-add, fetch-sub), each
// parameterized by one of six memory orderings.
//
// Two backends implement the same contract:
//
//   - Native forwards to the toolchain's pointer-width sync/atomic functions.
//   - Emulated translates orderings to integer codes and calls the
//     fixed-width entry points of package libatomic.
//
// The package-level functions are bound to exactly one of them when the
// package is compiled: Native by default, Emulated under the
// stdatomic_emulate build tag.  BackendName reports the binding.  There is
// no run-time selection and no mixing of backends within one build through
// the package-level API; both adapter types stay available for callers that
// want to drive a specific backend directly.
//
// A cell is any uintptr the caller owns.  Every access to a cell must go
// through this package, and all accesses must use the same width.
//
// Under Emulated, CompareExchangeWeak is the strong operation: it never fails
// spuriously.  Callers that rely on the weak form being cheaper under heavy
// contention get no benefit from it on that backend.
package atomics
