// atomics.go
//
// Package-level operations.  Each one calls straight into the backend type
// fixed by the build (see bind_*.go); the call is static and inlinable, there
// is no per-call backend test.

package atomics

// Load returns the value of the cell at p.
//
//go:nosplit
func Load(p *uintptr, o Ordering) uintptr {
	return bound{}.Load(p, o)
}

// Store writes v to the cell at p.
//
//go:nosplit
func Store(p *uintptr, v uintptr, o Ordering) {
	bound{}.Store(p, v, o)
}

// Exchange writes v to the cell at p and returns the previous value.
//
//go:nosplit
func Exchange(p *uintptr, v uintptr, o Ordering) uintptr {
	return bound{}.Exchange(p, v, o)
}

// CompareExchangeWeak writes desired if the cell holds *expected and reports
// whether it did.  It may fail even when the values match.  On failure
// *expected is refreshed from the cell.  The failure ordering is derived
// from o with Ordering.Failure.
//
//go:nosplit
func CompareExchangeWeak(p, expected *uintptr, desired uintptr, o Ordering) bool {
	return bound{}.CompareExchangeWeak(p, expected, desired, o, o.Failure())
}

// CompareExchangeStrong is CompareExchangeWeak without spurious failures.
//
//go:nosplit
func CompareExchangeStrong(p, expected *uintptr, desired uintptr, o Ordering) bool {
	return bound{}.CompareExchangeStrong(p, expected, desired, o, o.Failure())
}

// CompareExchangeWeakExplicit takes separate success and failure orderings.
//
//go:nosplit
func CompareExchangeWeakExplicit(p, expected *uintptr, desired uintptr, success, failure Ordering) bool {
	return bound{}.CompareExchangeWeak(p, expected, desired, success, failure)
}

// CompareExchangeStrongExplicit takes separate success and failure orderings.
//
//go:nosplit
func CompareExchangeStrongExplicit(p, expected *uintptr, desired uintptr, success, failure Ordering) bool {
	return bound{}.CompareExchangeStrong(p, expected, desired, success, failure)
}

// FetchAdd adds delta to the cell, wrapping on overflow, and returns the
// previous value.
//
//go:nosplit
func FetchAdd(p *uintptr, delta uintptr, o Ordering) uintptr {
	return bound{}.FetchAdd(p, delta, o)
}

// FetchSub subtracts delta from the cell, wrapping on underflow, and returns
// the previous value.
//
//go:nosplit
func FetchSub(p *uintptr, delta uintptr, o Ordering) uintptr {
	return bound{}.FetchSub(p, delta, o)
}
