// native.go
//
// Native backend: the toolchain's own pointer-width atomics.  Go gives every
// sync/atomic operation sequentially consistent semantics, so each of the six
// orderings maps onto the one the toolchain provides; weaker requests are
// strengthened, never weakened.

package atomics

import "sync/atomic"

// Native implements Backend on sync/atomic's uintptr operations.
type Native struct{}

// Name returns "native".
func (Native) Name() string { return "native" }

//go:nosplit
//go:inline
func (Native) Load(p *uintptr, o Ordering) uintptr {
	return atomic.LoadUintptr(p)
}

//go:nosplit
//go:inline
func (Native) Store(p *uintptr, v uintptr, o Ordering) {
	atomic.StoreUintptr(p, v)
}

//go:nosplit
//go:inline
func (Native) Exchange(p *uintptr, v uintptr, o Ordering) uintptr {
	return atomic.SwapUintptr(p, v)
}

// CompareExchangeWeak makes a single attempt.  A failed attempt refreshes
// *expected from the cell; if the cell moved back in between, the refreshed
// value equals the old one and the failure is spurious, which the weak form
// permits.
//
//go:nosplit
func (Native) CompareExchangeWeak(p, expected *uintptr, desired uintptr, success, failure Ordering) bool {
	if atomic.CompareAndSwapUintptr(p, *expected, desired) {
		return true
	}
	*expected = atomic.LoadUintptr(p)
	return false
}

// CompareExchangeStrong retries until it either swaps or observes a value
// different from *expected.
//
//go:nosplit
func (Native) CompareExchangeStrong(p, expected *uintptr, desired uintptr, success, failure Ordering) bool {
	old := *expected
	for {
		if atomic.CompareAndSwapUintptr(p, old, desired) {
			return true
		}
		if cur := atomic.LoadUintptr(p); cur != old {
			*expected = cur
			return false
		}
	}
}

//go:nosplit
//go:inline
func (Native) FetchAdd(p *uintptr, delta uintptr, o Ordering) uintptr {
	return atomic.AddUintptr(p, delta) - delta
}

//go:nosplit
//go:inline
func (Native) FetchSub(p *uintptr, delta uintptr, o Ordering) uintptr {
	return atomic.AddUintptr(p, -delta) + delta
}
