// libatomic.go
//
// Fixed-width atomic entry points in the shape of the compiler support
// library: one function per operation and width, the memory order passed as
// a plain integer code (0 relaxed, 1 consume, 2 acquire, 3 release,
// 4 acq_rel, 5 seq_cst).  There is no type-generic dispatch here; callers
// narrow their cell to exactly 4 or 8 bytes before calling in.
//
// Every entry point is carried out sequentially consistent, which satisfies
// any requested order code.  Order codes outside 0..5 are undefined by
// contract and are treated the same way.
//
// CompareExchange never fails spuriously.

package libatomic

import (
	"sync/atomic"
	"unsafe"
)

// PtrSize is the width in bytes of a pointer-width cell on this target.
const PtrSize = int(unsafe.Sizeof(uintptr(0)))

// Only 4- and 8-byte pointer widths have entry points; any other target
// fails to compile here rather than misbehave at run time.
var _ = [1]struct{}{}[(PtrSize-4)*(PtrSize-8)]

// ───────────────────────────── 8-byte cells ──────────────────────────────

// Load8 returns *p.
//
//go:nosplit
func Load8(p *uint64, mo int32) uint64 {
	return atomic.LoadUint64(p)
}

// Store8 writes v to *p.
//
//go:nosplit
func Store8(p *uint64, v uint64, mo int32) {
	atomic.StoreUint64(p, v)
}

// Exchange8 writes v to *p and returns the previous value.
//
//go:nosplit
func Exchange8(p *uint64, v uint64, mo int32) uint64 {
	return atomic.SwapUint64(p, v)
}

// CompareExchange8 writes desired to *p if *p == *expected.  On failure the
// value observed in *p is written back to *expected.
//
//go:nosplit
func CompareExchange8(p, expected *uint64, desired uint64, mo int32) bool {
	for {
		old := *expected
		if atomic.CompareAndSwapUint64(p, old, desired) {
			return true
		}
		// The cell may have moved back to old between the failed swap and
		// this load; retry so a false result always carries a differing value.
		if cur := atomic.LoadUint64(p); cur != old {
			*expected = cur
			return false
		}
	}
}

// FetchAdd8 adds v to *p and returns the previous value.
//
//go:nosplit
func FetchAdd8(p *uint64, v uint64, mo int32) uint64 {
	return atomic.AddUint64(p, v) - v
}

// FetchSub8 subtracts v from *p and returns the previous value.
//
//go:nosplit
func FetchSub8(p *uint64, v uint64, mo int32) uint64 {
	return atomic.AddUint64(p, -v) + v
}

// ───────────────────────────── 4-byte cells ──────────────────────────────

// Load4 returns *p.
//
//go:nosplit
func Load4(p *uint32, mo int32) uint32 {
	return atomic.LoadUint32(p)
}

// Store4 writes v to *p.
//
//go:nosplit
func Store4(p *uint32, v uint32, mo int32) {
	atomic.StoreUint32(p, v)
}

// Exchange4 writes v to *p and returns the previous value.
//
//go:nosplit
func Exchange4(p *uint32, v uint32, mo int32) uint32 {
	return atomic.SwapUint32(p, v)
}

// CompareExchange4 is the 4-byte form of CompareExchange8.
//
//go:nosplit
func CompareExchange4(p, expected *uint32, desired uint32, mo int32) bool {
	for {
		old := *expected
		if atomic.CompareAndSwapUint32(p, old, desired) {
			return true
		}
		if cur := atomic.LoadUint32(p); cur != old {
			*expected = cur
			return false
		}
	}
}

// FetchAdd4 adds v to *p and returns the previous value.
//
//go:nosplit
func FetchAdd4(p *uint32, v uint32, mo int32) uint32 {
	return atomic.AddUint32(p, v) - v
}

// FetchSub4 subtracts v from *p and returns the previous value.
//
//go:nosplit
func FetchSub4(p *uint32, v uint32, mo int32) uint32 {
	return atomic.AddUint32(p, -v) + v
}
