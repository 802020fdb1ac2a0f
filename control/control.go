// control.go - global stop/activity flags for long-running probe loops
// ============================================================================
// SYSTEM CONTROL ORCHESTRATION
// ============================================================================
//
// Two process-wide cells coordinate probe workers:
//   • stop - set once by Shutdown (signal handler, CLI teardown); workers
//     poll Stopped between iterations and exit early.
//   • hot  - raised by producers while they are pushing work so pinned
//     consumers stay in their tight spin loop.
//
// Both cells are driven through the atomics layer: writers publish with a
// release store, readers observe with an acquire load.  lastHot is a
// nanosecond timestamp stored in a pointer-width cell; on 32-bit targets it
// is truncated, which only shortens the cooldown window.

package control

import (
	"sync"
	"time"

	"stdatomic/atomics"
	"stdatomic/constants"
)

var (
	stop    uintptr // 1 = shutdown requested
	hot     uintptr // 1 = producer active
	lastHot uintptr // UnixNano of the last SignalActivity

	// ShutdownWG tracks workers that must finish before the process exits.
	ShutdownWG sync.WaitGroup
)

// SignalActivity marks producers as active.
//
//go:nosplit
func SignalActivity() {
	atomics.Store(&lastHot, uintptr(time.Now().UnixNano()), atomics.Relaxed)
	atomics.Store(&hot, 1, atomics.Release)
}

// PollCooldown clears the hot flag once no activity has been signalled for
// HotTimeoutNs.
//
//go:nosplit
func PollCooldown() {
	if atomics.Load(&hot, atomics.Acquire) == 0 {
		return
	}
	last := int64(atomics.Load(&lastHot, atomics.Relaxed))
	if time.Now().UnixNano()-last > constants.HotTimeoutNs {
		expected := uintptr(1)
		atomics.CompareExchangeStrong(&hot, &expected, 0, atomics.AcqRel)
	}
}

// Shutdown requests every worker to stop.  Idempotent.
//
//go:nosplit
func Shutdown() {
	atomics.Store(&stop, 1, atomics.Release)
}

// Stopped reports whether Shutdown has been called.
//
//go:nosplit
func Stopped() bool {
	return atomics.Load(&stop, atomics.Acquire) != 0
}

// Hot reports whether producers are currently active.
//
//go:nosplit
func Hot() bool {
	return atomics.Load(&hot, atomics.Acquire) != 0
}

// Flags returns the raw stop and hot cells for consumers that poll them
// directly.  Access them only through the atomics package.
func Flags() (stopCell, hotCell *uintptr) {
	return &stop, &hot
}

// Reset clears both flags.  Only for tests and between independent CLI runs.
func Reset() {
	atomics.Store(&stop, 0, atomics.SeqCst)
	atomics.Store(&hot, 0, atomics.SeqCst)
	atomics.Store(&lastHot, 0, atomics.SeqCst)
}
