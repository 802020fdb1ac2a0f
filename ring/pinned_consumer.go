// pinned_consumer.go
//
// Low-latency SPSC consumer.
//
//   • Dedicated OS thread, optionally pinned to `core` (core < 0 → unpinned).
//   • Stays in **hot-spin** (tight loop, no cpuRelax) while
//       – new work has arrived within HotTimeoutNs, OR
//       – the producer keeps *hot != 0.
//   • Otherwise drops to the **cold-spin** path: cpuRelax every iteration and
//     a scheduler yield after SpinBudget misses.
//   • Exits only when *stop != 0 and the ring is drained, then closes `done`.
//   • Registered with control.ShutdownWG for its whole lifetime.
//
// stop and hot are pointer-width cells read with acquire loads; the producer
// side writes them with release stores (see package control).

package ring

import (
	"runtime"
	"time"
	"unsafe"

	"stdatomic/atomics"
	"stdatomic/constants"
	"stdatomic/control"
)

// PinnedConsumer drains r on its own thread until *stop is set.
func PinnedConsumer(
	core int,
	r *Ring,
	stop, hot *uintptr,
	fn func(unsafe.Pointer),
	done chan<- struct{},
) {
	control.ShutdownWG.Add(1)
	go func() {
		// ── thread & affinity ─────────────────────────────
		runtime.LockOSThread()
		if core >= 0 {
			SetAffinity(core) // false on non-Linux or restricted hosts
		}
		defer func() {
			runtime.UnlockOSThread()
			close(done)
			control.ShutdownWG.Done()
		}()

		last := time.Now() // last time Pop delivered
		miss := 0

		// ── main loop ─────────────────────────────────────
		for {
			if p := r.Pop(); p != nil {
				fn(p)
				last, miss = time.Now(), 0
				continue
			}

			// stop request? checked only on an empty ring so nothing
			// published before Shutdown is dropped.
			if atomics.Load(stop, atomics.Acquire) != 0 {
				if p := r.Pop(); p != nil {
					fn(p)
					continue
				}
				return
			}

			hotSpin := atomics.Load(hot, atomics.Acquire) != 0 ||
				time.Since(last).Nanoseconds() <= constants.HotTimeoutNs
			if hotSpin {
				continue
			}

			if miss++; miss >= constants.SpinBudget {
				miss = 0
				runtime.Gosched()
			}
			cpuRelax()
		}
	}()
}
