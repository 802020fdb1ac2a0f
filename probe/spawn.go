package probe

import (
	"context"
	"runtime"
	"sync"

	"stdatomic/control"
	"stdatomic/ring"
)

// pollMask sets how often contender loops check for cancellation.
const pollMask = 1<<12 - 1

// race starts n contenders behind a common start barrier and waits for all
// of them.  With cfg.Pin each contender locks its OS thread and is pinned
// to CPU g mod NumCPU (best effort).
func race(cfg Config, n int, fn func(g int)) {
	var ready, wg sync.WaitGroup
	start := make(chan struct{})
	ready.Add(n)
	wg.Add(n)
	cpus := runtime.NumCPU()
	for g := 0; g < n; g++ {
		go func(g int) {
			defer wg.Done()
			if cfg.Pin {
				runtime.LockOSThread()
				defer runtime.UnlockOSThread()
				ring.SetAffinity(g % cpus)
			}
			ready.Done()
			<-start
			fn(g)
		}(g)
	}
	ready.Wait()
	close(start)
	wg.Wait()
}

// halted is polled by long contender loops.
func halted(ctx context.Context, i int) bool {
	if i&pollMask != 0 {
		return false
	}
	return ctx.Err() != nil || control.Stopped()
}
