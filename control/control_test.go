package control

import (
	"sync"
	"testing"
	"time"

	"stdatomic/atomics"
	"stdatomic/constants"
)

func TestShutdown(t *testing.T) {
	Reset()
	defer Reset()
	if Stopped() {
		t.Fatal("stopped before Shutdown")
	}
	Shutdown()
	Shutdown()
	if !Stopped() {
		t.Fatal("Shutdown not observed")
	}
	stopCell, _ := Flags()
	if atomics.Load(stopCell, atomics.SeqCst) != 1 {
		t.Fatal("Flags() stop cell not set")
	}
}

func TestSignalActivityAndCooldown(t *testing.T) {
	Reset()
	defer Reset()

	SignalActivity()
	if !Hot() {
		t.Fatal("activity not signalled")
	}
	PollCooldown()
	if !Hot() {
		t.Fatal("cooled down inside the hot window")
	}

	// Push the last activity far enough into the past.
	past := time.Now().UnixNano() - 2*constants.HotTimeoutNs
	atomics.Store(&lastHot, uintptr(past), atomics.Relaxed)
	PollCooldown()
	if Hot() {
		t.Fatal("hot flag not cleared after timeout")
	}
}

// TestStopVisibleAcrossGoroutines checks the release/acquire hand-off of
// the stop flag to spinning workers.
func TestStopVisibleAcrossGoroutines(t *testing.T) {
	Reset()
	defer Reset()

	const workers = 8
	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			for !Stopped() {
				time.Sleep(time.Microsecond)
			}
		}()
	}
	Shutdown()

	done := make(chan struct{})
	go func() { wg.Wait(); close(done) }()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("workers never observed Shutdown")
	}
}
