package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"stdatomic/control"
	"stdatomic/debug"
)

// withSignals returns a context cancelled on SIGINT/SIGTERM.  The signal
// also raises control.Shutdown so contender loops stop promptly.
func withSignals(parent context.Context) (context.Context, func()) {
	ctx, cancel := context.WithCancel(parent)
	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		select {
		case <-sig:
			debug.DropMessage("SIGNAL", "Received interrupt, shutting down...")
			control.Shutdown()
			cancel()
		case <-ctx.Done():
		}
	}()

	return ctx, func() {
		signal.Stop(sig)
		cancel()
	}
}
