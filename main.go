// ════════════════════════════════════════════════════════════════════════════════════════════════
// stdatomic - Main Entry Point
// ────────────────────────────────────────────────────────────────────────────────────────────────
// Component: command line front end for the atomic operation layer
//
// Description:
//   Hands control to the cobra command tree and maps its error to an exit code.
//   The backend the package-level atomics are bound to is fixed at build time:
//     go build ./...                          → native
//     go build -tags stdatomic_emulate ./...  → emulated
//
// ════════════════════════════════════════════════════════════════════════════════════════════════

package main

import (
	"os"

	"stdatomic/cli"
	"stdatomic/control"
	"stdatomic/debug"
)

func main() {
	err := cli.NewRootCommand().Execute()

	// Pinned consumers and probe workers register here; wait so none is torn
	// down mid-write to the ledger.
	control.ShutdownWG.Wait()

	if err != nil {
		debug.DropError("stdatomic", err)
		os.Exit(cli.GetExitCode(err))
	}
}
