// ─────────────────────────────────────────────────────────────────────────────
// [Filename]: debug.go - cold-path diagnostics for the probe tooling
//
// Purpose:
//   - One-line status and error messages for the probe, ledger and CLI.
//   - Never called from the atomics layer itself.
//
// Notes:
//   - Avoids fmt; lines are concatenated and written directly.
//   - Quiet suppresses DropMessage (errors are always written).
// ─────────────────────────────────────────────────────────────────────────────

package debug

import "stdatomic/utils"

// Quiet silences DropMessage.  Set once at startup.
var Quiet bool

// DropError writes "prefix: err" (or just prefix when err is nil) to stderr.
//
//go:nosplit
func DropError(prefix string, err error) {
	if err != nil {
		utils.PrintWarning(prefix + ": " + err.Error() + "\n")
		return
	}
	utils.PrintWarning(prefix + "\n")
}

// DropMessage writes "prefix: message" to stderr unless Quiet is set.
//
//go:nosplit
func DropMessage(prefix, message string) {
	if Quiet {
		return
	}
	utils.PrintWarning(prefix + ": " + message + "\n")
}
