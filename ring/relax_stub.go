//go:build !amd64 || noasm

// relax_stub.go
//
// Portable fall-back for non-amd64 builds or when assembly is disabled.
// cpuRelax compiles to nothing so spin loops stay source-identical.

package ring

// cpuRelax is a no-op on targets without a PAUSE hint.
func cpuRelax() {}
