//go:build stdatomic_emulate

// bind_emulated.go
//
// Selected with -tags stdatomic_emulate, for toolchains whose generic atomic
// lowering is unavailable or untrusted.

package atomics

// BackendName names the backend the package-level operations are bound to.
const BackendName = "emulated"

type bound = Emulated
