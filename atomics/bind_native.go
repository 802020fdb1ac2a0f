//go:build !stdatomic_emulate

package atomics

// BackendName names the backend the package-level operations are bound to.
const BackendName = "native"

type bound = Native
