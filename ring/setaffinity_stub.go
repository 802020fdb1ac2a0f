//go:build !linux || tinygo

// setaffinity_stub.go
//
// No-op affinity for platforms without sched_setaffinity(2).  Callers see
// the same API and run unpinned.

package ring

// SetAffinity always reports false: pinning is unsupported here.
func SetAffinity(cpu int) bool { return false }
