//go:build linux && !tinygo

// setaffinity_linux.go
//
// Linux-only binding for `sched_setaffinity(2)` that pins the calling OS
// thread to one logical CPU.  Errors (EPERM/EINVAL inside restricted
// containers, CPUs outside the set) are reported as a false return; the
// caller simply runs unpinned.

package ring

import (
	"unsafe"

	"golang.org/x/sys/unix"
)

// cpuSetBits is the number of CPUs one unix.CPUSet can address.
const cpuSetBits = int(unsafe.Sizeof(unix.CPUSet{})) * 8

// SetAffinity pins the current thread to cpu (0-based) and reports whether
// the kernel accepted the mask.  Callers must hold runtime.LockOSThread.
func SetAffinity(cpu int) bool {
	if cpu < 0 || cpu >= cpuSetBits {
		return false
	}
	var set unix.CPUSet
	set.Zero()
	set.Set(cpu)
	return unix.SchedSetaffinity(0, &set) == nil // pid 0 → current thread
}
