// emulated.go
//
// Emulation backend: narrows the pointer-width cell to the one fixed width
// the target has and calls the matching libatomic entry point with the
// ordering's integer code.  PtrSize is a constant, so the width test folds
// away at compile time.
//
// Both compare-exchange forms go through the single CompareExchange entry
// point, which takes one order code and never fails spuriously; the failure
// ordering is not forwarded.

package atomics

import (
	"unsafe"

	"stdatomic/libatomic"
)

// Emulated implements Backend on libatomic's fixed-width entry points.
type Emulated struct{}

// Name returns "emulated".
func (Emulated) Name() string { return "emulated" }

//go:nosplit
func (Emulated) Load(p *uintptr, o Ordering) uintptr {
	if libatomic.PtrSize == 8 {
		return uintptr(libatomic.Load8((*uint64)(unsafe.Pointer(p)), o.Code()))
	}
	return uintptr(libatomic.Load4((*uint32)(unsafe.Pointer(p)), o.Code()))
}

//go:nosplit
func (Emulated) Store(p *uintptr, v uintptr, o Ordering) {
	if libatomic.PtrSize == 8 {
		libatomic.Store8((*uint64)(unsafe.Pointer(p)), uint64(v), o.Code())
		return
	}
	libatomic.Store4((*uint32)(unsafe.Pointer(p)), uint32(v), o.Code())
}

//go:nosplit
func (Emulated) Exchange(p *uintptr, v uintptr, o Ordering) uintptr {
	if libatomic.PtrSize == 8 {
		return uintptr(libatomic.Exchange8((*uint64)(unsafe.Pointer(p)), uint64(v), o.Code()))
	}
	return uintptr(libatomic.Exchange4((*uint32)(unsafe.Pointer(p)), uint32(v), o.Code()))
}

//go:nosplit
func (e Emulated) CompareExchangeWeak(p, expected *uintptr, desired uintptr, success, failure Ordering) bool {
	return e.compareExchange(p, expected, desired, success)
}

//go:nosplit
func (e Emulated) CompareExchangeStrong(p, expected *uintptr, desired uintptr, success, failure Ordering) bool {
	return e.compareExchange(p, expected, desired, success)
}

//go:nosplit
func (Emulated) compareExchange(p, expected *uintptr, desired uintptr, o Ordering) bool {
	if libatomic.PtrSize == 8 {
		return libatomic.CompareExchange8(
			(*uint64)(unsafe.Pointer(p)),
			(*uint64)(unsafe.Pointer(expected)),
			uint64(desired), o.Code())
	}
	return libatomic.CompareExchange4(
		(*uint32)(unsafe.Pointer(p)),
		(*uint32)(unsafe.Pointer(expected)),
		uint32(desired), o.Code())
}

//go:nosplit
func (Emulated) FetchAdd(p *uintptr, delta uintptr, o Ordering) uintptr {
	if libatomic.PtrSize == 8 {
		return uintptr(libatomic.FetchAdd8((*uint64)(unsafe.Pointer(p)), uint64(delta), o.Code()))
	}
	return uintptr(libatomic.FetchAdd4((*uint32)(unsafe.Pointer(p)), uint32(delta), o.Code()))
}

//go:nosplit
func (Emulated) FetchSub(p *uintptr, delta uintptr, o Ordering) uintptr {
	if libatomic.PtrSize == 8 {
		return uintptr(libatomic.FetchSub8((*uint64)(unsafe.Pointer(p)), uint64(delta), o.Code()))
	}
	return uintptr(libatomic.FetchSub4((*uint32)(unsafe.Pointer(p)), uint32(delta), o.Code()))
}
