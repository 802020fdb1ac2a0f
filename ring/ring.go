// ring.go
//
// Lock-free single-producer/single-consumer ring buffer.  Producer and
// consumer fields sit on separate cache-lines, and each slot carries a
// sequence number so Push/Pop need nothing beyond one acquire load and one
// release store per call.
//
// Slot sequence numbers are pointer-width cells driven through the atomics
// layer; the release store that publishes a slot is what makes the payload
// written before Push visible to the consumer after Pop.

package ring

import (
	"runtime"
	"unsafe"

	"stdatomic/atomics"
	"stdatomic/constants"
)

// slot couples a payload pointer with its sequence stamp.
type slot struct {
	seq uintptr        // position in the sequence space
	ptr unsafe.Pointer // user payload
}

// Ring is a fixed-capacity circular buffer dedicated to one producer and
// one consumer.
type Ring struct {
	_    [64]byte // consumer head isolated on its own cache-line
	head uintptr
	//lint:ignore U1000 padding to keep head & tail on different cache-lines
	_pad1 [64]byte
	tail  uintptr
	//lint:ignore U1000 padding to keep hot fields from colliding with metadata
	_pad2 [64]byte
	mask  uintptr
	buf   []slot
}

// New allocates a ring whose size must be a power-of-two; otherwise it
// panics so that the bit-masking arithmetic stays valid.
func New(size int) *Ring {
	if size <= 0 || size&(size-1) != 0 {
		panic("ring: size must be >0 and a power of two")
	}
	r := &Ring{
		mask: uintptr(size - 1),
		buf:  make([]slot, size),
	}
	for i := range r.buf {
		r.buf[i].seq = uintptr(i)
	}
	return r
}

// Cap returns the ring capacity.
func (r *Ring) Cap() int { return len(r.buf) }

// Push enqueues p, returning false if the buffer is full.
//
//go:nosplit
func (r *Ring) Push(p unsafe.Pointer) bool {
	t := r.tail
	s := &r.buf[t&r.mask]
	if atomics.Load(&s.seq, atomics.Acquire) != t {
		return false // consumer has not yet reclaimed the slot
	}
	s.ptr = p
	atomics.Store(&s.seq, t+1, atomics.Release)
	r.tail = t + 1
	return true
}

// Pop dequeues one pointer or nil if the buffer is empty.
//
//go:nosplit
func (r *Ring) Pop() unsafe.Pointer {
	h := r.head
	s := &r.buf[h&r.mask]
	if atomics.Load(&s.seq, atomics.Acquire) != h+1 {
		return nil // producer has not yet published to the slot
	}
	p := s.ptr
	s.ptr = nil
	atomics.Store(&s.seq, h+uintptr(len(r.buf)), atomics.Release)
	r.head = h + 1
	return p
}

// PopWait busy-spins until an item becomes available, yielding to the
// scheduler every SpinBudget empty polls so a producer sharing the P can run.
func (r *Ring) PopWait() unsafe.Pointer {
	miss := 0
	for {
		if p := r.Pop(); p != nil {
			return p
		}
		if miss++; miss >= constants.SpinBudget {
			miss = 0
			runtime.Gosched()
		}
		cpuRelax()
	}
}
