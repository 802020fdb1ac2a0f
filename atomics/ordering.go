// ordering.go
//
// Memory-ordering symbols shared by both backends.  The numeric values are
// the order codes handed to the fixed-width entry points in libatomic, so
// they are part of the build-independent contract and must never be
// renumbered.

package atomics

import "fmt"

// Ordering constrains how surrounding memory accesses may be reordered
// around one atomic operation.  It never weakens the atomicity of the
// operation itself.
type Ordering int32

// The six orderings, weakest first.  Values are the libatomic order codes.
const (
	Relaxed Ordering = 0
	Consume Ordering = 1
	Acquire Ordering = 2
	Release Ordering = 3
	AcqRel  Ordering = 4
	SeqCst  Ordering = 5
)

// Orderings lists every valid ordering in rank order.
var Orderings = [...]Ordering{Relaxed, Consume, Acquire, Release, AcqRel, SeqCst}

var orderingNames = [...]string{
	Relaxed: "relaxed",
	Consume: "consume",
	Acquire: "acquire",
	Release: "release",
	AcqRel:  "acq_rel",
	SeqCst:  "seq_cst",
}

// Code returns the integer order code used by the emulation entry points.
//
//go:nosplit
//go:inline
func (o Ordering) Code() int32 { return int32(o) }

// Valid reports whether o is one of the six canonical orderings.
func (o Ordering) Valid() bool { return o >= Relaxed && o <= SeqCst }

func (o Ordering) String() string {
	if !o.Valid() {
		return fmt.Sprintf("Ordering(%d)", int32(o))
	}
	return orderingNames[o]
}

// Stronger reports whether o ranks strictly above p.
func (o Ordering) Stronger(p Ordering) bool { return o > p }

// AtLeast reports whether o ranks at or above p.
func (o Ordering) AtLeast(p Ordering) bool { return o >= p }

// Acquires reports whether o carries acquire semantics on the load side.
// Consume is treated as acquire, which is what every mainstream compiler does.
func (o Ordering) Acquires() bool {
	switch o {
	case Consume, Acquire, AcqRel, SeqCst:
		return true
	}
	return false
}

// Releases reports whether o carries release semantics on the store side.
func (o Ordering) Releases() bool {
	switch o {
	case Release, AcqRel, SeqCst:
		return true
	}
	return false
}

// Failure returns the ordering a compare-exchange applies when it fails and
// therefore performs only a load: release parts are dropped.
func (o Ordering) Failure() Ordering {
	switch o {
	case Release:
		return Relaxed
	case AcqRel:
		return Acquire
	}
	return o
}

// ParseOrdering accepts the canonical names plus the C11 spellings
// ("memory_order_acquire") and numeric codes.
func ParseOrdering(s string) (Ordering, error) {
	for o, name := range orderingNames {
		if s == name || s == "memory_order_"+name {
			return Ordering(o), nil
		}
	}
	if len(s) == 1 && s[0] >= '0' && s[0] <= '5' {
		return Ordering(s[0] - '0'), nil
	}
	return 0, fmt.Errorf("atomics: unknown ordering %q", s)
}

// MarshalText implements encoding.TextMarshaler.
func (o Ordering) MarshalText() ([]byte, error) {
	if !o.Valid() {
		return nil, fmt.Errorf("atomics: invalid ordering %d", int32(o))
	}
	return []byte(orderingNames[o]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (o *Ordering) UnmarshalText(b []byte) error {
	v, err := ParseOrdering(string(b))
	if err != nil {
		return err
	}
	*o = v
	return nil
}
