package atomics

// Backend is the set of routines fulfilling the atomic contract for one
// build configuration.  Implementations are stateless values.
type Backend interface {
	Name() string
	Load(p *uintptr, o Ordering) uintptr
	Store(p *uintptr, v uintptr, o Ordering)
	Exchange(p *uintptr, v uintptr, o Ordering) uintptr
	CompareExchangeWeak(p, expected *uintptr, desired uintptr, success, failure Ordering) bool
	CompareExchangeStrong(p, expected *uintptr, desired uintptr, success, failure Ordering) bool
	FetchAdd(p *uintptr, delta uintptr, o Ordering) uintptr
	FetchSub(p *uintptr, delta uintptr, o Ordering) uintptr
}

var (
	_ Backend = Native{}
	_ Backend = Emulated{}
)

// Backends returns both adapters, native first.
func Backends() []Backend { return []Backend{Native{}, Emulated{}} }

// Lookup returns the adapter called name.  "bound" resolves to the adapter
// the package-level functions were compiled against.
func Lookup(name string) (Backend, bool) {
	switch name {
	case "bound", "":
		return bound{}, true
	case Native{}.Name():
		return Native{}, true
	case Emulated{}.Name():
		return Emulated{}, true
	}
	return nil, false
}

// Bound returns the adapter selected for this build.
func Bound() Backend { return bound{} }
