package atomics

// Sequentially consistent shorthands.

//go:nosplit
func LoadSeqCst(p *uintptr) uintptr { return Load(p, SeqCst) }

//go:nosplit
func StoreSeqCst(p *uintptr, v uintptr) { Store(p, v, SeqCst) }

//go:nosplit
func ExchangeSeqCst(p *uintptr, v uintptr) uintptr { return Exchange(p, v, SeqCst) }

//go:nosplit
func CompareExchangeWeakSeqCst(p, expected *uintptr, desired uintptr) bool {
	return CompareExchangeWeak(p, expected, desired, SeqCst)
}

//go:nosplit
func CompareExchangeStrongSeqCst(p, expected *uintptr, desired uintptr) bool {
	return CompareExchangeStrong(p, expected, desired, SeqCst)
}

//go:nosplit
func FetchAddSeqCst(p *uintptr, delta uintptr) uintptr { return FetchAdd(p, delta, SeqCst) }

//go:nosplit
func FetchSubSeqCst(p *uintptr, delta uintptr) uintptr { return FetchSub(p, delta, SeqCst) }
