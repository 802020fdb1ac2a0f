package probe

import (
	"context"
	"fmt"
	"runtime"
	"unsafe"

	"stdatomic/atomics"
	"stdatomic/control"
	"stdatomic/ring"
	"stdatomic/utils"
)

// Suite returns the scenarios in execution order.
func Suite() []Scenario {
	return []Scenario{
		{"store-load-matrix", "store then load on one goroutine with all 36 ordering pairs", storeLoadMatrix},
		{"exchange", "exchange(20) on a cell holding 10 returns 10, then load returns 20", exchangeOnce},
		{"wrap-around", "fetch-add past the maximum and fetch-sub below zero wrap", wrapAround},
		{"cas-weak-refresh", "a failed weak compare-exchange refreshes expected", casWeakRefresh},
		{"fetch-add-5-3", "two racing fetch-adds of 5 and 3 from 0 end at 8 with one zero observer", fetchAddFiveThree},
		{"fetch-add-no-lost-updates", "contended fetch-adds with mixed orderings lose nothing", fetchAddNoLostUpdates},
		{"fetch-add-sub-balance", "paired fetch-add/fetch-sub return the cell to its start", fetchAddSubBalance},
		{"cas-strong-single-winner", "exactly one contender wins a strong X→Y compare-exchange", casStrongSingleWinner},
		{"cas-weak-counter", "a weak compare-exchange retry loop counts exactly", casWeakCounter},
		{"exchange-conservation", "chained exchanges hand every value on exactly once", exchangeConservation},
		{"release-acquire-publication", "writes before a release store are visible after the acquire load that reads it", releaseAcquirePublication},
		{"ring-handoff", "SPSC ring on the build's bound backend delivers every parcel intact and in order", ringHandoff},
	}
}

// Lookup returns the scenario called name.
func Lookup(name string) (Scenario, bool) {
	for _, sc := range Suite() {
		if sc.Name == name {
			return sc, true
		}
	}
	return Scenario{}, false
}

// Select returns the named scenarios in suite order.  An empty list selects
// the whole suite.
func Select(names []string) ([]Scenario, error) {
	if len(names) == 0 {
		return Suite(), nil
	}
	want := make(map[string]bool, len(names))
	for _, n := range names {
		if _, ok := Lookup(n); !ok {
			return nil, fmt.Errorf("unknown scenario %q", n)
		}
		want[n] = true
	}
	var out []Scenario
	for _, sc := range Suite() {
		if want[sc.Name] {
			out = append(out, sc)
		}
	}
	return out, nil
}

func outcome(pass bool, observed map[string]string) Outcome {
	return Outcome{Pass: pass, Observed: observed}
}

func aborted(observed map[string]string) Outcome {
	return Outcome{Pass: false, Observed: observed, Detail: "aborted"}
}

// ───────────────────────────── single-threaded ───────────────────────────

func storeLoadMatrix(ctx context.Context, b atomics.Backend, cfg Config) Outcome {
	var cell uintptr
	mismatches := 0
	v := uintptr(0x5a)
	for _, so := range atomics.Orderings {
		for _, lo := range atomics.Orderings {
			v = v*0x9e3779b1 + 1
			b.Store(&cell, v, so)
			if b.Load(&cell, lo) != v {
				mismatches++
			}
		}
	}
	n := len(atomics.Orderings)
	return outcome(mismatches == 0, map[string]string{
		"pairs":      utils.Itoa(n * n),
		"mismatches": utils.Itoa(mismatches),
	})
}

func exchangeOnce(ctx context.Context, b atomics.Backend, cfg Config) Outcome {
	cell := uintptr(10)
	prev := b.Exchange(&cell, 20, atomics.SeqCst)
	after := b.Load(&cell, atomics.SeqCst)
	return outcome(prev == 10 && after == 20, map[string]string{
		"previous": utils.Utoa(uint64(prev)),
		"after":    utils.Utoa(uint64(after)),
	})
}

func wrapAround(ctx context.Context, b atomics.Backend, cfg Config) Outcome {
	top := ^uintptr(0)
	cell := top
	addPrev := b.FetchAdd(&cell, 1, atomics.SeqCst)
	addAfter := b.Load(&cell, atomics.SeqCst)
	subPrev := b.FetchSub(&cell, 1, atomics.SeqCst)
	subAfter := b.Load(&cell, atomics.SeqCst)
	return outcome(addPrev == top && addAfter == 0 && subPrev == 0 && subAfter == top, map[string]string{
		"add_prev":  utils.Hex(uint64(addPrev)),
		"add_after": utils.Hex(uint64(addAfter)),
		"sub_prev":  utils.Hex(uint64(subPrev)),
		"sub_after": utils.Hex(uint64(subAfter)),
	})
}

func casWeakRefresh(ctx context.Context, b atomics.Backend, cfg Config) Outcome {
	cell := uintptr(7)
	expected := uintptr(3)
	failed := !b.CompareExchangeWeak(&cell, &expected, 4, atomics.SeqCst, atomics.SeqCst)
	refreshed := expected

	attempts := 0
	for {
		attempts++
		if b.CompareExchangeWeak(&cell, &expected, expected+1, atomics.AcqRel, atomics.Acquire) {
			break
		}
	}
	o := outcome(failed && refreshed == 7 && cell == 8, map[string]string{
		"failed":    boolString(failed),
		"refreshed": utils.Utoa(uint64(refreshed)),
		"final":     utils.Utoa(uint64(cell)),
	})
	if attempts > 1 {
		o.Detail = "spurious failures: " + utils.Itoa(attempts-1)
	}
	return o
}

// ───────────────────────────── contended ─────────────────────────────────

func fetchAddFiveThree(ctx context.Context, b atomics.Backend, cfg Config) Outcome {
	violations := 0
	for r := 0; r < cfg.Rounds; r++ {
		if halted(ctx, 0) {
			return aborted(nil)
		}
		var cell uintptr
		var prev [2]uintptr
		deltas := [2]uintptr{5, 3}
		race(cfg, 2, func(g int) {
			prev[g] = b.FetchAdd(&cell, deltas[g], atomics.SeqCst)
		})
		ok := b.Load(&cell, atomics.SeqCst) == 8 &&
			((prev[0] == 0 && prev[1] == 5) || (prev[1] == 0 && prev[0] == 3))
		if !ok {
			violations++
		}
	}
	return outcome(violations == 0, map[string]string{
		"rounds":     utils.Itoa(cfg.Rounds),
		"violations": utils.Itoa(violations),
	})
}

func fetchAddNoLostUpdates(ctx context.Context, b atomics.Backend, cfg Config) Outcome {
	var cell, stop uintptr
	n := cfg.Contenders
	race(cfg, n, func(g int) {
		delta := uintptr(g + 1)
		o := atomics.Orderings[g%len(atomics.Orderings)]
		for i := 0; i < cfg.Iterations; i++ {
			if halted(ctx, i) {
				atomics.Store(&stop, 1, atomics.Relaxed)
				return
			}
			b.FetchAdd(&cell, delta, o)
		}
	})
	if stop != 0 {
		return aborted(nil)
	}
	want := uintptr(cfg.Iterations) * uintptr(n*(n+1)/2)
	got := b.Load(&cell, atomics.SeqCst)
	return outcome(got == want, map[string]string{
		"final":    utils.Utoa(uint64(got)),
		"expected": utils.Utoa(uint64(want)),
	})
}

func fetchAddSubBalance(ctx context.Context, b atomics.Backend, cfg Config) Outcome {
	const start = 1000
	cell := uintptr(start)
	var stop uintptr
	race(cfg, cfg.Contenders, func(g int) {
		k := uintptr(g*7 + 1)
		o := atomics.Orderings[(g+3)%len(atomics.Orderings)]
		for i := 0; i < cfg.Iterations; i++ {
			if halted(ctx, i) {
				atomics.Store(&stop, 1, atomics.Relaxed)
				return
			}
			b.FetchAdd(&cell, k, o)
			b.FetchSub(&cell, k, o)
		}
	})
	if stop != 0 {
		return aborted(nil)
	}
	got := b.Load(&cell, atomics.SeqCst)
	return outcome(got == start, map[string]string{"final": utils.Utoa(uint64(got))})
}

func casStrongSingleWinner(ctx context.Context, b atomics.Backend, cfg Config) Outcome {
	const from, to = 100, 200
	violations := 0
	for r := 0; r < cfg.Rounds; r++ {
		if halted(ctx, 0) {
			return aborted(nil)
		}
		cell := uintptr(from)
		var wins, badLosers uintptr
		race(cfg, cfg.Contenders, func(g int) {
			expected := uintptr(from)
			if b.CompareExchangeStrong(&cell, &expected, to, atomics.AcqRel, atomics.Acquire) {
				b.FetchAdd(&wins, 1, atomics.Relaxed)
			} else if expected != to {
				b.FetchAdd(&badLosers, 1, atomics.Relaxed)
			}
		})
		if wins != 1 || badLosers != 0 {
			violations++
		}
	}
	return outcome(violations == 0, map[string]string{
		"rounds":     utils.Itoa(cfg.Rounds),
		"contenders": utils.Itoa(cfg.Contenders),
		"violations": utils.Itoa(violations),
	})
}

func casWeakCounter(ctx context.Context, b atomics.Backend, cfg Config) Outcome {
	var cell, stop uintptr
	n := cfg.Contenders
	retries := make([]float64, n)
	race(cfg, n, func(g int) {
		miss := 0
		for i := 0; i < cfg.Iterations; i++ {
			if halted(ctx, i) {
				atomics.Store(&stop, 1, atomics.Relaxed)
				break
			}
			old := b.Load(&cell, atomics.Relaxed)
			for !b.CompareExchangeWeak(&cell, &old, old+1, atomics.AcqRel, atomics.Relaxed) {
				miss++
			}
		}
		retries[g] = float64(miss)
	})
	if stop != 0 {
		return aborted(nil)
	}
	want := uintptr(n * cfg.Iterations)
	got := b.Load(&cell, atomics.SeqCst)
	o := outcome(got == want, map[string]string{
		"final":    utils.Utoa(uint64(got)),
		"expected": utils.Utoa(uint64(want)),
	})
	s := Summarize(retries)
	o.Retries = &s
	return o
}

func exchangeConservation(ctx context.Context, b atomics.Backend, cfg Config) Outcome {
	n := cfg.Contenders
	per := cfg.Iterations
	if per > 10_000 {
		per = 10_000
	}
	var cell uintptr
	seen := make([][]uintptr, n)
	race(cfg, n, func(g int) {
		s := make([]uintptr, 0, per)
		for i := 0; i < per; i++ {
			s = append(s, b.Exchange(&cell, uintptr(g*per+i)+1, atomics.SeqCst))
		}
		seen[g] = s
	})

	total := n * per
	counts := make([]uint8, total+1)
	bump := func(v uintptr) {
		if v <= uintptr(total) && counts[v] < 255 {
			counts[v]++
		}
	}
	bump(b.Load(&cell, atomics.SeqCst))
	for _, s := range seen {
		for _, v := range s {
			bump(v)
		}
	}
	missing, duplicates := 0, 0
	for _, c := range counts {
		switch {
		case c == 0:
			missing++
		case c > 1:
			duplicates++
		}
	}
	return outcome(missing == 0 && duplicates == 0, map[string]string{
		"values":     utils.Itoa(total + 1),
		"missing":    utils.Itoa(missing),
		"duplicates": utils.Itoa(duplicates),
	})
}

func releaseAcquirePublication(ctx context.Context, b atomics.Backend, cfg Config) Outcome {
	stores := [...]atomics.Ordering{atomics.Release, atomics.AcqRel, atomics.SeqCst}
	loads := [...]atomics.Ordering{atomics.Acquire, atomics.Consume, atomics.AcqRel, atomics.SeqCst}
	torn := 0
	for r := 0; r < cfg.Rounds; r++ {
		if halted(ctx, 0) {
			return aborted(nil)
		}
		so, lo := stores[r%len(stores)], loads[r%len(loads)]
		var payload [8]uintptr
		var flag uintptr
		var bad bool
		race(cfg, 2, func(g int) {
			if g == 0 {
				for i := range payload {
					payload[i] = uintptr(r*len(payload) + i + 1)
				}
				b.Store(&flag, 1, so)
				return
			}
			for b.Load(&flag, lo) == 0 {
				runtime.Gosched()
			}
			for i, v := range payload {
				if v != uintptr(r*len(payload)+i+1) {
					bad = true
				}
			}
		})
		if bad {
			torn++
		}
	}
	return outcome(torn == 0, map[string]string{
		"rounds": utils.Itoa(cfg.Rounds),
		"torn":   utils.Itoa(torn),
	})
}

type parcel struct {
	seq   uintptr
	check uintptr
}

// ringHandoff runs on the bound backend regardless of b, since the ring uses
// the package-level API.  The consumer stays hot while control's activity
// flag is raised.
func ringHandoff(ctx context.Context, b atomics.Backend, cfg Config) Outcome {
	n := cfg.Iterations
	r := ring.New(cfg.RingSize)
	parcels := make([]parcel, n)

	var stop uintptr
	_, hot := control.Flags()
	done := make(chan struct{})
	var delivered, disorder int
	next := uintptr(0)
	core := -1
	if cfg.Pin {
		core = 0
	}
	ring.PinnedConsumer(core, r, &stop, hot, func(p unsafe.Pointer) {
		pc := (*parcel)(p)
		if pc.seq != next || pc.check != ^pc.seq {
			disorder++
		}
		next = pc.seq + 1
		delivered++
	}, done)

	sent := 0
	for i := 0; i < n; i++ {
		if halted(ctx, i) {
			break
		}
		if i&63 == 0 {
			control.SignalActivity()
		}
		parcels[i] = parcel{seq: uintptr(i), check: ^uintptr(i)}
		for !r.Push(unsafe.Pointer(&parcels[i])) {
			runtime.Gosched()
		}
		sent++
	}
	control.PollCooldown()
	atomics.Store(&stop, 1, atomics.Release)
	<-done

	o := outcome(sent == n && delivered == n && disorder == 0, map[string]string{
		"delivered":    utils.Itoa(delivered),
		"out_of_order": utils.Itoa(disorder),
	})
	o.Backend = atomics.BackendName
	if sent != n {
		o.Detail = "aborted"
	}
	return o
}

func boolString(v bool) string {
	if v {
		return "true"
	}
	return "false"
}
