package ledger

import (
	"context"
	"sort"
	"strconv"
)

// Divergence is one observable difference between two runs.
type Divergence struct {
	Scenario string `json:"scenario" yaml:"scenario"`
	Field    string `json:"field" yaml:"field"`
	A        string `json:"a" yaml:"a"`
	B        string `json:"b" yaml:"b"`
}

// Compare loads runs a and b and returns their divergences.
func (s *Store) Compare(ctx context.Context, a, b string) (Run, Run, []Divergence, error) {
	ra, err := s.Load(ctx, a)
	if err != nil {
		return Run{}, Run{}, nil, err
	}
	rb, err := s.Load(ctx, b)
	if err != nil {
		return Run{}, Run{}, nil, err
	}
	return ra, rb, Diff(ra, rb), nil
}

// Diff lists every difference in the deterministic part of two runs:
// probe configuration, pointer width, scenario presence, pass/fail and
// observed facts.  Backend names, timings and retry statistics are
// expected to differ and are ignored.  An empty Diff implies equal digests;
// the converse does not hold, since digests cover neither config nor
// pointer width.
func Diff(a, b Run) []Divergence {
	var out []Divergence
	if a.Config != b.Config {
		out = append(out, Divergence{Scenario: "*", Field: "config",
			A: configString(a), B: configString(b)})
	}
	if a.PtrSize != b.PtrSize {
		out = append(out, Divergence{Scenario: "*", Field: "ptr_size",
			A: strconv.Itoa(a.PtrSize), B: strconv.Itoa(b.PtrSize)})
	}

	ia := indexOutcomes(a)
	ib := indexOutcomes(b)
	names := make([]string, 0, len(ia)+len(ib))
	for n := range ia {
		names = append(names, n)
	}
	for n := range ib {
		if _, ok := ia[n]; !ok {
			names = append(names, n)
		}
	}
	sort.Strings(names)

	for _, n := range names {
		oa, okA := ia[n]
		ob, okB := ib[n]
		if !okA || !okB {
			out = append(out, Divergence{Scenario: n, Field: "present",
				A: strconv.FormatBool(okA), B: strconv.FormatBool(okB)})
			continue
		}
		if oa.Pass != ob.Pass {
			out = append(out, Divergence{Scenario: n, Field: "pass",
				A: strconv.FormatBool(oa.Pass), B: strconv.FormatBool(ob.Pass)})
		}
		keys := make([]string, 0, len(oa.Observed)+len(ob.Observed))
		for k := range oa.Observed {
			keys = append(keys, k)
		}
		for k := range ob.Observed {
			if _, ok := oa.Observed[k]; !ok {
				keys = append(keys, k)
			}
		}
		sort.Strings(keys)
		for _, k := range keys {
			va, okA := oa.Observed[k]
			vb, okB := ob.Observed[k]
			if okA != okB || va != vb {
				out = append(out, Divergence{Scenario: n, Field: "observed." + k,
					A: orMissing(va, okA), B: orMissing(vb, okB)})
			}
		}
	}
	return out
}

func indexOutcomes(r Run) map[string]probeOutcome {
	m := make(map[string]probeOutcome, len(r.Outcomes))
	for _, o := range r.Outcomes {
		m[o.Scenario] = probeOutcome{Pass: o.Pass, Observed: o.Observed}
	}
	return m
}

type probeOutcome struct {
	Pass     bool
	Observed map[string]string
}

func configString(r Run) string {
	c := r.Config
	return "contenders=" + strconv.Itoa(c.Contenders) +
		" iterations=" + strconv.Itoa(c.Iterations) +
		" rounds=" + strconv.Itoa(c.Rounds) +
		" ring_size=" + strconv.Itoa(c.RingSize) +
		" pin=" + strconv.FormatBool(c.Pin)
}

func orMissing(v string, ok bool) string {
	if !ok {
		return "<missing>"
	}
	return v
}
