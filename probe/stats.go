package probe

import (
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Stats summarises a sample of per-contender counts (e.g. CAS retries).
type Stats struct {
	Samples int     `json:"samples" yaml:"samples"`
	Mean    float64 `json:"mean" yaml:"mean"`
	StdDev  float64 `json:"stddev" yaml:"stddev"`
	P50     float64 `json:"p50" yaml:"p50"`
	P99     float64 `json:"p99" yaml:"p99"`
	Max     float64 `json:"max" yaml:"max"`
}

// Summarize computes Stats over xs.  xs is sorted in place.
func Summarize(xs []float64) Stats {
	if len(xs) == 0 {
		return Stats{}
	}
	sort.Float64s(xs)
	s := Stats{
		Samples: len(xs),
		Mean:    stat.Mean(xs, nil),
		P50:     stat.Quantile(0.5, stat.Empirical, xs, nil),
		P99:     stat.Quantile(0.99, stat.Empirical, xs, nil),
		Max:     floats.Max(xs),
	}
	if len(xs) > 1 {
		s.StdDev = stat.StdDev(xs, nil)
	}
	return s
}
