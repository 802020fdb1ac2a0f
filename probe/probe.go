package probe

import (
	"context"
	"encoding/hex"
	"errors"
	"runtime"
	"sort"
	"time"

	"golang.org/x/crypto/sha3"

	"stdatomic/atomics"
	"stdatomic/constants"
	"stdatomic/control"
	"stdatomic/debug"
)

// ErrStopped is returned when control.Shutdown interrupts a run.
var ErrStopped = errors.New("probe: stopped")

// Config sizes the contended scenarios.  Zero fields take defaults.
type Config struct {
	Contenders int  `json:"contenders" yaml:"contenders"`
	Iterations int  `json:"iterations" yaml:"iterations"`
	Rounds     int  `json:"rounds" yaml:"rounds"`
	RingSize   int  `json:"ring_size" yaml:"ring_size"`
	Pin        bool `json:"pin" yaml:"pin"`
}

// WithDefaults fills zero fields.
func (c Config) WithDefaults() Config {
	if c.Contenders <= 0 {
		c.Contenders = constants.DefaultContenders
		if c.Contenders <= 0 {
			c.Contenders = 2 * runtime.GOMAXPROCS(0)
		}
	}
	if c.Contenders < constants.MinContenders {
		c.Contenders = constants.MinContenders
	}
	if c.Iterations <= 0 {
		c.Iterations = constants.DefaultIterations
	}
	if c.Rounds <= 0 {
		c.Rounds = constants.DefaultRounds
	}
	if c.RingSize <= 0 {
		c.RingSize = constants.RingSize
	}
	return c
}

// Outcome is the result of one scenario against one backend.
type Outcome struct {
	Scenario string            `json:"scenario" yaml:"scenario"`
	Backend  string            `json:"backend" yaml:"backend"`
	Pass     bool              `json:"pass" yaml:"pass"`
	Observed map[string]string `json:"observed" yaml:"observed"`
	Detail   string            `json:"detail,omitempty" yaml:"detail,omitempty"`
	Retries  *Stats            `json:"retries,omitempty" yaml:"retries,omitempty"`
	Elapsed  time.Duration     `json:"elapsed_ns" yaml:"elapsed"`
}

// Scenario is one named property check.
type Scenario struct {
	Name        string
	Description string
	Run         func(ctx context.Context, b atomics.Backend, cfg Config) Outcome
}

// Run executes every scenario of Suite against b.  It stops early, returning
// the outcomes gathered so far and an error, when ctx is cancelled or
// control.Shutdown is called.
func Run(ctx context.Context, b atomics.Backend, cfg Config) ([]Outcome, error) {
	return RunSuite(ctx, b, cfg, Suite())
}

// RunSuite is Run over an explicit scenario list.
func RunSuite(ctx context.Context, b atomics.Backend, cfg Config, suite []Scenario) ([]Outcome, error) {
	cfg = cfg.WithDefaults()
	out := make([]Outcome, 0, len(suite))
	for _, sc := range suite {
		if err := interrupted(ctx); err != nil {
			return out, err
		}
		debug.DropMessage("PROBE", b.Name()+" "+sc.Name)
		start := time.Now()
		o := sc.Run(ctx, b, cfg)
		o.Elapsed = time.Since(start)
		o.Scenario = sc.Name
		if o.Backend == "" {
			o.Backend = b.Name()
		}
		out = append(out, o)
		if err := interrupted(ctx); err != nil {
			return out, err
		}
	}
	return out, nil
}

// Failed returns the outcomes that did not pass.
func Failed(outcomes []Outcome) []Outcome {
	var bad []Outcome
	for _, o := range outcomes {
		if !o.Pass {
			bad = append(bad, o)
		}
	}
	return bad
}

// Digest hashes the deterministic part of outcomes (scenario, pass,
// observed facts) with SHA3-256.  Order of outcomes and of observed keys
// does not matter.
func Digest(outcomes []Outcome) string {
	sorted := make([]Outcome, len(outcomes))
	copy(sorted, outcomes)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Scenario < sorted[j].Scenario })

	h := sha3.New256()
	for _, o := range sorted {
		h.Write([]byte(o.Scenario))
		if o.Pass {
			h.Write([]byte{0, 1})
		} else {
			h.Write([]byte{0, 0})
		}
		keys := make([]string, 0, len(o.Observed))
		for k := range o.Observed {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			h.Write([]byte{0})
			h.Write([]byte(k))
			h.Write([]byte{'='})
			h.Write([]byte(o.Observed[k]))
		}
		h.Write([]byte{'\n'})
	}
	return hex.EncodeToString(h.Sum(nil))
}

func interrupted(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if control.Stopped() {
		return ErrStopped
	}
	return nil
}
