// ============================================================================
// CONFORMANCE SUITE VALIDATION
// ============================================================================
//
// Runs the full scenario suite on both adapters with a reduced config and
// checks every scenario passes and that both adapters produce the same
// digest, i.e. no observable divergence between native and emulated paths.

package probe

import (
	"context"
	"errors"
	"testing"

	"stdatomic/atomics"
	"stdatomic/control"
)

func smallConfig() Config {
	cfg := Config{Contenders: 4, Iterations: 2_000, Rounds: 40, RingSize: 64}
	if testing.Short() {
		cfg.Iterations, cfg.Rounds = 300, 10
	}
	return cfg
}

func TestSuiteNamesUnique(t *testing.T) {
	seen := map[string]bool{}
	for _, sc := range Suite() {
		if sc.Name == "" || sc.Description == "" || sc.Run == nil {
			t.Fatalf("incomplete scenario %+v", sc)
		}
		if seen[sc.Name] {
			t.Fatalf("duplicate scenario %q", sc.Name)
		}
		seen[sc.Name] = true
		if _, ok := Lookup(sc.Name); !ok {
			t.Fatalf("Lookup(%q) failed", sc.Name)
		}
	}
	if _, ok := Lookup("nope"); ok {
		t.Fatal("Lookup found an unknown scenario")
	}
}

func TestSelect(t *testing.T) {
	all, err := Select(nil)
	if err != nil || len(all) != len(Suite()) {
		t.Fatalf("Select(nil) = %d scenarios, %v", len(all), err)
	}

	// Suite order wins over argument order.
	got, err := Select([]string{"ring-handoff", "exchange"})
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 || got[0].Name != "exchange" || got[1].Name != "ring-handoff" {
		t.Fatalf("Select order = %v", got)
	}

	if _, err := Select([]string{"exchange", "bogus"}); err == nil {
		t.Fatal("Select accepted an unknown scenario")
	}
}

func TestRunSuiteSubset(t *testing.T) {
	sc, _ := Lookup("exchange")
	out, err := RunSuite(context.Background(), atomics.Emulated{}, smallConfig(), []Scenario{sc})
	if err != nil {
		t.Fatal(err)
	}
	if len(out) != 1 || !out[0].Pass || out[0].Backend != "emulated" {
		t.Fatalf("RunSuite = %+v", out)
	}
}

func TestConfigDefaults(t *testing.T) {
	cfg := Config{}.WithDefaults()
	if cfg.Contenders < 4 || cfg.Iterations <= 0 || cfg.Rounds <= 0 || cfg.RingSize <= 0 {
		t.Fatalf("defaults not applied: %+v", cfg)
	}
	if got := (Config{Contenders: 1}).WithDefaults().Contenders; got != 4 {
		t.Fatalf("Contenders floor = %d, want 4", got)
	}
}

func TestRunBothBackendsAgree(t *testing.T) {
	ctx := context.Background()
	digests := map[string]string{}
	for _, b := range atomics.Backends() {
		outcomes, err := Run(ctx, b, smallConfig())
		if err != nil {
			t.Fatalf("%s: Run: %v", b.Name(), err)
		}
		if len(outcomes) != len(Suite()) {
			t.Fatalf("%s: %d outcomes, want %d", b.Name(), len(outcomes), len(Suite()))
		}
		for _, o := range Failed(outcomes) {
			t.Errorf("%s/%s failed: observed=%v detail=%q", b.Name(), o.Scenario, o.Observed, o.Detail)
		}
		digests[b.Name()] = Digest(outcomes)
	}
	if digests["native"] != digests["emulated"] {
		t.Fatalf("backends diverge: native=%s emulated=%s", digests["native"], digests["emulated"])
	}
}

func TestScenarioObservations(t *testing.T) {
	ctx := context.Background()
	cfg := smallConfig().WithDefaults()
	for _, b := range atomics.Backends() {
		sc, _ := Lookup("exchange")
		o := sc.Run(ctx, b, cfg)
		if o.Observed["previous"] != "10" || o.Observed["after"] != "20" {
			t.Errorf("%s exchange observed %v", b.Name(), o.Observed)
		}
		sc, _ = Lookup("cas-weak-refresh")
		o = sc.Run(ctx, b, cfg)
		if o.Observed["refreshed"] != "7" || o.Observed["final"] != "8" {
			t.Errorf("%s cas-weak-refresh observed %v", b.Name(), o.Observed)
		}
		sc, _ = Lookup("cas-weak-counter")
		o = sc.Run(ctx, b, cfg)
		if o.Retries == nil || o.Retries.Samples != cfg.Contenders {
			t.Errorf("%s cas-weak-counter retries %+v", b.Name(), o.Retries)
		}
	}
}

func TestRunHonoursCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	outcomes, err := Run(ctx, atomics.Bound(), smallConfig())
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
	if len(outcomes) != 0 {
		t.Fatalf("got %d outcomes after cancel", len(outcomes))
	}
}

func TestRunStopsOnShutdown(t *testing.T) {
	control.Reset()
	defer control.Reset()
	control.Shutdown()
	_, err := Run(context.Background(), atomics.Bound(), smallConfig())
	if !errors.Is(err, ErrStopped) {
		t.Fatalf("err = %v, want ErrStopped", err)
	}
}

func TestDigest(t *testing.T) {
	a := []Outcome{
		{Scenario: "x", Pass: true, Observed: map[string]string{"k": "1", "j": "2"}},
		{Scenario: "y", Pass: false, Observed: map[string]string{"k": "3"}},
	}
	b := []Outcome{
		{Scenario: "y", Pass: false, Observed: map[string]string{"k": "3"}, Backend: "other", Detail: "noise"},
		{Scenario: "x", Pass: true, Observed: map[string]string{"j": "2", "k": "1"}, Elapsed: 42},
	}
	if Digest(a) != Digest(b) {
		t.Fatal("digest depends on order or non-deterministic fields")
	}
	if len(Digest(a)) != 64 {
		t.Fatalf("digest length %d, want 64 hex chars", len(Digest(a)))
	}
	b[1].Observed["k"] = "9"
	if Digest(a) == Digest(b) {
		t.Fatal("digest ignores observed values")
	}
	b[1].Observed["k"] = "1"
	b[0].Pass = true
	if Digest(a) == Digest(b) {
		t.Fatal("digest ignores pass")
	}
}
