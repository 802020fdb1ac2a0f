package atomics

import (
	"fmt"
	"testing"
)

// TestOrderingCodes pins the integer encoding shared with libatomic.
func TestOrderingCodes(t *testing.T) {
	want := map[Ordering]int32{
		Relaxed: 0, Consume: 1, Acquire: 2, Release: 3, AcqRel: 4, SeqCst: 5,
	}
	for o, code := range want {
		if o.Code() != code {
			t.Errorf("%v.Code() = %d, want %d", o, o.Code(), code)
		}
	}
	for i, o := range Orderings {
		if int(o) != i {
			t.Errorf("Orderings[%d] = %v, want rank %d", i, o, i)
		}
	}
}

func TestOrderingRank(t *testing.T) {
	for i := 1; i < len(Orderings); i++ {
		weak, strong := Orderings[i-1], Orderings[i]
		if !strong.Stronger(weak) || weak.Stronger(strong) {
			t.Errorf("%v should rank above %v", strong, weak)
		}
		if !strong.AtLeast(weak) || !strong.AtLeast(strong) {
			t.Errorf("%v AtLeast broken", strong)
		}
	}
}

func TestOrderingClassification(t *testing.T) {
	tests := []struct {
		o                  Ordering
		acquires, releases bool
		failure            Ordering
	}{
		{Relaxed, false, false, Relaxed},
		{Consume, true, false, Consume},
		{Acquire, true, false, Acquire},
		{Release, false, true, Relaxed},
		{AcqRel, true, true, Acquire},
		{SeqCst, true, true, SeqCst},
	}
	for _, tt := range tests {
		t.Run(tt.o.String(), func(t *testing.T) {
			if got := tt.o.Acquires(); got != tt.acquires {
				t.Errorf("Acquires() = %v, want %v", got, tt.acquires)
			}
			if got := tt.o.Releases(); got != tt.releases {
				t.Errorf("Releases() = %v, want %v", got, tt.releases)
			}
			if got := tt.o.Failure(); got != tt.failure {
				t.Errorf("Failure() = %v, want %v", got, tt.failure)
			}
		})
	}
}

func TestOrderingValid(t *testing.T) {
	for _, o := range Orderings {
		if !o.Valid() {
			t.Errorf("%v reported invalid", o)
		}
	}
	for _, o := range []Ordering{-1, 6, 100} {
		if o.Valid() {
			t.Errorf("Ordering(%d) reported valid", int32(o))
		}
		if got, want := o.String(), fmt.Sprintf("Ordering(%d)", int32(o)); got != want {
			t.Errorf("String() = %q, want %q", got, want)
		}
	}
}

func TestParseOrdering(t *testing.T) {
	tests := []struct {
		in   string
		want Ordering
	}{
		{"relaxed", Relaxed},
		{"memory_order_consume", Consume},
		{"acquire", Acquire},
		{"3", Release},
		{"acq_rel", AcqRel},
		{"memory_order_seq_cst", SeqCst},
	}
	for _, tt := range tests {
		got, err := ParseOrdering(tt.in)
		if err != nil || got != tt.want {
			t.Errorf("ParseOrdering(%q) = %v, %v; want %v", tt.in, got, err, tt.want)
		}
	}
	for _, bad := range []string{"", "seqcst", "6", "SEQ_CST"} {
		if _, err := ParseOrdering(bad); err == nil {
			t.Errorf("ParseOrdering(%q) should fail", bad)
		}
	}
}

func TestOrderingTextRoundTrip(t *testing.T) {
	for _, o := range Orderings {
		b, err := o.MarshalText()
		if err != nil {
			t.Fatalf("MarshalText(%v): %v", o, err)
		}
		var back Ordering
		if err := back.UnmarshalText(b); err != nil || back != o {
			t.Fatalf("UnmarshalText(%q) = %v, %v", b, back, err)
		}
	}
	if _, err := Ordering(9).MarshalText(); err == nil {
		t.Fatal("MarshalText should reject invalid orderings")
	}
}
