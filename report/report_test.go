package report

import (
	"bytes"
	"testing"
	"time"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/sugawarayuuta/sonnet"
	"gopkg.in/yaml.v3"

	"stdatomic/atomics"
	"stdatomic/ledger"
	"stdatomic/probe"
)

const (
	digestA = "5d41402abc4b2a76b9719d911017c5925d41402abc4b2a76b9719d911017c592"
	digestB = "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855"
)

func golden(t *testing.T) *goldie.Goldie {
	t.Helper()
	return goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
}

func fixtureRun() ledger.Run {
	return ledger.Run{
		ID:        "3f2a9c1e-7b44-4c1d-9e2f-1a2b3c4d5e6f",
		Backend:   "native",
		GOOS:      "linux",
		GOARCH:    "amd64",
		PtrSize:   8,
		GoVersion: "go1.24.3",
		Config:    probe.Config{Contenders: 4, Iterations: 1000, Rounds: 10, RingSize: 64},
		Digest:    digestA,
		Passed:    2,
		Failed:    1,
		StartedAt: time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
		Outcomes: []probe.Outcome{
			{
				Scenario: "exchange",
				Backend:  "native",
				Pass:     true,
				Observed: map[string]string{"previous": "10", "after": "20"},
				Elapsed:  3 * time.Millisecond,
			},
			{
				Scenario: "cas-weak-counter",
				Backend:  "native",
				Pass:     true,
				Observed: map[string]string{"final": "4000"},
				Retries:  &probe.Stats{Samples: 4, Mean: 1.5, P50: 1, P99: 3, Max: 3},
				Elapsed:  250 * time.Millisecond,
			},
			{
				Scenario: "wrap-around",
				Backend:  "native",
				Pass:     false,
				Observed: map[string]string{"overflow": "0"},
				Detail:   "unexpected",
			},
		},
	}
}

func fixtureRunB() ledger.Run {
	return ledger.Run{
		ID:        "9c0ffee0-1111-4222-8333-444455556666",
		Backend:   "emulated",
		GOOS:      "linux",
		GOARCH:    "386",
		PtrSize:   4,
		Digest:    digestB,
		Passed:    12,
		StartedAt: time.Date(2026, 3, 1, 12, 5, 0, 0, time.UTC),
	}
}

// ───────────────────────────── Text (golden) ─────────────────────────────

func TestRunText(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Run(&buf, Text, fixtureRun()))
	golden(t).Assert(t, "run", buf.Bytes())
}

func TestRunsText(t *testing.T) {
	a := fixtureRun()
	a.Outcomes = nil
	var buf bytes.Buffer
	require.NoError(t, Runs(&buf, Text, []ledger.Run{a, fixtureRunB()}))
	golden(t).Assert(t, "runs", buf.Bytes())
}

func TestRunsTextEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Runs(&buf, Text, nil))
	assert.Equal(t, "no runs recorded\n", buf.String())
}

func TestComparisonText(t *testing.T) {
	divs := []ledger.Divergence{
		{Scenario: "*", Field: "ptr_size", A: "8", B: "4"},
		{Scenario: "wrap-around", Field: "observed.overflow", A: "0", B: "18446744073709551615"},
		{Scenario: "wrap-around", Field: "pass", A: "false", B: "true"},
	}
	var buf bytes.Buffer
	require.NoError(t, Comparison(&buf, Text, fixtureRun(), fixtureRunB(), divs))
	golden(t).Assert(t, "compare", buf.Bytes())
}

func TestComparisonTextIdentical(t *testing.T) {
	b := fixtureRunB()
	b.GOARCH = "amd64"
	b.Digest = digestA
	var buf bytes.Buffer
	require.NoError(t, Comparison(&buf, Text, fixtureRun(), b, nil))
	golden(t).Assert(t, "compare_identical", buf.Bytes())
}

func TestBackendText(t *testing.T) {
	info := Describe()
	info.Bound = "native"
	info.PtrSize = 8
	info.GOOS = "linux"
	info.GOARCH = "amd64"

	var buf bytes.Buffer
	require.NoError(t, Backend(&buf, Text, info))
	golden(t).Assert(t, "backend", buf.Bytes())
}

// ───────────────────────────── JSON / YAML ─────────────────────────────

func TestRunJSON(t *testing.T) {
	in := fixtureRun()
	var buf bytes.Buffer
	require.NoError(t, Run(&buf, JSON, in))

	var out ledger.Run
	require.NoError(t, sonnet.Unmarshal(buf.Bytes(), &out))
	assert.Equal(t, in.ID, out.ID)
	assert.Equal(t, in.Config, out.Config)
	assert.Equal(t, in.Passed, out.Passed)
	assert.True(t, in.StartedAt.Equal(out.StartedAt))
	assert.Equal(t, in.Outcomes, out.Outcomes)
}

func TestRunYAML(t *testing.T) {
	in := fixtureRun()
	var buf bytes.Buffer
	require.NoError(t, Run(&buf, YAML, in))

	var out ledger.Run
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &out))
	assert.Equal(t, in.ID, out.ID)
	assert.Equal(t, in.Config, out.Config)
	assert.Equal(t, in.Failed, out.Failed)
	require.Len(t, out.Outcomes, 3)
	assert.Equal(t, in.Outcomes[0].Observed, out.Outcomes[0].Observed)
	assert.Equal(t, in.Outcomes[1].Retries, out.Outcomes[1].Retries)
	assert.Equal(t, in.Outcomes[2].Detail, out.Outcomes[2].Detail)
}

func TestComparisonJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Comparison(&buf, JSON, fixtureRun(), fixtureRunB(), nil))

	var doc ComparisonDoc
	require.NoError(t, sonnet.Unmarshal(buf.Bytes(), &doc))
	assert.True(t, doc.Identical)
	assert.NotNil(t, doc.Divergences)
	assert.Empty(t, doc.Divergences)
	assert.Equal(t, "emulated", doc.B.Backend)
	assert.Contains(t, buf.String(), `"divergences": []`)
}

func TestRunsYAMLEmptyIsList(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Runs(&buf, YAML, nil))
	assert.Equal(t, "[]\n", buf.String())
}

func TestBackendYAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Backend(&buf, YAML, Describe()))

	var info BackendInfo
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &info))
	assert.Equal(t, atomics.BackendName, info.Bound)
	assert.Equal(t, []string{"native", "emulated"}, info.Backends)
	require.Len(t, info.Orderings, len(atomics.Orderings))
	for i, o := range atomics.Orderings {
		assert.Equal(t, o.String(), info.Orderings[i].Name)
		assert.Equal(t, o.Code(), info.Orderings[i].Code)
	}
}

func TestUnknownFormat(t *testing.T) {
	var buf bytes.Buffer
	assert.Error(t, Run(&buf, "xml", fixtureRun()))
	assert.False(t, Valid("xml"))
	for _, f := range Formats {
		assert.True(t, Valid(f), f)
	}
}

func TestElapsed(t *testing.T) {
	cases := []struct {
		in   time.Duration
		want string
	}{
		{0, "-"},
		{1500 * time.Nanosecond, "2µs"},
		{1499 * time.Microsecond, "1ms"},
		{1500 * time.Microsecond, "2ms"},
		{2 * time.Second, "2s"},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, elapsed(c.in), c.in.String())
	}
}

func TestDeleted(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Deleted(&buf, Text, "abc"))
	assert.Equal(t, "deleted abc\n", buf.String())

	buf.Reset()
	require.NoError(t, Deleted(&buf, YAML, "abc"))
	assert.Equal(t, "deleted: abc\n", buf.String())
}
