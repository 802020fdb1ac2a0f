// Package report renders probe runs, run listings, comparisons and the
// backend description as text tables, JSON or YAML.
package report

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/sugawarayuuta/sonnet"
	"gopkg.in/yaml.v3"

	"stdatomic/ledger"
	"stdatomic/probe"
)

// Output formats.
const (
	Text = "text"
	JSON = "json"
	YAML = "yaml"
)

// Formats lists the accepted format names.
var Formats = []string{Text, JSON, YAML}

// Valid reports whether format is one of Formats.
func Valid(format string) bool {
	for _, f := range Formats {
		if f == format {
			return true
		}
	}
	return false
}

// encode writes v as JSON or YAML.  ok is false for the text format.
func encode(w io.Writer, format string, v any) (ok bool, err error) {
	switch format {
	case JSON:
		enc := sonnet.NewEncoder(w)
		enc.SetIndent("", "  ")
		return true, enc.Encode(v)
	case YAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return true, err
		}
		return true, enc.Close()
	case Text:
		return false, nil
	}
	return true, fmt.Errorf("unknown format %q", format)
}

func table(w io.Writer, header []string, rows [][]string) error {
	tw := tabwriter.NewWriter(w, 0, 8, 2, ' ', 0)
	if header != nil {
		fmt.Fprintln(tw, strings.Join(header, "\t"))
	}
	for _, r := range rows {
		fmt.Fprintln(tw, strings.Join(r, "\t"))
	}
	return tw.Flush()
}

// Run renders one run with its outcomes.
func Run(w io.Writer, format string, r ledger.Run) error {
	if ok, err := encode(w, format, r); ok {
		return err
	}

	if err := table(w, nil, runHeader(r)); err != nil {
		return err
	}
	fmt.Fprintln(w)

	rows := make([][]string, 0, len(r.Outcomes))
	for _, o := range r.Outcomes {
		rows = append(rows, []string{
			o.Scenario,
			passString(o.Pass),
			elapsed(o.Elapsed),
			retries(o.Retries),
			observed(o),
		})
	}
	return table(w, []string{"SCENARIO", "RESULT", "ELAPSED", "RETRIES", "OBSERVED"}, rows)
}

func runHeader(r ledger.Run) [][]string {
	rows := [][]string{
		{"backend", r.Backend},
		{"platform", r.GOOS + "/" + r.GOARCH + " ptr=" + strconv.Itoa(r.PtrSize)},
		{"go", r.GoVersion},
		{"config", configString(r.Config)},
		{"digest", r.Digest},
		{"result", strconv.Itoa(r.Passed) + " passed, " + strconv.Itoa(r.Failed) + " failed"},
	}
	if r.ID != "" {
		rows = append([][]string{{"run", r.ID}}, rows...)
	}
	if !r.StartedAt.IsZero() {
		rows = append(rows, []string{"started", r.StartedAt.UTC().Format(time.RFC3339)})
	}
	return rows
}

// Runs renders a run listing, one line per run.
func Runs(w io.Writer, format string, runs []ledger.Run) error {
	if runs == nil {
		runs = []ledger.Run{}
	}
	if ok, err := encode(w, format, runs); ok {
		return err
	}
	if len(runs) == 0 {
		_, err := fmt.Fprintln(w, "no runs recorded")
		return err
	}

	rows := make([][]string, 0, len(runs))
	for _, r := range runs {
		rows = append(rows, []string{
			short(r.ID, 8),
			r.Backend,
			r.GOOS + "/" + r.GOARCH,
			strconv.Itoa(r.PtrSize),
			r.StartedAt.UTC().Format(time.RFC3339),
			strconv.Itoa(r.Passed),
			strconv.Itoa(r.Failed),
			short(r.Digest, 12),
		})
	}
	return table(w, []string{"ID", "BACKEND", "PLATFORM", "PTR", "STARTED", "PASSED", "FAILED", "DIGEST"}, rows)
}

// Side summarises one run of a comparison.
type Side struct {
	ID      string `json:"id" yaml:"id"`
	Backend string `json:"backend" yaml:"backend"`
	GOARCH  string `json:"goarch" yaml:"goarch"`
	Digest  string `json:"digest" yaml:"digest"`
}

// ComparisonDoc is the structured form of a comparison.
type ComparisonDoc struct {
	A           Side                `json:"a" yaml:"a"`
	B           Side                `json:"b" yaml:"b"`
	Identical   bool                `json:"identical" yaml:"identical"`
	Divergences []ledger.Divergence `json:"divergences" yaml:"divergences"`
}

func side(r ledger.Run) Side {
	return Side{ID: r.ID, Backend: r.Backend, GOARCH: r.GOARCH, Digest: r.Digest}
}

// Comparison renders the divergences between runs a and b.
func Comparison(w io.Writer, format string, a, b ledger.Run, divs []ledger.Divergence) error {
	if divs == nil {
		divs = []ledger.Divergence{}
	}
	doc := ComparisonDoc{A: side(a), B: side(b), Identical: len(divs) == 0, Divergences: divs}
	if ok, err := encode(w, format, doc); ok {
		return err
	}

	if err := table(w, nil, [][]string{
		{"a", a.ID, a.Backend, a.GOARCH, short(a.Digest, 12)},
		{"b", b.ID, b.Backend, b.GOARCH, short(b.Digest, 12)},
	}); err != nil {
		return err
	}
	fmt.Fprintln(w)

	if doc.Identical {
		_, err := fmt.Fprintln(w, "identical")
		return err
	}
	rows := make([][]string, 0, len(divs))
	for _, d := range divs {
		rows = append(rows, []string{d.Scenario, d.Field, d.A, d.B})
	}
	if err := table(w, []string{"SCENARIO", "FIELD", "A", "B"}, rows); err != nil {
		return err
	}
	_, err := fmt.Fprintln(w, "\n"+strconv.Itoa(len(divs))+" divergence(s)")
	return err
}

func configString(c probe.Config) string {
	return "contenders=" + strconv.Itoa(c.Contenders) +
		" iterations=" + strconv.Itoa(c.Iterations) +
		" rounds=" + strconv.Itoa(c.Rounds) +
		" ring_size=" + strconv.Itoa(c.RingSize) +
		" pin=" + strconv.FormatBool(c.Pin)
}

func passString(pass bool) string {
	if pass {
		return "pass"
	}
	return "FAIL"
}

func elapsed(d time.Duration) string {
	switch {
	case d >= time.Millisecond:
		return d.Round(time.Millisecond).String()
	case d > 0:
		return d.Round(time.Microsecond).String()
	}
	return "-"
}

func retries(s *probe.Stats) string {
	if s == nil {
		return "-"
	}
	return fmt.Sprintf("mean=%.2f p99=%.0f max=%.0f", s.Mean, s.P99, s.Max)
}

func observed(o probe.Outcome) string {
	keys := make([]string, 0, len(o.Observed))
	for k := range o.Observed {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	for i, k := range keys {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(k)
		b.WriteByte('=')
		b.WriteString(o.Observed[k])
	}
	if o.Detail != "" {
		if b.Len() > 0 {
			b.WriteByte(' ')
		}
		b.WriteString("(" + o.Detail + ")")
	}
	if b.Len() == 0 {
		return "-"
	}
	return b.String()
}

func short(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}

// Deleted confirms the removal of run id.
func Deleted(w io.Writer, format, id string) error {
	if ok, err := encode(w, format, map[string]string{"deleted": id}); ok {
		return err
	}
	_, err := fmt.Fprintln(w, "deleted "+id)
	return err
}
