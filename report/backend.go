package report

import (
	"io"
	"runtime"
	"strconv"
	"strings"

	"stdatomic/atomics"
	"stdatomic/libatomic"
	"stdatomic/probe"
)

// OrderingCode describes one ordering symbol and its integer code.
type OrderingCode struct {
	Name     string `json:"name" yaml:"name"`
	Code     int32  `json:"code" yaml:"code"`
	Acquires bool   `json:"acquires" yaml:"acquires"`
	Releases bool   `json:"releases" yaml:"releases"`
	Failure  string `json:"failure" yaml:"failure"`
}

// BackendInfo describes the build: its bound backend, pointer width and
// the ordering encoding shared by every backend.
type BackendInfo struct {
	Bound     string         `json:"bound" yaml:"bound"`
	Backends  []string       `json:"backends" yaml:"backends"`
	PtrSize   int            `json:"ptr_size" yaml:"ptr_size"`
	GOOS      string         `json:"goos" yaml:"goos"`
	GOARCH    string         `json:"goarch" yaml:"goarch"`
	Orderings []OrderingCode `json:"orderings" yaml:"orderings"`
}

// Describe reports the current build.
func Describe() BackendInfo {
	info := BackendInfo{
		Bound:   atomics.BackendName,
		PtrSize: libatomic.PtrSize,
		GOOS:    runtime.GOOS,
		GOARCH:  runtime.GOARCH,
	}
	for _, b := range atomics.Backends() {
		info.Backends = append(info.Backends, b.Name())
	}
	for _, o := range atomics.Orderings {
		info.Orderings = append(info.Orderings, OrderingCode{
			Name:     o.String(),
			Code:     o.Code(),
			Acquires: o.Acquires(),
			Releases: o.Releases(),
			Failure:  o.Failure().String(),
		})
	}
	return info
}

// Backend renders info.
func Backend(w io.Writer, format string, info BackendInfo) error {
	if ok, err := encode(w, format, info); ok {
		return err
	}

	if err := table(w, nil, [][]string{
		{"bound", info.Bound},
		{"backends", strings.Join(info.Backends, " ")},
		{"ptr_size", strconv.Itoa(info.PtrSize)},
		{"platform", info.GOOS + "/" + info.GOARCH},
	}); err != nil {
		return err
	}
	if _, err := io.WriteString(w, "\n"); err != nil {
		return err
	}

	rows := make([][]string, 0, len(info.Orderings))
	for _, o := range info.Orderings {
		rows = append(rows, []string{
			o.Name,
			strconv.Itoa(int(o.Code)),
			yesNo(o.Acquires),
			yesNo(o.Releases),
			o.Failure,
		})
	}
	return table(w, []string{"ORDERING", "CODE", "ACQUIRE", "RELEASE", "FAILURE"}, rows)
}

func yesNo(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}

// ScenarioDoc names and describes one probe scenario.
type ScenarioDoc struct {
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description" yaml:"description"`
}

// Scenarios renders the scenario list.
func Scenarios(w io.Writer, format string, suite []probe.Scenario) error {
	docs := make([]ScenarioDoc, 0, len(suite))
	for _, sc := range suite {
		docs = append(docs, ScenarioDoc{Name: sc.Name, Description: sc.Description})
	}
	if ok, err := encode(w, format, docs); ok {
		return err
	}

	rows := make([][]string, 0, len(docs))
	for _, d := range docs {
		rows = append(rows, []string{d.Name, d.Description})
	}
	return table(w, []string{"SCENARIO", "DESCRIPTION"}, rows)
}
