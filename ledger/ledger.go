// Package ledger records probe runs in SQLite so that runs made by
// different builds (native and emulated) can be listed and compared later.
package ledger

import (
	"database/sql"
	_ "embed"
	"errors"
	"fmt"
	"runtime"
	"time"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"stdatomic/constants"
	"stdatomic/libatomic"
	"stdatomic/probe"
)

//go:embed schema.sql
var schemaSQL string

// ErrNotFound is returned when no run matches an id or id prefix.
var ErrNotFound = errors.New("ledger: run not found")

// ErrAmbiguous is returned when an id prefix matches more than one run.
var ErrAmbiguous = errors.New("ledger: ambiguous run id prefix")

// Run is one probe execution together with the build it ran in.
type Run struct {
	ID        string          `json:"id" yaml:"id"`
	Backend   string          `json:"backend" yaml:"backend"`
	GOOS      string          `json:"goos" yaml:"goos"`
	GOARCH    string          `json:"goarch" yaml:"goarch"`
	PtrSize   int             `json:"ptr_size" yaml:"ptr_size"`
	GoVersion string          `json:"go_version" yaml:"go_version"`
	Config    probe.Config    `json:"config" yaml:"config"`
	Digest    string          `json:"digest" yaml:"digest"`
	Passed    int             `json:"passed" yaml:"passed"`
	Failed    int             `json:"failed" yaml:"failed"`
	StartedAt time.Time       `json:"started_at" yaml:"started_at"`
	Outcomes  []probe.Outcome `json:"outcomes,omitempty" yaml:"outcomes,omitempty"`
}

// NewRun stamps outcomes with a fresh id, the current build environment
// and their digest.
func NewRun(backend string, cfg probe.Config, outcomes []probe.Outcome, started time.Time) Run {
	r := Run{
		ID:        uuid.NewString(),
		Backend:   backend,
		GOOS:      runtime.GOOS,
		GOARCH:    runtime.GOARCH,
		PtrSize:   libatomic.PtrSize,
		GoVersion: runtime.Version(),
		Config:    cfg,
		Digest:    probe.Digest(outcomes),
		StartedAt: started.UTC(),
		Outcomes:  outcomes,
	}
	r.count()
	return r
}

func (r *Run) count() {
	r.Passed, r.Failed = 0, 0
	for _, o := range r.Outcomes {
		if o.Pass {
			r.Passed++
		} else {
			r.Failed++
		}
	}
}

// Store is the SQLite-backed run ledger.
type Store struct {
	db *sql.DB
}

// Open creates or opens the ledger at path and applies pragmas and schema.
// Safe to call on an existing ledger.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open ledger: %w", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to ledger: %w", err)
	}

	// SQLite has a single writer.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	pragmas := []string{
		"PRAGMA journal_mode = WAL",
		"PRAGMA synchronous = NORMAL",
		fmt.Sprintf("PRAGMA busy_timeout = %d", constants.LedgerBusyTimeoutMs),
		"PRAGMA foreign_keys = ON",
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to execute %q: %w", p, err)
		}
	}
	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to apply schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}
