package ledger

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/sugawarayuuta/sonnet"

	"stdatomic/probe"
)

const runColumns = `id, backend, goos, goarch, ptr_size, go_version, config, digest, passed, failed, started_at`

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(sc scanner) (Run, error) {
	var r Run
	var cfg string
	var started int64
	if err := sc.Scan(&r.ID, &r.Backend, &r.GOOS, &r.GOARCH, &r.PtrSize, &r.GoVersion,
		&cfg, &r.Digest, &r.Passed, &r.Failed, &started); err != nil {
		return Run{}, err
	}
	if err := sonnet.Unmarshal([]byte(cfg), &r.Config); err != nil {
		return Run{}, fmt.Errorf("decode config of run %s: %w", r.ID, err)
	}
	r.StartedAt = time.Unix(0, started).UTC()
	return r, nil
}

// Runs lists every recorded run, newest first, without outcomes.
func (s *Store) Runs(ctx context.Context) ([]Run, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+runColumns+` FROM runs ORDER BY started_at DESC, id`)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// Load returns the run whose id equals or uniquely starts with id,
// including its outcomes in recorded order.
func (s *Store) Load(ctx context.Context, id string) (Run, error) {
	if id == "" {
		return Run{}, fmt.Errorf("%w: empty id", ErrNotFound)
	}
	// Byte-exact prefix: no wildcards, case-sensitive.
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+runColumns+` FROM runs WHERE substr(id, 1, length(?)) = ? LIMIT 2`, id, id)
	if err != nil {
		return Run{}, fmt.Errorf("query run %s: %w", id, err)
	}
	var matches []Run
	for rows.Next() {
		r, err := scanRun(rows)
		if err != nil {
			rows.Close()
			return Run{}, err
		}
		matches = append(matches, r)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return Run{}, err
	}

	switch {
	case len(matches) == 0:
		return Run{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	case len(matches) > 1 && matches[0].ID != id && matches[1].ID != id:
		return Run{}, fmt.Errorf("%w: %s", ErrAmbiguous, id)
	}
	r := matches[0]
	if len(matches) > 1 && matches[1].ID == id {
		r = matches[1]
	}

	r.Outcomes, err = s.outcomes(ctx, r.ID)
	if err != nil {
		return Run{}, err
	}
	return r, nil
}

func (s *Store) outcomes(ctx context.Context, runID string) ([]probe.Outcome, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT scenario, backend, pass, observed, detail, retries, elapsed_ns
		FROM outcomes WHERE run_id = ? ORDER BY seq`, runID)
	if err != nil {
		return nil, fmt.Errorf("query outcomes of %s: %w", runID, err)
	}
	defer rows.Close()

	var out []probe.Outcome
	for rows.Next() {
		var o probe.Outcome
		var observed string
		var retries sql.NullString
		var elapsed int64
		if err := rows.Scan(&o.Scenario, &o.Backend, &o.Pass, &observed, &o.Detail, &retries, &elapsed); err != nil {
			return nil, err
		}
		if err := sonnet.Unmarshal([]byte(observed), &o.Observed); err != nil {
			return nil, fmt.Errorf("decode observed of %s/%s: %w", runID, o.Scenario, err)
		}
		if retries.Valid {
			o.Retries = new(probe.Stats)
			if err := sonnet.Unmarshal([]byte(retries.String), o.Retries); err != nil {
				return nil, fmt.Errorf("decode retries of %s/%s: %w", runID, o.Scenario, err)
			}
		}
		o.Elapsed = time.Duration(elapsed)
		out = append(out, o)
	}
	return out, rows.Err()
}
