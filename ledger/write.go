package ledger

import (
	"context"
	"fmt"

	"github.com/sugawarayuuta/sonnet"
)

// Record inserts r and its outcomes in one transaction.
func (s *Store) Record(ctx context.Context, r Run) error {
	r.count()
	cfg, err := sonnet.Marshal(r.Config)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO runs (id, backend, goos, goarch, ptr_size, go_version, config, digest, passed, failed, started_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.ID, r.Backend, r.GOOS, r.GOARCH, r.PtrSize, r.GoVersion, string(cfg), r.Digest,
		r.Passed, r.Failed, r.StartedAt.UnixNano())
	if err != nil {
		return fmt.Errorf("insert run %s: %w", r.ID, err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO outcomes (run_id, seq, scenario, backend, pass, observed, detail, retries, elapsed_ns)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare outcomes: %w", err)
	}
	defer stmt.Close()

	for i, o := range r.Outcomes {
		observed, err := sonnet.Marshal(o.Observed)
		if err != nil {
			return fmt.Errorf("encode observed for %s: %w", o.Scenario, err)
		}
		var retries any
		if o.Retries != nil {
			b, err := sonnet.Marshal(o.Retries)
			if err != nil {
				return fmt.Errorf("encode retries for %s: %w", o.Scenario, err)
			}
			retries = string(b)
		}
		if _, err := stmt.ExecContext(ctx, r.ID, i, o.Scenario, o.Backend, o.Pass,
			string(observed), o.Detail, retries, int64(o.Elapsed)); err != nil {
			return fmt.Errorf("insert outcome %s: %w", o.Scenario, err)
		}
	}
	return tx.Commit()
}

// Delete removes a run and, through the foreign key, its outcomes.
func (s *Store) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM runs WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete run %s: %w", id, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}
