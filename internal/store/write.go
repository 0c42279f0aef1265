package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/roach88/structmatch/internal/harness"
	"github.com/roach88/structmatch/internal/report"
)

// Run is one recorded scenario execution.
type Run struct {
	ID       string `json:"id"`
	Scenario string `json:"scenario"`
	Seq      int64  `json:"seq"`
	Passed   int    `json:"passed"`
	Failed   int    `json:"failed"`
	Total    int    `json:"total"`
}

// Pass reports whether every case of the run passed.
func (r Run) Pass() bool {
	return r.Failed == 0
}

// CaseRecord is the stored verdict of one case.
type CaseRecord struct {
	Name    string `json:"name"`
	Expect  string `json:"expect"`
	Matched bool   `json:"matched"`
	Pass    bool   `json:"pass"`
	Seq     int64  `json:"seq"`
}

// FailureRecord is one stored mismatch. Expected and Received hold the
// rendered text of the values, so predicates and patterns survive storage.
type FailureRecord struct {
	Case     string `json:"case"`
	Key      string `json:"key"`
	Kind     string `json:"kind"`
	Relation string `json:"relation"`
	Expected string `json:"expected"`
	Received string `json:"received"`
	Seq      int64  `json:"seq"`
}

// WriteRun records a harness result in a single transaction and returns the
// stored run with its assigned ID and seq.
func (s *Store) WriteRun(ctx context.Context, result *harness.Result) (Run, error) {
	passed, failed := result.Counts()
	run := Run{
		ID:       s.ids.Generate(),
		Scenario: result.Scenario,
		Passed:   passed,
		Failed:   failed,
		Total:    len(result.Cases),
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return Run{}, fmt.Errorf("write run: begin: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	if err := tx.QueryRowContext(ctx, `SELECT COALESCE(MAX(seq), 0) + 1 FROM runs`).Scan(&run.Seq); err != nil {
		return Run{}, fmt.Errorf("write run: next seq: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO runs (id, scenario, seq, passed, failed, total)
		VALUES (?, ?, ?, ?, ?, ?)
	`, run.ID, run.Scenario, run.Seq, run.Passed, run.Failed, run.Total)
	if err != nil {
		return Run{}, fmt.Errorf("write run: %w", err)
	}

	for i, c := range result.Cases {
		if err := writeCase(ctx, tx, run.ID, int64(i+1), c); err != nil {
			return Run{}, fmt.Errorf("write run: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return Run{}, fmt.Errorf("write run: commit: %w", err)
	}
	return run, nil
}

func writeCase(ctx context.Context, tx *sql.Tx, runID string, seq int64, c harness.CaseResult) error {
	_, err := tx.ExecContext(ctx, `
		INSERT INTO case_results (run_id, case_name, expect, matched, pass, seq)
		VALUES (?, ?, ?, ?, ?, ?)
	`, runID, c.Name, c.Expect, c.Matched, c.Pass, seq)
	if err != nil {
		return fmt.Errorf("case %q: %w", c.Name, err)
	}

	for i, f := range c.Failures {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO failures (run_id, case_name, key, kind, relation, expected, received, seq)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		`,
			runID,
			c.Name,
			f.Key,
			f.Kind.String(),
			f.Relation,
			report.Pretty(f.Expected),
			report.Pretty(f.Received),
			int64(i+1),
		)
		if err != nil {
			return fmt.Errorf("case %q failure %d: %w", c.Name, i, err)
		}
	}
	return nil
}
