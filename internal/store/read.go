package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

// ErrRunNotFound is returned when a run ID does not exist.
var ErrRunNotFound = errors.New("run not found")

// ListRuns returns the most recent runs, newest first.
// A limit of zero or less returns every run.
//
// Returns an empty slice (not nil) if no runs exist.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = -1 // SQLite: no limit
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, scenario, seq, passed, failed, total
		FROM runs
		ORDER BY seq DESC, id COLLATE BINARY ASC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	runs := []Run{}
	for rows.Next() {
		var r Run
		if err := rows.Scan(&r.ID, &r.Scenario, &r.Seq, &r.Passed, &r.Failed, &r.Total); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		runs = append(runs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}

	return runs, nil
}

// ReadRun retrieves a single run by ID.
// Returns ErrRunNotFound if the ID is unknown.
func (s *Store) ReadRun(ctx context.Context, id string) (Run, error) {
	var r Run
	err := s.db.QueryRowContext(ctx, `
		SELECT id, scenario, seq, passed, failed, total
		FROM runs
		WHERE id = ?
	`, id).Scan(&r.ID, &r.Scenario, &r.Seq, &r.Passed, &r.Failed, &r.Total)
	if errors.Is(err, sql.ErrNoRows) {
		return Run{}, fmt.Errorf("%w: %s", ErrRunNotFound, id)
	}
	if err != nil {
		return Run{}, fmt.Errorf("read run: %w", err)
	}
	return r, nil
}

// ReadCases returns the case verdicts of a run in execution order.
func (s *Store) ReadCases(ctx context.Context, runID string) ([]CaseRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT case_name, expect, matched, pass, seq
		FROM case_results
		WHERE run_id = ?
		ORDER BY seq ASC, case_name COLLATE BINARY ASC
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("query case results: %w", err)
	}
	defer rows.Close()

	cases := []CaseRecord{}
	for rows.Next() {
		var c CaseRecord
		if err := rows.Scan(&c.Name, &c.Expect, &c.Matched, &c.Pass, &c.Seq); err != nil {
			return nil, fmt.Errorf("scan case result: %w", err)
		}
		cases = append(cases, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate case results: %w", err)
	}

	return cases, nil
}

// ReadFailures returns every failure of a run, grouped by case in execution
// order and then in the order the mismatches were reported.
func (s *Store) ReadFailures(ctx context.Context, runID string) ([]FailureRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT f.case_name, f.key, f.kind, f.relation, f.expected, f.received, f.seq
		FROM failures f
		JOIN case_results c ON c.run_id = f.run_id AND c.case_name = f.case_name
		WHERE f.run_id = ?
		ORDER BY c.seq ASC, f.seq ASC
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("query failures: %w", err)
	}
	defer rows.Close()

	failures := []FailureRecord{}
	for rows.Next() {
		var f FailureRecord
		if err := rows.Scan(&f.Case, &f.Key, &f.Kind, &f.Relation, &f.Expected, &f.Received, &f.Seq); err != nil {
			return nil, fmt.Errorf("scan failure: %w", err)
		}
		failures = append(failures, f)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate failures: %w", err)
	}

	return failures, nil
}
