// Package store provides SQLite-backed run history for scenario executions.
//
// The store keeps an append-only record of:
//   - Runs: one row per scenario execution with pass/fail counts
//   - Case results: the verdict of every case in a run
//   - Failures: every mismatch of every case, rendered as text
//
// # Ordering
//
// Runs are ordered by a logical seq assigned at write time (MAX(seq)+1 inside
// the write transaction), never by wall-clock time. Case results and failures
// keep the order in which the harness produced them, and every query orders by
// seq with a binary-collated tiebreak so repeated reads are identical.
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait for locks up to 5 seconds
//   - foreign_keys=ON: Enforce referential integrity
package store
