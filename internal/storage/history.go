package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"jsplit/internal/domain"
	"jsplit/internal/migration"
)

// HistoryStore records suite durations per run in MySQL so later splits
// can use averaged durations instead of a single report set.
type HistoryStore struct {
	db    *sql.DB
	table string
	now   func() time.Time
}

// NewHistoryStore creates a HistoryStore on an open database
func NewHistoryStore(db *sql.DB, table string) (*HistoryStore, error) {
	if !migration.ValidTableName(table) {
		return nil, fmt.Errorf("invalid table name: %q", table)
	}
	return &HistoryStore{db: db, table: table, now: time.Now}, nil
}

// Record stores the durations of suites as one run
func (h *HistoryStore) Record(ctx context.Context, runID string, suites []domain.Suite) (*domain.HistoryRun, error) {
	recordedAt := h.now().UTC().Truncate(time.Second)

	tx, err := h.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	stmt, err := tx.PrepareContext(ctx, fmt.Sprintf(
		"INSERT INTO `%s` (run_id, suite_name, duration_seconds, recorded_at) VALUES (?, ?, ?, ?)", h.table))
	if err != nil {
		return nil, fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, s := range suites {
		if _, err := stmt.ExecContext(ctx, runID, s.Name, s.Duration, recordedAt); err != nil {
			return nil, fmt.Errorf("insert suite %s: %w", s.Name, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit run %s: %w", runID, err)
	}
	return &domain.HistoryRun{RunID: runID, Suites: len(suites), RecordedAt: recordedAt}, nil
}

// Averages returns one suite per recorded name with its mean duration over
// the most recent window runs, ordered by name.
func (h *HistoryStore) Averages(ctx context.Context, window int) ([]domain.Suite, error) {
	if window < 1 {
		return nil, fmt.Errorf("history window must be at least 1, got %d", window)
	}

	query := fmt.Sprintf("SELECT suite_name, AVG(duration_seconds) FROM `%[1]s` "+
		"WHERE run_id IN (SELECT run_id FROM ("+
		"SELECT run_id, MAX(recorded_at) AS last_recorded FROM `%[1]s` GROUP BY run_id ORDER BY last_recorded DESC LIMIT ?"+
		") recent) "+
		"GROUP BY suite_name ORDER BY suite_name", h.table)

	rows, err := h.db.QueryContext(ctx, query, window)
	if err != nil {
		return nil, fmt.Errorf("query suite averages: %w", err)
	}
	defer rows.Close()

	var suites []domain.Suite
	for rows.Next() {
		var s domain.Suite
		if err := rows.Scan(&s.Name, &s.Duration); err != nil {
			return nil, fmt.Errorf("scan suite average: %w", err)
		}
		suites = append(suites, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read suite averages: %w", err)
	}
	return suites, nil
}

// Runs lists the most recent runs, newest first
func (h *HistoryStore) Runs(ctx context.Context, limit int) ([]domain.HistoryRun, error) {
	query := fmt.Sprintf("SELECT run_id, COUNT(*), MAX(recorded_at) AS last_recorded FROM `%s` "+
		"GROUP BY run_id ORDER BY last_recorded DESC LIMIT ?", h.table)

	rows, err := h.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	var runs []domain.HistoryRun
	for rows.Next() {
		var r domain.HistoryRun
		if err := rows.Scan(&r.RunID, &r.Suites, &r.RecordedAt); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		runs = append(runs, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read runs: %w", err)
	}
	return runs, nil
}
