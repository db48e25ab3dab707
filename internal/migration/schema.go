package migration

import (
	"context"
	"database/sql"
	"fmt"
)

var _ Migrator = (*HistoryMigrator)(nil)

// HistoryMigrator creates the suite duration table in MySQL
type HistoryMigrator struct {
	db    *sql.DB
	table string
}

// NewHistoryMigrator creates a new HistoryMigrator
func NewHistoryMigrator(db *sql.DB, table string) (*HistoryMigrator, error) {
	if !ValidTableName(table) {
		return nil, fmt.Errorf("invalid table name: %q", table)
	}
	return &HistoryMigrator{db: db, table: table}, nil
}

// Run creates the table when it does not exist yet and reports whether it did.
func (hm *HistoryMigrator) Run(ctx context.Context) (bool, error) {
	exists, err := hm.tableExists(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to check table %s: %w", hm.table, err)
	}
	if exists {
		return false, nil
	}

	query := fmt.Sprintf("CREATE TABLE IF NOT EXISTS `%s` ("+
		"id BIGINT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY, "+
		"run_id CHAR(36) NOT NULL, "+
		"suite_name VARCHAR(512) NOT NULL, "+
		"duration_seconds DOUBLE NOT NULL, "+
		"recorded_at DATETIME NOT NULL, "+
		"INDEX idx_run (run_id, recorded_at), "+
		"INDEX idx_suite (suite_name(191))"+
		") ENGINE=InnoDB DEFAULT CHARSET=utf8mb4", hm.table)
	if _, err := hm.db.ExecContext(ctx, query); err != nil {
		return false, fmt.Errorf("failed to create table %s: %w", hm.table, err)
	}
	return true, nil
}

func (hm *HistoryMigrator) tableExists(ctx context.Context) (bool, error) {
	var exists bool
	query := "SELECT EXISTS(SELECT TABLE_NAME FROM INFORMATION_SCHEMA.TABLES WHERE TABLE_SCHEMA = DATABASE() AND TABLE_NAME = ?)"
	err := hm.db.QueryRowContext(ctx, query, hm.table).Scan(&exists)
	return exists, err
}
