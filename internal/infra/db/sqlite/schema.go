package sqlite

import (
	"context"
	"database/sql"
	"fmt"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS loan_reports (
		id          TEXT PRIMARY KEY,
		build_id    TEXT NOT NULL,
		name        TEXT NOT NULL,
		summary     TEXT NOT NULL,
		error       TEXT NOT NULL,
		image_url   TEXT NOT NULL,
		created_at  DATETIME NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_loan_reports_build ON loan_reports (build_id, created_at)`,
	`CREATE TABLE IF NOT EXISTS analysis_build_failures (
		id          INTEGER PRIMARY KEY AUTOINCREMENT,
		build_id    TEXT NOT NULL,
		name        TEXT NOT NULL,
		message     TEXT NOT NULL,
		created_at  DATETIME NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_build_failures_build ON analysis_build_failures (build_id, created_at)`,
}

// Migrate creates the audit tables when they do not exist.
func Migrate(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("sqlite migrate: %w", err)
		}
	}
	return nil
}
