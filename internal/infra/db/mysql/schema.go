package mysql

import (
	"context"
	"database/sql"
	"fmt"
)

var schema = []string{
	`CREATE TABLE IF NOT EXISTS loan_reports (
  id          CHAR(36)     NOT NULL PRIMARY KEY,
  build_id    CHAR(36)     NOT NULL,
  name        VARCHAR(64)  NOT NULL,
  summary     TEXT         NOT NULL,
  error       TEXT         NOT NULL,
  image_url   VARCHAR(512) NOT NULL,
  created_at  DATETIME(6)  NOT NULL,
  INDEX idx_loan_reports_build (build_id, created_at)
)`,
	`CREATE TABLE IF NOT EXISTS analysis_build_failures (
  id          BIGINT       NOT NULL AUTO_INCREMENT PRIMARY KEY,
  build_id    CHAR(36)     NOT NULL,
  name        VARCHAR(64)  NOT NULL,
  message     TEXT         NOT NULL,
  created_at  DATETIME(6)  NOT NULL,
  INDEX idx_build_failures_build (build_id, created_at)
)`,
}

// Migrate creates the audit tables when they do not exist.
func Migrate(ctx context.Context, db *sql.DB) error {
	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("mysql migrate: %w", err)
		}
	}
	return nil
}
