package mysql

import (
	"context"
	"database/sql"
	"time"

	domain "github.com/bryanwahyu/loan-insights/internal/domain/analysis"
)

type ReportRepository struct {
	db *sql.DB
}

func NewReportRepository(db *sql.DB) *ReportRepository {
	return &ReportRepository{db: db}
}

// Save inserts a generated report
func (r *ReportRepository) Save(ctx context.Context, rec *domain.ReportRecord) error {
	const q = `
INSERT INTO loan_reports
  (id, build_id, name, summary, error, image_url, created_at)
VALUES (?,?,?,?,?,?,?)
ON DUPLICATE KEY UPDATE
  summary=VALUES(summary), error=VALUES(error), image_url=VALUES(image_url);
`
	createdAt := rec.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now().UTC()
	}
	_, err := r.db.ExecContext(ctx, q,
		rec.ID, rec.BuildID, stringOrDash(string(rec.Name)),
		rec.Summary, rec.Error, rec.ImageURL, createdAt,
	)
	return err
}

// ListByBuild returns the reports of one build in insertion order
func (r *ReportRepository) ListByBuild(ctx context.Context, buildID string) ([]*domain.ReportRecord, error) {
	const q = `
SELECT id, build_id, name, summary, error, image_url, created_at
FROM loan_reports
WHERE build_id=?
ORDER BY created_at ASC, id ASC;
`
	rows, err := r.db.QueryContext(ctx, q, buildID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*domain.ReportRecord
	for rows.Next() {
		var rec domain.ReportRecord
		if err := rows.Scan(&rec.ID, &rec.BuildID, &rec.Name, &rec.Summary, &rec.Error, &rec.ImageURL, &rec.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, &rec)
	}
	return out, rows.Err()
}
