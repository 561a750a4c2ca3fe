package sqlite

import (
	"context"
	"database/sql"
	"time"

	domain "github.com/bryanwahyu/loan-insights/internal/domain/analysis"
)

type FailureRepository struct {
	db *sql.DB
}

func NewFailureRepository(db *sql.DB) *FailureRepository { return &FailureRepository{db: db} }

func (r *FailureRepository) Save(ctx context.Context, f *domain.BuildFailure) error {
	const q = `
INSERT INTO analysis_build_failures
  (build_id, name, message, created_at)
VALUES (?,?,?,?)
`
	created := f.CreatedAt
	if created.IsZero() {
		created = time.Now().UTC()
	}
	res, err := r.db.ExecContext(ctx, q, f.BuildID, string(f.Name), f.Message, created)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	f.ID = id
	return nil
}

func (r *FailureRepository) ListByBuild(ctx context.Context, buildID string, limit int) ([]*domain.BuildFailure, error) {
	if limit <= 0 {
		limit = 20
	}
	const q = `
SELECT id, build_id, name, message, created_at
FROM analysis_build_failures
WHERE build_id = ?
ORDER BY created_at DESC, id DESC
LIMIT ?;`
	rows, err := r.db.QueryContext(ctx, q, buildID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []*domain.BuildFailure
	for rows.Next() {
		var f domain.BuildFailure
		if err := rows.Scan(&f.ID, &f.BuildID, &f.Name, &f.Message, &f.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, &f)
	}
	return out, rows.Err()
}
