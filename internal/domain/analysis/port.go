package analysis

import "context"

// ReportRepository persists generated reports for auditing.
type ReportRepository interface {
	Save(ctx context.Context, r *ReportRecord) error
	ListByBuild(ctx context.Context, buildID string) ([]*ReportRecord, error)
}

// FailureRepository persists build failures.
type FailureRepository interface {
	Save(ctx context.Context, f *BuildFailure) error
	ListByBuild(ctx context.Context, buildID string, limit int) ([]*BuildFailure, error)
}

// ChartArchive stores rendered charts and returns their URL.
type ChartArchive interface {
	UploadChart(ctx context.Context, key string, png []byte) (string, error)
}
