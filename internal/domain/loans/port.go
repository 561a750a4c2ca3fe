package loans

import "context"

// Source port (interface untuk data store)
type Source interface {
	// FetchRecords returns every row of the dataset, no pagination.
	FetchRecords(ctx context.Context, dataset string) ([]Record, error)
}
