package source

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/bryanwahyu/loan-insights/internal/config"
	"github.com/bryanwahyu/loan-insights/internal/domain/loans"
)

// ValidIdentifier reports whether a table name is safe to splice into SQL.
func ValidIdentifier(name string) bool {
	return config.ValidateIdentifier(name) == nil
}

// SQLSource reads every row of a table through database/sql.
type SQLSource struct {
	db      *sql.DB
	driver  string
	Timeout time.Duration
}

// NewSQLSource wraps an open pool. driver selects identifier quoting:
// "mysql" uses backticks, anything else double quotes.
func NewSQLSource(db *sql.DB, driver string) *SQLSource {
	return &SQLSource{db: db, driver: driver}
}

func (s *SQLSource) FetchRecords(ctx context.Context, dataset string) ([]loans.Record, error) {
	if !ValidIdentifier(dataset) {
		return nil, fmt.Errorf("invalid dataset name %q", dataset)
	}
	if s.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.Timeout)
		defer cancel()
	}

	rows, err := s.db.QueryContext(ctx, "SELECT * FROM "+s.quote(dataset))
	if err != nil {
		return nil, fmt.Errorf("failed to execute query: %w", err)
	}
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("failed to get columns: %w", err)
	}

	var out []loans.Record
	for rows.Next() {
		values := make([]any, len(columns))
		ptrs := make([]any, len(columns))
		for i := range columns {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		rec := make(loans.Record, len(columns))
		for i, col := range columns {
			// drivers hand back text columns as []byte
			if b, ok := values[i].([]byte); ok {
				rec[col] = string(b)
				continue
			}
			rec[col] = values[i]
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}
	return out, nil
}

func (s *SQLSource) quote(ident string) string {
	if s.driver == "mysql" {
		return "`" + ident + "`"
	}
	return `"` + ident + `"`
}
