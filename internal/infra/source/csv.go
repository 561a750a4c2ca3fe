package source

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/bryanwahyu/loan-insights/internal/domain/loans"
)

// CSVSource reads records from <Dir>/<dataset>.csv. The first line is the
// header; blank cells become nil.
type CSVSource struct {
	Dir string
}

func NewCSVSource(dir string) *CSVSource {
	return &CSVSource{Dir: dir}
}

func (s *CSVSource) FetchRecords(ctx context.Context, dataset string) ([]loans.Record, error) {
	if !ValidIdentifier(dataset) {
		return nil, fmt.Errorf("invalid dataset name %q", dataset)
	}
	f, err := os.Open(filepath.Join(s.Dir, dataset+".csv"))
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadCSV(ctx, f)
}

// ReadCSV decodes a CSV stream with a header row.
func ReadCSV(ctx context.Context, r io.Reader) ([]loans.Record, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read csv header: %w", err)
	}
	for i, h := range header {
		header[i] = strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))
	}

	var out []loans.Record
	for line := 2; ; line++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			return out, nil
		}
		if err != nil {
			return nil, fmt.Errorf("read csv line %d: %w", line, err)
		}
		rec := make(loans.Record, len(header))
		for i, col := range header {
			if col == "" {
				continue
			}
			if i >= len(row) || strings.TrimSpace(row[i]) == "" {
				rec[col] = nil
				continue
			}
			rec[col] = row[i]
		}
		out = append(out, rec)
	}
}
