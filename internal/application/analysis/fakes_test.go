package analysis

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	domain "github.com/bryanwahyu/loan-insights/internal/domain/analysis"
	"github.com/bryanwahyu/loan-insights/internal/domain/loans"
)

type fakeSource struct {
	mu      sync.Mutex
	records []loans.Record
	calls   int
	failOn  int // 1-based call that fails, 0 never
}

func (f *fakeSource) FetchRecords(ctx context.Context, dataset string) ([]loans.Record, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.failOn > 0 && f.calls == f.failOn {
		return nil, errors.New("connection reset")
	}
	return f.records, nil
}

type fakeRenderer struct {
	charts []domain.ChartSpec
	err    error
}

func (f *fakeRenderer) Render(spec domain.ChartSpec) ([]byte, error) {
	f.charts = append(f.charts, spec)
	if f.err != nil {
		return nil, f.err
	}
	return []byte("\x89PNG-" + string(spec.Kind)), nil
}

type fakeSummarizer struct {
	mu    sync.Mutex
	stats []string
	err   error
}

func (f *fakeSummarizer) Summarize(ctx context.Context, statistics, promptTemplate string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.stats = append(f.stats, statistics)
	if f.err != nil {
		return "", f.err
	}
	first := strings.SplitN(statistics, "\n", 2)[0]
	return "  summary of " + first + "  ", nil
}

type fixedClock struct{ t time.Time }

func (c fixedClock) Now() time.Time { return c.t }

type fakeArchive struct {
	keys []string
	err  error
}

func (f *fakeArchive) UploadChart(ctx context.Context, key string, png []byte) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.keys = append(f.keys, key)
	return "http://minio.local/charts/" + key, nil
}

type fakeReportRepo struct {
	mu    sync.Mutex
	saved []*domain.ReportRecord
}

func (f *fakeReportRepo) Save(ctx context.Context, r *domain.ReportRecord) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.saved = append(f.saved, r)
	return nil
}

func (f *fakeReportRepo) ListByBuild(ctx context.Context, buildID string) ([]*domain.ReportRecord, error) {
	return f.saved, nil
}

type fakeFailureRepo struct {
	saved []*domain.BuildFailure
}

func (f *fakeFailureRepo) Save(ctx context.Context, b *domain.BuildFailure) error {
	f.saved = append(f.saved, b)
	return nil
}

func (f *fakeFailureRepo) ListByBuild(ctx context.Context, buildID string, limit int) ([]*domain.BuildFailure, error) {
	return f.saved, nil
}

var testTime = time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC)

func loanRecords() []loans.Record {
	return []loans.Record{
		{"loan_amnt": 5000.0, "grade": "A", "sub_grade": "A1", "emp_length": "10+ years", "term": "36 months", "addr_state": "CA", "is_bad": 1, "earliest_cr_line": "01/01/2001", "annual_inc": "40000"},
		{"loan_amnt": "7500", "grade": "B", "sub_grade": "B2", "emp_length": "< 1 year", "term": "60 months", "addr_state": "CA", "is_bad": 0, "earliest_cr_line": "03/15/2001", "annual_inc": "85000"},
		{"loan_amnt": 12000, "grade": "A", "sub_grade": "A3", "emp_length": "3 years", "term": "36 months", "addr_state": "NY", "is_bad": 1, "earliest_cr_line": "06/01/1999", "annual_inc": "30000"},
		{"loan_amnt": 20000, "grade": "C", "sub_grade": "C1", "emp_length": "5 years", "term": "60 months", "addr_state": "TX", "is_bad": 0, "earliest_cr_line": "11/20/2005", "annual_inc": "120000"},
		{"loan_amnt": "n/a", "grade": "B", "sub_grade": "B1", "emp_length": nil, "term": "36 months", "addr_state": "NY", "is_bad": 0, "earliest_cr_line": "bad date", "annual_inc": "56000"},
	}
}

func newTestAnalyzer(src *fakeSource, sum *fakeSummarizer) (*Analyzer, *fakeRenderer) {
	r := &fakeRenderer{}
	return &Analyzer{
		Source:     src,
		Renderer:   r,
		Summarizer: sum,
		Dataset:    "loans",
		Clock:      fixedClock{t: testTime},
	}, r
}
