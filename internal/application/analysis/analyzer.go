package analysis

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/bryanwahyu/loan-insights/internal/application"
	domai "github.com/bryanwahyu/loan-insights/internal/domain/ai"
	domain "github.com/bryanwahyu/loan-insights/internal/domain/analysis"
	"github.com/bryanwahyu/loan-insights/internal/domain/loans"
)

const (
	histogramBins   = 50
	riskChartFactor = 10
)

// Analyzer runs the report producers against one dataset.
// Each producer fetches the full dataset, so producers are independent.
type Analyzer struct {
	Source     loans.Source
	Renderer   domain.ChartRenderer
	Summarizer domai.Summarizer
	Dataset    string
	Clock      application.Clock
	Logger     *zap.Logger
}

// Producer computes one base report.
type Producer func(ctx context.Context) (domain.Report, error)

// Producers returns the base producers keyed by report name.
func (a *Analyzer) Producers() map[domain.Name]Producer {
	return map[domain.Name]Producer{
		domain.ReportLoanDistribution: a.LoanDistribution,
		domain.ReportGradeDefaults:    a.GradeDefaults,
		domain.ReportStateDefaults:    a.StateDefaults,
		domain.ReportRiskFactors:      a.RiskFactors,
		domain.ReportTemporalTrends:   a.TemporalTrends,
	}
}

// LoanDistribution → histogram + descriptive statistics of loan_amnt
func (a *Analyzer) LoanDistribution(ctx context.Context) (domain.Report, error) {
	records, err := a.fetch(ctx)
	if err != nil {
		return domain.Report{}, err
	}
	stats, values, err := domain.DescribeLoanAmounts(records)
	if err != nil {
		return domain.Report{}, err
	}
	png, err := a.render(domain.ChartSpec{
		Kind:   domain.ChartHistogram,
		Title:  "Distribution of Loan Amounts",
		XLabel: "Loan Amount",
		YLabel: "Frequency",
		Values: values,
		Bins:   histogramBins,
		Color:  "skyblue",
	})
	if err != nil {
		return domain.Report{}, err
	}
	rep := a.newReport(domain.ReportLoanDistribution, png)
	rep.Statistics = &stats
	rep.Summary = a.summarize(ctx, stats.String(), loanDistributionPrompt)
	return rep, nil
}

// GradeDefaults → default count per grade
func (a *Analyzer) GradeDefaults(ctx context.Context) (domain.Report, error) {
	records, err := a.fetch(ctx)
	if err != nil {
		return domain.Report{}, err
	}
	table, err := domain.CountGradeDefaults(records)
	if err != nil {
		return domain.Report{}, err
	}
	png, err := a.render(domain.ChartSpec{
		Kind:   domain.ChartBar,
		Title:  "Loan Grades Associated with Defaults",
		XLabel: "Grade",
		YLabel: "Number of Defaults",
		Labels: table.Keys(),
		Values: table.Values(),
		Color:  "salmon",
	})
	if err != nil {
		return domain.Report{}, err
	}
	rep := a.newReport(domain.ReportGradeDefaults, png)
	rep.Table = table
	rep.Summary = a.summarize(ctx, table.String(), gradeDefaultsPrompt)
	return rep, nil
}

// StateDefaults → default rate per state, with the top and bottom five
func (a *Analyzer) StateDefaults(ctx context.Context) (domain.Report, error) {
	records, err := a.fetch(ctx)
	if err != nil {
		return domain.Report{}, err
	}
	rates, err := domain.StateDefaultRates(records)
	if err != nil {
		return domain.Report{}, err
	}
	png, err := a.render(domain.ChartSpec{
		Kind:   domain.ChartBar,
		Title:  "State-Wise Default Rates",
		XLabel: "State",
		YLabel: "Default Rate",
		Labels: rates.Keys(),
		Values: rates.Values(),
		Color:  "orange",
	})
	if err != nil {
		return domain.Report{}, err
	}
	rep := a.newReport(domain.ReportStateDefaults, png)
	rep.DefaultRates = rates
	rep.HighestDefaultRate = rates.Head(domain.TopN)
	rep.LowestDefaultRate = rates.Tail(domain.TopN)
	rep.Summary = a.summarize(ctx, rates.String(), stateDefaultsPrompt)
	return rep, nil
}

// RiskFactors → correlation of numeric attributes with is_bad
func (a *Analyzer) RiskFactors(ctx context.Context) (domain.Report, error) {
	records, err := a.fetch(ctx)
	if err != nil {
		return domain.Report{}, err
	}
	corr, err := domain.DefaultCorrelations(records)
	if err != nil {
		return domain.Report{}, err
	}
	top := corr.Head(riskChartFactor)
	png, err := a.render(domain.ChartSpec{
		Kind:   domain.ChartBar,
		Title:  "Top 10 Factors Correlated with Defaults",
		XLabel: "Factors",
		YLabel: "Correlation Coefficient",
		Labels: top.Keys(),
		Values: top.Values(),
		Color:  "blue",
	})
	if err != nil {
		return domain.Report{}, err
	}
	most := domain.MostCorrelated(corr, domain.TopN)
	least := domain.LeastCorrelated(corr, domain.TopN)

	rep := a.newReport(domain.ReportRiskFactors, png)
	rep.CorrelationWithDefaults = corr
	rep.MostCorrelated = most
	rep.LeastCorrelated = least
	rep.Summary = a.summarize(ctx, riskFactorStatistics(most, least), riskFactorsPrompt)
	return rep, nil
}

// TemporalTrends → defaults per credit-line year
func (a *Analyzer) TemporalTrends(ctx context.Context) (domain.Report, error) {
	records, err := a.fetch(ctx)
	if err != nil {
		return domain.Report{}, err
	}
	yearly, err := domain.YearlyDefaults(records)
	if err != nil {
		return domain.Report{}, err
	}
	png, err := a.render(domain.ChartSpec{
		Kind:   domain.ChartLine,
		Title:  "Yearly Default Trends",
		XLabel: "Year",
		YLabel: "Number of Defaults",
		Labels: yearly.Keys(),
		Values: yearly.Values(),
	})
	if err != nil {
		return domain.Report{}, err
	}
	rep := a.newReport(domain.ReportTemporalTrends, png)
	rep.YearlyDefaults = yearly
	rep.Summary = a.summarize(ctx, yearly.String(), temporalTrendsPrompt)
	return rep, nil
}

func riskFactorStatistics(most, least domain.Series) string {
	return "Most Correlated Factors:\n" + most.Bullets() +
		"\n\nLeast Correlated Factors:\n" + least.Bullets()
}

func (a *Analyzer) fetch(ctx context.Context) ([]loans.Record, error) {
	if a.Source == nil {
		return nil, fmt.Errorf("analysis: no data source configured")
	}
	records, err := a.Source.FetchRecords(ctx, a.Dataset)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", a.Dataset, err)
	}
	return records, nil
}

func (a *Analyzer) render(spec domain.ChartSpec) ([]byte, error) {
	if a.Renderer == nil {
		return nil, fmt.Errorf("analysis: no chart renderer configured")
	}
	png, err := a.Renderer.Render(spec)
	if err != nil {
		return nil, fmt.Errorf("render %q: %w", spec.Title, err)
	}
	return png, nil
}

// summarize never fails: errors are embedded in the summary text.
func (a *Analyzer) summarize(ctx context.Context, statistics, promptTemplate string) string {
	if a.Summarizer == nil {
		return "Error generating summary: " + domai.ErrMissingCredential.Error()
	}
	summary, err := a.Summarizer.Summarize(ctx, statistics, promptTemplate)
	if err != nil {
		a.logger().Warn("summary generation failed", zap.Error(err))
		return "Error generating summary: " + err.Error()
	}
	return strings.TrimSpace(summary)
}

func (a *Analyzer) newReport(name domain.Name, png []byte) domain.Report {
	return domain.Report{
		Name:        name,
		Image:       domain.DataURI(png),
		Chart:       png,
		GeneratedAt: a.now(),
	}
}

func (a *Analyzer) now() time.Time {
	if a.Clock == nil {
		return time.Now().UTC()
	}
	return a.Clock.Now().UTC()
}

func (a *Analyzer) logger() *zap.Logger {
	if a.Logger == nil {
		return zap.NewNop()
	}
	return a.Logger
}
