package analysis

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	domain "github.com/bryanwahyu/loan-insights/internal/domain/analysis"
)

var findingLabels = map[domain.Name]string{
	domain.ReportLoanDistribution: "Loan Distribution Summary",
	domain.ReportGradeDefaults:    "Grade Defaults Summary",
	domain.ReportStateDefaults:    "State Defaults Summary",
	domain.ReportRiskFactors:      "Risk Factors Summary",
	domain.ReportTemporalTrends:   "Temporal Trends Summary",
}

// FinalReport combines the five base reports into one summary and a chart
// of the most correlated risk factors. It never returns an error; failures
// are reported in the Error field.
func (a *Analyzer) FinalReport(ctx context.Context, base map[domain.Name]domain.Report) domain.Report {
	rep, err := a.finalReport(ctx, base)
	if err != nil {
		a.logger().Error("final report failed", zap.Error(err))
		return domain.Report{
			Name:        domain.ReportFinal,
			Error:       "Failed to generate report: " + err.Error(),
			GeneratedAt: a.now(),
		}
	}
	return rep
}

func (a *Analyzer) finalReport(ctx context.Context, base map[domain.Name]domain.Report) (domain.Report, error) {
	var findings strings.Builder
	for _, name := range domain.BaseReports {
		r, ok := base[name]
		if !ok {
			return domain.Report{}, fmt.Errorf("missing %s report", name)
		}
		fmt.Fprintf(&findings, "%s: %s\n\n", findingLabels[name], r.Summary)
	}

	most := base[domain.ReportRiskFactors].MostCorrelated
	png, err := a.render(domain.ChartSpec{
		Kind:   domain.ChartHorizontalBar,
		Title:  "Top Risk Factors Associated with Loan Defaults",
		XLabel: "Correlation with Defaults",
		YLabel: "Risk Factor",
		Labels: most.Keys(),
		Values: most.Values(),
		Color:  "skyblue",
	})
	if err != nil {
		return domain.Report{}, err
	}

	rep := a.newReport(domain.ReportFinal, png)
	rep.Summary = a.summarize(ctx, findings.String(), finalReportPrompt)
	return rep, nil
}
