package analysis

import "time"

// Name identifies one cached report.
type Name string

const (
	ReportLoanDistribution Name = "loan_distribution"
	ReportGradeDefaults    Name = "grade_defaults"
	ReportStateDefaults    Name = "state_defaults"
	ReportRiskFactors      Name = "risk_factors"
	ReportTemporalTrends   Name = "temporal_trends"
	ReportFinal            Name = "final_report"
)

// BaseReports lists the independent producers in build order.
var BaseReports = []Name{
	ReportLoanDistribution,
	ReportGradeDefaults,
	ReportStateDefaults,
	ReportRiskFactors,
	ReportTemporalTrends,
}

// AllReports is BaseReports followed by the aggregate report.
func AllReports() []Name {
	out := make([]Name, 0, len(BaseReports)+1)
	out = append(out, BaseReports...)
	return append(out, ReportFinal)
}

// State of the analysis cache.
type State string

const (
	StateEmpty           State = "empty"
	StateBuilding        State = "building"
	StateReady           State = "ready"
	StatePartiallyFailed State = "partially_failed"
)

// Report is one computed analysis artifact: chart, summary and the
// structured data behind them. Only the fields relevant to Name are set.
type Report struct {
	Name     Name   `json:"name"`
	Image    string `json:"image,omitempty"` // data:image/png;base64,...
	ImageURL string `json:"image_url,omitempty"`
	Summary  string `json:"summary,omitempty"`
	Error    string `json:"error,omitempty"`

	Statistics              *Descriptive `json:"statistics,omitempty"`
	Table                   Series       `json:"table,omitzero"`
	DefaultRates            Series       `json:"default_rates,omitzero"`
	HighestDefaultRate      Series       `json:"highest_default_rate,omitzero"`
	LowestDefaultRate       Series       `json:"lowest_default_rate,omitzero"`
	CorrelationWithDefaults Series       `json:"correlation_with_defaults,omitzero"`
	MostCorrelated          Series       `json:"most_correlated,omitzero"`
	LeastCorrelated         Series       `json:"least_correlated,omitzero"`
	YearlyDefaults          Series       `json:"yearly_defaults,omitzero"`

	GeneratedAt time.Time `json:"generated_at"`

	// Chart is the raw PNG behind Image.
	Chart []byte `json:"-"`
}

// Clone returns a deep copy so callers cannot mutate cached data.
func (r Report) Clone() Report {
	out := r
	if r.Statistics != nil {
		s := *r.Statistics
		out.Statistics = &s
	}
	out.Table = r.Table.Clone()
	out.DefaultRates = r.DefaultRates.Clone()
	out.HighestDefaultRate = r.HighestDefaultRate.Clone()
	out.LowestDefaultRate = r.LowestDefaultRate.Clone()
	out.CorrelationWithDefaults = r.CorrelationWithDefaults.Clone()
	out.MostCorrelated = r.MostCorrelated.Clone()
	out.LeastCorrelated = r.LeastCorrelated.Clone()
	out.YearlyDefaults = r.YearlyDefaults.Clone()
	if r.Chart != nil {
		out.Chart = append([]byte(nil), r.Chart...)
	}
	return out
}
