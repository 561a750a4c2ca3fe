package analysis

import (
	"math"
	"sort"
	"strconv"

	"gonum.org/v1/gonum/stat"

	"github.com/bryanwahyu/loan-insights/internal/domain/loans"
)

// TopN is the size of the highest/lowest extracts in state and risk reports.
const TopN = 5

// DescribeLoanAmounts coerces loan_amnt and summarizes the parsable values.
// The returned slice holds those values for charting.
func DescribeLoanAmounts(records []loans.Record) (Descriptive, []float64, error) {
	values, err := loans.CoerceNumericColumn(records, loans.FieldLoanAmount)
	if err != nil {
		return Descriptive{}, nil, err
	}
	return Describe(values), values, nil
}

// CountGradeDefaults counts defaulted loans per grade, highest first.
// Grades without a default do not appear.
func CountGradeDefaults(records []loans.Record) (Series, error) {
	if err := loans.RequireFields(records, loans.FieldGrade, loans.FieldIsBad); err != nil {
		return nil, err
	}
	counts := make(map[string]float64)
	for _, r := range records {
		if !loans.IsDefault(r) {
			continue
		}
		g, ok := r.Text(loans.FieldGrade)
		if !ok {
			continue
		}
		counts[g]++
	}
	s := seriesFromMap(counts)
	s.SortDescending()
	return s, nil
}

// StateDefaultRates computes defaults / loans per state, highest first.
// A state with no loans has rate 0.
func StateDefaultRates(records []loans.Record) (Series, error) {
	if err := loans.RequireFields(records, loans.FieldState, loans.FieldIsBad); err != nil {
		return nil, err
	}
	totals := make(map[string]int)
	defaults := make(map[string]int)
	for _, r := range records {
		st, ok := r.Text(loans.FieldState)
		if !ok {
			continue
		}
		totals[st]++
		if loans.IsDefault(r) {
			defaults[st]++
		}
	}
	rates := make(map[string]float64, len(totals))
	for st, total := range totals {
		rates[st] = DefaultRate(defaults[st], total)
	}
	s := seriesFromMap(rates)
	s.SortDescending()
	return s, nil
}

// DefaultRate is defaults/total, 0 when total is 0.
func DefaultRate(defaults, total int) float64 {
	if total <= 0 {
		return 0
	}
	return float64(defaults) / float64(total)
}

// categorical fields are cleaned in the source data but never correlated.
var categoricalFields = map[string]bool{
	loans.FieldGrade:    true,
	loans.FieldSubGrade: true,
	loans.FieldIsBad:    true,
}

// DefaultCorrelations returns the Pearson correlation of every numeric
// attribute with is_bad, highest first. Non-finite coefficients are 0.
func DefaultCorrelations(records []loans.Record) (Series, error) {
	if err := loans.RequireFields(records, loans.FieldIsBad); err != nil {
		return nil, err
	}
	isBad, err := loans.NormalizeNumericColumn(records, loans.FieldIsBad)
	if err != nil {
		return nil, err
	}
	for i, v := range isBad {
		isBad[i] = math.Trunc(v)
	}

	s := Series{}
	for _, col := range loans.Columns(records) {
		if categoricalFields[col] {
			continue
		}
		x, ok := numericFeature(records, col)
		if !ok {
			continue
		}
		s = append(s, Point{Key: col, Value: finiteOrZero(stat.Correlation(x, isBad, nil))})
	}
	s.SortDescending()
	return s, nil
}

// numericFeature returns the normalized values of a column usable for
// correlation, or false for non-numeric columns.
func numericFeature(records []loans.Record, col string) ([]float64, bool) {
	switch col {
	case loans.FieldTerm:
		x := make([]float64, len(records))
		for i, r := range records {
			text, _ := r.Text(col)
			if months, ok := loans.NormalizeTermToMonths(text); ok {
				x[i] = float64(months)
			}
		}
		return x, true
	case loans.FieldEmpLength:
		x := make([]float64, len(records))
		for i, r := range records {
			x[i] = loans.NormalizeEmploymentLength(r.Value(col))
		}
		return x, true
	}
	if !loans.IsNumericColumn(records, col) {
		return nil, false
	}
	x, err := loans.NormalizeNumericColumn(records, col)
	return x, err == nil
}

// MostCorrelated returns the n highest coefficients.
func MostCorrelated(corr Series, n int) Series {
	s := corr.Clone()
	s.SortDescending()
	return s.Head(n)
}

// LeastCorrelated returns the n lowest coefficients, lowest first.
func LeastCorrelated(corr Series, n int) Series {
	s := corr.Clone()
	s.SortAscending()
	return s.Head(n)
}

// YearlyDefaults counts defaulted loans per credit-line year, oldest first.
// Rows whose date does not parse are ignored.
func YearlyDefaults(records []loans.Record) (Series, error) {
	if err := loans.RequireFields(records, loans.FieldEarliestCrLine, loans.FieldIsBad); err != nil {
		return nil, err
	}
	counts := make(map[int]float64)
	for _, r := range records {
		t, ok := loans.ParseCreditLineDate(r.Value(loans.FieldEarliestCrLine))
		if !ok || !loans.IsDefault(r) {
			continue
		}
		counts[t.Year()]++
	}
	years := make([]int, 0, len(counts))
	for y := range counts {
		years = append(years, y)
	}
	sort.Ints(years)
	s := make(Series, 0, len(years))
	for _, y := range years {
		s = append(s, Point{Key: strconv.Itoa(y), Value: counts[y]})
	}
	return s, nil
}

func seriesFromMap(m map[string]float64) Series {
	s := make(Series, 0, len(m))
	for k, v := range m {
		s = append(s, Point{Key: k, Value: v})
	}
	return s
}

func finiteOrZero(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
