package loans

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeTermToMonths(t *testing.T) {
	cases := []struct {
		in     string
		want   int
		wantOK bool
	}{
		{"3 years", 36, true},
		{"36 months", 36, true},
		{" 60 Months", 60, true},
		{"5 Years", 60, true},
		{"1 year", 12, true},
		{"n/a", 0, false},
		{"", 0, false},
		{"   ", 0, false},
	}
	for _, c := range cases {
		got, ok := NormalizeTermToMonths(c.in)
		assert.Equal(t, c.wantOK, ok, c.in)
		assert.Equal(t, c.want, got, c.in)
	}
}

func TestNormalizeEmploymentLength(t *testing.T) {
	assert.Equal(t, 10.0, NormalizeEmploymentLength("10+ years"))
	assert.Equal(t, 0.5, NormalizeEmploymentLength("< 1 year"))
	assert.Equal(t, 5.0, NormalizeEmploymentLength("5 years"))
	assert.Equal(t, 1.0, NormalizeEmploymentLength("1 year"))
	assert.Equal(t, 0.0, NormalizeEmploymentLength(nil))
	assert.Equal(t, 0.0, NormalizeEmploymentLength("n/a"))
	assert.Equal(t, 0.0, NormalizeEmploymentLength(""))
	assert.Equal(t, 3.0, NormalizeEmploymentLength(3.0))
	assert.Equal(t, 0.0, NormalizeEmploymentLength(struct{}{}))
}

func TestParseNumber(t *testing.T) {
	cases := []struct {
		in     any
		want   float64
		wantOK bool
	}{
		{1500.0, 1500, true},
		{int64(7), 7, true},
		{"2500", 2500, true},
		{" 13.5% ", 13.5, true},
		{[]byte("42"), 42, true},
		{true, 1, true},
		{false, 0, true},
		{"abc", 0, false},
		{"", 0, false},
		{nil, 0, false},
		{struct{}{}, 0, false},
		{"inf", 0, false},
		{"-Infinity", 0, false},
		{"NaN", 0, false},
		{math.Inf(1), 0, false},
		{math.NaN(), 0, false},
	}
	for _, c := range cases {
		got, ok := ParseNumber(c.in)
		assert.Equal(t, c.wantOK, ok, "%v", c.in)
		assert.Equal(t, c.want, got, "%v", c.in)
	}
}

func TestNormalizeNumericColumn(t *testing.T) {
	records := []Record{
		{"loan_amnt": "1000"},
		{"loan_amnt": "oops"},
		{"loan_amnt": nil},
		{"other": 1.0},
		{"loan_amnt": 250.5},
	}
	got, err := NormalizeNumericColumn(records, "loan_amnt")
	require.NoError(t, err)
	assert.Equal(t, []float64{1000, 0, 0, 0, 250.5}, got)

	_, err = NormalizeNumericColumn(records, "missing")
	var mce *MissingColumnError
	require.True(t, errors.As(err, &mce))
	assert.Equal(t, "missing", mce.Column)

	_, err = NormalizeNumericColumn(nil, "loan_amnt")
	assert.True(t, errors.As(err, &mce))
}

func TestCoerceNumericColumn(t *testing.T) {
	got, err := CoerceNumericColumn([]Record{
		{"loan_amnt": "1000"},
		{"loan_amnt": "x"},
		{"loan_amnt": 2000.0},
	}, "loan_amnt")
	require.NoError(t, err)
	assert.Equal(t, []float64{1000, 2000}, got)

	_, err = CoerceNumericColumn([]Record{{"loan_amnt": "x"}, {"loan_amnt": nil}}, "loan_amnt")
	var ede *EmptyDatasetError
	assert.True(t, errors.As(err, &ede))

	_, err = CoerceNumericColumn([]Record{}, "loan_amnt")
	var mce *MissingColumnError
	assert.True(t, errors.As(err, &mce))
}

func TestIsNumericColumn(t *testing.T) {
	records := []Record{
		{"a": "1", "b": "A", "c": nil, "d": "12%"},
		{"a": 2.0, "b": "B", "c": "", "d": "7.5%"},
	}
	assert.True(t, IsNumericColumn(records, "a"))
	assert.False(t, IsNumericColumn(records, "b"))
	assert.False(t, IsNumericColumn(records, "c"))
	assert.True(t, IsNumericColumn(records, "d"))
	assert.False(t, IsNumericColumn(records, "zzz"))
}

func TestParseCreditLineDate(t *testing.T) {
	for in, year := range map[string]int{
		"01/15/1998": 1998,
		"3/1/2004":   2004,
		"Jan-1985":   1985,
		"2001-07-30": 2001,
	} {
		got, ok := ParseCreditLineDate(in)
		require.True(t, ok, in)
		assert.Equal(t, year, got.Year(), in)
	}
	_, ok := ParseCreditLineDate("not a date")
	assert.False(t, ok)
	_, ok = ParseCreditLineDate(nil)
	assert.False(t, ok)
}

func TestParseCreditLineDateRejectsTwoDigitYears(t *testing.T) {
	for _, in := range []string{"Jan-65", "Mar-98", "1/2/65"} {
		_, ok := ParseCreditLineDate(in)
		assert.False(t, ok, in)
	}
}

func TestCoerceNumericColumnSkipsInfinity(t *testing.T) {
	got, err := CoerceNumericColumn([]Record{
		{"loan_amnt": "inf"},
		{"loan_amnt": "5000"},
	}, "loan_amnt")
	require.NoError(t, err)
	assert.Equal(t, []float64{5000}, got)
}

func TestRecordHelpers(t *testing.T) {
	r := Record{"grade": "  B ", "is_bad": "1", "x": nil}
	s, ok := r.Text("grade")
	assert.True(t, ok)
	assert.Equal(t, "B", s)
	_, ok = r.Text("x")
	assert.False(t, ok)
	assert.True(t, r.Has("x"))
	assert.True(t, IsDefault(r))
	assert.False(t, IsDefault(Record{"is_bad": 0.0}))

	err := RequireFields([]Record{r}, "grade", "addr_state")
	var mce *MissingColumnError
	require.True(t, errors.As(err, &mce))
	assert.Equal(t, "addr_state", mce.Column)
	assert.Equal(t, []string{"grade", "is_bad", "x"}, Columns([]Record{r}))
}
