package loans

import (
	"encoding/json"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var digitsRe = regexp.MustCompile(`\d+`)

// ParseNumber coerces a raw value into a float. Numeric strings, percentages
// ("13.5%") and booleans are accepted; null, blank, NaN and free text are not.
func ParseNumber(v any) (float64, bool) {
	var f float64
	switch t := v.(type) {
	case nil:
		return 0, false
	case float64:
		f = t
	case float32:
		f = float64(t)
	case int:
		f = float64(t)
	case int32:
		f = float64(t)
	case int64:
		f = float64(t)
	case uint:
		f = float64(t)
	case uint32:
		f = float64(t)
	case uint64:
		f = float64(t)
	case bool:
		if t {
			return 1, true
		}
		return 0, true
	case json.Number:
		n, err := t.Float64()
		if err != nil {
			return 0, false
		}
		f = n
	case []byte:
		return parseNumericText(string(t))
	case string:
		return parseNumericText(t)
	default:
		return 0, false
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

func parseNumericText(s string) (float64, bool) {
	s = strings.TrimSpace(s)
	s = strings.TrimSpace(strings.TrimSuffix(s, "%"))
	if s == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// NormalizeNumericColumn returns one value per record; values that are
// missing or unparsable become 0.
func NormalizeNumericColumn(records []Record, field string) ([]float64, error) {
	if !HasField(records, field) {
		return nil, &MissingColumnError{Column: field}
	}
	out := make([]float64, len(records))
	for i, r := range records {
		if v, ok := r.Number(field); ok {
			out[i] = v
		}
	}
	return out, nil
}

// CoerceNumericColumn returns only the parsable values of a field.
func CoerceNumericColumn(records []Record, field string) ([]float64, error) {
	if !HasField(records, field) {
		return nil, &MissingColumnError{Column: field}
	}
	out := make([]float64, 0, len(records))
	for _, r := range records {
		if v, ok := r.Number(field); ok {
			out = append(out, v)
		}
	}
	if len(out) == 0 {
		return nil, &EmptyDatasetError{Column: field}
	}
	return out, nil
}

// IsNumericColumn reports whether every non-blank value of the field parses
// as a number and at least one does.
func IsNumericColumn(records []Record, field string) bool {
	seen := false
	for _, r := range records {
		if _, ok := r.Text(field); !ok {
			continue
		}
		if _, ok := r.Number(field); !ok {
			return false
		}
		seen = true
	}
	return seen
}

// NormalizeTermToMonths extracts the first integer of a term description.
// "60 months" → 60, "3 years" → 36. ok is false when there are no digits.
func NormalizeTermToMonths(raw string) (int, bool) {
	value := strings.ToLower(strings.TrimSpace(raw))
	if value == "" {
		return 0, false
	}
	m := digitsRe.FindString(value)
	if m == "" {
		return 0, false
	}
	n, err := strconv.Atoi(m)
	if err != nil {
		return 0, false
	}
	if strings.Contains(value, "year") {
		return n * 12, true
	}
	return n, true
}

// NormalizeEmploymentLength converts employment length text to years.
// "10+ years" → 10, "< 1 year" → 0.5, "5 years" → 5, nil → 0.
func NormalizeEmploymentLength(raw any) float64 {
	switch t := raw.(type) {
	case nil:
		return 0
	case string:
		return employmentYears(t)
	case []byte:
		return employmentYears(string(t))
	default:
		if f, ok := ParseNumber(t); ok {
			return f
		}
		return 0
	}
}

func employmentYears(value string) float64 {
	if strings.Contains(value, "10+") {
		return 10
	}
	if strings.Contains(value, "< 1") {
		return 0.5
	}
	m := digitsRe.FindString(value)
	if m == "" {
		return 0
	}
	f, err := strconv.ParseFloat(m, 64)
	if err != nil {
		return 0
	}
	return f
}

// credit line dates come in several export formats; month/day/year first.
var creditLineLayouts = []string{
	"1/2/2006",
	"Jan-2006",
	"2006-01-02",
	time.RFC3339,
	"2006-01-02 15:04:05",
}

// ParseCreditLineDate parses earliest_cr_line values.
func ParseCreditLineDate(raw any) (time.Time, bool) {
	if t, ok := raw.(time.Time); ok {
		return t, !t.IsZero()
	}
	var s string
	switch t := raw.(type) {
	case string:
		s = t
	case []byte:
		s = string(t)
	default:
		return time.Time{}, false
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range creditLineLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
