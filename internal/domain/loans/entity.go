package loans

import (
	"fmt"
	"sort"
	"strings"
)

// Field names used by the fixed analyses.
const (
	FieldLoanAmount     = "loan_amnt"
	FieldGrade          = "grade"
	FieldSubGrade       = "sub_grade"
	FieldEmpLength      = "emp_length"
	FieldTerm           = "term"
	FieldState          = "addr_state"
	FieldIsBad          = "is_bad"
	FieldEarliestCrLine = "earliest_cr_line"
)

// Record is one raw loan row as returned by the data store.
// Values are whatever the store decoded: float64, string, bool or nil.
type Record map[string]any

// Has reports whether the field is present in the row (even when null).
func (r Record) Has(field string) bool {
	_, ok := r[field]
	return ok
}

// Value returns the raw value, nil when absent.
func (r Record) Value(field string) any {
	return r[field]
}

// Text returns the trimmed textual form of a field. ok is false for
// missing, null or blank values.
func (r Record) Text(field string) (string, bool) {
	v, ok := r[field]
	if !ok || v == nil {
		return "", false
	}
	var s string
	switch t := v.(type) {
	case string:
		s = t
	case []byte:
		s = string(t)
	default:
		s = fmt.Sprint(t)
	}
	s = strings.TrimSpace(s)
	return s, s != ""
}

// Number parses the field with ParseNumber.
func (r Record) Number(field string) (float64, bool) {
	return ParseNumber(r[field])
}

// IsDefault reports whether is_bad is set to 1.
func IsDefault(r Record) bool {
	v, ok := r.Number(FieldIsBad)
	return ok && v == 1
}

// HasField reports whether at least one record carries the field.
func HasField(records []Record, field string) bool {
	for _, r := range records {
		if r.Has(field) {
			return true
		}
	}
	return false
}

// RequireFields returns a MissingColumnError for the first field that no
// record carries. An empty dataset is missing every field.
func RequireFields(records []Record, fields ...string) error {
	for _, f := range fields {
		if !HasField(records, f) {
			return &MissingColumnError{Column: f}
		}
	}
	return nil
}

// Columns returns the sorted union of field names.
func Columns(records []Record) []string {
	seen := make(map[string]bool)
	var out []string
	for _, r := range records {
		for k := range r {
			if !seen[k] {
				seen[k] = true
				out = append(out, k)
			}
		}
	}
	sort.Strings(out)
	return out
}
