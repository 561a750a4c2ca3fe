package analysis

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeriesMarshalKeepsOrder(t *testing.T) {
	s := Series{{"C", 3}, {"A", 2.5}, {"B", 1}}
	b, err := json.Marshal(s)
	require.NoError(t, err)
	assert.Equal(t, `{"C":3,"A":2.5,"B":1}`, string(b))

	var back Series
	require.NoError(t, json.Unmarshal(b, &back))
	assert.Equal(t, s, back)
}

func TestSeriesHeadTail(t *testing.T) {
	s := Series{{"a", 5}, {"b", 4}, {"c", 3}}
	assert.Equal(t, Series{{"a", 5}, {"b", 4}}, s.Head(2))
	assert.Equal(t, Series{{"b", 4}, {"c", 3}}, s.Tail(2))
	assert.Equal(t, s, s.Head(10))
	assert.Equal(t, s, s.Tail(10))

	h := s.Head(1)
	h[0].Value = 99
	assert.Equal(t, 5.0, s[0].Value)
}

func TestSeriesSortTieBreak(t *testing.T) {
	s := Series{{"b", 1}, {"a", 1}, {"c", 2}}
	s.SortDescending()
	assert.Equal(t, []string{"c", "a", "b"}, s.Keys())
	s.SortAscending()
	assert.Equal(t, []string{"a", "b", "c"}, s.Keys())
}

func TestSeriesString(t *testing.T) {
	s := Series{{"A", 2}, {"BB", 0.5}}
	assert.Equal(t, "A     2\nBB    0.500000", s.String())
	assert.Equal(t, "- A: 2.00\n- BB: 0.50", s.Bullets())
}

func TestReportCloneIsDeep(t *testing.T) {
	r := Report{
		Name:       ReportGradeDefaults,
		Table:      Series{{"A", 2}},
		Statistics: &Descriptive{Count: 1},
		Chart:      []byte{1, 2},
	}
	c := r.Clone()
	c.Table[0].Value = 7
	c.Statistics.Count = 9
	c.Chart[0] = 9
	assert.Equal(t, 2.0, r.Table[0].Value)
	assert.Equal(t, 1, r.Statistics.Count)
	assert.Equal(t, byte(1), r.Chart[0])
}

func TestReportJSONOmitsUnusedFields(t *testing.T) {
	b, err := json.Marshal(Report{Name: ReportFinal, Error: "Failed to generate report: boom"})
	require.NoError(t, err)
	var m map[string]any
	require.NoError(t, json.Unmarshal(b, &m))
	assert.Equal(t, "Failed to generate report: boom", m["error"])
	assert.NotContains(t, m, "table")
	assert.NotContains(t, m, "image")
	assert.NotContains(t, m, "Chart")
}

func TestDataURI(t *testing.T) {
	assert.Equal(t, "data:image/png;base64,AQI=", DataURI([]byte{1, 2}))
}

func TestNotReadyErrorMessage(t *testing.T) {
	err := &NotReadyError{Name: ReportGradeDefaults}
	assert.Equal(t, "grade_defaults data is not available in the cache.", err.Error())
}
