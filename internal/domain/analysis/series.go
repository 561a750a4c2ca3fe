package analysis

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
)

// Point is one labelled value.
type Point struct {
	Key   string
	Value float64
}

// Series is an ordered key/value table. It marshals to a JSON object whose
// keys keep the series order.
type Series []Point

func (s Series) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, p := range s {
		if i > 0 {
			buf.WriteByte(',')
		}
		k, err := json.Marshal(p.Key)
		if err != nil {
			return nil, err
		}
		v, err := json.Marshal(p.Value)
		if err != nil {
			return nil, fmt.Errorf("series value for %q: %w", p.Key, err)
		}
		buf.Write(k)
		buf.WriteByte(':')
		buf.Write(v)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (s *Series) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("series: expected object, got %v", tok)
	}
	out := Series{}
	for dec.More() {
		kt, err := dec.Token()
		if err != nil {
			return err
		}
		var v float64
		if err := dec.Decode(&v); err != nil {
			return err
		}
		out = append(out, Point{Key: kt.(string), Value: v})
	}
	*s = out
	return nil
}

// Map drops the order.
func (s Series) Map() map[string]float64 {
	m := make(map[string]float64, len(s))
	for _, p := range s {
		m[p.Key] = p.Value
	}
	return m
}

func (s Series) Keys() []string {
	out := make([]string, len(s))
	for i, p := range s {
		out[i] = p.Key
	}
	return out
}

func (s Series) Values() []float64 {
	out := make([]float64, len(s))
	for i, p := range s {
		out[i] = p.Value
	}
	return out
}

// Head returns the first n points.
func (s Series) Head(n int) Series {
	if n > len(s) {
		n = len(s)
	}
	return s[:n].Clone()
}

// Tail returns the last n points, keeping their order.
func (s Series) Tail(n int) Series {
	if n > len(s) {
		n = len(s)
	}
	return s[len(s)-n:].Clone()
}

func (s Series) Clone() Series {
	if s == nil {
		return nil
	}
	out := make(Series, len(s))
	copy(out, s)
	return out
}

// SortDescending orders by value, highest first; equal values keep key order.
func (s Series) SortDescending() {
	sort.SliceStable(s, func(i, j int) bool {
		if s[i].Value != s[j].Value {
			return s[i].Value > s[j].Value
		}
		return s[i].Key < s[j].Key
	})
}

// SortAscending orders by value, lowest first; equal values keep key order.
func (s Series) SortAscending() {
	sort.SliceStable(s, func(i, j int) bool {
		if s[i].Value != s[j].Value {
			return s[i].Value < s[j].Value
		}
		return s[i].Key < s[j].Key
	})
}

// String renders one "key  value" line per point, keys padded to align.
func (s Series) String() string {
	width := 0
	for _, p := range s {
		if len(p.Key) > width {
			width = len(p.Key)
		}
	}
	var b strings.Builder
	for i, p := range s {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "%-*s    %s", width, p.Key, formatValue(p.Value))
	}
	return b.String()
}

// Bullets renders "- key: 0.12" lines with two decimals.
func (s Series) Bullets() string {
	lines := make([]string, len(s))
	for i, p := range s {
		lines[i] = fmt.Sprintf("- %s: %.2f", p.Key, p.Value)
	}
	return strings.Join(lines, "\n")
}

func formatValue(v float64) string {
	if v == math.Trunc(v) && math.Abs(v) < 1e15 {
		return strconv.FormatFloat(v, 'f', 0, 64)
	}
	return strconv.FormatFloat(v, 'f', 6, 64)
}
