package analysis

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"gonum.org/v1/gonum/stat"
)

// Descriptive is the count / mean / spread / quartile summary of a column.
type Descriptive struct {
	Count int     `json:"count"`
	Mean  float64 `json:"mean"`
	Std   float64 `json:"std"`
	Min   float64 `json:"min"`
	P25   float64 `json:"25%"`
	P50   float64 `json:"50%"`
	P75   float64 `json:"75%"`
	Max   float64 `json:"max"`
}

// Describe computes descriptive statistics. Std is the sample standard
// deviation and is 0 for fewer than two values.
func Describe(values []float64) Descriptive {
	if len(values) == 0 {
		return Descriptive{}
	}
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)

	d := Descriptive{
		Count: len(sorted),
		Mean:  stat.Mean(sorted, nil),
		Min:   sorted[0],
		Max:   sorted[len(sorted)-1],
		P25:   percentile(sorted, 0.25),
		P50:   percentile(sorted, 0.50),
		P75:   percentile(sorted, 0.75),
	}
	if len(sorted) > 1 {
		d.Std = stat.StdDev(sorted, nil)
	}
	return d
}

// percentile interpolates linearly between the order statistics around
// position (n-1)*p of an ascending slice.
func percentile(sorted []float64, p float64) float64 {
	h := float64(len(sorted)-1) * p
	lo := int(math.Floor(h))
	hi := int(math.Ceil(h))
	if lo == hi {
		return sorted[lo]
	}
	return sorted[lo] + (h-float64(lo))*(sorted[hi]-sorted[lo])
}

// String renders the statistics as a two-column table.
func (d Descriptive) String() string {
	rows := []struct {
		k string
		v float64
	}{
		{"count", float64(d.Count)},
		{"mean", d.Mean},
		{"std", d.Std},
		{"min", d.Min},
		{"25%", d.P25},
		{"50%", d.P50},
		{"75%", d.P75},
		{"max", d.Max},
	}
	var b strings.Builder
	for i, r := range rows {
		if i > 0 {
			b.WriteByte('\n')
		}
		fmt.Fprintf(&b, "%-5s    %.6f", r.k, r.v)
	}
	return b.String()
}
