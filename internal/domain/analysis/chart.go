package analysis

import "encoding/base64"

// ChartKind enum
type ChartKind string

const (
	ChartHistogram     ChartKind = "histogram"
	ChartBar           ChartKind = "bar"
	ChartLine          ChartKind = "line"
	ChartHorizontalBar ChartKind = "horizontal-bar"
)

// ChartSpec describes one chart. Histograms use Values and Bins; the other
// kinds plot Values against Labels.
type ChartSpec struct {
	Kind   ChartKind
	Title  string
	XLabel string
	YLabel string
	Labels []string
	Values []float64
	Bins   int
	Color  string // skyblue, salmon, orange, blue
}

// ChartRenderer port (interface untuk render chart ke PNG)
type ChartRenderer interface {
	Render(spec ChartSpec) ([]byte, error)
}

// DataURI embeds PNG bytes for JSON payloads.
func DataURI(png []byte) string {
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(png)
}
