package chart

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bryanwahyu/loan-insights/internal/domain/analysis"
)

var pngMagic = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}

func TestRenderAllKinds(t *testing.T) {
	r := NewRenderer()
	specs := []analysis.ChartSpec{
		{Kind: analysis.ChartHistogram, Title: "hist", Values: []float64{1000, 2500, 4000, 4000, 9000}, Bins: 50},
		{Kind: analysis.ChartBar, Title: "bar", Labels: []string{"A", "B"}, Values: []float64{2, 1}, Color: "salmon"},
		{Kind: analysis.ChartHorizontalBar, Title: "hbar", Labels: []string{"int_rate", "term"}, Values: []float64{0.4, -0.1}},
		{Kind: analysis.ChartLine, Title: "line", Labels: []string{"1998", "2001", "2004"}, Values: []float64{2, 1, 5}, Color: "blue"},
	}
	for _, spec := range specs {
		png, err := r.Render(spec)
		require.NoError(t, err, spec.Title)
		assert.True(t, bytes.HasPrefix(png, pngMagic), spec.Title)
	}
}

func TestRenderEmptyDataStillProducesImage(t *testing.T) {
	png, err := NewRenderer().Render(analysis.ChartSpec{Kind: analysis.ChartBar, Title: "empty"})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(png, pngMagic))
}

func TestRenderRejectsBadSpecs(t *testing.T) {
	_, err := NewRenderer().Render(analysis.ChartSpec{Kind: "pie", Values: []float64{1}})
	assert.Error(t, err)

	_, err = NewRenderer().Render(analysis.ChartSpec{Kind: analysis.ChartBar, Labels: []string{"A"}, Values: []float64{1, 2}})
	assert.Error(t, err)
}
