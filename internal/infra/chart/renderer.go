package chart

import (
	"bytes"
	"fmt"
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/bryanwahyu/loan-insights/internal/domain/analysis"
)

var (
	skyBlue = color.RGBA{R: 135, G: 206, B: 235, A: 255}
	salmon  = color.RGBA{R: 250, G: 128, B: 114, A: 255}
	orange  = color.RGBA{R: 255, G: 165, B: 0, A: 255}
	blue    = color.RGBA{R: 0, G: 0, B: 255, A: 255}
	black   = color.RGBA{A: 255}
)

// Renderer draws charts to PNG with gonum/plot.
type Renderer struct {
	Width  vg.Length
	Height vg.Length
}

func NewRenderer() *Renderer {
	return &Renderer{Width: 10 * vg.Inch, Height: 6 * vg.Inch}
}

// Render implementasi analysis.ChartRenderer
func (r *Renderer) Render(spec analysis.ChartSpec) ([]byte, error) {
	if len(spec.Labels) > 0 && len(spec.Labels) != len(spec.Values) {
		return nil, fmt.Errorf("chart %q: %d labels for %d values", spec.Title, len(spec.Labels), len(spec.Values))
	}

	p := plot.New()
	p.Title.Text = spec.Title
	p.X.Label.Text = spec.XLabel
	p.Y.Label.Text = spec.YLabel

	var err error
	switch spec.Kind {
	case analysis.ChartHistogram:
		err = addHistogram(p, spec)
	case analysis.ChartBar:
		err = addBars(p, spec, false)
	case analysis.ChartHorizontalBar:
		err = addBars(p, spec, true)
	case analysis.ChartLine:
		err = addLine(p, spec)
	default:
		return nil, fmt.Errorf("unsupported chart kind: %s", spec.Kind)
	}
	if err != nil {
		return nil, fmt.Errorf("chart %q: %w", spec.Title, err)
	}

	w, h := r.Width, r.Height
	if w <= 0 || h <= 0 {
		w, h = 10*vg.Inch, 6*vg.Inch
	}
	wt, err := p.WriterTo(w, h, "png")
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if _, err := wt.WriteTo(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func addHistogram(p *plot.Plot, spec analysis.ChartSpec) error {
	if len(spec.Values) == 0 {
		return nil
	}
	bins := spec.Bins
	if bins <= 0 {
		bins = 50
	}
	h, err := plotter.NewHist(plotter.Values(spec.Values), bins)
	if err != nil {
		return err
	}
	h.FillColor = colorOf(spec.Color, skyBlue)
	h.LineStyle.Color = black
	p.Add(h)
	return nil
}

func addBars(p *plot.Plot, spec analysis.ChartSpec, horizontal bool) error {
	if len(spec.Values) == 0 {
		return nil
	}
	bars, err := plotter.NewBarChart(plotter.Values(spec.Values), vg.Points(20))
	if err != nil {
		return err
	}
	bars.Horizontal = horizontal
	bars.LineStyle.Color = black
	bars.Color = colorOf(spec.Color, skyBlue)
	p.Add(bars)
	if horizontal {
		p.NominalY(spec.Labels...)
	} else {
		p.NominalX(spec.Labels...)
		p.X.Tick.Label.Rotation = 1.5708
		p.X.Tick.Label.XAlign = draw.XRight
		p.X.Tick.Label.YAlign = draw.YCenter
	}
	p.Add(plotter.NewGrid())
	return nil
}

func addLine(p *plot.Plot, spec analysis.ChartSpec) error {
	if len(spec.Values) == 0 {
		return nil
	}
	xys := make(plotter.XYs, len(spec.Values))
	for i, v := range spec.Values {
		xys[i].X = float64(i)
		xys[i].Y = v
	}
	line, points, err := plotter.NewLinePoints(xys)
	if err != nil {
		return err
	}
	c := colorOf(spec.Color, blue)
	line.Color = c
	line.Width = vg.Points(2)
	points.Shape = draw.CircleGlyph{}
	points.Color = c
	p.Add(line, points, plotter.NewGrid())
	if len(spec.Labels) > 0 {
		p.NominalX(spec.Labels...)
	}
	return nil
}

// palette maps ChartSpec.Color names; unknown names fall back to sky blue.
var palette = map[string]color.Color{
	"skyblue": skyBlue,
	"salmon":  salmon,
	"orange":  orange,
	"blue":    blue,
}

func colorOf(name string, fallback color.Color) color.Color {
	if c, ok := palette[name]; ok {
		return c
	}
	return fallback
}
