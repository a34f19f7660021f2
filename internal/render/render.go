// Package render draws the dashboard views as PNG charts.
package render

import (
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/tidinho/dash-leishmaniose/internal/aggregate"
)

// ErrNoData is returned when a view has nothing to draw.
var ErrNoData = errors.New("no data to render")

// Chart names accepted by Render.
const (
	ChartStates         = "states"
	ChartMunicipalities = "municipalities"
	ChartIndicators     = "indicators"
)

// Size of the rendered image in pixels.
type Size struct {
	Width  int
	Height int
}

// DefaultSize 1024x512.
func DefaultSize() Size {
	return Size{Width: 1024, Height: 512}
}

func (s Size) orDefault() Size {
	d := DefaultSize()
	if s.Width <= 0 {
		s.Width = d.Width
	}
	if s.Height <= 0 {
		s.Height = d.Height
	}
	return s
}

var barColor = drawing.ColorFromHex("1f77b4")

func barWidth(size Size, n int) int {
	w := size.Width / (n * 2)
	if w > 60 {
		w = 60
	}
	if w < 4 {
		w = 4
	}
	return w
}

func renderBars(w io.Writer, title string, size Size, bars []chart.Value) error {
	if len(bars) == 0 {
		return ErrNoData
	}
	size = size.orDefault()
	for i := range bars {
		bars[i].Style = chart.Style{FillColor: barColor, StrokeColor: barColor}
	}
	graph := chart.BarChart{
		Title:      title,
		Width:      size.Width,
		Height:     size.Height,
		BarWidth:   barWidth(size, len(bars)),
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16}},
		XAxis:      chart.Style{TextRotationDegrees: 45},
		YAxis:      chart.YAxis{Name: "Casos", ValueFormatter: intFormatter},
		Bars:       bars,
	}
	if err := graph.Render(chart.PNG, w); err != nil {
		return fmt.Errorf("render %s: %w", title, err)
	}
	return nil
}

func intFormatter(v interface{}) string {
	if f, ok := v.(float64); ok {
		return fmt.Sprintf("%.0f", f)
	}
	return fmt.Sprintf("%v", v)
}

func stateLabel(s string) string {
	if s == "" {
		return "(sem UF)"
	}
	return s
}

// StateBarChart cases per state.
func StateBarChart(w io.Writer, states []aggregate.StateTotal, size Size) error {
	bars := make([]chart.Value, 0, len(states))
	for _, s := range states {
		bars = append(bars, chart.Value{Label: stateLabel(s.State), Value: float64(s.Cases)})
	}
	return renderBars(w, "Casos por UF", size, bars)
}

// MunicipalityBarChart the top municipalities ranking.
func MunicipalityBarChart(w io.Writer, top []aggregate.MunicipalityTotal, size Size) error {
	bars := make([]chart.Value, 0, len(top))
	for _, m := range top {
		bars = append(bars, chart.Value{
			Label: fmt.Sprintf("%s (%s)", m.Municipality, stateLabel(m.State)),
			Value: float64(m.Cases),
		})
	}
	return renderBars(w, fmt.Sprintf("Top %d municípios", len(top)), size, bars)
}

// IndicatorScatter cases against the chosen indicator, with the trend line when present.
// Needs at least two distinct indicator values.
func IndicatorScatter(w io.Writer, c aggregate.Correlation, size Size) error {
	if len(c.Points) < 2 {
		return ErrNoData
	}
	xs := make([]float64, len(c.Points))
	ys := make([]float64, len(c.Points))
	minX, maxX := math.Inf(1), math.Inf(-1)
	maxY := 0.0
	for i, p := range c.Points {
		xs[i] = p.X
		ys[i] = float64(p.Cases)
		minX = math.Min(minX, p.X)
		maxX = math.Max(maxX, p.X)
		maxY = math.Max(maxY, ys[i])
	}
	if minX == maxX {
		return ErrNoData
	}
	size = size.orDefault()

	series := []chart.Series{
		chart.ContinuousSeries{
			Name:    "Municípios",
			XValues: xs,
			YValues: ys,
			Style: chart.Style{
				StrokeWidth: chart.Disabled,
				DotWidth:    4,
				DotColor:    barColor,
			},
		},
	}
	if t := c.Trend; t != nil {
		series = append(series, chart.ContinuousSeries{
			Name:    "Tendência (MQO)",
			XValues: []float64{t.X0, t.X1},
			YValues: []float64{t.Y0, t.Y1},
			Style:   chart.Style{StrokeWidth: 2, StrokeColor: chart.ColorRed},
		})
		maxY = math.Max(maxY, math.Max(t.Y0, t.Y1))
	}

	graph := chart.Chart{
		Title:      fmt.Sprintf("Casos vs %s", c.Label),
		Width:      size.Width,
		Height:     size.Height,
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16}},
		XAxis:      chart.XAxis{Name: c.Label},
		YAxis: chart.YAxis{
			Name:           "Casos",
			Range:          &chart.ContinuousRange{Min: 0, Max: maxY * 1.1},
			ValueFormatter: intFormatter,
		},
		Series: series,
	}
	graph.Elements = []chart.Renderable{chart.Legend(&graph)}
	if err := graph.Render(chart.PNG, w); err != nil {
		return fmt.Errorf("render indicator scatter: %w", err)
	}
	return nil
}

// Render draws the named chart of a dashboard.
func Render(w io.Writer, name string, d aggregate.Dashboard, size Size) error {
	switch name {
	case ChartStates:
		return StateBarChart(w, d.ByState, size)
	case ChartMunicipalities:
		return MunicipalityBarChart(w, d.TopMunicipalities, size)
	case ChartIndicators:
		return IndicatorScatter(w, d.Correlation, size)
	default:
		return fmt.Errorf("unknown chart %q", name)
	}
}
