// Package chart renders the PNG artifacts with gonum/plot: scatter,
// density histograms, bar charts and confusion-matrix heatmaps.
package chart

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/text"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	apperrors "hrpulse/internal/errors"
)

// Category palette shared by all charts (stayed, left, ...).
var seriesColors = []color.NRGBA{
	{R: 31, G: 119, B: 180, A: 255},
	{R: 255, G: 127, B: 14, A: 255},
	{R: 44, G: 160, B: 44, A: 255},
}

const histogramBins = 20

// Series is one named group of points.
type Series struct {
	Name string
	X    []float64
	Y    []float64
}

// Group is one named sample for distribution plots.
type Group struct {
	Name   string
	Values []float64
}

// Scatter renders the groups as colored point clouds with a legend.
func Scatter(path, title, xLabel, yLabel string, groups []Series) error {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = xLabel
	p.Y.Label.Text = yLabel
	p.Add(plotter.NewGrid())

	for gi, g := range groups {
		if len(g.X) == 0 {
			continue
		}
		xys := make(plotter.XYs, len(g.X))
		for i := range g.X {
			xys[i] = plotter.XY{X: g.X[i], Y: g.Y[i]}
		}
		s, err := plotter.NewScatter(xys)
		if err != nil {
			return apperrors.NewRenderError("failed to build scatter series "+g.Name, err)
		}
		s.GlyphStyle.Color = seriesColors[gi%len(seriesColors)]
		s.GlyphStyle.Radius = vg.Points(1.5)
		s.GlyphStyle.Shape = draw.CircleGlyph{}
		p.Add(s)
		p.Legend.Add(g.Name, s)
	}
	p.Legend.Top = true

	return save(p, path, 6*vg.Inch, 4*vg.Inch)
}

// DensityHist overlays normalized histograms of each group, so populations
// of different sizes compare by shape.
func DensityHist(path, title, xLabel string, groups []Group) error {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = xLabel
	p.Y.Label.Text = "Density"

	for gi, g := range groups {
		if len(g.Values) == 0 {
			continue
		}
		h, err := plotter.NewHist(plotter.Values(g.Values), histogramBins)
		if err != nil {
			return apperrors.NewRenderError("failed to build histogram for "+g.Name, err)
		}
		h.Normalize(1)
		fill := seriesColors[gi%len(seriesColors)]
		fill.A = 153
		h.FillColor = fill
		h.LineStyle.Color = seriesColors[gi%len(seriesColors)]
		p.Add(h)
		p.Legend.Add(g.Name, fillThumbnail{c: fill})
	}
	p.Legend.Top = true

	return save(p, path, 6*vg.Inch, 4*vg.Inch)
}

// Bar renders one bar per name, in the given order.
func Bar(path, title, yLabel string, names []string, values []float64) error {
	p := plot.New()
	p.Title.Text = title
	p.Y.Label.Text = yLabel

	bars, err := plotter.NewBarChart(plotter.Values(values), vg.Points(20))
	if err != nil {
		return apperrors.NewRenderError("failed to build bar chart", err)
	}
	bars.Color = seriesColors[0]
	bars.LineStyle.Width = 0
	p.Add(bars)
	p.NominalX(names...)
	p.X.Tick.Label.Rotation = 0.78 // ~45 degrees for long category names
	p.X.Tick.Label.XAlign = text.XRight
	p.X.Tick.Label.YAlign = text.YCenter

	return save(p, path, 8*vg.Inch, 4*vg.Inch)
}

// ConfusionHeatmap renders the 2x2 matrix as a heatmap with count
// annotations, true labels on Y and predicted labels on X. Row 0 of the
// matrix is drawn at the top.
func ConfusionHeatmap(path, title string, cm [][]int, classLabels []string) error {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "Predicted label"
	p.Y.Label.Text = "True label"

	grid := confusionGrid{m: cm}
	p.Add(plotter.NewHeatMap(grid, palette.Heat(12, 1)))

	n := len(cm)
	xys := make(plotter.XYs, 0, n*n)
	labels := make([]string, 0, n*n)
	for r := 0; r < n; r++ {
		for c := 0; c < n; c++ {
			xys = append(xys, plotter.XY{X: float64(c), Y: float64(n - 1 - r)})
			labels = append(labels, fmt.Sprintf("%d", cm[r][c]))
		}
	}
	annotations, err := plotter.NewLabels(plotter.XYLabels{XYs: xys, Labels: labels})
	if err != nil {
		return apperrors.NewRenderError("failed to build heatmap annotations", err)
	}
	for i := range annotations.TextStyle {
		annotations.TextStyle[i].XAlign = text.XCenter
		annotations.TextStyle[i].YAlign = text.YCenter
	}
	p.Add(annotations)

	xTicks := make([]plot.Tick, n)
	yTicks := make([]plot.Tick, n)
	for i := 0; i < n; i++ {
		xTicks[i] = plot.Tick{Value: float64(i), Label: classLabels[i]}
		yTicks[i] = plot.Tick{Value: float64(n - 1 - i), Label: classLabels[i]}
	}
	p.X.Tick.Marker = plot.ConstantTicks(xTicks)
	p.Y.Tick.Marker = plot.ConstantTicks(yTicks)

	return save(p, path, 4*vg.Inch, 3*vg.Inch)
}

// confusionGrid adapts a confusion matrix to plotter.GridXYZ, flipping rows
// so the first matrix row appears at the top of the plot.
type confusionGrid struct {
	m [][]int
}

func (g confusionGrid) Dims() (c, r int)   { return len(g.m), len(g.m) }
func (g confusionGrid) Z(c, r int) float64 { return float64(g.m[len(g.m)-1-r][c]) }
func (g confusionGrid) X(c int) float64    { return float64(c) }
func (g confusionGrid) Y(r int) float64    { return float64(r) }

// fillThumbnail draws a solid legend swatch for plotters that have no
// thumbnail of their own (histograms).
type fillThumbnail struct {
	c color.Color
}

func (f fillThumbnail) Thumbnail(c *draw.Canvas) {
	pts := []vg.Point{
		{X: c.Min.X, Y: c.Min.Y},
		{X: c.Min.X, Y: c.Max.Y},
		{X: c.Max.X, Y: c.Max.Y},
		{X: c.Max.X, Y: c.Min.Y},
	}
	c.FillPolygon(f.c, pts)
}

// save writes the plot as PNG, creating the parent directory first.
func save(p *plot.Plot, path string, w, h vg.Length) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return apperrors.NewStorageError("failed to create image directory", err)
	}
	if err := p.Save(w, h, path); err != nil {
		return apperrors.NewRenderError("failed to save chart "+path, err)
	}
	return nil
}
