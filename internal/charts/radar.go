package charts

import (
	"fmt"
	"math"

	"github.com/KaramelBytes/courtside/internal/analysis"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

const radarRings = 4

var radarAxes = []string{"Points", "Assists", "Rebounds"}

// radarChart draws the three means on shared polar axes scaled to the largest mean.
// gonum/plot has no polar plotter, so rings and spokes are drawn as lines.
func radarChart(s analysis.Summary, name string) (*plot.Plot, error) {
	vals := []float64{
		finiteOr(s.PointsMean, 0),
		finiteOr(s.AssistsMean, 0),
		finiteOr(s.ReboundsMean, 0),
	}
	scale := math.Max(vals[0], math.Max(vals[1], vals[2]))
	if scale <= 0 {
		scale = 1
	}

	p := plot.New()
	p.HideAxes()
	p.X.Min, p.X.Max = -1.35, 1.35
	p.Y.Min, p.Y.Max = -1.0, 1.35

	for k := 1; k <= radarRings; k++ {
		ring, err := plotter.NewLine(radarPoints([]float64{1, 1, 1}, float64(k)/radarRings, true))
		if err != nil {
			return nil, fmt.Errorf("ring: %w", err)
		}
		ring.Color = gridGray
		ring.Width = vg.Points(0.5)
		p.Add(ring)
	}
	for i := range radarAxes {
		x, y := radarXY(i, 1)
		spoke, err := plotter.NewLine(plotter.XYs{{X: 0, Y: 0}, {X: x, Y: y}})
		if err != nil {
			return nil, fmt.Errorf("spoke: %w", err)
		}
		spoke.Color = gridGray
		spoke.Width = vg.Points(0.5)
		p.Add(spoke)
	}

	norm := make([]float64, len(vals))
	for i, v := range vals {
		norm[i] = math.Max(v, 0) / scale
	}
	shape, err := plotter.NewPolygon(radarPoints(norm, 1, false))
	if err != nil {
		return nil, fmt.Errorf("radar fill: %w", err)
	}
	shape.Color = fillBlue
	shape.LineStyle.Color = lineBlue
	shape.LineStyle.Width = vg.Points(2)
	p.Add(shape)
	if name != "" {
		p.Legend.Add(name, shape)
		p.Legend.Top = true
	}

	vertices, err := plotter.NewScatter(radarPoints(norm, 1, false))
	if err != nil {
		return nil, fmt.Errorf("radar vertices: %w", err)
	}
	vertices.GlyphStyle.Color = lineBlue
	vertices.GlyphStyle.Radius = vg.Points(3)
	vertices.GlyphStyle.Shape = draw.CircleGlyph{}
	p.Add(vertices)

	tips := radarPoints([]float64{1.12, 1.12, 1.12}, 1, false)
	names := make([]string, len(radarAxes))
	for i, a := range radarAxes {
		names[i] = fmt.Sprintf("%s\n%.2f", a, vals[i])
	}
	lbls, err := plotter.NewLabels(plotter.XYLabels{XYs: tips, Labels: names})
	if err != nil {
		return nil, fmt.Errorf("axis labels: %w", err)
	}
	for i := range lbls.TextStyle {
		lbls.TextStyle[i].XAlign = draw.XCenter
		lbls.TextStyle[i].YAlign = draw.YCenter
	}
	p.Add(lbls)
	return p, nil
}

// radarXY places axis i at radius r; the first axis points straight up.
func radarXY(i int, r float64) (float64, float64) {
	theta := math.Pi/2 - float64(i)*2*math.Pi/float64(len(radarAxes))
	return r * math.Cos(theta), r * math.Sin(theta)
}

func radarPoints(radii []float64, factor float64, closed bool) plotter.XYs {
	n := len(radii)
	if closed {
		n++
	}
	out := make(plotter.XYs, n)
	for i := range radii {
		out[i].X, out[i].Y = radarXY(i, radii[i]*factor)
	}
	if closed {
		out[n-1] = out[0]
	}
	return out
}
