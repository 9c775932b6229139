package charts

import (
	"fmt"
	"image/color"
	"math"

	"github.com/KaramelBytes/courtside/internal/analysis"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette/moreland"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// corrGrid adapts a correlation matrix to plotter.GridXYZ.
// Rows are flipped so the first column is drawn at the top, as in a table.
type corrGrid struct{ m *analysis.CorrMatrix }

func (g corrGrid) Dims() (c, r int) { n := len(g.m.Columns); return n, n }
func (g corrGrid) Z(c, r int) float64 {
	n := len(g.m.Columns)
	return g.m.Values[n-1-r][c]
}
func (g corrGrid) X(c int) float64 { return float64(c) }
func (g corrGrid) Y(r int) float64 { return float64(r) }

// heatmapChart draws the matrix on a blue/red diverging scale fixed at [-1, 1],
// annotating every cell with its coefficient.
func heatmapChart(m *analysis.CorrMatrix) (*plot.Plot, error) {
	cmap := moreland.SmoothBlueRed()
	cmap.SetMin(-1)
	cmap.SetMax(1)

	grid := corrGrid{m: m}
	hm := plotter.NewHeatMap(grid, cmap.Palette(255))
	hm.Min, hm.Max = -1, 1
	hm.NaN = color.Gray{Y: 220}

	p := plot.New()
	p.Add(hm)

	n := len(m.Columns)
	var (
		xys    plotter.XYs
		labels []string
	)
	for c := 0; c < n; c++ {
		for r := 0; r < n; r++ {
			v := grid.Z(c, r)
			txt := "n/a"
			if !math.IsNaN(v) {
				txt = fmt.Sprintf("%.2f", v)
			}
			xys = append(xys, plotter.XY{X: float64(c), Y: float64(r)})
			labels = append(labels, txt)
		}
	}
	lbls, err := plotter.NewLabels(plotter.XYLabels{XYs: xys, Labels: labels})
	if err != nil {
		return nil, fmt.Errorf("annotations: %w", err)
	}
	for i := range lbls.TextStyle {
		lbls.TextStyle[i].XAlign = draw.XCenter
		lbls.TextStyle[i].YAlign = draw.YCenter
		lbls.TextStyle[i].Font.Size = vg.Points(9)
	}
	p.Add(lbls)

	reversed := make([]string, n)
	for i, c := range m.Columns {
		reversed[n-1-i] = c
	}
	p.NominalX(m.Columns...)
	p.NominalY(reversed...)
	p.X.Tick.Label.Rotation = math.Pi / 4
	p.X.Tick.Label.XAlign = draw.XRight
	return p, nil
}
