package charts

import (
	"fmt"

	"github.com/KaramelBytes/courtside/internal/analysis"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// boxChart draws one box per team with every game overlaid as a point.
func boxChart(boxes []analysis.Box) (*plot.Plot, error) {
	p := plot.New()
	p.X.Label.Text = "TEAM_NAME"
	p.Y.Label.Text = "PTS"

	names := make([]string, len(boxes))
	for i, b := range boxes {
		names[i] = b.Group
		bp, err := plotter.NewBoxPlot(vg.Points(40), float64(i), plotter.Values(b.Values))
		if err != nil {
			return nil, fmt.Errorf("box %s: %w", b.Group, err)
		}
		bp.FillColor = plotutil.Color(i)
		p.Add(bp)

		pts := make(plotter.XYs, len(b.Values))
		for j, v := range b.Values {
			pts[j] = plotter.XY{X: float64(i) + jitter(j), Y: v}
		}
		sc, err := plotter.NewScatter(pts)
		if err != nil {
			return nil, fmt.Errorf("points %s: %w", b.Group, err)
		}
		sc.GlyphStyle.Color = plotutil.DarkColors[i%len(plotutil.DarkColors)]
		sc.GlyphStyle.Radius = vg.Points(2)
		sc.GlyphStyle.Shape = draw.CircleGlyph{}
		p.Add(sc)
	}
	p.NominalX(names...)
	p.Add(plotter.NewGrid())
	return p, nil
}

// jitter spreads overlaid points sideways; it is deterministic so renders are stable.
func jitter(j int) float64 {
	return float64((j*7)%11-5) / 30
}
