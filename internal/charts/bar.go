package charts

import (
	"fmt"
	"math"
	"strconv"

	"github.com/KaramelBytes/courtside/internal/dataset"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

const (
	maxValueLabels = 40
	maxGameTicks   = 30
)

// barChart draws one bar per game with its points, colored by team.
func barChart(t *dataset.Table) (*plot.Plot, error) {
	pts := t.Floats(dataset.ColPoints)
	teams := t.Strings(dataset.ColTeam)
	games := t.Strings(dataset.ColGameID)
	if games == nil {
		games = make([]string, len(pts))
		for i := range games {
			games[i] = "#" + strconv.Itoa(i+1)
		}
	}

	p := plot.New()
	p.X.Label.Text = dataset.ColGameID
	p.Y.Label.Text = dataset.ColPoints
	p.Y.Min = 0
	p.Legend.Top = true

	width := barWidth(len(pts))
	teamColor := map[string]int{}
	var (
		labelXYs []plotter.XY
		labels   []string
	)
	for i, v := range pts {
		if math.IsNaN(v) {
			continue
		}
		ci, seen := teamColor[teams[i]]
		if !seen {
			ci = len(teamColor)
			teamColor[teams[i]] = ci
		}
		bar, err := plotter.NewBarChart(plotter.Values{v}, width)
		if err != nil {
			return nil, fmt.Errorf("game %s: %w", games[i], err)
		}
		bar.XMin = float64(i)
		bar.Color = plotutil.Color(ci)
		bar.LineStyle.Width = vg.Length(0)
		p.Add(bar)
		if !seen {
			p.Legend.Add(teams[i], bar)
		}
		labelXYs = append(labelXYs, plotter.XY{X: float64(i), Y: v})
		labels = append(labels, strconv.FormatFloat(v, 'f', -1, 64))
	}

	if len(labels) > 0 && len(pts) <= maxValueLabels {
		lbls, err := plotter.NewLabels(plotter.XYLabels{XYs: labelXYs, Labels: labels})
		if err != nil {
			return nil, fmt.Errorf("value labels: %w", err)
		}
		for i := range lbls.TextStyle {
			lbls.TextStyle[i].XAlign = draw.XCenter
		}
		lbls.Offset = vg.Point{Y: vg.Points(3)}
		p.Add(lbls)
	}

	if len(games) <= maxGameTicks {
		p.NominalX(games...)
		p.X.Tick.Label.Rotation = math.Pi / 3
		p.X.Tick.Label.XAlign = draw.XRight
		p.X.Tick.Label.YAlign = draw.YCenter
	} else {
		p.X.Label.Text = "game (table order)"
	}
	p.Add(plotter.NewGrid())
	return p, nil
}

// barWidth fits n bars on the default canvas with some spacing.
func barWidth(n int) vg.Length {
	if n <= 0 {
		return vg.Points(20)
	}
	w := vg.Length(500 / float64(n))
	if w > vg.Points(40) {
		w = vg.Points(40)
	}
	if w < vg.Points(1) {
		w = vg.Points(1)
	}
	return w
}
