// Package charts renders the dashboard figures as SVG with gonum/plot.
package charts

import (
	"errors"
	"fmt"
	"image/color"
	"io"
	"math"
	"strings"

	"github.com/KaramelBytes/courtside/internal/analysis"
	"github.com/KaramelBytes/courtside/internal/dataset"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgsvg"
)

// Kind names one dashboard figure.
type Kind string

const (
	Bar     Kind = "bar"
	Radar   Kind = "radar"
	Box     Kind = "box"
	Heatmap Kind = "heatmap"
)

// Kinds lists every figure in page order.
var Kinds = []Kind{Bar, Radar, Box, Heatmap}

var (
	// ErrUnknownKind is returned for a figure name that does not exist.
	ErrUnknownKind = errors.New("unknown chart")
	// ErrUnavailable is returned when the table lacks the columns or rows a figure needs.
	ErrUnavailable = errors.New("chart unavailable for this data")
)

// Chart is a built plot with its preferred canvas size.
type Chart struct {
	Kind   Kind
	Plot   *plot.Plot
	Width  vg.Length
	Height vg.Length
}

// ParseKind maps a figure name to its Kind.
func ParseKind(s string) (Kind, error) {
	k := Kind(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Kinds {
		if k == known {
			return k, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownKind, s)
}

// Title is the heading shown above the figure.
func (k Kind) Title() string {
	switch k {
	case Bar:
		return "Points per game"
	case Radar:
		return "Overall stats"
	case Box:
		return "Points distribution"
	case Heatmap:
		return "Stat correlations"
	}
	return string(k)
}

// Available reports whether kind can be drawn from t.
// Every figure needs at least one row.
func Available(kind Kind, t *dataset.Table) bool {
	if t.Empty() {
		return false
	}
	s := t.Schema()
	switch kind {
	case Bar:
		return s.Kind(dataset.ColPoints) == dataset.KindNumeric
	case Radar:
		return analysis.Summarize(t).HasRadar()
	case Box:
		return len(analysis.GroupBoxes(t, dataset.ColTeam, dataset.ColPoints)) > 0
	case Heatmap:
		return len(s.Numeric()) >= 2
	}
	return false
}

// AvailableKinds lists the figures t can support, in page order.
func AvailableKinds(t *dataset.Table) []Kind {
	var out []Kind
	for _, k := range Kinds {
		if Available(k, t) {
			out = append(out, k)
		}
	}
	return out
}

// Build draws kind from the filtered table t.
func Build(kind Kind, t *dataset.Table, sel dataset.Selection) (*Chart, error) {
	if !Available(kind, t) {
		return nil, fmt.Errorf("%s: %w", kind, ErrUnavailable)
	}
	var (
		p   *plot.Plot
		err error
		w   = 10 * vg.Inch
		h   = 5 * vg.Inch
	)
	switch kind {
	case Bar:
		p, err = barChart(t)
	case Radar:
		p, err = radarChart(analysis.Summarize(t), sel.Team)
		w, h = 6*vg.Inch, 6*vg.Inch
	case Box:
		p, err = boxChart(analysis.GroupBoxes(t, dataset.ColTeam, dataset.ColPoints))
	case Heatmap:
		m := analysis.Correlate(t)
		if m == nil {
			return nil, fmt.Errorf("%s: %w", kind, ErrUnavailable)
		}
		p, err = heatmapChart(m)
		side := vg.Length(2+len(m.Columns)) * vg.Inch
		w, h = side, side
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownKind, kind)
	}
	if err != nil {
		return nil, fmt.Errorf("build %s chart: %w", kind, err)
	}
	p.Title.Text = fmt.Sprintf("%s (%s, %s)", kind.Title(), sel.Season, sel.Team)
	p.Title.TextStyle.Font.Size = vg.Points(14)
	return &Chart{Kind: kind, Plot: p, Width: w, Height: h}, nil
}

// WriteSVG renders c as an SVG document.
func (c *Chart) WriteSVG(w io.Writer) error {
	canvas := vgsvg.New(c.Width, c.Height)
	c.Plot.Draw(draw.New(canvas))
	if _, err := canvas.WriteTo(w); err != nil {
		return fmt.Errorf("write svg: %w", err)
	}
	return nil
}

var (
	fillBlue = color.NRGBA{R: 31, G: 119, B: 180, A: 90}
	lineBlue = color.RGBA{R: 31, G: 119, B: 180, A: 255}
	gridGray = color.Gray{Y: 200}
)

func finiteOr(v, def float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return def
	}
	return v
}
