package analysis

import (
	"math"

	"github.com/KaramelBytes/courtside/internal/dataset"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Summary holds the descriptive figures for one filtered view.
// Figures for absent columns are NaN and flagged by the Has* fields.
// Over an empty table every figure is NaN; check Empty before display.
type Summary struct {
	Rows         int
	HasPoints    bool
	HasAssists   bool
	HasRebounds  bool
	PointsMean   float64
	PointsSum    float64
	AssistsMean  float64
	ReboundsMean float64
}

// Empty reports whether the summary was computed over no rows.
func (s Summary) Empty() bool { return s.Rows == 0 }

// HasRadar reports whether all three radar axes are available.
func (s Summary) HasRadar() bool { return s.HasPoints && s.HasAssists && s.HasRebounds }

// Summarize computes mean and sum of points and the means of assists and rebounds.
// Missing cells are skipped.
func Summarize(t *dataset.Table) Summary {
	sch := t.Schema()
	s := Summary{
		Rows:         t.Nrow(),
		HasPoints:    sch.Kind(dataset.ColPoints) == dataset.KindNumeric,
		HasAssists:   sch.Kind(dataset.ColAssists) == dataset.KindNumeric,
		HasRebounds:  sch.Kind(dataset.ColRebounds) == dataset.KindNumeric,
		PointsMean:   math.NaN(),
		PointsSum:    math.NaN(),
		AssistsMean:  math.NaN(),
		ReboundsMean: math.NaN(),
	}
	if s.HasPoints {
		pts := t.Floats(dataset.ColPoints)
		s.PointsMean = Mean(pts)
		s.PointsSum = Sum(pts)
	}
	if s.HasAssists {
		s.AssistsMean = Mean(t.Floats(dataset.ColAssists))
	}
	if s.HasRebounds {
		s.ReboundsMean = Mean(t.Floats(dataset.ColRebounds))
	}
	return s
}

// Mean is the mean of the non-missing values, NaN when there are none.
func Mean(vals []float64) float64 {
	v := finite(vals)
	if len(v) == 0 {
		return math.NaN()
	}
	return stat.Mean(v, nil)
}

// Sum is the sum of the non-missing values, NaN when there are none.
func Sum(vals []float64) float64 {
	v := finite(vals)
	if len(v) == 0 {
		return math.NaN()
	}
	return floats.Sum(v)
}

func finite(vals []float64) []float64 {
	out := make([]float64, 0, len(vals))
	for _, v := range vals {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		out = append(out, v)
	}
	return out
}
