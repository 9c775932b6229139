package analysis

import (
	"math"

	"github.com/KaramelBytes/courtside/internal/dataset"
)

// ReportJSON is the wire form of a Report. Undefined figures encode as null.
type ReportJSON struct {
	Name        string            `json:"name"`
	Selection   dataset.Selection `json:"selection"`
	TotalRows   int               `json:"total_rows"`
	TotalCols   int               `json:"total_cols"`
	Rows        int               `json:"rows"`
	Summary     *SummaryJSON      `json:"summary"`
	Correlation *CorrJSON         `json:"correlation"`
	Warnings    []string          `json:"warnings,omitempty"`
}

type SummaryJSON struct {
	PointsMean   *float64 `json:"points_mean"`
	PointsSum    *float64 `json:"points_sum"`
	AssistsMean  *float64 `json:"assists_mean"`
	ReboundsMean *float64 `json:"rebounds_mean"`
}

type CorrJSON struct {
	Columns []string     `json:"columns"`
	Values  [][]*float64 `json:"values"`
}

type BoxJSON struct {
	Team   string   `json:"team"`
	N      int      `json:"n"`
	Min    *float64 `json:"min"`
	Q1     *float64 `json:"q1"`
	Median *float64 `json:"median"`
	Q3     *float64 `json:"q3"`
	Max    *float64 `json:"max"`
}

// JSON converts r to its wire form.
func (r *Report) JSON() ReportJSON {
	out := ReportJSON{
		Name:      r.Name,
		Selection: r.Selection,
		TotalRows: r.TotalRows,
		TotalCols: r.Cols,
		Rows:      r.Rows,
		Warnings:  r.Warnings,
	}
	if s := r.Summary; s != nil {
		out.Summary = &SummaryJSON{
			PointsMean:   Nullable(s.PointsMean),
			PointsSum:    Nullable(s.PointsSum),
			AssistsMean:  Nullable(s.AssistsMean),
			ReboundsMean: Nullable(s.ReboundsMean),
		}
	}
	if m := r.Corr; m != nil {
		cj := &CorrJSON{Columns: m.Columns, Values: make([][]*float64, len(m.Values))}
		for i, row := range m.Values {
			cj.Values[i] = make([]*float64, len(row))
			for j, v := range row {
				cj.Values[i][j] = Nullable(v)
			}
		}
		out.Correlation = cj
	}
	return out
}

// BoxesJSON converts boxes to their wire form.
func BoxesJSON(boxes []Box) []BoxJSON {
	out := make([]BoxJSON, 0, len(boxes))
	for _, b := range boxes {
		out = append(out, BoxJSON{
			Team: b.Group, N: b.N,
			Min: Nullable(b.Min), Q1: Nullable(b.Q1), Median: Nullable(b.Median), Q3: Nullable(b.Q3), Max: Nullable(b.Max),
		})
	}
	return out
}

// Nullable maps NaN and infinities to nil so they encode as JSON null.
func Nullable(v float64) *float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}
