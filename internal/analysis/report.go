package analysis

import (
	"fmt"
	"math"
	"strings"

	"github.com/KaramelBytes/courtside/internal/dataset"
)

// NoDataMessage is shown in place of figures when a filter matches no rows.
const NoDataMessage = "no data for this filter"

// Report is a markdown-friendly analysis of one filtered view.
type Report struct {
	Name      string
	Selection dataset.Selection
	TotalRows int
	Cols      int
	Rows      int
	// Summary and Corr are nil when the filter matched no rows.
	Summary  *Summary
	Corr     *CorrMatrix
	Header   []string
	Samples  [][]string
	Warnings []string
}

// BuildReport filters t by sel and aggregates the result.
func BuildReport(t *dataset.Table, sel dataset.Selection, sampleRows int) *Report {
	return NewReport(t, dataset.Filter(t, sel), sel, sampleRows)
}

// NewReport aggregates sub, the rows of full that match sel.
// The aggregator is skipped entirely for an empty sub.
func NewReport(full, sub *dataset.Table, sel dataset.Selection, sampleRows int) *Report {
	rep := &Report{
		Name:      full.Name,
		Selection: sel,
		TotalRows: full.Nrow(),
		Cols:      full.Ncol(),
		Rows:      sub.Nrow(),
		Header:    sub.Names(),
	}
	if n := full.BadMinutes(); n > 0 {
		rep.Warnings = append(rep.Warnings, fmt.Sprintf("%d minutes values could not be parsed and are missing", n))
	}
	if sub.Empty() {
		rep.Warnings = append(rep.Warnings, NoDataMessage)
		return rep
	}
	s := Summarize(sub)
	rep.Summary = &s
	rep.Corr = Correlate(sub)
	if sampleRows > 0 {
		rep.Samples = sub.Head(sampleRows).Rows()
	}
	return rep
}

// Markdown renders a compact report suitable for terminals or standalone docs.
func (r *Report) Markdown() string {
	var b strings.Builder
	b.WriteString("[DATASET]\n")
	if r.Name != "" {
		b.WriteString(fmt.Sprintf("File: %s\n", r.Name))
	}
	b.WriteString(fmt.Sprintf("Rows: %d\n", r.TotalRows))
	b.WriteString(fmt.Sprintf("Columns: %d\n\n", r.Cols))

	b.WriteString("[SELECTION]\n")
	b.WriteString(fmt.Sprintf("Season: %s\n", safeVal(r.Selection.Season)))
	b.WriteString(fmt.Sprintf("Team: %s\n", safeVal(r.Selection.Team)))
	b.WriteString(fmt.Sprintf("Rows after filter: %d\n", r.Rows))

	if s := r.Summary; s != nil {
		b.WriteString("\n[SUMMARY]\n")
		if s.HasPoints {
			b.WriteString(fmt.Sprintf("- Mean points: %s\n", fmtNum(s.PointsMean, 2)))
			b.WriteString(fmt.Sprintf("- Total points: %s\n", fmtNum(s.PointsSum, -1)))
		}
		if s.HasAssists {
			b.WriteString(fmt.Sprintf("- Mean assists: %s\n", fmtNum(s.AssistsMean, 2)))
		}
		if s.HasRebounds {
			b.WriteString(fmt.Sprintf("- Mean rebounds: %s\n", fmtNum(s.ReboundsMean, 2)))
		}
	}

	if pairs := r.Corr.TopPairs(10); len(pairs) > 0 {
		b.WriteString("\n[CORRELATIONS]\n")
		for _, p := range pairs {
			b.WriteString(fmt.Sprintf("- %s ~ %s: r=%.3f\n", p.A, p.B, p.R))
		}
	}

	if len(r.Samples) > 0 {
		b.WriteString("\n[ROWS]\n")
		b.WriteString("| ")
		b.WriteString(strings.Join(r.Header, " | "))
		b.WriteString(" |\n|")
		b.WriteString(strings.Repeat(" --- |", len(r.Header)))
		b.WriteString("\n")
		for _, row := range r.Samples {
			cells := make([]string, len(row))
			for i, v := range row {
				cells[i] = safeVal(v)
			}
			b.WriteString("| ")
			b.WriteString(strings.Join(cells, " | "))
			b.WriteString(" |\n")
		}
	}

	if len(r.Warnings) > 0 {
		b.WriteString("\n[NOTES]\n")
		for _, w := range r.Warnings {
			b.WriteString("- ")
			b.WriteString(w)
			b.WriteString("\n")
		}
	}
	return b.String()
}

// fmtNum formats v with prec decimals (-1 for the shortest form); NaN renders as "n/a".
func fmtNum(v float64, prec int) string {
	if math.IsNaN(v) {
		return "n/a"
	}
	if prec < 0 {
		return fmt.Sprintf("%g", v)
	}
	return fmt.Sprintf("%.*f", prec, v)
}

func safeVal(s string) string { return strings.ReplaceAll(strings.ReplaceAll(s, "\n", " "), "|", "/") }
