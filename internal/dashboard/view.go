package dashboard

import (
	"net/url"
	"strconv"

	"github.com/KaramelBytes/courtside/internal/analysis"
	"github.com/KaramelBytes/courtside/internal/charts"
	"github.com/KaramelBytes/courtside/internal/dataset"
)

// View is everything one page render needs, computed per request.
type View struct {
	Name      string
	Choices   dataset.Choices
	Selection dataset.Selection
	Columns   []string
	TotalRows int
	TotalCols int
	Preview   [][]string
	Filtered  *dataset.Table
	Rows      [][]string
	Report    *analysis.Report
	Boxes     []analysis.Box
	Charts    []ChartRef

	// DownloadURL fetches the filtered rows as CSV.
	DownloadURL string
}

// ChartRef links one available figure.
type ChartRef struct {
	Kind  charts.Kind
	Title string
	URL   string
}

// buildView resolves the requested selection and runs filter then aggregate.
func (s *Server) buildView(q url.Values) (*View, error) {
	sel, err := dataset.Resolve(s.choices, q.Get("season"), q.Get("team"))
	if err != nil {
		return nil, err
	}
	sub := dataset.Filter(s.table, sel)
	query := url.Values{"season": {sel.Season}, "team": {sel.Team}}.Encode()
	v := &View{
		Name:      s.table.Name,
		Choices:   s.choices,
		Selection: sel,
		Columns:   s.table.Names(),
		TotalRows: s.table.Nrow(),
		TotalCols: s.table.Ncol(),
		Preview:   s.table.Head(s.opt.PreviewRows).Rows(),
		Filtered:  sub,
		Rows:      sub.Rows(),
		Report:    analysis.NewReport(s.table, sub, sel, 0),

		DownloadURL: "/download?" + query,
	}
	if !sub.Empty() {
		v.Boxes = analysis.GroupBoxes(sub, dataset.ColTeam, dataset.ColPoints)
	}
	for _, k := range charts.AvailableKinds(sub) {
		v.Charts = append(v.Charts, ChartRef{
			Kind:  k,
			Title: k.Title(),
			URL:   "/charts/" + string(k) + ".svg?" + query,
		})
	}
	return v, nil
}

// viewJSON is the API shape of a View.
type viewJSON struct {
	analysis.ReportJSON
	Boxes   []analysis.BoxJSON `json:"boxes"`
	Charts  []charts.Kind      `json:"charts"`
	Columns []string           `json:"columns"`
	Data    [][]string         `json:"data"`
}

func (v *View) toJSON() viewJSON {
	out := viewJSON{
		ReportJSON: v.Report.JSON(),
		Boxes:      analysis.BoxesJSON(v.Boxes),
		Charts:     []charts.Kind{},
		Columns:    v.Columns,
		Data:       v.Rows,
	}
	if out.Data == nil {
		out.Data = [][]string{}
	}
	for _, c := range v.Charts {
		out.Charts = append(out.Charts, c.Kind)
	}
	return out
}

func formatFloat(v float64, prec int) string {
	return strconv.FormatFloat(v, 'f', prec, 64)
}
