package analysis

import (
	"math"
	"strings"
	"testing"

	"github.com/KaramelBytes/courtside/internal/dataset"
)

const gamesCSV = `SEASON,TEAM_NAME,GAME_ID,PTS,AST,REB,MIN
S1,TeamA,0001,10,5,7,5:30
S1,TeamB,0002,20,6,8,48:00
S2,TeamA,0003,30,7,9,abc
`

func load(t *testing.T, content string) *dataset.Table {
	t.Helper()
	tbl, err := dataset.LoadReader(strings.NewReader(content), ',')
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	norm, err := dataset.Normalize(tbl)
	if err != nil {
		t.Fatalf("normalize: %v", err)
	}
	return norm
}

func approx(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestSummarizeScenario(t *testing.T) {
	tbl := load(t, gamesCSV)
	sub := dataset.Filter(tbl, dataset.Selection{Season: "S1", Team: "TeamA"})
	s := Summarize(sub)
	if s.Rows != 1 || !s.HasRadar() {
		t.Fatalf("unexpected summary %+v", s)
	}
	if s.PointsMean != 10 || s.PointsSum != 10 {
		t.Fatalf("points mean/sum = %v/%v, want 10/10", s.PointsMean, s.PointsSum)
	}
	if s.AssistsMean != 5 || s.ReboundsMean != 7 {
		t.Fatalf("ast/reb = %v/%v", s.AssistsMean, s.ReboundsMean)
	}

	all := Summarize(tbl)
	if !approx(all.PointsMean, 20) || all.PointsSum != 60 || !approx(all.AssistsMean, 6) {
		t.Fatalf("whole-table summary %+v", all)
	}
}

func TestSummarizeEmptyAndMissingColumns(t *testing.T) {
	tbl := load(t, gamesCSV)
	empty := Summarize(dataset.Filter(tbl, dataset.Selection{Season: "S2", Team: "TeamB"}))
	if !empty.Empty() {
		t.Fatalf("expected empty summary, got %d rows", empty.Rows)
	}
	if !math.IsNaN(empty.PointsMean) || !math.IsNaN(empty.PointsSum) {
		t.Fatalf("empty figures should be NaN: %+v", empty)
	}

	noAst := load(t, "SEASON,TEAM_NAME,PTS\nS1,A,4\nS1,A,6\n")
	s := Summarize(noAst)
	if s.HasAssists || s.HasRadar() || !math.IsNaN(s.AssistsMean) {
		t.Fatalf("assists should be unavailable: %+v", s)
	}
	if s.PointsMean != 5 {
		t.Fatalf("PointsMean = %v, want 5", s.PointsMean)
	}
}

func TestMeanSkipsMissing(t *testing.T) {
	if got := Mean([]float64{1, math.NaN(), 3}); got != 2 {
		t.Fatalf("Mean = %v, want 2", got)
	}
	if got := Sum([]float64{math.NaN(), 2, 5}); got != 7 {
		t.Fatalf("Sum = %v, want 7", got)
	}
	if !math.IsNaN(Mean(nil)) || !math.IsNaN(Sum([]float64{math.NaN()})) {
		t.Fatalf("no values should give NaN")
	}
}

func TestCorrelate(t *testing.T) {
	tbl := load(t, `SEASON,TEAM_NAME,X,Y,Z,C
S1,A,1,2,4,5
S1,A,2,4,3,5
S1,A,3,6,2,5
S1,A,4,8,1,5
`)
	m := Correlate(tbl)
	if m == nil {
		t.Fatalf("expected a matrix")
	}
	if strings.Join(m.Columns, ",") != "X,Y,Z,C" {
		t.Fatalf("columns = %v", m.Columns)
	}
	idx := map[string]int{}
	for i, c := range m.Columns {
		idx[c] = i
	}
	if r := m.Values[idx["X"]][idx["Y"]]; !approx(r, 1) {
		t.Errorf("r(X,Y) = %v, want 1", r)
	}
	if r := m.Values[idx["X"]][idx["Z"]]; !approx(r, -1) {
		t.Errorf("r(X,Z) = %v, want -1", r)
	}
	if r := m.Values[idx["X"]][idx["C"]]; !math.IsNaN(r) {
		t.Errorf("r(X,C) = %v, want NaN for constant column", r)
	}
	for i := range m.Columns {
		for j := range m.Columns {
			a, b := m.Values[i][j], m.Values[j][i]
			if !(math.IsNaN(a) && math.IsNaN(b)) && a != b {
				t.Fatalf("matrix not symmetric at %d,%d", i, j)
			}
			if !math.IsNaN(a) && (a < -1 || a > 1) {
				t.Fatalf("r out of range: %v", a)
			}
		}
		if d := m.Values[i][i]; !math.IsNaN(d) && !approx(d, 1) {
			t.Errorf("diagonal %s = %v", m.Columns[i], d)
		}
	}

	pairs := m.TopPairs(2)
	if len(pairs) != 2 {
		t.Fatalf("TopPairs(2) = %v", pairs)
	}
	for _, p := range pairs {
		if p.A == "C" || p.B == "C" {
			t.Errorf("undefined pair listed: %+v", p)
		}
	}
}

func TestCorrelateNeedsTwoNumericColumns(t *testing.T) {
	tbl := load(t, "SEASON,TEAM_NAME,PTS\nS1,A,1\nS1,A,2\n")
	if m := Correlate(tbl); m != nil {
		t.Fatalf("expected nil matrix, got %+v", m)
	}
	var nilMatrix *CorrMatrix
	if pairs := nilMatrix.TopPairs(5); pairs != nil {
		t.Fatalf("nil matrix pairs = %v", pairs)
	}
}

func TestQuantile(t *testing.T) {
	s := []float64{1, 2, 3, 4}
	if got := quantile(s, 0.5); got != 2.5 {
		t.Fatalf("median = %v, want 2.5", got)
	}
	if got := quantile(s, 0.25); !approx(got, 1.75) {
		t.Fatalf("q1 = %v, want 1.75", got)
	}
	if quantile(s, 0) != 1 || quantile(s, 1) != 4 {
		t.Fatalf("bounds wrong")
	}
	if !math.IsNaN(quantile(nil, 0.5)) {
		t.Fatalf("empty quantile should be NaN")
	}
}

func TestGroupBoxes(t *testing.T) {
	tbl := load(t, gamesCSV)
	boxes := GroupBoxes(tbl, dataset.ColTeam, dataset.ColPoints)
	if len(boxes) != 2 || boxes[0].Group != "TeamA" || boxes[1].Group != "TeamB" {
		t.Fatalf("boxes = %+v", boxes)
	}
	a := boxes[0]
	if a.N != 2 || a.Min != 10 || a.Max != 30 || a.Median != 20 {
		t.Fatalf("TeamA box = %+v", a)
	}

	mins := GroupBoxes(tbl, dataset.ColTeam, dataset.ColMinutes)
	if mins[0].N != 1 {
		t.Fatalf("missing minutes should be skipped: %+v", mins[0])
	}
	if GroupBoxes(tbl, dataset.ColTeam, "NOPE") != nil {
		t.Fatalf("absent column should give nil")
	}
}

func TestBuildReport(t *testing.T) {
	tbl := load(t, gamesCSV)
	rep := BuildReport(tbl, dataset.Selection{Season: "S1", Team: "TeamA"}, 5)
	if rep.Rows != 1 || rep.TotalRows != 3 || rep.Summary == nil {
		t.Fatalf("unexpected report %+v", rep)
	}
	md := rep.Markdown()
	for _, want := range []string{"[SELECTION]", "Season: S1", "Team: TeamA", "[SUMMARY]", "Mean points: 10.00", "[ROWS]", "| SEASON | TEAM_NAME", "1 minutes values could not be parsed"} {
		if !strings.Contains(md, want) {
			t.Errorf("markdown missing %q:\n%s", want, md)
		}
	}

	empty := BuildReport(tbl, dataset.Selection{Season: "S2", Team: "TeamB"}, 5)
	if empty.Summary != nil || empty.Corr != nil || empty.Samples != nil {
		t.Fatalf("empty view should skip aggregation: %+v", empty)
	}
	md = empty.Markdown()
	if !strings.Contains(md, NoDataMessage) || strings.Contains(md, "[SUMMARY]") {
		t.Fatalf("empty markdown:\n%s", md)
	}
}
