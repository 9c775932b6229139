package dataset

import (
	"errors"
	"fmt"
	"sort"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

// ErrUnknownSelection is returned when a requested season or team is not in the data.
var ErrUnknownSelection = errors.New("unknown selection")

// Selection is the (season, team) pair that narrows the table.
type Selection struct {
	Season string `json:"season"`
	Team   string `json:"team"`
}

// Choices holds the distinct values offered by the selection controls.
type Choices struct {
	Seasons []string `json:"seasons"`
	Teams   []string `json:"teams"`
}

// Filter returns the rows whose season AND team equal the selection.
// No match yields an empty table; t itself is never modified.
// A table that was not normalized yet is normalized first.
func Filter(t *Table, sel Selection) *Table {
	if !t.normalized {
		if norm, err := Normalize(t); err == nil {
			t = norm
		}
	}
	if t.Empty() {
		return t.derive(t.df.Copy())
	}
	df := t.df.FilterAggregation(dataframe.And,
		dataframe.F{Colname: ColSeason, Comparator: series.Eq, Comparando: sel.Season},
		dataframe.F{Colname: ColTeam, Comparator: series.Eq, Comparando: sel.Team},
	)
	return t.derive(df)
}

// ChoicesOf returns the sorted distinct seasons and teams of t.
func ChoicesOf(t *Table) Choices {
	return Choices{
		Seasons: distinct(t.Strings(ColSeason)),
		Teams:   distinct(t.Strings(ColTeam)),
	}
}

// Resolve validates a requested selection against the available choices.
// Empty values fall back to the first choice.
func Resolve(c Choices, season, team string) (Selection, error) {
	sel := Selection{Season: season, Team: team}
	if sel.Season == "" && len(c.Seasons) > 0 {
		sel.Season = c.Seasons[0]
	}
	if sel.Team == "" && len(c.Teams) > 0 {
		sel.Team = c.Teams[0]
	}
	if !contains(c.Seasons, sel.Season) {
		return Selection{}, fmt.Errorf("%w: season %q", ErrUnknownSelection, sel.Season)
	}
	if !contains(c.Teams, sel.Team) {
		return Selection{}, fmt.Errorf("%w: team %q", ErrUnknownSelection, sel.Team)
	}
	return sel, nil
}

func distinct(vals []string) []string {
	seen := make(map[string]struct{}, len(vals))
	out := make([]string, 0)
	for _, v := range vals {
		if v == "" || v == "NaN" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

func contains(vals []string, v string) bool {
	i := sort.SearchStrings(vals, v)
	return i < len(vals) && vals[i] == v
}
