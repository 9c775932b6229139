package dataset

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/go-gota/gota/series"
)

// ParseMinutes converts "MM:SS" playing time to fractional minutes.
// A value that does not split into exactly two integers reports ok=false;
// the caller stores it as missing.
func ParseMinutes(s string) (float64, bool) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		return 0, false
	}
	mins, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return 0, false
	}
	secs, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return 0, false
	}
	return float64(mins) + float64(secs)/60, true
}

// Normalize returns a copy of t whose MIN column holds fractional minutes.
// Unparseable values become missing and are counted in BadMinutes.
// A table that is already normalized, or has no MIN column, is returned as is.
func Normalize(t *Table) (*Table, error) {
	if t.normalized {
		return t, nil
	}
	if !t.schema.Has(ColMinutes) {
		out := t.derive(t.df)
		out.normalized = true
		return out, nil
	}

	raw := t.df.Col(ColMinutes).Records()
	vals := make([]string, len(raw))
	bad := 0
	for i, s := range raw {
		m, ok := ParseMinutes(s)
		if !ok {
			vals[i] = "NaN"
			bad++
			continue
		}
		vals[i] = FormatFloat(m)
	}
	df := t.df.Mutate(series.New(vals, series.Float, ColMinutes))
	if df.Err != nil {
		return nil, fmt.Errorf("normalize minutes: %w", df.Err)
	}
	out := t.derive(df)
	out.normalized = true
	out.badMinutes = bad
	return out, nil
}
