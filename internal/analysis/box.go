package analysis

import (
	"math"
	"sort"

	"github.com/KaramelBytes/courtside/internal/dataset"
)

// Box is the five-number summary of one group's values.
type Box struct {
	Group  string
	N      int
	Min    float64
	Q1     float64
	Median float64
	Q3     float64
	Max    float64
	// Values are the non-missing observations in table order.
	Values []float64
}

// GroupBoxes summarizes valueCol per distinct groupCol value, ordered by group name.
// Groups without any non-missing value are omitted.
func GroupBoxes(t *dataset.Table, groupCol, valueCol string) []Box {
	keys := t.Strings(groupCol)
	vals := t.Floats(valueCol)
	if keys == nil || vals == nil {
		return nil
	}
	byGroup := map[string][]float64{}
	for i, k := range keys {
		v := vals[i]
		if math.IsNaN(v) {
			continue
		}
		byGroup[k] = append(byGroup[k], v)
	}
	out := make([]Box, 0, len(byGroup))
	for k, v := range byGroup {
		out = append(out, boxOf(k, v))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Group < out[j].Group })
	return out
}

func boxOf(group string, vals []float64) Box {
	cp := make([]float64, len(vals))
	copy(cp, vals)
	sort.Float64s(cp)
	return Box{
		Group:  group,
		N:      len(cp),
		Min:    cp[0],
		Q1:     quantile(cp, 0.25),
		Median: quantile(cp, 0.5),
		Q3:     quantile(cp, 0.75),
		Max:    cp[len(cp)-1],
		Values: vals,
	}
}

// quantile uses linear interpolation between closest ranks.
func quantile(sorted []float64, q float64) float64 {
	if len(sorted) == 0 {
		return math.NaN()
	}
	if q <= 0 {
		return sorted[0]
	}
	if q >= 1 {
		return sorted[len(sorted)-1]
	}
	pos := q * float64(len(sorted)-1)
	lo := int(math.Floor(pos))
	hi := int(math.Ceil(pos))
	if lo == hi {
		return sorted[lo]
	}
	w := pos - float64(lo)
	return sorted[lo]*(1-w) + sorted[hi]*w
}
