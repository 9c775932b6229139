package dataset

import (
	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

// Kind is the inferred type of a column.
type Kind string

const (
	KindNumeric Kind = "numeric"
	KindText    Kind = "text"
)

// Column describes one column of a Table.
type Column struct {
	Name string `json:"name"`
	Kind Kind   `json:"kind"`
}

// Schema is the named, typed column layout of a Table.
// Downstream code asks the schema whether a column exists instead of probing the data.
type Schema struct {
	Columns []Column `json:"columns"`
	index   map[string]int
}

func schemaOf(df dataframe.DataFrame) Schema {
	names := df.Names()
	types := df.Types()
	s := Schema{Columns: make([]Column, len(names)), index: make(map[string]int, len(names))}
	for i, name := range names {
		kind := KindText
		switch types[i] {
		case series.Float, series.Int:
			kind = KindNumeric
		}
		s.Columns[i] = Column{Name: name, Kind: kind}
		s.index[name] = i
	}
	return s
}

// Has reports whether the named column exists.
func (s Schema) Has(name string) bool {
	_, ok := s.index[name]
	return ok
}

// HasAll reports whether every named column exists.
func (s Schema) HasAll(names ...string) bool {
	for _, n := range names {
		if !s.Has(n) {
			return false
		}
	}
	return true
}

// Kind returns the kind of the named column, or "" when it is absent.
func (s Schema) Kind(name string) Kind {
	i, ok := s.index[name]
	if !ok {
		return ""
	}
	return s.Columns[i].Kind
}

// Numeric returns the numeric column names in file order.
func (s Schema) Numeric() []string {
	var out []string
	for _, c := range s.Columns {
		if c.Kind == KindNumeric {
			out = append(out, c.Name)
		}
	}
	return out
}
