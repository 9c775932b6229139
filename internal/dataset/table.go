package dataset

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/google/uuid"
)

// Well-known column names of the game statistics export.
const (
	ColSeason   = "SEASON"
	ColTeam     = "TEAM_NAME"
	ColGameID   = "GAME_ID"
	ColPoints   = "PTS"
	ColAssists  = "AST"
	ColRebounds = "REB"
	ColMinutes  = "MIN"
)

var (
	// ErrNotFound is returned when the data file does not exist.
	ErrNotFound = errors.New("data file not found")
	// ErrParse is returned when the file is not valid delimited text.
	ErrParse = errors.New("data file could not be parsed")
	// ErrSchema is returned when a required column is missing.
	ErrSchema = errors.New("data file is missing a required column")
)

// requiredColumns must be present for the selection controls to exist.
var requiredColumns = []string{ColSeason, ColTeam}

// textColumns are read as text regardless of what their values look like.
// MIN stays text until Normalize converts it.
var textColumns = map[string]series.Type{
	ColSeason:  series.String,
	ColTeam:    series.String,
	ColGameID:  series.String,
	ColMinutes: series.String,
}

// LoadOptions controls how a data file is read.
type LoadOptions struct {
	// Delimiter for CSV. If 0, chosen by file extension (.tsv -> tab, else comma).
	Delimiter rune
	// Sheet selects the worksheet of an .xlsx file. Empty means the first sheet.
	Sheet string
}

// Table is an immutable, schema-checked view over game rows.
// Operations that narrow or transform it return a new Table.
type Table struct {
	// ID identifies one load of the data file.
	ID       string
	Name     string
	LoadedAt time.Time

	df         dataframe.DataFrame
	schema     Schema
	normalized bool
	badMinutes int
}

// Load reads a delimited text or .xlsx file into a Table.
func Load(path string, opt LoadOptions) (*Table, error) {
	if strings.HasSuffix(strings.ToLower(path), ".xlsx") {
		t, err := loadXLSX(path, opt.Sheet)
		if err != nil {
			return nil, err
		}
		t.Name = filepath.Base(path)
		return t, nil
	}
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("open data: %w", err)
	}
	defer f.Close()

	delim := opt.Delimiter
	if delim == 0 {
		delim = sniffDelimiter(path)
	}
	t, err := LoadReader(f, delim)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Base(path), err)
	}
	t.Name = filepath.Base(path)
	return t, nil
}

// LoadReader reads delimited text with a header row from r.
func LoadReader(r io.Reader, delim rune) (*Table, error) {
	if delim == 0 {
		delim = ','
	}
	df := dataframe.ReadCSV(r,
		dataframe.WithDelimiter(delim),
		dataframe.WithTypes(textColumns),
	)
	return fromFrame(df)
}

// LoadRecords builds a Table from in-memory records; the first record is the header.
func LoadRecords(records [][]string) (*Table, error) {
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: no header row", ErrParse)
	}
	width := len(records[0])
	for i, rec := range records {
		if len(rec) < width {
			padded := make([]string, width)
			copy(padded, rec)
			records[i] = padded
		} else if len(rec) > width {
			return nil, fmt.Errorf("%w: row %d has %d fields, header has %d", ErrParse, i, len(rec), width)
		}
	}
	df := dataframe.LoadRecords(records, dataframe.WithTypes(textColumns))
	return fromFrame(df)
}

func fromFrame(df dataframe.DataFrame) (*Table, error) {
	if df.Err != nil {
		return nil, fmt.Errorf("%w: %v", ErrParse, df.Err)
	}
	schema := schemaOf(df)
	for _, name := range requiredColumns {
		if !schema.Has(name) {
			return nil, fmt.Errorf("%w: %s", ErrSchema, name)
		}
	}
	return &Table{
		ID:       uuid.NewString(),
		LoadedAt: time.Now(),
		df:       df,
		schema:   schema,
	}, nil
}

// derive wraps a frame computed from t, keeping t's identity.
func (t *Table) derive(df dataframe.DataFrame) *Table {
	return &Table{
		ID:         t.ID,
		Name:       t.Name,
		LoadedAt:   t.LoadedAt,
		df:         df,
		schema:     schemaOf(df),
		normalized: t.normalized,
		badMinutes: t.badMinutes,
	}
}

// Schema returns the column layout validated at load time.
func (t *Table) Schema() Schema { return t.schema }

// Nrow returns the number of rows.
func (t *Table) Nrow() int { return t.df.Nrow() }

// Ncol returns the number of columns.
func (t *Table) Ncol() int { return t.df.Ncol() }

// Empty reports whether the table has no rows.
func (t *Table) Empty() bool { return t.df.Nrow() == 0 }

// Names returns the column names in file order.
func (t *Table) Names() []string { return t.df.Names() }

// Normalized reports whether Normalize has already run on this table.
func (t *Table) Normalized() bool { return t.normalized }

// BadMinutes is the number of minutes values Normalize could not parse.
func (t *Table) BadMinutes() int { return t.badMinutes }

// Floats returns a numeric column; missing cells are NaN.
// It returns nil when the column is absent.
func (t *Table) Floats(col string) []float64 {
	if !t.schema.Has(col) {
		return nil
	}
	return t.df.Col(col).Float()
}

// Strings returns a column rendered as text. It returns nil when the column is absent.
func (t *Table) Strings(col string) []string {
	if !t.schema.Has(col) {
		return nil
	}
	return columnText(t.df.Col(col))
}

// Rows returns every row rendered as text, without the header.
func (t *Table) Rows() [][]string {
	return t.records()[1:]
}

// records renders the header and every row; float cells keep full precision.
func (t *Table) records() [][]string {
	names := t.df.Names()
	cols := make([][]string, len(names))
	for j, name := range names {
		cols[j] = columnText(t.df.Col(name))
	}
	out := make([][]string, 0, t.Nrow()+1)
	out = append(out, names)
	for i := 0; i < t.Nrow(); i++ {
		row := make([]string, len(names))
		for j := range cols {
			row[j] = cols[j][i]
		}
		out = append(out, row)
	}
	return out
}

func columnText(s series.Series) []string {
	if s.Type() != series.Float {
		return s.Records()
	}
	vals := s.Float()
	out := make([]string, len(vals))
	for i, v := range vals {
		out[i] = FormatFloat(v)
	}
	return out
}

// FormatFloat renders v in its shortest exact decimal form; missing is "NaN".
func FormatFloat(v float64) string {
	if math.IsNaN(v) {
		return "NaN"
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Head returns the first n rows.
func (t *Table) Head(n int) *Table {
	if n < 0 || n >= t.Nrow() {
		return t
	}
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	return t.derive(t.df.Subset(idx))
}

func sniffDelimiter(path string) rune {
	if strings.HasSuffix(strings.ToLower(path), ".tsv") {
		return '\t'
	}
	return ','
}
