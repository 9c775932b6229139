package dataset

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
)

// WriteCSV writes t as comma-separated text with a header row and no index column.
// Floats are written in full precision. Missing values are written as NaN,
// which LoadReader reads back as missing.
func WriteCSV(w io.Writer, t *Table) error {
	cw := csv.NewWriter(w)
	if err := cw.WriteAll(t.records()); err != nil {
		return fmt.Errorf("write csv: %w", err)
	}
	return nil
}

// CSVBytes returns t serialized by WriteCSV.
func CSVBytes(t *Table) ([]byte, error) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, t); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
