package dataset

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/xuri/excelize/v2"
)

// loadXLSX reads one worksheet of an .xlsx workbook. An empty sheet name selects the first sheet.
func loadXLSX(path, sheet string) (*Table, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("%w: open xlsx: %v", ErrParse, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("%w: workbook has no sheets", ErrParse)
	}
	target := sheets[0]
	if sheet != "" {
		target = ""
		for _, s := range sheets {
			if strings.EqualFold(s, sheet) {
				target = s
				break
			}
		}
		if target == "" {
			return nil, fmt.Errorf("%w: sheet '%s' not found (available: %s)", ErrParse, sheet, strings.Join(sheets, ", "))
		}
	}
	rows, err := f.GetRows(target)
	if err != nil {
		return nil, fmt.Errorf("%w: read sheet %s: %v", ErrParse, target, err)
	}
	return LoadRecords(rows)
}
