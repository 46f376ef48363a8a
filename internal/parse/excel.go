package parse

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ExcelOptions control the spreadsheet adapter.
type ExcelOptions struct {
	SheetIndex int  // zero-based position in the workbook's sheet list
	HasHeader  bool // treat the sheet's first row as column names
}

// DefaultExcelOptions returns the adapter defaults.
func DefaultExcelOptions() ExcelOptions {
	return ExcelOptions{SheetIndex: 0, HasHeader: true}
}

// ErrSheetNotFound is wrapped into the ParseError when SheetIndex is out of
// range for the workbook.
var ErrSheetNotFound = errors.New("sheet not found")

// ParseExcel reads one sheet of a workbook. Row order follows the sheet's
// natural order; rows shorter than the header are padded with empty strings.
func ParseExcel(buf []byte, opts ExcelOptions) (*ParsedData, error) {
	if len(bytes.TrimSpace(buf)) == 0 {
		return NewParsedData(nil, nil), nil
	}

	f, err := excelize.OpenReader(bytes.NewReader(buf))
	if err != nil {
		return nil, &ParseError{Format: "Excel", Cause: err}
	}
	defer func() {
		_ = f.Close()
	}()

	sheets := f.GetSheetList()
	if opts.SheetIndex < 0 || opts.SheetIndex >= len(sheets) {
		return nil, &ParseError{
			Format: "Excel",
			Cause:  fmt.Errorf("%w: index %d, workbook has %d sheet(s)", ErrSheetNotFound, opts.SheetIndex, len(sheets)),
		}
	}

	records, err := f.GetRows(sheets[opts.SheetIndex])
	if err != nil {
		return nil, &ParseError{Format: "Excel", Cause: err}
	}
	if len(records) == 0 {
		return NewParsedData(nil, nil), nil
	}

	columns := make([]string, len(records[0]))
	start := 0
	if opts.HasHeader {
		for i, h := range records[0] {
			columns[i] = strings.TrimSpace(h)
		}
		start = 1
	} else {
		for i := range records[0] {
			columns[i] = fmt.Sprintf("column_%d", i+1)
		}
	}

	rows := make([]Row, 0, len(records)-start)
	for _, rec := range records[start:] {
		row := make(Row, len(columns))
		for i, col := range columns {
			if i < len(rec) {
				row[col] = rec[i]
			} else {
				row[col] = ""
			}
		}
		rows = append(rows, row)
	}
	return NewParsedData(columns, rows), nil
}
