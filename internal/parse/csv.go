package parse

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
)

// CSVOptions control the delimited-text adapter.
type CSVOptions struct {
	Delimiter      rune // field separator, default ','
	Headers        bool // treat the first record as column names
	SkipEmptyLines bool // drop records whose cells are all blank
}

// DefaultCSVOptions returns the adapter defaults.
func DefaultCSVOptions() CSVOptions {
	return CSVOptions{Delimiter: ',', Headers: true, SkipEmptyLines: true}
}

// ParseCSV decodes buf as UTF-8 delimited text. When Headers is false the
// columns slice stays empty and cells are keyed column_1..column_n. Ragged
// records are tolerated: missing trailing cells become empty strings, extra
// cells beyond the header are dropped.
func ParseCSV(buf []byte, opts CSVOptions) (*ParsedData, error) {
	if opts.Delimiter == 0 {
		opts.Delimiter = ','
	}
	buf = bytes.TrimPrefix(buf, []byte("\xef\xbb\xbf"))
	if len(bytes.TrimSpace(buf)) == 0 {
		return NewParsedData(nil, nil), nil
	}

	r := csv.NewReader(bytes.NewReader(buf))
	r.Comma = opts.Delimiter
	r.LazyQuotes = true
	r.TrimLeadingSpace = true
	r.FieldsPerRecord = -1

	var columns []string
	var rows []Row
	headerPending := opts.Headers
	for {
		record, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, &ParseError{Format: "CSV", Cause: err}
		}
		if opts.SkipEmptyLines && emptyRecord(record) {
			continue
		}
		if headerPending {
			columns = make([]string, len(record))
			for i, h := range record {
				columns[i] = strings.TrimSpace(h)
			}
			headerPending = false
			continue
		}

		row := make(Row, len(record))
		if opts.Headers {
			for i, col := range columns {
				if i < len(record) {
					row[col] = record[i]
				} else {
					row[col] = ""
				}
			}
		} else {
			for i, cell := range record {
				row[fmt.Sprintf("column_%d", i+1)] = cell
			}
		}
		rows = append(rows, row)
	}

	return NewParsedData(columns, rows), nil
}

func emptyRecord(record []string) bool {
	for _, cell := range record {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
