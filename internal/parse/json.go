package parse

import (
	"bytes"
	"encoding/json"
	"maps"
	"sort"
)

// ParseJSON decodes buf as JSON. A non-array top level is wrapped in a
// single-element sequence. Columns come from the keys of the first element;
// elements that are not objects land in a single "value" column. Numbers are
// decoded as json.Number so the normalizer sees them untouched.
func ParseJSON(buf []byte) (*ParsedData, error) {
	if len(bytes.TrimSpace(buf)) == 0 {
		return NewParsedData(nil, nil), nil
	}

	dec := json.NewDecoder(bytes.NewReader(buf))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, &ParseError{Format: "JSON", Cause: err}
	}

	items, ok := v.([]any)
	if !ok {
		items = []any{v}
	}
	if len(items) == 0 {
		return NewParsedData(nil, nil), nil
	}

	first, ok := items[0].(map[string]any)
	if !ok {
		rows := make([]Row, 0, len(items))
		for _, it := range items {
			rows = append(rows, Row{"value": it})
		}
		return NewParsedData([]string{"value"}, rows), nil
	}

	columns := make([]string, 0, len(first))
	for k := range first {
		columns = append(columns, k)
	}
	sort.Strings(columns)

	rows := make([]Row, 0, len(items))
	for _, it := range items {
		row := make(Row)
		if m, ok := it.(map[string]any); ok {
			maps.Copy(row, m)
		} else {
			row["value"] = it
		}
		rows = append(rows, row)
	}
	return NewParsedData(columns, rows), nil
}
