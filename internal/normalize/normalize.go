// Package normalize coerces loosely-typed string cells into typed values.
// It is a best-effort heuristic, not a currency-aware parser: "R 1,000" and
// "42%" both come out as bare numbers with the symbol discarded. Callers
// needing currency or percentage semantics apply their own interpretation.
package normalize

import (
	"encoding/json"
	"regexp"
	"strconv"
	"strings"

	"github.com/joseph-ayodele/insight-ingest/internal/parse"
)

// reNumeric gates the coercion: optional leading $, digits with optional
// thousands separators, optional decimal part, optional trailing %.
var reNumeric = regexp.MustCompile(`^\$?[\d,]+\.?\d*%?$`)

var symbolStripper = strings.NewReplacer("$", "", ",", "", "%", "", " ", "")

// Rows normalizes every cell of every row. Pure and total: it never fails,
// and input rows are not mutated. Idempotent on already-normalized data.
func Rows(rows []parse.Row) []parse.Row {
	out := make([]parse.Row, 0, len(rows))
	for _, row := range rows {
		n := make(parse.Row, len(row))
		for field, v := range row {
			n[field] = Value(v)
		}
		out = append(out, n)
	}
	return out
}

// Value normalizes a single cell:
//
//  1. nil or empty string -> nil
//  2. already-typed values pass through unchanged
//  3. trimmed strings matching the numeric pattern are parsed to float64
//     after stripping $ , % and interior spaces; on parse failure the
//     trimmed original survives
//  4. any other string -> trimmed string
func Value(v any) any {
	switch t := v.(type) {
	case nil:
		return nil
	case json.Number:
		// The JSON adapter decodes with UseNumber; surface a plain float64.
		if f, err := t.Float64(); err == nil {
			return f
		}
		return t.String()
	case string:
		s := strings.TrimSpace(t)
		if s == "" {
			return nil
		}
		if reNumeric.MatchString(s) {
			if f, err := strconv.ParseFloat(symbolStripper.Replace(s), 64); err == nil {
				return f
			}
		}
		return s
	default:
		return v
	}
}
