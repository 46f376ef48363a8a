// Package parse holds the canonical tabular model and one adapter per
// supported upload format. Every adapter produces the same ParsedData shape
// and never fails on empty input; corrupt content surfaces as a ParseError.
package parse

import (
	"context"
	"fmt"
)

// Row is one record keyed by column name. Cell values are strings as read
// from the source, numbers, or nil.
type Row = map[string]any

// PreviewSize is the number of leading rows exposed as Preview.
const PreviewSize = 5

// Stats is a snapshot taken at construction time. ParsedData is immutable by
// contract after NewParsedData, so the counts stay consistent with
// Rows/Columns for the lifetime of the value.
type Stats struct {
	RowCount    int `json:"rowCount"`
	ColumnCount int `json:"columnCount"`
}

// ParsedData is the canonical output of every format adapter.
type ParsedData struct {
	Columns []string `json:"columns"`
	Rows    []Row    `json:"rows"`
	Preview []Row    `json:"preview"`
	Stats   Stats    `json:"stats"`
}

// NewParsedData derives Preview and Stats from columns and rows. Adapters
// construct output exclusively through here so the invariants hold.
func NewParsedData(columns []string, rows []Row) *ParsedData {
	if columns == nil {
		columns = []string{}
	}
	if rows == nil {
		rows = []Row{}
	}
	preview := rows
	if len(preview) > PreviewSize {
		preview = preview[:PreviewSize]
	}
	return &ParsedData{
		Columns: columns,
		Rows:    rows,
		Preview: preview,
		Stats:   Stats{RowCount: len(rows), ColumnCount: len(columns)},
	}
}

// ImageExtractor is the external "structured data from image" capability.
// The pipeline calls it exactly once per image file and treats the returned
// object as opaque. This is the only stage that leaves the process, so
// implementations must honor ctx cancellation and timeouts.
type ImageExtractor interface {
	ExtractStructuredData(ctx context.Context, image []byte, contextHint string) (map[string]any, error)
}

// ParseError marks well-signatured but malformed content. The message is
// designed to be surfaced to end users as-is.
type ParseError struct {
	Format string
	Cause  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s parsing failed: %v", e.Format, e.Cause)
}

func (e *ParseError) Unwrap() error { return e.Cause }
