package parse

import (
	"context"
	"errors"
	"maps"
	"sort"
)

// ParseImage delegates to the external extraction capability and wraps the
// returned key/value object as a single-row ParsedData. The capability's
// output has no inherent order, so columns are sorted for determinism.
func ParseImage(ctx context.Context, extractor ImageExtractor, buf []byte, contextHint string) (*ParsedData, error) {
	if extractor == nil {
		return nil, &ParseError{Format: "image", Cause: errors.New("no image extractor configured")}
	}

	obj, err := extractor.ExtractStructuredData(ctx, buf, contextHint)
	if err != nil {
		return nil, &ParseError{Format: "image", Cause: err}
	}
	if len(obj) == 0 {
		return NewParsedData(nil, nil), nil
	}

	columns := make([]string, 0, len(obj))
	for k := range obj {
		columns = append(columns, k)
	}
	sort.Strings(columns)

	row := make(Row, len(obj))
	maps.Copy(row, obj)
	return NewParsedData(columns, []Row{row}), nil
}
