package normalize

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joseph-ayodele/insight-ingest/internal/parse"
)

func TestValue(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   any
		want any
	}{
		{"currency with thousands", "$1,234.50", 1234.5},
		{"percentage", "42%", 42.0},
		{"empty string", "", nil},
		{"nil", nil, nil},
		{"plain text unchanged", "abc", "abc"},
		{"padded number", "  99  ", 99.0},
		{"already numeric passes through", 3.14, 3.14},
		{"bool passes through", true, true},
		{"trimmed text", "  hello  ", "hello"},
		{"json number becomes float", json.Number("7"), 7.0},
		{"lone comma survives as original", ",", ","},
		{"mixed alphanumeric unchanged", "12ab", "12ab"},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, Value(tt.in))
		})
	}
}

func TestRows(t *testing.T) {
	t.Parallel()

	rows := []parse.Row{
		{"amount": "$1,234.50", "name": "A", "rate": "42%"},
		{"amount": "", "name": "  B  ", "rate": 0.5},
	}
	got := Rows(rows)
	require.Len(t, got, 2)
	assert.Equal(t, parse.Row{"amount": 1234.5, "name": "A", "rate": 42.0}, got[0])
	assert.Equal(t, parse.Row{"amount": nil, "name": "B", "rate": 0.5}, got[1])

	// Input rows are not mutated.
	assert.Equal(t, "$1,234.50", rows[0]["amount"])
}

func TestRowsIdempotent(t *testing.T) {
	t.Parallel()

	once := Rows([]parse.Row{{"a": "$5", "b": "text", "c": nil}})
	twice := Rows(once)
	assert.Equal(t, once, twice)
}

func TestRowsEmpty(t *testing.T) {
	t.Parallel()

	got := Rows(nil)
	require.NotNil(t, got)
	assert.Empty(t, got)
}
