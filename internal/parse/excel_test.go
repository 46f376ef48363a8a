package parse

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func workbookBytes(t *testing.T, rows [][]any) []byte {
	t.Helper()
	f := excelize.NewFile()
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &row))
	}
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf.Bytes()
}

func TestParseExcelWithHeader(t *testing.T) {
	t.Parallel()

	buf := workbookBytes(t, [][]any{
		{"name", "amount"},
		{"Widget", "19.99"},
		{"Gadget", "5"},
	})

	data, err := ParseExcel(buf, DefaultExcelOptions())
	require.NoError(t, err)
	assert.Equal(t, []string{"name", "amount"}, data.Columns)
	require.Len(t, data.Rows, 2)
	assert.Equal(t, Row{"name": "Widget", "amount": "19.99"}, data.Rows[0])
	assert.Equal(t, Stats{RowCount: 2, ColumnCount: 2}, data.Stats)
}

func TestParseExcelNoHeader(t *testing.T) {
	t.Parallel()

	buf := workbookBytes(t, [][]any{
		{"1", "2"},
		{"3", "4"},
	})

	opts := DefaultExcelOptions()
	opts.HasHeader = false
	data, err := ParseExcel(buf, opts)
	require.NoError(t, err)
	assert.Equal(t, []string{"column_1", "column_2"}, data.Columns)
	assert.Equal(t, Row{"column_1": "1", "column_2": "2"}, data.Rows[0])
}

func TestParseExcelShortRowsPadded(t *testing.T) {
	t.Parallel()

	buf := workbookBytes(t, [][]any{
		{"a", "b", "c"},
		{"1"},
	})

	data, err := ParseExcel(buf, DefaultExcelOptions())
	require.NoError(t, err)
	assert.Equal(t, Row{"a": "1", "b": "", "c": ""}, data.Rows[0])
}

func TestParseExcelSheetIndexOutOfRange(t *testing.T) {
	t.Parallel()

	buf := workbookBytes(t, [][]any{{"a"}, {"1"}})

	opts := DefaultExcelOptions()
	opts.SheetIndex = 3
	_, err := ParseExcel(buf, opts)
	require.Error(t, err)

	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Equal(t, "Excel", parseErr.Format)
	assert.ErrorIs(t, err, ErrSheetNotFound)
	assert.Contains(t, err.Error(), "index 3")
}

func TestParseExcelEmptyBuffer(t *testing.T) {
	t.Parallel()

	data, err := ParseExcel(nil, DefaultExcelOptions())
	require.NoError(t, err)
	assert.Equal(t, Stats{}, data.Stats)
}

func TestParseExcelCorruptContent(t *testing.T) {
	t.Parallel()

	_, err := ParseExcel([]byte("PK\x03\x04 definitely not a workbook"), DefaultExcelOptions())
	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Equal(t, "Excel", parseErr.Format)
}
