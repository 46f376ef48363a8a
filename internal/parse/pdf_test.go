package parse

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRunner struct {
	stdout  []byte
	stderr  []byte
	err     error
	gotName string
	gotArgs []string
}

func (f *fakeRunner) Run(_ context.Context, name string, args ...string) ([]byte, []byte, error) {
	f.gotName = name
	f.gotArgs = args
	return f.stdout, f.stderr, f.err
}

func TestPDFParseLinearizesText(t *testing.T) {
	t.Parallel()

	runner := &fakeRunner{stdout: []byte("Revenue Report\n\n  Q1: $400  \nQ2: $500\n")}
	p := NewPDFParser("", runner, nil)

	data, err := p.Parse(context.Background(), []byte("%PDF-1.7 fake"))
	require.NoError(t, err)

	assert.Equal(t, "pdftotext", runner.gotName)
	assert.Contains(t, runner.gotArgs, "-layout")

	assert.Equal(t, []string{"page", "line", "text"}, data.Columns)
	require.Len(t, data.Rows, 3)
	assert.Equal(t, Row{"page": 1, "line": 1, "text": "Revenue Report"}, data.Rows[0])
	assert.Equal(t, Row{"page": 1, "line": 2, "text": "Q1: $400"}, data.Rows[1])
}

func TestPDFParsePageHeuristic(t *testing.T) {
	t.Parallel()

	var b strings.Builder
	for i := 0; i < 60; i++ {
		fmt.Fprintf(&b, "line %d\n", i)
	}
	p := NewPDFParser("", &fakeRunner{stdout: []byte(b.String())}, nil)

	data, err := p.Parse(context.Background(), []byte("%PDF"))
	require.NoError(t, err)
	require.Len(t, data.Rows, 60)
	assert.Equal(t, 1, data.Rows[49]["page"])
	assert.Equal(t, 2, data.Rows[50]["page"])
	assert.Equal(t, 51, data.Rows[50]["line"])
}

func TestPDFParseStripsFormFeeds(t *testing.T) {
	t.Parallel()

	p := NewPDFParser("", &fakeRunner{stdout: []byte("one\n\ftwo\n")}, nil)
	data, err := p.Parse(context.Background(), []byte("%PDF"))
	require.NoError(t, err)
	require.Len(t, data.Rows, 2)
	assert.Equal(t, "two", data.Rows[1]["text"])
}

func TestPDFParseExtractionFailure(t *testing.T) {
	t.Parallel()

	runner := &fakeRunner{err: errors.New("exit status 1"), stderr: []byte("Syntax Error: bad xref")}
	p := NewPDFParser("", runner, nil)

	_, err := p.Parse(context.Background(), []byte("%PDF garbage"))
	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Equal(t, "PDF", parseErr.Format)
	assert.Contains(t, err.Error(), "bad xref")
}

func TestPDFParseNoText(t *testing.T) {
	t.Parallel()

	p := NewPDFParser("", &fakeRunner{stdout: []byte("\n\n\f\n")}, nil)
	data, err := p.Parse(context.Background(), []byte("%PDF"))
	require.NoError(t, err)
	assert.Empty(t, data.Rows)
	assert.Empty(t, data.Columns)
}

func TestPDFParseEmptyBuffer(t *testing.T) {
	t.Parallel()

	runner := &fakeRunner{}
	p := NewPDFParser("", runner, nil)
	data, err := p.Parse(context.Background(), nil)
	require.NoError(t, err)
	assert.Equal(t, Stats{}, data.Stats)
	assert.Empty(t, runner.gotName) // binary never invoked
}
