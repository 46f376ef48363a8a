package parse

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubExtractor struct {
	fields  map[string]any
	err     error
	gotHint string
}

func (s *stubExtractor) ExtractStructuredData(ctx context.Context, _ []byte, hint string) (map[string]any, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.gotHint = hint
	return s.fields, s.err
}

func TestParseImageWrapsObject(t *testing.T) {
	t.Parallel()

	ext := &stubExtractor{fields: map[string]any{"total": 42.0, "merchant": "Acme"}}
	data, err := ParseImage(context.Background(), ext, []byte("png-bytes"), "monthly sales screenshot")
	require.NoError(t, err)

	assert.Equal(t, "monthly sales screenshot", ext.gotHint)
	assert.Equal(t, []string{"merchant", "total"}, data.Columns)
	require.Len(t, data.Rows, 1)
	assert.Equal(t, Row{"merchant": "Acme", "total": 42.0}, data.Rows[0])
	assert.Equal(t, Stats{RowCount: 1, ColumnCount: 2}, data.Stats)
}

func TestParseImageExtractionFailure(t *testing.T) {
	t.Parallel()

	ext := &stubExtractor{err: errors.New("vision status 500")}
	_, err := ParseImage(context.Background(), ext, nil, "")
	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Equal(t, "image", parseErr.Format)
	assert.Contains(t, err.Error(), "vision status 500")
}

func TestParseImageNoExtractor(t *testing.T) {
	t.Parallel()

	_, err := ParseImage(context.Background(), nil, nil, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no image extractor configured")
}

func TestParseImageEmptyObject(t *testing.T) {
	t.Parallel()

	data, err := ParseImage(context.Background(), &stubExtractor{fields: map[string]any{}}, nil, "")
	require.NoError(t, err)
	assert.Equal(t, Stats{}, data.Stats)
}

func TestParseImageHonorsCancellation(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := ParseImage(ctx, &stubExtractor{fields: map[string]any{"a": 1}}, nil, "")
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}
