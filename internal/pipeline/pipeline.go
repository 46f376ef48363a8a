// Package pipeline sequences detection, parsing, normalization and
// validation for a single uploaded file.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/joseph-ayodele/insight-ingest/constants"
	"github.com/joseph-ayodele/insight-ingest/internal/detect"
	"github.com/joseph-ayodele/insight-ingest/internal/normalize"
	"github.com/joseph-ayodele/insight-ingest/internal/parse"
	"github.com/joseph-ayodele/insight-ingest/internal/validate"
)

// Options tune a single ingest call.
type Options struct {
	RequiredFields []string            // fields checked by the validator
	TargetSchema   []byte              // optional JSON Schema applied per normalized row
	Context        string              // hint forwarded to the image extractor
	FileContext    string              // overrides Context for the image path
	CSV            *parse.CSVOptions   // nil means adapter defaults
	Excel          *parse.ExcelOptions // nil means adapter defaults
}

// Metadata describes the ingested file.
type Metadata struct {
	Filename    string                   `json:"filename"`
	FileType    constants.DataSourceType `json:"fileType"`
	UploadedAt  time.Time                `json:"uploadedAt"`
	RowCount    int                      `json:"rowCount"`
	ColumnCount int                      `json:"columnCount"`
}

// IngestionResult is assembled atomically: a failed stage surfaces as an
// error and no partially-filled result is ever returned.
type IngestionResult struct {
	ID         uuid.UUID                 `json:"id"`
	Data       *parse.ParsedData         `json:"data"`
	FileType   constants.DataSourceType  `json:"fileType"`
	Normalized []parse.Row               `json:"normalized"`
	Validation validate.ValidationResult `json:"validation"`
	Metadata   Metadata                  `json:"metadata"`
}

// IngestError wraps the first stage failure with the original message
// preserved for errors.Is/As.
type IngestError struct {
	Cause error
}

func (e *IngestError) Error() string { return fmt.Sprintf("ingestion failed: %v", e.Cause) }

func (e *IngestError) Unwrap() error { return e.Cause }

// ErrUnsupportedFileType guards the dispatch switch. The detector's mapping
// is exhaustive, so hitting it means a DataSourceType was added without an
// adapter.
var ErrUnsupportedFileType = errors.New("unsupported file type")

// Pipeline runs the stages for one file end-to-end. It holds no state across
// calls; concurrent ingests of different files are independent.
type Pipeline struct {
	logger *slog.Logger
	pdf    *parse.PDFParser
	images parse.ImageExtractor
}

// New builds a pipeline. A nil pdf parser gets the default pdftotext-backed
// one; a nil images extractor leaves the screenshot path unconfigured, which
// fails only ingests that actually hit it.
func New(logger *slog.Logger, pdf *parse.PDFParser, images parse.ImageExtractor) *Pipeline {
	if logger == nil {
		logger = slog.Default()
	}
	if pdf == nil {
		pdf = parse.NewPDFParser("", nil, logger)
	}
	return &Pipeline{logger: logger, pdf: pdf, images: images}
}

// Ingest reads the input fully into memory (load-then-parse, no streaming)
// and runs detect -> parse -> normalize -> validate. The first failure aborts
// the call. The image path is the only stage that blocks on I/O; ctx
// cancellation there fails the whole call rather than returning partial data.
func (p *Pipeline) Ingest(ctx context.Context, r io.Reader, filename string, opts Options) (*IngestionResult, error) {
	id := uuid.New()
	start := time.Now()
	p.logger.Info("ingest.start", "ingest_id", id.String(), "filename", filename)

	buf, err := io.ReadAll(r)
	if err != nil {
		return p.fail(id, "read", fmt.Errorf("read input: %w", err))
	}

	fileType, err := detect.Detect(buf, filename)
	if err != nil {
		return p.fail(id, "detect", err)
	}
	p.logger.Debug("ingest.detect.ok", "ingest_id", id.String(), "file_type", fileType)

	data, err := p.dispatch(ctx, fileType, buf, opts)
	if err != nil {
		return p.fail(id, "parse", err)
	}
	p.logger.Debug("ingest.parse.ok",
		"ingest_id", id.String(),
		"rows", data.Stats.RowCount,
		"columns", data.Stats.ColumnCount,
	)

	normalized := normalize.Rows(data.Rows)

	validation := validate.Required(normalized, opts.RequiredFields)
	if len(opts.TargetSchema) > 0 {
		schemaResult, err := validate.AgainstSchema(normalized, opts.TargetSchema)
		if err != nil {
			return p.fail(id, "validate", err)
		}
		validation = validate.Merge(validation, schemaResult)
	}
	p.logger.Debug("ingest.validate.ok",
		"ingest_id", id.String(),
		"valid", validation.IsValid,
		"errors", len(validation.Errors),
	)

	res := &IngestionResult{
		ID:         id,
		Data:       data,
		FileType:   fileType,
		Normalized: normalized,
		Validation: validation,
		Metadata: Metadata{
			Filename:    filename,
			FileType:    fileType,
			UploadedAt:  time.Now().UTC(),
			RowCount:    data.Stats.RowCount,
			ColumnCount: data.Stats.ColumnCount,
		},
	}

	p.logger.Info("ingest.ok",
		"ingest_id", id.String(),
		"file_type", fileType,
		"rows", data.Stats.RowCount,
		"valid", validation.IsValid,
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return res, nil
}

func (p *Pipeline) dispatch(ctx context.Context, t constants.DataSourceType, buf []byte, opts Options) (*parse.ParsedData, error) {
	switch t {
	case constants.CSV:
		csvOpts := parse.DefaultCSVOptions()
		if opts.CSV != nil {
			csvOpts = *opts.CSV
		}
		return parse.ParseCSV(buf, csvOpts)
	case constants.EXCEL:
		excelOpts := parse.DefaultExcelOptions()
		if opts.Excel != nil {
			excelOpts = *opts.Excel
		}
		return parse.ParseExcel(buf, excelOpts)
	case constants.PDF:
		return p.pdf.Parse(ctx, buf)
	case constants.SCREENSHOT:
		hint := opts.Context
		if opts.FileContext != "" {
			hint = opts.FileContext
		}
		return parse.ParseImage(ctx, p.images, buf, hint)
	case constants.JSON:
		return parse.ParseJSON(buf)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFileType, t)
	}
}

func (p *Pipeline) fail(id uuid.UUID, stage string, err error) (*IngestionResult, error) {
	p.logger.Error("ingest.failed", "ingest_id", id.String(), "stage", stage, "error", err)
	return nil, &IngestError{Cause: err}
}
