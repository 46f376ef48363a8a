package parse

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
)

// linesPerPage is the heuristic used to assign a "page" to each extracted
// line. It is best-effort line grouping, not tied to real page boundaries.
const linesPerPage = 50

// PDFParser linearizes PDF text through the pdftotext binary. It makes no
// attempt to reconstruct tables: output is a fixed page/line/text schema for
// downstream free-text consumption.
type PDFParser struct {
	pdftotext string
	runner    Runner
	logger    *slog.Logger
}

// NewPDFParser builds a parser. Empty binary name falls back to "pdftotext";
// a nil runner executes the real binary.
func NewPDFParser(pdftotext string, runner Runner, logger *slog.Logger) *PDFParser {
	if pdftotext == "" {
		pdftotext = "pdftotext"
	}
	if runner == nil {
		runner = ExecRunner{}
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PDFParser{pdftotext: pdftotext, runner: runner, logger: logger}
}

// Parse extracts text, splits on newlines, drops blank lines, and emits rows
// {page, line, text} with page = lineIndex/50 + 1.
func (p *PDFParser) Parse(ctx context.Context, buf []byte) (*ParsedData, error) {
	if len(bytes.TrimSpace(buf)) == 0 {
		return NewParsedData(nil, nil), nil
	}

	tmp, err := os.CreateTemp("", "ingest-*.pdf")
	if err != nil {
		return nil, &ParseError{Format: "PDF", Cause: err}
	}
	defer func() {
		if err := os.Remove(tmp.Name()); err != nil {
			p.logger.Warn("pdf temp file cleanup failed", "path", tmp.Name(), "error", err)
		}
	}()
	if _, err := tmp.Write(buf); err != nil {
		_ = tmp.Close()
		return nil, &ParseError{Format: "PDF", Cause: err}
	}
	if err := tmp.Close(); err != nil {
		return nil, &ParseError{Format: "PDF", Cause: err}
	}

	// pdftotext -layout -enc UTF-8 -eol unix <path> -
	out, errb, err := p.runner.Run(ctx, p.pdftotext, "-layout", "-enc", "UTF-8", "-eol", "unix", tmp.Name(), "-")
	if err != nil {
		if msg := string(bytes.TrimSpace(errb)); msg != "" {
			err = fmt.Errorf("%w: %s", err, msg)
		}
		return nil, &ParseError{Format: "PDF", Cause: err}
	}

	// pdftotext separates pages with form feeds; the page column is a line
	// heuristic, so drop the markers rather than honor them.
	text := strings.ReplaceAll(string(out), "\f", "\n")

	var rows []Row
	idx := 0
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		rows = append(rows, Row{
			"page": idx/linesPerPage + 1,
			"line": idx + 1,
			"text": line,
		})
		idx++
	}
	if len(rows) == 0 {
		return NewParsedData(nil, nil), nil
	}
	return NewParsedData([]string{"page", "line", "text"}, rows), nil
}
