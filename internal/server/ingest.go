package server

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/joseph-ayodele/insight-ingest/internal/parse"
	"github.com/joseph-ayodele/insight-ingest/internal/pipeline"
)

// ingest handles POST /v1/ingest: a multipart upload with the file plus
// optional form fields required_fields (comma-separated), context,
// target_schema (JSON Schema document), delimiter, and sheet_index.
func (s *Server) ingest(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, s.maxUploadBytes)

	fh, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file is required"})
		return
	}

	opts := pipeline.Options{Context: c.PostForm("context")}
	if rf := c.PostForm("required_fields"); rf != "" {
		for _, field := range strings.Split(rf, ",") {
			if field = strings.TrimSpace(field); field != "" {
				opts.RequiredFields = append(opts.RequiredFields, field)
			}
		}
	}
	if ts := c.PostForm("target_schema"); ts != "" {
		opts.TargetSchema = []byte(ts)
	}
	if d := c.PostForm("delimiter"); d != "" {
		csvOpts := parse.DefaultCSVOptions()
		csvOpts.Delimiter = []rune(d)[0]
		opts.CSV = &csvOpts
	}
	if si := c.PostForm("sheet_index"); si != "" {
		idx, err := strconv.Atoi(si)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "sheet_index must be an integer"})
			return
		}
		excelOpts := parse.DefaultExcelOptions()
		excelOpts.SheetIndex = idx
		opts.Excel = &excelOpts
	}

	f, err := fh.Open()
	if err != nil {
		s.logger.Error("upload open failed", "filename", fh.Filename, "error", err)
		c.JSON(http.StatusBadRequest, gin.H{"error": "could not read upload"})
		return
	}
	defer func() {
		_ = f.Close()
	}()

	res, err := s.pipeline.Ingest(c.Request.Context(), f, fh.Filename, opts)
	if err != nil {
		// Pipeline messages are human-readable by design; surface them as-is.
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, res)
}
