package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/joseph-ayodele/insight-ingest/internal/parse"
	"github.com/joseph-ayodele/insight-ingest/internal/pipeline"
	"github.com/joseph-ayodele/insight-ingest/internal/vision"
)

func main() {
	logLevel := &slog.LevelVar{}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))
	slog.SetDefault(logger)

	var (
		requiredFields []string
		contextHint    string
		schemaPath     string
		delimiter      string
		sheetIndex     int
		asJSON         bool
		verbose        bool
	)

	root := &cobra.Command{
		Use:   "ingest",
		Short: "Turn business documents into canonical tabular data",
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	fileCmd := &cobra.Command{
		Use:   "file <path>",
		Short: "Ingest a single file and print the result",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if verbose {
				logLevel.Set(slog.LevelDebug)
			}

			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer func() {
				_ = f.Close()
			}()

			// Screenshot ingestion needs the vision capability; leave it
			// unconfigured without an API key so other formats still work.
			var images parse.ImageExtractor
			if os.Getenv("OPENAI_API_KEY") != "" {
				images = vision.NewClient(vision.Config{}, logger)
			}
			pipe := pipeline.New(logger, nil, images)

			opts := pipeline.Options{RequiredFields: requiredFields, Context: contextHint}
			if schemaPath != "" {
				schema, err := os.ReadFile(schemaPath)
				if err != nil {
					return fmt.Errorf("read target schema: %w", err)
				}
				opts.TargetSchema = schema
			}
			if delimiter != "" {
				csvOpts := parse.DefaultCSVOptions()
				csvOpts.Delimiter = []rune(delimiter)[0]
				opts.CSV = &csvOpts
			}
			if sheetIndex > 0 {
				excelOpts := parse.DefaultExcelOptions()
				excelOpts.SheetIndex = sheetIndex
				opts.Excel = &excelOpts
			}

			res, err := pipe.Ingest(cmd.Context(), f, filepath.Base(args[0]), opts)
			if err != nil {
				return err
			}

			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(res)
			}
			printSummary(cmd.OutOrStdout(), res)
			return nil
		},
	}
	fileCmd.Flags().StringSliceVar(&requiredFields, "required", nil, "required field names")
	fileCmd.Flags().StringVar(&contextHint, "context", "", "hint passed to the image extractor")
	fileCmd.Flags().StringVar(&schemaPath, "schema", "", "path to a JSON Schema applied per row")
	fileCmd.Flags().StringVar(&delimiter, "delimiter", "", "CSV delimiter override")
	fileCmd.Flags().IntVar(&sheetIndex, "sheet", 0, "Excel sheet index")
	fileCmd.Flags().BoolVar(&asJSON, "json", false, "print the full result as JSON")
	root.AddCommand(fileCmd)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func printSummary(w io.Writer, res *pipeline.IngestionResult) {
	fmt.Fprintf(w, "%s  type=%s rows=%d columns=%d valid=%t\n",
		res.Metadata.Filename,
		res.FileType,
		res.Metadata.RowCount,
		res.Metadata.ColumnCount,
		res.Validation.IsValid,
	)
	for _, e := range res.Validation.Errors {
		fmt.Fprintf(w, "  row %d: %s\n", e.Row, e.Message)
	}
	for _, warn := range res.Validation.Warnings {
		fmt.Fprintf(w, "  warning: %s\n", warn)
	}
	if len(res.Data.Preview) == 0 {
		return
	}

	t := table.NewWriter()
	header := table.Row{}
	for _, col := range res.Data.Columns {
		header = append(header, col)
	}
	t.AppendHeader(header)
	for _, row := range res.Data.Preview {
		tr := table.Row{}
		for _, col := range res.Data.Columns {
			tr = append(tr, row[col])
		}
		t.AppendRow(tr)
	}
	t.SetStyle(table.StyleLight)
	fmt.Fprintln(w, t.Render())
}
