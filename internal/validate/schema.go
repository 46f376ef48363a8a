package validate

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/joseph-ayodele/insight-ingest/internal/parse"
)

// AgainstSchema validates each row against a caller-supplied JSON Schema.
// Violations are reported per row with the same diagnostics-as-data posture
// as Required; only an uncompilable schema or unserializable row is an error.
func AgainstSchema(rows []parse.Row, schemaJSON []byte) (ValidationResult, error) {
	res := ValidationResult{IsValid: true, Errors: []FieldError{}, Warnings: []string{}}

	schema, err := compile(schemaJSON)
	if err != nil {
		return res, fmt.Errorf("compile target schema: %w", err)
	}

	for i, row := range rows {
		// Round-trip through JSON so the schema sees the same types a
		// downstream consumer of the serialized result would.
		b, err := json.Marshal(row)
		if err != nil {
			return res, fmt.Errorf("marshal row %d: %w", i+1, err)
		}
		var v any
		if err := json.Unmarshal(b, &v); err != nil {
			return res, fmt.Errorf("unmarshal row %d: %w", i+1, err)
		}
		if err := schema.Validate(v); err != nil {
			res.Errors = append(res.Errors, FieldError{Row: i + 1, Field: "row", Message: err.Error()})
		}
	}
	res.IsValid = len(res.Errors) == 0
	return res, nil
}

func compile(schemaJSON []byte) (*jsonschema.Schema, error) {
	c := jsonschema.NewCompiler()
	if err := c.AddResource("target-schema.json", bytes.NewReader(schemaJSON)); err != nil {
		return nil, err
	}
	return c.Compile("target-schema.json")
}
