package vision

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

// Model replies must be a flat JSON object of scalar values before the
// pipeline will wrap them as a single-row result.
const objectShapeSchema = `{
	"type": "object",
	"additionalProperties": {
		"type": ["string", "number", "boolean", "null"]
	}
}`

var shapeSchema = jsonschema.MustCompileString("object-shape.json", objectShapeSchema)

func validateObjectShape(data []byte) error {
	dec := json.NewDecoder(strings.NewReader(string(data)))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return fmt.Errorf("decode: %w", err)
	}
	if err := shapeSchema.Validate(v); err != nil {
		return err
	}
	return nil
}
