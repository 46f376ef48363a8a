// Package validate checks normalized rows for completeness. Violations are
// returned as data, never raised: ingestion succeeding means "we produced a
// structural result", and the caller decides whether incomplete data is
// fatal for their use case.
package validate

import (
	"fmt"

	"github.com/joseph-ayodele/insight-ingest/internal/parse"
)

// FieldError is one required-field violation. Row is 1-based.
type FieldError struct {
	Row     int    `json:"row"`
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationResult carries diagnostics as data. Warnings never affect
// IsValid.
type ValidationResult struct {
	IsValid  bool         `json:"isValid"`
	Errors   []FieldError `json:"errors"`
	Warnings []string     `json:"warnings"`
}

// Required checks every row for presence of the required fields. A nil row
// set is a structural error at row 0; an empty row set is valid with a
// warning, since there are no rows to violate anything.
func Required(rows []parse.Row, requiredFields []string) ValidationResult {
	res := ValidationResult{Errors: []FieldError{}, Warnings: []string{}}

	if rows == nil {
		res.Errors = append(res.Errors, FieldError{Row: 0, Field: "data", Message: "Data must be an array"})
		return res
	}
	if len(rows) == 0 {
		res.IsValid = true
		res.Warnings = append(res.Warnings, "Data is empty")
		return res
	}

	for i, row := range rows {
		for _, field := range requiredFields {
			if isMissing(row[field]) {
				res.Errors = append(res.Errors, FieldError{
					Row:     i + 1,
					Field:   field,
					Message: fmt.Sprintf("Required field '%s' is missing or empty", field),
				})
			}
		}
	}
	res.IsValid = len(res.Errors) == 0
	return res
}

// Merge combines two results; validity requires both.
func Merge(a, b ValidationResult) ValidationResult {
	out := ValidationResult{
		Errors:   append(append([]FieldError{}, a.Errors...), b.Errors...),
		Warnings: append(append([]string{}, a.Warnings...), b.Warnings...),
	}
	out.IsValid = len(out.Errors) == 0
	return out
}

func isMissing(v any) bool {
	if v == nil {
		return true
	}
	s, ok := v.(string)
	return ok && s == ""
}
