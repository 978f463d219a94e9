// Package schemas provides JSON Schema validation for the structured job
// records the parser emits. The schema is embedded at compile time so
// validation works regardless of working directory.
package schemas

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	"github.com/jonathan/jd-tailor/internal/types"
)

//go:embed jd_record.schema.json
var jdRecordSchema string

// FieldError is a single validation failure at a specific field.
type FieldError struct {
	Field   string
	Message string
}

// ValidationError aggregates all schema violations found in a document.
type ValidationError struct {
	Errors []FieldError
}

func (ve *ValidationError) Error() string {
	var sb strings.Builder
	sb.WriteString("validation failed:\n")
	for i, err := range ve.Errors {
		sb.WriteString(fmt.Sprintf("  %d. %s: %s\n", i+1, err.Field, err.Message))
	}
	return sb.String()
}

// SchemaLoadError signals the schema itself could not be loaded or parsed,
// as opposed to the document failing validation.
type SchemaLoadError struct {
	Message string
	Cause   error
}

func (e *SchemaLoadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("failed to load schema: %s: %v", e.Message, e.Cause)
	}
	return fmt.Sprintf("failed to load schema: %s", e.Message)
}

func (e *SchemaLoadError) Unwrap() error {
	return e.Cause
}

// ValidateRecord checks a parsed job description against the embedded schema.
func ValidateRecord(record *types.JobDescription) error {
	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("failed to marshal job description: %w", err)
	}
	return ValidateJSONString(jdRecordSchema, string(data))
}

// ValidateRecordFile validates a job record JSON file on disk, e.g. the
// output of a previous parse run.
func ValidateRecordFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read record file: %w", err)
	}
	return ValidateJSONString(jdRecordSchema, string(data))
}

// ValidateJSONString validates JSON document content against schema content.
func ValidateJSONString(schemaContent, jsonContent string) error {
	schemaLoader := gojsonschema.NewStringLoader(schemaContent)
	documentLoader := gojsonschema.NewStringLoader(jsonContent)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return &SchemaLoadError{
			Message: "schema validation failed during load",
			Cause:   err,
		}
	}

	if result.Valid() {
		return nil
	}

	validationErr := &ValidationError{
		Errors: make([]FieldError, 0, len(result.Errors())),
	}
	for _, desc := range result.Errors() {
		field := desc.Field()
		if field == "" {
			field = "(root)"
		}
		validationErr.Errors = append(validationErr.Errors, FieldError{
			Field:   field,
			Message: desc.Description(),
		})
	}

	return validationErr
}
