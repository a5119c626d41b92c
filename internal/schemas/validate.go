// Package schemas provides JSON Schema validation for persisted analysis records.
package schemas

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed canonical_record.schema.json
var canonicalRecordSchema []byte

// CanonicalRecordSchemaName identifies the embedded schema in errors
const CanonicalRecordSchemaName = "canonical_record.schema.json"

var (
	recordSchemaOnce sync.Once
	recordSchema     *gojsonschema.Schema
	recordSchemaErr  error
)

// ValidationError represents a schema validation error with field paths
type ValidationError struct {
	Errors []FieldError
}

// FieldError represents a single validation error at a specific field
type FieldError struct {
	Field   string
	Message string
}

// SchemaLoadError represents errors loading or parsing the schema itself
type SchemaLoadError struct {
	Path    string
	Message string
	Cause   error
}

func (e *SchemaLoadError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("failed to load schema %s: %s: %v", e.Path, e.Message, e.Cause)
	}
	return fmt.Sprintf("failed to load schema %s: %s", e.Path, e.Message)
}

func (e *SchemaLoadError) Unwrap() error {
	return e.Cause
}

func (ve *ValidationError) Error() string {
	var sb strings.Builder
	sb.WriteString("validation failed:\n")
	for i, err := range ve.Errors {
		sb.WriteString(fmt.Sprintf("  %d. %s: %s\n", i+1, err.Field, err.Message))
	}
	return sb.String()
}

// CanonicalRecordSchema returns the embedded schema document
func CanonicalRecordSchema() []byte {
	out := make([]byte, len(canonicalRecordSchema))
	copy(out, canonicalRecordSchema)
	return out
}

func compiledRecordSchema() (*gojsonschema.Schema, error) {
	recordSchemaOnce.Do(func() {
		recordSchema, recordSchemaErr = gojsonschema.NewSchema(gojsonschema.NewBytesLoader(canonicalRecordSchema))
	})
	if recordSchemaErr != nil {
		return nil, &SchemaLoadError{
			Path:    CanonicalRecordSchemaName,
			Message: "embedded schema failed to compile",
			Cause:   recordSchemaErr,
		}
	}
	return recordSchema, nil
}

// ValidateRecord checks one serialized record against the canonical record schema
func ValidateRecord(data []byte) error {
	schema, err := compiledRecordSchema()
	if err != nil {
		return err
	}
	result, err := schema.Validate(gojsonschema.NewBytesLoader(data))
	if err != nil {
		return fmt.Errorf("failed to read record: %w", err)
	}
	return toValidationError(result, "")
}

// ValidateHistory checks a serialized history list; every element must be a canonical record.
// Field paths are prefixed with the element index.
func ValidateHistory(data []byte) error {
	var items []json.RawMessage
	if err := json.Unmarshal(data, &items); err != nil {
		return &ValidationError{Errors: []FieldError{{Field: "(root)", Message: "history must be a JSON array: " + err.Error()}}}
	}

	schema, err := compiledRecordSchema()
	if err != nil {
		return err
	}

	combined := &ValidationError{}
	for i, item := range items {
		result, err := schema.Validate(gojsonschema.NewBytesLoader(item))
		if err != nil {
			combined.Errors = append(combined.Errors, FieldError{Field: fmt.Sprintf("[%d]", i), Message: err.Error()})
			continue
		}
		if verr := toValidationError(result, fmt.Sprintf("[%d]", i)); verr != nil {
			combined.Errors = append(combined.Errors, verr.(*ValidationError).Errors...)
		}
	}
	if len(combined.Errors) == 0 {
		return nil
	}
	return combined
}

// ValidateJSON validates a JSON file against a JSON Schema file
func ValidateJSON(schemaPath, jsonPath string) error {
	schemaAbsPath, err := filepath.Abs(schemaPath)
	if err != nil {
		return fmt.Errorf("failed to resolve schema path: %w", err)
	}

	jsonAbsPath, err := filepath.Abs(jsonPath)
	if err != nil {
		return fmt.Errorf("failed to resolve JSON path: %w", err)
	}

	if _, err := os.Stat(schemaAbsPath); os.IsNotExist(err) {
		return fmt.Errorf("schema file not found: %s", schemaAbsPath)
	}

	if _, err := os.Stat(jsonAbsPath); os.IsNotExist(err) {
		return fmt.Errorf("JSON file not found: %s", jsonAbsPath)
	}

	schemaLoader := gojsonschema.NewReferenceLoader("file://" + schemaAbsPath)
	documentLoader := gojsonschema.NewReferenceLoader("file://" + jsonAbsPath)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return &SchemaLoadError{
			Path:    schemaAbsPath,
			Message: "schema validation failed during load",
			Cause:   err,
		}
	}

	return toValidationError(result, "")
}

// ValidateJSONString validates an inline JSON document against inline schema content.
// A document that is not JSON is reported as a load failure.
func ValidateJSONString(schemaContent, jsonContent string) error {
	result, err := gojsonschema.Validate(
		gojsonschema.NewStringLoader(schemaContent),
		gojsonschema.NewStringLoader(jsonContent),
	)
	if err != nil {
		return &SchemaLoadError{Path: "(inline)", Message: "schema or document is not valid JSON", Cause: err}
	}
	return toValidationError(result, "")
}

// toValidationError returns nil for a valid result
func toValidationError(result *gojsonschema.Result, prefix string) error {
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
		if prefix != "" {
			field = prefix + "." + field
		}
		validationErr.Errors = append(validationErr.Errors, FieldError{
			Field:   field,
			Message: desc.Description(),
		})
	}

	return validationErr
}
