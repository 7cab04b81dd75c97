// Package schemas validates pipeline artifacts against their JSON Schemas.
package schemas

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/xeipuuv/gojsonschema"

	artifactschemas "github.com/jonathan/rfp-proposal/schemas"
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

// ValidateJSON validates a JSON file against a JSON Schema file. A schema path that does
// not exist on disk is looked up by base name among the embedded artifact schemas.
func ValidateJSON(schemaPath, jsonPath string) error {
	jsonAbsPath, err := filepath.Abs(jsonPath)
	if err != nil {
		return fmt.Errorf("failed to resolve JSON path: %w", err)
	}
	document, err := os.ReadFile(jsonAbsPath)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("JSON file not found: %s", jsonAbsPath)
		}
		return fmt.Errorf("failed to read JSON file: %w", err)
	}

	schema, err := readSchema(schemaPath)
	if err != nil {
		return err
	}
	return validate(schemaPath, gojsonschema.NewBytesLoader(schema), gojsonschema.NewBytesLoader(document))
}

// ValidateJSONString validates JSON string content against schema string content
func ValidateJSONString(schemaContent, jsonContent string) error {
	return validate("(string schema)", gojsonschema.NewStringLoader(schemaContent), gojsonschema.NewStringLoader(jsonContent))
}

// ValidateValue encodes v as JSON and validates it against the named embedded artifact
// schema, e.g. "gap_analysis.schema.json".
func ValidateValue(schemaName string, v any) error {
	schema, err := artifactschemas.Files.ReadFile(schemaName)
	if err != nil {
		return &SchemaLoadError{Path: schemaName, Message: "unknown artifact schema", Cause: err}
	}
	document, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode %s document: %w", schemaName, err)
	}
	return validate(schemaName, gojsonschema.NewBytesLoader(schema), gojsonschema.NewBytesLoader(document))
}

func readSchema(schemaPath string) ([]byte, error) {
	absPath, err := filepath.Abs(schemaPath)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve schema path: %w", err)
	}
	data, err := os.ReadFile(absPath)
	if err == nil {
		return data, nil
	}
	if !os.IsNotExist(err) {
		return nil, &SchemaLoadError{Path: absPath, Message: "read failed", Cause: err}
	}
	if embedded, embErr := artifactschemas.Files.ReadFile(filepath.Base(schemaPath)); embErr == nil {
		return embedded, nil
	}
	return nil, fmt.Errorf("schema file not found: %s", absPath)
}

func validate(schemaName string, schema, document gojsonschema.JSONLoader) error {
	result, err := gojsonschema.Validate(schema, document)
	if err != nil {
		return &SchemaLoadError{
			Path:    schemaName,
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
