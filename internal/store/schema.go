package store

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/xeipuuv/gojsonschema"

	"github.com/dworshak/dworshak/internal/derrors"
)

//go:embed schema.json
var schemaJSON string

// SchemaJSON returns the JSON Schema describing the store document.
func SchemaJSON() string {
	return schemaJSON
}

// ValidationIssue is one schema violation.
type ValidationIssue struct {
	Field   string
	Message string
}

// ValidationResult contains the results of a strict document check
type ValidationResult struct {
	Path   string
	Exists bool
	Valid  bool
	Issues []ValidationIssue
}

// Validate checks the file strictly against the document schema. Unlike
// Load it reports entries that Load would silently skip. A missing file
// is valid. The error is reserved for failures to read the file or to run
// the validator.
func (s *Store) Validate() (*ValidationResult, error) {
	result := &ValidationResult{Path: s.path, Valid: true}

	content, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return result, nil
	}
	if err != nil {
		return nil, derrors.NewStoreError(s.path, "failed to read store", err)
	}
	result.Exists = true

	var data interface{}
	if err := json.Unmarshal(content, &data); err != nil {
		result.Valid = false
		result.Issues = append(result.Issues, ValidationIssue{
			Field:   "syntax",
			Message: fmt.Sprintf("Invalid JSON syntax: %v", err),
		})
		return result, nil
	}

	schemaLoader := gojsonschema.NewStringLoader(SchemaJSON())
	documentLoader := gojsonschema.NewGoLoader(data)

	validation, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return nil, derrors.NewValidationError(s.path, "schema validation error", err)
	}

	if !validation.Valid() {
		result.Valid = false
		for _, issue := range validation.Errors() {
			result.Issues = append(result.Issues, ValidationIssue{
				Field:   issue.Field(),
				Message: issue.Description(),
			})
		}
	}

	return result, nil
}
