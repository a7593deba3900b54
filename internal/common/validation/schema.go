// internal/common/validation/schema.go
package validation

import (
	"fmt"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

// ValidationResult carries the outcome of validating a payload against a
// JSON schema.
type ValidationResult struct {
	Valid  bool              `json:"valid"`
	Errors []ValidationError `json:"errors,omitempty"`
}

type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidateJSON validates a decoded JSON document against a schema document.
func ValidateJSON(document interface{}, schema string) (*ValidationResult, error) {
	schemaLoader := gojsonschema.NewStringLoader(schema)
	documentLoader := gojsonschema.NewGoLoader(document)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return nil, fmt.Errorf("schema validation error: %w", err)
	}

	if result.Valid() {
		return &ValidationResult{Valid: true}, nil
	}

	vr := &ValidationResult{Valid: false}
	for _, desc := range result.Errors() {
		vr.Errors = append(vr.Errors, ValidationError{
			Field:   desc.Field(),
			Message: desc.Description(),
		})
	}
	return vr, nil
}

// GetErrorMessages returns a simple list of error messages
func (vr *ValidationResult) GetErrorMessages() []string {
	messages := make([]string, len(vr.Errors))
	for i, err := range vr.Errors {
		messages[i] = fmt.Sprintf("%s: %s", err.Field, err.Message)
	}
	return messages
}

// ErrorString joins all messages into one human-readable string.
func (vr *ValidationResult) ErrorString() string {
	return strings.Join(vr.GetErrorMessages(), "; ")
}
