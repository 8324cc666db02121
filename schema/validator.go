package schema

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed travis.embedded.schema.json
var embeddedSchemaData []byte

// Issue is a single schema violation, located by JSON pointer.
type Issue struct {
	Location string
	Message  string
}

// Validator validates CI documents against the embedded JSON Schema.
type Validator struct {
	schema *jsonschema.Schema
}

// NewValidator creates a new schema validator, loading the embedded schema.
func NewValidator() (*Validator, error) {
	compiler := jsonschema.NewCompiler()
	if err := compiler.AddResource("travis.json", strings.NewReader(string(embeddedSchemaData))); err != nil {
		return nil, fmt.Errorf("failed to add embedded schema resource: %w", err)
	}

	schema, err := compiler.Compile("travis.json")
	if err != nil {
		return nil, fmt.Errorf("failed to compile embedded schema: %w", err)
	}

	return &Validator{schema: schema}, nil
}

// Validate validates document data against the schema and returns the list
// of violations, empty when the document conforms. The data may be any value
// that marshals to JSON, including the map produced by a YAML parse.
func (v *Validator) Validate(data interface{}) ([]Issue, error) {
	// Round-trip through JSON so YAML-typed values (map[string]interface{},
	// ints vs floats) become plain JSON shapes the schema library expects.
	jsonData, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal document for validation: %w", err)
	}

	var dataToValidate interface{}
	if err := json.Unmarshal(jsonData, &dataToValidate); err != nil {
		return nil, fmt.Errorf("failed to unmarshal document for validation: %w", err)
	}

	if err := v.schema.Validate(dataToValidate); err != nil {
		if validationErr, ok := err.(*jsonschema.ValidationError); ok {
			var issues []Issue
			collectIssues(validationErr, &issues)
			return issues, nil
		}
		return nil, fmt.Errorf("schema validation failed: %w", err)
	}

	return nil, nil
}

// collectIssues recursively collects leaf validation errors. Branch nodes
// repeat what their causes say, so only leaves are reported.
func collectIssues(err *jsonschema.ValidationError, issues *[]Issue) {
	if len(err.Causes) == 0 {
		*issues = append(*issues, Issue{
			Location: err.InstanceLocation,
			Message:  err.Message,
		})
		return
	}
	for _, cause := range err.Causes {
		collectIssues(cause, issues)
	}
}
