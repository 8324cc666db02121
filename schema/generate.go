package schema

import (
	"encoding/json"

	"github.com/invopop/jsonschema"
)

// DocumentSchema mirrors the recognized keys of the generated CI document.
// It exists only as a reflection source for schema generation; the document
// itself is built as a plain map so falsy keys can be pruned.
type DocumentSchema struct {
	AfterScript   []string               `json:"after_script,omitempty" jsonschema:"minItems=1,description=Commands run after the build script"`
	BeforeScript  []string               `json:"before_script,omitempty" jsonschema:"minItems=1,description=Commands run before the build script"`
	Language      string                 `json:"language,omitempty" jsonschema:"minLength=1,description=CI language tag"`
	Notifications map[string]interface{} `json:"notifications,omitempty" jsonschema:"minProperties=1,description=Notification targets keyed by channel (email; irc; ...)"`
	Rvm           []string               `json:"rvm,omitempty" jsonschema:"minItems=1,description=Interpreter versions to build against"`
	Script        string                 `json:"script,omitempty" jsonschema:"minLength=1,description=Build command"`
}

// GenerateSchema reflects the document schema for the generated CI file.
// The result is committed as travis.embedded.schema.json and embedded at
// build time; regenerate with tools/schema-generator after changing the
// recognized key set.
func GenerateSchema() ([]byte, error) {
	r := &jsonschema.Reflector{
		// The document may only carry recognized keys.
		AllowAdditionalProperties: false,
		// Expand struct references instead of using $ref for a cleaner schema.
		ExpandedStruct: true,
	}

	schema := r.Reflect(&DocumentSchema{})
	schema.Title = "Travis CI Document"
	schema.Description = "Schema for the generated .travis.yml document."
	schema.Version = "http://json-schema.org/draft-07/schema#"

	return json.MarshalIndent(schema, "", "  ")
}
