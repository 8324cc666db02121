package travis

import (
	"fmt"
	"io"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/travkit/travkit/schema"
)

// Issue is a single validation problem: the offending key and a
// human-readable message. A document is valid iff its issue list is empty.
type Issue struct {
	Key     string
	Message string
}

func (i Issue) String() string {
	return fmt.Sprintf("%s: %s", i.Key, i.Message)
}

// Validator checks candidate CI documents against the provider schema.
type Validator struct {
	schema *schema.Validator

	// ErrStream receives issue reports from Valid. Defaults to stderr.
	ErrStream io.Writer
}

// NewValidator creates a validator backed by the embedded provider schema.
func NewValidator() (*Validator, error) {
	sv, err := schema.NewValidator()
	if err != nil {
		return nil, err
	}
	return &Validator{schema: sv, ErrStream: os.Stderr}, nil
}

// CheckFile validates the document at path. A file that cannot be read or
// parsed yields exactly one issue describing the failure; a parsed document
// yields one issue per schema violation.
func (v *Validator) CheckFile(path string) []Issue {
	data, err := os.ReadFile(path)
	if err != nil {
		return []Issue{{Key: path, Message: fmt.Sprintf("unable to read: %v", err)}}
	}
	return v.Check(data, path)
}

// Check validates raw document bytes. The path is used only for issue
// reporting.
func (v *Validator) Check(data []byte, path string) []Issue {
	var doc map[string]interface{}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return []Issue{{Key: path, Message: fmt.Sprintf("invalid YAML: %v", err)}}
	}

	schemaIssues, err := v.schema.Validate(doc)
	if err != nil {
		return []Issue{{Key: path, Message: err.Error()}}
	}

	issues := make([]Issue, 0, len(schemaIssues))
	for _, si := range schemaIssues {
		issues = append(issues, Issue{
			Key:     keyFromLocation(si.Location),
			Message: si.Message,
		})
	}
	return issues
}

// Valid reports whether the document at path is valid, writing each issue
// to the validator's error stream as a side effect.
func (v *Validator) Valid(path string) bool {
	issues := v.CheckFile(path)
	for _, issue := range issues {
		fmt.Fprintf(v.errStream(), "%s\n", issue)
	}
	return len(issues) == 0
}

func (v *Validator) errStream() io.Writer {
	if v.ErrStream != nil {
		return v.ErrStream
	}
	return os.Stderr
}

// keyFromLocation converts a JSON-pointer instance location ("/rvm/0") into
// the top-level document key it falls under.
func keyFromLocation(loc string) string {
	loc = strings.TrimPrefix(loc, "/")
	if loc == "" {
		return "document"
	}
	if idx := strings.Index(loc, "/"); idx >= 0 {
		return loc[:idx]
	}
	return loc
}
