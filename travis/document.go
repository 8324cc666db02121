// Package travis generates and validates the CI document (.travis.yml)
// consumed by the CI provider.
package travis

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/travkit/travkit/config"
)

// FileName is the repository-relative path of the generated CI document.
const FileName = ".travis.yml"

// Document is the CI configuration restricted to recognized keys. It is
// held as a plain map so serialization can prune falsy values and emit keys
// in alphabetical order.
type Document struct {
	fields map[string]interface{}
}

// FromResolved builds a document from resolved configuration. Keys whose
// value is empty, false, or an empty collection are omitted entirely; this
// holds recursively, so a notifications block whose every channel is empty
// disappears along with its channels.
func FromResolved(r config.Resolved) *Document {
	fields := map[string]interface{}{
		"after_script":  r.AfterScript,
		"before_script": r.BeforeScript,
		"language":      r.Language,
		"notifications": r.Notifications,
		"rvm":           r.Versions,
		"script":        r.Script,
	}

	pruned := make(map[string]interface{}, len(fields))
	for k, v := range fields {
		if v = prune(v); v != nil {
			pruned[k] = v
		}
	}

	return &Document{fields: pruned}
}

// Fields returns the document's key set. The map is shared; callers must
// treat it as read-only.
func (d *Document) Fields() map[string]interface{} {
	return d.fields
}

// Marshal serializes the document. yaml.v3 emits map keys in sorted order,
// which keeps the output deterministic for snapshot comparison.
func (d *Document) Marshal() ([]byte, error) {
	return yaml.Marshal(d.fields)
}

// WriteFile serializes the document and writes it to path.
func (d *Document) WriteFile(path string) error {
	data, err := d.Marshal()
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// DefaultPath returns the document path inside the given repository root.
func DefaultPath(root string) string {
	return filepath.Join(root, FileName)
}

// prune drops falsy values: nil, false, empty strings, and collections that
// are empty after their own elements were pruned. Returns nil for a value
// that should be omitted.
func prune(v interface{}) interface{} {
	switch val := v.(type) {
	case nil:
		return nil
	case bool:
		if !val {
			return nil
		}
		return val
	case string:
		if val == "" {
			return nil
		}
		return val
	case []string:
		if len(val) == 0 {
			return nil
		}
		return val
	case []interface{}:
		kept := make([]interface{}, 0, len(val))
		for _, item := range val {
			if item = prune(item); item != nil {
				kept = append(kept, item)
			}
		}
		if len(kept) == 0 {
			return nil
		}
		return kept
	case map[string]interface{}:
		kept := make(map[string]interface{}, len(val))
		for k, item := range val {
			if item = prune(item); item != nil {
				kept[k] = item
			}
		}
		if len(kept) == 0 {
			return nil
		}
		return kept
	default:
		return val
	}
}
