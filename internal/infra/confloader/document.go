// Package confloader provides configuration loading mechanism.
package confloader

import (
	"fmt"

	"go.yaml.in/yaml/v3"
)

// Document is one parsed YAML mapping with its top-level key order
// preserved. The server config file is projected into flag tokens, so
// the order entries are visited in decides which error is reported
// first; map iteration would make that nondeterministic.
type Document struct {
	keys   []string
	values map[string]any
}

// DocumentError reports a config document whose top level is not a
// mapping, e.g. a bare scalar or an empty document.
type DocumentError struct {
	Value any
}

func (e *DocumentError) Error() string {
	return fmt.Sprintf("invalid config: %v", e.Value)
}

// ParseDocument parses raw YAML and requires a mapping at the top
// level. Scalar values decode into their natural Go types (bool, int,
// string); sequences decode into []any.
func ParseDocument(raw []byte) (*Document, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(raw, &root); err != nil {
		return nil, err
	}

	if root.Kind != yaml.DocumentNode || len(root.Content) == 0 {
		return nil, &DocumentError{}
	}
	top := root.Content[0]
	if top.Kind != yaml.MappingNode {
		var v any
		_ = top.Decode(&v)
		return nil, &DocumentError{Value: v}
	}

	doc := &Document{values: make(map[string]any, len(top.Content)/2)}
	for i := 0; i+1 < len(top.Content); i += 2 {
		key := top.Content[i].Value
		var val any
		if err := top.Content[i+1].Decode(&val); err != nil {
			return nil, err
		}
		if _, exists := doc.values[key]; !exists {
			doc.keys = append(doc.keys, key)
		}
		doc.values[key] = val
	}
	return doc, nil
}

// Keys returns the top-level keys in file order.
func (d *Document) Keys() []string { return d.keys }

// Get returns the decoded value for a key, or nil.
func (d *Document) Get(key string) any { return d.values[key] }

// Len is the number of distinct top-level keys.
func (d *Document) Len() int { return len(d.keys) }
