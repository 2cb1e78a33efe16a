// Package notes renders catalog entries as markdown notes with YAML
// frontmatter.
package notes

import (
	"bytes"
	"fmt"

	"gopkg.in/yaml.v3"
)

// Frontmatter provides typed access to YAML frontmatter with insertion
// order preserved for deterministic serialization.
type Frontmatter struct {
	fields map[string]any
	keys   []string
}

// NewFrontmatter creates a new empty Frontmatter.
func NewFrontmatter() *Frontmatter {
	return &Frontmatter{fields: make(map[string]any)}
}

// Set stores a value for key. Setting an existing key overwrites its
// value without changing its position.
func (f *Frontmatter) Set(key string, value any) {
	if _, exists := f.fields[key]; !exists {
		f.keys = append(f.keys, key)
	}
	f.fields[key] = value
}

// Get returns the value stored for key, if any.
func (f *Frontmatter) Get(key string) (any, bool) {
	v, ok := f.fields[key]
	return v, ok
}

// Marshal serializes the frontmatter block including delimiters.
func (f *Frontmatter) Marshal() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString("---\n")

	for _, key := range f.keys {
		entry := map[string]any{key: f.fields[key]}
		out, err := yaml.Marshal(entry)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal frontmatter key %q: %w", key, err)
		}
		buf.Write(out)
	}

	buf.WriteString("---\n")
	return buf.Bytes(), nil
}
