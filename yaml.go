package shape

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// FromYAML decodes the first document in data. Mappings with string keys
// become map[string]any, other mappings map[any]any, sequences []any.
// Integers stay int. An empty document decodes to nil.
func FromYAML(data []byte) (any, error) {
	var value any
	if err := yaml.Unmarshal(data, &value); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidYAML, err)
	}
	return value, nil
}

// ValidateYAML decodes data and validates the document against t.
func ValidateYAML(t any, data []byte) error {
	return ValidateSource(t, YAMLSource{Data: data})
}

// YAMLSource selects the part of a YAML document a check applies to.
type YAMLSource struct {
	Data []byte
	Path string // gjson path; empty selects the whole document
}

// Value decodes the selected part of the document.
func (s YAMLSource) Value() (any, error) {
	value, err := FromYAML(s.Data)
	if err != nil {
		return nil, err
	}
	return selectPath(value, s.Path)
}
