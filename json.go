package shape

import (
	"github.com/tidwall/gjson"
)

// FromJSON decodes a JSON document into the dynamic value model: objects
// become map[string]any, arrays []any, numbers float64.
func FromJSON(data []byte) (any, error) {
	if !gjson.ValidBytes(data) {
		return nil, ErrInvalidJSON
	}
	return gjson.ParseBytes(data).Value(), nil
}

// ValidateJSON decodes data and validates the document against t, which may
// be anything Lift accepts.
func ValidateJSON(t any, data []byte) error {
	return ValidateJSONPath(t, data, "")
}

// ValidateJSONPath validates the part of data selected by a gjson path.
// A path that selects nothing validates nil, so only Optional types accept
// a missing path.
func ValidateJSONPath(t any, data []byte, path string) error {
	return ValidateSource(t, JSONSource{Data: data, Path: path})
}

// JSONSource selects the document part a check applies to.
type JSONSource struct {
	Data []byte
	Path string // gjson path; empty selects the whole document
}

// Value decodes the selected part of the document.
func (s JSONSource) Value() (any, error) {
	if !gjson.ValidBytes(s.Data) {
		return nil, ErrInvalidJSON
	}
	if s.Path == "" {
		return gjson.ParseBytes(s.Data).Value(), nil
	}
	res := gjson.GetBytes(s.Data, s.Path)
	if !res.Exists() {
		return nil, nil
	}
	return res.Value(), nil
}

// Validate validates the selected part of the document against v.
func (s JSONSource) Validate(v Validator) error {
	return ValidateSource(v, s)
}
