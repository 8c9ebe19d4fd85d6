package shape

import (
	"encoding/json"
	"fmt"
)

// Source yields the candidate value of a decoded document.
type Source interface {
	Value() (any, error)
}

var (
	_ Source = JSONSource{}
	_ Source = YAMLSource{}
	_ Source = HCLSource{}
)

// ValidateSource decodes src and validates the result against t, which may
// be anything Lift accepts. Decoding failures are returned as they are and
// are not ValidationErrors.
func ValidateSource(t any, src Source) error {
	v, err := Lift(t)
	if err != nil {
		return err
	}
	value, err := src.Value()
	if err != nil {
		return err
	}
	return v(value)
}

// selectPath applies a gjson path to a value decoded from a non-JSON
// document by re-encoding it as JSON. The empty path selects value itself.
func selectPath(value any, path string) (any, error) {
	if path == "" {
		return value, nil
	}
	data, err := json.Marshal(value)
	if err != nil {
		return nil, fmt.Errorf("selecting %q: %w", path, err)
	}
	return JSONSource{Data: data, Path: path}.Value()
}
