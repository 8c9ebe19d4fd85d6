package shape

import (
	"fmt"
	"maps"
	"slices"

	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/gocty"
)

// FromHCL decodes an HCL file made of top-level attributes into a
// map[string]any. Attribute expressions are evaluated without variables or
// functions, so only literal values are accepted. Blocks are rejected.
func FromHCL(data []byte, filename string) (any, error) {
	file, diags := hclparse.NewParser().ParseHCL(data, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("%w: %w", ErrInvalidHCL, diags)
	}

	attrs, diags := file.Body.JustAttributes()
	if diags.HasErrors() {
		return nil, fmt.Errorf("%w: %w", ErrInvalidHCL, diags)
	}

	out := make(map[string]any, len(attrs))
	for _, name := range slices.Sorted(maps.Keys(attrs)) {
		val, diags := attrs[name].Expr.Value(nil)
		if diags.HasErrors() {
			return nil, fmt.Errorf("%w: %w", ErrInvalidHCL, diags)
		}
		native, err := ctyToNative(val)
		if err != nil {
			return nil, fmt.Errorf("%w: attribute %s: %w", ErrInvalidHCL, name, err)
		}
		out[name] = native
	}
	return out, nil
}

// ValidateHCL decodes data and validates the attributes against t.
func ValidateHCL(t any, data []byte, filename string) error {
	return ValidateSource(t, HCLSource{Data: data, Filename: filename})
}

// HCLSource selects the part of an HCL file a check applies to.
type HCLSource struct {
	Data     []byte
	Filename string // reported in diagnostics
	Path     string // gjson path; empty selects every attribute
}

// Value decodes the selected part of the file.
func (s HCLSource) Value() (any, error) {
	filename := s.Filename
	if filename == "" {
		filename = "<hcl>"
	}
	value, err := FromHCL(s.Data, filename)
	if err != nil {
		return nil, err
	}
	return selectPath(value, s.Path)
}

// ctyToNative converts a cty.Value into the dynamic value model: numbers
// become float64, lists, sets and tuples []any, maps and objects
// map[string]any. Null and unknown values become nil.
func ctyToNative(v cty.Value) (any, error) {
	if v.IsNull() || !v.IsKnown() {
		return nil, nil
	}

	ty := v.Type()
	switch {
	case ty == cty.String:
		return v.AsString(), nil

	case ty == cty.Number:
		var f float64
		if err := gocty.FromCtyValue(v, &f); err != nil {
			// Out of float64 range: round to the nearest float64, which
			// is an infinity or zero.
			f, _ = v.AsBigFloat().Float64()
		}
		return f, nil

	case ty == cty.Bool:
		return v.True(), nil

	case ty.IsListType() || ty.IsSetType() || ty.IsTupleType():
		out := make([]any, 0)
		for it := v.ElementIterator(); it.Next(); {
			_, elem := it.Element()
			native, err := ctyToNative(elem)
			if err != nil {
				return nil, err
			}
			out = append(out, native)
		}
		return out, nil

	case ty.IsMapType() || ty.IsObjectType():
		out := make(map[string]any)
		for it := v.ElementIterator(); it.Next(); {
			key, elem := it.Element()
			native, err := ctyToNative(elem)
			if err != nil {
				return nil, fmt.Errorf("in attribute %q: %w", key.AsString(), err)
			}
			out[key.AsString()] = native
		}
		return out, nil

	default:
		return nil, fmt.Errorf("unsupported value of type %s", ty.FriendlyName())
	}
}
