package shape

import (
	"fmt"
	"slices"
)

// fieldValidator is one entry of a Struct, applied in key order so the reported violation
// does not depend on map iteration.
type fieldValidator struct {
	key       string
	validator Validator
	context   string
}

// Struct builds a structural validator from a literal aggregate. The
// candidate must be an aggregate, and for every key of fields the
// candidate's value under that key must satisfy the field's type. Missing
// keys are validated as nil, so only Optional fields may be left out.
// Keys the candidate has beyond fields are not inspected.
func Struct(fields Fields) (Validator, error) {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	validators := make([]fieldValidator, 0, len(keys))
	for _, k := range keys {
		v, err := Lift(fields[k])
		if err != nil {
			return nil, fmt.Errorf("struct field %s: %w", k, err)
		}
		validators = append(validators, fieldValidator{
			key:       k,
			validator: v,
			context:   StructFieldContext + " " + k,
		})
	}

	return func(value any) error {
		agg, ok := asAggregate(value)
		if !ok {
			return failf(ErrNotAggregate, NotAggregateMessage)
		}
		for _, fv := range validators {
			field, _ := agg.lookup(fv.key)
			if err := WithContext(fv.context, fv.validator, field); err != nil {
				return err
			}
		}
		return nil
	}, nil
}

// Literal accepts only values equal to x. Numbers compare by value, so
// Literal(1) accepts int8(1) and 1.0 alike.
func Literal(x any) Validator {
	expected := formatLiteral(x)
	return func(value any) error {
		if !literalEqual(x, value) {
			return failf(ErrLiteralMismatch, "%s expected", expected)
		}
		return nil
	}
}
