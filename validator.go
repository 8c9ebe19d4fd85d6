package shape

import (
	"fmt"
)

///////////////////////////////////////////////////////////////////////////////
// Validator Impl.
///////////////////////////////////////////////////////////////////////////////

// Validator checks a candidate value. It returns nil when the value is
// accepted and a *ValidationError describing the first violation otherwise.
//
// Validators close over their construction parameters and never mutate
// the candidate, so the same validator may be shared across goroutines.
type Validator func(value any) error

// Constructor builds a Validator from dynamic arguments. Constructors are
// what a Registry stores; a constructor that accepts zero arguments can be
// used wherever a validator is expected.
type Constructor func(args ...any) (Validator, error)

// Fields is a literal aggregate: field name to anything Lift accepts.
type Fields map[string]any

// Validate applies v to value. A nil Validator accepts everything.
func (v Validator) Validate(value any) error {
	if v == nil {
		return nil
	}
	return v(value)
}

// WithContext applies t to value and, on failure, prefixes the failure with
// the given context frame. It is the only place combinators attribute blame
// to the sub-position that failed.
func WithContext(prefix string, t Validator, value any) error {
	err := t(value)
	if err == nil {
		return nil
	}
	return nest(prefix, err)
}

// Lift turns anything that may appear where a validator is expected into a
// Validator:
//   - a Validator (or func(any) error) is returned as is
//   - a Constructor is called with no arguments
//   - Fields, map[string]any and map[any]any literals become Struct validators
//   - strings, numbers and booleans become Literal validators
func Lift(x any) (Validator, error) {
	switch t := x.(type) {
	case nil:
		return nil, fmt.Errorf("%w: nil", ErrNotAValidator)
	case Validator:
		if t == nil {
			return nil, fmt.Errorf("%w: nil validator", ErrNotAValidator)
		}
		return t, nil
	case func(any) error:
		if t == nil {
			return nil, fmt.Errorf("%w: nil validator", ErrNotAValidator)
		}
		return Validator(t), nil
	case Constructor:
		if t == nil {
			return nil, fmt.Errorf("%w: nil constructor", ErrNotAValidator)
		}
		return t()
	case func(...any) (Validator, error):
		if t == nil {
			return nil, fmt.Errorf("%w: nil constructor", ErrNotAValidator)
		}
		return Constructor(t)()
	case Fields:
		return Struct(t)
	case map[string]any:
		return Struct(Fields(t))
	case map[any]any:
		fields := make(Fields, len(t))
		for k, v := range t {
			key, ok := k.(string)
			if !ok {
				return nil, fmt.Errorf("%w: struct literal key %v is not a string", ErrNotAValidator, k)
			}
			fields[key] = v
		}
		return Struct(fields)
	}

	if isAtomic(x) {
		return Literal(x), nil
	}

	return nil, fmt.Errorf("%w: %T", ErrNotAValidator, x)
}

// MustLift is like Lift but panics on error. It is meant for package-level
// validator declarations.
func MustLift(x any) Validator {
	v, err := Lift(x)
	if err != nil {
		panic(fmt.Sprintf("shape: %v", err))
	}
	return v
}

// liftAll lifts every argument, stopping at the first failure.
func liftAll(xs []any) ([]Validator, error) {
	out := make([]Validator, 0, len(xs))
	for i, x := range xs {
		v, err := Lift(x)
		if err != nil {
			return nil, fmt.Errorf("argument %d: %w", i+1, err)
		}
		out = append(out, v)
	}
	return out, nil
}
