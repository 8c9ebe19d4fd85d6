package shape

import (
	"fmt"
)

// Inter accepts values that satisfy every one of ts. Each validator sees
// the original candidate; the first failure is reported in the
// intersection context.
func Inter(ts ...any) (Validator, error) {
	validators, err := liftAll(ts)
	if err != nil {
		return nil, fmt.Errorf("inter: %w", err)
	}
	return func(value any) error {
		for _, v := range validators {
			if err := WithContext(IntersectionContext, v, value); err != nil {
				return err
			}
		}
		return nil
	}, nil
}

// Union accepts values that satisfy at least one of ts, tried in order.
// When none does, the individual failures are discarded.
func Union(ts ...any) (Validator, error) {
	validators, err := liftAll(ts)
	if err != nil {
		return nil, fmt.Errorf("union: %w", err)
	}
	return func(value any) error {
		for _, v := range validators {
			if v(value) == nil {
				return nil
			}
		}
		return failf(ErrUnionExhausted, UnionExhaustedMessage)
	}, nil
}

// Optional accepts absent values (nil or a nil pointer) and otherwise
// defers to t.
func Optional(t any) (Validator, error) {
	v, err := Lift(t)
	if err != nil {
		return nil, fmt.Errorf("optional: %w", err)
	}
	return func(value any) error {
		if isAbsent(value) {
			return nil
		}
		return WithContext(OptionalContext, v, value)
	}, nil
}

// Any is the top type: it accepts everything.
func Any() Validator {
	return func(any) error { return nil }
}

// None is the bottom type: it rejects everything.
func None() Validator {
	return func(any) error {
		return failf(ErrEmptyType, EmptyTypeMessage)
	}
}
