package shape

import (
	"fmt"
	"math"
)

// TableArg is one argument to Table: either an element count bound or a
// key/value type. Build them with Count and Type.
type TableArg struct {
	count  int
	typ    any
	isType bool
}

// Count is an element count bound. The first Count given is the lower
// bound and the second the upper bound; a single Count fixes both.
// Negative counts are rejected by Table.
func Count(n int) TableArg {
	return TableArg{count: n}
}

// Type is a key or value type. A single Type constrains values and leaves
// keys as integers; two Types constrain keys and values respectively.
func Type(t any) TableArg {
	return TableArg{typ: t, isType: true}
}

// String implements fmt.Stringer
func (a TableArg) String() string {
	if a.isType {
		return fmt.Sprintf("Type(%T)", a.typ)
	}
	return fmt.Sprintf("Count(%d)", a.count)
}

// tableSpec is the classified argument list of a table validator.
type tableSpec struct {
	counts []int
	types  []any
}

func classifyTableArgs(args []TableArg) (tableSpec, error) {
	var spec tableSpec
	for _, arg := range args {
		if arg.isType {
			if len(spec.types) == 2 {
				return tableSpec{}, ErrTooManyTypes
			}
			spec.types = append(spec.types, arg.typ)
			continue
		}
		if len(spec.counts) == 2 {
			return tableSpec{}, ErrTooManyNumbers
		}
		if arg.count < 0 {
			return tableSpec{}, fmt.Errorf("%w: element count %d", ErrBadArguments, arg.count)
		}
		spec.counts = append(spec.counts, arg.count)
	}
	return spec, nil
}

// Table validates aggregates: maps, slices, arrays and structs.
//
// A candidate must be an aggregate; its sequence length must lie within
// the count bounds when any were given; and every key and value present,
// not only the sequence part, must satisfy the key and value types.
func Table(args ...TableArg) (Validator, error) {
	spec, err := classifyTableArgs(args)
	if err != nil {
		return nil, err
	}

	low, high := -1, -1
	switch len(spec.counts) {
	case 1:
		low, high = spec.counts[0], spec.counts[0]
	case 2:
		low, high = spec.counts[0], spec.counts[1]
	}

	var keyType, valueType Validator
	switch len(spec.types) {
	case 1:
		keyType = Integer
		if valueType, err = Lift(spec.types[0]); err != nil {
			return nil, fmt.Errorf("table value type: %w", err)
		}
	case 2:
		if keyType, err = Lift(spec.types[0]); err != nil {
			return nil, fmt.Errorf("table key type: %w", err)
		}
		if valueType, err = Lift(spec.types[1]); err != nil {
			return nil, fmt.Errorf("table value type: %w", err)
		}
	}

	return func(value any) error {
		agg, ok := asAggregate(value)
		if !ok {
			return failf(ErrNotAggregate, NotAggregateMessage)
		}

		if low >= 0 || high >= 0 {
			n := agg.sequenceLength()
			if low >= 0 && n < low {
				return failf(ErrCount, NotEnoughMessage)
			}
			if high >= 0 && n > high {
				return failf(ErrCount, TooManyMessage)
			}
		}

		if keyType == nil && valueType == nil {
			return nil
		}
		for _, e := range agg.entries() {
			if keyType != nil {
				if err := WithContext(TableKeyContext, keyType, e.key); err != nil {
					return err
				}
			}
			if valueType != nil {
				if err := WithContext(TableValueContext, valueType, e.value); err != nil {
					return err
				}
			}
		}
		return nil
	}, nil
}

// List is Table(Type(Integer), Type(t)): integer keys, values of type t.
func List(t any) (Validator, error) {
	return Table(Type(Integer), Type(t))
}

// countArg converts a dynamic numeric argument to a count. Counts must be
// non-negative whole numbers.
func countArg(f float64) (int, error) {
	if f < 0 || f != math.Trunc(f) || f > math.MaxInt32 {
		return 0, fmt.Errorf("%w: element count %s", ErrBadArguments, formatNumber(f))
	}
	return int(f), nil
}
