package shape

import (
	"fmt"
	"math"
)

// defaultConstructors returns the built-ins every registry starts with.
func defaultConstructors() map[string]Constructor {
	return map[string]Constructor{
		NumberName:   fixed(NumberName, Number),
		StringName:   fixed(StringName, String),
		BooleanName:  fixed(BooleanName, Boolean),
		CallableName: fixed(CallableName, Callable),
		ChannelName:  fixed(ChannelName, Channel),
		IntegerName:  fixed(IntegerName, Integer),
		AnyName:      fixed(AnyName, Any()),
		NoneName:     fixed(NoneName, None()),
		UUIDName:     fixed(UUIDName, UUID),
		RangeName:    rangeConstructor,
		TableName:    tableConstructor,
		ListName:     listConstructor,
		InterName:    Inter,
		UnionName:    Union,
		OptionalName: optionalConstructor,
		StructName:   structConstructor,
		LiteralName:  literalConstructor,
	}
}

// rangeConstructor implements range(low?, high?). A missing or nil bound
// leaves that side open.
func rangeConstructor(args ...any) (Validator, error) {
	if len(args) > 2 {
		return nil, fmt.Errorf("%w: range takes at most 2 bounds, got %d", ErrBadArguments, len(args))
	}
	bounds := [2]float64{math.Inf(-1), math.Inf(1)}
	for i, arg := range args {
		if isAbsent(arg) {
			continue
		}
		f, ok := toNumber(arg)
		if !ok {
			return nil, fmt.Errorf("%w: range bound %d must be a number, got %s", ErrBadArguments, i+1, kindName(arg))
		}
		bounds[i] = f
	}
	return Range(bounds[0], bounds[1]), nil
}

// tableConstructor implements table(...), classifying each argument by
// kind: numbers are counts and anything else is a type.
func tableConstructor(args ...any) (Validator, error) {
	tableArgs := make([]TableArg, 0, len(args))
	for _, arg := range args {
		if ta, ok := arg.(TableArg); ok {
			tableArgs = append(tableArgs, ta)
			continue
		}
		if f, ok := toNumber(arg); ok && isAtomic(arg) {
			n, err := countArg(f)
			if err != nil {
				return nil, err
			}
			tableArgs = append(tableArgs, Count(n))
			continue
		}
		tableArgs = append(tableArgs, Type(arg))
	}
	return Table(tableArgs...)
}

func listConstructor(args ...any) (Validator, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("%w: list takes 1 type, got %d", ErrBadArguments, len(args))
	}
	return List(args[0])
}

func optionalConstructor(args ...any) (Validator, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("%w: optional takes 1 type, got %d", ErrBadArguments, len(args))
	}
	return Optional(args[0])
}

func structConstructor(args ...any) (Validator, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("%w: struct takes 1 field map, got %d", ErrBadArguments, len(args))
	}
	switch fields := args[0].(type) {
	case Fields, map[string]any, map[any]any:
		return Lift(fields)
	default:
		return nil, fmt.Errorf("%w: struct takes a field map, got %T", ErrBadArguments, args[0])
	}
}

func literalConstructor(args ...any) (Validator, error) {
	if len(args) != 1 {
		return nil, fmt.Errorf("%w: literal takes 1 value, got %d", ErrBadArguments, len(args))
	}
	return Literal(args[0]), nil
}
