package shape

import (
	"math"
	"reflect"
)

// kindValidator accepts values whose dynamic kind is exactly kind.
func kindValidator(kind string) Validator {
	return func(value any) error {
		if kindName(value) != kind {
			return failf(ErrKindMismatch, "%s expected", kind)
		}
		return nil
	}
}

var (
	// Number accepts every Go integer and floating point kind.
	Number Validator = kindValidator(NumberName)

	// String accepts string kinds.
	String Validator = kindValidator(StringName)

	// Boolean accepts bool kinds.
	Boolean Validator = kindValidator(BooleanName)

	// Callable accepts func values.
	Callable Validator = kindValidator(CallableName)

	// Channel accepts channel values, Go's handle on concurrent work.
	Channel Validator = kindValidator(ChannelName)
)

// Integer accepts numbers with a zero fractional part.
var Integer Validator = func(value any) error {
	if !isIntegral(value) {
		return failf(ErrNotInteger, NotIntegerMessage)
	}
	return nil
}

// Range accepts numbers v with low <= v <= high. Pass math.Inf(-1) or
// math.Inf(1) to leave a side unbounded.
func Range(low, high float64) Validator {
	return func(value any) error {
		v, ok := toNumber(value)
		if !ok {
			return failf(ErrKindMismatch, "%s expected", NumberName)
		}
		if v < low || v > high || math.IsNaN(v) {
			return failf(ErrOutOfRange, "value in range [%s, %s] expected, got %s",
				formatNumber(low), formatNumber(high), formatNumber(v))
		}
		return nil
	}
}

// AtLeast is Range(low, +infinity).
func AtLeast(low float64) Validator {
	return Range(low, math.Inf(1))
}

// AtMost is Range(-infinity, high).
func AtMost(high float64) Validator {
	return Range(math.Inf(-1), high)
}

// isKind reports whether value is a non-nil value of the given reflect kind
// after dereferencing pointers.
func isKind(value any, kind reflect.Kind) bool {
	rv, ok := indirect(value)
	return ok && rv.Kind() == kind
}
