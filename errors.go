package shape

import (
	"errors"
	"fmt"
	"strings"
)

///////////////////////////////////////////////////////////////////////////////
// Errors
///////////////////////////////////////////////////////////////////////////////

// Failure kinds. Every ValidationError unwraps to exactly one of these.
var (
	ErrKindMismatch    = errors.New("kind mismatch")
	ErrNotInteger      = errors.New("not an integer")
	ErrOutOfRange      = errors.New("value out of range")
	ErrNotAggregate    = errors.New("not an aggregate")
	ErrCount           = errors.New("element count out of range")
	ErrUnionExhausted  = errors.New("union exhausted")
	ErrLiteralMismatch = errors.New("literal mismatch")
	ErrEmptyType       = errors.New("empty type")
	ErrFormat          = errors.New("invalid format")
)

// Construction and resolution errors. These are returned while building
// a validator, never while applying one.
var (
	ErrTooManyNumbers      = errors.New("too many numbers")
	ErrTooManyTypes        = errors.New("too many types")
	ErrNotAValidator       = errors.New("value cannot be used as a validator")
	ErrBadArguments        = errors.New("bad constructor arguments")
	ErrInvalidRegistration = errors.New("invalid registration: name must be non-empty and constructor non-nil")
	ErrUnboundName         = errors.New("name is neither registered nor bound")
	ErrNotAConstructor     = errors.New("name does not resolve to a constructor")
	ErrSyntax              = errors.New("syntax error in validator expression")
	ErrInvalidJSON         = errors.New("invalid JSON document")
	ErrInvalidYAML         = errors.New("invalid YAML document")
	ErrInvalidHCL          = errors.New("invalid HCL document")
	ErrFactoryPanic        = errors.New("cache factory panicked")
)

// ValidationError is the failure returned by an applied Validator.
//
// Frames holds the context contributed by each enclosing combinator,
// outermost first. Message describes the innermost violation and Kind
// classifies it; errors.Is(err, ErrUnionExhausted) and friends work
// through Unwrap.
type ValidationError struct {
	Frames  []string
	Message string
	Kind    error
}

// Error renders the chain the way it would read as a nested trace:
//
//	in table value:
//	integer expected
func (ve *ValidationError) Error() string {
	if len(ve.Frames) == 0 {
		return ve.Message
	}
	var sb strings.Builder
	for _, frame := range ve.Frames {
		sb.WriteString(frame)
		sb.WriteString(":\n")
	}
	sb.WriteString(ve.Message)
	return sb.String()
}

// Unwrap implements the errors.Unwrap interface
func (ve *ValidationError) Unwrap() error {
	return ve.Kind
}

// Leaf returns the innermost message without any context frames.
func (ve *ValidationError) Leaf() string {
	return ve.Message
}

// Depth is the number of enclosing combinators that contributed context.
func (ve *ValidationError) Depth() int {
	return len(ve.Frames)
}

// failf builds a leaf ValidationError of the given kind.
func failf(kind error, format string, args ...any) *ValidationError {
	return &ValidationError{
		Message: fmt.Sprintf(format, args...),
		Kind:    kind,
	}
}

// nest returns a copy of err with prefix prepended to its frames.
// Errors that did not come from this package become the leaf message,
// so custom validators registered by callers still nest cleanly.
func nest(prefix string, err error) *ValidationError {
	var ve *ValidationError
	if !errors.As(err, &ve) {
		return &ValidationError{
			Frames:  []string{prefix},
			Message: err.Error(),
			Kind:    err,
		}
	}

	frames := make([]string, 0, len(ve.Frames)+1)
	frames = append(frames, prefix)
	frames = append(frames, ve.Frames...)
	return &ValidationError{
		Frames:  frames,
		Message: ve.Message,
		Kind:    ve.Kind,
	}
}

// AsValidationError extracts a *ValidationError from err.
func AsValidationError(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}

// IsValidationError reports whether err is a failed validation, as opposed
// to a construction or resolution error.
func IsValidationError(err error) bool {
	_, ok := AsValidationError(err)
	return ok
}
