// Package shape provides a small algebra of composable validators for
// checking dynamically-typed values at the boundary where they enter typed
// code: decoded JSON, map[string]any payloads, interface arguments.
//
// A Validator is a func(any) error. It returns nil when the value conforms
// and a *ValidationError describing the first violation otherwise.
// Validators are built from:
//   - primitives: Number, String, Boolean, Callable, Channel, Integer, UUID
//   - numeric bounds: Range, AtLeast, AtMost
//   - aggregates: Table (with Count and Type arguments) and List
//   - literals: Struct for literal aggregates, Literal for atomic values
//   - combinators: Inter, Union, Optional, Any, None
//
// Anywhere a validator is expected, a literal may be used instead and is
// lifted implicitly (see Lift): a Fields map becomes a Struct and a string,
// number or boolean becomes a Literal.
//
// When a nested validator fails, every enclosing combinator prepends a
// context frame, so the rendered error reads as a shallow trace:
//
//	in table value:
//	in struct field port:
//	value in range [1, 65535] expected, got 70000
//
// The frames stay available on the ValidationError for tooling, and the
// error unwraps to a failure kind such as ErrOutOfRange.
//
// Validators can also be written as text and compiled against a Registry,
// which maps names to constructors:
//
//	v, err := shape.Compile(`list({"name": string, "port": range(1, maxPort)})`,
//		shape.Bindings{"maxPort": 65535})
//
// Names that are not registered fall back to the Bindings given by the
// caller. Register adds constructors of your own. The package-level
// functions use a default Registry seeded with the built-ins; create
// isolated ones with NewRegistry.
//
// Struct types can carry their validators in `shape` tags and be checked
// with ValidateStruct. Documents can be checked directly: JSON with
// ValidateJSON and ValidateJSONPath, YAML with ValidateYAML and HCL
// attribute files with ValidateHCL. Each decodes into plain maps, slices
// and scalars first.
package shape
