package shape

import (
	"context"
	"fmt"
	"log/slog"
	"maps"
	"reflect"
	"slices"
	"sync"
)

// Bindings are plain values a validator expression may refer to by name,
// consulted only when the name is not a registered constructor.
type Bindings map[string]any

// Registry holds named validator constructors.
//
// Names resolve to constructors first; unregistered names fall back to the
// Bindings supplied by the caller, so an expression such as
// "range(0, maxPort)" can mix built-ins with ordinary values.
//
// Registration is additive and last write wins. A Registry is safe for
// concurrent use.
type Registry struct {
	mu       sync.RWMutex
	m        map[string]Constructor // name -> constructor
	logger   *slog.Logger
	compiled *Cache[string, Validator]       // expression source -> validator
	tagged   *Cache[reflect.Type, Validator] // struct type -> tag validator
}

// RegistryContext is a Registry curried with a fixed set of Bindings.
type RegistryContext struct {
	registry *Registry
	env      Bindings
}

type RegistryOpts struct {
	// Constructors are registered after the built-ins and override them.
	Constructors map[string]Constructor
	// ExcludeDefaults leaves the built-in constructors out.
	ExcludeDefaults bool
	// Logger receives debug output. Nil disables logging.
	Logger *slog.Logger
}

func NewRegistry(opts RegistryOpts) (*Registry, error) {
	reg := &Registry{
		m:        make(map[string]Constructor),
		logger:   opts.Logger,
		compiled: NewCache[string, Validator](),
		tagged:   NewCache[reflect.Type, Validator](),
	}
	if reg.logger == nil {
		reg.logger = slog.New(discardHandler{})
	}

	if !opts.ExcludeDefaults {
		for name, c := range defaultConstructors() {
			if err := reg.Register(name, c); err != nil {
				return nil, err
			}
		}
	}

	for _, name := range slices.Sorted(maps.Keys(opts.Constructors)) {
		if err := reg.Register(name, opts.Constructors[name]); err != nil {
			return nil, fmt.Errorf("registering %q: %w", name, err)
		}
	}

	return reg, nil
}

// Register binds name to c, replacing any previous binding.
func (reg *Registry) Register(name string, c Constructor) error {
	if name == "" || c == nil {
		return ErrInvalidRegistration
	}

	reg.mu.Lock()
	_, replaced := reg.m[name]
	reg.m[name] = c
	reg.mu.Unlock()

	// Compiled expressions may refer to the old binding.
	reg.compiled.Clear()
	reg.tagged.Clear()

	reg.logger.Debug("validator registered", "name", name, "replaced", replaced)
	return nil
}

// RegisterValidator registers a fixed validator under name. The resulting
// constructor accepts no arguments.
func (reg *Registry) RegisterValidator(name string, v Validator) error {
	if v == nil {
		return ErrInvalidRegistration
	}
	return reg.Register(name, fixed(name, v))
}

// Lookup returns the constructor registered under name.
func (reg *Registry) Lookup(name string) (Constructor, bool) {
	reg.mu.RLock()
	defer reg.mu.RUnlock()
	c, ok := reg.m[name]
	return c, ok
}

// Resolve returns the Constructor registered under name or, failing that,
// the value bound to name in env. A name bound nowhere is the caller's
// error and yields ErrUnboundName.
func (reg *Registry) Resolve(name string, env Bindings) (any, error) {
	if c, ok := reg.Lookup(name); ok {
		return c, nil
	}
	if v, ok := env[name]; ok {
		reg.logger.Debug("name resolved from bindings", "name", name)
		return v, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUnboundName, name)
}

// Construct calls the constructor registered under name with args.
func (reg *Registry) Construct(name string, args ...any) (Validator, error) {
	c, ok := reg.Lookup(name)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnboundName, name)
	}
	v, err := c(args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return v, nil
}

// Names lists the registered names in sorted order.
func (reg *Registry) Names() []string {
	reg.mu.RLock()
	defer reg.mu.RUnlock()
	return slices.Sorted(maps.Keys(reg.m))
}

// Validate lifts expr into a validator and applies it to value. expr may be
// a Validator, a Constructor, a literal aggregate or an atomic literal.
// Strings are literals here; use Check for textual expressions.
func (reg *Registry) Validate(expr any, value any) error {
	v, err := Lift(expr)
	if err != nil {
		return err
	}
	return v(value)
}

// WithBindings returns a RegistryContext that resolves unregistered names
// through env.
func (reg *Registry) WithBindings(env Bindings) *RegistryContext {
	return &RegistryContext{
		registry: reg,
		env:      env,
	}
}

// Resolve resolves name against the registry, then the context bindings.
func (regCtx *RegistryContext) Resolve(name string) (any, error) {
	return regCtx.registry.Resolve(name, regCtx.env)
}

// Compile compiles src with the context bindings.
func (regCtx *RegistryContext) Compile(src string) (Validator, error) {
	return regCtx.registry.Compile(src, regCtx.env)
}

// Check compiles src with the context bindings and applies it to value.
func (regCtx *RegistryContext) Check(src string, value any) error {
	return regCtx.registry.Check(src, value, regCtx.env)
}

// fixed adapts a ready validator to the Constructor signature.
func fixed(name string, v Validator) Constructor {
	return func(args ...any) (Validator, error) {
		if len(args) != 0 {
			return nil, fmt.Errorf("%w: %s takes no arguments, got %d", ErrBadArguments, name, len(args))
		}
		return v, nil
	}
}

///////////////////////////////////////////////////////////////////////////////
// Logging
///////////////////////////////////////////////////////////////////////////////

// discardHandler is a slog.Handler that discards all log records.
type discardHandler struct{}

func (discardHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (discardHandler) Handle(context.Context, slog.Record) error { return nil }
func (d discardHandler) WithAttrs([]slog.Attr) slog.Handler      { return d }
func (d discardHandler) WithGroup(string) slog.Handler           { return d }

///////////////////////////////////////////////////////////////////////////////
// Global Singleton and Package Functions
///////////////////////////////////////////////////////////////////////////////

var _gRegistry *Registry = nil

func init() {
	var err error
	_gRegistry, err = NewRegistry(RegistryOpts{ExcludeDefaults: false})
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize global Registry: %v", err))
	}
}

// Package-level functions that delegate to the global Registry instance

// Default returns the package-level Registry used by the functions below.
func Default() *Registry {
	return _gRegistry
}

func Register(name string, c Constructor) error {
	return _gRegistry.Register(name, c)
}

func RegisterValidator(name string, v Validator) error {
	return _gRegistry.RegisterValidator(name, v)
}

func Resolve(name string, env Bindings) (any, error) {
	return _gRegistry.Resolve(name, env)
}

func Construct(name string, args ...any) (Validator, error) {
	return _gRegistry.Construct(name, args...)
}

func Validate(expr any, value any) error {
	return _gRegistry.Validate(expr, value)
}

func Compile(src string, env Bindings) (Validator, error) {
	return _gRegistry.Compile(src, env)
}

func Check(src string, value any, env Bindings) error {
	return _gRegistry.Check(src, value, env)
}

func WithBindings(env Bindings) *RegistryContext {
	return _gRegistry.WithBindings(env)
}
