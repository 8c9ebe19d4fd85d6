package shape

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/bazelbuild/buildtools/build"
)

// exprFilename is the file name reported by the Starlark parser.
const exprFilename = "<shape>"

// Compile parses src as a validator expression and builds the validator it
// describes. The syntax is Starlark:
//
//	list(integer)
//	table(2, 4, string, number)
//	{"name": string, "port": optional(range(1, maxPort))}
//	union("on", "off", boolean)
//
// Identifiers resolve to registered constructors first and to env second.
// Constructors named without a call are invoked with no arguments; other
// bound values are used as they are. None and nil stand for an absent
// argument, as in range(None, 5). Strings, numbers and booleans in type
// position are literals.
//
// Expressions compiled without bindings are cached until the next Register.
func (reg *Registry) Compile(src string, env Bindings) (Validator, error) {
	if len(env) != 0 {
		return reg.compile(src, env)
	}
	if v, ok := reg.compiled.Get(src); ok {
		reg.logger.Debug("compiled expression cache hit", "expr", src)
		return v, nil
	}
	return reg.compiled.GetOrCreate(src, func() (Validator, error) {
		return reg.compile(src, nil)
	})
}

// MustCompile is like Compile but panics on error.
func (reg *Registry) MustCompile(src string, env Bindings) Validator {
	v, err := reg.Compile(src, env)
	if err != nil {
		panic(fmt.Sprintf("shape: compiling %q: %v", src, err))
	}
	return v
}

// Check compiles src and applies it to value.
func (reg *Registry) Check(src string, value any, env Bindings) error {
	v, err := reg.Compile(src, env)
	if err != nil {
		return err
	}
	return v(value)
}

func (reg *Registry) compile(src string, env Bindings) (Validator, error) {
	expr, err := parseExpr(src)
	if err != nil {
		return nil, err
	}

	ev := &evaluator{registry: reg, env: env}
	x, err := ev.eval(expr)
	if err != nil {
		return nil, err
	}

	v, err := Lift(x)
	if err != nil {
		return nil, fmt.Errorf("expression %q: %w", src, err)
	}
	return v, nil
}

// parseExpr parses src and returns its single expression statement.
func parseExpr(src string) (build.Expr, error) {
	if strings.TrimSpace(src) == "" {
		return nil, fmt.Errorf("%w: empty expression", ErrSyntax)
	}

	f, err := build.ParseDefault(exprFilename, []byte(src))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSyntax, err)
	}

	var stmts []build.Expr
	for _, stmt := range f.Stmt {
		if _, ok := stmt.(*build.CommentBlock); ok {
			continue
		}
		stmts = append(stmts, stmt)
	}
	if len(stmts) != 1 {
		return nil, fmt.Errorf("%w: expected a single expression, got %d statements", ErrSyntax, len(stmts))
	}
	return stmts[0], nil
}

///////////////////////////////////////////////////////////////////////////////
// Evaluation
///////////////////////////////////////////////////////////////////////////////

// evaluator turns a parsed expression into the value it denotes: a
// Constructor, a Validator, Fields or a plain Go value.
type evaluator struct {
	registry *Registry
	env      Bindings
}

func (ev *evaluator) eval(expr build.Expr) (any, error) {
	switch x := expr.(type) {
	case *build.Ident:
		return ev.ident(x)

	case *build.CallExpr:
		return ev.call(x)

	case *build.StringExpr:
		return x.Value, nil

	case *build.LiteralExpr:
		return parseNumber(x)

	case *build.UnaryExpr:
		return ev.unary(x)

	case *build.ParenExpr:
		return ev.eval(x.X)

	case *build.DictExpr:
		return ev.dict(x)

	default:
		return nil, syntaxErrorf(expr, "unsupported %s", describe(expr))
	}
}

func (ev *evaluator) ident(x *build.Ident) (any, error) {
	switch x.Name {
	case "None", "nil":
		return nil, nil
	case "True", "true":
		return true, nil
	case "False", "false":
		return false, nil
	}

	v, err := ev.registry.Resolve(x.Name, ev.env)
	if err != nil {
		return nil, positioned(x, err)
	}
	return v, nil
}

func (ev *evaluator) call(x *build.CallExpr) (any, error) {
	callee, ok := x.X.(*build.Ident)
	if !ok {
		return nil, syntaxErrorf(x, "callee must be a name, got %s", describe(x.X))
	}

	target, err := ev.registry.Resolve(callee.Name, ev.env)
	if err != nil {
		return nil, positioned(callee, err)
	}
	c, ok := asConstructor(target)
	if !ok {
		return nil, positioned(callee, fmt.Errorf("%w: %s", ErrNotAConstructor, callee.Name))
	}

	args := make([]any, 0, len(x.List))
	for _, argExpr := range x.List {
		if _, ok := argExpr.(*build.AssignExpr); ok {
			return nil, syntaxErrorf(argExpr, "keyword arguments are not supported")
		}
		arg, err := ev.eval(argExpr)
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
	}

	v, err := c(args...)
	if err != nil {
		return nil, positioned(x, fmt.Errorf("%s: %w", callee.Name, err))
	}
	return v, nil
}

func (ev *evaluator) unary(x *build.UnaryExpr) (any, error) {
	operand, err := ev.eval(x.X)
	if err != nil {
		return nil, err
	}
	switch x.Op {
	case "-":
		switch n := operand.(type) {
		case int64:
			return -n, nil
		case float64:
			return -n, nil
		}
	case "+":
		switch operand.(type) {
		case int64, float64:
			return operand, nil
		}
	}
	return nil, syntaxErrorf(x, "operator %s needs a number literal", x.Op)
}

func (ev *evaluator) dict(x *build.DictExpr) (any, error) {
	fields := make(Fields, len(x.List))
	for _, kv := range x.List {
		key, ok := kv.Key.(*build.StringExpr)
		if !ok {
			return nil, syntaxErrorf(kv.Key, "struct field names must be strings, got %s", describe(kv.Key))
		}
		if _, dup := fields[key.Value]; dup {
			return nil, syntaxErrorf(kv.Key, "duplicate struct field %q", key.Value)
		}
		v, err := ev.eval(kv.Value)
		if err != nil {
			return nil, err
		}
		fields[key.Value] = v
	}
	return fields, nil
}

///////////////////////////////////////////////////////////////////////////////
// Helpers
///////////////////////////////////////////////////////////////////////////////

// asConstructor accepts both the named and the bare func type, since
// bindings are supplied by callers.
func asConstructor(x any) (Constructor, bool) {
	switch c := x.(type) {
	case Constructor:
		return c, c != nil
	case func(...any) (Validator, error):
		return c, c != nil
	}
	return nil, false
}

// parseNumber converts a numeric token. Integers stay int64 so counts and
// bounds keep their exact value; anything else becomes float64.
func parseNumber(x *build.LiteralExpr) (any, error) {
	if i, err := strconv.ParseInt(x.Token, 0, 64); err == nil {
		return i, nil
	}
	if f, err := strconv.ParseFloat(x.Token, 64); err == nil {
		return f, nil
	}
	return nil, syntaxErrorf(x, "invalid number %q", x.Token)
}

func describe(expr build.Expr) string {
	return strings.TrimPrefix(fmt.Sprintf("%T", expr), "*build.")
}

func syntaxErrorf(expr build.Expr, format string, args ...any) error {
	return positioned(expr, fmt.Errorf("%w: %s", ErrSyntax, fmt.Sprintf(format, args...)))
}

// positioned prefixes err with the source position of expr.
func positioned(expr build.Expr, err error) error {
	start, _ := expr.Span()
	return fmt.Errorf("%s:%d:%d: %w", exprFilename, start.Line, start.LineRune, err)
}
