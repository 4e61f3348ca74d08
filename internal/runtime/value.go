// Package runtime implements SimpleScript's value system, lexical
// environments, execution contexts, and call-stack bookkeeping — the
// pieces the evaluator composes to walk the AST.
package runtime

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/LaputanMachines/simplescript/internal/token"
)

// Value is the interface every runtime value implements: numbers,
// strings, lists, and functions (both user-defined and builtin).
type Value interface {
	// Type returns a short, user-facing name for the value's kind
	// ("Number", "String", "List", "Function"), used by the IS_* and
	// TYPE builtins and in error messages.
	Type() string
	// String renders the value the way PRINT displays it.
	String() string
	// Copy returns an independent value carrying the same position and
	// context metadata, so that reassigning a variable never mutates a
	// value still referenced elsewhere.
	Copy() Value

	setPos(start, end token.Position)
	setContext(ctx *Context)
	pos() (token.Position, token.Position)
	context() *Context
}

// base holds the position and owning-context metadata shared by every
// concrete value type. Embedding it gives each value Value's position
// and context bookkeeping for free.
type base struct {
	start, end token.Position
	ctx        *Context
}

func (b *base) setPos(start, end token.Position) { b.start, b.end = start, end }
func (b *base) setContext(ctx *Context)           { b.ctx = ctx }
func (b *base) pos() (token.Position, token.Position) { return b.start, b.end }
func (b *base) context() *Context                 { return b.ctx }

// WithPos attaches a source span to a value and returns it, for fluent
// construction at the evaluator's call sites.
func WithPos(v Value, start, end token.Position) Value {
	v.setPos(start, end)
	return v
}

// WithContext attaches the execution context a value was produced in.
func WithContext(v Value, ctx *Context) Value {
	v.setContext(ctx)
	return v
}

// Pos exposes a value's source span.
func Pos(v Value) (token.Position, token.Position) { return v.pos() }

// Ctx exposes the execution context a value was produced in.
func Ctx(v Value) *Context { return v.context() }

// Number is SimpleScript's sole numeric type; IsFloat distinguishes
// integer literals/results from floating-point ones purely for display
// purposes (arithmetic always uses float64 internally).
type Number struct {
	base
	Val     float64
	IsFloat bool
}

// NewInt creates an integer-displayed Number.
func NewInt(v int64) *Number { return &Number{Val: float64(v), IsFloat: false} }

// NewFloat creates a float-displayed Number.
func NewFloat(v float64) *Number { return &Number{Val: v, IsFloat: true} }

// ParseNumber builds a Number from a lexer literal (already validated by
// the lexer as all-digits with at most one '.').
func ParseNumber(literal string, isFloat bool) (*Number, error) {
	if !isFloat {
		i, err := strconv.ParseInt(literal, 10, 64)
		if err != nil {
			return nil, err
		}
		return NewInt(i), nil
	}
	f, err := strconv.ParseFloat(literal, 64)
	if err != nil {
		return nil, err
	}
	return NewFloat(f), nil
}

func (n *Number) Type() string { return "Number" }

func (n *Number) String() string {
	if !n.IsFloat && n.Val == float64(int64(n.Val)) {
		return strconv.FormatInt(int64(n.Val), 10)
	}
	return strconv.FormatFloat(n.Val, 'g', -1, 64)
}

func (n *Number) Copy() Value {
	cp := &Number{Val: n.Val, IsFloat: n.IsFloat}
	cp.base = n.base
	return cp
}

// IsTrue reports whether the number is truthy (every value except 0).
func (n *Number) IsTrue() bool { return n.Val != 0 }

// String is SimpleScript's string value type.
type String struct {
	base
	Val string
}

func NewString(v string) *String { return &String{Val: v} }

func (s *String) Type() string    { return "String" }
func (s *String) String() string  { return s.Val }
func (s *String) IsTrue() bool    { return len(s.Val) > 0 }
func (s *String) Copy() Value {
	cp := &String{Val: s.Val}
	cp.base = s.base
	return cp
}

// List is SimpleScript's sole collection type: an ordered, mutable,
// heterogeneous sequence of values.
type List struct {
	base
	Elements []Value
}

func NewList(elems []Value) *List { return &List{Elements: elems} }

func (l *List) Type() string { return "List" }

func (l *List) String() string {
	parts := make([]string, len(l.Elements))
	for i, e := range l.Elements {
		parts[i] = e.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

func (l *List) IsTrue() bool { return len(l.Elements) > 0 }

// Copy performs a shallow copy: a new backing slice with the same
// element values, so APPEND/POP/EXTEND on a copy never mutate the
// original list's length, while the elements themselves remain shared.
func (l *List) Copy() Value {
	elems := make([]Value, len(l.Elements))
	copy(elems, l.Elements)
	cp := &List{Elements: elems}
	cp.base = l.base
	return cp
}

// Function is a user-defined, closure-capturing SimpleScript function.
type Function struct {
	base
	Name             string // "<anonymous>" if never bound to a name
	ArgNames         []string
	Body             any // ast.Node; declared as `any` here to avoid an
	// import cycle between runtime and ast — the evaluator package,
	// which imports both, does the type assertion.
	ShouldAutoReturn bool
}

func NewFunction(name string, argNames []string, body any, autoReturn bool) *Function {
	if name == "" {
		name = "<anonymous>"
	}
	return &Function{Name: name, ArgNames: argNames, Body: body, ShouldAutoReturn: autoReturn}
}

// setContext records the context the function was defined in the first
// time a context is attached; later attachments (at a variable access or
// a call site) leave it unchanged, because invoking the function uses
// that context's environment as the parent scope of the call.
func (f *Function) setContext(ctx *Context) {
	if f.ctx == nil {
		f.ctx = ctx
	}
}

func (f *Function) Type() string   { return "Function" }
func (f *Function) String() string { return fmt.Sprintf("<function %s>", f.Name) }
func (f *Function) IsTrue() bool   { return true }

func (f *Function) Copy() Value {
	cp := &Function{Name: f.Name, ArgNames: f.ArgNames, Body: f.Body, ShouldAutoReturn: f.ShouldAutoReturn}
	cp.base = f.base
	return cp
}

// BuiltinFunction is a function implemented in Go. Exec receives the
// already-bound argument values (arity has already been checked by the
// caller) and the Context the call executes in, so builtins like INPUT
// or CLEAR can use its std streams.
type BuiltinFunction struct {
	base
	Name     string
	ArgNames []string
	Exec     func(ctx *Context, args []Value) (Value, error)
}

func NewBuiltinFunction(name string, argNames []string, exec func(ctx *Context, args []Value) (Value, error)) *BuiltinFunction {
	return &BuiltinFunction{Name: name, ArgNames: argNames, Exec: exec}
}

func (b *BuiltinFunction) Type() string   { return "BuiltinFunction" }
func (b *BuiltinFunction) String() string { return fmt.Sprintf("<builtin function %s>", b.Name) }
func (b *BuiltinFunction) IsTrue() bool   { return true }

func (b *BuiltinFunction) Copy() Value {
	cp := &BuiltinFunction{Name: b.Name, ArgNames: b.ArgNames, Exec: b.Exec}
	cp.base = b.base
	return cp
}

// IsFalsey reports whether v is the falsey value for its type (the
// numeric literal 0, an empty string, or an empty list; functions are
// always truthy).
func IsFalsey(v Value) bool {
	switch val := v.(type) {
	case *Number:
		return !val.IsTrue()
	case *String:
		return !val.IsTrue()
	case *List:
		return !val.IsTrue()
	default:
		return false
	}
}
