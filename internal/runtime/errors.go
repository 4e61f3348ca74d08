package runtime

import (
	"fmt"

	serrors "github.com/LaputanMachines/simplescript/internal/errors"
	"github.com/LaputanMachines/simplescript/internal/token"
)

// RuntimeError pairs an *errors.Error for a failure during evaluation
// (tagged "ActiveRuntimeError") with the traceback of the context passed
// to WithTraceback. The evaluator passes the context given to Run, so the
// traceback lists that frame and its parents; frames of the function
// calls active at the failure are not included.
type RuntimeError struct {
	Err   *serrors.Error
	Trace serrors.StackTrace
}

func (e *RuntimeError) Error() string {
	if e.Trace.Depth() == 0 {
		return e.Err.Format()
	}
	return e.Trace.String() + "\n" + e.Err.Format()
}

// Unwrap exposes the underlying *errors.Error for errors.As/Is callers.
func (e *RuntimeError) Unwrap() error { return e.Err }

func newRuntimeError(ctx *Context, details string, start, end token.Position) *serrors.Error {
	return &serrors.Error{Name: "ActiveRuntimeError", Details: details, Start: start, End: end}
}

// NewDivisionByZeroError reports division (/, //, or %) by zero.
func NewDivisionByZeroError(ctx *Context, start, end token.Position) *serrors.Error {
	return newRuntimeError(ctx, "division by zero", start, end)
}

// NewIllegalOperationError reports a binary or unary operator applied
// to operand types it does not support (e.g. a List minus a List).
func NewIllegalOperationError(ctx *Context, opLiteral string, left, right Value, start, end token.Position) *serrors.Error {
	rightType := "<none>"
	if right != nil {
		rightType = right.Type()
	}
	return newRuntimeError(ctx,
		fmt.Sprintf("illegal operation %q between %s and %s", opLiteral, left.Type(), rightType),
		start, end)
}

// NewNameNotDefinedError reports a reference to an undeclared variable.
func NewNameNotDefinedError(ctx *Context, name string, start, end token.Position) *serrors.Error {
	return newRuntimeError(ctx, fmt.Sprintf("%q is not defined", name), start, end)
}

// NewWrongArityError reports a call with the wrong number of arguments.
func NewWrongArityError(ctx *Context, fnName string, want, got int, start, end token.Position) *serrors.Error {
	word := "few"
	if got > want {
		word = "many"
	}
	return newRuntimeError(ctx,
		fmt.Sprintf("too %s arguments passed into %q (want %d, got %d)", word, fnName, want, got),
		start, end)
}

// NewNotCallableError reports calling a value that is not a function.
func NewNotCallableError(ctx *Context, v Value, start, end token.Position) *serrors.Error {
	return newRuntimeError(ctx, fmt.Sprintf("%s is not callable", v.Type()), start, end)
}

// NewIndexOutOfBoundsError reports a list index that is out of range.
func NewIndexOutOfBoundsError(ctx *Context, index, length int, start, end token.Position) *serrors.Error {
	return newRuntimeError(ctx, fmt.Sprintf("index %d out of bounds for list of length %d", index, length), start, end)
}

// NewTypeError reports an operation given a value of the wrong type
// (e.g. a FOR loop bound that is not a Number).
func NewTypeError(ctx *Context, expected string, got Value, start, end token.Position) *serrors.Error {
	return newRuntimeError(ctx, fmt.Sprintf("expected a %s, got %s", expected, got.Type()), start, end)
}

// NewMaxRecursionError reports exceeding ctx's configured call-depth limit.
func NewMaxRecursionError(ctx *Context, start, end token.Position) *serrors.Error {
	max := ctx.maxDepth
	if max <= 0 {
		max = MaxCallDepth
	}
	return newRuntimeError(ctx, fmt.Sprintf("maximum recursion depth (%d) exceeded", max), start, end)
}

// NewControlFlowOutsideLoopError reports a BREAK or CONTINUE statement
// reached outside of any enclosing loop, rather than silently ignoring
// the statement.
func NewControlFlowOutsideLoopError(ctx *Context, keyword string, start, end token.Position) *serrors.Error {
	return newRuntimeError(ctx, fmt.Sprintf("%s used outside of a loop", keyword), start, end)
}

// WithTraceback attaches ctx's current call-stack traceback to err,
// producing the value surfaced to the caller of Run.
func WithTraceback(ctx *Context, err *serrors.Error) *RuntimeError {
	return &RuntimeError{Err: err, Trace: ctx.Traceback()}
}
