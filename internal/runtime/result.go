package runtime

import serrors "github.com/LaputanMachines/simplescript/internal/errors"

// FlowKind distinguishes the reason an evaluation is unwinding: ordinary
// value production, or one of the three non-local control-flow signals
// a SimpleScript program can raise (RETURN, BREAK, CONTINUE).
type FlowKind int

const (
	FlowNone FlowKind = iota
	FlowReturn
	FlowBreak
	FlowContinue
)

// Result carries the outcome of evaluating one AST node: either a
// value (possibly piggybacking a non-local control-flow signal) or a
// runtime error. Callers test ShouldUnwind() after every recursive
// evaluation step and propagate immediately when it is true — this is
// what keeps RETURN/BREAK/CONTINUE unwinding through nested statement
// lists and loop bodies without relying on Go panics for control flow.
type Result struct {
	Value Value
	Flow  FlowKind
	Err   *serrors.Error
}

// Ok wraps a plain value with no outstanding control-flow signal.
func Ok(v Value) Result { return Result{Value: v} }

// Fail wraps a runtime error.
func Fail(err *serrors.Error) Result { return Result{Err: err} }

// Return wraps a RETURN signal; the evaluator passes the integer 0 for a
// bare `RETURN`.
func Return(v Value) Result { return Result{Value: v, Flow: FlowReturn} }

// Break wraps a BREAK signal.
func Break() Result { return Result{Flow: FlowBreak} }

// Continue wraps a CONTINUE signal.
func Continue() Result { return Result{Flow: FlowContinue} }

// HasError reports whether the result carries a runtime error.
func (r Result) HasError() bool { return r.Err != nil }

// ShouldUnwind reports whether evaluation of the enclosing node should
// stop and propagate this result immediately, rather than continuing
// to the next statement — true for any error or any non-value
// control-flow signal.
func (r Result) ShouldUnwind() bool {
	return r.Err != nil || r.Flow != FlowNone
}

// IsLoopSignal reports whether the result is a BREAK or CONTINUE —
// signals a loop (not a function call) is responsible for absorbing.
func (r Result) IsLoopSignal() bool {
	return r.Flow == FlowBreak || r.Flow == FlowContinue
}
