// Package evaluator walks the AST produced by internal/parser, producing
// internal/runtime values against an internal/runtime Environment and
// Context. It is the tree-walking heart of the interpreter.
package evaluator

import (
	"github.com/LaputanMachines/simplescript/internal/ast"
	"github.com/LaputanMachines/simplescript/internal/runtime"
)

// Evaluator walks an AST against a single Context, dispatching on node
// type. It holds no state of its own beyond the context passed in at
// construction — evaluating a nested function body creates a child
// Context and a new Evaluator over it.
type Evaluator struct {
	ctx *runtime.Context
}

// New creates an Evaluator that will execute statements against ctx.
func New(ctx *runtime.Context) *Evaluator {
	return &Evaluator{ctx: ctx}
}

// Run evaluates a parsed program (an *ast.ListNode of top-level
// statements) to completion, returning the last statement's value.
// A BREAK or CONTINUE escaping the top level is a runtime error: there
// is no enclosing loop to absorb it.
func Run(ctx *runtime.Context, program ast.Node) (runtime.Value, *runtime.RuntimeError) {
	res := New(ctx).eval(program)
	if res.HasError() {
		return nil, runtime.WithTraceback(ctx, res.Err)
	}
	if res.Flow == runtime.FlowBreak || res.Flow == runtime.FlowContinue {
		start, end := program.Pos()
		kw := "BREAK"
		if res.Flow == runtime.FlowContinue {
			kw = "CONTINUE"
		}
		err := runtime.NewControlFlowOutsideLoopError(ctx, kw, start, end)
		return nil, runtime.WithTraceback(ctx, err)
	}
	// A statement list evaluates to a List of every statement's value;
	// the program's value is the last of them.
	if _, isStmts := program.(*ast.ListNode); isStmts && res.Flow == runtime.FlowNone {
		if vals, ok := res.Value.(*runtime.List); ok && len(vals.Elements) > 0 {
			return vals.Elements[len(vals.Elements)-1], nil
		}
	}
	return res.Value, nil
}
