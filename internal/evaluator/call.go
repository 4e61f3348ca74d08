package evaluator

import (
	"github.com/LaputanMachines/simplescript/internal/ast"
	serrors "github.com/LaputanMachines/simplescript/internal/errors"
	"github.com/LaputanMachines/simplescript/internal/runtime"
	"github.com/LaputanMachines/simplescript/internal/token"
)

// invoke calls a Function or BuiltinFunction value with already-
// evaluated arguments, enforcing arity and the maximum call depth.
func (e *Evaluator) invoke(callee runtime.Value, args []runtime.Value, start, end token.Position) runtime.Result {
	switch fn := callee.(type) {
	case *runtime.BuiltinFunction:
		if len(args) != len(fn.ArgNames) {
			return runtime.Fail(runtime.NewWrongArityError(e.ctx, fn.Name, len(fn.ArgNames), len(args), start, end))
		}
		val, err := fn.Exec(e.ctx, args)
		if err != nil {
			if serr, ok := err.(*serrors.Error); ok {
				return runtime.Fail(serr)
			}
			return runtime.Fail(newBuiltinError(e.ctx, fn.Name, err.Error(), start, end))
		}
		return runtime.Ok(val)

	case *runtime.Function:
		return e.invokeFunction(fn, args, start, end)

	default:
		return runtime.Fail(runtime.NewNotCallableError(e.ctx, callee, start, end))
	}
}

func (e *Evaluator) invokeFunction(fn *runtime.Function, args []runtime.Value, start, end token.Position) runtime.Result {
	if len(args) != len(fn.ArgNames) {
		return runtime.Fail(runtime.NewWrongArityError(e.ctx, fn.Name, len(fn.ArgNames), len(args), start, end))
	}
	if e.ctx.WillOverflow() {
		return runtime.Fail(runtime.NewMaxRecursionError(e.ctx, start, end))
	}

	defCtx := runtime.Ctx(fn)
	callEnv := runtime.NewEnclosedEnvironment(defCtx.Env)
	for i, argName := range fn.ArgNames {
		callEnv.Define(argName, args[i])
	}

	callCtx := e.ctx.Child(fn.Name, start, callEnv)
	body, ok := fn.Body.(ast.Node)
	if !ok {
		return runtime.Fail(runtime.NewNotCallableError(e.ctx, fn, start, end))
	}

	res := New(callCtx).eval(body)
	if res.HasError() {
		return res
	}
	if res.Flow == runtime.FlowBreak || res.Flow == runtime.FlowContinue {
		kw := "BREAK"
		if res.Flow == runtime.FlowContinue {
			kw = "CONTINUE"
		}
		bstart, bend := body.Pos()
		return runtime.Fail(runtime.NewControlFlowOutsideLoopError(callCtx, kw, bstart, bend))
	}

	if fn.ShouldAutoReturn {
		return runtime.Ok(res.Value)
	}
	if res.Flow == runtime.FlowReturn {
		return runtime.Ok(res.Value)
	}
	return runtime.Ok(nilValue(e.ctx))
}

func newBuiltinError(ctx *runtime.Context, fnName, details string, start, end token.Position) *serrors.Error {
	return &serrors.Error{
		Name:    "ActiveRuntimeError",
		Details: fnName + ": " + details,
		Start:   start,
		End:     end,
	}
}
