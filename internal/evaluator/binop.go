package evaluator

import (
	"math"

	"github.com/LaputanMachines/simplescript/internal/ast"
	"github.com/LaputanMachines/simplescript/internal/runtime"
	"github.com/LaputanMachines/simplescript/internal/token"
)

// evalBinOp evaluates a binary operator expression. AND/OR short-
// circuit: the right operand is only evaluated if the left operand's
// truthiness doesn't already decide the result.
func (e *Evaluator) evalBinOp(n *ast.BinOpNode) runtime.Result {
	if n.OpTok.Matches(token.KEYWORD, "AND") {
		return e.evalShortCircuit(n, false)
	}
	if n.OpTok.Matches(token.KEYWORD, "OR") {
		return e.evalShortCircuit(n, true)
	}

	leftRes := e.eval(n.Left)
	if leftRes.ShouldUnwind() {
		return leftRes
	}
	rightRes := e.eval(n.Right)
	if rightRes.ShouldUnwind() {
		return rightRes
	}
	return e.applyBinOp(n, leftRes.Value, rightRes.Value)
}

// evalShortCircuit implements AND (stopOn=false: short-circuit when the
// left side is falsey) and OR (stopOn=true: short-circuit when the left
// side is truthy).
func (e *Evaluator) evalShortCircuit(n *ast.BinOpNode, stopOn bool) runtime.Result {
	leftRes := e.eval(n.Left)
	if leftRes.ShouldUnwind() {
		return leftRes
	}
	leftTrue := !runtime.IsFalsey(leftRes.Value)
	if leftTrue == stopOn {
		start, end := n.Pos()
		b := 0.0
		if leftTrue {
			b = 1
		}
		return runtime.Ok(runtime.WithContext(runtime.WithPos(runtime.NewInt(int64(b)), start, end), e.ctx))
	}

	rightRes := e.eval(n.Right)
	if rightRes.ShouldUnwind() {
		return rightRes
	}
	start, end := n.Pos()
	b := 0.0
	if !runtime.IsFalsey(rightRes.Value) {
		b = 1
	}
	return runtime.Ok(runtime.WithContext(runtime.WithPos(runtime.NewInt(int64(b)), start, end), e.ctx))
}

func (e *Evaluator) applyBinOp(n *ast.BinOpNode, left, right runtime.Value) runtime.Result {
	start, end := n.Pos()
	op := n.OpTok.Literal

	lNum, lIsNum := left.(*runtime.Number)
	rNum, rIsNum := right.(*runtime.Number)

	switch {
	case lIsNum && rIsNum:
		return e.numberBinOp(op, lNum, rNum, start, end)
	case op == "+" && isString(left) && isString(right):
		return runtime.Ok(runtime.WithContext(runtime.WithPos(
			runtime.NewString(left.(*runtime.String).Val+right.(*runtime.String).Val), start, end), e.ctx))
	case op == "*" && isString(left) && rIsNum:
		return e.stringRepeat(left.(*runtime.String), rNum, start, end)
	case op == "+" && isList(left):
		l := left.(*runtime.List)
		elems := append(append([]runtime.Value{}, l.Elements...), right)
		return runtime.Ok(runtime.WithContext(runtime.WithPos(runtime.NewList(elems), start, end), e.ctx))
	case op == "*" && isList(left) && isList(right):
		l := left.(*runtime.List)
		r := right.(*runtime.List)
		elems := append(append([]runtime.Value{}, l.Elements...), r.Elements...)
		return runtime.Ok(runtime.WithContext(runtime.WithPos(runtime.NewList(elems), start, end), e.ctx))
	case op == "-" && isList(left) && rIsNum:
		return e.listRemoveAt(left.(*runtime.List), rNum, start, end)
	case op == "/" && isList(left) && rIsNum:
		return e.listIndex(left.(*runtime.List), rNum, start, end)
	case op == "==" || op == "!=":
		eq := valuesEqual(left, right)
		if op == "!=" {
			eq = !eq
		}
		return runtime.Ok(runtime.WithContext(runtime.WithPos(runtime.NewInt(boolInt(eq)), start, end), e.ctx))
	}

	return runtime.Fail(runtime.NewIllegalOperationError(e.ctx, op, left, right, start, end))
}

func isString(v runtime.Value) bool { _, ok := v.(*runtime.String); return ok }
func isList(v runtime.Value) bool   { _, ok := v.(*runtime.List); return ok }

func (e *Evaluator) stringRepeat(s *runtime.String, n *runtime.Number, start, end token.Position) runtime.Result {
	count := int(n.Val)
	if count < 0 {
		count = 0
	}
	out := make([]byte, 0, len(s.Val)*count)
	for i := 0; i < count; i++ {
		out = append(out, s.Val...)
	}
	return runtime.Ok(runtime.WithContext(runtime.WithPos(runtime.NewString(string(out)), start, end), e.ctx))
}

// listRemoveAt mirrors the append-and-return-self-copy convention used by
// list addition: it copies the list, removes the element at index n from
// the copy, and returns the copy. The original list is left untouched.
func (e *Evaluator) listRemoveAt(l *runtime.List, n *runtime.Number, start, end token.Position) runtime.Result {
	idx := int(n.Val)
	if idx < 0 || idx >= len(l.Elements) {
		return runtime.Fail(runtime.NewIndexOutOfBoundsError(e.ctx, idx, len(l.Elements), start, end))
	}
	elems := make([]runtime.Value, 0, len(l.Elements)-1)
	elems = append(elems, l.Elements[:idx]...)
	elems = append(elems, l.Elements[idx+1:]...)
	return runtime.Ok(runtime.WithContext(runtime.WithPos(runtime.NewList(elems), start, end), e.ctx))
}

func (e *Evaluator) listIndex(l *runtime.List, n *runtime.Number, start, end token.Position) runtime.Result {
	idx := int(n.Val)
	if idx < 0 || idx >= len(l.Elements) {
		return runtime.Fail(runtime.NewIndexOutOfBoundsError(e.ctx, idx, len(l.Elements), start, end))
	}
	return runtime.Ok(runtime.WithContext(runtime.WithPos(l.Elements[idx].Copy(), start, end), e.ctx))
}

func boolInt(b bool) int64 {
	if b {
		return 1
	}
	return 0
}

func valuesEqual(left, right runtime.Value) bool {
	switch l := left.(type) {
	case *runtime.Number:
		r, ok := right.(*runtime.Number)
		return ok && l.Val == r.Val
	case *runtime.String:
		r, ok := right.(*runtime.String)
		return ok && l.Val == r.Val
	case *runtime.List:
		r, ok := right.(*runtime.List)
		if !ok || len(l.Elements) != len(r.Elements) {
			return false
		}
		for i := range l.Elements {
			if !valuesEqual(l.Elements[i], r.Elements[i]) {
				return false
			}
		}
		return true
	default:
		return left == right
	}
}

func (e *Evaluator) numberBinOp(op string, l, r *runtime.Number, start, end token.Position) runtime.Result {
	isFloat := l.IsFloat || r.IsFloat

	mk := func(v float64) runtime.Value {
		var n *runtime.Number
		if isFloat {
			n = runtime.NewFloat(v)
		} else {
			n = runtime.NewInt(int64(v))
		}
		return runtime.WithContext(runtime.WithPos(n, start, end), e.ctx)
	}
	mkBool := func(b bool) runtime.Value {
		return runtime.WithContext(runtime.WithPos(runtime.NewInt(boolInt(b)), start, end), e.ctx)
	}

	switch op {
	case "+":
		return runtime.Ok(mk(l.Val + r.Val))
	case "-":
		return runtime.Ok(mk(l.Val - r.Val))
	case "*":
		return runtime.Ok(mk(l.Val * r.Val))
	case "/":
		if r.Val == 0 {
			rStart, rEnd := runtime.Pos(r)
			return runtime.Fail(runtime.NewDivisionByZeroError(e.ctx, rStart, rEnd))
		}
		return runtime.Ok(runtime.WithContext(runtime.WithPos(runtime.NewFloat(l.Val/r.Val), start, end), e.ctx))
	case "//":
		if r.Val == 0 {
			rStart, rEnd := runtime.Pos(r)
			return runtime.Fail(runtime.NewDivisionByZeroError(e.ctx, rStart, rEnd))
		}
		return runtime.Ok(mk(math.Floor(l.Val / r.Val)))
	case "%":
		if r.Val == 0 {
			rStart, rEnd := runtime.Pos(r)
			return runtime.Fail(runtime.NewDivisionByZeroError(e.ctx, rStart, rEnd))
		}
		return runtime.Ok(mk(math.Mod(l.Val, r.Val)))
	case "^":
		return runtime.Ok(mk(math.Pow(l.Val, r.Val)))
	case "==":
		return runtime.Ok(mkBool(l.Val == r.Val))
	case "!=":
		return runtime.Ok(mkBool(l.Val != r.Val))
	case "<":
		return runtime.Ok(mkBool(l.Val < r.Val))
	case "<=":
		return runtime.Ok(mkBool(l.Val <= r.Val))
	case ">":
		return runtime.Ok(mkBool(l.Val > r.Val))
	case ">=":
		return runtime.Ok(mkBool(l.Val >= r.Val))
	}

	return runtime.Fail(runtime.NewIllegalOperationError(e.ctx, op, l, r, start, end))
}
