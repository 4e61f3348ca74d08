package evaluator

import (
	"github.com/LaputanMachines/simplescript/internal/ast"
	"github.com/LaputanMachines/simplescript/internal/runtime"
	"github.com/LaputanMachines/simplescript/internal/token"
)

// eval dispatches on the concrete type of node, mirroring the original
// interpreter's visit_<NodeType> methods one-for-one.
func (e *Evaluator) eval(node ast.Node) runtime.Result {
	switch n := node.(type) {
	case *ast.NumberNode:
		return e.evalNumber(n)
	case *ast.StringNode:
		return e.evalString(n)
	case *ast.ListNode:
		return e.evalList(n)
	case *ast.BinOpNode:
		return e.evalBinOp(n)
	case *ast.UnaryOpNode:
		return e.evalUnaryOp(n)
	case *ast.VarAccessNode:
		return e.evalVarAccess(n)
	case *ast.VarAssignNode:
		return e.evalVarAssign(n)
	case *ast.IfNode:
		return e.evalIf(n)
	case *ast.ForNode:
		return e.evalFor(n)
	case *ast.WhileNode:
		return e.evalWhile(n)
	case *ast.FuncDefNode:
		return e.evalFuncDef(n)
	case *ast.CallNode:
		return e.evalCall(n)
	case *ast.ReturnNode:
		return e.evalReturn(n)
	case *ast.ContinueNode:
		return runtime.Continue()
	case *ast.BreakNode:
		return runtime.Break()
	}
	panic("evaluator: unhandled AST node type")
}

func (e *Evaluator) evalNumber(n *ast.NumberNode) runtime.Result {
	num, err := runtime.ParseNumber(n.Token.Literal, n.Token.Type == token.FLOAT)
	if err != nil {
		return runtime.Fail(runtime.NewTypeError(e.ctx, "Number", runtime.NewString(n.Token.Literal), n.Token.Start, n.Token.End))
	}
	start, end := n.Pos()
	return runtime.Ok(runtime.WithContext(runtime.WithPos(num, start, end), e.ctx))
}

func (e *Evaluator) evalString(n *ast.StringNode) runtime.Result {
	start, end := n.Pos()
	return runtime.Ok(runtime.WithContext(runtime.WithPos(runtime.NewString(n.Token.Literal), start, end), e.ctx))
}

func (e *Evaluator) evalList(n *ast.ListNode) runtime.Result {
	elems := make([]runtime.Value, 0, len(n.Elements))
	for _, el := range n.Elements {
		res := e.eval(el)
		if res.ShouldUnwind() {
			return res
		}
		elems = append(elems, res.Value)
	}
	start, end := n.Pos()
	return runtime.Ok(runtime.WithContext(runtime.WithPos(runtime.NewList(elems), start, end), e.ctx))
}

func (e *Evaluator) evalVarAccess(n *ast.VarAccessNode) runtime.Result {
	name := n.NameTok.Literal
	val, ok := e.ctx.Env.Get(name)
	if !ok {
		return runtime.Fail(runtime.NewNameNotDefinedError(e.ctx, name, n.NameTok.Start, n.NameTok.End))
	}
	start, end := n.Pos()
	// Lists are handed out by reference so that APPEND, POP and EXTEND
	// act on the bound list; every other value is copied.
	if list, isList := val.(*runtime.List); isList {
		return runtime.Ok(runtime.WithContext(runtime.WithPos(list, start, end), e.ctx))
	}
	return runtime.Ok(runtime.WithContext(runtime.WithPos(val.Copy(), start, end), e.ctx))
}

func (e *Evaluator) evalVarAssign(n *ast.VarAssignNode) runtime.Result {
	res := e.eval(n.ValueNode)
	if res.ShouldUnwind() {
		return res
	}
	e.ctx.Env.Define(n.NameTok.Literal, res.Value)
	return runtime.Ok(res.Value)
}

func (e *Evaluator) evalReturn(n *ast.ReturnNode) runtime.Result {
	if n.NodeToReturn == nil {
		return runtime.Return(nilValue(e.ctx))
	}
	res := e.eval(n.NodeToReturn)
	if res.ShouldUnwind() {
		return res
	}
	return runtime.Return(res.Value)
}

// nilValue is the value a bare RETURN, or a statement-list that
// produces no usable value, evaluates to: the integer 0.
func nilValue(ctx *runtime.Context) runtime.Value {
	return runtime.WithContext(runtime.NewInt(0), ctx)
}

func (e *Evaluator) evalIf(n *ast.IfNode) runtime.Result {
	for _, c := range n.Cases {
		condRes := e.eval(c.Condition)
		if condRes.ShouldUnwind() {
			return condRes
		}
		if !runtime.IsFalsey(condRes.Value) {
			res := e.eval(c.Expr)
			if res.ShouldUnwind() {
				return res
			}
			if c.ShouldReturnNull {
				return runtime.Ok(nilValue(e.ctx))
			}
			return runtime.Ok(res.Value)
		}
	}
	if n.Else != nil {
		res := e.eval(n.Else.Expr)
		if res.ShouldUnwind() {
			return res
		}
		if n.Else.ShouldReturnNull {
			return runtime.Ok(nilValue(e.ctx))
		}
		return runtime.Ok(res.Value)
	}
	return runtime.Ok(nilValue(e.ctx))
}

func (e *Evaluator) evalFor(n *ast.ForNode) runtime.Result {
	startRes := e.eval(n.StartValueNode)
	if startRes.ShouldUnwind() {
		return startRes
	}
	startNum, ok := startRes.Value.(*runtime.Number)
	if !ok {
		s, en := n.StartValueNode.Pos()
		return runtime.Fail(runtime.NewTypeError(e.ctx, "Number", startRes.Value, s, en))
	}

	endRes := e.eval(n.EndValueNode)
	if endRes.ShouldUnwind() {
		return endRes
	}
	endNum, ok := endRes.Value.(*runtime.Number)
	if !ok {
		s, en := n.EndValueNode.Pos()
		return runtime.Fail(runtime.NewTypeError(e.ctx, "Number", endRes.Value, s, en))
	}

	step := 1.0
	if n.StepValueNode != nil {
		stepRes := e.eval(n.StepValueNode)
		if stepRes.ShouldUnwind() {
			return stepRes
		}
		stepNum, ok := stepRes.Value.(*runtime.Number)
		if !ok {
			s, en := n.StepValueNode.Pos()
			return runtime.Fail(runtime.NewTypeError(e.ctx, "Number", stepRes.Value, s, en))
		}
		step = stepNum.Val
	}

	var elements []runtime.Value
	i := startNum.Val
	cond := func() bool {
		if step >= 0 {
			return i < endNum.Val
		}
		return i > endNum.Val
	}

	for cond() {
		e.ctx.Env.Define(n.VarNameTok.Literal, runtime.WithContext(runtime.NewFloat(i), e.ctx))
		i += step

		res := e.eval(n.BodyNode)
		if res.HasError() {
			return res
		}
		if res.Flow == runtime.FlowBreak {
			break
		}
		if res.Flow == runtime.FlowReturn {
			return res
		}
		if res.Flow != runtime.FlowContinue {
			elements = append(elements, res.Value)
		}
	}

	if n.ShouldReturnNull {
		return runtime.Ok(nilValue(e.ctx))
	}
	return runtime.Ok(runtime.WithContext(runtime.NewList(elements), e.ctx))
}

func (e *Evaluator) evalWhile(n *ast.WhileNode) runtime.Result {
	var elements []runtime.Value

	for {
		condRes := e.eval(n.Condition)
		if condRes.ShouldUnwind() {
			return condRes
		}
		if runtime.IsFalsey(condRes.Value) {
			break
		}

		res := e.eval(n.BodyNode)
		if res.HasError() {
			return res
		}
		if res.Flow == runtime.FlowBreak {
			break
		}
		if res.Flow == runtime.FlowReturn {
			return res
		}
		if res.Flow != runtime.FlowContinue {
			elements = append(elements, res.Value)
		}
	}

	if n.ShouldReturnNull {
		return runtime.Ok(nilValue(e.ctx))
	}
	return runtime.Ok(runtime.WithContext(runtime.NewList(elements), e.ctx))
}

func (e *Evaluator) evalFuncDef(n *ast.FuncDefNode) runtime.Result {
	argNames := make([]string, len(n.ArgNameToks))
	for i, t := range n.ArgNameToks {
		argNames[i] = t.Literal
	}
	name := ""
	if n.NameTok != nil {
		name = n.NameTok.Literal
	}
	fn := runtime.NewFunction(name, argNames, n.BodyNode, n.ShouldAutoReturn)
	start, end := n.Pos()
	val := runtime.WithContext(runtime.WithPos(fn, start, end), e.ctx)

	if n.NameTok != nil {
		e.ctx.Env.Define(n.NameTok.Literal, val)
	}
	return runtime.Ok(val)
}

func (e *Evaluator) evalUnaryOp(n *ast.UnaryOpNode) runtime.Result {
	res := e.eval(n.Right)
	if res.ShouldUnwind() {
		return res
	}
	start, end := n.Pos()

	if n.OpTok.Matches(token.KEYWORD, "NOT") {
		b := 0.0
		if runtime.IsFalsey(res.Value) {
			b = 1
		}
		return runtime.Ok(runtime.WithContext(runtime.WithPos(runtime.NewInt(int64(b)), start, end), e.ctx))
	}

	num, ok := res.Value.(*runtime.Number)
	if !ok {
		return runtime.Fail(runtime.NewIllegalOperationError(e.ctx, n.OpTok.Literal, res.Value, nil, start, end))
	}
	if n.OpTok.Literal == "-" {
		neg := negate(num)
		return runtime.Ok(runtime.WithContext(runtime.WithPos(neg, start, end), e.ctx))
	}
	return runtime.Ok(runtime.WithContext(runtime.WithPos(num.Copy(), start, end), e.ctx))
}

func negate(n *runtime.Number) *runtime.Number {
	if n.IsFloat {
		return runtime.NewFloat(-n.Val)
	}
	return runtime.NewInt(-int64(n.Val))
}

func (e *Evaluator) evalCall(n *ast.CallNode) runtime.Result {
	calleeRes := e.eval(n.NodeToCall)
	if calleeRes.ShouldUnwind() {
		return calleeRes
	}
	start, end := n.Pos()
	callee := runtime.WithContext(runtime.WithPos(calleeRes.Value.Copy(), start, end), e.ctx)

	args := make([]runtime.Value, 0, len(n.ArgNodes))
	for _, argNode := range n.ArgNodes {
		res := e.eval(argNode)
		if res.ShouldUnwind() {
			return res
		}
		args = append(args, res.Value)
	}

	res := e.invoke(callee, args, start, end)
	if res.ShouldUnwind() {
		return res
	}
	return runtime.Ok(runtime.WithContext(runtime.WithPos(res.Value.Copy(), start, end), e.ctx))
}
