// Package ast defines the node types the parser builds and the evaluator
// walks. Every node carries its source span so runtime values and errors
// created while evaluating it can be traced back to the text that
// produced them.
package ast

import (
	"fmt"
	"strings"

	"github.com/LaputanMachines/simplescript/internal/token"
)

// Node is the interface every AST node implements.
type Node interface {
	Pos() (start, end token.Position)
	String() string
}

// NumberNode is a numeric literal.
type NumberNode struct {
	Token token.Token
}

func (n *NumberNode) Pos() (token.Position, token.Position) { return n.Token.Start, n.Token.End }
func (n *NumberNode) String() string                        { return n.Token.Literal }

// StringNode is a string literal.
type StringNode struct {
	Token token.Token
}

func (n *StringNode) Pos() (token.Position, token.Position) { return n.Token.Start, n.Token.End }
func (n *StringNode) String() string                        { return fmt.Sprintf("%q", n.Token.Literal) }

// ListNode is a `[a, b, c]` literal.
type ListNode struct {
	Elements   []Node
	StartPos   token.Position
	EndPos     token.Position
}

func (n *ListNode) Pos() (token.Position, token.Position) { return n.StartPos, n.EndPos }
func (n *ListNode) String() string {
	parts := make([]string, len(n.Elements))
	for i, e := range n.Elements {
		parts[i] = e.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}

// BinOpNode is a binary operator expression.
type BinOpNode struct {
	Left  Node
	OpTok token.Token
	Right Node
}

func (n *BinOpNode) Pos() (token.Position, token.Position) {
	start, _ := n.Left.Pos()
	_, end := n.Right.Pos()
	return start, end
}
func (n *BinOpNode) String() string {
	return fmt.Sprintf("(%s %s %s)", n.Left, n.OpTok.Literal, n.Right)
}

// UnaryOpNode is a unary operator expression (`-x`, `NOT x`).
type UnaryOpNode struct {
	OpTok    token.Token
	Right    Node
	StartPos token.Position
}

func (n *UnaryOpNode) Pos() (token.Position, token.Position) {
	_, end := n.Right.Pos()
	return n.StartPos, end
}
func (n *UnaryOpNode) String() string { return fmt.Sprintf("(%s%s)", n.OpTok.Literal, n.Right) }

// VarAccessNode reads a variable's current value.
type VarAccessNode struct {
	NameTok token.Token
}

func (n *VarAccessNode) Pos() (token.Position, token.Position) {
	return n.NameTok.Start, n.NameTok.End
}
func (n *VarAccessNode) String() string { return n.NameTok.Literal }

// VarAssignNode binds a variable to the value of an expression.
type VarAssignNode struct {
	NameTok   token.Token
	ValueNode Node
}

func (n *VarAssignNode) Pos() (token.Position, token.Position) {
	_, end := n.ValueNode.Pos()
	return n.NameTok.Start, end
}
func (n *VarAssignNode) String() string {
	return fmt.Sprintf("VAR %s = %s", n.NameTok.Literal, n.ValueNode)
}

// IfCase is one `condition THEN expr` arm of an IfNode.
type IfCase struct {
	Condition        Node
	Expr             Node
	ShouldReturnNull bool
}

// ElseCase is the optional trailing `ELSE expr` arm.
type ElseCase struct {
	Expr             Node
	ShouldReturnNull bool
}

// IfNode is an IF/ELIF/ELSE expression.
type IfNode struct {
	Cases    []IfCase
	Else     *ElseCase
	StartPos token.Position
	EndPos   token.Position
}

func (n *IfNode) Pos() (token.Position, token.Position) { return n.StartPos, n.EndPos }
func (n *IfNode) String() string                        { return "(if-expr)" }

// ForNode is a `FOR var = start TO end STEP step THEN body END` loop.
type ForNode struct {
	VarNameTok       token.Token
	StartValueNode   Node
	EndValueNode     Node
	StepValueNode    Node // nil if omitted
	BodyNode         Node
	ShouldReturnNull bool
	StartPos         token.Position
	EndPos           token.Position
}

func (n *ForNode) Pos() (token.Position, token.Position) { return n.StartPos, n.EndPos }
func (n *ForNode) String() string                        { return "(for-loop)" }

// WhileNode is a `WHILE condition THEN body END` loop.
type WhileNode struct {
	Condition        Node
	BodyNode         Node
	ShouldReturnNull bool
	StartPos         token.Position
	EndPos           token.Position
}

func (n *WhileNode) Pos() (token.Position, token.Position) { return n.StartPos, n.EndPos }
func (n *WhileNode) String() string                        { return "(while-loop)" }

// FuncDefNode defines a (possibly anonymous) function.
type FuncDefNode struct {
	NameTok        *token.Token // nil for anonymous functions
	ArgNameToks    []token.Token
	BodyNode       Node
	ShouldAutoReturn bool
	StartPos       token.Position
	EndPos         token.Position
}

func (n *FuncDefNode) Pos() (token.Position, token.Position) { return n.StartPos, n.EndPos }
func (n *FuncDefNode) String() string {
	name := "<anonymous>"
	if n.NameTok != nil {
		name = n.NameTok.Literal
	}
	return fmt.Sprintf("FUN %s(...)", name)
}

// CallNode calls a function or builtin.
type CallNode struct {
	NodeToCall Node
	ArgNodes   []Node
	EndPos     token.Position
}

func (n *CallNode) Pos() (token.Position, token.Position) {
	start, _ := n.NodeToCall.Pos()
	return start, n.EndPos
}
func (n *CallNode) String() string { return fmt.Sprintf("%s(...)", n.NodeToCall) }

// ReturnNode is a `RETURN expr` statement.
type ReturnNode struct {
	NodeToReturn Node // nil if bare `RETURN`
	StartPos     token.Position
	EndPos       token.Position
}

func (n *ReturnNode) Pos() (token.Position, token.Position) { return n.StartPos, n.EndPos }
func (n *ReturnNode) String() string                        { return "RETURN" }

// ContinueNode is a `CONTINUE` statement.
type ContinueNode struct {
	StartPos token.Position
	EndPos   token.Position
}

func (n *ContinueNode) Pos() (token.Position, token.Position) { return n.StartPos, n.EndPos }
func (n *ContinueNode) String() string                        { return "CONTINUE" }

// BreakNode is a `BREAK` statement.
type BreakNode struct {
	StartPos token.Position
	EndPos   token.Position
}

func (n *BreakNode) Pos() (token.Position, token.Position) { return n.StartPos, n.EndPos }
func (n *BreakNode) String() string                        { return "BREAK" }
