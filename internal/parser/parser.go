// Package parser implements a recursive-descent, precedence-climbing
// parser that turns a token stream into the internal/ast node tree the
// evaluator walks.
package parser

import (
	"fmt"

	"github.com/LaputanMachines/simplescript/internal/ast"
	serr "github.com/LaputanMachines/simplescript/internal/errors"
	"github.com/LaputanMachines/simplescript/internal/token"
)

// Parser consumes a fixed token slice produced by the lexer.
type Parser struct {
	tokens []token.Token
	pos    int
	cur    token.Token
}

// New creates a Parser over the given token slice. The slice must be
// terminated by an EOF token, as produced by lexer.Tokenize.
func New(tokens []token.Token) *Parser {
	p := &Parser{tokens: tokens}
	p.cur = p.tokens[0]
	return p
}

// Parse parses the entire token stream as a sequence of statements
// separated by NEWLINE tokens, returning the root Program node.
func Parse(tokens []token.Token) (ast.Node, error) {
	p := New(tokens)
	node, err := p.parseStatements(nil)
	if err != nil {
		return nil, err
	}
	if p.cur.Type != token.EOF {
		return nil, serr.NewInvalidSyntaxError(
			fmt.Sprintf("expected an operator, got %s", p.cur),
			p.cur.Start, p.cur.End)
	}
	return node, nil
}

func (p *Parser) advance() token.Token {
	p.pos++
	if p.pos < len(p.tokens) {
		p.cur = p.tokens[p.pos]
	}
	return p.cur
}

func (p *Parser) skipNewlines() {
	for p.cur.Type == token.NEWLINE {
		p.advance()
	}
}

func (p *Parser) isKeyword(lit string) bool {
	return p.cur.Matches(token.KEYWORD, lit)
}

func (p *Parser) expectKeyword(lit string) error {
	if !p.isKeyword(lit) {
		return serr.NewInvalidSyntaxError(fmt.Sprintf("expected '%s'", lit), p.cur.Start, p.cur.End)
	}
	p.advance()
	return nil
}

func (p *Parser) expect(typ token.TokenType, what string) (token.Token, error) {
	if p.cur.Type != typ {
		return token.Token{}, serr.NewInvalidSyntaxError(fmt.Sprintf("expected %s", what), p.cur.Start, p.cur.End)
	}
	tok := p.cur
	p.advance()
	return tok, nil
}

// parseStatements parses zero or more expression-statements separated by
// NEWLINE tokens until EOF or a token in stopWords is reached (stopWords
// holds keyword literals such as "END"/"ELSE"/"ELIF" that close a block).
func (p *Parser) parseStatements(stopWords map[string]bool) (ast.Node, error) {
	start := p.cur.Start
	var statements []ast.Node

	p.skipNewlines()
	stmt, err := p.statement()
	if err != nil {
		return nil, err
	}
	statements = append(statements, stmt)

	for {
		newlineCount := 0
		for p.cur.Type == token.NEWLINE {
			p.advance()
			newlineCount++
		}
		if newlineCount == 0 {
			break
		}
		if p.atStop(stopWords) {
			break
		}
		stmt, err := p.statement()
		if err != nil {
			break
		}
		statements = append(statements, stmt)
	}

	end := p.cur.Start
	if len(statements) > 0 {
		_, end = statements[len(statements)-1].Pos()
	}
	return &ast.ListNode{Elements: statements, StartPos: start, EndPos: end}, nil
}

func (p *Parser) atStop(stopWords map[string]bool) bool {
	if p.cur.Type == token.EOF {
		return true
	}
	if stopWords == nil {
		return false
	}
	return p.cur.Type == token.KEYWORD && stopWords[p.cur.Literal]

}

func (p *Parser) statement() (ast.Node, error) {
	start := p.cur.Start

	switch {
	case p.isKeyword("RETURN"):
		p.advance()
		var expr ast.Node
		if p.cur.Type != token.NEWLINE && p.cur.Type != token.EOF {
			var err error
			expr, err = p.expr()
			if err != nil {
				return nil, err
			}
		}
		end := start
		if expr != nil {
			_, end = expr.Pos()
		}
		return &ast.ReturnNode{NodeToReturn: expr, StartPos: start, EndPos: end}, nil

	case p.isKeyword("CONTINUE"):
		end := p.cur.End
		p.advance()
		return &ast.ContinueNode{StartPos: start, EndPos: end}, nil

	case p.isKeyword("BREAK"):
		end := p.cur.End
		p.advance()
		return &ast.BreakNode{StartPos: start, EndPos: end}, nil
	}

	return p.expr()
}

// expr parses the lowest-precedence level: VAR assignment, or an
// AND/OR chain of comparisons.
func (p *Parser) expr() (ast.Node, error) {
	if p.isKeyword("VAR") {
		p.advance()
		nameTok, err := p.expect(token.IDENT, "an identifier")
		if err != nil {
			return nil, err
		}
		if p.cur.Type != token.ASSIGN {
			return nil, serr.NewInvalidSyntaxError("expected '='", p.cur.Start, p.cur.End)
		}
		p.advance()
		value, err := p.expr()
		if err != nil {
			return nil, err
		}
		return &ast.VarAssignNode{NameTok: nameTok, ValueNode: value}, nil
	}

	left, err := p.comparisonExpr()
	if err != nil {
		return nil, err
	}
	for p.isKeyword("AND") || p.isKeyword("OR") {
		opTok := p.cur
		p.advance()
		right, err := p.comparisonExpr()
		if err != nil {
			return nil, err
		}
		left = &ast.BinOpNode{Left: left, OpTok: opTok, Right: right}
	}
	return left, nil
}

func (p *Parser) comparisonExpr() (ast.Node, error) {
	if p.isKeyword("NOT") {
		opTok := p.cur
		start := p.cur.Start
		p.advance()
		operand, err := p.comparisonExpr()
		if err != nil {
			return nil, err
		}
		return &ast.UnaryOpNode{OpTok: opTok, Right: operand, StartPos: start}, nil
	}

	left, err := p.arithExpr()
	if err != nil {
		return nil, err
	}
	for isComparisonOp(p.cur.Type) {
		opTok := p.cur
		p.advance()
		right, err := p.arithExpr()
		if err != nil {
			return nil, err
		}
		left = &ast.BinOpNode{Left: left, OpTok: opTok, Right: right}
	}
	return left, nil
}

func isComparisonOp(t token.TokenType) bool {
	switch t {
	case token.EE, token.NE, token.LT, token.LTE, token.GT, token.GTE:
		return true
	}
	return false
}

func (p *Parser) arithExpr() (ast.Node, error) {
	left, err := p.term()
	if err != nil {
		return nil, err
	}
	for p.cur.Type == token.PLUS || p.cur.Type == token.MINUS {
		opTok := p.cur
		p.advance()
		right, err := p.term()
		if err != nil {
			return nil, err
		}
		left = &ast.BinOpNode{Left: left, OpTok: opTok, Right: right}
	}
	return left, nil
}

func (p *Parser) term() (ast.Node, error) {
	left, err := p.factor()
	if err != nil {
		return nil, err
	}
	for p.cur.Type == token.MUL || p.cur.Type == token.DIV ||
		p.cur.Type == token.CLEANDIV || p.cur.Type == token.MODULO {
		opTok := p.cur
		p.advance()
		right, err := p.factor()
		if err != nil {
			return nil, err
		}
		left = &ast.BinOpNode{Left: left, OpTok: opTok, Right: right}
	}
	return left, nil
}

func (p *Parser) factor() (ast.Node, error) {
	if p.cur.Type == token.PLUS || p.cur.Type == token.MINUS {
		opTok := p.cur
		start := p.cur.Start
		p.advance()
		operand, err := p.factor()
		if err != nil {
			return nil, err
		}
		return &ast.UnaryOpNode{OpTok: opTok, Right: operand, StartPos: start}, nil
	}
	return p.power()
}

func (p *Parser) power() (ast.Node, error) {
	left, err := p.call()
	if err != nil {
		return nil, err
	}
	if p.cur.Type == token.POWER {
		opTok := p.cur
		p.advance()
		right, err := p.factor()
		if err != nil {
			return nil, err
		}
		return &ast.BinOpNode{Left: left, OpTok: opTok, Right: right}, nil
	}
	return left, nil
}

func (p *Parser) call() (ast.Node, error) {
	atom, err := p.atom()
	if err != nil {
		return nil, err
	}
	if p.cur.Type != token.LPAREN {
		return atom, nil
	}
	p.advance()
	var args []ast.Node
	if p.cur.Type != token.RPAREN {
		arg, err := p.expr()
		if err != nil {
			return nil, err
		}
		args = append(args, arg)
		for p.cur.Type == token.COMMA {
			p.advance()
			arg, err := p.expr()
			if err != nil {
				return nil, err
			}
			args = append(args, arg)
		}
	}
	if p.cur.Type != token.RPAREN {
		return nil, serr.NewInvalidSyntaxError("expected ',' or ')'", p.cur.Start, p.cur.End)
	}
	end := p.cur.End
	p.advance()
	return &ast.CallNode{NodeToCall: atom, ArgNodes: args, EndPos: end}, nil
}

func (p *Parser) atom() (ast.Node, error) {
	tok := p.cur

	switch tok.Type {
	case token.INT, token.FLOAT:
		p.advance()
		return &ast.NumberNode{Token: tok}, nil

	case token.STRING:
		p.advance()
		return &ast.StringNode{Token: tok}, nil

	case token.IDENT:
		p.advance()
		return &ast.VarAccessNode{NameTok: tok}, nil

	case token.LPAREN:
		p.advance()
		expr, err := p.expr()
		if err != nil {
			return nil, err
		}
		if p.cur.Type != token.RPAREN {
			return nil, serr.NewInvalidSyntaxError("expected ')'", p.cur.Start, p.cur.End)
		}
		p.advance()
		return expr, nil

	case token.LSQUARE:
		return p.listExpr()

	case token.KEYWORD:
		switch tok.Literal {
		case "IF":
			return p.ifExpr()
		case "FOR":
			return p.forExpr()
		case "WHILE":
			return p.whileExpr()
		case "FUN":
			return p.funcDef()
		}
	}

	return nil, serr.NewInvalidSyntaxError(
		fmt.Sprintf("expected an expression, got %s", tok), tok.Start, tok.End)
}

func (p *Parser) listExpr() (ast.Node, error) {
	start := p.cur.Start
	p.advance() // consume '['
	var elements []ast.Node
	if p.cur.Type != token.RSQUARE {
		el, err := p.expr()
		if err != nil {
			return nil, err
		}
		elements = append(elements, el)
		for p.cur.Type == token.COMMA {
			p.advance()
			el, err := p.expr()
			if err != nil {
				return nil, err
			}
			elements = append(elements, el)
		}
	}
	if p.cur.Type != token.RSQUARE {
		return nil, serr.NewInvalidSyntaxError("expected ',' or ']'", p.cur.Start, p.cur.End)
	}
	end := p.cur.End
	p.advance()
	return &ast.ListNode{Elements: elements, StartPos: start, EndPos: end}, nil
}

var ifStop = map[string]bool{"ELIF": true, "ELSE": true, "END": true}

func (p *Parser) ifExpr() (ast.Node, error) {
	start := p.cur.Start
	var cases []ast.IfCase
	var elseCase *ast.ElseCase

	if err := p.expectKeyword("IF"); err != nil {
		return nil, err
	}
	for {
		cond, err := p.expr()
		if err != nil {
			return nil, err
		}
		if err := p.expectKeyword("THEN"); err != nil {
			return nil, err
		}

		if p.cur.Type == token.NEWLINE {
			p.advance()
			body, err := p.parseStatements(ifStop)
			if err != nil {
				return nil, err
			}
			cases = append(cases, ast.IfCase{Condition: cond, Expr: body, ShouldReturnNull: true})
			if p.isKeyword("END") {
				end := p.cur.End
				p.advance()
				return &ast.IfNode{Cases: cases, Else: elseCase, StartPos: start, EndPos: end}, nil
			}
		} else {
			body, err := p.statement()
			if err != nil {
				return nil, err
			}
			cases = append(cases, ast.IfCase{Condition: cond, Expr: body, ShouldReturnNull: false})
		}

		if p.isKeyword("ELIF") {
			p.advance()
			continue
		}
		break
	}

	if p.isKeyword("ELSE") {
		p.advance()
		if p.cur.Type == token.NEWLINE {
			p.advance()
			body, err := p.parseStatements(map[string]bool{"END": true})
			if err != nil {
				return nil, err
			}
			elseCase = &ast.ElseCase{Expr: body, ShouldReturnNull: true}
			if err := p.expectKeyword("END"); err != nil {
				return nil, err
			}
		} else {
			body, err := p.statement()
			if err != nil {
				return nil, err
			}
			elseCase = &ast.ElseCase{Expr: body, ShouldReturnNull: false}
		}
	}

	end := p.cur.Start
	if elseCase != nil {
		_, end = elseCase.Expr.Pos()
	} else if len(cases) > 0 {
		_, end = cases[len(cases)-1].Expr.Pos()
	}
	return &ast.IfNode{Cases: cases, Else: elseCase, StartPos: start, EndPos: end}, nil
}

func (p *Parser) forExpr() (ast.Node, error) {
	start := p.cur.Start
	if err := p.expectKeyword("FOR"); err != nil {
		return nil, err
	}
	nameTok, err := p.expect(token.IDENT, "an identifier")
	if err != nil {
		return nil, err
	}
	if p.cur.Type != token.ASSIGN {
		return nil, serr.NewInvalidSyntaxError("expected '='", p.cur.Start, p.cur.End)
	}
	p.advance()
	startValue, err := p.expr()
	if err != nil {
		return nil, err
	}
	if err := p.expectKeyword("TO"); err != nil {
		return nil, err
	}
	endValue, err := p.expr()
	if err != nil {
		return nil, err
	}
	var stepValue ast.Node
	if p.isKeyword("STEP") {
		p.advance()
		stepValue, err = p.expr()
		if err != nil {
			return nil, err
		}
	}
	if err := p.expectKeyword("THEN"); err != nil {
		return nil, err
	}

	if p.cur.Type == token.NEWLINE {
		p.advance()
		body, err := p.parseStatements(map[string]bool{"END": true})
		if err != nil {
			return nil, err
		}
		end := p.cur.End
		if err := p.expectKeyword("END"); err != nil {
			return nil, err
		}
		return &ast.ForNode{
			VarNameTok: nameTok, StartValueNode: startValue, EndValueNode: endValue,
			StepValueNode: stepValue, BodyNode: body, ShouldReturnNull: true,
			StartPos: start, EndPos: end,
		}, nil
	}

	body, err := p.statement()
	if err != nil {
		return nil, err
	}
	_, end := body.Pos()
	return &ast.ForNode{
		VarNameTok: nameTok, StartValueNode: startValue, EndValueNode: endValue,
		StepValueNode: stepValue, BodyNode: body, ShouldReturnNull: false,
		StartPos: start, EndPos: end,
	}, nil
}

func (p *Parser) whileExpr() (ast.Node, error) {
	start := p.cur.Start
	if err := p.expectKeyword("WHILE"); err != nil {
		return nil, err
	}
	cond, err := p.expr()
	if err != nil {
		return nil, err
	}
	if err := p.expectKeyword("THEN"); err != nil {
		return nil, err
	}

	if p.cur.Type == token.NEWLINE {
		p.advance()
		body, err := p.parseStatements(map[string]bool{"END": true})
		if err != nil {
			return nil, err
		}
		end := p.cur.End
		if err := p.expectKeyword("END"); err != nil {
			return nil, err
		}
		return &ast.WhileNode{Condition: cond, BodyNode: body, ShouldReturnNull: true, StartPos: start, EndPos: end}, nil
	}

	body, err := p.statement()
	if err != nil {
		return nil, err
	}
	_, end := body.Pos()
	return &ast.WhileNode{Condition: cond, BodyNode: body, ShouldReturnNull: false, StartPos: start, EndPos: end}, nil
}

func (p *Parser) funcDef() (ast.Node, error) {
	start := p.cur.Start
	if err := p.expectKeyword("FUN"); err != nil {
		return nil, err
	}

	var nameTok *token.Token
	if p.cur.Type == token.IDENT {
		tok := p.cur
		nameTok = &tok
		p.advance()
	}

	if p.cur.Type != token.LPAREN {
		return nil, serr.NewInvalidSyntaxError("expected '('", p.cur.Start, p.cur.End)
	}
	p.advance()

	var argToks []token.Token
	if p.cur.Type == token.IDENT {
		argToks = append(argToks, p.cur)
		p.advance()
		for p.cur.Type == token.COMMA {
			p.advance()
			arg, err := p.expect(token.IDENT, "an identifier")
			if err != nil {
				return nil, err
			}
			argToks = append(argToks, arg)
		}
	}
	if p.cur.Type != token.RPAREN {
		return nil, serr.NewInvalidSyntaxError("expected ',' or ')'", p.cur.Start, p.cur.End)
	}
	p.advance()

	if p.cur.Type == token.ARROW {
		p.advance()
		body, err := p.expr()
		if err != nil {
			return nil, err
		}
		_, end := body.Pos()
		return &ast.FuncDefNode{
			NameTok: nameTok, ArgNameToks: argToks, BodyNode: body,
			ShouldAutoReturn: true, StartPos: start, EndPos: end,
		}, nil
	}

	if p.cur.Type != token.NEWLINE {
		return nil, serr.NewInvalidSyntaxError("expected '->' or a newline", p.cur.Start, p.cur.End)
	}
	p.advance()
	body, err := p.parseStatements(map[string]bool{"END": true})
	if err != nil {
		return nil, err
	}
	end := p.cur.End
	if err := p.expectKeyword("END"); err != nil {
		return nil, err
	}
	return &ast.FuncDefNode{
		NameTok: nameTok, ArgNameToks: argToks, BodyNode: body,
		ShouldAutoReturn: false, StartPos: start, EndPos: end,
	}, nil
}
