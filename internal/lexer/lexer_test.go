package lexer

import (
	"testing"

	"github.com/LaputanMachines/simplescript/internal/token"
)

func TestNextToken_Operators(t *testing.T) {
	input := `+-*/ // % ^ ( ) [ ] , -> = == != < <= > >=`

	tests := []struct {
		expectedType    token.TokenType
		expectedLiteral string
	}{
		{token.PLUS, "+"},
		{token.MINUS, "-"},
		{token.MUL, "*"},
		{token.DIV, "/"},
		{token.CLEANDIV, "//"},
		{token.MODULO, "%"},
		{token.POWER, "^"},
		{token.LPAREN, "("},
		{token.RPAREN, ")"},
		{token.LSQUARE, "["},
		{token.RSQUARE, "]"},
		{token.COMMA, ","},
		{token.ARROW, "->"},
		{token.ASSIGN, "="},
		{token.EE, "=="},
		{token.NE, "!="},
		{token.LT, "<"},
		{token.LTE, "<="},
		{token.GT, ">"},
		{token.GTE, ">="},
		{token.EOF, ""},
	}

	l := New("test.ss", input)
	for i, tt := range tests {
		tok, err := l.NextToken()
		if err != nil {
			t.Fatalf("test[%d]: unexpected error: %v", i, err)
		}
		if tok.Type != tt.expectedType {
			t.Fatalf("test[%d]: type = %s, want %s", i, tok.Type, tt.expectedType)
		}
		if tok.Literal != tt.expectedLiteral {
			t.Fatalf("test[%d]: literal = %q, want %q", i, tok.Literal, tt.expectedLiteral)
		}
	}
}

func TestNextToken_NumbersAndIdents(t *testing.T) {
	input := `VAR x = 5\nVAR pi = 3.14\nresult`

	tests := []struct {
		expectedType    token.TokenType
		expectedLiteral string
	}{
		{token.KEYWORD, "VAR"},
		{token.IDENT, "x"},
		{token.ASSIGN, "="},
		{token.INT, "5"},
	}

	l := New("test.ss", input)
	for i, tt := range tests {
		tok, err := l.NextToken()
		if err != nil {
			t.Fatalf("test[%d]: unexpected error: %v", i, err)
		}
		if tok.Type != tt.expectedType || tok.Literal != tt.expectedLiteral {
			t.Fatalf("test[%d]: got %s(%q), want %s(%q)", i, tok.Type, tok.Literal, tt.expectedType, tt.expectedLiteral)
		}
	}
}

func TestNextToken_Float(t *testing.T) {
	l := New("test.ss", "3.14")
	tok, err := l.NextToken()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tok.Type != token.FLOAT || tok.Literal != "3.14" {
		t.Fatalf("got %s(%q), want FLOAT(3.14)", tok.Type, tok.Literal)
	}
}

func TestNextToken_StringEscapes(t *testing.T) {
	l := New("test.ss", `"line1\nline2\t\"quoted\""`)
	tok, err := l.NextToken()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := "line1\nline2\t\"quoted\""
	if tok.Type != token.STRING || tok.Literal != want {
		t.Fatalf("got %s(%q), want STRING(%q)", tok.Type, tok.Literal, want)
	}
}

func TestNextToken_UnterminatedString(t *testing.T) {
	l := New("test.ss", `"oops`)
	_, err := l.NextToken()
	if err == nil {
		t.Fatal("expected an error for unterminated string")
	}
}

func TestNextToken_IllegalChar(t *testing.T) {
	l := New("test.ss", "@")
	_, err := l.NextToken()
	if err == nil {
		t.Fatal("expected an error for illegal character")
	}
}

func TestNextToken_LoneBang(t *testing.T) {
	l := New("test.ss", "!")
	_, err := l.NextToken()
	if err == nil {
		t.Fatal("expected an error for a bare '!'")
	}
}

func TestNextToken_CommentsSkipped(t *testing.T) {
	l := New("test.ss", "# this is a comment\n5")
	tok, err := l.NextToken()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tok.Type != token.NEWLINE {
		t.Fatalf("expected NEWLINE after comment, got %s", tok.Type)
	}
	tok, err = l.NextToken()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if tok.Type != token.INT || tok.Literal != "5" {
		t.Fatalf("got %s(%q), want INT(5)", tok.Type, tok.Literal)
	}
}

func TestTokenize_EndsWithEOF(t *testing.T) {
	toks, err := New("test.ss", "1 + 2").Tokenize()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(toks) == 0 || toks[len(toks)-1].Type != token.EOF {
		t.Fatalf("expected final token to be EOF, got %+v", toks)
	}
}

func TestTokenize_MultiByteRunesAdvanceByteIndex(t *testing.T) {
	// "é" is a 2-byte UTF-8 sequence; the following quote must still be
	// located at the correct byte offset for string slicing in error
	// rendering to stay in sync with the lexer's own position tracking.
	toks, err := New("test.ss", `"café"`).Tokenize()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if toks[0].Type != token.STRING || toks[0].Literal != "café" {
		t.Fatalf("got %s(%q), want STRING(café)", toks[0].Type, toks[0].Literal)
	}
}
