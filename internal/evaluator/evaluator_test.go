package evaluator

import (
	"testing"

	"github.com/LaputanMachines/simplescript/internal/lexer"
	"github.com/LaputanMachines/simplescript/internal/parser"
	"github.com/LaputanMachines/simplescript/internal/runtime"
)

func run(t *testing.T, src string) (runtime.Value, *runtime.RuntimeError) {
	t.Helper()
	toks, err := lexer.New("test.ss", src).Tokenize()
	if err != nil {
		t.Fatalf("lexer error: %v", err)
	}
	program, err := parser.Parse(toks)
	if err != nil {
		t.Fatalf("parser error: %v", err)
	}
	env := runtime.NewEnvironment()
	ctx := runtime.NewContext("<program>", env)
	return Run(ctx, program)
}

func runOK(t *testing.T, src string) runtime.Value {
	t.Helper()
	v, err := run(t, src)
	if err != nil {
		t.Fatalf("unexpected error evaluating %q: %v", src, err)
	}
	return v
}

func TestEval_Arithmetic(t *testing.T) {
	cases := map[string]string{
		"1 + 2":       "3",
		"2 * 3 + 1":   "7",
		"(2 + 3) * 4": "20",
		"10 / 4":      "2.5",
		"10 // 4":     "2",
		"10 % 3":      "1",
		"2 ^ 10":      "1024",
		"-5 + 2":      "-3",
	}
	for src, want := range cases {
		got := runOK(t, src).String()
		if got != want {
			t.Errorf("%q = %q, want %q", src, got, want)
		}
	}
}

func TestEval_DivisionByZero(t *testing.T) {
	_, err := run(t, "1 / 0")
	if err == nil {
		t.Fatal("expected a division-by-zero error")
	}
}

func TestEval_DivisionByZero_PositionSpansDivisorOnly(t *testing.T) {
	// "5 / 0": the reported span must cover the "0", not the whole
	// "5 / 0" expression.
	src := "5 / 0"
	_, err := run(t, src)
	if err == nil {
		t.Fatal("expected a division-by-zero error")
	}
	start, end := err.Err.Start, err.Err.End
	if start.Column != 4 || end.Column != 5 {
		t.Fatalf("got span [%d:%d), want [4:5) (just the '0')", start.Column, end.Column)
	}
}

func TestEval_Comparisons(t *testing.T) {
	cases := map[string]string{
		"1 == 1":          "1",
		"1 != 1":          "0",
		"1 < 2":           "1",
		"1 AND 0":         "0",
		"1 OR 0":          "1",
		"NOT 0":           "1",
		"1 == 1 AND 2 < 3": "1",
	}
	for src, want := range cases {
		got := runOK(t, src).String()
		if got != want {
			t.Errorf("%q = %q, want %q", src, got, want)
		}
	}
}

func TestEval_ShortCircuit_AND_SkipsRightSideError(t *testing.T) {
	// If AND evaluated the right side, dividing by zero would raise an
	// error; since the left side is falsey, AND must short-circuit.
	v, err := run(t, "0 AND (1 / 0)")
	if err != nil {
		t.Fatalf("expected AND to short-circuit, got error: %v", err)
	}
	if v.String() != "0" {
		t.Fatalf("got %q, want 0", v.String())
	}
}

func TestEval_ShortCircuit_OR_SkipsRightSideError(t *testing.T) {
	v, err := run(t, "1 OR (1 / 0)")
	if err != nil {
		t.Fatalf("expected OR to short-circuit, got error: %v", err)
	}
	if v.String() != "1" {
		t.Fatalf("got %q, want 1", v.String())
	}
}

func TestEval_VarAssignAndAccess(t *testing.T) {
	v := runOK(t, "VAR x = 5\nVAR y = x + 1\ny")
	if v.String() != "6" {
		t.Fatalf("got %q, want 6", v.String())
	}
}

func TestEval_NameNotDefined(t *testing.T) {
	_, err := run(t, "missing")
	if err == nil {
		t.Fatal("expected a name-not-defined error")
	}
}

func TestEval_StringConcat(t *testing.T) {
	v := runOK(t, `"foo" + "bar"`)
	if v.String() != "foobar" {
		t.Fatalf("got %q, want foobar", v.String())
	}
}

func TestEval_ListLiteralAndConcat(t *testing.T) {
	v := runOK(t, "[1, 2] + 3")
	if v.String() != "[1, 2, 3]" {
		t.Fatalf("got %q, want [1, 2, 3]", v.String())
	}
}

func TestEval_IfExpr(t *testing.T) {
	if got := runOK(t, "IF 1 THEN 10 ELSE 20").String(); got != "10" {
		t.Fatalf("got %q, want 10", got)
	}
	if got := runOK(t, "IF 0 THEN 10 ELIF 1 THEN 30 ELSE 20").String(); got != "30" {
		t.Fatalf("got %q, want 30", got)
	}
}

func TestEval_ForLoop_AccumulatesViaVar(t *testing.T) {
	src := "VAR total = 0\nFOR i = 1 TO 5 THEN VAR total = total + i\ntotal"
	if got := runOK(t, src).String(); got != "10" {
		t.Fatalf("got %q, want 10 (1+2+3+4)", got)
	}
}

func TestEval_WhileLoop_Break(t *testing.T) {
	src := "VAR i = 0\nWHILE 1 THEN\nVAR i = i + 1\nIF i == 3 THEN BREAK\nEND\ni"
	if got := runOK(t, src).String(); got != "3" {
		t.Fatalf("got %q, want 3", got)
	}
}

func TestEval_WhileLoop_Continue(t *testing.T) {
	src := "VAR i = 0\nVAR total = 0\nWHILE i < 5 THEN\nVAR i = i + 1\nIF i == 3 THEN CONTINUE\nVAR total = total + i\nEND\ntotal"
	// i goes 1,2,3,4,5; 3 is skipped by CONTINUE -> total = 1+2+4+5 = 12
	if got := runOK(t, src).String(); got != "12" {
		t.Fatalf("got %q, want 12", got)
	}
}

func TestEval_BreakOutsideLoop_IsRuntimeError(t *testing.T) {
	_, err := run(t, "BREAK")
	if err == nil {
		t.Fatal("expected BREAK outside a loop to be a runtime error")
	}
}

func TestEval_ContinueOutsideLoop_IsRuntimeError(t *testing.T) {
	_, err := run(t, "CONTINUE")
	if err == nil {
		t.Fatal("expected CONTINUE outside a loop to be a runtime error")
	}
}

func TestEval_FunctionDefAndCall_Lambda(t *testing.T) {
	v := runOK(t, "FUN add(a, b) -> a + b\nadd(2, 3)")
	if v.String() != "5" {
		t.Fatalf("got %q, want 5", v.String())
	}
}

func TestEval_FunctionDefAndCall_Block(t *testing.T) {
	src := "FUN add(a, b)\nRETURN a + b\nEND\nadd(4, 5)"
	if got := runOK(t, src).String(); got != "9" {
		t.Fatalf("got %q, want 9", got)
	}
}

func TestEval_Closure_CapturesDefiningScope(t *testing.T) {
	src := "FUN makeAdder(x)\nFUN adder(y) -> x + y\nRETURN adder\nEND\nVAR add5 = makeAdder(5)\nadd5(3)"
	if got := runOK(t, src).String(); got != "8" {
		t.Fatalf("got %q, want 8", got)
	}
}

func TestEval_VarInFunctionBody_DoesNotMutateOuterScope(t *testing.T) {
	// A VAR inside a function body binds locally to that call's frame;
	// it must never reach out and overwrite a same-named outer binding.
	src := "VAR x = 1\nFUN f()\nVAR x = 2\nRETURN x\nEND\nf()\nx"
	if got := runOK(t, src).String(); got != "1" {
		t.Fatalf("got %q, want 1 (outer x must be untouched by the call)", got)
	}
}

func TestEval_VarAccess_RepositionsToAccessSite(t *testing.T) {
	// x's value is created on line 0; reading it back on line 2 must
	// retag it with line 2's position, not keep line 0's.
	src := "VAR x = 5\n\nx"
	v := runOK(t, src)
	start, _ := runtime.Pos(v)
	if start.Line != 2 {
		t.Fatalf("var access value tagged with line %d, want line 2 (the access site)", start.Line)
	}
}

func TestEval_CallReturnValue_RepositionsToCallSite(t *testing.T) {
	// The value returned by f() is created on line 1 inside the
	// function body; the call on line 4 must retag it with the call
	// site's position, not line 1's.
	src := "FUN f()\nRETURN 5\nEND\n\nf()"
	v := runOK(t, src)
	start, _ := runtime.Pos(v)
	if start.Line != 4 {
		t.Fatalf("call return value tagged with line %d, want line 4 (the call site)", start.Line)
	}
}

func TestEval_Recursion(t *testing.T) {
	src := `FUN fact(n)
IF n <= 1 THEN
RETURN 1
ELSE
RETURN n * fact(n - 1)
END
END
fact(5)`
	if got := runOK(t, src).String(); got != "120" {
		t.Fatalf("got %q, want 120", got)
	}
}

func TestEval_WrongArity(t *testing.T) {
	_, err := run(t, "FUN add(a, b) -> a + b\nadd(1)")
	if err == nil {
		t.Fatal("expected a wrong-arity error")
	}
}

func TestEval_CallingNonFunction(t *testing.T) {
	_, err := run(t, "VAR x = 5\nx(1)")
	if err == nil {
		t.Fatal("expected a not-callable error")
	}
}

func TestEval_IllegalOperation(t *testing.T) {
	_, err := run(t, `[1] - [2]`)
	if err == nil {
		t.Fatal("expected an illegal-operation error for list subtraction")
	}
}

func TestEval_ListIndexAccess(t *testing.T) {
	src := "VAR lst = [1, 2, 3]\nlst / 1"
	if got := runOK(t, src).String(); got != "2" {
		t.Fatalf("got %q, want 2", got)
	}
}

func TestEval_ListIndexOutOfBounds(t *testing.T) {
	_, err := run(t, "VAR lst = [1, 2, 3]\nlst / 99")
	if err == nil {
		t.Fatal("expected an index-out-of-bounds error")
	}
}

func TestEval_ListRemoveAtIndex(t *testing.T) {
	src := "VAR lst = [1, 2, 3]\nlst - 1"
	if got := runOK(t, src).String(); got != "[1, 3]" {
		t.Fatalf("got %q, want [1, 3]", got)
	}
}

func TestEval_ListRemoveAtIndex_DoesNotMutateOriginal(t *testing.T) {
	src := "VAR lst = [1, 2, 3]\nVAR dropped = lst - 1\nlst"
	if got := runOK(t, src).String(); got != "[1, 2, 3]" {
		t.Fatalf("got %q, want [1, 2, 3] (original list unchanged)", got)
	}
}

func TestEval_StringRepeat(t *testing.T) {
	src := `"ab" * 3`
	if got := runOK(t, src).String(); got != "ababab" {
		t.Fatalf("got %q, want ababab", got)
	}
}
