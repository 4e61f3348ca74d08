package runtime

import (
	"testing"

	"github.com/LaputanMachines/simplescript/internal/token"
)

func TestContext_ChildIncrementsDepth(t *testing.T) {
	root := NewContext("<program>", NewEnvironment())
	if root.Depth() != 0 {
		t.Fatalf("root depth = %d, want 0", root.Depth())
	}
	child := root.Child("f", token.Position{}, NewEnclosedEnvironment(root.Env))
	if child.Depth() != 1 {
		t.Fatalf("child depth = %d, want 1", child.Depth())
	}
}

func TestContext_SetMaxCallDepth(t *testing.T) {
	root := NewContext("<program>", NewEnvironment())
	root.SetMaxCallDepth(2)

	child := root.Child("f", token.Position{}, NewEnclosedEnvironment(root.Env))
	if child.WillOverflow() {
		t.Fatal("depth 1 should not overflow a max of 2")
	}
	grandchild := child.Child("g", token.Position{}, NewEnclosedEnvironment(child.Env))
	if !grandchild.WillOverflow() {
		t.Fatal("depth 2 should overflow a max of 2")
	}
}

func TestContext_SetMaxCallDepth_IgnoresNonPositive(t *testing.T) {
	root := NewContext("<program>", NewEnvironment())
	root.SetMaxCallDepth(0)
	if root.maxDepth != MaxCallDepth {
		t.Fatalf("maxDepth = %d, want default %d", root.maxDepth, MaxCallDepth)
	}
}

func TestContext_Traceback_RootFirst(t *testing.T) {
	root := NewContext("<program>", NewEnvironment())
	pos := token.Position{FileName: "test.ss", Line: 2}
	child := root.Child("f", pos, NewEnclosedEnvironment(root.Env))
	grandchild := child.Child("g", pos, NewEnclosedEnvironment(child.Env))

	trace := grandchild.Traceback()
	if trace.Depth() != 3 {
		t.Fatalf("trace depth = %d, want 3", trace.Depth())
	}
	if trace[0].FunctionName != "<program>" {
		t.Fatalf("root frame = %q, want <program>", trace[0].FunctionName)
	}
	if trace[len(trace)-1].FunctionName != "g" {
		t.Fatalf("innermost frame = %q, want g", trace[len(trace)-1].FunctionName)
	}
}
