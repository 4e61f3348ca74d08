package errors

import (
	"strings"
	"testing"

	"github.com/LaputanMachines/simplescript/internal/token"
)

func TestStackFrame_String(t *testing.T) {
	tests := []struct {
		name     string
		frame    StackFrame
		expected string
	}{
		{
			name: "frame with position",
			frame: StackFrame{
				FunctionName: "add",
				Position:     &token.Position{FileName: "test.ss", Line: 9},
			},
			expected: "File test.ss, line 10, in add",
		},
		{
			name: "frame without position",
			frame: StackFrame{
				FunctionName: "<program>",
				Position:     nil,
			},
			expected: "<program>",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.frame.String(); got != tt.expected {
				t.Errorf("String() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestStackTrace_String(t *testing.T) {
	trace := StackTrace{
		NewStackFrame("<program>", &token.Position{FileName: "test.ss", Line: 0}),
		NewStackFrame("make_adder", &token.Position{FileName: "test.ss", Line: 4}),
	}

	out := trace.String()
	if !strings.HasPrefix(out, "Traceback (most recent call last):\n") {
		t.Fatalf("expected traceback header, got %q", out)
	}
	if !strings.Contains(out, "in <program>") || !strings.Contains(out, "in make_adder") {
		t.Fatalf("expected both frames in traceback, got %q", out)
	}

	// Root frame must render before the innermost frame.
	rootIdx := strings.Index(out, "in <program>")
	innerIdx := strings.Index(out, "in make_adder")
	if rootIdx > innerIdx {
		t.Fatalf("expected root frame before innermost frame, got %q", out)
	}
}

func TestStackTrace_EmptyString(t *testing.T) {
	var trace StackTrace
	if got := trace.String(); got != "" {
		t.Errorf("empty StackTrace.String() = %q, want empty", got)
	}
}

func TestStackTrace_Depth(t *testing.T) {
	trace := NewStackTrace()
	if trace.Depth() != 0 {
		t.Fatalf("expected depth 0, got %d", trace.Depth())
	}
	trace = append(trace, NewStackFrame("f", nil))
	if trace.Depth() != 1 {
		t.Fatalf("expected depth 1, got %d", trace.Depth())
	}
}
