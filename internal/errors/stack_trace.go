package errors

import (
	"fmt"
	"strings"

	"github.com/LaputanMachines/simplescript/internal/token"
)

// StackFrame represents a single frame in a call stack: the display name
// of the context active at that frame (a function name, or "<program>"
// at the root) and the position within the *caller* from which the frame
// was entered.
type StackFrame struct {
	Position     *token.Position
	FunctionName string
}

// String formats a single frame as "File <name>, line <n>, in <function>".
func (sf StackFrame) String() string {
	if sf.Position == nil {
		return sf.FunctionName
	}
	return fmt.Sprintf("File %s, line %d, in %s", displayFile(sf.Position.FileName), sf.Position.Line+1, sf.FunctionName)
}

// StackTrace is a complete call stack, oldest (root) frame first.
type StackTrace []StackFrame

// String renders the traceback root-first, innermost-last.
func (st StackTrace) String() string {
	if len(st) == 0 {
		return ""
	}
	var sb strings.Builder
	sb.WriteString("Traceback (most recent call last):\n")
	for i, frame := range st {
		sb.WriteString(frame.String())
		if i < len(st)-1 {
			sb.WriteString("\n")
		}
	}
	return sb.String()
}

// Depth returns the number of frames currently on the stack.
func (st StackTrace) Depth() int {
	return len(st)
}

// NewStackFrame creates a stack frame for the given display name and
// source position.
func NewStackFrame(functionName string, position *token.Position) StackFrame {
	return StackFrame{FunctionName: functionName, Position: position}
}

// NewStackTrace creates an empty stack trace.
func NewStackTrace() StackTrace {
	return make(StackTrace, 0)
}
