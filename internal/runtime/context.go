package runtime

import (
	"io"
	"os"

	serrors "github.com/LaputanMachines/simplescript/internal/errors"
	"github.com/LaputanMachines/simplescript/internal/token"
)

// MaxCallDepth bounds function-call recursion depth. Exceeding it
// raises a runtime error rather than letting a runaway SimpleScript
// program overflow the Go goroutine stack.
const MaxCallDepth = 1000

// Context is a single call frame: a display name (used in tracebacks),
// a link to the calling context, the position in the caller from which
// this frame was entered, and the Environment this frame executes
// statements against. The root context, created once per program run
// ("<program>" from the CLI, "<repl>" in the REPL), has a nil Parent.
type Context struct {
	DisplayName string
	Parent      *Context
	ParentEntry *token.Position
	Env         *Environment

	Stdout io.Writer
	Stdin  io.Reader

	depth    int
	maxDepth int
}

// NewContext creates the root execution context for a program run,
// wired to stdout/stdin for PRINT/INPUT builtins and defaulting to
// MaxCallDepth recursion limit (override with SetMaxCallDepth).
func NewContext(displayName string, env *Environment) *Context {
	return &Context{
		DisplayName: displayName,
		Env:         env,
		Stdout:      os.Stdout,
		Stdin:       os.Stdin,
		maxDepth:    MaxCallDepth,
	}
}

// SetMaxCallDepth overrides the recursion-depth limit for this context
// and every frame subsequently created as its descendant via Child. A
// value <= 0 is ignored, leaving the previous limit in place.
func (c *Context) SetMaxCallDepth(n int) {
	if n > 0 {
		c.maxDepth = n
	}
}

// Child creates a new call frame for invoking a function from this
// context: entryPos is the position in this context's source the call
// happened at, and env is the callee's fresh local environment (its
// parent should be the defining environment of the function being
// called, to give it proper lexical — not dynamic — scoping).
func (c *Context) Child(displayName string, entryPos token.Position, env *Environment) *Context {
	return &Context{
		DisplayName: displayName,
		Parent:      c,
		ParentEntry: &entryPos,
		Env:         env,
		Stdout:      c.Stdout,
		Stdin:       c.Stdin,
		depth:       c.depth + 1,
		maxDepth:    c.maxDepth,
	}
}

// Depth returns the number of frames between this context and the
// program root, inclusive of neither endpoint's sibling calls — i.e.
// the root context has depth 0.
func (c *Context) Depth() int { return c.depth }

// WillOverflow reports whether calling one more function from this
// context would exceed the configured maximum call depth.
func (c *Context) WillOverflow() bool {
	max := c.maxDepth
	if max <= 0 {
		max = MaxCallDepth
	}
	return c.depth >= max
}

// Traceback walks from this context up to the root, producing a
// StackTrace ordered root-first (oldest frame first).
func (c *Context) Traceback() serrors.StackTrace {
	var frames []serrors.StackFrame
	for cur := c; cur != nil; cur = cur.Parent {
		frames = append(frames, serrors.NewStackFrame(cur.DisplayName, cur.ParentEntry))
	}
	// frames is innermost-first; reverse it to root-first.
	trace := make(serrors.StackTrace, len(frames))
	for i, f := range frames {
		trace[len(frames)-1-i] = f
	}
	return trace
}
