// Package errors implements SimpleScript's diagnostic rendering: every
// lexer, parser, and runtime failure is an *Error carrying a source span,
// pretty-printed with a caret/arrow underline beneath the offending text,
// adapted to Go's error interface.
package errors

import (
	"fmt"
	"strings"

	"github.com/LaputanMachines/simplescript/internal/token"
)

// Error is the base diagnostic type. Name identifies the error category
// ("IllegalCharError", "InvalidSyntaxError", "ActiveRuntimeError", ...);
// Details is the human-readable description; Start/End bound the source
// span the error refers to.
type Error struct {
	Name    string
	Details string
	Start   token.Position
	End     token.Position
}

// Error implements the standard error interface.
func (e *Error) Error() string {
	return e.Format()
}

// Format renders the error as a file/line header, the message, and a
// caret-underlined excerpt of the source line(s) spanned by Start/End.
func (e *Error) Format() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "File %s, line %d\n", displayFile(e.Start.FileName), e.Start.Line+1)
	fmt.Fprintf(&sb, "%s: %s\n", e.Name, e.Details)
	sb.WriteString(stringWithArrows(e.Start.Source, e.Start, e.End))
	return sb.String()
}

func displayFile(name string) string {
	if name == "" {
		return "<unknown>"
	}
	return name
}

// NewIllegalCharError reports a character the lexer cannot tokenize.
func NewIllegalCharError(details string, start, end token.Position) *Error {
	return &Error{
		Name:    "IllegalCharError",
		Details: fmt.Sprintf("illegal character in the stream (%s)", details),
		Start:   start,
		End:     end,
	}
}

// NewInvalidSyntaxError reports a parser-level grammar violation.
func NewInvalidSyntaxError(details string, start, end token.Position) *Error {
	return &Error{
		Name:    "InvalidSyntaxError",
		Details: fmt.Sprintf("invalid syntax in the stream (%s)", details),
		Start:   start,
		End:     end,
	}
}

// NewExpectedCharError reports a lexer expecting one character (e.g. the
// '=' of "!=", or a string's closing quote) and not finding it.
func NewExpectedCharError(details string, start, end token.Position) *Error {
	return &Error{
		Name:    "ExpectedCharError",
		Details: fmt.Sprintf("expected character (%s)", details),
		Start:   start,
		End:     end,
	}
}

// stringWithArrows renders the source line(s) between start and end with a
// line of '^' characters underneath the spanned columns.
func stringWithArrows(text string, start, end token.Position) string {
	var sb strings.Builder

	idxStart := lastIndexBefore(text, start.Index)
	idxEnd := indexOfOrLen(text, idxStart+1, '\n')

	lineCount := end.Line - start.Line + 1
	for i := 0; i < lineCount; i++ {
		line := ""
		if idxStart >= 0 && idxEnd >= idxStart {
			line = text[idxStart:idxEnd]
		}

		colStart := 0
		if i == 0 {
			colStart = start.Column
		}
		colEnd := len(line)
		if i == lineCount-1 {
			colEnd = end.Column
		}
		if colEnd <= colStart {
			colEnd = colStart + 1
		}

		sb.WriteString(line)
		sb.WriteString("\n")
		sb.WriteString(strings.Repeat(" ", colStart))
		sb.WriteString(strings.Repeat("^", colEnd-colStart))

		idxStart = idxEnd
		idxEnd = indexOfOrLen(text, idxStart+1, '\n')
		if i != lineCount-1 {
			sb.WriteString("\n")
		}
	}

	return strings.ReplaceAll(sb.String(), "\t", "")
}

func lastIndexBefore(text string, index int) int {
	i := strings.LastIndexByte(text[:clamp(index, 0, len(text))], '\n')
	return i + 1
}

func indexOfOrLen(text string, from int, ch byte) int {
	if from > len(text) {
		from = len(text)
	}
	if from < 0 {
		from = 0
	}
	if i := strings.IndexByte(text[from:], ch); i >= 0 {
		return from + i
	}
	return len(text)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
