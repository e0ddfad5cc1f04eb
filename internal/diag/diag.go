// Package diag holds the small error record shared by the lexer, parser,
// and evaluator/engine: a line number and a message, collected into a
// list rather than raised as panics.
package diag

import "fmt"

// Error is a single diagnostic tied to a source line.
type Error struct {
	Line    int
	Message string
}

func (e Error) Error() string {
	return fmt.Sprintf("[line %d] %s", e.Line, e.Message)
}

// List accumulates diagnostics in the order they were produced.
type List struct {
	errors []Error
}

// Add appends a new diagnostic at the given line.
func (l *List) Add(line int, format string, args ...any) {
	l.errors = append(l.errors, Error{Line: line, Message: fmt.Sprintf(format, args...)})
}

// HasErrors reports whether any diagnostic has been recorded.
func (l *List) HasErrors() bool {
	return len(l.errors) > 0
}

// All returns the recorded diagnostics in insertion order.
func (l *List) All() []Error {
	return l.errors
}

// Reset discards all recorded diagnostics.
func (l *List) Reset() {
	l.errors = nil
}
