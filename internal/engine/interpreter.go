package engine

import (
	"fmt"
	"iter"
	"strings"

	"github.com/dxsh-lang/dxsh/internal/ast"
	"github.com/dxsh-lang/dxsh/internal/diag"
	"github.com/dxsh-lang/dxsh/internal/env"
	"github.com/dxsh-lang/dxsh/internal/value"
)

// Driver is the pluggable strategy RunInterface uses to drive the call
// stack back down to targetDepth. The default (used unless overridden
// via LoadInterface) fully drains synchronously; a REPL can install its
// own to observe intermediate steps.
type Driver func(interp *Interpreter, targetDepth int)

// Interpreter owns the call stack, the pending-return-value stack, the
// I/O buffers, the accumulated diagnostics, and the is_exiting_function
// flag a "return" uses to unwind through nested block contexts.
type Interpreter struct {
	callStack    []*ExecutionContext
	returnStack  []value.Value
	output       strings.Builder
	input        []string
	errors       *diag.List
	isExiting    bool
	driver       Driver
	nextContexID int
}

// New creates an Interpreter with its own diagnostic list.
func New() *Interpreter {
	interp := &Interpreter{errors: &diag.List{}}
	interp.driver = defaultDriver
	return interp
}

// Errors returns the accumulated diagnostics (parse or runtime).
func (interp *Interpreter) Errors() *diag.List {
	return interp.errors
}

// LoadProgram resets the call stack and pushes a single Script context
// over the whole program.
func (interp *Interpreter) LoadProgram(statements []ast.Stmt) {
	interp.callStack = nil
	interp.returnStack = nil
	interp.isExiting = false
	interp.PushContext(ContextScript, statements)
}

// LoadInterface installs the callback RunInterface delegates to.
func (interp *Interpreter) LoadInterface(d Driver) {
	interp.driver = d
}

// RunInterface drives the call stack synchronously back down to the
// depth it was at before the most recent PushContext, i.e. it runs
// whatever was just pushed (and anything that pushes in turn) to
// completion. Block statements and function calls both rely on this to
// run their nested context before returning control to their caller.
func (interp *Interpreter) RunInterface() {
	target := len(interp.callStack) - 1
	interp.driver(interp, target)
}

func defaultDriver(interp *Interpreter, targetDepth int) {
	for range interp.runUntilDepth(targetDepth) {
	}
}

// ExecuteTopContext returns a lazy sequence of RuntimeStatus values, one
// per statement run or context closed (a statement that closes its own
// context, such as a return, is reported only by that ClosedContext),
// until the call stack is empty or an error is recorded. On an error the
// frames it was driving are popped. This is the primary externally-steppable
// interface: a REPL or file driver ranges over it to execute the loaded
// program one visible step at a time.
func (interp *Interpreter) ExecuteTopContext() iter.Seq[RuntimeStatus] {
	return interp.runUntilDepth(0)
}

// runUntilDepth drives the call stack until its length is target,
// handling the is_exiting_function unwind: while a return is in flight,
// every non-Function frame above the target is force-closed without
// running its remaining statements, exactly as if it had hit its own
// end, until the enclosing Function frame is reached and popped too.
func (interp *Interpreter) runUntilDepth(target int) iter.Seq[RuntimeStatus] {
	return func(yield func(RuntimeStatus) bool) {
		for len(interp.callStack) > target {
			top := interp.callStack[len(interp.callStack)-1]

			// While a return is unwinding, every frame on the way back to
			// its enclosing Function is force-closed without running any
			// more of its statements, including the Function frame
			// itself, which is what stops the unwind (see below).
			var status ExecutionStatus
			if interp.isExiting {
				status = StatusClose
			} else {
				status = top.ExecuteOne(interp)
			}

			switch status {
			case StatusSuccess:
				if !yield(RanStatement) {
					return
				}
			case StatusClose:
				wasFunction := top.Type == ContextFunction
				interp.popContext()
				if wasFunction {
					interp.isExiting = false
				}
				if !yield(ClosedContext) {
					return
				}
			case StatusError:
				// Drop every frame this drive was responsible for, so a
				// failed run never leaves half-run frames behind.
				interp.callStack = interp.callStack[:target]
				yield(RuntimeError)
				return
			}
		}
	}
}

// PushContext creates a new frame over statements, child-scoped to the
// current top frame's environment (or a fresh global environment if the
// stack is empty), and pushes it.
func (interp *Interpreter) PushContext(t ContextType, statements []ast.Stmt) *ExecutionContext {
	var environment *env.Environment
	if len(interp.callStack) > 0 {
		environment = interp.GetCurEnvironment().MakeChild()
	} else {
		environment = env.New()
	}

	ctx := &ExecutionContext{
		ID:          interp.nextContexID,
		Type:        t,
		Statements:  statements,
		Environment: environment,
	}
	interp.nextContexID++

	interp.callStack = append(interp.callStack, ctx)
	return ctx
}

// PushContextTopLevel pushes a frame that runs directly in environment
// rather than a child of it. A REPL uses this to run each line's
// statements as their own short-lived Script context while keeping one
// global environment alive across the whole session, the same way a
// line-by-line evaluator keeps one persistent scope across calls.
func (interp *Interpreter) PushContextTopLevel(t ContextType, statements []ast.Stmt, environment *env.Environment) *ExecutionContext {
	ctx := &ExecutionContext{
		ID:          interp.nextContexID,
		Type:        t,
		Statements:  statements,
		Environment: environment,
	}
	interp.nextContexID++

	interp.callStack = append(interp.callStack, ctx)
	return ctx
}

func (interp *Interpreter) popContext() {
	interp.callStack = interp.callStack[:len(interp.callStack)-1]
}

// GetCurEnvironment returns the environment of the top-of-stack frame.
func (interp *Interpreter) GetCurEnvironment() *env.Environment {
	return interp.callStack[len(interp.callStack)-1].Environment
}

// PushReturn records a function's return value for its caller to collect.
func (interp *Interpreter) PushReturn(v value.Value) {
	interp.returnStack = append(interp.returnStack, v)
}

// PopReturn removes and returns the most recently pushed return value.
func (interp *Interpreter) PopReturn() value.Value {
	if len(interp.returnStack) == 0 {
		return value.NullValue()
	}
	v := interp.returnStack[len(interp.returnStack)-1]
	interp.returnStack = interp.returnStack[:len(interp.returnStack)-1]
	return v
}

// IsExitingFunction reports whether a return is currently unwinding the
// call stack toward its enclosing Function frame.
func (interp *Interpreter) IsExitingFunction() bool {
	return interp.isExiting
}

// GiveOutput appends s to the output buffer.
func (interp *Interpreter) GiveOutput(s string) {
	interp.output.WriteString(s)
}

// TakeOutput returns and clears the accumulated output.
func (interp *Interpreter) TakeOutput() string {
	s := interp.output.String()
	interp.output.Reset()
	return s
}

// GiveInput enqueues a line for a future input-consuming statement.
// No statement in this language's grammar currently consumes input, but
// the buffer is kept so StatementEffect.InputRequired has somewhere to
// draw from if the grammar grows a read statement later.
func (interp *Interpreter) GiveInput(line string) {
	interp.input = append(interp.input, line)
}

// TakeInput dequeues the oldest pending input line, if any.
func (interp *Interpreter) TakeInput() (string, bool) {
	if len(interp.input) == 0 {
		return "", false
	}
	line := interp.input[0]
	interp.input = interp.input[1:]
	return line, true
}

// ResetIO clears both the output and input buffers.
func (interp *Interpreter) ResetIO() {
	interp.output.Reset()
	interp.input = nil
}

// CallFunction implements eval.Runner: pushing a Function context over
// the callee's body, binding its parameters, running it to completion,
// and collecting its return value. Arity is already checked by the
// caller (internal/eval), so args and fn.Params are the same length here.
func (interp *Interpreter) CallFunction(fn value.Function, args []value.Value, line int) (value.Value, error) {
	statements := make([]ast.Stmt, len(fn.Statements))
	for i, s := range fn.Statements {
		statements[i] = s.(ast.Stmt)
	}

	ctx := interp.PushContext(ContextFunction, statements)
	for i, p := range fn.Params {
		ctx.Environment.CreateOrAssignVar(p, args[i], line)
	}

	interp.RunInterface()

	if interp.errors.HasErrors() {
		return value.Value{}, fmt.Errorf("error while calling '%s'", fn.Name)
	}

	return interp.PopReturn(), nil
}
