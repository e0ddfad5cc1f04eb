package engine

import (
	"github.com/dxsh-lang/dxsh/internal/ast"
	"github.com/dxsh-lang/dxsh/internal/env"
)

// ExecutionContext is a single call-stack frame: a non-owning slice into
// the AST, the next statement index to run, and the environment that
// statement's variable references resolve against.
type ExecutionContext struct {
	ID          int
	Type        ContextType
	Statements  []ast.Stmt
	CurPos      int
	Environment *env.Environment
}

// ExecuteOne runs at most one statement of this context and reports what
// the context should do next: keep going (Success), stop because it ran
// off the end or a statement closed it (Close), or stop because an error
// was recorded (Error).
func (ctx *ExecutionContext) ExecuteOne(interp *Interpreter) ExecutionStatus {
	if ctx.CurPos >= len(ctx.Statements) {
		return StatusClose
	}

	stmt := ctx.Statements[ctx.CurPos]
	effect := interp.executeStatement(stmt, ctx)

	if interp.errors.HasErrors() {
		return StatusError
	}

	ctx.CurPos++

	switch effect {
	case EffectCloseContext:
		return StatusClose
	default:
		return StatusSuccess
	}
}
