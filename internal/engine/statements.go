package engine

import (
	"github.com/dxsh-lang/dxsh/internal/ast"
	"github.com/dxsh-lang/dxsh/internal/eval"
	"github.com/dxsh-lang/dxsh/internal/value"
)

// executeStatement dispatches on the statement's concrete type and
// returns the StatementEffect it produced. A runtime error recorded
// during evaluation is appended to interp.errors and the statement is
// treated as having produced no effect. The caller (ExecuteOne) checks
// interp.errors itself to decide whether to report Error.
func (interp *Interpreter) executeStatement(stmt ast.Stmt, ctx *ExecutionContext) StatementEffect {
	switch s := stmt.(type) {
	case *ast.ExprStmt:
		return interp.execExprStmt(s, ctx)
	case *ast.PrintStmt:
		return interp.execPrintStmt(s, ctx)
	case *ast.VarDeclStmt:
		return interp.execVarDeclStmt(s, ctx)
	case *ast.BlockStmt:
		return interp.execBlockStmt(s, ctx)
	case *ast.IfStmt:
		return interp.execIfStmt(s, ctx)
	case *ast.FuncStmt:
		return interp.execFuncStmt(s, ctx)
	case *ast.ReturnStmt:
		return interp.execReturnStmt(s, ctx)
	default:
		interp.errors.Add(stmt.Line(), "Unhandled statement node %T", stmt)
		return EffectNone
	}
}

func (interp *Interpreter) eval(e ast.Expr, ctx *ExecutionContext) (value.Value, bool) {
	v, err := eval.Evaluate(e, ctx.Environment, interp)
	if err != nil {
		interp.errors.Add(e.Line(), "%s", err.Error())
		return value.Value{}, false
	}
	extracted, err := ctx.Environment.ExtractFromLV(v)
	if err != nil {
		interp.errors.Add(e.Line(), "%s", err.Error())
		return value.Value{}, false
	}
	return extracted, true
}

func (interp *Interpreter) execExprStmt(s *ast.ExprStmt, ctx *ExecutionContext) StatementEffect {
	interp.eval(s.Expr, ctx)
	return EffectNone
}

func (interp *Interpreter) execPrintStmt(s *ast.PrintStmt, ctx *ExecutionContext) StatementEffect {
	v, ok := interp.eval(s.Expr, ctx)
	if !ok {
		return EffectNone
	}
	interp.GiveOutput(v.ToString())
	interp.GiveOutput("\n")
	return EffectNone
}

func (interp *Interpreter) execVarDeclStmt(s *ast.VarDeclStmt, ctx *ExecutionContext) StatementEffect {
	v, ok := interp.eval(s.Value, ctx)
	if !ok {
		return EffectNone
	}
	ctx.Environment.CreateOrAssignVar(s.Identifier.Lexeme, v, s.Line())
	return EffectNone
}

// execBlockStmt pushes a Scope context over the block's statements and
// runs it synchronously to completion before this statement returns.
// A block never leaves a dangling open context behind it.
func (interp *Interpreter) execBlockStmt(s *ast.BlockStmt, ctx *ExecutionContext) StatementEffect {
	interp.PushContext(ContextScope, s.Statements)
	interp.RunInterface()
	return EffectNone
}

func (interp *Interpreter) execIfStmt(s *ast.IfStmt, ctx *ExecutionContext) StatementEffect {
	cond, ok := interp.eval(s.Condition, ctx)
	if !ok {
		return EffectNone
	}
	if cond.Kind != value.Boolean {
		interp.errors.Add(s.Line(), "If condition must be a Boolean, got %s", cond.Pretty())
		return EffectNone
	}

	if cond.Bool {
		return interp.executeStatement(s.YesBranch, ctx)
	}
	if s.NoBranch != nil {
		return interp.executeStatement(s.NoBranch, ctx)
	}
	return EffectNone
}

func (interp *Interpreter) execFuncStmt(s *ast.FuncStmt, ctx *ExecutionContext) StatementEffect {
	params := make([]string, len(s.Params))
	for i, p := range s.Params {
		params[i] = p.Lexeme
	}

	statements := make([]value.Stmt, len(s.Statements))
	for i, st := range s.Statements {
		statements[i] = st
	}

	fn := value.Function{
		Line:       s.Line(),
		Name:       s.TokenName.Lexeme,
		Params:     params,
		Statements: statements,
	}

	ctx.Environment.CreateOrAssignVar(s.TokenName.Lexeme, value.FunctionValue(fn), s.Line())
	return EffectNone
}

// execReturnStmt evaluates the return expression (or substitutes Null),
// pushes it for the caller to collect, and sets IsExitingFunction so the
// drive loop unwinds every nested block context up to and including the
// Function frame this return lives in.
func (interp *Interpreter) execReturnStmt(s *ast.ReturnStmt, ctx *ExecutionContext) StatementEffect {
	var v value.Value
	if s.Value != nil {
		ev, ok := interp.eval(s.Value, ctx)
		if !ok {
			return EffectNone
		}
		v = ev
	} else {
		v = value.NullValue()
	}

	interp.PushReturn(v)
	interp.isExiting = true
	return EffectCloseContext
}
