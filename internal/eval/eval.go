// Package eval implements expression evaluation: numeric promotion,
// equality, binary/unary operators, assignment, and calls. It never
// touches the call stack directly; calling a function is delegated to
// a Runner, so this package stays independent of internal/engine and
// the two can't form an import cycle.
package eval

import (
	"fmt"

	"github.com/dxsh-lang/dxsh/internal/ast"
	"github.com/dxsh-lang/dxsh/internal/env"
	"github.com/dxsh-lang/dxsh/internal/token"
	"github.com/dxsh-lang/dxsh/internal/value"
)

// Runner is the minimal surface eval needs from the execution engine:
// enough to invoke a function value and get back its result. Defined
// here (not in engine) so engine can depend on eval without eval
// depending back on engine.
type Runner interface {
	CallFunction(fn value.Function, args []value.Value, line int) (value.Value, error)
}

// EvalError is a runtime evaluation failure tied to a source line.
type EvalError struct {
	Line    int
	Message string
}

func (e *EvalError) Error() string {
	return fmt.Sprintf("[line %d] %s", e.Line, e.Message)
}

func errf(line int, format string, args ...any) error {
	return &EvalError{Line: line, Message: fmt.Sprintf(format, args...)}
}

// Evaluate dispatches on the concrete expression type and returns its
// value. The result may still be an unresolved Lvalue (e.g. a bare
// identifier); callers that need the underlying value must call
// env.ExtractFromLV themselves, exactly as the evaluator internals do.
func Evaluate(e ast.Expr, environment *env.Environment, runner Runner) (value.Value, error) {
	switch n := e.(type) {
	case *ast.LiteralExpr:
		return n.Value, nil
	case *ast.GroupingExpr:
		return Evaluate(n.Inner, environment, runner)
	case *ast.UnaryExpr:
		return evalUnary(n, environment, runner)
	case *ast.BinaryExpr:
		return evalBinary(n, environment, runner)
	case *ast.AssignmentExpr:
		return evalAssignment(n, environment, runner)
	case *ast.CallExpr:
		return evalCall(n, environment, runner)
	default:
		return value.Value{}, errf(e.Line(), "Unhandled expression node %T", e)
	}
}

// extract evaluates e and resolves any Lvalue it produces to its
// underlying value, the form almost every operator needs its operands in.
func extract(e ast.Expr, environment *env.Environment, runner Runner) (value.Value, error) {
	v, err := Evaluate(e, environment, runner)
	if err != nil {
		return value.Value{}, err
	}
	return environment.ExtractFromLV(v)
}

func evalUnary(n *ast.UnaryExpr, environment *env.Environment, runner Runner) (value.Value, error) {
	operand, err := extract(n.Operand, environment, runner)
	if err != nil {
		return value.Value{}, err
	}

	switch n.Op.Type {
	case token.Minus:
		if !operand.IsArithmetic() {
			return value.Value{}, errf(n.Line(), "Can't negate a non-numeric value (%s)", operand.Pretty())
		}
		return evalBinaryValues(value.IntValue(-1), operand, token.Token{Type: token.Star, Line: n.Line()})
	case token.Not:
		if operand.Kind != value.Boolean {
			return value.Value{}, errf(n.Line(), "Operand of 'not' must be a Boolean, got %s", operand.Pretty())
		}
		return value.BoolValue(!operand.Bool), nil
	default:
		return value.Value{}, errf(n.Line(), "Unhandled unary operator '%s'", n.Op.Display())
	}
}

func evalAssignment(n *ast.AssignmentExpr, environment *env.Environment, runner Runner) (value.Value, error) {
	target, err := Evaluate(n.Target, environment, runner)
	if err != nil {
		return value.Value{}, err
	}
	if target.Kind != value.LvalueKind {
		return value.Value{}, errf(n.Line(), "Invalid assignment target (%s)", target.Pretty())
	}

	slot := environment.GetVar(target.LV.Name)
	if slot == nil {
		return value.Value{}, &env.UndefinedVariableError{Line: target.LV.LineOfRef, Name: target.LV.Name}
	}

	rvalue, err := extract(n.Value, environment, runner)
	if err != nil {
		return value.Value{}, err
	}

	slot.Set(rvalue, n.Line())
	return rvalue, nil
}

func evalCall(n *ast.CallExpr, environment *env.Environment, runner Runner) (value.Value, error) {
	callee, err := extract(n.Callee, environment, runner)
	if err != nil {
		return value.Value{}, err
	}
	if callee.Kind != value.FunctionKind {
		return value.Value{}, errf(n.Line(), "Attempt to treat %s as function in call expression", callee.Pretty())
	}

	fn := callee.Fn
	if len(n.Args) != len(fn.Params) {
		return value.Value{}, errf(n.Line(),
			"Function '%s' (defined at line %d) expects %d argument(s), got %d",
			fn.Name, fn.Line, len(fn.Params), len(n.Args))
	}

	args := make([]value.Value, len(n.Args))
	for i, a := range n.Args {
		av, err := extract(a, environment, runner)
		if err != nil {
			return value.Value{}, err
		}
		args[i] = av
	}

	return runner.CallFunction(fn, args, n.Line())
}
