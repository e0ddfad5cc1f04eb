package eval

import (
	"github.com/dxsh-lang/dxsh/internal/ast"
	"github.com/dxsh-lang/dxsh/internal/env"
	"github.com/dxsh-lang/dxsh/internal/token"
	"github.com/dxsh-lang/dxsh/internal/value"
)

func evalBinary(n *ast.BinaryExpr, environment *env.Environment, runner Runner) (value.Value, error) {
	left, err := extract(n.Left, environment, runner)
	if err != nil {
		return value.Value{}, err
	}
	right, err := extract(n.Right, environment, runner)
	if err != nil {
		return value.Value{}, err
	}

	if n.Op.Type == token.EqualEqual || n.Op.Type == token.BangEqual {
		return evalEquality(left, right, n.Op)
	}

	return evalBinaryValues(left, right, n.Op)
}

// numericConversion implements the promotion rule: same-type passthrough,
// Integer promoted to Decimal when paired with a Decimal, otherwise no
// conversion is possible.
func numericConversion(left, right value.Value) (value.Value, value.Value, bool) {
	if left.Kind == right.Kind {
		return left, right, true
	}
	if left.Kind == value.Integer && right.Kind == value.Decimal {
		return value.DecValue(float32(left.Int)), right, true
	}
	if left.Kind == value.Decimal && right.Kind == value.Integer {
		return left, value.DecValue(float32(right.Int)), true
	}
	return value.Value{}, value.Value{}, false
}

// evalBinaryValues evaluates every non-equality binary operator over two
// already-extracted values.
func evalBinaryValues(left, right value.Value, op token.Token) (value.Value, error) {
	switch {
	case left.Kind == value.String && right.Kind == value.String:
		return evalStringBinary(left.Str, right.Str, op)
	case left.IsArithmetic() && right.IsArithmetic():
		l, r, ok := numericConversion(left, right)
		if !ok {
			return value.Value{}, errf(op.Line, "Can't perform numeric conversion between %s and %s", left.Pretty(), right.Pretty())
		}
		if l.Kind == value.Integer {
			return evalIntBinary(l.Int, r.Int, op)
		}
		return evalDecBinary(l.Dec, r.Dec, op)
	default:
		return value.Value{}, errf(op.Line, "Invalid binary operator '%s' between %s and %s", op.Display(), left.Pretty(), right.Pretty())
	}
}

func evalIntBinary(l, r int32, op token.Token) (value.Value, error) {
	switch op.Type {
	case token.Plus:
		return value.IntValue(l + r), nil
	case token.Minus:
		return value.IntValue(l - r), nil
	case token.Star:
		return value.IntValue(l * r), nil
	case token.Slash:
		if r == 0 {
			return value.Value{}, errf(op.Line, "division by zero")
		}
		return value.IntValue(l / r), nil
	case token.StarStar:
		return value.IntValue(intPow(l, r)), nil
	case token.Greater:
		return value.BoolValue(l > r), nil
	case token.GreaterEqual:
		return value.BoolValue(l >= r), nil
	case token.Less:
		return value.BoolValue(l < r), nil
	case token.LessEqual:
		return value.BoolValue(l <= r), nil
	default:
		return value.Value{}, errf(op.Line, "Invalid binary operator '%s' for Integer", op.Display())
	}
}

// intPow special-cases r==0 -> 1, r==1 -> l, l==0 -> 0, and otherwise
// computes the power by repeated multiplication.
func intPow(l, r int32) int32 {
	switch {
	case r == 0:
		return 1
	case r == 1:
		return l
	case l == 0:
		return 0
	}
	val := int32(1)
	for i := int32(0); i < r; i++ {
		val *= l
	}
	return val
}

func evalDecBinary(l, r float32, op token.Token) (value.Value, error) {
	switch op.Type {
	case token.Plus:
		return value.DecValue(l + r), nil
	case token.Minus:
		return value.DecValue(l - r), nil
	case token.Star:
		return value.DecValue(l * r), nil
	case token.Slash:
		// Float division by zero follows Go's native IEEE-754 semantics
		// (±Inf or NaN), unlike the integer case above.
		return value.DecValue(l / r), nil
	case token.StarStar:
		return value.DecValue(powFloat32(l, r)), nil
	case token.Greater:
		return value.BoolValue(l > r), nil
	case token.GreaterEqual:
		return value.BoolValue(l >= r), nil
	case token.Less:
		return value.BoolValue(l < r), nil
	case token.LessEqual:
		return value.BoolValue(l <= r), nil
	default:
		return value.Value{}, errf(op.Line, "Invalid binary operator '%s' for Decimal", op.Display())
	}
}

func evalStringBinary(l, r string, op token.Token) (value.Value, error) {
	switch op.Type {
	case token.Plus:
		return value.StrValue(l + r), nil
	case token.Greater:
		return value.BoolValue(l > r), nil
	case token.GreaterEqual:
		return value.BoolValue(l >= r), nil
	case token.Less:
		return value.BoolValue(l < r), nil
	case token.LessEqual:
		return value.BoolValue(l <= r), nil
	default:
		return value.Value{}, errf(op.Line, "Invalid binary operator '%s' for String", op.Display())
	}
}

// evalEquality implements same-type pointwise equality, cross-arithmetic
// promotion, Null-vs-anything falsity, and an XOR-negation for !=.
func evalEquality(left, right value.Value, op token.Token) (value.Value, error) {
	var eq bool
	var err error

	switch {
	case left.Kind == right.Kind:
		eq, err = equalSameKind(left, right, op.Line)
	case left.Kind == value.Null || right.Kind == value.Null:
		eq = false
	case left.IsArithmetic() && right.IsArithmetic():
		l, r, _ := numericConversion(left, right)
		if l.Kind == value.Integer {
			eq = l.Int == r.Int
		} else {
			eq = l.Dec == r.Dec
		}
	default:
		err = errf(op.Line, "Invalid '%s' comparison between %s and %s", op.Display(), left.Pretty(), right.Pretty())
	}
	if err != nil {
		return value.Value{}, err
	}

	if op.Type == token.BangEqual {
		eq = !eq
	}
	return value.BoolValue(eq), nil
}

func equalSameKind(left, right value.Value, line int) (bool, error) {
	switch left.Kind {
	case value.Null:
		return true, nil
	case value.Integer:
		return left.Int == right.Int, nil
	case value.Decimal:
		return left.Dec == right.Dec, nil
	case value.String:
		return left.Str == right.Str, nil
	case value.Boolean:
		return left.Bool == right.Bool, nil
	case value.LvalueKind:
		return false, errf(line, "Unextracted lvalue in equality")
	case value.FunctionKind:
		return false, errf(line, "Function unhandled in equality")
	default:
		return false, errf(line, "Unhandled value kind in equality")
	}
}
