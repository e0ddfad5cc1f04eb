package ast_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dxsh-lang/dxsh/internal/ast"
	"github.com/dxsh-lang/dxsh/internal/token"
	"github.com/dxsh-lang/dxsh/internal/value"
)

func lit(n int32) ast.Expr {
	return &ast.LiteralExpr{Value: value.IntValue(n), Token: token.New(token.Integer, 1)}
}

func bin(left ast.Expr, t token.Type, right ast.Expr) ast.Expr {
	return &ast.BinaryExpr{Left: left, Right: right, Op: token.New(t, 1)}
}

func TestPrintInfixFullyParenthesizes(t *testing.T) {
	e := bin(lit(1), token.Plus, bin(lit(2), token.Star, lit(3)))
	assert.Equal(t, "(1 + (2 * 3))", ast.PrintInfix(e))
}

func TestPrintRPNPostfixOrder(t *testing.T) {
	e := bin(lit(1), token.Plus, bin(lit(2), token.Star, lit(3)))
	assert.Equal(t, "1 2 3 * +", ast.PrintRPN(e))
}

func TestPrintUnaryAndGrouping(t *testing.T) {
	grouped := ast.NewGrouping(bin(lit(1), token.Plus, lit(2)), 1)
	neg := &ast.UnaryExpr{Operand: grouped, Op: token.New(token.Minus, 1)}
	assert.Equal(t, "(-((1 + 2)))", ast.PrintInfix(neg))
	assert.Equal(t, "1 2 + -", ast.PrintRPN(neg))
}
