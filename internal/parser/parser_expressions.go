package parser

import (
	"github.com/dxsh-lang/dxsh/internal/ast"
	"github.com/dxsh-lang/dxsh/internal/token"
	"github.com/dxsh-lang/dxsh/internal/value"
)

func (p *Parser) expression() (ast.Expr, bool) {
	return p.assignment()
}

// assignment is right-associative: parse the left side as an equality
// expression, then if an "=" follows, build an AssignmentExpr with it as
// the target. The target's form is not checked here; the evaluator
// rejects a target that does not evaluate to an Lvalue.
func (p *Parser) assignment() (ast.Expr, bool) {
	target, ok := p.equality()
	if !ok {
		return nil, false
	}

	if p.match(token.Equal) {
		equal := p.previous()
		rhs, ok := p.assignment()
		if !ok {
			return nil, false
		}
		return &ast.AssignmentExpr{Target: target, Value: rhs, Equal: equal}, true
	}

	return target, true
}

func (p *Parser) equality() (ast.Expr, bool) {
	return p.binary(p.comparison, token.EqualEqual, token.BangEqual)
}

func (p *Parser) comparison() (ast.Expr, bool) {
	return p.binary(p.term, token.Greater, token.GreaterEqual, token.Less, token.LessEqual)
}

func (p *Parser) term() (ast.Expr, bool) {
	return p.binary(p.factor, token.Plus, token.Minus)
}

// factor wires only "*" and "/". StarStar is lexed and the evaluator's
// binary dispatch accepts it defensively, but this grammar never
// produces it from source text; Percent is lexed and entirely unused.
func (p *Parser) factor() (ast.Expr, bool) {
	return p.binary(p.unary, token.Star, token.Slash)
}

// binary implements the shared left-associative precedence-level pattern:
// parse one operand via nested, then while the current token is one of
// types, consume it and fold in another nested operand.
func (p *Parser) binary(nested func() (ast.Expr, bool), types ...token.Type) (ast.Expr, bool) {
	left, ok := nested()
	if !ok {
		return nil, false
	}

	for p.match(types...) {
		op := p.previous()
		right, ok := nested()
		if !ok {
			return nil, false
		}
		left = &ast.BinaryExpr{Left: left, Right: right, Op: op}
	}

	return left, true
}

func (p *Parser) unary() (ast.Expr, bool) {
	if p.match(token.Not, token.Minus) {
		op := p.previous()
		operand, ok := p.unary()
		if !ok {
			return nil, false
		}
		return &ast.UnaryExpr{Operand: operand, Op: op}, true
	}
	return p.call()
}

func (p *Parser) call() (ast.Expr, bool) {
	expr, ok := p.primary()
	if !ok {
		return nil, false
	}

	for p.check(token.ParenL) {
		parenL := p.advance()
		args, ok := parseList(p, token.ParenR, p.expression)
		if !ok {
			return nil, false
		}
		if _, ok := p.consume(token.ParenR, "Expected ')' after arguments"); !ok {
			return nil, false
		}
		expr = &ast.CallExpr{Callee: expr, Args: args, ParenL: parenL}
	}

	return expr, true
}

func (p *Parser) primary() (ast.Expr, bool) {
	tok := p.peek()

	switch {
	case p.match(token.Integer):
		return &ast.LiteralExpr{Value: value.IntValue(tok.Literal.Int), Token: tok}, true
	case p.match(token.Decimal):
		return &ast.LiteralExpr{Value: value.DecValue(tok.Literal.Dec), Token: tok}, true
	case p.match(token.String):
		return &ast.LiteralExpr{Value: value.StrValue(tok.Literal.Str), Token: tok}, true
	case p.match(token.True):
		return &ast.LiteralExpr{Value: value.BoolValue(true), Token: tok}, true
	case p.match(token.False):
		return &ast.LiteralExpr{Value: value.BoolValue(false), Token: tok}, true
	case p.match(token.Null):
		return &ast.LiteralExpr{Value: value.NullValue(), Token: tok}, true
	case p.match(token.Identifier):
		lv := value.LvalueValue(value.Lvalue{LineOfRef: tok.Line, Name: tok.Lexeme})
		return &ast.LiteralExpr{Value: lv, Token: tok}, true
	case p.match(token.ParenL):
		line := p.previous().Line
		inner, ok := p.expression()
		if !ok {
			return nil, false
		}
		if _, ok := p.consume(token.ParenR, "Expected ')' after expression"); !ok {
			return nil, false
		}
		return ast.NewGrouping(inner, line), true
	default:
		p.errors.Add(tok.Line, "Expected expression (got '%s')", tok.Display())
		return nil, false
	}
}
