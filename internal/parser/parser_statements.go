package parser

import (
	"github.com/dxsh-lang/dxsh/internal/ast"
	"github.com/dxsh-lang/dxsh/internal/token"
)

func (p *Parser) statement() (ast.Stmt, bool) {
	switch {
	case p.match(token.Print):
		return p.printStmt()
	case p.match(token.Var):
		return p.varDeclStmt()
	case p.match(token.If):
		return p.ifStmt()
	case p.match(token.Function):
		return p.funcStmt()
	case p.match(token.Return):
		return p.returnStmt()
	case p.check(token.BraceL):
		return p.block()
	default:
		return p.exprStmt()
	}
}

func (p *Parser) printStmt() (ast.Stmt, bool) {
	line := p.previous().Line
	expr, ok := p.expression()
	if !ok {
		return nil, false
	}
	if _, ok := p.consume(token.Semicolon, "Expected ';' after print statement"); !ok {
		return nil, false
	}
	return ast.NewPrintStmt(expr, line), true
}

func (p *Parser) varDeclStmt() (ast.Stmt, bool) {
	line := p.previous().Line
	name, ok := p.consume(token.Identifier, "Expected variable name after 'var'")
	if !ok {
		return nil, false
	}
	if _, ok := p.consume(token.Equal, "Expected '=' after variable name"); !ok {
		return nil, false
	}
	expr, ok := p.expression()
	if !ok {
		return nil, false
	}
	if _, ok := p.consume(token.Semicolon, "Expected ';' after variable declaration"); !ok {
		return nil, false
	}
	return ast.NewVarDeclStmt(name, expr, line), true
}

func (p *Parser) block() (ast.Stmt, bool) {
	open, ok := p.consume(token.BraceL, "Expected '{' to start a block")
	if !ok {
		return nil, false
	}

	var stmts []ast.Stmt
	for !p.check(token.BraceR) && !p.isAtEnd() {
		s, ok := p.statement()
		if !ok {
			p.synchronize()
			continue
		}
		stmts = append(stmts, s)
	}

	braceR, ok := p.consume(token.BraceR, "Unclosed block: expected '}'")
	if !ok {
		return nil, false
	}

	return &ast.BlockStmt{Open: open, Close: braceR, Statements: stmts}, true
}

func (p *Parser) ifStmt() (ast.Stmt, bool) {
	tokIf := p.previous()

	if _, ok := p.consume(token.ParenL, "Expected '(' after 'if'"); !ok {
		return nil, false
	}
	cond, ok := p.expression()
	if !ok {
		return nil, false
	}
	if _, ok := p.consume(token.ParenR, "Expected ')' after if condition"); !ok {
		return nil, false
	}

	yes, ok := p.statement()
	if !ok {
		return nil, false
	}

	stmt := &ast.IfStmt{Condition: cond, YesBranch: yes, TokenIf: tokIf}

	if p.match(token.Else) {
		stmt.TokenElse = p.previous()
		no, ok := p.statement()
		if !ok {
			return nil, false
		}
		stmt.NoBranch = no
	}

	return stmt, true
}

func (p *Parser) funcStmt() (ast.Stmt, bool) {
	tokFunc := p.previous()

	name, ok := p.consume(token.Identifier, "Expected function name after 'func'")
	if !ok {
		return nil, false
	}
	if _, ok := p.consume(token.ParenL, "Expected '(' after function name"); !ok {
		return nil, false
	}

	params, ok := parseList(p, token.ParenR, func() (token.Token, bool) {
		return p.consume(token.Identifier, "Expected parameter name")
	})
	if !ok {
		return nil, false
	}

	if _, ok := p.consume(token.ParenR, "Expected ')' after parameters"); !ok {
		return nil, false
	}

	bodyStmt, ok := p.block()
	if !ok {
		return nil, false
	}
	body := bodyStmt.(*ast.BlockStmt).Statements

	// A function whose last statement isn't already a return falls off
	// the end and implicitly returns null; make that explicit here so
	// the engine never special-cases it.
	if len(body) == 0 {
		body = append(body, ast.NewReturnStmt(nil, bodyStmt.Line()))
	} else if _, isReturn := body[len(body)-1].(*ast.ReturnStmt); !isReturn {
		body = append(body, ast.NewReturnStmt(nil, body[len(body)-1].Line()))
	}

	return &ast.FuncStmt{TokenFunc: tokFunc, TokenName: name, Params: params, Statements: body}, true
}

func (p *Parser) returnStmt() (ast.Stmt, bool) {
	line := p.previous().Line

	var expr ast.Expr
	if !p.check(token.Semicolon) {
		e, ok := p.expression()
		if !ok {
			return nil, false
		}
		expr = e
	}

	if _, ok := p.consume(token.Semicolon, "Expected ';' after return statement"); !ok {
		return nil, false
	}

	return ast.NewReturnStmt(expr, line), true
}

func (p *Parser) exprStmt() (ast.Stmt, bool) {
	line := p.peek().Line
	expr, ok := p.expression()
	if !ok {
		return nil, false
	}
	if _, ok := p.consume(token.Semicolon, "Expected ';' after expression"); !ok {
		return nil, false
	}
	return ast.NewExprStmt(expr, line), true
}
