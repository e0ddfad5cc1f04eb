package ast

import "fmt"

// Visitor dispatches over the expression node variants via double
// dispatch (Accept/Visit), letting more than one printer share the same
// traversal without a type switch per printer. internal/eval uses a
// plain type switch instead for the hot evaluation path.
type Visitor interface {
	VisitBinary(e *BinaryExpr) string
	VisitUnary(e *UnaryExpr) string
	VisitGrouping(e *GroupingExpr) string
	VisitLiteral(e *LiteralExpr) string
}

// Accept dispatches e to the matching Visitor method.
func Accept(e Expr, v Visitor) string {
	switch n := e.(type) {
	case *BinaryExpr:
		return v.VisitBinary(n)
	case *UnaryExpr:
		return v.VisitUnary(n)
	case *GroupingExpr:
		return v.VisitGrouping(n)
	case *LiteralExpr:
		return v.VisitLiteral(n)
	default:
		return fmt.Sprintf("<unprintable expr %T>", e)
	}
}

// infixPrinter renders fully-parenthesized infix notation, e.g. "(1 + 2)".
type infixPrinter struct{}

func (infixPrinter) VisitBinary(e *BinaryExpr) string {
	return fmt.Sprintf("(%s %s %s)", Accept(e.Left, infixPrinter{}), e.Op.Display(), Accept(e.Right, infixPrinter{}))
}

func (infixPrinter) VisitUnary(e *UnaryExpr) string {
	return fmt.Sprintf("(%s%s)", e.Op.Display(), Accept(e.Operand, infixPrinter{}))
}

func (infixPrinter) VisitGrouping(e *GroupingExpr) string {
	// Plain parens, not the debug-style "(group ...)" form: for
	// arithmetic expressions this output re-lexes and re-parses into an
	// equivalent tree, and "group" is not valid source syntax in this
	// grammar. String literals are printed without quotes and "not"
	// without a following space, so those do not round-trip.
	return fmt.Sprintf("(%s)", Accept(e.Inner, infixPrinter{}))
}

func (infixPrinter) VisitLiteral(e *LiteralExpr) string {
	return e.Value.ToString()
}

// PrintInfix renders e as fully-parenthesized infix notation.
func PrintInfix(e Expr) string {
	return Accept(e, infixPrinter{})
}

// rpnPrinter renders reverse Polish notation, e.g. "1 2 +".
type rpnPrinter struct{}

func (rpnPrinter) VisitBinary(e *BinaryExpr) string {
	return fmt.Sprintf("%s %s %s", Accept(e.Left, rpnPrinter{}), Accept(e.Right, rpnPrinter{}), e.Op.Display())
}

func (rpnPrinter) VisitUnary(e *UnaryExpr) string {
	return fmt.Sprintf("%s %s", Accept(e.Operand, rpnPrinter{}), e.Op.Display())
}

func (rpnPrinter) VisitGrouping(e *GroupingExpr) string {
	return Accept(e.Inner, rpnPrinter{})
}

func (rpnPrinter) VisitLiteral(e *LiteralExpr) string {
	return e.Value.ToString()
}

// PrintRPN renders e as reverse Polish notation.
func PrintRPN(e Expr) string {
	return Accept(e, rpnPrinter{})
}
