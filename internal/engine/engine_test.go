package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dxsh-lang/dxsh/internal/ast"
	"github.com/dxsh-lang/dxsh/internal/diag"
	"github.com/dxsh-lang/dxsh/internal/lexer"
	"github.com/dxsh-lang/dxsh/internal/parser"
)

// run lexes, parses, and fully executes src, returning the interpreter's
// output buffer and its runtime diagnostics. A parse error fails the test.
func run(t *testing.T, src string) (string, *diag.List) {
	t.Helper()

	errs := &diag.List{}
	toks := lexer.New(errs).Scan(src)
	stmts := parser.New(toks, errs).Parse()
	require.False(t, errs.HasErrors(), "unexpected parse errors: %v", errs.All())

	interp := New()
	interp.LoadProgram(stmts)

	for range interp.ExecuteTopContext() {
	}

	return interp.TakeOutput(), interp.Errors()
}

func TestPrintLiteral(t *testing.T) {
	out, errs := run(t, `print 1 + 2;`)
	require.False(t, errs.HasErrors())
	assert.Equal(t, "3\n", out)
}

func TestVarDeclAndReassignment(t *testing.T) {
	out, errs := run(t, `
		var x = 1;
		print x;
		x = x + 1;
		print x;
	`)
	require.False(t, errs.HasErrors())
	assert.Equal(t, "1\n2\n", out)
}

func TestIfElse(t *testing.T) {
	out, errs := run(t, `
		var x = 5;
		if (x > 3) {
			print "big";
		} else {
			print "small";
		}
	`)
	require.False(t, errs.HasErrors())
	assert.Equal(t, "big\n", out)
}

func TestBlockIntroducesNewScope(t *testing.T) {
	out, errs := run(t, `
		var x = 1;
		{
			var x = 2;
			print x;
		}
		print x;
	`)
	require.False(t, errs.HasErrors())
	assert.Equal(t, "2\n1\n", out)
}

func TestFunctionCallAndReturn(t *testing.T) {
	out, errs := run(t, `
		func add(a, b) {
			return a + b;
		}
		print add(2, 3);
	`)
	require.False(t, errs.HasErrors())
	assert.Equal(t, "5\n", out)
}

func TestFunctionMissingReturnYieldsNull(t *testing.T) {
	out, errs := run(t, `
		func f() {
			var x = 1;
		}
		print f();
	`)
	require.False(t, errs.HasErrors())
	assert.Equal(t, "null\n", out)
}

func TestReturnUnwindsNestedBlockInsideFunction(t *testing.T) {
	out, errs := run(t, `
		func f(x) {
			if (x > 0) {
				{
					return "positive";
				}
			}
			return "non-positive";
		}
		print f(5);
		print f(-1);
	`)
	require.False(t, errs.HasErrors())
	assert.Equal(t, "positive\nnon-positive\n", out)
}

func TestRecursiveFunctionCall(t *testing.T) {
	out, errs := run(t, `
		func fact(n) {
			if (n <= 1) {
				return 1;
			}
			return n * fact(n - 1);
		}
		print fact(5);
	`)
	require.False(t, errs.HasErrors())
	assert.Equal(t, "120\n", out)
}

func TestCallArityMismatchIsRuntimeError(t *testing.T) {
	_, errs := run(t, `
		func f(a, b) { return a; }
		f(1);
	`)
	require.True(t, errs.HasErrors())
}

func TestCallingNonFunctionIsRuntimeError(t *testing.T) {
	_, errs := run(t, `
		var x = 1;
		x();
	`)
	require.True(t, errs.HasErrors())
}

func TestUndefinedVariableIsRuntimeError(t *testing.T) {
	_, errs := run(t, `print y;`)
	require.True(t, errs.HasErrors())
}

func TestIfBranchesOnCrossTypeEquality(t *testing.T) {
	out, errs := run(t, `if (1 == 1.0) { print "yes"; } else { print "no"; }`)
	require.False(t, errs.HasErrors())
	assert.Equal(t, "yes\n", out)
}

func TestStringConcatVsInvalidStringSubtraction(t *testing.T) {
	out, errs := run(t, `print "ab" + "cd";`)
	require.False(t, errs.HasErrors())
	assert.Equal(t, "abcd\n", out)

	_, errs = run(t, `print "a" - "b";`)
	require.True(t, errs.HasErrors())
	assert.Contains(t, errs.All()[0].Message, "Invalid binary operator")
}

// Assigning a side-effect-free expression to a variable then printing it
// produces the same text as printing the expression directly.
func TestVarThenPrintMatchesPrintingExpressionDirectly(t *testing.T) {
	outAssigned, errs := run(t, `var x = 3 * 4 + 1; print x;`)
	require.False(t, errs.HasErrors())

	outDirect, errs := run(t, `print 3 * 4 + 1;`)
	require.False(t, errs.HasErrors())

	assert.Equal(t, outDirect, outAssigned)
}

// Printing a parsed expression via the infix printer, re-lexing and
// re-parsing that text, then evaluating it yields the same printed
// result as evaluating the unmodified source.
func TestInfixPrintRoundTripEvaluatesToSameValue(t *testing.T) {
	errs := &diag.List{}
	toks := lexer.New(errs).Scan(`print (2 + 3) * 4 - 1;`)
	stmts := parser.New(toks, errs).Parse()
	require.False(t, errs.HasErrors())

	ps := stmts[0].(*ast.PrintStmt)
	reprinted := ast.PrintInfix(ps.Expr)

	out, errs := run(t, `print `+reprinted+`;`)
	require.False(t, errs.HasErrors())

	originalOut, errs := run(t, `print (2 + 3) * 4 - 1;`)
	require.False(t, errs.HasErrors())

	assert.Equal(t, originalOut, out)
}
