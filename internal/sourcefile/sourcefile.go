// Package sourcefile implements non-interactive execution: read a
// program from disk, run it start to finish, and report diagnostics,
// the counterpart to internal/repl's line-at-a-time interactive mode.
package sourcefile

import (
	"io"
	"os"

	"github.com/fatih/color"

	"github.com/dxsh-lang/dxsh/internal/diag"
	"github.com/dxsh-lang/dxsh/internal/engine"
	"github.com/dxsh-lang/dxsh/internal/lexer"
	"github.com/dxsh-lang/dxsh/internal/parser"
)

var redColor = color.New(color.FgRed)

// Exit codes: 0 on success (a parse error falls through to this too),
// 1 if the file itself could not be opened, -1 on an uncaught runtime
// fault.
const (
	ExitSuccess  = 0
	ExitFileFail = 1
	ExitFault    = -1
)

// RunFile reads path and executes it, writing program output to out and
// diagnostics to errOut. It never panics: every failure is reported and
// reflected in the returned exit code.
func RunFile(path string, out, errOut io.Writer) int {
	content, err := os.ReadFile(path)
	if err != nil {
		redColor.Fprintf(errOut, "[FILE ERROR] Could not read file '%s': %v\n", path, err)
		return ExitFileFail
	}
	return RunSource(string(content), out, errOut)
}

// RunSource lexes, parses, and executes source in full. A parse error is
// reported and falls through to ExitSuccess; a runtime error is reported
// and reflected as ExitFault, the uncaught-fault exit code.
func RunSource(source string, out, errOut io.Writer) int {
	errs := &diag.List{}

	toks := lexer.New(errs).Scan(source)
	stmts := parser.New(toks, errs).Parse()

	if errs.HasErrors() {
		reportErrors(errs, errOut, "PARSE ERROR")
		return ExitSuccess
	}

	interp := engine.New()
	interp.LoadProgram(stmts)

	for range interp.ExecuteTopContext() {
		io.WriteString(out, interp.TakeOutput())
	}
	io.WriteString(out, interp.TakeOutput())

	if interp.Errors().HasErrors() {
		reportErrors(interp.Errors(), errOut, "RUNTIME ERROR")
		return ExitFault
	}

	return ExitSuccess
}

func reportErrors(errs *diag.List, errOut io.Writer, label string) {
	for _, e := range errs.All() {
		redColor.Fprintf(errOut, "[%s] %s\n", label, e.Error())
	}
}
