// Package repl implements the interactive Read-Eval-Print Loop: one line
// of source at a time, sharing a single global environment across the
// whole session the way a line-by-line evaluator keeps state alive.
package repl

import (
	"io"
	"strings"

	"github.com/chzyer/readline"
	"github.com/fatih/color"

	"github.com/dxsh-lang/dxsh/internal/diag"
	"github.com/dxsh-lang/dxsh/internal/engine"
	"github.com/dxsh-lang/dxsh/internal/env"
	"github.com/dxsh-lang/dxsh/internal/lexer"
	"github.com/dxsh-lang/dxsh/internal/parser"
)

var (
	blueColor   = color.New(color.FgBlue)
	yellowColor = color.New(color.FgYellow)
	redColor    = color.New(color.FgRed)
	greenColor  = color.New(color.FgGreen)
	cyanColor   = color.New(color.FgCyan)
)

// Repl holds the cosmetic configuration for an interactive session.
type Repl struct {
	Banner  string
	Version string
	Author  string
	Line    string
	License string
	Prompt  string
}

// New creates a Repl with the given banner and prompt configuration.
func New(banner, version, author, line, license, prompt string) *Repl {
	return &Repl{Banner: banner, Version: version, Author: author, Line: line, License: license, Prompt: prompt}
}

func (r *Repl) printBanner(writer io.Writer) {
	blueColor.Fprintf(writer, "%s\n", r.Line)
	greenColor.Fprintf(writer, "%s\n", r.Banner)
	blueColor.Fprintf(writer, "%s\n", r.Line)
	yellowColor.Fprintln(writer, "Version: "+r.Version+" | Author: "+r.Author+" | License: "+r.License)
	blueColor.Fprintf(writer, "%s\n", r.Line)
	cyanColor.Fprintf(writer, "%s\n", "Type your code and press enter")
	cyanColor.Fprintf(writer, "%s\n", "Type '.exit' to quit")
	cyanColor.Fprintf(writer, "%s\n", "Use up/down arrows to navigate command history")
	blueColor.Fprintf(writer, "%s\n", r.Line)
}

// Start runs the main loop: prints the banner, then reads lines via
// readline until '.exit' or EOF, executing each line against a single
// persistent environment and interpreter.
func (r *Repl) Start(writer io.Writer) {
	r.printBanner(writer)

	rl, err := readline.New(r.Prompt)
	if err != nil {
		redColor.Fprintf(writer, "[REPL ERROR] %v\n", err)
		return
	}
	defer rl.Close()

	globalEnv := env.New()
	interp := engine.New()

	for {
		line, err := rl.Readline()
		if err != nil {
			writer.Write([]byte("Good bye!\n"))
			return
		}

		line = strings.Trim(line, " \n\t\r")
		if line == "" {
			continue
		}
		if line == ".exit" {
			writer.Write([]byte("Good bye!\n"))
			return
		}

		rl.SaveHistory(line)
		r.execute(writer, line, globalEnv, interp)
	}
}

// execute lexes, parses, and runs one line against the session's shared
// environment, printing output in yellow and any diagnostics in red.
// Unlike file mode, an error never ends the session: the REPL keeps
// running so the user can correct the line and try again.
func (r *Repl) execute(writer io.Writer, line string, globalEnv *env.Environment, interp *engine.Interpreter) {
	if !strings.HasSuffix(line, ";") {
		line += ";"
	}

	errs := &diag.List{}
	toks := lexer.New(errs).Scan(line)
	stmts := parser.New(toks, errs).Parse()

	if errs.HasErrors() {
		printDiagnostics(writer, errs, "PARSE ERROR")
		return
	}

	interp.Errors().Reset()
	interp.PushContextTopLevel(engine.ContextScript, stmts, globalEnv)
	for range interp.ExecuteTopContext() {
	}

	out := interp.TakeOutput()
	if out != "" {
		yellowColor.Fprint(writer, out)
	}

	if interp.Errors().HasErrors() {
		printDiagnostics(writer, interp.Errors(), "RUNTIME ERROR")
	}
}

func printDiagnostics(writer io.Writer, errs *diag.List, label string) {
	for _, e := range errs.All() {
		redColor.Fprintf(writer, "[%s] %s\n", label, e.Error())
	}
}
