// Command dxsh is the interpreter's entry point: with no arguments it
// starts an interactive REPL; given a file path it executes that file
// and exits with the resulting status code.
package main

import (
	"os"

	"github.com/fatih/color"

	"github.com/dxsh-lang/dxsh/internal/repl"
	"github.com/dxsh-lang/dxsh/internal/sourcefile"
)

const (
	version = "v0.1.0"
	author  = "dxsh contributors"
	license = "MIT"
	prompt  = "dxsh >>> "
	line    = "----------------------------------------------------------------"
)

const banner = `
     _           _
  __| |_  _____ | |__
 / _  \ \/ / __|| '_ \
| (_| |>  <\__ \| | | |
 \__,_/_/\_\___/|_| |_|
`

var cyanColor = color.New(color.FgCyan)

func main() {
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--help", "-h":
			showHelp()
			os.Exit(0)
		case "--version", "-v":
			showVersion()
			os.Exit(0)
		default:
			os.Exit(sourcefile.RunFile(os.Args[1], os.Stdout, os.Stderr))
		}
		return
	}

	r := repl.New(banner, version, author, line, license, prompt)
	r.Start(os.Stdout)
}

func showHelp() {
	cyanColor.Println("dxsh - a small interpreted scripting language")
	cyanColor.Println("")
	cyanColor.Println("USAGE:")
	cyanColor.Println("  dxsh                    Start interactive REPL mode")
	cyanColor.Println("  dxsh <path-to-file>     Execute a source file")
	cyanColor.Println("  dxsh --help             Display this help message")
	cyanColor.Println("  dxsh --version          Display version information")
}

func showVersion() {
	cyanColor.Printf("dxsh %s (license %s, %s)\n", version, license, author)
}
