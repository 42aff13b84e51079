// Package cli implements the command-line front door for nilan: a file
// runner and a line-oriented REPL, each driving its own nilan.Interpreter.
package cli

import (
	"flag"
	"fmt"
	"io"
	"os"

	"nilan/compiler"
	"nilan/nilan"

	"github.com/chzyer/readline"
)

const version = "nilan 0.1.0"

// Run parses args and executes the requested mode, returning the process
// exit code (0/65/70/74 per the interpreter's own conventions).
func Run(args []string, stdout, stderr io.Writer) int {
	flags := flag.NewFlagSet("nilan", flag.ContinueOnError)
	flags.SetOutput(stderr)

	var path string
	flags.StringVar(&path, "path", "", "source file to run; omit to start the REPL")
	flags.StringVar(&path, "p", "", "shorthand for -path")

	var showVersion bool
	flags.BoolVar(&showVersion, "version", false, "print the version and exit")

	var disassemble bool
	flags.BoolVar(&disassemble, "disassemble", false, "print the compiled bytecode before running")

	if err := flags.Parse(args); err != nil {
		return nilan.ExitCompileError
	}

	if showVersion {
		fmt.Fprintln(stdout, version)
		return nilan.ExitOk
	}

	if path != "" {
		return runFile(path, disassemble, stdout, stderr)
	}
	return runRepl(disassemble, stdout, stderr)
}

func runFile(path string, disassemble bool, stdout, stderr io.Writer) int {
	source, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(stderr, "Could not open file \"%s\".\n", path)
		return nilan.ExitIOError
	}

	interp := nilan.NewInterpreter()
	return interpretAndReport(interp, string(source), disassemble, stdout, stderr)
}

func runRepl(disassemble bool, stdout, stderr io.Writer) int {
	historyFile := ""
	if home, err := os.UserHomeDir(); err == nil {
		historyFile = home + "/.nilan_history"
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "> ",
		HistoryFile:     historyFile,
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
		Stdout:          stdout,
		Stderr:          stderr,
	})
	if err != nil {
		fmt.Fprintln(stderr, err)
		return nilan.ExitIOError
	}
	defer rl.Close()

	interp := nilan.NewInterpreter()
	for {
		line, err := rl.Readline()
		if err == readline.ErrInterrupt {
			continue
		}
		if err == io.EOF {
			return nilan.ExitOk
		}
		if err != nil {
			fmt.Fprintln(stderr, err)
			return nilan.ExitIOError
		}
		interpretAndReport(interp, line, disassemble, stdout, stderr)
	}
}

func interpretAndReport(interp *nilan.Interpreter, source string, disassemble bool, stdout, stderr io.Writer) int {
	if disassemble {
		if c, err := compiler.Compile(source); err == nil {
			fmt.Fprint(stdout, c.DisassembleChunk("source"))
		}
	}

	result, code, err := interp.Interpret(source)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return code
	}
	fmt.Fprintln(stdout, result.String())
	return code
}
