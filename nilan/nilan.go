// Package nilan wires the compiler and vm packages together into a single
// Interpret entry point shared by the file runner and the REPL.
package nilan

import (
	"errors"
	"nilan/compiler"
	"nilan/value"
	"nilan/vm"
)

// Exit codes, matching the conventions of sysexits.h used throughout the
// upstream clox lineage this core descends from.
const (
	ExitOk           = 0
	ExitCompileError = 65
	ExitRuntimeError = 70
	ExitIOError      = 74
)

// Interpreter owns a single reusable VM so a REPL session's globals would
// survive across lines if this core ever grows them; today each call to
// Interpret is independent since the grammar has no variables.
type Interpreter struct {
	machine *vm.VM
}

func NewInterpreter() *Interpreter {
	return &Interpreter{machine: vm.New()}
}

// Interpret compiles and runs source, returning the produced value and the
// exit code the CLI should use. err is non-nil whenever code != ExitOk; its
// message is already formatted for stderr.
func (interp *Interpreter) Interpret(source string) (value.Value, int, error) {
	c, err := compiler.Compile(source)
	if err != nil {
		ce := err.(compiler.CompileError)
		return value.Nil(), ExitCompileError, errors.New(joinLines(ce.Errors))
	}

	result, err := interp.machine.Run(c)
	if err != nil {
		return value.Nil(), ExitRuntimeError, err
	}
	return result, ExitOk, nil
}

func joinLines(lines []string) string {
	out := ""
	for i, line := range lines {
		if i > 0 {
			out += "\n"
		}
		out += line
	}
	return out
}
