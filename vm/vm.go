// Package vm implements the stack-based virtual machine that executes a
// compiled chunk.Chunk and produces a single value.Value result.
package vm

import (
	"nilan/chunk"
	"nilan/value"
)

// VM is the runtime environment where Nilan bytecode gets executed. A VM
// is reusable across Run calls; each call resets its stack and adopts a
// fresh chunk.
type VM struct {
	chunk *chunk.Chunk
	stack Stack
	ip    int
}

func New() *VM {
	return &VM{}
}

// Run executes c from the first instruction and returns the value left by
// OP_RETURN, or a RuntimeError on a type violation.
func (vm *VM) Run(c *chunk.Chunk) (value.Value, error) {
	vm.chunk = c
	vm.stack = nil
	vm.ip = 0

	for {
		line := vm.currentLine()
		op := chunk.Opcode(vm.readByte())

		switch op {
		case chunk.OpConstant:
			index := vm.readByte()
			vm.stack.Push(vm.chunk.Constants[index])

		case chunk.OpNil:
			vm.stack.Push(value.Nil())
		case chunk.OpTrue:
			vm.stack.Push(value.Bool(true))
		case chunk.OpFalse:
			vm.stack.Push(value.Bool(false))

		case chunk.OpEqual:
			b, _ := vm.stack.Pop()
			a, _ := vm.stack.Pop()
			vm.stack.Push(value.Bool(value.Equal(a, b)))

		case chunk.OpGreater:
			b, a, err := vm.popNumberPair(line)
			if err != nil {
				return value.Nil(), err
			}
			vm.stack.Push(value.Bool(a > b))

		case chunk.OpLess:
			b, a, err := vm.popNumberPair(line)
			if err != nil {
				return value.Nil(), err
			}
			vm.stack.Push(value.Bool(a < b))

		case chunk.OpAdd:
			b, a, err := vm.popNumberPair(line)
			if err != nil {
				return value.Nil(), err
			}
			vm.stack.Push(value.Number(a + b))

		case chunk.OpSubtract:
			b, a, err := vm.popNumberPair(line)
			if err != nil {
				return value.Nil(), err
			}
			vm.stack.Push(value.Number(a - b))

		case chunk.OpMultiply:
			b, a, err := vm.popNumberPair(line)
			if err != nil {
				return value.Nil(), err
			}
			vm.stack.Push(value.Number(a * b))

		case chunk.OpDivide:
			b, a, err := vm.popNumberPair(line)
			if err != nil {
				return value.Nil(), err
			}
			vm.stack.Push(value.Number(a / b))

		case chunk.OpNot:
			a, _ := vm.stack.Pop()
			vm.stack.Push(value.Bool(a.IsFalsey()))

		case chunk.OpNegate:
			a, _ := vm.stack.Pop()
			if !a.IsNumber() {
				return value.Nil(), RuntimeError{Line: line, Message: "Operand must be a number."}
			}
			vm.stack.Push(value.Number(-a.AsNumber()))

		case chunk.OpReturn:
			result, _ := vm.stack.Pop()
			return result, nil
		}
	}
}

func (vm *VM) readByte() byte {
	b := vm.chunk.Code[vm.ip]
	vm.ip++
	return b
}

func (vm *VM) currentLine() int32 {
	return vm.chunk.Lines[vm.ip]
}

// popNumberPair pops the two most recently pushed operands and returns
// them as (b, a) — b was pushed last (the right-hand operand), a was
// pushed first (the left-hand operand) — so callers compute `a op b` in
// source order.
func (vm *VM) popNumberPair(line int32) (b, a float32, err error) {
	bVal, _ := vm.stack.Pop()
	aVal, _ := vm.stack.Pop()
	if !bVal.IsNumber() || !aVal.IsNumber() {
		return 0, 0, RuntimeError{Line: line, Message: "Operands must be numbers."}
	}
	return bVal.AsNumber(), aVal.AsNumber(), nil
}
