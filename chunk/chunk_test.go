package chunk

import (
	"nilan/value"
	"strings"
	"testing"
)

func TestWriteByteKeepsCodeAndLinesInSync(t *testing.T) {
	c := New()
	c.WriteOp(OpNil, 1)
	c.WriteOp(OpTrue, 1)
	c.WriteOp(OpReturn, 2)

	if len(c.Code) != len(c.Lines) {
		t.Fatalf("len(Code)=%d, len(Lines)=%d, want equal", len(c.Code), len(c.Lines))
	}
	wantLines := []int32{1, 1, 2}
	for i, want := range wantLines {
		if c.Lines[i] != want {
			t.Errorf("Lines[%d] = %d, want %d", i, c.Lines[i], want)
		}
	}
}

func TestAddConstant(t *testing.T) {
	c := New()
	idx, err := c.AddConstant(value.Number(5))
	if err != nil {
		t.Fatalf("AddConstant returned error: %v", err)
	}
	if idx != 0 {
		t.Errorf("first constant index = %d, want 0", idx)
	}
	idx2, _ := c.AddConstant(value.Number(6))
	if idx2 != 1 {
		t.Errorf("second constant index = %d, want 1", idx2)
	}
}

func TestAddConstantOverflow(t *testing.T) {
	c := New()
	for i := 0; i < maxConstants; i++ {
		if _, err := c.AddConstant(value.Number(float32(i))); err != nil {
			t.Fatalf("unexpected error adding constant %d: %v", i, err)
		}
	}
	_, err := c.AddConstant(value.Number(999))
	if err != ErrTooManyConstants {
		t.Fatalf("AddConstant at capacity = %v, want ErrTooManyConstants", err)
	}
}

func TestDisassembleInstructionSimple(t *testing.T) {
	c := New()
	c.WriteOp(OpNegate, 3)

	line, next := c.DisassembleInstruction(0)
	if next != 1 {
		t.Errorf("next offset = %d, want 1", next)
	}
	if !strings.Contains(line, "OP_NEGATE") {
		t.Errorf("disassembly %q missing OP_NEGATE", line)
	}
	if !strings.Contains(line, "0000") || !strings.Contains(line, "3") {
		t.Errorf("disassembly %q missing offset/line", line)
	}
}

func TestDisassembleInstructionConstant(t *testing.T) {
	c := New()
	idx, _ := c.AddConstant(value.Number(42))
	c.WriteOp(OpConstant, 1)
	c.WriteByte(byte(idx), 1)

	line, next := c.DisassembleInstruction(0)
	if next != 2 {
		t.Errorf("next offset = %d, want 2", next)
	}
	if !strings.Contains(line, "OP_CONSTANT") || !strings.Contains(line, "42") {
		t.Errorf("disassembly %q missing OP_CONSTANT/42", line)
	}
}

func TestDisassembleInstructionSameLineMarker(t *testing.T) {
	c := New()
	c.WriteOp(OpTrue, 5)
	c.WriteOp(OpNot, 5)

	_, next := c.DisassembleInstruction(0)
	line, _ := c.DisassembleInstruction(next)
	if !strings.Contains(line, "   | ") {
		t.Errorf("disassembly for repeated line %q missing '   | ' marker", line)
	}
}

func TestOpcodeLessDisassemblesAsLess(t *testing.T) {
	// Regression: a prior build mislabeled OP_LESS as OP_GREATER in the
	// disassembler.
	c := New()
	c.WriteOp(OpLess, 1)
	line, _ := c.DisassembleInstruction(0)
	if !strings.Contains(line, "OP_LESS") {
		t.Errorf("disassembly %q does not contain OP_LESS", line)
	}
	if strings.Contains(line, "OP_GREATER") {
		t.Errorf("disassembly %q incorrectly contains OP_GREATER", line)
	}
}
