// Package disassemble renders one instruction at a time from a Bus, driven
// by the same decode table cpu.Step uses instead of a second copy of it.
package disassemble

import (
	"fmt"

	"github.com/go6502/core/bus"
	"github.com/go6502/core/cpu"
)

// Step disassembles the instruction at pc, returning its text rendering and
// the byte count the caller should advance pc by to reach the next
// instruction. This does not interpret control flow: JMP, LDA, JMP in
// memory disassembles as that sequence, not followed. An invalid opcode
// renders as "???" with a 1-byte advance, mirroring cpu.Step's Invalid
// outcome (spec §7.2). A failed read renders as "<absent>" with a 1-byte
// advance.
func Step(pc uint16, b bus.Bus) (string, int) {
	opcode, ok := b.Read(pc)
	if !ok {
		return fmt.Sprintf("%.4X ??       <absent>", pc), 1
	}

	op, mode, length, _, ok := cpu.Descriptor(opcode)
	if !ok {
		return fmt.Sprintf("%.4X %.2X       ???", pc, opcode), 1
	}

	operand := make([]byte, 0, 2)
	for i := uint8(1); i < length; i++ {
		v, ok := b.Read(pc + uint16(i))
		if !ok {
			return fmt.Sprintf("%.4X %.2X       <absent operand>", pc, opcode), 1
		}
		operand = append(operand, v)
	}

	return render(pc, opcode, op, mode, operand), int(length)
}

func render(pc uint16, opcode uint8, op cpu.Operation, mode cpu.AddrMode, operand []byte) string {
	bytesCol := fmt.Sprintf("%.2X", opcode)
	for _, o := range operand {
		bytesCol += fmt.Sprintf(" %.2X", o)
	}

	var operandText string
	switch mode {
	case cpu.ModeImplied, cpu.ModeAccumulator:
		operandText = ""
	case cpu.ModeImmediate:
		operandText = fmt.Sprintf("#%.2X", operand[0])
	case cpu.ModeZeroPage:
		operandText = fmt.Sprintf("%.2X", operand[0])
	case cpu.ModeZeroPageX:
		operandText = fmt.Sprintf("%.2X,X", operand[0])
	case cpu.ModeZeroPageY:
		operandText = fmt.Sprintf("%.2X,Y", operand[0])
	case cpu.ModeIndirectX:
		operandText = fmt.Sprintf("(%.2X,X)", operand[0])
	case cpu.ModeIndirectY:
		operandText = fmt.Sprintf("(%.2X),Y", operand[0])
	case cpu.ModeAbsolute:
		operandText = fmt.Sprintf("%.2X%.2X", operand[1], operand[0])
	case cpu.ModeAbsoluteX:
		operandText = fmt.Sprintf("%.2X%.2X,X", operand[1], operand[0])
	case cpu.ModeAbsoluteY:
		operandText = fmt.Sprintf("%.2X%.2X,Y", operand[1], operand[0])
	case cpu.ModeIndirect:
		operandText = fmt.Sprintf("(%.2X%.2X)", operand[1], operand[0])
	case cpu.ModeRelative:
		disp := int16(int8(operand[0]))
		operandText = fmt.Sprintf("%.2X (%.4X)", operand[0], pc+uint16(disp)+2)
	}

	return fmt.Sprintf("%.4X %-8s %s %s", pc, bytesCol, op, operandText)
}
