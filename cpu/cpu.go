// Package cpu implements the MOS 6502 (NES-variant) instruction set: the
// register file, status flag algebra, addressing-mode evaluator, opcode
// decode table, and per-operation semantics described by the single public
// entry point Step.
package cpu

import "fmt"

// Reset/NMI/IRQ vectors. Only the BRK software trap (which reads the IRQ
// vector) is implemented by this core; hardware NMI/IRQ/RESET sequencing
// is an external collaborator's concern (spec §1).
const (
	NMIVector   = uint16(0xFFFA)
	ResetVector = uint16(0xFFFC)
	IRQVector   = uint16(0xFFFE)
)

// CPU is the register file: A, X, Y, SP, PC, P. It is a plain value type;
// the core never allocates and retains no state between Step calls beyond
// these fields.
type CPU struct {
	A  uint8
	X  uint8
	Y  uint8
	SP uint8
	PC uint16
	P  uint8

	// Decimal, when true, makes ADC/SBC honor the D flag and perform BCD
	// math. The Ricoh 2A03 used in the NES has no working decimal mode,
	// so the NES-variant conformance corpus this core targets never
	// exercises this; it defaults false (binary only). See SPEC_FULL.md
	// "OPEN QUESTION DECISIONS".
	Decimal bool
}

// InvalidOpcodeState is a typed error for internal precondition failures,
// matching the teacher's InvalidCPUState shape rather than a bare
// errors.New. No function in this package returns it; Step reports its
// outcomes through Outcome rather than an error.
type InvalidOpcodeState struct {
	Reason string
}

func (e InvalidOpcodeState) Error() string {
	return fmt.Sprintf("invalid cpu state: %s", e.Reason)
}

// StackAddr returns the 16-bit address backing the current stack pointer.
func (c *CPU) StackAddr() uint16 {
	return 0x0100 | uint16(c.SP)
}
