package cpu

import "github.com/go6502/core/bus"

// argKind distinguishes an immediate value already in hand from an
// effective address the operation must read/write through the Bus. This
// is the canonical OperandArgument sum type from spec §3/§9: operations
// that can target either the accumulator or memory branch on this tag.
type argKind int

const (
	argValue argKind = iota
	argPointer
)

// arg is the resolved operand for one instruction: either an immediate
// Value or a memory Pointer.
type arg struct {
	kind  argKind
	value uint8
	addr  uint16
}

// resolve returns the operand byte, reading through b when this is a
// Pointer. ok is false iff the underlying read failed ("absent").
func (a arg) resolve(b bus.Bus) (uint8, bool) {
	if a.kind == argValue {
		return a.value, true
	}
	return b.Read(a.addr)
}

// addrFunc evaluates one addressing mode against c.PC and b, returning the
// total instruction length (including the opcode byte) and the resolved
// operand. ok is false iff any intermediate read failed.
type addrFunc func(c *CPU, b bus.Bus) (length uint8, a arg, ok bool)

// addrImplied — operand is A, never read from the bus. Length 1.
func addrImplied(c *CPU, b bus.Bus) (uint8, arg, bool) {
	return 1, arg{kind: argValue, value: c.A}, true
}

// addrAccumulator — operand is A, addressed directly by shift/rotate ops.
// Length 1.
func addrAccumulator(c *CPU, b bus.Bus) (uint8, arg, bool) {
	return 1, arg{kind: argValue, value: c.A}, true
}

// addrImmediate — operand is the byte following the opcode. Length 2.
func addrImmediate(c *CPU, b bus.Bus) (uint8, arg, bool) {
	return 2, arg{kind: argPointer, addr: c.PC + 1}, true
}

// addrRelative — operand is the signed branch displacement at PC+1, taken
// as a raw byte; the branch operation sign-extends it. Length 2.
func addrRelative(c *CPU, b bus.Bus) (uint8, arg, bool) {
	v, ok := b.Read(c.PC + 1)
	if !ok {
		return 2, arg{}, false
	}
	return 2, arg{kind: argValue, value: v}, true
}

// addrZeroPage — operand lives at 0x00 | byte. Length 2.
func addrZeroPage(c *CPU, b bus.Bus) (uint8, arg, bool) {
	v, ok := b.Read(c.PC + 1)
	if !ok {
		return 2, arg{}, false
	}
	return 2, arg{kind: argPointer, addr: uint16(v)}, true
}

// addrZeroPageX — operand lives at 0x00 | ((byte + X) mod 256). Length 2.
func addrZeroPageX(c *CPU, b bus.Bus) (uint8, arg, bool) {
	return addrZeroPageIndexed(c, b, c.X)
}

// addrZeroPageY — operand lives at 0x00 | ((byte + Y) mod 256). Length 2.
func addrZeroPageY(c *CPU, b bus.Bus) (uint8, arg, bool) {
	return addrZeroPageIndexed(c, b, c.Y)
}

func addrZeroPageIndexed(c *CPU, b bus.Bus, reg uint8) (uint8, arg, bool) {
	v, ok := b.Read(c.PC + 1)
	if !ok {
		return 2, arg{}, false
	}
	return 2, arg{kind: argPointer, addr: uint16(v + reg)}, true
}

// addrAbsolute — operand lives at the little-endian 16-bit value following
// the opcode. Length 3.
func addrAbsolute(c *CPU, b bus.Bus) (uint8, arg, bool) {
	lo, ok := b.Read(c.PC + 1)
	if !ok {
		return 3, arg{}, false
	}
	hi, ok := b.Read(c.PC + 2)
	if !ok {
		return 3, arg{}, false
	}
	return 3, arg{kind: argPointer, addr: uint16(hi)<<8 | uint16(lo)}, true
}

// addrAbsoluteX — absolute address plus X, 16-bit wraparound. Length 3.
func addrAbsoluteX(c *CPU, b bus.Bus) (uint8, arg, bool) {
	return addrAbsoluteIndexed(c, b, c.X)
}

// addrAbsoluteY — absolute address plus Y, 16-bit wraparound. Length 3.
func addrAbsoluteY(c *CPU, b bus.Bus) (uint8, arg, bool) {
	return addrAbsoluteIndexed(c, b, c.Y)
}

func addrAbsoluteIndexed(c *CPU, b bus.Bus, reg uint8) (uint8, arg, bool) {
	lo, ok := b.Read(c.PC + 1)
	if !ok {
		return 3, arg{}, false
	}
	hi, ok := b.Read(c.PC + 2)
	if !ok {
		return 3, arg{}, false
	}
	base := uint16(hi)<<8 | uint16(lo)
	return 3, arg{kind: argPointer, addr: base + uint16(reg)}, true
}

// addrIndirect — JMP's only mode: the operand is a 16-bit pointer whose
// contents (also little-endian) are the effective address. Reproduces the
// well-known page-boundary bug: when the operand address's low byte is
// 0xFF, the high byte of the target is read from the *same* page
// (operand & 0xFF00) rather than the next one. Length 3.
func addrIndirect(c *CPU, b bus.Bus) (uint8, arg, bool) {
	lo, ok := b.Read(c.PC + 1)
	if !ok {
		return 3, arg{}, false
	}
	hi, ok := b.Read(c.PC + 2)
	if !ok {
		return 3, arg{}, false
	}
	ptr := uint16(hi)<<8 | uint16(lo)

	loTarget, ok := b.Read(ptr)
	if !ok {
		return 3, arg{}, false
	}
	hiAddr := (ptr & 0xFF00) | ((ptr + 1) & 0x00FF)
	hiTarget, ok := b.Read(hiAddr)
	if !ok {
		return 3, arg{}, false
	}
	return 3, arg{kind: argPointer, addr: uint16(hiTarget)<<8 | uint16(loTarget)}, true
}

// addrIndirectX — (d,x): base = (byte+X) mod 256 in zero page, the pointer
// at base/base+1 (wrapping within zero page) is the effective address.
// Length 2.
func addrIndirectX(c *CPU, b bus.Bus) (uint8, arg, bool) {
	d, ok := b.Read(c.PC + 1)
	if !ok {
		return 2, arg{}, false
	}
	base := d + c.X
	lo, ok := b.Read(uint16(base))
	if !ok {
		return 2, arg{}, false
	}
	hi, ok := b.Read(uint16(base + 1))
	if !ok {
		return 2, arg{}, false
	}
	return 2, arg{kind: argPointer, addr: uint16(hi)<<8 | uint16(lo)}, true
}

// addrIndirectY — (d),y: base = byte in zero page; the pointer at
// base/base+1 (wrapping within zero page) plus Y (16-bit wrap) is the
// effective address. Length 2.
func addrIndirectY(c *CPU, b bus.Bus) (uint8, arg, bool) {
	d, ok := b.Read(c.PC + 1)
	if !ok {
		return 2, arg{}, false
	}
	lo, ok := b.Read(uint16(d))
	if !ok {
		return 2, arg{}, false
	}
	hi, ok := b.Read(uint16(d + 1))
	if !ok {
		return 2, arg{}, false
	}
	ptr := uint16(hi)<<8 | uint16(lo)
	return 2, arg{kind: argPointer, addr: ptr + uint16(c.Y)}, true
}
