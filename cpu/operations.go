package cpu

import "github.com/go6502/core/bus"

// result is the transfer-of-control an operation hands back to Step: a
// direct Jump to target, or Advance (Step adds the instruction length to
// PC itself). This is spec §4.3's "Transfer of control returned from each
// operation".
type result struct {
	jump   bool
	target uint16
}

func advance() result                { return result{} }
func jumpTo(target uint16) result    { return result{jump: true, target: target} }
func (r result) isJump() (uint16, bool) { return r.target, r.jump }

// opFunc is one operation's semantics: given the resolved operand, mutate
// c and b as needed and report how control should transfer. ok is false
// iff an intermediate bus read/write failed ("absent"); partial mutations
// already applied are not rolled back (spec §7).
type opFunc func(c *CPU, b bus.Bus, a arg) (result, bool)

func push(c *CPU, b bus.Bus, val uint8) bool {
	ok := b.Write(c.StackAddr(), val)
	c.SP--
	return ok
}

func pull(c *CPU, b bus.Bus) (uint8, bool) {
	c.SP++
	return b.Read(c.StackAddr())
}

// --- Arithmetic ---

func adc(c *CPU, m uint8) {
	carry := uint16(0)
	if FlagGet(c.P, Carry) {
		carry = 1
	}
	if c.Decimal && FlagGet(c.P, Decimal) {
		lo := (c.A & 0x0F) + (m & 0x0F) + uint8(carry)
		if lo > 0x09 {
			lo += 0x06
		}
		carryOut := uint16(0)
		hi := uint16(c.A&0xF0) + uint16(m&0xF0) + uint16(lo&0x0F)
		if lo > 0x0F {
			hi += 0x10
		}
		bin := c.A + m + uint8(carry)
		if hi > 0x9F {
			hi += 0x60
			carryOut = 1
		}
		res := uint8(hi&0xF0) | (lo & 0x0F)
		c.P = FlagSet(c.P, Overflow, (c.A^bin)&(m^bin)&0x80 != 0)
		c.P = FlagSet(c.P, Carry, carryOut != 0)
		c.P = setZN(c.P, bin)
		c.A = res
		return
	}
	sum := uint16(c.A) + uint16(m) + carry
	res := uint8(sum)
	c.P = FlagSet(c.P, Overflow, (c.A^res)&(m^res)&0x80 != 0)
	c.P = FlagSet(c.P, Carry, sum > 0xFF)
	c.A = res
	c.P = setZN(c.P, c.A)
}

func sbc(c *CPU, m uint8) {
	carry := uint16(0)
	if FlagGet(c.P, Carry) {
		carry = 1
	}
	if c.Decimal && FlagGet(c.P, Decimal) {
		lo := int16(c.A&0x0F) - int16(m&0x0F) - int16(1-carry)
		hi := int16(c.A&0xF0) - int16(m&0xF0)
		if lo < 0 {
			lo -= 0x06
			hi -= 0x10
		}
		if hi < 0 {
			hi -= 0x60
		}
		bin := uint16(c.A) + uint16(^m) + carry
		res := uint8(hi&0xF0) | uint8(lo&0x0F)
		c.P = FlagSet(c.P, Overflow, (c.A^uint8(bin))&(^m^uint8(bin))&0x80 != 0)
		c.P = FlagSet(c.P, Carry, bin > 0xFF)
		c.P = setZN(c.P, uint8(bin))
		c.A = res
		return
	}
	adc(c, ^m)
}

func opADC(c *CPU, b bus.Bus, a arg) (result, bool) {
	m, ok := a.resolve(b)
	if !ok {
		return result{}, false
	}
	adc(c, m)
	return advance(), true
}

func opSBC(c *CPU, b bus.Bus, a arg) (result, bool) {
	m, ok := a.resolve(b)
	if !ok {
		return result{}, false
	}
	sbc(c, m)
	return advance(), true
}

func incDec(c *CPU, b bus.Bus, a arg, delta uint8) (result, bool) {
	m, ok := a.resolve(b)
	if !ok {
		return result{}, false
	}
	res := m + delta
	if !b.Write(a.addr, res) {
		return result{}, false
	}
	c.P = setZN(c.P, res)
	return advance(), true
}

func opINC(c *CPU, b bus.Bus, a arg) (result, bool) { return incDec(c, b, a, 1) }
func opDEC(c *CPU, b bus.Bus, a arg) (result, bool) { return incDec(c, b, a, 0xFF) }

func regDelta(reg *uint8, c *CPU, delta uint8) (result, bool) {
	*reg += delta
	c.P = setZN(c.P, *reg)
	return advance(), true
}

func opINX(c *CPU, b bus.Bus, a arg) (result, bool) { return regDelta(&c.X, c, 1) }
func opINY(c *CPU, b bus.Bus, a arg) (result, bool) { return regDelta(&c.Y, c, 1) }
func opDEX(c *CPU, b bus.Bus, a arg) (result, bool) { return regDelta(&c.X, c, 0xFF) }
func opDEY(c *CPU, b bus.Bus, a arg) (result, bool) { return regDelta(&c.Y, c, 0xFF) }

// --- Logical ---

func logical(c *CPU, b bus.Bus, a arg, f func(x, y uint8) uint8) (result, bool) {
	m, ok := a.resolve(b)
	if !ok {
		return result{}, false
	}
	c.A = f(c.A, m)
	c.P = setZN(c.P, c.A)
	return advance(), true
}

func opAND(c *CPU, b bus.Bus, a arg) (result, bool) {
	return logical(c, b, a, func(x, y uint8) uint8 { return x & y })
}

func opORA(c *CPU, b bus.Bus, a arg) (result, bool) {
	return logical(c, b, a, func(x, y uint8) uint8 { return x | y })
}

func opEOR(c *CPU, b bus.Bus, a arg) (result, bool) {
	return logical(c, b, a, func(x, y uint8) uint8 { return x ^ y })
}

func opBIT(c *CPU, b bus.Bus, a arg) (result, bool) {
	m, ok := a.resolve(b)
	if !ok {
		return result{}, false
	}
	c.P = FlagSet(c.P, Zero, c.A&m == 0)
	c.P = FlagSet(c.P, Negative, m&0x80 != 0)
	c.P = FlagSet(c.P, Overflow, m&0x40 != 0)
	return advance(), true
}

// --- Shifts/Rotates ---

// shiftRotate handles ASL/LSR/ROL/ROR uniformly over either the
// accumulator (argValue) or memory (argPointer), per spec §4.3.
func shiftRotate(c *CPU, b bus.Bus, a arg, f func(c *CPU, m uint8) uint8) (result, bool) {
	m, ok := a.resolve(b)
	if !ok {
		return result{}, false
	}
	res := f(c, m)
	if a.kind == argPointer {
		if !b.Write(a.addr, res) {
			return result{}, false
		}
	} else {
		c.A = res
	}
	return advance(), true
}

func opASL(c *CPU, b bus.Bus, a arg) (result, bool) {
	return shiftRotate(c, b, a, func(c *CPU, m uint8) uint8 {
		c.P = FlagSet(c.P, Carry, m&0x80 != 0)
		res := m << 1
		c.P = setZN(c.P, res)
		return res
	})
}

func opLSR(c *CPU, b bus.Bus, a arg) (result, bool) {
	return shiftRotate(c, b, a, func(c *CPU, m uint8) uint8 {
		c.P = FlagSet(c.P, Carry, m&0x01 != 0)
		res := m >> 1
		c.P = FlagSet(c.P, Negative, false)
		c.P = FlagSet(c.P, Zero, res == 0)
		return res
	})
}

func opROL(c *CPU, b bus.Bus, a arg) (result, bool) {
	return shiftRotate(c, b, a, func(c *CPU, m uint8) uint8 {
		oldCarry := uint8(0)
		if FlagGet(c.P, Carry) {
			oldCarry = 1
		}
		c.P = FlagSet(c.P, Carry, m&0x80 != 0)
		res := (m << 1) | oldCarry
		c.P = setZN(c.P, res)
		return res
	})
}

func opROR(c *CPU, b bus.Bus, a arg) (result, bool) {
	return shiftRotate(c, b, a, func(c *CPU, m uint8) uint8 {
		oldCarry := uint8(0)
		if FlagGet(c.P, Carry) {
			oldCarry = 0x80
		}
		c.P = FlagSet(c.P, Carry, m&0x01 != 0)
		res := (m >> 1) | oldCarry
		c.P = setZN(c.P, res)
		return res
	})
}

// --- Branches ---

// branch implements the shared shape of every B** instruction: predicate
// false advances by 2, predicate true jumps to (PC+2)+sign_extend(disp).
func branch(c *CPU, a arg, taken bool) (result, bool) {
	if !taken {
		return advance(), true
	}
	disp := int16(int8(a.value))
	target := c.PC + 2 + uint16(disp)
	return jumpTo(target), true
}

func opBCC(c *CPU, b bus.Bus, a arg) (result, bool) { return branch(c, a, !FlagGet(c.P, Carry)) }
func opBCS(c *CPU, b bus.Bus, a arg) (result, bool) { return branch(c, a, FlagGet(c.P, Carry)) }
func opBEQ(c *CPU, b bus.Bus, a arg) (result, bool) { return branch(c, a, FlagGet(c.P, Zero)) }
func opBNE(c *CPU, b bus.Bus, a arg) (result, bool) { return branch(c, a, !FlagGet(c.P, Zero)) }
func opBMI(c *CPU, b bus.Bus, a arg) (result, bool) { return branch(c, a, FlagGet(c.P, Negative)) }
func opBPL(c *CPU, b bus.Bus, a arg) (result, bool) { return branch(c, a, !FlagGet(c.P, Negative)) }
func opBVC(c *CPU, b bus.Bus, a arg) (result, bool) { return branch(c, a, !FlagGet(c.P, Overflow)) }
func opBVS(c *CPU, b bus.Bus, a arg) (result, bool) { return branch(c, a, FlagGet(c.P, Overflow)) }

// --- Compares ---

func compare(c *CPU, reg uint8, m uint8) {
	r := uint16(reg) - uint16(m)
	c.P = FlagSet(c.P, Carry, reg >= m)
	c.P = FlagSet(c.P, Zero, reg == m)
	c.P = FlagSet(c.P, Negative, uint8(r)&0x80 != 0)
}

func opCMP(c *CPU, b bus.Bus, a arg) (result, bool) {
	m, ok := a.resolve(b)
	if !ok {
		return result{}, false
	}
	compare(c, c.A, m)
	return advance(), true
}

func opCPX(c *CPU, b bus.Bus, a arg) (result, bool) {
	m, ok := a.resolve(b)
	if !ok {
		return result{}, false
	}
	compare(c, c.X, m)
	return advance(), true
}

func opCPY(c *CPU, b bus.Bus, a arg) (result, bool) {
	m, ok := a.resolve(b)
	if !ok {
		return result{}, false
	}
	compare(c, c.Y, m)
	return advance(), true
}

// --- Loads/Stores ---

func load(reg *uint8, c *CPU, b bus.Bus, a arg) (result, bool) {
	m, ok := a.resolve(b)
	if !ok {
		return result{}, false
	}
	*reg = m
	c.P = setZN(c.P, *reg)
	return advance(), true
}

func opLDA(c *CPU, b bus.Bus, a arg) (result, bool) { return load(&c.A, c, b, a) }
func opLDX(c *CPU, b bus.Bus, a arg) (result, bool) { return load(&c.X, c, b, a) }
func opLDY(c *CPU, b bus.Bus, a arg) (result, bool) { return load(&c.Y, c, b, a) }

// store writes reg to the address in a, which must be a Pointer (the
// opcode table never pairs a store with an addressing mode that
// resolves to argValue).
func store(reg uint8, b bus.Bus, a arg) (result, bool) {
	if !b.Write(a.addr, reg) {
		return result{}, false
	}
	return advance(), true
}

func opSTA(c *CPU, b bus.Bus, a arg) (result, bool) { return store(c.A, b, a) }
func opSTX(c *CPU, b bus.Bus, a arg) (result, bool) { return store(c.X, b, a) }
func opSTY(c *CPU, b bus.Bus, a arg) (result, bool) { return store(c.Y, b, a) }

// --- Register transfers ---

func transfer(dst *uint8, c *CPU, src uint8) (result, bool) {
	*dst = src
	c.P = setZN(c.P, *dst)
	return advance(), true
}

func opTAX(c *CPU, b bus.Bus, a arg) (result, bool) { return transfer(&c.X, c, c.A) }
func opTAY(c *CPU, b bus.Bus, a arg) (result, bool) { return transfer(&c.Y, c, c.A) }
func opTXA(c *CPU, b bus.Bus, a arg) (result, bool) { return transfer(&c.A, c, c.X) }
func opTYA(c *CPU, b bus.Bus, a arg) (result, bool) { return transfer(&c.A, c, c.Y) }
func opTSX(c *CPU, b bus.Bus, a arg) (result, bool) { return transfer(&c.X, c, c.SP) }

// TXS does not touch flags, unlike every other transfer.
func opTXS(c *CPU, b bus.Bus, a arg) (result, bool) {
	c.SP = c.X
	return advance(), true
}

// --- Stack ---

func opPHA(c *CPU, b bus.Bus, a arg) (result, bool) {
	if !push(c, b, c.A) {
		return result{}, false
	}
	return advance(), true
}

func opPHP(c *CPU, b bus.Bus, a arg) (result, bool) {
	pushed := c.P | uint8(Break) | uint8(Unused)
	if !push(c, b, pushed) {
		return result{}, false
	}
	return advance(), true
}

func opPLA(c *CPU, b bus.Bus, a arg) (result, bool) {
	v, ok := pull(c, b)
	if !ok {
		return result{}, false
	}
	c.A = v
	c.P = setZN(c.P, c.A)
	return advance(), true
}

func opPLP(c *CPU, b bus.Bus, a arg) (result, bool) {
	v, ok := pull(c, b)
	if !ok {
		return result{}, false
	}
	c.P = (v &^ uint8(Break)) | uint8(Unused)
	return advance(), true
}

// --- Control flow ---

func opJMP(c *CPU, b bus.Bus, a arg) (result, bool) {
	return jumpTo(a.addr), true
}

func opJSR(c *CPU, b bus.Bus, a arg) (result, bool) {
	ret := c.PC + 2
	if !push(c, b, uint8(ret>>8)) {
		return result{}, false
	}
	if !push(c, b, uint8(ret)) {
		return result{}, false
	}
	return jumpTo(a.addr), true
}

func opRTS(c *CPU, b bus.Bus, a arg) (result, bool) {
	lo, ok := pull(c, b)
	if !ok {
		return result{}, false
	}
	hi, ok := pull(c, b)
	if !ok {
		return result{}, false
	}
	return jumpTo((uint16(hi)<<8 | uint16(lo)) + 1), true
}

func opRTI(c *CPU, b bus.Bus, a arg) (result, bool) {
	p, ok := pull(c, b)
	if !ok {
		return result{}, false
	}
	c.P = (p &^ uint8(Break)) | uint8(Unused)
	lo, ok := pull(c, b)
	if !ok {
		return result{}, false
	}
	hi, ok := pull(c, b)
	if !ok {
		return result{}, false
	}
	return jumpTo(uint16(hi)<<8 | uint16(lo)), true
}

func opBRK(c *CPU, b bus.Bus, a arg) (result, bool) {
	// Padding byte after the opcode is read and discarded.
	if _, ok := b.Read(c.PC + 1); !ok {
		return result{}, false
	}
	ret := c.PC + 2
	if !push(c, b, uint8(ret>>8)) {
		return result{}, false
	}
	if !push(c, b, uint8(ret)) {
		return result{}, false
	}
	if !push(c, b, c.P|uint8(Break)|uint8(Unused)) {
		return result{}, false
	}
	c.P = FlagSet(c.P, Interrupt, true)
	lo, ok := b.Read(IRQVector)
	if !ok {
		return result{}, false
	}
	hi, ok := b.Read(IRQVector + 1)
	if !ok {
		return result{}, false
	}
	return jumpTo(uint16(hi)<<8 | uint16(lo)), true
}

// --- Flag set/clear ---

func setFlag(f Flag, cond bool) opFunc {
	return func(c *CPU, b bus.Bus, a arg) (result, bool) {
		c.P = FlagSet(c.P, f, cond)
		return advance(), true
	}
}

func opCLC(c *CPU, b bus.Bus, a arg) (result, bool) { return setFlag(Carry, false)(c, b, a) }
func opSEC(c *CPU, b bus.Bus, a arg) (result, bool) { return setFlag(Carry, true)(c, b, a) }
func opCLI(c *CPU, b bus.Bus, a arg) (result, bool) { return setFlag(Interrupt, false)(c, b, a) }
func opSEI(c *CPU, b bus.Bus, a arg) (result, bool) { return setFlag(Interrupt, true)(c, b, a) }
func opCLD(c *CPU, b bus.Bus, a arg) (result, bool) { return setFlag(Decimal, false)(c, b, a) }
func opSED(c *CPU, b bus.Bus, a arg) (result, bool) { return setFlag(Decimal, true)(c, b, a) }
func opCLV(c *CPU, b bus.Bus, a arg) (result, bool) { return setFlag(Overflow, false)(c, b, a) }

// --- NOP ---

func opNOP(c *CPU, b bus.Bus, a arg) (result, bool) { return advance(), true }
