package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go6502/core/bus"
)

func TestPHPForcesBreakAndUnused(t *testing.T) {
	ram := bus.NewFlatRAM()
	ram.Load(0x0000, []byte{0x08}) // PHP
	c := &CPU{PC: 0x0000, SP: 0xFF, P: 0x00}

	_, outcome := Step(c, ram)
	require.Equal(t, Completed, outcome)

	pushed, _ := ram.Read(0x01FF)
	assert.Equal(t, uint8(Break)|uint8(Unused), pushed)
	assert.Equal(t, uint8(0x00), c.P) // PHP itself doesn't mutate P
}

func TestPLPClearsBreakForcesUnused(t *testing.T) {
	ram := bus.NewFlatRAM()
	ram.Load(0x0000, []byte{0x28}) // PLP
	ram.Write(0x01FF, 0xFF)        // every bit set, including Break
	c := &CPU{PC: 0x0000, SP: 0xFE}

	_, outcome := Step(c, ram)
	require.Equal(t, Completed, outcome)

	assert.False(t, FlagGet(c.P, Break))
	assert.True(t, FlagGet(c.P, Unused))
}

func TestBRKPushesReturnAddrPlus2AndSetsBreak(t *testing.T) {
	ram := bus.NewFlatRAM()
	ram.Load(0x0200, []byte{0x00, 0x00}) // BRK + padding byte
	ram.Write(IRQVector, 0x00)
	ram.Write(IRQVector+1, 0x90)
	c := &CPU{PC: 0x0200, SP: 0xFF, P: 0x00}

	_, outcome := Step(c, ram)
	require.Equal(t, Completed, outcome)

	assert.Equal(t, uint16(0x9000), c.PC)
	assert.Equal(t, uint8(0xFC), c.SP)
	hi, _ := ram.Read(0x01FF)
	lo, _ := ram.Read(0x01FE)
	pushedP, _ := ram.Read(0x01FD)
	assert.Equal(t, uint8(0x02), hi)
	assert.Equal(t, uint8(0x02), lo) // PC+2 == 0x0202
	assert.Equal(t, uint8(Break)|uint8(Unused), pushedP)
	assert.True(t, FlagGet(c.P, Interrupt))
}

func TestCompareFlags(t *testing.T) {
	tests := []struct {
		name          string
		reg, m        uint8
		carry, zero   bool
		negative      bool
	}{
		{"equal", 0x40, 0x40, true, true, false},
		{"greater", 0x50, 0x10, true, false, false},
		{"less", 0x10, 0x50, false, false, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := &CPU{}
			compare(c, tt.reg, tt.m)
			assert.Equal(t, tt.carry, FlagGet(c.P, Carry))
			assert.Equal(t, tt.zero, FlagGet(c.P, Zero))
			assert.Equal(t, tt.negative, FlagGet(c.P, Negative))
		})
	}
}

func TestShiftsCarryChain(t *testing.T) {
	ram := bus.NewFlatRAM()
	ram.Load(0x0000, []byte{0x2A}) // ROL A
	c := &CPU{PC: 0x0000, A: 0x80, P: uint8(Carry)}

	_, outcome := Step(c, ram)
	require.Equal(t, Completed, outcome)
	assert.Equal(t, uint8(0x01), c.A) // old bit 7 -> carry out, old carry -> bit 0
	assert.True(t, FlagGet(c.P, Carry))
}

func TestADCThenSBCRoundTrip(t *testing.T) {
	c := &CPU{A: 0x10, P: uint8(Carry)}
	adc(c, 0x20)
	assert.Equal(t, uint8(0x31), c.A)

	sbc(c, 0x20)
	assert.Equal(t, uint8(0x10), c.A) // SBC undoes the preceding ADC exactly
	assert.True(t, FlagGet(c.P, Carry))
}

func TestTXSDoesNotTouchFlags(t *testing.T) {
	ram := bus.NewFlatRAM()
	ram.Load(0x0000, []byte{0x9A}) // TXS
	c := &CPU{PC: 0x0000, X: 0x00, P: 0xFF}

	_, outcome := Step(c, ram)
	require.Equal(t, Completed, outcome)
	assert.Equal(t, uint8(0x00), c.SP)
	assert.Equal(t, uint8(0xFF), c.P) // unlike TAX/TSX, unaffected
}
