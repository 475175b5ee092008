package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go6502/core/bus"
)

func TestAddrIndirectPageBoundaryBug(t *testing.T) {
	ram := bus.NewFlatRAM()
	ram.Load(0x02FF, []byte{0x34})
	ram.Load(0x0300, []byte{0x99}) // must NOT be read
	ram.Load(0x0200, []byte{0x12})

	c := &CPU{PC: 0x0000}
	ram.Load(0x0000, []byte{0x6C, 0xFF, 0x02})

	length, a, ok := addrIndirect(c, ram)
	require.True(t, ok)
	assert.Equal(t, uint8(3), length)
	assert.Equal(t, uint16(0x1234), a.addr)
}

func TestAddrIndirectNormal(t *testing.T) {
	ram := bus.NewFlatRAM()
	ram.Load(0x0000, []byte{0x6C, 0x00, 0x02})
	ram.Load(0x0200, []byte{0x00, 0x10})

	c := &CPU{PC: 0x0000}
	_, a, ok := addrIndirect(c, ram)
	require.True(t, ok)
	assert.Equal(t, uint16(0x1000), a.addr)
}

func TestAddrZeroPageIndexedWraps(t *testing.T) {
	ram := bus.NewFlatRAM()
	ram.Load(0x0000, []byte{0xB5, 0xFF}) // LDA $FF,X style operand byte
	c := &CPU{PC: 0x0000, X: 2}

	_, a, ok := addrZeroPageX(c, ram)
	require.True(t, ok)
	assert.Equal(t, uint16(0x0001), a.addr) // (0xFF + 2) mod 256 == 1
}

func TestAddrIndirectXWrapsWithinZeroPage(t *testing.T) {
	ram := bus.NewFlatRAM()
	ram.Load(0x0010, []byte{0xA1, 0xFE})
	ram.Write(0xFF, 0x00) // base wraps to 0xFF
	ram.Write(0x00, 0x80) // base+1 wraps within zero page to 0x00
	c := &CPU{PC: 0x0010, X: 1}

	_, a, ok := addrIndirectX(c, ram)
	require.True(t, ok)
	assert.Equal(t, uint16(0x8000), a.addr)
}

func TestAddrIndirectYAddsAfterDereference(t *testing.T) {
	ram := bus.NewFlatRAM()
	ram.Load(0x0000, []byte{0xB1, 0x10})
	ram.Write(0x10, 0x00)
	ram.Write(0x11, 0x20)
	c := &CPU{PC: 0x0000, Y: 0x05}

	_, a, ok := addrIndirectY(c, ram)
	require.True(t, ok)
	assert.Equal(t, uint16(0x2005), a.addr)
}

func TestAddrRelativeReturnsRawDisplacement(t *testing.T) {
	ram := bus.NewFlatRAM()
	ram.Load(0x0000, []byte{0x90, 0xFE}) // -2
	c := &CPU{PC: 0x0000}

	_, a, ok := addrRelative(c, ram)
	require.True(t, ok)
	assert.Equal(t, uint8(0xFE), a.value)
}
