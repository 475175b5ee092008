package fixture

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleJSON = `[
  {
    "name": "a9 00 (LDA #$00)",
    "initial": {"pc": 4096, "s": 253, "a": 0, "x": 0, "y": 0, "p": 36,
      "ram": [[4096, 169], [4097, 0]]},
    "final": {"pc": 4098, "s": 253, "a": 0, "x": 0, "y": 0, "p": 38,
      "ram": [[4096, 169], [4097, 0]]},
    "cycles": [[4096, 169, "read"], [4097, 0, "read"]]
  }
]`

func TestParseCases(t *testing.T) {
	cases, err := ParseCases([]byte(sampleJSON))
	require.NoError(t, err)
	require.Len(t, cases, 1)

	c := cases[0]
	assert.Equal(t, "a9 00 (LDA #$00)", c.Name)
	assert.Equal(t, uint16(4096), c.Initial.PC)
	assert.Equal(t, uint8(36), c.Initial.P)
	assert.Len(t, c.Initial.RAM, 2)
	assert.Len(t, c.Cycles, 2)
	assert.Equal(t, "read", c.Cycles[0].Kind)
}

func TestRunLDAImmediatePasses(t *testing.T) {
	cases, err := ParseCases([]byte(sampleJSON))
	require.NoError(t, err)

	res := Run(cases[0])
	assert.True(t, res.Pass, Explain(res))
	assert.Equal(t, 2, res.WantCycles)
}

func TestRunDetectsRegisterMismatch(t *testing.T) {
	cases, err := ParseCases([]byte(sampleJSON))
	require.NoError(t, err)

	c := cases[0]
	c.Final.A = 0x7F // wrong on purpose

	res := Run(c)
	assert.False(t, res.Pass)
	assert.NotEmpty(t, res.CPUDiff)
}

func TestRunDetectsRAMMismatch(t *testing.T) {
	cases, err := ParseCases([]byte(sampleJSON))
	require.NoError(t, err)

	c := cases[0]
	c.Final.RAM = append(c.Final.RAM, [2]uint16{0x5000, 0xAA})

	res := Run(c)
	assert.False(t, res.Pass)
	assert.NotEmpty(t, res.RAMDiff)
}

func TestSparseRAMAbsentOutsideListedAddresses(t *testing.T) {
	ram := NewSparseRAM([][2]uint16{{0x10, 0x42}})
	v, ok := ram.Read(0x10)
	require.True(t, ok)
	assert.Equal(t, uint8(0x42), v)

	_, ok = ram.Read(0x11)
	assert.False(t, ok)
}

func TestSparseRAMWriteAppendsOrOverwrites(t *testing.T) {
	ram := NewSparseRAM([][2]uint16{{0x10, 0x42}})
	assert.True(t, ram.Write(0x10, 0x99))
	assert.True(t, ram.Write(0x20, 0x01))

	v, ok := ram.Read(0x10)
	require.True(t, ok)
	assert.Equal(t, uint8(0x99), v)

	v, ok = ram.Read(0x20)
	require.True(t, ok)
	assert.Equal(t, uint8(0x01), v)

	assert.Len(t, ram.Entries(), 2)
}

func TestDiffRAMIgnoresOrder(t *testing.T) {
	got := [][2]uint16{{0x20, 0x02}, {0x10, 0x01}}
	want := [][2]uint16{{0x10, 0x01}, {0x20, 0x02}}
	assert.Empty(t, diffRAM(got, want))
}
