package cpu

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFlagGetSet(t *testing.T) {
	var p uint8
	p = FlagSet(p, Carry, true)
	assert.Equal(t, uint8(0x01), p)
	assert.True(t, FlagGet(p, Carry))
	assert.False(t, FlagGet(p, Zero))

	p = FlagSet(p, Negative, true)
	assert.Equal(t, uint8(0x81), p)

	p = FlagSet(p, Carry, false)
	assert.Equal(t, uint8(0x80), p)
}

func TestSetZN(t *testing.T) {
	tests := []struct {
		name string
		v    uint8
		want uint8
	}{
		{"zero", 0x00, uint8(Zero)},
		{"negative", 0x80, uint8(Negative)},
		{"positive nonzero", 0x01, 0},
		{"max negative", 0xFF, uint8(Negative)},
	}
	mask := FlagRaw(Zero) | FlagRaw(Negative)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var p uint8 = 0xFF &^ mask // start with both clear
			p = setZN(p, tt.v)
			assert.Equal(t, tt.want, p&mask)
		})
	}
}
