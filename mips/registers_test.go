package mips

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterZeroIsHardwired(t *testing.T) {
	var g Registers
	require.NoError(t, g.Write(0, 0xFFFFFFFF))
	v, err := g.Read(0)
	require.NoError(t, err)
	assert.Equal(t, uint32(0), v)
}

func TestRegisterReadWrite(t *testing.T) {
	var g Registers
	require.NoError(t, g.Write(31, 0x1234))
	v, err := g.Read(31)
	require.NoError(t, err)
	assert.Equal(t, uint32(0x1234), v)
}

func TestRegisterIndexGuard(t *testing.T) {
	var g Registers
	var fault *RegisterIndexFault

	_, err := g.Read(32)
	require.ErrorAs(t, err, &fault)
	assert.Equal(t, 32, fault.Index)

	err = g.Write(40, 1)
	require.ErrorAs(t, err, &fault)
}

func TestRegisterNames(t *testing.T) {
	assert.Equal(t, "$zero", RegisterName(0))
	assert.Equal(t, "$t0", RegisterName(8))
	assert.Equal(t, "$sp", RegisterName(29))
	assert.Equal(t, "$ra", RegisterName(31))
	assert.Equal(t, "$?", RegisterName(32))
}
