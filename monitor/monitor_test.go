package monitor

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/NM711/MIPS-Emulator/mips"
)

func newTestMonitor(t *testing.T, words ...uint32) (*Monitor, *bytes.Buffer) {
	t.Helper()
	vm := mips.New(0)
	require.NoError(t, vm.LoadBytes(mips.Assemble(words...)))
	var out bytes.Buffer
	return New(vm, &out), &out
}

func TestDispatchStep(t *testing.T) {
	m, out := newTestMonitor(t,
		mips.EncodeI(mips.ADDIU, 0, 8, 5),
		mips.EncodeI(mips.ADDIU, 8, 8, 1),
	)

	quit, err := m.Dispatch("step")
	require.NoError(t, err)
	assert.False(t, quit)
	assert.Equal(t, uint32(5), m.vm.Reg(8))
	assert.Contains(t, out.String(), "addiu $t0, $zero, 5")
	assert.Contains(t, out.String(), "state=running")

	_, err = m.Dispatch("s 1")
	require.NoError(t, err)
	assert.Equal(t, uint32(6), m.vm.Reg(8))
}

func TestDispatchRegs(t *testing.T) {
	m, out := newTestMonitor(t, mips.EncodeI(mips.ADDIU, 0, 8, 5))
	_, err := m.Dispatch("step")
	require.NoError(t, err)
	out.Reset()

	_, err = m.Dispatch("regs")
	require.NoError(t, err)
	assert.Contains(t, out.String(), "$t0   00000005")
	assert.Contains(t, out.String(), "pc    00000004")
}

func TestDispatchMem(t *testing.T) {
	m, out := newTestMonitor(t, 0x11223344, 0x55667788)
	_, err := m.Dispatch("mem 0 8")
	require.NoError(t, err)
	assert.Contains(t, out.String(), "11 22 33 44 55 66 77 88")

	_, err = m.Dispatch("mem 0x100")
	assert.Error(t, err)
}

func TestDispatchDisasm(t *testing.T) {
	m, out := newTestMonitor(t,
		mips.EncodeI(mips.ADDIU, 0, 8, 5),
		mips.EncodeR(0, 0, 0, 0, mips.SYSCALL),
	)
	_, err := m.Dispatch("disasm 0 2")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "addiu $t0, $zero, 5")
	assert.Contains(t, lines[1], "syscall")
}

func TestDispatchBreakAndContinue(t *testing.T) {
	jr31 := mips.EncodeR(31, 0, 0, 0, mips.JR)
	m, out := newTestMonitor(t,
		mips.EncodeJ(mips.JAL, 0x10>>2),
		jr31, jr31, jr31,
		jr31, // 0x10
	)

	_, err := m.Dispatch("break 0x10")
	require.NoError(t, err)
	assert.Contains(t, out.String(), "set breakpoint at 00000010")

	out.Reset()
	_, err = m.Dispatch("continue")
	require.NoError(t, err)
	assert.Contains(t, out.String(), "breakpoint at 00000010")
	assert.Equal(t, uint32(0x10), m.vm.PC())

	// toggling clears it
	out.Reset()
	_, err = m.Dispatch("break 0x10")
	require.NoError(t, err)
	assert.Contains(t, out.String(), "cleared breakpoint at 00000010")
}

func TestDispatchReset(t *testing.T) {
	m, _ := newTestMonitor(t, mips.EncodeI(mips.ADDIU, 0, 8, 5))
	_, err := m.Dispatch("step")
	require.NoError(t, err)
	require.Equal(t, uint32(5), m.vm.Reg(8))

	_, err = m.Dispatch("reset")
	require.NoError(t, err)
	assert.Equal(t, uint32(0), m.vm.Reg(8))
	assert.Equal(t, uint32(0), m.vm.PC())
}

func TestDispatchQuitAndUnknown(t *testing.T) {
	m, _ := newTestMonitor(t, 0)

	quit, err := m.Dispatch("quit")
	require.NoError(t, err)
	assert.True(t, quit)

	quit, err = m.Dispatch("frobnicate")
	assert.Error(t, err)
	assert.False(t, quit)

	quit, err = m.Dispatch("   ")
	require.NoError(t, err)
	assert.False(t, quit)
}
