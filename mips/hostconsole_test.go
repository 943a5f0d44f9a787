package mips

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConsolePrintInt(t *testing.T) {
	vm := newTestVM(t, EncodeR(0, 0, 0, 0, SYSCALL))
	var out bytes.Buffer
	vm.SetSyscallHandler(NewConsoleHandler(strings.NewReader(""), &out))
	vm.SetReg(RegV0, SysPrintInt)
	vm.SetReg(RegA0, negU32(-42))

	require.NoError(t, vm.Step())
	assert.Equal(t, "-42", out.String())
}

func TestConsolePrintString(t *testing.T) {
	image := make([]byte, 0x110)
	copy(image, Assemble(EncodeR(0, 0, 0, 0, SYSCALL)))
	copy(image[0x100:], append([]byte("hello"), 0))

	vm := New(0)
	require.NoError(t, vm.LoadBytes(image))
	var out bytes.Buffer
	vm.SetSyscallHandler(NewConsoleHandler(strings.NewReader(""), &out))
	vm.SetReg(RegV0, SysPrintString)
	vm.SetReg(RegA0, 0x100)

	require.NoError(t, vm.Step())
	assert.Equal(t, "hello", out.String())
}

func TestConsolePrintStringUnterminated(t *testing.T) {
	image := make([]byte, 8)
	copy(image, Assemble(EncodeR(0, 0, 0, 0, SYSCALL)))
	for i := 4; i < 8; i++ {
		image[i] = 'x'
	}

	vm := New(0)
	require.NoError(t, vm.LoadBytes(image))
	vm.SetSyscallHandler(NewConsoleHandler(strings.NewReader(""), &bytes.Buffer{}))
	vm.SetReg(RegV0, SysPrintString)
	vm.SetReg(RegA0, 4)

	err := vm.Step()
	var fault *MemoryFault
	require.ErrorAs(t, err, &fault)
}

func TestConsoleReadInt(t *testing.T) {
	vm := newTestVM(t, EncodeR(0, 0, 0, 0, SYSCALL))
	vm.SetSyscallHandler(NewConsoleHandler(strings.NewReader("-7\n"), &bytes.Buffer{}))
	vm.SetReg(RegV0, SysReadInt)

	require.NoError(t, vm.Step())
	assert.Equal(t, negU32(-7), vm.Reg(RegV0))
}

func TestConsoleExitHalts(t *testing.T) {
	vm := newTestVM(t,
		EncodeR(0, 0, 0, 0, SYSCALL),
		EncodeI(ADDIU, 0, 1, 1),
	)
	vm.SetSyscallHandler(NewConsoleHandler(strings.NewReader(""), &bytes.Buffer{}))
	vm.SetReg(RegV0, SysExit)

	require.NoError(t, vm.Execute())
	assert.Equal(t, HALTED, vm.State())
	assert.Equal(t, uint64(1), vm.Steps())
	assert.Equal(t, uint32(0), vm.Reg(1), "instruction after exit must not run")
}

func TestConsolePrintChar(t *testing.T) {
	vm := newTestVM(t, EncodeR(0, 0, 0, 0, SYSCALL))
	var out bytes.Buffer
	vm.SetSyscallHandler(NewConsoleHandler(strings.NewReader(""), &out))
	vm.SetReg(RegV0, SysPrintChar)
	vm.SetReg(RegA0, 'A')

	require.NoError(t, vm.Step())
	assert.Equal(t, "A", out.String())
}

func TestConsoleUnknownService(t *testing.T) {
	vm := newTestVM(t, EncodeR(0, 0, 0, 0, SYSCALL))
	vm.SetSyscallHandler(NewConsoleHandler(strings.NewReader(""), &bytes.Buffer{}))
	vm.SetReg(RegV0, 99)

	assert.Error(t, vm.Step())
	assert.Equal(t, FAULTED, vm.State())
}
