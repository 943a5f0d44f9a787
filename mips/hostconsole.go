package mips

import (
	"bufio"
	"fmt"
	"io"

	"github.com/NM711/MIPS-Emulator/log"
)

// Console service codes, read from $v0 at syscall time. The set follows the
// classic SPIM console.
const (
	SysPrintInt    = 1
	SysPrintString = 4
	SysReadInt     = 5
	SysExit        = 10
	SysPrintChar   = 11
)

// ConsoleHandler implements the SPIM-flavored console services on top of an
// arbitrary reader/writer pair. It is a collaborator of the core, not part
// of it: the CLI installs one over stdin/stdout, tests install one over
// buffers.
type ConsoleHandler struct {
	in  *bufio.Reader
	out io.Writer
}

func NewConsoleHandler(in io.Reader, out io.Writer) *ConsoleHandler {
	return &ConsoleHandler{
		in:  bufio.NewReader(in),
		out: out,
	}
}

func (h *ConsoleHandler) Invoke(vm *VM) error {
	service := vm.Reg(RegV0)
	log.Trace(log.HostModule, "syscall", "service", service, "pc", vm.PC())

	switch service {
	case SysPrintInt:
		fmt.Fprintf(h.out, "%d", int32(vm.Reg(RegA0)))
	case SysPrintString:
		s, err := h.readString(vm, vm.Reg(RegA0))
		if err != nil {
			return err
		}
		io.WriteString(h.out, s)
	case SysReadInt:
		var n int32
		if _, err := fmt.Fscan(h.in, &n); err != nil {
			return fmt.Errorf("read int: %w", err)
		}
		vm.SetReg(RegV0, uint32(n))
	case SysExit:
		vm.Halt()
	case SysPrintChar:
		fmt.Fprintf(h.out, "%c", rune(vm.Reg(RegA0)))
	default:
		return fmt.Errorf("unknown console service %d", service)
	}
	return nil
}

// readString collects the NUL-terminated string starting at addr.
func (h *ConsoleHandler) readString(vm *VM, addr uint32) (string, error) {
	var buf []byte
	for {
		b, err := vm.Mem().ReadByte(addr)
		if err != nil {
			return "", err
		}
		if b == 0 {
			return string(buf), nil
		}
		buf = append(buf, b)
		addr++
	}
}
