// Package monitor is an interactive machine-word debugger for a single VM:
// single-step, inspect registers and memory, disassemble, and run to a
// breakpoint.
package monitor

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/chzyer/readline"

	"github.com/NM711/MIPS-Emulator/log"
	"github.com/NM711/MIPS-Emulator/mips"
)

type Monitor struct {
	vm          *mips.VM
	out         io.Writer
	entry       uint32
	breakpoints map[uint32]bool
}

func New(vm *mips.VM, out io.Writer) *Monitor {
	return &Monitor{
		vm:          vm,
		out:         out,
		entry:       vm.PC(),
		breakpoints: make(map[uint32]bool),
	}
}

// Run reads commands until quit or EOF.
func (m *Monitor) Run() error {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:      "mips> ",
		HistoryFile: "/tmp/mipsvm_monitor_history.txt",
	})
	if err != nil {
		return fmt.Errorf("monitor: %w", err)
	}
	defer rl.Close()

	fmt.Fprintln(m.out, "type 'help' for commands")
	for {
		line, err := rl.Readline()
		if err != nil { // io.EOF or readline.ErrInterrupt
			return nil
		}
		quit, err := m.Dispatch(line)
		if err != nil {
			fmt.Fprintf(m.out, "error: %v\n", err)
		}
		if quit {
			return nil
		}
	}
}

// Dispatch executes a single command line. It is pure with respect to the
// terminal: all output goes through the monitor's writer.
func (m *Monitor) Dispatch(line string) (quit bool, err error) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return false, nil
	}
	cmd, args := fields[0], fields[1:]
	log.Trace(log.MonitorModule, "command", "cmd", cmd, "args", args)

	switch cmd {
	case "help", "h":
		m.printHelp()
	case "step", "s":
		return false, m.step(args)
	case "regs", "r":
		m.printRegisters()
	case "mem", "x":
		return false, m.dumpMemory(args)
	case "disasm", "d":
		return false, m.disassemble(args)
	case "break", "b":
		return false, m.setBreakpoint(args)
	case "continue", "c":
		return false, m.cont()
	case "reset":
		m.vm.Reset(m.entry)
		fmt.Fprintln(m.out, "machine reset")
	case "quit", "q", "exit":
		return true, nil
	default:
		return false, fmt.Errorf("unknown command %q", cmd)
	}
	return false, nil
}

func (m *Monitor) printHelp() {
	fmt.Fprint(m.out, `commands:
  step [n]          execute n instructions (default 1)
  regs              print registers, HI/LO, PC
  mem <addr> [n]    hex dump n bytes (default 64)
  disasm [addr] [n] disassemble n instructions (default 8, at PC)
  break <addr>      toggle a breakpoint
  continue          run until breakpoint, halt or fault
  reset             reset registers and PC to the entry point
  quit              leave the monitor
`)
}

func (m *Monitor) step(args []string) error {
	n := uint64(1)
	if len(args) > 0 {
		v, err := strconv.ParseUint(args[0], 0, 64)
		if err != nil {
			return fmt.Errorf("step count: %w", err)
		}
		n = v
	}
	for i := uint64(0); i < n; i++ {
		if err := m.stepOnce(); err != nil {
			return err
		}
		if m.vm.State() != mips.RUNNING {
			break
		}
	}
	m.printStatus()
	return nil
}

func (m *Monitor) stepOnce() error {
	pc := m.vm.PC()
	word, err := m.vm.Mem().ReadWord(pc)
	if err == nil {
		fmt.Fprintf(m.out, "%08x:  %08x  %s\n", pc, word, mips.Disassemble(word, pc))
	}
	return m.vm.Step()
}

func (m *Monitor) cont() error {
	for m.vm.State() == mips.RUNNING {
		if err := m.vm.Step(); err != nil {
			return err
		}
		if m.breakpoints[m.vm.PC()] {
			fmt.Fprintf(m.out, "breakpoint at %08x\n", m.vm.PC())
			break
		}
	}
	m.printStatus()
	return nil
}

func (m *Monitor) setBreakpoint(args []string) error {
	if len(args) == 0 {
		for addr := range m.breakpoints {
			fmt.Fprintf(m.out, "breakpoint %08x\n", addr)
		}
		return nil
	}
	addr, err := parseAddr(args[0])
	if err != nil {
		return err
	}
	if m.breakpoints[addr] {
		delete(m.breakpoints, addr)
		fmt.Fprintf(m.out, "cleared breakpoint at %08x\n", addr)
	} else {
		m.breakpoints[addr] = true
		fmt.Fprintf(m.out, "set breakpoint at %08x\n", addr)
	}
	return nil
}

func (m *Monitor) printStatus() {
	fmt.Fprintf(m.out, "state=%s pc=%08x steps=%d\n",
		mips.StateName(m.vm.State()), m.vm.PC(), m.vm.Steps())
	if err := m.vm.Err(); err != nil {
		fmt.Fprintf(m.out, "fault: %v\n", err)
	}
}

func (m *Monitor) printRegisters() {
	for i := uint32(0); i < mips.NumRegisters; i++ {
		fmt.Fprintf(m.out, "%-5s %08x", mips.RegisterName(i), m.vm.Reg(i))
		if i%4 == 3 {
			fmt.Fprintln(m.out)
		} else {
			fmt.Fprint(m.out, "  ")
		}
	}
	fmt.Fprintf(m.out, "hi    %08x  lo    %08x  pc    %08x\n",
		m.vm.HI(), m.vm.LO(), m.vm.PC())
}

func (m *Monitor) dumpMemory(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("mem: address required")
	}
	addr, err := parseAddr(args[0])
	if err != nil {
		return err
	}
	n := uint32(64)
	if len(args) > 1 {
		v, err := strconv.ParseUint(args[1], 0, 32)
		if err != nil {
			return fmt.Errorf("mem length: %w", err)
		}
		n = uint32(v)
	}
	data, err := m.vm.Mem().ReadRange(addr, n)
	if err != nil {
		return err
	}
	for off := 0; off < len(data); off += 16 {
		end := off + 16
		if end > len(data) {
			end = len(data)
		}
		fmt.Fprintf(m.out, "%08x: ", addr+uint32(off))
		for _, b := range data[off:end] {
			fmt.Fprintf(m.out, "%02x ", b)
		}
		fmt.Fprintln(m.out)
	}
	return nil
}

func (m *Monitor) disassemble(args []string) error {
	addr := m.vm.PC()
	n := 8
	if len(args) > 0 {
		v, err := parseAddr(args[0])
		if err != nil {
			return err
		}
		addr = v
	}
	if len(args) > 1 {
		v, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("disasm count: %w", err)
		}
		n = v
	}
	lines, err := mips.DisassembleRange(m.vm.Mem(), addr, n)
	for _, l := range lines {
		fmt.Fprintln(m.out, l)
	}
	return err
}

func parseAddr(s string) (uint32, error) {
	v, err := strconv.ParseUint(s, 0, 32)
	if err != nil {
		return 0, fmt.Errorf("address %q: %w", s, err)
	}
	return uint32(v), nil
}
