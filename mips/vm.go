package mips

import (
	"github.com/NM711/MIPS-Emulator/log"
)

// Machine states. A VM is RUNNING until the host requests a halt or a fatal
// fault is recorded; there is no architectural halt instruction.
const (
	RUNNING uint8 = iota
	HALTED
	FAULTED
)

// StateName returns a printable name for a machine state.
func StateName(state uint8) string {
	switch state {
	case RUNNING:
		return "running"
	case HALTED:
		return "halted"
	case FAULTED:
		return "faulted"
	default:
		return "unknown"
	}
}

// VM holds the architectural state of one MIPS I core: 32 general-purpose
// registers, HI/LO, the program counter and a flat big-endian memory. A VM
// is single-threaded and exclusively owns its memory and register file;
// independent VMs share nothing.
type VM struct {
	reg   Registers
	hi    uint32
	lo    uint32
	pc    uint32
	mem   *Memory
	state uint8
	fault error
	steps uint64

	handler SyscallHandler
	tracer  *Tracer
}

// New returns a VM with zeroed registers and HI/LO, PC set to entryPC and
// an empty memory.
func New(entryPC uint32) *VM {
	return &VM{
		pc:      entryPC,
		mem:     NewMemory(),
		handler: NoopSyscallHandler{},
	}
}

// Reset rewinds registers, HI/LO and machine state, and sets PC to entryPC.
// Memory contents are kept; reload the image to restore them.
func (vm *VM) Reset(entryPC uint32) {
	vm.reg.Reset()
	vm.hi = 0
	vm.lo = 0
	vm.pc = entryPC
	vm.state = RUNNING
	vm.fault = nil
	vm.steps = 0
}

// Reg returns the value of register i. Register indices decoded from
// instructions are 5 bits wide, so i is expected to be below NumRegisters;
// out-of-range indices read as zero.
func (vm *VM) Reg(i uint32) uint32 {
	v, _ := vm.reg.Read(i)
	return v
}

// SetReg writes register i. Writes to register 0 are discarded.
func (vm *VM) SetReg(i uint32, v uint32) error {
	return vm.reg.Write(i, v)
}

func (vm *VM) PC() uint32      { return vm.pc }
func (vm *VM) SetPC(pc uint32) { vm.pc = pc }
func (vm *VM) HI() uint32      { return vm.hi }
func (vm *VM) SetHI(v uint32)  { vm.hi = v }
func (vm *VM) LO() uint32      { return vm.lo }
func (vm *VM) SetLO(v uint32)  { vm.lo = v }
func (vm *VM) Mem() *Memory    { return vm.mem }
func (vm *VM) State() uint8    { return vm.state }
func (vm *VM) Steps() uint64   { return vm.steps }

// Err returns the fatal error that moved the VM to FAULTED, or nil.
func (vm *VM) Err() error {
	return vm.fault
}

// Halt moves the VM to HALTED. Meant for syscall handlers and embedders;
// the core never halts on its own.
func (vm *VM) Halt() {
	if vm.state == RUNNING {
		vm.state = HALTED
		log.Debug(log.ExecModule, "halt requested", "pc", vm.pc, "steps", vm.steps)
	}
}

// SetSyscallHandler installs the handler invoked by the syscall
// instruction. A nil handler restores the default no-op.
func (vm *VM) SetSyscallHandler(h SyscallHandler) {
	if h == nil {
		h = NoopSyscallHandler{}
	}
	vm.handler = h
}

// SetTracer installs a per-step tracer, or removes it when t is nil.
func (vm *VM) SetTracer(t *Tracer) {
	vm.tracer = t
}

func (vm *VM) fail(err error) error {
	vm.state = FAULTED
	vm.fault = err
	log.Error(log.ExecModule, "execution fault", "pc", vm.pc, "steps", vm.steps, "err", err)
	return err
}

// Dispatch tables. The primary table is keyed by opcode; SPECIAL re-keys on
// the funct field. A nil entry is a decode fault.
var opcodeHandlers = [64]func(*VM, uint32) error{
	J:     (*VM).opJ,
	JAL:   (*VM).opJAL,
	BEQ:   (*VM).opBEQ,
	BNE:   (*VM).opBNE,
	BLEZ:  (*VM).opBLEZ,
	BGTZ:  (*VM).opBGTZ,
	ADDI:  (*VM).opADDI,
	ADDIU: (*VM).opADDIU,
	SLTI:  (*VM).opSLTI,
	SLTIU: (*VM).opSLTIU,
	ANDI:  (*VM).opANDI,
	ORI:   (*VM).opORI,
	XORI:  (*VM).opXORI,
	LUI:   (*VM).opLUI,
	LB:    (*VM).opLB,
	LH:    (*VM).opLH,
	LW:    (*VM).opLW,
	LBU:   (*VM).opLBU,
	LHU:   (*VM).opLHU,
	SB:    (*VM).opSB,
	SH:    (*VM).opSH,
	SW:    (*VM).opSW,
}

var functHandlers = [64]func(*VM, uint32) error{
	SLL:     (*VM).fnSLL,
	SRL:     (*VM).fnSRL,
	SRA:     (*VM).fnSRA,
	SLLV:    (*VM).fnSLLV,
	SRLV:    (*VM).fnSRLV,
	SRAV:    (*VM).fnSRAV,
	JR:      (*VM).fnJR,
	JALR:    (*VM).fnJALR,
	SYSCALL: (*VM).fnSYSCALL,
	MFHI:    (*VM).fnMFHI,
	MTHI:    (*VM).fnMTHI,
	MFLO:    (*VM).fnMFLO,
	MTLO:    (*VM).fnMTLO,
	MULT:    (*VM).fnMULT,
	MULTU:   (*VM).fnMULTU,
	DIV:     (*VM).fnDIV,
	DIVU:    (*VM).fnDIVU,
	ADD:     (*VM).fnADD,
	ADDU:    (*VM).fnADDU,
	SUB:     (*VM).fnSUB,
	SUBU:    (*VM).fnSUBU,
	AND:     (*VM).fnAND,
	OR:      (*VM).fnOR,
	XOR:     (*VM).fnXOR,
	NOR:     (*VM).fnNOR,
	SLTU:    (*VM).fnSLTU,
	SLT:     (*VM).fnSLT,
}

// Step fetches, decodes and executes a single instruction. The instruction
// performs its own PC update; there is no implicit post-increment and no
// delay slots. A returned error is fatal: the VM moves to FAULTED and
// further Step calls return ErrNotRunning.
func (vm *VM) Step() error {
	if vm.state != RUNNING {
		return ErrNotRunning
	}

	pc := vm.pc
	word, err := vm.mem.ReadWord(pc)
	if err != nil {
		return vm.fail(err)
	}

	handler := opcodeHandlers[Op(word)]
	if Op(word) == SPECIAL {
		handler = functHandlers[Funct(word)]
	}
	if handler == nil {
		return vm.fail(&DecodeError{PC: pc, Word: word})
	}

	if err := handler(vm, word); err != nil {
		return vm.fail(err)
	}
	vm.steps++

	log.Trace(log.ExecModule, "step", "pc", pc, "word", word, "next", vm.pc)
	if vm.tracer != nil {
		vm.tracer.Record(StepRecord{
			Step: vm.steps,
			PC:   pc,
			Word: word,
			Asm:  Disassemble(word, pc),
		})
	}
	return nil
}

// Run executes exactly n instructions, or fewer if the VM stops first. A
// halt is a normal return; a fault is returned as the error.
func (vm *VM) Run(n uint64) error {
	for i := uint64(0); i < n; i++ {
		if vm.state != RUNNING {
			break
		}
		if err := vm.Step(); err != nil {
			return err
		}
	}
	return nil
}

// Execute runs until the VM halts or faults.
func (vm *VM) Execute() error {
	for vm.state == RUNNING {
		if err := vm.Step(); err != nil {
			return err
		}
	}
	return nil
}

// branch applies the common PC discipline of the conditional branches:
// taken branches land at PC + 4 + (sign-extended immediate << 2), measured
// from the branch instruction itself; untaken branches fall through.
func (vm *VM) branch(word uint32, taken bool) {
	if taken {
		vm.pc += InstructionSize + (SignExtend16(Imm16(word)) << 2)
	} else {
		vm.pc += InstructionSize
	}
}
