package mips

import (
	"math"

	"github.com/NM711/MIPS-Emulator/log"
)

// R-type handlers, dispatched on the funct field under opcode SPECIAL.

func (vm *VM) fnSLL(word uint32) error {
	rt, _ := vm.reg.Read(Rt(word))
	vm.reg.Write(Rd(word), rt<<Shamt(word))
	vm.pc += InstructionSize
	return nil
}

func (vm *VM) fnSRL(word uint32) error {
	rt, _ := vm.reg.Read(Rt(word))
	vm.reg.Write(Rd(word), rt>>Shamt(word))
	vm.pc += InstructionSize
	return nil
}

func (vm *VM) fnSRA(word uint32) error {
	rt, _ := vm.reg.Read(Rt(word))
	vm.reg.Write(Rd(word), uint32(int32(rt)>>Shamt(word)))
	vm.pc += InstructionSize
	return nil
}

// The variable shifts use the low 5 bits of R[rs] as the amount.

func (vm *VM) fnSLLV(word uint32) error {
	rs, _ := vm.reg.Read(Rs(word))
	rt, _ := vm.reg.Read(Rt(word))
	vm.reg.Write(Rd(word), rt<<(rs&0x1F))
	vm.pc += InstructionSize
	return nil
}

func (vm *VM) fnSRLV(word uint32) error {
	rs, _ := vm.reg.Read(Rs(word))
	rt, _ := vm.reg.Read(Rt(word))
	vm.reg.Write(Rd(word), rt>>(rs&0x1F))
	vm.pc += InstructionSize
	return nil
}

func (vm *VM) fnSRAV(word uint32) error {
	rs, _ := vm.reg.Read(Rs(word))
	rt, _ := vm.reg.Read(Rt(word))
	vm.reg.Write(Rd(word), uint32(int32(rt)>>(rs&0x1F)))
	vm.pc += InstructionSize
	return nil
}

func (vm *VM) fnJR(word uint32) error {
	rs, _ := vm.reg.Read(Rs(word))
	vm.pc = rs
	return nil
}

// fnJALR reads the target before writing the link so rd == rs behaves like
// hardware.
func (vm *VM) fnJALR(word uint32) error {
	target, _ := vm.reg.Read(Rs(word))
	vm.reg.Write(Rd(word), vm.pc+InstructionSize)
	vm.pc = target
	return nil
}

// fnADD wraps on overflow; this core never raises the integer overflow
// exception.
func (vm *VM) fnADD(word uint32) error {
	rs, _ := vm.reg.Read(Rs(word))
	rt, _ := vm.reg.Read(Rt(word))
	vm.reg.Write(Rd(word), rs+rt)
	vm.pc += InstructionSize
	return nil
}

func (vm *VM) fnADDU(word uint32) error {
	rs, _ := vm.reg.Read(Rs(word))
	rt, _ := vm.reg.Read(Rt(word))
	vm.reg.Write(Rd(word), rs+rt)
	vm.pc += InstructionSize
	return nil
}

func (vm *VM) fnSUB(word uint32) error {
	rs, _ := vm.reg.Read(Rs(word))
	rt, _ := vm.reg.Read(Rt(word))
	vm.reg.Write(Rd(word), rs-rt)
	vm.pc += InstructionSize
	return nil
}

func (vm *VM) fnSUBU(word uint32) error {
	rs, _ := vm.reg.Read(Rs(word))
	rt, _ := vm.reg.Read(Rt(word))
	vm.reg.Write(Rd(word), rs-rt)
	vm.pc += InstructionSize
	return nil
}

func (vm *VM) fnAND(word uint32) error {
	rs, _ := vm.reg.Read(Rs(word))
	rt, _ := vm.reg.Read(Rt(word))
	vm.reg.Write(Rd(word), rs&rt)
	vm.pc += InstructionSize
	return nil
}

func (vm *VM) fnOR(word uint32) error {
	rs, _ := vm.reg.Read(Rs(word))
	rt, _ := vm.reg.Read(Rt(word))
	vm.reg.Write(Rd(word), rs|rt)
	vm.pc += InstructionSize
	return nil
}

func (vm *VM) fnXOR(word uint32) error {
	rs, _ := vm.reg.Read(Rs(word))
	rt, _ := vm.reg.Read(Rt(word))
	vm.reg.Write(Rd(word), rs^rt)
	vm.pc += InstructionSize
	return nil
}

func (vm *VM) fnNOR(word uint32) error {
	rs, _ := vm.reg.Read(Rs(word))
	rt, _ := vm.reg.Read(Rt(word))
	vm.reg.Write(Rd(word), ^(rs | rt))
	vm.pc += InstructionSize
	return nil
}

func (vm *VM) fnSLT(word uint32) error {
	rs, _ := vm.reg.Read(Rs(word))
	rt, _ := vm.reg.Read(Rt(word))
	var v uint32
	if int32(rs) < int32(rt) {
		v = 1
	}
	vm.reg.Write(Rd(word), v)
	vm.pc += InstructionSize
	return nil
}

func (vm *VM) fnSLTU(word uint32) error {
	rs, _ := vm.reg.Read(Rs(word))
	rt, _ := vm.reg.Read(Rt(word))
	var v uint32
	if rs < rt {
		v = 1
	}
	vm.reg.Write(Rd(word), v)
	vm.pc += InstructionSize
	return nil
}

// fnMULT widens both operands to 64 bits before multiplying; HI/LO receive
// the two halves of the full signed product.
func (vm *VM) fnMULT(word uint32) error {
	rs, _ := vm.reg.Read(Rs(word))
	rt, _ := vm.reg.Read(Rt(word))
	product := int64(int32(rs)) * int64(int32(rt))
	vm.hi = uint32(uint64(product) >> 32)
	vm.lo = uint32(uint64(product))
	vm.pc += InstructionSize
	return nil
}

func (vm *VM) fnMULTU(word uint32) error {
	rs, _ := vm.reg.Read(Rs(word))
	rt, _ := vm.reg.Read(Rt(word))
	product := uint64(rs) * uint64(rt)
	vm.hi = uint32(product >> 32)
	vm.lo = uint32(product)
	vm.pc += InstructionSize
	return nil
}

// fnDIV leaves HI/LO untouched on a zero divisor. MinInt32 / -1 is the one
// quotient that does not fit in 32 bits; hardware truncates it back to
// MinInt32 with remainder 0, and the native expression would panic.
func (vm *VM) fnDIV(word uint32) error {
	rs, _ := vm.reg.Read(Rs(word))
	rt, _ := vm.reg.Read(Rt(word))
	switch {
	case rt == 0:
		log.Debug(log.ExecModule, "div by zero", "pc", vm.pc)
	case int32(rs) == math.MinInt32 && int32(rt) == -1:
		vm.lo = rs
		vm.hi = 0
	default:
		vm.lo = uint32(int32(rs) / int32(rt))
		vm.hi = uint32(int32(rs) % int32(rt))
	}
	vm.pc += InstructionSize
	return nil
}

func (vm *VM) fnDIVU(word uint32) error {
	rs, _ := vm.reg.Read(Rs(word))
	rt, _ := vm.reg.Read(Rt(word))
	if rt == 0 {
		log.Debug(log.ExecModule, "divu by zero", "pc", vm.pc)
	} else {
		vm.lo = rs / rt
		vm.hi = rs % rt
	}
	vm.pc += InstructionSize
	return nil
}

func (vm *VM) fnMFHI(word uint32) error {
	vm.reg.Write(Rd(word), vm.hi)
	vm.pc += InstructionSize
	return nil
}

func (vm *VM) fnMTHI(word uint32) error {
	rs, _ := vm.reg.Read(Rs(word))
	vm.hi = rs
	vm.pc += InstructionSize
	return nil
}

func (vm *VM) fnMFLO(word uint32) error {
	vm.reg.Write(Rd(word), vm.lo)
	vm.pc += InstructionSize
	return nil
}

func (vm *VM) fnMTLO(word uint32) error {
	rs, _ := vm.reg.Read(Rs(word))
	vm.lo = rs
	vm.pc += InstructionSize
	return nil
}

// fnSYSCALL delegates to the installed handler, then advances past the
// instruction. The handler has full access to the VM, including Halt.
func (vm *VM) fnSYSCALL(word uint32) error {
	if err := vm.handler.Invoke(vm); err != nil {
		return err
	}
	vm.pc += InstructionSize
	return nil
}
