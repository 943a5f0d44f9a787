package mips

// I-type and J-type handlers. Each handler performs the complete
// architectural effect of its instruction, including the PC update.

// effectiveAddress computes R[rs] + sign_extend(imm16) with 32-bit wrap.
func (vm *VM) effectiveAddress(word uint32) uint32 {
	base, _ := vm.reg.Read(Rs(word))
	return base + SignExtend16(Imm16(word))
}

// jumpTarget forms the absolute target of j/jal: the 26-bit field shifted
// left twice, under the high 4 bits of the PC of the jump itself.
func (vm *VM) jumpTarget(word uint32) uint32 {
	return (vm.pc & 0xF0000000) | (Target26(word) << 2)
}

func (vm *VM) opJ(word uint32) error {
	vm.pc = vm.jumpTarget(word)
	return nil
}

func (vm *VM) opJAL(word uint32) error {
	vm.reg.Write(RegRA, vm.pc+InstructionSize)
	vm.pc = vm.jumpTarget(word)
	return nil
}

func (vm *VM) opBEQ(word uint32) error {
	rs, _ := vm.reg.Read(Rs(word))
	rt, _ := vm.reg.Read(Rt(word))
	vm.branch(word, rs == rt)
	return nil
}

func (vm *VM) opBNE(word uint32) error {
	rs, _ := vm.reg.Read(Rs(word))
	rt, _ := vm.reg.Read(Rt(word))
	vm.branch(word, rs != rt)
	return nil
}

func (vm *VM) opBLEZ(word uint32) error {
	rs, _ := vm.reg.Read(Rs(word))
	vm.branch(word, int32(rs) <= 0)
	return nil
}

func (vm *VM) opBGTZ(word uint32) error {
	rs, _ := vm.reg.Read(Rs(word))
	vm.branch(word, int32(rs) > 0)
	return nil
}

// opADDI does not trap on signed overflow: the sum wraps exactly like
// addiu.
func (vm *VM) opADDI(word uint32) error {
	rs, _ := vm.reg.Read(Rs(word))
	vm.reg.Write(Rt(word), rs+SignExtend16(Imm16(word)))
	vm.pc += InstructionSize
	return nil
}

func (vm *VM) opADDIU(word uint32) error {
	rs, _ := vm.reg.Read(Rs(word))
	vm.reg.Write(Rt(word), rs+SignExtend16(Imm16(word)))
	vm.pc += InstructionSize
	return nil
}

func (vm *VM) opSLTI(word uint32) error {
	rs, _ := vm.reg.Read(Rs(word))
	var v uint32
	if int32(rs) < int32(SignExtend16(Imm16(word))) {
		v = 1
	}
	vm.reg.Write(Rt(word), v)
	vm.pc += InstructionSize
	return nil
}

func (vm *VM) opSLTIU(word uint32) error {
	rs, _ := vm.reg.Read(Rs(word))
	var v uint32
	if rs < SignExtend16(Imm16(word)) {
		v = 1
	}
	vm.reg.Write(Rt(word), v)
	vm.pc += InstructionSize
	return nil
}

// The logical immediates zero-extend.

func (vm *VM) opANDI(word uint32) error {
	rs, _ := vm.reg.Read(Rs(word))
	vm.reg.Write(Rt(word), rs&Imm16(word))
	vm.pc += InstructionSize
	return nil
}

func (vm *VM) opORI(word uint32) error {
	rs, _ := vm.reg.Read(Rs(word))
	vm.reg.Write(Rt(word), rs|Imm16(word))
	vm.pc += InstructionSize
	return nil
}

func (vm *VM) opXORI(word uint32) error {
	rs, _ := vm.reg.Read(Rs(word))
	vm.reg.Write(Rt(word), rs^Imm16(word))
	vm.pc += InstructionSize
	return nil
}

func (vm *VM) opLUI(word uint32) error {
	vm.reg.Write(Rt(word), Imm16(word)<<16)
	vm.pc += InstructionSize
	return nil
}

func (vm *VM) opLB(word uint32) error {
	b, err := vm.mem.ReadByte(vm.effectiveAddress(word))
	if err != nil {
		return err
	}
	vm.reg.Write(Rt(word), SignExtend8(uint32(b)))
	vm.pc += InstructionSize
	return nil
}

func (vm *VM) opLBU(word uint32) error {
	b, err := vm.mem.ReadByte(vm.effectiveAddress(word))
	if err != nil {
		return err
	}
	vm.reg.Write(Rt(word), uint32(b))
	vm.pc += InstructionSize
	return nil
}

func (vm *VM) opLH(word uint32) error {
	h, err := vm.mem.ReadHalf(vm.effectiveAddress(word))
	if err != nil {
		return err
	}
	vm.reg.Write(Rt(word), SignExtend16(uint32(h)))
	vm.pc += InstructionSize
	return nil
}

func (vm *VM) opLHU(word uint32) error {
	h, err := vm.mem.ReadHalf(vm.effectiveAddress(word))
	if err != nil {
		return err
	}
	vm.reg.Write(Rt(word), uint32(h))
	vm.pc += InstructionSize
	return nil
}

func (vm *VM) opLW(word uint32) error {
	w, err := vm.mem.ReadWord(vm.effectiveAddress(word))
	if err != nil {
		return err
	}
	vm.reg.Write(Rt(word), w)
	vm.pc += InstructionSize
	return nil
}

func (vm *VM) opSB(word uint32) error {
	rt, _ := vm.reg.Read(Rt(word))
	if err := vm.mem.WriteByte(vm.effectiveAddress(word), byte(rt)); err != nil {
		return err
	}
	vm.pc += InstructionSize
	return nil
}

func (vm *VM) opSH(word uint32) error {
	rt, _ := vm.reg.Read(Rt(word))
	if err := vm.mem.WriteHalf(vm.effectiveAddress(word), uint16(rt)); err != nil {
		return err
	}
	vm.pc += InstructionSize
	return nil
}

func (vm *VM) opSW(word uint32) error {
	rt, _ := vm.reg.Read(Rt(word))
	if err := vm.mem.WriteWord(vm.effectiveAddress(word), rt); err != nil {
		return err
	}
	vm.pc += InstructionSize
	return nil
}
