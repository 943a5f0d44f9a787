package mips

// NumRegisters is the number of general-purpose registers.
const NumRegisters = 32

// Conventional register indices used by the ABI and the syscall handlers.
const (
	RegZero = 0
	RegAT   = 1
	RegV0   = 2
	RegV1   = 3
	RegA0   = 4
	RegA1   = 5
	RegSP   = 29
	RegFP   = 30
	RegRA   = 31
)

// registerNames holds the canonical assembler names, indexed by register
// number.
var registerNames = [NumRegisters]string{
	"$zero", "$at", "$v0", "$v1", "$a0", "$a1", "$a2", "$a3",
	"$t0", "$t1", "$t2", "$t3", "$t4", "$t5", "$t6", "$t7",
	"$s0", "$s1", "$s2", "$s3", "$s4", "$s5", "$s6", "$s7",
	"$t8", "$t9", "$k0", "$k1", "$gp", "$sp", "$fp", "$ra",
}

// RegisterName returns the canonical assembler name of register i, or "$?"
// if i is out of range.
func RegisterName(i uint32) string {
	if i >= NumRegisters {
		return "$?"
	}
	return registerNames[i]
}

// Registers is the general-purpose register file. Register 0 is hardwired
// to zero: reads return 0 and writes are discarded in the write path, so no
// instruction needs to special-case it.
type Registers struct {
	r [NumRegisters]uint32
}

func (g *Registers) Read(i uint32) (uint32, error) {
	if i >= NumRegisters {
		return 0, &RegisterIndexFault{Index: int(i)}
	}
	return g.r[i], nil
}

func (g *Registers) Write(i uint32, v uint32) error {
	if i >= NumRegisters {
		return &RegisterIndexFault{Index: int(i)}
	}
	if i == RegZero {
		return nil
	}
	g.r[i] = v
	return nil
}

func (g *Registers) Reset() {
	g.r = [NumRegisters]uint32{}
}
