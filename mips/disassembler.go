package mips

import (
	"fmt"
)

// InstrDef defines one instruction for the disassembler: its mnemonic and
// an operand formatter. The formatter receives the word and the PC of the
// instruction so branch and jump operands can render as absolute targets.
type InstrDef struct {
	Name   string
	Format func(name string, word uint32, pc uint32) string
}

var opcodeTable map[uint32]InstrDef
var functTable map[uint32]InstrDef

func init() {
	opcodeTable = map[uint32]InstrDef{
		J:     {"j", formatJump},
		JAL:   {"jal", formatJump},
		BEQ:   {"beq", formatBranch2},
		BNE:   {"bne", formatBranch2},
		BLEZ:  {"blez", formatBranch1},
		BGTZ:  {"bgtz", formatBranch1},
		ADDI:  {"addi", formatImmSigned},
		ADDIU: {"addiu", formatImmSigned},
		SLTI:  {"slti", formatImmSigned},
		SLTIU: {"sltiu", formatImmSigned},
		ANDI:  {"andi", formatImmHex},
		ORI:   {"ori", formatImmHex},
		XORI:  {"xori", formatImmHex},
		LUI:   {"lui", formatLUI},
		LB:    {"lb", formatMemAccess},
		LH:    {"lh", formatMemAccess},
		LW:    {"lw", formatMemAccess},
		LBU:   {"lbu", formatMemAccess},
		LHU:   {"lhu", formatMemAccess},
		SB:    {"sb", formatMemAccess},
		SH:    {"sh", formatMemAccess},
		SW:    {"sw", formatMemAccess},
	}
	functTable = map[uint32]InstrDef{
		SLL:     {"sll", formatShift},
		SRL:     {"srl", formatShift},
		SRA:     {"sra", formatShift},
		SLLV:    {"sllv", formatShiftV},
		SRLV:    {"srlv", formatShiftV},
		SRAV:    {"srav", formatShiftV},
		JR:      {"jr", formatRs},
		JALR:    {"jalr", formatJALR},
		SYSCALL: {"syscall", formatBare},
		MFHI:    {"mfhi", formatRd},
		MTHI:    {"mthi", formatRs},
		MFLO:    {"mflo", formatRd},
		MTLO:    {"mtlo", formatRs},
		MULT:    {"mult", formatRsRt},
		MULTU:   {"multu", formatRsRt},
		DIV:     {"div", formatRsRt},
		DIVU:    {"divu", formatRsRt},
		ADD:     {"add", formatRType},
		ADDU:    {"addu", formatRType},
		SUB:     {"sub", formatRType},
		SUBU:    {"subu", formatRType},
		AND:     {"and", formatRType},
		OR:      {"or", formatRType},
		XOR:     {"xor", formatRType},
		NOR:     {"nor", formatRType},
		SLTU:    {"sltu", formatRType},
		SLT:     {"slt", formatRType},
	}
}

// Disassemble renders a single instruction word. pc is the address of the
// word itself and resolves branch/jump operands to absolute targets.
func Disassemble(word uint32, pc uint32) string {
	var def InstrDef
	var ok bool
	if Op(word) == SPECIAL {
		def, ok = functTable[Funct(word)]
	} else {
		def, ok = opcodeTable[Op(word)]
	}
	if !ok {
		return fmt.Sprintf(".word 0x%08x", word)
	}
	return def.Format(def.Name, word, pc)
}

// DisassembleRange renders n instructions starting at addr as
// "address: word  mnemonic" lines.
func DisassembleRange(mem *Memory, addr uint32, n int) ([]string, error) {
	lines := make([]string, 0, n)
	for i := 0; i < n; i++ {
		word, err := mem.ReadWord(addr)
		if err != nil {
			return lines, err
		}
		lines = append(lines, fmt.Sprintf("%08x:  %08x  %s", addr, word, Disassemble(word, addr)))
		addr += InstructionSize
	}
	return lines, nil
}

func branchTarget(word uint32, pc uint32) uint32 {
	return pc + InstructionSize + (SignExtend16(Imm16(word)) << 2)
}

func formatBare(name string, word uint32, pc uint32) string {
	return name
}

func formatJump(name string, word uint32, pc uint32) string {
	target := (pc & 0xF0000000) | (Target26(word) << 2)
	return fmt.Sprintf("%s 0x%x", name, target)
}

func formatBranch2(name string, word uint32, pc uint32) string {
	return fmt.Sprintf("%s %s, %s, 0x%x",
		name, RegisterName(Rs(word)), RegisterName(Rt(word)), branchTarget(word, pc))
}

func formatBranch1(name string, word uint32, pc uint32) string {
	return fmt.Sprintf("%s %s, 0x%x", name, RegisterName(Rs(word)), branchTarget(word, pc))
}

func formatImmSigned(name string, word uint32, pc uint32) string {
	return fmt.Sprintf("%s %s, %s, %d",
		name, RegisterName(Rt(word)), RegisterName(Rs(word)), int16(Imm16(word)))
}

func formatImmHex(name string, word uint32, pc uint32) string {
	return fmt.Sprintf("%s %s, %s, 0x%x",
		name, RegisterName(Rt(word)), RegisterName(Rs(word)), Imm16(word))
}

func formatLUI(name string, word uint32, pc uint32) string {
	return fmt.Sprintf("%s %s, 0x%x", name, RegisterName(Rt(word)), Imm16(word))
}

func formatMemAccess(name string, word uint32, pc uint32) string {
	return fmt.Sprintf("%s %s, %d(%s)",
		name, RegisterName(Rt(word)), int16(Imm16(word)), RegisterName(Rs(word)))
}

func formatRType(name string, word uint32, pc uint32) string {
	return fmt.Sprintf("%s %s, %s, %s",
		name, RegisterName(Rd(word)), RegisterName(Rs(word)), RegisterName(Rt(word)))
}

func formatShift(name string, word uint32, pc uint32) string {
	return fmt.Sprintf("%s %s, %s, %d",
		name, RegisterName(Rd(word)), RegisterName(Rt(word)), Shamt(word))
}

func formatShiftV(name string, word uint32, pc uint32) string {
	return fmt.Sprintf("%s %s, %s, %s",
		name, RegisterName(Rd(word)), RegisterName(Rt(word)), RegisterName(Rs(word)))
}

func formatRs(name string, word uint32, pc uint32) string {
	return fmt.Sprintf("%s %s", name, RegisterName(Rs(word)))
}

func formatRd(name string, word uint32, pc uint32) string {
	return fmt.Sprintf("%s %s", name, RegisterName(Rd(word)))
}

func formatRsRt(name string, word uint32, pc uint32) string {
	return fmt.Sprintf("%s %s, %s", name, RegisterName(Rs(word)), RegisterName(Rt(word)))
}

func formatJALR(name string, word uint32, pc uint32) string {
	return fmt.Sprintf("%s %s, %s", name, RegisterName(Rd(word)), RegisterName(Rs(word)))
}
