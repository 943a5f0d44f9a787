package mips

import "encoding/binary"

// Instruction encoders, the inverse of the decode helpers. Tests build
// images with these.

// EncodeR packs an R-type word under opcode SPECIAL.
func EncodeR(rs, rt, rd, shamt, funct uint32) uint32 {
	return (rs&0x1F)<<21 | (rt&0x1F)<<16 | (rd&0x1F)<<11 | (shamt&0x1F)<<6 | (funct & 0x3F)
}

// EncodeI packs an I-type word. The immediate is truncated to 16 bits, so
// negative displacements can be passed as uint32(int32(off)).
func EncodeI(op, rs, rt, imm uint32) uint32 {
	return (op&0x3F)<<26 | (rs&0x1F)<<21 | (rt&0x1F)<<16 | (imm & 0xFFFF)
}

// EncodeJ packs a J-type word from a 26-bit target.
func EncodeJ(op, target uint32) uint32 {
	return (op&0x3F)<<26 | (target & 0x03FFFFFF)
}

// Assemble lays the given words out as a big-endian image.
func Assemble(words ...uint32) []byte {
	image := make([]byte, len(words)*InstructionSize)
	for i, w := range words {
		binary.BigEndian.PutUint32(image[i*InstructionSize:], w)
	}
	return image
}
