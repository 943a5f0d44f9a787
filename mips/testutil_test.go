package mips

func negU32(n int32) uint32 { return uint32(n) }
