package mips

import (
	"encoding/binary"
)

// MaxImageSize is the largest loadable image: one byte short of the full
// 32-bit address space.
const MaxImageSize = 1<<32 - 1

// Memory is a flat byte-addressable store. Multi-byte access is big-endian:
// the lowest address holds the most significant byte. Accessors never grow
// the store; sizing belongs to the loader.
type Memory struct {
	data []byte
}

func NewMemory() *Memory {
	return &Memory{}
}

func (m *Memory) Size() uint32 {
	return uint32(len(m.data))
}

// Resize grows or shrinks the store to n bytes, preserving the prefix that
// survives.
func (m *Memory) Resize(n uint32) {
	if uint32(len(m.data)) == n {
		return
	}
	next := make([]byte, n)
	copy(next, m.data)
	m.data = next
}

// SetImage replaces the entire store with image.
func (m *Memory) SetImage(image []byte) {
	m.data = image
}

// check reports a MemoryFault unless addr..addr+n-1 lies inside the store.
// The sum is taken in 64 bits so a range crossing 0xFFFFFFFF cannot wrap.
func (m *Memory) check(addr uint32, n uint32, write bool) error {
	if uint64(addr)+uint64(n) > uint64(len(m.data)) {
		return &MemoryFault{Addr: addr, Size: n, Write: write}
	}
	return nil
}

func (m *Memory) ReadByte(addr uint32) (byte, error) {
	if err := m.check(addr, 1, false); err != nil {
		return 0, err
	}
	return m.data[addr], nil
}

func (m *Memory) WriteByte(addr uint32, v byte) error {
	if err := m.check(addr, 1, true); err != nil {
		return err
	}
	m.data[addr] = v
	return nil
}

func (m *Memory) ReadHalf(addr uint32) (uint16, error) {
	if err := m.check(addr, 2, false); err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint16(m.data[addr : addr+2]), nil
}

func (m *Memory) WriteHalf(addr uint32, v uint16) error {
	if err := m.check(addr, 2, true); err != nil {
		return err
	}
	binary.BigEndian.PutUint16(m.data[addr:addr+2], v)
	return nil
}

func (m *Memory) ReadWord(addr uint32) (uint32, error) {
	if err := m.check(addr, 4, false); err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(m.data[addr : addr+4]), nil
}

func (m *Memory) WriteWord(addr uint32, v uint32) error {
	if err := m.check(addr, 4, true); err != nil {
		return err
	}
	binary.BigEndian.PutUint32(m.data[addr:addr+4], v)
	return nil
}

// ReadRange copies n bytes starting at addr, for hexdumps and tests.
func (m *Memory) ReadRange(addr uint32, n uint32) ([]byte, error) {
	if err := m.check(addr, n, false); err != nil {
		return nil, err
	}
	out := make([]byte, n)
	copy(out, m.data[addr:uint64(addr)+uint64(n)])
	return out, nil
}

// WriteRange copies data into the store starting at addr.
func (m *Memory) WriteRange(addr uint32, data []byte) error {
	if err := m.check(addr, uint32(len(data)), true); err != nil {
		return err
	}
	copy(m.data[addr:], data)
	return nil
}
