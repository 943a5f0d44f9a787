package mips

import (
	"errors"
	"fmt"
	"os"

	"github.com/NM711/MIPS-Emulator/log"
)

var errImageTooLarge = errors.New("image exceeds the 32-bit address space")

// LoadFile reads a binary image into memory verbatim, starting at byte
// offset 0. The image is already in target-endian layout; no transformation
// is performed. Images larger than MaxImageSize are rejected.
func (vm *VM) LoadFile(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return &LoadError{Path: path, Err: err}
	}
	if info.Size() > MaxImageSize {
		return &LoadError{Path: path, Err: errImageTooLarge}
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return &LoadError{Path: path, Err: err}
	}
	vm.mem.SetImage(data)
	log.Info(log.LoaderModule, "image loaded", "path", path, "bytes", len(data))
	return nil
}

// LoadBytes installs image as the whole of memory, for embedders and tests.
func (vm *VM) LoadBytes(image []byte) error {
	if uint64(len(image)) > MaxImageSize {
		return &LoadError{Err: fmt.Errorf("%d bytes: %w", len(image), errImageTooLarge)}
	}
	vm.mem.SetImage(image)
	return nil
}
