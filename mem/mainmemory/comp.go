// Package mainmemory implements the flat, word-addressable backing store
// at the bottom of the hierarchy. It serves whole-line reads and writes
// and performs no eviction or statistics tracking.
package mainmemory

import (
	"github.com/sarchlab/memsim/mem"
)

// Comp is the main memory.
type Comp struct {
	sizeInBytes uint32
	storage     *mem.Storage
}

// SizeInBytes returns the configured memory size.
func (c *Comp) SizeInBytes() uint32 {
	return c.sizeInBytes
}

// Access reads or writes the line containing address. A read returns the
// pre-write line. Accesses at or beyond the memory size fail with an
// OutOfRangeError.
func (c *Comp) Access(
	address uint32,
	writeData mem.Line,
	ctrl mem.Control,
	readData *mem.Line,
) error {
	if address >= c.sizeInBytes {
		return &mem.OutOfRangeError{
			Address:     address,
			SizeInBytes: c.sizeInBytes,
		}
	}

	if ctrl.Read() {
		line, err := c.storage.ReadLine(address)
		if err != nil {
			return err
		}
		*readData = line
	}

	if ctrl.Write() {
		if err := c.storage.WriteLine(address, writeData); err != nil {
			return err
		}
	}

	return nil
}

// Reset zero-fills the memory.
func (c *Comp) Reset() {
	c.storage.Reset()
}
