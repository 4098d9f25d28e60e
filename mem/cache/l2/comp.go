// Package l2 implements a 1 MiB, direct-mapped, write-back cache. Both
// accesses and fills are line-granular.
package l2

import (
	"github.com/sarchlab/memsim/mem"
)

// 1 MiB of data = 256K words = 32K lines, one entry per line.
const NumEntries = 32768

// An address decomposes into an in-line offset (bits 0-4), the entry index
// (bits 5-19), and the tag (bits 20-31).
const (
	indexShift = 5
	indexMask  = 0x7fff
	tagShift   = 20
)

type entry struct {
	valid bool
	dirty bool
	tag   uint32
	line  mem.Line
}

// Comp is the L2 cache.
type Comp struct {
	entries []entry
}

func decompose(address uint32) (index int, tag uint32) {
	index = int(address >> indexShift & indexMask)
	tag = address >> tagShift
	return
}

// Access reads or writes the line containing address, reporting whether it
// is present. A read returns the pre-write line and a write marks the
// entry dirty. A miss has no effect.
func (c *Comp) Access(
	address uint32,
	writeData mem.Line,
	ctrl mem.Control,
	readData *mem.Line,
) (hit bool) {
	index, tag := decompose(address)

	e := &c.entries[index]
	if !e.valid || e.tag != tag {
		return false
	}

	if ctrl.Read() {
		*readData = e.line
	}
	if ctrl.Write() {
		e.line = writeData
		e.dirty = true
	}

	return true
}

// InsertLine fills the line containing address into the one entry it maps
// to. If that entry currently holds a valid, dirty line, the old line must
// be written back to main memory and is returned with its reconstructed
// address.
func (c *Comp) InsertLine(
	address uint32,
	data mem.Line,
) (evicted mem.Eviction, needsWriteback bool) {
	index, tag := decompose(address)

	e := &c.entries[index]
	if e.valid && e.dirty {
		evicted.Address = e.tag<<tagShift | uint32(index)<<indexShift
		evicted.Data = e.line
		needsWriteback = true
	}

	e.valid = true
	e.dirty = false
	e.tag = tag
	e.line = data

	return
}

// Reset invalidates every entry.
func (c *Comp) Reset() {
	for i := range c.entries {
		c.entries[i].valid = false
	}
}
