// Package l1 implements a 64 KiB, 4-way set-associative, write-back cache
// with not-recently-used replacement. Accesses are word-granular; fills and
// evictions are line-granular.
package l1

import (
	"github.com/sarchlab/memsim/mem"
	"github.com/sarchlab/memsim/mem/cache/internal/tagging"
)

// Cache geometry: 64 KiB of data = 16K words = 2K lines = 512 sets of 4.
const (
	NumSets = 512
	NumWays = 4
)

// An address decomposes into a byte offset (bits 0-1), a word offset
// within the line (bits 2-4), the set index (bits 5-13), and the tag
// (bits 14-31).
const (
	wordOffsetShift = 2
	wordOffsetMask  = 0x7
	setIndexShift   = 5
	setIndexMask    = 0x1ff
	tagShift        = 14
)

// Comp is the L1 cache.
type Comp struct {
	tags         tagging.TagArray
	victimFinder tagging.VictimFinder
}

func decompose(address uint32) (setID int, tag uint32, wordOffset int) {
	wordOffset = int(address >> wordOffsetShift & wordOffsetMask)
	setID = int(address >> setIndexShift & setIndexMask)
	tag = address >> tagShift
	return
}

// Access reads or writes the single word at address, reporting whether the
// containing line is present. On a hit the block's reference bit is set; a
// read returns the pre-write word and a write marks the block dirty. A
// miss has no effect.
func (c *Comp) Access(
	address, writeData uint32,
	ctrl mem.Control,
	readData *uint32,
) (hit bool) {
	setID, tag, wordOffset := decompose(address)

	block, found := c.tags.Lookup(setID, tag)
	if !found {
		return false
	}

	block.IsReferenced = true

	if ctrl.Read() {
		*readData = block.Line[wordOffset]
	}
	if ctrl.Write() {
		block.Line[wordOffset] = writeData
		block.IsDirty = true
	}

	return true
}

// InsertLine fills the line containing address into its set, overwriting
// the way chosen by the victim finder. If the victim is valid and dirty,
// its line must be written back to the next level and is returned with its
// reconstructed address.
func (c *Comp) InsertLine(
	address uint32,
	data mem.Line,
) (evicted mem.Eviction, needsWriteback bool) {
	setID, tag, _ := decompose(address)

	set := c.tags.GetSet(setID)
	victim := c.victimFinder.FindVictim(set)

	if victim.IsValid && victim.IsDirty {
		evicted.Address = victim.Tag<<tagShift |
			uint32(setID)<<setIndexShift
		evicted.Data = victim.Line
		needsWriteback = true
	}

	victim.Tag = tag
	victim.IsValid = true
	victim.IsDirty = false
	victim.IsReferenced = false
	victim.Line = data

	return
}

// ClearReferenceBits ages every block for the NRU policy. It is meant to
// be invoked by a periodic clock tick, never during an in-progress access.
func (c *Comp) ClearReferenceBits() {
	c.tags.ClearReferenceBits()
}

// Reset invalidates every block.
func (c *Comp) Reset() {
	c.tags.Reset()
}
