// Package tagging tracks which lines occupy the ways of a set-associative
// cache.
package tagging

import (
	"github.com/sarchlab/memsim/mem"
)

// A Block is the bookkeeping state of one cache way, together with the
// line data it holds.
type Block struct {
	Tag          uint32
	SetID        int
	WayID        int
	IsValid      bool
	IsDirty      bool
	IsReferenced bool
	Line         mem.Line
}

// A Set is the group of ways that a given address may map into.
type Set struct {
	Blocks []Block
}

// A TagArray is the full state of a set-associative cache.
type TagArray interface {
	Lookup(setID int, tag uint32) (*Block, bool)
	GetSet(setID int) *Set
	ClearReferenceBits()
	Reset()
}

// NewTagArray creates a tag array with all blocks invalid.
func NewTagArray(numSets, numWays int) TagArray {
	t := &tagArrayImpl{
		numSets: numSets,
		numWays: numWays,
	}

	t.Reset()

	return t
}

type tagArrayImpl struct {
	numSets int
	numWays int
	sets    []Set
}

// GetSet returns the set identified by setID.
func (t *tagArrayImpl) GetSet(setID int) *Set {
	return &t.sets[setID]
}

// Lookup scans the ways of a set in a fixed order and returns the first
// valid block that holds tag.
func (t *tagArrayImpl) Lookup(setID int, tag uint32) (*Block, bool) {
	set := &t.sets[setID]
	for i := range set.Blocks {
		block := &set.Blocks[i]
		if block.IsValid && block.Tag == tag {
			return block, true
		}
	}

	return nil, false
}

// ClearReferenceBits clears the reference bit of every block in every set.
// It is called periodically to implement the aging half of NRU.
func (t *tagArrayImpl) ClearReferenceBits() {
	for i := range t.sets {
		for j := range t.sets[i].Blocks {
			t.sets[i].Blocks[j].IsReferenced = false
		}
	}
}

// Reset marks all the blocks in the tag array invalid.
func (t *tagArrayImpl) Reset() {
	t.sets = make([]Set, t.numSets)
	for i := 0; i < t.numSets; i++ {
		for j := 0; j < t.numWays; j++ {
			block := Block{
				SetID: i,
				WayID: j,
			}

			t.sets[i].Blocks = append(t.sets[i].Blocks, block)
		}
	}
}
