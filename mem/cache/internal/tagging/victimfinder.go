package tagging

// A VictimFinder decides which block of a set should be evicted.
type VictimFinder interface {
	FindVictim(set *Set) *Block
}

// NRUVictimFinder selects victims with the not-recently-used policy. An
// invalid block is always preferred. Among valid blocks, the preference
// order is (reference=0, dirty=0), then (reference=0, dirty=1), then
// (reference=1, dirty=0), then (reference=1, dirty=1), taking the first
// block encountered within each category.
type NRUVictimFinder struct {
}

// NewNRUVictimFinder returns a newly constructed NRU evictor.
func NewNRUVictimFinder() *NRUVictimFinder {
	e := new(NRUVictimFinder)
	return e
}

// FindVictim returns the block to overwrite in a set.
func (e *NRUVictimFinder) FindVictim(set *Set) *Block {
	for i := range set.Blocks {
		if !set.Blocks[i].IsValid {
			return &set.Blocks[i]
		}
	}

	// One pass recording the first block of each (reference, dirty)
	// signature.
	firstInCategory := [4]int{-1, -1, -1, -1}
	for i := range set.Blocks {
		block := &set.Blocks[i]

		category := 0
		if block.IsReferenced {
			category |= 2
		}
		if block.IsDirty {
			category |= 1
		}

		if firstInCategory[category] < 0 {
			firstInCategory[category] = i
		}
	}

	for _, i := range firstInCategory {
		if i >= 0 {
			return &set.Blocks[i]
		}
	}

	// Unreachable: every block falls into one of the four categories.
	return &set.Blocks[0]
}
