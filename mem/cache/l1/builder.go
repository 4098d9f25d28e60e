package l1

import (
	"github.com/sarchlab/memsim/mem/cache/internal/tagging"
)

// Builder can build L1 caches.
type Builder struct {
	victimFinder tagging.VictimFinder
}

// MakeBuilder creates a new builder with the default NRU victim finder.
func MakeBuilder() Builder {
	return Builder{
		victimFinder: tagging.NewNRUVictimFinder(),
	}
}

// WithVictimFinder sets the replacement policy of the cache to build.
func (b Builder) WithVictimFinder(victimFinder tagging.VictimFinder) Builder {
	b.victimFinder = victimFinder
	return b
}

// Build creates an L1 cache with all blocks invalid.
func (b Builder) Build() *Comp {
	return &Comp{
		tags:         tagging.NewTagArray(NumSets, NumWays),
		victimFinder: b.victimFinder,
	}
}
