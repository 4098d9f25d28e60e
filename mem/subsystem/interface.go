package subsystem

import (
	"github.com/sarchlab/memsim/mem"
)

// Local abstraction layer over the levels of the hierarchy. The subsystem
// depends on these interfaces only, so tests can mock the levels without
// building real caches.
//
//go:generate mockgen -destination "mock_levels_test.go" -package $GOPACKAGE -write_package_comment=false -source interface.go

// L1Cache is the word-granular top level. It is implemented by l1.Comp.
type L1Cache interface {
	Access(address, writeData uint32, ctrl mem.Control, readData *uint32) (hit bool)
	InsertLine(address uint32, data mem.Line) (evicted mem.Eviction, needsWriteback bool)
	ClearReferenceBits()
	Reset()
}

// L2Cache is the line-granular middle level. It is implemented by l2.Comp.
type L2Cache interface {
	Access(address uint32, writeData mem.Line, ctrl mem.Control, readData *mem.Line) (hit bool)
	InsertLine(address uint32, data mem.Line) (evicted mem.Eviction, needsWriteback bool)
	Reset()
}

// MainMemory is the line-granular backing store. It is implemented by
// mainmemory.Comp.
type MainMemory interface {
	Access(address uint32, writeData mem.Line, ctrl mem.Control, readData *mem.Line) error
	Reset()
}
