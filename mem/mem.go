// Package mem provides the data types shared by all levels of the memory
// hierarchy, including cache lines, access control flags, and the backing
// storage for main memory.
package mem

// Common memory capacity units.
const (
	KB = 1 << 10
	MB = 1 << 20
	GB = 1 << 30
)

// Geometry of the hierarchy. Every level moves data in lines of 8 words,
// where a word is 32 bits.
const (
	WordBytes = 4
	LineWords = 8
	LineBytes = WordBytes * LineWords
)

// A Line is the unit of data transferred between a cache and the next
// level of the hierarchy.
type Line [LineWords]uint32

// Control selects what an access performs. Read and write may be combined
// in a single access, in which case the read observes the pre-write
// contents.
type Control uint8

// The two meaningful control bits.
const (
	ReadEnable Control = 1 << iota
	WriteEnable
)

// Read returns true if the access should read.
func (c Control) Read() bool { return c&ReadEnable != 0 }

// Write returns true if the access should write.
func (c Control) Write() bool { return c&WriteEnable != 0 }

// LineAddress returns the address of the line that contains addr, which is
// addr with its low 5 bits cleared.
func LineAddress(addr uint32) uint32 {
	return addr &^ (LineBytes - 1)
}

// An Eviction describes a dirty line displaced from a cache that must be
// written back to the next level before its slot is reused.
type Eviction struct {
	Address uint32
	Data    Line
}
