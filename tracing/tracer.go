// Package tracing records the word accesses served by the memory
// subsystem.
package tracing

// An AccessRecord describes one word access and how far down the
// hierarchy it had to travel.
type AccessRecord struct {
	ID      string
	Address uint32
	Read    bool
	Write   bool
	L1Hit   bool
	L2Hit   bool
}

// A Tracer consumes access records.
type Tracer interface {
	Trace(rec AccessRecord)
}
