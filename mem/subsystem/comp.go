// Package subsystem ties the cache hierarchy together. It presents a
// single-word access operation and internally resolves every miss by
// moving lines between L1, L2, and main memory.
package subsystem

import (
	"github.com/rs/xid"

	"github.com/sarchlab/memsim/mem"
	"github.com/sarchlab/memsim/tracing"
)

type missCause int

const (
	missOnRead missCause = iota
	missOnWrite
)

// Comp is the memory subsystem controller.
type Comp struct {
	l1     L1Cache
	l2     L2Cache
	memory MainMemory
	tracer tracing.Tracer

	l1MissCount uint64
	l2MissCount uint64
}

// Access reads or writes one word at address. Misses at any level are
// resolved internally and never surfaced; the only possible error is an
// out-of-range address reaching main memory.
func (c *Comp) Access(
	address, writeData uint32,
	ctrl mem.Control,
	readData *uint32,
) error {
	l1Hit := c.l1.Access(address, writeData, ctrl, readData)
	l2Hit := true

	if !l1Hit {
		c.l1MissCount++

		var err error
		l2Hit, err = c.handleL1Miss(address)
		if err != nil {
			return err
		}

		if !c.l1.Access(address, writeData, ctrl, readData) {
			panic("L1 must hit after the missing line is inserted")
		}
	}

	c.trace(address, ctrl, l1Hit, l2Hit)

	return nil
}

// handleL1Miss brings the line containing address into L1, spilling a
// dirty L1 victim into L2 if the fill displaces one. It reports whether
// the initial L2 lookup hit.
func (c *Comp) handleL1Miss(address uint32) (l2Hit bool, err error) {
	var line mem.Line

	l2Hit = c.l2.Access(address, mem.Line{}, mem.ReadEnable, &line)
	if !l2Hit {
		c.l2MissCount++

		if err := c.handleL2Miss(address, missOnRead); err != nil {
			return false, err
		}

		if !c.l2.Access(address, mem.Line{}, mem.ReadEnable, &line) {
			panic("L2 must hit after the missing line is inserted")
		}
	}

	evicted, needsWriteback := c.l1.InsertLine(address, line)
	if !needsWriteback {
		return l2Hit, nil
	}

	if c.l2.Access(evicted.Address, evicted.Data, mem.WriteEnable, nil) {
		return l2Hit, nil
	}

	if err := c.handleL2Miss(evicted.Address, missOnWrite); err != nil {
		return l2Hit, err
	}

	if !c.l2.Access(evicted.Address, evicted.Data, mem.WriteEnable, nil) {
		panic("L2 must hit after the evicted line's slot is claimed")
	}

	return l2Hit, nil
}

// handleL2Miss claims the L2 entry for the line containing address. A
// read-caused miss fills the entry with the line fetched from main
// memory. A write-caused miss skips the fetch: the entry is claimed with
// scratch contents that the caller overwrites immediately, so the scratch
// data is never observable.
func (c *Comp) handleL2Miss(address uint32, cause missCause) error {
	var line mem.Line

	if cause == missOnRead {
		err := c.memory.Access(address, mem.Line{}, mem.ReadEnable, &line)
		if err != nil {
			return err
		}
	}

	evicted, needsWriteback := c.l2.InsertLine(address, line)
	if needsWriteback {
		return c.memory.Access(evicted.Address, evicted.Data,
			mem.WriteEnable, nil)
	}

	return nil
}

// HandleClockInterrupt ages the L1 reference bits for the NRU policy. It
// must not be invoked while an Access call is in progress.
func (c *Comp) HandleClockInterrupt() {
	c.l1.ClearReferenceBits()
}

// L1MissCount returns the number of L1 misses since initialization.
func (c *Comp) L1MissCount() uint64 {
	return c.l1MissCount
}

// L2MissCount returns the number of L2 misses since initialization.
func (c *Comp) L2MissCount() uint64 {
	return c.l2MissCount
}

// Reset re-initializes every level and zeroes the miss counters.
func (c *Comp) Reset() {
	c.memory.Reset()
	c.l1.Reset()
	c.l2.Reset()
	c.l1MissCount = 0
	c.l2MissCount = 0
}

func (c *Comp) trace(address uint32, ctrl mem.Control, l1Hit, l2Hit bool) {
	if c.tracer == nil {
		return
	}

	c.tracer.Trace(tracing.AccessRecord{
		ID:      xid.New().String(),
		Address: address,
		Read:    ctrl.Read(),
		Write:   ctrl.Write(),
		L1Hit:   l1Hit,
		L2Hit:   l2Hit,
	})
}
