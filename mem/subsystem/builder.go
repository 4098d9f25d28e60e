package subsystem

import (
	"github.com/sarchlab/memsim/mem"
	"github.com/sarchlab/memsim/mem/cache/l1"
	"github.com/sarchlab/memsim/mem/cache/l2"
	"github.com/sarchlab/memsim/mem/mainmemory"
	"github.com/sarchlab/memsim/tracing"
)

// Builder can build memory subsystems.
type Builder struct {
	memorySizeInBytes uint32

	l1     L1Cache
	l2     L2Cache
	memory MainMemory
	tracer tracing.Tracer
}

// MakeBuilder creates a new builder with a default memory size.
func MakeBuilder() Builder {
	return Builder{
		memorySizeInBytes: 16 * mem.MB,
	}
}

// WithMemorySize sets the main memory size in bytes of the subsystem to
// build. The size must be a positive multiple of 32 bytes.
func (b Builder) WithMemorySize(sizeInBytes uint32) Builder {
	b.memorySizeInBytes = sizeInBytes
	return b
}

// WithL1 replaces the L1 cache of the subsystem to build.
func (b Builder) WithL1(l1 L1Cache) Builder {
	b.l1 = l1
	return b
}

// WithL2 replaces the L2 cache of the subsystem to build.
func (b Builder) WithL2(l2 L2Cache) Builder {
	b.l2 = l2
	return b
}

// WithMemory replaces the main memory of the subsystem to build.
func (b Builder) WithMemory(memory MainMemory) Builder {
	b.memory = memory
	return b
}

// WithTracer sets the tracer that observes every access served by the
// subsystem to build.
func (b Builder) WithTracer(tracer tracing.Tracer) Builder {
	b.tracer = tracer
	return b
}

// Build creates a subsystem with freshly initialized levels and zeroed
// miss counters.
func (b Builder) Build() (*Comp, error) {
	memory := b.memory
	if memory == nil {
		m, err := mainmemory.MakeBuilder().
			WithSize(b.memorySizeInBytes).
			Build()
		if err != nil {
			return nil, err
		}
		memory = m
	}

	l1Cache := b.l1
	if l1Cache == nil {
		l1Cache = l1.MakeBuilder().Build()
	}

	l2Cache := b.l2
	if l2Cache == nil {
		l2Cache = l2.MakeBuilder().Build()
	}

	return &Comp{
		l1:     l1Cache,
		l2:     l2Cache,
		memory: memory,
		tracer: b.tracer,
	}, nil
}
