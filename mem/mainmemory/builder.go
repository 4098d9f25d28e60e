package mainmemory

import (
	"github.com/sarchlab/memsim/mem"
)

// Builder can build main memories.
type Builder struct {
	sizeInBytes uint32
}

// MakeBuilder creates a new builder with a default memory size.
func MakeBuilder() Builder {
	return Builder{
		sizeInBytes: 16 * mem.MB,
	}
}

// WithSize sets the memory size in bytes of the memory to build.
func (b Builder) WithSize(sizeInBytes uint32) Builder {
	b.sizeInBytes = sizeInBytes
	return b
}

// Build creates a zero-filled main memory. The size must be a positive
// multiple of the cache line size.
func (b Builder) Build() (*Comp, error) {
	if b.sizeInBytes == 0 || b.sizeInBytes%mem.LineBytes != 0 {
		return nil, &mem.ConfigError{
			SizeInBytes: b.sizeInBytes,
			Reason:      "size must be a positive multiple of 32 bytes",
		}
	}

	return &Comp{
		sizeInBytes: b.sizeInBytes,
		storage:     mem.NewStorage(b.sizeInBytes),
	}, nil
}
