package mem

import "fmt"

// A ConfigError reports a memory configuration that violates a setup-time
// contract, such as a main memory size that is not a multiple of the cache
// line size.
type ConfigError struct {
	SizeInBytes uint32
	Reason      string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("invalid memory configuration: %d bytes: %s",
		e.SizeInBytes, e.Reason)
}

// An OutOfRangeError reports an access to an address at or beyond the
// configured main memory size.
type OutOfRangeError struct {
	Address     uint32
	SizeInBytes uint32
}

func (e *OutOfRangeError) Error() string {
	return fmt.Sprintf("address 0x%08x is out of range for a %d-byte memory",
		e.Address, e.SizeInBytes)
}
