package mem

// A Storage keeps the data of the simulated main memory.
//
// It is a flat, word-addressable array that is zero-filled at creation.
// Reads and writes are line-granular; the given address may point anywhere
// within the line to be accessed.
type Storage struct {
	capacity uint32
	words    []uint32
}

// NewStorage creates a zero-filled storage object with the specified
// capacity in bytes. The capacity must be a multiple of the line size;
// callers are expected to have validated it.
func NewStorage(capacity uint32) *Storage {
	storage := new(Storage)

	storage.capacity = capacity
	storage.words = make([]uint32, capacity/WordBytes)

	return storage
}

// Capacity returns the size of the storage in bytes.
func (s *Storage) Capacity() uint32 {
	return s.capacity
}

// ReadLine returns the line that contains address.
func (s *Storage) ReadLine(address uint32) (Line, error) {
	wordIndex, err := s.lineWordIndex(address)
	if err != nil {
		return Line{}, err
	}

	var line Line
	copy(line[:], s.words[wordIndex:wordIndex+LineWords])

	return line, nil
}

// WriteLine overwrites the line that contains address.
func (s *Storage) WriteLine(address uint32, line Line) error {
	wordIndex, err := s.lineWordIndex(address)
	if err != nil {
		return err
	}

	copy(s.words[wordIndex:wordIndex+LineWords], line[:])

	return nil
}

// Reset zero-fills the storage, keeping its capacity.
func (s *Storage) Reset() {
	for i := range s.words {
		s.words[i] = 0
	}
}

func (s *Storage) lineWordIndex(address uint32) (uint32, error) {
	if address >= s.capacity {
		return 0, &OutOfRangeError{Address: address, SizeInBytes: s.capacity}
	}

	return LineAddress(address) / WordBytes, nil
}
