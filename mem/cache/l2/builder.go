package l2

// Builder can build L2 caches.
type Builder struct {
}

// MakeBuilder creates a new builder.
func MakeBuilder() Builder {
	return Builder{}
}

// Build creates an L2 cache with all entries invalid.
func (b Builder) Build() *Comp {
	return &Comp{
		entries: make([]entry, NumEntries),
	}
}
