package l1

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/memsim/mem"
)

// Addresses of the form 0x20 + k*0x4000 all map to set 1 with tag k.
const setOneBase = uint32(0x20)

func collidingAddr(k uint32) uint32 {
	return setOneBase + k<<tagShift
}

var _ = Describe("Comp", func() {
	var cache *Comp

	BeforeEach(func() {
		cache = MakeBuilder().Build()
	})

	It("should miss when empty", func() {
		var readData uint32

		hit := cache.Access(0x20, 0, mem.ReadEnable, &readData)

		Expect(hit).To(BeFalse())
	})

	It("should hit after the line is inserted", func() {
		_, needsWriteback := cache.InsertLine(0x20,
			mem.Line{10, 11, 12, 13, 14, 15, 16, 17})
		Expect(needsWriteback).To(BeFalse())

		var readData uint32
		hit := cache.Access(0x24, 0, mem.ReadEnable, &readData)

		Expect(hit).To(BeTrue())
		Expect(readData).To(Equal(uint32(11)))
	})

	It("should address each word of the line by offset", func() {
		cache.InsertLine(0x40, mem.Line{0, 1, 2, 3, 4, 5, 6, 7})

		for i := uint32(0); i < mem.LineWords; i++ {
			var readData uint32
			hit := cache.Access(0x40+i*mem.WordBytes, 0,
				mem.ReadEnable, &readData)

			Expect(hit).To(BeTrue())
			Expect(readData).To(Equal(i))
		}
	})

	It("should miss when the tag differs", func() {
		cache.InsertLine(collidingAddr(0), mem.Line{})

		var readData uint32
		hit := cache.Access(collidingAddr(1), 0, mem.ReadEnable, &readData)

		Expect(hit).To(BeFalse())
	})

	It("should read the pre-write word when reading and writing", func() {
		cache.InsertLine(0x20, mem.Line{100, 101, 102, 103, 104, 105, 106, 107})

		var readData uint32
		hit := cache.Access(0x28, 999, mem.ReadEnable|mem.WriteEnable,
			&readData)

		Expect(hit).To(BeTrue())
		Expect(readData).To(Equal(uint32(102)))

		hit = cache.Access(0x28, 0, mem.ReadEnable, &readData)
		Expect(hit).To(BeTrue())
		Expect(readData).To(Equal(uint32(999)))
	})

	It("should fill all invalid ways before evicting", func() {
		for k := uint32(0); k < NumWays; k++ {
			_, needsWriteback := cache.InsertLine(collidingAddr(k), mem.Line{})
			Expect(needsWriteback).To(BeFalse())
		}

		for k := uint32(0); k < NumWays; k++ {
			var readData uint32
			Expect(cache.Access(collidingAddr(k), 0, mem.ReadEnable,
				&readData)).To(BeTrue())
		}
	})

	It("should not write back a clean victim", func() {
		for k := uint32(0); k < NumWays; k++ {
			cache.InsertLine(collidingAddr(k), mem.Line{})
		}

		_, needsWriteback := cache.InsertLine(collidingAddr(4), mem.Line{})

		Expect(needsWriteback).To(BeFalse())
	})

	It("should write back a dirty victim with its reconstructed address",
		func() {
			for k := uint32(0); k < NumWays; k++ {
				cache.InsertLine(collidingAddr(k), mem.Line{})
				cache.Access(collidingAddr(k)+4, 70+k, mem.WriteEnable, nil)
			}
			cache.ClearReferenceBits()

			// All ways are dirty and aged, so the first way, holding
			// tag 0, is the victim.
			evicted, needsWriteback := cache.InsertLine(collidingAddr(4),
				mem.Line{})

			Expect(needsWriteback).To(BeTrue())
			Expect(evicted.Address).To(Equal(collidingAddr(0)))
			Expect(evicted.Data[1]).To(Equal(uint32(70)))
		})

	It("should prefer evicting a clean way over a dirty way", func() {
		for k := uint32(0); k < NumWays; k++ {
			cache.InsertLine(collidingAddr(k), mem.Line{})
		}
		cache.Access(collidingAddr(0), 55, mem.WriteEnable, nil)
		cache.ClearReferenceBits()

		_, needsWriteback := cache.InsertLine(collidingAddr(4), mem.Line{})

		Expect(needsWriteback).To(BeFalse())

		var readData uint32
		Expect(cache.Access(collidingAddr(0), 0, mem.ReadEnable,
			&readData)).To(BeTrue())
		Expect(cache.Access(collidingAddr(1), 0, mem.ReadEnable,
			&readData)).To(BeFalse())
	})

	It("should protect referenced lines from eviction", func() {
		for k := uint32(0); k < NumWays; k++ {
			cache.InsertLine(collidingAddr(k), mem.Line{})
		}

		// Touch way 0 so the NRU policy passes it over.
		cache.Access(collidingAddr(0), 0, mem.ReadEnable, new(uint32))

		cache.InsertLine(collidingAddr(4), mem.Line{})

		var readData uint32
		Expect(cache.Access(collidingAddr(0), 0, mem.ReadEnable,
			&readData)).To(BeTrue())
		Expect(cache.Access(collidingAddr(1), 0, mem.ReadEnable,
			&readData)).To(BeFalse())
	})

	It("should stop protecting a line once reference bits are cleared",
		func() {
			for k := uint32(0); k < NumWays; k++ {
				cache.InsertLine(collidingAddr(k), mem.Line{})
			}
			cache.Access(collidingAddr(0), 0, mem.ReadEnable, new(uint32))

			cache.ClearReferenceBits()
			cache.InsertLine(collidingAddr(4), mem.Line{})

			var readData uint32
			Expect(cache.Access(collidingAddr(0), 0, mem.ReadEnable,
				&readData)).To(BeFalse())
		})

	It("should miss everywhere after a reset", func() {
		cache.InsertLine(0x20, mem.Line{1, 2, 3, 4, 5, 6, 7, 8})

		cache.Reset()

		var readData uint32
		Expect(cache.Access(0x20, 0, mem.ReadEnable, &readData)).To(BeFalse())
	})
})
